// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package utils holds small helpers shared by the transport and the store:
// a resty client wrapper and a UUIDv7 generator.
package utils
