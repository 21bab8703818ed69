// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the sync daemon runtime.
//
// It wires the local store, the per-entity synchronizers, the change feed and
// the request scheduler into a single process lifecycle.
package client
