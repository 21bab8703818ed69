// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when a
// configuration group is incomplete or invalid.
var (
	// ErrInvalidTransportConfigs indicates a missing base URL or request timeout.
	ErrInvalidTransportConfigs = errors.New("invalid transport configuration")
	// ErrInvalidStorageConfigs indicates an empty or in-memory DSN.
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidSchedulerConfigs indicates a non-positive poll interval,
	// in-flight limit or backoff cap.
	ErrInvalidSchedulerConfigs = errors.New("invalid scheduler configuration")
	// ErrInvalidSyncConfigs indicates no entities or non-positive sizes.
	ErrInvalidSyncConfigs = errors.New("invalid sync configuration")
)
