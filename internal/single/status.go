// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package single

// Status is the lifecycle state of a RequestSync.
type Status int

const (
	StatusIdle Status = iota
	StatusReady
	StatusInProgress
	StatusCompleted
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusReady:
		return "ready"
	case StatusInProgress:
		return "in_progress"
	case StatusCompleted:
		return "completed"
	default:
		return "unknown"
	}
}
