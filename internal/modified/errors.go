// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package modified

import "errors"

var (
	// ErrObjectNotTracked is returned when a token is requested for an object
	// that was never added to the set or is already fully synchronized.
	ErrObjectNotTracked = errors.New("object is not tracked for synchronization")

	// ErrTokenOutstanding is returned when a token is requested for an object
	// that already has an unresolved token.
	ErrTokenOutstanding = errors.New("object already has an outstanding sync token")

	// ErrNoKeysToSynchronize is returned when none of the requested keys is
	// currently dirty for the object.
	ErrNoKeysToSynchronize = errors.New("no dirty keys to synchronize")

	// ErrUnknownToken is returned when resolving a token that was already
	// resolved or belongs to an object that is no longer tracked.
	ErrUnknownToken = errors.New("unknown or already resolved sync token")
)
