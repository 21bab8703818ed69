// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package modified

import (
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/MKhiriev/go-sync-engine/models"
)

// Snapshot holds the values of a set of keys of one object, captured when a
// round trip started.
type Snapshot map[string]any

// TakeSnapshot records the current value of every key in keys.
func TakeSnapshot(obj models.Object, keys models.KeySet) Snapshot {
	snap := make(Snapshot)
	if keys == nil {
		return snap
	}
	for _, key := range models.SortedKeys(keys) {
		snap[key] = obj.Value(key)
	}
	return snap
}

// Keys returns the snapshotted keys.
func (s Snapshot) Keys() models.KeySet {
	keys := models.NewKeySet()
	for key := range s {
		keys.Add(key)
	}
	return keys
}

// ChangedKeys returns the snapshotted keys whose value in obj differs from the
// recorded one.
func (s Snapshot) ChangedKeys(obj models.Object) models.KeySet {
	changed := models.NewKeySet()
	for key, was := range s {
		if !equalValues(was, obj.Value(key)) {
			changed.Add(key)
		}
	}
	return changed
}

// UnchangedKeys returns the snapshotted keys whose value in obj still equals
// the recorded one.
func (s Snapshot) UnchangedKeys(obj models.Object) models.KeySet {
	return s.Keys().Difference(s.ChangedKeys(obj))
}

func equalValues(a, b any) bool {
	return cmp.Equal(a, b, cmpopts.EquateEmpty())
}
