// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package modified

import "github.com/MKhiriev/go-sync-engine/models"

// objectStatus is the per-object record of the set. Dirty keys are always
// read live from the object; the status only remembers which of them are in
// flight.
type objectStatus struct {
	object      models.Object
	trackedKeys models.KeySet
	token       *Token
}

// dirtyKeys returns the object's modified keys restricted to the tracked
// universe.
func (s *objectStatus) dirtyKeys() models.KeySet {
	keys := s.object.ModifiedKeys()
	if keys == nil {
		return models.NewKeySet()
	}
	if s.trackedKeys != nil {
		keys = keys.Intersect(s.trackedKeys)
	}
	return keys
}

// keysToSynchronize returns the dirty keys that are not in flight.
func (s *objectStatus) keysToSynchronize() models.KeySet {
	keys := s.dirtyKeys()
	if s.token != nil {
		keys = keys.Difference(s.token.keys)
	}
	return keys
}

func (s *objectStatus) isDone() bool {
	return s.token == nil && s.dirtyKeys().Cardinality() == 0
}
