// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package upstream

import (
	"slices"

	"github.com/MKhiriev/go-sync-engine/internal/modified"
	"github.com/MKhiriev/go-sync-engine/models"
)

// InsertToken identifies one in-flight creation request.
type InsertToken struct {
	id       uint64
	objectID models.ObjectID
	snapshot modified.Snapshot
}

// ObjectID returns the identity of the object being created.
func (t *InsertToken) ObjectID() models.ObjectID { return t.objectID }

// Keys returns the keys sent in the creation request.
func (t *InsertToken) Keys() models.KeySet { return t.snapshot.Keys() }

// InsertedObjectSet holds objects pending creation on the server, in
// insertion order, and at most one in-flight token per object.
type InsertedObjectSet struct {
	order    []models.ObjectID
	pending  map[models.ObjectID]models.Object
	inFlight map[models.ObjectID]*InsertToken
	lastID   uint64
}

// NewInsertedObjectSet returns an empty set.
func NewInsertedObjectSet() *InsertedObjectSet {
	return &InsertedObjectSet{
		pending:  make(map[models.ObjectID]models.Object),
		inFlight: make(map[models.ObjectID]*InsertToken),
	}
}

// Add appends obj unless it is already pending.
func (s *InsertedObjectSet) Add(obj models.Object) {
	if _, ok := s.pending[obj.ID()]; ok {
		return
	}
	s.pending[obj.ID()] = obj
	s.order = append(s.order, obj.ID())
}

// Remove drops obj. Its in-flight token, if any, becomes stale.
func (s *InsertedObjectSet) Remove(obj models.Object) {
	id := obj.ID()
	if _, ok := s.pending[id]; !ok {
		return
	}
	delete(s.pending, id)
	delete(s.inFlight, id)
	s.order = slices.DeleteFunc(s.order, func(other models.ObjectID) bool { return other == id })
}

// Contains reports whether obj is pending.
func (s *InsertedObjectSet) Contains(obj models.Object) bool {
	_, ok := s.pending[obj.ID()]
	return ok
}

// IsInFlight reports whether a creation request for obj is outstanding.
func (s *InsertedObjectSet) IsInFlight(obj models.Object) bool {
	_, ok := s.inFlight[obj.ID()]
	return ok
}

// Candidates returns pending objects without an in-flight request.
func (s *InsertedObjectSet) Candidates() []models.Object {
	out := make([]models.Object, 0, len(s.order))
	for _, id := range s.order {
		if _, busy := s.inFlight[id]; busy {
			continue
		}
		out = append(out, s.pending[id])
	}
	return out
}

// DidStartInserting marks obj as in flight and snapshots keys. It returns nil
// if obj is not pending or already in flight.
func (s *InsertedObjectSet) DidStartInserting(obj models.Object, keys models.KeySet) *InsertToken {
	if !s.Contains(obj) || s.IsInFlight(obj) {
		return nil
	}
	s.lastID++
	token := &InsertToken{
		id:       s.lastID,
		objectID: obj.ID(),
		snapshot: modified.TakeSnapshot(obj, keys),
	}
	s.inFlight[obj.ID()] = token
	return token
}

// IsCurrent reports whether token is the outstanding token of its object.
func (s *InsertedObjectSet) IsCurrent(token *InsertToken) bool {
	return token != nil && s.inFlight[token.objectID] == token
}

// DidFinishInserting removes the object of token from the set.
func (s *InsertedObjectSet) DidFinishInserting(token *InsertToken) bool {
	if !s.IsCurrent(token) {
		return false
	}
	s.Remove(s.pending[token.objectID])
	return true
}

// DidFailInserting clears the in-flight mark; the object stays pending.
func (s *InsertedObjectSet) DidFailInserting(token *InsertToken) bool {
	if !s.IsCurrent(token) {
		return false
	}
	delete(s.inFlight, token.objectID)
	return true
}

// Len returns the number of pending objects.
func (s *InsertedObjectSet) Len() int {
	return len(s.pending)
}
