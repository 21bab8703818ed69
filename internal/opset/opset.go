// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package opset implements the ordered pending-work set backing downstream
// synchronization.
//
// An object in the set is either free or claimed by exactly one in-flight
// fetch. Claims are the single source of truth for "is this object being
// fetched": sibling sets consult each other's claims through Exclusion.
package opset

import (
	"slices"

	"github.com/MKhiriev/go-sync-engine/internal/modified"
	"github.com/MKhiriev/go-sync-engine/models"
)

// Exclusion reports objects claimed by another operation set.
type Exclusion interface {
	IsClaimed(obj models.Object) bool
}

// Token records one claim: which keys were requested and their values at
// the time the fetch started.
type Token struct {
	id       uint64
	objectID models.ObjectID
	keys     models.KeySet
	snapshot modified.Snapshot
}

// ID returns the token identifier.
func (t *Token) ID() uint64 { return t.id }

// ObjectID returns the claimed object identity.
func (t *Token) ObjectID() models.ObjectID { return t.objectID }

// Keys returns the requested keys, or nil if the fetch was unrestricted.
func (t *Token) Keys() models.KeySet { return models.CloneKeys(t.keys) }

// Candidate is an object eligible for the next fetch together with the
// remaining keys recorded for it, nil meaning "all keys".
type Candidate struct {
	Object        models.Object
	RemainingKeys models.KeySet
}

type item struct {
	object    models.Object
	remaining models.KeySet
	token     *Token
}

// OperationSet is an ordered set of objects pending download. It is not safe
// for concurrent use.
type OperationSet struct {
	less   models.Less
	order  []models.ObjectID
	items  map[models.ObjectID]*item
	lastID uint64
}

// New returns an empty set ordered by less. A nil less keeps insertion order.
func New(less models.Less) *OperationSet {
	return &OperationSet{
		less:  less,
		items: make(map[models.ObjectID]*item),
	}
}

// SetSortOrder replaces the priority order.
func (s *OperationSet) SetSortOrder(less models.Less) {
	s.less = less
}

// AddObjectToBeSynchronized appends obj unless it is already present.
func (s *OperationSet) AddObjectToBeSynchronized(obj models.Object) {
	if obj == nil {
		return
	}
	if _, ok := s.items[obj.ID()]; ok {
		return
	}
	s.items[obj.ID()] = &item{object: obj}
	s.order = append(s.order, obj.ID())
}

// RemoveObject drops obj and its claim. A response for the dropped claim is
// treated as stale.
func (s *OperationSet) RemoveObject(obj models.Object) {
	if obj == nil {
		return
	}
	s.remove(obj.ID())
}

// Contains reports whether obj is in the set.
func (s *OperationSet) Contains(obj models.Object) bool {
	if obj == nil {
		return false
	}
	_, ok := s.items[obj.ID()]
	return ok
}

// IsClaimed reports whether obj has a fetch in flight. It implements
// Exclusion.
func (s *OperationSet) IsClaimed(obj models.Object) bool {
	if obj == nil {
		return false
	}
	it, ok := s.items[obj.ID()]
	return ok && it.token != nil
}

// Len returns the number of objects in the set, claimed or not.
func (s *OperationSet) Len() int {
	return len(s.items)
}

// SetRemainingKeys records the keys still to be fetched for obj in a later
// request. An empty set removes the annotation. The object is added if
// missing and keys is not empty.
func (s *OperationSet) SetRemainingKeys(keys models.KeySet, obj models.Object) {
	if obj == nil {
		return
	}
	it, ok := s.items[obj.ID()]
	if models.IsEmptyKeys(keys) {
		if ok {
			it.remaining = nil
		}
		return
	}
	if !ok {
		s.AddObjectToBeSynchronized(obj)
		it = s.items[obj.ID()]
	}
	it.remaining = keys.Clone()
}

// RemainingKeys returns the recorded remaining keys of obj, or nil.
func (s *OperationSet) RemainingKeys(obj models.Object) models.KeySet {
	if obj == nil {
		return nil
	}
	if it, ok := s.items[obj.ID()]; ok {
		return models.CloneKeys(it.remaining)
	}
	return nil
}

// Candidates returns the unclaimed objects in priority order, skipping those
// claimed by exclude. Objects that compare equal keep insertion order.
func (s *OperationSet) Candidates(exclude Exclusion) []Candidate {
	out := make([]Candidate, 0, len(s.order))
	for _, id := range s.order {
		it := s.items[id]
		if it.token != nil {
			continue
		}
		if exclude != nil && exclude.IsClaimed(it.object) {
			continue
		}
		out = append(out, Candidate{Object: it.object, RemainingKeys: models.CloneKeys(it.remaining)})
	}
	if s.less != nil {
		slices.SortStableFunc(out, func(a, b Candidate) int {
			switch {
			case s.less(a.Object, b.Object):
				return -1
			case s.less(b.Object, a.Object):
				return 1
			default:
				return 0
			}
		})
	}
	return out
}

// NextObjectToSynchronize returns the highest-priority unclaimed object, or
// nil.
func (s *OperationSet) NextObjectToSynchronize() models.Object {
	obj, _ := s.NextObjectToSynchronizeWithRemainingKeys(nil)
	return obj
}

// NextObjectToSynchronizeWithRemainingKeys returns the highest-priority
// unclaimed object not claimed by exclude, together with its remaining keys.
func (s *OperationSet) NextObjectToSynchronizeWithRemainingKeys(exclude Exclusion) (models.Object, models.KeySet) {
	candidates := s.Candidates(exclude)
	if len(candidates) == 0 {
		return nil, nil
	}
	return candidates[0].Object, candidates[0].RemainingKeys
}

// DidStartSynchronizingKeys claims obj and snapshots keys. A nil keys claims
// the object for an unrestricted fetch. It returns nil if obj is not in the
// set or already claimed.
func (s *OperationSet) DidStartSynchronizingKeys(keys models.KeySet, obj models.Object) *Token {
	if obj == nil {
		return nil
	}
	it, ok := s.items[obj.ID()]
	if !ok || it.token != nil {
		return nil
	}
	s.lastID++
	it.token = &Token{
		id:       s.lastID,
		objectID: obj.ID(),
		keys:     models.CloneKeys(keys),
		snapshot: modified.TakeSnapshot(obj, keys),
	}
	return it.token
}

// IsCurrent reports whether token still holds the claim it was issued for.
func (s *OperationSet) IsCurrent(token *Token) bool {
	if token == nil {
		return false
	}
	it, ok := s.items[token.objectID]
	return ok && it.token == token
}

// KeysForWhichToApplyResultsAfterFinishedSynchronizing returns the requested
// keys whose local value did not change while the fetch was in flight. It
// returns an empty set for stale tokens and non-successful results, and nil
// for a current unrestricted token.
func (s *OperationSet) KeysForWhichToApplyResultsAfterFinishedSynchronizing(token *Token, obj models.Object, result models.Result) models.KeySet {
	if result != models.ResultSuccess || !s.IsCurrent(token) || obj == nil || obj.ID() != token.objectID {
		return models.NewKeySet()
	}
	if token.keys == nil {
		return nil
	}
	return token.snapshot.UnchangedKeys(obj)
}

// RemoveUpdatedObject releases the claim of token after a successful fetch.
// The fetched keys are subtracted from the remaining keys; the object leaves
// the set once none remain. It reports whether token was current.
func (s *OperationSet) RemoveUpdatedObject(token *Token) bool {
	if !s.IsCurrent(token) {
		return false
	}
	it := s.items[token.objectID]
	it.token = nil
	if it.remaining != nil && token.keys != nil {
		it.remaining = it.remaining.Difference(token.keys)
	} else {
		it.remaining = nil
	}
	if models.IsEmptyKeys(it.remaining) {
		s.remove(token.objectID)
	}
	return true
}

// Release drops the claim of token and keeps the object pending. It reports
// whether token was current.
func (s *OperationSet) Release(token *Token) bool {
	if !s.IsCurrent(token) {
		return false
	}
	s.items[token.objectID].token = nil
	return true
}

func (s *OperationSet) remove(id models.ObjectID) {
	if _, ok := s.items[id]; !ok {
		return
	}
	delete(s.items, id)
	s.order = slices.DeleteFunc(s.order, func(other models.ObjectID) bool {
		return other == id
	})
}
