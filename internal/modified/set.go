// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package modified tracks locally modified objects whose changes must be
// pushed to the server and hands out optimistic-concurrency tokens for the
// keys currently in flight.
//
// Edits that land on an object while its keys are in flight are never lost:
// when the round trip succeeds, only the keys whose value still equals the
// value captured in the token are marked clean. Everything else stays dirty
// and is picked up again by AnyObjectToSynchronize.
package modified

import (
	"fmt"
	"slices"

	"github.com/MKhiriev/go-sync-engine/internal/logger"
	"github.com/MKhiriev/go-sync-engine/models"
)

// Option configures a LocallyModifiedObjectSet.
type Option func(*LocallyModifiedObjectSet)

// WithTrackedKeys restricts the set to the given keys. Modifications of any
// other key are ignored. Without this option every key is tracked.
func WithTrackedKeys(keys ...string) Option {
	return func(s *LocallyModifiedObjectSet) {
		s.trackedKeys = models.NewKeySet(keys...)
	}
}

// WithLogger sets the logger. The default discards output.
func WithLogger(l *logger.Logger) Option {
	return func(s *LocallyModifiedObjectSet) {
		if l != nil {
			s.log = l
		}
	}
}

// LocallyModifiedObjectSet is the set of objects with unsynced local
// modifications. It is not safe for concurrent use; the owning synchronizer
// serialises access.
type LocallyModifiedObjectSet struct {
	trackedKeys models.KeySet

	order    []models.ObjectID
	statuses map[models.ObjectID]*objectStatus
	tokens   map[uint64]*objectStatus
	lastID   uint64

	log *logger.Logger
}

// NewLocallyModifiedObjectSet returns an empty set.
func NewLocallyModifiedObjectSet(opts ...Option) *LocallyModifiedObjectSet {
	s := &LocallyModifiedObjectSet{
		statuses: make(map[models.ObjectID]*objectStatus),
		tokens:   make(map[uint64]*objectStatus),
		log:      logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// TrackedKeys returns a copy of the tracked key universe, or nil when every
// key is tracked.
func (s *LocallyModifiedObjectSet) TrackedKeys() models.KeySet {
	return models.CloneKeys(s.trackedKeys)
}

// AddPossibleObjectToSynchronize starts tracking obj if it has at least one
// dirty tracked key. Objects already in the set are left untouched since
// their dirty keys are always read live.
func (s *LocallyModifiedObjectSet) AddPossibleObjectToSynchronize(obj models.Object) {
	if obj == nil {
		return
	}
	if _, ok := s.statuses[obj.ID()]; ok {
		return
	}
	st := &objectStatus{object: obj, trackedKeys: s.trackedKeys}
	if st.dirtyKeys().Cardinality() == 0 {
		return
	}
	s.statuses[obj.ID()] = st
	s.order = append(s.order, obj.ID())
}

// Contains reports whether obj is tracked.
func (s *LocallyModifiedObjectSet) Contains(obj models.Object) bool {
	if obj == nil {
		return false
	}
	_, ok := s.statuses[obj.ID()]
	return ok
}

// Remove stops tracking obj. An outstanding token of obj becomes unknown, so
// its eventual response is ignored.
func (s *LocallyModifiedObjectSet) Remove(obj models.Object) {
	if obj == nil {
		return
	}
	st, ok := s.statuses[obj.ID()]
	if !ok {
		return
	}
	if st.token != nil {
		delete(s.tokens, st.token.id)
	}
	s.drop(obj.ID())
}

// AnyObjectToSynchronize returns the first tracked object, in insertion order,
// that has no outstanding token and at least one dirty key not in flight.
// It returns nil when there is none.
func (s *LocallyModifiedObjectSet) AnyObjectToSynchronize() *ObjectWithKeys {
	candidates := s.ObjectsToSynchronize()
	if len(candidates) == 0 {
		return nil
	}
	return &candidates[0]
}

// ObjectsToSynchronize returns every candidate AnyObjectToSynchronize would
// consider, in order. Fully synchronized objects are pruned as a side effect.
func (s *LocallyModifiedObjectSet) ObjectsToSynchronize() []ObjectWithKeys {
	s.prune()

	var out []ObjectWithKeys
	for _, id := range s.order {
		st := s.statuses[id]
		if st.token != nil {
			continue
		}
		keys := st.keysToSynchronize()
		if keys.Cardinality() == 0 {
			continue
		}
		out = append(out, ObjectWithKeys{Object: st.object, Keys: keys})
	}
	return out
}

// DidStartSynchronizingKeys records that keys of obj are being sent to the
// server and returns the token that identifies the round trip. Keys that are
// not dirty are dropped; if none is left ErrNoKeysToSynchronize is returned.
func (s *LocallyModifiedObjectSet) DidStartSynchronizingKeys(keys models.KeySet, obj models.Object) (*Token, error) {
	if obj == nil {
		return nil, ErrObjectNotTracked
	}
	st, ok := s.statuses[obj.ID()]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrObjectNotTracked, obj.ID())
	}
	if st.token != nil {
		return nil, fmt.Errorf("%w: %s", ErrTokenOutstanding, st.token)
	}
	if keys == nil {
		return nil, ErrNoKeysToSynchronize
	}
	inFlight := keys.Intersect(st.keysToSynchronize())
	if inFlight.Cardinality() == 0 {
		return nil, ErrNoKeysToSynchronize
	}

	s.lastID++
	token := &Token{
		id:       s.lastID,
		objectID: obj.ID(),
		keys:     inFlight,
		snapshot: TakeSnapshot(obj, inFlight),
	}
	st.token = token
	s.tokens[token.id] = st

	s.log.Debug().
		Uint64("token", token.id).
		Str("object", string(obj.ID())).
		Strs("keys", models.SortedKeys(inFlight)).
		Msg("started synchronizing keys")
	return token, nil
}

// KeysToParseAfterSyncingToken returns the keys whose values in the response
// the transcoder may apply to the object.
func (s *LocallyModifiedObjectSet) KeysToParseAfterSyncingToken(token *Token) models.KeySet {
	if token == nil {
		return models.NewKeySet()
	}
	return token.Keys()
}

// DidSynchronizeToken resolves a successful round trip: every key of the
// token whose current value still equals the snapshotted value is marked
// clean. Keys edited while in flight stay dirty.
func (s *LocallyModifiedObjectSet) DidSynchronizeToken(token *Token) error {
	st, err := s.resolve(token)
	if err != nil {
		return err
	}

	changed := token.snapshot.ChangedKeys(st.object)
	synced := token.keys.Difference(changed)
	if synced.Cardinality() > 0 {
		st.object.ResetModifiedKeys(synced)
	}
	if changed.Cardinality() > 0 {
		s.log.Debug().
			Uint64("token", token.id).
			Strs("keys", models.SortedKeys(changed)).
			Msg("keys changed while in flight, keeping them dirty")
	}

	s.pruneOne(st)
	return nil
}

// DidFailToSynchronizeToken resolves a failed round trip. The keys stay dirty
// and the object becomes eligible again.
func (s *LocallyModifiedObjectSet) DidFailToSynchronizeToken(token *Token) error {
	st, err := s.resolve(token)
	if err != nil {
		return err
	}
	s.log.Debug().Uint64("token", token.id).Msg("failed to synchronize token")
	s.pruneOne(st)
	return nil
}

// DidNotFinishToSynchronizeToken resolves a round trip that succeeded only
// partially and must be repeated. The keys stay dirty.
func (s *LocallyModifiedObjectSet) DidNotFinishToSynchronizeToken(token *Token) error {
	st, err := s.resolve(token)
	if err != nil {
		return err
	}
	s.log.Debug().Uint64("token", token.id).Msg("synchronization of token not finished")
	s.pruneOne(st)
	return nil
}

// HasOutstandingItems reports whether any tracked object still has dirty keys
// or an outstanding token.
func (s *LocallyModifiedObjectSet) HasOutstandingItems() bool {
	for _, st := range s.statuses {
		if !st.isDone() {
			return true
		}
	}
	return false
}

// HasOutstandingToken reports whether obj has a token in flight.
func (s *LocallyModifiedObjectSet) HasOutstandingToken(obj models.Object) bool {
	if obj == nil {
		return false
	}
	st, ok := s.statuses[obj.ID()]
	return ok && st.token != nil
}

// Len returns the number of tracked objects.
func (s *LocallyModifiedObjectSet) Len() int {
	return len(s.statuses)
}

func (s *LocallyModifiedObjectSet) resolve(token *Token) (*objectStatus, error) {
	if token == nil {
		return nil, ErrUnknownToken
	}
	st, ok := s.tokens[token.id]
	if !ok || st.token != token {
		return nil, fmt.Errorf("%w: %s", ErrUnknownToken, token)
	}
	delete(s.tokens, token.id)
	st.token = nil
	return st, nil
}

func (s *LocallyModifiedObjectSet) pruneOne(st *objectStatus) {
	if st.isDone() {
		s.drop(st.object.ID())
	}
}

func (s *LocallyModifiedObjectSet) prune() {
	for _, id := range slices.Clone(s.order) {
		if st := s.statuses[id]; st.isDone() {
			s.drop(id)
		}
	}
}

func (s *LocallyModifiedObjectSet) drop(id models.ObjectID) {
	delete(s.statuses, id)
	s.order = slices.DeleteFunc(s.order, func(other models.ObjectID) bool {
		return other == id
	})
}
