// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package downstream pulls objects whose local copy is stale from the server.
package downstream

import (
	"github.com/MKhiriev/go-sync-engine/internal/logger"
	"github.com/MKhiriev/go-sync-engine/internal/opset"
	"github.com/MKhiriev/go-sync-engine/models"
)

// Option configures an ObjectSync.
type Option func(*ObjectSync)

// WithPredicate replaces the download predicate. The default matches objects
// flagged models.FlagNeedsUpdateFromBackend.
func WithPredicate(p models.Predicate) Option {
	return func(s *ObjectSync) {
		s.predicate = p
		s.flags = nil
	}
}

// WithFilter narrows the download predicate.
func WithFilter(p models.Predicate) Option {
	return func(s *ObjectSync) { s.filter = s.filter.And(p) }
}

// WithSortOrder sets the download priority.
func WithSortOrder(less models.Less) Option {
	return func(s *ObjectSync) { s.ops.SetSortOrder(less) }
}

// WithExclusion skips objects claimed by another operation set.
func WithExclusion(e opset.Exclusion) Option {
	return func(s *ObjectSync) { s.exclude = e }
}

// WithFetchedKeys declares which keys a full fetch overwrites. Local edits to
// those keys made while the fetch is in flight are preserved. Without it the
// transcoder may overwrite any key.
func WithFetchedKeys(keys ...string) Option {
	return func(s *ObjectSync) { s.fetchedKeys = models.NewKeySet(keys...) }
}

// WithLogger sets the logger.
func WithLogger(l *logger.Logger) Option {
	return func(s *ObjectSync) {
		if l != nil {
			s.log = l
		}
	}
}

// withCompletion registers a hook run after every applied response.
func withCompletion(fn func(obj models.Object, result models.Result)) Option {
	return func(s *ObjectSync) { s.onComplete = fn }
}

// ObjectSync downloads objects of one entity matching its predicate, one
// request per object at a time, in the configured priority order.
type ObjectSync struct {
	entity      string
	transcoder  Transcoder
	predicate   models.Predicate
	flags       []string
	filter      models.Predicate
	ops         *opset.OperationSet
	exclude     opset.Exclusion
	fetchedKeys models.KeySet
	onComplete  func(models.Object, models.Result)
	log         *logger.Logger
}

// NewObjectSync returns a downstream sync for entity.
func NewObjectSync(entity string, transcoder Transcoder, opts ...Option) *ObjectSync {
	s := &ObjectSync{
		entity:     entity,
		transcoder: transcoder,
		predicate:  models.HasFlag(models.FlagNeedsUpdateFromBackend),
		flags:      []string{models.FlagNeedsUpdateFromBackend},
		ops:        opset.New(nil),
		log:        logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = &logger.Logger{Logger: s.log.With().Str("entity", entity).Logger()}
	return s
}

// Entity returns the synced entity name.
func (s *ObjectSync) Entity() string { return s.entity }

// NextRequest returns a fetch request for the highest-priority pending
// object, or nil.
func (s *ObjectSync) NextRequest() *models.Request {
	for _, cand := range s.ops.Candidates(s.exclude) {
		req := s.transcoder.RequestForFetchingObject(cand.Object, cand.RemainingKeys, s)
		if req == nil {
			continue
		}

		keys := cand.RemainingKeys
		if keys == nil {
			keys = models.CloneKeys(s.fetchedKeys)
		}
		token := s.ops.DidStartSynchronizingKeys(keys, cand.Object)
		if token == nil {
			continue
		}

		obj := cand.Object
		req.AddCompletionHandler(func(resp *models.Response) {
			s.didReceiveResponse(obj, token, resp)
		})
		return req
	}
	return nil
}

func (s *ObjectSync) didReceiveResponse(obj models.Object, token *opset.Token, resp *models.Response) {
	if !s.ops.IsCurrent(token) {
		s.log.Debug().Str("object_id", string(obj.ID())).Msg("ignoring stale fetch response")
		return
	}

	result := resp.Result()
	switch result {
	case models.ResultSuccess:
		keys := s.ops.KeysForWhichToApplyResultsAfterFinishedSynchronizing(token, obj, result)
		s.ops.RemoveUpdatedObject(token)
		s.transcoder.UpdateObject(obj, resp, keys, s)
	case models.ResultPermanentError:
		s.log.Debug().
			Str("object_id", string(obj.ID())).
			Int("status_code", resp.StatusCode).
			Msg("object is gone on the server")
		s.ops.RemoveObject(obj)
		s.transcoder.DeleteObject(obj, resp, s)
	default:
		s.ops.Release(token)
		return
	}

	if s.onComplete != nil {
		s.onComplete(obj, result)
	}
}

// SetExclusion replaces the set of sibling claims to skip.
func (s *ObjectSync) SetExclusion(e opset.Exclusion) {
	s.exclude = e
}

// SetRemainingKeys records keys still to be fetched for obj. The object stays
// pending until they are empty.
func (s *ObjectSync) SetRemainingKeys(keys models.KeySet, obj models.Object) {
	s.ops.SetRemainingKeys(keys, obj)
}

// IsClaimed reports whether a fetch of obj is in flight. It implements
// opset.Exclusion.
func (s *ObjectSync) IsClaimed(obj models.Object) bool {
	return s.ops.IsClaimed(obj)
}

// Contains reports whether obj is pending download.
func (s *ObjectSync) Contains(obj models.Object) bool {
	return s.ops.Contains(obj)
}

// ObjectsDidChange implements changes.Tracker.
func (s *ObjectSync) ObjectsDidChange(objects []models.Object) {
	for _, obj := range objects {
		if obj == nil || obj.Entity() != s.entity {
			continue
		}
		switch {
		case obj.IsDeleted():
			s.ops.RemoveObject(obj)
		case s.matches(obj):
			s.ops.AddObjectToBeSynchronized(obj)
		case !s.ops.IsClaimed(obj) && models.IsEmptyKeys(s.ops.RemainingKeys(obj)):
			s.ops.RemoveObject(obj)
		}
	}
}

// FetchRequestForTrackedObjects implements changes.Tracker.
func (s *ObjectSync) FetchRequestForTrackedObjects() *models.FetchRequest {
	return &models.FetchRequest{
		Entity:    s.entity,
		Flags:     s.flags,
		Predicate: s.predicate.And(s.filter),
	}
}

// AddTrackedObjects implements changes.Tracker.
func (s *ObjectSync) AddTrackedObjects(objects []models.Object) {
	s.ObjectsDidChange(objects)
}

// HasOutstandingItems reports whether any object is pending download.
func (s *ObjectSync) HasOutstandingItems() bool {
	return s.ops.Len() > 0
}

func (s *ObjectSync) matches(obj models.Object) bool {
	return s.predicate.Match(obj) && s.filter.Match(obj)
}
