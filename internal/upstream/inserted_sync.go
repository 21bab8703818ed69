// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package upstream

import (
	"github.com/MKhiriev/go-sync-engine/models"
)

// InsertedObjectSync creates objects that have no remote identity yet. It
// sends at most one creation request per object at a time.
type InsertedObjectSync struct {
	entity     string
	transcoder InsertTranscoder
	set        *InsertedObjectSet
	opts       options
}

// NewInsertedObjectSync returns a sync for new objects of entity.
func NewInsertedObjectSync(entity string, transcoder InsertTranscoder, opts ...Option) *InsertedObjectSync {
	return &InsertedObjectSync{
		entity:     entity,
		transcoder: transcoder,
		set:        NewInsertedObjectSet(),
		opts:       buildOptions(entity, opts),
	}
}

// Entity returns the synced entity name.
func (s *InsertedObjectSync) Entity() string { return s.entity }

// NextRequest returns the next creation request, or nil.
func (s *InsertedObjectSync) NextRequest() *models.Request {
	for _, obj := range s.set.Candidates() {
		keys := obj.ModifiedKeys()
		if keys == nil {
			keys = models.NewKeySet()
		}
		req := s.transcoder.RequestForInserting(obj, keys.Clone())
		if req == nil || req.Transport == nil {
			continue
		}
		if req.Keys != nil {
			keys = req.Keys.Intersect(keys)
		}
		req.Keys = keys

		token := s.set.DidStartInserting(obj, keys)
		if token == nil {
			continue
		}
		req.Transport.AddCompletionHandler(func(resp *models.Response) {
			s.didReceiveResponse(obj, token, req, resp)
		})
		return req.Transport
	}
	return nil
}

func (s *InsertedObjectSync) didReceiveResponse(obj models.Object, token *InsertToken, req *Request, resp *models.Response) {
	req.Response = resp
	if !s.set.IsCurrent(token) {
		s.opts.log.Debug().Str("object_id", string(obj.ID())).Msg("ignoring stale insert response")
		return
	}

	switch resp.Result() {
	case models.ResultSuccess:
		s.transcoder.UpdateInsertedObject(obj, req, resp)
		if synced := token.snapshot.UnchangedKeys(obj); synced.Cardinality() > 0 {
			obj.ResetModifiedKeys(synced)
		}
		s.set.DidFinishInserting(token)
	case models.ResultPermanentError:
		if s.transcoder.ShouldRetryAfterFailedInsert(obj, req, resp) {
			s.set.DidFailInserting(token)
			s.dropIfIneligible(obj)
			return
		}
		s.set.Remove(obj)
		syncErr := newSyncError(s.entity, obj, token.Keys(), resp)
		s.opts.log.Warn().Err(syncErr).Msg("insert failed permanently, dropping object")
		reportFailure(s.transcoder, syncErr)
	default:
		s.set.DidFailInserting(token)
		s.dropIfIneligible(obj)
	}
}

// dropIfIneligible removes obj from the pending set when it was created,
// deleted or filtered out while its request was in flight.
func (s *InsertedObjectSync) dropIfIneligible(obj models.Object) {
	if s.isEligible(obj) || s.set.IsInFlight(obj) {
		return
	}
	s.set.Remove(obj)
}

func (s *InsertedObjectSync) isEligible(obj models.Object) bool {
	return obj.RemoteID() == "" && !obj.IsDeleted() && s.opts.filter.Match(obj)
}

// ObjectsDidChange implements changes.Tracker.
func (s *InsertedObjectSync) ObjectsDidChange(objects []models.Object) {
	for _, obj := range objects {
		if obj == nil || obj.Entity() != s.entity {
			continue
		}
		if !s.isEligible(obj) {
			s.dropIfIneligible(obj)
			continue
		}
		s.set.Add(obj)
	}
}

// FetchRequestForTrackedObjects implements changes.Tracker.
func (s *InsertedObjectSync) FetchRequestForTrackedObjects() *models.FetchRequest {
	return &models.FetchRequest{
		Entity:    s.entity,
		RemoteID:  models.WithoutRemoteID,
		Predicate: s.opts.filter,
	}
}

// AddTrackedObjects implements changes.Tracker.
func (s *InsertedObjectSync) AddTrackedObjects(objects []models.Object) {
	s.ObjectsDidChange(objects)
}

// HasOutstandingItems reports whether any object is waiting to be created.
func (s *InsertedObjectSync) HasOutstandingItems() bool {
	return s.set.Len() > 0
}
