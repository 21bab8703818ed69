// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package upstream

import (
	"errors"

	"github.com/MKhiriev/go-sync-engine/internal/modified"
	"github.com/MKhiriev/go-sync-engine/models"
)

// ModifiedObjectSync pushes local edits of objects that already exist on the
// server. It drives a modified.LocallyModifiedObjectSet and never has more
// than one request in flight per object.
type ModifiedObjectSync struct {
	entity     string
	transcoder UpdateTranscoder
	set        *modified.LocallyModifiedObjectSet
	opts       options
}

// NewModifiedObjectSync returns a sync for objects of entity.
func NewModifiedObjectSync(entity string, transcoder UpdateTranscoder, opts ...Option) *ModifiedObjectSync {
	o := buildOptions(entity, opts)
	setOpts := []modified.Option{modified.WithLogger(o.log)}
	if o.trackedKeys != nil {
		setOpts = append(setOpts, modified.WithTrackedKeys(o.trackedKeys...))
	}
	return &ModifiedObjectSync{
		entity:     entity,
		transcoder: transcoder,
		set:        modified.NewLocallyModifiedObjectSet(setOpts...),
		opts:       o,
	}
}

// Entity returns the synced entity name.
func (s *ModifiedObjectSync) Entity() string { return s.entity }

// NextRequest returns the next update request, or nil if there is nothing to
// push.
func (s *ModifiedObjectSync) NextRequest() *models.Request {
	for _, cand := range s.set.ObjectsToSynchronize() {
		req := s.transcoder.RequestForUpdating(cand.Object, cand.Keys.Clone())
		if req == nil || req.Transport == nil {
			continue
		}

		keys := cand.Keys
		if req.Keys != nil {
			keys = req.Keys.Intersect(cand.Keys)
		}
		token, err := s.set.DidStartSynchronizingKeys(keys, cand.Object)
		if err != nil {
			s.opts.log.Warn().Err(err).
				Str("object_id", string(cand.Object.ID())).
				Msg("transcoder built an update request without usable keys")
			continue
		}
		req.Keys = token.Keys()

		obj := cand.Object
		req.Transport.AddCompletionHandler(func(resp *models.Response) {
			s.didReceiveResponse(obj, token, req, resp)
		})
		return req.Transport
	}
	return nil
}

func (s *ModifiedObjectSync) didReceiveResponse(obj models.Object, token *modified.Token, req *Request, resp *models.Response) {
	req.Response = resp
	result := resp.Result()
	log := s.opts.log.With().
		Str("object_id", string(obj.ID())).
		Stringer("token", token).
		Str("result", result.String()).
		Logger()

	var err error
	switch result {
	case models.ResultSuccess:
		keysToParse := s.set.KeysToParseAfterSyncingToken(token)
		if s.transcoder.UpdateUpdatedObject(obj, req, resp, keysToParse) {
			err = s.set.DidNotFinishToSynchronizeToken(token)
		} else {
			err = s.set.DidSynchronizeToken(token)
		}
	case models.ResultPermanentError:
		if s.transcoder.ShouldRetryAfterFailedUpdate(obj, req, resp, token.Keys()) {
			err = s.set.DidNotFinishToSynchronizeToken(token)
			break
		}
		err = s.set.DidFailToSynchronizeToken(token)
		syncErr := newSyncError(s.entity, obj, token.Keys(), resp)
		log.Warn().Err(syncErr).Msg("update failed permanently")
		reportFailure(s.transcoder, syncErr)
	default:
		err = s.set.DidFailToSynchronizeToken(token)
	}

	if errors.Is(err, modified.ErrUnknownToken) {
		log.Debug().Msg("ignoring response for stale token")
		return
	}
	s.dropIfIneligible(obj)
}

// dropIfIneligible removes obj once it has no request in flight and can no
// longer be pushed: deleted, purged, flagged or filtered out meanwhile.
func (s *ModifiedObjectSync) dropIfIneligible(obj models.Object) {
	if s.isEligible(obj) || s.set.HasOutstandingToken(obj) {
		return
	}
	s.set.Remove(obj)
}

// ObjectsDidChange implements changes.Tracker.
func (s *ModifiedObjectSync) ObjectsDidChange(objects []models.Object) {
	for _, obj := range objects {
		if obj == nil || obj.Entity() != s.entity {
			continue
		}
		if !s.isEligible(obj) {
			s.dropIfIneligible(obj)
			continue
		}
		s.set.AddPossibleObjectToSynchronize(obj)
	}
}

// FetchRequestForTrackedObjects implements changes.Tracker.
func (s *ModifiedObjectSync) FetchRequestForTrackedObjects() *models.FetchRequest {
	return &models.FetchRequest{
		Entity:       s.entity,
		RemoteID:     models.WithRemoteID,
		ModifiedOnly: true,
		Predicate:    s.opts.updatePredicate.And(s.opts.filter),
	}
}

// AddTrackedObjects implements changes.Tracker.
func (s *ModifiedObjectSync) AddTrackedObjects(objects []models.Object) {
	s.ObjectsDidChange(objects)
}

// HasOutstandingItems reports whether any tracked object has unsynced keys.
func (s *ModifiedObjectSync) HasOutstandingItems() bool {
	return s.set.HasOutstandingItems()
}

func (s *ModifiedObjectSync) isEligible(obj models.Object) bool {
	return obj.RemoteID() != "" &&
		!obj.IsDeleted() &&
		s.opts.updatePredicate.Match(obj) &&
		s.opts.filter.Match(obj)
}
