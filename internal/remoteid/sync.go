// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package remoteid downloads objects known only by their remote identifier,
// in batches bounded by the server's limit.
package remoteid

import (
	"slices"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/MKhiriev/go-sync-engine/internal/logger"
	"github.com/MKhiriev/go-sync-engine/models"
)

// Option configures an ObjectSync.
type Option func(*ObjectSync)

// WithLogger sets the logger.
func WithLogger(l *logger.Logger) Option {
	return func(s *ObjectSync) {
		if l != nil {
			s.log = l
		}
	}
}

// ObjectSync keeps two disjoint sets of remote identifiers: those needing
// download and those being downloaded. It is not safe for concurrent use.
type ObjectSync struct {
	transcoder  Transcoder
	pending     mapset.Set[string]
	downloading mapset.Set[string]
	log         *logger.Logger
}

// NewObjectSync returns an empty sync.
func NewObjectSync(transcoder Transcoder, opts ...Option) *ObjectSync {
	s := &ObjectSync{
		transcoder:  transcoder,
		pending:     mapset.NewThreadUnsafeSet[string](),
		downloading: mapset.NewThreadUnsafeSet[string](),
		log:         logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetRemoteIdentifiersAsNeedingDownload replaces the identifiers needing
// download. Identifiers already being downloaded stay in flight and are not
// added to the pending set.
func (s *ObjectSync) SetRemoteIdentifiersAsNeedingDownload(ids []string) {
	s.pending = s.withoutInFlight(ids)
}

// AddRemoteIdentifiersThatNeedDownload adds ids to the pending set.
func (s *ObjectSync) AddRemoteIdentifiersThatNeedDownload(ids []string) {
	s.pending = s.pending.Union(s.withoutInFlight(ids))
}

// RemoteIdentifiersThatWillBeDownloaded returns every pending or in-flight
// identifier in lexical order.
func (s *ObjectSync) RemoteIdentifiersThatWillBeDownloaded() []string {
	out := s.pending.Union(s.downloading).ToSlice()
	slices.Sort(out)
	return out
}

// IsDone reports whether nothing is pending or in flight.
func (s *ObjectSync) IsDone() bool {
	return s.pending.Cardinality() == 0 && s.downloading.Cardinality() == 0
}

// NextRequest returns a request for the next batch, or nil.
func (s *ObjectSync) NextRequest() *models.Request {
	if s.pending.Cardinality() == 0 {
		return nil
	}
	limit := s.transcoder.MaximumRemoteIdentifiersPerRequest()
	if limit <= 0 {
		return nil
	}

	batch := s.pending.ToSlice()
	slices.Sort(batch)
	if len(batch) > limit {
		batch = batch[:limit]
	}

	req := s.transcoder.RequestForObjectsWithIdentifiers(slices.Clone(batch), s)
	if req == nil {
		return nil
	}

	s.pending.RemoveAll(batch...)
	s.downloading.Append(batch...)
	req.AddCompletionHandler(func(resp *models.Response) {
		s.didReceiveResponse(batch, resp)
	})
	return req
}

func (s *ObjectSync) didReceiveResponse(batch []string, resp *models.Response) {
	s.downloading.RemoveAll(batch...)

	if resp.Result().IsTransient() {
		s.log.Debug().Strs("ids", batch).Msg("batch failed transiently, retrying later")
		s.pending.Append(batch...)
		return
	}
	s.transcoder.DidReceiveResponseForObjectsWithIdentifiers(resp, slices.Clone(batch), s)
}

func (s *ObjectSync) withoutInFlight(ids []string) mapset.Set[string] {
	set := mapset.NewThreadUnsafeSet(ids...)
	return set.Difference(s.downloading)
}
