// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package single implements the "one outstanding request" state machine and
// its periodically re-armed variant.
package single

import (
	"sync"

	"github.com/MKhiriev/go-sync-engine/internal/logger"
	"github.com/MKhiriev/go-sync-engine/models"
)

// Option configures a RequestSync.
type Option func(*RequestSync)

// WithLogger sets the logger.
func WithLogger(l *logger.Logger) Option {
	return func(s *RequestSync) {
		if l != nil {
			s.log = l
		}
	}
}

// WithOnReady registers a hook called whenever the sync becomes ready to
// produce a request. The scheduler uses it to wake up early.
func WithOnReady(fn func()) Option {
	return func(s *RequestSync) { s.onReady = fn }
}

// RequestSync tracks the lifecycle of a single request:
// idle -> ready -> in progress -> completed -> idle.
//
// It is safe for concurrent use; the transcoder is always called without the
// internal lock held.
type RequestSync struct {
	transcoder Transcoder

	mu         sync.Mutex
	status     Status
	generation uint64

	onReady func()
	log     *logger.Logger
}

// New returns an idle RequestSync.
func New(transcoder Transcoder, opts ...Option) *RequestSync {
	s := &RequestSync{
		transcoder: transcoder,
		log:        logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Status returns the current state.
func (s *RequestSync) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// ReadyForNextRequest moves to ready unconditionally. A response for a
// request already in flight will be ignored.
func (s *RequestSync) ReadyForNextRequest() {
	s.mu.Lock()
	s.generation++
	s.status = StatusReady
	s.mu.Unlock()
	s.notifyReady()
}

// ReadyForNextRequestIfNotBusy moves to ready only from idle or completed.
func (s *RequestSync) ReadyForNextRequestIfNotBusy() {
	s.mu.Lock()
	if s.status != StatusIdle && s.status != StatusCompleted {
		s.mu.Unlock()
		return
	}
	s.generation++
	s.status = StatusReady
	s.mu.Unlock()
	s.notifyReady()
}

// ResetCompletionState moves from completed back to idle.
func (s *RequestSync) ResetCompletionState() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status == StatusCompleted {
		s.status = StatusIdle
	}
}

// NextRequest returns a request when ready and moves to in progress.
func (s *RequestSync) NextRequest() *models.Request {
	s.mu.Lock()
	if s.status != StatusReady {
		s.mu.Unlock()
		return nil
	}
	generation := s.generation
	s.mu.Unlock()

	req := s.transcoder.RequestForSingleRequestSync(s)
	if req == nil {
		return nil
	}

	s.mu.Lock()
	if s.status != StatusReady || s.generation != generation {
		s.mu.Unlock()
		return nil
	}
	s.status = StatusInProgress
	s.mu.Unlock()

	req.AddCompletionHandler(func(resp *models.Response) {
		s.didReceiveResponse(generation, resp)
	})
	return req
}

func (s *RequestSync) didReceiveResponse(generation uint64, resp *models.Response) {
	s.mu.Lock()
	if s.generation != generation || s.status != StatusInProgress {
		s.mu.Unlock()
		s.log.Debug().Msg("ignoring response of a superseded request")
		return
	}
	if resp.Result().IsTransient() {
		s.status = StatusReady
		s.mu.Unlock()
		s.notifyReady()
		return
	}
	s.status = StatusCompleted
	s.mu.Unlock()

	s.transcoder.DidReceiveResponse(resp, s)
}

func (s *RequestSync) notifyReady() {
	if s.onReady != nil {
		s.onReady()
	}
}
