// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package scheduler owns the engine's single execution context.
//
// One loop goroutine polls the request generators in priority order, hands
// requests to the transport, receives every completion back on the loop and
// fans local store changes out to the trackers. Synchronizer state is only
// ever touched from that goroutine; transport round trips run concurrently.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/MKhiriev/go-sync-engine/internal/adapter"
	"github.com/MKhiriev/go-sync-engine/internal/changes"
	"github.com/MKhiriev/go-sync-engine/internal/generator"
	"github.com/MKhiriev/go-sync-engine/internal/logger"
	"github.com/MKhiriev/go-sync-engine/models"
)

type completion struct {
	req  *models.Request
	resp *models.Response
}

// Scheduler drives a set of synchronizers against one transport and one store.
type Scheduler struct {
	generators generator.List
	trackers   changes.Trackers
	transport  adapter.Transport
	store      ObjectStore

	pollInterval time.Duration
	maxInFlight  int
	backoff      backoff.BackOff
	log          *logger.Logger

	wake        chan struct{}
	completions chan completion

	// loop-owned
	inFlight    int
	pausedUntil time.Time
}

// New builds a scheduler. generators are polled in order, so earlier entries
// have priority; trackers receive every store change event.
func New(transport adapter.Transport, store ObjectStore, generators generator.List, trackers changes.Trackers, opts ...Option) *Scheduler {
	s := &Scheduler{
		generators:   generators,
		trackers:     trackers,
		transport:    transport,
		store:        store,
		pollInterval: defaultPollInterval,
		maxInFlight:  defaultMaxInFlight,
		backoff:      newExponentialBackOff(defaultBackoffMax),
		log:          logger.Nop(),
		wake:         make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.completions = make(chan completion, s.maxInFlight)

	return s
}

// Notify wakes the loop so that it polls the generators before the next
// poll interval elapses. It never blocks and is safe from any goroutine.
func (s *Scheduler) Notify() {
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// Bootstrap seeds every tracker with the result of its fetch request.
func (s *Scheduler) Bootstrap(ctx context.Context) error {
	for _, tr := range s.trackers {
		fr := tr.FetchRequestForTrackedObjects()
		if fr == nil {
			continue
		}
		objects, err := s.store.Fetch(ctx, fr)
		if err != nil {
			return fmt.Errorf("bootstrap %s tracker: %w", fr.Entity, err)
		}
		tr.AddTrackedObjects(objects)
		s.log.Debug().Str("entity", fr.Entity).Int("objects", len(objects)).Msg("tracker bootstrapped")
	}
	return nil
}

// Run bootstraps the trackers and then runs the loop until ctx is cancelled.
// Requests still in flight at that point are abandoned and never completed.
func (s *Scheduler) Run(ctx context.Context) error {
	if err := s.Bootstrap(ctx); err != nil {
		return err
	}

	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	s.log.Info().
		Dur("poll_interval", s.pollInterval).
		Int("max_in_flight", s.maxInFlight).
		Msg("scheduler started")

	for {
		s.tick(ctx)

		var resume <-chan time.Time
		if wait := time.Until(s.pausedUntil); wait > 0 {
			resume = time.After(wait)
		}

		select {
		case <-ctx.Done():
			s.log.Info().Int("in_flight", s.inFlight).Msg("scheduler stopped")
			return nil
		case <-ticker.C:
		case <-s.wake:
		case <-resume:
		case c := <-s.completions:
			s.complete(c)
		}
	}
}

func (s *Scheduler) tick(ctx context.Context) {
	s.trackers.ObjectsDidChange(s.store.ProcessPendingChanges())

	if s.paused() {
		return
	}
	for s.inFlight < s.maxInFlight {
		req := s.generators.NextRequest()
		if req == nil {
			return
		}
		s.dispatch(ctx, req)
	}
}

func (s *Scheduler) paused() bool {
	return !s.pausedUntil.IsZero() && time.Now().Before(s.pausedUntil)
}

func (s *Scheduler) dispatch(ctx context.Context, req *models.Request) {
	s.inFlight++
	s.log.Debug().
		Str("request_id", req.ID).
		Str("method", req.Method).
		Str("path", req.Path).
		Int("in_flight", s.inFlight).
		Msg("dispatching request")

	go func() {
		resp := s.transport.Do(ctx, req)
		if resp == nil {
			resp = &models.Response{Err: models.ErrRequestExpired}
		}
		select {
		case s.completions <- completion{req: req, resp: resp}:
		case <-ctx.Done():
		}
	}()
}

func (s *Scheduler) complete(c completion) {
	s.inFlight--

	switch result := c.resp.Result(); result {
	case models.ResultSuccess:
		s.backoff.Reset()
		s.pausedUntil = time.Time{}
	case models.ResultTemporaryError:
		if d := s.backoff.NextBackOff(); d > 0 {
			s.pausedUntil = time.Now().Add(d)
			s.log.Warn().
				Err(c.resp.Err).
				Str("request_id", c.req.ID).
				Int("status_code", c.resp.StatusCode).
				Dur("pause", d).
				Msg("transient failure, pausing dispatch")
		}
	}

	c.req.Complete(c.resp)
}
