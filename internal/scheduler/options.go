// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package scheduler

import (
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/MKhiriev/go-sync-engine/internal/config"
	"github.com/MKhiriev/go-sync-engine/internal/logger"
)

const (
	defaultPollInterval = time.Second
	defaultMaxInFlight  = 4
	defaultBackoffMax   = 30 * time.Second
)

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithConfig applies the scheduler section of the daemon configuration.
func WithConfig(cfg config.Scheduler) Option {
	return func(s *Scheduler) {
		if cfg.PollInterval > 0 {
			s.pollInterval = cfg.PollInterval
		}
		if cfg.MaxInFlight > 0 {
			s.maxInFlight = cfg.MaxInFlight
		}
		if cfg.BackoffMax > 0 {
			s.backoff = newExponentialBackOff(cfg.BackoffMax)
		}
	}
}

// WithPollInterval sets how often an idle loop polls the generators.
func WithPollInterval(d time.Duration) Option {
	return func(s *Scheduler) {
		if d > 0 {
			s.pollInterval = d
		}
	}
}

// WithMaxInFlight caps the number of concurrently outstanding requests.
func WithMaxInFlight(n int) Option {
	return func(s *Scheduler) {
		if n > 0 {
			s.maxInFlight = n
		}
	}
}

// WithBackOff replaces the pause policy applied after transient failures.
func WithBackOff(b backoff.BackOff) Option {
	return func(s *Scheduler) {
		if b != nil {
			s.backoff = b
		}
	}
}

// WithLogger sets the scheduler logger.
func WithLogger(l *logger.Logger) Option {
	return func(s *Scheduler) {
		s.log = logger.OrNop(l)
	}
}

func newExponentialBackOff(max time.Duration) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.MaxInterval = max
	b.MaxElapsedTime = 0
	if b.InitialInterval > max {
		b.InitialInterval = max
	}
	b.Reset()
	return b
}
