// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package upstream

import (
	"github.com/MKhiriev/go-sync-engine/internal/logger"
	"github.com/MKhiriev/go-sync-engine/models"
)

type options struct {
	trackedKeys     []string
	updatePredicate models.Predicate
	filter          models.Predicate
	log             *logger.Logger
}

// Option configures an upstream sync.
type Option func(*options)

// WithTrackedKeys restricts the modified sync to the given keys.
func WithTrackedKeys(keys ...string) Option {
	return func(o *options) { o.trackedKeys = keys }
}

// WithUpdatePredicate sets the predicate an object must satisfy to be pushed
// by the modified sync.
func WithUpdatePredicate(p models.Predicate) Option {
	return func(o *options) { o.updatePredicate = p }
}

// WithFilter adds an in-memory filter both syncs apply to tracked objects.
func WithFilter(p models.Predicate) Option {
	return func(o *options) { o.filter = p }
}

// WithLogger sets the logger.
func WithLogger(l *logger.Logger) Option {
	return func(o *options) { o.log = l }
}

func buildOptions(entity string, opts []Option) options {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = logger.Nop()
	}
	o.log = &logger.Logger{Logger: o.log.With().Str("entity", entity).Logger()}
	return o
}

func reportFailure(transcoder any, err *SyncError) {
	if r, ok := transcoder.(FailureReporter); ok {
		r.DidFailToSynchronize(err)
	}
}
