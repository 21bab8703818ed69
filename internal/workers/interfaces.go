// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package workers runs the daemon's long-lived background loops together.
// It defines the Worker interface and a Workers aggregate that starts every
// worker under one errgroup and stops them all when the first one fails.
package workers

import "context"

// Worker is the interface that must be implemented by any background worker.
//
// Run blocks until ctx is cancelled or the worker fails. A worker that stops
// because ctx was cancelled returns nil or ctx.Err().
//
// Example implementation:
//
//	type MyWorker struct{}
//
//	func (w *MyWorker) Run(ctx context.Context) error {
//	    <-ctx.Done()
//	    return nil
//	}
type Worker interface {
	Run(ctx context.Context) error
}

// Func adapts a plain function to Worker.
type Func func(ctx context.Context) error

// Run implements [Worker].
func (f Func) Run(ctx context.Context) error { return f(ctx) }
