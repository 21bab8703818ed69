// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/go-sync-engine/internal/logger"
)

type named struct {
	name   string
	worker Worker
}

// Workers is a set of named workers run concurrently.
type Workers struct {
	workers []named
	logger  *logger.Logger
}

// NewWorkers returns an empty set that logs through l.
func NewWorkers(l *logger.Logger) *Workers {
	return &Workers{logger: logger.OrNop(l)}
}

// Add registers w under name. Workers added after Run has started are ignored.
func (w *Workers) Add(name string, worker Worker) *Workers {
	w.workers = append(w.workers, named{name: name, worker: worker})
	return w
}

// Len reports the number of registered workers.
func (w *Workers) Len() int {
	return len(w.workers)
}

// Run starts every worker and blocks until all of them have returned. The
// first non-cancellation error cancels the others and is returned.
func (w *Workers) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	for _, n := range w.workers {
		g.Go(func() error {
			w.logger.Info().Str("worker", n.name).Msg("worker started")
			err := n.worker.Run(gctx)
			if err != nil && !errors.Is(err, context.Canceled) {
				w.logger.Error().Err(err).Str("worker", n.name).Msg("worker failed")
				return fmt.Errorf("worker %s: %w", n.name, err)
			}
			w.logger.Info().Str("worker", n.name).Msg("worker stopped")
			return nil
		})
	}

	return g.Wait()
}
