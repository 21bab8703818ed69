// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package single

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-sync-engine/models"
)

// TimedRequestSync is a RequestSync re-armed to ready every interval. The
// timer runs between Start and Stop; Invalidate stops it for good.
type TimedRequestSync struct {
	*RequestSync

	mu          sync.Mutex
	interval    time.Duration
	invalidated bool
	parent      context.Context
	cancel      context.CancelFunc
	wg          sync.WaitGroup
}

// NewTimed returns a timed sync firing every interval. A non-positive
// interval disables the timer until SetTimeInterval is called.
func NewTimed(transcoder Transcoder, interval time.Duration, opts ...Option) *TimedRequestSync {
	return &TimedRequestSync{
		RequestSync: New(transcoder, opts...),
		interval:    interval,
	}
}

// Start arms the sync immediately and launches the timer. The timer stops
// when ctx is cancelled or Stop is called.
func (t *TimedRequestSync) Start(ctx context.Context) {
	t.mu.Lock()
	if t.invalidated {
		t.mu.Unlock()
		return
	}
	t.parent = ctx
	t.mu.Unlock()

	t.restart()
	t.ReadyForNextRequestIfNotBusy()
}

// Stop cancels the timer and waits for it to exit. Safe to call when not
// running.
func (t *TimedRequestSync) Stop() {
	t.mu.Lock()
	cancel := t.cancel
	t.cancel = nil
	t.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	t.wg.Wait()
}

// Invalidate stops the timer; the sync never produces a request again.
func (t *TimedRequestSync) Invalidate() {
	t.mu.Lock()
	t.invalidated = true
	t.mu.Unlock()
	t.Stop()
}

// IsInvalidated reports whether Invalidate was called.
func (t *TimedRequestSync) IsInvalidated() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.invalidated
}

// Interval returns the current re-arm interval.
func (t *TimedRequestSync) Interval() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.interval
}

// SetTimeInterval changes the interval. A running timer is restarted.
func (t *TimedRequestSync) SetTimeInterval(interval time.Duration) {
	t.mu.Lock()
	t.interval = interval
	running := t.cancel != nil
	t.mu.Unlock()

	if running {
		t.restart()
	}
}

// NextRequest returns nothing once the sync was invalidated.
func (t *TimedRequestSync) NextRequest() *models.Request {
	if t.IsInvalidated() {
		return nil
	}
	return t.RequestSync.NextRequest()
}

func (t *TimedRequestSync) restart() {
	t.Stop()

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.invalidated || t.parent == nil || t.interval <= 0 {
		return
	}
	jobCtx, cancel := context.WithCancel(t.parent)
	t.cancel = cancel
	interval := t.interval
	t.wg.Add(1)

	go func() {
		defer t.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-ticker.C:
				t.ReadyForNextRequestIfNotBusy()
			}
		}
	}()
}
