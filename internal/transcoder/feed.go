// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package transcoder

import (
	"sync"

	"github.com/MKhiriev/go-sync-engine/internal/logger"
	"github.com/MKhiriev/go-sync-engine/internal/paginator"
	"github.com/MKhiriev/go-sync-engine/internal/remoteid"
	"github.com/MKhiriev/go-sync-engine/internal/store"
	"github.com/MKhiriev/go-sync-engine/models"
)

// Feed consumes the change feed. Changed objects are queued on the remote
// identifier sync of their entity; deleted ones are purged at once.
//
// Feed remembers the last cursor it handed out, so a paginator reset resumes
// after the changes already seen.
type Feed struct {
	entities map[string]*Entity
	syncs    map[string]*remoteid.ObjectSync
	log      *logger.Logger

	mu     sync.Mutex
	cursor string
}

// FeedOption configures a Feed.
type FeedOption func(*Feed)

// WithStartCursor makes the first page start at cursor.
func WithStartCursor(cursor string) FeedOption {
	return func(f *Feed) { f.cursor = cursor }
}

// WithFeedLogger sets the logger.
func WithFeedLogger(l *logger.Logger) FeedOption {
	return func(f *Feed) {
		if l != nil {
			f.log = l
		}
	}
}

// NewFeed returns an empty change feed consumer.
func NewFeed(opts ...FeedOption) *Feed {
	f := &Feed{
		entities: make(map[string]*Entity),
		syncs:    make(map[string]*remoteid.ObjectSync),
		log:      logger.Nop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Register routes feed items of e to remote.
func (f *Feed) Register(e *Entity, remote *remoteid.ObjectSync) {
	f.entities[e.Name()] = e
	f.syncs[e.Name()] = remote
}

// StartUUID implements paginator.StartUUIDProvider.
func (f *Feed) StartUUID() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cursor
}

// NextUUIDFromResponse implements paginator.Transcoder. A page without a next
// cursor keeps the current one.
func (f *Feed) NextUUIDFromResponse(resp *models.Response, p *paginator.Paginator) string {
	var pg feedPage
	if err := resp.Decode(&pg); err != nil {
		return p.Cursor()
	}

	changed := make(map[string][]string)
	for _, item := range pg.Items {
		e, ok := f.entities[item.Entity]
		if !ok || item.ID == "" {
			f.log.Debug().Str("entity", item.Entity).Str("remote_id", item.ID).Msg("skipping feed item")
			continue
		}
		if item.Deleted {
			f.purge(e, item.ID)
			continue
		}
		changed[item.Entity] = append(changed[item.Entity], item.ID)
	}
	for entity, ids := range changed {
		f.syncs[entity].AddRemoteIdentifiersThatNeedDownload(ids)
	}

	if pg.Next == "" {
		return p.Cursor()
	}
	f.mu.Lock()
	f.cursor = pg.Next
	f.mu.Unlock()
	return pg.Next
}

func (f *Feed) purge(e *Entity, remoteID string) {
	ctx, cancel := e.storeContext()
	defer cancel()

	rec, err := e.store.FindByRemoteID(ctx, e.Name(), remoteID)
	if store.IsNotFound(err) {
		return
	}
	if err != nil {
		f.log.Err(err).Str("entity", e.Name()).Str("remote_id", remoteID).Msg("failed to look up deleted object")
		return
	}
	e.purge(rec)
}
