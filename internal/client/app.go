// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-sync-engine/internal/adapter"
	"github.com/MKhiriev/go-sync-engine/internal/changes"
	"github.com/MKhiriev/go-sync-engine/internal/config"
	"github.com/MKhiriev/go-sync-engine/internal/downstream"
	"github.com/MKhiriev/go-sync-engine/internal/generator"
	"github.com/MKhiriev/go-sync-engine/internal/logger"
	"github.com/MKhiriev/go-sync-engine/internal/paginator"
	"github.com/MKhiriev/go-sync-engine/internal/remoteid"
	"github.com/MKhiriev/go-sync-engine/internal/scheduler"
	"github.com/MKhiriev/go-sync-engine/internal/single"
	"github.com/MKhiriev/go-sync-engine/internal/store"
	"github.com/MKhiriev/go-sync-engine/internal/transcoder"
	"github.com/MKhiriev/go-sync-engine/internal/upstream"
	"github.com/MKhiriev/go-sync-engine/internal/workers"
	"github.com/MKhiriev/go-sync-engine/models"
)

const saveTimeout = 5 * time.Second

var errNoEntities = errors.New("no entities to synchronize")

// EntitySync groups the synchronizers of one entity.
type EntitySync struct {
	Transcoder *transcoder.Entity
	Inserted   *upstream.InsertedObjectSync
	Modified   *upstream.ModifiedObjectSync
	Downstream *downstream.ObjectSync
	Whitelist  *downstream.WhitelistSync
	Remote     *remoteid.ObjectSync
	Watch      *single.TimedRequestSync
}

// App is the sync daemon.
type App struct {
	cfg       config.Sync
	store     *store.Store
	entities  map[string]*EntitySync
	order     []string
	feed      *paginator.Paginator
	scheduler *scheduler.Scheduler
	workers   *workers.Workers
	logger    *logger.Logger
}

// NewApp wires a daemon synchronizing cfg.Sync.Entities between st and the
// backend behind transport.
func NewApp(cfg *config.StructuredConfig, st *store.Store, transport adapter.Transport, log *logger.Logger) (*App, error) {
	if len(cfg.Sync.Entities) == 0 {
		return nil, errNoEntities
	}
	log = logger.OrNop(log)

	a := &App{
		cfg:      cfg.Sync,
		store:    st,
		entities: make(map[string]*EntitySync, len(cfg.Sync.Entities)),
		logger:   log,
	}

	feed := transcoder.NewFeed(transcoder.WithFeedLogger(log.WithComponent("feed")))
	for _, name := range cfg.Sync.Entities {
		if _, dup := a.entities[name]; dup {
			return nil, fmt.Errorf("entity %q configured twice", name)
		}
		es := a.newEntitySync(name, log.WithComponent(name))
		feed.Register(es.Transcoder, es.Remote)
		a.entities[name] = es
		a.order = append(a.order, name)
	}

	a.feed = paginator.New(cfg.Sync.ListPath, paginator.DefaultStartKey, cfg.Sync.PageSize, feed,
		paginator.WithLogger(log.WithComponent("feed")),
		paginator.WithOnReady(a.notify),
	)

	a.scheduler = scheduler.New(transport, st, a.generators(), a.trackers(),
		scheduler.WithConfig(cfg.Scheduler),
		scheduler.WithLogger(log.WithComponent("scheduler")),
	)

	a.workers = workers.NewWorkers(log).
		Add("scheduler", a.scheduler).
		Add("feed-refresh", workers.Func(a.refreshFeed)).
		Add("watch-refresh", workers.Func(a.runWatches))

	return a, nil
}

func (a *App) newEntitySync(name string, log *logger.Logger) *EntitySync {
	tr := transcoder.NewEntity(name, a.store,
		transcoder.WithMaxRemoteIdentifiers(a.cfg.MaxRemoteIdentifiersPerRequest),
		transcoder.WithFailureHandler(a.didFail),
		transcoder.WithLogger(log),
	)

	es := &EntitySync{
		Transcoder: tr,
		Inserted: upstream.NewInsertedObjectSync(name, tr,
			upstream.WithFilter(tr.Filter()),
			upstream.WithLogger(log),
		),
		Modified: upstream.NewModifiedObjectSync(name, tr,
			upstream.WithFilter(tr.Filter()),
			upstream.WithLogger(log),
		),
		Downstream: downstream.NewObjectSync(name, tr,
			downstream.WithFilter(transcoder.HasRemoteID),
			downstream.WithSortOrder(newestFirst),
			downstream.WithLogger(log),
		),
		Whitelist: downstream.NewWhitelistSync(name, tr,
			downstream.WithFilter(transcoder.HasRemoteID),
			downstream.WithLogger(log),
		),
		Remote: remoteid.NewObjectSync(tr, remoteid.WithLogger(log)),
	}
	es.Downstream.SetExclusion(es.Whitelist)
	es.Whitelist.SetExclusion(es.Downstream)
	es.Watch = single.NewTimed(transcoder.NewWatch(tr, es.Whitelist, es.Remote), a.cfg.RefreshInterval,
		single.WithLogger(log),
		single.WithOnReady(a.notify),
	)
	return es
}

// generators lists every request source in priority order: local inserts,
// local updates, watched objects, stale objects, remote identifiers, the
// change feed and finally the watched lists.
func (a *App) generators() generator.List {
	var inserts, updates, watched, stale, remote, lists generator.List
	for _, name := range a.order {
		es := a.entities[name]
		inserts = append(inserts, es.Inserted)
		updates = append(updates, es.Modified)
		watched = append(watched, es.Whitelist)
		stale = append(stale, es.Downstream)
		remote = append(remote, es.Remote)
		lists = append(lists, es.Watch)
	}

	out := make(generator.List, 0, len(a.order)*6+1)
	out = append(out, inserts...)
	out = append(out, updates...)
	out = append(out, watched...)
	out = append(out, stale...)
	out = append(out, remote...)
	out = append(out, a.feed)
	return append(out, lists...)
}

func (a *App) trackers() changes.Trackers {
	var out changes.Trackers
	for _, name := range a.order {
		es := a.entities[name]
		out = append(out, es.Inserted, es.Modified, es.Whitelist, es.Downstream)
	}
	return out
}

// Entity returns the synchronizers of name.
func (a *App) Entity(name string) (*EntitySync, bool) {
	es, ok := a.entities[name]
	return es, ok
}

// Store returns the local object store.
func (a *App) Store() *store.Store { return a.store }

// Run implements [Client]. Dirty objects are saved once every worker has
// stopped.
func (a *App) Run(ctx context.Context) error {
	a.logger.Info().Strs("entities", a.order).Msg("sync daemon started")

	err := a.workers.Run(ctx)

	saveCtx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()
	if saveErr := a.store.Save(saveCtx); saveErr != nil {
		a.logger.Err(saveErr).Msg("failed to save objects on shutdown")
		err = errors.Join(err, saveErr)
	}

	a.logger.Info().Msg("sync daemon stopped")
	return err
}

// refreshFeed restarts the change feed every refresh interval once the
// previous walk has finished.
func (a *App) refreshFeed(ctx context.Context) error {
	if a.cfg.RefreshInterval <= 0 {
		<-ctx.Done()
		return nil
	}

	ticker := time.NewTicker(a.cfg.RefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			status := a.feed.Status()
			if status == single.StatusInProgress || status == single.StatusReady {
				continue
			}
			a.feed.ResetFetching()
		}
	}
}

func (a *App) runWatches(ctx context.Context) error {
	for _, name := range a.order {
		a.entities[name].Watch.Start(ctx)
	}
	<-ctx.Done()
	for _, name := range a.order {
		a.entities[name].Watch.Stop()
	}
	return nil
}

func (a *App) notify() {
	if a.scheduler != nil {
		a.scheduler.Notify()
	}
}

func (a *App) didFail(err *upstream.SyncError) {
	a.logger.Warn().Err(err).
		Str("entity", err.Entity).
		Str("object_id", string(err.ObjectID)).
		Strs("keys", err.Keys).
		Int("status_code", err.StatusCode).
		Msg("object rejected by the backend")
}

func newestFirst(x, y models.Object) bool {
	a, okA := x.(*store.Record)
	b, okB := y.(*store.Record)
	if !okA || !okB {
		return false
	}
	return a.CreatedAt().After(b.CreatedAt())
}
