// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package transcoder

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/MKhiriev/go-sync-engine/internal/adapter"
	"github.com/MKhiriev/go-sync-engine/internal/downstream"
	"github.com/MKhiriev/go-sync-engine/internal/logger"
	"github.com/MKhiriev/go-sync-engine/internal/remoteid"
	"github.com/MKhiriev/go-sync-engine/internal/store"
	"github.com/MKhiriev/go-sync-engine/internal/upstream"
	"github.com/MKhiriev/go-sync-engine/models"
)

// FlagSyncFailed marks an object the server rejected for good. Flagged
// objects are skipped by the upstream syncs until the flag is cleared.
const FlagSyncFailed = "sync_failed"

const (
	storeTimeout = 5 * time.Second

	defaultMaxRemoteIdentifiers = 50
)

// Entity is the REST transcoder of one entity. It serves the upstream insert
// and update syncs, the downstream syncs and the remote identifier sync.
type Entity struct {
	name      string
	store     *store.Store
	maxIDs    int
	onFailure func(*upstream.SyncError)
	log       *logger.Logger
}

// Option configures an Entity.
type Option func(*Entity)

// WithMaxRemoteIdentifiers sets the batch fetch limit.
func WithMaxRemoteIdentifiers(n int) Option {
	return func(e *Entity) {
		if n > 0 {
			e.maxIDs = n
		}
	}
}

// WithFailureHandler is called with every permanently failed upstream request.
func WithFailureHandler(fn func(*upstream.SyncError)) Option {
	return func(e *Entity) { e.onFailure = fn }
}

// WithLogger sets the logger.
func WithLogger(l *logger.Logger) Option {
	return func(e *Entity) {
		if l != nil {
			e.log = l
		}
	}
}

// NewEntity returns the transcoder for entity name backed by st.
func NewEntity(name string, st *store.Store, opts ...Option) *Entity {
	e := &Entity{
		name:   name,
		store:  st,
		maxIDs: defaultMaxRemoteIdentifiers,
		log:    logger.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.log = &logger.Logger{Logger: e.log.With().Str("entity", name).Logger()}
	return e
}

// Name returns the entity name.
func (e *Entity) Name() string { return e.name }

// Filter matches objects the upstream syncs may push.
func (e *Entity) Filter() models.Predicate {
	return func(obj models.Object) bool { return !obj.HasFlag(FlagSyncFailed) }
}

// HasRemoteID matches objects known to the server.
func HasRemoteID(obj models.Object) bool { return obj.RemoteID() != "" }

// ── upstream: insert ──────────────────────────────────────────────────────────

// RequestForInserting implements upstream.InsertTranscoder.
func (e *Entity) RequestForInserting(obj models.Object, keys models.KeySet) *upstream.Request {
	req := models.NewRequest(models.MethodPost, collectionPath(e.name), writePayload{Fields: fieldsFor(obj, keys)})
	return upstream.NewRequest(keys, req)
}

// UpdateInsertedObject implements upstream.InsertTranscoder.
func (e *Entity) UpdateInsertedObject(obj models.Object, _ *upstream.Request, resp *models.Response) {
	var body objectPayload
	if err := resp.Decode(&body); err != nil || body.ID == "" {
		e.log.Error().Err(err).
			Str("object_id", string(obj.ID())).
			Msg("create response carries no remote id")
		e.setFlag(obj, FlagSyncFailed, true)
		return
	}
	if err := e.store.SetRemoteID(obj, body.ID); err != nil {
		e.log.Err(err).Str("object_id", string(obj.ID())).Msg("failed to assign remote id")
		return
	}
	e.applyFields(obj, body.Fields, nil)
}

// ShouldRetryAfterFailedInsert implements upstream.InsertTranscoder. A
// rejected create is never retried.
func (e *Entity) ShouldRetryAfterFailedInsert(obj models.Object, _ *upstream.Request, _ *models.Response) bool {
	e.setFlag(obj, FlagSyncFailed, true)
	return false
}

// ── upstream: update ──────────────────────────────────────────────────────────

// RequestForUpdating implements upstream.UpdateTranscoder.
func (e *Entity) RequestForUpdating(obj models.Object, keys models.KeySet) *upstream.Request {
	remoteID := obj.RemoteID()
	if remoteID == "" || models.IsEmptyKeys(keys) {
		return nil
	}
	req := models.NewRequest(models.MethodPatch, objectPath(e.name, remoteID), writePayload{Fields: fieldsFor(obj, keys)})
	return upstream.NewRequest(keys, req)
}

// UpdateUpdatedObject implements upstream.UpdateTranscoder. Fields the server
// echoes besides the pushed ones are applied; pending_fields in the answer
// keeps the pushed keys dirty for another pass.
func (e *Entity) UpdateUpdatedObject(obj models.Object, req *upstream.Request, resp *models.Response, _ models.KeySet) bool {
	if len(resp.Payload) == 0 {
		return false
	}
	var body objectPayload
	if err := resp.Decode(&body); err != nil {
		e.log.Warn().Err(err).Str("object_id", string(obj.ID())).Msg("malformed update response")
		return false
	}
	for k, v := range body.Fields {
		if req.Keys != nil && req.Keys.Contains(k) {
			continue
		}
		e.applyValue(obj, k, v)
	}
	return len(body.PendingFields) > 0
}

// ShouldRetryAfterFailedUpdate implements upstream.UpdateTranscoder. An
// object gone on the server is purged; a conflict also schedules a refetch.
// Either way the update is not retried.
func (e *Entity) ShouldRetryAfterFailedUpdate(obj models.Object, _ *upstream.Request, resp *models.Response, _ models.KeySet) bool {
	switch {
	case isGone(resp):
		e.purge(obj)
		return false
	case isConflict(resp):
		e.setFlag(obj, models.FlagNeedsUpdateFromBackend, true)
	}
	e.setFlag(obj, FlagSyncFailed, true)
	return false
}

// DidFailToSynchronize implements upstream.FailureReporter.
func (e *Entity) DidFailToSynchronize(err *upstream.SyncError) {
	if e.onFailure != nil {
		e.onFailure(err)
	}
}

// ── downstream ────────────────────────────────────────────────────────────────

// RequestForFetchingObject implements downstream.Transcoder.
func (e *Entity) RequestForFetchingObject(obj models.Object, remainingKeys models.KeySet, _ *downstream.ObjectSync) *models.Request {
	remoteID := obj.RemoteID()
	if remoteID == "" {
		return nil
	}
	req := models.NewRequest(models.MethodGet, objectPath(e.name, remoteID), nil)
	if !models.IsEmptyKeys(remainingKeys) {
		req.Query = map[string]string{QueryFields: joinList(models.SortedKeys(remainingKeys))}
	}
	return req
}

// UpdateObject implements downstream.Transcoder.
func (e *Entity) UpdateObject(obj models.Object, resp *models.Response, keysToApply models.KeySet, sync *downstream.ObjectSync) {
	var body objectPayload
	if err := resp.Decode(&body); err != nil {
		e.log.Warn().Err(err).Str("object_id", string(obj.ID())).Msg("malformed object response")
		e.setFlag(obj, models.FlagNeedsUpdateFromBackend, false)
		return
	}
	if body.Deleted {
		e.purge(obj)
		return
	}

	e.applyFields(obj, body.Fields, keysToApply)
	if len(body.PendingFields) > 0 {
		sync.SetRemainingKeys(models.NewKeySet(body.PendingFields...), obj)
		return
	}
	e.setFlag(obj, models.FlagNeedsUpdateFromBackend, false)
}

// DeleteObject implements downstream.Transcoder.
func (e *Entity) DeleteObject(obj models.Object, resp *models.Response, _ *downstream.ObjectSync) {
	if isGone(resp) {
		e.purge(obj)
		return
	}
	e.log.Warn().
		Str("object_id", string(obj.ID())).
		Int("status_code", resp.StatusCode).
		Msg("fetch rejected, giving up")
	e.setFlag(obj, models.FlagNeedsUpdateFromBackend, false)
}

// ── remote identifiers ────────────────────────────────────────────────────────

// MaximumRemoteIdentifiersPerRequest implements remoteid.Transcoder.
func (e *Entity) MaximumRemoteIdentifiersPerRequest() int { return e.maxIDs }

// RequestForObjectsWithIdentifiers implements remoteid.Transcoder.
func (e *Entity) RequestForObjectsWithIdentifiers(ids []string, _ *remoteid.ObjectSync) *models.Request {
	if len(ids) == 0 {
		return nil
	}
	req := models.NewRequest(models.MethodGet, collectionPath(e.name), nil)
	req.Query = map[string]string{QueryIDs: joinList(ids)}
	return req
}

// DidReceiveResponseForObjectsWithIdentifiers implements remoteid.Transcoder.
// Requested identifiers missing from a successful answer are gone on the
// server.
func (e *Entity) DidReceiveResponseForObjectsWithIdentifiers(resp *models.Response, ids []string, _ *remoteid.ObjectSync) {
	if resp.Result() != models.ResultSuccess {
		e.log.Warn().Strs("ids", ids).Int("status_code", resp.StatusCode).Msg("batch fetch rejected")
		return
	}
	var body batchPayload
	if err := resp.Decode(&body); err != nil {
		e.log.Warn().Err(err).Strs("ids", ids).Msg("malformed batch response")
		return
	}

	ctx, cancel := e.storeContext()
	defer cancel()

	seen := models.NewKeySet()
	for _, p := range body.Objects {
		if p.ID == "" {
			continue
		}
		seen.Add(p.ID)
		e.upsertRemote(ctx, p)
	}
	for _, id := range ids {
		if !seen.Contains(id) {
			e.upsertRemote(ctx, objectPayload{ID: id, Deleted: true})
		}
	}
}

// upsertRemote reconciles a server object with its local copy.
func (e *Entity) upsertRemote(ctx context.Context, p objectPayload) {
	rec, err := e.store.FindByRemoteID(ctx, e.name, p.ID)
	switch {
	case store.IsNotFound(err):
		if !p.Deleted {
			e.store.InsertRemote(e.name, p.ID, p.Fields)
		}
		return
	case err != nil:
		e.log.Err(err).Str("remote_id", p.ID).Msg("failed to look up object")
		return
	}

	if p.Deleted {
		e.purge(rec)
		return
	}
	e.applyFields(rec, p.Fields, nil)
	e.setFlag(rec, models.FlagNeedsUpdateFromBackend, false)
}

func isGone(resp *models.Response) bool {
	return errors.Is(resp.Err, adapter.ErrNotFound) ||
		errors.Is(resp.Err, adapter.ErrGone) ||
		resp.StatusCode == http.StatusNotFound ||
		resp.StatusCode == http.StatusGone
}

func isConflict(resp *models.Response) bool {
	return errors.Is(resp.Err, adapter.ErrConflict) || resp.StatusCode == http.StatusConflict
}

// ── store helpers ─────────────────────────────────────────────────────────────

func (e *Entity) storeContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(e.log.IntoContext(context.Background()), storeTimeout)
}

func (e *Entity) applyFields(obj models.Object, fields map[string]any, keys models.KeySet) {
	for k, v := range fields {
		if keys != nil && !keys.Contains(k) {
			continue
		}
		e.applyValue(obj, k, v)
	}
}

func (e *Entity) applyValue(obj models.Object, key string, value any) {
	if err := e.store.ApplyRemoteValue(obj, key, value); err != nil {
		e.log.Err(err).Str("object_id", string(obj.ID())).Str("key", key).Msg("failed to apply remote value")
	}
}

func (e *Entity) setFlag(obj models.Object, flag string, on bool) {
	if err := e.store.SetFlag(obj, flag, on); err != nil {
		e.log.Err(err).Str("object_id", string(obj.ID())).Str("flag", flag).Msg("failed to set flag")
	}
}

func (e *Entity) purge(obj models.Object) {
	ctx, cancel := e.storeContext()
	defer cancel()
	if err := e.store.Purge(ctx, obj); err != nil {
		e.log.Err(err).Str("object_id", string(obj.ID())).Msg("failed to purge object")
	}
}
