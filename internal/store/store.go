// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package store is the local object store the engine synchronizes: managed
// objects persisted in SQLite with a write-back cache of [Record] values.
//
// Mutations update the cached record at once and are written to SQLite by
// [Store.Save], which [Store.ProcessPendingChanges] and [Store.Fetch] call
// implicitly. Every mutation is also queued as a change event returned by the
// next ProcessPendingChanges call.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-sync-engine/internal/logger"
	"github.com/MKhiriev/go-sync-engine/internal/utils"
	"github.com/MKhiriev/go-sync-engine/models"
)

const flushTimeout = 5 * time.Second

// Store is a SQLite-backed object store. It is safe for concurrent use.
type Store struct {
	db     *DB
	ids    *utils.UUIDGenerator
	logger *logger.Logger

	mu      sync.Mutex
	cache   map[models.ObjectID]*Record
	dirty   map[models.ObjectID]*Record
	order   []models.ObjectID
	changed map[models.ObjectID]struct{}
	changeQ []*Record
}

// New returns a store over db. The schema must already be migrated.
func New(db *DB, log *logger.Logger) *Store {
	return &Store{
		db:      db,
		ids:     utils.NewUUIDGenerator(),
		logger:  logger.OrNop(log),
		cache:   make(map[models.ObjectID]*Record),
		dirty:   make(map[models.ObjectID]*Record),
		changed: make(map[models.ObjectID]struct{}),
	}
}

// ── mutations ─────────────────────────────────────────────────────────────────

// Insert creates a local object that was never seen by the server. Every
// field starts out modified.
func (s *Store) Insert(entity string, fields map[string]any) *Record {
	rec := newRecord(models.ObjectID(s.ids.Generate()), entity, time.Now())
	for k, v := range fields {
		rec.setValue(k, v, true)
	}
	s.adopt(rec)
	return rec
}

// InsertRemote creates a local copy of a server object. No field is
// modified; flags are set as given.
func (s *Store) InsertRemote(entity, remoteID string, fields map[string]any, flags ...string) *Record {
	rec := newRecord(models.ObjectID(s.ids.Generate()), entity, time.Now())
	rec.remoteID = remoteID
	for k, v := range fields {
		rec.fields[k] = v
	}
	for _, f := range flags {
		rec.flags.Add(f)
	}
	s.adopt(rec)
	return rec
}

func (s *Store) adopt(rec *Record) {
	rec.onChange = s.markChanged

	s.mu.Lock()
	s.cache[rec.id] = rec
	s.mu.Unlock()

	s.markChanged(rec)
}

// SetValue records a local edit of key.
func (s *Store) SetValue(obj models.Object, key string, value any) error {
	rec, err := s.own(obj)
	if err != nil {
		return err
	}
	rec.mutate(func() bool { return rec.setValue(key, value, true) })
	return nil
}

// ApplyRemoteValue writes a value received from the server. A pending local
// edit of the same key is kept.
func (s *Store) ApplyRemoteValue(obj models.Object, key string, value any) error {
	rec, err := s.own(obj)
	if err != nil {
		return err
	}
	rec.mutate(func() bool { return rec.setValue(key, value, false) })
	return nil
}

// SetRemoteID assigns the server-side identity.
func (s *Store) SetRemoteID(obj models.Object, remoteID string) error {
	rec, err := s.own(obj)
	if err != nil {
		return err
	}
	rec.mutate(func() bool {
		if rec.remoteID == remoteID {
			return false
		}
		rec.remoteID = remoteID
		return true
	})
	return nil
}

// SetFlag sets or clears a "needs update" flag.
func (s *Store) SetFlag(obj models.Object, flag string, on bool) error {
	rec, err := s.own(obj)
	if err != nil {
		return err
	}
	rec.mutate(func() bool {
		if rec.flags.Contains(flag) == on {
			return false
		}
		if on {
			rec.flags.Add(flag)
		} else {
			rec.flags.Remove(flag)
		}
		return true
	})
	return nil
}

// Delete marks the object deleted locally. The row stays until Purge.
func (s *Store) Delete(obj models.Object) error {
	rec, err := s.own(obj)
	if err != nil {
		return err
	}
	rec.mutate(func() bool {
		if rec.deleted {
			return false
		}
		rec.deleted = true
		return true
	})
	return nil
}

// Purge removes the object from the database and the cache at once. The
// object is reported once more as a deleted change.
func (s *Store) Purge(ctx context.Context, obj models.Object) error {
	log := logger.FromContext(ctx)

	rec, err := s.own(obj)
	if err != nil {
		return err
	}

	if err = s.deleteRows(ctx, rec.id); err != nil {
		log.Err(err).
			Str("func", "Store.Purge").
			Str("object_id", string(rec.id)).
			Msg("failed to delete object")
		return err
	}

	rec.mu.Lock()
	rec.purged = true
	rec.onChange = nil
	rec.mu.Unlock()

	s.mu.Lock()
	delete(s.cache, rec.id)
	delete(s.dirty, rec.id)
	s.mu.Unlock()
	s.queueChange(rec)

	return nil
}

func (s *Store) own(obj models.Object) (*Record, error) {
	rec, ok := obj.(*Record)
	if !ok || rec == nil {
		return nil, fmt.Errorf("%w: %T", ErrForeignObject, obj)
	}
	if rec.isPurged() {
		return nil, fmt.Errorf("%w: %s", ErrObjectPurged, rec.id)
	}

	s.mu.Lock()
	cached, known := s.cache[rec.id]
	s.mu.Unlock()
	if !known || cached != rec {
		return nil, fmt.Errorf("%w: %s", ErrForeignObject, rec.id)
	}
	return rec, nil
}

func (s *Store) markChanged(rec *Record) {
	s.mu.Lock()
	if _, ok := s.dirty[rec.id]; !ok {
		s.dirty[rec.id] = rec
		s.order = append(s.order, rec.id)
	}
	s.mu.Unlock()
	s.queueChange(rec)
}

func (s *Store) queueChange(rec *Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.changed[rec.id]; ok {
		return
	}
	s.changed[rec.id] = struct{}{}
	s.changeQ = append(s.changeQ, rec)
}

// ── change events ─────────────────────────────────────────────────────────────

// ProcessPendingChanges writes dirty records and returns every object changed
// since the previous call, in first-change order. A failed write is logged
// and retried on the next call; the change events are delivered regardless.
func (s *Store) ProcessPendingChanges() []models.Object {
	ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
	defer cancel()
	if err := s.Save(ctx); err != nil {
		s.logger.Err(err).Str("func", "Store.ProcessPendingChanges").Msg("failed to flush dirty objects")
	}

	s.mu.Lock()
	queue := s.changeQ
	s.changeQ = nil
	s.changed = make(map[models.ObjectID]struct{})
	s.mu.Unlock()

	if len(queue) == 0 {
		return nil
	}
	out := make([]models.Object, len(queue))
	for i, rec := range queue {
		out[i] = rec
	}
	return out
}

// ── persistence ───────────────────────────────────────────────────────────────

// Save writes every dirty record in one transaction.
func (s *Store) Save(ctx context.Context) error {
	log := logger.FromContext(ctx)

	s.mu.Lock()
	if len(s.order) == 0 {
		s.mu.Unlock()
		return nil
	}
	batch := make([]*Record, 0, len(s.order))
	for _, id := range s.order {
		if rec, ok := s.dirty[id]; ok {
			batch = append(batch, rec)
		}
	}
	s.dirty = make(map[models.ObjectID]*Record)
	s.order = nil
	s.mu.Unlock()

	if err := s.write(ctx, batch); err != nil {
		log.Err(err).
			Str("func", "Store.Save").
			Int("objects", len(batch)).
			Msg("failed to save objects")
		s.requeue(batch)
		return err
	}

	log.Debug().Str("func", "Store.Save").Int("objects", len(batch)).Msg("objects saved")
	return nil
}

func (s *Store) requeue(batch []*Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range batch {
		if _, ok := s.dirty[rec.id]; ok {
			continue
		}
		if _, cached := s.cache[rec.id]; !cached {
			continue
		}
		s.dirty[rec.id] = rec
		s.order = append(s.order, rec.id)
	}
}

func (s *Store) write(ctx context.Context, batch []*Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	for _, rec := range batch {
		rw := rec.toRow()

		query, args, err := buildUpsertObjectQuery(rw)
		if err != nil {
			return err
		}
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("%w: upsert %s: %w", ErrExecutingStatement, rw.id, err)
		}

		query, args, err = buildDeleteFlagsQuery(rw.id)
		if err != nil {
			return err
		}
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("%w: clear flags %s: %w", ErrExecutingStatement, rw.id, err)
		}

		if len(rw.flags) == 0 {
			continue
		}
		query, args, err = buildInsertFlagsQuery(rw.id, rw.flags)
		if err != nil {
			return err
		}
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("%w: insert flags %s: %w", ErrExecutingStatement, rw.id, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}
	return nil
}

// deleteRows removes the flags and the row of id in one transaction.
func (s *Store) deleteRows(ctx context.Context, id models.ObjectID) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	for _, build := range []func(models.ObjectID) (string, []any, error){buildDeleteFlagsQuery, buildDeleteObjectQuery} {
		query, args, err := build(id)
		if err != nil {
			return err
		}
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}
	return nil
}

// ── queries ───────────────────────────────────────────────────────────────────

// Fetch implements the scheduler's ObjectStore. Dirty records are saved first
// so that the SQL filters see the in-memory state.
func (s *Store) Fetch(ctx context.Context, req *models.FetchRequest) ([]models.Object, error) {
	log := logger.FromContext(ctx)

	if err := s.Save(ctx); err != nil {
		return nil, err
	}

	query, args, err := buildFetchQuery(req)
	if err != nil {
		return nil, err
	}
	records, err := s.query(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "Store.Fetch").
			Str("entity", req.Entity).
			Msg("failed to fetch objects")
		return nil, err
	}

	out := make([]models.Object, 0, len(records))
	for _, rec := range records {
		if req.Predicate.Match(rec) {
			out = append(out, rec)
		}
	}
	return out, nil
}

// Get returns the object with the given local identity.
func (s *Store) Get(ctx context.Context, id models.ObjectID) (*Record, error) {
	s.mu.Lock()
	rec, ok := s.cache[id]
	s.mu.Unlock()
	if ok {
		return rec, nil
	}

	query, args, err := buildSelectByIDQuery(id)
	if err != nil {
		return nil, err
	}
	return s.one(ctx, query, args...)
}

// FindByRemoteID returns the object of entity with the given remote identity.
func (s *Store) FindByRemoteID(ctx context.Context, entity, remoteID string) (*Record, error) {
	s.mu.Lock()
	for _, rec := range s.cache {
		if rec.entity == entity && rec.RemoteID() == remoteID {
			s.mu.Unlock()
			return rec, nil
		}
	}
	s.mu.Unlock()

	if err := s.Save(ctx); err != nil {
		return nil, err
	}
	query, args, err := buildSelectByRemoteIDQuery(entity, remoteID)
	if err != nil {
		return nil, err
	}
	return s.one(ctx, query, args...)
}

func (s *Store) one(ctx context.Context, query string, args ...any) (*Record, error) {
	records, err := s.query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrObjectNotFound
	}
	return records[0], nil
}

// query runs a select over objectColumns and resolves each row through the
// cache, so that a given object is always represented by the same *Record.
func (s *Store) query(ctx context.Context, query string, args ...any) ([]*Record, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var scanned []row
	for rows.Next() {
		var (
			rw       row
			id       string
			remoteID sql.NullString
			fields   string
			keys     string
		)
		if err = rows.Scan(&id, &rw.entity, &remoteID, &fields, &keys, &rw.deleted, &rw.createdAt, &rw.updatedAt); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		rw.id = models.ObjectID(id)
		rw.remoteID = remoteID.String
		if err = json.Unmarshal([]byte(fields), &rw.fields); err != nil {
			return nil, fmt.Errorf("%w: fields of %s: %w", ErrEncodingObject, id, err)
		}
		if err = json.Unmarshal([]byte(keys), &rw.modified); err != nil {
			return nil, fmt.Errorf("%w: keys of %s: %w", ErrEncodingObject, id, err)
		}
		scanned = append(scanned, rw)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return s.resolve(ctx, scanned)
}

func (s *Store) resolve(ctx context.Context, scanned []row) ([]*Record, error) {
	out := make([]*Record, len(scanned))
	var missing []string

	s.mu.Lock()
	for i, rw := range scanned {
		if rec, ok := s.cache[rw.id]; ok {
			out[i] = rec
			continue
		}
		missing = append(missing, string(rw.id))
	}
	s.mu.Unlock()

	if len(missing) == 0 {
		return out, nil
	}

	flags, err := s.loadFlags(ctx, missing)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, rw := range scanned {
		if out[i] != nil {
			continue
		}
		if rec, ok := s.cache[rw.id]; ok {
			out[i] = rec
			continue
		}
		rw.flags = flags[rw.id]
		rec := recordFromRow(rw)
		rec.onChange = s.markChanged
		s.cache[rec.id] = rec
		out[i] = rec
	}
	return out, nil
}

func (s *Store) loadFlags(ctx context.Context, ids []string) (map[models.ObjectID][]string, error) {
	query, args, err := buildSelectFlagsQuery(ids)
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	out := make(map[models.ObjectID][]string)
	for rows.Next() {
		var id, flag string
		if err = rows.Scan(&id, &flag); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		out[models.ObjectID(id)] = append(out[models.ObjectID(id)], flag)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}
	return out, nil
}

// IsNotFound reports whether err means the object does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrObjectNotFound)
}
