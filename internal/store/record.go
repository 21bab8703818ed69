// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"maps"
	"sync"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/MKhiriev/go-sync-engine/models"
)

// Record is the store's implementation of models.Object. Records are owned by
// the Store that produced them; mutate them through the Store.
type Record struct {
	mu        sync.RWMutex
	id        models.ObjectID
	entity    string
	remoteID  string
	fields    map[string]any
	modified  models.KeySet
	flags     models.KeySet
	deleted   bool
	purged    bool
	createdAt time.Time
	updatedAt time.Time

	onChange func(*Record)
}

func newRecord(id models.ObjectID, entity string, now time.Time) *Record {
	return &Record{
		id:        id,
		entity:    entity,
		fields:    make(map[string]any),
		modified:  models.NewKeySet(),
		flags:     models.NewKeySet(),
		createdAt: now,
		updatedAt: now,
	}
}

// ID implements models.Object.
func (r *Record) ID() models.ObjectID { return r.id }

// Entity implements models.Object.
func (r *Record) Entity() string { return r.entity }

// RemoteID implements models.Object.
func (r *Record) RemoteID() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.remoteID
}

// Value implements models.Object.
func (r *Record) Value(key string) any {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.fields[key]
}

// Fields returns a shallow copy of every field.
func (r *Record) Fields() map[string]any {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return maps.Clone(r.fields)
}

// ModifiedKeys implements models.Object.
func (r *Record) ModifiedKeys() models.KeySet {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.modified.Clone()
}

// ResetModifiedKeys implements models.Object.
func (r *Record) ResetModifiedKeys(keys models.KeySet) {
	if models.IsEmptyKeys(keys) {
		return
	}
	r.mutate(func() bool {
		before := r.modified.Cardinality()
		r.modified = r.modified.Difference(keys)
		return r.modified.Cardinality() != before
	})
}

// HasFlag implements models.Object.
func (r *Record) HasFlag(flag string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.flags.Contains(flag)
}

// Flags returns the set flags in lexical order.
func (r *Record) Flags() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return models.SortedKeys(r.flags)
}

// IsDeleted implements models.Object. Purged records report true as well.
func (r *Record) IsDeleted() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.deleted || r.purged
}

// CreatedAt returns the local creation time.
func (r *Record) CreatedAt() time.Time { return r.createdAt }

func (r *Record) isPurged() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.purged
}

// mutate runs fn under the write lock and notifies the owner when fn reports
// a change. The owner is called without the record lock held.
func (r *Record) mutate(fn func() bool) {
	r.mu.Lock()
	changed := fn()
	if changed {
		r.updatedAt = time.Now()
	}
	onChange := r.onChange
	r.mu.Unlock()

	if changed && onChange != nil {
		onChange(r)
	}
}

// setValue writes a field. A local write marks the key modified. A remote
// write never overwrites a pending local edit; it only clears the mark when
// it carries the same value.
func (r *Record) setValue(key string, value any, local bool) bool {
	old, had := r.fields[key]
	same := had && cmp.Equal(old, value, cmpopts.EquateEmpty())

	if local {
		if same {
			return false
		}
		r.fields[key] = value
		r.modified.Add(key)
		return true
	}

	if r.modified.Contains(key) {
		if !same {
			return false
		}
		r.modified.Remove(key)
		return true
	}
	if same {
		return false
	}
	r.fields[key] = value
	return true
}

// row is the persisted form of a record.
type row struct {
	id        models.ObjectID
	entity    string
	remoteID  string
	fields    map[string]any
	modified  []string
	flags     []string
	deleted   bool
	createdAt time.Time
	updatedAt time.Time
}

func (r *Record) toRow() row {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return row{
		id:        r.id,
		entity:    r.entity,
		remoteID:  r.remoteID,
		fields:    maps.Clone(r.fields),
		modified:  models.SortedKeys(r.modified),
		flags:     models.SortedKeys(r.flags),
		deleted:   r.deleted,
		createdAt: r.createdAt,
		updatedAt: r.updatedAt,
	}
}

func recordFromRow(rw row) *Record {
	rec := &Record{
		id:        rw.id,
		entity:    rw.entity,
		remoteID:  rw.remoteID,
		fields:    rw.fields,
		modified:  models.NewKeySet(rw.modified...),
		flags:     models.NewKeySet(rw.flags...),
		deleted:   rw.deleted,
		createdAt: rw.createdAt,
		updatedAt: rw.updatedAt,
	}
	if rec.fields == nil {
		rec.fields = make(map[string]any)
	}
	return rec
}
