// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package objecttest provides an in-memory managed object for tests of the
// synchronizers.
package objecttest

import (
	"sync"

	"github.com/MKhiriev/go-sync-engine/models"
)

// Object is an in-memory implementation of models.Object.
type Object struct {
	mu       sync.RWMutex
	id       models.ObjectID
	entity   string
	remoteID string
	fields   map[string]any
	modified models.KeySet
	flags    map[string]bool
	deleted  bool
}

// New returns an object of the given entity with no fields.
func New(entity string, id models.ObjectID) *Object {
	return &Object{
		id:       id,
		entity:   entity,
		fields:   make(map[string]any),
		modified: models.NewKeySet(),
		flags:    make(map[string]bool),
	}
}

// ID implements models.Object.
func (o *Object) ID() models.ObjectID { return o.id }

// Entity implements models.Object.
func (o *Object) Entity() string { return o.entity }

// RemoteID implements models.Object.
func (o *Object) RemoteID() string {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.remoteID
}

// Value implements models.Object.
func (o *Object) Value(key string) any {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.fields[key]
}

// ModifiedKeys implements models.Object.
func (o *Object) ModifiedKeys() models.KeySet {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.modified.Clone()
}

// ResetModifiedKeys implements models.Object.
func (o *Object) ResetModifiedKeys(keys models.KeySet) {
	if keys == nil {
		return
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	o.modified = o.modified.Difference(keys)
}

// HasFlag implements models.Object.
func (o *Object) HasFlag(flag string) bool {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.flags[flag]
}

// IsDeleted implements models.Object.
func (o *Object) IsDeleted() bool {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.deleted
}

// Set performs a local edit: the value changes and the key is marked modified.
func (o *Object) Set(key string, value any) *Object {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.fields[key] = value
	o.modified.Add(key)
	return o
}

// Apply writes a value coming from the server without marking it modified.
func (o *Object) Apply(key string, value any) *Object {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.fields[key] = value
	return o
}

// SetRemoteID assigns the remote identity.
func (o *Object) SetRemoteID(id string) *Object {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.remoteID = id
	return o
}

// SetFlag sets or clears a "needs update" flag.
func (o *Object) SetFlag(flag string, on bool) *Object {
	o.mu.Lock()
	defer o.mu.Unlock()
	if on {
		o.flags[flag] = true
	} else {
		delete(o.flags, flag)
	}
	return o
}

// MarkDeleted flags the object as locally deleted.
func (o *Object) MarkDeleted() *Object {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.deleted = true
	return o
}

// Objects converts fakes to the models.Object slice taken by trackers.
func Objects(objs ...*Object) []models.Object {
	out := make([]models.Object, 0, len(objs))
	for _, o := range objs {
		out = append(out, o)
	}
	return out
}
