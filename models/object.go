// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// ObjectID is the stable local identity of a managed object. It never changes
// for the lifetime of the object, unlike the remote identifier which is only
// assigned after the object was created on the server.
type ObjectID string

// Well-known "needs update" flags carried by managed objects.
const (
	// FlagNeedsUpdateFromBackend marks an object whose local copy is stale and
	// must be fetched from the server.
	FlagNeedsUpdateFromBackend = "needs_update_from_backend"
)

// Object is a managed object as seen by the sync engine: an opaque local record
// with a stable identity, an optional remote identifier, a string-keyed field
// set and the subset of fields that were modified locally.
//
// The engine only reads objects. The single exception is ResetModifiedKeys,
// which is how an upstream sync confirms that local edits reached the server.
type Object interface {
	// ID returns the local identity of the object.
	ID() ObjectID

	// Entity returns the name of the entity (table, type) the object belongs to.
	Entity() string

	// RemoteID returns the server-side identifier, or an empty string if the
	// object was never created on the server.
	RemoteID() string

	// Value returns the current value of the named field, or nil.
	Value(key string) any

	// ModifiedKeys returns the fields carrying local modifications that were
	// not yet confirmed by the server.
	ModifiedKeys() KeySet

	// ResetModifiedKeys clears the local-modification mark of the given keys.
	ResetModifiedKeys(keys KeySet)

	// HasFlag reports whether the named "needs update" flag is set.
	HasFlag(flag string) bool

	// IsDeleted reports whether the object was deleted locally.
	IsDeleted() bool
}

// Predicate filters managed objects. A nil Predicate matches every object.
type Predicate func(Object) bool

// Match reports whether obj satisfies p.
func (p Predicate) Match(obj Object) bool {
	if p == nil {
		return true
	}
	return p(obj)
}

// And combines two predicates. Nil operands are ignored.
func (p Predicate) And(other Predicate) Predicate {
	if p == nil {
		return other
	}
	if other == nil {
		return p
	}
	return func(obj Object) bool {
		return p(obj) && other(obj)
	}
}

// HasFlag returns a predicate matching objects carrying the given flag.
func HasFlag(flag string) Predicate {
	return func(obj Object) bool {
		return obj.HasFlag(flag)
	}
}

// Less orders managed objects by priority. Objects for which neither a < b nor
// b < a keep their insertion order.
type Less func(a, b Object) bool

// FetchRequest describes a query against the local store. Entity, Flags,
// RemoteID and ModifiedOnly are evaluated by the store itself; Predicate is an
// additional in-memory refinement applied to the materialised objects.
type FetchRequest struct {
	// Entity restricts the result to one entity. Required.
	Entity string
	// Flags restricts the result to objects carrying every listed flag.
	Flags []string
	// RemoteID restricts the result by remote identity presence.
	RemoteID RemoteIDFilter
	// ModifiedOnly restricts the result to objects with local modifications.
	ModifiedOnly bool
	// IncludeDeleted also returns locally deleted objects.
	IncludeDeleted bool
	// Predicate refines the result in memory.
	Predicate Predicate
}

// RemoteIDFilter selects objects by whether they already have a remote identity.
type RemoteIDFilter int

const (
	// AnyRemoteID does not filter on the remote identity.
	AnyRemoteID RemoteIDFilter = iota
	// WithRemoteID selects objects known to the server.
	WithRemoteID
	// WithoutRemoteID selects objects never created on the server.
	WithoutRemoteID
)
