// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"slices"

	mapset "github.com/deckarep/golang-set/v2"
)

// KeySet is a set of field names. A nil KeySet means "unrestricted" wherever
// an API documents it that way; an empty non-nil KeySet means "no keys".
type KeySet = mapset.Set[string]

// NewKeySet returns a thread-unsafe key set holding keys. The engine mutates
// key sets only from its single execution context.
func NewKeySet(keys ...string) KeySet {
	return mapset.NewThreadUnsafeSet(keys...)
}

// SortedKeys returns the members of keys in lexical order; used wherever
// iteration order must be deterministic (requests, logs, tests).
func SortedKeys(keys KeySet) []string {
	if keys == nil {
		return nil
	}
	out := keys.ToSlice()
	slices.Sort(out)
	return out
}

// CloneKeys returns an independent copy of keys, preserving nil.
func CloneKeys(keys KeySet) KeySet {
	if keys == nil {
		return nil
	}
	return keys.Clone()
}

// IsEmptyKeys reports whether keys is nil or has no members.
func IsEmptyKeys(keys KeySet) bool {
	return keys == nil || keys.Cardinality() == 0
}
