// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package modified

import (
	"fmt"

	"github.com/MKhiriev/go-sync-engine/models"
)

// Token is the immutable record of one in-flight upstream sync attempt: which
// keys of which object are being synced and what their values were when the
// request was built.
type Token struct {
	id       uint64
	objectID models.ObjectID
	keys     models.KeySet
	snapshot Snapshot
}

// ID returns the monotonically increasing identifier of the token.
func (t *Token) ID() uint64 { return t.id }

// ObjectID returns the identity of the object the token belongs to.
func (t *Token) ObjectID() models.ObjectID { return t.objectID }

// Keys returns a copy of the keys being synced.
func (t *Token) Keys() models.KeySet { return t.keys.Clone() }

// Value returns the snapshotted value of key.
func (t *Token) Value(key string) (any, bool) {
	v, ok := t.snapshot[key]
	return v, ok
}

// String implements fmt.Stringer.
func (t *Token) String() string {
	return fmt.Sprintf("token#%d(%s %v)", t.id, t.objectID, models.SortedKeys(t.keys))
}

// ObjectWithKeys pairs an object with the non-empty subset of its dirty keys
// selected for the next sync attempt.
type ObjectWithKeys struct {
	Object models.Object
	Keys   models.KeySet
}
