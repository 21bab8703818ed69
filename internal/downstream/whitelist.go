// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package downstream

import (
	mapset "github.com/deckarep/golang-set/v2"

	"github.com/MKhiriev/go-sync-engine/internal/opset"
	"github.com/MKhiriev/go-sync-engine/models"
)

// WhitelistSync is a downstream sync that only downloads objects explicitly
// whitelisted by the caller. A whitelisted object is evicted once it no
// longer matches the download predicate and nothing is pending for it.
type WhitelistSync struct {
	inner     *ObjectSync
	predicate models.Predicate
	whitelist mapset.Set[models.ObjectID]
}

// NewWhitelistSync returns a whitelist-gated downstream sync for entity. The
// options are those of NewObjectSync.
func NewWhitelistSync(entity string, transcoder Transcoder, opts ...Option) *WhitelistSync {
	w := &WhitelistSync{whitelist: mapset.NewThreadUnsafeSet[models.ObjectID]()}
	opts = append(opts,
		WithFilter(w.isWhitelisted),
		withCompletion(w.didComplete),
	)
	w.inner = NewObjectSync(entity, transcoder, opts...)
	w.predicate = w.inner.predicate
	return w
}

// Entity returns the synced entity name.
func (w *WhitelistSync) Entity() string { return w.inner.Entity() }

// WhiteListObject allows obj to be downloaded.
func (w *WhitelistSync) WhiteListObject(obj models.Object) {
	if obj == nil || obj.Entity() != w.inner.Entity() {
		return
	}
	w.whitelist.Add(obj.ID())
	w.inner.ObjectsDidChange([]models.Object{obj})
}

// IsWhitelisted reports whether obj is on the whitelist.
func (w *WhitelistSync) IsWhitelisted(obj models.Object) bool {
	return obj != nil && w.whitelist.Contains(obj.ID())
}

// NextRequest implements generator.Generator.
func (w *WhitelistSync) NextRequest() *models.Request {
	return w.inner.NextRequest()
}

// SetExclusion replaces the set of sibling claims to skip.
func (w *WhitelistSync) SetExclusion(e opset.Exclusion) {
	w.inner.SetExclusion(e)
}

// IsClaimed implements opset.Exclusion.
func (w *WhitelistSync) IsClaimed(obj models.Object) bool {
	return w.inner.IsClaimed(obj)
}

// ObjectsDidChange implements changes.Tracker.
func (w *WhitelistSync) ObjectsDidChange(objects []models.Object) {
	w.inner.ObjectsDidChange(objects)
	for _, obj := range objects {
		if w.IsWhitelisted(obj) {
			w.evictIfDone(obj)
		}
	}
}

// FetchRequestForTrackedObjects implements changes.Tracker. The whitelist
// starts empty, so there is nothing to bootstrap.
func (w *WhitelistSync) FetchRequestForTrackedObjects() *models.FetchRequest {
	return nil
}

// AddTrackedObjects implements changes.Tracker.
func (w *WhitelistSync) AddTrackedObjects([]models.Object) {}

// HasOutstandingItems reports whether any whitelisted object is pending.
func (w *WhitelistSync) HasOutstandingItems() bool {
	return w.inner.HasOutstandingItems()
}

func (w *WhitelistSync) isWhitelisted(obj models.Object) bool {
	return w.whitelist.Contains(obj.ID())
}

func (w *WhitelistSync) didComplete(obj models.Object, result models.Result) {
	if result == models.ResultPermanentError {
		w.whitelist.Remove(obj.ID())
		return
	}
	w.evictIfDone(obj)
}

func (w *WhitelistSync) evictIfDone(obj models.Object) {
	if obj.IsDeleted() || (!w.predicate.Match(obj) && !w.inner.Contains(obj)) {
		w.whitelist.Remove(obj.ID())
	}
}
