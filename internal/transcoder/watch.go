// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package transcoder

import (
	"github.com/MKhiriev/go-sync-engine/internal/downstream"
	"github.com/MKhiriev/go-sync-engine/internal/remoteid"
	"github.com/MKhiriev/go-sync-engine/internal/single"
	"github.com/MKhiriev/go-sync-engine/internal/store"
	"github.com/MKhiriev/go-sync-engine/models"
)

// Watch refreshes the objects the user watches. Every answer flags the known
// watched objects stale and whitelists them; unknown ones are queued for
// download and whitelisted by a later refresh.
type Watch struct {
	entity    *Entity
	whitelist *downstream.WhitelistSync
	remote    *remoteid.ObjectSync
}

// NewWatch returns the watched-list transcoder of e.
func NewWatch(e *Entity, whitelist *downstream.WhitelistSync, remote *remoteid.ObjectSync) *Watch {
	return &Watch{entity: e, whitelist: whitelist, remote: remote}
}

// RequestForSingleRequestSync implements single.Transcoder.
func (w *Watch) RequestForSingleRequestSync(*single.RequestSync) *models.Request {
	return models.NewRequest(models.MethodGet, watchedPath(w.entity.Name()), nil)
}

// DidReceiveResponse implements single.Transcoder.
func (w *Watch) DidReceiveResponse(resp *models.Response, _ *single.RequestSync) {
	log := w.entity.log
	if resp.Result() != models.ResultSuccess {
		log.Debug().Int("status_code", resp.StatusCode).Msg("watched list unavailable")
		return
	}
	var body watchedPayload
	if err := resp.Decode(&body); err != nil {
		log.Warn().Err(err).Msg("malformed watched list")
		return
	}

	ctx, cancel := w.entity.storeContext()
	defer cancel()

	var unknown []string
	for _, id := range body.IDs {
		rec, err := w.entity.store.FindByRemoteID(ctx, w.entity.Name(), id)
		if store.IsNotFound(err) {
			unknown = append(unknown, id)
			continue
		}
		if err != nil {
			log.Err(err).Str("remote_id", id).Msg("failed to look up watched object")
			continue
		}
		w.entity.setFlag(rec, models.FlagNeedsUpdateFromBackend, true)
		w.whitelist.WhiteListObject(rec)
	}
	if len(unknown) > 0 {
		w.remote.AddRemoteIdentifiersThatNeedDownload(unknown)
	}
}
