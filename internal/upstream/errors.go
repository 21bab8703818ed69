// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package upstream

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/go-sync-engine/models"
)

// ErrPermanentFailure marks an upstream request the server rejected for good.
var ErrPermanentFailure = errors.New("upstream request failed permanently")

// SyncError describes a permanently failed upstream request.
type SyncError struct {
	Entity     string
	ObjectID   models.ObjectID
	Keys       []string
	StatusCode int
	Err        error
}

func newSyncError(entity string, obj models.Object, keys models.KeySet, resp *models.Response) *SyncError {
	e := &SyncError{
		Entity:   entity,
		ObjectID: obj.ID(),
		Keys:     models.SortedKeys(keys),
		Err:      ErrPermanentFailure,
	}
	if resp != nil {
		e.StatusCode = resp.StatusCode
		if resp.Err != nil {
			e.Err = fmt.Errorf("%w: %w", ErrPermanentFailure, resp.Err)
		}
	}
	return e
}

func (e *SyncError) Error() string {
	return fmt.Sprintf("sync %s %s %v: status %d: %v", e.Entity, e.ObjectID, e.Keys, e.StatusCode, e.Err)
}

func (e *SyncError) Unwrap() error {
	return e.Err
}
