// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package scheduler

import (
	"context"

	"github.com/MKhiriev/go-sync-engine/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// ObjectStore is the part of the local store the scheduler drives.
type ObjectStore interface {
	// Fetch runs a tracker's bootstrap query.
	Fetch(ctx context.Context, req *models.FetchRequest) ([]models.Object, error)

	// ProcessPendingChanges returns, and forgets, every object changed since
	// the previous call.
	ProcessPendingChanges() []models.Object
}
