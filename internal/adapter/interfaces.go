// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter carries engine requests to the remote service.
//
// The primary abstraction is [Transport]: an opaque request/response channel
// that never returns an error directly. Transport failures are reported
// through [models.Response.Err], and non-2xx statuses are additionally mapped
// by mapHTTPError to the sentinel values in errors.go so that transcoders
// can use [errors.Is] (e.g. [ErrNotFound] for 404, [ErrConflict] for 409).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-sync-engine/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/transport_mock.go -package=mock

// Transport sends one engine request and returns its response. The response
// is never nil.
type Transport interface {
	Do(ctx context.Context, req *models.Request) *models.Response
}
