// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package paginator

import "github.com/MKhiriev/go-sync-engine/models"

//go:generate mockgen -source=interfaces.go -destination=mock_interfaces_test.go -package=paginator

// Transcoder consumes list pages.
type Transcoder interface {
	// NextUUIDFromResponse processes a page and returns the cursor of the
	// next one.
	NextUUIDFromResponse(resp *models.Response, paginator *Paginator) string
}

// StartUUIDProvider is optionally implemented by transcoders whose first
// page starts at a known cursor.
type StartUUIDProvider interface {
	StartUUID() string
}

// ErrorParser is optionally implemented by transcoders that want to parse
// permanent error responses as pages.
type ErrorParser interface {
	ShouldParseErrorForResponse(resp *models.Response) bool
}
