// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package single

import "github.com/MKhiriev/go-sync-engine/models"

//go:generate mockgen -source=interfaces.go -destination=mock_interfaces_test.go -package=single

// Transcoder builds the single request and handles its response.
type Transcoder interface {
	RequestForSingleRequestSync(sync *RequestSync) *models.Request
	DidReceiveResponse(resp *models.Response, sync *RequestSync)
}
