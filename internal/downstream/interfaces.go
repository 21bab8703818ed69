// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package downstream

import "github.com/MKhiriev/go-sync-engine/models"

//go:generate mockgen -source=interfaces.go -destination=mock_interfaces_test.go -package=downstream

// Transcoder builds fetch requests for local objects and applies the
// responses.
type Transcoder interface {
	// RequestForFetchingObject returns a request fetching obj, or nil.
	// remainingKeys holds the keys still missing from an earlier partial
	// fetch; nil means a full fetch.
	RequestForFetchingObject(obj models.Object, remainingKeys models.KeySet, sync *ObjectSync) *models.Request

	// UpdateObject merges a successful response. Only keysToApply may be
	// overwritten; nil means every key. The transcoder may call
	// sync.SetRemainingKeys to schedule a follow-up fetch.
	UpdateObject(obj models.Object, resp *models.Response, keysToApply models.KeySet, sync *ObjectSync)

	// DeleteObject handles a permanent error, typically a remote 404.
	DeleteObject(obj models.Object, resp *models.Response, sync *ObjectSync)
}
