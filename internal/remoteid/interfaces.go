// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package remoteid

import "github.com/MKhiriev/go-sync-engine/models"

//go:generate mockgen -source=interfaces.go -destination=mock_interfaces_test.go -package=remoteid

// Transcoder builds batched fetch requests for remote identifiers.
type Transcoder interface {
	// MaximumRemoteIdentifiersPerRequest is the batch size limit. It is asked
	// before every request and may change between calls.
	MaximumRemoteIdentifiersPerRequest() int

	// RequestForObjectsWithIdentifiers returns a request fetching ids, or nil.
	RequestForObjectsWithIdentifiers(ids []string, sync *ObjectSync) *models.Request

	// DidReceiveResponseForObjectsWithIdentifiers handles a successful or
	// permanently failed response for ids. It may re-add identifiers with
	// AddRemoteIdentifiersThatNeedDownload to retry them.
	DidReceiveResponseForObjectsWithIdentifiers(resp *models.Response, ids []string, sync *ObjectSync)
}
