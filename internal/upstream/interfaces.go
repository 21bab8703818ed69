// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package upstream

import "github.com/MKhiriev/go-sync-engine/models"

//go:generate mockgen -source=interfaces.go -destination=mock_interfaces_test.go -package=upstream

// UpdateTranscoder builds update requests for objects known to the server and
// applies their responses.
type UpdateTranscoder interface {
	// RequestForUpdating returns a request pushing keys of obj, or nil if the
	// object cannot be synced right now. The returned Request.Keys may narrow
	// keys further.
	RequestForUpdating(obj models.Object, keys models.KeySet) *Request

	// UpdateUpdatedObject applies a successful response. keysToParse are the
	// keys that were sent. It returns true if more requests are needed to
	// push the remaining keys.
	UpdateUpdatedObject(obj models.Object, req *Request, resp *models.Response, keysToParse models.KeySet) bool

	// ShouldRetryAfterFailedUpdate is asked after a permanent error. Returning
	// true keeps the keys dirty for another attempt.
	ShouldRetryAfterFailedUpdate(obj models.Object, req *Request, resp *models.Response, keys models.KeySet) bool
}

// InsertTranscoder builds create requests for objects without a remote
// identity and applies their responses.
type InsertTranscoder interface {
	// RequestForInserting returns a request creating obj on the server, or nil.
	RequestForInserting(obj models.Object, keys models.KeySet) *Request

	// UpdateInsertedObject applies a successful response; it is expected to
	// assign the remote identity.
	UpdateInsertedObject(obj models.Object, req *Request, resp *models.Response)

	// ShouldRetryAfterFailedInsert is asked after a permanent error. Returning
	// false drops the object from the pending set.
	ShouldRetryAfterFailedInsert(obj models.Object, req *Request, resp *models.Response) bool
}

// FailureReporter is optionally implemented by transcoders that want to be
// told about permanently failed requests.
type FailureReporter interface {
	DidFailToSynchronize(err *SyncError)
}
