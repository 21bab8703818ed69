// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package upstream

import "github.com/MKhiriev/go-sync-engine/models"

// Request correlates an outbound transport request with the local keys it
// carries, so the response handler knows exactly what was attempted.
type Request struct {
	// Keys is the subset of dirty keys the transport request carries. Nil
	// means every key offered to the transcoder.
	Keys models.KeySet
	// Transport is the request handed to the transport.
	Transport *models.Request
	// Response is set once the transport delivered a response.
	Response *models.Response
	// UserInfo carries transcoder-private context from request to response.
	UserInfo map[string]any
}

// NewRequest wraps a transport request carrying keys.
func NewRequest(keys models.KeySet, transport *models.Request) *Request {
	return &Request{Keys: keys, Transport: transport}
}
