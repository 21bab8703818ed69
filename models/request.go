// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"sync"

	"github.com/google/uuid"
)

// HTTP-style methods used by engine requests.
const (
	MethodGet    = "GET"
	MethodPost   = "POST"
	MethodPut    = "PUT"
	MethodPatch  = "PATCH"
	MethodDelete = "DELETE"
)

// CompletionHandler is invoked with the response of a request.
type CompletionHandler func(resp *Response)

// Request is an outbound transport request produced by a request generator.
// Requests are opaque to the transport beyond Method, Path, Query and Payload.
//
// A generator that needs to see the response attaches a completion handler;
// the scheduler calls Complete exactly once, on the engine's execution context.
type Request struct {
	// ID correlates the request with its response in logs.
	ID string
	// Method is the transport method (GET, POST, ...).
	Method string
	// Path is the request path relative to the transport base URL.
	Path string
	// Query holds query parameters.
	Query map[string]string
	// Payload is marshalled as the JSON body when non-nil.
	Payload any

	mu       sync.Mutex
	handlers []CompletionHandler
	done     bool
}

// NewRequest builds a request with a fresh identifier.
func NewRequest(method, path string, payload any) *Request {
	return &Request{
		ID:      uuid.NewString(),
		Method:  method,
		Path:    path,
		Payload: payload,
	}
}

// AddCompletionHandler registers h to run when the response arrives. Handlers
// run in registration order.
func (r *Request) AddCompletionHandler(h CompletionHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers = append(r.handlers, h)
}

// Complete delivers resp to every completion handler. Only the first call has
// any effect.
func (r *Request) Complete(resp *Response) {
	r.mu.Lock()
	if r.done {
		r.mu.Unlock()
		return
	}
	r.done = true
	handlers := r.handlers
	r.handlers = nil
	r.mu.Unlock()

	for _, h := range handlers {
		h(resp)
	}
}

// IsCompleted reports whether Complete was called.
func (r *Request) IsCompleted() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.done
}
