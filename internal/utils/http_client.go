// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"context"

	"github.com/go-resty/resty/v2"
)

// Header names set on every outbound engine request.
const (
	HeaderRequestID = "X-Request-ID"
	HeaderUserAgent = "User-Agent"
)

// DefaultUserAgent identifies the daemon to the backend.
const DefaultUserAgent = "go-sync-engine"

// HTTPClient is a wrapper around the resty.Client HTTP client.
// It embeds *resty.Client to expose all of its methods directly.
//
// Example usage:
//
//	client := utils.NewHTTPClient("")
//	resp, err := client.Request(ctx, id).Get("https://example.com")
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient creates an HTTPClient with its own connection pool. Resty's
// built-in retries stay disabled; retrying is the scheduler's job.
// An empty userAgent selects DefaultUserAgent.
func NewHTTPClient(userAgent string) *HTTPClient {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	client := resty.New().
		SetRetryCount(0).
		SetHeader(HeaderUserAgent, userAgent)

	return &HTTPClient{Client: client}
}

// Request starts a request bound to ctx that carries requestID, when set,
// in the X-Request-ID header.
func (c *HTTPClient) Request(ctx context.Context, requestID string) *resty.Request {
	r := c.R().SetContext(ctx)
	if requestID != "" {
		r.SetHeader(HeaderRequestID, requestID)
	}
	return r
}
