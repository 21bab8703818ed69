// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"errors"
	"net/http"
)

// ErrRequestExpired is used as Response.Err when the transport gave up on a
// request before any answer arrived.
var ErrRequestExpired = errors.New("request expired")

// Result classifies a transport response for the synchronizers.
type Result int

const (
	// ResultSuccess is any 2xx answer.
	ResultSuccess Result = iota
	// ResultTemporaryError is a transient failure: network error, timeout,
	// rate limiting or a 5xx answer. The work is retried on a later pass.
	ResultTemporaryError
	// ResultPermanentError is a 4xx answer: the request itself is invalid.
	ResultPermanentError
	// ResultExpired means the transport dropped the request without an answer.
	ResultExpired
)

// String implements fmt.Stringer.
func (r Result) String() string {
	switch r {
	case ResultSuccess:
		return "success"
	case ResultTemporaryError:
		return "temporary_error"
	case ResultPermanentError:
		return "permanent_error"
	case ResultExpired:
		return "expired"
	default:
		return "unknown"
	}
}

// IsTransient reports whether the work behind the response should be retried
// later with unchanged state.
func (r Result) IsTransient() bool {
	return r == ResultTemporaryError || r == ResultExpired
}

// Response is what the transport delivered for a Request.
type Response struct {
	// StatusCode is the status of the answer, or 0 if none arrived.
	StatusCode int
	// Payload is the raw response body.
	Payload json.RawMessage
	// Err is the transport-level error, if any.
	Err error
}

// Result classifies the response.
func (r *Response) Result() Result {
	if r == nil {
		return ResultExpired
	}
	if r.Err != nil && r.StatusCode == 0 {
		if errors.Is(r.Err, ErrRequestExpired) {
			return ResultExpired
		}
		return ResultTemporaryError
	}

	switch {
	case r.StatusCode >= http.StatusOK && r.StatusCode < http.StatusMultipleChoices:
		return ResultSuccess
	case r.StatusCode == http.StatusRequestTimeout,
		r.StatusCode == http.StatusTooManyRequests,
		r.StatusCode == 420, // enhance-your-calm rate limiting
		r.StatusCode >= http.StatusInternalServerError:
		return ResultTemporaryError
	case r.StatusCode >= http.StatusBadRequest:
		return ResultPermanentError
	default:
		return ResultTemporaryError
	}
}

// Decode unmarshals the JSON payload into v.
func (r *Response) Decode(v any) error {
	if r == nil || len(r.Payload) == 0 {
		return errors.New("empty response payload")
	}
	return json.Unmarshal(r.Payload, v)
}
