// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package generator defines the request generator contract polled by the
// scheduler and its composable ordered list.
package generator

import "github.com/MKhiriev/go-sync-engine/models"

// Generator produces the next request a synchronizer wants to send.
//
// NextRequest never blocks and never fails: it returns nil when there is
// nothing to do or when a conflicting request is already in flight.
type Generator interface {
	NextRequest() *models.Request
}

// Func adapts a plain function to Generator.
type Func func() *models.Request

// NextRequest implements Generator.
func (f Func) NextRequest() *models.Request {
	return f()
}

// List is itself a Generator: it polls its members in order and returns the
// first non-nil request. Earlier members have priority.
type List []Generator

// NextRequest implements Generator.
func (l List) NextRequest() *models.Request {
	for _, g := range l {
		if g == nil {
			continue
		}
		if req := g.NextRequest(); req != nil {
			return req
		}
	}
	return nil
}
