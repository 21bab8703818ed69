// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package transcoder implements the synchronizer transcoders for a generic
// JSON/REST backend.
//
// Every configured entity is served under /api/{entity}:
//
//	POST  /api/{entity}               create, answers {"id": ...}
//	PATCH /api/{entity}/{remote_id}   push the modified fields
//	GET   /api/{entity}/{remote_id}   fetch one object (404/410: gone)
//	GET   /api/{entity}?ids=a,b       fetch a batch of objects
//	GET   /api/{entity}/watched       remote ids the user watches
//
// The change feed is a paginated list of {entity, id, deleted} items whose
// identifiers are handed to the per-entity remote identifier syncs.
//
// Transcoders are called on the scheduler goroutine and write their results
// to the local store.
package transcoder
