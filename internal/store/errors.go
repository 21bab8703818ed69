// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "errors"

// Sentinel errors returned by the object store. Callers should use
// [errors.Is] to match against these values.
var (
	// ErrObjectNotFound is returned when no object matches the requested
	// local or remote identity.
	ErrObjectNotFound = errors.New("object not found")

	// ErrForeignObject is returned when a mutation receives a models.Object
	// that was not produced by this store.
	ErrForeignObject = errors.New("object does not belong to this store")

	// ErrObjectPurged is returned when mutating an object after Purge.
	ErrObjectPurged = errors.New("object was purged")
)

// Low-level database operation errors, wrapped together with the driver error.
var (
	// ErrBuildingSQLQuery is returned when constructing a SQL query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the driver cannot start a transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction fails.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when an INSERT, UPDATE or DELETE fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRows is returned when scanning a result row fails.
	ErrScanningRows = errors.New("failed to scan object rows")

	// ErrEncodingObject is returned when fields or keys cannot be encoded
	// to or decoded from their JSON columns.
	ErrEncodingObject = errors.New("failed to encode object columns")
)
