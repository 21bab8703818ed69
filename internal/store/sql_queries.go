// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-sync-engine/models"
)

const (
	objectsTable = "objects"
	flagsTable   = "object_flags"
)

var objectColumns = []string{
	"id", "entity", "remote_id", "fields", "modified_keys", "deleted", "created_at", "updated_at",
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Question)

// buildFetchQuery translates the store-evaluated part of a fetch request.
func buildFetchQuery(req *models.FetchRequest) (string, []any, error) {
	q := psql.Select(objectColumns...).
		From(objectsTable).
		Where(sq.Eq{"entity": req.Entity})

	switch req.RemoteID {
	case models.WithRemoteID:
		q = q.Where(sq.NotEq{"remote_id": nil})
	case models.WithoutRemoteID:
		q = q.Where(sq.Eq{"remote_id": nil})
	}
	if req.ModifiedOnly {
		q = q.Where(sq.NotEq{"modified_keys": "[]"})
	}
	if !req.IncludeDeleted {
		q = q.Where(sq.Eq{"deleted": false})
	}
	for _, flag := range req.Flags {
		q = q.Where(sq.Expr("id IN (SELECT object_id FROM "+flagsTable+" WHERE flag = ?)", flag))
	}

	query, args, err := q.OrderBy("created_at", "id").ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildSelectByIDQuery(id models.ObjectID) (string, []any, error) {
	query, args, err := psql.Select(objectColumns...).
		From(objectsTable).
		Where(sq.Eq{"id": string(id)}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildSelectByRemoteIDQuery(entity, remoteID string) (string, []any, error) {
	query, args, err := psql.Select(objectColumns...).
		From(objectsTable).
		Where(sq.Eq{"entity": entity, "remote_id": remoteID}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildSelectFlagsQuery(ids []string) (string, []any, error) {
	query, args, err := psql.Select("object_id", "flag").
		From(flagsTable).
		Where(sq.Eq{"object_id": ids}).
		OrderBy("object_id", "flag").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

// buildUpsertObjectQuery inserts rw or overwrites every mutable column.
func buildUpsertObjectQuery(rw row) (string, []any, error) {
	fields, err := json.Marshal(rw.fields)
	if err != nil {
		return "", nil, fmt.Errorf("%w: fields of %s: %w", ErrEncodingObject, rw.id, err)
	}
	modified := rw.modified
	if modified == nil {
		modified = []string{}
	}
	keys, err := json.Marshal(modified)
	if err != nil {
		return "", nil, fmt.Errorf("%w: keys of %s: %w", ErrEncodingObject, rw.id, err)
	}

	var remoteID any
	if rw.remoteID != "" {
		remoteID = rw.remoteID
	}

	query, args, err := psql.Insert(objectsTable).
		Columns(objectColumns...).
		Values(string(rw.id), rw.entity, remoteID, string(fields), string(keys), rw.deleted, rw.createdAt, rw.updatedAt).
		Suffix("ON CONFLICT(id) DO UPDATE SET " +
			"remote_id = excluded.remote_id, " +
			"fields = excluded.fields, " +
			"modified_keys = excluded.modified_keys, " +
			"deleted = excluded.deleted, " +
			"updated_at = excluded.updated_at").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildDeleteFlagsQuery(id models.ObjectID) (string, []any, error) {
	query, args, err := psql.Delete(flagsTable).Where(sq.Eq{"object_id": string(id)}).ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildInsertFlagsQuery(id models.ObjectID, flags []string) (string, []any, error) {
	q := psql.Insert(flagsTable).Columns("object_id", "flag")
	for _, flag := range flags {
		q = q.Values(string(id), flag)
	}
	query, args, err := q.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildDeleteObjectQuery(id models.ObjectID) (string, []any, error) {
	query, args, err := psql.Delete(objectsTable).Where(sq.Eq{"id": string(id)}).ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}
