// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package transcoder

import (
	"net/url"
	"strings"

	"github.com/MKhiriev/go-sync-engine/models"
)

const (
	apiPrefix = "/api/"

	// QueryIDs carries the remote identifiers of a batch fetch.
	QueryIDs = "ids"
	// QueryFields restricts a fetch to the listed fields.
	QueryFields = "fields"
)

// writePayload is the body of create and update requests.
type writePayload struct {
	Fields map[string]any `json:"fields"`
}

// objectPayload is a server object as returned by every object endpoint.
// PendingFields lists fields the server did not handle in this round trip.
type objectPayload struct {
	ID            string         `json:"id"`
	Fields        map[string]any `json:"fields,omitempty"`
	Deleted       bool           `json:"deleted,omitempty"`
	PendingFields []string       `json:"pending_fields,omitempty"`
}

type batchPayload struct {
	Objects []objectPayload `json:"objects"`
}

type watchedPayload struct {
	IDs []string `json:"ids"`
}

// feedItem is one entry of the change feed.
type feedItem struct {
	Entity  string `json:"entity"`
	ID      string `json:"id"`
	Deleted bool   `json:"deleted,omitempty"`
}

type feedPage struct {
	Items []feedItem `json:"items"`
	Next  string     `json:"next"`
}

func collectionPath(entity string) string {
	return apiPrefix + url.PathEscape(entity)
}

func objectPath(entity, remoteID string) string {
	return collectionPath(entity) + "/" + url.PathEscape(remoteID)
}

func watchedPath(entity string) string {
	return collectionPath(entity) + "/watched"
}

// fieldsFor returns the current values of keys.
func fieldsFor(obj models.Object, keys models.KeySet) map[string]any {
	fields := make(map[string]any)
	for _, k := range models.SortedKeys(keys) {
		fields[k] = obj.Value(k)
	}
	return fields
}

func joinList(ids []string) string {
	return strings.Join(ids, ",")
}
