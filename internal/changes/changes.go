// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package changes carries local store change events to the synchronizers.
//
// There is no ambient observer registry: the store reports which objects
// changed, and the owner of the trackers (the scheduler) fans the event out
// explicitly through a Trackers value.
package changes

import "github.com/MKhiriev/go-sync-engine/models"

// Tracker is implemented by every object synchronizer that reacts to local
// store changes.
type Tracker interface {
	// ObjectsDidChange is called with every object whose fields, flags, remote
	// identity or deletion state changed.
	ObjectsDidChange(objects []models.Object)

	// FetchRequestForTrackedObjects returns the query whose result seeds the
	// tracker at start-up, or nil if the tracker starts empty.
	FetchRequestForTrackedObjects() *models.FetchRequest

	// AddTrackedObjects seeds the tracker with the result of its fetch request.
	AddTrackedObjects(objects []models.Object)
}

// Trackers fans change events out to an ordered list of trackers.
type Trackers []Tracker

// ObjectsDidChange forwards objects to every tracker in order.
func (t Trackers) ObjectsDidChange(objects []models.Object) {
	if len(objects) == 0 {
		return
	}
	for _, tr := range t {
		tr.ObjectsDidChange(objects)
	}
}

// ForEntity returns the subset of objects belonging to entity.
func ForEntity(entity string, objects []models.Object) []models.Object {
	out := make([]models.Object, 0, len(objects))
	for _, obj := range objects {
		if obj != nil && obj.Entity() == entity {
			out = append(out, obj)
		}
	}
	return out
}
