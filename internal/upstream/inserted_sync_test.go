// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package upstream

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-sync-engine/internal/objecttest"
	"github.com/MKhiriev/go-sync-engine/models"
)

type reportingInsertTranscoder struct {
	*MockInsertTranscoder
	*MockFailureReporter
}

func newNote(id string) *objecttest.Object {
	return objecttest.New("note", models.ObjectID(id)).Set("title", "t0").Set("body", "b0")
}

func insertRequest() *Request {
	return NewRequest(nil, models.NewRequest(models.MethodPost, "/api/note", nil))
}

func TestInsertedSync_OneRequestPerObject(t *testing.T) {
	ctrl := gomock.NewController(t)
	tr := NewMockInsertTranscoder(ctrl)
	s := NewInsertedObjectSync("note", tr)
	obj := newNote("1")
	s.ObjectsDidChange(objecttest.Objects(obj, objecttest.New("note", "2").SetRemoteID("r2")))

	req := insertRequest()
	tr.EXPECT().RequestForInserting(obj, gomock.Any()).DoAndReturn(
		func(_ models.Object, keys models.KeySet) *Request {
			assert.Equal(t, []string{"body", "title"}, models.SortedKeys(keys))
			return req
		})

	assert.Same(t, req.Transport, s.NextRequest())
	assert.Nil(t, s.NextRequest())

	// a change notification while in flight does not duplicate the object
	s.ObjectsDidChange(objecttest.Objects(obj))
	assert.Nil(t, s.NextRequest())
	assert.True(t, s.HasOutstandingItems())
}

func TestInsertedSync_SuccessAssignsRemoteIdentity(t *testing.T) {
	ctrl := gomock.NewController(t)
	tr := NewMockInsertTranscoder(ctrl)
	s := NewInsertedObjectSync("note", tr)
	obj := newNote("1")
	s.AddTrackedObjects(objecttest.Objects(obj))

	req := insertRequest()
	tr.EXPECT().RequestForInserting(obj, gomock.Any()).Return(req)
	tr.EXPECT().UpdateInsertedObject(obj, req, gomock.Any()).Do(
		func(o models.Object, _ *Request, _ *models.Response) {
			o.(*objecttest.Object).SetRemoteID("r1")
		})

	transport := s.NextRequest()
	require.NotNil(t, transport)

	obj.Set("body", "b1")
	respond(transport, 201)

	assert.Equal(t, "r1", obj.RemoteID())
	assert.Equal(t, []string{"body"}, models.SortedKeys(obj.ModifiedKeys()), "edit made during creation stays dirty")
	assert.False(t, s.HasOutstandingItems())
	assert.Nil(t, s.NextRequest())
}

func TestInsertedSync_TransientFailureKeepsPending(t *testing.T) {
	ctrl := gomock.NewController(t)
	tr := NewMockInsertTranscoder(ctrl)
	s := NewInsertedObjectSync("note", tr)
	obj := newNote("1")
	s.ObjectsDidChange(objecttest.Objects(obj))

	tr.EXPECT().RequestForInserting(obj, gomock.Any()).Return(insertRequest()).Times(2)

	respond(s.NextRequest(), 500)
	assert.True(t, s.HasOutstandingItems())
	assert.NotNil(t, s.NextRequest())
}

func TestInsertedSync_ObjectDeletedWhileInFlight(t *testing.T) {
	t.Run("transient failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		tr := NewMockInsertTranscoder(ctrl)
		s := NewInsertedObjectSync("note", tr)
		obj := newNote("1")
		s.ObjectsDidChange(objecttest.Objects(obj))

		tr.EXPECT().RequestForInserting(obj, gomock.Any()).Return(insertRequest())
		transport := s.NextRequest()
		require.NotNil(t, transport)

		obj.MarkDeleted()
		s.ObjectsDidChange(objecttest.Objects(obj))
		assert.True(t, s.HasOutstandingItems(), "kept until the response arrives")

		respond(transport, 503)

		assert.False(t, s.HasOutstandingItems())
		assert.Nil(t, s.NextRequest())
	})

	t.Run("permanent failure with retry", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		tr := NewMockInsertTranscoder(ctrl)
		s := NewInsertedObjectSync("note", tr)
		obj := newNote("1")
		s.ObjectsDidChange(objecttest.Objects(obj))

		req := insertRequest()
		tr.EXPECT().RequestForInserting(obj, gomock.Any()).Return(req)
		tr.EXPECT().ShouldRetryAfterFailedInsert(obj, req, gomock.Any()).Return(true)
		transport := s.NextRequest()
		require.NotNil(t, transport)

		obj.MarkDeleted()
		respond(transport, 422)

		assert.False(t, s.HasOutstandingItems())
		assert.Nil(t, s.NextRequest())
	})
}

func TestInsertedSync_PermanentFailure(t *testing.T) {
	t.Run("retry keeps the object", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		tr := NewMockInsertTranscoder(ctrl)
		s := NewInsertedObjectSync("note", tr)
		obj := newNote("1")
		s.ObjectsDidChange(objecttest.Objects(obj))

		req := insertRequest()
		tr.EXPECT().RequestForInserting(obj, gomock.Any()).Return(req)
		tr.EXPECT().ShouldRetryAfterFailedInsert(obj, req, gomock.Any()).Return(true)

		respond(s.NextRequest(), 422)
		assert.True(t, s.HasOutstandingItems())
	})

	t.Run("no retry drops and reports", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		tr := reportingInsertTranscoder{NewMockInsertTranscoder(ctrl), NewMockFailureReporter(ctrl)}
		s := NewInsertedObjectSync("note", tr)
		obj := newNote("1")
		s.ObjectsDidChange(objecttest.Objects(obj))

		req := insertRequest()
		tr.MockInsertTranscoder.EXPECT().RequestForInserting(obj, gomock.Any()).Return(req)
		tr.MockInsertTranscoder.EXPECT().ShouldRetryAfterFailedInsert(obj, req, gomock.Any()).Return(false)
		tr.MockFailureReporter.EXPECT().DidFailToSynchronize(gomock.Any()).Do(func(err *SyncError) {
			assert.ErrorIs(t, err, ErrPermanentFailure)
			assert.Equal(t, []string{"body", "title"}, err.Keys)
		})

		respond(s.NextRequest(), 422)
		assert.False(t, s.HasOutstandingItems())
		assert.Nil(t, s.NextRequest())
	})
}

func TestInsertedSync_ObjectsLeavingScope(t *testing.T) {
	ctrl := gomock.NewController(t)
	tr := NewMockInsertTranscoder(ctrl)
	s := NewInsertedObjectSync("note", tr, WithFilter(func(o models.Object) bool {
		return o.Value("draft") != true
	}))

	created, deleted, draft := newNote("1"), newNote("2"), newNote("3").Apply("draft", true)
	s.ObjectsDidChange(objecttest.Objects(created, deleted, draft))
	assert.True(t, s.HasOutstandingItems())

	created.SetRemoteID("r1")
	deleted.MarkDeleted()
	s.ObjectsDidChange(objecttest.Objects(created, deleted))

	assert.False(t, s.HasOutstandingItems())

	fr := s.FetchRequestForTrackedObjects()
	assert.Equal(t, models.WithoutRemoteID, fr.RemoteID)
	assert.False(t, fr.Predicate.Match(draft))
}

func TestInsertedObjectSet_StaleToken(t *testing.T) {
	set := NewInsertedObjectSet()
	obj := newNote("1")
	set.Add(obj)

	token := set.DidStartInserting(obj, models.NewKeySet("title"))
	require.NotNil(t, token)
	assert.Nil(t, set.DidStartInserting(obj, nil))
	assert.Equal(t, []string{"title"}, models.SortedKeys(token.Keys()))

	set.Remove(obj)
	assert.False(t, set.IsCurrent(token))
	assert.False(t, set.DidFinishInserting(token))
	assert.False(t, set.DidFailInserting(token))
}
