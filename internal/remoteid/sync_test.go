// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package remoteid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-sync-engine/models"
)

func batchRequest() *models.Request {
	return models.NewRequest(models.MethodGet, "/api/note", nil)
}

func assertDisjoint(t *testing.T, s *ObjectSync) {
	t.Helper()
	assert.Zero(t, s.pending.Intersect(s.downloading).Cardinality(), "identifier both pending and in flight")
}

func TestObjectSync_BatchesUpToLimit(t *testing.T) {
	ctrl := gomock.NewController(t)
	tr := NewMockTranscoder(ctrl)
	s := NewObjectSync(tr)
	s.SetRemoteIdentifiersAsNeedingDownload([]string{"u3", "u1", "u2"})
	assert.False(t, s.IsDone())

	req := batchRequest()
	tr.EXPECT().MaximumRemoteIdentifiersPerRequest().Return(2)
	tr.EXPECT().RequestForObjectsWithIdentifiers([]string{"u1", "u2"}, s).Return(req)

	require.Same(t, req, s.NextRequest())
	assert.Equal(t, 1, s.pending.Cardinality())
	assert.Equal(t, 2, s.downloading.Cardinality())
	assertDisjoint(t, s)

	tr.EXPECT().DidReceiveResponseForObjectsWithIdentifiers(gomock.Any(), []string{"u1", "u2"}, s)
	req.Complete(&models.Response{StatusCode: 200})

	assert.Zero(t, s.downloading.Cardinality())
	assert.Equal(t, []string{"u3"}, s.RemoteIdentifiersThatWillBeDownloaded())
}

func TestObjectSync_PermanentFailureClearsBatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	tr := NewMockTranscoder(ctrl)
	s := NewObjectSync(tr)
	s.AddRemoteIdentifiersThatNeedDownload([]string{"u1", "u2"})

	req := batchRequest()
	tr.EXPECT().MaximumRemoteIdentifiersPerRequest().Return(10)
	tr.EXPECT().RequestForObjectsWithIdentifiers(gomock.Any(), s).Return(req)
	tr.EXPECT().DidReceiveResponseForObjectsWithIdentifiers(gomock.Any(), []string{"u1", "u2"}, s)

	s.NextRequest()
	req.Complete(&models.Response{StatusCode: 400})

	assert.True(t, s.IsDone())
	assert.Nil(t, s.NextRequest())
}

func TestObjectSync_TranscoderMayRequeue(t *testing.T) {
	ctrl := gomock.NewController(t)
	tr := NewMockTranscoder(ctrl)
	s := NewObjectSync(tr)
	s.AddRemoteIdentifiersThatNeedDownload([]string{"u1", "u2"})

	req := batchRequest()
	tr.EXPECT().MaximumRemoteIdentifiersPerRequest().Return(10)
	tr.EXPECT().RequestForObjectsWithIdentifiers(gomock.Any(), s).Return(req)
	tr.EXPECT().DidReceiveResponseForObjectsWithIdentifiers(gomock.Any(), gomock.Any(), s).Do(
		func(_ *models.Response, ids []string, sync *ObjectSync) {
			sync.AddRemoteIdentifiersThatNeedDownload(ids[1:])
		})

	s.NextRequest()
	req.Complete(&models.Response{StatusCode: 200})

	assert.Equal(t, []string{"u2"}, s.RemoteIdentifiersThatWillBeDownloaded())
}

func TestObjectSync_TransientFailureReturnsBatchToPending(t *testing.T) {
	ctrl := gomock.NewController(t)
	tr := NewMockTranscoder(ctrl)
	s := NewObjectSync(tr)
	s.AddRemoteIdentifiersThatNeedDownload([]string{"u1"})

	req := batchRequest()
	tr.EXPECT().MaximumRemoteIdentifiersPerRequest().Return(10)
	tr.EXPECT().RequestForObjectsWithIdentifiers(gomock.Any(), s).Return(req)

	s.NextRequest()
	req.Complete(&models.Response{StatusCode: 503})

	assert.Equal(t, 1, s.pending.Cardinality())
	assert.Zero(t, s.downloading.Cardinality())
	assert.False(t, s.IsDone())
}

func TestObjectSync_SetKeepsInFlightIdentifiersInFlight(t *testing.T) {
	ctrl := gomock.NewController(t)
	tr := NewMockTranscoder(ctrl)
	s := NewObjectSync(tr)
	s.AddRemoteIdentifiersThatNeedDownload([]string{"u1"})

	tr.EXPECT().MaximumRemoteIdentifiersPerRequest().Return(1)
	tr.EXPECT().RequestForObjectsWithIdentifiers(gomock.Any(), s).Return(batchRequest())
	require.NotNil(t, s.NextRequest())

	s.SetRemoteIdentifiersAsNeedingDownload([]string{"u1", "u9"})

	assert.True(t, s.downloading.Contains("u1"))
	assert.False(t, s.pending.Contains("u1"))
	assert.True(t, s.pending.Contains("u9"))
	assertDisjoint(t, s)
	assert.Equal(t, []string{"u1", "u9"}, s.RemoteIdentifiersThatWillBeDownloaded())

	s.SetRemoteIdentifiersAsNeedingDownload(nil)
	assert.Zero(t, s.pending.Cardinality())
	assert.False(t, s.IsDone(), "in-flight batch still outstanding")
}

func TestObjectSync_NothingMovesWithoutRequest(t *testing.T) {
	ctrl := gomock.NewController(t)
	tr := NewMockTranscoder(ctrl)
	s := NewObjectSync(tr)
	s.AddRemoteIdentifiersThatNeedDownload([]string{"u1"})

	tr.EXPECT().MaximumRemoteIdentifiersPerRequest().Return(5)
	tr.EXPECT().RequestForObjectsWithIdentifiers(gomock.Any(), s).Return(nil)
	assert.Nil(t, s.NextRequest())

	tr.EXPECT().MaximumRemoteIdentifiersPerRequest().Return(0)
	assert.Nil(t, s.NextRequest())

	assert.True(t, s.pending.Contains("u1"))
	assert.Zero(t, s.downloading.Cardinality())
}
