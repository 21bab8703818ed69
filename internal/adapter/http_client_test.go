// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-sync-engine/internal/config"
	"github.com/MKhiriev/go-sync-engine/internal/logger"
	"github.com/MKhiriev/go-sync-engine/models"
)

// newTestTransport creates an httpTransport pointed at the test server.
func newTestTransport(t *testing.T, serverURL string) Transport {
	t.Helper()
	tr, err := NewHTTPTransport(config.Transport{
		BaseURL:        serverURL,
		RequestTimeout: 2 * time.Second,
		AuthToken:      "secret",
	}, logger.Nop())
	require.NoError(t, err)
	return tr
}

// ── construction ────────────────────────────────────────────────────────────

func TestNewHTTPTransport_InvalidBaseURL(t *testing.T) {
	_, err := NewHTTPTransport(config.Transport{BaseURL: "  "}, logger.Nop())
	assert.Error(t, err)

	_, err = NewHTTPTransport(config.Transport{BaseURL: "http://"}, logger.Nop())
	assert.Error(t, err)
}

func TestNormalizeBaseURL(t *testing.T) {
	got, err := normalizeBaseURL("localhost:8080/")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", got)

	got, err = normalizeBaseURL("https://api.example.com/v1/")
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com/v1", got)
}

// ── Do ──────────────────────────────────────────────────────────────────────

func TestDo_SendsMethodPathQueryBodyAndToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/api/note/r1", r.URL.Path)
		assert.Equal(t, "1", r.URL.Query().Get("v"))
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		var got map[string]any
		require.NoError(t, json.Unmarshal(body, &got))
		assert.Equal(t, map[string]any{"title": "hello"}, got)

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	req := models.NewRequest(models.MethodPatch, "/api/note/r1", map[string]any{"title": "hello"})
	req.Query = map[string]string{"v": "1"}

	resp := newTestTransport(t, srv.URL).Do(context.Background(), req)

	require.NoError(t, resp.Err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"ok":true}`, string(resp.Payload))
	assert.Equal(t, models.ResultSuccess, resp.Result())
}

func TestDo_MapsStatusCodes(t *testing.T) {
	tests := []struct {
		status int
		want   error
		result models.Result
	}{
		{http.StatusBadRequest, ErrBadRequest, models.ResultPermanentError},
		{http.StatusUnauthorized, ErrUnauthorized, models.ResultPermanentError},
		{http.StatusForbidden, ErrForbidden, models.ResultPermanentError},
		{http.StatusNotFound, ErrNotFound, models.ResultPermanentError},
		{http.StatusGone, ErrGone, models.ResultPermanentError},
		{http.StatusConflict, ErrConflict, models.ResultPermanentError},
		{http.StatusTooManyRequests, ErrTooManyRequests, models.ResultTemporaryError},
		{http.StatusInternalServerError, ErrInternalServerError, models.ResultTemporaryError},
		{http.StatusBadGateway, ErrBadGateway, models.ResultTemporaryError},
		{http.StatusServiceUnavailable, ErrServiceUnavailable, models.ResultTemporaryError},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte("details"))
			}))
			defer srv.Close()

			resp := newTestTransport(t, srv.URL).Do(context.Background(), models.NewRequest(models.MethodGet, "/x", nil))

			assert.Equal(t, tt.status, resp.StatusCode)
			assert.ErrorIs(t, resp.Err, tt.want)
			assert.Equal(t, tt.result, resp.Result())
			assert.Equal(t, "details", string(resp.Payload))
		})
	}
}

func TestDo_UnknownStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	defer srv.Close()

	resp := newTestTransport(t, srv.URL).Do(context.Background(), models.NewRequest(models.MethodGet, "/x", nil))

	require.Error(t, resp.Err)
	assert.Contains(t, resp.Err.Error(), "http 418")
	assert.Equal(t, models.ResultPermanentError, resp.Result())
}

func TestDo_ConnectionFailureIsTransient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	resp := newTestTransport(t, url).Do(context.Background(), models.NewRequest(models.MethodGet, "/x", nil))

	assert.Zero(t, resp.StatusCode)
	assert.ErrorIs(t, resp.Err, ErrTransport)
	assert.Equal(t, models.ResultTemporaryError, resp.Result())
}

func TestDo_CancelledContextExpires(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	resp := newTestTransport(t, srv.URL).Do(ctx, models.NewRequest(models.MethodGet, "/slow", nil))

	assert.ErrorIs(t, resp.Err, models.ErrRequestExpired)
	assert.Equal(t, models.ResultExpired, resp.Result())
}
