// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/MKhiriev/go-sync-engine/internal/config"
	"github.com/MKhiriev/go-sync-engine/internal/logger"
	"github.com/MKhiriev/go-sync-engine/internal/utils"
	"github.com/MKhiriev/go-sync-engine/models"
)

type httpTransport struct {
	client *utils.HTTPClient
	token  string
	logger *logger.Logger
}

// NewHTTPTransport constructs a resty-backed [Transport]. It normalises and
// validates cfg.BaseURL and applies cfg.RequestTimeout to every request.
// When cfg.AuthToken is set it is sent as a bearer token.
//
// Returns an error if cfg.BaseURL is empty or cannot be parsed as a valid URL.
func NewHTTPTransport(cfg config.Transport, logger *logger.Logger) (Transport, error) {
	baseURL, err := normalizeBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid transport base url: %w", err)
	}

	client := utils.NewHTTPClient(cfg.UserAgent)
	client.
		SetBaseURL(baseURL).
		SetTimeout(cfg.RequestTimeout).
		SetHeader("Accept", "application/json")

	return &httpTransport{
		client: client,
		token:  strings.TrimSpace(cfg.AuthToken),
		logger: logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// Do implements [Transport]. Non-2xx responses keep their status code and
// body; Err carries the mapped sentinel. Failures without a status code are
// wrapped in [ErrTransport].
func (h *httpTransport) Do(ctx context.Context, req *models.Request) *models.Response {
	r := h.client.Request(ctx, req.ID)
	if h.token != "" {
		r.SetAuthToken(h.token)
	}
	if len(req.Query) > 0 {
		r.SetQueryParams(req.Query)
	}
	if req.Payload != nil {
		r.SetHeader("Content-Type", "application/json").SetBody(req.Payload)
	}

	resp, err := r.Execute(req.Method, req.Path)
	if err != nil {
		if ctx.Err() != nil {
			err = fmt.Errorf("%w: %w", models.ErrRequestExpired, err)
		}
		h.logger.Debug().Err(err).
			Str("request_id", req.ID).
			Str("method", req.Method).
			Str("path", req.Path).
			Msg("transport failure")
		return &models.Response{Err: fmt.Errorf("%w: %w", ErrTransport, err)}
	}

	h.logger.Debug().
		Str("request_id", req.ID).
		Str("method", req.Method).
		Str("path", req.Path).
		Int("status_code", resp.StatusCode()).
		Msg("request done")

	return &models.Response{
		StatusCode: resp.StatusCode(),
		Payload:    resp.Body(),
		Err:        mapHTTPError(resp),
	}
}
