// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package paginator fetches a cursor-paginated list page by page.
//
// Each request carries the page size and the cursor returned by the previous
// page. A page payload signals the end of the list with "has_more": false. A
// page that omits the field leaves the list open and the paginator idle until
// the next ResetFetching.
package paginator

import (
	"strconv"
	"sync"
	"time"

	"github.com/MKhiriev/go-sync-engine/internal/logger"
	"github.com/MKhiriev/go-sync-engine/internal/single"
	"github.com/MKhiriev/go-sync-engine/models"
)

// Query parameters of a page request.
const (
	QuerySize   = "size"
	QueryClient = "client"
)

// DefaultStartKey is the query parameter carrying the cursor.
const DefaultStartKey = "start"

type page struct {
	HasMore *bool `json:"has_more"`
}

// Option configures a Paginator.
type Option func(*Paginator)

// WithClientID adds the client identifier to every page request.
func WithClientID(id string) Option {
	return func(p *Paginator) {
		p.includeClientID = true
		p.clientID = id
	}
}

// WithLogger sets the logger.
func WithLogger(l *logger.Logger) Option {
	return func(p *Paginator) {
		if l != nil {
			p.log = l
		}
	}
}

// WithOnReady registers a hook called when a page request becomes available.
func WithOnReady(fn func()) Option {
	return func(p *Paginator) { p.onReady = fn }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(p *Paginator) { p.now = now }
}

// Paginator walks a list endpoint. It is safe for concurrent use.
type Paginator struct {
	basePath        string
	startKey        string
	pageSize        int
	includeClientID bool
	clientID        string
	transcoder      Transcoder
	single          *single.RequestSync

	mu        sync.Mutex
	cursor    string
	hasMore   bool
	lastReset time.Time

	onReady func()
	now     func() time.Time
	log     *logger.Logger
}

// New returns a paginator ready to fetch the first page.
func New(basePath, startKey string, pageSize int, transcoder Transcoder, opts ...Option) *Paginator {
	if startKey == "" {
		startKey = DefaultStartKey
	}
	p := &Paginator{
		basePath:   basePath,
		startKey:   startKey,
		pageSize:   pageSize,
		transcoder: transcoder,
		hasMore:    true,
		now:        time.Now,
		log:        logger.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.cursor = p.startUUID()
	p.single = single.New(pageTranscoder{p}, single.WithLogger(p.log), single.WithOnReady(p.onReady))
	p.single.ReadyForNextRequest()
	return p
}

// NextRequest returns the next page request, or nil.
func (p *Paginator) NextRequest() *models.Request {
	return p.single.NextRequest()
}

// HasMoreToFetch is true until a page reports the end of the list.
func (p *Paginator) HasMoreToFetch() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.hasMore
}

// Status returns the state of the underlying single request.
func (p *Paginator) Status() single.Status {
	return p.single.Status()
}

// InProgress reports whether a page request is in flight.
func (p *Paginator) InProgress() bool {
	return p.single.Status() == single.StatusInProgress
}

// LastResetFetchDate returns when ResetFetching was last called.
func (p *Paginator) LastResetFetchDate() time.Time {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastReset
}

// Cursor returns the cursor of the next page.
func (p *Paginator) Cursor() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cursor
}

// ResetFetching restarts from the first page. A page in flight is ignored.
func (p *Paginator) ResetFetching() {
	p.mu.Lock()
	p.lastReset = p.now()
	p.cursor = p.startUUID()
	p.hasMore = true
	p.mu.Unlock()

	p.single.ReadyForNextRequest()
}

func (p *Paginator) startUUID() string {
	if sp, ok := p.transcoder.(StartUUIDProvider); ok {
		return sp.StartUUID()
	}
	return ""
}

func (p *Paginator) buildRequest() *models.Request {
	p.mu.Lock()
	defer p.mu.Unlock()

	req := models.NewRequest(models.MethodGet, p.basePath, nil)
	req.Query = map[string]string{QuerySize: strconv.Itoa(p.pageSize)}
	if p.cursor != "" {
		req.Query[p.startKey] = p.cursor
	}
	if p.includeClientID && p.clientID != "" {
		req.Query[QueryClient] = p.clientID
	}
	return req
}

func (p *Paginator) didReceiveResponse(resp *models.Response) {
	if resp.Result() != models.ResultSuccess && !p.shouldParseError(resp) {
		p.log.Warn().Int("status_code", resp.StatusCode).Str("path", p.basePath).Msg("list page failed")
		p.single.ResetCompletionState()
		return
	}

	var pg page
	if err := resp.Decode(&pg); err != nil {
		p.log.Warn().Err(err).Str("path", p.basePath).Msg("malformed list page")
	}
	next := p.transcoder.NextUUIDFromResponse(resp, p)

	p.mu.Lock()
	p.cursor = next
	if pg.HasMore != nil {
		p.hasMore = *pg.HasMore
	}
	hasMore := p.hasMore
	p.mu.Unlock()

	switch {
	case pg.HasMore == nil:
		p.log.Warn().Str("path", p.basePath).Msg("list page without has_more, waiting for reset")
		p.single.ResetCompletionState()
	case hasMore:
		p.single.ReadyForNextRequest()
	}
}

func (p *Paginator) shouldParseError(resp *models.Response) bool {
	if resp.Result() != models.ResultPermanentError {
		return false
	}
	ep, ok := p.transcoder.(ErrorParser)
	return ok && ep.ShouldParseErrorForResponse(resp)
}

type pageTranscoder struct {
	p *Paginator
}

func (t pageTranscoder) RequestForSingleRequestSync(*single.RequestSync) *models.Request {
	return t.p.buildRequest()
}

func (t pageTranscoder) DidReceiveResponse(resp *models.Response, _ *single.RequestSync) {
	t.p.didReceiveResponse(resp)
}
