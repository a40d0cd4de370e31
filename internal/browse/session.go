package browse

import (
	"context"
	"sync"

	"go.uber.org/zap"

	gigdomain "github.com/Muzammil2410/fiver-sub001/internal/gig/domain"
	"github.com/Muzammil2410/fiver-sub001/internal/platform/logger"
)

// FetchPhase tracks what kind of fetch, if any, is in flight.
type FetchPhase int

const (
	FetchIdle FetchPhase = iota
	FetchLoading
	FetchRefreshing
)

// Session coordinates fetches for one listing view. It guards against
// overlapping fetch cycles, distinguishes the first load from background
// refreshes, and hands each successful result to the revealer.
//
// A fetch requested while another is in flight is dropped, not queued. On the
// first load a fetch failure clears the view and surfaces the error; after
// that, failures are logged and the last-good results stay visible.
type Session struct {
	client   Searcher
	revealer *Revealer
	logger   *logger.Logger

	mu              sync.Mutex
	phase           FetchPhase
	initialLoadDone bool
	filter          gigdomain.SearchFilter
	pagination      gigdomain.PageInfo
	lastErr         error
}

func NewSession(client Searcher, revealer *Revealer, filter gigdomain.SearchFilter, log *logger.Logger) *Session {
	filter.Normalize()
	return &Session{
		client:   client,
		revealer: revealer,
		filter:   filter,
		logger:   log.Named("Session"),
	}
}

// Navigate is the view-entry trigger: it always attempts a fetch.
func (s *Session) Navigate(ctx context.Context) bool {
	return s.fetch(ctx)
}

// SetFilter replaces the filter parameters and refetches.
func (s *Session) SetFilter(ctx context.Context, filter gigdomain.SearchFilter) bool {
	filter.Normalize()
	s.mu.Lock()
	s.filter = filter
	s.mu.Unlock()
	return s.fetch(ctx)
}

// VisibilityChanged refetches when the view becomes visible again, but only
// after the initial load has completed and no fetch is in flight. This avoids
// duplicating a just-finished first load.
func (s *Session) VisibilityChanged(ctx context.Context, visible bool) bool {
	if !visible {
		return false
	}
	s.mu.Lock()
	skip := !s.initialLoadDone || s.phase != FetchIdle
	s.mu.Unlock()
	if skip {
		return false
	}
	return s.fetch(ctx)
}

// fetch runs one fetch cycle. Returns false when the request was dropped
// because another cycle was already in flight.
func (s *Session) fetch(ctx context.Context) bool {
	s.mu.Lock()
	if s.phase != FetchIdle {
		s.mu.Unlock()
		s.logger.Debug("fetch dropped, another in flight")
		return false
	}
	if s.initialLoadDone {
		s.phase = FetchRefreshing
	} else {
		s.phase = FetchLoading
	}
	filter := s.filter
	s.mu.Unlock()

	result, err := s.client.SearchGigs(ctx, filter)

	s.mu.Lock()
	defer s.mu.Unlock()

	firstLoad := !s.initialLoadDone
	s.phase = FetchIdle
	s.initialLoadDone = true

	if err != nil {
		if firstLoad {
			// First load failures clear the view and surface the error.
			s.lastErr = err
			s.pagination = gigdomain.PageInfo{}
			s.revealer.Present(nil)
		} else {
			// Background refresh failures keep the stale results visible.
			s.logger.Warn("background refresh failed", zap.Error(err))
		}
		return true
	}

	s.lastErr = nil
	s.pagination = result.Pagination
	s.revealer.Present(result.Gigs)
	return true
}

// Pagination returns the descriptor from the last successful fetch.
func (s *Session) Pagination() gigdomain.PageInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pagination
}

// Err returns the surfaced error, set only by a first-load failure.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// InitialLoadDone reports whether the first fetch cycle has settled.
func (s *Session) InitialLoadDone() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.initialLoadDone
}
