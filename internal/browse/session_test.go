package browse

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gigdomain "github.com/Muzammil2410/fiver-sub001/internal/gig/domain"
	"github.com/Muzammil2410/fiver-sub001/internal/platform/logger"
)

// blockingSearcher lets the test hold a fetch open and count real calls.
type blockingSearcher struct {
	mu      sync.Mutex
	calls   int
	release chan struct{}
	result  *gigdomain.SearchResult
	err     error
}

func newBlockingSearcher(result *gigdomain.SearchResult, err error) *blockingSearcher {
	return &blockingSearcher{release: make(chan struct{}), result: result, err: err}
}

func (s *blockingSearcher) SearchGigs(ctx context.Context, filter gigdomain.SearchFilter) (*gigdomain.SearchResult, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	<-s.release
	return s.result, s.err
}

func (s *blockingSearcher) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// immediateSearcher resolves fetches synchronously.
type immediateSearcher struct {
	calls  int
	result *gigdomain.SearchResult
	err    error
}

func (s *immediateSearcher) SearchGigs(ctx context.Context, filter gigdomain.SearchFilter) (*gigdomain.SearchResult, error) {
	s.calls++
	return s.result, s.err
}

func newTestRevealer() *Revealer {
	sched := &manualScheduler{}
	return NewRevealer(DefaultBatchSize, sched.schedule, nil, logger.NewNop())
}

func searchResult(n int) *gigdomain.SearchResult {
	return &gigdomain.SearchResult{
		Gigs:       makeGigs(n),
		Pagination: gigdomain.PageInfo{Page: 1, Limit: 20, Total: int64(n)},
	}
}

func TestSession_SecondFetchWhileInFlightIsDropped(t *testing.T) {
	searcher := newBlockingSearcher(searchResult(3), nil)
	session := NewSession(searcher, newTestRevealer(), gigdomain.SearchFilter{}, logger.NewNop())

	ctx := context.Background()
	done := make(chan bool, 1)
	go func() { done <- session.Navigate(ctx) }()

	// Wait for the first cycle to be in flight.
	require.Eventually(t, func() bool { return searcher.callCount() == 1 }, time.Second, time.Millisecond)

	// A request arriving mid-flight is dropped, not queued.
	assert.False(t, session.Navigate(ctx))

	close(searcher.release)
	assert.True(t, <-done)
	assert.Equal(t, 1, searcher.callCount())
}

func TestSession_FirstLoadFailureClearsAndSurfaces(t *testing.T) {
	searcher := &immediateSearcher{err: errors.New("store unreachable")}
	revealer := newTestRevealer()
	session := NewSession(searcher, revealer, gigdomain.SearchFilter{}, logger.NewNop())

	session.Navigate(context.Background())

	assert.Error(t, session.Err())
	assert.Empty(t, revealer.Visible())
	assert.True(t, session.InitialLoadDone())
}

func TestSession_BackgroundFailureKeepsStaleResults(t *testing.T) {
	searcher := &immediateSearcher{result: searchResult(5)}
	revealer := newTestRevealer()
	session := NewSession(searcher, revealer, gigdomain.SearchFilter{}, logger.NewNop())

	session.Navigate(context.Background())
	require.Len(t, revealer.Visible(), 5)
	require.NoError(t, session.Err())

	// The refresh fails; the last-good results stay visible.
	searcher.result = nil
	searcher.err = errors.New("network flake")
	session.Navigate(context.Background())

	assert.NoError(t, session.Err())
	assert.Len(t, revealer.Visible(), 5)
	assert.Equal(t, int64(5), session.Pagination().Total)
}

func TestSession_VisibilityRefetchGating(t *testing.T) {
	searcher := &immediateSearcher{result: searchResult(2)}
	session := NewSession(searcher, newTestRevealer(), gigdomain.SearchFilter{}, logger.NewNop())
	ctx := context.Background()

	// Becoming visible before the initial load is not a trigger.
	assert.False(t, session.VisibilityChanged(ctx, true))
	assert.Equal(t, 0, searcher.calls)

	session.Navigate(ctx)
	assert.Equal(t, 1, searcher.calls)

	// Hiding never triggers; re-showing after the first load does.
	assert.False(t, session.VisibilityChanged(ctx, false))
	assert.True(t, session.VisibilityChanged(ctx, true))
	assert.Equal(t, 2, searcher.calls)
}

func TestSession_SetFilterRefetchesWithNewParams(t *testing.T) {
	searcher := &immediateSearcher{result: searchResult(1)}
	session := NewSession(searcher, newTestRevealer(), gigdomain.SearchFilter{}, logger.NewNop())
	ctx := context.Background()

	session.Navigate(ctx)
	session.SetFilter(ctx, gigdomain.SearchFilter{Category: gigdomain.CategoryProgrammingTech, MinPrice: 50})

	assert.Equal(t, 2, searcher.calls)
}
