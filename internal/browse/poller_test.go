package browse

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Muzammil2410/fiver-sub001/internal/platform/logger"
	reviewdomain "github.com/Muzammil2410/fiver-sub001/internal/review/domain"
)

// scriptedFetcher returns the configured summary or error, counting calls.
type scriptedFetcher struct {
	mu      sync.Mutex
	calls   int
	summary reviewdomain.RatingSummary
	err     error
}

func (f *scriptedFetcher) FetchRating(ctx context.Context, gigID string) (*reviewdomain.RatingSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	s := f.summary
	s.GigID = gigID
	return &s, nil
}

func (f *scriptedFetcher) set(summary reviewdomain.RatingSummary, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.summary = summary
	f.err = err
}

func (f *scriptedFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func TestRatingPoller_PollsAndStoresRating(t *testing.T) {
	fetcher := &scriptedFetcher{summary: reviewdomain.RatingSummary{Average: 4.5, Count: 12}}
	poller := NewRatingPoller(fetcher, 5*time.Millisecond, logger.NewNop())
	defer poller.Close()

	poller.Mount(context.Background(), "g1")

	require.Eventually(t, func() bool {
		_, ok := poller.Rating("g1")
		return ok
	}, time.Second, time.Millisecond)

	summary, ok := poller.Rating("g1")
	require.True(t, ok)
	assert.Equal(t, 4.5, summary.Average)
	assert.Equal(t, int32(12), summary.Count)
	assert.Equal(t, "g1", summary.GigID)
}

func TestRatingPoller_KeepsLastGoodValueOnFailure(t *testing.T) {
	fetcher := &scriptedFetcher{summary: reviewdomain.RatingSummary{Average: 4.0, Count: 3}}
	poller := NewRatingPoller(fetcher, 5*time.Millisecond, logger.NewNop())
	defer poller.Close()

	poller.Mount(context.Background(), "g1")
	require.Eventually(t, func() bool {
		_, ok := poller.Rating("g1")
		return ok
	}, time.Second, time.Millisecond)

	// Polls start failing; the last good value stays readable.
	fetcher.set(reviewdomain.RatingSummary{}, errors.New("rating endpoint down"))
	before := fetcher.callCount()
	require.Eventually(t, func() bool { return fetcher.callCount() > before+2 }, time.Second, time.Millisecond)

	summary, ok := poller.Rating("g1")
	require.True(t, ok)
	assert.Equal(t, 4.0, summary.Average)

	// Recovery updates the value again.
	fetcher.set(reviewdomain.RatingSummary{Average: 4.8, Count: 4}, nil)
	require.Eventually(t, func() bool {
		summary, _ := poller.Rating("g1")
		return summary.Average == 4.8
	}, time.Second, time.Millisecond)
}

func TestRatingPoller_UnmountStopsPolling(t *testing.T) {
	fetcher := &scriptedFetcher{summary: reviewdomain.RatingSummary{Average: 3.0}}
	poller := NewRatingPoller(fetcher, 5*time.Millisecond, logger.NewNop())
	defer poller.Close()

	poller.Mount(context.Background(), "g1")
	require.Eventually(t, func() bool { return fetcher.callCount() > 0 }, time.Second, time.Millisecond)

	poller.Unmount("g1")
	settled := fetcher.callCount()
	time.Sleep(50 * time.Millisecond)
	assert.LessOrEqual(t, fetcher.callCount(), settled+1)

	// The last known value survives unmount.
	_, ok := poller.Rating("g1")
	assert.True(t, ok)
}

func TestRatingPoller_MountIsIdempotent(t *testing.T) {
	fetcher := &scriptedFetcher{summary: reviewdomain.RatingSummary{Average: 3.0}}
	poller := NewRatingPoller(fetcher, time.Hour, logger.NewNop())
	defer poller.Close()

	ctx := context.Background()
	poller.Mount(ctx, "g1")
	poller.Mount(ctx, "g1")

	// Only the first mount starts a loop; each loop does one immediate poll.
	require.Eventually(t, func() bool { return fetcher.callCount() >= 1 }, time.Second, time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 1, fetcher.callCount())
}
