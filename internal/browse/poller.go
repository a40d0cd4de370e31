package browse

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Muzammil2410/fiver-sub001/internal/platform/logger"
	reviewdomain "github.com/Muzammil2410/fiver-sub001/internal/review/domain"
)

// DefaultPollInterval is how often a mounted listing's rating is refreshed.
const DefaultPollInterval = 3 * time.Second

// RatingPoller refreshes the rating aggregate of each mounted listing on a
// fixed interval, independently of the fetch cycle. A failed poll keeps the
// previous known value until the next success.
type RatingPoller struct {
	client   RatingFetcher
	interval time.Duration
	logger   *logger.Logger

	mu      sync.Mutex
	stops   map[string]chan struct{}
	ratings map[string]reviewdomain.RatingSummary
	wg      sync.WaitGroup
}

func NewRatingPoller(client RatingFetcher, interval time.Duration, log *logger.Logger) *RatingPoller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &RatingPoller{
		client:   client,
		interval: interval,
		logger:   log.Named("RatingPoller"),
		stops:    make(map[string]chan struct{}),
		ratings:  make(map[string]reviewdomain.RatingSummary),
	}
}

// Mount starts polling for one listing. Mounting an already mounted listing
// is a no-op.
func (p *RatingPoller) Mount(ctx context.Context, gigID string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.stops[gigID]; ok {
		return
	}
	stop := make(chan struct{})
	p.stops[gigID] = stop

	p.wg.Add(1)
	go p.poll(ctx, gigID, stop)
}

// Unmount stops polling for one listing. The last known rating stays
// readable until the poller is closed.
func (p *RatingPoller) Unmount(gigID string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if stop, ok := p.stops[gigID]; ok {
		close(stop)
		delete(p.stops, gigID)
	}
}

// Rating returns the last successfully polled aggregate for a listing.
func (p *RatingPoller) Rating(gigID string) (reviewdomain.RatingSummary, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	summary, ok := p.ratings[gigID]
	return summary, ok
}

// Close stops every poll loop and waits for them to exit.
func (p *RatingPoller) Close() {
	p.mu.Lock()
	for id, stop := range p.stops {
		close(stop)
		delete(p.stops, id)
	}
	p.mu.Unlock()
	p.wg.Wait()
}

func (p *RatingPoller) poll(ctx context.Context, gigID string, stop chan struct{}) {
	defer p.wg.Done()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.refresh(ctx, gigID)
	for {
		select {
		case <-ticker.C:
			p.refresh(ctx, gigID)
		case <-stop:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (p *RatingPoller) refresh(ctx context.Context, gigID string) {
	summary, err := p.client.FetchRating(ctx, gigID)
	if err != nil {
		p.logger.Warn("rating poll failed", zap.String("gig_id", gigID), zap.Error(err))
		return
	}

	p.mu.Lock()
	p.ratings[gigID] = *summary
	p.mu.Unlock()
}
