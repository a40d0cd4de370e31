package usecase

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Muzammil2410/fiver-sub001/internal/gig/domain"
	"github.com/Muzammil2410/fiver-sub001/internal/platform/logger"
	"github.com/Muzammil2410/fiver-sub001/internal/platform/metrics"
)

// overfetchFactor is how many candidates are fetched per requested result
// when a price bound forces post-fetch refinement. The effective minimum
// price lives inside the package array and cannot be range-queried in the
// store, so the pipeline over-fetches and filters in memory. Results whose
// rank under the active sort falls beyond limit*overfetchFactor can be
// missed; that horizon is the accepted trade-off against unbounded scans.
const overfetchFactor = 5

// SearchUsecase runs the gig discovery pipeline: plan the store query, fetch,
// refine by effective price, enrich with order counts, assemble the page.
type SearchUsecase struct {
	gigs    domain.GigRepository
	orders  domain.OrderCounter
	metrics *metrics.MetricsManager
	logger  *logger.Logger
}

func NewSearchUsecase(gigs domain.GigRepository, orders domain.OrderCounter, mm *metrics.MetricsManager, log *logger.Logger) *SearchUsecase {
	return &SearchUsecase{
		gigs:    gigs,
		orders:  orders,
		metrics: mm,
		logger:  log.Named("SearchUsecase"),
	}
}

// SearchGigs serves one search request. The returned total (and therefore
// hasMore/pages) is counted before price refinement: under a price bound it
// is an upper bound, not an exact count. That imprecision is part of the
// endpoint's contract.
func (uc *SearchUsecase) SearchGigs(ctx context.Context, filter domain.SearchFilter) (*domain.SearchResult, error) {
	filter.Normalize()
	started := time.Now()

	total, err := uc.gigs.CountByFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("SearchGigs: count failed", zap.Error(err))
		return nil, err
	}

	fetchLimit := int64(filter.Limit)
	if filter.HasPriceBound() {
		fetchLimit *= overfetchFactor
	}

	gigs, err := uc.gigs.FindByFilter(ctx, filter, fetchLimit)
	if err != nil {
		uc.logger.Error("SearchGigs: find failed", zap.Error(err))
		return nil, err
	}

	if filter.HasPriceBound() {
		gigs = refineByPrice(gigs, filter.MinPrice, filter.MaxPrice)
		if len(gigs) > filter.Limit {
			gigs = gigs[:filter.Limit]
		}
	}

	uc.attachOrderCounts(ctx, gigs)

	result := &domain.SearchResult{
		Gigs:       gigs,
		Pagination: assemblePage(filter, len(gigs), total),
	}

	if uc.metrics != nil {
		uc.metrics.GigSearchesTotal.Inc()
		uc.metrics.SearchLatency.Observe(time.Since(started).Seconds())
	}
	uc.logger.Debug("SearchGigs: page assembled",
		zap.Int("returned", len(gigs)),
		zap.Int64("total", total),
		zap.Int("page", filter.Page))

	return result, nil
}

// refineByPrice keeps gigs whose effective minimum price falls inside the
// requested bounds, preserving the store's order. A zero bound is absent.
func refineByPrice(gigs []*domain.Gig, minPrice, maxPrice int) []*domain.Gig {
	refined := make([]*domain.Gig, 0, len(gigs))
	for _, g := range gigs {
		price := g.EffectiveMinPrice()
		if minPrice > 0 && price < minPrice {
			continue
		}
		if maxPrice > 0 && price > maxPrice {
			continue
		}
		refined = append(refined, g)
	}
	return refined
}

// attachOrderCounts issues one count lookup per gig, all concurrently, and
// waits for every lookup to settle. A failed lookup zeroes that gig's count
// only; the page itself never fails on enrichment.
func (uc *SearchUsecase) attachOrderCounts(ctx context.Context, gigs []*domain.Gig) {
	var wg sync.WaitGroup
	for _, g := range gigs {
		wg.Add(1)
		go func(g *domain.Gig) {
			defer wg.Done()
			count, err := uc.orders.CountByGig(ctx, g.ID)
			if err != nil {
				uc.logger.Warn("attachOrderCounts: lookup failed, defaulting to zero",
					zap.String("gig_id", g.ID), zap.Error(err))
				if uc.metrics != nil {
					uc.metrics.EnrichmentFailuresTotal.Inc()
				}
				g.OrderCount = 0
				return
			}
			g.OrderCount = int(count)
		}(g)
	}
	wg.Wait()
}

// assemblePage builds the pagination descriptor from the pre-refinement
// total and the slice actually returned.
func assemblePage(filter domain.SearchFilter, returned int, total int64) domain.PageInfo {
	pages := total / int64(filter.Limit)
	if total%int64(filter.Limit) != 0 {
		pages++
	}
	return domain.PageInfo{
		Page:    filter.Page,
		Limit:   filter.Limit,
		Total:   total,
		Pages:   pages,
		HasMore: filter.Skip()+int64(returned) < total,
	}
}
