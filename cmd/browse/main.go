package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/Muzammil2410/fiver-sub001/internal/browse"
	gigdomain "github.com/Muzammil2410/fiver-sub001/internal/gig/domain"
	"github.com/Muzammil2410/fiver-sub001/internal/platform/logger"
)

// browse is a small terminal client for the gig discovery API. It renders a
// result page batch by batch and keeps each shown listing's rating fresh for
// a short watch window.
func main() {
	var (
		addr      = flag.String("addr", "http://localhost:8080", "marketplace server address")
		query     = flag.String("q", "", "free-text search query")
		category  = flag.String("category", "", "category filter")
		minPrice  = flag.Int("min-price", 0, "minimum effective price")
		maxPrice  = flag.Int("max-price", 0, "maximum effective price")
		delivery  = flag.Int("delivery", 0, "maximum delivery time in days")
		level     = flag.String("level", "", "seller level: beginner, intermediate or expert")
		sort      = flag.String("sort", "", "sort key: newest, oldest, price-asc, price-desc, rating")
		page      = flag.Int("page", 1, "page number")
		limit     = flag.Int("limit", 20, "page size")
		watch     = flag.Duration("watch", 10*time.Second, "how long to keep ratings live after the page renders")
		batchSize = flag.Int("batch", browse.DefaultBatchSize, "reveal batch size")
	)
	flag.Parse()

	appLogger := logger.NewLogger()
	client := browse.NewClient(*addr)

	revealed := make(chan []*gigdomain.Gig, 8)
	revealer := browse.NewRevealer(*batchSize, nil, func(visible []*gigdomain.Gig) {
		revealed <- visible
	}, appLogger)
	defer revealer.Stop()

	filter := gigdomain.SearchFilter{
		Query:        *query,
		Category:     gigdomain.Category(*category),
		MinPrice:     *minPrice,
		MaxPrice:     *maxPrice,
		DeliveryTime: *delivery,
		Level:        *level,
		Sort:         gigdomain.SortKey(*sort),
		Page:         *page,
		Limit:        *limit,
	}
	session := browse.NewSession(client, revealer, filter, appLogger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	session.Navigate(ctx)
	if err := session.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "fetch failed: %v\n", err)
		os.Exit(1)
	}

	poller := browse.NewRatingPoller(client, browse.DefaultPollInterval, appLogger)
	defer poller.Close()

	// Drain reveal batches until the page is fully visible, mounting a rating
	// poll per newly shown listing.
	shown := 0
	for revealer.Phase() != browse.PhaseComplete || len(revealed) > 0 {
		visible := <-revealed
		for _, gig := range visible[shown:] {
			poller.Mount(ctx, gig.ID)
			fmt.Printf("%3d. %-50s  $%-6d  %.1f (%d reviews)  %d orders\n",
				shown+1, truncate(gig.Title, 50), gig.EffectiveMinPrice(), gig.Rating, gig.ReviewCount, gig.OrderCount)
			shown++
		}
	}

	p := session.Pagination()
	fmt.Printf("\npage %d/%d, %d total, hasMore=%v\n", p.Page, p.Pages, p.Total, p.HasMore)

	if *watch > 0 && shown > 0 {
		fmt.Printf("watching ratings for %s...\n", *watch)
		time.Sleep(*watch)
		for _, gig := range revealer.Visible() {
			if summary, ok := poller.Rating(gig.ID); ok {
				fmt.Printf("%-24s  %.2f (%d)\n", gig.ID, summary.Average, summary.Count)
			}
		}
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
