package http

import (
	"net/http"
	"strconv"

	"github.com/Muzammil2410/fiver-sub001/internal/adapter/http/middleware"
	"github.com/Muzammil2410/fiver-sub001/internal/gig/domain"
)

// parseSearchFilter reads the search query parameters. Input anomalies fail
// open: malformed numbers are treated as absent and unknown enum values pass
// through untouched, so the listing view always renders.
func parseSearchFilter(r *http.Request) domain.SearchFilter {
	q := r.URL.Query()

	filter := domain.SearchFilter{
		Query:        q.Get("q"),
		Category:     domain.Category(q.Get("category")),
		MinPrice:     intParam(q.Get("minPrice")),
		MaxPrice:     intParam(q.Get("maxPrice")),
		DeliveryTime: intParam(q.Get("deliveryTime")),
		Level:        q.Get("level"),
		Sort:         parseSortKey(q.Get("sort")),
		Page:         intParam(q.Get("page")),
		Limit:        intParam(q.Get("limit")),
	}

	// "mine=true" scopes the search to the caller's own listings, including
	// inactive ones. An explicit sellerId scopes to any seller's public gigs.
	if sellerID := q.Get("sellerId"); sellerID != "" {
		filter.SellerID = sellerID
	} else if q.Get("mine") == "true" {
		if userID, ok := middleware.UserID(r.Context()); ok {
			filter.SellerID = userID
		}
	}

	filter.Normalize()
	return filter
}

// intParam parses a non-negative integer; anything unparsable or negative
// means "absent".
func intParam(raw string) int {
	if raw == "" {
		return 0
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

func parseSortKey(raw string) domain.SortKey {
	switch domain.SortKey(raw) {
	case domain.SortOldest, domain.SortPriceAsc, domain.SortPriceDesc, domain.SortRating, domain.SortNewest:
		return domain.SortKey(raw)
	default:
		// Unknown sort keys fall back to relevance/newest.
		return domain.SortNewest
	}
}
