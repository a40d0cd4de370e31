package http

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Muzammil2410/fiver-sub001/internal/adapter/http/middleware"
	"github.com/Muzammil2410/fiver-sub001/internal/gig/domain"
)

func TestParseSearchFilter_Defaults(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/gigs", nil)
	filter := parseSearchFilter(req)

	assert.Equal(t, 1, filter.Page)
	assert.Equal(t, domain.DefaultPageSize, filter.Limit)
	assert.Equal(t, domain.SortNewest, filter.Sort)
	assert.Zero(t, filter.MinPrice)
	assert.Zero(t, filter.MaxPrice)
}

func TestParseSearchFilter_MalformedNumbersFailOpen(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/gigs?minPrice=abc&maxPrice=-5&page=xyz&limit=1e3&deliveryTime=", nil)
	filter := parseSearchFilter(req)

	assert.Zero(t, filter.MinPrice)
	assert.Zero(t, filter.MaxPrice)
	assert.Zero(t, filter.DeliveryTime)
	assert.Equal(t, 1, filter.Page)
	assert.Equal(t, domain.DefaultPageSize, filter.Limit)
}

func TestParseSearchFilter_UnknownSortFallsBackToNewest(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/gigs?sort=alphabetical", nil)
	filter := parseSearchFilter(req)

	assert.Equal(t, domain.SortNewest, filter.Sort)
}

func TestParseSearchFilter_KnownSortKeys(t *testing.T) {
	for _, key := range []string{"newest", "oldest", "price-asc", "price-desc", "rating"} {
		req := httptest.NewRequest("GET", "/api/gigs?sort="+key, nil)
		filter := parseSearchFilter(req)
		assert.Equal(t, domain.SortKey(key), filter.Sort)
	}
}

func TestParseSearchFilter_FullQuery(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/gigs?q=logo&category=graphics-design&minPrice=60&maxPrice=300&deliveryTime=7&level=expert&sort=price-asc&page=2&limit=10", nil)
	filter := parseSearchFilter(req)

	assert.Equal(t, "logo", filter.Query)
	assert.Equal(t, domain.CategoryGraphicsDesign, filter.Category)
	assert.Equal(t, 60, filter.MinPrice)
	assert.Equal(t, 300, filter.MaxPrice)
	assert.Equal(t, 7, filter.DeliveryTime)
	assert.Equal(t, "expert", filter.Level)
	assert.Equal(t, domain.SortPriceAsc, filter.Sort)
	assert.Equal(t, 2, filter.Page)
	assert.Equal(t, 10, filter.Limit)
}

func TestParseSearchFilter_MineRequiresIdentity(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/gigs?mine=true", nil)
	filter := parseSearchFilter(req)
	assert.Empty(t, filter.SellerID)

	ctx := context.WithValue(req.Context(), middleware.UserIDCtxKey, "user-42")
	filter = parseSearchFilter(req.WithContext(ctx))
	assert.Equal(t, "user-42", filter.SellerID)
}

func TestParseSearchFilter_ExplicitSellerWinsOverMine(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/gigs?sellerId=seller-7&mine=true", nil)
	ctx := context.WithValue(req.Context(), middleware.UserIDCtxKey, "user-42")
	filter := parseSearchFilter(req.WithContext(ctx))

	assert.Equal(t, "seller-7", filter.SellerID)
}
