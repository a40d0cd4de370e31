package mongodb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/Muzammil2410/fiver-sub001/internal/gig/domain"
)

func TestBuildSearchQuery_DefaultsToActiveListings(t *testing.T) {
	query := buildSearchQuery(domain.SearchFilter{})

	assert.Equal(t, true, query["active"])
	assert.NotContains(t, query, "seller_id")
}

func TestBuildSearchQuery_SellerScopeIncludesInactive(t *testing.T) {
	query := buildSearchQuery(domain.SearchFilter{SellerID: "seller-1"})

	assert.Equal(t, "seller-1", query["seller_id"])
	assert.NotContains(t, query, "active")
}

func TestBuildSearchQuery_NeverContainsPricePredicates(t *testing.T) {
	query := buildSearchQuery(domain.SearchFilter{MinPrice: 10, MaxPrice: 500})

	assert.NotContains(t, query, "base_price")
	assert.NotContains(t, query, "packages.price")
}

func TestBuildSearchQuery_LevelGroupMapping(t *testing.T) {
	query := buildSearchQuery(domain.SearchFilter{Level: "beginner"})
	assert.Equal(t, bson.M{"$in": []string{"New Seller", "Level 1"}}, query["seller.level"])

	// Unknown levels match literally so a typo yields no results, not an error.
	query = buildSearchQuery(domain.SearchFilter{Level: "wizard"})
	assert.Equal(t, bson.M{"$in": []string{"wizard"}}, query["seller.level"])
}

func TestBuildSearchQuery_TextAndDelivery(t *testing.T) {
	query := buildSearchQuery(domain.SearchFilter{Query: "logo design", DeliveryTime: 3})

	assert.Equal(t, bson.M{"$search": "logo design"}, query["$text"])
	assert.Equal(t, bson.M{"$lte": 3}, query["delivery_time"])
}

func TestSortSpec_SecondaryKeyBreaksTies(t *testing.T) {
	for _, key := range []domain.SortKey{
		domain.SortNewest, domain.SortOldest, domain.SortPriceAsc, domain.SortPriceDesc, domain.SortRating,
	} {
		spec := sortSpec(key)
		assert.Len(t, spec, 2, "sort %q", key)
		assert.Equal(t, "_id", spec[1].Key, "sort %q", key)
	}
}

func TestSortSpec_Keys(t *testing.T) {
	assert.Equal(t, "created_at", sortSpec(domain.SortNewest)[0].Key)
	assert.Equal(t, -1, sortSpec(domain.SortNewest)[0].Value)
	assert.Equal(t, "base_price", sortSpec(domain.SortPriceAsc)[0].Key)
	assert.Equal(t, 1, sortSpec(domain.SortPriceAsc)[0].Value)
	assert.Equal(t, "rating", sortSpec(domain.SortRating)[0].Key)
	assert.Equal(t, -1, sortSpec(domain.SortRating)[0].Value)
}
