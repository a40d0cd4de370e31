package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEffectiveMinPrice_SkipsZeroPricedPackages(t *testing.T) {
	gig := &Gig{
		BasePrice: 500,
		Packages: []Package{
			{Tier: TierBasic, Price: 0},
			{Tier: TierStandard, Price: 0},
			{Tier: TierPremium, Price: 40},
		},
	}
	assert.Equal(t, 40, gig.EffectiveMinPrice())
}

func TestEffectiveMinPrice_MinOfPackages(t *testing.T) {
	gig := &Gig{
		BasePrice: 5,
		Packages: []Package{
			{Tier: TierBasic, Price: 120},
			{Tier: TierStandard, Price: 80},
			{Tier: TierPremium, Price: 300},
		},
	}
	assert.Equal(t, 80, gig.EffectiveMinPrice())
}

func TestEffectiveMinPrice_FallsBackToBasePrice(t *testing.T) {
	gig := &Gig{BasePrice: 25}
	assert.Equal(t, 25, gig.EffectiveMinPrice())
}

func TestSearchFilter_Normalize(t *testing.T) {
	f := SearchFilter{}
	f.Normalize()

	assert.Equal(t, 1, f.Page)
	assert.Equal(t, DefaultPageSize, f.Limit)
	assert.Equal(t, SortNewest, f.Sort)

	f = SearchFilter{Page: 3, Limit: 10, Sort: SortPriceAsc}
	f.Normalize()
	assert.Equal(t, 3, f.Page)
	assert.Equal(t, 10, f.Limit)
	assert.Equal(t, SortPriceAsc, f.Sort)
}

func TestSearchFilter_Skip(t *testing.T) {
	f := SearchFilter{Page: 1, Limit: 20}
	assert.Equal(t, int64(0), f.Skip())

	f = SearchFilter{Page: 4, Limit: 15}
	assert.Equal(t, int64(45), f.Skip())
}

func TestSearchFilter_HasPriceBound(t *testing.T) {
	assert.False(t, (&SearchFilter{}).HasPriceBound())
	assert.True(t, (&SearchFilter{MinPrice: 10}).HasPriceBound())
	assert.True(t, (&SearchFilter{MaxPrice: 100}).HasPriceBound())
}

func TestLevelGroups_CoverKnownLevels(t *testing.T) {
	assert.ElementsMatch(t, []string{"New Seller", "Level 1"}, LevelGroups["beginner"])
	assert.ElementsMatch(t, []string{"Level 1", "Level 2"}, LevelGroups["intermediate"])
	assert.ElementsMatch(t, []string{"Level 2", "Top Rated"}, LevelGroups["expert"])
}
