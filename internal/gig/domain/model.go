package domain

import "time"

type Category string

const (
	CategoryGraphicsDesign     Category = "graphics-design"
	CategoryDigitalMarketing   Category = "digital-marketing"
	CategoryWritingTranslation Category = "writing-translation"
	CategoryVideoAnimation     Category = "video-animation"
	CategoryMusicAudio         Category = "music-audio"
	CategoryProgrammingTech    Category = "programming-tech"
	CategoryBusiness           Category = "business"
	CategoryLifestyle          Category = "lifestyle"
)

type PackageTier string

const (
	TierBasic    PackageTier = "basic"
	TierStandard PackageTier = "standard"
	TierPremium  PackageTier = "premium"
)

// Package is a priced tier on a gig.
type Package struct {
	Tier         PackageTier `json:"tier"`
	Title        string      `json:"title"`
	Description  string      `json:"description"`
	Price        int         `json:"price"`
	DeliveryDays int         `json:"deliveryDays"`
	Revisions    int         `json:"revisions"`
}

type SellerSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Level string `json:"level"`
}

// Gig is the listing read model. OrderCount is derived per request by the
// search pipeline and never persisted.
type Gig struct {
	ID           string        `json:"id"`
	SellerID     string        `json:"sellerId"`
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	Category     Category      `json:"category"`
	Packages     []Package     `json:"packages"`
	BasePrice    int           `json:"basePrice"`
	DeliveryTime int           `json:"deliveryTime"`
	CoverURL     string        `json:"coverUrl,omitempty"`
	Active       bool          `json:"active"`
	Rating       float64       `json:"rating"`
	ReviewCount  int           `json:"reviewCount"`
	Seller       SellerSummary `json:"seller"`
	OrderCount   int           `json:"orderCount"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

// EffectiveMinPrice returns the lowest positive package price, falling back to
// the base price when the gig has no packages. Zero-priced packages are
// placeholders and are skipped. This is the value price filtering and display
// operate on, not the stored base price.
func (g *Gig) EffectiveMinPrice() int {
	min := 0
	for _, p := range g.Packages {
		if p.Price <= 0 {
			continue
		}
		if min == 0 || p.Price < min {
			min = p.Price
		}
	}
	if min == 0 && len(g.Packages) == 0 {
		return g.BasePrice
	}
	return min
}

type SortKey string

const (
	SortNewest    SortKey = "newest"
	SortOldest    SortKey = "oldest"
	SortPriceAsc  SortKey = "price-asc"
	SortPriceDesc SortKey = "price-desc"
	SortRating    SortKey = "rating"
)

// SearchFilter carries one search request through the pipeline. Zero values
// mean "absent" for the optional numeric bounds.
type SearchFilter struct {
	Query        string
	Category     Category
	MinPrice     int
	MaxPrice     int
	DeliveryTime int
	Level        string
	Sort         SortKey
	Page         int
	Limit        int
	SellerID     string
}

const DefaultPageSize = 20

// Normalize clamps pagination to sane values and fills defaults.
func (f *SearchFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit <= 0 {
		f.Limit = DefaultPageSize
	}
	if f.Sort == "" {
		f.Sort = SortNewest
	}
}

// HasPriceBound reports whether the filter needs the post-fetch price
// refinement step.
func (f *SearchFilter) HasPriceBound() bool {
	return f.MinPrice > 0 || f.MaxPrice > 0
}

// Skip is the store offset for the requested page.
func (f *SearchFilter) Skip() int64 {
	return int64(f.Page-1) * int64(f.Limit)
}

// Page describes the slice of results actually returned.
type PageInfo struct {
	Page    int   `json:"page"`
	Limit   int   `json:"limit"`
	Total   int64 `json:"total"`
	Pages   int64 `json:"pages"`
	HasMore bool  `json:"hasMore"`
}

// SearchResult is the assembled page: enriched gigs plus the descriptor.
type SearchResult struct {
	Gigs       []*Gig   `json:"gigs"`
	Pagination PageInfo `json:"pagination"`
}

// LevelGroups maps the coarse experience levels exposed by the API onto the
// seller level labels stored on gigs. Unknown levels are not rejected: the
// raw string is matched literally, which simply yields no results.
var LevelGroups = map[string][]string{
	"beginner":     {"New Seller", "Level 1"},
	"intermediate": {"Level 1", "Level 2"},
	"expert":       {"Level 2", "Top Rated"},
}
