package browse

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	gigdomain "github.com/Muzammil2410/fiver-sub001/internal/gig/domain"
	reviewdomain "github.com/Muzammil2410/fiver-sub001/internal/review/domain"
)

// Searcher fetches one page of listings for the given filter.
type Searcher interface {
	SearchGigs(ctx context.Context, filter gigdomain.SearchFilter) (*gigdomain.SearchResult, error)
}

// RatingFetcher fetches the current rating aggregate for one listing.
type RatingFetcher interface {
	FetchRating(ctx context.Context, gigID string) (*reviewdomain.RatingSummary, error)
}

// Client talks to the marketplace HTTP API. It implements Searcher and
// RatingFetcher for the browse session and the rating poller.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func (c *Client) SearchGigs(ctx context.Context, filter gigdomain.SearchFilter) (*gigdomain.SearchResult, error) {
	q := url.Values{}
	if filter.Query != "" {
		q.Set("q", filter.Query)
	}
	if filter.Category != "" {
		q.Set("category", string(filter.Category))
	}
	if filter.MinPrice > 0 {
		q.Set("minPrice", strconv.Itoa(filter.MinPrice))
	}
	if filter.MaxPrice > 0 {
		q.Set("maxPrice", strconv.Itoa(filter.MaxPrice))
	}
	if filter.DeliveryTime > 0 {
		q.Set("deliveryTime", strconv.Itoa(filter.DeliveryTime))
	}
	if filter.Level != "" {
		q.Set("level", filter.Level)
	}
	if filter.Sort != "" {
		q.Set("sort", string(filter.Sort))
	}
	if filter.Page > 0 {
		q.Set("page", strconv.Itoa(filter.Page))
	}
	if filter.Limit > 0 {
		q.Set("limit", strconv.Itoa(filter.Limit))
	}
	if filter.SellerID != "" {
		q.Set("sellerId", filter.SellerID)
	}

	var result gigdomain.SearchResult
	if err := c.getJSON(ctx, "/api/gigs?"+q.Encode(), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) FetchRating(ctx context.Context, gigID string) (*reviewdomain.RatingSummary, error) {
	var summary reviewdomain.RatingSummary
	if err := c.getJSON(ctx, "/api/gigs/"+url.PathEscape(gigID)+"/rating", &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if !env.Success {
		if env.Error != "" {
			return fmt.Errorf("api error: %s", env.Error)
		}
		return fmt.Errorf("api error: status %d", resp.StatusCode)
	}
	return json.Unmarshal(env.Data, out)
}
