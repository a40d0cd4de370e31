package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Muzammil2410/fiver-sub001/internal/gig/domain"
)

// GigCache is a redis-backed cache for single gig reads. Search result pages
// are never cached: order counts are derived per request.
type GigCache struct {
	client *redis.Client
}

func NewGigCache(addr string) (*GigCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	if _, err := client.Ping(context.Background()).Result(); err != nil {
		return nil, err
	}
	return &GigCache{client: client}, nil
}

func (c *GigCache) GetGig(ctx context.Context, id string) (*domain.Gig, error) {
	data, err := c.client.Get(ctx, "gig:"+id).Bytes()
	if err == redis.Nil {
		return nil, nil // Cache miss
	}
	if err != nil {
		return nil, err
	}
	var gig domain.Gig
	if err := json.Unmarshal(data, &gig); err != nil {
		return nil, err
	}
	return &gig, nil
}

func (c *GigCache) SetGig(ctx context.Context, gig *domain.Gig, ttl time.Duration) error {
	data, err := json.Marshal(gig)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, "gig:"+gig.ID, data, ttl).Err()
}

func (c *GigCache) DeleteGig(ctx context.Context, id string) error {
	return c.client.Del(ctx, "gig:"+id).Err()
}
