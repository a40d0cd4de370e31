package domain

import (
	"context"
	"time"
)

// GigRepository is the listing store port. FindByFilter applies every filter
// the store can express natively (category, delivery time, level group, text
// search, owner scope) plus the sort spec and skip/limit window; the price
// refinement over package arrays happens above it in the usecase.
type GigRepository interface {
	Create(ctx context.Context, gig *Gig) error
	Update(ctx context.Context, gig *Gig) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*Gig, error)
	FindByFilter(ctx context.Context, filter SearchFilter, limit int64) ([]*Gig, error)
	CountByFilter(ctx context.Context, filter SearchFilter) (int64, error)
}

// OrderCounter counts orders referencing a gig, matching either the raw hex
// id or the store's native id representation.
type OrderCounter interface {
	CountByGig(ctx context.Context, gigID string) (int64, error)
}

// GigCache is a best-effort read cache for single gig lookups.
type GigCache interface {
	GetGig(ctx context.Context, id string) (*Gig, error)
	SetGig(ctx context.Context, gig *Gig, ttl time.Duration) error
	DeleteGig(ctx context.Context, id string) error
}

// EventPublisher emits domain events for downstream consumers.
type EventPublisher interface {
	Publish(ctx context.Context, subject string, data interface{}) error
}

// FileStorage stores uploaded gig assets and returns a public URL.
type FileStorage interface {
	Upload(ctx context.Context, fileName string, data []byte) (string, error)
}
