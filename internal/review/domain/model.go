package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound      = errors.New("review not found")
	ErrAlreadyExists = errors.New("user already reviewed this gig")
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
)

// Review is a buyer's rating of a gig.
type Review struct {
	ID         string    `json:"id"`
	GigID      string    `json:"gigId"`
	ReviewerID string    `json:"reviewerId"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// RatingSummary is the aggregate served to the live rating endpoint.
type RatingSummary struct {
	GigID   string  `json:"gigId"`
	Average float64 `json:"average"`
	Count   int32   `json:"count"`
}

type ReviewRepository interface {
	Create(ctx context.Context, review *Review) error
	FindByGig(ctx context.Context, gigID string, page, limit int) ([]*Review, int64, error)
	AverageRating(ctx context.Context, gigID string) (float64, int32, error)
}
