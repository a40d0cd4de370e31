package domain

import (
	"context"
	"errors"
	"time"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusDelivered  Status = "delivered"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

var (
	ErrNotFound          = errors.New("order not found")
	ErrForbidden         = errors.New("user not authorized to perform this action")
	ErrInvalidTransition = errors.New("invalid order status transition")
)

// Order is a purchase of one gig package.
type Order struct {
	ID          string    `json:"id"`
	GigID       string    `json:"gigId"`
	GigTitle    string    `json:"gigTitle"`
	BuyerID     string    `json:"buyerId"`
	SellerID    string    `json:"sellerId"`
	PackageTier string    `json:"packageTier"`
	Price       int       `json:"price"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// validTransitions is the order lifecycle. Cancellation is allowed from any
// non-terminal state.
var validTransitions = map[Status][]Status{
	StatusPending:    {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusDelivered, StatusCancelled},
	StatusDelivered:  {StatusCompleted, StatusInProgress},
	StatusCompleted:  {},
	StatusCancelled:  {},
}

// CanTransition reports whether an order may move from one status to another.
func CanTransition(from, to Status) bool {
	for _, next := range validTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type OrderRepository interface {
	Create(ctx context.Context, order *Order) error
	FindByID(ctx context.Context, id string) (*Order, error)
	FindByUser(ctx context.Context, userID string, page, limit int) ([]*Order, int64, error)
	UpdateStatus(ctx context.Context, id string, status Status) error
	CountByGig(ctx context.Context, gigID string) (int64, error)
}
