package usecase

import (
	"context"

	"go.uber.org/zap"

	natsadapter "github.com/Muzammil2410/fiver-sub001/internal/adapter/messaging/nats"
	gigdomain "github.com/Muzammil2410/fiver-sub001/internal/gig/domain"
	"github.com/Muzammil2410/fiver-sub001/internal/platform/logger"
	"github.com/Muzammil2410/fiver-sub001/internal/platform/metrics"
	"github.com/Muzammil2410/fiver-sub001/internal/review/domain"
)

// ReviewUsecase covers review creation, listing, and the live rating
// aggregate the polling clients hit.
type ReviewUsecase struct {
	reviews   domain.ReviewRepository
	gigs      gigdomain.GigRepository
	publisher gigdomain.EventPublisher
	metrics   *metrics.MetricsManager
	logger    *logger.Logger
}

func NewReviewUsecase(
	reviews domain.ReviewRepository,
	gigs gigdomain.GigRepository,
	publisher gigdomain.EventPublisher,
	mm *metrics.MetricsManager,
	log *logger.Logger,
) *ReviewUsecase {
	return &ReviewUsecase{
		reviews:   reviews,
		gigs:      gigs,
		publisher: publisher,
		metrics:   mm,
		logger:    log.Named("ReviewUsecase"),
	}
}

// CreateReview records a buyer's rating and folds the new aggregate back
// onto the gig's denormalized rating fields.
func (uc *ReviewUsecase) CreateReview(ctx context.Context, reviewerID, gigID string, rating int, comment string) (*domain.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, domain.ErrInvalidRating
	}

	gig, err := uc.gigs.FindByID(ctx, gigID)
	if err != nil {
		return nil, err
	}

	review := &domain.Review{
		GigID:      gigID,
		ReviewerID: reviewerID,
		Rating:     rating,
		Comment:    comment,
	}
	if err := uc.reviews.Create(ctx, review); err != nil {
		uc.logger.Error("CreateReview: create failed", zap.String("gig_id", gigID), zap.Error(err))
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.ReviewsCreatedTotal.Inc()
	}

	// Denormalize the fresh aggregate onto the gig so search can sort on it.
	average, count, err := uc.reviews.AverageRating(ctx, gigID)
	if err != nil {
		uc.logger.Warn("CreateReview: aggregate refresh failed", zap.String("gig_id", gigID), zap.Error(err))
	} else {
		gig.Rating = average
		gig.ReviewCount = int(count)
		if err := uc.gigs.Update(ctx, gig); err != nil {
			uc.logger.Warn("CreateReview: gig rating update failed", zap.String("gig_id", gigID), zap.Error(err))
		}
	}

	if err := uc.publisher.Publish(ctx, natsadapter.SubjectReviewCreated, review); err != nil {
		uc.logger.Warn("CreateReview: event publish failed", zap.String("review_id", review.ID), zap.Error(err))
	}

	return review, nil
}

// ListReviews returns a page of reviews for a gig, newest first.
func (uc *ReviewUsecase) ListReviews(ctx context.Context, gigID string, page, limit int) ([]*domain.Review, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = gigdomain.DefaultPageSize
	}
	return uc.reviews.FindByGig(ctx, gigID, page, limit)
}

// GetRating serves the current average rating for one gig. This is the
// endpoint the client's rating poller refreshes against.
func (uc *ReviewUsecase) GetRating(ctx context.Context, gigID string) (*domain.RatingSummary, error) {
	average, count, err := uc.reviews.AverageRating(ctx, gigID)
	if err != nil {
		uc.logger.Error("GetRating: aggregate failed", zap.String("gig_id", gigID), zap.Error(err))
		return nil, err
	}
	return &domain.RatingSummary{
		GigID:   gigID,
		Average: average,
		Count:   count,
	}, nil
}
