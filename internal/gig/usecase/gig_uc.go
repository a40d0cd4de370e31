package usecase

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	natsadapter "github.com/Muzammil2410/fiver-sub001/internal/adapter/messaging/nats"
	"github.com/Muzammil2410/fiver-sub001/internal/gig/domain"
	"github.com/Muzammil2410/fiver-sub001/internal/platform/logger"
	"github.com/Muzammil2410/fiver-sub001/internal/platform/metrics"
	userdomain "github.com/Muzammil2410/fiver-sub001/internal/user/domain"
)

const gigCacheTTL = 1 * time.Hour

// GigUsecase covers the listing write path and single gig reads. Only the
// owner may mutate a gig.
type GigUsecase struct {
	gigs      domain.GigRepository
	orders    domain.OrderCounter
	users     userdomain.UserRepository
	cache     domain.GigCache
	storage   domain.FileStorage
	publisher domain.EventPublisher
	metrics   *metrics.MetricsManager
	logger    *logger.Logger
}

func NewGigUsecase(
	gigs domain.GigRepository,
	orders domain.OrderCounter,
	users userdomain.UserRepository,
	cache domain.GigCache,
	storage domain.FileStorage,
	publisher domain.EventPublisher,
	mm *metrics.MetricsManager,
	log *logger.Logger,
) *GigUsecase {
	return &GigUsecase{
		gigs:      gigs,
		orders:    orders,
		users:     users,
		cache:     cache,
		storage:   storage,
		publisher: publisher,
		metrics:   mm,
		logger:    log.Named("GigUsecase"),
	}
}

// CreateGigInput is the seller-supplied part of a new gig.
type CreateGigInput struct {
	Title        string
	Description  string
	Category     domain.Category
	Packages     []domain.Package
	BasePrice    int
	DeliveryTime int
}

func (uc *GigUsecase) CreateGig(ctx context.Context, sellerID string, input CreateGigInput) (*domain.Gig, error) {
	if input.Title == "" || input.Category == "" {
		return nil, domain.ErrInvalidInput
	}

	seller, err := uc.users.FindByID(ctx, sellerID)
	if err != nil {
		uc.logger.Error("CreateGig: seller lookup failed", zap.String("seller_id", sellerID), zap.Error(err))
		if errors.Is(err, userdomain.ErrNotFound) {
			return nil, domain.ErrForbidden
		}
		return nil, err
	}
	if !seller.IsSeller {
		return nil, domain.ErrForbidden
	}

	gig := &domain.Gig{
		SellerID:     sellerID,
		Title:        input.Title,
		Description:  input.Description,
		Category:     input.Category,
		Packages:     input.Packages,
		BasePrice:    input.BasePrice,
		DeliveryTime: input.DeliveryTime,
		Active:       true,
		Seller: domain.SellerSummary{
			ID:    seller.ID,
			Name:  seller.Username,
			Level: seller.Level,
		},
	}

	if err := uc.gigs.Create(ctx, gig); err != nil {
		uc.logger.Error("CreateGig: create failed", zap.String("seller_id", sellerID), zap.Error(err))
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.GigWritesTotal.WithLabelValues("create").Inc()
	}
	if err := uc.publisher.Publish(ctx, natsadapter.SubjectGigCreated, gig); err != nil {
		uc.logger.Warn("CreateGig: event publish failed", zap.String("gig_id", gig.ID), zap.Error(err))
	}

	return gig, nil
}

// UpdateGigInput carries the updatable fields; empty/zero values are left
// unchanged.
type UpdateGigInput struct {
	Title        string
	Description  string
	Category     domain.Category
	Packages     []domain.Package
	BasePrice    int
	DeliveryTime int
}

func (uc *GigUsecase) UpdateGig(ctx context.Context, id, userID string, input UpdateGigInput) (*domain.Gig, error) {
	gig, err := uc.gigs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if gig.SellerID != userID {
		uc.logger.Warn("UpdateGig: forbidden",
			zap.String("gig_id", id), zap.String("owner_id", gig.SellerID), zap.String("user_id", userID))
		return nil, domain.ErrForbidden
	}

	if input.Title != "" {
		gig.Title = input.Title
	}
	if input.Description != "" {
		gig.Description = input.Description
	}
	if input.Category != "" {
		gig.Category = input.Category
	}
	if input.Packages != nil {
		gig.Packages = input.Packages
	}
	if input.BasePrice > 0 {
		gig.BasePrice = input.BasePrice
	}
	if input.DeliveryTime > 0 {
		gig.DeliveryTime = input.DeliveryTime
	}

	if err := uc.gigs.Update(ctx, gig); err != nil {
		uc.logger.Error("UpdateGig: update failed", zap.String("gig_id", id), zap.Error(err))
		return nil, err
	}

	uc.invalidate(ctx, id)
	if uc.metrics != nil {
		uc.metrics.GigWritesTotal.WithLabelValues("update").Inc()
	}
	if err := uc.publisher.Publish(ctx, natsadapter.SubjectGigUpdated, gig); err != nil {
		uc.logger.Warn("UpdateGig: event publish failed", zap.String("gig_id", id), zap.Error(err))
	}

	return gig, nil
}

func (uc *GigUsecase) DeleteGig(ctx context.Context, id, userID string) error {
	gig, err := uc.gigs.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if gig.SellerID != userID {
		uc.logger.Warn("DeleteGig: forbidden",
			zap.String("gig_id", id), zap.String("owner_id", gig.SellerID), zap.String("user_id", userID))
		return domain.ErrForbidden
	}

	if err := uc.gigs.Delete(ctx, id); err != nil {
		uc.logger.Error("DeleteGig: delete failed", zap.String("gig_id", id), zap.Error(err))
		return err
	}

	uc.invalidate(ctx, id)
	if uc.metrics != nil {
		uc.metrics.GigWritesTotal.WithLabelValues("delete").Inc()
	}
	if err := uc.publisher.Publish(ctx, natsadapter.SubjectGigDeleted, map[string]string{"id": id}); err != nil {
		uc.logger.Warn("DeleteGig: event publish failed", zap.String("gig_id", id), zap.Error(err))
	}

	return nil
}

// SetActive toggles the listing's visibility in search.
func (uc *GigUsecase) SetActive(ctx context.Context, id, userID string, active bool) (*domain.Gig, error) {
	gig, err := uc.gigs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if gig.SellerID != userID {
		return nil, domain.ErrForbidden
	}

	gig.Active = active
	if err := uc.gigs.Update(ctx, gig); err != nil {
		uc.logger.Error("SetActive: update failed", zap.String("gig_id", id), zap.Error(err))
		return nil, err
	}

	uc.invalidate(ctx, id)
	if uc.metrics != nil {
		uc.metrics.GigWritesTotal.WithLabelValues("toggle").Inc()
	}
	return gig, nil
}

// GetGig serves the gig detail page, cache-aside. The order count is
// attached on every read and tolerates counter failure the same way the
// search pipeline does.
func (uc *GigUsecase) GetGig(ctx context.Context, id string) (*domain.Gig, error) {
	if uc.cache != nil {
		cached, err := uc.cache.GetGig(ctx, id)
		if err != nil {
			uc.logger.Warn("GetGig: cache read failed", zap.String("gig_id", id), zap.Error(err))
		} else if cached != nil {
			uc.attachOrderCount(ctx, cached)
			return cached, nil
		}
	}

	gig, err := uc.gigs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if err := uc.cache.SetGig(ctx, gig, gigCacheTTL); err != nil {
			uc.logger.Warn("GetGig: cache write failed", zap.String("gig_id", id), zap.Error(err))
		}
	}

	uc.attachOrderCount(ctx, gig)
	return gig, nil
}

// UploadCover stores a new cover image and records its URL on the gig.
func (uc *GigUsecase) UploadCover(ctx context.Context, id, userID, fileName string, data []byte) (*domain.Gig, error) {
	gig, err := uc.gigs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if gig.SellerID != userID {
		return nil, domain.ErrForbidden
	}

	url, err := uc.storage.Upload(ctx, fileName, data)
	if err != nil {
		uc.logger.Error("UploadCover: upload failed", zap.String("gig_id", id), zap.Error(err))
		return nil, err
	}

	gig.CoverURL = url
	if err := uc.gigs.Update(ctx, gig); err != nil {
		return nil, err
	}

	uc.invalidate(ctx, id)
	return gig, nil
}

func (uc *GigUsecase) attachOrderCount(ctx context.Context, gig *domain.Gig) {
	count, err := uc.orders.CountByGig(ctx, gig.ID)
	if err != nil {
		uc.logger.Warn("attachOrderCount: lookup failed, defaulting to zero",
			zap.String("gig_id", gig.ID), zap.Error(err))
		gig.OrderCount = 0
		return
	}
	gig.OrderCount = int(count)
}

func (uc *GigUsecase) invalidate(ctx context.Context, id string) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.DeleteGig(ctx, id); err != nil {
		uc.logger.Warn("cache invalidation failed", zap.String("gig_id", id), zap.Error(err))
	}
}
