package usecase

import (
	"context"

	"go.uber.org/zap"

	natsadapter "github.com/Muzammil2410/fiver-sub001/internal/adapter/messaging/nats"
	gigdomain "github.com/Muzammil2410/fiver-sub001/internal/gig/domain"
	"github.com/Muzammil2410/fiver-sub001/internal/mailer"
	"github.com/Muzammil2410/fiver-sub001/internal/order/domain"
	"github.com/Muzammil2410/fiver-sub001/internal/platform/logger"
	"github.com/Muzammil2410/fiver-sub001/internal/platform/metrics"
	userdomain "github.com/Muzammil2410/fiver-sub001/internal/user/domain"
)

// OrderUsecase covers the order lifecycle: create from a gig package, list,
// and status updates restricted to the two parties.
type OrderUsecase struct {
	orders    domain.OrderRepository
	gigs      gigdomain.GigRepository
	users     userdomain.UserRepository
	publisher gigdomain.EventPublisher
	mail      *mailer.Mailer
	metrics   *metrics.MetricsManager
	logger    *logger.Logger
}

func NewOrderUsecase(
	orders domain.OrderRepository,
	gigs gigdomain.GigRepository,
	users userdomain.UserRepository,
	publisher gigdomain.EventPublisher,
	mail *mailer.Mailer,
	mm *metrics.MetricsManager,
	log *logger.Logger,
) *OrderUsecase {
	return &OrderUsecase{
		orders:    orders,
		gigs:      gigs,
		users:     users,
		publisher: publisher,
		mail:      mail,
		metrics:   mm,
		logger:    log.Named("OrderUsecase"),
	}
}

// CreateOrder places an order for one package of a gig. The price is read
// from the gig at order time, not from the request.
func (uc *OrderUsecase) CreateOrder(ctx context.Context, buyerID, gigID string, tier gigdomain.PackageTier) (*domain.Order, error) {
	gig, err := uc.gigs.FindByID(ctx, gigID)
	if err != nil {
		return nil, err
	}
	if gig.SellerID == buyerID {
		return nil, domain.ErrForbidden
	}

	price := gig.BasePrice
	tierName := string(tier)
	for _, p := range gig.Packages {
		if p.Tier == tier {
			price = p.Price
			break
		}
	}

	order := &domain.Order{
		GigID:       gigID,
		GigTitle:    gig.Title,
		BuyerID:     buyerID,
		SellerID:    gig.SellerID,
		PackageTier: tierName,
		Price:       price,
		Status:      domain.StatusPending,
	}

	if err := uc.orders.Create(ctx, order); err != nil {
		uc.logger.Error("CreateOrder: create failed", zap.String("gig_id", gigID), zap.Error(err))
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.OrdersCreatedTotal.Inc()
	}
	if err := uc.publisher.Publish(ctx, natsadapter.SubjectOrderCreated, order); err != nil {
		uc.logger.Warn("CreateOrder: event publish failed", zap.String("order_id", order.ID), zap.Error(err))
	}

	uc.sendConfirmation(ctx, buyerID, order)

	return order, nil
}

// sendConfirmation emails the buyer. Best-effort: lookup or send failures
// are logged and never fail the order.
func (uc *OrderUsecase) sendConfirmation(ctx context.Context, buyerID string, order *domain.Order) {
	if uc.mail == nil {
		return
	}
	buyer, err := uc.users.FindByID(ctx, buyerID)
	if err != nil || buyer.Email == "" {
		uc.logger.Warn("sendConfirmation: buyer email unavailable", zap.String("buyer_id", buyerID), zap.Error(err))
		return
	}
	if err := uc.mail.SendOrderConfirmation(buyer.Email, order.GigTitle, order.ID); err != nil {
		uc.logger.Warn("sendConfirmation: send failed", zap.String("order_id", order.ID), zap.Error(err))
	}
}

// ListOrders returns the user's orders, as buyer or seller.
func (uc *OrderUsecase) ListOrders(ctx context.Context, userID string, page, limit int) ([]*domain.Order, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = gigdomain.DefaultPageSize
	}
	return uc.orders.FindByUser(ctx, userID, page, limit)
}

// UpdateStatus advances the order lifecycle. Only the buyer or seller may
// update, and only along a valid transition.
func (uc *OrderUsecase) UpdateStatus(ctx context.Context, id, userID string, status domain.Status) (*domain.Order, error) {
	order, err := uc.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.BuyerID != userID && order.SellerID != userID {
		return nil, domain.ErrForbidden
	}
	if !domain.CanTransition(order.Status, status) {
		uc.logger.Warn("UpdateStatus: invalid transition",
			zap.String("order_id", id), zap.String("from", string(order.Status)), zap.String("to", string(status)))
		return nil, domain.ErrInvalidTransition
	}

	if err := uc.orders.UpdateStatus(ctx, id, status); err != nil {
		uc.logger.Error("UpdateStatus: update failed", zap.String("order_id", id), zap.Error(err))
		return nil, err
	}

	order.Status = status
	return order, nil
}
