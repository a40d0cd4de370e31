package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/Muzammil2410/fiver-sub001/internal/order/domain"
	"github.com/Muzammil2410/fiver-sub001/internal/platform/logger"
)

const orderCollectionName = "orders"

// OrderRepository implements domain.OrderRepository on MongoDB. Its
// CountByGig also serves the gig search pipeline as the order counter.
type OrderRepository struct {
	collection *mongo.Collection
	logger     *logger.Logger
}

func NewOrderRepository(db *mongo.Database, log *logger.Logger) (*OrderRepository, error) {
	collection := db.Collection(orderCollectionName)

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "gig_id", Value: 1}}},
		{Keys: bson.D{{Key: "buyer_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "seller_id", Value: 1}, {Key: "created_at", Value: -1}}},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		log.Error("Failed to create indexes for orders collection", zap.Error(err))
	} else {
		log.Info("Successfully ensured indexes for orders collection")
	}

	return &OrderRepository{
		collection: collection,
		logger:     log.Named("OrderRepository"),
	}, nil
}

func (r *OrderRepository) Create(ctx context.Context, order *domain.Order) error {
	doc := &orderDocument{
		ID:          primitive.NewObjectID(),
		GigID:       order.GigID,
		GigTitle:    order.GigTitle,
		BuyerID:     order.BuyerID,
		SellerID:    order.SellerID,
		PackageTier: order.PackageTier,
		Price:       order.Price,
		Status:      string(order.Status),
	}
	now := time.Now().UTC()
	doc.CreatedAt = now
	doc.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		r.logger.Error("Failed to insert order", zap.Error(err))
		return fmt.Errorf("db insert failed: %w", err)
	}

	order.ID = doc.ID.Hex()
	order.CreatedAt = now
	order.UpdatedAt = now
	return nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	var doc orderDocument
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		r.logger.Error("Failed to find order by ID", zap.Error(err), zap.String("order_id", id))
		return nil, fmt.Errorf("db findone failed: %w", err)
	}
	return toDomainOrder(&doc), nil
}

// FindByUser returns orders where the user is either buyer or seller, newest
// first.
func (r *OrderRepository) FindByUser(ctx context.Context, userID string, page, limit int) ([]*domain.Order, int64, error) {
	query := bson.M{"$or": bson.A{
		bson.M{"buyer_id": userID},
		bson.M{"seller_id": userID},
	}}

	findOptions := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}})
	if limit > 0 {
		findOptions.SetLimit(int64(limit))
		if page > 1 {
			findOptions.SetSkip(int64(page-1) * int64(limit))
		}
	}

	cursor, err := r.collection.Find(ctx, query, findOptions)
	if err != nil {
		r.logger.Error("Failed to find orders by user", zap.Error(err), zap.String("user_id", userID))
		return nil, 0, fmt.Errorf("db find failed: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []*orderDocument
	if err := cursor.All(ctx, &docs); err != nil {
		r.logger.Error("Failed to decode orders", zap.Error(err))
		return nil, 0, fmt.Errorf("db cursor all failed: %w", err)
	}

	orders := make([]*domain.Order, 0, len(docs))
	for _, doc := range docs {
		orders = append(orders, toDomainOrder(doc))
	}

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		r.logger.Error("Failed to count orders by user", zap.Error(err))
		return nil, 0, fmt.Errorf("db count failed: %w", err)
	}

	return orders, total, nil
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id string, status domain.Status) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrNotFound
	}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": bson.M{
		"status":     string(status),
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		r.logger.Error("Failed to update order status", zap.Error(err), zap.String("order_id", id))
		return fmt.Errorf("db update failed: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CountByGig counts orders referencing a gig. Historical records stored the
// gig reference as an ObjectID rather than its hex string, so both forms are
// matched.
func (r *OrderRepository) CountByGig(ctx context.Context, gigID string) (int64, error) {
	refs := bson.A{bson.M{"gig_id": gigID}}
	if objectID, err := primitive.ObjectIDFromHex(gigID); err == nil {
		refs = append(refs, bson.M{"gig_id": objectID})
	}

	total, err := r.collection.CountDocuments(ctx, bson.M{"$or": refs})
	if err != nil {
		return 0, fmt.Errorf("db count failed: %w", err)
	}
	return total, nil
}
