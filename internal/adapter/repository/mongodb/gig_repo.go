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

	"github.com/Muzammil2410/fiver-sub001/internal/gig/domain"
	"github.com/Muzammil2410/fiver-sub001/internal/platform/logger"
)

const gigCollectionName = "gigs"

// GigRepository implements domain.GigRepository on MongoDB.
type GigRepository struct {
	collection *mongo.Collection
	logger     *logger.Logger
}

// NewGigRepository creates the repository and ensures the indexes the search
// pipeline relies on (text search, category/level filters, sort keys).
func NewGigRepository(db *mongo.Database, log *logger.Logger) (*GigRepository, error) {
	collection := db.Collection(gigCollectionName)

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "title", Value: "text"}, {Key: "description", Value: "text"}}},
		{Keys: bson.D{{Key: "category", Value: 1}, {Key: "active", Value: 1}}},
		{Keys: bson.D{{Key: "seller_id", Value: 1}}},
		{Keys: bson.D{{Key: "seller.level", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "base_price", Value: 1}}},
		{Keys: bson.D{{Key: "rating", Value: -1}}},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		// Indexes may already exist or be managed externally.
		log.Error("Failed to create indexes for gigs collection", zap.Error(err))
	} else {
		log.Info("Successfully ensured indexes for gigs collection")
	}

	return &GigRepository{
		collection: collection,
		logger:     log.Named("GigRepository"),
	}, nil
}

func (r *GigRepository) Create(ctx context.Context, gig *domain.Gig) error {
	doc, err := toGigDocument(gig)
	if err != nil {
		return err
	}
	if doc.ID.IsZero() {
		doc.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	doc.CreatedAt = now
	doc.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		r.logger.Error("Failed to insert gig", zap.Error(err))
		return fmt.Errorf("db insert failed: %w", err)
	}

	gig.ID = doc.ID.Hex()
	gig.CreatedAt = now
	gig.UpdatedAt = now
	return nil
}

func (r *GigRepository) Update(ctx context.Context, gig *domain.Gig) error {
	doc, err := toGigDocument(gig)
	if err != nil {
		return err
	}
	doc.UpdatedAt = time.Now().UTC()
	gig.UpdatedAt = doc.UpdatedAt

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": doc.ID}, bson.M{"$set": doc})
	if err != nil {
		r.logger.Error("Failed to update gig", zap.Error(err), zap.String("gig_id", gig.ID))
		return fmt.Errorf("db update failed: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *GigRepository) Delete(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrNotFound
	}
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		r.logger.Error("Failed to delete gig", zap.Error(err), zap.String("gig_id", id))
		return fmt.Errorf("db delete failed: %w", err)
	}
	if result.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *GigRepository) FindByID(ctx context.Context, id string) (*domain.Gig, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	var doc gigDocument
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		r.logger.Error("Failed to find gig by ID", zap.Error(err), zap.String("gig_id", id))
		return nil, fmt.Errorf("db findone failed: %w", err)
	}
	return toDomainGig(&doc), nil
}

// FindByFilter runs the storage half of the search pipeline: every predicate
// the store can evaluate natively, the deterministic sort, and the skip/limit
// window. limit may exceed filter.Limit when the caller over-fetches for the
// price refinement step.
func (r *GigRepository) FindByFilter(ctx context.Context, filter domain.SearchFilter, limit int64) ([]*domain.Gig, error) {
	query := buildSearchQuery(filter)

	findOptions := options.Find().
		SetSort(sortSpec(filter.Sort)).
		SetSkip(filter.Skip()).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, query, findOptions)
	if err != nil {
		r.logger.Error("Failed to find gigs by filter", zap.Error(err))
		return nil, fmt.Errorf("db find failed: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []*gigDocument
	if err := cursor.All(ctx, &docs); err != nil {
		r.logger.Error("Failed to decode gigs", zap.Error(err))
		return nil, fmt.Errorf("db cursor all failed: %w", err)
	}

	return toDomainGigs(docs), nil
}

// CountByFilter counts matches for the store-evaluable part of the filter.
// Under price filtering this is the pre-refinement count the pagination
// descriptor reports.
func (r *GigRepository) CountByFilter(ctx context.Context, filter domain.SearchFilter) (int64, error) {
	total, err := r.collection.CountDocuments(ctx, buildSearchQuery(filter))
	if err != nil {
		r.logger.Error("Failed to count gigs by filter", zap.Error(err))
		return 0, fmt.Errorf("db count failed: %w", err)
	}
	return total, nil
}

// buildSearchQuery translates the filter into the store's query language.
// Price bounds are deliberately absent: the effective minimum price is a
// minimum over an embedded array and cannot be range-queried here.
func buildSearchQuery(filter domain.SearchFilter) bson.M {
	query := bson.M{}

	if filter.SellerID != "" {
		query["seller_id"] = filter.SellerID
	} else {
		query["active"] = true
	}
	if filter.Category != "" {
		query["category"] = string(filter.Category)
	}
	if filter.DeliveryTime > 0 {
		query["delivery_time"] = bson.M{"$lte": filter.DeliveryTime}
	}
	if filter.Level != "" {
		labels, ok := domain.LevelGroups[filter.Level]
		if !ok {
			// Unknown level strings match literally and fail open to no results.
			labels = []string{filter.Level}
		}
		query["seller.level"] = bson.M{"$in": labels}
	}
	if filter.Query != "" {
		query["$text"] = bson.M{"$search": filter.Query}
	}

	return query
}

// sortSpec maps the sort key to a store sort document. The trailing _id key
// makes ordering deterministic when the primary key ties.
func sortSpec(key domain.SortKey) bson.D {
	switch key {
	case domain.SortOldest:
		return bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}
	case domain.SortPriceAsc:
		return bson.D{{Key: "base_price", Value: 1}, {Key: "_id", Value: 1}}
	case domain.SortPriceDesc:
		return bson.D{{Key: "base_price", Value: -1}, {Key: "_id", Value: 1}}
	case domain.SortRating:
		return bson.D{{Key: "rating", Value: -1}, {Key: "_id", Value: 1}}
	default:
		return bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}}
	}
}
