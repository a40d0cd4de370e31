package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/Muzammil2410/fiver-sub001/internal/platform/logger"
	"github.com/Muzammil2410/fiver-sub001/internal/review/domain"
)

const reviewCollectionName = "reviews"

// ReviewRepository implements domain.ReviewRepository on MongoDB.
type ReviewRepository struct {
	collection *mongo.Collection
	logger     *logger.Logger
}

func NewReviewRepository(db *mongo.Database, log *logger.Logger) (*ReviewRepository, error) {
	collection := db.Collection(reviewCollectionName)

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "gig_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "gig_id", Value: 1}, {Key: "reviewer_id", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		log.Error("Failed to create indexes for reviews collection", zap.Error(err))
	} else {
		log.Info("Successfully ensured indexes for reviews collection")
	}

	return &ReviewRepository{
		collection: collection,
		logger:     log.Named("ReviewRepository"),
	}, nil
}

func (r *ReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	doc := &reviewDocument{
		ID:         primitive.NewObjectID(),
		GigID:      review.GigID,
		ReviewerID: review.ReviewerID,
		Rating:     review.Rating,
		Comment:    review.Comment,
	}
	now := time.Now().UTC()
	doc.CreatedAt = now
	doc.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrAlreadyExists
		}
		r.logger.Error("Failed to insert review", zap.Error(err))
		return fmt.Errorf("db insert failed: %w", err)
	}

	review.ID = doc.ID.Hex()
	review.CreatedAt = now
	review.UpdatedAt = now
	return nil
}

func (r *ReviewRepository) FindByGig(ctx context.Context, gigID string, page, limit int) ([]*domain.Review, int64, error) {
	query := bson.M{"gig_id": gigID}

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
		r.logger.Error("Failed to find reviews by gig", zap.Error(err), zap.String("gig_id", gigID))
		return nil, 0, fmt.Errorf("db find failed: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []*reviewDocument
	if err := cursor.All(ctx, &docs); err != nil {
		r.logger.Error("Failed to decode reviews", zap.Error(err))
		return nil, 0, fmt.Errorf("db cursor all failed: %w", err)
	}

	reviews := make([]*domain.Review, 0, len(docs))
	for _, doc := range docs {
		reviews = append(reviews, toDomainReview(doc))
	}

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		r.logger.Error("Failed to count reviews by gig", zap.Error(err))
		return nil, 0, fmt.Errorf("db count failed: %w", err)
	}

	return reviews, total, nil
}

// AverageRating aggregates the mean rating and review count for one gig.
func (r *ReviewRepository) AverageRating(ctx context.Context, gigID string) (float64, int32, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{
			{Key: "gig_id", Value: gigID},
		}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$gig_id"},
			{Key: "average_rating", Value: bson.D{{Key: "$avg", Value: "$rating"}}},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		r.logger.Error("Failed to aggregate average rating", zap.Error(err), zap.String("gig_id", gigID))
		return 0, 0, fmt.Errorf("db aggregate failed: %w", err)
	}
	defer cursor.Close(ctx)

	var results []struct {
		AverageRating float64 `bson:"average_rating"`
		Count         int32   `bson:"count"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		r.logger.Error("Failed to decode average rating aggregation", zap.Error(err))
		return 0, 0, fmt.Errorf("db cursor all for aggregate failed: %w", err)
	}

	if len(results) == 0 {
		return 0, 0, nil
	}

	return results[0].AverageRating, results[0].Count, nil
}
