package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	gigdomain "github.com/Muzammil2410/fiver-sub001/internal/gig/domain"
	"github.com/Muzammil2410/fiver-sub001/internal/platform/logger"
	"github.com/Muzammil2410/fiver-sub001/internal/review/domain"
)

type MockReviewRepository struct{ mock.Mock }

func (m *MockReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}
func (m *MockReviewRepository) FindByGig(ctx context.Context, gigID string, page, limit int) ([]*domain.Review, int64, error) {
	args := m.Called(ctx, gigID, page, limit)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*domain.Review), args.Get(1).(int64), args.Error(2)
}
func (m *MockReviewRepository) AverageRating(ctx context.Context, gigID string) (float64, int32, error) {
	args := m.Called(ctx, gigID)
	return args.Get(0).(float64), args.Get(1).(int32), args.Error(2)
}

type MockGigRepo struct{ mock.Mock }

func (m *MockGigRepo) Create(ctx context.Context, gig *gigdomain.Gig) error {
	args := m.Called(ctx, gig)
	return args.Error(0)
}
func (m *MockGigRepo) Update(ctx context.Context, gig *gigdomain.Gig) error {
	args := m.Called(ctx, gig)
	return args.Error(0)
}
func (m *MockGigRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockGigRepo) FindByID(ctx context.Context, id string) (*gigdomain.Gig, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gigdomain.Gig), args.Error(1)
}
func (m *MockGigRepo) FindByFilter(ctx context.Context, filter gigdomain.SearchFilter, limit int64) ([]*gigdomain.Gig, error) {
	args := m.Called(ctx, filter, limit)
	return nil, args.Error(1)
}
func (m *MockGigRepo) CountByFilter(ctx context.Context, filter gigdomain.SearchFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

type MockPublisher struct{ mock.Mock }

func (m *MockPublisher) Publish(ctx context.Context, subject string, data interface{}) error {
	args := m.Called(ctx, subject, data)
	return args.Error(0)
}

func TestCreateReview_RejectsOutOfRangeRating(t *testing.T) {
	uc := NewReviewUsecase(new(MockReviewRepository), new(MockGigRepo), new(MockPublisher), nil, logger.NewNop())

	for _, rating := range []int{0, -1, 6, 100} {
		_, err := uc.CreateReview(context.Background(), "buyer", "gig", rating, "")
		assert.ErrorIs(t, err, domain.ErrInvalidRating, "rating %d", rating)
	}
}

func TestCreateReview_DenormalizesAggregateOntoGig(t *testing.T) {
	reviews := new(MockReviewRepository)
	gigs := new(MockGigRepo)
	publisher := new(MockPublisher)

	gig := &gigdomain.Gig{ID: "gig-1", Rating: 4.0, ReviewCount: 2}
	gigs.On("FindByID", mock.Anything, "gig-1").Return(gig, nil)
	reviews.On("Create", mock.Anything, mock.Anything).Return(nil)
	reviews.On("AverageRating", mock.Anything, "gig-1").Return(4.5, int32(3), nil)
	gigs.On("Update", mock.Anything, mock.MatchedBy(func(g *gigdomain.Gig) bool {
		return g.Rating == 4.5 && g.ReviewCount == 3
	})).Return(nil)
	publisher.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	uc := NewReviewUsecase(reviews, gigs, publisher, nil, logger.NewNop())
	review, err := uc.CreateReview(context.Background(), "buyer", "gig-1", 5, "great work")

	assert.NoError(t, err)
	assert.Equal(t, 5, review.Rating)
	gigs.AssertExpectations(t)
}

func TestCreateReview_AggregateFailureDoesNotFailReview(t *testing.T) {
	reviews := new(MockReviewRepository)
	gigs := new(MockGigRepo)
	publisher := new(MockPublisher)

	gigs.On("FindByID", mock.Anything, "gig-1").Return(&gigdomain.Gig{ID: "gig-1"}, nil)
	reviews.On("Create", mock.Anything, mock.Anything).Return(nil)
	reviews.On("AverageRating", mock.Anything, "gig-1").Return(0.0, int32(0), errors.New("aggregation failed"))
	publisher.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	uc := NewReviewUsecase(reviews, gigs, publisher, nil, logger.NewNop())
	_, err := uc.CreateReview(context.Background(), "buyer", "gig-1", 4, "")

	assert.NoError(t, err)
	gigs.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestGetRating_ReturnsAggregate(t *testing.T) {
	reviews := new(MockReviewRepository)
	reviews.On("AverageRating", mock.Anything, "gig-1").Return(4.2, int32(17), nil)

	uc := NewReviewUsecase(reviews, new(MockGigRepo), new(MockPublisher), nil, logger.NewNop())
	summary, err := uc.GetRating(context.Background(), "gig-1")

	assert.NoError(t, err)
	assert.Equal(t, "gig-1", summary.GigID)
	assert.Equal(t, 4.2, summary.Average)
	assert.Equal(t, int32(17), summary.Count)
}
