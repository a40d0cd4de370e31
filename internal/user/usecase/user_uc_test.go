package usecase

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Muzammil2410/fiver-sub001/internal/platform/logger"
	"github.com/Muzammil2410/fiver-sub001/internal/user/domain"
)

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

const testSecret = "test-secret"

func TestRegister_HashesPasswordAndSetsSellerLevel(t *testing.T) {
	users := new(MockUserRepository)
	users.On("Create", mock.Anything, mock.Anything).Return(nil)

	uc := NewUserUsecase(users, testSecret, logger.NewNop())
	user, err := uc.Register(context.Background(), "alice", "alice@example.com", "hunter22", true)

	require.NoError(t, err)
	assert.Equal(t, "New Seller", user.Level)
	assert.NotEqual(t, "hunter22", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("hunter22")))
}

func TestRegister_RejectsShortPassword(t *testing.T) {
	uc := NewUserUsecase(new(MockUserRepository), testSecret, logger.NewNop())

	_, err := uc.Register(context.Background(), "bob", "bob@example.com", "abc", false)
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLogin_IssuesTokenWithUserIDClaim(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.MinCost)
	require.NoError(t, err)

	users := new(MockUserRepository)
	users.On("FindByEmail", mock.Anything, "alice@example.com").Return(&domain.User{
		ID:           "user-1",
		Email:        "alice@example.com",
		PasswordHash: string(hash),
	}, nil)

	uc := NewUserUsecase(users, testSecret, logger.NewNop())
	signed, user, err := uc.Login(context.Background(), "alice@example.com", "hunter22")

	require.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(signed, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims["user_id"])
}

func TestLogin_WrongPasswordIsInvalidCredentials(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct"), bcrypt.MinCost)
	require.NoError(t, err)

	users := new(MockUserRepository)
	users.On("FindByEmail", mock.Anything, "alice@example.com").Return(&domain.User{
		ID:           "user-1",
		PasswordHash: string(hash),
	}, nil)

	uc := NewUserUsecase(users, testSecret, logger.NewNop())
	_, _, err = uc.Login(context.Background(), "alice@example.com", "wrong")

	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLogin_UnknownEmailIsInvalidCredentials(t *testing.T) {
	users := new(MockUserRepository)
	users.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, domain.ErrNotFound)

	uc := NewUserUsecase(users, testSecret, logger.NewNop())
	_, _, err := uc.Login(context.Background(), "ghost@example.com", "whatever")

	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}
