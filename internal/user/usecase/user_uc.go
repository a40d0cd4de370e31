package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Muzammil2410/fiver-sub001/internal/platform/logger"
	"github.com/Muzammil2410/fiver-sub001/internal/user/domain"
)

const tokenTTL = 24 * time.Hour

// UserUsecase handles registration and login. Tokens carry the user id as a
// claim and are validated by the HTTP auth middleware.
type UserUsecase struct {
	users     domain.UserRepository
	jwtSecret string
	logger    *logger.Logger
}

func NewUserUsecase(users domain.UserRepository, jwtSecret string, log *logger.Logger) *UserUsecase {
	return &UserUsecase{
		users:     users,
		jwtSecret: jwtSecret,
		logger:    log.Named("UserUsecase"),
	}
}

func (uc *UserUsecase) Register(ctx context.Context, username, email, password string, isSeller bool) (*domain.User, error) {
	if username == "" || email == "" || len(password) < 6 {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		IsSeller:     isSeller,
	}
	if isSeller {
		user.Level = "New Seller"
	}

	if err := uc.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return nil, err
		}
		uc.logger.Error("Register: create failed", zap.Error(err))
		return nil, err
	}

	return user, nil
}

// Login verifies credentials and issues a signed token.
func (uc *UserUsecase) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	user, err := uc.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	claims := jwt.MapClaims{
		"user_id": user.ID,
		"exp":     time.Now().Add(tokenTTL).Unix(),
		"iat":     time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(uc.jwtSecret))
	if err != nil {
		uc.logger.Error("Login: token signing failed", zap.Error(err))
		return "", nil, err
	}

	return signed, user, nil
}
