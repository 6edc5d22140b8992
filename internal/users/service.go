package users

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/openshelf/openshelf/internal/auth"
	"github.com/openshelf/openshelf/internal/domain"
	"github.com/openshelf/openshelf/pkg/common"
)

// Service is the identity collaborator: account registration, credential
// checks and access/refresh token issuance.
type Service struct {
	db     *gorm.DB
	tokens *auth.TokenManager
}

func NewService(db *gorm.DB, tokens *auth.TokenManager) *Service {
	return &Service{db: db, tokens: tokens}
}

func (s *Service) Register(ctx context.Context, email, password, name string) (*domain.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, domain.Validation("a valid email is required")
	}
	if len(password) < 6 {
		return nil, domain.Validation("password must be at least 6 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := domain.User{
		ID:       common.UUIDint64(),
		Email:    email,
		Password: string(hash),
		Name:     name,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.Conflict("user with email - %s already exists", email)
		}
		return nil, err
	}
	zap.L().Info("user registered", zap.Int64("user_id", user.ID))
	return &user, nil
}

// Authenticate verifies credentials and returns the user with a fresh
// access/refresh token pair.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*domain.User, string, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	var user domain.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", "", domain.Unauthorized("invalid credentials")
	} else if err != nil {
		return nil, "", "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, "", "", domain.Unauthorized("invalid credentials")
	}

	now := time.Now()
	user.LastLogin = &now
	if err := s.db.WithContext(ctx).Model(&user).Update("last_login", now).Error; err != nil {
		return nil, "", "", err
	}

	access, err := s.tokens.IssueAccess(user.ID)
	if err != nil {
		return nil, "", "", err
	}
	refresh, err := s.tokens.IssueRefresh(user.ID)
	if err != nil {
		return nil, "", "", err
	}
	return &user, access, refresh, nil
}

// RefreshAccess exchanges a valid refresh token for a new access token.
func (s *Service) RefreshAccess(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.tokens.ParseRefresh(refreshToken)
	if err != nil {
		return "", err
	}
	var user domain.User
	if err := s.db.WithContext(ctx).First(&user, claims.UserID).Error; err != nil {
		return "", domain.Unauthorized("invalid token or has expired")
	}
	return s.tokens.IssueAccess(user.ID)
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.User, error) {
	var user domain.User
	err := s.db.WithContext(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.NotFound("user with id: %d does not exist", id)
	} else if err != nil {
		return nil, err
	}
	return &user, nil
}
