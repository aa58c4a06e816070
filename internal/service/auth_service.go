package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/formlytic/formlytic-api/internal/auth"
	"github.com/formlytic/formlytic-api/internal/domain"
	"github.com/formlytic/formlytic-api/internal/mapper"
	"github.com/formlytic/formlytic-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AuthService registers creators and exchanges credentials for access tokens
type AuthService struct {
	userRepo   *repository.UserRepository
	issuer     *auth.TokenIssuer
	bcryptCost int
	logger     *zap.Logger
}

func NewAuthService(userRepo *repository.UserRepository, issuer *auth.TokenIssuer, bcryptCost int, logger *zap.Logger) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		issuer:     issuer,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

// Register creates an account and returns a token for it
func (s *AuthService) Register(ctx context.Context, req *domain.RegisterRequest) (*domain.AuthResponse, error) {
	email := domain.NormalizeEmail(req.Email)

	exists, err := s.userRepo.EmailExists(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, ErrEmailTaken
	}

	hash, err := auth.HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Email:        email,
		Name:         strings.TrimSpace(req.Name),
		PasswordHash: hash,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// A concurrent registration can win the race past EmailExists
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("user registered", zap.String("user_id", user.ID.String()))
	return s.tokenFor(user)
}

// Login verifies credentials. Unknown users, users without a password and
// wrong passwords all yield ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, req *domain.LoginRequest) (*domain.AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, domain.NormalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user.PasswordHash == "" {
		return nil, ErrInvalidCredentials
	}
	if err := auth.CheckPassword(user.PasswordHash, req.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := s.userRepo.TouchLastLogin(ctx, user.ID, time.Now().UTC()); err != nil {
		s.logger.Warn("failed to record last login", zap.Error(err), zap.String("user_id", user.ID.String()))
	}

	return s.tokenFor(user)
}

// Me returns the authenticated user
func (s *AuthService) Me(ctx context.Context) (*domain.UserDTO, error) {
	userCtx, ok := auth.FromContext(ctx)
	if !ok || userCtx.IsSystem {
		return nil, ErrUnauthorized
	}
	user, err := s.userRepo.GetByID(ctx, userCtx.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	dto := mapper.ToUserDTO(user)
	return &dto, nil
}

func (s *AuthService) tokenFor(user *domain.User) (*domain.AuthResponse, error) {
	token, expiresAt, err := s.issuer.Issue(user.ID, user.Email, user.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return &domain.AuthResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt.UTC().Format(time.RFC3339),
		User:        mapper.ToUserDTO(user),
	}, nil
}
