package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/formlytic/formlytic-api/internal/config"
	"github.com/formlytic/formlytic-api/internal/domain"
	"github.com/formlytic/formlytic-api/internal/mapper"
	"github.com/formlytic/formlytic-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type SubscriptionService struct {
	subscriptionRepo *repository.SubscriptionRepository
	billing          config.BillingConfig
	now              func() time.Time
	logger           *zap.Logger
}

func NewSubscriptionService(subscriptionRepo *repository.SubscriptionRepository, billing config.BillingConfig, logger *zap.Logger) *SubscriptionService {
	return &SubscriptionService{
		subscriptionRepo: subscriptionRepo,
		billing:          billing,
		now:              func() time.Time { return time.Now().UTC() },
		logger:           logger,
	}
}

// Create starts an organization subscription for the caller. An existing
// subscription is overwritten unless it is still active.
func (s *SubscriptionService) Create(ctx context.Context, req *domain.CreateSubscriptionRequest) (*domain.SubscriptionDTO, error) {
	userID, err := requireCreator(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	existing, err := s.subscriptionRepo.GetByUser(ctx, userID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	if existing != nil && existing.IsActiveAt(now) {
		return nil, ErrActiveSubscription
	}

	amount := s.billing.DefaultSubscriptionAmount
	if req.Amount != nil {
		amount = *req.Amount
	}
	months := s.billing.SubscriptionMonths
	if months <= 0 {
		months = 1
	}

	sub := &domain.Subscription{
		UserID:    userID,
		Plan:      domain.SubscriptionPlanOrganization,
		Status:    domain.SubscriptionStatusActive,
		Amount:    amount,
		Currency:  currencyOrDefault(req.Currency, s.billing.Currency),
		StartDate: now,
		EndDate:   now.AddDate(0, months, 0),
		AutoRenew: true,
	}
	if err := s.subscriptionRepo.Upsert(ctx, sub); err != nil {
		return nil, fmt.Errorf("failed to save subscription: %w", err)
	}

	s.logger.Info("subscription started",
		zap.String("user_id", userID.String()),
		zap.Time("end_date", sub.EndDate))

	dto := mapper.ToSubscriptionDTO(sub)
	return &dto, nil
}

// Get returns the caller's subscription, if any, and whether it is active now
func (s *SubscriptionService) Get(ctx context.Context) (*domain.SubscriptionStatusDTO, error) {
	userID, err := requireCreator(ctx)
	if err != nil {
		return nil, err
	}

	sub, err := s.subscriptionRepo.GetByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &domain.SubscriptionStatusDTO{}, nil
		}
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}

	dto := mapper.ToSubscriptionDTO(sub)
	return &domain.SubscriptionStatusDTO{
		Subscription:          &dto,
		HasActiveSubscription: sub.IsActiveAt(s.now()),
	}, nil
}

// ExpireEnded marks every lapsed active subscription as expired
func (s *SubscriptionService) ExpireEnded(ctx context.Context) (int64, error) {
	n, err := s.subscriptionRepo.ExpireEnded(ctx, s.now())
	if err != nil {
		return 0, fmt.Errorf("failed to expire subscriptions: %w", err)
	}
	if n > 0 {
		s.logger.Info("subscriptions expired", zap.Int64("count", n))
	}
	return n, nil
}
