package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/formlytic/formlytic-api/internal/config"
	"github.com/formlytic/formlytic-api/internal/domain"
	"github.com/formlytic/formlytic-api/internal/mapper"
	"github.com/formlytic/formlytic-api/internal/repository"
	"go.uber.org/zap"
)

// PurchaseService records premium unlocks. No payment provider is contacted;
// every purchase is stored as completed.
type PurchaseService struct {
	purchaseRepo *repository.PurchaseRepository
	formRepo     *repository.FormRepository
	billing      config.BillingConfig
	logger       *zap.Logger
}

func NewPurchaseService(
	purchaseRepo *repository.PurchaseRepository,
	formRepo *repository.FormRepository,
	billing config.BillingConfig,
	logger *zap.Logger,
) *PurchaseService {
	return &PurchaseService{
		purchaseRepo: purchaseRepo,
		formRepo:     formRepo,
		billing:      billing,
		logger:       logger,
	}
}

// Create stores a completed purchase. A target form must belong to the caller
// and is marked as paid.
func (s *PurchaseService) Create(ctx context.Context, req *domain.CreatePurchaseRequest) (*domain.PurchaseDTO, error) {
	userID, err := requireCreator(ctx)
	if err != nil {
		return nil, err
	}

	var form *domain.Form
	if req.FormID != nil {
		form, err = loadOwnedForm(ctx, s.formRepo, *req.FormID)
		if err != nil {
			return nil, err
		}
	}

	amount := s.billing.DefaultPurchaseAmount
	if req.Amount != nil {
		amount = *req.Amount
	}

	features := make(domain.StringList, len(domain.PremiumFeatures))
	copy(features, domain.PremiumFeatures)

	purchase := &domain.FormPurchase{
		UserID:   userID,
		FormID:   req.FormID,
		Amount:   amount,
		Currency: currencyOrDefault(req.Currency, s.billing.Currency),
		Status:   domain.PurchaseStatusCompleted,
		Features: features,
	}
	if err := s.purchaseRepo.CreateForForm(ctx, purchase); err != nil {
		return nil, fmt.Errorf("failed to create purchase: %w", err)
	}
	purchase.Form = form

	s.logger.Info("purchase recorded",
		zap.String("purchase_id", purchase.ID.String()),
		zap.String("user_id", userID.String()),
		zap.Float64("amount", amount))

	dto := mapper.ToPurchaseDTO(purchase)
	return &dto, nil
}

// List returns the caller's purchases newest first
func (s *PurchaseService) List(ctx context.Context) (*domain.PurchaseListDTO, error) {
	userID, err := requireCreator(ctx)
	if err != nil {
		return nil, err
	}

	purchases, err := s.purchaseRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list purchases: %w", err)
	}

	dtos := make([]domain.PurchaseDTO, len(purchases))
	for i := range purchases {
		dtos[i] = mapper.ToPurchaseDTO(&purchases[i])
	}
	return &domain.PurchaseListDTO{
		Purchases:      dtos,
		TotalPurchases: len(dtos),
	}, nil
}

func currencyOrDefault(currency, fallback string) string {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		currency = strings.ToUpper(fallback)
	}
	if currency == "" {
		currency = "INR"
	}
	return currency
}
