package handler

import (
	"net/http"

	"github.com/formlytic/formlytic-api/internal/auth"
	"github.com/formlytic/formlytic-api/internal/domain"
	"github.com/formlytic/formlytic-api/internal/service"
	"go.uber.org/zap"
)

// BillingHandler serves purchases and subscriptions
type BillingHandler struct {
	purchaseService     *service.PurchaseService
	subscriptionService *service.SubscriptionService
	logger              *zap.Logger
}

func NewBillingHandler(purchaseService *service.PurchaseService, subscriptionService *service.SubscriptionService, logger *zap.Logger) *BillingHandler {
	return &BillingHandler{
		purchaseService:     purchaseService,
		subscriptionService: subscriptionService,
		logger:              logger,
	}
}

// CreatePurchase godoc
// @Summary Purchase premium features
// @Description Records a completed purchase. When formId is given the form is marked paid.
// @Tags Billing
// @Accept json
// @Produce json
// @Param request body domain.CreatePurchaseRequest true "Purchase"
// @Success 201 {object} domain.PurchaseDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.ErrorResponse "Form not found"
// @Security BearerAuth
// @Router /purchases [post]
func (h *BillingHandler) CreatePurchase(w http.ResponseWriter, r *http.Request) {
	var req domain.CreatePurchaseRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	purchase, err := h.purchaseService.Create(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to create purchase")
		return
	}

	respondJSON(w, http.StatusCreated, purchase)
}

// ListPurchases godoc
// @Summary List my purchases
// @Tags Billing
// @Produce json
// @Success 200 {object} domain.PurchaseListDTO
// @Security BearerAuth
// @Router /purchases [get]
func (h *BillingHandler) ListPurchases(w http.ResponseWriter, r *http.Request) {
	purchases, err := h.purchaseService.List(r.Context())
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to list purchases")
		return
	}

	respondJSON(w, http.StatusOK, purchases)
}

// CreateSubscription godoc
// @Summary Subscribe to the organization plan
// @Tags Billing
// @Accept json
// @Produce json
// @Param request body domain.CreateSubscriptionRequest true "Subscription"
// @Success 201 {object} domain.SubscriptionDTO
// @Failure 400 {object} domain.ErrorResponse "Already subscribed"
// @Security BearerAuth
// @Router /subscriptions [post]
func (h *BillingHandler) CreateSubscription(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateSubscriptionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	sub, err := h.subscriptionService.Create(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to create subscription")
		return
	}

	respondJSON(w, http.StatusCreated, sub)
}

// GetSubscription godoc
// @Summary Get my subscription
// @Tags Billing
// @Produce json
// @Success 200 {object} domain.SubscriptionStatusDTO
// @Security BearerAuth
// @Router /subscriptions [get]
func (h *BillingHandler) GetSubscription(w http.ResponseWriter, r *http.Request) {
	status, err := h.subscriptionService.Get(r.Context())
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to get subscription")
		return
	}

	respondJSON(w, http.StatusOK, status)
}

// ExpireSubscriptions godoc
// @Summary Expire lapsed subscriptions
// @Description Runs the subscription expiry sweep immediately. API key only.
// @Tags System
// @Produce json
// @Success 200 {object} domain.ExpireSubscriptionsResult
// @Failure 403 {object} domain.ErrorResponse
// @Security ApiKeyAuth
// @Router /system/subscriptions/expire [post]
func (h *BillingHandler) ExpireSubscriptions(w http.ResponseWriter, r *http.Request) {
	caller := auth.MustFromContext(r.Context())

	n, err := h.subscriptionService.ExpireEnded(r.Context())
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to expire subscriptions")
		return
	}

	h.logger.Info("manual subscription expiry",
		zap.String("caller", caller.DisplayName),
		zap.Int64("expired", n))
	respondJSON(w, http.StatusOK, domain.ExpireSubscriptionsResult{Expired: n})
}
