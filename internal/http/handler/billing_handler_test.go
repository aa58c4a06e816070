package handler_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/formlytic/formlytic-api/internal/domain"
	"github.com/formlytic/formlytic-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBillingHandler_Purchases(t *testing.T) {
	env := newTestEnv(t, 0)
	owner, ctx := newOwner(t, env.db)
	form := testutil.CreateTestForm(t, env.db, owner, "Premium survey")

	rr := serve(env.billing.CreatePurchase, newRequest(t, ctx, http.MethodPost, "/", domain.CreatePurchaseRequest{
		FormID:   &form.ID,
		Currency: "usd",
	}, nil))
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	purchase := decode[domain.PurchaseDTO](t, rr)
	assert.Equal(t, domain.PurchaseStatusCompleted, purchase.Status)
	assert.Equal(t, "USD", purchase.Currency)
	assert.Equal(t, testBilling.DefaultPurchaseAmount, purchase.Amount)
	assert.ElementsMatch(t, domain.PremiumFeatures, purchase.Features)

	var stored domain.Form
	require.NoError(t, env.db.First(&stored, "id = ?", form.ID).Error)
	assert.True(t, stored.IsPaid)

	rr = serve(env.billing.ListPurchases, newRequest(t, ctx, http.MethodGet, "/", nil, nil))
	require.Equal(t, http.StatusOK, rr.Code)
	list := decode[domain.PurchaseListDTO](t, rr)
	assert.Equal(t, 1, list.TotalPurchases)
	assert.Equal(t, "Premium survey", list.Purchases[0].FormTitle)

	t.Run("system caller cannot purchase", func(t *testing.T) {
		rr := serve(env.billing.CreatePurchase, newRequest(t, testutil.SystemContext(), http.MethodPost, "/", domain.CreatePurchaseRequest{}, nil))
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestBillingHandler_Subscriptions(t *testing.T) {
	env := newTestEnv(t, 0)
	_, ctx := newOwner(t, env.db)

	rr := serve(env.billing.GetSubscription, newRequest(t, ctx, http.MethodGet, "/", nil, nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.False(t, decode[domain.SubscriptionStatusDTO](t, rr).HasActiveSubscription)

	rr = serve(env.billing.CreateSubscription, newRequest(t, ctx, http.MethodPost, "/", domain.CreateSubscriptionRequest{}, nil))
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	sub := decode[domain.SubscriptionDTO](t, rr)
	assert.Equal(t, domain.SubscriptionStatusActive, sub.Status)
	assert.Equal(t, domain.SubscriptionPlanOrganization, sub.Plan)
	assert.True(t, sub.AutoRenew)

	rr = serve(env.billing.CreateSubscription, newRequest(t, ctx, http.MethodPost, "/", domain.CreateSubscriptionRequest{}, nil))
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = serve(env.billing.GetSubscription, newRequest(t, ctx, http.MethodGet, "/", nil, nil))
	require.Equal(t, http.StatusOK, rr.Code)
	status := decode[domain.SubscriptionStatusDTO](t, rr)
	assert.True(t, status.HasActiveSubscription)
	require.NotNil(t, status.Subscription)
	assert.Equal(t, sub.ID, status.Subscription.ID)
}

func TestBillingHandler_ExpireSubscriptions(t *testing.T) {
	env := newTestEnv(t, 0)
	owner, _ := newOwner(t, env.db)

	now := time.Now().UTC()
	require.NoError(t, env.db.Create(&domain.Subscription{
		UserID:    owner.ID,
		Plan:      domain.SubscriptionPlanOrganization,
		Status:    domain.SubscriptionStatusActive,
		Amount:    300,
		Currency:  "INR",
		StartDate: now.AddDate(0, -2, 0),
		EndDate:   now.AddDate(0, -1, 0),
	}).Error)

	rr := serve(env.billing.ExpireSubscriptions, newRequest(t, testutil.SystemContext(), http.MethodPost, "/", nil, nil))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, int64(1), decode[domain.ExpireSubscriptionsResult](t, rr).Expired)

	var stored domain.Subscription
	require.NoError(t, env.db.First(&stored, "user_id = ?", owner.ID).Error)
	assert.Equal(t, domain.SubscriptionStatusExpired, stored.Status)

	rr = serve(env.billing.ExpireSubscriptions, newRequest(t, testutil.SystemContext(), http.MethodPost, "/", nil, nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, int64(0), decode[domain.ExpireSubscriptionsResult](t, rr).Expired)
}
