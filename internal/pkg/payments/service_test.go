package payments

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v82"
	"gorm.io/gorm"

	"github.com/leadvine/leadvine/app/models"
)

// fakeRepository is an in-memory Repository for service tests.
type fakeRepository struct {
	partners      map[uint]*models.Partner // keyed by partner id
	subscriptions map[string]*models.Subscription
	webhookEvents map[string]*models.WebhookEvent
	customerIDs   map[uint]string
	nextID        uint
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		partners:      make(map[uint]*models.Partner),
		subscriptions: make(map[string]*models.Subscription),
		webhookEvents: make(map[string]*models.WebhookEvent),
		customerIDs:   make(map[uint]string),
		nextID:        1,
	}
}

func (r *fakeRepository) UpsertPartner(p *models.Partner) error {
	for _, existing := range r.partners {
		if existing.UserID == p.UserID {
			*p = *existing
			return nil
		}
	}
	p.ID = r.nextID
	r.nextID++
	if p.SubscriptionStatus == "" {
		p.SubscriptionStatus = models.SubscriptionStatusInactive
	}
	if p.PricingTier == "" {
		p.PricingTier = models.DefaultPricingTier
	}
	cp := *p
	r.partners[p.ID] = &cp
	return nil
}

func (r *fakeRepository) GetPartnerByUserID(userID uint) (*models.Partner, error) {
	for _, p := range r.partners {
		if p.UserID == userID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRepository) GetPartnerByID(id uint) (*models.Partner, error) {
	p, ok := r.partners[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakeRepository) SavePartner(p *models.Partner) error {
	cp := *p
	r.partners[p.ID] = &cp
	return nil
}

func (r *fakeRepository) SetUserStripeCustomerID(userID uint, customerID string) error {
	r.customerIDs[userID] = customerID
	return nil
}

func (r *fakeRepository) UpsertSubscription(sub *models.Subscription) error {
	if existing, ok := r.subscriptions[sub.StripeSubscriptionID]; ok {
		sub.ID = existing.ID
	} else {
		sub.ID = r.nextID
		r.nextID++
	}
	cp := *sub
	r.subscriptions[sub.StripeSubscriptionID] = &cp
	return nil
}

func (r *fakeRepository) GetSubscriptionByProviderID(id string) (*models.Subscription, error) {
	sub, ok := r.subscriptions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *sub
	return &cp, nil
}

func (r *fakeRepository) SaveSubscription(sub *models.Subscription) error {
	cp := *sub
	r.subscriptions[sub.StripeSubscriptionID] = &cp
	return nil
}

func (r *fakeRepository) CreateWebhookEventIfNotExists(event *models.WebhookEvent) (bool, *models.WebhookEvent, error) {
	key := event.Provider + "/" + event.ProviderEventID
	if existing, ok := r.webhookEvents[key]; ok {
		cp := *existing
		return false, &cp, nil
	}
	event.ID = r.nextID
	r.nextID++
	cp := *event
	r.webhookEvents[key] = &cp
	stored := cp
	return true, &stored, nil
}

func (r *fakeRepository) MarkWebhookProcessed(id uint, processingError string) error {
	now := time.Now()
	for _, event := range r.webhookEvents {
		if event.ID == id {
			event.ProcessedAt = &now
			event.ProcessingError = processingError
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// fakeGateway records calls and serves canned provider state.
type fakeGateway struct {
	subscriptions map[string]*ProviderSubscription

	createdCustomers int
	checkoutCalls    []CheckoutParams
	canceledIDs      []string
	cancelErr        error
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{subscriptions: make(map[string]*ProviderSubscription)}
}

func (g *fakeGateway) CreateCustomer(ctx context.Context, email, name string, metadata map[string]string) (string, error) {
	g.createdCustomers++
	return "cus_test_1", nil
}

func (g *fakeGateway) CreateCheckoutSession(ctx context.Context, params CheckoutParams) (*CheckoutSession, error) {
	g.checkoutCalls = append(g.checkoutCalls, params)
	return &CheckoutSession{ID: "cs_test_1", URL: "https://checkout.stripe.com/c/pay/cs_test_1"}, nil
}

func (g *fakeGateway) RetrieveSubscription(ctx context.Context, subscriptionID string) (*ProviderSubscription, error) {
	sub, ok := g.subscriptions[subscriptionID]
	if !ok {
		return nil, errors.New("no such subscription: " + subscriptionID)
	}
	return sub, nil
}

func (g *fakeGateway) CancelAtPeriodEnd(ctx context.Context, subscriptionID string) error {
	if g.cancelErr != nil {
		return g.cancelErr
	}
	g.canceledIDs = append(g.canceledIDs, subscriptionID)
	return nil
}

func (g *fakeGateway) VerifyWebhook(payload []byte, signatureHeader string) (*stripe.Event, error) {
	return nil, errors.New("not used in tests")
}

func newTestService() (*Service, *fakeRepository, *fakeGateway) {
	repo := newFakeRepository()
	gateway := newFakeGateway()
	svc := NewService(repo, gateway, Config{
		SuccessURL: "http://localhost:4000/payment/success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:  "http://localhost:4000/pricing",
	})
	return svc, repo, gateway
}

func testUser() *models.User {
	return &models.User{ID: 42, Name: "Jamie Rivers", Email: "jamie@example.com"}
}

func TestCreateCheckoutSessionNoSelection(t *testing.T) {
	svc, _, gateway := newTestService()

	_, err := svc.CreateCheckoutSession(context.Background(), testUser(), TierSelection{})
	assert.ErrorIs(t, err, ErrNoServiceSelected)
	assert.Empty(t, gateway.checkoutCalls)

	// "none" placeholders count as unselected too.
	_, err = svc.CreateCheckoutSession(context.Background(), testUser(), TierSelection{
		Leads: "none", Audit: "none", MetaAudit: "none",
	})
	assert.ErrorIs(t, err, ErrNoServiceSelected)
	assert.Empty(t, gateway.checkoutCalls)
}

func TestCreateCheckoutSessionUnknownTier(t *testing.T) {
	svc, _, gateway := newTestService()

	_, err := svc.CreateCheckoutSession(context.Background(), testUser(), TierSelection{
		Leads: "platinum",
	})
	assert.ErrorIs(t, err, ErrUnknownTier)
	// Validation must fail before any provider call.
	assert.Zero(t, gateway.createdCustomers)
	assert.Empty(t, gateway.checkoutCalls)
}

func TestCreateCheckoutSessionBundle(t *testing.T) {
	svc, repo, gateway := newTestService()
	user := testUser()

	result, err := svc.CreateCheckoutSession(context.Background(), user, TierSelection{
		Leads: "basic",
		Audit: "professional",
	})
	require.NoError(t, err)

	assert.Equal(t, "cs_test_1", result.SessionID)
	assert.Equal(t, int64(11100+22200), result.TotalPrice)
	assert.Equal(t, "$333.00", result.TotalPriceUSD)
	assert.Contains(t, result.Services, "Leads (basic)")
	assert.Contains(t, result.Services, "Audit (professional)")

	// Partner row exists with defaults.
	partner, err := repo.GetPartnerByUserID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jamie Rivers", partner.BusinessName)
	assert.Equal(t, "General", partner.Niche)

	// Customer was created once and persisted.
	assert.Equal(t, 1, gateway.createdCustomers)
	assert.Equal(t, "cus_test_1", repo.customerIDs[user.ID])
	assert.Equal(t, "cus_test_1", user.StripeCustomerID)

	require.Len(t, gateway.checkoutCalls, 1)
	call := gateway.checkoutCalls[0]
	assert.Len(t, call.LineItems, 2)
	assert.Equal(t, "42", call.ClientReferenceID)
	assert.Equal(t, "basic", call.Metadata["leads_service"])
	assert.Equal(t, "professional", call.Metadata["audit_service"])
	assert.Equal(t, "none", call.Metadata["meta_audit_service"])
	assert.Equal(t, "33300", call.Metadata["total_price"])
}

func TestCreateCheckoutSessionReusesCustomer(t *testing.T) {
	svc, _, gateway := newTestService()
	user := testUser()
	user.StripeCustomerID = "cus_existing"

	_, err := svc.CreateCheckoutSession(context.Background(), user, TierSelection{Leads: "basic"})
	require.NoError(t, err)

	assert.Zero(t, gateway.createdCustomers)
	require.Len(t, gateway.checkoutCalls, 1)
	assert.Equal(t, "cus_existing", gateway.checkoutCalls[0].CustomerID)
}

func TestSubscriptionStatusWithoutPartner(t *testing.T) {
	svc, _, _ := newTestService()

	status, err := svc.SubscriptionStatus(context.Background(), 99)
	require.NoError(t, err)
	assert.False(t, status.HasPartner)
	assert.Empty(t, status.Tier)
}

func TestSubscriptionStatusWithPartner(t *testing.T) {
	svc, repo, _ := newTestService()
	renewal := time.Date(2026, 9, 28, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.UpsertPartner(&models.Partner{
		UserID:       7,
		BusinessName: "Glow Studio",
		Niche:        "Holistic Wellness",
	}))
	partner, err := repo.GetPartnerByUserID(7)
	require.NoError(t, err)
	partner.PricingTier = "agency_partner"
	partner.SubscriptionStatus = models.SubscriptionStatusActive
	partner.SubscriptionRenewalDate = &renewal
	require.NoError(t, repo.SavePartner(partner))

	status, err := svc.SubscriptionStatus(context.Background(), 7)
	require.NoError(t, err)
	assert.True(t, status.HasPartner)
	assert.Equal(t, "agency_partner", status.Tier)
	assert.Equal(t, models.SubscriptionStatusActive, status.Status)
	require.NotNil(t, status.RenewalDate)
	assert.True(t, status.RenewalDate.Equal(renewal))
}

func TestCancelSubscription(t *testing.T) {
	svc, repo, gateway := newTestService()

	// No partner at all.
	err := svc.CancelSubscription(context.Background(), 1)
	assert.ErrorIs(t, err, ErrNoSubscription)

	// Partner without a provider subscription.
	require.NoError(t, repo.UpsertPartner(&models.Partner{UserID: 1, BusinessName: "B", Niche: "General"}))
	err = svc.CancelSubscription(context.Background(), 1)
	assert.ErrorIs(t, err, ErrNoSubscription)

	partner, err := repo.GetPartnerByUserID(1)
	require.NoError(t, err)
	partner.StripeSubscriptionID = "sub_live_1"
	require.NoError(t, repo.SavePartner(partner))

	require.NoError(t, svc.CancelSubscription(context.Background(), 1))
	assert.Equal(t, []string{"sub_live_1"}, gateway.canceledIDs)
}

func TestRecordWebhookEventDeduplicates(t *testing.T) {
	svc, _, _ := newTestService()
	in := WebhookEventInput{
		Provider:        "stripe",
		ProviderEventID: "evt_123",
		EventType:       "checkout.session.completed",
		PayloadJSON:     `{"id":"evt_123"}`,
		SignatureValid:  true,
	}

	created, first, err := svc.RecordWebhookEvent(context.Background(), in)
	require.NoError(t, err)
	assert.True(t, created)
	require.NotNil(t, first)

	created, second, err := svc.RecordWebhookEvent(context.Background(), in)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
}

func TestRecordWebhookEventHashFallback(t *testing.T) {
	svc, _, _ := newTestService()
	in := WebhookEventInput{
		Provider:    "stripe",
		EventType:   "customer.subscription.updated",
		PayloadJSON: `{"id":"sub_1"}`,
	}

	created, event, err := svc.RecordWebhookEvent(context.Background(), in)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Contains(t, event.ProviderEventID, "hash:")

	// Same payload maps to the same synthetic id.
	created, _, err = svc.RecordWebhookEvent(context.Background(), in)
	require.NoError(t, err)
	assert.False(t, created)
}

func TestMarkWebhookProcessed(t *testing.T) {
	svc, repo, _ := newTestService()
	created, event, err := svc.RecordWebhookEvent(context.Background(), WebhookEventInput{
		Provider:        "stripe",
		ProviderEventID: "evt_done",
		EventType:       "invoice.payment_succeeded",
		PayloadJSON:     "{}",
	})
	require.NoError(t, err)
	require.True(t, created)

	require.NoError(t, svc.MarkWebhookProcessed(context.Background(), event.ID, nil))
	stored := repo.webhookEvents["stripe/evt_done"]
	require.NotNil(t, stored.ProcessedAt)
	assert.Empty(t, stored.ProcessingError)

	require.NoError(t, svc.MarkWebhookProcessed(context.Background(), event.ID, errors.New("boom")))
	assert.Equal(t, "boom", repo.webhookEvents["stripe/evt_done"].ProcessingError)
}
