package controllers

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v82"
	"gorm.io/gorm"

	"github.com/leadvine/leadvine/app/models"
	"github.com/leadvine/leadvine/internal/pkg/payments"
)

// stubPaymentRepository backs the webhook controller tests in memory and
// counts writes.
type stubPaymentRepository struct {
	partners      map[uint]*models.Partner
	subscriptions map[string]*models.Subscription
	webhookEvents map[string]*models.WebhookEvent
	writes        int
	nextID        uint
}

func newStubPaymentRepository() *stubPaymentRepository {
	return &stubPaymentRepository{
		partners:      make(map[uint]*models.Partner),
		subscriptions: make(map[string]*models.Subscription),
		webhookEvents: make(map[string]*models.WebhookEvent),
		nextID:        1,
	}
}

func (r *stubPaymentRepository) UpsertPartner(p *models.Partner) error {
	r.writes++
	p.ID = r.nextID
	r.nextID++
	cp := *p
	r.partners[p.ID] = &cp
	return nil
}

func (r *stubPaymentRepository) GetPartnerByUserID(userID uint) (*models.Partner, error) {
	for _, p := range r.partners {
		if p.UserID == userID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubPaymentRepository) GetPartnerByID(id uint) (*models.Partner, error) {
	p, ok := r.partners[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *stubPaymentRepository) SavePartner(p *models.Partner) error {
	r.writes++
	cp := *p
	r.partners[p.ID] = &cp
	return nil
}

func (r *stubPaymentRepository) SetUserStripeCustomerID(userID uint, customerID string) error {
	r.writes++
	return nil
}

func (r *stubPaymentRepository) UpsertSubscription(sub *models.Subscription) error {
	r.writes++
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

func (r *stubPaymentRepository) GetSubscriptionByProviderID(id string) (*models.Subscription, error) {
	sub, ok := r.subscriptions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *sub
	return &cp, nil
}

func (r *stubPaymentRepository) SaveSubscription(sub *models.Subscription) error {
	r.writes++
	cp := *sub
	r.subscriptions[sub.StripeSubscriptionID] = &cp
	return nil
}

func (r *stubPaymentRepository) CreateWebhookEventIfNotExists(event *models.WebhookEvent) (bool, *models.WebhookEvent, error) {
	r.writes++
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

func (r *stubPaymentRepository) MarkWebhookProcessed(id uint, processingError string) error {
	r.writes++
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

// stubPaymentGateway serves a canned verification result and provider state.
type stubPaymentGateway struct {
	event         *stripe.Event
	verifyErr     error
	subscriptions map[string]*payments.ProviderSubscription
}

func (g *stubPaymentGateway) CreateCustomer(ctx context.Context, email, name string, metadata map[string]string) (string, error) {
	return "cus_stub", nil
}

func (g *stubPaymentGateway) CreateCheckoutSession(ctx context.Context, params payments.CheckoutParams) (*payments.CheckoutSession, error) {
	return &payments.CheckoutSession{ID: "cs_stub", URL: "https://example.com/cs_stub"}, nil
}

func (g *stubPaymentGateway) RetrieveSubscription(ctx context.Context, subscriptionID string) (*payments.ProviderSubscription, error) {
	sub, ok := g.subscriptions[subscriptionID]
	if !ok {
		return nil, errors.New("no such subscription: " + subscriptionID)
	}
	return sub, nil
}

func (g *stubPaymentGateway) CancelAtPeriodEnd(ctx context.Context, subscriptionID string) error {
	return nil
}

func (g *stubPaymentGateway) VerifyWebhook(payload []byte, signatureHeader string) (*stripe.Event, error) {
	if g.verifyErr != nil {
		return nil, g.verifyErr
	}
	return g.event, nil
}

// newWebhookTestApp wires the webhook route against stubbed dependencies and
// restores the real service constructor afterwards.
func newWebhookTestApp(t *testing.T, repo *stubPaymentRepository, gateway *stubPaymentGateway) *fiber.App {
	t.Helper()
	original := paymentsService
	paymentsService = func() *payments.Service {
		return payments.NewService(repo, gateway, payments.Config{
			SuccessURL: "http://localhost:4000/payment/success",
			CancelURL:  "http://localhost:4000/pricing",
		})
	}
	t.Cleanup(func() { paymentsService = original })

	app := fiber.New()
	app.Post("/webhooks/stripe", HandleStripeWebhook)
	return app
}

func postWebhook(t *testing.T, app *fiber.App, body, signature string) (int, string) {
	t.Helper()
	req := httptest.NewRequest("POST", "/webhooks/stripe", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Stripe-Signature", signature)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(raw)
}

func TestStripeWebhookInvalidSignature(t *testing.T) {
	repo := newStubPaymentRepository()
	gateway := &stubPaymentGateway{verifyErr: errors.New("signature mismatch")}
	app := newWebhookTestApp(t, repo, gateway)

	status, body := postWebhook(t, app, `{"id":"evt_1"}`, "t=0,v1=bogus")

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, body, "invalid_signature")
	// Unverifiable payloads must leave no trace in the database.
	assert.Zero(t, repo.writes)
}

func TestStripeWebhookTestPing(t *testing.T) {
	repo := newStubPaymentRepository()
	gateway := &stubPaymentGateway{
		event: &stripe.Event{ID: "evt_test_ping", Type: "charge.succeeded"},
	}
	app := newWebhookTestApp(t, repo, gateway)

	status, body := postWebhook(t, app, "{}", "sig")

	assert.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, body, `"verified":true`)
	assert.Zero(t, repo.writes)
}

func TestStripeWebhookReprocessesFailedDelivery(t *testing.T) {
	repo := newStubPaymentRepository()
	require.NoError(t, repo.UpsertPartner(&models.Partner{
		UserID:       42,
		BusinessName: "Glow Studio",
		Niche:        "Holistic Wellness",
	}))

	payload := `{
		"id": "cs_1",
		"client_reference_id": "42",
		"subscription": "sub_1",
		"metadata": {"user_id": "42", "partner_id": "1", "leads_service": "elite"}
	}`
	gateway := &stubPaymentGateway{
		event: &stripe.Event{
			ID:   "evt_cs_1",
			Type: "checkout.session.completed",
			Data: &stripe.EventData{Raw: []byte(payload)},
		},
		subscriptions: make(map[string]*payments.ProviderSubscription),
	}
	app := newWebhookTestApp(t, repo, gateway)

	// First delivery fails: the provider lookup errors out and Stripe gets a
	// 500 so it redelivers.
	status, _ := postWebhook(t, app, payload, "sig")
	assert.Equal(t, fiber.StatusInternalServerError, status)

	// Redelivery must not be swallowed as a duplicate of the failed attempt.
	end := time.Now().Add(30 * 24 * time.Hour)
	gateway.subscriptions["sub_1"] = &payments.ProviderSubscription{
		ID:               "sub_1",
		PriceID:          "price_elite",
		Status:           models.SubscriptionStatusActive,
		CurrentPeriodEnd: &end,
	}
	status, body := postWebhook(t, app, payload, "sig")
	assert.Equal(t, fiber.StatusOK, status)
	assert.NotContains(t, body, "duplicate")

	sub, err := repo.GetSubscriptionByProviderID("sub_1")
	require.NoError(t, err)
	assert.Equal(t, models.SubscriptionStatusActive, sub.Status)

	// Once processed cleanly, further replays short-circuit.
	status, body = postWebhook(t, app, payload, "sig")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, body, `"duplicate":true`)
}
