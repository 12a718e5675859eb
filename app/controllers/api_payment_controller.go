package controllers

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/leadvine/leadvine/app/models"
	"github.com/leadvine/leadvine/internal/pkg/catalog"
	"github.com/leadvine/leadvine/internal/pkg/database"
	"github.com/leadvine/leadvine/internal/pkg/payments"
	"github.com/leadvine/leadvine/internal/pkg/usercontext"
)

const webhookProcessTimeout = 15 * time.Second

var paymentsService = func() *payments.Service {
	return payments.NewServiceFromDB(database.GetDB(), payments.NewStripeGatewayFromEnv())
}

// HandleAPIPricingTiers lists every purchasable tier. Public.
func HandleAPIPricingTiers(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"tiers": catalog.AvailableTiers(),
	})
}

// HandleAPICreateCheckout creates a hosted checkout session for the caller's
// tier selection.
func HandleAPICreateCheckout(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized", "login required")
	}

	var sel payments.TierSelection
	if err := c.BodyParser(&sel); err != nil {
		return apiError(c, fiber.StatusBadRequest, "bad_request", "invalid request body")
	}

	result, err := paymentsService().CreateCheckoutSession(c.Context(), user, sel)
	if err != nil {
		switch {
		case errors.Is(err, payments.ErrNoServiceSelected), errors.Is(err, payments.ErrUnknownTier):
			return apiError(c, fiber.StatusBadRequest, "bad_request", err.Error())
		default:
			return apiInternal(c)
		}
	}
	return c.JSON(result)
}

// HandleAPISubscriptionStatus returns the caller's tier/status/renewal date.
func HandleAPISubscriptionStatus(c *fiber.Ctx) error {
	status, err := paymentsService().SubscriptionStatus(c.Context(), usercontext.GetUserID(c))
	if err != nil {
		return apiInternal(c)
	}
	return c.JSON(status)
}

// HandleAPICancelSubscription requests end-of-period cancellation. Local state
// stays untouched until the provider confirms via webhook.
func HandleAPICancelSubscription(c *fiber.Ctx) error {
	err := paymentsService().CancelSubscription(c.Context(), usercontext.GetUserID(c))
	if err != nil {
		if errors.Is(err, payments.ErrNoSubscription) {
			return apiError(c, fiber.StatusNotFound, "not_found", err.Error())
		}
		return apiInternal(c)
	}
	return c.JSON(fiber.Map{
		"canceled": true,
		"message":  "subscription will end at the current period",
	})
}

// HandleStripeWebhook receives Stripe callbacks: verify the signature, store
// the event exactly once, then reconcile local subscription state.
func HandleStripeWebhook(c *fiber.Ctx) error {
	rawBody := append([]byte(nil), c.BodyRaw()...)
	signature := strings.TrimSpace(c.Get("Stripe-Signature"))

	svc := paymentsService()
	event, err := svc.VerifyWebhook(rawBody, signature)
	if err != nil {
		// Nothing is persisted for unverifiable payloads.
		return apiError(c, fiber.StatusBadRequest, "invalid_signature", "webhook signature verification failed")
	}

	// Stripe CLI / dashboard test pings are acknowledged without processing.
	if strings.HasPrefix(event.ID, "evt_test_") {
		return c.JSON(fiber.Map{"verified": true})
	}

	ctx, cancel := context.WithTimeout(context.Background(), webhookProcessTimeout)
	defer cancel()

	created, stored, err := svc.RecordWebhookEvent(ctx, payments.WebhookEventInput{
		Provider:        models.WebhookProviderStripe,
		ProviderEventID: event.ID,
		EventType:       string(event.Type),
		PayloadJSON:     string(rawBody),
		SignatureValid:  true,
	})
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "internal", "webhook persist failed")
	}
	// Skip only events that already processed cleanly. A stored event whose
	// attempt failed gets reprocessed here: provider redelivery is the only
	// retry mechanism.
	if !created && stored.ProcessedOK() {
		return c.JSON(fiber.Map{"received": true, "duplicate": true})
	}

	processErr := svc.ProcessWebhookEvent(ctx, event)
	_ = svc.MarkWebhookProcessed(ctx, stored.ID, processErr)
	if processErr != nil {
		// Non-200 makes Stripe redeliver; replays are idempotent.
		return apiError(c, fiber.StatusInternalServerError, "internal", "webhook processing failed")
	}

	return c.JSON(fiber.Map{"received": true})
}
