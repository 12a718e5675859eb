package payments

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/stripe/stripe-go/v82"
	"gorm.io/gorm"

	"github.com/leadvine/leadvine/app/models"
)

// Stripe event types the reconciliation handler acts on. Everything else is
// acknowledged and ignored.
const (
	EventCheckoutCompleted       = "checkout.session.completed"
	EventSubscriptionUpdated     = "customer.subscription.updated"
	EventSubscriptionDeleted     = "customer.subscription.deleted"
	EventInvoicePaymentSucceeded = "invoice.payment_succeeded"
	EventInvoicePaymentFailed    = "invoice.payment_failed"
)

// checkoutSessionPayload is the slice of a checkout.session.completed event
// the handler needs. In webhook payloads the subscription is an id string.
type checkoutSessionPayload struct {
	ID                string            `json:"id"`
	ClientReferenceID string            `json:"client_reference_id"`
	Subscription      string            `json:"subscription"`
	Metadata          map[string]string `json:"metadata"`
}

// subscriptionPayload tolerates both payload shapes Stripe has shipped: older
// API versions carry current_period_* at the top level, newer ones only on the
// first subscription item.
type subscriptionPayload struct {
	ID                 string `json:"id"`
	Status             string `json:"status"`
	CurrentPeriodStart int64  `json:"current_period_start"`
	CurrentPeriodEnd   int64  `json:"current_period_end"`
	Items              struct {
		Data []subscriptionItemPayload `json:"data"`
	} `json:"items"`
}

type subscriptionItemPayload struct {
	CurrentPeriodStart int64 `json:"current_period_start"`
	CurrentPeriodEnd   int64 `json:"current_period_end"`
}

func (p *subscriptionPayload) periodStart() int64 {
	if p.CurrentPeriodStart > 0 {
		return p.CurrentPeriodStart
	}
	if len(p.Items.Data) > 0 {
		return p.Items.Data[0].CurrentPeriodStart
	}
	return 0
}

func (p *subscriptionPayload) periodEnd() int64 {
	if p.CurrentPeriodEnd > 0 {
		return p.CurrentPeriodEnd
	}
	if len(p.Items.Data) > 0 {
		return p.Items.Data[0].CurrentPeriodEnd
	}
	return 0
}

type invoicePayload struct {
	ID           string `json:"id"`
	Subscription string `json:"subscription"`
}

// VerifyWebhook checks the payload signature and decodes the event.
func (s *Service) VerifyWebhook(payload []byte, signatureHeader string) (*stripe.Event, error) {
	return s.gateway.VerifyWebhook(payload, signatureHeader)
}

// ProcessWebhookEvent dispatches a verified Stripe event to the matching
// reconciliation handler. Unknown event types are a successful no-op. Any
// error surfaces to the controller as a 500 so Stripe redelivers; every write
// below overwrites with latest provider state, so replays are safe.
func (s *Service) ProcessWebhookEvent(ctx context.Context, event *stripe.Event) error {
	switch string(event.Type) {
	case EventCheckoutCompleted:
		return s.handleCheckoutCompleted(ctx, event.Data.Raw)
	case EventSubscriptionUpdated:
		return s.handleSubscriptionUpdated(ctx, event.Data.Raw)
	case EventSubscriptionDeleted:
		return s.handleSubscriptionDeleted(ctx, event.Data.Raw)
	case EventInvoicePaymentSucceeded, EventInvoicePaymentFailed:
		return s.handleInvoicePayment(ctx, event.Data.Raw)
	default:
		return nil
	}
}

func (s *Service) handleCheckoutCompleted(ctx context.Context, raw []byte) error {
	var session checkoutSessionPayload
	if err := json.Unmarshal(raw, &session); err != nil {
		return err
	}

	// Sessions created outside our checkout flow carry no correlation
	// metadata; nothing to reconcile.
	if session.ClientReferenceID == "" || session.Metadata["partner_id"] == "" {
		return nil
	}
	if session.Subscription == "" {
		return nil
	}

	partnerID, err := parseID(session.Metadata["partner_id"])
	if err != nil {
		return err
	}

	sub, err := s.gateway.RetrieveSubscription(ctx, session.Subscription)
	if err != nil {
		return err
	}

	if err := s.repo.UpsertSubscription(&models.Subscription{
		PartnerID:            partnerID,
		StripeSubscriptionID: sub.ID,
		StripePriceID:        sub.PriceID,
		Status:               sub.Status,
		CurrentPeriodStart:   sub.CurrentPeriodStart,
		CurrentPeriodEnd:     sub.CurrentPeriodEnd,
	}); err != nil {
		return err
	}

	partner, err := s.repo.GetPartnerByID(partnerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	partner.StripeSubscriptionID = sub.ID
	partner.SubscriptionStatus = sub.Status
	partner.PricingTier = tierFromMetadata(session.Metadata)
	partner.SubscriptionStartDate = sub.CurrentPeriodStart
	partner.SubscriptionRenewalDate = sub.CurrentPeriodEnd
	return s.repo.SavePartner(partner)
}

func (s *Service) handleSubscriptionUpdated(ctx context.Context, raw []byte) error {
	_ = ctx
	var payload subscriptionPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return err
	}

	sub, err := s.repo.GetSubscriptionByProviderID(payload.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	sub.Status = payload.Status
	sub.CurrentPeriodStart = unixTimePtr(payload.periodStart())
	sub.CurrentPeriodEnd = unixTimePtr(payload.periodEnd())
	if err := s.repo.SaveSubscription(sub); err != nil {
		return err
	}

	partner, err := s.repo.GetPartnerByID(sub.PartnerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	partner.SubscriptionStatus = payload.Status
	partner.SubscriptionRenewalDate = sub.CurrentPeriodEnd
	return s.repo.SavePartner(partner)
}

func (s *Service) handleSubscriptionDeleted(ctx context.Context, raw []byte) error {
	_ = ctx
	var payload subscriptionPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return err
	}

	sub, err := s.repo.GetSubscriptionByProviderID(payload.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	now := time.Now().UTC()
	sub.Status = models.SubscriptionStatusCanceled
	sub.CanceledAt = &now
	if err := s.repo.SaveSubscription(sub); err != nil {
		return err
	}

	partner, err := s.repo.GetPartnerByID(sub.PartnerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	partner.SubscriptionStatus = models.SubscriptionStatusCanceled
	partner.PricingTier = models.DefaultPricingTier
	return s.repo.SavePartner(partner)
}

func (s *Service) handleInvoicePayment(ctx context.Context, raw []byte) error {
	var payload invoicePayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return err
	}
	if payload.Subscription == "" {
		return nil
	}

	// Re-fetch instead of trusting the invoice: the subscription status is
	// the source of truth for active vs past_due.
	provider, err := s.gateway.RetrieveSubscription(ctx, payload.Subscription)
	if err != nil {
		return err
	}

	sub, err := s.repo.GetSubscriptionByProviderID(provider.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	sub.Status = provider.Status
	if err := s.repo.SaveSubscription(sub); err != nil {
		return err
	}

	partner, err := s.repo.GetPartnerByID(sub.PartnerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	partner.SubscriptionStatus = provider.Status
	return s.repo.SavePartner(partner)
}

// tierFromMetadata derives the partner's pricing tier from the checkout
// selections: the leads tier wins, then audit, then meta audit.
func tierFromMetadata(metadata map[string]string) string {
	for _, key := range []string{"leads_service", "audit_service", "meta_audit_service"} {
		if v := metadata[key]; v != "" && v != "none" {
			return v
		}
	}
	return models.DefaultPricingTier
}

func parseID(s string) (uint, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(v), nil
}

func unixTimePtr(sec int64) *time.Time {
	if sec <= 0 {
		return nil
	}
	t := time.Unix(sec, 0).UTC()
	return &t
}
