package payments

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/leadvine/leadvine/app/models"
	"github.com/leadvine/leadvine/internal/pkg/catalog"
	"github.com/leadvine/leadvine/internal/pkg/env"
)

// Config carries the redirect targets for hosted checkout.
type Config struct {
	SuccessURL string
	CancelURL  string
}

// Service implements checkout creation, subscription queries and webhook
// reconciliation against an injected repository and payment gateway.
type Service struct {
	repo    Repository
	gateway Gateway
	cfg     Config
}

// NewService creates a payments service from injected dependencies.
func NewService(repo Repository, gateway Gateway, cfg Config) *Service {
	return &Service{repo: repo, gateway: gateway, cfg: cfg}
}

// NewServiceFromDB creates a payments service from a GORM DB handle and the
// environment-configured Stripe gateway.
func NewServiceFromDB(db *gorm.DB, gateway Gateway) *Service {
	base := strings.TrimRight(env.GetEnv("PUBLIC_DOMAIN", "http://localhost:4000"), "/")
	return NewService(NewRepository(db), gateway, Config{
		SuccessURL: base + "/payment/success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:  base + "/pricing",
	})
}

// resolvedSelection is the validated form of a TierSelection.
type resolvedSelection struct {
	items   []LineItem
	total   int64
	summary string
}

// resolveSelection validates the selection against the catalog and builds the
// line items. It fails before any provider call.
func resolveSelection(sel TierSelection) (*resolvedSelection, error) {
	type pick struct {
		svc   catalog.Service
		tier  string
		label string
	}
	picks := []pick{
		{catalog.ServiceLeads, sel.Leads, "Leads"},
		{catalog.ServiceAudit, sel.Audit, "Audit"},
		{catalog.ServiceMetaAudit, sel.MetaAudit, "Meta Audit"},
	}

	res := &resolvedSelection{}
	var parts []string
	for _, p := range picks {
		tier := strings.TrimSpace(p.tier)
		if tier == "" || tier == "none" {
			continue
		}
		product, ok := catalog.Lookup(p.svc, catalog.TierID(tier))
		if !ok {
			return nil, fmt.Errorf("%w: %s/%s", ErrUnknownTier, p.svc, tier)
		}
		res.items = append(res.items, LineItem{
			Name:        product.Name,
			Description: product.Description,
			UnitAmount:  product.Price,
		})
		res.total += product.Price
		parts = append(parts, fmt.Sprintf("%s (%s)", p.label, tier))
	}

	if len(res.items) == 0 {
		return nil, ErrNoServiceSelected
	}
	res.summary = strings.Join(parts, " ")
	return res, nil
}

// CreateCheckoutSession validates the tier selection, ensures partner and
// Stripe customer rows exist for the caller, and requests a hosted
// subscription-mode checkout session.
func (s *Service) CreateCheckoutSession(ctx context.Context, user *models.User, sel TierSelection) (*CheckoutResult, error) {
	resolved, err := resolveSelection(sel)
	if err != nil {
		return nil, err
	}

	businessName := strings.TrimSpace(user.Name)
	if businessName == "" {
		businessName = "My Business"
	}
	partner := &models.Partner{
		UserID:       user.ID,
		BusinessName: businessName,
		Niche:        "General",
		Email:        user.Email,
	}
	if err := s.repo.UpsertPartner(partner); err != nil {
		return nil, err
	}

	customerID := user.StripeCustomerID
	if customerID == "" {
		customerID, err = s.gateway.CreateCustomer(ctx, user.Email, user.Name, map[string]string{
			"user_id":    strconv.FormatUint(uint64(user.ID), 10),
			"partner_id": strconv.FormatUint(uint64(partner.ID), 10),
		})
		if err != nil {
			return nil, err
		}
		if err := s.repo.SetUserStripeCustomerID(user.ID, customerID); err != nil {
			return nil, err
		}
		user.StripeCustomerID = customerID
	}

	metadata := map[string]string{
		"user_id":            strconv.FormatUint(uint64(user.ID), 10),
		"partner_id":         strconv.FormatUint(uint64(partner.ID), 10),
		"leads_service":      orNone(sel.Leads),
		"audit_service":      orNone(sel.Audit),
		"meta_audit_service": orNone(sel.MetaAudit),
		"total_price":        strconv.FormatInt(resolved.total, 10),
	}

	session, err := s.gateway.CreateCheckoutSession(ctx, CheckoutParams{
		CustomerID:        customerID,
		CustomerEmail:     user.Email,
		ClientReferenceID: strconv.FormatUint(uint64(user.ID), 10),
		SuccessURL:        s.cfg.SuccessURL,
		CancelURL:         s.cfg.CancelURL,
		LineItems:         resolved.items,
		Metadata:          metadata,
	})
	if err != nil {
		return nil, err
	}

	return &CheckoutResult{
		SessionID:     session.ID,
		URL:           session.URL,
		TotalPrice:    resolved.total,
		TotalPriceUSD: catalog.FormatPriceUSD(resolved.total),
		Services:      resolved.summary,
	}, nil
}

// SubscriptionStatus returns the caller's current tier/status/renewal date,
// or the "no partner yet" sentinel.
func (s *Service) SubscriptionStatus(ctx context.Context, userID uint) (*SubscriptionStatus, error) {
	_ = ctx
	partner, err := s.repo.GetPartnerByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &SubscriptionStatus{HasPartner: false}, nil
		}
		return nil, err
	}
	return &SubscriptionStatus{
		HasPartner:  true,
		Tier:        partner.PricingTier,
		Status:      partner.SubscriptionStatus,
		RenewalDate: partner.SubscriptionRenewalDate,
	}, nil
}

// CancelSubscription requests end-of-period cancellation at the provider.
func (s *Service) CancelSubscription(ctx context.Context, userID uint) error {
	partner, err := s.repo.GetPartnerByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoSubscription
		}
		return err
	}
	if partner.StripeSubscriptionID == "" {
		return ErrNoSubscription
	}
	return s.gateway.CancelAtPeriodEnd(ctx, partner.StripeSubscriptionID)
}

// RecordWebhookEvent persists webhook payloads idempotently. The returned
// bool is false when the event id was seen before.
func (s *Service) RecordWebhookEvent(ctx context.Context, in WebhookEventInput) (bool, *models.WebhookEvent, error) {
	_ = ctx
	provider := strings.ToLower(strings.TrimSpace(in.Provider))
	if provider == "" {
		return false, nil, errors.New("provider is required")
	}
	eventID := strings.TrimSpace(in.ProviderEventID)
	if eventID == "" {
		sum := sha256.Sum256([]byte(in.PayloadJSON))
		eventID = "hash:" + hex.EncodeToString(sum[:])
	}

	event := &models.WebhookEvent{
		Provider:        provider,
		ProviderEventID: eventID,
		EventType:       strings.TrimSpace(in.EventType),
		PayloadJSON:     in.PayloadJSON,
		SignatureValid:  in.SignatureValid,
	}
	return s.repo.CreateWebhookEventIfNotExists(event)
}

// MarkWebhookProcessed marks an event as processed and stores an optional error.
func (s *Service) MarkWebhookProcessed(ctx context.Context, webhookEventID uint, processingErr error) error {
	_ = ctx
	if webhookEventID == 0 {
		return errors.New("webhook_event_id is required")
	}
	errMsg := ""
	if processingErr != nil {
		errMsg = processingErr.Error()
	}
	return s.repo.MarkWebhookProcessed(webhookEventID, errMsg)
}

func orNone(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return "none"
	}
	return v
}
