package payments

import "time"

// TierSelection carries the optional tier choice per bundled service, as
// submitted by the checkout form. Empty string means not selected.
type TierSelection struct {
	Leads     string `json:"leads_service"`
	Audit     string `json:"audit_service"`
	MetaAudit string `json:"meta_audit_service"`
}

// LineItem is one recurring checkout line derived from the catalog.
type LineItem struct {
	Name        string
	Description string
	UnitAmount  int64
}

// CheckoutParams is the provider-neutral input for a hosted checkout session.
type CheckoutParams struct {
	CustomerID        string
	CustomerEmail     string
	ClientReferenceID string
	SuccessURL        string
	CancelURL         string
	LineItems         []LineItem
	Metadata          map[string]string
}

// CheckoutSession is the provider's answer: where to send the user.
type CheckoutSession struct {
	ID  string
	URL string
}

// CheckoutResult is returned to the caller of CreateCheckoutSession.
type CheckoutResult struct {
	SessionID     string `json:"session_id"`
	URL           string `json:"url"`
	TotalPrice    int64  `json:"total_price"`
	TotalPriceUSD string `json:"total_price_usd"`
	Services      string `json:"services"`
}

// ProviderSubscription is the normalized shape of a Stripe subscription used
// during reconciliation.
type ProviderSubscription struct {
	ID                 string
	PriceID            string
	Status             string
	CurrentPeriodStart *time.Time
	CurrentPeriodEnd   *time.Time
}

// SubscriptionStatus answers the authenticated status query. HasPartner is
// the "no partner yet" sentinel.
type SubscriptionStatus struct {
	HasPartner  bool       `json:"has_partner"`
	Tier        string     `json:"tier,omitempty"`
	Status      string     `json:"status,omitempty"`
	RenewalDate *time.Time `json:"renewal_date,omitempty"`
}

// WebhookEventInput is the normalized input for webhook event persistence.
type WebhookEventInput struct {
	Provider        string
	ProviderEventID string
	EventType       string
	PayloadJSON     string
	SignatureValid  bool
}
