package models

import "time"

// Subscription mirrors a Stripe subscription for a partner. Status is always
// the last-seen provider status, never computed locally.
type Subscription struct {
	ID                   uint       `gorm:"primaryKey" json:"id"`
	PartnerID            uint       `gorm:"not null;index" json:"partner_id"`
	StripeSubscriptionID string     `gorm:"type:varchar(255);not null;uniqueIndex:ux_subscriptions_stripe_sub" json:"stripe_subscription_id"`
	StripePriceID        string     `gorm:"type:varchar(255);not null" json:"stripe_price_id"`
	Status               string     `gorm:"type:varchar(50);not null;index" json:"status"`
	CurrentPeriodStart   *time.Time `gorm:"type:timestamp;default:null" json:"current_period_start,omitempty"`
	CurrentPeriodEnd     *time.Time `gorm:"type:timestamp;default:null" json:"current_period_end,omitempty"`
	CanceledAt           *time.Time `gorm:"type:timestamp;default:null" json:"canceled_at,omitempty"`
	CreatedAt            time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt            time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}
