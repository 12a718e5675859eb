package models

import "time"

const (
	SubscriptionStatusInactive = "inactive"
	SubscriptionStatusActive   = "active"
	SubscriptionStatusPastDue  = "past_due"
	SubscriptionStatusCanceled = "canceled"
	SubscriptionStatusUnpaid   = "unpaid"
)

// DefaultPricingTier is what a partner falls back to when a subscription is
// deleted or before any checkout completed.
const DefaultPricingTier = "basic"

// Partner is the business profile of a subscribing customer. Exactly one row
// per user; the unique index on user_id makes the lazy get-or-create an
// upsert instead of a read-then-insert race.
type Partner struct {
	ID                      uint       `gorm:"primaryKey" json:"id"`
	UserID                  uint       `gorm:"not null;uniqueIndex:ux_partners_user" json:"user_id"`
	BusinessName            string     `gorm:"type:varchar(255);not null" json:"business_name"`
	Niche                   string     `gorm:"type:varchar(255);not null" json:"niche"`
	Email                   string     `gorm:"type:varchar(320);not null" json:"email"`
	Phone                   string     `gorm:"type:varchar(20);default:''" json:"phone"`
	StripeSubscriptionID    string     `gorm:"type:varchar(255);default:null;index" json:"-"`
	SubscriptionStatus      string     `gorm:"type:varchar(50);default:'inactive'" json:"subscription_status"`
	PricingTier             string     `gorm:"type:varchar(50);default:'basic'" json:"pricing_tier"`
	SubscriptionStartDate   *time.Time `gorm:"type:timestamp;default:null" json:"subscription_start_date,omitempty"`
	SubscriptionRenewalDate *time.Time `gorm:"type:timestamp;default:null" json:"subscription_renewal_date,omitempty"`
	CreatedAt               time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt               time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}
