package models

import "time"

// AuditService is an admin's subscription to an auditing tier. Created lazily
// on first relevant action, one row per user.
type AuditService struct {
	ID                   uint      `gorm:"primaryKey" json:"id"`
	UserID               uint      `gorm:"not null;uniqueIndex:ux_audit_services_user" json:"user_id"`
	Tier                 string    `gorm:"type:varchar(50);not null" json:"tier"`
	Status               string    `gorm:"type:varchar(50);not null;default:'active'" json:"status"`
	StripeSubscriptionID string    `gorm:"type:varchar(255);default:null" json:"-"`
	MaxAuditsPerMonth    int       `gorm:"default:0" json:"max_audits_per_month"`
	CreatedAt            time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt            time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
