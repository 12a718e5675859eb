package models

import "time"

// Lead is a sales prospect attached to a partner.
type Lead struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	PartnerID          uint      `gorm:"not null;index" json:"partner_id"`
	BusinessName       string    `gorm:"type:varchar(255);not null" json:"business_name"`
	ContactPerson      string    `gorm:"type:varchar(255);not null" json:"contact_person"`
	Email              string    `gorm:"type:varchar(320);default:''" json:"email"`
	Phone              string    `gorm:"type:varchar(20);default:''" json:"phone"`
	Employees          int       `gorm:"default:0" json:"employees"`
	Niche              string    `gorm:"type:varchar(255);not null" json:"niche"`
	QualificationScore int       `gorm:"default:0;index" json:"qualification_score"`
	OnlinePresence     string    `gorm:"type:text" json:"online_presence"`
	Notes              string    `gorm:"type:text" json:"notes"`
	LeadSource         string    `gorm:"type:varchar(255);default:''" json:"lead_source"`
	CreatedAt          time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
