package models

import (
	"encoding/json"
	"time"
)

const (
	AuditStatusPending   = "pending"
	AuditStatusFlagged   = "flagged"
	AuditStatusCompleted = "completed"
)

// GroundingScoreThreshold separates flagged from completed audits. Scores
// below it flag the audit; at or above it the audit is completed.
const GroundingScoreThreshold = 80

// Audit is a single audit record under an audit service. Status is derived
// from the grounding score at write time and never re-evaluated.
type Audit struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UUID            string    `gorm:"type:varchar(36);not null;uniqueIndex:ux_audits_uuid" json:"uuid"`
	AuditServiceID  uint      `gorm:"not null;index" json:"audit_service_id"`
	BusinessName    string    `gorm:"type:varchar(255);not null" json:"business_name"`
	BusinessAddress string    `gorm:"type:varchar(255);default:''" json:"business_address"`
	GoogleMapsURL   string    `gorm:"type:varchar(500);default:''" json:"google_maps_url"`
	GroundingScore  int       `gorm:"default:0" json:"grounding_score"`
	Hallucinations  string    `gorm:"type:text" json:"-"`
	Status          string    `gorm:"type:varchar(50);not null;default:'pending';index" json:"status"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// StatusForScore derives the audit status from a grounding score.
func StatusForScore(score int) string {
	if score < GroundingScoreThreshold {
		return AuditStatusFlagged
	}
	return AuditStatusCompleted
}

// SetHallucinations encodes the hallucination list into the JSON column.
func (a *Audit) SetHallucinations(items []string) error {
	if len(items) == 0 {
		a.Hallucinations = ""
		return nil
	}
	b, err := json.Marshal(items)
	if err != nil {
		return err
	}
	a.Hallucinations = string(b)
	return nil
}

// HallucinationList decodes the JSON column; empty or malformed data yields
// an empty list.
func (a *Audit) HallucinationList() []string {
	if a.Hallucinations == "" {
		return []string{}
	}
	var items []string
	if err := json.Unmarshal([]byte(a.Hallucinations), &items); err != nil {
		return []string{}
	}
	return items
}
