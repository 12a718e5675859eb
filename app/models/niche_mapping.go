package models

import (
	"encoding/json"
	"time"
)

// NicheMapping maps a niche to the list of lead-source labels leads are
// pulled from. LeadSources is stored as a JSON array.
type NicheMapping struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Niche       string    `gorm:"type:varchar(255);not null;uniqueIndex:ux_niche_mappings_niche" json:"niche"`
	LeadSources string    `gorm:"type:text" json:"lead_sources"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// SetSources encodes the source labels into the JSON column.
func (m *NicheMapping) SetSources(sources []string) error {
	b, err := json.Marshal(sources)
	if err != nil {
		return err
	}
	m.LeadSources = string(b)
	return nil
}

// Sources decodes the JSON column; returns an empty list on malformed data.
func (m *NicheMapping) Sources() []string {
	if m.LeadSources == "" {
		return []string{}
	}
	var sources []string
	if err := json.Unmarshal([]byte(m.LeadSources), &sources); err != nil {
		return []string{}
	}
	return sources
}
