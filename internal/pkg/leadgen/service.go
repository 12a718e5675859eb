package leadgen

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"gorm.io/gorm"

	"github.com/leadvine/leadvine/app/models"
)

// HotLeadsLimit caps the dashboard's hot-leads list.
const HotLeadsLimit = 5

// GenerationResult summarizes one generation run.
type GenerationResult struct {
	PartnerID      uint   `json:"partner_id"`
	Niche          string `json:"niche"`
	LeadsGenerated int    `json:"leads_generated"`
}

// Service delivers curated prospect sets per niche and manages the partner's
// niche assignment.
type Service struct {
	repo Repository
}

// NewService creates a lead generation service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// NewServiceFromDB creates a lead generation service from a GORM DB handle.
func NewServiceFromDB(db *gorm.DB) *Service {
	return NewService(NewRepository(db))
}

// Niches lists the supported niches, sorted for a stable response.
func (s *Service) Niches() []string {
	niches := make([]string, 0, len(nicheSources))
	for niche := range nicheSources {
		niches = append(niches, niche)
	}
	sort.Strings(niches)
	return niches
}

// SourcesForNiche returns the configured lead sources for a niche. Unknown
// niches yield an empty list, not an error.
func (s *Service) SourcesForNiche(niche string) []string {
	sources, ok := nicheSources[niche]
	if !ok {
		return []string{}
	}
	out := make([]string, len(sources))
	copy(out, sources)
	return out
}

// GenerateLeads assigns the niche to the caller's partner profile, creating it
// on first use, inserts the niche's sample prospects, and records the niche
// source mapping.
func (s *Service) GenerateLeads(ctx context.Context, user *models.User, niche string) (*GenerationResult, error) {
	_ = ctx
	niche = strings.TrimSpace(niche)
	if niche == "" {
		return nil, errors.New("niche is required")
	}

	businessName := strings.TrimSpace(user.Name)
	if businessName == "" {
		businessName = "My Business"
	}
	partner := &models.Partner{
		UserID:       user.ID,
		BusinessName: businessName,
		Niche:        niche,
		Email:        user.Email,
	}
	if err := s.repo.UpsertPartner(partner); err != nil {
		return nil, err
	}
	if partner.Niche != niche {
		if err := s.repo.UpdatePartnerNiche(partner.ID, niche); err != nil {
			return nil, err
		}
		partner.Niche = niche
	}

	samples := sampleLeadsByNiche[niche]
	batch := make([]models.Lead, len(samples))
	for i, sample := range samples {
		batch[i] = sample
		batch[i].PartnerID = partner.ID
	}
	if err := s.repo.InsertLeads(batch); err != nil {
		return nil, err
	}

	mapping := &models.NicheMapping{
		Niche:       niche,
		Description: fmt.Sprintf("Lead sources for %s", niche),
	}
	if err := mapping.SetSources(s.SourcesForNiche(niche)); err != nil {
		return nil, err
	}
	if err := s.repo.UpsertNicheMapping(mapping); err != nil {
		return nil, err
	}

	return &GenerationResult{
		PartnerID:      partner.ID,
		Niche:          niche,
		LeadsGenerated: len(batch),
	}, nil
}

// HotLeads returns the caller's top prospects by qualification score. A user
// without a partner profile has no leads yet.
func (s *Service) HotLeads(ctx context.Context, userID uint) ([]models.Lead, error) {
	_ = ctx
	partner, err := s.repo.GetPartnerByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []models.Lead{}, nil
		}
		return nil, err
	}
	return s.repo.LeadsByPartner(partner.ID, HotLeadsLimit)
}

// PartnerProfile returns the caller's partner row, or nil when none exists.
func (s *Service) PartnerProfile(ctx context.Context, userID uint) (*models.Partner, error) {
	_ = ctx
	partner, err := s.repo.GetPartnerByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return partner, nil
}

// UpdateNiche sets the caller's niche, creating the partner profile on first
// use.
func (s *Service) UpdateNiche(ctx context.Context, user *models.User, niche string) error {
	_ = ctx
	niche = strings.TrimSpace(niche)
	if niche == "" {
		return errors.New("niche is required")
	}

	partner := &models.Partner{
		UserID:       user.ID,
		BusinessName: "My Business",
		Niche:        niche,
		Email:        user.Email,
	}
	if err := s.repo.UpsertPartner(partner); err != nil {
		return err
	}
	if partner.Niche == niche {
		return nil
	}
	return s.repo.UpdatePartnerNiche(partner.ID, niche)
}
