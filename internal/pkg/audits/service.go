package audits

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/leadvine/leadvine/app/models"
	"github.com/leadvine/leadvine/internal/pkg/catalog"
)

// SubscriptionStatusNone is the sentinel status returned when the caller has
// no audit service row yet.
const SubscriptionStatusNone = "no_subscription"

var (
	// ErrNoAuditService is returned when an operation needs an audit
	// service subscription the caller does not have.
	ErrNoAuditService = errors.New("no active audit service subscription")

	// ErrAuditNotFound is returned for lookups of unknown audit ids.
	ErrAuditNotFound = errors.New("audit not found")

	// ErrInvalidScore rejects grounding scores outside 0..100.
	ErrInvalidScore = errors.New("grounding score must be between 0 and 100")
)

// SubscriptionInfo answers the audit subscription query.
type SubscriptionInfo struct {
	Status              string           `json:"status"`
	Tier                string           `json:"tier,omitempty"`
	MaxAuditsPerMonth   int              `json:"max_audits_per_month"`
	AuditsUsedThisMonth int              `json:"audits_used_this_month"`
	SubscriptionID      string           `json:"subscription_id,omitempty"`
	TierInfo            *catalog.Product `json:"tier_info,omitempty"`
}

// CreateAuditInput is the validated input for a new audit.
type CreateAuditInput struct {
	BusinessName    string `json:"business_name" validate:"required,min=1,max=255"`
	BusinessAddress string `json:"business_address" validate:"max=255"`
	GoogleMapsURL   string `json:"google_maps_url" validate:"omitempty,url,max=500"`
}

// ScoreUpdateResult reports the outcome of a score update.
type ScoreUpdateResult struct {
	ID             uint   `json:"id"`
	GroundingScore int    `json:"grounding_score"`
	Status         string `json:"status"`
}

// AuditDetails is an audit with its hallucination list decoded.
type AuditDetails struct {
	models.Audit
	Hallucinations []string `json:"hallucinations"`
}

// Service implements the admin-facing audit workflow.
type Service struct {
	repo Repository
}

// NewService creates an audit service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// NewServiceFromDB creates an audit service from a GORM DB handle.
func NewServiceFromDB(db *gorm.DB) *Service {
	return NewService(NewRepository(db))
}

// Tiers lists the purchasable audit tiers, cheapest first.
func (s *Service) Tiers() []catalog.Product {
	return catalog.TiersForService(catalog.ServiceAudit)
}

// Subscription returns the caller's audit service subscription, or the
// no_subscription sentinel when none exists.
func (s *Service) Subscription(ctx context.Context, userID uint) (*SubscriptionInfo, error) {
	_ = ctx
	sub, err := s.repo.GetAuditServiceByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &SubscriptionInfo{Status: SubscriptionStatusNone}, nil
		}
		return nil, err
	}

	info := &SubscriptionInfo{
		Status:            sub.Status,
		Tier:              sub.Tier,
		MaxAuditsPerMonth: sub.MaxAuditsPerMonth,
		SubscriptionID:    sub.StripeSubscriptionID,
	}
	if product, ok := catalog.Lookup(catalog.ServiceAudit, catalog.TierID(sub.Tier)); ok {
		info.TierInfo = &product
	}
	return info, nil
}

// CreateAudit records a new pending audit under the caller's audit service.
func (s *Service) CreateAudit(ctx context.Context, userID uint, in CreateAuditInput) (*models.Audit, error) {
	_ = ctx
	if strings.TrimSpace(in.BusinessName) == "" {
		return nil, fmt.Errorf("business name is required")
	}

	svc, err := s.repo.GetAuditServiceByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoAuditService
		}
		return nil, err
	}

	audit := &models.Audit{
		UUID:            uuid.New().String(),
		AuditServiceID:  svc.ID,
		BusinessName:    strings.TrimSpace(in.BusinessName),
		BusinessAddress: strings.TrimSpace(in.BusinessAddress),
		GoogleMapsURL:   strings.TrimSpace(in.GoogleMapsURL),
		Status:          models.AuditStatusPending,
		GroundingScore:  0,
		CreatedAt:       time.Now(),
	}
	if err := s.repo.CreateAudit(audit); err != nil {
		return nil, err
	}
	return audit, nil
}

// ListAudits returns the caller's audits, newest first. A caller without an
// audit service has none.
func (s *Service) ListAudits(ctx context.Context, userID uint) ([]models.Audit, error) {
	_ = ctx
	svc, err := s.repo.GetAuditServiceByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []models.Audit{}, nil
		}
		return nil, err
	}
	return s.repo.AuditsByService(svc.ID)
}

// Details returns one audit with its hallucination list decoded.
func (s *Service) Details(ctx context.Context, auditID uint) (*AuditDetails, error) {
	_ = ctx
	audit, err := s.repo.GetAuditByID(auditID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAuditNotFound
		}
		return nil, err
	}
	return &AuditDetails{
		Audit:          *audit,
		Hallucinations: audit.HallucinationList(),
	}, nil
}

// UpdateScore sets the grounding score and hallucination findings on an
// audit. The status follows the score: below the threshold it is flagged,
// otherwise completed.
func (s *Service) UpdateScore(ctx context.Context, auditID uint, score int, hallucinations []string) (*ScoreUpdateResult, error) {
	_ = ctx
	if score < 0 || score > 100 {
		return nil, ErrInvalidScore
	}

	audit, err := s.repo.GetAuditByID(auditID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAuditNotFound
		}
		return nil, err
	}

	audit.GroundingScore = score
	audit.Status = models.StatusForScore(score)
	if err := audit.SetHallucinations(hallucinations); err != nil {
		return nil, err
	}
	if err := s.repo.SaveAudit(audit); err != nil {
		return nil, err
	}

	return &ScoreUpdateResult{
		ID:             audit.ID,
		GroundingScore: audit.GroundingScore,
		Status:         audit.Status,
	}, nil
}
