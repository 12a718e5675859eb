package leadgen

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/leadvine/leadvine/app/models"
)

// Repository provides DB operations used by the lead generation service.
type Repository interface {
	UpsertPartner(p *models.Partner) error
	GetPartnerByUserID(userID uint) (*models.Partner, error)
	UpdatePartnerNiche(partnerID uint, niche string) error
	InsertLeads(leads []models.Lead) error
	LeadsByPartner(partnerID uint, limit int) ([]models.Lead, error)
	UpsertNicheMapping(mapping *models.NicheMapping) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a lead generation repository backed by GORM.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) UpsertPartner(p *models.Partner) error {
	if err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Create(p).Error; err != nil {
		return err
	}
	return r.db.Where("user_id = ?", p.UserID).First(p).Error
}

func (r *gormRepository) GetPartnerByUserID(userID uint) (*models.Partner, error) {
	var p models.Partner
	if err := r.db.Where("user_id = ?", userID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *gormRepository) UpdatePartnerNiche(partnerID uint, niche string) error {
	return r.db.Model(&models.Partner{}).Where("id = ?", partnerID).
		Update("niche", niche).Error
}

func (r *gormRepository) InsertLeads(leads []models.Lead) error {
	if len(leads) == 0 {
		return nil
	}
	return r.db.Create(&leads).Error
}

func (r *gormRepository) LeadsByPartner(partnerID uint, limit int) ([]models.Lead, error) {
	var leads []models.Lead
	tx := r.db.Where("partner_id = ?", partnerID).
		Order("qualification_score DESC")
	if limit > 0 {
		tx = tx.Limit(limit)
	}
	if err := tx.Find(&leads).Error; err != nil {
		return nil, err
	}
	return leads, nil
}

func (r *gormRepository) UpsertNicheMapping(mapping *models.NicheMapping) error {
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "niche"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"lead_sources",
			"description",
			"updated_at",
		}),
	}).Create(mapping).Error
}
