package audits

import (
	"gorm.io/gorm"

	"github.com/leadvine/leadvine/app/models"
)

// Repository provides DB operations used by the audit service.
type Repository interface {
	GetAuditServiceByUserID(userID uint) (*models.AuditService, error)
	CreateAudit(audit *models.Audit) error
	AuditsByService(auditServiceID uint) ([]models.Audit, error)
	GetAuditByID(id uint) (*models.Audit, error)
	SaveAudit(audit *models.Audit) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates an audit repository backed by GORM.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) GetAuditServiceByUserID(userID uint) (*models.AuditService, error) {
	var svc models.AuditService
	if err := r.db.Where("user_id = ?", userID).First(&svc).Error; err != nil {
		return nil, err
	}
	return &svc, nil
}

func (r *gormRepository) CreateAudit(audit *models.Audit) error {
	return r.db.Create(audit).Error
}

func (r *gormRepository) AuditsByService(auditServiceID uint) ([]models.Audit, error) {
	var audits []models.Audit
	if err := r.db.Where("audit_service_id = ?", auditServiceID).
		Order("created_at DESC").Find(&audits).Error; err != nil {
		return nil, err
	}
	return audits, nil
}

func (r *gormRepository) GetAuditByID(id uint) (*models.Audit, error) {
	var audit models.Audit
	if err := r.db.First(&audit, id).Error; err != nil {
		return nil, err
	}
	return &audit, nil
}

func (r *gormRepository) SaveAudit(audit *models.Audit) error {
	return r.db.Save(audit).Error
}
