package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/bitforge/plm/internal/model/entity"
)

type BulletinRepository struct {
	db *gorm.DB
}

func NewBulletinRepository(db *gorm.DB) *BulletinRepository {
	return &BulletinRepository{db: db}
}

func (r *BulletinRepository) Create(b *entity.ServiceBulletin) error {
	return r.db.Create(b).Error
}

func (r *BulletinRepository) GetByID(id string) (*entity.ServiceBulletin, error) {
	var b entity.ServiceBulletin
	err := r.db.Where("id = ?", id).First(&b).Error
	return &b, err
}

func (r *BulletinRepository) GetByNumber(number string) (*entity.ServiceBulletin, error) {
	var b entity.ServiceBulletin
	err := r.db.Where("bulletin_number = ?", number).First(&b).Error
	return &b, err
}

func (r *BulletinRepository) Update(b *entity.ServiceBulletin) error {
	return r.db.Save(b).Error
}

type BulletinListParams struct {
	Status       string
	BulletinType string
	SafetyOnly   bool
	Page         int
	Size         int
}

func (r *BulletinRepository) List(params BulletinListParams) ([]entity.ServiceBulletin, int64, error) {
	query := r.db.Model(&entity.ServiceBulletin{})
	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}
	if params.BulletinType != "" {
		query = query.Where("bulletin_type = ?", params.BulletinType)
	}
	if params.SafetyOnly {
		query = query.Where("safety_issue = true")
	}

	var total int64
	query.Count(&total)

	if params.Page <= 0 {
		params.Page = 1
	}
	if params.Size <= 0 {
		params.Size = 20
	}
	var bulletins []entity.ServiceBulletin
	err := query.Order("created_at DESC").
		Offset((params.Page - 1) * params.Size).Limit(params.Size).
		Find(&bulletins).Error
	return bulletins, total, err
}

func (r *BulletinRepository) ListAll() ([]entity.ServiceBulletin, error) {
	var bulletins []entity.ServiceBulletin
	err := r.db.Find(&bulletins).Error
	return bulletins, err
}

func (r *BulletinRepository) CreateCompliance(c *entity.BulletinCompliance) error {
	return r.db.Create(c).Error
}

func (r *BulletinRepository) GetCompliance(id string) (*entity.BulletinCompliance, error) {
	var c entity.BulletinCompliance
	err := r.db.Where("id = ?", id).First(&c).Error
	return &c, err
}

func (r *BulletinRepository) UpdateCompliance(c *entity.BulletinCompliance) error {
	return r.db.Save(c).Error
}

func (r *BulletinRepository) ListComplianceForBulletin(bulletinID string) ([]entity.BulletinCompliance, error) {
	var records []entity.BulletinCompliance
	err := r.db.Where("bulletin_id = ?", bulletinID).Order("unit_serial").Find(&records).Error
	return records, err
}

func (r *BulletinRepository) CountPendingCompliance() (int64, error) {
	var n int64
	err := r.db.Model(&entity.BulletinCompliance{}).
		Where("status = ?", entity.BulletinCompliancePending).Count(&n).Error
	return n, err
}

// ListOverdueCompliance returns pending records whose bulletin deadline has
// passed.
func (r *BulletinRepository) ListOverdueCompliance() ([]entity.BulletinCompliance, error) {
	var records []entity.BulletinCompliance
	err := r.db.
		Joins("JOIN plm_service_bulletins ON plm_service_bulletins.id = plm_bulletin_compliance.bulletin_id").
		Where("plm_bulletin_compliance.status = ?", entity.BulletinCompliancePending).
		Where("plm_service_bulletins.compliance_deadline IS NOT NULL AND plm_service_bulletins.compliance_deadline < ?", time.Now()).
		Find(&records).Error
	return records, err
}
