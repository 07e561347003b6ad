package repository

import (
	"gorm.io/gorm"

	"github.com/bitforge/plm/internal/model/entity"
)

type PartRepository struct {
	db *gorm.DB
}

func NewPartRepository(db *gorm.DB) *PartRepository {
	return &PartRepository{db: db}
}

func (r *PartRepository) Create(part *entity.Part) error {
	return r.db.Create(part).Error
}

func (r *PartRepository) GetByID(id string) (*entity.Part, error) {
	var part entity.Part
	err := r.db.Where("id = ?", id).First(&part).Error
	return &part, err
}

func (r *PartRepository) GetByPartNumber(partNumber string) (*entity.Part, error) {
	var part entity.Part
	err := r.db.Where("part_number = ?", partNumber).First(&part).Error
	return &part, err
}

func (r *PartRepository) Update(part *entity.Part) error {
	return r.db.Save(part).Error
}

type PartListParams struct {
	Status   string
	PartType string
	Search   string
	Page     int
	Size     int
}

func (r *PartRepository) List(params PartListParams) ([]entity.Part, int64, error) {
	query := r.db.Model(&entity.Part{})
	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}
	if params.PartType != "" {
		query = query.Where("part_type = ?", params.PartType)
	}
	if params.Search != "" {
		like := "%" + params.Search + "%"
		query = query.Where("part_number ILIKE ? OR name ILIKE ?", like, like)
	}

	var total int64
	query.Count(&total)

	if params.Page <= 0 {
		params.Page = 1
	}
	if params.Size <= 0 {
		params.Size = 20
	}
	var parts []entity.Part
	err := query.Order("part_number").
		Offset((params.Page - 1) * params.Size).Limit(params.Size).
		Find(&parts).Error
	return parts, total, err
}

func (r *PartRepository) CreateRevision(rev *entity.PartRevision) error {
	return r.db.Create(rev).Error
}

func (r *PartRepository) ListRevisions(partID string) ([]entity.PartRevision, error) {
	var revs []entity.PartRevision
	err := r.db.Where("part_id = ?", partID).Order("created_at DESC").Find(&revs).Error
	return revs, err
}

// WhereUsed returns the BOMs that carry the part as a component.
func (r *PartRepository) WhereUsed(partID string) ([]entity.BOM, error) {
	var boms []entity.BOM
	err := r.db.
		Joins("JOIN plm_bom_items ON plm_bom_items.bom_id = plm_boms.id").
		Where("plm_bom_items.part_id = ?", partID).
		Distinct("plm_boms.*").
		Find(&boms).Error
	return boms, err
}
