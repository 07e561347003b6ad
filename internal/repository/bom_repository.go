package repository

import (
	"gorm.io/gorm"

	"github.com/bitforge/plm/internal/model/entity"
)

type BOMRepository struct {
	db *gorm.DB
}

func NewBOMRepository(db *gorm.DB) *BOMRepository {
	return &BOMRepository{db: db}
}

func (r *BOMRepository) Create(bom *entity.BOM) error {
	return r.db.Create(bom).Error
}

func (r *BOMRepository) GetByID(id string) (*entity.BOM, error) {
	var bom entity.BOM
	err := r.db.Preload("Items").Where("id = ?", id).First(&bom).Error
	return &bom, err
}

func (r *BOMRepository) Update(bom *entity.BOM) error {
	return r.db.Save(bom).Error
}

// GetReleasedForPart returns the most recently released BOM whose parent is
// the given part.
func (r *BOMRepository) GetReleasedForPart(partID string) (*entity.BOM, error) {
	var bom entity.BOM
	err := r.db.Preload("Items").
		Where("parent_part_id = ? AND status = ?", partID, entity.BOMStatusReleased).
		Order("released_at DESC").
		First(&bom).Error
	return &bom, err
}

type BOMListParams struct {
	ProjectID string
	Status    string
	BOMType   string
	Page      int
	Size      int
}

func (r *BOMRepository) List(params BOMListParams) ([]entity.BOM, int64, error) {
	query := r.db.Model(&entity.BOM{})
	if params.ProjectID != "" {
		query = query.Where("project_id = ?", params.ProjectID)
	}
	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}
	if params.BOMType != "" {
		query = query.Where("bom_type = ?", params.BOMType)
	}

	var total int64
	query.Count(&total)

	if params.Page <= 0 {
		params.Page = 1
	}
	if params.Size <= 0 {
		params.Size = 20
	}
	var boms []entity.BOM
	err := query.Order("created_at DESC").
		Offset((params.Page - 1) * params.Size).Limit(params.Size).
		Find(&boms).Error
	return boms, total, err
}

func (r *BOMRepository) AddItem(item *entity.BOMItem) error {
	return r.db.Create(item).Error
}

func (r *BOMRepository) GetItem(id string) (*entity.BOMItem, error) {
	var item entity.BOMItem
	err := r.db.Where("id = ?", id).First(&item).Error
	return &item, err
}

func (r *BOMRepository) UpdateItem(item *entity.BOMItem) error {
	return r.db.Save(item).Error
}

func (r *BOMRepository) DeleteItem(id string) error {
	return r.db.Delete(&entity.BOMItem{}, "id = ?", id).Error
}

func (r *BOMRepository) ListItems(bomID string) ([]entity.BOMItem, error) {
	var items []entity.BOMItem
	err := r.db.Preload("Part").Where("bom_id = ?", bomID).
		Order("find_number, created_at").Find(&items).Error
	return items, err
}
