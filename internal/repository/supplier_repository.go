package repository

import (
	"gorm.io/gorm"

	"github.com/bitforge/plm/internal/model/entity"
)

type SupplierRepository struct {
	db *gorm.DB
}

func NewSupplierRepository(db *gorm.DB) *SupplierRepository {
	return &SupplierRepository{db: db}
}

func (r *SupplierRepository) Create(supplier *entity.Supplier) error {
	return r.db.Create(supplier).Error
}

func (r *SupplierRepository) GetByID(id string) (*entity.Supplier, error) {
	var supplier entity.Supplier
	err := r.db.Where("id = ?", id).First(&supplier).Error
	return &supplier, err
}

func (r *SupplierRepository) Update(supplier *entity.Supplier) error {
	return r.db.Save(supplier).Error
}

type SupplierListParams struct {
	ApprovalStatus string
	Tier           string
	Search         string
	Page           int
	Size           int
}

func (r *SupplierRepository) List(params SupplierListParams) ([]entity.Supplier, int64, error) {
	query := r.db.Model(&entity.Supplier{})
	if params.ApprovalStatus != "" {
		query = query.Where("approval_status = ?", params.ApprovalStatus)
	}
	if params.Tier != "" {
		query = query.Where("tier = ?", params.Tier)
	}
	if params.Search != "" {
		like := "%" + params.Search + "%"
		query = query.Where("code ILIKE ? OR name ILIKE ?", like, like)
	}

	var total int64
	query.Count(&total)

	if params.Page <= 0 {
		params.Page = 1
	}
	if params.Size <= 0 {
		params.Size = 20
	}
	var suppliers []entity.Supplier
	err := query.Order("code").
		Offset((params.Page - 1) * params.Size).Limit(params.Size).
		Find(&suppliers).Error
	return suppliers, total, err
}

func (r *SupplierRepository) CreateApprovedVendor(av *entity.ApprovedVendor) error {
	return r.db.Create(av).Error
}

func (r *SupplierRepository) GetApprovedVendor(id string) (*entity.ApprovedVendor, error) {
	var av entity.ApprovedVendor
	err := r.db.Where("id = ?", id).First(&av).Error
	return &av, err
}

func (r *SupplierRepository) UpdateApprovedVendor(av *entity.ApprovedVendor) error {
	return r.db.Save(av).Error
}

func (r *SupplierRepository) DeleteApprovedVendor(id string) error {
	return r.db.Delete(&entity.ApprovedVendor{}, "id = ?", id).Error
}

// ListAVLForPart returns a part's approved vendor list with suppliers loaded.
func (r *SupplierRepository) ListAVLForPart(partID string) ([]entity.ApprovedVendor, error) {
	var avl []entity.ApprovedVendor
	err := r.db.Preload("Supplier").Where("part_id = ?", partID).
		Order("preferred DESC, created_at").Find(&avl).Error
	return avl, err
}
