package repository

import (
	"gorm.io/gorm"

	"github.com/bitforge/plm/internal/model/entity"
)

type CostingRepository struct {
	db *gorm.DB
}

func NewCostingRepository(db *gorm.DB) *CostingRepository {
	return &CostingRepository{db: db}
}

func (r *CostingRepository) CreateCost(cost *entity.PartCost) error {
	return r.db.Create(cost).Error
}

func (r *CostingRepository) GetCostForPart(partID string) (*entity.PartCost, error) {
	var cost entity.PartCost
	err := r.db.Preload("Elements").Where("part_id = ?", partID).First(&cost).Error
	return &cost, err
}

func (r *CostingRepository) GetCost(id string) (*entity.PartCost, error) {
	var cost entity.PartCost
	err := r.db.Preload("Elements").Where("id = ?", id).First(&cost).Error
	return &cost, err
}

func (r *CostingRepository) UpdateCost(cost *entity.PartCost) error {
	return r.db.Save(cost).Error
}

func (r *CostingRepository) CreateElement(el *entity.CostElement) error {
	return r.db.Create(el).Error
}

func (r *CostingRepository) GetElement(id string) (*entity.CostElement, error) {
	var el entity.CostElement
	err := r.db.Where("id = ?", id).First(&el).Error
	return &el, err
}

func (r *CostingRepository) UpdateElement(el *entity.CostElement) error {
	return r.db.Save(el).Error
}

func (r *CostingRepository) DeleteElement(id string) error {
	return r.db.Delete(&entity.CostElement{}, "id = ?", id).Error
}

func (r *CostingRepository) ListElements(partCostID string) ([]entity.CostElement, error) {
	var elements []entity.CostElement
	err := r.db.Where("part_cost_id = ?", partCostID).Order("created_at").Find(&elements).Error
	return elements, err
}

func (r *CostingRepository) CreateVariance(v *entity.CostVariance) error {
	return r.db.Create(v).Error
}

func (r *CostingRepository) ListVariancesForPart(partID, period string) ([]entity.CostVariance, error) {
	query := r.db.Where("part_id = ?", partID)
	if period != "" {
		query = query.Where("period = ?", period)
	}
	var variances []entity.CostVariance
	err := query.Order("period DESC, created_at DESC").Find(&variances).Error
	return variances, err
}

func (r *CostingRepository) ListUnfavorableVariances(period string) ([]entity.CostVariance, error) {
	query := r.db.Where("favorable = false")
	if period != "" {
		query = query.Where("period = ?", period)
	}
	var variances []entity.CostVariance
	err := query.Order("variance DESC").Find(&variances).Error
	return variances, err
}
