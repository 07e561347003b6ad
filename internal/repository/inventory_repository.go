package repository

import (
	"gorm.io/gorm"

	"github.com/bitforge/plm/internal/model/entity"
)

type InventoryRepository struct {
	db *gorm.DB
}

func NewInventoryRepository(db *gorm.DB) *InventoryRepository {
	return &InventoryRepository{db: db}
}

func (r *InventoryRepository) GetItem(partID, location string) (*entity.InventoryItem, error) {
	var item entity.InventoryItem
	err := r.db.Where("part_id = ? AND location = ?", partID, location).First(&item).Error
	return &item, err
}

func (r *InventoryRepository) CreateItem(item *entity.InventoryItem) error {
	return r.db.Create(item).Error
}

func (r *InventoryRepository) UpdateItem(item *entity.InventoryItem) error {
	return r.db.Save(item).Error
}

func (r *InventoryRepository) ListItemsForPart(partID string) ([]entity.InventoryItem, error) {
	var items []entity.InventoryItem
	err := r.db.Where("part_id = ?", partID).Order("location").Find(&items).Error
	return items, err
}

func (r *InventoryRepository) ListItems() ([]entity.InventoryItem, error) {
	var items []entity.InventoryItem
	err := r.db.Order("part_id, location").Find(&items).Error
	return items, err
}

// TotalOnHand sums a part's stock across locations.
func (r *InventoryRepository) TotalOnHand(partID string) (float64, error) {
	var total float64
	err := r.db.Model(&entity.InventoryItem{}).
		Where("part_id = ?", partID).
		Select("COALESCE(SUM(on_hand), 0)").
		Scan(&total).Error
	return total, err
}

// OnHandByPart returns total stock per part across all locations.
func (r *InventoryRepository) OnHandByPart() (map[string]float64, error) {
	type row struct {
		PartID string
		Total  float64
	}
	var rows []row
	err := r.db.Model(&entity.InventoryItem{}).
		Select("part_id, SUM(on_hand) as total").
		Group("part_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	result := make(map[string]float64, len(rows))
	for _, rw := range rows {
		result[rw.PartID] = rw.Total
	}
	return result, nil
}

func (r *InventoryRepository) CreateTransaction(tx *entity.InventoryTransaction) error {
	return r.db.Create(tx).Error
}

func (r *InventoryRepository) ListTransactions(partID string, limit int) ([]entity.InventoryTransaction, error) {
	if limit <= 0 {
		limit = 50
	}
	var txs []entity.InventoryTransaction
	err := r.db.Where("part_id = ?", partID).Order("created_at DESC").Limit(limit).Find(&txs).Error
	return txs, err
}

func (r *InventoryRepository) CreateOpenOrder(order *entity.OpenOrder) error {
	return r.db.Create(order).Error
}

func (r *InventoryRepository) GetOpenOrder(id string) (*entity.OpenOrder, error) {
	var order entity.OpenOrder
	err := r.db.Where("id = ?", id).First(&order).Error
	return &order, err
}

func (r *InventoryRepository) UpdateOpenOrder(order *entity.OpenOrder) error {
	return r.db.Save(order).Error
}

func (r *InventoryRepository) ListOpenOrders() ([]entity.OpenOrder, error) {
	var orders []entity.OpenOrder
	err := r.db.Where("status = ?", entity.OpenOrderOpen).Order("due_date").Find(&orders).Error
	return orders, err
}

// OnOrderByPart returns open purchase quantities per part.
func (r *InventoryRepository) OnOrderByPart() (map[string]float64, error) {
	type row struct {
		PartID string
		Total  float64
	}
	var rows []row
	err := r.db.Model(&entity.OpenOrder{}).
		Select("part_id, SUM(quantity) as total").
		Where("status = ?", entity.OpenOrderOpen).
		Group("part_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	result := make(map[string]float64, len(rows))
	for _, rw := range rows {
		result[rw.PartID] = rw.Total
	}
	return result, nil
}

// ListBelowReorderPoint returns stock records at or under their reorder point.
func (r *InventoryRepository) ListBelowReorderPoint() ([]entity.InventoryItem, error) {
	var items []entity.InventoryItem
	err := r.db.Where("reorder_point > 0 AND on_hand <= reorder_point").Find(&items).Error
	return items, err
}
