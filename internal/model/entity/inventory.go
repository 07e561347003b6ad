package entity

import (
	"time"
)

// Inventory transaction types
const (
	TxReceipt  = "receipt"
	TxIssue    = "issue"
	TxAdjust   = "adjust"
	TxTransfer = "transfer"
	TxScrap    = "scrap"
)

// Open order states
const (
	OpenOrderOpen      = "open"
	OpenOrderReceived  = "received"
	OpenOrderCancelled = "cancelled"
)

// InventoryItem is the on-hand stock of a part at a location.
type InventoryItem struct {
	ID           string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	PartID       string    `json:"part_id" gorm:"type:uuid;not null;index:idx_inv_part_location,unique"`
	Location     string    `json:"location" gorm:"size:64;not null;index:idx_inv_part_location,unique"`
	OnHand       float64   `json:"on_hand" gorm:"type:decimal(12,4);not null;default:0"`
	Reserved     float64   `json:"reserved" gorm:"type:decimal(12,4);default:0"`
	ReorderPoint float64   `json:"reorder_point" gorm:"type:decimal(12,4);default:0"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (InventoryItem) TableName() string {
	return "plm_inventory_items"
}

// InventoryTransaction is the movement journal.
type InventoryTransaction struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	PartID    string    `json:"part_id" gorm:"type:uuid;not null;index"`
	Location  string    `json:"location" gorm:"size:64;not null"`
	TxType    string    `json:"tx_type" gorm:"size:16;not null;index"`
	Quantity  float64   `json:"quantity" gorm:"type:decimal(12,4);not null"`
	Reference string    `json:"reference" gorm:"size:128"`
	Notes     string    `json:"notes" gorm:"type:text"`
	CreatedBy string    `json:"created_by" gorm:"size:64"`
	CreatedAt time.Time `json:"created_at"`
}

func (InventoryTransaction) TableName() string {
	return "plm_inventory_transactions"
}

// OpenOrder is an outstanding purchase order line; open quantities count as
// on-order supply in MRP netting.
type OpenOrder struct {
	ID         string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	OrderNo    string     `json:"order_no" gorm:"size:32;not null;index"`
	PartID     string     `json:"part_id" gorm:"type:uuid;not null;index"`
	SupplierID string     `json:"supplier_id" gorm:"type:uuid;index"`
	Quantity   float64    `json:"quantity" gorm:"type:decimal(12,4);not null"`
	DueDate    *time.Time `json:"due_date"`
	Status     string     `json:"status" gorm:"size:16;not null;default:open;index"`
	CreatedBy  string     `json:"created_by" gorm:"size:64"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

func (OpenOrder) TableName() string {
	return "plm_open_orders"
}
