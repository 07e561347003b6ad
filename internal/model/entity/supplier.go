package entity

import (
	"time"
)

// Supplier approval states
const (
	SupplierPending     = "pending"
	SupplierApproved    = "approved"
	SupplierConditional = "conditional"
	SupplierSuspended   = "suspended"
)

// Supplier tiers
const (
	TierPreferred = "preferred"
	TierApproved  = "approved"
	TierRestricted = "restricted"
)

// AVL qualification states
const (
	QualNotStarted = "not_started"
	QualInProgress = "in_progress"
	QualQualified  = "qualified"
	QualFailed     = "failed"
)

// Supplier is a vendor master record with an approval lifecycle.
type Supplier struct {
	ID             string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Code           string     `json:"code" gorm:"size:32;not null;uniqueIndex"`
	Name           string     `json:"name" gorm:"size:128;not null"`
	ApprovalStatus string     `json:"approval_status" gorm:"size:16;not null;default:pending;index"`
	Tier           string     `json:"tier" gorm:"size:16;not null;default:approved"`
	ContactName    string     `json:"contact_name" gorm:"size:64"`
	ContactEmail   string     `json:"contact_email" gorm:"size:128"`
	Phone          string     `json:"phone" gorm:"size:32"`
	Country        string     `json:"country" gorm:"size:64"`
	QualityRating  float64    `json:"quality_rating" gorm:"type:decimal(5,2);default:0"`
	ApprovedBy     string     `json:"approved_by" gorm:"size:64"`
	ApprovedAt     *time.Time `json:"approved_at"`
	SuspendReason  string     `json:"suspend_reason" gorm:"type:text"`
	CreatedBy      string     `json:"created_by" gorm:"size:64"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func (Supplier) TableName() string {
	return "plm_suppliers"
}

// ApprovedVendor is one row of a part's approved vendor list.
type ApprovedVendor struct {
	ID                  string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	PartID              string    `json:"part_id" gorm:"type:uuid;not null;index:idx_avl_part_supplier,unique"`
	SupplierID          string    `json:"supplier_id" gorm:"type:uuid;not null;index:idx_avl_part_supplier,unique"`
	Status              string    `json:"status" gorm:"size:16;not null;default:pending;index"`
	QualificationStatus string    `json:"qualification_status" gorm:"size:16;not null;default:not_started"`
	SupplierPartNumber  string    `json:"supplier_part_number" gorm:"size:64"`
	UnitPrice           float64   `json:"unit_price" gorm:"type:decimal(12,4);default:0"`
	LeadTimeDays        int       `json:"lead_time_days" gorm:"default:0"`
	MinOrderQty         float64   `json:"min_order_qty" gorm:"type:decimal(12,4);default:0"`
	Preferred           bool      `json:"preferred" gorm:"default:false"`
	CreatedBy           string    `json:"created_by" gorm:"size:64"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`

	Supplier *Supplier `json:"supplier,omitempty" gorm:"foreignKey:SupplierID"`
}

func (ApprovedVendor) TableName() string {
	return "plm_approved_vendors"
}
