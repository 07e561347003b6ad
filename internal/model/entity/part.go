package entity

import (
	"time"
)

// Part lifecycle states
const (
	PartStatusDraft    = "draft"
	PartStatusInReview = "in_review"
	PartStatusReleased = "released"
	PartStatusObsolete = "obsolete"
)

// Part types
const (
	PartTypeAssembly  = "assembly"
	PartTypeComponent = "component"
	PartTypeRaw       = "raw_material"
	PartTypeSoftware  = "software"
	PartTypeDocument  = "document"
)

// Units of measure
const (
	UOMEach  = "EA"
	UOMMeter = "M"
	UOMKg    = "KG"
	UOMLiter = "L"
	UOMSet   = "SET"
)

// Part is the part master record. Planning attributes (lead time, minimum
// order quantity, order multiple, safety stock) drive MRP; unit cost drives
// the costing rollup.
type Part struct {
	ID            string  `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	PartNumber    string  `json:"part_number" gorm:"size:64;not null;uniqueIndex"`
	Name          string  `json:"name" gorm:"size:128;not null"`
	Description   string  `json:"description" gorm:"type:text"`
	PartType      string  `json:"part_type" gorm:"size:20;not null;default:component"`
	Status        string  `json:"status" gorm:"size:16;not null;default:draft;index"`
	Revision      string  `json:"revision" gorm:"size:8;not null;default:A"`
	UnitOfMeasure string  `json:"unit_of_measure" gorm:"size:8;not null;default:EA"`
	UnitCost      float64 `json:"unit_cost" gorm:"type:decimal(12,4);default:0"`

	// Planning attributes
	LeadTimeDays  int     `json:"lead_time_days" gorm:"default:0"`
	MinOrderQty   float64 `json:"min_order_qty" gorm:"type:decimal(12,4);default:0"`
	OrderMultiple float64 `json:"order_multiple" gorm:"type:decimal(12,4);default:0"`
	SafetyStock   float64 `json:"safety_stock" gorm:"type:decimal(12,4);default:0"`

	MakeOrBuy  string     `json:"make_or_buy" gorm:"size:8;default:buy"`
	ReleasedBy string     `json:"released_by" gorm:"size:64"`
	ReleasedAt *time.Time `json:"released_at"`
	CreatedBy  string     `json:"created_by" gorm:"size:64"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

func (Part) TableName() string {
	return "plm_parts"
}

// PartRevision is an immutable snapshot of a part at a revision cut.
type PartRevision struct {
	ID          string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	PartID      string    `json:"part_id" gorm:"type:uuid;not null;index"`
	Revision    string    `json:"revision" gorm:"size:8;not null"`
	Status      string    `json:"status" gorm:"size:16;not null;default:draft"`
	Description string    `json:"description" gorm:"type:text"`
	ChangeNote  string    `json:"change_note" gorm:"type:text"`
	CreatedBy   string    `json:"created_by" gorm:"size:64"`
	CreatedAt   time.Time `json:"created_at"`
}

func (PartRevision) TableName() string {
	return "plm_part_revisions"
}
