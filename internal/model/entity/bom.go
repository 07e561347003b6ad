package entity

import (
	"time"
)

// BOM types
const (
	BOMTypeEngineering   = "engineering"
	BOMTypeManufacturing = "manufacturing"
)

// BOM lifecycle states
const (
	BOMStatusDraft    = "draft"
	BOMStatusReleased = "released"
	BOMStatusObsolete = "obsolete"
)

// BOM is a bill-of-materials header for a parent part.
type BOM struct {
	ID            string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	BOMNumber     string     `json:"bom_number" gorm:"size:64;not null;uniqueIndex"`
	ParentPartID  string     `json:"parent_part_id" gorm:"type:uuid;not null;index"`
	ProjectID     string     `json:"project_id" gorm:"type:uuid;index"`
	BOMType       string     `json:"bom_type" gorm:"size:16;not null;default:engineering"`
	Status        string     `json:"status" gorm:"size:16;not null;default:draft;index"`
	Revision      string     `json:"revision" gorm:"size:8;not null;default:A"`
	Description   string     `json:"description" gorm:"type:text"`
	EffectiveFrom *time.Time `json:"effective_from"`
	EffectiveTo   *time.Time `json:"effective_to"`
	ReleasedBy    string     `json:"released_by" gorm:"size:64"`
	ReleasedAt    *time.Time `json:"released_at"`
	CreatedBy     string     `json:"created_by" gorm:"size:64"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	Items []BOMItem `json:"items,omitempty" gorm:"foreignKey:BOMID"`
}

func (BOM) TableName() string {
	return "plm_boms"
}

// BOMItem is one component line on a BOM.
type BOMItem struct {
	ID                  string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	BOMID               string    `json:"bom_id" gorm:"type:uuid;not null;index"`
	PartID              string    `json:"part_id" gorm:"type:uuid;not null;index"`
	FindNumber          int       `json:"find_number" gorm:"default:0"`
	Quantity            float64   `json:"quantity" gorm:"type:decimal(12,4);not null;default:1"`
	UnitOfMeasure       string    `json:"unit_of_measure" gorm:"size:8;not null;default:EA"`
	ReferenceDesignator string    `json:"reference_designator" gorm:"size:128"`
	Notes               string    `json:"notes" gorm:"type:text"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`

	Part *Part `json:"part,omitempty" gorm:"foreignKey:PartID"`
}

func (BOMItem) TableName() string {
	return "plm_bom_items"
}
