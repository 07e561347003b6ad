package entity

import (
	"time"
)

// Cost estimate states
const (
	CostStatusDraft    = "draft"
	CostStatusApproved = "approved"
	CostStatusArchived = "archived"
)

// Cost element types
const (
	CostTypeMaterial = "material"
	CostTypeLabor    = "labor"
	CostTypeOverhead = "overhead"
	CostTypeTooling  = "tooling"
)

// PartCost is the cost estimate for a part, with per-category totals
// recomputed from its cost elements.
type PartCost struct {
	ID            string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	PartID        string    `json:"part_id" gorm:"type:uuid;not null;uniqueIndex"`
	Status        string    `json:"status" gorm:"size:16;not null;default:draft;index"`
	Currency      string    `json:"currency" gorm:"size:8;not null;default:USD"`
	MaterialCost  float64   `json:"material_cost" gorm:"type:decimal(12,4);default:0"`
	LaborCost     float64   `json:"labor_cost" gorm:"type:decimal(12,4);default:0"`
	OverheadCost  float64   `json:"overhead_cost" gorm:"type:decimal(12,4);default:0"`
	ToolingCost   float64   `json:"tooling_cost" gorm:"type:decimal(12,4);default:0"`
	TotalCost     float64   `json:"total_cost" gorm:"type:decimal(12,4);default:0"`
	TargetCost    float64   `json:"target_cost" gorm:"type:decimal(12,4);default:0"`
	MarginPercent float64   `json:"margin_percent" gorm:"type:decimal(6,2);default:0"`
	CreatedBy     string    `json:"created_by" gorm:"size:64"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	Elements []CostElement `json:"elements,omitempty" gorm:"foreignKey:PartCostID"`
}

func (PartCost) TableName() string {
	return "plm_part_costs"
}

// CostElement is one line of a part cost estimate.
type CostElement struct {
	ID          string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	PartCostID  string    `json:"part_cost_id" gorm:"type:uuid;not null;index"`
	CostType    string    `json:"cost_type" gorm:"size:16;not null"`
	Description string    `json:"description" gorm:"size:256"`
	Quantity    float64   `json:"quantity" gorm:"type:decimal(12,4);default:1"`
	UnitAmount  float64   `json:"unit_amount" gorm:"type:decimal(12,4);default:0"`
	Amount      float64   `json:"amount" gorm:"type:decimal(12,4);default:0"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (CostElement) TableName() string {
	return "plm_cost_elements"
}

// CostVariance records actual-vs-standard cost for a part in a period.
// Variance is favorable when actual does not exceed standard.
type CostVariance struct {
	ID              string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	PartID          string    `json:"part_id" gorm:"type:uuid;not null;index"`
	PartNumber      string    `json:"part_number" gorm:"size:64"`
	Period          string    `json:"period" gorm:"size:16;not null;index"`
	StandardCost    float64   `json:"standard_cost" gorm:"type:decimal(12,4);not null"`
	ActualCost      float64   `json:"actual_cost" gorm:"type:decimal(12,4);not null"`
	Quantity        float64   `json:"quantity" gorm:"type:decimal(12,4);default:1"`
	Variance        float64   `json:"variance" gorm:"type:decimal(12,4);default:0"`
	VariancePercent float64   `json:"variance_percent" gorm:"type:decimal(8,2);default:0"`
	Favorable       bool      `json:"favorable" gorm:"default:true"`
	CreatedAt       time.Time `json:"created_at"`
}

func (CostVariance) TableName() string {
	return "plm_cost_variances"
}
