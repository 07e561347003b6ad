package entity

import (
	"time"
)

// MRP run states
const (
	MRPStatusRunning   = "running"
	MRPStatusCompleted = "completed"
	MRPStatusFailed    = "failed"
)

// Planned order states
const (
	PlannedOrderPlanned  = "planned"
	PlannedOrderFirmed   = "firmed"
	PlannedOrderReleased = "released"
)

// Material demand states
const (
	DemandOpen      = "open"
	DemandSatisfied = "satisfied"
	DemandCancelled = "cancelled"
)

// MaterialDemand is one time-phased requirement row in a project's demand
// schedule; the MRP schedule source reads these.
type MaterialDemand struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	ProjectID string    `json:"project_id" gorm:"type:uuid;not null;index"`
	PartID    string    `json:"part_id" gorm:"type:uuid;not null;index"`
	NeedDate  time.Time `json:"need_date" gorm:"not null;index"`
	Quantity  float64   `json:"quantity" gorm:"type:decimal(12,4);not null"`
	Source    string    `json:"source" gorm:"size:128"`
	Status    string    `json:"status" gorm:"size:16;not null;default:open;index"`
	CreatedBy string    `json:"created_by" gorm:"size:64"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (MaterialDemand) TableName() string {
	return "plm_material_demands"
}

// MRPRun is the persisted header of one engine invocation.
type MRPRun struct {
	ID              string     `json:"id" gorm:"primaryKey;type:uuid"`
	RunCode         string     `json:"run_code" gorm:"size:50;not null;uniqueIndex"`
	ProjectID       string     `json:"project_id" gorm:"type:uuid;not null;index"`
	Status          string     `json:"status" gorm:"size:16;not null;default:running;index"`
	HorizonDays     int        `json:"horizon_days" gorm:"default:90"`
	ItemsProcessed  int        `json:"items_processed" gorm:"default:0"`
	TotalOrders     int        `json:"total_planned_orders" gorm:"default:0"`
	TotalExceptions int        `json:"total_exceptions" gorm:"default:0"`
	ExecutionTimeMS int64      `json:"execution_time_ms" gorm:"default:0"`
	ErrorMessage    string     `json:"error_message" gorm:"type:text"`
	StartedAt       time.Time  `json:"started_at"`
	CompletedAt     *time.Time `json:"completed_at"`
	CreatedBy       string     `json:"created_by" gorm:"size:64"`
	CreatedAt       time.Time  `json:"created_at"`
}

func (MRPRun) TableName() string {
	return "plm_mrp_runs"
}

// MRPPlannedOrder is a persisted planned order from a run.
type MRPPlannedOrder struct {
	ID            string    `json:"id" gorm:"primaryKey;type:uuid"`
	RunID         string    `json:"run_id" gorm:"type:uuid;not null;index"`
	PartID        string    `json:"part_id" gorm:"type:uuid;not null;index"`
	PartNumber    string    `json:"part_number" gorm:"size:64"`
	Quantity      float64   `json:"quantity" gorm:"type:decimal(12,4);not null"`
	UnitOfMeasure string    `json:"unit_of_measure" gorm:"size:8;default:EA"`
	NeedDate      time.Time `json:"need_date" gorm:"not null"`
	OrderDate     time.Time `json:"order_date" gorm:"not null"`
	DemandSource  string    `json:"demand_source" gorm:"size:128"`
	Status        string    `json:"status" gorm:"size:16;not null;default:planned;index"`
	ReleasedPOID  string    `json:"released_po_id" gorm:"size:64"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (MRPPlannedOrder) TableName() string {
	return "plm_mrp_planned_orders"
}

// MRPException is a persisted exception message from a run. PartID is NULL
// for run-level exceptions (a collaborator-failure cancel has no part).
type MRPException struct {
	ID            string     `json:"id" gorm:"primaryKey;type:uuid"`
	RunID         string     `json:"run_id" gorm:"type:uuid;not null;index"`
	PartID        *string    `json:"part_id" gorm:"type:uuid;index"`
	PartNumber    string     `json:"part_number" gorm:"size:64"`
	ExceptionType string     `json:"exception_type" gorm:"size:16;not null"`
	Message       string     `json:"message" gorm:"type:text"`
	CurrentDate   *time.Time `json:"current_date"`
	SuggestedDate *time.Time `json:"suggested_date"`
	Quantity      float64    `json:"quantity" gorm:"type:decimal(12,4);default:0"`
	Priority      string     `json:"priority" gorm:"size:16;not null;default:info;index"`
	CreatedAt     time.Time  `json:"created_at"`
}

func (MRPException) TableName() string {
	return "plm_mrp_exceptions"
}
