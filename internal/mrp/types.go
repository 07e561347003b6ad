package mrp

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the lifecycle of a planned order within a run.
type OrderStatus string

const (
	OrderPlanned  OrderStatus = "planned"
	OrderFirmed   OrderStatus = "firmed"
	OrderReleased OrderStatus = "released"
)

// ExceptionType classifies planner-attention messages.
type ExceptionType string

const (
	ExceptionRescheduleIn  ExceptionType = "reschedule_in"
	ExceptionRescheduleOut ExceptionType = "reschedule_out"
	ExceptionCancel        ExceptionType = "cancel"
	ExceptionExpedite      ExceptionType = "expedite"
)

// Priority grades exception messages.
type Priority string

const (
	PriorityCritical Priority = "critical"
	PriorityWarning  Priority = "warning"
	PriorityInfo     Priority = "info"
)

// RunStatus is the lifecycle of an MRP run.
type RunStatus string

const (
	RunRunning   RunStatus = "running"
	RunCompleted RunStatus = "completed"
	RunFailed    RunStatus = "failed"
)

// Part carries the planning attributes the engine needs.
// Zero-valued attributes take the package defaults (see applyPartDefaults).
type Part struct {
	ID            string
	PartNumber    string
	UnitOfMeasure string
	LeadTimeDays  int
	MinOrderQty   decimal.Decimal
	OrderMultiple decimal.Decimal
}

// BOMItem is one row of an exploded bill of materials. LowLevelCode is the
// maximum depth at which the part appears across the BOM; items are processed
// in ascending order so parent requirements are netted before the components
// they drive.
type BOMItem struct {
	PartID       string
	LowLevelCode int
}

// Requirement is one time-phased demand row from the schedule.
type Requirement struct {
	NeedDate time.Time
	Quantity decimal.Decimal
	Source   string
}

// PlannedOrder is an order the engine proposes to cover a net requirement.
// It is written once during netting; only Status and ReleasedPOID change
// afterwards, via ReleaseOrders.
type PlannedOrder struct {
	ID            string
	PartID        string
	PartNumber    string
	Quantity      decimal.Decimal
	UnitOfMeasure string
	NeedDate      time.Time
	OrderDate     time.Time
	DemandSource  string
	Pegging       []string
	Status        OrderStatus
	ReleasedPOID  string
}

// ExceptionMessage flags a planning condition requiring attention. Immutable
// once appended to a run.
type ExceptionMessage struct {
	ID            string
	PartID        string
	PartNumber    string
	Type          ExceptionType
	Message       string
	CurrentDate   *time.Time
	SuggestedDate *time.Time
	Quantity      decimal.Decimal
	Priority      Priority
}

// Run is the aggregate output of one MRP calculation. It exclusively owns its
// planned orders and exception messages.
type Run struct {
	ID                 string
	ProjectID          string
	RunDate            time.Time
	HorizonDays        int
	Status             RunStatus
	PlannedOrders      []*PlannedOrder
	ExceptionMessages  []ExceptionMessage
	ItemsProcessed     int
	TotalPlannedOrders int
	TotalExceptions    int
	ExecutionTimeMS    int64
}

const dateLayout = "2006-01-02"

// PlannedOrderReport is the serializable form of a planned order.
type PlannedOrderReport struct {
	ID            string   `json:"id"`
	PartID        string   `json:"part_id"`
	PartNumber    string   `json:"part_number"`
	Quantity      float64  `json:"quantity"`
	UnitOfMeasure string   `json:"unit_of_measure"`
	NeedDate      string   `json:"need_date"`
	OrderDate     string   `json:"order_date"`
	DemandSource  string   `json:"demand_source"`
	Pegging       []string `json:"pegging,omitempty"`
	Status        string   `json:"status"`
	ReleasedPOID  string   `json:"released_po_id,omitempty"`
}

// ExceptionReport is the serializable form of an exception message.
type ExceptionReport struct {
	ID            string  `json:"id"`
	PartID        string  `json:"part_id"`
	PartNumber    string  `json:"part_number"`
	ExceptionType string  `json:"exception_type"`
	Message       string  `json:"message"`
	CurrentDate   *string `json:"current_date"`
	SuggestedDate *string `json:"suggested_date"`
	Quantity      float64 `json:"quantity"`
	Priority      string  `json:"priority"`
}

// RunStatistics summarizes a run.
type RunStatistics struct {
	TotalItemsProcessed int   `json:"total_items_processed"`
	TotalPlannedOrders  int   `json:"total_planned_orders"`
	TotalExceptions     int   `json:"total_exceptions"`
	ExecutionTimeMS     int64 `json:"execution_time_ms"`
}

// RunReport is the serializable form of a run: ISO-8601 dates, float
// quantities, nested order/exception lists and a statistics block.
type RunReport struct {
	ID                  string               `json:"id"`
	ProjectID           string               `json:"project_id"`
	RunDate             string               `json:"run_date"`
	PlanningHorizonDays int                  `json:"planning_horizon_days"`
	Status              string               `json:"status"`
	PlannedOrders       []PlannedOrderReport `json:"planned_orders"`
	ExceptionMessages   []ExceptionReport    `json:"exception_messages"`
	Statistics          RunStatistics        `json:"statistics"`
}

// Report builds a snapshot of the run. Calling it repeatedly on the same run
// yields identical structures; it never mutates the run.
func (r *Run) Report() RunReport {
	rep := RunReport{
		ID:                  r.ID,
		ProjectID:           r.ProjectID,
		RunDate:             r.RunDate.Format(time.RFC3339),
		PlanningHorizonDays: r.HorizonDays,
		Status:              string(r.Status),
		PlannedOrders:       make([]PlannedOrderReport, 0, len(r.PlannedOrders)),
		ExceptionMessages:   make([]ExceptionReport, 0, len(r.ExceptionMessages)),
		Statistics: RunStatistics{
			TotalItemsProcessed: r.ItemsProcessed,
			TotalPlannedOrders:  r.TotalPlannedOrders,
			TotalExceptions:     r.TotalExceptions,
			ExecutionTimeMS:     r.ExecutionTimeMS,
		},
	}

	for _, o := range r.PlannedOrders {
		var pegging []string
		if len(o.Pegging) > 0 {
			pegging = append(pegging, o.Pegging...)
		}
		rep.PlannedOrders = append(rep.PlannedOrders, PlannedOrderReport{
			ID:            o.ID,
			PartID:        o.PartID,
			PartNumber:    o.PartNumber,
			Quantity:      o.Quantity.InexactFloat64(),
			UnitOfMeasure: o.UnitOfMeasure,
			NeedDate:      o.NeedDate.Format(dateLayout),
			OrderDate:     o.OrderDate.Format(dateLayout),
			DemandSource:  o.DemandSource,
			Pegging:       pegging,
			Status:        string(o.Status),
			ReleasedPOID:  o.ReleasedPOID,
		})
	}

	for _, e := range r.ExceptionMessages {
		rep.ExceptionMessages = append(rep.ExceptionMessages, ExceptionReport{
			ID:            e.ID,
			PartID:        e.PartID,
			PartNumber:    e.PartNumber,
			ExceptionType: string(e.Type),
			Message:       e.Message,
			CurrentDate:   formatDatePtr(e.CurrentDate),
			SuggestedDate: formatDatePtr(e.SuggestedDate),
			Quantity:      e.Quantity.InexactFloat64(),
			Priority:      string(e.Priority),
		})
	}

	return rep
}

func formatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}

// BOMSource supplies the exploded bill of materials and part master data.
type BOMSource interface {
	// ExplodeBOM flattens the BOM for a project. levels < 0 means all levels.
	ExplodeBOM(projectID string, levels int) ([]BOMItem, error)
	GetPart(partID string) (Part, error)
}

// ScheduleSource supplies time-phased material requirements per part over a
// date window.
type ScheduleSource interface {
	MaterialSchedule(projectID string, start, end time.Time) (map[string][]Requirement, error)
}

// InventorySource supplies the current inventory position per part.
type InventorySource interface {
	OnHand() (map[string]decimal.Decimal, error)
	OpenOrders() (map[string]decimal.Decimal, error)
}
