package mrp

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Planning defaults applied when a part record carries no value. The numbers
// match the part-master defaulting policy of the upstream planning system.
const (
	DefaultLeadTimeDays = 14
	// ExpediteCriticalDays is the lateness beyond which an expedite exception
	// is graded critical instead of warning.
	ExpediteCriticalDays = 7
)

var (
	defaultMinOrderQty   = decimal.NewFromInt(1)
	defaultOrderMultiple = decimal.NewFromInt(1)
)

// Engine computes net material requirements for a project. It is a pure
// function of its three sources plus the clock; it holds no state across runs
// and performs a single synchronous pass. Concurrent RunMRP calls must use
// independent source instances.
type Engine struct {
	bom       BOMSource
	schedule  ScheduleSource
	inventory InventorySource
	now       func() time.Time
}

// NewEngine creates an engine over the given sources.
func NewEngine(bom BOMSource, schedule ScheduleSource, inventory InventorySource) *Engine {
	return &Engine{bom: bom, schedule: schedule, inventory: inventory, now: time.Now}
}

// WithClock overrides the wall clock. Intended for tests.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

// RunMRP executes one MRP calculation for a project over the window
// [today, today+horizonDays]. It always returns a run: a source failure marks
// the run failed and surfaces as a critical cancel exception, never as an
// error to the caller. Orders and exceptions appended before a failure stay
// in the run.
func (e *Engine) RunMRP(projectID string, horizonDays int) *Run {
	if horizonDays <= 0 {
		horizonDays = 90
	}

	start := e.now()
	today := truncateDay(start)

	run := &Run{
		ID:          uuid.New().String(),
		ProjectID:   projectID,
		RunDate:     start,
		HorizonDays: horizonDays,
		Status:      RunRunning,
	}

	if err := e.compute(run, today, today.AddDate(0, 0, horizonDays)); err != nil {
		run.Status = RunFailed
		run.ExceptionMessages = append(run.ExceptionMessages, ExceptionMessage{
			ID:       uuid.New().String(),
			Type:     ExceptionCancel,
			Message:  fmt.Sprintf("MRP run failed: %v", err),
			Quantity: decimal.Zero,
			Priority: PriorityCritical,
		})
	} else {
		run.Status = RunCompleted
		run.TotalPlannedOrders = len(run.PlannedOrders)
		run.TotalExceptions = len(run.ExceptionMessages)
	}

	run.ExecutionTimeMS = e.now().Sub(start).Milliseconds()
	return run
}

func (e *Engine) compute(run *Run, today, end time.Time) error {
	items, err := e.bom.ExplodeBOM(run.ProjectID, -1)
	if err != nil {
		return fmt.Errorf("explode BOM: %w", err)
	}

	schedule, err := e.schedule.MaterialSchedule(run.ProjectID, today, end)
	if err != nil {
		return fmt.Errorf("fetch material schedule: %w", err)
	}

	onHand, err := e.inventory.OnHand()
	if err != nil {
		return fmt.Errorf("fetch inventory: %w", err)
	}
	onOrder, err := e.inventory.OpenOrders()
	if err != nil {
		return fmt.Errorf("fetch open orders: %w", err)
	}

	// Low-level-code order is a correctness requirement: a component's full
	// gross requirement, including from multiple parents, must be recorded
	// before it is netted.
	sorted := make([]BOMItem, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].LowLevelCode < sorted[j].LowLevelCode
	})

	for _, item := range sorted {
		run.ItemsProcessed++
		if err := e.processItem(run, item, schedule, onHand, onOrder, today); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) processItem(
	run *Run,
	item BOMItem,
	schedule map[string][]Requirement,
	onHand, onOrder map[string]decimal.Decimal,
	today time.Time,
) error {
	if item.PartID == "" {
		return nil
	}
	requirements := schedule[item.PartID]
	if len(requirements) == 0 {
		return nil
	}

	part, err := e.bom.GetPart(item.PartID)
	if err != nil {
		return fmt.Errorf("fetch part %s: %w", item.PartID, err)
	}
	part = applyPartDefaults(part, item.PartID)

	// Running balance across this item's requirements, in schedule order.
	available := onHand[item.PartID].Add(onOrder[item.PartID])

	for _, req := range requirements {
		net := req.Quantity.Sub(available)
		if net.Sign() <= 0 {
			available = available.Sub(req.Quantity)
			continue
		}

		orderDate := req.NeedDate.AddDate(0, 0, -part.LeadTimeDays)
		orderQty := lotSize(net, part)

		if orderDate.Before(today) {
			daysLate := daysBetween(orderDate, today)
			priority := PriorityWarning
			if daysLate > ExpediteCriticalDays {
				priority = PriorityCritical
			}
			current, suggested := today, today
			run.ExceptionMessages = append(run.ExceptionMessages, ExceptionMessage{
				ID:            uuid.New().String(),
				PartID:        item.PartID,
				PartNumber:    part.PartNumber,
				Type:          ExceptionExpedite,
				Message:       fmt.Sprintf("Order should have been placed %d days ago", daysLate),
				CurrentDate:   &current,
				SuggestedDate: &suggested,
				Quantity:      orderQty,
				Priority:      priority,
			})
			orderDate = today
		}

		run.PlannedOrders = append(run.PlannedOrders, &PlannedOrder{
			ID:            uuid.New().String(),
			PartID:        item.PartID,
			PartNumber:    part.PartNumber,
			Quantity:      orderQty,
			UnitOfMeasure: part.UnitOfMeasure,
			NeedDate:      req.NeedDate,
			OrderDate:     orderDate,
			DemandSource:  req.Source,
			Status:        OrderPlanned,
		})

		// The lot-sizing surplus is treated as on hand for the next
		// requirement of this part within the run. Arrival lead time is
		// deliberately ignored here; see DESIGN.md.
		available = orderQty.Sub(net)
	}
	return nil
}

// applyPartDefaults fills zero-valued planning attributes with the named
// defaults. A negative order multiple disables multiple rounding.
func applyPartDefaults(p Part, partID string) Part {
	if p.LeadTimeDays <= 0 {
		p.LeadTimeDays = DefaultLeadTimeDays
	}
	if p.PartNumber == "" {
		p.PartNumber = partID
	}
	if p.UnitOfMeasure == "" {
		p.UnitOfMeasure = "EA"
	}
	if p.MinOrderQty.IsZero() {
		p.MinOrderQty = defaultMinOrderQty
	}
	if p.OrderMultiple.IsZero() {
		p.OrderMultiple = defaultOrderMultiple
	}
	return p
}

// lotSize rounds a net quantity up to the part's minimum order quantity, then
// up to the next multiple of the part's order multiple. Pure.
func lotSize(quantity decimal.Decimal, part Part) decimal.Decimal {
	qty := quantity
	if qty.LessThan(part.MinOrderQty) {
		qty = part.MinOrderQty
	}
	if part.OrderMultiple.Sign() > 0 && !qty.Mod(part.OrderMultiple).IsZero() {
		qty = qty.Div(part.OrderMultiple).Floor().Add(decimal.NewFromInt(1)).Mul(part.OrderMultiple)
	}
	return qty
}

// ReleaseOrders firms the planned orders in the run whose IDs are in ids.
// Orders not found or not in planned status are skipped silently; the
// returned slice contains exactly the transitioned orders.
func (e *Engine) ReleaseOrders(ids []string, run *Run) []*PlannedOrder {
	want := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}

	var released []*PlannedOrder
	for _, order := range run.PlannedOrders {
		if _, ok := want[order.ID]; ok && order.Status == OrderPlanned {
			order.Status = OrderFirmed
			released = append(released, order)
		}
	}
	return released
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// daysBetween counts whole calendar days from a to b, ignoring time of day.
// Mapping both dates onto UTC keeps the count exact across DST transitions.
func daysBetween(a, b time.Time) int {
	au := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	bu := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(bu.Sub(au) / (24 * time.Hour))
}
