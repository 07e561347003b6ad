package mrp

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

// fakeSources implements all three engine interfaces in memory.
type fakeSources struct {
	items      []BOMItem
	parts      map[string]Part
	schedule   map[string][]Requirement
	onHand     map[string]decimal.Decimal
	onOrder    map[string]decimal.Decimal
	explodeErr error
	partErr    error
}

func (f *fakeSources) ExplodeBOM(projectID string, levels int) ([]BOMItem, error) {
	if f.explodeErr != nil {
		return nil, f.explodeErr
	}
	return f.items, nil
}

func (f *fakeSources) GetPart(partID string) (Part, error) {
	if f.partErr != nil {
		return Part{}, f.partErr
	}
	return f.parts[partID], nil
}

func (f *fakeSources) MaterialSchedule(projectID string, start, end time.Time) (map[string][]Requirement, error) {
	return f.schedule, nil
}

func (f *fakeSources) OnHand() (map[string]decimal.Decimal, error) {
	return f.onHand, nil
}

func (f *fakeSources) OpenOrders() (map[string]decimal.Decimal, error) {
	return f.onOrder, nil
}

var testToday = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

func newTestEngine(f *fakeSources) *Engine {
	return NewEngine(f, f, f).WithClock(func() time.Time { return testToday })
}

func qty(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestRunMRP_NetsAgainstInventory(t *testing.T) {
	f := &fakeSources{
		items: []BOMItem{{PartID: "P1", LowLevelCode: 0}},
		parts: map[string]Part{"P1": {
			ID: "P1", PartNumber: "PN-001", UnitOfMeasure: "EA",
			LeadTimeDays: 14, MinOrderQty: qty(1), OrderMultiple: qty(1),
		}},
		schedule: map[string][]Requirement{"P1": {
			{NeedDate: testToday.AddDate(0, 0, 20), Quantity: qty(100), Source: "DEMAND-1"},
		}},
		onHand:  map[string]decimal.Decimal{"P1": qty(30)},
		onOrder: map[string]decimal.Decimal{},
	}

	run := newTestEngine(f).RunMRP("PROJ-1", 90)

	if run.Status != RunCompleted {
		t.Fatalf("status = %s, want completed", run.Status)
	}
	if len(run.PlannedOrders) != 1 {
		t.Fatalf("planned orders = %d, want 1", len(run.PlannedOrders))
	}
	order := run.PlannedOrders[0]
	if !order.Quantity.Equal(qty(70)) {
		t.Errorf("order quantity = %s, want 70", order.Quantity)
	}
	wantOrderDate := testToday.AddDate(0, 0, 6)
	if !order.OrderDate.Equal(wantOrderDate) {
		t.Errorf("order date = %v, want %v", order.OrderDate, wantOrderDate)
	}
	if order.Status != OrderPlanned {
		t.Errorf("order status = %s, want planned", order.Status)
	}
	if order.DemandSource != "DEMAND-1" {
		t.Errorf("demand source = %q, want DEMAND-1", order.DemandSource)
	}
	if len(run.ExceptionMessages) != 0 {
		t.Errorf("exceptions = %d, want 0", len(run.ExceptionMessages))
	}
	if run.ItemsProcessed != 1 || run.TotalPlannedOrders != 1 || run.TotalExceptions != 0 {
		t.Errorf("stats = (%d, %d, %d), want (1, 1, 0)",
			run.ItemsProcessed, run.TotalPlannedOrders, run.TotalExceptions)
	}
}

func TestRunMRP_FullyCoveredRequirementEmitsNoOrder(t *testing.T) {
	f := &fakeSources{
		items: []BOMItem{{PartID: "P1"}},
		parts: map[string]Part{"P1": {ID: "P1", PartNumber: "PN-001", LeadTimeDays: 14}},
		schedule: map[string][]Requirement{"P1": {
			{NeedDate: testToday.AddDate(0, 0, 30), Quantity: qty(40), Source: "D1"},
			{NeedDate: testToday.AddDate(0, 0, 45), Quantity: qty(50), Source: "D2"},
		}},
		onHand:  map[string]decimal.Decimal{"P1": qty(60)},
		onOrder: map[string]decimal.Decimal{"P1": qty(40)},
	}

	run := newTestEngine(f).RunMRP("PROJ-1", 90)

	// 100 available covers 40 then 50; the running balance depletes to 10.
	if len(run.PlannedOrders) != 0 {
		t.Fatalf("planned orders = %d, want 0", len(run.PlannedOrders))
	}
	if run.Status != RunCompleted {
		t.Errorf("status = %s, want completed", run.Status)
	}
}

func TestRunMRP_RunningBalanceDepletesAcrossRequirements(t *testing.T) {
	f := &fakeSources{
		items: []BOMItem{{PartID: "P1"}},
		parts: map[string]Part{"P1": {ID: "P1", PartNumber: "PN-001", LeadTimeDays: 5}},
		schedule: map[string][]Requirement{"P1": {
			{NeedDate: testToday.AddDate(0, 0, 20), Quantity: qty(60), Source: "D1"},
			{NeedDate: testToday.AddDate(0, 0, 40), Quantity: qty(60), Source: "D2"},
		}},
		onHand:  map[string]decimal.Decimal{"P1": qty(100)},
		onOrder: map[string]decimal.Decimal{},
	}

	run := newTestEngine(f).RunMRP("PROJ-1", 90)

	// First requirement is covered (100 >= 60) leaving 40; the second nets
	// 60-40 = 20.
	if len(run.PlannedOrders) != 1 {
		t.Fatalf("planned orders = %d, want 1", len(run.PlannedOrders))
	}
	if !run.PlannedOrders[0].Quantity.Equal(qty(20)) {
		t.Errorf("order quantity = %s, want 20", run.PlannedOrders[0].Quantity)
	}
	if run.PlannedOrders[0].DemandSource != "D2" {
		t.Errorf("demand source = %q, want D2", run.PlannedOrders[0].DemandSource)
	}
}

func TestRunMRP_LotSizeSurplusCarriesForward(t *testing.T) {
	f := &fakeSources{
		items: []BOMItem{{PartID: "P1"}},
		parts: map[string]Part{"P1": {
			ID: "P1", PartNumber: "PN-001", LeadTimeDays: 5,
			MinOrderQty: qty(50), OrderMultiple: qty(1),
		}},
		schedule: map[string][]Requirement{"P1": {
			{NeedDate: testToday.AddDate(0, 0, 20), Quantity: qty(10), Source: "D1"},
			{NeedDate: testToday.AddDate(0, 0, 40), Quantity: qty(30), Source: "D2"},
		}},
		onHand:  map[string]decimal.Decimal{},
		onOrder: map[string]decimal.Decimal{},
	}

	run := newTestEngine(f).RunMRP("PROJ-1", 90)

	// First requirement nets 10 but orders 50 (min order qty); the 40-unit
	// surplus covers the second requirement entirely.
	if len(run.PlannedOrders) != 1 {
		t.Fatalf("planned orders = %d, want 1", len(run.PlannedOrders))
	}
	if !run.PlannedOrders[0].Quantity.Equal(qty(50)) {
		t.Errorf("order quantity = %s, want 50", run.PlannedOrders[0].Quantity)
	}
}

func TestRunMRP_ExpediteClampsOrderDate(t *testing.T) {
	f := &fakeSources{
		items: []BOMItem{{PartID: "P1"}},
		parts: map[string]Part{"P1": {
			ID: "P1", PartNumber: "PN-001", UnitOfMeasure: "EA", LeadTimeDays: 30,
		}},
		schedule: map[string][]Requirement{"P1": {
			{NeedDate: testToday.AddDate(0, 0, 20), Quantity: qty(100), Source: "DEMAND-1"},
		}},
		onHand:  map[string]decimal.Decimal{"P1": qty(30)},
		onOrder: map[string]decimal.Decimal{},
	}

	run := newTestEngine(f).RunMRP("PROJ-1", 90)

	if run.Status != RunCompleted {
		t.Fatalf("status = %s, want completed", run.Status)
	}
	if len(run.PlannedOrders) != 1 || len(run.ExceptionMessages) != 1 {
		t.Fatalf("orders=%d exceptions=%d, want 1 and 1",
			len(run.PlannedOrders), len(run.ExceptionMessages))
	}
	if !run.PlannedOrders[0].OrderDate.Equal(testToday) {
		t.Errorf("order date = %v, want clamped to today", run.PlannedOrders[0].OrderDate)
	}
	ex := run.ExceptionMessages[0]
	if ex.Type != ExceptionExpedite {
		t.Errorf("exception type = %s, want expedite", ex.Type)
	}
	// Pre-clamp order date is today-10: 10 days late, past the critical line.
	if ex.Priority != PriorityCritical {
		t.Errorf("priority = %s, want critical", ex.Priority)
	}
	if ex.PartID != "P1" || ex.PartNumber != "PN-001" {
		t.Errorf("exception part = (%s, %s), want (P1, PN-001)", ex.PartID, ex.PartNumber)
	}
}

func TestRunMRP_ExpediteWarningWithinSevenDays(t *testing.T) {
	f := &fakeSources{
		items: []BOMItem{{PartID: "P1"}},
		parts: map[string]Part{"P1": {ID: "P1", PartNumber: "PN-001", LeadTimeDays: 25}},
		schedule: map[string][]Requirement{"P1": {
			// Pre-clamp order date today-5: late, but not critical.
			{NeedDate: testToday.AddDate(0, 0, 20), Quantity: qty(10), Source: "D1"},
		}},
		onHand:  map[string]decimal.Decimal{},
		onOrder: map[string]decimal.Decimal{},
	}

	run := newTestEngine(f).RunMRP("PROJ-1", 90)

	if len(run.ExceptionMessages) != 1 {
		t.Fatalf("exceptions = %d, want 1", len(run.ExceptionMessages))
	}
	if run.ExceptionMessages[0].Priority != PriorityWarning {
		t.Errorf("priority = %s, want warning", run.ExceptionMessages[0].Priority)
	}
}

func TestRunMRP_ExpediteLatenessExactAcrossDST(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	// Clock three days after the spring-forward transition. The pre-clamp
	// order date lands eight calendar days back, across a 23-hour day, which
	// must grade critical rather than rounding down to a 7-day warning.
	clock := time.Date(2025, 3, 12, 0, 0, 0, 0, loc)
	f := &fakeSources{
		items: []BOMItem{{PartID: "P1"}},
		parts: map[string]Part{"P1": {ID: "P1", PartNumber: "PN-001", LeadTimeDays: 30}},
		schedule: map[string][]Requirement{"P1": {
			{NeedDate: clock.AddDate(0, 0, 22), Quantity: qty(10), Source: "D1"},
		}},
		onHand:  map[string]decimal.Decimal{},
		onOrder: map[string]decimal.Decimal{},
	}

	run := NewEngine(f, f, f).WithClock(func() time.Time { return clock }).RunMRP("PROJ-1", 90)

	if len(run.ExceptionMessages) != 1 {
		t.Fatalf("exceptions = %d, want 1", len(run.ExceptionMessages))
	}
	ex := run.ExceptionMessages[0]
	if ex.Priority != PriorityCritical {
		t.Errorf("priority = %s, want critical", ex.Priority)
	}
	if ex.Message != "Order should have been placed 8 days ago" {
		t.Errorf("message = %q, want 8 days late", ex.Message)
	}
}

func TestRunMRP_SourceFailureYieldsFailedRun(t *testing.T) {
	f := &fakeSources{explodeErr: errors.New("bom service unavailable")}

	run := newTestEngine(f).RunMRP("PROJ-1", 90)

	if run.Status != RunFailed {
		t.Fatalf("status = %s, want failed", run.Status)
	}
	if len(run.PlannedOrders) != 0 {
		t.Errorf("planned orders = %d, want 0", len(run.PlannedOrders))
	}
	if len(run.ExceptionMessages) != 1 {
		t.Fatalf("exceptions = %d, want 1", len(run.ExceptionMessages))
	}
	ex := run.ExceptionMessages[0]
	if ex.Type != ExceptionCancel || ex.Priority != PriorityCritical {
		t.Errorf("exception = (%s, %s), want (cancel, critical)", ex.Type, ex.Priority)
	}
}

func TestRunMRP_DefaultsForMissingPartAttributes(t *testing.T) {
	f := &fakeSources{
		items: []BOMItem{{PartID: "P1"}},
		// Part record entirely empty: lead time, uom, min qty and multiple
		// all defaulted.
		parts: map[string]Part{"P1": {}},
		schedule: map[string][]Requirement{"P1": {
			{NeedDate: testToday.AddDate(0, 0, 20), Quantity: qty(5), Source: "D1"},
		}},
		onHand:  map[string]decimal.Decimal{},
		onOrder: map[string]decimal.Decimal{},
	}

	run := newTestEngine(f).RunMRP("PROJ-1", 90)

	if len(run.PlannedOrders) != 1 {
		t.Fatalf("planned orders = %d, want 1", len(run.PlannedOrders))
	}
	order := run.PlannedOrders[0]
	wantOrderDate := testToday.AddDate(0, 0, 20-DefaultLeadTimeDays)
	if !order.OrderDate.Equal(wantOrderDate) {
		t.Errorf("order date = %v, want %v (default lead time)", order.OrderDate, wantOrderDate)
	}
	if order.PartNumber != "P1" {
		t.Errorf("part number = %q, want part id fallback", order.PartNumber)
	}
	if order.UnitOfMeasure != "EA" {
		t.Errorf("uom = %q, want EA", order.UnitOfMeasure)
	}
}

func TestRunMRP_ProcessesItemsInLowLevelCodeOrder(t *testing.T) {
	f := &fakeSources{
		items: []BOMItem{
			{PartID: "COMPONENT", LowLevelCode: 2},
			{PartID: "ASSEMBLY", LowLevelCode: 0},
			{PartID: "SUBASSY", LowLevelCode: 1},
		},
		parts: map[string]Part{
			"ASSEMBLY":  {ID: "ASSEMBLY", PartNumber: "A", LeadTimeDays: 1},
			"SUBASSY":   {ID: "SUBASSY", PartNumber: "S", LeadTimeDays: 1},
			"COMPONENT": {ID: "COMPONENT", PartNumber: "C", LeadTimeDays: 1},
		},
		schedule: map[string][]Requirement{
			"ASSEMBLY":  {{NeedDate: testToday.AddDate(0, 0, 30), Quantity: qty(1), Source: "D"}},
			"SUBASSY":   {{NeedDate: testToday.AddDate(0, 0, 30), Quantity: qty(1), Source: "D"}},
			"COMPONENT": {{NeedDate: testToday.AddDate(0, 0, 30), Quantity: qty(1), Source: "D"}},
		},
		onHand:  map[string]decimal.Decimal{},
		onOrder: map[string]decimal.Decimal{},
	}

	run := newTestEngine(f).RunMRP("PROJ-1", 90)

	var got []string
	for _, o := range run.PlannedOrders {
		got = append(got, o.PartID)
	}
	want := []string{"ASSEMBLY", "SUBASSY", "COMPONENT"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("processing order = %v, want %v", got, want)
	}
	if run.ItemsProcessed != 3 {
		t.Errorf("items processed = %d, want 3", run.ItemsProcessed)
	}
}

func TestRunMRP_NoPastOrderDatesInOutput(t *testing.T) {
	f := &fakeSources{
		items: []BOMItem{{PartID: "P1"}, {PartID: "P2"}},
		parts: map[string]Part{
			"P1": {ID: "P1", PartNumber: "PN-1", LeadTimeDays: 60},
			"P2": {ID: "P2", PartNumber: "PN-2", LeadTimeDays: 3},
		},
		schedule: map[string][]Requirement{
			"P1": {{NeedDate: testToday.AddDate(0, 0, 10), Quantity: qty(5), Source: "D"}},
			"P2": {{NeedDate: testToday.AddDate(0, 0, 10), Quantity: qty(5), Source: "D"}},
		},
		onHand:  map[string]decimal.Decimal{},
		onOrder: map[string]decimal.Decimal{},
	}

	run := newTestEngine(f).RunMRP("PROJ-1", 90)

	for _, o := range run.PlannedOrders {
		if o.OrderDate.Before(testToday) {
			t.Errorf("order %s has past order date %v", o.PartNumber, o.OrderDate)
		}
		if o.OrderDate.After(o.NeedDate) {
			t.Errorf("order %s has order date after need date", o.PartNumber)
		}
	}
}

func TestRunMRP_DefaultHorizon(t *testing.T) {
	f := &fakeSources{onHand: map[string]decimal.Decimal{}, onOrder: map[string]decimal.Decimal{}}
	run := newTestEngine(f).RunMRP("PROJ-1", 0)
	if run.HorizonDays != 90 {
		t.Errorf("horizon = %d, want default 90", run.HorizonDays)
	}
}

func TestLotSize(t *testing.T) {
	tests := []struct {
		name     string
		quantity int64
		minQty   int64
		multiple int64
		want     int64
	}{
		{"below minimum", 7, 10, 5, 10},
		{"rounds up to multiple", 12, 1, 5, 15},
		{"exact multiple unchanged", 15, 1, 5, 15},
		{"min then multiple", 3, 4, 6, 6},
		{"lot for lot", 42, 1, 1, 42},
		{"multiple disabled", 13, 1, -1, 13},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			part := Part{MinOrderQty: qty(tt.minQty), OrderMultiple: qty(tt.multiple)}
			got := lotSize(qty(tt.quantity), part)
			if !got.Equal(qty(tt.want)) {
				t.Errorf("lotSize(%d, min=%d, multiple=%d) = %s, want %d",
					tt.quantity, tt.minQty, tt.multiple, got, tt.want)
			}
			if got.LessThan(qty(tt.quantity)) || got.LessThan(qty(tt.minQty)) {
				t.Errorf("lot size %s below quantity or minimum", got)
			}
		})
	}
}

func TestReleaseOrders(t *testing.T) {
	run := &Run{
		PlannedOrders: []*PlannedOrder{
			{ID: "o1", Status: OrderPlanned},
			{ID: "o2", Status: OrderPlanned},
			{ID: "o3", Status: OrderFirmed},
		},
	}
	e := NewEngine(nil, nil, nil)

	released := e.ReleaseOrders([]string{"o1", "o3", "missing"}, run)

	if len(released) != 1 || released[0].ID != "o1" {
		t.Fatalf("released = %v, want exactly o1", released)
	}
	if run.PlannedOrders[0].Status != OrderFirmed {
		t.Errorf("o1 status = %s, want firmed", run.PlannedOrders[0].Status)
	}
	if run.PlannedOrders[1].Status != OrderPlanned {
		t.Errorf("o2 status = %s, want untouched", run.PlannedOrders[1].Status)
	}
	if run.PlannedOrders[2].Status != OrderFirmed {
		t.Errorf("o3 status = %s, want still firmed", run.PlannedOrders[2].Status)
	}

	// Releasing the same set again is a no-op.
	if again := e.ReleaseOrders([]string{"o1"}, run); len(again) != 0 {
		t.Errorf("second release returned %d orders, want 0", len(again))
	}
}

func TestRunReport_Idempotent(t *testing.T) {
	f := &fakeSources{
		items: []BOMItem{{PartID: "P1"}},
		parts: map[string]Part{"P1": {ID: "P1", PartNumber: "PN-001", LeadTimeDays: 30}},
		schedule: map[string][]Requirement{"P1": {
			{NeedDate: testToday.AddDate(0, 0, 20), Quantity: qty(100), Source: "D1"},
		}},
		onHand:  map[string]decimal.Decimal{},
		onOrder: map[string]decimal.Decimal{},
	}

	run := newTestEngine(f).RunMRP("PROJ-1", 90)

	first := run.Report()
	second := run.Report()
	if !reflect.DeepEqual(first, second) {
		t.Error("consecutive reports differ")
	}

	if len(first.PlannedOrders) != 1 {
		t.Fatalf("report orders = %d, want 1", len(first.PlannedOrders))
	}
	o := first.PlannedOrders[0]
	if o.NeedDate != testToday.AddDate(0, 0, 20).Format("2006-01-02") {
		t.Errorf("need date = %q, not ISO date", o.NeedDate)
	}
	if o.Quantity != 100 {
		t.Errorf("quantity = %v, want 100", o.Quantity)
	}
	if first.Statistics.TotalPlannedOrders != 1 || first.Statistics.TotalExceptions != 1 {
		t.Errorf("statistics = %+v, want 1 order and 1 exception", first.Statistics)
	}
}
