package service

import (
	"context"
	"testing"
	"time"

	"github.com/bitforge/plm/internal/model/entity"
	"github.com/bitforge/plm/internal/mrp"
	"github.com/bitforge/plm/internal/repository"
	"github.com/bitforge/plm/internal/testutil"
)

type mrpTestEnv struct {
	repos     *repository.Repositories
	parts     *PartService
	boms      *BOMService
	projects  *ProjectService
	inventory *InventoryService
	svc       *MRPService

	project   *entity.Project
	topPart   *entity.Part
	component *entity.Part
}

func setupMRPTest(t *testing.T) *mrpTestEnv {
	t.Helper()
	db := testutil.SetupTestDB(t)
	repos := repository.NewRepositories(db)

	env := &mrpTestEnv{
		repos:     repos,
		parts:     NewPartService(repos.Part),
		boms:      NewBOMService(repos.BOM, repos.Part),
		projects:  NewProjectService(repos.Project, repos.Part),
		inventory: NewInventoryService(repos.Inventory, repos.Part),
	}
	env.svc = NewMRPService(repos, env.boms, nil, nil)

	env.topPart = env.releasePart(t, CreatePartRequest{
		PartNumber: "ASM-100",
		Name:       "Controller Assembly",
		PartType:   entity.PartTypeAssembly,
	})
	env.component = env.releasePart(t, CreatePartRequest{
		PartNumber:    "CMP-200",
		Name:          "Control Board",
		LeadTimeDays:  7,
		MinOrderQty:   10,
		OrderMultiple: 5,
	})

	bom, err := env.boms.Create(CreateBOMRequest{
		BOMNumber:    "BOM-ASM-100",
		ParentPartID: env.topPart.ID,
	}, "test-user-001")
	if err != nil {
		t.Fatalf("create BOM: %v", err)
	}
	if _, err := env.boms.AddItem(bom.ID, AddBOMItemRequest{
		PartID:   env.component.ID,
		Quantity: 2,
	}); err != nil {
		t.Fatalf("add BOM item: %v", err)
	}
	if _, err := env.boms.Release(bom.ID, "test-user-001"); err != nil {
		t.Fatalf("release BOM: %v", err)
	}

	env.project, err = env.projects.Create(CreateProjectRequest{
		Code:      "PRJ-001",
		Name:      "Controller Program",
		TopPartID: env.topPart.ID,
	}, "test-user-001")
	if err != nil {
		t.Fatalf("create project: %v", err)
	}

	return env
}

func (env *mrpTestEnv) releasePart(t *testing.T, req CreatePartRequest) *entity.Part {
	t.Helper()
	part, err := env.parts.Create(req, "test-user-001")
	if err != nil {
		t.Fatalf("create part %s: %v", req.PartNumber, err)
	}
	part, err = env.parts.Release(part.ID, "test-user-001")
	if err != nil {
		t.Fatalf("release part %s: %v", req.PartNumber, err)
	}
	return part
}

func (env *mrpTestEnv) addDemand(t *testing.T, partID string, qty float64, needInDays int) {
	t.Helper()
	_, err := env.svc.CreateDemand(CreateDemandRequest{
		ProjectID: env.project.ID,
		PartID:    partID,
		NeedDate:  time.Now().AddDate(0, 0, needInDays),
		Quantity:  qty,
	}, "test-user-001")
	if err != nil {
		t.Fatalf("create demand: %v", err)
	}
}

func TestRunMRPNetsAndLotSizes(t *testing.T) {
	env := setupMRPTest(t)

	if _, err := env.inventory.Receive(env.component.ID, "MAIN", 4, "GRN-1", "test-user-001"); err != nil {
		t.Fatalf("receive stock: %v", err)
	}
	env.addDemand(t, env.component.ID, 12, 30)

	report, err := env.svc.RunMRP(context.Background(), RunMRPRequest{
		ProjectID:   env.project.ID,
		HorizonDays: 60,
	}, "test-user-001")
	if err != nil {
		t.Fatalf("run MRP: %v", err)
	}

	if report.Status != string(mrp.RunCompleted) {
		t.Fatalf("run status = %s, want completed", report.Status)
	}
	if len(report.PlannedOrders) != 1 {
		t.Fatalf("planned orders = %d, want 1", len(report.PlannedOrders))
	}
	order := report.PlannedOrders[0]
	if order.PartID != env.component.ID {
		t.Fatalf("order part = %s, want component", order.PartID)
	}
	// Net 12-4=8, raised to MOQ 10, already on the multiple of 5.
	if order.Quantity != 10 {
		t.Fatalf("order quantity = %v, want 10", order.Quantity)
	}
	if len(report.ExceptionMessages) != 0 {
		t.Fatalf("exceptions = %d, want 0", len(report.ExceptionMessages))
	}
}

func TestRunMRPExpediteException(t *testing.T) {
	env := setupMRPTest(t)

	// Need in 2 days with a 7 day lead time: order date lands 5 days in the
	// past, inside the warning band.
	env.addDemand(t, env.component.ID, 5, 2)

	report, err := env.svc.RunMRP(context.Background(), RunMRPRequest{
		ProjectID:   env.project.ID,
		HorizonDays: 30,
	}, "test-user-001")
	if err != nil {
		t.Fatalf("run MRP: %v", err)
	}

	if len(report.ExceptionMessages) != 1 {
		t.Fatalf("exceptions = %d, want 1", len(report.ExceptionMessages))
	}
	ex := report.ExceptionMessages[0]
	if ex.ExceptionType != string(mrp.ExceptionExpedite) {
		t.Fatalf("exception type = %s, want expedite", ex.ExceptionType)
	}
	if ex.Priority != string(mrp.PriorityWarning) {
		t.Fatalf("exception priority = %s, want warning", ex.Priority)
	}
	if len(report.PlannedOrders) != 1 {
		t.Fatalf("planned orders = %d, want 1", len(report.PlannedOrders))
	}
	if report.PlannedOrders[0].OrderDate != time.Now().Format("2006-01-02") {
		t.Fatalf("late order date = %s, want today", report.PlannedOrders[0].OrderDate)
	}
}

func TestRunMRPWithoutTopPartFails(t *testing.T) {
	env := setupMRPTest(t)

	bare, err := env.projects.Create(CreateProjectRequest{
		Code: "PRJ-002",
		Name: "No Structure",
	}, "test-user-001")
	if err != nil {
		t.Fatalf("create project: %v", err)
	}

	report, err := env.svc.RunMRP(context.Background(), RunMRPRequest{
		ProjectID: bare.ID,
	}, "test-user-001")
	if err != nil {
		t.Fatalf("run MRP: %v", err)
	}
	if report.Status != string(mrp.RunFailed) {
		t.Fatalf("run status = %s, want failed", report.Status)
	}
	if len(report.ExceptionMessages) != 1 {
		t.Fatalf("exceptions = %d, want 1", len(report.ExceptionMessages))
	}
	if report.ExceptionMessages[0].ExceptionType != string(mrp.ExceptionCancel) {
		t.Fatalf("exception type = %s, want cancel", report.ExceptionMessages[0].ExceptionType)
	}

	record, err := env.repos.MRP.GetRunByID(report.ID)
	if err != nil {
		t.Fatalf("load run record: %v", err)
	}
	if record.Status != entity.MRPStatusFailed {
		t.Fatalf("persisted status = %s, want failed", record.Status)
	}
	if record.ErrorMessage == "" {
		t.Fatal("persisted run should carry the failure message")
	}

	exceptions, err := env.repos.MRP.ListExceptionsForRun(report.ID)
	if err != nil {
		t.Fatalf("load exceptions: %v", err)
	}
	if len(exceptions) != 1 {
		t.Fatalf("persisted exceptions = %d, want 1", len(exceptions))
	}
	if exceptions[0].PartID != nil {
		t.Errorf("run-level exception part id = %q, want NULL", *exceptions[0].PartID)
	}
}

func TestLatestRunAndReleaseOrders(t *testing.T) {
	env := setupMRPTest(t)
	env.addDemand(t, env.component.ID, 20, 40)

	report, err := env.svc.RunMRP(context.Background(), RunMRPRequest{
		ProjectID:   env.project.ID,
		HorizonDays: 60,
	}, "test-user-001")
	if err != nil {
		t.Fatalf("run MRP: %v", err)
	}

	latest, err := env.svc.LatestRun(context.Background(), env.project.ID)
	if err != nil {
		t.Fatalf("latest run: %v", err)
	}
	if latest.ID != report.ID {
		t.Fatalf("latest run = %s, want %s", latest.ID, report.ID)
	}

	firmed, err := env.svc.ReleaseOrders(report.ID, []string{report.PlannedOrders[0].ID})
	if err != nil {
		t.Fatalf("release orders: %v", err)
	}
	if len(firmed) != 1 {
		t.Fatalf("firmed orders = %d, want 1", len(firmed))
	}
	if firmed[0].Status != string(mrp.OrderFirmed) {
		t.Fatalf("firmed status = %s, want firmed", firmed[0].Status)
	}

	// Releasing the same order again is a no-op and reports nothing.
	again, err := env.svc.ReleaseOrders(report.ID, []string{report.PlannedOrders[0].ID})
	if err != nil {
		t.Fatalf("repeat release: %v", err)
	}
	if len(again) != 0 {
		t.Fatalf("repeat release returned %d orders, want 0", len(again))
	}
}
