package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/bitforge/plm/internal/metrics"
	"github.com/bitforge/plm/internal/model/entity"
	"github.com/bitforge/plm/internal/mrp"
	"github.com/bitforge/plm/internal/repository"
)

const latestRunCacheTTL = 10 * time.Minute

type MRPService struct {
	mrpRepo     *repository.MRPRepository
	projectRepo *repository.ProjectRepository
	rdb         *redis.Client
	metrics     *metrics.Registry

	bomSrc       mrp.BOMSource
	scheduleSrc  mrp.ScheduleSource
	inventorySrc mrp.InventorySource
}

func NewMRPService(
	repos *repository.Repositories,
	bomSvc *BOMService,
	rdb *redis.Client,
	m *metrics.Registry,
) *MRPService {
	return &MRPService{
		mrpRepo:     repos.MRP,
		projectRepo: repos.Project,
		rdb:         rdb,
		metrics:     m,
		bomSrc: &bomSource{
			bomSvc:      bomSvc,
			bomRepo:     repos.BOM,
			partRepo:    repos.Part,
			projectRepo: repos.Project,
		},
		scheduleSrc:  &scheduleSource{mrpRepo: repos.MRP},
		inventorySrc: &inventorySource{inventoryRepo: repos.Inventory},
	}
}

type RunMRPRequest struct {
	ProjectID   string `json:"project_id" binding:"required"`
	HorizonDays int    `json:"horizon_days"`
}

// RunMRP executes a planning run and persists its header, orders and
// exceptions. The run row exists for the duration of the calculation in
// running status so concurrent reads see it.
func (s *MRPService) RunMRP(ctx context.Context, req RunMRPRequest, userID string) (*mrp.RunReport, error) {
	project, err := s.projectRepo.GetByID(req.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("project not found: %w", err)
	}

	now := time.Now()
	runCode := fmt.Sprintf("MRP-%s%04d", now.Format("20060102"), now.UnixNano()%10000)
	record := &entity.MRPRun{
		ID:          uuid.New().String(),
		RunCode:     runCode,
		ProjectID:   project.ID,
		Status:      entity.MRPStatusRunning,
		HorizonDays: req.HorizonDays,
		StartedAt:   now,
		CreatedBy:   userID,
	}
	if record.HorizonDays <= 0 {
		record.HorizonDays = 90
	}
	if err := s.mrpRepo.CreateRun(record); err != nil {
		return nil, fmt.Errorf("create run record: %w", err)
	}

	engine := mrp.NewEngine(s.bomSrc, s.scheduleSrc, s.inventorySrc)
	run := engine.RunMRP(project.ID, req.HorizonDays)
	run.ID = record.ID

	if err := s.persistRun(ctx, record, run); err != nil {
		return nil, err
	}
	report := run.Report()
	return &report, nil
}

func (s *MRPService) persistRun(ctx context.Context, record *entity.MRPRun, run *mrp.Run) error {
	orders := make([]entity.MRPPlannedOrder, 0, len(run.PlannedOrders))
	for _, o := range run.PlannedOrders {
		orders = append(orders, entity.MRPPlannedOrder{
			ID:            o.ID,
			RunID:         record.ID,
			PartID:        o.PartID,
			PartNumber:    o.PartNumber,
			Quantity:      o.Quantity.InexactFloat64(),
			UnitOfMeasure: o.UnitOfMeasure,
			NeedDate:      o.NeedDate,
			OrderDate:     o.OrderDate,
			DemandSource:  o.DemandSource,
			Status:        string(o.Status),
		})
	}
	exceptions := make([]entity.MRPException, 0, len(run.ExceptionMessages))
	for _, e := range run.ExceptionMessages {
		// Run-level exceptions carry no part; store NULL, not "".
		var partID *string
		if e.PartID != "" {
			id := e.PartID
			partID = &id
		}
		exceptions = append(exceptions, entity.MRPException{
			ID:            e.ID,
			RunID:         record.ID,
			PartID:        partID,
			PartNumber:    e.PartNumber,
			ExceptionType: string(e.Type),
			Message:       e.Message,
			CurrentDate:   e.CurrentDate,
			SuggestedDate: e.SuggestedDate,
			Quantity:      e.Quantity.InexactFloat64(),
			Priority:      string(e.Priority),
		})
	}

	if err := s.mrpRepo.BatchCreateOrders(orders); err != nil {
		return fmt.Errorf("persist planned orders: %w", err)
	}
	if err := s.mrpRepo.BatchCreateExceptions(exceptions); err != nil {
		return fmt.Errorf("persist exceptions: %w", err)
	}

	completed := time.Now()
	record.Status = string(run.Status)
	record.ItemsProcessed = run.ItemsProcessed
	record.TotalOrders = len(run.PlannedOrders)
	record.TotalExceptions = len(run.ExceptionMessages)
	record.ExecutionTimeMS = run.ExecutionTimeMS
	record.CompletedAt = &completed
	if run.Status == mrp.RunFailed {
		for _, e := range run.ExceptionMessages {
			if e.Type == mrp.ExceptionCancel {
				record.ErrorMessage = e.Message
				break
			}
		}
	}
	if err := s.mrpRepo.UpdateRun(record); err != nil {
		return fmt.Errorf("finalize run record: %w", err)
	}
	if s.metrics != nil {
		s.metrics.ObserveMRPRun(record.Status, record.ExecutionTimeMS, record.TotalOrders)
	}

	if run.Status == mrp.RunCompleted {
		s.cacheLatestRun(ctx, record.ProjectID, run)
	}
	return nil
}

func latestRunKey(projectID string) string {
	return "mrp:latest_run:" + projectID
}

func (s *MRPService) cacheLatestRun(ctx context.Context, projectID string, run *mrp.Run) {
	if s.rdb == nil {
		return
	}
	payload, err := json.Marshal(run.Report())
	if err != nil {
		return
	}
	// Cache write failures are ignored; the database stays authoritative.
	s.rdb.Set(ctx, latestRunKey(projectID), payload, latestRunCacheTTL)
}

// LatestRun returns the most recent completed run report for a project,
// served from cache when possible.
func (s *MRPService) LatestRun(ctx context.Context, projectID string) (*mrp.RunReport, error) {
	if s.rdb != nil {
		if payload, err := s.rdb.Get(ctx, latestRunKey(projectID)).Bytes(); err == nil {
			var report mrp.RunReport
			if err := json.Unmarshal(payload, &report); err == nil {
				return &report, nil
			}
		}
	}

	record, err := s.mrpRepo.GetLatestRun(projectID)
	if err != nil {
		return nil, err
	}
	return s.buildReport(record)
}

func (s *MRPService) GetRun(runID string) (*mrp.RunReport, error) {
	record, err := s.mrpRepo.GetRunByID(runID)
	if err != nil {
		return nil, err
	}
	return s.buildReport(record)
}

func (s *MRPService) ListRuns(projectID string, page, size int) ([]entity.MRPRun, int64, error) {
	return s.mrpRepo.ListRuns(projectID, page, size)
}

// buildReport reconstructs a run report from persisted rows.
func (s *MRPService) buildReport(record *entity.MRPRun) (*mrp.RunReport, error) {
	orders, err := s.mrpRepo.ListOrdersForRun(record.ID)
	if err != nil {
		return nil, err
	}
	exceptions, err := s.mrpRepo.ListExceptionsForRun(record.ID)
	if err != nil {
		return nil, err
	}

	report := &mrp.RunReport{
		ID:                  record.ID,
		ProjectID:           record.ProjectID,
		RunDate:             record.StartedAt.Format(time.RFC3339),
		PlanningHorizonDays: record.HorizonDays,
		Status:              record.Status,
		PlannedOrders:       make([]mrp.PlannedOrderReport, 0, len(orders)),
		ExceptionMessages:   make([]mrp.ExceptionReport, 0, len(exceptions)),
		Statistics: mrp.RunStatistics{
			TotalItemsProcessed: record.ItemsProcessed,
			TotalPlannedOrders:  record.TotalOrders,
			TotalExceptions:     record.TotalExceptions,
			ExecutionTimeMS:     record.ExecutionTimeMS,
		},
	}
	for _, o := range orders {
		report.PlannedOrders = append(report.PlannedOrders, mrp.PlannedOrderReport{
			ID:            o.ID,
			PartID:        o.PartID,
			PartNumber:    o.PartNumber,
			Quantity:      o.Quantity,
			UnitOfMeasure: o.UnitOfMeasure,
			NeedDate:      o.NeedDate.Format("2006-01-02"),
			OrderDate:     o.OrderDate.Format("2006-01-02"),
			DemandSource:  o.DemandSource,
			Status:        o.Status,
			ReleasedPOID:  o.ReleasedPOID,
		})
	}
	for _, e := range exceptions {
		var partID string
		if e.PartID != nil {
			partID = *e.PartID
		}
		report.ExceptionMessages = append(report.ExceptionMessages, mrp.ExceptionReport{
			ID:            e.ID,
			PartID:        partID,
			PartNumber:    e.PartNumber,
			ExceptionType: e.ExceptionType,
			Message:       e.Message,
			CurrentDate:   formatDatePtr(e.CurrentDate),
			SuggestedDate: formatDatePtr(e.SuggestedDate),
			Quantity:      e.Quantity,
			Priority:      e.Priority,
		})
	}
	return report, nil
}

func formatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("2006-01-02")
	return &s
}

// ReleaseOrders firms planned orders from a run. Missing or already-firmed
// orders are skipped; the response lists the orders actually transitioned.
func (s *MRPService) ReleaseOrders(runID string, orderIDs []string) ([]entity.MRPPlannedOrder, error) {
	if _, err := s.mrpRepo.GetRunByID(runID); err != nil {
		return nil, fmt.Errorf("run not found: %w", err)
	}
	return s.mrpRepo.FirmOrders(runID, orderIDs)
}

// --- Material demands ---

type CreateDemandRequest struct {
	ProjectID string    `json:"project_id" binding:"required"`
	PartID    string    `json:"part_id" binding:"required"`
	NeedDate  time.Time `json:"need_date" binding:"required"`
	Quantity  float64   `json:"quantity" binding:"required"`
	Source    string    `json:"source"`
}

func (s *MRPService) CreateDemand(req CreateDemandRequest, userID string) (*entity.MaterialDemand, error) {
	if req.Quantity <= 0 {
		return nil, fmt.Errorf("demand quantity must be positive")
	}
	if _, err := s.projectRepo.GetByID(req.ProjectID); err != nil {
		return nil, fmt.Errorf("project not found: %w", err)
	}
	d := &entity.MaterialDemand{
		ID:        uuid.New().String(),
		ProjectID: req.ProjectID,
		PartID:    req.PartID,
		NeedDate:  req.NeedDate,
		Quantity:  req.Quantity,
		Source:    req.Source,
		Status:    entity.DemandOpen,
		CreatedBy: userID,
	}
	if err := s.mrpRepo.CreateDemand(d); err != nil {
		return nil, fmt.Errorf("create demand: %w", err)
	}
	return d, nil
}

func (s *MRPService) UpdateDemandStatus(id, status string) (*entity.MaterialDemand, error) {
	d, err := s.mrpRepo.GetDemand(id)
	if err != nil {
		return nil, err
	}
	switch status {
	case entity.DemandOpen, entity.DemandSatisfied, entity.DemandCancelled:
	default:
		return nil, fmt.Errorf("unknown demand status %q", status)
	}
	d.Status = status
	if err := s.mrpRepo.UpdateDemand(d); err != nil {
		return nil, fmt.Errorf("update demand: %w", err)
	}
	return d, nil
}

func (s *MRPService) DeleteDemand(id string) error {
	return s.mrpRepo.DeleteDemand(id)
}

func (s *MRPService) ListDemands(projectID string, page, size int) ([]entity.MaterialDemand, int64, error) {
	return s.mrpRepo.ListDemands(projectID, page, size)
}
