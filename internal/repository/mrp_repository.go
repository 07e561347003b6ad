package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/bitforge/plm/internal/model/entity"
)

type MRPRepository struct {
	db *gorm.DB
}

func NewMRPRepository(db *gorm.DB) *MRPRepository {
	return &MRPRepository{db: db}
}

func (r *MRPRepository) CreateRun(run *entity.MRPRun) error {
	return r.db.Create(run).Error
}

func (r *MRPRepository) UpdateRun(run *entity.MRPRun) error {
	return r.db.Save(run).Error
}

func (r *MRPRepository) GetRunByID(id string) (*entity.MRPRun, error) {
	var run entity.MRPRun
	err := r.db.Where("id = ?", id).First(&run).Error
	return &run, err
}

func (r *MRPRepository) GetLatestRun(projectID string) (*entity.MRPRun, error) {
	query := r.db.Order("created_at DESC")
	if projectID != "" {
		query = query.Where("project_id = ?", projectID)
	}
	var run entity.MRPRun
	err := query.First(&run).Error
	return &run, err
}

func (r *MRPRepository) ListRuns(projectID string, page, size int) ([]entity.MRPRun, int64, error) {
	query := r.db.Model(&entity.MRPRun{})
	if projectID != "" {
		query = query.Where("project_id = ?", projectID)
	}

	var total int64
	query.Count(&total)

	if page <= 0 {
		page = 1
	}
	if size <= 0 {
		size = 20
	}
	var runs []entity.MRPRun
	err := query.Order("created_at DESC").Offset((page - 1) * size).Limit(size).Find(&runs).Error
	return runs, total, err
}

func (r *MRPRepository) BatchCreateOrders(orders []entity.MRPPlannedOrder) error {
	if len(orders) == 0 {
		return nil
	}
	return r.db.Create(&orders).Error
}

func (r *MRPRepository) BatchCreateExceptions(exceptions []entity.MRPException) error {
	if len(exceptions) == 0 {
		return nil
	}
	return r.db.Create(&exceptions).Error
}

func (r *MRPRepository) ListOrdersForRun(runID string) ([]entity.MRPPlannedOrder, error) {
	var orders []entity.MRPPlannedOrder
	err := r.db.Where("run_id = ?", runID).Order("order_date, part_number").Find(&orders).Error
	return orders, err
}

func (r *MRPRepository) ListExceptionsForRun(runID string) ([]entity.MRPException, error) {
	var exceptions []entity.MRPException
	err := r.db.Where("run_id = ?", runID).Order("priority, created_at").Find(&exceptions).Error
	return exceptions, err
}

// FirmOrders transitions the given planned orders to firmed and returns the
// rows actually transitioned. Orders missing or not in planned status are
// skipped.
func (r *MRPRepository) FirmOrders(runID string, orderIDs []string) ([]entity.MRPPlannedOrder, error) {
	if len(orderIDs) == 0 {
		return nil, nil
	}
	var planned []entity.MRPPlannedOrder
	err := r.db.Where("run_id = ? AND id IN ? AND status = ?", runID, orderIDs, entity.PlannedOrderPlanned).
		Find(&planned).Error
	if err != nil {
		return nil, err
	}
	if len(planned) == 0 {
		return nil, nil
	}
	ids := make([]string, len(planned))
	for i, o := range planned {
		ids[i] = o.ID
	}
	err = r.db.Model(&entity.MRPPlannedOrder{}).
		Where("id IN ?", ids).
		Update("status", entity.PlannedOrderFirmed).Error
	if err != nil {
		return nil, err
	}
	for i := range planned {
		planned[i].Status = entity.PlannedOrderFirmed
	}
	return planned, nil
}

// --- Material demands ---

func (r *MRPRepository) CreateDemand(d *entity.MaterialDemand) error {
	return r.db.Create(d).Error
}

func (r *MRPRepository) GetDemand(id string) (*entity.MaterialDemand, error) {
	var d entity.MaterialDemand
	err := r.db.Where("id = ?", id).First(&d).Error
	return &d, err
}

func (r *MRPRepository) UpdateDemand(d *entity.MaterialDemand) error {
	return r.db.Save(d).Error
}

func (r *MRPRepository) DeleteDemand(id string) error {
	return r.db.Delete(&entity.MaterialDemand{}, "id = ?", id).Error
}

func (r *MRPRepository) ListDemands(projectID string, page, size int) ([]entity.MaterialDemand, int64, error) {
	query := r.db.Model(&entity.MaterialDemand{}).Where("project_id = ?", projectID)

	var total int64
	query.Count(&total)

	if page <= 0 {
		page = 1
	}
	if size <= 0 {
		size = 50
	}
	var demands []entity.MaterialDemand
	err := query.Order("need_date").Offset((page - 1) * size).Limit(size).Find(&demands).Error
	return demands, total, err
}

// OpenDemandsInWindow returns a project's open demand rows with need dates in
// [start, end], in need-date order.
func (r *MRPRepository) OpenDemandsInWindow(projectID string, start, end time.Time) ([]entity.MaterialDemand, error) {
	var demands []entity.MaterialDemand
	err := r.db.
		Where("project_id = ? AND status = ?", projectID, entity.DemandOpen).
		Where("need_date >= ? AND need_date <= ?", start, end).
		Order("need_date").
		Find(&demands).Error
	return demands, err
}
