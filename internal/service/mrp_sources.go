package service

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bitforge/plm/internal/model/entity"
	"github.com/bitforge/plm/internal/mrp"
	"github.com/bitforge/plm/internal/repository"
)

// bomSource feeds the planning engine from the released BOM of a project's
// top part.
type bomSource struct {
	bomSvc      *BOMService
	bomRepo     *repository.BOMRepository
	partRepo    *repository.PartRepository
	projectRepo *repository.ProjectRepository
}

func (s *bomSource) ExplodeBOM(projectID string, levels int) ([]mrp.BOMItem, error) {
	project, err := s.projectRepo.GetByID(projectID)
	if err != nil {
		return nil, fmt.Errorf("project %s: %w", projectID, err)
	}
	if project.TopPartID == "" {
		return nil, fmt.Errorf("project %s has no top part", project.Code)
	}
	bom, err := s.bomRepo.GetReleasedForPart(project.TopPartID)
	if err != nil {
		return nil, fmt.Errorf("released BOM for part %s: %w", project.TopPartID, err)
	}
	codes, err := s.bomSvc.LowLevelCodes(bom.ID)
	if err != nil {
		return nil, err
	}
	items := make([]mrp.BOMItem, 0, len(codes)+1)
	items = append(items, mrp.BOMItem{PartID: project.TopPartID, LowLevelCode: 0})
	for partID, code := range codes {
		items = append(items, mrp.BOMItem{PartID: partID, LowLevelCode: code})
	}
	return items, nil
}

func (s *bomSource) GetPart(partID string) (mrp.Part, error) {
	part, err := s.partRepo.GetByID(partID)
	if err != nil {
		return mrp.Part{}, err
	}
	return mrp.Part{
		ID:            part.ID,
		PartNumber:    part.PartNumber,
		UnitOfMeasure: part.UnitOfMeasure,
		LeadTimeDays:  part.LeadTimeDays,
		MinOrderQty:   decimal.NewFromFloat(part.MinOrderQty),
		OrderMultiple: decimal.NewFromFloat(part.OrderMultiple),
	}, nil
}

// scheduleSource feeds the engine from the project's open material demand
// rows.
type scheduleSource struct {
	mrpRepo *repository.MRPRepository
}

func (s *scheduleSource) MaterialSchedule(projectID string, start, end time.Time) (map[string][]mrp.Requirement, error) {
	demands, err := s.mrpRepo.OpenDemandsInWindow(projectID, start, end)
	if err != nil {
		return nil, err
	}
	schedule := make(map[string][]mrp.Requirement)
	for _, d := range demands {
		schedule[d.PartID] = append(schedule[d.PartID], mrp.Requirement{
			NeedDate: d.NeedDate,
			Quantity: decimal.NewFromFloat(d.Quantity),
			Source:   demandSource(d),
		})
	}
	return schedule, nil
}

func demandSource(d entity.MaterialDemand) string {
	if d.Source != "" {
		return d.Source
	}
	return "demand:" + d.ID
}

// inventorySource feeds the engine the stock position and open purchase
// supply.
type inventorySource struct {
	inventoryRepo *repository.InventoryRepository
}

func (s *inventorySource) OnHand() (map[string]decimal.Decimal, error) {
	byPart, err := s.inventoryRepo.OnHandByPart()
	if err != nil {
		return nil, err
	}
	return toDecimalMap(byPart), nil
}

func (s *inventorySource) OpenOrders() (map[string]decimal.Decimal, error) {
	byPart, err := s.inventoryRepo.OnOrderByPart()
	if err != nil {
		return nil, err
	}
	return toDecimalMap(byPart), nil
}

func toDecimalMap(in map[string]float64) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(in))
	for k, v := range in {
		out[k] = decimal.NewFromFloat(v)
	}
	return out
}
