package service

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bitforge/plm/internal/model/entity"
	"github.com/bitforge/plm/internal/repository"
)

type CostingService struct {
	costingRepo *repository.CostingRepository
	partRepo    *repository.PartRepository
}

func NewCostingService(costingRepo *repository.CostingRepository, partRepo *repository.PartRepository) *CostingService {
	return &CostingService{costingRepo: costingRepo, partRepo: partRepo}
}

// GetOrCreateCost returns the cost estimate for a part, creating an empty
// draft estimate on first access.
func (s *CostingService) GetOrCreateCost(partID, userID string) (*entity.PartCost, error) {
	if _, err := s.partRepo.GetByID(partID); err != nil {
		return nil, fmt.Errorf("part not found: %w", err)
	}
	cost, err := s.costingRepo.GetCostForPart(partID)
	if err == nil {
		return cost, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}
	cost = &entity.PartCost{
		ID:        uuid.New().String(),
		PartID:    partID,
		Status:    entity.CostStatusDraft,
		Currency:  "USD",
		CreatedBy: userID,
	}
	if err := s.costingRepo.CreateCost(cost); err != nil {
		return nil, fmt.Errorf("create cost estimate: %w", err)
	}
	return cost, nil
}

type AddCostElementRequest struct {
	CostType    string  `json:"cost_type" binding:"required"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitAmount  float64 `json:"unit_amount" binding:"required"`
}

func (s *CostingService) AddElement(partID string, req AddCostElementRequest, userID string) (*entity.CostElement, error) {
	cost, err := s.GetOrCreateCost(partID, userID)
	if err != nil {
		return nil, err
	}
	if cost.Status == entity.CostStatusApproved {
		return nil, fmt.Errorf("approved estimates are frozen")
	}
	switch req.CostType {
	case entity.CostTypeMaterial, entity.CostTypeLabor, entity.CostTypeOverhead, entity.CostTypeTooling:
	default:
		return nil, fmt.Errorf("unknown cost type %q", req.CostType)
	}
	if req.Quantity <= 0 {
		req.Quantity = 1
	}

	el := &entity.CostElement{
		ID:          uuid.New().String(),
		PartCostID:  cost.ID,
		CostType:    req.CostType,
		Description: req.Description,
		Quantity:    req.Quantity,
		UnitAmount:  req.UnitAmount,
		Amount:      req.Quantity * req.UnitAmount,
	}
	if err := s.costingRepo.CreateElement(el); err != nil {
		return nil, fmt.Errorf("add cost element: %w", err)
	}
	if err := s.recomputeTotals(cost); err != nil {
		return nil, err
	}
	return el, nil
}

func (s *CostingService) UpdateElement(elementID string, quantity, unitAmount float64) (*entity.CostElement, error) {
	el, err := s.costingRepo.GetElement(elementID)
	if err != nil {
		return nil, err
	}
	cost, err := s.costingRepo.GetCost(el.PartCostID)
	if err != nil {
		return nil, err
	}
	if cost.Status == entity.CostStatusApproved {
		return nil, fmt.Errorf("approved estimates are frozen")
	}
	if quantity > 0 {
		el.Quantity = quantity
	}
	if unitAmount >= 0 {
		el.UnitAmount = unitAmount
	}
	el.Amount = el.Quantity * el.UnitAmount
	if err := s.costingRepo.UpdateElement(el); err != nil {
		return nil, fmt.Errorf("update cost element: %w", err)
	}
	if err := s.recomputeTotals(cost); err != nil {
		return nil, err
	}
	return el, nil
}

func (s *CostingService) RemoveElement(elementID string) error {
	el, err := s.costingRepo.GetElement(elementID)
	if err != nil {
		return err
	}
	cost, err := s.costingRepo.GetCost(el.PartCostID)
	if err != nil {
		return err
	}
	if cost.Status == entity.CostStatusApproved {
		return fmt.Errorf("approved estimates are frozen")
	}
	if err := s.costingRepo.DeleteElement(elementID); err != nil {
		return err
	}
	return s.recomputeTotals(cost)
}

func (s *CostingService) recomputeTotals(cost *entity.PartCost) error {
	elements, err := s.costingRepo.ListElements(cost.ID)
	if err != nil {
		return err
	}
	cost.MaterialCost = 0
	cost.LaborCost = 0
	cost.OverheadCost = 0
	cost.ToolingCost = 0
	for _, el := range elements {
		switch el.CostType {
		case entity.CostTypeMaterial:
			cost.MaterialCost += el.Amount
		case entity.CostTypeLabor:
			cost.LaborCost += el.Amount
		case entity.CostTypeOverhead:
			cost.OverheadCost += el.Amount
		case entity.CostTypeTooling:
			cost.ToolingCost += el.Amount
		}
	}
	cost.TotalCost = cost.MaterialCost + cost.LaborCost + cost.OverheadCost + cost.ToolingCost
	if cost.TargetCost > 0 {
		cost.MarginPercent = (cost.TargetCost - cost.TotalCost) / cost.TargetCost * 100
	}
	if err := s.costingRepo.UpdateCost(cost); err != nil {
		return fmt.Errorf("update cost totals: %w", err)
	}
	return nil
}

func (s *CostingService) SetTargetCost(partID string, target float64, userID string) (*entity.PartCost, error) {
	cost, err := s.GetOrCreateCost(partID, userID)
	if err != nil {
		return nil, err
	}
	cost.TargetCost = target
	if err := s.recomputeTotals(cost); err != nil {
		return nil, err
	}
	return s.costingRepo.GetCost(cost.ID)
}

// Approve freezes a cost estimate and pushes its total onto the part master
// as the standard unit cost.
func (s *CostingService) Approve(partID string) (*entity.PartCost, error) {
	cost, err := s.costingRepo.GetCostForPart(partID)
	if err != nil {
		return nil, err
	}
	if cost.Status == entity.CostStatusApproved {
		return nil, fmt.Errorf("estimate is already approved")
	}
	cost.Status = entity.CostStatusApproved
	if err := s.costingRepo.UpdateCost(cost); err != nil {
		return nil, fmt.Errorf("approve estimate: %w", err)
	}

	part, err := s.partRepo.GetByID(partID)
	if err != nil {
		return nil, err
	}
	part.UnitCost = cost.TotalCost
	if err := s.partRepo.Update(part); err != nil {
		return nil, fmt.Errorf("update part standard cost: %w", err)
	}
	return cost, nil
}

type RecordVarianceRequest struct {
	Period     string  `json:"period" binding:"required"`
	ActualCost float64 `json:"actual_cost" binding:"required"`
	Quantity   float64 `json:"quantity"`
}

// RecordVariance compares actual cost against the part's standard cost for a
// period. A variance is favorable when actual does not exceed standard.
func (s *CostingService) RecordVariance(partID string, req RecordVarianceRequest) (*entity.CostVariance, error) {
	part, err := s.partRepo.GetByID(partID)
	if err != nil {
		return nil, err
	}
	if req.Quantity <= 0 {
		req.Quantity = 1
	}

	variance := req.ActualCost - part.UnitCost
	var percent float64
	if part.UnitCost != 0 {
		percent = variance / part.UnitCost * 100
	}
	v := &entity.CostVariance{
		ID:              uuid.New().String(),
		PartID:          partID,
		PartNumber:      part.PartNumber,
		Period:          req.Period,
		StandardCost:    part.UnitCost,
		ActualCost:      req.ActualCost,
		Quantity:        req.Quantity,
		Variance:        variance,
		VariancePercent: percent,
		Favorable:       variance <= 0,
	}
	if err := s.costingRepo.CreateVariance(v); err != nil {
		return nil, fmt.Errorf("record variance: %w", err)
	}
	return v, nil
}

func (s *CostingService) VariancesForPart(partID, period string) ([]entity.CostVariance, error) {
	return s.costingRepo.ListVariancesForPart(partID, period)
}

func (s *CostingService) UnfavorableVariances(period string) ([]entity.CostVariance, error) {
	return s.costingRepo.ListUnfavorableVariances(period)
}
