package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bitforge/plm/internal/model/entity"
	"github.com/bitforge/plm/internal/repository"
)

type PartService struct {
	partRepo *repository.PartRepository
}

func NewPartService(partRepo *repository.PartRepository) *PartService {
	return &PartService{partRepo: partRepo}
}

type CreatePartRequest struct {
	PartNumber    string  `json:"part_number" binding:"required"`
	Name          string  `json:"name" binding:"required"`
	Description   string  `json:"description"`
	PartType      string  `json:"part_type"`
	UnitOfMeasure string  `json:"unit_of_measure"`
	UnitCost      float64 `json:"unit_cost"`
	LeadTimeDays  int     `json:"lead_time_days"`
	MinOrderQty   float64 `json:"min_order_qty"`
	OrderMultiple float64 `json:"order_multiple"`
	SafetyStock   float64 `json:"safety_stock"`
	MakeOrBuy     string  `json:"make_or_buy"`
}

func (s *PartService) Create(req CreatePartRequest, userID string) (*entity.Part, error) {
	if req.PartType == "" {
		req.PartType = entity.PartTypeComponent
	}
	if req.UnitOfMeasure == "" {
		req.UnitOfMeasure = entity.UOMEach
	}
	if req.MakeOrBuy == "" {
		req.MakeOrBuy = "buy"
	}

	part := &entity.Part{
		ID:            uuid.New().String(),
		PartNumber:    req.PartNumber,
		Name:          req.Name,
		Description:   req.Description,
		PartType:      req.PartType,
		Status:        entity.PartStatusDraft,
		Revision:      "A",
		UnitOfMeasure: req.UnitOfMeasure,
		UnitCost:      req.UnitCost,
		LeadTimeDays:  req.LeadTimeDays,
		MinOrderQty:   req.MinOrderQty,
		OrderMultiple: req.OrderMultiple,
		SafetyStock:   req.SafetyStock,
		MakeOrBuy:     req.MakeOrBuy,
		CreatedBy:     userID,
	}
	if err := s.partRepo.Create(part); err != nil {
		return nil, fmt.Errorf("create part: %w", err)
	}
	return part, nil
}

func (s *PartService) Get(id string) (*entity.Part, error) {
	return s.partRepo.GetByID(id)
}

func (s *PartService) List(params repository.PartListParams) ([]entity.Part, int64, error) {
	return s.partRepo.List(params)
}

type UpdatePartRequest struct {
	Name          *string  `json:"name"`
	Description   *string  `json:"description"`
	UnitCost      *float64 `json:"unit_cost"`
	LeadTimeDays  *int     `json:"lead_time_days"`
	MinOrderQty   *float64 `json:"min_order_qty"`
	OrderMultiple *float64 `json:"order_multiple"`
	SafetyStock   *float64 `json:"safety_stock"`
	MakeOrBuy     *string  `json:"make_or_buy"`
}

func (s *PartService) Update(id string, req UpdatePartRequest) (*entity.Part, error) {
	part, err := s.partRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if part.Status == entity.PartStatusObsolete {
		return nil, fmt.Errorf("part %s is obsolete and cannot be updated", part.PartNumber)
	}

	if req.Name != nil {
		part.Name = *req.Name
	}
	if req.Description != nil {
		part.Description = *req.Description
	}
	if req.UnitCost != nil {
		part.UnitCost = *req.UnitCost
	}
	if req.LeadTimeDays != nil {
		part.LeadTimeDays = *req.LeadTimeDays
	}
	if req.MinOrderQty != nil {
		part.MinOrderQty = *req.MinOrderQty
	}
	if req.OrderMultiple != nil {
		part.OrderMultiple = *req.OrderMultiple
	}
	if req.SafetyStock != nil {
		part.SafetyStock = *req.SafetyStock
	}
	if req.MakeOrBuy != nil {
		part.MakeOrBuy = *req.MakeOrBuy
	}

	if err := s.partRepo.Update(part); err != nil {
		return nil, fmt.Errorf("update part: %w", err)
	}
	return part, nil
}

// Release moves a part from draft or in_review to released and snapshots the
// revision.
func (s *PartService) Release(id, userID string) (*entity.Part, error) {
	part, err := s.partRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if part.Status == entity.PartStatusReleased {
		return nil, fmt.Errorf("part %s is already released", part.PartNumber)
	}
	if part.Status == entity.PartStatusObsolete {
		return nil, fmt.Errorf("part %s is obsolete", part.PartNumber)
	}

	now := time.Now()
	part.Status = entity.PartStatusReleased
	part.ReleasedBy = userID
	part.ReleasedAt = &now
	if err := s.partRepo.Update(part); err != nil {
		return nil, fmt.Errorf("release part: %w", err)
	}

	rev := &entity.PartRevision{
		ID:          uuid.New().String(),
		PartID:      part.ID,
		Revision:    part.Revision,
		Status:      entity.PartStatusReleased,
		Description: part.Description,
		CreatedBy:   userID,
	}
	if err := s.partRepo.CreateRevision(rev); err != nil {
		return nil, fmt.Errorf("snapshot revision: %w", err)
	}
	return part, nil
}

// Revise cuts the next revision letter and returns the part to draft.
func (s *PartService) Revise(id, changeNote, userID string) (*entity.Part, error) {
	part, err := s.partRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if part.Status != entity.PartStatusReleased {
		return nil, fmt.Errorf("only released parts can be revised")
	}

	part.Revision = nextRevision(part.Revision)
	part.Status = entity.PartStatusDraft
	part.ReleasedBy = ""
	part.ReleasedAt = nil
	if err := s.partRepo.Update(part); err != nil {
		return nil, fmt.Errorf("revise part: %w", err)
	}

	rev := &entity.PartRevision{
		ID:         uuid.New().String(),
		PartID:     part.ID,
		Revision:   part.Revision,
		Status:     entity.PartStatusDraft,
		ChangeNote: changeNote,
		CreatedBy:  userID,
	}
	if err := s.partRepo.CreateRevision(rev); err != nil {
		return nil, fmt.Errorf("record revision: %w", err)
	}
	return part, nil
}

func (s *PartService) Obsolete(id string) (*entity.Part, error) {
	part, err := s.partRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	part.Status = entity.PartStatusObsolete
	if err := s.partRepo.Update(part); err != nil {
		return nil, fmt.Errorf("obsolete part: %w", err)
	}
	return part, nil
}

func (s *PartService) ListRevisions(partID string) ([]entity.PartRevision, error) {
	return s.partRepo.ListRevisions(partID)
}

func (s *PartService) WhereUsed(partID string) ([]entity.BOM, error) {
	return s.partRepo.WhereUsed(partID)
}

// nextRevision advances A..Z then AA, AB, ...
func nextRevision(rev string) string {
	if rev == "" {
		return "A"
	}
	b := []byte(rev)
	for i := len(b) - 1; i >= 0; i-- {
		if b[i] < 'Z' {
			b[i]++
			return string(b)
		}
		b[i] = 'A'
	}
	return "A" + string(b)
}
