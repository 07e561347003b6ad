package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"github.com/bitforge/plm/internal/model/entity"
	"github.com/bitforge/plm/internal/repository"
)

// MaxExplosionDepth bounds recursive BOM traversal so a cyclic structure
// cannot hang a request.
const MaxExplosionDepth = 20

type BOMService struct {
	bomRepo  *repository.BOMRepository
	partRepo *repository.PartRepository
}

func NewBOMService(bomRepo *repository.BOMRepository, partRepo *repository.PartRepository) *BOMService {
	return &BOMService{bomRepo: bomRepo, partRepo: partRepo}
}

type CreateBOMRequest struct {
	BOMNumber    string `json:"bom_number" binding:"required"`
	ParentPartID string `json:"parent_part_id" binding:"required"`
	ProjectID    string `json:"project_id"`
	BOMType      string `json:"bom_type"`
	Description  string `json:"description"`
}

func (s *BOMService) Create(req CreateBOMRequest, userID string) (*entity.BOM, error) {
	if _, err := s.partRepo.GetByID(req.ParentPartID); err != nil {
		return nil, fmt.Errorf("parent part not found: %w", err)
	}
	if req.BOMType == "" {
		req.BOMType = entity.BOMTypeEngineering
	}
	bom := &entity.BOM{
		ID:           uuid.New().String(),
		BOMNumber:    req.BOMNumber,
		ParentPartID: req.ParentPartID,
		ProjectID:    req.ProjectID,
		BOMType:      req.BOMType,
		Status:       entity.BOMStatusDraft,
		Revision:     "A",
		Description:  req.Description,
		CreatedBy:    userID,
	}
	if err := s.bomRepo.Create(bom); err != nil {
		return nil, fmt.Errorf("create bom: %w", err)
	}
	return bom, nil
}

func (s *BOMService) Get(id string) (*entity.BOM, error) {
	return s.bomRepo.GetByID(id)
}

func (s *BOMService) List(params repository.BOMListParams) ([]entity.BOM, int64, error) {
	return s.bomRepo.List(params)
}

type AddBOMItemRequest struct {
	PartID              string  `json:"part_id" binding:"required"`
	FindNumber          int     `json:"find_number"`
	Quantity            float64 `json:"quantity" binding:"required"`
	UnitOfMeasure       string  `json:"unit_of_measure"`
	ReferenceDesignator string  `json:"reference_designator"`
	Notes               string  `json:"notes"`
}

func (s *BOMService) AddItem(bomID string, req AddBOMItemRequest) (*entity.BOMItem, error) {
	bom, err := s.bomRepo.GetByID(bomID)
	if err != nil {
		return nil, err
	}
	if bom.Status != entity.BOMStatusDraft {
		return nil, fmt.Errorf("cannot modify a %s BOM", bom.Status)
	}
	if req.PartID == bom.ParentPartID {
		return nil, fmt.Errorf("a BOM cannot contain its own parent part")
	}
	part, err := s.partRepo.GetByID(req.PartID)
	if err != nil {
		return nil, fmt.Errorf("component part not found: %w", err)
	}
	if req.Quantity <= 0 {
		return nil, fmt.Errorf("quantity must be positive")
	}
	if req.UnitOfMeasure == "" {
		req.UnitOfMeasure = part.UnitOfMeasure
	}

	item := &entity.BOMItem{
		ID:                  uuid.New().String(),
		BOMID:               bomID,
		PartID:              req.PartID,
		FindNumber:          req.FindNumber,
		Quantity:            req.Quantity,
		UnitOfMeasure:       req.UnitOfMeasure,
		ReferenceDesignator: req.ReferenceDesignator,
		Notes:               req.Notes,
	}
	if err := s.bomRepo.AddItem(item); err != nil {
		return nil, fmt.Errorf("add bom item: %w", err)
	}
	return item, nil
}

func (s *BOMService) UpdateItem(itemID string, quantity float64, refDes, notes string) (*entity.BOMItem, error) {
	item, err := s.bomRepo.GetItem(itemID)
	if err != nil {
		return nil, err
	}
	bom, err := s.bomRepo.GetByID(item.BOMID)
	if err != nil {
		return nil, err
	}
	if bom.Status != entity.BOMStatusDraft {
		return nil, fmt.Errorf("cannot modify a %s BOM", bom.Status)
	}
	if quantity > 0 {
		item.Quantity = quantity
	}
	if refDes != "" {
		item.ReferenceDesignator = refDes
	}
	if notes != "" {
		item.Notes = notes
	}
	if err := s.bomRepo.UpdateItem(item); err != nil {
		return nil, fmt.Errorf("update bom item: %w", err)
	}
	return item, nil
}

func (s *BOMService) RemoveItem(itemID string) error {
	item, err := s.bomRepo.GetItem(itemID)
	if err != nil {
		return err
	}
	bom, err := s.bomRepo.GetByID(item.BOMID)
	if err != nil {
		return err
	}
	if bom.Status != entity.BOMStatusDraft {
		return fmt.Errorf("cannot modify a %s BOM", bom.Status)
	}
	return s.bomRepo.DeleteItem(itemID)
}

// Release freezes a BOM. All component parts must themselves be released.
func (s *BOMService) Release(id, userID string) (*entity.BOM, error) {
	bom, err := s.bomRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if bom.Status != entity.BOMStatusDraft {
		return nil, fmt.Errorf("only draft BOMs can be released")
	}
	items, err := s.bomRepo.ListItems(id)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("cannot release an empty BOM")
	}
	for _, item := range items {
		if item.Part != nil && item.Part.Status != entity.PartStatusReleased {
			return nil, fmt.Errorf("component %s is not released", item.Part.PartNumber)
		}
	}

	now := time.Now()
	bom.Status = entity.BOMStatusReleased
	bom.ReleasedBy = userID
	bom.ReleasedAt = &now
	bom.EffectiveFrom = &now
	if err := s.bomRepo.Update(bom); err != nil {
		return nil, fmt.Errorf("release bom: %w", err)
	}
	return bom, nil
}

// ExplodedLine is one row of a multi-level BOM explosion.
type ExplodedLine struct {
	Level         int     `json:"level"`
	PartID        string  `json:"part_id"`
	PartNumber    string  `json:"part_number"`
	PartName      string  `json:"part_name"`
	Path          string  `json:"path"`
	Quantity      float64 `json:"quantity"`
	ExtendedQty   float64 `json:"extended_qty"`
	UnitOfMeasure string  `json:"unit_of_measure"`
	UnitCost      float64 `json:"unit_cost"`
	ExtendedCost  float64 `json:"extended_cost"`
	LeafNode      bool    `json:"leaf_node"`
}

// Explode walks a BOM down through sub-assemblies, multiplying quantities at
// each level. levels <= 0 means unlimited (bounded by MaxExplosionDepth).
func (s *BOMService) Explode(bomID string, levels int) ([]ExplodedLine, error) {
	bom, err := s.bomRepo.GetByID(bomID)
	if err != nil {
		return nil, err
	}
	if levels <= 0 || levels > MaxExplosionDepth {
		levels = MaxExplosionDepth
	}
	var lines []ExplodedLine
	visited := map[string]bool{bom.ParentPartID: true}
	if err := s.explode(bom.ID, 1, levels, 1.0, "", visited, &lines); err != nil {
		return nil, err
	}
	return lines, nil
}

func (s *BOMService) explode(bomID string, level, maxLevel int, parentQty float64, parentPath string, visited map[string]bool, out *[]ExplodedLine) error {
	items, err := s.bomRepo.ListItems(bomID)
	if err != nil {
		return err
	}
	for _, item := range items {
		if visited[item.PartID] {
			return fmt.Errorf("cyclic BOM structure at part %s", item.PartID)
		}
		line := ExplodedLine{
			Level:         level,
			PartID:        item.PartID,
			Quantity:      item.Quantity,
			ExtendedQty:   item.Quantity * parentQty,
			UnitOfMeasure: item.UnitOfMeasure,
			LeafNode:      true,
		}
		if item.Part != nil {
			line.PartNumber = item.Part.PartNumber
			line.PartName = item.Part.Name
			line.UnitCost = item.Part.UnitCost
			line.ExtendedCost = line.ExtendedQty * item.Part.UnitCost
		}
		line.Path = line.PartNumber
		if parentPath != "" {
			line.Path = parentPath + " > " + line.PartNumber
		}

		idx := len(*out)
		*out = append(*out, line)

		if level < maxLevel {
			child, err := s.bomRepo.GetReleasedForPart(item.PartID)
			if err == nil {
				(*out)[idx].LeafNode = false
				visited[item.PartID] = true
				err = s.explode(child.ID, level+1, maxLevel, line.ExtendedQty, line.Path, visited, out)
				delete(visited, item.PartID)
				if err != nil {
					return err
				}
			} else if err != gorm.ErrRecordNotFound {
				return err
			}
		}
	}
	return nil
}

// LowLevelCodes assigns each part in a BOM structure its deepest level of
// use, counting the top part as level 0. MRP nets parts in this order.
func (s *BOMService) LowLevelCodes(bomID string) (map[string]int, error) {
	lines, err := s.Explode(bomID, 0)
	if err != nil {
		return nil, err
	}
	codes := make(map[string]int, len(lines))
	for _, line := range lines {
		if line.Level > codes[line.PartID] {
			codes[line.PartID] = line.Level
		}
	}
	return codes, nil
}

// CostRollup sums extended component cost across the full explosion of a BOM.
type CostRollup struct {
	BOMID      string             `json:"bom_id"`
	TotalCost  float64            `json:"total_cost"`
	LineCount  int                `json:"line_count"`
	ByPart     map[string]float64 `json:"by_part"`
	ComputedAt time.Time          `json:"computed_at"`
}

func (s *BOMService) RollupCost(bomID string) (*CostRollup, error) {
	lines, err := s.Explode(bomID, 0)
	if err != nil {
		return nil, err
	}
	rollup := &CostRollup{
		BOMID:      bomID,
		ByPart:     make(map[string]float64),
		ComputedAt: time.Now(),
	}
	for _, line := range lines {
		if !line.LeafNode {
			continue
		}
		rollup.TotalCost += line.ExtendedCost
		rollup.ByPart[line.PartNumber] += line.ExtendedCost
		rollup.LineCount++
	}
	return rollup, nil
}

// ExportExcel renders a multi-level explosion as an xlsx workbook.
func (s *BOMService) ExportExcel(bomID string) (*excelize.File, error) {
	bom, err := s.bomRepo.GetByID(bomID)
	if err != nil {
		return nil, err
	}
	lines, err := s.Explode(bomID, 0)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	sheet := "BOM"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Level", "Part Number", "Name", "Path", "Qty", "Extended Qty", "UOM", "Unit Cost", "Extended Cost"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}
	for row, line := range lines {
		values := []interface{}{
			line.Level, line.PartNumber, line.PartName, line.Path,
			line.Quantity, line.ExtendedQty, line.UnitOfMeasure,
			line.UnitCost, line.ExtendedCost,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}
	f.SetCellValue(sheet, "K1", "BOM Number")
	f.SetCellValue(sheet, "L1", bom.BOMNumber)
	f.SetCellValue(sheet, "K2", "Exported")
	f.SetCellValue(sheet, "L2", time.Now().Format("2006-01-02 15:04"))
	return f, nil
}
