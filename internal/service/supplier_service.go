package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bitforge/plm/internal/model/entity"
	"github.com/bitforge/plm/internal/repository"
)

type SupplierService struct {
	supplierRepo *repository.SupplierRepository
	partRepo     *repository.PartRepository
}

func NewSupplierService(supplierRepo *repository.SupplierRepository, partRepo *repository.PartRepository) *SupplierService {
	return &SupplierService{supplierRepo: supplierRepo, partRepo: partRepo}
}

type CreateSupplierRequest struct {
	Code         string `json:"code" binding:"required"`
	Name         string `json:"name" binding:"required"`
	Tier         string `json:"tier"`
	ContactName  string `json:"contact_name"`
	ContactEmail string `json:"contact_email"`
	Phone        string `json:"phone"`
	Country      string `json:"country"`
}

func (s *SupplierService) Create(req CreateSupplierRequest, userID string) (*entity.Supplier, error) {
	if req.Tier == "" {
		req.Tier = entity.TierApproved
	}
	supplier := &entity.Supplier{
		ID:             uuid.New().String(),
		Code:           req.Code,
		Name:           req.Name,
		ApprovalStatus: entity.SupplierPending,
		Tier:           req.Tier,
		ContactName:    req.ContactName,
		ContactEmail:   req.ContactEmail,
		Phone:          req.Phone,
		Country:        req.Country,
		CreatedBy:      userID,
	}
	if err := s.supplierRepo.Create(supplier); err != nil {
		return nil, fmt.Errorf("create supplier: %w", err)
	}
	return supplier, nil
}

func (s *SupplierService) Get(id string) (*entity.Supplier, error) {
	return s.supplierRepo.GetByID(id)
}

func (s *SupplierService) List(params repository.SupplierListParams) ([]entity.Supplier, int64, error) {
	return s.supplierRepo.List(params)
}

func (s *SupplierService) Approve(id, userID string, conditional bool) (*entity.Supplier, error) {
	supplier, err := s.supplierRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if supplier.ApprovalStatus == entity.SupplierApproved {
		return nil, fmt.Errorf("supplier %s is already approved", supplier.Code)
	}
	now := time.Now()
	supplier.ApprovalStatus = entity.SupplierApproved
	if conditional {
		supplier.ApprovalStatus = entity.SupplierConditional
	}
	supplier.ApprovedBy = userID
	supplier.ApprovedAt = &now
	supplier.SuspendReason = ""
	if err := s.supplierRepo.Update(supplier); err != nil {
		return nil, fmt.Errorf("approve supplier: %w", err)
	}
	return supplier, nil
}

func (s *SupplierService) Suspend(id, reason string) (*entity.Supplier, error) {
	supplier, err := s.supplierRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if reason == "" {
		return nil, fmt.Errorf("suspension requires a reason")
	}
	supplier.ApprovalStatus = entity.SupplierSuspended
	supplier.SuspendReason = reason
	if err := s.supplierRepo.Update(supplier); err != nil {
		return nil, fmt.Errorf("suspend supplier: %w", err)
	}
	return supplier, nil
}

func (s *SupplierService) SetRating(id string, rating float64) (*entity.Supplier, error) {
	supplier, err := s.supplierRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rating < 0 || rating > 100 {
		return nil, fmt.Errorf("rating must be between 0 and 100")
	}
	supplier.QualityRating = rating
	if err := s.supplierRepo.Update(supplier); err != nil {
		return nil, fmt.Errorf("update supplier: %w", err)
	}
	return supplier, nil
}

type AddVendorRequest struct {
	SupplierID         string  `json:"supplier_id" binding:"required"`
	SupplierPartNumber string  `json:"supplier_part_number"`
	UnitPrice          float64 `json:"unit_price"`
	LeadTimeDays       int     `json:"lead_time_days"`
	MinOrderQty        float64 `json:"min_order_qty"`
	Preferred          bool    `json:"preferred"`
}

// AddVendor puts a supplier on a part's approved vendor list. Suspended
// suppliers cannot be added.
func (s *SupplierService) AddVendor(partID string, req AddVendorRequest, userID string) (*entity.ApprovedVendor, error) {
	if _, err := s.partRepo.GetByID(partID); err != nil {
		return nil, fmt.Errorf("part not found: %w", err)
	}
	supplier, err := s.supplierRepo.GetByID(req.SupplierID)
	if err != nil {
		return nil, fmt.Errorf("supplier not found: %w", err)
	}
	if supplier.ApprovalStatus == entity.SupplierSuspended {
		return nil, fmt.Errorf("supplier %s is suspended", supplier.Code)
	}

	av := &entity.ApprovedVendor{
		ID:                  uuid.New().String(),
		PartID:              partID,
		SupplierID:          req.SupplierID,
		Status:              entity.SupplierPending,
		QualificationStatus: entity.QualNotStarted,
		SupplierPartNumber:  req.SupplierPartNumber,
		UnitPrice:           req.UnitPrice,
		LeadTimeDays:        req.LeadTimeDays,
		MinOrderQty:         req.MinOrderQty,
		Preferred:           req.Preferred,
		CreatedBy:           userID,
	}
	if err := s.supplierRepo.CreateApprovedVendor(av); err != nil {
		return nil, fmt.Errorf("add approved vendor: %w", err)
	}
	return av, nil
}

func (s *SupplierService) SetQualification(avlID, status string) (*entity.ApprovedVendor, error) {
	av, err := s.supplierRepo.GetApprovedVendor(avlID)
	if err != nil {
		return nil, err
	}
	switch status {
	case entity.QualNotStarted, entity.QualInProgress, entity.QualQualified, entity.QualFailed:
	default:
		return nil, fmt.Errorf("unknown qualification status %q", status)
	}
	av.QualificationStatus = status
	if status == entity.QualQualified {
		av.Status = entity.SupplierApproved
	}
	if status == entity.QualFailed {
		av.Status = entity.SupplierSuspended
		av.Preferred = false
	}
	if err := s.supplierRepo.UpdateApprovedVendor(av); err != nil {
		return nil, fmt.Errorf("update approved vendor: %w", err)
	}
	return av, nil
}

func (s *SupplierService) RemoveVendor(avlID string) error {
	return s.supplierRepo.DeleteApprovedVendor(avlID)
}

func (s *SupplierService) VendorsForPart(partID string) ([]entity.ApprovedVendor, error) {
	return s.supplierRepo.ListAVLForPart(partID)
}
