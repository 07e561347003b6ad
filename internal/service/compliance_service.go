package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bitforge/plm/internal/model/entity"
	"github.com/bitforge/plm/internal/repository"
)

type ComplianceService struct {
	complianceRepo *repository.ComplianceRepository
	partRepo       *repository.PartRepository
}

func NewComplianceService(complianceRepo *repository.ComplianceRepository, partRepo *repository.PartRepository) *ComplianceService {
	return &ComplianceService{complianceRepo: complianceRepo, partRepo: partRepo}
}

type CreateRegulationRequest struct {
	Code          string     `json:"code" binding:"required"`
	Name          string     `json:"name" binding:"required"`
	RegType       string     `json:"reg_type"`
	Jurisdiction  string     `json:"jurisdiction"`
	Description   string     `json:"description"`
	EffectiveDate *time.Time `json:"effective_date"`
}

func (s *ComplianceService) CreateRegulation(req CreateRegulationRequest) (*entity.Regulation, error) {
	if req.RegType == "" {
		req.RegType = entity.RegTypeOther
	}
	reg := &entity.Regulation{
		ID:            uuid.New().String(),
		Code:          req.Code,
		Name:          req.Name,
		RegType:       req.RegType,
		Jurisdiction:  req.Jurisdiction,
		Description:   req.Description,
		EffectiveDate: req.EffectiveDate,
	}
	if err := s.complianceRepo.CreateRegulation(reg); err != nil {
		return nil, fmt.Errorf("create regulation: %w", err)
	}
	return reg, nil
}

func (s *ComplianceService) ListRegulations() ([]entity.Regulation, error) {
	return s.complianceRepo.ListRegulations()
}

type DeclareRequest struct {
	RegulationID string     `json:"regulation_id" binding:"required"`
	Status       string     `json:"status" binding:"required"`
	ExemptionRef string     `json:"exemption_ref"`
	Notes        string     `json:"notes"`
	ExpiresAt    *time.Time `json:"expires_at"`
}

// Declare records a part's compliance status against a regulation. An exempt
// declaration must carry an exemption reference.
func (s *ComplianceService) Declare(partID string, req DeclareRequest, userID string) (*entity.ComplianceDeclaration, error) {
	if _, err := s.partRepo.GetByID(partID); err != nil {
		return nil, fmt.Errorf("part not found: %w", err)
	}
	if _, err := s.complianceRepo.GetRegulation(req.RegulationID); err != nil {
		return nil, fmt.Errorf("regulation not found: %w", err)
	}
	switch req.Status {
	case entity.ComplianceCompliant, entity.ComplianceNonCompliant, entity.ComplianceExempt, entity.ComplianceUnknown:
	default:
		return nil, fmt.Errorf("unknown compliance status %q", req.Status)
	}
	if req.Status == entity.ComplianceExempt && req.ExemptionRef == "" {
		return nil, fmt.Errorf("exempt declarations require an exemption reference")
	}

	now := time.Now()
	decl := &entity.ComplianceDeclaration{
		ID:           uuid.New().String(),
		PartID:       partID,
		RegulationID: req.RegulationID,
		Status:       req.Status,
		ExemptionRef: req.ExemptionRef,
		Notes:        req.Notes,
		DeclaredBy:   userID,
		DeclaredAt:   &now,
		ExpiresAt:    req.ExpiresAt,
	}
	if err := s.complianceRepo.CreateDeclaration(decl); err != nil {
		return nil, fmt.Errorf("create declaration: %w", err)
	}
	return decl, nil
}

func (s *ComplianceService) UpdateDeclaration(id, status, notes string, userID string) (*entity.ComplianceDeclaration, error) {
	decl, err := s.complianceRepo.GetDeclaration(id)
	if err != nil {
		return nil, err
	}
	switch status {
	case entity.ComplianceCompliant, entity.ComplianceNonCompliant, entity.ComplianceExempt, entity.ComplianceUnknown:
	default:
		return nil, fmt.Errorf("unknown compliance status %q", status)
	}
	now := time.Now()
	decl.Status = status
	decl.DeclaredBy = userID
	decl.DeclaredAt = &now
	if notes != "" {
		decl.Notes = notes
	}
	if err := s.complianceRepo.UpdateDeclaration(decl); err != nil {
		return nil, fmt.Errorf("update declaration: %w", err)
	}
	return decl, nil
}

func (s *ComplianceService) DeclarationsForPart(partID string) ([]entity.ComplianceDeclaration, error) {
	return s.complianceRepo.ListDeclarationsForPart(partID)
}

// PartComplianceSummary rolls a part's declarations into one verdict. A part
// is compliant only when every declaration is compliant or exempt.
type PartComplianceSummary struct {
	PartID         string           `json:"part_id"`
	Overall        string           `json:"overall"`
	CountsByStatus map[string]int64 `json:"counts_by_status"`
}

func (s *ComplianceService) PartSummary(partID string) (*PartComplianceSummary, error) {
	counts, err := s.complianceRepo.CountDeclarationsByStatus(partID)
	if err != nil {
		return nil, err
	}
	summary := &PartComplianceSummary{
		PartID:         partID,
		CountsByStatus: counts,
	}
	switch {
	case len(counts) == 0:
		summary.Overall = entity.ComplianceUnknown
	case counts[entity.ComplianceNonCompliant] > 0:
		summary.Overall = entity.ComplianceNonCompliant
	case counts[entity.ComplianceUnknown] > 0:
		summary.Overall = entity.ComplianceUnknown
	default:
		summary.Overall = entity.ComplianceCompliant
	}
	return summary, nil
}

// ExpiringDeclarations returns declarations lapsing within the given number
// of days (default 90).
func (s *ComplianceService) ExpiringDeclarations(withinDays int) ([]entity.ComplianceDeclaration, error) {
	if withinDays <= 0 {
		withinDays = 90
	}
	return s.complianceRepo.ListExpiring(time.Duration(withinDays) * 24 * time.Hour)
}
