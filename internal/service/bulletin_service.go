package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bitforge/plm/internal/model/entity"
	"github.com/bitforge/plm/internal/repository"
)

type BulletinService struct {
	bulletinRepo *repository.BulletinRepository
	partRepo     *repository.PartRepository
}

func NewBulletinService(bulletinRepo *repository.BulletinRepository, partRepo *repository.PartRepository) *BulletinService {
	return &BulletinService{bulletinRepo: bulletinRepo, partRepo: partRepo}
}

type CreateBulletinRequest struct {
	BulletinNumber     string     `json:"bulletin_number" binding:"required"`
	Title              string     `json:"title" binding:"required"`
	BulletinType       string     `json:"bulletin_type" binding:"required"`
	SafetyIssue        bool       `json:"safety_issue"`
	AffectedPartID     string     `json:"affected_part_id"`
	Summary            string     `json:"summary"`
	Instructions       string     `json:"instructions"`
	ComplianceDeadline *time.Time `json:"compliance_deadline"`
	EstimatedLaborHrs  float64    `json:"estimated_labor_hours"`
}

func (s *BulletinService) Create(req CreateBulletinRequest, userID string) (*entity.ServiceBulletin, error) {
	switch req.BulletinType {
	case entity.BulletinAlert, entity.BulletinMandatory, entity.BulletinOptional, entity.BulletinInfo:
	default:
		return nil, fmt.Errorf("unknown bulletin type %q", req.BulletinType)
	}
	if req.AffectedPartID != "" {
		if _, err := s.partRepo.GetByID(req.AffectedPartID); err != nil {
			return nil, fmt.Errorf("affected part not found: %w", err)
		}
	}
	// Safety issues always carry a compliance deadline.
	if req.SafetyIssue && req.ComplianceDeadline == nil {
		deadline := time.Now().AddDate(0, 0, 30)
		req.ComplianceDeadline = &deadline
	}

	b := &entity.ServiceBulletin{
		ID:                 uuid.New().String(),
		BulletinNumber:     req.BulletinNumber,
		Title:              req.Title,
		BulletinType:       req.BulletinType,
		Status:             entity.BulletinStatusDraft,
		SafetyIssue:        req.SafetyIssue,
		AffectedPartID:     req.AffectedPartID,
		Summary:            req.Summary,
		Instructions:       req.Instructions,
		ComplianceDeadline: req.ComplianceDeadline,
		EstimatedLaborHrs:  req.EstimatedLaborHrs,
		CreatedBy:          userID,
	}
	if err := s.bulletinRepo.Create(b); err != nil {
		return nil, fmt.Errorf("create bulletin: %w", err)
	}
	return b, nil
}

func (s *BulletinService) Get(id string) (*entity.ServiceBulletin, error) {
	return s.bulletinRepo.GetByID(id)
}

func (s *BulletinService) List(params repository.BulletinListParams) ([]entity.ServiceBulletin, int64, error) {
	return s.bulletinRepo.List(params)
}

func (s *BulletinService) Approve(id, userID string) (*entity.ServiceBulletin, error) {
	b, err := s.bulletinRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if b.Status != entity.BulletinStatusDraft {
		return nil, fmt.Errorf("only draft bulletins can be approved")
	}
	now := time.Now()
	b.Status = entity.BulletinStatusApproved
	b.ApprovedBy = userID
	b.ApprovedAt = &now
	if err := s.bulletinRepo.Update(b); err != nil {
		return nil, fmt.Errorf("approve bulletin: %w", err)
	}
	return b, nil
}

// Release issues an approved bulletin and opens per-unit compliance tracking
// for the given fielded unit serials.
func (s *BulletinService) Release(id string, unitSerials []string) (*entity.ServiceBulletin, error) {
	b, err := s.bulletinRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if b.Status != entity.BulletinStatusApproved {
		return nil, fmt.Errorf("only approved bulletins can be released")
	}
	now := time.Now()
	b.Status = entity.BulletinStatusReleased
	b.IssuedAt = &now
	if err := s.bulletinRepo.Update(b); err != nil {
		return nil, fmt.Errorf("release bulletin: %w", err)
	}

	for _, serial := range unitSerials {
		record := &entity.BulletinCompliance{
			ID:         uuid.New().String(),
			BulletinID: b.ID,
			UnitSerial: serial,
			Status:     entity.BulletinCompliancePending,
		}
		if err := s.bulletinRepo.CreateCompliance(record); err != nil {
			return nil, fmt.Errorf("open compliance for unit %s: %w", serial, err)
		}
	}
	return b, nil
}

func (s *BulletinService) RecordCompliance(recordID, notes, userID string) (*entity.BulletinCompliance, error) {
	record, err := s.bulletinRepo.GetCompliance(recordID)
	if err != nil {
		return nil, err
	}
	if record.Status == entity.BulletinComplianceComplied {
		return nil, fmt.Errorf("unit %s has already complied", record.UnitSerial)
	}
	now := time.Now()
	record.Status = entity.BulletinComplianceComplied
	record.CompliedBy = userID
	record.CompliedAt = &now
	record.Notes = notes
	if err := s.bulletinRepo.UpdateCompliance(record); err != nil {
		return nil, fmt.Errorf("record compliance: %w", err)
	}
	return record, nil
}

// WaiveCompliance excuses a unit from a bulletin. Safety bulletins cannot be
// waived.
func (s *BulletinService) WaiveCompliance(recordID, reason string) (*entity.BulletinCompliance, error) {
	record, err := s.bulletinRepo.GetCompliance(recordID)
	if err != nil {
		return nil, err
	}
	b, err := s.bulletinRepo.GetByID(record.BulletinID)
	if err != nil {
		return nil, err
	}
	if b.SafetyIssue {
		return nil, fmt.Errorf("safety bulletin compliance cannot be waived")
	}
	if reason == "" {
		return nil, fmt.Errorf("waiver requires a reason")
	}
	record.Status = entity.BulletinComplianceWaived
	record.WaivedReason = reason
	if err := s.bulletinRepo.UpdateCompliance(record); err != nil {
		return nil, fmt.Errorf("waive compliance: %w", err)
	}
	return record, nil
}

func (s *BulletinService) ComplianceForBulletin(bulletinID string) ([]entity.BulletinCompliance, error) {
	return s.bulletinRepo.ListComplianceForBulletin(bulletinID)
}

func (s *BulletinService) OverdueCompliance() ([]entity.BulletinCompliance, error) {
	return s.bulletinRepo.ListOverdueCompliance()
}

// BulletinStats is the fleet-wide service bulletin dashboard.
type BulletinStats struct {
	TotalBulletins    int   `json:"total_bulletins"`
	Released          int   `json:"released"`
	SafetyIssues      int   `json:"safety_issues"`
	PendingCompliance int64 `json:"pending_compliance"`
	OverdueCompliance int   `json:"overdue_compliance"`
}

func (s *BulletinService) Stats() (*BulletinStats, error) {
	bulletins, err := s.bulletinRepo.ListAll()
	if err != nil {
		return nil, err
	}
	pending, err := s.bulletinRepo.CountPendingCompliance()
	if err != nil {
		return nil, err
	}
	overdue, err := s.bulletinRepo.ListOverdueCompliance()
	if err != nil {
		return nil, err
	}

	stats := &BulletinStats{
		TotalBulletins:    len(bulletins),
		PendingCompliance: pending,
		OverdueCompliance: len(overdue),
	}
	for _, b := range bulletins {
		if b.Status == entity.BulletinStatusReleased {
			stats.Released++
		}
		if b.SafetyIssue {
			stats.SafetyIssues++
		}
	}
	return stats, nil
}
