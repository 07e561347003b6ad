package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bitforge/plm/internal/model/entity"
	"github.com/bitforge/plm/internal/repository"
)

type RequirementService struct {
	reqRepo *repository.RequirementRepository
}

func NewRequirementService(reqRepo *repository.RequirementRepository) *RequirementService {
	return &RequirementService{reqRepo: reqRepo}
}

type CreateRequirementRequest struct {
	RequirementNumber  string `json:"requirement_number" binding:"required"`
	ProjectID          string `json:"project_id" binding:"required"`
	Title              string `json:"title" binding:"required"`
	Text               string `json:"text" binding:"required"`
	ReqType            string `json:"req_type"`
	Priority           string `json:"priority"`
	VerificationMethod string `json:"verification_method"`
	Rationale          string `json:"rationale"`
}

func (s *RequirementService) Create(req CreateRequirementRequest, userID string) (*entity.Requirement, error) {
	if req.ReqType == "" {
		req.ReqType = entity.ReqTypeFunctional
	}
	if req.Priority == "" {
		req.Priority = entity.ReqPriorityMustHave
	}
	if req.VerificationMethod == "" {
		req.VerificationMethod = entity.VerifyByTest
	}
	r := &entity.Requirement{
		ID:                 uuid.New().String(),
		RequirementNumber:  req.RequirementNumber,
		ProjectID:          req.ProjectID,
		Title:              req.Title,
		Text:               req.Text,
		ReqType:            req.ReqType,
		Status:             entity.ReqStatusDraft,
		Priority:           req.Priority,
		VerificationMethod: req.VerificationMethod,
		Rationale:          req.Rationale,
		CreatedBy:          userID,
	}
	if err := s.reqRepo.Create(r); err != nil {
		return nil, fmt.Errorf("create requirement: %w", err)
	}
	return r, nil
}

func (s *RequirementService) Get(id string) (*entity.Requirement, error) {
	return s.reqRepo.GetByID(id)
}

func (s *RequirementService) List(params repository.RequirementListParams) ([]entity.Requirement, int64, error) {
	return s.reqRepo.List(params)
}

func (s *RequirementService) UpdateText(id, title, text, rationale string) (*entity.Requirement, error) {
	r, err := s.reqRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if r.Status != entity.ReqStatusDraft {
		return nil, fmt.Errorf("only draft requirements can be edited")
	}
	if title != "" {
		r.Title = title
	}
	if text != "" {
		r.Text = text
	}
	if rationale != "" {
		r.Rationale = rationale
	}
	if err := s.reqRepo.Update(r); err != nil {
		return nil, fmt.Errorf("update requirement: %w", err)
	}
	return r, nil
}

func (s *RequirementService) Approve(id, userID string) (*entity.Requirement, error) {
	r, err := s.reqRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if r.Status != entity.ReqStatusDraft {
		return nil, fmt.Errorf("only draft requirements can be approved")
	}
	now := time.Now()
	r.Status = entity.ReqStatusApproved
	r.ApprovedBy = userID
	r.ApprovedAt = &now
	if err := s.reqRepo.Update(r); err != nil {
		return nil, fmt.Errorf("approve requirement: %w", err)
	}
	return r, nil
}

func (s *RequirementService) Obsolete(id string) (*entity.Requirement, error) {
	r, err := s.reqRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	r.Status = entity.ReqStatusObsolete
	if err := s.reqRepo.Update(r); err != nil {
		return nil, fmt.Errorf("obsolete requirement: %w", err)
	}
	return r, nil
}

type CreateLinkRequest struct {
	TargetType string `json:"target_type" binding:"required"`
	TargetID   string `json:"target_id" binding:"required"`
	LinkType   string `json:"link_type"`
}

func (s *RequirementService) AddLink(requirementID string, req CreateLinkRequest, userID string) (*entity.RequirementLink, error) {
	if _, err := s.reqRepo.GetByID(requirementID); err != nil {
		return nil, err
	}
	switch req.TargetType {
	case entity.LinkTargetPart, entity.LinkTargetBOM, entity.LinkTargetDocument:
	default:
		return nil, fmt.Errorf("unknown link target type %q", req.TargetType)
	}
	if req.LinkType == "" {
		req.LinkType = "satisfies"
	}
	link := &entity.RequirementLink{
		ID:            uuid.New().String(),
		RequirementID: requirementID,
		TargetType:    req.TargetType,
		TargetID:      req.TargetID,
		LinkType:      req.LinkType,
		CreatedBy:     userID,
	}
	if err := s.reqRepo.CreateLink(link); err != nil {
		return nil, fmt.Errorf("create link: %w", err)
	}
	return link, nil
}

func (s *RequirementService) RemoveLink(linkID string) error {
	return s.reqRepo.DeleteLink(linkID)
}

func (s *RequirementService) ListLinks(requirementID string) ([]entity.RequirementLink, error) {
	return s.reqRepo.ListLinks(requirementID)
}

type RecordVerificationRequest struct {
	Method   string `json:"method"`
	Status   string `json:"status" binding:"required"`
	Result   string `json:"result"`
	Evidence string `json:"evidence"`
}

// RecordVerification captures a verification activity. A passing record on an
// approved requirement moves the requirement to verified.
func (s *RequirementService) RecordVerification(requirementID string, req RecordVerificationRequest, userID string) (*entity.VerificationRecord, error) {
	r, err := s.reqRepo.GetByID(requirementID)
	if err != nil {
		return nil, err
	}
	if req.Method == "" {
		req.Method = r.VerificationMethod
	}
	switch req.Status {
	case entity.VerificationNotStarted, entity.VerificationInProgress, entity.VerificationPassed, entity.VerificationFailed:
	default:
		return nil, fmt.Errorf("unknown verification status %q", req.Status)
	}

	record := &entity.VerificationRecord{
		ID:            uuid.New().String(),
		RequirementID: requirementID,
		Method:        req.Method,
		Status:        req.Status,
		Result:        req.Result,
		Evidence:      req.Evidence,
		VerifiedBy:    userID,
	}
	if req.Status == entity.VerificationPassed || req.Status == entity.VerificationFailed {
		now := time.Now()
		record.VerifiedAt = &now
	}
	if err := s.reqRepo.CreateVerification(record); err != nil {
		return nil, fmt.Errorf("record verification: %w", err)
	}

	if req.Status == entity.VerificationPassed && r.Status == entity.ReqStatusApproved {
		r.Status = entity.ReqStatusVerified
		if err := s.reqRepo.Update(r); err != nil {
			return nil, fmt.Errorf("mark requirement verified: %w", err)
		}
	}
	return record, nil
}

func (s *RequirementService) ListVerifications(requirementID string) ([]entity.VerificationRecord, error) {
	return s.reqRepo.ListVerifications(requirementID)
}

// TraceabilityRow is one requirement's coverage summary.
type TraceabilityRow struct {
	RequirementID     string `json:"requirement_id"`
	RequirementNumber string `json:"requirement_number"`
	Title             string `json:"title"`
	Status            string `json:"status"`
	Priority          string `json:"priority"`
	LinkCount         int    `json:"link_count"`
	VerificationState string `json:"verification_state"`
}

// TraceabilityMatrix is the project-level requirements coverage report.
type TraceabilityMatrix struct {
	ProjectID         string            `json:"project_id"`
	Rows              []TraceabilityRow `json:"rows"`
	TotalRequirements int               `json:"total_requirements"`
	Linked            int               `json:"linked"`
	Verified          int               `json:"verified"`
	Orphans           int               `json:"orphans"`
	CoveragePercent   float64           `json:"coverage_percent"`
	VerifiedPercent   float64           `json:"verified_percent"`
}

// Traceability builds the coverage matrix: every non-obsolete requirement,
// its design links, and the outcome of its latest verification.
func (s *RequirementService) Traceability(projectID string) (*TraceabilityMatrix, error) {
	reqs, err := s.reqRepo.ListByProject(projectID)
	if err != nil {
		return nil, err
	}
	links, err := s.reqRepo.ListLinksForProject(projectID)
	if err != nil {
		return nil, err
	}
	verifications, err := s.reqRepo.ListVerificationsForProject(projectID)
	if err != nil {
		return nil, err
	}

	linkCounts := make(map[string]int)
	for _, l := range links {
		linkCounts[l.RequirementID]++
	}
	// Records arrive in creation order, so the last write wins.
	latestVerification := make(map[string]string)
	for _, v := range verifications {
		latestVerification[v.RequirementID] = v.Status
	}

	matrix := &TraceabilityMatrix{ProjectID: projectID}
	for _, r := range reqs {
		if r.Status == entity.ReqStatusObsolete {
			continue
		}
		state := latestVerification[r.ID]
		if state == "" {
			state = entity.VerificationNotStarted
		}
		row := TraceabilityRow{
			RequirementID:     r.ID,
			RequirementNumber: r.RequirementNumber,
			Title:             r.Title,
			Status:            r.Status,
			Priority:          r.Priority,
			LinkCount:         linkCounts[r.ID],
			VerificationState: state,
		}
		matrix.Rows = append(matrix.Rows, row)
		matrix.TotalRequirements++
		if row.LinkCount > 0 {
			matrix.Linked++
		} else {
			matrix.Orphans++
		}
		if row.VerificationState == entity.VerificationPassed {
			matrix.Verified++
		}
	}
	if matrix.TotalRequirements > 0 {
		matrix.CoveragePercent = float64(matrix.Linked) / float64(matrix.TotalRequirements) * 100
		matrix.VerifiedPercent = float64(matrix.Verified) / float64(matrix.TotalRequirements) * 100
	}
	return matrix, nil
}
