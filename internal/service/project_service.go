package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bitforge/plm/internal/model/entity"
	"github.com/bitforge/plm/internal/repository"
)

type ProjectService struct {
	projectRepo *repository.ProjectRepository
	partRepo    *repository.PartRepository
}

func NewProjectService(projectRepo *repository.ProjectRepository, partRepo *repository.PartRepository) *ProjectService {
	return &ProjectService{projectRepo: projectRepo, partRepo: partRepo}
}

type CreateProjectRequest struct {
	Code        string     `json:"code" binding:"required"`
	Name        string     `json:"name" binding:"required"`
	Description string     `json:"description"`
	TopPartID   string     `json:"top_part_id"`
	ManagerID   string     `json:"manager_id"`
	StartDate   *time.Time `json:"start_date"`
	TargetDate  *time.Time `json:"target_date"`
	Budget      float64    `json:"budget"`
}

func (s *ProjectService) Create(req CreateProjectRequest, userID string) (*entity.Project, error) {
	if req.TopPartID != "" {
		if _, err := s.partRepo.GetByID(req.TopPartID); err != nil {
			return nil, fmt.Errorf("top part not found: %w", err)
		}
	}
	project := &entity.Project{
		ID:          uuid.New().String(),
		Code:        req.Code,
		Name:        req.Name,
		Description: req.Description,
		Status:      entity.ProjectStatusProposed,
		Phase:       entity.PhaseConcept,
		TopPartID:   req.TopPartID,
		ManagerID:   req.ManagerID,
		StartDate:   req.StartDate,
		TargetDate:  req.TargetDate,
		Budget:      req.Budget,
		CreatedBy:   userID,
	}
	if err := s.projectRepo.Create(project); err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	return project, nil
}

func (s *ProjectService) Get(id string) (*entity.Project, error) {
	return s.projectRepo.GetByID(id)
}

func (s *ProjectService) List(params repository.ProjectListParams) ([]entity.Project, int64, error) {
	return s.projectRepo.List(params)
}

var projectTransitions = map[string][]string{
	entity.ProjectStatusProposed:  {entity.ProjectStatusActive, entity.ProjectStatusCancelled},
	entity.ProjectStatusActive:    {entity.ProjectStatusOnHold, entity.ProjectStatusCompleted, entity.ProjectStatusCancelled},
	entity.ProjectStatusOnHold:    {entity.ProjectStatusActive, entity.ProjectStatusCancelled},
	entity.ProjectStatusCompleted: {},
	entity.ProjectStatusCancelled: {},
}

func (s *ProjectService) Transition(id, target string) (*entity.Project, error) {
	project, err := s.projectRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	allowed := false
	for _, next := range projectTransitions[project.Status] {
		if next == target {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, fmt.Errorf("cannot move project from %s to %s", project.Status, target)
	}
	project.Status = target
	if target == entity.ProjectStatusActive && project.StartDate == nil {
		now := time.Now()
		project.StartDate = &now
	}
	if err := s.projectRepo.Update(project); err != nil {
		return nil, fmt.Errorf("update project: %w", err)
	}
	return project, nil
}

func (s *ProjectService) SetPhase(id, phase string) (*entity.Project, error) {
	project, err := s.projectRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	switch phase {
	case entity.PhaseConcept, entity.PhaseDesign, entity.PhasePrototype, entity.PhaseProduction, entity.PhaseSupport:
	default:
		return nil, fmt.Errorf("unknown phase %q", phase)
	}
	project.Phase = phase
	if err := s.projectRepo.Update(project); err != nil {
		return nil, fmt.Errorf("update project: %w", err)
	}
	return project, nil
}

func (s *ProjectService) SetTopPart(id, partID string) (*entity.Project, error) {
	project, err := s.projectRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if _, err := s.partRepo.GetByID(partID); err != nil {
		return nil, fmt.Errorf("part not found: %w", err)
	}
	project.TopPartID = partID
	if err := s.projectRepo.Update(project); err != nil {
		return nil, fmt.Errorf("update project: %w", err)
	}
	return project, nil
}

type CreateMilestoneRequest struct {
	Name    string     `json:"name" binding:"required"`
	Phase   string     `json:"phase"`
	DueDate *time.Time `json:"due_date"`
}

func (s *ProjectService) AddMilestone(projectID string, req CreateMilestoneRequest) (*entity.Milestone, error) {
	if _, err := s.projectRepo.GetByID(projectID); err != nil {
		return nil, err
	}
	m := &entity.Milestone{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		Name:      req.Name,
		Phase:     req.Phase,
		Status:    entity.MilestoneNotStarted,
		DueDate:   req.DueDate,
	}
	if err := s.projectRepo.CreateMilestone(m); err != nil {
		return nil, fmt.Errorf("create milestone: %w", err)
	}
	return m, nil
}

func (s *ProjectService) UpdateMilestoneStatus(milestoneID, status string) (*entity.Milestone, error) {
	m, err := s.projectRepo.GetMilestone(milestoneID)
	if err != nil {
		return nil, err
	}
	switch status {
	case entity.MilestoneNotStarted, entity.MilestoneInProgress, entity.MilestoneCompleted, entity.MilestoneSlipped:
	default:
		return nil, fmt.Errorf("unknown milestone status %q", status)
	}
	m.Status = status
	if status == entity.MilestoneCompleted {
		now := time.Now()
		m.CompletedAt = &now
	}
	if err := s.projectRepo.UpdateMilestone(m); err != nil {
		return nil, fmt.Errorf("update milestone: %w", err)
	}
	return m, nil
}

// ProjectProgress summarizes milestone completion for a project.
type ProjectProgress struct {
	ProjectID       string  `json:"project_id"`
	TotalMilestones int     `json:"total_milestones"`
	Completed       int     `json:"completed"`
	Slipped         int     `json:"slipped"`
	PercentComplete float64 `json:"percent_complete"`
}

func (s *ProjectService) Progress(projectID string) (*ProjectProgress, error) {
	milestones, err := s.projectRepo.ListMilestones(projectID)
	if err != nil {
		return nil, err
	}
	progress := &ProjectProgress{ProjectID: projectID, TotalMilestones: len(milestones)}
	for _, m := range milestones {
		switch m.Status {
		case entity.MilestoneCompleted:
			progress.Completed++
		case entity.MilestoneSlipped:
			progress.Slipped++
		}
	}
	if progress.TotalMilestones > 0 {
		progress.PercentComplete = float64(progress.Completed) / float64(progress.TotalMilestones) * 100
	}
	return progress, nil
}
