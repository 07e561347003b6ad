package repository

import (
	"gorm.io/gorm"

	"github.com/bitforge/plm/internal/model/entity"
)

type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) Create(project *entity.Project) error {
	return r.db.Create(project).Error
}

func (r *ProjectRepository) GetByID(id string) (*entity.Project, error) {
	var project entity.Project
	err := r.db.Preload("Milestones").Where("id = ?", id).First(&project).Error
	return &project, err
}

func (r *ProjectRepository) Update(project *entity.Project) error {
	return r.db.Save(project).Error
}

type ProjectListParams struct {
	Status string
	Phase  string
	Page   int
	Size   int
}

func (r *ProjectRepository) List(params ProjectListParams) ([]entity.Project, int64, error) {
	query := r.db.Model(&entity.Project{})
	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}
	if params.Phase != "" {
		query = query.Where("phase = ?", params.Phase)
	}

	var total int64
	query.Count(&total)

	if params.Page <= 0 {
		params.Page = 1
	}
	if params.Size <= 0 {
		params.Size = 20
	}
	var projects []entity.Project
	err := query.Order("created_at DESC").
		Offset((params.Page - 1) * params.Size).Limit(params.Size).
		Find(&projects).Error
	return projects, total, err
}

func (r *ProjectRepository) CreateMilestone(m *entity.Milestone) error {
	return r.db.Create(m).Error
}

func (r *ProjectRepository) GetMilestone(id string) (*entity.Milestone, error) {
	var m entity.Milestone
	err := r.db.Where("id = ?", id).First(&m).Error
	return &m, err
}

func (r *ProjectRepository) UpdateMilestone(m *entity.Milestone) error {
	return r.db.Save(m).Error
}

func (r *ProjectRepository) ListMilestones(projectID string) ([]entity.Milestone, error) {
	var milestones []entity.Milestone
	err := r.db.Where("project_id = ?", projectID).Order("due_date").Find(&milestones).Error
	return milestones, err
}
