package repository

import (
	"gorm.io/gorm"

	"github.com/bitforge/plm/internal/model/entity"
)

type RequirementRepository struct {
	db *gorm.DB
}

func NewRequirementRepository(db *gorm.DB) *RequirementRepository {
	return &RequirementRepository{db: db}
}

func (r *RequirementRepository) Create(req *entity.Requirement) error {
	return r.db.Create(req).Error
}

func (r *RequirementRepository) GetByID(id string) (*entity.Requirement, error) {
	var req entity.Requirement
	err := r.db.Where("id = ?", id).First(&req).Error
	return &req, err
}

func (r *RequirementRepository) Update(req *entity.Requirement) error {
	return r.db.Save(req).Error
}

type RequirementListParams struct {
	ProjectID string
	Status    string
	ReqType   string
	Priority  string
	Page      int
	Size      int
}

func (r *RequirementRepository) List(params RequirementListParams) ([]entity.Requirement, int64, error) {
	query := r.db.Model(&entity.Requirement{})
	if params.ProjectID != "" {
		query = query.Where("project_id = ?", params.ProjectID)
	}
	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}
	if params.ReqType != "" {
		query = query.Where("req_type = ?", params.ReqType)
	}
	if params.Priority != "" {
		query = query.Where("priority = ?", params.Priority)
	}

	var total int64
	query.Count(&total)

	if params.Page <= 0 {
		params.Page = 1
	}
	if params.Size <= 0 {
		params.Size = 20
	}
	var reqs []entity.Requirement
	err := query.Order("requirement_number").
		Offset((params.Page - 1) * params.Size).Limit(params.Size).
		Find(&reqs).Error
	return reqs, total, err
}

func (r *RequirementRepository) ListByProject(projectID string) ([]entity.Requirement, error) {
	var reqs []entity.Requirement
	err := r.db.Where("project_id = ?", projectID).Order("requirement_number").Find(&reqs).Error
	return reqs, err
}

func (r *RequirementRepository) CreateLink(link *entity.RequirementLink) error {
	return r.db.Create(link).Error
}

func (r *RequirementRepository) DeleteLink(id string) error {
	return r.db.Delete(&entity.RequirementLink{}, "id = ?", id).Error
}

func (r *RequirementRepository) ListLinks(requirementID string) ([]entity.RequirementLink, error) {
	var links []entity.RequirementLink
	err := r.db.Where("requirement_id = ?", requirementID).Find(&links).Error
	return links, err
}

func (r *RequirementRepository) ListLinksForProject(projectID string) ([]entity.RequirementLink, error) {
	var links []entity.RequirementLink
	err := r.db.
		Joins("JOIN plm_requirements ON plm_requirements.id = plm_requirement_links.requirement_id").
		Where("plm_requirements.project_id = ?", projectID).
		Find(&links).Error
	return links, err
}

func (r *RequirementRepository) CreateVerification(v *entity.VerificationRecord) error {
	return r.db.Create(v).Error
}

func (r *RequirementRepository) GetVerification(id string) (*entity.VerificationRecord, error) {
	var v entity.VerificationRecord
	err := r.db.Where("id = ?", id).First(&v).Error
	return &v, err
}

func (r *RequirementRepository) UpdateVerification(v *entity.VerificationRecord) error {
	return r.db.Save(v).Error
}

func (r *RequirementRepository) ListVerifications(requirementID string) ([]entity.VerificationRecord, error) {
	var records []entity.VerificationRecord
	err := r.db.Where("requirement_id = ?", requirementID).Order("created_at").Find(&records).Error
	return records, err
}

func (r *RequirementRepository) ListVerificationsForProject(projectID string) ([]entity.VerificationRecord, error) {
	var records []entity.VerificationRecord
	err := r.db.
		Joins("JOIN plm_requirements ON plm_requirements.id = plm_verification_records.requirement_id").
		Where("plm_requirements.project_id = ?", projectID).
		Find(&records).Error
	return records, err
}
