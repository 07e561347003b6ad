package repository

import (
	"gorm.io/gorm"

	"github.com/bitforge/plm/internal/model/entity"
)

type DocumentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

func (r *DocumentRepository) Create(doc *entity.Document) error {
	return r.db.Create(doc).Error
}

func (r *DocumentRepository) GetByID(id string) (*entity.Document, error) {
	var doc entity.Document
	err := r.db.Where("id = ?", id).First(&doc).Error
	return &doc, err
}

func (r *DocumentRepository) Update(doc *entity.Document) error {
	return r.db.Save(doc).Error
}

func (r *DocumentRepository) Delete(id string) error {
	return r.db.Delete(&entity.Document{}, "id = ?", id).Error
}

type DocumentListParams struct {
	DocType     string
	Status      string
	RelatedType string
	RelatedID   string
	Page        int
	Size        int
}

func (r *DocumentRepository) List(params DocumentListParams) ([]entity.Document, int64, error) {
	query := r.db.Model(&entity.Document{})
	if params.DocType != "" {
		query = query.Where("doc_type = ?", params.DocType)
	}
	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}
	if params.RelatedType != "" {
		query = query.Where("related_type = ?", params.RelatedType)
	}
	if params.RelatedID != "" {
		query = query.Where("related_id = ?", params.RelatedID)
	}

	var total int64
	query.Count(&total)

	if params.Page <= 0 {
		params.Page = 1
	}
	if params.Size <= 0 {
		params.Size = 20
	}
	var docs []entity.Document
	err := query.Order("created_at DESC").
		Offset((params.Page - 1) * params.Size).Limit(params.Size).
		Find(&docs).Error
	return docs, total, err
}
