package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/bitforge/plm/internal/model/entity"
)

type ComplianceRepository struct {
	db *gorm.DB
}

func NewComplianceRepository(db *gorm.DB) *ComplianceRepository {
	return &ComplianceRepository{db: db}
}

func (r *ComplianceRepository) CreateRegulation(reg *entity.Regulation) error {
	return r.db.Create(reg).Error
}

func (r *ComplianceRepository) GetRegulation(id string) (*entity.Regulation, error) {
	var reg entity.Regulation
	err := r.db.Where("id = ?", id).First(&reg).Error
	return &reg, err
}

func (r *ComplianceRepository) ListRegulations() ([]entity.Regulation, error) {
	var regs []entity.Regulation
	err := r.db.Order("code").Find(&regs).Error
	return regs, err
}

func (r *ComplianceRepository) CreateDeclaration(decl *entity.ComplianceDeclaration) error {
	return r.db.Create(decl).Error
}

func (r *ComplianceRepository) GetDeclaration(id string) (*entity.ComplianceDeclaration, error) {
	var decl entity.ComplianceDeclaration
	err := r.db.Where("id = ?", id).First(&decl).Error
	return &decl, err
}

func (r *ComplianceRepository) UpdateDeclaration(decl *entity.ComplianceDeclaration) error {
	return r.db.Save(decl).Error
}

func (r *ComplianceRepository) ListDeclarationsForPart(partID string) ([]entity.ComplianceDeclaration, error) {
	var decls []entity.ComplianceDeclaration
	err := r.db.Preload("Regulation").Where("part_id = ?", partID).Find(&decls).Error
	return decls, err
}

// ListExpiring returns declarations expiring within the window.
func (r *ComplianceRepository) ListExpiring(within time.Duration) ([]entity.ComplianceDeclaration, error) {
	now := time.Now()
	var decls []entity.ComplianceDeclaration
	err := r.db.Preload("Regulation").
		Where("expires_at IS NOT NULL AND expires_at > ? AND expires_at <= ?", now, now.Add(within)).
		Order("expires_at").
		Find(&decls).Error
	return decls, err
}

func (r *ComplianceRepository) CountDeclarationsByStatus(partID string) (map[string]int64, error) {
	type row struct {
		Status string
		N      int64
	}
	var rows []row
	err := r.db.Model(&entity.ComplianceDeclaration{}).
		Select("status, count(*) as n").
		Where("part_id = ?", partID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, rw := range rows {
		counts[rw.Status] = rw.N
	}
	return counts, nil
}
