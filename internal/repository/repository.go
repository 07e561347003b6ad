package repository

import (
	"gorm.io/gorm"

	"github.com/bitforge/plm/internal/model/entity"
)

// Repositories is the collection of domain repositories.
type Repositories struct {
	Part        *PartRepository
	BOM         *BOMRepository
	Project     *ProjectRepository
	Requirement *RequirementRepository
	Supplier    *SupplierRepository
	Compliance  *ComplianceRepository
	Costing     *CostingRepository
	Bulletin    *BulletinRepository
	Inventory   *InventoryRepository
	Document    *DocumentRepository
	MRP         *MRPRepository
}

func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Part:        NewPartRepository(db),
		BOM:         NewBOMRepository(db),
		Project:     NewProjectRepository(db),
		Requirement: NewRequirementRepository(db),
		Supplier:    NewSupplierRepository(db),
		Compliance:  NewComplianceRepository(db),
		Costing:     NewCostingRepository(db),
		Bulletin:    NewBulletinRepository(db),
		Inventory:   NewInventoryRepository(db),
		Document:    NewDocumentRepository(db),
		MRP:         NewMRPRepository(db),
	}
}

// AutoMigrate creates or updates all PLM tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.Part{},
		&entity.PartRevision{},
		&entity.BOM{},
		&entity.BOMItem{},
		&entity.Project{},
		&entity.Milestone{},
		&entity.Requirement{},
		&entity.RequirementLink{},
		&entity.VerificationRecord{},
		&entity.Supplier{},
		&entity.ApprovedVendor{},
		&entity.Regulation{},
		&entity.ComplianceDeclaration{},
		&entity.PartCost{},
		&entity.CostElement{},
		&entity.CostVariance{},
		&entity.ServiceBulletin{},
		&entity.BulletinCompliance{},
		&entity.InventoryItem{},
		&entity.InventoryTransaction{},
		&entity.OpenOrder{},
		&entity.Document{},
		&entity.MaterialDemand{},
		&entity.MRPRun{},
		&entity.MRPPlannedOrder{},
		&entity.MRPException{},
	)
}
