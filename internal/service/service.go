package service

import (
	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"

	"github.com/bitforge/plm/internal/config"
	"github.com/bitforge/plm/internal/metrics"
	"github.com/bitforge/plm/internal/repository"
)

// Services is the collection of domain services.
type Services struct {
	Auth        *AuthService
	Part        *PartService
	BOM         *BOMService
	Project     *ProjectService
	Requirement *RequirementService
	Supplier    *SupplierService
	Compliance  *ComplianceService
	Costing     *CostingService
	Bulletin    *BulletinService
	Inventory   *InventoryService
	Document    *DocumentService
	MRP         *MRPService
}

func NewServices(repos *repository.Repositories, rdb *redis.Client, store *minio.Client, m *metrics.Registry, cfg *config.Config) *Services {
	bomSvc := NewBOMService(repos.BOM, repos.Part)
	return &Services{
		Auth:        NewAuthService(cfg),
		Part:        NewPartService(repos.Part),
		BOM:         bomSvc,
		Project:     NewProjectService(repos.Project, repos.Part),
		Requirement: NewRequirementService(repos.Requirement),
		Supplier:    NewSupplierService(repos.Supplier, repos.Part),
		Compliance:  NewComplianceService(repos.Compliance, repos.Part),
		Costing:     NewCostingService(repos.Costing, repos.Part),
		Bulletin:    NewBulletinService(repos.Bulletin, repos.Part),
		Inventory:   NewInventoryService(repos.Inventory, repos.Part),
		Document:    NewDocumentService(repos.Document, store, cfg.MinIO.Bucket),
		MRP:         NewMRPService(repos, bomSvc, rdb, m),
	}
}
