package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/bitforge/plm/internal/config"
	"github.com/bitforge/plm/internal/handler"
	"github.com/bitforge/plm/internal/metrics"
	"github.com/bitforge/plm/internal/middleware"
	"github.com/bitforge/plm/internal/repository"
	"github.com/bitforge/plm/internal/service"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zapLogger, err := initLogger(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("Starting plm service",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
	)

	db, err := initDatabase(cfg.Database)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	if err := repository.AutoMigrate(db); err != nil {
		zapLogger.Fatal("Failed to migrate database", zap.Error(err))
	}

	rdb := initRedis(cfg.Redis)

	store, err := initMinIO(cfg.MinIO)
	if err != nil {
		zapLogger.Fatal("Failed to init object storage", zap.Error(err))
	}

	registry := metrics.NewRegistry()

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, rdb, store, registry, cfg)
	handlers := handler.NewHandlers(services, cfg)

	if err := services.Document.EnsureBucket(context.Background()); err != nil {
		zapLogger.Warn("Document bucket not ready", zap.Error(err))
	}

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(zapLogger))
	router.Use(middleware.CORS())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.RequestID())
	router.Use(registry.Middleware())
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst)
		router.Use(limiter.Middleware())
	}

	registerRoutes(router, handlers, registry, cfg)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		zapLogger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exited")
}

func initLogger(cfg config.LogConfig) (*zap.Logger, error) {
	var zapCfg zap.Config

	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	switch cfg.Level {
	case "debug":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	}

	return zapCfg.Build()
}

func initDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	return db, nil
}

func initRedis(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
}

func initMinIO(cfg config.MinIOConfig) (*minio.Client, error) {
	return minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
}

func registerRoutes(r *gin.Engine, h *handler.Handlers, registry *metrics.Registry, cfg *config.Config) {
	r.GET("/health/live", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/health/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"version":    Version,
			"build_time": BuildTime,
		})
	})
	r.GET("/metrics", gin.WrapH(registry.Handler()))

	v1 := r.Group("/api/v1")
	v1.POST("/auth/login", h.Auth.Login)

	authorized := v1.Group("")
	authorized.Use(middleware.JWTAuth(cfg.JWT.Secret))

	parts := authorized.Group("/parts")
	{
		parts.GET("", h.Part.List)
		parts.POST("", h.Part.Create)
		parts.GET("/:id", h.Part.Get)
		parts.PUT("/:id", h.Part.Update)
		parts.POST("/:id/release", h.Part.Release)
		parts.POST("/:id/revise", h.Part.Revise)
		parts.POST("/:id/obsolete", h.Part.Obsolete)
		parts.GET("/:id/revisions", h.Part.ListRevisions)
		parts.GET("/:id/where-used", h.Part.WhereUsed)

		parts.GET("/:id/vendors", h.Supplier.VendorsForPart)
		parts.POST("/:id/vendors", h.Supplier.AddVendor)

		parts.GET("/:id/compliance", h.Compliance.DeclarationsForPart)
		parts.POST("/:id/compliance", h.Compliance.Declare)
		parts.GET("/:id/compliance/summary", h.Compliance.PartSummary)

		parts.GET("/:id/cost", h.Costing.GetCost)
		parts.POST("/:id/cost/elements", h.Costing.AddElement)
		parts.PUT("/:id/cost/target", h.Costing.SetTarget)
		parts.POST("/:id/cost/approve", h.Costing.Approve)
		parts.GET("/:id/cost/variances", h.Costing.Variances)
		parts.POST("/:id/cost/variances", h.Costing.RecordVariance)
	}

	boms := authorized.Group("/boms")
	{
		boms.GET("", h.BOM.List)
		boms.POST("", h.BOM.Create)
		boms.GET("/:id", h.BOM.Get)
		boms.POST("/:id/items", h.BOM.AddItem)
		boms.PUT("/:id/items/:item_id", h.BOM.UpdateItem)
		boms.DELETE("/:id/items/:item_id", h.BOM.RemoveItem)
		boms.POST("/:id/release", h.BOM.Release)
		boms.GET("/:id/explode", h.BOM.Explode)
		boms.GET("/:id/cost-rollup", h.BOM.RollupCost)
		boms.GET("/:id/export", h.BOM.Export)
	}

	projects := authorized.Group("/projects")
	{
		projects.GET("", h.Project.List)
		projects.POST("", h.Project.Create)
		projects.GET("/:id", h.Project.Get)
		projects.PUT("/:id/status", h.Project.Transition)
		projects.PUT("/:id/phase", h.Project.SetPhase)
		projects.PUT("/:id/top-part", h.Project.SetTopPart)
		projects.POST("/:id/milestones", h.Project.AddMilestone)
		projects.GET("/:id/progress", h.Project.Progress)
		projects.GET("/:id/traceability", h.Requirement.Traceability)
	}
	authorized.PUT("/milestones/:milestone_id", h.Project.UpdateMilestone)

	requirements := authorized.Group("/requirements")
	{
		requirements.GET("", h.Requirement.List)
		requirements.POST("", h.Requirement.Create)
		requirements.GET("/:id", h.Requirement.Get)
		requirements.PUT("/:id", h.Requirement.Update)
		requirements.POST("/:id/approve", h.Requirement.Approve)
		requirements.POST("/:id/obsolete", h.Requirement.Obsolete)
		requirements.GET("/:id/links", h.Requirement.ListLinks)
		requirements.POST("/:id/links", h.Requirement.AddLink)
		requirements.GET("/:id/verifications", h.Requirement.ListVerifications)
		requirements.POST("/:id/verifications", h.Requirement.RecordVerification)
	}
	authorized.DELETE("/requirement-links/:link_id", h.Requirement.RemoveLink)

	suppliers := authorized.Group("/suppliers")
	{
		suppliers.GET("", h.Supplier.List)
		suppliers.POST("", h.Supplier.Create)
		suppliers.GET("/:id", h.Supplier.Get)
		suppliers.POST("/:id/approve", h.Supplier.Approve)
		suppliers.POST("/:id/suspend", h.Supplier.Suspend)
		suppliers.PUT("/:id/rating", h.Supplier.SetRating)
	}
	authorized.PUT("/approved-vendors/:avl_id/qualification", h.Supplier.SetQualification)
	authorized.DELETE("/approved-vendors/:avl_id", h.Supplier.RemoveVendor)

	compliance := authorized.Group("/compliance")
	{
		compliance.GET("/regulations", h.Compliance.ListRegulations)
		compliance.POST("/regulations", h.Compliance.CreateRegulation)
		compliance.PUT("/declarations/:id", h.Compliance.UpdateDeclaration)
		compliance.GET("/expiring", h.Compliance.Expiring)
	}

	authorized.PUT("/cost-elements/:element_id", h.Costing.UpdateElement)
	authorized.DELETE("/cost-elements/:element_id", h.Costing.RemoveElement)
	authorized.GET("/cost-variances/unfavorable", h.Costing.UnfavorableVariances)

	bulletins := authorized.Group("/bulletins")
	{
		bulletins.GET("", h.Bulletin.List)
		bulletins.POST("", h.Bulletin.Create)
		bulletins.GET("/stats", h.Bulletin.Stats)
		bulletins.GET("/compliance/overdue", h.Bulletin.Overdue)
		bulletins.GET("/:id", h.Bulletin.Get)
		bulletins.POST("/:id/approve", h.Bulletin.Approve)
		bulletins.POST("/:id/release", h.Bulletin.Release)
		bulletins.GET("/:id/compliance", h.Bulletin.Compliance)
	}
	authorized.POST("/bulletin-compliance/:record_id/comply", h.Bulletin.RecordCompliance)
	authorized.POST("/bulletin-compliance/:record_id/waive", h.Bulletin.WaiveCompliance)

	inventory := authorized.Group("/inventory")
	{
		inventory.POST("/receive", h.Inventory.Receive)
		inventory.POST("/issue", h.Inventory.Issue)
		inventory.POST("/adjust", h.Inventory.Adjust)
		inventory.PUT("/reorder-point", h.Inventory.SetReorderPoint)
		inventory.GET("/reorder-suggestions", h.Inventory.ReorderSuggestions)
		inventory.GET("/parts/:part_id", h.Inventory.StockForPart)
		inventory.GET("/parts/:part_id/transactions", h.Inventory.Transactions)
	}

	openOrders := authorized.Group("/open-orders")
	{
		openOrders.GET("", h.Inventory.ListOpenOrders)
		openOrders.POST("", h.Inventory.CreateOpenOrder)
		openOrders.POST("/:id/receive", h.Inventory.ReceiveOpenOrder)
		openOrders.POST("/:id/cancel", h.Inventory.CancelOpenOrder)
	}

	documents := authorized.Group("/documents")
	{
		documents.GET("", h.Document.List)
		documents.POST("", h.Document.Upload)
		documents.GET("/:id", h.Document.Get)
		documents.GET("/:id/download", h.Document.Download)
		documents.GET("/:id/download-url", h.Document.DownloadURL)
		documents.POST("/:id/release", h.Document.Release)
		documents.DELETE("/:id", h.Document.Delete)
	}

	mrpRoutes := authorized.Group("/mrp")
	{
		mrpRoutes.POST("/run", h.MRP.Run)
		mrpRoutes.GET("/runs", h.MRP.ListRuns)
		mrpRoutes.GET("/runs/latest", h.MRP.LatestRun)
		mrpRoutes.GET("/runs/:id", h.MRP.GetRun)
		mrpRoutes.POST("/runs/:id/release", h.MRP.ReleaseOrders)
		mrpRoutes.GET("/demands", h.MRP.ListDemands)
		mrpRoutes.POST("/demands", h.MRP.CreateDemand)
		mrpRoutes.PUT("/demands/:id/status", h.MRP.UpdateDemandStatus)
		mrpRoutes.DELETE("/demands/:id", h.MRP.DeleteDemand)
	}
}
