// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"stockmaster/internal/domain/audit"
	"stockmaster/internal/domain/auth"
	"stockmaster/internal/domain/catalogs/category"
	"stockmaster/internal/domain/catalogs/location"
	"stockmaster/internal/domain/catalogs/product"
	"stockmaster/internal/domain/catalogs/warehouse"
	"stockmaster/internal/domain/ledger"
	"stockmaster/internal/domain/moves"
	"stockmaster/internal/domain/operations"
	"stockmaster/internal/domain/operations/adjustment"
	"stockmaster/internal/domain/operations/delivery"
	"stockmaster/internal/domain/operations/receipt"
	"stockmaster/internal/domain/operations/transfer"
	"stockmaster/internal/domain/reorder"
	"stockmaster/internal/domain/reports"
	"stockmaster/internal/infrastructure/http/v1/handlers"
	"stockmaster/internal/infrastructure/http/v1/middleware"
	"stockmaster/internal/infrastructure/storage/postgres"
	"stockmaster/internal/infrastructure/storage/postgres/catalog_repo"
	"stockmaster/internal/infrastructure/storage/postgres/ledger_repo"
	"stockmaster/internal/infrastructure/storage/postgres/operation_repo"
	"stockmaster/internal/infrastructure/storage/postgres/report_repo"
	"stockmaster/pkg/logger"
	"stockmaster/pkg/reference"
)

// RouterConfig holds everything the HTTP layer needs.
type RouterConfig struct {
	// Pool is the database connection pool (health checks)
	Pool *postgres.Pool

	// TxManager drives transactions for all repositories
	TxManager *postgres.TxManager

	// Logger for request logging
	Logger *logger.Logger

	// AuthService issues and verifies tokens
	AuthService *auth.Service

	// References generates operation references
	References reference.Generator

	// Audit records entity history; nil disables the trail
	Audit *postgres.AuditRecorder
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters)
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	// Health endpoints (no auth)
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	// Repositories share the injected transaction manager.
	txm := cfg.TxManager
	categoryRepo := catalog_repo.NewCategoryRepo(txm)
	productRepo := catalog_repo.NewProductRepo(txm)
	warehouseRepo := catalog_repo.NewWarehouseRepo(txm)
	locationRepo := catalog_repo.NewLocationRepo(txm)
	userRepo := catalog_repo.NewUserRepo(txm)
	stockRepo := ledger_repo.NewStockRepo(txm)
	moveRepo := ledger_repo.NewMoveRepo(txm)

	var recorder audit.Recorder = audit.Nop{}
	if cfg.Audit != nil {
		recorder = cfg.Audit
	}

	// Domain services
	categorySvc := category.NewService(categoryRepo)
	productSvc := product.NewService(productRepo, categoryRepo)
	warehouseSvc := warehouse.NewService(warehouseRepo)
	locationSvc := location.NewService(locationRepo, warehouseRepo)
	ledgerSvc := ledger.NewService(stockRepo, locationRepo)
	movesSvc := moves.NewService(moveRepo)
	evaluator := reorder.NewEvaluator(ledgerSvc, productRepo)
	reportsSvc := reports.NewService(report_repo.NewDashboardRepo(txm), movesSvc)

	engine := operations.NewEngine(txm, ledgerSvc, movesSvc, locationRepo, recorder)
	checker := operations.NewChecker(productRepo, locationRepo)

	receiptSvc := receipt.NewService(operation_repo.NewReceiptRepo(txm), engine, cfg.References, checker)
	deliverySvc := delivery.NewService(operation_repo.NewDeliveryRepo(txm), engine, cfg.References, checker)
	transferSvc := transfer.NewService(operation_repo.NewTransferRepo(txm), engine, cfg.References, checker)
	adjustmentSvc := adjustment.NewService(operation_repo.NewAdjustmentRepo(txm), engine, cfg.References, checker)

	baseHandler := handlers.NewBaseHandler()
	authHandler := handlers.NewAuthHandler(baseHandler, cfg.AuthService, userRepo)

	// API v1
	api := router.Group("/api/v1")
	{
		// Public auth endpoints
		public := api.Group("/auth")

		// Everything else requires a valid token.
		protected := api.Group("")
		protected.Use(middleware.Auth(cfg.AuthService.Tokens()))

		authHandler.RegisterRoutes(public, protected.Group("/auth"))

		catalogs := protected.Group("/catalog")
		handlers.NewCategoryHandler(baseHandler, categorySvc).RegisterRoutes(catalogs.Group("/categories"))
		handlers.NewProductHandler(baseHandler, productSvc).RegisterRoutes(catalogs.Group("/products"))
		handlers.NewWarehouseHandler(baseHandler, warehouseSvc).RegisterRoutes(catalogs.Group("/warehouses"))
		handlers.NewLocationHandler(baseHandler, locationSvc).RegisterRoutes(catalogs.Group("/locations"))

		ops := protected.Group("/operations")
		handlers.NewReceiptHandler(baseHandler, receiptSvc).RegisterRoutes(ops.Group("/receipts"))
		handlers.NewDeliveryHandler(baseHandler, deliverySvc).RegisterRoutes(ops.Group("/deliveries"))
		handlers.NewTransferHandler(baseHandler, transferSvc).RegisterRoutes(ops.Group("/transfers"))
		handlers.NewAdjustmentHandler(baseHandler, adjustmentSvc).RegisterRoutes(ops.Group("/adjustments"))

		handlers.NewStockHandler(baseHandler, ledgerSvc, evaluator).RegisterRoutes(protected.Group("/stock"))
		handlers.NewMovesHandler(baseHandler, movesSvc).RegisterRoutes(protected.Group("/moves"))
		handlers.NewReportsHandler(baseHandler, reportsSvc).RegisterRoutes(protected.Group("/reports"))

		if cfg.Audit != nil {
			handlers.NewAuditHandler(baseHandler, cfg.Audit).RegisterRoutes(protected.Group("/audit"))
		}
	}

	return router
}
