package v1

import (
	"context"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"buildledger/internal/domain"
	"buildledger/internal/domain/catalogs/currency"
	"buildledger/internal/domain/catalogs/customer"
	"buildledger/internal/domain/catalogs/product"
	"buildledger/internal/domain/catalogs/taxsetting"
	"buildledger/internal/domain/documents"
	"buildledger/internal/domain/documents/boq"
	"buildledger/internal/domain/documents/invoice"
	"buildledger/internal/domain/documents/payment"
	"buildledger/internal/domain/documents/proforma"
	"buildledger/internal/domain/documents/quotation"
	"buildledger/internal/domain/reports"
	"buildledger/internal/infrastructure/http/v1/handlers"
	"buildledger/internal/infrastructure/http/v1/middleware"
	"buildledger/internal/infrastructure/storage/postgres"
	"buildledger/internal/infrastructure/storage/postgres/catalog_repo"
	"buildledger/internal/infrastructure/storage/postgres/document_repo"
	"buildledger/internal/infrastructure/storage/postgres/report_repo"
	"buildledger/pkg/logger"
	"buildledger/pkg/numerator"
)

// RouterConfig holds router configuration.
type RouterConfig struct {
	// Pool is the shared database connection pool (health checks)
	Pool *postgres.Pool

	// TxManager runs all repository work
	TxManager *postgres.TxManager

	// Logger for request logging
	Logger *logger.Logger

	// Audit records document snapshots on deletes
	Audit *postgres.AuditService

	// Numerator generates document numbers
	Numerator *numerator.Service

	// Company is the letterhead block printed on rendered documents
	Company handlers.CompanyProfile

	// AllowedOrigins configures CORS; empty disables it
	AllowedOrigins []string

	// Version reported by /health/info
	Version string
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	if len(cfg.AllowedOrigins) > 0 {
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowOrigins = cfg.AllowedOrigins
		corsConfig.AllowHeaders = append(corsConfig.AllowHeaders,
			middleware.HeaderCompanyID, middleware.HeaderUserID)
		router.Use(cors.New(corsConfig))
	}

	// Health endpoints (no company required)
	healthHandler := handlers.NewHealthHandler(cfg.Pool, cfg.Version)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	// API v1. Every route below works on behalf of one company.
	api := router.Group("/api/v1")
	api.Use(middleware.CompanyContext())

	registerCatalogRoutes(api, cfg)
	registerDocumentRoutes(api, cfg)
	registerReportRoutes(api, cfg)

	return router
}

// registerCatalogRoutes registers catalog endpoints.
func registerCatalogRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	catalogs := rg.Group("/catalog")
	baseHandler := handlers.NewBaseHandler()

	// --- CUSTOMERS ---
	{
		repo := catalog_repo.NewCustomerRepo(cfg.TxManager)
		service := customer.NewService(repo, cfg.TxManager, cfg.Numerator)
		handler := handlers.NewCustomerHandler(baseHandler, service)
		RegisterCatalogRoutes(catalogs.Group("/customers"), handler)
	}

	// --- PRODUCTS ---
	{
		repo := catalog_repo.NewProductRepo(cfg.TxManager)
		service := product.NewService(repo, cfg.TxManager, cfg.Numerator)
		handler := handlers.NewProductHandler(baseHandler, service)
		RegisterCatalogRoutes(catalogs.Group("/products"), handler)
	}

	// --- CURRENCIES ---
	{
		repo := catalog_repo.NewCurrencyRepo(cfg.TxManager)
		service := currency.NewService(repo, cfg.TxManager)
		handler := handlers.NewCurrencyHandler(baseHandler, service)
		RegisterCatalogRoutes(catalogs.Group("/currencies"), handler)
	}

	// --- TAX SETTINGS ---
	{
		repo := catalog_repo.NewTaxSettingRepo(cfg.TxManager)
		service := taxsetting.NewService(repo, cfg.TxManager)
		handler := handlers.NewTaxSettingHandler(baseHandler, service)
		RegisterCatalogRoutes(catalogs.Group("/tax-settings"), handler)
	}
}

// registerDocumentRoutes registers the document endpoints and wires the
// cross-document collaborations: BOQ conversion, payment application and
// audit snapshots on delete.
func registerDocumentRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	docs := rg.Group("/documents")
	baseHandler := handlers.NewBaseHandler()

	// Shared collaborators for rendering.
	customerRepo := catalog_repo.NewCustomerRepo(cfg.TxManager)
	customerSvc := customer.NewService(customerRepo, cfg.TxManager, cfg.Numerator)
	currencyRepo := catalog_repo.NewCurrencyRepo(cfg.TxManager)
	currencySvc := currency.NewService(currencyRepo, cfg.TxManager)

	deps := handlers.DocumentDeps{
		Customers:  customerSvc,
		Currencies: currencySvc,
		Company:    cfg.Company,
	}

	// Invoice service is shared: BOQ conversion targets it and payments
	// settle against it.
	invoiceRepo := document_repo.NewInvoiceRepo(cfg.TxManager)
	invoiceSvc := invoice.NewService(invoiceRepo, cfg.TxManager, cfg.Numerator)

	// --- QUOTATIONS ---
	{
		repo := document_repo.NewQuotationRepo(cfg.TxManager)
		service := quotation.NewService(repo, cfg.TxManager, cfg.Numerator)
		registerAuditHook(service.Hooks(), cfg.Audit, "quotation")

		handler := handlers.NewQuotationHandler(baseHandler, service, deps)
		group := docs.Group("/quotations")
		RegisterDocumentRoutes(group, handler)
		group.POST("/:id/send", handler.Send)
	}

	// --- PROFORMA INVOICES ---
	{
		repo := document_repo.NewProformaRepo(cfg.TxManager)
		service := proforma.NewService(repo, cfg.TxManager, cfg.Numerator)
		registerAuditHook(service.Hooks(), cfg.Audit, "proforma_invoice")

		handler := handlers.NewProformaHandler(baseHandler, service, deps)
		RegisterDocumentRoutes(docs.Group("/proforma-invoices"), handler)
	}

	// --- BOQS ---
	// boq.NewService registers the invoice after-delete hook that reverts
	// converted BOQs, so it must see the shared invoice service.
	{
		repo := document_repo.NewBoqRepo(cfg.TxManager)
		service := boq.NewService(repo, cfg.TxManager, cfg.Numerator, invoiceSvc)
		registerAuditHook(service.Hooks(), cfg.Audit, "boq")

		handler := handlers.NewBoqHandler(baseHandler, service, deps)
		group := docs.Group("/boqs")
		RegisterDocumentRoutes(group, handler)
		group.POST("/:id/convert", handler.Convert)
		group.POST("/:id/cancel", handler.Cancel)
	}

	// --- INVOICES + PAYMENTS ---
	{
		registerAuditHook(invoiceSvc.Hooks(), cfg.Audit, "invoice")

		paymentRepo := document_repo.NewPaymentRepo(cfg.TxManager)
		paymentSvc := payment.NewService(paymentRepo, invoiceSvc, cfg.TxManager, cfg.Numerator)

		invoiceHandler := handlers.NewInvoiceHandler(baseHandler, invoiceSvc, deps)
		paymentHandler := handlers.NewPaymentHandler(baseHandler, paymentSvc, invoiceSvc)

		group := docs.Group("/invoices")
		RegisterDocumentRoutes(group, invoiceHandler)
		group.POST("/:id/payments", paymentHandler.Record)
		group.GET("/:id/payments", paymentHandler.ListByInvoice)

		payments := docs.Group("/payments")
		payments.GET("/:id", paymentHandler.Get)
		payments.DELETE("/:id", paymentHandler.Delete)
	}
}

// registerReportRoutes registers read-only reporting endpoints.
func registerReportRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	baseHandler := handlers.NewBaseHandler()

	repo := report_repo.NewReportRepo(cfg.TxManager)
	service := reports.NewService(repo, cfg.TxManager)
	handler := handlers.NewReportHandler(baseHandler, service)

	group := rg.Group("/reports")
	group.GET("/receivables", handler.Receivables)
	group.GET("/invoice-status", handler.InvoiceStatus)
	group.GET("/boq-status", handler.BoqStatus)
}

// registerAuditHook snapshots documents on delete. Audit failures are
// logged by the hook runner, never surfaced to the caller.
func registerAuditHook[T documents.Doc](hooks *domain.HookRegistry[T], audit *postgres.AuditService, entityType string) {
	if audit == nil {
		return
	}
	hooks.On(domain.AfterDelete, func(ctx context.Context, doc T) error {
		base := doc.Base()
		return audit.LogSnapshot(ctx, base.CompanyID, entityType, base.ID, postgres.AuditActionDelete, doc)
	})
}
