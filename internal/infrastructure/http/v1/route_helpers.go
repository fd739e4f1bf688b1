// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"
)

// CatalogRouteHandler defines the interface for catalog handlers.
// All catalog handlers must implement these methods.
type CatalogRouteHandler interface {
	List(c *gin.Context)
	Create(c *gin.Context)
	Get(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
	SetDeletionMark(c *gin.Context)
}

// DocumentRouteHandler defines the interface for document handlers.
// All document handlers must implement these methods.
type DocumentRouteHandler interface {
	List(c *gin.Context)
	Create(c *gin.Context)
	Get(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
	Aggregate(c *gin.Context)
	Sections(c *gin.Context)
	Render(c *gin.Context)
	PDF(c *gin.Context)
}

// RegisterCatalogRoutes registers standard CRUD routes for a catalog.
//
// Usage:
//
//	repo := catalog_repo.NewCustomerRepo(txManager)
//	service := customer.NewService(repo, txManager, numerator)
//	handler := handlers.NewCustomerHandler(baseHandler, service)
//	RegisterCatalogRoutes(catalogs.Group("/customers"), handler)
func RegisterCatalogRoutes(group *gin.RouterGroup, handler CatalogRouteHandler) {
	group.GET("", handler.List)
	group.POST("", handler.Create)
	group.GET("/:id", handler.Get)
	group.PUT("/:id", handler.Update)
	group.DELETE("/:id", handler.Delete)
	group.POST("/:id/deletion-mark", handler.SetDeletionMark)
}

// RegisterDocumentRoutes registers CRUD plus the aggregate and render
// routes shared by all section-backed document types. Type-specific
// transitions (send, convert, payments) are wired next to the group.
func RegisterDocumentRoutes(group *gin.RouterGroup, handler DocumentRouteHandler) {
	group.GET("", handler.List)
	group.POST("", handler.Create)
	group.GET("/:id", handler.Get)
	group.PUT("/:id", handler.Update)
	group.DELETE("/:id", handler.Delete)
	group.GET("/:id/aggregate", handler.Aggregate)
	group.GET("/:id/sections", handler.Sections)
	group.GET("/:id/render", handler.Render)
	group.GET("/:id/pdf", handler.PDF)
}
