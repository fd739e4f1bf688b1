package dto

import (
	"github.com/shopspring/decimal"

	"buildledger/internal/core/id"
	"buildledger/internal/domain/catalogs/product"
)

// --- Request DTOs ---

// CreateProductRequest is the request body for creating a product.
type CreateProductRequest struct {
	Code           string          `json:"code"`
	Name           string          `json:"name" binding:"required"`
	Description    *string         `json:"description"`
	Unit           string          `json:"unit"`
	UnitPrice      decimal.Decimal `json:"unitPrice"`
	TaxRatePercent decimal.Decimal `json:"taxRatePercent"`
	TaxInclusive   bool            `json:"taxInclusive"`
	Category       *string         `json:"category"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateProductRequest) ToEntity(companyID id.ID) *product.Product {
	p := product.NewProduct(companyID, r.Name, r.UnitPrice)
	p.Code = r.Code
	p.Description = r.Description
	p.Unit = r.Unit
	p.TaxRatePercent = r.TaxRatePercent
	p.TaxInclusive = r.TaxInclusive
	p.Category = r.Category
	return p
}

// UpdateProductRequest is the request body for updating a product.
type UpdateProductRequest struct {
	Code           string          `json:"code"`
	Name           string          `json:"name" binding:"required"`
	Description    *string         `json:"description"`
	Unit           string          `json:"unit"`
	UnitPrice      decimal.Decimal `json:"unitPrice"`
	TaxRatePercent decimal.Decimal `json:"taxRatePercent"`
	TaxInclusive   bool            `json:"taxInclusive"`
	Category       *string         `json:"category"`
	Version        int             `json:"version" binding:"required,min=1"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateProductRequest) ApplyTo(p *product.Product) {
	p.Code = r.Code
	p.Name = r.Name
	p.Description = r.Description
	p.Unit = r.Unit
	p.UnitPrice = r.UnitPrice
	p.TaxRatePercent = r.TaxRatePercent
	p.TaxInclusive = r.TaxInclusive
	p.Category = r.Category
	p.Version = r.Version
}

// --- Response DTOs ---

// ProductResponse is the response body for a product.
type ProductResponse struct {
	CatalogResponse
	Description    *string         `json:"description,omitempty"`
	Unit           string          `json:"unit"`
	UnitPrice      decimal.Decimal `json:"unitPrice"`
	TaxRatePercent decimal.Decimal `json:"taxRatePercent"`
	TaxInclusive   bool            `json:"taxInclusive"`
	Category       *string         `json:"category,omitempty"`
}

// FromProduct maps the entity to its response DTO.
func FromProduct(p *product.Product) ProductResponse {
	return ProductResponse{
		CatalogResponse: FromCatalog(p.Catalog),
		Description:     p.Description,
		Unit:            p.Unit,
		UnitPrice:       p.UnitPrice,
		TaxRatePercent:  p.TaxRatePercent,
		TaxInclusive:    p.TaxInclusive,
		Category:        p.Category,
	}
}
