// Package product provides the Product catalog: materials and services
// that can be added to document sections as line items.
package product

import (
	"context"

	"github.com/shopspring/decimal"

	"buildledger/internal/core/apperror"
	"buildledger/internal/core/entity"
	"buildledger/internal/core/id"
)

// Product represents a sellable material or service.
type Product struct {
	entity.Catalog

	Description *string `db:"description" json:"description,omitempty"`

	// Unit is the default unit of measure ("pcs", "kg", "bags")
	Unit string `db:"unit" json:"unit"`

	// UnitPrice is the default selling price
	UnitPrice decimal.Decimal `db:"unit_price" json:"unitPrice"`

	// TaxRatePercent and TaxInclusive are the line-item tax defaults
	// applied when the product is added to a document
	TaxRatePercent decimal.Decimal `db:"tax_rate_percent" json:"taxRatePercent"`
	TaxInclusive   bool            `db:"tax_inclusive" json:"taxInclusive"`

	// Category groups products for browsing ("Cement", "Roofing")
	Category *string `db:"category" json:"category,omitempty"`
}

// NewProduct creates a new Product for the company.
func NewProduct(companyID id.ID, name string, unitPrice decimal.Decimal) *Product {
	return &Product{
		Catalog:   entity.NewCatalog(companyID, "", name),
		Unit:      "pcs",
		UnitPrice: unitPrice,
	}
}

// Validate implements entity.Validatable interface.
func (p *Product) Validate(ctx context.Context) error {
	if err := p.Catalog.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(p.CompanyID) {
		return apperror.NewValidation("company is required").
			WithDetail("field", "companyId")
	}

	if p.UnitPrice.IsNegative() {
		return apperror.NewValidation("unit price must not be negative").
			WithDetail("field", "unitPrice").
			WithDetail("value", p.UnitPrice.String())
	}

	if p.TaxRatePercent.IsNegative() || p.TaxRatePercent.GreaterThan(decimal.NewFromInt(100)) {
		return apperror.NewValidation("tax rate must be between 0 and 100").
			WithDetail("field", "taxRatePercent").
			WithDetail("value", p.TaxRatePercent.String())
	}

	return nil
}
