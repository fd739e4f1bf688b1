package entity

import (
	"context"

	"buildledger/internal/core/apperror"
	"buildledger/internal/core/id"
)

// Catalog is the base type for reference data.
// Examples: Customers, Products, TaxSettings, Currencies.
type Catalog struct {
	BaseCatalog

	// CompanyID is the owning company (nil UUID for shared reference data
	// such as currencies)
	CompanyID id.ID `db:"company_id" json:"companyId"`

	// Code is a human-readable identifier (unique within company)
	Code string `db:"code" json:"code"`

	// Name is the display name
	Name string `db:"name" json:"name"`
}

// NewCatalog creates a new Catalog with generated ID.
func NewCatalog(companyID id.ID, code, name string) Catalog {
	return Catalog{
		BaseCatalog: NewBaseCatalog(),
		CompanyID:   companyID,
		Code:        code,
		Name:        name,
	}
}

// Validate implements Validatable interface.
func (c *Catalog) Validate(ctx context.Context) error {
	if c.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}

	// Code can be auto-generated, so it's optional at creation
	// but required at save time

	return nil
}
