// Package customer provides the Customer catalog: the companies and
// individuals documents are billed to.
package customer

import (
	"context"
	"strings"

	"buildledger/internal/core/apperror"
	"buildledger/internal/core/entity"
	"buildledger/internal/core/id"
)

// Customer represents a billing counterparty.
type Customer struct {
	entity.Catalog

	Email         *string `db:"email" json:"email,omitempty"`
	Phone         *string `db:"phone" json:"phone,omitempty"`
	Address       *string `db:"address" json:"address,omitempty"`
	City          *string `db:"city" json:"city,omitempty"`
	ContactPerson *string `db:"contact_person" json:"contactPerson,omitempty"`

	// TaxPIN is the customer's tax identification (KRA PIN)
	TaxPIN *string `db:"tax_pin" json:"taxPin,omitempty"`
}

// NewCustomer creates a new Customer for the company.
func NewCustomer(companyID id.ID, name string) *Customer {
	return &Customer{
		Catalog: entity.NewCatalog(companyID, "", name),
	}
}

// Validate implements entity.Validatable interface.
func (c *Customer) Validate(ctx context.Context) error {
	if err := c.Catalog.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(c.CompanyID) {
		return apperror.NewValidation("company is required").
			WithDetail("field", "companyId")
	}

	if c.Email != nil && *c.Email != "" && !strings.Contains(*c.Email, "@") {
		return apperror.NewValidation("email address is malformed").
			WithDetail("field", "email").
			WithDetail("value", *c.Email)
	}

	return nil
}

// DisplayAddress joins the address parts for printing.
func (c *Customer) DisplayAddress() string {
	var parts []string
	if c.Address != nil && *c.Address != "" {
		parts = append(parts, *c.Address)
	}
	if c.City != nil && *c.City != "" {
		parts = append(parts, *c.City)
	}
	return strings.Join(parts, ", ")
}
