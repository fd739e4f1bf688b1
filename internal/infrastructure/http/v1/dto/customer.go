package dto

import (
	"buildledger/internal/core/id"
	"buildledger/internal/domain/catalogs/customer"
)

// --- Request DTOs ---

// CreateCustomerRequest is the request body for creating a customer.
type CreateCustomerRequest struct {
	Code          string  `json:"code"`
	Name          string  `json:"name" binding:"required"`
	Email         *string `json:"email" binding:"omitempty,email"`
	Phone         *string `json:"phone"`
	Address       *string `json:"address"`
	City          *string `json:"city"`
	ContactPerson *string `json:"contactPerson"`
	TaxPIN        *string `json:"taxPin"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateCustomerRequest) ToEntity(companyID id.ID) *customer.Customer {
	c := customer.NewCustomer(companyID, r.Name)
	c.Code = r.Code
	c.Email = r.Email
	c.Phone = r.Phone
	c.Address = r.Address
	c.City = r.City
	c.ContactPerson = r.ContactPerson
	c.TaxPIN = r.TaxPIN
	return c
}

// UpdateCustomerRequest is the request body for updating a customer.
type UpdateCustomerRequest struct {
	Code          string  `json:"code"`
	Name          string  `json:"name" binding:"required"`
	Email         *string `json:"email" binding:"omitempty,email"`
	Phone         *string `json:"phone"`
	Address       *string `json:"address"`
	City          *string `json:"city"`
	ContactPerson *string `json:"contactPerson"`
	TaxPIN        *string `json:"taxPin"`
	Version       int     `json:"version" binding:"required,min=1"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateCustomerRequest) ApplyTo(c *customer.Customer) {
	c.Code = r.Code
	c.Name = r.Name
	c.Email = r.Email
	c.Phone = r.Phone
	c.Address = r.Address
	c.City = r.City
	c.ContactPerson = r.ContactPerson
	c.TaxPIN = r.TaxPIN
	c.Version = r.Version
}

// --- Response DTOs ---

// CustomerResponse is the response body for a customer.
type CustomerResponse struct {
	CatalogResponse
	Email         *string `json:"email,omitempty"`
	Phone         *string `json:"phone,omitempty"`
	Address       *string `json:"address,omitempty"`
	City          *string `json:"city,omitempty"`
	ContactPerson *string `json:"contactPerson,omitempty"`
	TaxPIN        *string `json:"taxPin,omitempty"`
}

// FromCustomer maps the entity to its response DTO.
func FromCustomer(c *customer.Customer) CustomerResponse {
	return CustomerResponse{
		CatalogResponse: FromCatalog(c.Catalog),
		Email:           c.Email,
		Phone:           c.Phone,
		Address:         c.Address,
		City:            c.City,
		ContactPerson:   c.ContactPerson,
		TaxPIN:          c.TaxPIN,
	}
}
