package entity

import (
	"context"
	"time"

	"buildledger/internal/core/apperror"
	"buildledger/internal/core/id"
)

// Document status values shared by all billing documents.
// Quotations and invoices move draft → sent → paid/cancelled;
// BOQs use draft/converted (see the boq package for the transition rules).
const (
	StatusDraft     = "draft"
	StatusSent      = "sent"
	StatusPaid      = "paid"
	StatusCancelled = "cancelled"
	StatusConverted = "converted"
)

// Document is the base header for billing documents:
// quotations, invoices, BOQs, proforma invoices, payments.
type Document struct {
	BaseDocument

	// CompanyID is the owning company. Every query filters on it;
	// rows never cross company boundaries.
	CompanyID id.ID `db:"company_id" json:"companyId"`

	// Number is the document number (auto-generated, unique within type+year)
	Number string `db:"number" json:"number"`

	// CustomerID references the customer catalog
	CustomerID id.ID `db:"customer_id" json:"customerId"`

	// IssueDate is the business date of the document
	IssueDate time.Time `db:"issue_date" json:"issueDate"`

	// DueDate is optional (invoices, proformas)
	DueDate *time.Time `db:"due_date" json:"dueDate,omitempty"`

	// CurrencyCode is the ISO 4217 code all amounts are denominated in
	CurrencyCode string `db:"currency_code" json:"currencyCode"`

	// Status is the document lifecycle state
	Status string `db:"status" json:"status"`

	// Notes and Terms are free text printed on the document
	Notes string `db:"notes" json:"notes,omitempty"`
	Terms string `db:"terms" json:"terms,omitempty"`
}

// NewDocument creates a new Document header for the given company.
func NewDocument(companyID id.ID) Document {
	return Document{
		BaseDocument: NewBaseDocument(),
		CompanyID:    companyID,
		IssueDate:    time.Now().UTC(),
		CurrencyCode: "KES",
		Status:       StatusDraft,
	}
}

// Validate implements Validatable interface.
func (d *Document) Validate(ctx context.Context) error {
	if id.IsNil(d.CompanyID) {
		return apperror.NewValidation("company is required").
			WithDetail("field", "companyId")
	}

	if id.IsNil(d.CustomerID) {
		return apperror.NewValidation("customer is required").
			WithDetail("field", "customerId")
	}

	if d.IssueDate.IsZero() {
		return apperror.NewValidation("issue date is required").
			WithDetail("field", "issueDate")
	}

	if d.CurrencyCode == "" {
		return apperror.NewValidation("currency code is required").
			WithDetail("field", "currencyCode")
	}

	return nil
}

// CanModify checks if the document can still be edited.
func (d *Document) CanModify() error {
	if d.Status == StatusCancelled {
		return apperror.NewBusinessRule(
			apperror.CodeDocumentCancelled,
			"Cannot modify cancelled document.",
		).WithDetail("document_id", d.ID.String())
	}
	return nil
}

// GetID returns the document ID.
func (d *Document) GetID() id.ID {
	return d.ID
}

// IsBackdated checks if the issue date is in the past.
func (d *Document) IsBackdated() bool {
	return d.IssueDate.Before(time.Now().UTC().Truncate(24 * time.Hour))
}
