// Package invoice provides the Invoice document: the final bill tracking
// payments against its total.
package invoice

import (
	"context"

	"github.com/shopspring/decimal"

	"buildledger/internal/core/apperror"
	"buildledger/internal/core/id"
	"buildledger/internal/domain/documents"
)

// Invoice is a section-backed bill with payment tracking.
type Invoice struct {
	documents.SectionDocument

	// PaidAmount accumulates recorded payments
	PaidAmount decimal.Decimal `db:"paid_amount" json:"paidAmount"`

	// SourceBoqID links back to the BOQ this invoice was converted from
	SourceBoqID *id.ID `db:"source_boq_id" json:"sourceBoqId,omitempty"`
}

// NewInvoice creates a draft invoice.
func NewInvoice(companyID, customerID id.ID) *Invoice {
	inv := &Invoice{
		SectionDocument: documents.NewSectionDocument(companyID),
		PaidAmount:      decimal.Zero,
	}
	inv.CustomerID = customerID
	return inv
}

// Base implements documents.Doc.
func (inv *Invoice) Base() *documents.SectionDocument {
	return &inv.SectionDocument
}

// BalanceDue is the outstanding amount.
func (inv *Invoice) BalanceDue() decimal.Decimal {
	return inv.TotalAmount.Sub(inv.PaidAmount)
}

// Validate implements entity.Validatable.
func (inv *Invoice) Validate(ctx context.Context) error {
	if err := inv.SectionDocument.Validate(ctx); err != nil {
		return err
	}
	if inv.PaidAmount.IsNegative() {
		return apperror.NewValidation("paid amount must not be negative").
			WithDetail("field", "paidAmount")
	}
	return nil
}

// Aggregate includes the invoice-only paid and balance figures.
func (inv *Invoice) Aggregate() documents.Aggregate {
	agg := inv.SectionDocument.Aggregate()
	paid := inv.PaidAmount
	due := agg.GrandTotal.Sub(paid)
	agg.PaidAmount = &paid
	agg.BalanceDue = &due
	return agg
}
