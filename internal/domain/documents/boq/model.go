// Package boq provides the Bill of Quantities document and its conversion
// lifecycle: a BOQ is drafted, priced, and converted into an Invoice
// exactly once. Deleting that invoice reverts the BOQ to draft.
package boq

import (
	"time"

	"buildledger/internal/core/apperror"
	"buildledger/internal/core/entity"
	"buildledger/internal/core/id"
	"buildledger/internal/domain/documents"
)

// Boq is a section-backed bill of quantities.
type Boq struct {
	documents.SectionDocument

	// ConvertedToInvoiceID and ConvertedAt are set on conversion and
	// cleared on reversal; both nil while the BOQ is a draft
	ConvertedToInvoiceID *id.ID     `db:"converted_to_invoice_id" json:"convertedToInvoiceId,omitempty"`
	ConvertedAt          *time.Time `db:"converted_at" json:"convertedAt,omitempty"`
}

// NewBoq creates a draft BOQ.
func NewBoq(companyID, customerID id.ID) *Boq {
	b := &Boq{
		SectionDocument: documents.NewSectionDocument(companyID),
	}
	b.CustomerID = customerID
	return b
}

// Base implements documents.Doc.
func (b *Boq) Base() *documents.SectionDocument {
	return &b.SectionDocument
}

// IsConverted reports whether the BOQ currently links to an invoice.
func (b *Boq) IsConverted() bool {
	return b.Status == entity.StatusConverted
}

// CanConvert checks the draft → converted transition.
func (b *Boq) CanConvert() error {
	switch b.Status {
	case entity.StatusConverted:
		return apperror.NewBusinessRule(
			apperror.CodeAlreadyConverted,
			"BOQ has already been converted to an invoice.",
		).WithDetail("boq_id", b.ID.String())
	case entity.StatusCancelled:
		return apperror.NewBusinessRule(
			apperror.CodeDocumentCancelled,
			"Cancelled BOQ cannot be converted.",
		).WithDetail("boq_id", b.ID.String())
	}
	return nil
}

// MarkConverted records the conversion.
func (b *Boq) MarkConverted(invoiceID id.ID, at time.Time) {
	b.Status = entity.StatusConverted
	b.ConvertedToInvoiceID = &invoiceID
	b.ConvertedAt = &at
	b.Touch()
}

// RevertToDraft clears the conversion link.
func (b *Boq) RevertToDraft() {
	b.Status = entity.StatusDraft
	b.ConvertedToInvoiceID = nil
	b.ConvertedAt = nil
	b.Touch()
}

// CanModify forbids editing a converted BOQ; revert it first.
func (b *Boq) CanModify() error {
	if b.IsConverted() {
		return apperror.NewBusinessRule(
			apperror.CodeAlreadyConverted,
			"Converted BOQ cannot be modified. Delete the invoice to revert it to draft.",
		).WithDetail("boq_id", b.ID.String())
	}
	return b.Document.CanModify()
}
