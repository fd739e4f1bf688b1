// Package quotation provides the Quotation document: a priced offer the
// customer can accept before invoicing.
package quotation

import (
	"buildledger/internal/core/id"
	"buildledger/internal/domain/documents"
)

// Quotation is a section-backed offer document.
type Quotation struct {
	documents.SectionDocument
}

// NewQuotation creates a draft quotation.
func NewQuotation(companyID, customerID id.ID) *Quotation {
	q := &Quotation{
		SectionDocument: documents.NewSectionDocument(companyID),
	}
	q.CustomerID = customerID
	return q
}

// Base implements documents.Doc.
func (q *Quotation) Base() *documents.SectionDocument {
	return &q.SectionDocument
}
