// Package proforma provides the Proforma Invoice document: a preliminary
// bill issued before the final invoice, often used to request an advance.
package proforma

import (
	"buildledger/internal/core/id"
	"buildledger/internal/domain/documents"
)

// Proforma is a section-backed preliminary invoice.
type Proforma struct {
	documents.SectionDocument
}

// NewProforma creates a draft proforma invoice.
func NewProforma(companyID, customerID id.ID) *Proforma {
	p := &Proforma{
		SectionDocument: documents.NewSectionDocument(companyID),
	}
	p.CustomerID = customerID
	return p
}

// Base implements documents.Doc.
func (p *Proforma) Base() *documents.SectionDocument {
	return &p.SectionDocument
}
