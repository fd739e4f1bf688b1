package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"buildledger/internal/core/apperror"
	"buildledger/internal/core/id"
	"buildledger/internal/domain/documents"
	"buildledger/internal/domain/documents/boq"
	"buildledger/internal/domain/documents/invoice"
)

// CreateDocumentRequest is the shared create payload for quotations,
// invoices, BOQs and proforma invoices.
type CreateDocumentRequest struct {
	CustomerID   string           `json:"customerId" binding:"required"`
	IssueDate    *time.Time       `json:"issueDate,omitempty"`
	DueDate      *time.Time       `json:"dueDate,omitempty"`
	CurrencyCode string           `json:"currencyCode,omitempty"`
	Notes        string           `json:"notes,omitempty"`
	Terms        string           `json:"terms,omitempty"`
	Sections     []SectionRequest `json:"sections,omitempty"`
}

// Apply fills a freshly constructed document from the request.
func (r *CreateDocumentRequest) Apply(doc *documents.SectionDocument) error {
	customerID, err := id.Parse(r.CustomerID)
	if err != nil {
		return apperror.NewValidation("invalid customer id").
			WithDetail("field", "customerId")
	}
	doc.CustomerID = customerID

	if r.IssueDate != nil {
		doc.IssueDate = *r.IssueDate
	}
	doc.DueDate = r.DueDate
	if r.CurrencyCode != "" {
		doc.CurrencyCode = r.CurrencyCode
	}
	doc.Notes = r.Notes
	doc.Terms = r.Terms

	secs, err := ToSections(r.Sections)
	if err != nil {
		return err
	}
	doc.Sections = secs
	doc.Recalculate()
	return nil
}

// UpdateDocumentRequest is the shared update payload. Status is not part of
// it; lifecycle transitions go through dedicated endpoints.
type UpdateDocumentRequest struct {
	CustomerID   *string          `json:"customerId,omitempty"`
	IssueDate    *time.Time       `json:"issueDate,omitempty"`
	DueDate      *time.Time       `json:"dueDate,omitempty"`
	CurrencyCode *string          `json:"currencyCode,omitempty"`
	Notes        *string          `json:"notes,omitempty"`
	Terms        *string          `json:"terms,omitempty"`
	Sections     []SectionRequest `json:"sections,omitempty"`
	Version      int              `json:"version" binding:"required,min=1"`
}

// Apply overlays the request onto the loaded document.
func (r *UpdateDocumentRequest) Apply(doc *documents.SectionDocument) error {
	if r.CustomerID != nil {
		customerID, err := id.Parse(*r.CustomerID)
		if err != nil {
			return apperror.NewValidation("invalid customer id").
				WithDetail("field", "customerId")
		}
		doc.CustomerID = customerID
	}
	if r.IssueDate != nil {
		doc.IssueDate = *r.IssueDate
	}
	if r.DueDate != nil {
		doc.DueDate = r.DueDate
	}
	if r.CurrencyCode != nil {
		doc.CurrencyCode = *r.CurrencyCode
	}
	if r.Notes != nil {
		doc.Notes = *r.Notes
	}
	if r.Terms != nil {
		doc.Terms = *r.Terms
	}
	if r.Sections != nil {
		secs, err := ToSections(r.Sections)
		if err != nil {
			return err
		}
		doc.Sections = secs
	}
	doc.Version = r.Version
	doc.Recalculate()
	return nil
}

// DocumentResponse is the shared response shape for section-backed documents.
type DocumentResponse struct {
	ID           string            `json:"id"`
	Number       string            `json:"number"`
	CustomerID   string            `json:"customerId"`
	IssueDate    time.Time         `json:"issueDate"`
	DueDate      *time.Time        `json:"dueDate,omitempty"`
	CurrencyCode string            `json:"currencyCode"`
	Status       string            `json:"status"`
	Notes        string            `json:"notes,omitempty"`
	Terms        string            `json:"terms,omitempty"`
	Subtotal     decimal.Decimal   `json:"subtotal"`
	TaxTotal     decimal.Decimal   `json:"taxTotal"`
	LaborTotal   decimal.Decimal   `json:"laborTotal"`
	TotalAmount  decimal.Decimal   `json:"totalAmount"`
	Sections     []SectionResponse `json:"sections"`
	DeletionMark bool              `json:"deletionMark"`
	Version      int               `json:"version"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}

// FromSectionDocument maps the shared document fields.
func FromSectionDocument(d *documents.SectionDocument) DocumentResponse {
	return DocumentResponse{
		ID:           d.ID.String(),
		Number:       d.Number,
		CustomerID:   d.CustomerID.String(),
		IssueDate:    d.IssueDate,
		DueDate:      d.DueDate,
		CurrencyCode: d.CurrencyCode,
		Status:       d.Status,
		Notes:        d.Notes,
		Terms:        d.Terms,
		Subtotal:     d.Subtotal,
		TaxTotal:     d.TaxTotal,
		LaborTotal:   d.LaborTotal,
		TotalAmount:  d.TotalAmount,
		Sections:     FromSections(d.Sections),
		DeletionMark: d.DeletionMark,
		Version:      d.Version,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

// InvoiceResponse adds payment tracking to the shared shape.
type InvoiceResponse struct {
	DocumentResponse
	PaidAmount  decimal.Decimal `json:"paidAmount"`
	BalanceDue  decimal.Decimal `json:"balanceDue"`
	SourceBoqID *string         `json:"sourceBoqId,omitempty"`
}

// FromInvoice maps an invoice.
func FromInvoice(inv *invoice.Invoice) InvoiceResponse {
	resp := InvoiceResponse{
		DocumentResponse: FromSectionDocument(&inv.SectionDocument),
		PaidAmount:       inv.PaidAmount,
		BalanceDue:       inv.BalanceDue(),
	}
	if inv.SourceBoqID != nil {
		s := inv.SourceBoqID.String()
		resp.SourceBoqID = &s
	}
	return resp
}

// BoqResponse adds conversion tracking to the shared shape.
type BoqResponse struct {
	DocumentResponse
	ConvertedToInvoiceID *string    `json:"convertedToInvoiceId,omitempty"`
	ConvertedAt          *time.Time `json:"convertedAt,omitempty"`
}

// FromBoq maps a BOQ.
func FromBoq(b *boq.Boq) BoqResponse {
	resp := BoqResponse{
		DocumentResponse: FromSectionDocument(&b.SectionDocument),
		ConvertedAt:      b.ConvertedAt,
	}
	if b.ConvertedToInvoiceID != nil {
		s := b.ConvertedToInvoiceID.String()
		resp.ConvertedToInvoiceID = &s
	}
	return resp
}
