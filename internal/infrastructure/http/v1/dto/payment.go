package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"buildledger/internal/core/id"
	"buildledger/internal/domain/documents/payment"
)

// RecordPaymentRequest records a payment against an invoice. The invoice
// comes from the URL path.
type RecordPaymentRequest struct {
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	Method    string          `json:"method" binding:"required"`
	IssueDate *time.Time      `json:"issueDate,omitempty"`
	Reference string          `json:"reference,omitempty"`
	Notes     string          `json:"notes,omitempty"`
}

// ToEntity builds a Payment. Customer and currency are copied from the
// loaded invoice by the handler.
func (r *RecordPaymentRequest) ToEntity(companyID, customerID, invoiceID id.ID) *payment.Payment {
	p := payment.NewPayment(companyID, customerID, invoiceID, r.Amount, r.Method)
	if r.IssueDate != nil {
		p.IssueDate = *r.IssueDate
	}
	p.Reference = r.Reference
	p.Notes = r.Notes
	return p
}

// PaymentResponse is the API shape of a recorded payment.
type PaymentResponse struct {
	ID           string          `json:"id"`
	Number       string          `json:"number"`
	InvoiceID    string          `json:"invoiceId"`
	CustomerID   string          `json:"customerId"`
	Amount       decimal.Decimal `json:"amount"`
	Method       string          `json:"method"`
	Reference    string          `json:"reference,omitempty"`
	CurrencyCode string          `json:"currencyCode"`
	IssueDate    time.Time       `json:"issueDate"`
	Notes        string          `json:"notes,omitempty"`
	Version      int             `json:"version"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// FromPayment maps a payment.
func FromPayment(p *payment.Payment) PaymentResponse {
	return PaymentResponse{
		ID:           p.ID.String(),
		Number:       p.Number,
		InvoiceID:    p.InvoiceID.String(),
		CustomerID:   p.CustomerID.String(),
		Amount:       p.Amount,
		Method:       p.Method,
		Reference:    p.Reference,
		CurrencyCode: p.CurrencyCode,
		IssueDate:    p.IssueDate,
		Notes:        p.Notes,
		Version:      p.Version,
		CreatedAt:    p.CreatedAt,
	}
}

// FromPayments maps a payment list.
func FromPayments(items []*payment.Payment) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(items))
	for _, p := range items {
		out = append(out, FromPayment(p))
	}
	return out
}
