// Package payment provides the Payment document: money received against an
// invoice. Payments have no sections; they are plain headers with an amount.
package payment

import (
	"context"

	"github.com/shopspring/decimal"

	"buildledger/internal/core/apperror"
	"buildledger/internal/core/entity"
	"buildledger/internal/core/id"
)

// Payment methods accepted by the business.
const (
	MethodCash         = "cash"
	MethodMpesa        = "mpesa"
	MethodBankTransfer = "bank_transfer"
	MethodCheque       = "cheque"
)

// Payment records one receipt against an invoice.
type Payment struct {
	entity.Document

	InvoiceID id.ID           `db:"invoice_id" json:"invoiceId"`
	Amount    decimal.Decimal `db:"amount" json:"amount"`
	Method    string          `db:"method" json:"method"`

	// Reference is the external transaction reference (M-Pesa code,
	// cheque number)
	Reference string `db:"reference" json:"reference,omitempty"`
}

// NewPayment creates a payment against the invoice.
func NewPayment(companyID, customerID, invoiceID id.ID, amount decimal.Decimal, method string) *Payment {
	p := &Payment{
		Document:  entity.NewDocument(companyID),
		InvoiceID: invoiceID,
		Amount:    amount,
		Method:    method,
	}
	p.CustomerID = customerID
	return p
}

// Validate implements entity.Validatable.
func (p *Payment) Validate(ctx context.Context) error {
	if err := p.Document.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(p.InvoiceID) {
		return apperror.NewValidation("invoice is required").
			WithDetail("field", "invoiceId")
	}

	if !p.Amount.IsPositive() {
		return apperror.NewValidation("payment amount must be positive").
			WithDetail("field", "amount").
			WithDetail("value", p.Amount.String())
	}

	switch p.Method {
	case MethodCash, MethodMpesa, MethodBankTransfer, MethodCheque:
	default:
		return apperror.NewValidation("unknown payment method").
			WithDetail("field", "method").
			WithDetail("value", p.Method)
	}

	return nil
}
