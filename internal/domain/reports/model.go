// Package reports provides read-only analytical queries over documents.
package reports

import (
	"time"

	"github.com/shopspring/decimal"

	"buildledger/internal/core/id"
)

// ReceivablesFilter narrows the receivables summary.
type ReceivablesFilter struct {
	// CustomerID limits the report to one customer
	CustomerID *id.ID

	// DateFrom/DateTo bound invoice issue dates
	DateFrom *time.Time
	DateTo   *time.Time

	// IncludeSettled includes fully paid invoices in per-customer counts
	IncludeSettled bool
}

// ReceivablesRow is one customer's outstanding position.
type ReceivablesRow struct {
	CustomerID   id.ID           `db:"customer_id" json:"customerId"`
	CustomerName string          `db:"customer_name" json:"customerName"`
	InvoiceCount int64           `db:"invoice_count" json:"invoiceCount"`
	TotalBilled  decimal.Decimal `db:"total_billed" json:"totalBilled"`
	TotalPaid    decimal.Decimal `db:"total_paid" json:"totalPaid"`
	BalanceDue   decimal.Decimal `db:"balance_due" json:"balanceDue"`
	OverdueCount int64           `db:"overdue_count" json:"overdueCount"`
}

// ReceivablesSummary is the full report.
type ReceivablesSummary struct {
	GeneratedAt time.Time        `json:"generatedAt"`
	Rows        []ReceivablesRow `json:"rows"`
	TotalBilled decimal.Decimal  `json:"totalBilled"`
	TotalPaid   decimal.Decimal  `json:"totalPaid"`
	TotalDue    decimal.Decimal  `json:"totalDue"`
}

// StatusBreakdownRow counts documents of one type per status.
type StatusBreakdownRow struct {
	Status      string          `db:"status" json:"status"`
	Count       int64           `db:"count" json:"count"`
	TotalAmount decimal.Decimal `db:"total_amount" json:"totalAmount"`
}
