// Package report_repo provides PostgreSQL implementations for report queries.
package report_repo

import (
	"context"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/shopspring/decimal"

	"buildledger/internal/core/apperror"
	"buildledger/internal/core/id"
	"buildledger/internal/domain/reports"
	"buildledger/internal/infrastructure/storage/postgres"
)

var _ reports.Repository = (*ReportRepo)(nil)

// ReportRepo implements reports.Repository.
type ReportRepo struct {
	txManager *postgres.TxManager
}

// NewReportRepo creates a new report repository.
func NewReportRepo(txManager *postgres.TxManager) *ReportRepo {
	return &ReportRepo{txManager: txManager}
}

// GetReceivablesSummary aggregates billed/paid/due per customer from
// non-deleted, non-cancelled invoices.
func (r *ReportRepo) GetReceivablesSummary(ctx context.Context, companyID id.ID, filter reports.ReceivablesFilter) (*reports.ReceivablesSummary, error) {
	query := `
		SELECT
			i.customer_id,
			c.name AS customer_name,
			COUNT(*) AS invoice_count,
			COALESCE(SUM(i.total_amount), 0) AS total_billed,
			COALESCE(SUM(i.paid_amount), 0) AS total_paid,
			COALESCE(SUM(i.total_amount - i.paid_amount), 0) AS balance_due,
			COUNT(*) FILTER (
				WHERE i.due_date IS NOT NULL
				  AND i.due_date < NOW()
				  AND i.total_amount > i.paid_amount
			) AS overdue_count
		FROM doc_invoices i
		JOIN cat_customers c ON c.id = i.customer_id
		WHERE i.company_id = $1
		  AND i.deletion_mark = false
		  AND i.status <> 'cancelled'
	`
	args := []any{companyID}
	argIndex := 2

	if filter.CustomerID != nil {
		query += fmt.Sprintf(" AND i.customer_id = $%d", argIndex)
		args = append(args, *filter.CustomerID)
		argIndex++
	}

	if filter.DateFrom != nil {
		query += fmt.Sprintf(" AND i.issue_date >= $%d", argIndex)
		args = append(args, *filter.DateFrom)
		argIndex++
	}

	if filter.DateTo != nil {
		query += fmt.Sprintf(" AND i.issue_date <= $%d", argIndex)
		args = append(args, *filter.DateTo)
		argIndex++
	}

	query += `
		GROUP BY i.customer_id, c.name
	`

	if !filter.IncludeSettled {
		query += " HAVING SUM(i.total_amount - i.paid_amount) > 0"
	}

	query += " ORDER BY balance_due DESC"

	var rows []reports.ReceivablesRow
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("receivables summary: %w", err)
	}

	summary := &reports.ReceivablesSummary{
		Rows:        rows,
		TotalBilled: decimal.Zero,
		TotalPaid:   decimal.Zero,
		TotalDue:    decimal.Zero,
	}
	for _, row := range rows {
		summary.TotalBilled = summary.TotalBilled.Add(row.TotalBilled)
		summary.TotalPaid = summary.TotalPaid.Add(row.TotalPaid)
		summary.TotalDue = summary.TotalDue.Add(row.BalanceDue)
	}

	return summary, nil
}

// statusTables whitelists the tables GetStatusBreakdown may touch. The
// table name is spliced into SQL, so it must never come from user input.
var statusTables = map[string]bool{
	"doc_quotations":        true,
	"doc_boqs":              true,
	"doc_invoices":          true,
	"doc_proforma_invoices": true,
}

// GetStatusBreakdown counts documents of one table per status.
func (r *ReportRepo) GetStatusBreakdown(ctx context.Context, companyID id.ID, docTable string) ([]reports.StatusBreakdownRow, error) {
	if !statusTables[docTable] {
		return nil, apperror.NewValidation("unknown document table").WithDetail("table", docTable)
	}

	query := fmt.Sprintf(`
		SELECT status, COUNT(*) AS count, COALESCE(SUM(total_amount), 0) AS total_amount
		FROM %s
		WHERE company_id = $1 AND deletion_mark = false
		GROUP BY status
		ORDER BY status
	`, docTable)

	var rows []reports.StatusBreakdownRow
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &rows, query, companyID); err != nil {
		return nil, fmt.Errorf("status breakdown: %w", err)
	}

	return rows, nil
}
