package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"buildledger/internal/core/apperror"
	"buildledger/internal/core/id"
	"buildledger/internal/domain/documents/invoice"
	"buildledger/internal/infrastructure/storage/postgres"
)

const (
	invoicesTable    = "doc_invoices"
	invoiceRowsTable = "doc_invoice_rows"
)

var _ invoice.Repository = (*InvoiceRepo)(nil)

// InvoiceRepo implements invoice.Repository.
type InvoiceRepo struct {
	*BaseDocumentRepo[*invoice.Invoice]
	txManager *postgres.TxManager
}

// NewInvoiceRepo creates a new invoice repository.
func NewInvoiceRepo(txManager *postgres.TxManager) *InvoiceRepo {
	return &InvoiceRepo{
		BaseDocumentRepo: NewBaseDocumentRepo[*invoice.Invoice](
			txManager,
			invoicesTable,
			invoiceRowsTable,
			postgres.ExtractDBColumns[invoice.Invoice](),
			func() *invoice.Invoice { return &invoice.Invoice{} },
		),
		txManager: txManager,
	}
}

// FindBySourceBoq retrieves the invoice a BOQ was converted into.
func (r *InvoiceRepo) FindBySourceBoq(ctx context.Context, companyID, boqID id.ID) (*invoice.Invoice, error) {
	q := r.baseSelect(companyID).
		Where(squirrel.Eq{"source_boq_id": boqID}).
		Where(squirrel.Eq{"deletion_mark": false}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var inv invoice.Invoice
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &inv, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("invoice", boqID.String())
		}
		return nil, fmt.Errorf("find by source boq: %w", err)
	}

	return &inv, nil
}
