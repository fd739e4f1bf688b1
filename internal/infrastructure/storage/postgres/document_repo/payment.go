package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"buildledger/internal/core/apperror"
	"buildledger/internal/core/id"
	"buildledger/internal/domain"
	"buildledger/internal/domain/documents"
	"buildledger/internal/domain/documents/payment"
	"buildledger/internal/infrastructure/storage/postgres"
)

const paymentsTable = "doc_payments"

var _ payment.Repository = (*PaymentRepo)(nil)

// PaymentRepo implements payment.Repository. Payments have no line rows;
// the repository is a plain header store.
type PaymentRepo struct {
	txManager  *postgres.TxManager
	selectCols []string
}

// NewPaymentRepo creates a new payment repository.
func NewPaymentRepo(txManager *postgres.TxManager) *PaymentRepo {
	return &PaymentRepo{
		txManager:  txManager,
		selectCols: postgres.ExtractDBColumns[payment.Payment](),
	}
}

func (r *PaymentRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func (r *PaymentRepo) baseSelect(companyID id.ID) squirrel.SelectBuilder {
	return r.builder().
		Select(r.selectCols...).
		From(paymentsTable).
		Where(squirrel.Eq{"company_id": companyID})
}

// Create inserts a new payment.
func (r *PaymentRepo) Create(ctx context.Context, p *payment.Payment) error {
	data := postgres.StructToMap(p)

	filteredData := make(map[string]any, len(r.selectCols))
	for _, col := range r.selectCols {
		if val, ok := data[col]; ok {
			filteredData[col] = val
		}
	}

	q := r.builder().
		Insert(paymentsTable).
		SetMap(filteredData)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}

	return nil
}

// GetByID retrieves a payment by ID within the company.
func (r *PaymentRepo) GetByID(ctx context.Context, companyID, paymentID id.ID) (*payment.Payment, error) {
	q := r.baseSelect(companyID).
		Where(squirrel.Eq{"id": paymentID})

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var p payment.Payment
	if err := pgxscan.Get(ctx, r.txManager.GetQuerier(ctx), &p, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("payment", paymentID.String())
		}
		return nil, fmt.Errorf("get payment: %w", err)
	}

	return &p, nil
}

// Delete removes a payment. Physical delete: the invoice keeps the money
// trail through its paid_amount, and the audit log keeps the snapshot.
func (r *PaymentRepo) Delete(ctx context.Context, companyID, paymentID id.ID) error {
	q := r.builder().
		Delete(paymentsTable).
		Where(squirrel.Eq{"company_id": companyID}).
		Where(squirrel.Eq{"id": paymentID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	result, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete payment: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("payment", paymentID.String())
	}

	return nil
}

// ListByInvoice retrieves all payments recorded against one invoice.
func (r *PaymentRepo) ListByInvoice(ctx context.Context, companyID, invoiceID id.ID) ([]*payment.Payment, error) {
	q := r.baseSelect(companyID).
		Where(squirrel.Eq{"invoice_id": invoiceID}).
		OrderBy("issue_date ASC, created_at ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []*payment.Payment
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("list by invoice: %w", err)
	}

	return items, nil
}

// List retrieves payments with standard document filtering.
func (r *PaymentRepo) List(ctx context.Context, companyID id.ID, f documents.ListFilter) (domain.ListResult[*payment.Payment], error) {
	result := domain.ListResult[*payment.Payment]{
		Limit:  f.Limit,
		Offset: f.Offset,
	}

	q := r.baseSelect(companyID)

	if f.CustomerID != nil {
		q = q.Where(squirrel.Eq{"customer_id": *f.CustomerID})
	}

	if f.DateFrom != nil {
		q = q.Where(squirrel.GtOrEq{"issue_date": *f.DateFrom})
	}

	if f.DateTo != nil {
		q = q.Where(squirrel.LtOrEq{"issue_date": *f.DateTo})
	}

	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"number": pattern},
			squirrel.ILike{"reference": pattern},
		})
	}

	countQ := r.builder().Select("COUNT(*)").FromSelect(q, "sub")
	countSQL, countArgs, err := countQ.ToSql()
	if err != nil {
		return result, fmt.Errorf("build count: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&result.TotalCount); err != nil {
		return result, fmt.Errorf("count: %w", err)
	}

	q = q.OrderBy("issue_date DESC")

	if f.Limit > 0 {
		q = q.Limit(uint64(f.Limit))
	}
	if f.Offset > 0 {
		q = q.Offset(uint64(f.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return result, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Select(ctx, querier, &result.Items, sql, args...); err != nil {
		return result, fmt.Errorf("list: %w", err)
	}

	return result, nil
}
