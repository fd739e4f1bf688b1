package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"buildledger/internal/core/apperror"
	"buildledger/internal/core/id"
	"buildledger/internal/domain/catalogs/currency"
	"buildledger/internal/infrastructure/storage/postgres"
)

const currencyTable = "cat_currencies"

// Compile-time check.
var _ currency.Repository = (*CurrencyRepo)(nil)

// CurrencyRepo implements currency.Repository. Currencies are shared
// reference data: rows carry the nil company ID.
type CurrencyRepo struct {
	*BaseCatalogRepo[*currency.Currency]
	txManager *postgres.TxManager
}

// NewCurrencyRepo creates a new currency repository.
func NewCurrencyRepo(txManager *postgres.TxManager) *CurrencyRepo {
	return &CurrencyRepo{
		BaseCatalogRepo: NewBaseCatalogRepo[*currency.Currency](
			txManager,
			currencyTable,
			postgres.ExtractDBColumns[currency.Currency](),
			func() *currency.Currency { return &currency.Currency{} },
		),
		txManager: txManager,
	}
}

// FindByISOCode retrieves currency by ISO code.
func (r *CurrencyRepo) FindByISOCode(ctx context.Context, isoCode string) (*currency.Currency, error) {
	q := r.baseSelect(id.Nil()).
		Where(squirrel.Eq{"iso_code": isoCode}).
		Where(squirrel.Eq{"deletion_mark": false}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var c currency.Currency
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &c, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("currency", isoCode)
		}
		return nil, fmt.Errorf("find by iso code: %w", err)
	}

	return &c, nil
}

// ClearBase clears the base flag on all currencies.
func (r *CurrencyRepo) ClearBase(ctx context.Context) error {
	q := r.Builder().
		Update(currencyTable).
		Set("is_base", false).
		Where(squirrel.Eq{"is_base": true})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("clear base: %w", err)
	}

	return nil
}
