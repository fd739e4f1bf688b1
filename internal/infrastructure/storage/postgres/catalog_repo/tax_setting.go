package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"buildledger/internal/core/apperror"
	"buildledger/internal/core/id"
	"buildledger/internal/domain/catalogs/taxsetting"
	"buildledger/internal/infrastructure/storage/postgres"
)

const taxSettingTable = "cat_tax_settings"

var _ taxsetting.Repository = (*TaxSettingRepo)(nil)

// TaxSettingRepo implements taxsetting.Repository.
type TaxSettingRepo struct {
	*BaseCatalogRepo[*taxsetting.TaxSetting]
	txManager *postgres.TxManager
}

// NewTaxSettingRepo creates a new tax setting repository.
func NewTaxSettingRepo(txManager *postgres.TxManager) *TaxSettingRepo {
	return &TaxSettingRepo{
		BaseCatalogRepo: NewBaseCatalogRepo[*taxsetting.TaxSetting](
			txManager,
			taxSettingTable,
			postgres.ExtractDBColumns[taxsetting.TaxSetting](),
			func() *taxsetting.TaxSetting { return &taxsetting.TaxSetting{} },
		),
		txManager: txManager,
	}
}

// FindDefault retrieves the company's default tax rate, if any.
func (r *TaxSettingRepo) FindDefault(ctx context.Context, companyID id.ID) (*taxsetting.TaxSetting, error) {
	q := r.baseSelect(companyID).
		Where(squirrel.Eq{"is_default": true}).
		Where(squirrel.Eq{"deletion_mark": false}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var t taxsetting.TaxSetting
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &t, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("tax_setting", "default")
		}
		return nil, fmt.Errorf("find default: %w", err)
	}

	return &t, nil
}

// ClearDefault clears the default flag on the company's tax settings.
func (r *TaxSettingRepo) ClearDefault(ctx context.Context, companyID id.ID) error {
	q := r.Builder().
		Update(taxSettingTable).
		Set("is_default", false).
		Where(squirrel.Eq{"company_id": companyID}).
		Where(squirrel.Eq{"is_default": true})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("clear default: %w", err)
	}

	return nil
}
