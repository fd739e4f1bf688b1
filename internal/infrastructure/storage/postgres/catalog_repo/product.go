package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"buildledger/internal/core/id"
	"buildledger/internal/domain/catalogs/product"
	"buildledger/internal/infrastructure/storage/postgres"
)

const productTable = "cat_products"

var _ product.Repository = (*ProductRepo)(nil)

// ProductRepo implements product.Repository.
type ProductRepo struct {
	*BaseCatalogRepo[*product.Product]
	txManager *postgres.TxManager
}

// NewProductRepo creates a new product repository.
func NewProductRepo(txManager *postgres.TxManager) *ProductRepo {
	return &ProductRepo{
		BaseCatalogRepo: NewBaseCatalogRepo[*product.Product](
			txManager,
			productTable,
			postgres.ExtractDBColumns[product.Product](),
			func() *product.Product { return &product.Product{} },
		),
		txManager: txManager,
	}
}

// ListByCategory retrieves products of one category within the company.
func (r *ProductRepo) ListByCategory(ctx context.Context, companyID id.ID, category string) ([]*product.Product, error) {
	q := r.baseSelect(companyID).
		Where(squirrel.Eq{"category": category}).
		Where(squirrel.Eq{"deletion_mark": false}).
		OrderBy("name ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []*product.Product
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &items, sql, args...); err != nil {
		return nil, fmt.Errorf("list by category: %w", err)
	}

	return items, nil
}
