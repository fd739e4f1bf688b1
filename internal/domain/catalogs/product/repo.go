package product

import (
	"context"

	"buildledger/internal/core/id"
	"buildledger/internal/domain"
)

// Repository defines the interface for Product persistence.
type Repository interface {
	domain.CatalogRepository[*Product]

	// ListByCategory retrieves products of one category within the company.
	ListByCategory(ctx context.Context, companyID id.ID, category string) ([]*Product, error)
}
