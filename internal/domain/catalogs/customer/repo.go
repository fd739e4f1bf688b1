package customer

import (
	"context"

	"buildledger/internal/core/id"
	"buildledger/internal/domain"
)

// Repository defines the interface for Customer persistence.
type Repository interface {
	domain.CatalogRepository[*Customer]

	// FindByEmail retrieves a customer by email within the company.
	FindByEmail(ctx context.Context, companyID id.ID, email string) (*Customer, error)
}
