package taxsetting

import (
	"context"

	"buildledger/internal/core/id"
	"buildledger/internal/domain"
)

// Repository defines the interface for TaxSetting persistence.
type Repository interface {
	domain.CatalogRepository[*TaxSetting]

	// FindDefault retrieves the company's default tax rate, if any.
	FindDefault(ctx context.Context, companyID id.ID) (*TaxSetting, error)

	// ClearDefault clears the default flag on the company's tax settings.
	ClearDefault(ctx context.Context, companyID id.ID) error
}
