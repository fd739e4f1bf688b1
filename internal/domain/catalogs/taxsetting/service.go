package taxsetting

import (
	"context"

	"buildledger/internal/core/id"
	"buildledger/internal/core/tx"
	"buildledger/internal/domain"
)

// Service provides business logic for the TaxSetting catalog.
type Service struct {
	*domain.CatalogService[*TaxSetting]
	repo Repository
}

// NewService creates a new TaxSetting service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*TaxSetting]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "tax setting",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
	}

	base.Hooks().On(domain.BeforeCreate, svc.keepSingleDefault)
	base.Hooks().On(domain.BeforeUpdate, svc.keepSingleDefault)

	return svc
}

// keepSingleDefault ensures at most one default rate per company.
func (s *Service) keepSingleDefault(ctx context.Context, t *TaxSetting) error {
	if !t.IsDefault {
		return nil
	}
	return s.repo.ClearDefault(ctx, t.CompanyID)
}

// FindDefault retrieves the company's default tax rate.
func (s *Service) FindDefault(ctx context.Context, companyID id.ID) (*TaxSetting, error) {
	return s.repo.FindDefault(ctx, companyID)
}
