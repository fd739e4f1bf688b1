package currency

import (
	"context"

	"buildledger/internal/core/apperror"
	"buildledger/internal/core/id"
	"buildledger/internal/core/money"
	"buildledger/internal/core/tx"
	"buildledger/internal/domain"
)

// Service provides business logic for the Currency catalog.
// Uses composition with domain.CatalogService for common CRUD operations.
type Service struct {
	*domain.CatalogService[*Currency]
	repo Repository
}

// NewService creates a new Currency service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Currency]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "currency",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
	}

	base.Hooks().On(domain.BeforeCreate, svc.prepareForWrite)
	base.Hooks().On(domain.BeforeUpdate, svc.prepareForWrite)
	base.Hooks().On(domain.BeforeDelete, svc.validateBeforeDelete)

	return svc
}

// prepareForWrite handles code defaulting, uniqueness and base switching.
func (s *Service) prepareForWrite(ctx context.Context, curr *Currency) error {
	if curr.Code == "" && curr.ISOCode != nil {
		curr.Code = *curr.ISOCode
	}

	if exists, _ := s.isoCodeTaken(ctx, curr.ISOCode, curr.ID); exists {
		return apperror.NewConflict("currency with this ISO code already exists").
			WithDetail("isoCode", curr.ISOCode)
	}

	// Only one base currency at a time.
	if curr.IsBase {
		if err := s.repo.ClearBase(ctx); err != nil {
			return err
		}
	}

	return nil
}

// validateBeforeDelete prevents deletion of the base currency.
func (s *Service) validateBeforeDelete(ctx context.Context, curr *Currency) error {
	if curr.IsBase {
		return apperror.NewValidation("cannot delete base currency")
	}
	return nil
}

// FindByISOCode retrieves currency by ISO code.
func (s *Service) FindByISOCode(ctx context.Context, isoCode string) (*Currency, error) {
	return s.repo.FindByISOCode(ctx, isoCode)
}

// FormatterFor resolves a formatter for the given ISO code from the catalog,
// falling back to built-in symbols for codes not present there.
func (s *Service) FormatterFor(ctx context.Context, isoCode string) money.Formatter {
	curr, err := s.repo.FindByISOCode(ctx, isoCode)
	if err != nil || curr == nil {
		return money.NewFormatter(isoCode)
	}
	return curr.Formatter()
}

func (s *Service) isoCodeTaken(ctx context.Context, isoCode *string, excludeID id.ID) (bool, error) {
	if isoCode == nil || *isoCode == "" {
		return false, nil
	}
	existing, err := s.repo.FindByISOCode(ctx, *isoCode)
	if err != nil || existing == nil {
		return false, nil
	}
	return existing.ID != excludeID, nil
}
