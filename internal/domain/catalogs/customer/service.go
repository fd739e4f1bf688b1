package customer

import (
	"context"
	"time"

	"buildledger/internal/core/id"
	"buildledger/internal/core/tx"
	"buildledger/internal/domain"
	"buildledger/pkg/numerator"
)

// Service provides business logic for the Customer catalog.
type Service struct {
	*domain.CatalogService[*Customer]
	repo      Repository
	numerator *numerator.Service
}

// NewService creates a new Customer service.
func NewService(repo Repository, txManager tx.Manager, num *numerator.Service) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Customer]{
		Repo:       repo,
		TxManager:  txManager,
		Numerator:  num,
		EntityName: "customer",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
		numerator:      num,
	}

	base.Hooks().On(domain.BeforeCreate, svc.assignCode)

	return svc
}

// assignCode generates a catalog code when the caller did not supply one.
// Customer codes do not reset by year: CUS-00001, CUS-00002, ...
func (s *Service) assignCode(ctx context.Context, c *Customer) error {
	if c.Code != "" || s.numerator == nil {
		return nil
	}

	cfg := numerator.Config{Prefix: "CUS", PadWidth: 5, ResetPeriod: "never"}
	opts := &numerator.Options{Strategy: numerator.StrategyCached, RangeSize: 20}
	code, err := s.numerator.GetNextNumber(ctx, c.CompanyID, cfg, opts, time.Now())
	if err != nil {
		return err
	}
	c.Code = code
	return nil
}

// FindByEmail retrieves a customer by email.
func (s *Service) FindByEmail(ctx context.Context, companyID id.ID, email string) (*Customer, error) {
	return s.repo.FindByEmail(ctx, companyID, email)
}
