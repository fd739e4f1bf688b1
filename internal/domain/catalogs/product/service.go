package product

import (
	"context"
	"time"

	"buildledger/internal/core/id"
	"buildledger/internal/core/tx"
	"buildledger/internal/domain"
	"buildledger/internal/domain/sections"
	"buildledger/pkg/numerator"
)

// Service provides business logic for the Product catalog.
type Service struct {
	*domain.CatalogService[*Product]
	repo      Repository
	numerator *numerator.Service
}

// NewService creates a new Product service.
func NewService(repo Repository, txManager tx.Manager, num *numerator.Service) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Product]{
		Repo:       repo,
		TxManager:  txManager,
		Numerator:  num,
		EntityName: "product",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
		numerator:      num,
	}

	base.Hooks().On(domain.BeforeCreate, svc.assignCode)

	return svc
}

func (s *Service) assignCode(ctx context.Context, p *Product) error {
	if p.Code != "" || s.numerator == nil {
		return nil
	}

	cfg := numerator.Config{Prefix: "PRD", PadWidth: 5, ResetPeriod: "never"}
	opts := &numerator.Options{Strategy: numerator.StrategyCached, RangeSize: 20}
	code, err := s.numerator.GetNextNumber(ctx, p.CompanyID, cfg, opts, time.Now())
	if err != nil {
		return err
	}
	p.Code = code
	return nil
}

// ListByCategory retrieves products of one category.
func (s *Service) ListByCategory(ctx context.Context, companyID id.ID, category string) ([]*Product, error) {
	return s.repo.ListByCategory(ctx, companyID, category)
}

// AsNewItem maps the product's defaults onto an item for the section editor.
func (p *Product) AsNewItem() sections.NewItem {
	desc := p.Name
	if p.Description != nil && *p.Description != "" {
		desc = *p.Description
	}
	pid := p.ID
	return sections.NewItem{
		ProductID:      &pid,
		Description:    desc,
		Unit:           p.Unit,
		UnitPrice:      p.UnitPrice,
		TaxRatePercent: p.TaxRatePercent,
		TaxInclusive:   p.TaxInclusive,
	}
}
