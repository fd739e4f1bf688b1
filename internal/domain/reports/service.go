package reports

import (
	"context"
	"time"

	"buildledger/internal/core/id"
	"buildledger/internal/core/tx"
)

// Repository defines the read queries behind reports.
type Repository interface {
	// GetReceivablesSummary aggregates billed/paid/due per customer.
	GetReceivablesSummary(ctx context.Context, companyID id.ID, filter ReceivablesFilter) (*ReceivablesSummary, error)

	// GetStatusBreakdown counts documents of one table per status.
	GetStatusBreakdown(ctx context.Context, companyID id.ID, docTable string) ([]StatusBreakdownRow, error)
}

// Service runs reports inside read-only transactions.
type Service struct {
	repo      Repository
	txManager tx.ReadOnlyManager
}

// NewService creates a new reports service.
func NewService(repo Repository, txManager tx.ReadOnlyManager) *Service {
	return &Service{repo: repo, txManager: txManager}
}

// ReceivablesSummary returns the company's outstanding receivables.
func (s *Service) ReceivablesSummary(ctx context.Context, companyID id.ID, filter ReceivablesFilter) (*ReceivablesSummary, error) {
	var report *ReceivablesSummary
	err := s.txManager.ReadOnly(ctx, func(ctx context.Context) error {
		var err error
		report, err = s.repo.GetReceivablesSummary(ctx, companyID, filter)
		return err
	})
	if err != nil {
		return nil, err
	}
	report.GeneratedAt = time.Now().UTC()
	return report, nil
}

// InvoiceStatusBreakdown counts invoices per status.
func (s *Service) InvoiceStatusBreakdown(ctx context.Context, companyID id.ID) ([]StatusBreakdownRow, error) {
	var rows []StatusBreakdownRow
	err := s.txManager.ReadOnly(ctx, func(ctx context.Context) error {
		var err error
		rows, err = s.repo.GetStatusBreakdown(ctx, companyID, "doc_invoices")
		return err
	})
	return rows, err
}

// BoqStatusBreakdown counts BOQs per status.
func (s *Service) BoqStatusBreakdown(ctx context.Context, companyID id.ID) ([]StatusBreakdownRow, error) {
	var rows []StatusBreakdownRow
	err := s.txManager.ReadOnly(ctx, func(ctx context.Context) error {
		var err error
		rows, err = s.repo.GetStatusBreakdown(ctx, companyID, "doc_boqs")
		return err
	})
	return rows, err
}
