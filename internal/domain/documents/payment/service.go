package payment

import (
	"context"
	"fmt"
	"time"

	"buildledger/internal/core/id"
	"buildledger/internal/core/tx"
	"buildledger/internal/domain"
	"buildledger/internal/domain/documents"
	"buildledger/internal/domain/documents/invoice"
	"buildledger/pkg/logger"
	"buildledger/pkg/numerator"
)

// Service records and reverses payments. Recording a payment and applying
// it to the invoice balance happen in one transaction.
type Service struct {
	repo      Repository
	invoices  *invoice.Service
	txManager tx.Manager
	numerator *numerator.Service
}

// NewService creates a payment service.
func NewService(repo Repository, invoices *invoice.Service, txManager tx.Manager, num *numerator.Service) *Service {
	return &Service{
		repo:      repo,
		invoices:  invoices,
		txManager: txManager,
		numerator: num,
	}
}

// Record persists the payment and applies it to the invoice in one
// transaction. Overpayment is rejected before anything is written.
func (s *Service) Record(ctx context.Context, p *Payment) error {
	if err := p.Validate(ctx); err != nil {
		return err
	}

	if p.Number == "" {
		cfg := numerator.DefaultConfig("PAY")
		number, err := s.numerator.GetNextNumber(ctx, p.CompanyID, cfg, numerator.DefaultOptions(), time.Now())
		if err != nil {
			return fmt.Errorf("generate number: %w", err)
		}
		p.Number = number
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.invoices.ApplyPayment(ctx, p.CompanyID, p.InvoiceID, p.Amount); err != nil {
			return err
		}
		if err := s.repo.Create(ctx, p); err != nil {
			return fmt.Errorf("create payment: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "payment recorded",
		"id", p.ID,
		"number", p.Number,
		"invoice_id", p.InvoiceID,
		"amount", p.Amount.String())

	return nil
}

// Delete removes a payment and restores the invoice balance atomically.
func (s *Service) Delete(ctx context.Context, companyID, paymentID id.ID) error {
	p, err := s.repo.GetByID(ctx, companyID, paymentID)
	if err != nil {
		return err
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.invoices.ReversePayment(ctx, companyID, p.InvoiceID, p.Amount); err != nil {
			return err
		}
		return s.repo.Delete(ctx, companyID, paymentID)
	})
}

// GetByID retrieves one payment.
func (s *Service) GetByID(ctx context.Context, companyID, paymentID id.ID) (*Payment, error) {
	return s.repo.GetByID(ctx, companyID, paymentID)
}

// ListByInvoice retrieves the payments recorded against an invoice.
func (s *Service) ListByInvoice(ctx context.Context, companyID, invoiceID id.ID) ([]*Payment, error) {
	return s.repo.ListByInvoice(ctx, companyID, invoiceID)
}

// List retrieves payments with filtering.
func (s *Service) List(ctx context.Context, companyID id.ID, filter documents.ListFilter) (domain.ListResult[*Payment], error) {
	return s.repo.List(ctx, companyID, filter)
}
