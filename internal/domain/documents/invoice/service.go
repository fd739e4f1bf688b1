package invoice

import (
	"context"

	"github.com/shopspring/decimal"

	"buildledger/internal/core/apperror"
	"buildledger/internal/core/entity"
	"buildledger/internal/core/id"
	"buildledger/internal/core/tx"
	"buildledger/internal/domain/documents"
	"buildledger/pkg/logger"
	"buildledger/pkg/numerator"
)

// Service provides business operations for invoices.
type Service struct {
	*documents.DocService[*Invoice]
	repo Repository
}

// NewService creates an invoice service.
func NewService(repo Repository, txManager tx.Manager, num *numerator.Service) *Service {
	base := documents.NewDocService(documents.DocServiceConfig[*Invoice]{
		Repo:         repo,
		TxManager:    txManager,
		Numerator:    num,
		EntityName:   "invoice",
		NumberPrefix: "INV",
	})
	return &Service{DocService: base, repo: repo}
}

// ApplyPayment increases the invoice's paid amount and flips the status to
// paid when the balance reaches zero. Runs inside the caller's transaction
// context; the payment service invokes it together with recording the
// payment document.
func (s *Service) ApplyPayment(ctx context.Context, companyID, invoiceID id.ID, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return apperror.NewValidation("payment amount must be positive").
			WithDetail("field", "amount")
	}

	return s.TxManager().RunInTransaction(ctx, func(ctx context.Context) error {
		inv, err := s.repo.GetForUpdate(ctx, companyID, invoiceID)
		if err != nil {
			return err
		}

		if inv.Status == entity.StatusCancelled {
			return apperror.NewBusinessRule(
				apperror.CodeDocumentCancelled,
				"Cannot record payment against cancelled invoice.",
			).WithDetail("invoice_id", invoiceID.String())
		}

		newPaid := inv.PaidAmount.Add(amount)
		if newPaid.GreaterThan(inv.TotalAmount) {
			return apperror.NewBusinessRule(
				apperror.CodeOverpayment,
				"Payment exceeds the invoice balance.",
			).WithDetail("balance_due", inv.BalanceDue().String()).
				WithDetail("amount", amount.String())
		}

		inv.PaidAmount = newPaid
		if inv.BalanceDue().IsZero() {
			inv.Status = entity.StatusPaid
		}
		inv.Touch()

		if err := s.repo.Update(ctx, inv); err != nil {
			return err
		}

		logger.Info(ctx, "payment applied",
			"invoice_id", invoiceID,
			"amount", amount.String(),
			"balance_due", inv.BalanceDue().String())
		return nil
	})
}

// ReversePayment decreases the paid amount, used when a payment document is
// deleted.
func (s *Service) ReversePayment(ctx context.Context, companyID, invoiceID id.ID, amount decimal.Decimal) error {
	return s.TxManager().RunInTransaction(ctx, func(ctx context.Context) error {
		inv, err := s.repo.GetForUpdate(ctx, companyID, invoiceID)
		if err != nil {
			return err
		}

		inv.PaidAmount = inv.PaidAmount.Sub(amount)
		if inv.PaidAmount.IsNegative() {
			inv.PaidAmount = decimal.Zero
		}
		if inv.Status == entity.StatusPaid && inv.BalanceDue().IsPositive() {
			inv.Status = entity.StatusSent
		}
		inv.Touch()

		return s.repo.Update(ctx, inv)
	})
}

// FindBySourceBoq retrieves the invoice created from the given BOQ.
func (s *Service) FindBySourceBoq(ctx context.Context, companyID, boqID id.ID) (*Invoice, error) {
	return s.repo.FindBySourceBoq(ctx, companyID, boqID)
}
