package boq

import (
	"context"
	"time"

	"buildledger/internal/core/apperror"
	"buildledger/internal/core/entity"
	"buildledger/internal/core/id"
	"buildledger/internal/core/tx"
	"buildledger/internal/domain"
	"buildledger/internal/domain/documents"
	"buildledger/internal/domain/documents/invoice"
	"buildledger/internal/domain/sections"
	"buildledger/pkg/logger"
	"buildledger/pkg/numerator"
)

// Service provides business operations for BOQs, including the conversion
// state machine.
type Service struct {
	*documents.DocService[*Boq]
	repo     Repository
	invoices *invoice.Service
}

// NewService creates a BOQ service.
func NewService(repo Repository, txManager tx.Manager, num *numerator.Service, invoices *invoice.Service) *Service {
	base := documents.NewDocService(documents.DocServiceConfig[*Boq]{
		Repo:         repo,
		TxManager:    txManager,
		Numerator:    num,
		EntityName:   "boq",
		NumberPrefix: "BOQ",
	})

	svc := &Service{DocService: base, repo: repo, invoices: invoices}

	// A converted BOQ is frozen until the invoice is deleted.
	base.Hooks().On(domain.BeforeUpdate, func(ctx context.Context, b *Boq) error {
		return b.CanModify()
	})
	base.Hooks().On(domain.BeforeDelete, func(ctx context.Context, b *Boq) error {
		if b.IsConverted() {
			return apperror.NewBusinessRule(
				apperror.CodeAlreadyConverted,
				"Converted BOQ cannot be deleted while its invoice exists.",
			).WithDetail("boq_id", b.ID.String())
		}
		return nil
	})

	// Deleting an invoice that came from a BOQ reverts the BOQ to draft.
	invoices.Hooks().On(domain.AfterDelete, svc.revertForInvoice)

	return svc
}

// Cancel moves a draft BOQ to the terminal cancelled state.
func (s *Service) Cancel(ctx context.Context, companyID, boqID id.ID) error {
	b, err := s.GetByID(ctx, companyID, boqID)
	if err != nil {
		return err
	}
	if b.Status != entity.StatusDraft {
		return apperror.NewBusinessRule(
			apperror.CodeBusinessRule,
			"Only draft BOQs can be cancelled.",
		).WithDetail("status", b.Status)
	}
	b.Status = entity.StatusCancelled
	b.Touch()

	return s.TxManager().RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Update(ctx, b)
	})
}

// ConvertToInvoice performs the draft → converted transition: a new invoice
// is created from the BOQ's rows and header (currency included), and the
// BOQ records the link and timestamp. The whole transition is atomic.
func (s *Service) ConvertToInvoice(ctx context.Context, companyID, boqID id.ID) (*invoice.Invoice, error) {
	b, err := s.GetByID(ctx, companyID, boqID)
	if err != nil {
		return nil, err
	}
	if err := b.CanConvert(); err != nil {
		return nil, err
	}
	if err := b.Editor().Validate(); err != nil {
		return nil, err
	}

	inv := invoice.NewInvoice(b.CompanyID, b.CustomerID)
	inv.CurrencyCode = b.CurrencyCode
	inv.IssueDate = time.Now().UTC()
	inv.DueDate = b.DueDate
	inv.Notes = b.Notes
	inv.Terms = b.Terms
	boqID = b.ID
	inv.SourceBoqID = &boqID
	inv.Sections = copySections(b.Sections)

	err = s.TxManager().RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.invoices.Create(ctx, inv); err != nil {
			return err
		}

		b.MarkConverted(inv.ID, time.Now().UTC())
		if err := s.repo.Update(ctx, b); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "boq converted to invoice",
		"boq_id", b.ID,
		"boq_number", b.Number,
		"invoice_id", inv.ID,
		"invoice_number", inv.Number)

	return inv, nil
}

// revertForInvoice runs after an invoice deletion. If the invoice came from
// a BOQ, that BOQ goes back to draft with the link cleared. The reversal is
// best-effort: a failure is reported through the hook runner's log, never
// blocking the deletion itself.
func (s *Service) revertForInvoice(ctx context.Context, inv *invoice.Invoice) error {
	if inv.SourceBoqID == nil {
		return nil
	}

	b, err := s.repo.GetByID(ctx, inv.CompanyID, *inv.SourceBoqID)
	if err != nil {
		return apperror.NewConversion("load boq for reversal", err).
			WithDetail("boq_id", inv.SourceBoqID.String())
	}

	if !b.IsConverted() || b.ConvertedToInvoiceID == nil || *b.ConvertedToInvoiceID != inv.ID {
		// Stale or foreign link; nothing to revert.
		return nil
	}

	b.RevertToDraft()
	err = s.TxManager().RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Update(ctx, b)
	})
	if err != nil {
		return apperror.NewConversion("revert boq to draft", err).
			WithDetail("boq_id", b.ID.String())
	}

	logger.Info(ctx, "boq reverted to draft",
		"boq_id", b.ID,
		"invoice_id", inv.ID)
	return nil
}

// copySections deep-copies the section model with fresh item IDs so the
// invoice owns its rows independently of the BOQ.
func copySections(src []*sections.Section) []*sections.Section {
	out := make([]*sections.Section, 0, len(src))
	for _, s := range src {
		ns := sections.NewSection(s.Name)
		ns.LaborCost = s.LaborCost
		for _, it := range s.Items {
			ni := it
			ni.ID = id.New()
			ns.Items = append(ns.Items, ni)
		}
		out = append(out, ns)
	}
	return out
}
