package documents

import (
	"context"
	"fmt"
	"time"

	"buildledger/internal/core/apperror"
	"buildledger/internal/core/entity"
	"buildledger/internal/core/id"
	"buildledger/internal/core/tx"
	"buildledger/internal/domain"
	"buildledger/pkg/logger"
	"buildledger/pkg/numerator"
)

// Doc is implemented by the concrete document types. Base exposes the
// embedded SectionDocument so the generic service can reach the shared
// header, sections and totals. Aggregate dispatches to the concrete type
// so overrides (invoices add paid and balance figures) are honoured.
type Doc interface {
	entity.Validatable
	Base() *SectionDocument
	Aggregate() Aggregate
}

// DocService provides the CRUD lifecycle shared by all section-backed
// document types: validate, number, recompute totals, persist header and
// flattened rows in one transaction.
type DocService[T Doc] struct {
	repo      Repository[T]
	txManager tx.Manager
	numerator *numerator.Service
	hooks     *domain.HookRegistry[T]

	entityName   string
	numberPrefix string
}

// DocServiceConfig configures a document service.
type DocServiceConfig[T Doc] struct {
	Repo         Repository[T]
	TxManager    tx.Manager
	Numerator    *numerator.Service
	EntityName   string
	NumberPrefix string
}

// NewDocService creates a document service.
func NewDocService[T Doc](cfg DocServiceConfig[T]) *DocService[T] {
	return &DocService[T]{
		repo:         cfg.Repo,
		txManager:    cfg.TxManager,
		numerator:    cfg.Numerator,
		hooks:        domain.NewHookRegistry[T](),
		entityName:   cfg.EntityName,
		numberPrefix: cfg.NumberPrefix,
	}
}

// Hooks returns the hook registry for registering callbacks.
func (s *DocService[T]) Hooks() *domain.HookRegistry[T] {
	return s.hooks
}

// Repo exposes the repository to the concrete services built on top.
func (s *DocService[T]) Repo() Repository[T] {
	return s.repo
}

// TxManager exposes the transaction manager to the concrete services.
func (s *DocService[T]) TxManager() tx.Manager {
	return s.txManager
}

func (s *DocService[T]) assignNumber(ctx context.Context, doc T) error {
	base := doc.Base()
	if base.Number != "" {
		return nil
	}
	cfg := numerator.DefaultConfig(s.numberPrefix)
	number, err := s.numerator.GetNextNumber(ctx, base.CompanyID, cfg, numerator.DefaultOptions(), time.Now())
	if err != nil {
		return fmt.Errorf("generate number: %w", err)
	}
	base.Number = number
	return nil
}

// Create persists a new document with its rows.
func (s *DocService[T]) Create(ctx context.Context, doc T) error {
	if err := s.hooks.RunBeforeCreate(ctx, doc); err != nil {
		return err
	}

	if err := doc.Validate(ctx); err != nil {
		return err
	}

	if err := s.assignNumber(ctx, doc); err != nil {
		return err
	}

	// Totals are recomputed here; a client-supplied total is never trusted.
	base := doc.Base()
	base.Recalculate()

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, doc); err != nil {
			return fmt.Errorf("create document: %w", err)
		}
		if err := s.repo.SaveRows(ctx, base.ID, base.Rows()); err != nil {
			return fmt.Errorf("save rows: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if err := s.hooks.RunAfterCreate(ctx, doc); err != nil {
		logger.Warn(ctx, "after-create hook failed", "entity", s.entityName, "error", err)
	}

	logger.Info(ctx, s.entityName+" created",
		"id", base.ID,
		"number", base.Number)

	return nil
}

// GetByID retrieves a document with its sections rebuilt from rows.
func (s *DocService[T]) GetByID(ctx context.Context, companyID, docID id.ID) (T, error) {
	doc, err := s.repo.GetByID(ctx, companyID, docID)
	if err != nil {
		return doc, err
	}

	rows, err := s.repo.GetRows(ctx, docID)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("get rows: %w", err)
	}
	if err := doc.Base().LoadRows(rows); err != nil {
		var zero T
		return zero, err
	}

	return doc, nil
}

// GetByNumber retrieves a document by its number.
func (s *DocService[T]) GetByNumber(ctx context.Context, companyID id.ID, number string) (T, error) {
	doc, err := s.repo.GetByNumber(ctx, companyID, number)
	if err != nil {
		return doc, err
	}

	rows, err := s.repo.GetRows(ctx, doc.Base().ID)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("get rows: %w", err)
	}
	if err := doc.Base().LoadRows(rows); err != nil {
		var zero T
		return zero, err
	}
	return doc, nil
}

// Update replaces the document header and all its rows atomically.
func (s *DocService[T]) Update(ctx context.Context, doc T) error {
	if err := s.hooks.RunBeforeUpdate(ctx, doc); err != nil {
		return err
	}

	base := doc.Base()
	if err := base.CanModify(); err != nil {
		return err
	}

	if err := doc.Validate(ctx); err != nil {
		return err
	}

	base.Recalculate()

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Update(ctx, doc); err != nil {
			return fmt.Errorf("update document: %w", err)
		}
		if err := s.repo.SaveRows(ctx, base.ID, base.Rows()); err != nil {
			return fmt.Errorf("save rows: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if err := s.hooks.RunAfterUpdate(ctx, doc); err != nil {
		logger.Warn(ctx, "after-update hook failed", "entity", s.entityName, "error", err)
	}

	return nil
}

// Delete soft-deletes a document. The loaded document is passed to the
// delete hooks so audit and reversal side effects can inspect it.
func (s *DocService[T]) Delete(ctx context.Context, companyID, docID id.ID) error {
	doc, err := s.GetByID(ctx, companyID, docID)
	if err != nil {
		return err
	}

	if err := s.hooks.RunBeforeDelete(ctx, doc); err != nil {
		return err
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Delete(ctx, companyID, docID)
	})
	if err != nil {
		return err
	}

	if err := s.hooks.RunAfterDelete(ctx, doc); err != nil {
		// After-delete side effects (audit, conversion reversal) are
		// best-effort: the deletion itself stands.
		logger.Warn(ctx, "after-delete hook failed", "entity", s.entityName, "error", err)
	}

	return nil
}

// List retrieves documents with filtering.
func (s *DocService[T]) List(ctx context.Context, companyID id.ID, filter ListFilter) (domain.ListResult[T], error) {
	return s.repo.List(ctx, companyID, filter)
}

// Aggregate computes the totals block for one document.
func (s *DocService[T]) Aggregate(ctx context.Context, companyID, docID id.ID) (Aggregate, error) {
	doc, err := s.GetByID(ctx, companyID, docID)
	if err != nil {
		return Aggregate{}, err
	}
	return doc.Aggregate(), nil
}

// EnsureExists verifies the document belongs to the company.
func (s *DocService[T]) EnsureExists(ctx context.Context, companyID, docID id.ID) error {
	if _, err := s.repo.GetByID(ctx, companyID, docID); err != nil {
		if apperror.IsNotFound(err) {
			return apperror.NewNotFound(s.entityName, docID.String())
		}
		return err
	}
	return nil
}
