package payment

import (
	"context"

	"buildledger/internal/core/id"
	"buildledger/internal/domain"
	"buildledger/internal/domain/documents"
)

// Repository defines operations for payment documents.
type Repository interface {
	Create(ctx context.Context, p *Payment) error
	GetByID(ctx context.Context, companyID, paymentID id.ID) (*Payment, error)
	Delete(ctx context.Context, companyID, paymentID id.ID) error

	// ListByInvoice retrieves all payments recorded against one invoice.
	ListByInvoice(ctx context.Context, companyID, invoiceID id.ID) ([]*Payment, error)

	List(ctx context.Context, companyID id.ID, filter documents.ListFilter) (domain.ListResult[*Payment], error)
}
