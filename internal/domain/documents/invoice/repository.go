package invoice

import (
	"context"

	"buildledger/internal/core/id"
	"buildledger/internal/domain/documents"
)

// Repository defines operations for invoice documents.
type Repository interface {
	documents.Repository[*Invoice]

	// FindBySourceBoq retrieves the invoice a BOQ was converted into.
	FindBySourceBoq(ctx context.Context, companyID, boqID id.ID) (*Invoice, error)
}
