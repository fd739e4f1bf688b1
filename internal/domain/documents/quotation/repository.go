package quotation

import (
	"buildledger/internal/domain/documents"
)

// Repository defines operations for quotation documents.
type Repository interface {
	documents.Repository[*Quotation]
}
