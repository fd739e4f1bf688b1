package proforma

import (
	"buildledger/internal/domain/documents"
)

// Repository defines operations for proforma invoice documents.
type Repository interface {
	documents.Repository[*Proforma]
}
