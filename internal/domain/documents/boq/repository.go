package boq

import (
	"buildledger/internal/domain/documents"
)

// Repository defines operations for BOQ documents.
type Repository interface {
	documents.Repository[*Boq]
}
