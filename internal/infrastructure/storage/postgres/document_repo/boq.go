package document_repo

import (
	"buildledger/internal/domain/documents/boq"
	"buildledger/internal/infrastructure/storage/postgres"
)

const (
	boqsTable    = "doc_boqs"
	boqRowsTable = "doc_boq_rows"
)

var _ boq.Repository = (*BoqRepo)(nil)

// BoqRepo implements boq.Repository.
type BoqRepo struct {
	*BaseDocumentRepo[*boq.Boq]
}

// NewBoqRepo creates a new bill of quantities repository.
func NewBoqRepo(txManager *postgres.TxManager) *BoqRepo {
	return &BoqRepo{
		BaseDocumentRepo: NewBaseDocumentRepo[*boq.Boq](
			txManager,
			boqsTable,
			boqRowsTable,
			postgres.ExtractDBColumns[boq.Boq](),
			func() *boq.Boq { return &boq.Boq{} },
		),
	}
}
