package document_repo

import (
	"buildledger/internal/domain/documents/proforma"
	"buildledger/internal/infrastructure/storage/postgres"
)

const (
	proformasTable    = "doc_proforma_invoices"
	proformaRowsTable = "doc_proforma_invoice_rows"
)

var _ proforma.Repository = (*ProformaRepo)(nil)

// ProformaRepo implements proforma.Repository.
type ProformaRepo struct {
	*BaseDocumentRepo[*proforma.Proforma]
}

// NewProformaRepo creates a new proforma invoice repository.
func NewProformaRepo(txManager *postgres.TxManager) *ProformaRepo {
	return &ProformaRepo{
		BaseDocumentRepo: NewBaseDocumentRepo[*proforma.Proforma](
			txManager,
			proformasTable,
			proformaRowsTable,
			postgres.ExtractDBColumns[proforma.Proforma](),
			func() *proforma.Proforma { return &proforma.Proforma{} },
		),
	}
}
