package document_repo

import (
	"buildledger/internal/domain/documents/quotation"
	"buildledger/internal/infrastructure/storage/postgres"
)

const (
	quotationsTable    = "doc_quotations"
	quotationRowsTable = "doc_quotation_rows"
)

var _ quotation.Repository = (*QuotationRepo)(nil)

// QuotationRepo implements quotation.Repository.
type QuotationRepo struct {
	*BaseDocumentRepo[*quotation.Quotation]
}

// NewQuotationRepo creates a new quotation repository.
func NewQuotationRepo(txManager *postgres.TxManager) *QuotationRepo {
	return &QuotationRepo{
		BaseDocumentRepo: NewBaseDocumentRepo[*quotation.Quotation](
			txManager,
			quotationsTable,
			quotationRowsTable,
			postgres.ExtractDBColumns[quotation.Quotation](),
			func() *quotation.Quotation { return &quotation.Quotation{} },
		),
	}
}
