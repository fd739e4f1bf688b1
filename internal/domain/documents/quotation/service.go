package quotation

import (
	"context"

	"buildledger/internal/core/entity"
	"buildledger/internal/core/id"
	"buildledger/internal/core/tx"
	"buildledger/internal/domain/documents"
	"buildledger/pkg/numerator"
)

// Service provides business operations for quotations.
type Service struct {
	*documents.DocService[*Quotation]
}

// NewService creates a quotation service.
func NewService(repo Repository, txManager tx.Manager, num *numerator.Service) *Service {
	base := documents.NewDocService(documents.DocServiceConfig[*Quotation]{
		Repo:         repo,
		TxManager:    txManager,
		Numerator:    num,
		EntityName:   "quotation",
		NumberPrefix: "QUO",
	})
	return &Service{DocService: base}
}

// MarkSent moves a draft quotation to sent.
func (s *Service) MarkSent(ctx context.Context, companyID, docID id.ID) error {
	doc, err := s.GetByID(ctx, companyID, docID)
	if err != nil {
		return err
	}
	if err := doc.CanModify(); err != nil {
		return err
	}
	doc.Status = entity.StatusSent
	return s.Update(ctx, doc)
}
