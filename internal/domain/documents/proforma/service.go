package proforma

import (
	"buildledger/internal/core/tx"
	"buildledger/internal/domain/documents"
	"buildledger/pkg/numerator"
)

// Service provides business operations for proforma invoices.
type Service struct {
	*documents.DocService[*Proforma]
}

// NewService creates a proforma service.
func NewService(repo Repository, txManager tx.Manager, num *numerator.Service) *Service {
	base := documents.NewDocService(documents.DocServiceConfig[*Proforma]{
		Repo:         repo,
		TxManager:    txManager,
		Numerator:    num,
		EntityName:   "proforma invoice",
		NumberPrefix: "PRO",
	})
	return &Service{DocService: base}
}
