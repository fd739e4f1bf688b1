package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"buildledger/internal/core/id"
	"buildledger/internal/domain/catalogs/currency"
	"buildledger/internal/domain/catalogs/customer"
	"buildledger/internal/domain/documents/boq"
	"buildledger/internal/domain/documents/invoice"
	"buildledger/internal/domain/documents/proforma"
	"buildledger/internal/domain/documents/quotation"
	"buildledger/internal/domain/render"
	"buildledger/internal/infrastructure/http/v1/dto"
)

// DocumentDeps are the collaborators every document handler shares.
type DocumentDeps struct {
	Customers  *customer.Service
	Currencies *currency.Service
	Company    CompanyProfile
}

// QuotationHandler handles /quotations.
type QuotationHandler struct {
	*DocumentHandler[*quotation.Quotation]
	svc *quotation.Service
}

// NewQuotationHandler creates the quotation handler.
func NewQuotationHandler(base *BaseHandler, svc *quotation.Service, deps DocumentDeps) *QuotationHandler {
	return &QuotationHandler{
		DocumentHandler: NewDocumentHandler(base, DocumentHandlerConfig[*quotation.Quotation]{
			Service:    svc.DocService,
			EntityName: "quotation",
			DocType:    "Quotation",
			NewDoc: func(companyID id.ID) *quotation.Quotation {
				return quotation.NewQuotation(companyID, id.Nil())
			},
			MapToDTO: func(q *quotation.Quotation) any {
				return dto.FromSectionDocument(&q.SectionDocument)
			},
			Customers:  deps.Customers,
			Currencies: deps.Currencies,
			Company:    deps.Company,
		}),
		svc: svc,
	}
}

// Send handles POST /quotations/:id/send - move draft to sent.
func (h *QuotationHandler) Send(c *gin.Context) {
	docID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.svc.MarkSent(c.Request.Context(), h.CompanyID(c), docID); err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c, "quotation sent")
}

// ProformaHandler handles /proforma-invoices.
type ProformaHandler struct {
	*DocumentHandler[*proforma.Proforma]
}

// NewProformaHandler creates the proforma invoice handler.
func NewProformaHandler(base *BaseHandler, svc *proforma.Service, deps DocumentDeps) *ProformaHandler {
	return &ProformaHandler{
		DocumentHandler: NewDocumentHandler(base, DocumentHandlerConfig[*proforma.Proforma]{
			Service:    svc.DocService,
			EntityName: "proforma invoice",
			DocType:    "Proforma Invoice",
			NewDoc: func(companyID id.ID) *proforma.Proforma {
				return proforma.NewProforma(companyID, id.Nil())
			},
			MapToDTO: func(p *proforma.Proforma) any {
				return dto.FromSectionDocument(&p.SectionDocument)
			},
			Customers:  deps.Customers,
			Currencies: deps.Currencies,
			Company:    deps.Company,
		}),
	}
}

// BoqHandler handles /boqs.
type BoqHandler struct {
	*DocumentHandler[*boq.Boq]
	svc *boq.Service
}

// NewBoqHandler creates the BOQ handler.
func NewBoqHandler(base *BaseHandler, svc *boq.Service, deps DocumentDeps) *BoqHandler {
	return &BoqHandler{
		DocumentHandler: NewDocumentHandler(base, DocumentHandlerConfig[*boq.Boq]{
			Service:    svc.DocService,
			EntityName: "boq",
			DocType:    "Bill of Quantities",
			NewDoc: func(companyID id.ID) *boq.Boq {
				return boq.NewBoq(companyID, id.Nil())
			},
			MapToDTO:   func(b *boq.Boq) any { return dto.FromBoq(b) },
			Customers:  deps.Customers,
			Currencies: deps.Currencies,
			Company:    deps.Company,
		}),
		svc: svc,
	}
}

// Convert handles POST /boqs/:id/convert - create an invoice from the BOQ.
func (h *BoqHandler) Convert(c *gin.Context) {
	docID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	inv, err := h.svc.ConvertToInvoice(c.Request.Context(), h.CompanyID(c), docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromInvoice(inv))
}

// Cancel handles POST /boqs/:id/cancel.
func (h *BoqHandler) Cancel(c *gin.Context) {
	docID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.svc.Cancel(c.Request.Context(), h.CompanyID(c), docID); err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c, "boq cancelled")
}

// InvoiceHandler handles /invoices.
type InvoiceHandler struct {
	*DocumentHandler[*invoice.Invoice]
	svc *invoice.Service
}

// NewInvoiceHandler creates the invoice handler.
func NewInvoiceHandler(base *BaseHandler, svc *invoice.Service, deps DocumentDeps) *InvoiceHandler {
	return &InvoiceHandler{
		DocumentHandler: NewDocumentHandler(base, DocumentHandlerConfig[*invoice.Invoice]{
			Service:    svc.DocService,
			EntityName: "invoice",
			DocType:    "Invoice",
			NewDoc: func(companyID id.ID) *invoice.Invoice {
				return invoice.NewInvoice(companyID, id.Nil())
			},
			MapToDTO:   func(inv *invoice.Invoice) any { return dto.FromInvoice(inv) },
			EnrichInfo: func(inv *invoice.Invoice, info *render.DocumentInfo) {
				paid := inv.PaidAmount
				due := inv.BalanceDue()
				info.PaidAmount = &paid
				info.BalanceDue = &due
			},
			Customers:  deps.Customers,
			Currencies: deps.Currencies,
			Company:    deps.Company,
		}),
		svc: svc,
	}
}
