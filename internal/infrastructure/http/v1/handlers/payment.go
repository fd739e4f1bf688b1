package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"buildledger/internal/domain/documents/invoice"
	"buildledger/internal/domain/documents/payment"
	"buildledger/internal/infrastructure/http/v1/dto"
)

// PaymentHandler handles payment recording and reversal.
type PaymentHandler struct {
	*BaseHandler
	payments *payment.Service
	invoices *invoice.Service
}

// NewPaymentHandler creates the payment handler.
func NewPaymentHandler(base *BaseHandler, payments *payment.Service, invoices *invoice.Service) *PaymentHandler {
	return &PaymentHandler{
		BaseHandler: base,
		payments:    payments,
		invoices:    invoices,
	}
}

// Record handles POST /invoices/:id/payments.
func (h *PaymentHandler) Record(c *gin.Context) {
	ctx := c.Request.Context()
	companyID := h.CompanyID(c)

	invoiceID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.RecordPaymentRequest
	if !h.BindJSON(c, &req) {
		return
	}

	// Customer and currency carry over from the invoice.
	inv, err := h.invoices.GetByID(ctx, companyID, invoiceID)
	if err != nil {
		h.Error(c, err)
		return
	}

	p := req.ToEntity(companyID, inv.CustomerID, invoiceID)
	p.CurrencyCode = inv.CurrencyCode

	if err := h.payments.Record(ctx, p); err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromPayment(p))
}

// ListByInvoice handles GET /invoices/:id/payments.
func (h *PaymentHandler) ListByInvoice(c *gin.Context) {
	invoiceID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	items, err := h.payments.ListByInvoice(c.Request.Context(), h.CompanyID(c), invoiceID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromPayments(items))
}

// Get handles GET /payments/:id.
func (h *PaymentHandler) Get(c *gin.Context) {
	paymentID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	p, err := h.payments.GetByID(c.Request.Context(), h.CompanyID(c), paymentID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromPayment(p))
}

// Delete handles DELETE /payments/:id - reverses the payment and restores
// the invoice balance.
func (h *PaymentHandler) Delete(c *gin.Context) {
	paymentID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.payments.Delete(c.Request.Context(), h.CompanyID(c), paymentID); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}
