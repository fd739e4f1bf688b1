package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"buildledger/internal/core/apperror"
	"buildledger/internal/core/id"
	"buildledger/internal/domain/reports"
)

// ReportHandler handles read-only reporting endpoints.
type ReportHandler struct {
	*BaseHandler
	reports *reports.Service
}

// NewReportHandler creates the report handler.
func NewReportHandler(base *BaseHandler, svc *reports.Service) *ReportHandler {
	return &ReportHandler{BaseHandler: base, reports: svc}
}

// Receivables handles GET /reports/receivables.
func (h *ReportHandler) Receivables(c *gin.Context) {
	var filter reports.ReceivablesFilter
	filter.IncludeSettled = c.Query("includeSettled") == "true"

	if customerID := c.Query("customerId"); customerID != "" {
		parsed, err := id.Parse(customerID)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid customer id").WithDetail("param", "customerId"))
			return
		}
		filter.CustomerID = &parsed
	}
	if from := c.Query("dateFrom"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid date").WithDetail("param", "dateFrom"))
			return
		}
		filter.DateFrom = &t
	}
	if to := c.Query("dateTo"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid date").WithDetail("param", "dateTo"))
			return
		}
		filter.DateTo = &t
	}

	summary, err := h.reports.ReceivablesSummary(c.Request.Context(), h.CompanyID(c), filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// InvoiceStatus handles GET /reports/invoice-status.
func (h *ReportHandler) InvoiceStatus(c *gin.Context) {
	rows, err := h.reports.InvoiceStatusBreakdown(c.Request.Context(), h.CompanyID(c))
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// BoqStatus handles GET /reports/boq-status.
func (h *ReportHandler) BoqStatus(c *gin.Context) {
	rows, err := h.reports.BoqStatusBreakdown(c.Request.Context(), h.CompanyID(c))
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}
