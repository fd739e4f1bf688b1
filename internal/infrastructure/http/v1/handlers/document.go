package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"buildledger/internal/core/apperror"
	"buildledger/internal/core/id"
	"buildledger/internal/domain/catalogs/currency"
	"buildledger/internal/domain/catalogs/customer"
	"buildledger/internal/domain/documents"
	domainFilter "buildledger/internal/domain/filter"
	"buildledger/internal/domain/render"
	"buildledger/internal/infrastructure/http/v1/dto"
)

// CompanyProfile is the issuing company's letterhead block, printed on
// every rendered document. Loaded from configuration at startup.
type CompanyProfile struct {
	Name    string
	Address string
	Phone   string
	Email   string
}

// DocumentHandler provides generic HTTP handlers for section-backed
// documents: CRUD, aggregate, and the render/PDF projection endpoints.
type DocumentHandler[T documents.Doc] struct {
	*BaseHandler
	service    *documents.DocService[T]
	entityName string
	docType    string

	newDoc   func(companyID id.ID) T
	mapToDTO func(doc T) any
	// enrichInfo lets document types add their own figures to the render
	// header (invoices: paid amount and balance due)
	enrichInfo func(doc T, info *render.DocumentInfo)

	customers  *customer.Service
	currencies *currency.Service
	company    CompanyProfile
}

// DocumentHandlerConfig configures the document handler.
type DocumentHandlerConfig[T documents.Doc] struct {
	Service    *documents.DocService[T]
	EntityName string
	// DocType is the display title used on rendered documents,
	// e.g. "Quotation", "Bill of Quantities"
	DocType    string
	NewDoc     func(companyID id.ID) T
	MapToDTO   func(doc T) any
	EnrichInfo func(doc T, info *render.DocumentInfo)

	Customers  *customer.Service
	Currencies *currency.Service
	Company    CompanyProfile
}

// NewDocumentHandler creates a document handler.
func NewDocumentHandler[T documents.Doc](base *BaseHandler, cfg DocumentHandlerConfig[T]) *DocumentHandler[T] {
	return &DocumentHandler[T]{
		BaseHandler: base,
		service:     cfg.Service,
		entityName:  cfg.EntityName,
		docType:     cfg.DocType,
		newDoc:      cfg.NewDoc,
		mapToDTO:    cfg.MapToDTO,
		enrichInfo:  cfg.EnrichInfo,
		customers:   cfg.Customers,
		currencies:  cfg.Currencies,
		company:     cfg.Company,
	}
}

// parseListFilter reads the document list query parameters.
func (h *DocumentHandler[T]) parseListFilter(c *gin.Context) (documents.ListFilter, bool) {
	var filter documents.ListFilter
	filter.Search = c.Query("search")
	filter.Limit = h.ParseIntQuery(c, "limit", 50)
	filter.Offset = h.ParseIntQuery(c, "offset", 0)
	filter.OrderBy = c.DefaultQuery("orderBy", "-issue_date")
	filter.IncludeDeleted = c.Query("includeDeleted") == "true"

	if customerID := c.Query("customerId"); customerID != "" {
		parsed, err := id.Parse(customerID)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid customer id").WithDetail("param", "customerId"))
			return filter, false
		}
		filter.CustomerID = &parsed
	}
	if status := c.Query("status"); status != "" {
		filter.Status = &status
	}
	if from, ok := h.parseDateQuery(c, "dateFrom"); !ok {
		return filter, false
	} else if from != nil {
		filter.DateFrom = from
	}
	if to, ok := h.parseDateQuery(c, "dateTo"); !ok {
		return filter, false
	} else if to != nil {
		filter.DateTo = to
	}

	if filterJSON := c.Query("filter"); filterJSON != "" {
		var advFilters []domainFilter.Item
		if err := json.Unmarshal([]byte(filterJSON), &advFilters); err != nil {
			h.Error(c, apperror.NewValidation("invalid filter format (json expected)"))
			return filter, false
		}
		filter.AdvancedFilters = advFilters
	}
	return filter, true
}

func (h *DocumentHandler[T]) parseDateQuery(c *gin.Context, key string) (*time.Time, bool) {
	val := c.Query(key)
	if val == "" {
		return nil, true
	}
	t, err := time.Parse("2006-01-02", val)
	if err != nil {
		if t, err = time.Parse(time.RFC3339, val); err != nil {
			h.Error(c, apperror.NewValidation("invalid date").WithDetail("param", key))
			return nil, false
		}
	}
	return &t, true
}

// List handles GET /{documents}.
func (h *DocumentHandler[T]) List(c *gin.Context) {
	filter, ok := h.parseListFilter(c)
	if !ok {
		return
	}

	result, err := h.service.List(c.Request.Context(), h.CompanyID(c), filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]any, len(result.Items))
	for i, item := range result.Items {
		items[i] = h.mapToDTO(item)
	}

	c.JSON(http.StatusOK, dto.ListResponse{
		Items:      items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}

// Create handles POST /{documents}.
func (h *DocumentHandler[T]) Create(c *gin.Context) {
	var req dto.CreateDocumentRequest
	if !h.BindJSON(c, &req) {
		return
	}

	doc := h.newDoc(h.CompanyID(c))
	if err := req.Apply(doc.Base()); err != nil {
		h.Error(c, err)
		return
	}

	if err := h.service.Create(c.Request.Context(), doc); err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, h.mapToDTO(doc))
}

// Get handles GET /{documents}/:id.
func (h *DocumentHandler[T]) Get(c *gin.Context) {
	docID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	doc, err := h.service.GetByID(c.Request.Context(), h.CompanyID(c), docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, h.mapToDTO(doc))
}

// Update handles PUT /{documents}/:id.
func (h *DocumentHandler[T]) Update(c *gin.Context) {
	ctx := c.Request.Context()

	docID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateDocumentRequest
	if !h.BindJSON(c, &req) {
		return
	}

	doc, err := h.service.GetByID(ctx, h.CompanyID(c), docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	if err := req.Apply(doc.Base()); err != nil {
		h.Error(c, err)
		return
	}

	if err := h.service.Update(ctx, doc); err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, h.mapToDTO(doc))
}

// Delete handles DELETE /{documents}/:id.
func (h *DocumentHandler[T]) Delete(c *gin.Context) {
	docID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), h.CompanyID(c), docID); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}

// Aggregate handles GET /{documents}/:id/aggregate - computed totals only.
func (h *DocumentHandler[T]) Aggregate(c *gin.Context) {
	docID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	agg, err := h.service.Aggregate(c.Request.Context(), h.CompanyID(c), docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, agg)
}

// Sections handles GET /{documents}/:id/sections - the section model alone.
func (h *DocumentHandler[T]) Sections(c *gin.Context) {
	docID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	doc, err := h.service.GetByID(c.Request.Context(), h.CompanyID(c), docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromSections(doc.Base().Sections))
}

// Render handles GET /{documents}/:id/render - the print projection as JSON.
func (h *DocumentHandler[T]) Render(c *gin.Context) {
	projection, ok := h.buildProjection(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, projection)
}

// PDF handles GET /{documents}/:id/pdf.
func (h *DocumentHandler[T]) PDF(c *gin.Context) {
	projection, ok := h.buildProjection(c)
	if !ok {
		return
	}

	data, err := render.GeneratePDF(projection)
	if err != nil {
		h.Error(c, apperror.NewInternal(err))
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+projection.Info.Number+`.pdf"`)
	c.Data(http.StatusOK, "application/pdf", data)
}

func (h *DocumentHandler[T]) buildProjection(c *gin.Context) (render.Projection, bool) {
	ctx := c.Request.Context()

	docID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return render.Projection{}, false
	}

	doc, err := h.service.GetByID(ctx, h.CompanyID(c), docID)
	if err != nil {
		h.Error(c, err)
		return render.Projection{}, false
	}

	base := doc.Base()
	info := render.DocumentInfo{
		Type:         h.docType,
		Number:       base.Number,
		IssueDate:    base.IssueDate,
		DueDate:      base.DueDate,
		CurrencyCode: base.CurrencyCode,

		CompanyName:    h.company.Name,
		CompanyAddress: h.company.Address,
		CompanyPhone:   h.company.Phone,
		CompanyEmail:   h.company.Email,

		Notes: base.Notes,
		Terms: base.Terms,
	}
	h.fillCustomer(ctx, base, &info)

	if h.enrichInfo != nil {
		h.enrichInfo(doc, &info)
	}

	formatter := h.currencies.FormatterFor(ctx, base.CurrencyCode)
	return render.BuildWith(info, base.Sections, formatter), true
}

// fillCustomer resolves the customer block for rendering. A missing
// customer does not block rendering; the document prints without it.
func (h *DocumentHandler[T]) fillCustomer(ctx context.Context, base *documents.SectionDocument, info *render.DocumentInfo) {
	cust, err := h.customers.GetByID(ctx, base.CompanyID, base.CustomerID)
	if err != nil {
		return
	}
	info.CustomerName = cust.Name
	info.CustomerAddress = cust.DisplayAddress()
}
