// Package documents provides the shared base for section-backed billing
// documents: quotations, invoices, BOQs and proforma invoices all carry the
// same header, section model and derived totals.
package documents

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"buildledger/internal/core/entity"
	"buildledger/internal/core/id"
	"buildledger/internal/domain"
	"buildledger/internal/domain/sections"
)

// SectionDocument extends the document header with the in-memory section
// model and the aggregate figures persisted alongside the header.
//
// The aggregates are always recomputed from sections before save; stored
// values are a denormalization for list views, never a source of truth.
type SectionDocument struct {
	entity.Document

	// Subtotal is the materials total: Σ line totals, tax folded in
	Subtotal decimal.Decimal `db:"subtotal" json:"subtotal"`

	// TaxTotal is reported for breakdown display; it already sits inside
	// Subtotal and is never added to TotalAmount again
	TaxTotal decimal.Decimal `db:"tax_total" json:"taxTotal"`

	// LaborTotal is Σ section labor costs
	LaborTotal decimal.Decimal `db:"labor_total" json:"laborTotal"`

	// TotalAmount is Subtotal + LaborTotal
	TotalAmount decimal.Decimal `db:"total_amount" json:"totalAmount"`

	// Sections is the nested model; persisted as flattened rows
	Sections []*sections.Section `db:"-" json:"sections"`
}

// NewSectionDocument creates a draft document for the company.
func NewSectionDocument(companyID id.ID) SectionDocument {
	return SectionDocument{
		Document:    entity.NewDocument(companyID),
		Subtotal:    decimal.Zero,
		TaxTotal:    decimal.Zero,
		LaborTotal:  decimal.Zero,
		TotalAmount: decimal.Zero,
	}
}

// Editor wraps the document's sections for mutation.
func (d *SectionDocument) Editor() *sections.Editor {
	return sections.NewEditorWith(d.Sections)
}

// Recalculate recomputes the persisted aggregates from the section model.
// Must be called before every save.
func (d *SectionDocument) Recalculate() {
	ed := d.Editor()
	d.Subtotal = ed.TotalMaterials()
	d.TaxTotal = ed.TotalTax()
	d.LaborTotal = ed.TotalLabor()
	d.TotalAmount = ed.GrandTotal()
}

// Validate checks the header and the section model.
func (d *SectionDocument) Validate(ctx context.Context) error {
	if err := d.Document.Validate(ctx); err != nil {
		return err
	}
	return d.Editor().Validate()
}

// Rows flattens the section model for persistence.
func (d *SectionDocument) Rows() []sections.Row {
	return sections.Flatten(d.Sections)
}

// LoadRows rebuilds the section model from persisted rows.
func (d *SectionDocument) LoadRows(rows []sections.Row) error {
	secs, err := sections.Regroup(rows)
	if err != nil {
		return err
	}
	d.Sections = secs
	return nil
}

// Aggregate is the computed totals block exposed to rendering and API
// consumers. Paid and balance figures apply to invoices only.
type Aggregate struct {
	TotalMaterials decimal.Decimal  `json:"totalMaterials"`
	TotalLabor     decimal.Decimal  `json:"totalLabor"`
	TotalTax       decimal.Decimal  `json:"totalTax"`
	GrandTotal     decimal.Decimal  `json:"grandTotal"`
	PaidAmount     *decimal.Decimal `json:"paidAmount,omitempty"`
	BalanceDue     *decimal.Decimal `json:"balanceDue,omitempty"`
}

// Aggregate computes totals from the current section model.
func (d *SectionDocument) Aggregate() Aggregate {
	ed := d.Editor()
	return Aggregate{
		TotalMaterials: ed.TotalMaterials(),
		TotalLabor:     ed.TotalLabor(),
		TotalTax:       ed.TotalTax(),
		GrandTotal:     ed.GrandTotal(),
	}
}

// ListFilter filters document lists.
type ListFilter struct {
	domain.ListFilter

	CustomerID *id.ID
	Status     *string
	DateFrom   *time.Time
	DateTo     *time.Time
}

// Repository is the persistence contract shared by all section-backed
// document types. All operations are company-scoped.
type Repository[T entity.Validatable] interface {
	Create(ctx context.Context, doc T) error
	GetByID(ctx context.Context, companyID, docID id.ID) (T, error)
	GetByNumber(ctx context.Context, companyID id.ID, number string) (T, error)
	Update(ctx context.Context, doc T) error
	Delete(ctx context.Context, companyID, docID id.ID) error

	// Row operations. SaveRows replaces all rows of the document inside
	// the ambient transaction; a partial write is impossible.
	GetRows(ctx context.Context, docID id.ID) ([]sections.Row, error)
	SaveRows(ctx context.Context, docID id.ID, rows []sections.Row) error

	List(ctx context.Context, companyID id.ID, filter ListFilter) (domain.ListResult[T], error)
	GetForUpdate(ctx context.Context, companyID, docID id.ID) (T, error)
}
