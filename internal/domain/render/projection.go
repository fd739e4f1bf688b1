package render

import (
	"time"

	"github.com/shopspring/decimal"

	"buildledger/internal/core/money"
	"buildledger/internal/domain/sections"
)

// DocumentInfo carries the header fields the printed layout needs.
// Amount fields that only some document types have (paid, balance due)
// are optional.
type DocumentInfo struct {
	Type         string // "Quotation", "Invoice", "Bill of Quantities", "Proforma Invoice"
	Number       string
	IssueDate    time.Time
	DueDate      *time.Time
	CurrencyCode string

	CompanyName    string
	CompanyAddress string
	CompanyPhone   string
	CompanyEmail   string

	CustomerName    string
	CustomerAddress string

	Notes string
	Terms string

	PaidAmount *decimal.Decimal
	BalanceDue *decimal.Decimal
}

// ItemRow is one formatted materials-table row.
type ItemRow struct {
	Description string
	Unit        string
	Quantity    string
	UnitPrice   string
	TaxRate     string
	LineTotal   string
}

// SectionPage is one printed page: the lettered section with its
// materials table and, when the section carries labor, a labour row.
type SectionPage struct {
	Letter string
	Name   string

	// ShowHeader is set only on the first page; the document header and
	// customer block print once.
	ShowHeader bool

	Materials      []ItemRow
	MaterialsTotal string

	// HasLabor is false when the section's labor cost is zero; the labour
	// subsection is then omitted entirely.
	HasLabor  bool
	LaborCost string

	SectionTotal string
}

// SummaryRow is one line of the final summary page.
type SummaryRow struct {
	Letter    string
	Name      string
	Materials string
	Labor     string
	Subtotal  string
}

// SummaryPage closes the document with per-section figures and grand totals.
type SummaryPage struct {
	Rows []SummaryRow

	TotalMaterials string
	TotalLabor     string
	TotalTax       string
	GrandTotal     string

	// Invoice-only figures; empty when not applicable
	PaidAmount string
	BalanceDue string
}

// Projection is the complete printable layout.
type Projection struct {
	Info    DocumentInfo
	Pages   []SectionPage
	Summary SummaryPage
}

// Build computes the projection. All money rendering goes through one
// formatter constructed from the document's currency code; nothing here
// hardcodes a currency.
func Build(info DocumentInfo, secs []*sections.Section) Projection {
	f := money.NewFormatter(info.CurrencyCode)
	return BuildWith(info, secs, f)
}

// BuildWith is Build with an explicit formatter, for callers that resolve
// symbol and fraction digits from the currency catalog.
func BuildWith(info DocumentInfo, secs []*sections.Section, f money.Formatter) Projection {
	p := Projection{Info: info}

	ed := sections.NewEditorWith(secs)

	for i, s := range secs {
		page := SectionPage{
			Letter:     SectionLetter(i),
			Name:       s.Name,
			ShowHeader: i == 0,
		}

		for ii := range s.Items {
			li := &s.Items[ii]
			page.Materials = append(page.Materials, ItemRow{
				Description: li.Description,
				Unit:        li.Unit,
				Quantity:    li.Quantity.String(),
				UnitPrice:   f.Format(li.UnitPrice),
				TaxRate:     taxRateLabel(li),
				LineTotal:   f.Format(li.LineTotal()),
			})
		}
		page.MaterialsTotal = f.Format(s.MaterialsTotal())

		if s.LaborCost.IsPositive() {
			page.HasLabor = true
			page.LaborCost = f.Format(s.LaborCost)
		}
		page.SectionTotal = f.Format(s.Total())

		p.Pages = append(p.Pages, page)
	}

	for i, s := range secs {
		p.Summary.Rows = append(p.Summary.Rows, SummaryRow{
			Letter:    SectionLetter(i),
			Name:      s.Name,
			Materials: f.Format(s.MaterialsTotal()),
			Labor:     f.Format(s.LaborCost),
			Subtotal:  f.Format(s.Total()),
		})
	}

	p.Summary.TotalMaterials = f.Format(ed.TotalMaterials())
	p.Summary.TotalLabor = f.Format(ed.TotalLabor())
	p.Summary.TotalTax = f.Format(ed.TotalTax())
	p.Summary.GrandTotal = f.Format(ed.GrandTotal())

	if info.PaidAmount != nil {
		p.Summary.PaidAmount = f.Format(*info.PaidAmount)
	}
	if info.BalanceDue != nil {
		p.Summary.BalanceDue = f.Format(*info.BalanceDue)
	}

	return p
}

func taxRateLabel(li *sections.LineItem) string {
	if !li.TaxInclusive || !li.TaxRatePercent.IsPositive() {
		return "-"
	}
	return li.TaxRatePercent.String() + "%"
}
