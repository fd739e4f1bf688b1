package sections

import (
	"sort"

	"github.com/shopspring/decimal"

	"buildledger/internal/core/apperror"
	"buildledger/internal/core/id"
)

// Row is the flattened persistence form of one line item. Section metadata
// (name and labor cost) is denormalized onto every row because storage has
// no nested structure; the section model is rebuilt by grouping on
// SectionName.
type Row struct {
	ItemID         id.ID           `db:"item_id" json:"itemId"`
	ProductID      *id.ID          `db:"product_id" json:"productId,omitempty"`
	Description    string          `db:"description" json:"description"`
	Unit           string          `db:"unit" json:"unit,omitempty"`
	Quantity       decimal.Decimal `db:"quantity" json:"quantity"`
	UnitPrice      decimal.Decimal `db:"unit_price" json:"unitPrice"`
	TaxRatePercent decimal.Decimal `db:"tax_rate_percent" json:"taxRatePercent"`
	TaxInclusive   bool            `db:"tax_inclusive" json:"taxInclusive"`

	// Section tag, repeated on every row of the group
	SectionName      string          `db:"section_name" json:"sectionName"`
	SectionLaborCost decimal.Decimal `db:"section_labor_cost" json:"sectionLaborCost"`

	// SortOrder encodes (section index, item index) for stable round trips
	SortOrder int `db:"sort_order" json:"sortOrder"`
}

// sortOrderStride leaves room for a thousand items per section when
// encoding (section index, item index) into one integer.
const sortOrderStride = 1000

// Flatten converts sections into persistence rows. Sections with no items
// produce no rows and are dropped; their labor cost does not survive a
// save. Callers that care (totals) must compute aggregates before
// flattening.
func Flatten(secs []*Section) []Row {
	var rows []Row
	for si, s := range secs {
		for ii := range s.Items {
			li := &s.Items[ii]
			rows = append(rows, Row{
				ItemID:           li.ID,
				ProductID:        li.ProductID,
				Description:      li.Description,
				Unit:             li.Unit,
				Quantity:         li.Quantity,
				UnitPrice:        li.UnitPrice,
				TaxRatePercent:   li.TaxRatePercent,
				TaxInclusive:     li.TaxInclusive,
				SectionName:      s.Name,
				SectionLaborCost: s.LaborCost,
				SortOrder:        si*sortOrderStride + ii,
			})
		}
	}
	return rows
}

// Regroup rebuilds the section model from persisted rows. Rows are grouped
// by SectionName; the first occurrence of a name determines section display
// order, and rows within a group are ordered by SortOrder.
//
// Every row of a group must carry the same SectionLaborCost. Disagreement
// means the stored rows were corrupted by a partial write and is reported
// as a data integrity error instead of silently trusting the first row.
func Regroup(rows []Row) ([]*Section, error) {
	sorted := make([]Row, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].SortOrder < sorted[j].SortOrder
	})

	var secs []*Section
	byName := make(map[string]*Section)

	for i := range sorted {
		r := &sorted[i]
		s, ok := byName[r.SectionName]
		if !ok {
			s = NewSection(r.SectionName)
			s.LaborCost = r.SectionLaborCost
			byName[r.SectionName] = s
			secs = append(secs, s)
		} else if !s.LaborCost.Equal(r.SectionLaborCost) {
			return nil, apperror.NewDataIntegrity(
				"rows of one section carry different labor costs").
				WithDetail("section", r.SectionName).
				WithDetail("labor_cost_first", s.LaborCost.String()).
				WithDetail("labor_cost_row", r.SectionLaborCost.String())
		}

		s.Items = append(s.Items, LineItem{
			ID:             r.ItemID,
			ProductID:      r.ProductID,
			Description:    r.Description,
			Unit:           r.Unit,
			Quantity:       r.Quantity,
			UnitPrice:      r.UnitPrice,
			TaxRatePercent: r.TaxRatePercent,
			TaxInclusive:   r.TaxInclusive,
		})
	}

	return secs, nil
}
