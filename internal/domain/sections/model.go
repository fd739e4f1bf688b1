// Package sections implements the section model for billing documents:
// an ordered collection of named groups, each holding line items and a
// flat labor cost. Documents persist a flattened row list; the nested
// model is rebuilt by grouping rows on their section tag.
package sections

import (
	"github.com/shopspring/decimal"

	"buildledger/internal/core/id"
	"buildledger/internal/core/money"
)

// DefaultSectionName is used when a document is created without any
// explicit section.
const DefaultSectionName = "General Items"

// LineItem is one row of a document: a quantity of a product or freeform
// service at a price and tax rate.
type LineItem struct {
	ID id.ID `json:"id"`

	// ProductID references the product catalog; nil for freeform lines
	ProductID *id.ID `json:"productId,omitempty"`

	Description string `json:"description"`

	// Unit is a display label ("pcs", "kg", "m2")
	Unit string `json:"unit,omitempty"`

	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`

	// TaxRatePercent applies only when TaxInclusive is set
	TaxRatePercent decimal.Decimal `json:"taxRatePercent"`
	TaxInclusive   bool            `json:"taxInclusive"`
}

// TaxAmount returns the tax portion of this line.
func (li *LineItem) TaxAmount() decimal.Decimal {
	return money.TaxAmount(li.Quantity, li.UnitPrice, li.TaxRatePercent, li.TaxInclusive)
}

// LineTotal returns the full line amount, tax folded in when applicable.
func (li *LineItem) LineTotal() decimal.Decimal {
	return money.LineTotal(li.Quantity, li.UnitPrice, li.TaxRatePercent, li.TaxInclusive)
}

// Section is a named, ordered group of line items plus one flat
// labor-cost figure.
type Section struct {
	ID        id.ID           `json:"id"`
	Name      string          `json:"name"`
	LaborCost decimal.Decimal `json:"laborCost"`

	// Items preserves insertion order; the order defines print sequence
	Items []LineItem `json:"items"`
}

// NewSection creates an empty section with the given name.
func NewSection(name string) *Section {
	return &Section{
		ID:        id.New(),
		Name:      name,
		LaborCost: decimal.Zero,
		Items:     nil,
	}
}

// MaterialsTotal sums line totals over the section's items.
func (s *Section) MaterialsTotal() decimal.Decimal {
	total := decimal.Zero
	for i := range s.Items {
		total = total.Add(s.Items[i].LineTotal())
	}
	return total
}

// TaxTotal sums tax amounts over the section's items.
func (s *Section) TaxTotal() decimal.Decimal {
	total := decimal.Zero
	for i := range s.Items {
		total = total.Add(s.Items[i].TaxAmount())
	}
	return total
}

// Total is materials plus the flat labor cost.
func (s *Section) Total() decimal.Decimal {
	return s.MaterialsTotal().Add(s.LaborCost)
}

// IsEmpty reports whether the section has no items.
// Empty sections stay visible while editing but produce no persisted rows.
func (s *Section) IsEmpty() bool {
	return len(s.Items) == 0
}

// findItem returns the index of the item with the given ID, or -1.
func (s *Section) findItem(itemID id.ID) int {
	for i := range s.Items {
		if s.Items[i].ID == itemID {
			return i
		}
	}
	return -1
}

// findProduct returns the index of the item referencing productID, or -1.
func (s *Section) findProduct(productID id.ID) int {
	for i := range s.Items {
		if s.Items[i].ProductID != nil && *s.Items[i].ProductID == productID {
			return i
		}
	}
	return -1
}
