package sections

import (
	"strings"

	"github.com/shopspring/decimal"

	"buildledger/internal/core/apperror"
	"buildledger/internal/core/id"
)

// Editor maintains the ordered section collection for one document being
// edited. All mutations are synchronous and leave the model consistent;
// totals are always derived, never cached.
type Editor struct {
	sections []*Section
}

// NewEditor creates an editor with no sections.
func NewEditor() *Editor {
	return &Editor{}
}

// NewEditorWith creates an editor seeded with existing sections
// (typically the output of Regroup).
func NewEditorWith(secs []*Section) *Editor {
	return &Editor{sections: secs}
}

// Sections returns the sections in display order.
func (e *Editor) Sections() []*Section {
	return e.sections
}

// Section returns the section with the given ID.
func (e *Editor) Section(sectionID id.ID) (*Section, error) {
	for _, s := range e.sections {
		if s.ID == sectionID {
			return s, nil
		}
	}
	return nil, apperror.NewNotFound("section", sectionID.String())
}

// AddSection appends a new empty section.
func (e *Editor) AddSection(name string) (*Section, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperror.NewValidation("section name must not be blank").
			WithDetail("field", "name")
	}
	s := NewSection(strings.TrimSpace(name))
	e.sections = append(e.sections, s)
	return s, nil
}

// RemoveSection removes the section and all its items.
func (e *Editor) RemoveSection(sectionID id.ID) error {
	for i, s := range e.sections {
		if s.ID == sectionID {
			e.sections = append(e.sections[:i], e.sections[i+1:]...)
			return nil
		}
	}
	return apperror.NewNotFound("section", sectionID.String())
}

// RenameSection changes a section's display name.
func (e *Editor) RenameSection(sectionID id.ID, newName string) error {
	if strings.TrimSpace(newName) == "" {
		return apperror.NewValidation("section name must not be blank").
			WithDetail("field", "name")
	}
	s, err := e.Section(sectionID)
	if err != nil {
		return err
	}
	s.Name = strings.TrimSpace(newName)
	return nil
}

// SetLaborCost sets the section's flat labor amount.
func (e *Editor) SetLaborCost(sectionID id.ID, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return apperror.NewValidation("labor cost must not be negative").
			WithDetail("field", "laborCost").
			WithDetail("value", amount.String())
	}
	s, err := e.Section(sectionID)
	if err != nil {
		return err
	}
	s.LaborCost = amount
	return nil
}

// NewItem describes an item being added: either a catalog product or a
// freeform row.
type NewItem struct {
	ProductID      *id.ID
	Description    string
	Unit           string
	Quantity       decimal.Decimal
	UnitPrice      decimal.Decimal
	TaxRatePercent decimal.Decimal
	TaxInclusive   bool
}

// AddItem adds a line to the section. If the section already holds a line
// referencing the same product, its quantity is incremented by 1 instead of
// creating a duplicate row.
func (e *Editor) AddItem(sectionID id.ID, item NewItem) (*LineItem, error) {
	s, err := e.Section(sectionID)
	if err != nil {
		return nil, err
	}

	if item.ProductID != nil {
		if i := s.findProduct(*item.ProductID); i >= 0 {
			s.Items[i].Quantity = s.Items[i].Quantity.Add(decimal.NewFromInt(1))
			return &s.Items[i], nil
		}
	}

	qty := item.Quantity
	if qty.IsZero() {
		qty = decimal.NewFromInt(1)
	}

	li := LineItem{
		ID:             id.New(),
		ProductID:      item.ProductID,
		Description:    item.Description,
		Unit:           item.Unit,
		Quantity:       qty,
		UnitPrice:      item.UnitPrice,
		TaxRatePercent: item.TaxRatePercent,
		TaxInclusive:   item.TaxInclusive,
	}
	s.Items = append(s.Items, li)
	return &s.Items[len(s.Items)-1], nil
}

// ItemPatch carries field updates for UpdateItem. Nil fields are left alone.
type ItemPatch struct {
	Description    *string
	Unit           *string
	Quantity       *decimal.Decimal
	UnitPrice      *decimal.Decimal
	TaxRatePercent *decimal.Decimal
	TaxInclusive   *bool
}

// UpdateItem applies the patch to a line item. Editing quantity down to zero
// or below removes the row entirely.
func (e *Editor) UpdateItem(sectionID, itemID id.ID, patch ItemPatch) error {
	s, err := e.Section(sectionID)
	if err != nil {
		return err
	}
	i := s.findItem(itemID)
	if i < 0 {
		return apperror.NewNotFound("line item", itemID.String())
	}

	li := &s.Items[i]
	if patch.Description != nil {
		li.Description = *patch.Description
	}
	if patch.Unit != nil {
		li.Unit = *patch.Unit
	}
	if patch.UnitPrice != nil {
		if patch.UnitPrice.IsNegative() {
			return apperror.NewValidation("unit price must not be negative").
				WithDetail("field", "unitPrice")
		}
		li.UnitPrice = *patch.UnitPrice
	}
	if patch.TaxRatePercent != nil {
		li.TaxRatePercent = *patch.TaxRatePercent
	}
	if patch.TaxInclusive != nil {
		li.TaxInclusive = *patch.TaxInclusive
	}
	if patch.Quantity != nil {
		if !patch.Quantity.IsPositive() {
			s.Items = append(s.Items[:i], s.Items[i+1:]...)
			return nil
		}
		li.Quantity = *patch.Quantity
	}
	return nil
}

// RemoveItem deletes the row. The section itself stays, even when this was
// its last item.
func (e *Editor) RemoveItem(sectionID, itemID id.ID) error {
	s, err := e.Section(sectionID)
	if err != nil {
		return err
	}
	i := s.findItem(itemID)
	if i < 0 {
		return apperror.NewNotFound("line item", itemID.String())
	}
	s.Items = append(s.Items[:i], s.Items[i+1:]...)
	return nil
}

// --- Document-level aggregates ---

// TotalMaterials sums MaterialsTotal over all sections.
func (e *Editor) TotalMaterials() decimal.Decimal {
	total := decimal.Zero
	for _, s := range e.sections {
		total = total.Add(s.MaterialsTotal())
	}
	return total
}

// TotalLabor sums labor costs over all sections, including empty ones.
func (e *Editor) TotalLabor() decimal.Decimal {
	total := decimal.Zero
	for _, s := range e.sections {
		total = total.Add(s.LaborCost)
	}
	return total
}

// TotalTax sums tax amounts over all line items in all sections.
// Tax already sits inside TotalMaterials; this figure is for breakdown
// display and is never added to the grand total again.
func (e *Editor) TotalTax() decimal.Decimal {
	total := decimal.Zero
	for _, s := range e.sections {
		total = total.Add(s.TaxTotal())
	}
	return total
}

// GrandTotal is materials plus labor.
func (e *Editor) GrandTotal() decimal.Decimal {
	return e.TotalMaterials().Add(e.TotalLabor())
}

// Validate checks the model before save: at least one section must contain
// at least one item, and every item needs a description, a positive
// quantity, and a non-negative price.
func (e *Editor) Validate() error {
	hasItems := false
	for _, s := range e.sections {
		for ii := range s.Items {
			hasItems = true
			li := &s.Items[ii]
			if strings.TrimSpace(li.Description) == "" {
				return apperror.NewValidation("line item description must not be empty").
					WithDetail("section", s.Name).
					WithDetail("item_index", ii)
			}
			if !li.Quantity.IsPositive() {
				return apperror.NewValidation("line item quantity must be positive").
					WithDetail("section", s.Name).
					WithDetail("item_index", ii).
					WithDetail("quantity", li.Quantity.String())
			}
			if li.UnitPrice.IsNegative() {
				return apperror.NewValidation("line item unit price must not be negative").
					WithDetail("section", s.Name).
					WithDetail("item_index", ii).
					WithDetail("unit_price", li.UnitPrice.String())
			}
		}
	}
	if !hasItems {
		return apperror.NewValidation("document must contain at least one line item")
	}
	return nil
}
