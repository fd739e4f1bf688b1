package sections

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"buildledger/internal/core/apperror"
	"buildledger/internal/core/id"
)

func d(s string) decimal.Decimal {
	v, _ := decimal.NewFromString(s)
	return v
}

func TestSectionTotals(t *testing.T) {
	// Section "Materials": one item qty 2 × 100 at 16% inclusive, labor 500.
	e := NewEditor()
	s, err := e.AddSection("Materials")
	require.NoError(t, err)

	_, err = e.AddItem(s.ID, NewItem{
		Description:    "Cement 50kg",
		Quantity:       d("2"),
		UnitPrice:      d("100"),
		TaxRatePercent: d("16"),
		TaxInclusive:   true,
	})
	require.NoError(t, err)
	require.NoError(t, e.SetLaborCost(s.ID, d("500")))

	assert.True(t, s.MaterialsTotal().Equal(d("232")), "materials: %s", s.MaterialsTotal())
	assert.True(t, s.Total().Equal(d("732")), "section total: %s", s.Total())
}

func TestGrandTotalNeverDoubleCountsTax(t *testing.T) {
	e := NewEditor()
	s, _ := e.AddSection("Roofing")
	_, err := e.AddItem(s.ID, NewItem{
		Description:    "Iron sheets",
		Quantity:       d("10"),
		UnitPrice:      d("850"),
		TaxRatePercent: d("16"),
		TaxInclusive:   true,
	})
	require.NoError(t, err)
	require.NoError(t, e.SetLaborCost(s.ID, d("2000")))

	// Tax lives inside TotalMaterials; the grand total is exactly
	// materials + labor.
	assert.True(t, e.GrandTotal().Equal(e.TotalMaterials().Add(e.TotalLabor())))
	assert.False(t, e.TotalTax().IsZero())
	assert.True(t, e.GrandTotal().Equal(d("9860").Add(d("2000"))))
}

func TestEmptySectionLaborCountsInTotals(t *testing.T) {
	e := NewEditor()
	m, _ := e.AddSection("Materials")
	_, err := e.AddItem(m.ID, NewItem{
		Description:    "Cement",
		Quantity:       d("2"),
		UnitPrice:      d("100"),
		TaxRatePercent: d("16"),
		TaxInclusive:   true,
	})
	require.NoError(t, err)
	require.NoError(t, e.SetLaborCost(m.ID, d("500")))

	l, _ := e.AddSection("Labour")
	require.NoError(t, e.SetLaborCost(l.ID, d("1000")))

	assert.True(t, e.TotalLabor().Equal(d("1500")))
	assert.True(t, e.GrandTotal().Equal(d("1732")))

	// The empty section still produces no persisted rows.
	rows := Flatten(e.Sections())
	assert.Len(t, rows, 1)
	assert.Equal(t, "Materials", rows[0].SectionName)
}

func TestAddItemMergesSameProduct(t *testing.T) {
	e := NewEditor()
	s, _ := e.AddSection("Plumbing")

	productID := id.New()
	item := NewItem{
		ProductID:   &productID,
		Description: "PVC pipe 2in",
		Quantity:    d("1"),
		UnitPrice:   d("350"),
	}

	first, err := e.AddItem(s.ID, item)
	require.NoError(t, err)
	second, err := e.AddItem(s.ID, item)
	require.NoError(t, err)

	assert.Len(t, s.Items, 1)
	assert.Equal(t, first.ID, second.ID)
	assert.True(t, s.Items[0].Quantity.Equal(d("2")))
}

func TestFreeformItemsNeverMerge(t *testing.T) {
	e := NewEditor()
	s, _ := e.AddSection("Misc")

	item := NewItem{Description: "Site cleanup", Quantity: d("1"), UnitPrice: d("100")}
	_, err := e.AddItem(s.ID, item)
	require.NoError(t, err)
	_, err = e.AddItem(s.ID, item)
	require.NoError(t, err)

	assert.Len(t, s.Items, 2)
}

func TestRemoveLastItemKeepsSection(t *testing.T) {
	e := NewEditor()
	s, _ := e.AddSection("Electrical")
	li, err := e.AddItem(s.ID, NewItem{Description: "Cable", Quantity: d("5"), UnitPrice: d("120")})
	require.NoError(t, err)

	require.NoError(t, e.RemoveItem(s.ID, li.ID))

	assert.Len(t, e.Sections(), 1)
	assert.True(t, s.IsEmpty())
	assert.Empty(t, Flatten(e.Sections()))
}

func TestUpdateItemQuantityToZeroRemovesRow(t *testing.T) {
	e := NewEditor()
	s, _ := e.AddSection("Electrical")
	li, err := e.AddItem(s.ID, NewItem{Description: "Cable", Quantity: d("5"), UnitPrice: d("120")})
	require.NoError(t, err)

	zero := decimal.Zero
	require.NoError(t, e.UpdateItem(s.ID, li.ID, ItemPatch{Quantity: &zero}))
	assert.True(t, s.IsEmpty())
}

func TestUpdateItemRecomputesTotals(t *testing.T) {
	e := NewEditor()
	s, _ := e.AddSection("Electrical")
	li, err := e.AddItem(s.ID, NewItem{
		Description: "Cable", Quantity: d("5"), UnitPrice: d("120"),
	})
	require.NoError(t, err)
	assert.True(t, e.TotalMaterials().Equal(d("600")))

	qty := d("10")
	require.NoError(t, e.UpdateItem(s.ID, li.ID, ItemPatch{Quantity: &qty}))
	assert.True(t, e.TotalMaterials().Equal(d("1200")))
}

func TestAddSectionRejectsBlankName(t *testing.T) {
	e := NewEditor()
	_, err := e.AddSection("   ")
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
}

func TestSetLaborCostRejectsNegative(t *testing.T) {
	e := NewEditor()
	s, _ := e.AddSection("Materials")
	err := e.SetLaborCost(s.ID, d("-1"))
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
}

func TestValidateBeforeSave(t *testing.T) {
	t.Run("empty document rejected", func(t *testing.T) {
		e := NewEditor()
		_, _ = e.AddSection("Materials")
		err := e.Validate()
		require.Error(t, err)
		assert.True(t, apperror.IsValidation(err))
	})

	t.Run("blank description rejected", func(t *testing.T) {
		e := NewEditor()
		s, _ := e.AddSection("Materials")
		_, err := e.AddItem(s.ID, NewItem{Description: "  ", Quantity: d("1"), UnitPrice: d("10")})
		require.NoError(t, err)
		err = e.Validate()
		require.Error(t, err)
		assert.True(t, apperror.IsValidation(err))
	})

	t.Run("valid document passes", func(t *testing.T) {
		e := NewEditor()
		s, _ := e.AddSection("Materials")
		_, err := e.AddItem(s.ID, NewItem{Description: "Cement", Quantity: d("1"), UnitPrice: d("10")})
		require.NoError(t, err)
		assert.NoError(t, e.Validate())
	})
}

func TestRemoveSectionCascades(t *testing.T) {
	e := NewEditor()
	s, _ := e.AddSection("Doomed")
	_, err := e.AddItem(s.ID, NewItem{Description: "Thing", Quantity: d("1"), UnitPrice: d("10")})
	require.NoError(t, err)

	require.NoError(t, e.RemoveSection(s.ID))
	assert.Empty(t, e.Sections())
	assert.True(t, e.GrandTotal().IsZero())
}
