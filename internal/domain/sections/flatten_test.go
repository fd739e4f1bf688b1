package sections

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"buildledger/internal/core/apperror"
	"buildledger/internal/core/id"
)

func buildTwoSections(t *testing.T) *Editor {
	t.Helper()
	e := NewEditor()

	m, err := e.AddSection("Materials")
	require.NoError(t, err)
	require.NoError(t, e.SetLaborCost(m.ID, d("500")))
	productID := id.New()
	_, err = e.AddItem(m.ID, NewItem{
		ProductID:      &productID,
		Description:    "Cement 50kg",
		Unit:           "bags",
		Quantity:       d("20"),
		UnitPrice:      d("750"),
		TaxRatePercent: d("16"),
		TaxInclusive:   true,
	})
	require.NoError(t, err)
	_, err = e.AddItem(m.ID, NewItem{
		Description: "Ballast",
		Unit:        "tons",
		Quantity:    d("3"),
		UnitPrice:   d("1800"),
	})
	require.NoError(t, err)

	r, err := e.AddSection("Roofing")
	require.NoError(t, err)
	require.NoError(t, e.SetLaborCost(r.ID, d("1200")))
	_, err = e.AddItem(r.ID, NewItem{
		Description:    "Iron sheets",
		Unit:           "pcs",
		Quantity:       d("40"),
		UnitPrice:      d("850"),
		TaxRatePercent: d("16"),
		TaxInclusive:   true,
	})
	require.NoError(t, err)

	return e
}

func TestFlattenRegroupRoundTrip(t *testing.T) {
	e := buildTwoSections(t)
	rows := Flatten(e.Sections())
	require.Len(t, rows, 3)

	got, err := Regroup(rows)
	require.NoError(t, err)
	require.Len(t, got, 2)

	want := e.Sections()
	for si := range want {
		assert.Equal(t, want[si].Name, got[si].Name)
		assert.True(t, want[si].LaborCost.Equal(got[si].LaborCost))
		require.Len(t, got[si].Items, len(want[si].Items))
		for ii := range want[si].Items {
			w, g := want[si].Items[ii], got[si].Items[ii]
			assert.Equal(t, w.ID, g.ID)
			assert.Equal(t, w.Description, g.Description)
			assert.Equal(t, w.Unit, g.Unit)
			assert.True(t, w.Quantity.Equal(g.Quantity))
			assert.True(t, w.UnitPrice.Equal(g.UnitPrice))
			assert.True(t, w.TaxRatePercent.Equal(g.TaxRatePercent))
			assert.Equal(t, w.TaxInclusive, g.TaxInclusive)
		}
	}

	// totals survive the round trip
	regrouped := NewEditorWith(got)
	assert.True(t, e.GrandTotal().Equal(regrouped.GrandTotal()))
	assert.True(t, e.TotalTax().Equal(regrouped.TotalTax()))
}

func TestRegroupToleratesShuffledRows(t *testing.T) {
	e := buildTwoSections(t)
	rows := Flatten(e.Sections())

	// storage makes no ordering promises; SortOrder restores it
	rows[0], rows[2] = rows[2], rows[0]

	got, err := Regroup(rows)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Materials", got[0].Name)
	assert.Equal(t, "Roofing", got[1].Name)
	assert.Equal(t, "Cement 50kg", got[0].Items[0].Description)
}

func TestFlattenDropsEmptySections(t *testing.T) {
	e := NewEditor()
	m, _ := e.AddSection("Materials")
	_, err := e.AddItem(m.ID, NewItem{Description: "Cement", Quantity: d("2"), UnitPrice: d("100"), TaxRatePercent: d("16"), TaxInclusive: true})
	require.NoError(t, err)
	require.NoError(t, e.SetLaborCost(m.ID, d("500")))

	l, _ := e.AddSection("Labour")
	require.NoError(t, e.SetLaborCost(l.ID, d("1000")))

	rows := Flatten(e.Sections())
	require.Len(t, rows, 1)
	assert.Equal(t, "Materials", rows[0].SectionName)
	assert.True(t, rows[0].SectionLaborCost.Equal(d("500")))
}

func TestRegroupDetectsLaborCostMismatch(t *testing.T) {
	e := buildTwoSections(t)
	rows := Flatten(e.Sections())

	// simulate a partial write that left one row with a stale labor cost
	for i := range rows {
		if rows[i].SectionName == "Materials" {
			rows[i].SectionLaborCost = d("999")
			break
		}
	}

	_, err := Regroup(rows)
	require.Error(t, err)
	assert.True(t, apperror.IsDataIntegrity(err))
	appErr, _ := apperror.AsAppError(err)
	assert.Equal(t, "Materials", appErr.Details["section"])
}

func TestRegroupEmptyRows(t *testing.T) {
	got, err := Regroup(nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}
