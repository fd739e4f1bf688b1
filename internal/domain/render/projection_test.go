package render

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"buildledger/internal/domain/sections"
)

func d(s string) decimal.Decimal {
	v, _ := decimal.NewFromString(s)
	return v
}

func sampleSections(t *testing.T) []*sections.Section {
	t.Helper()
	e := sections.NewEditor()

	m, err := e.AddSection("Foundation")
	require.NoError(t, err)
	require.NoError(t, e.SetLaborCost(m.ID, d("500")))
	_, err = e.AddItem(m.ID, sections.NewItem{
		Description:    "Cement 50kg",
		Unit:           "bags",
		Quantity:       d("2"),
		UnitPrice:      d("100"),
		TaxRatePercent: d("16"),
		TaxInclusive:   true,
	})
	require.NoError(t, err)

	r, err := e.AddSection("Roofing")
	require.NoError(t, err)
	_, err = e.AddItem(r.ID, sections.NewItem{
		Description: "Iron sheets",
		Unit:        "pcs",
		Quantity:    d("10"),
		UnitPrice:   d("850"),
	})
	require.NoError(t, err)

	return e.Sections()
}

func TestBuildProjection(t *testing.T) {
	info := DocumentInfo{
		Type:         "Quotation",
		Number:       "QUO-2026-00001",
		IssueDate:    time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		CurrencyCode: "KES",
		CompanyName:  "Mwangi Builders Ltd",
		CustomerName: "Acme Estates",
	}

	p := Build(info, sampleSections(t))
	require.Len(t, p.Pages, 2)

	first := p.Pages[0]
	assert.Equal(t, "A", first.Letter)
	assert.Equal(t, "Foundation", first.Name)
	assert.True(t, first.ShowHeader)
	require.Len(t, first.Materials, 1)
	assert.Equal(t, "KSh 232.00", first.Materials[0].LineTotal)
	assert.Equal(t, "16%", first.Materials[0].TaxRate)
	assert.True(t, first.HasLabor)
	assert.Equal(t, "KSh 500.00", first.LaborCost)
	assert.Equal(t, "KSh 732.00", first.SectionTotal)

	second := p.Pages[1]
	assert.Equal(t, "B", second.Letter)
	assert.False(t, second.ShowHeader)
	// zero labor: labour subsection omitted
	assert.False(t, second.HasLabor)
	assert.Equal(t, "-", second.Materials[0].TaxRate)

	require.Len(t, p.Summary.Rows, 2)
	assert.Equal(t, "KSh 8,732.00", p.Summary.TotalMaterials)
	assert.Equal(t, "KSh 9,232.00", p.Summary.GrandTotal)
	assert.Equal(t, "KSh 500.00", p.Summary.TotalLabor)
}

func TestCurrencyCodeIsThreadedEverywhere(t *testing.T) {
	info := DocumentInfo{
		Type:         "Invoice",
		Number:       "INV-2026-00009",
		CurrencyCode: "USD",
	}
	paid := d("100")
	due := d("632")
	info.PaidAmount = &paid
	info.BalanceDue = &due

	p := Build(info, sampleSections(t))

	// every formatted amount renders in USD, never a hardcoded default
	for _, page := range p.Pages {
		for _, row := range page.Materials {
			assert.True(t, strings.HasPrefix(row.LineTotal, "$"), "got %s", row.LineTotal)
		}
		assert.False(t, strings.Contains(page.SectionTotal, "KSh"))
	}
	assert.True(t, strings.HasPrefix(p.Summary.GrandTotal, "$"))
	assert.Equal(t, "$100.00", p.Summary.PaidAmount)
	assert.Equal(t, "$632.00", p.Summary.BalanceDue)
}
