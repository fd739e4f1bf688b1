package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"buildledger/internal/core/id"
	"buildledger/internal/domain/catalogs/customer"
	"buildledger/internal/domain/documents/invoice"
)

func testCompanyID() id.ID { return id.New() }

func strPtr(s string) *string { return &s }

func TestExtractDBColumnsFlattensEmbedded(t *testing.T) {
	cols := ExtractDBColumns[customer.Customer]()

	// Fields from the embedded entity chain
	assert.Contains(t, cols, "id")
	assert.Contains(t, cols, "version")
	assert.Contains(t, cols, "company_id")
	assert.Contains(t, cols, "code")
	assert.Contains(t, cols, "name")

	// Customer's own fields
	assert.Contains(t, cols, "email")
	assert.Contains(t, cols, "tax_pin")
}

func TestExtractDBColumnsSkipsUntaggedFields(t *testing.T) {
	cols := ExtractDBColumns[invoice.Invoice]()

	assert.Contains(t, cols, "paid_amount")
	assert.Contains(t, cols, "source_boq_id")
	// Sections is tagged db:"-" and lives in its own table
	assert.NotContains(t, cols, "sections")
	assert.NotContains(t, cols, "-")
}

func TestStructToMap(t *testing.T) {
	c := customer.NewCustomer(testCompanyID(), "Mwangi Builders")
	c.Email = strPtr("info@mwangi.co.ke")

	m := StructToMap(c)

	assert.Equal(t, c.ID, m["id"])
	assert.Equal(t, c.CompanyID, m["company_id"])
	assert.Equal(t, "Mwangi Builders", m["name"])
	assert.Equal(t, c.Email, m["email"])
	_, hasSections := m["-"]
	assert.False(t, hasSections)
}

func TestStructToMapNonStruct(t *testing.T) {
	assert.Nil(t, StructToMap(42))
	assert.Nil(t, StructToMap("nope"))
}
