package document_repo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"buildledger/internal/domain/filter"
)

func newTestRepo() *BaseDocumentRepo[*struct{}] {
	return NewBaseDocumentRepo(nil, "invoices", "invoice_rows",
		[]string{"id", "company_id", "number", "status", "total_amount"},
		func() *struct{} { return &struct{}{} })
}

func TestApplyAdvancedFiltersAddsConditions(t *testing.T) {
	r := newTestRepo()
	q := r.Builder().Select("id").From("invoices")

	q, err := r.applyAdvancedFilters(q, []filter.Item{
		{Field: "status", Operator: filter.Equal, Value: "sent"},
		{Field: "total_amount", Operator: filter.GreaterOrEqual, Value: "1000"},
		{Field: "number", Operator: filter.Contains, Value: "INV"},
	})
	require.NoError(t, err)

	sql, args, err := q.ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "status = ")
	assert.Contains(t, sql, "total_amount >= ")
	assert.Contains(t, sql, "number ILIKE ")
	assert.Len(t, args, 3)
	assert.Contains(t, args, "%INV%")
}

func TestApplyAdvancedFiltersRejectsUnknownColumn(t *testing.T) {
	r := newTestRepo()
	q := r.Builder().Select("id").From("invoices")

	_, err := r.applyAdvancedFilters(q, []filter.Item{
		{Field: "secret_column; DROP TABLE invoices", Operator: filter.Equal, Value: "x"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid filter column")
}
