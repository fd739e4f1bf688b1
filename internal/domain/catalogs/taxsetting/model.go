// Package taxsetting provides the TaxSetting catalog: the named tax rates
// a company applies to line items (e.g. "VAT 16%", "Zero Rated").
package taxsetting

import (
	"context"

	"github.com/shopspring/decimal"

	"buildledger/internal/core/apperror"
	"buildledger/internal/core/entity"
	"buildledger/internal/core/id"
)

// TaxSetting represents one named tax rate.
type TaxSetting struct {
	entity.Catalog

	// RatePercent is the percentage applied to tax-inclusive lines
	RatePercent decimal.Decimal `db:"rate_percent" json:"ratePercent"`

	// IsDefault marks the rate preselected for new line items
	IsDefault bool `db:"is_default" json:"isDefault"`
}

// NewTaxSetting creates a new TaxSetting for the company.
func NewTaxSetting(companyID id.ID, name string, rate decimal.Decimal) *TaxSetting {
	return &TaxSetting{
		Catalog:     entity.NewCatalog(companyID, "", name),
		RatePercent: rate,
	}
}

// Validate implements entity.Validatable interface.
func (t *TaxSetting) Validate(ctx context.Context) error {
	if err := t.Catalog.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(t.CompanyID) {
		return apperror.NewValidation("company is required").
			WithDetail("field", "companyId")
	}

	if t.RatePercent.IsNegative() || t.RatePercent.GreaterThan(decimal.NewFromInt(100)) {
		return apperror.NewValidation("tax rate must be between 0 and 100").
			WithDetail("field", "ratePercent").
			WithDetail("value", t.RatePercent.String())
	}

	return nil
}
