// Package currency provides the Currency catalog.
// Currencies are shared reference data (not company-scoped) describing the
// monetary units documents can be denominated in.
package currency

import (
	"context"
	"regexp"

	"buildledger/internal/core/apperror"
	"buildledger/internal/core/entity"
	"buildledger/internal/core/id"
	"buildledger/internal/core/money"
)

// Currency represents a monetary unit.
type Currency struct {
	entity.Catalog

	// ISOCode is the ISO 4217 alphabetic code (e.g., "KES", "USD", "EUR")
	ISOCode *string `db:"iso_code" json:"isoCode"`

	// Symbol is the display symbol or prefix (e.g., "KSh ", "$")
	Symbol *string `db:"symbol" json:"symbol"`

	// DecimalPlaces is the number of fraction digits shown
	DecimalPlaces int `db:"decimal_places" json:"decimalPlaces"`

	// IsBase indicates the company's accounting currency
	IsBase bool `db:"is_base" json:"isBase"`
}

// NewCurrency creates a new Currency with required fields.
func NewCurrency(code, name string, isoCode, symbol *string) *Currency {
	return &Currency{
		Catalog:       entity.NewCatalog(id.Nil(), code, name),
		ISOCode:       isoCode,
		Symbol:        symbol,
		DecimalPlaces: 2,
	}
}

// Validate implements entity.Validatable interface.
func (c *Currency) Validate(ctx context.Context) error {
	if err := c.Catalog.Validate(ctx); err != nil {
		return err
	}

	if !isValidISOCode(c.ISOCode) {
		return apperror.NewValidation("ISO code must be 3 uppercase letters").
			WithDetail("field", "isoCode").
			WithDetail("value", c.ISOCode)
	}

	if c.Symbol == nil || *c.Symbol == "" {
		return apperror.NewValidation("symbol is required").
			WithDetail("field", "symbol")
	}

	if c.DecimalPlaces < 0 || c.DecimalPlaces > 8 {
		return apperror.NewValidation("decimal places must be between 0 and 8").
			WithDetail("field", "decimalPlaces")
	}

	return nil
}

// Formatter builds a money formatter from the catalog record.
func (c *Currency) Formatter() money.Formatter {
	symbol := ""
	if c.Symbol != nil {
		symbol = *c.Symbol
	}
	return money.NewFormatterWith(symbol, int32(c.DecimalPlaces))
}

var isoCodeRe = regexp.MustCompile(`^[A-Z]{3}$`)

func isValidISOCode(code *string) bool {
	if code == nil {
		return false
	}
	return isoCodeRe.MatchString(*code)
}
