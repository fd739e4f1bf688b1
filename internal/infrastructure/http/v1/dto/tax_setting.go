package dto

import (
	"github.com/shopspring/decimal"

	"buildledger/internal/core/id"
	"buildledger/internal/domain/catalogs/taxsetting"
)

// --- Request DTOs ---

// CreateTaxSettingRequest is the request body for creating a tax setting.
type CreateTaxSettingRequest struct {
	Code        string          `json:"code"`
	Name        string          `json:"name" binding:"required"`
	RatePercent decimal.Decimal `json:"ratePercent"`
	IsDefault   bool            `json:"isDefault"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateTaxSettingRequest) ToEntity(companyID id.ID) *taxsetting.TaxSetting {
	t := taxsetting.NewTaxSetting(companyID, r.Name, r.RatePercent)
	t.Code = r.Code
	t.IsDefault = r.IsDefault
	return t
}

// UpdateTaxSettingRequest is the request body for updating a tax setting.
type UpdateTaxSettingRequest struct {
	Code        string          `json:"code"`
	Name        string          `json:"name" binding:"required"`
	RatePercent decimal.Decimal `json:"ratePercent"`
	IsDefault   bool            `json:"isDefault"`
	Version     int             `json:"version" binding:"required,min=1"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateTaxSettingRequest) ApplyTo(t *taxsetting.TaxSetting) {
	t.Code = r.Code
	t.Name = r.Name
	t.RatePercent = r.RatePercent
	t.IsDefault = r.IsDefault
	t.Version = r.Version
}

// --- Response DTOs ---

// TaxSettingResponse is the response body for a tax setting.
type TaxSettingResponse struct {
	CatalogResponse
	RatePercent decimal.Decimal `json:"ratePercent"`
	IsDefault   bool            `json:"isDefault"`
}

// FromTaxSetting maps the entity to its response DTO.
func FromTaxSetting(t *taxsetting.TaxSetting) TaxSettingResponse {
	return TaxSettingResponse{
		CatalogResponse: FromCatalog(t.Catalog),
		RatePercent:     t.RatePercent,
		IsDefault:       t.IsDefault,
	}
}
