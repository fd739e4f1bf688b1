package dto

import (
	"github.com/shopspring/decimal"

	"buildledger/internal/core/apperror"
	"buildledger/internal/core/id"
	"buildledger/internal/domain/sections"
)

// --- Request DTOs ---

// LineItemRequest is one materials line in a section payload.
type LineItemRequest struct {
	// ID preserves the item identity across updates; empty for new lines
	ID             string          `json:"id"`
	ProductID      *string         `json:"productId"`
	Description    string          `json:"description" binding:"required"`
	Unit           string          `json:"unit"`
	Quantity       decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice      decimal.Decimal `json:"unitPrice"`
	TaxRatePercent decimal.Decimal `json:"taxRatePercent"`
	TaxInclusive   bool            `json:"taxInclusive"`
}

// SectionRequest is one section of a document payload.
type SectionRequest struct {
	ID        string            `json:"id"`
	Name      string            `json:"name" binding:"required"`
	LaborCost decimal.Decimal   `json:"laborCost"`
	Items     []LineItemRequest `json:"items"`
}

// ToSections converts the payload into domain sections. Item and section
// IDs are kept when supplied so updates do not churn identities.
func ToSections(reqs []SectionRequest) ([]*sections.Section, error) {
	result := make([]*sections.Section, 0, len(reqs))

	for _, sr := range reqs {
		s := sections.NewSection(sr.Name)
		if sr.ID != "" {
			sid, err := id.Parse(sr.ID)
			if err != nil {
				return nil, apperror.NewValidation("invalid section id").WithDetail("id", sr.ID)
			}
			s.ID = sid
		}
		s.LaborCost = sr.LaborCost

		for _, ir := range sr.Items {
			item := sections.LineItem{
				ID:             id.New(),
				Description:    ir.Description,
				Unit:           ir.Unit,
				Quantity:       ir.Quantity,
				UnitPrice:      ir.UnitPrice,
				TaxRatePercent: ir.TaxRatePercent,
				TaxInclusive:   ir.TaxInclusive,
			}
			if ir.ID != "" {
				iid, err := id.Parse(ir.ID)
				if err != nil {
					return nil, apperror.NewValidation("invalid item id").WithDetail("id", ir.ID)
				}
				item.ID = iid
			}
			if ir.ProductID != nil && *ir.ProductID != "" {
				pid, err := id.Parse(*ir.ProductID)
				if err != nil {
					return nil, apperror.NewValidation("invalid product id").WithDetail("productId", *ir.ProductID)
				}
				item.ProductID = &pid
			}
			s.Items = append(s.Items, item)
		}

		result = append(result, s)
	}

	return result, nil
}

// --- Response DTOs ---

// LineItemResponse is one materials line with computed amounts.
type LineItemResponse struct {
	ID             string          `json:"id"`
	ProductID      *string         `json:"productId,omitempty"`
	Description    string          `json:"description"`
	Unit           string          `json:"unit,omitempty"`
	Quantity       decimal.Decimal `json:"quantity"`
	UnitPrice      decimal.Decimal `json:"unitPrice"`
	TaxRatePercent decimal.Decimal `json:"taxRatePercent"`
	TaxInclusive   bool            `json:"taxInclusive"`
	TaxAmount      decimal.Decimal `json:"taxAmount"`
	LineTotal      decimal.Decimal `json:"lineTotal"`
}

// SectionResponse is one section with computed totals.
type SectionResponse struct {
	ID             string             `json:"id"`
	Name           string             `json:"name"`
	LaborCost      decimal.Decimal    `json:"laborCost"`
	Items          []LineItemResponse `json:"items"`
	MaterialsTotal decimal.Decimal    `json:"materialsTotal"`
	SectionTotal   decimal.Decimal    `json:"sectionTotal"`
}

// FromSections maps domain sections to response DTOs.
func FromSections(secs []*sections.Section) []SectionResponse {
	result := make([]SectionResponse, 0, len(secs))

	for _, s := range secs {
		sr := SectionResponse{
			ID:             s.ID.String(),
			Name:           s.Name,
			LaborCost:      s.LaborCost,
			Items:          make([]LineItemResponse, 0, len(s.Items)),
			MaterialsTotal: s.MaterialsTotal(),
			SectionTotal:   s.Total(),
		}

		for _, item := range s.Items {
			ir := LineItemResponse{
				ID:             item.ID.String(),
				Description:    item.Description,
				Unit:           item.Unit,
				Quantity:       item.Quantity,
				UnitPrice:      item.UnitPrice,
				TaxRatePercent: item.TaxRatePercent,
				TaxInclusive:   item.TaxInclusive,
				TaxAmount:      item.TaxAmount(),
				LineTotal:      item.LineTotal(),
			}
			if item.ProductID != nil {
				pid := item.ProductID.String()
				ir.ProductID = &pid
			}
			sr.Items = append(sr.Items, ir)
		}

		result = append(result, sr)
	}

	return result
}
