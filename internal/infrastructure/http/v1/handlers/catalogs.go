package handlers

import (
	"github.com/gin-gonic/gin"

	"buildledger/internal/domain/catalogs/currency"
	"buildledger/internal/domain/catalogs/customer"
	"buildledger/internal/domain/catalogs/product"
	"buildledger/internal/domain/catalogs/taxsetting"
	"buildledger/internal/infrastructure/http/v1/dto"
)

// CustomerHandler handles /customers.
type CustomerHandler = CatalogHandler[*customer.Customer, dto.CreateCustomerRequest, dto.UpdateCustomerRequest]

// NewCustomerHandler creates the customer catalog handler.
func NewCustomerHandler(base *BaseHandler, svc *customer.Service) *CustomerHandler {
	return NewCatalogHandler(base, CatalogHandlerConfig[*customer.Customer, dto.CreateCustomerRequest, dto.UpdateCustomerRequest]{
		Service:    svc.CatalogService,
		EntityName: "customer",
		MapCreateDTO: func(req dto.CreateCustomerRequest, c *gin.Context) (*customer.Customer, error) {
			return req.ToEntity(base.CompanyID(c)), nil
		},
		MapUpdateDTO: func(req dto.UpdateCustomerRequest, existing *customer.Customer) error {
			req.ApplyTo(existing)
			return nil
		},
		MapToDTO: func(item *customer.Customer) any { return dto.FromCustomer(item) },
	})
}

// ProductHandler handles /products.
type ProductHandler = CatalogHandler[*product.Product, dto.CreateProductRequest, dto.UpdateProductRequest]

// NewProductHandler creates the product catalog handler.
func NewProductHandler(base *BaseHandler, svc *product.Service) *ProductHandler {
	return NewCatalogHandler(base, CatalogHandlerConfig[*product.Product, dto.CreateProductRequest, dto.UpdateProductRequest]{
		Service:    svc.CatalogService,
		EntityName: "product",
		MapCreateDTO: func(req dto.CreateProductRequest, c *gin.Context) (*product.Product, error) {
			return req.ToEntity(base.CompanyID(c)), nil
		},
		MapUpdateDTO: func(req dto.UpdateProductRequest, existing *product.Product) error {
			req.ApplyTo(existing)
			return nil
		},
		MapToDTO: func(item *product.Product) any { return dto.FromProduct(item) },
	})
}

// CurrencyHandler handles /currencies. Currencies are shared reference data,
// not scoped to the calling company.
type CurrencyHandler = CatalogHandler[*currency.Currency, dto.CreateCurrencyRequest, dto.UpdateCurrencyRequest]

// NewCurrencyHandler creates the currency catalog handler.
func NewCurrencyHandler(base *BaseHandler, svc *currency.Service) *CurrencyHandler {
	return NewCatalogHandler(base, CatalogHandlerConfig[*currency.Currency, dto.CreateCurrencyRequest, dto.UpdateCurrencyRequest]{
		Service:    svc.CatalogService,
		EntityName: "currency",
		Shared:     true,
		MapCreateDTO: func(req dto.CreateCurrencyRequest, _ *gin.Context) (*currency.Currency, error) {
			return req.ToEntity(), nil
		},
		MapUpdateDTO: func(req dto.UpdateCurrencyRequest, existing *currency.Currency) error {
			req.ApplyTo(existing)
			return nil
		},
		MapToDTO: func(item *currency.Currency) any { return dto.FromCurrency(item) },
	})
}

// TaxSettingHandler handles /tax-settings.
type TaxSettingHandler = CatalogHandler[*taxsetting.TaxSetting, dto.CreateTaxSettingRequest, dto.UpdateTaxSettingRequest]

// NewTaxSettingHandler creates the tax setting catalog handler.
func NewTaxSettingHandler(base *BaseHandler, svc *taxsetting.Service) *TaxSettingHandler {
	return NewCatalogHandler(base, CatalogHandlerConfig[*taxsetting.TaxSetting, dto.CreateTaxSettingRequest, dto.UpdateTaxSettingRequest]{
		Service:    svc.CatalogService,
		EntityName: "tax setting",
		MapCreateDTO: func(req dto.CreateTaxSettingRequest, c *gin.Context) (*taxsetting.TaxSetting, error) {
			return req.ToEntity(base.CompanyID(c)), nil
		},
		MapUpdateDTO: func(req dto.UpdateTaxSettingRequest, existing *taxsetting.TaxSetting) error {
			req.ApplyTo(existing)
			return nil
		},
		MapToDTO: func(item *taxsetting.TaxSetting) any { return dto.FromTaxSetting(item) },
	})
}
