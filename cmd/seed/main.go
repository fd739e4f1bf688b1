// Package main provides a CLI tool for seeding the database with initial data.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"buildledger/internal/core/apperror"
	"buildledger/internal/core/id"
	"buildledger/internal/domain/catalogs/currency"
	"buildledger/internal/domain/catalogs/customer"
	"buildledger/internal/domain/catalogs/product"
	"buildledger/internal/domain/catalogs/taxsetting"
	"buildledger/internal/infrastructure/storage/postgres"
	"buildledger/internal/infrastructure/storage/postgres/catalog_repo"
	"buildledger/pkg/logger"
	"buildledger/pkg/numerator"
)

func main() {
	_ = godotenv.Load()

	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	poolCfg := postgres.DefaultPoolConfig(dbURL)
	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	log.Info("connected to database")

	txManager := postgres.NewTxManager(pool)
	num := numerator.New(pool.Unwrap())

	companyID, err := resolveCompanyID()
	if err != nil {
		log.Fatalw("invalid COMPANY_ID", "error", err)
	}
	log.Infow("seeding company", "company_id", companyID)

	if err := seedCurrencies(ctx, txManager); err != nil {
		log.Fatalw("failed to seed currencies", "error", err)
	}
	if err := seedTaxSettings(ctx, txManager, companyID); err != nil {
		log.Fatalw("failed to seed tax settings", "error", err)
	}

	if os.Getenv("SEED_DEMO_DATA") == "true" {
		if err := seedDemoData(ctx, txManager, num, companyID); err != nil {
			log.Fatalw("failed to seed demo data", "error", err)
		}
	}

	log.Info("seeding completed successfully")
}

// resolveCompanyID reads COMPANY_ID or mints a fresh one.
func resolveCompanyID() (id.ID, error) {
	if raw := os.Getenv("COMPANY_ID"); raw != "" {
		return id.Parse(raw)
	}
	return id.New(), nil
}

func seedCurrencies(ctx context.Context, txManager *postgres.TxManager) error {
	repo := catalog_repo.NewCurrencyRepo(txManager)
	svc := currency.NewService(repo, txManager)

	seed := []struct {
		code   string
		name   string
		symbol string
	}{
		{"KES", "Kenyan Shilling", "KSh"},
		{"USD", "US Dollar", "$"},
		{"EUR", "Euro", "€"},
	}

	for i := range seed {
		s := seed[i]
		if _, err := svc.FindByISOCode(ctx, s.code); err == nil {
			continue
		} else if !apperror.IsNotFound(err) {
			return err
		}

		c := currency.NewCurrency(s.code, s.name, &s.code, &s.symbol)
		if err := svc.Create(ctx, c); err != nil {
			return fmt.Errorf("create currency %s: %w", s.code, err)
		}
	}
	return nil
}

func seedTaxSettings(ctx context.Context, txManager *postgres.TxManager, companyID id.ID) error {
	repo := catalog_repo.NewTaxSettingRepo(txManager)
	svc := taxsetting.NewService(repo, txManager)

	if _, err := svc.FindDefault(ctx, companyID); err == nil {
		return nil
	} else if !apperror.IsNotFound(err) {
		return err
	}

	vat := taxsetting.NewTaxSetting(companyID, "VAT 16%", decimal.NewFromInt(16))
	vat.IsDefault = true
	if err := svc.Create(ctx, vat); err != nil {
		return fmt.Errorf("create tax setting: %w", err)
	}

	exempt := taxsetting.NewTaxSetting(companyID, "Exempt", decimal.Zero)
	return svc.Create(ctx, exempt)
}

func seedDemoData(ctx context.Context, txManager *postgres.TxManager, num *numerator.Service, companyID id.ID) error {
	customerRepo := catalog_repo.NewCustomerRepo(txManager)
	customerSvc := customer.NewService(customerRepo, txManager, num)

	demo := customer.NewCustomer(companyID, "Riverside Estates Ltd")
	email := "accounts@riverside.example"
	phone := "+254 700 000000"
	address := "14 Mombasa Road, Nairobi"
	demo.Email = &email
	demo.Phone = &phone
	demo.Address = &address
	if err := customerSvc.Create(ctx, demo); err != nil {
		return fmt.Errorf("create demo customer: %w", err)
	}

	productRepo := catalog_repo.NewProductRepo(txManager)
	productSvc := product.NewService(productRepo, txManager, num)

	products := []struct {
		name  string
		unit  string
		price int64
	}{
		{"Cement 50kg", "bag", 850},
		{"Steel bar 12mm", "pc", 1250},
		{"River sand", "tonne", 2400},
		{"Electrical conduit 20mm", "m", 95},
	}
	for _, p := range products {
		item := product.NewProduct(companyID, p.name, decimal.NewFromInt(p.price))
		item.Unit = p.unit
		if err := productSvc.Create(ctx, item); err != nil {
			return fmt.Errorf("create demo product %q: %w", p.name, err)
		}
	}

	return nil
}
