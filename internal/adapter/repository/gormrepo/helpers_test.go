package gormrepo

import (
	"context"
	"testing"
	"time"

	"lamf-backoffice/internal/domain/application"
	"lamf-backoffice/internal/domain/collateral"
	"lamf-backoffice/internal/domain/loan"
	"lamf-backoffice/internal/domain/product"
	"lamf-backoffice/pkg/id"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openTestDB creates an in-memory sqlite DB with FK enforcement and the full schema.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	// every connection would get its own :memory: database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		t.Fatalf("enable fk: %v", err)
	}
	if err := Migrate(db); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func seedProduct(t *testing.T, db *gorm.DB) *product.Product {
	t.Helper()
	p := &product.Product{
		ID:           id.New(),
		Name:         "LAMF Standard",
		InterestRate: d("10.50"),
		MaxLTV:       d("50"),
		MinAmount:    d("10000"),
		MaxAmount:    d("1000000"),
		TenureMonths: 12,
	}
	if err := NewProductRepository(db).Create(context.Background(), p); err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return p
}

func seedApplication(t *testing.T, db *gorm.DB, productID string, status application.Status) *application.Application {
	t.Helper()
	a := &application.Application{
		ID:              id.New(),
		ApplicantName:   "Asha Rao",
		ProductID:       productID,
		RequestedAmount: d("500000"),
		Status:          status,
	}
	if err := NewApplicationRepository(db).Create(context.Background(), a); err != nil {
		t.Fatalf("seed application: %v", err)
	}
	return a
}

func seedLoan(t *testing.T, db *gorm.DB, app *application.Application) *loan.Loan {
	t.Helper()
	l := loan.New(id.New(), app, time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC))
	if err := NewLoanRepository(db).Create(context.Background(), l); err != nil {
		t.Fatalf("seed loan: %v", err)
	}
	return l
}

func seedCollateral(t *testing.T, db *gorm.DB, loanID, units, nav string) *collateral.Collateral {
	t.Helper()
	c := &collateral.Collateral{ID: id.New(), LoanID: loanID, FundName: "Axis Bluechip", ISIN: "INF846K01DP8"}
	if err := c.Revalue(d(units), d(nav)); err != nil {
		t.Fatalf("revalue: %v", err)
	}
	if err := NewCollateralRepository(db).Create(context.Background(), c); err != nil {
		t.Fatalf("seed collateral: %v", err)
	}
	return c
}
