package gormrepo

import (
	"lamf-backoffice/internal/domain/application"
	"lamf-backoffice/internal/domain/collateral"
	"lamf-backoffice/internal/domain/loan"
	"lamf-backoffice/internal/domain/product"

	"gorm.io/gorm"
)

// Models in dependency order; the FK constraints come from the association tags.
func Models() []any {
	return []any{&product.Product{}, &application.Application{}, &loan.Loan{}, &collateral.Collateral{}}
}

func Migrate(db *gorm.DB) error { return db.AutoMigrate(Models()...) }
