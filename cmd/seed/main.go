package main

import (
	"context"
	"flag"

	"lamf-backoffice/internal/adapter/repository/gormrepo"
	"lamf-backoffice/internal/config"
	"lamf-backoffice/internal/infrastructure/db"
	"lamf-backoffice/internal/infrastructure/logging"
	"lamf-backoffice/internal/seed"
	"lamf-backoffice/internal/usecase/application"
	"lamf-backoffice/internal/usecase/collateral"
	"lamf-backoffice/internal/usecase/disbursement"
	"lamf-backoffice/internal/usecase/loan"
	"lamf-backoffice/internal/usecase/product"

	"go.uber.org/zap"
)

func main() {
	file := flag.String("file", "seed.yaml", "path to the seed fixture")
	flag.Parse()

	if err := config.LoadDotEnv(".env"); err != nil {
		l, _ := zap.NewProduction()
		l.Fatal("read .env", zap.Error(err))
	}
	cfg, err := config.Load()
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		l, _ := zap.NewProduction()
		l.Fatal("invalid configuration", zap.Error(err))
	}
	_, syncLogger, err := logging.NewLogger(cfg.LogLevel)
	if err != nil {
		l, _ := zap.NewProduction()
		l.Fatal("init logger", zap.Error(err))
	}
	defer syncLogger()

	fx, err := seed.Load(*file)
	if err != nil {
		zap.L().Fatal("load fixture", zap.Error(err))
	}

	gdb, err := db.OpenGorm(cfg)
	if err != nil {
		zap.L().Fatal("open database", zap.Error(err))
	}
	if err := gormrepo.Migrate(gdb); err != nil {
		zap.L().Fatal("migrate", zap.Error(err))
	}

	tx := gormrepo.NewGormUoW(gdb)
	s := &seed.Seeder{
		Products:     product.NewUsecase(gormrepo.NewProductRepository(gdb), tx),
		Applications: application.NewUsecase(gormrepo.NewApplicationRepository(gdb), tx, disbursement.NewUsecase(tx)),
		Loans:        loan.NewUsecase(gormrepo.NewLoanRepository(gdb), tx),
		Collaterals:  collateral.NewUsecase(gormrepo.NewCollateralRepository(gdb), tx),
	}
	if _, err := s.Apply(context.Background(), fx); err != nil {
		zap.L().Fatal("seed failed", zap.Error(err))
	}
}
