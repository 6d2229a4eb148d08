package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	httpadp "lamf-backoffice/internal/adapter/http"
	"lamf-backoffice/internal/adapter/middleware"
	"lamf-backoffice/internal/adapter/repository/gormrepo"
	"lamf-backoffice/internal/config"
	"lamf-backoffice/internal/infrastructure/cache"
	"lamf-backoffice/internal/infrastructure/db"
	"lamf-backoffice/internal/infrastructure/logging"
	"lamf-backoffice/internal/infrastructure/scheduler"
	"lamf-backoffice/internal/usecase/application"
	"lamf-backoffice/internal/usecase/collateral"
	"lamf-backoffice/internal/usecase/dashboard"
	"lamf-backoffice/internal/usecase/disbursement"
	"lamf-backoffice/internal/usecase/loan"
	"lamf-backoffice/internal/usecase/product"
	"lamf-backoffice/internal/usecase/risk"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const sweepTimeout = 5 * time.Minute

func main() {
	// the configured logger needs the config, so early failures use a default one
	cfg, err := loadConfig()
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

	if err := run(cfg); err != nil {
		zap.L().Fatal("server exited", zap.Error(err))
	}
}

func loadConfig() (*config.Config, error) {
	if err := config.LoadDotEnv(".env"); err != nil {
		return nil, err
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gdb, err := db.OpenGorm(cfg)
	if err != nil {
		return err
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()
	if cfg.DBAutoMigrate {
		if err := gormrepo.Migrate(gdb); err != nil {
			return err
		}
		zap.L().Info("schema migrated")
	}

	var idem echo.MiddlewareFunc
	if cfg.RedisAddr != "" {
		rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
		if err != nil {
			return err
		}
		defer rdb.Close()
		idem = middleware.Idempotency(cache.NewReplayStore(rdb, "idemp:lamf:"), cfg.IdempotencyTTL())
	} else {
		zap.L().Warn("REDIS_ADDR not set: idempotent replays disabled")
	}
	if !cfg.AuthEnabled() {
		zap.L().Warn("no API keys configured: authentication disabled")
	}

	products := gormrepo.NewProductRepository(gdb)
	apps := gormrepo.NewApplicationRepository(gdb)
	loans := gormrepo.NewLoanRepository(gdb)
	colls := gormrepo.NewCollateralRepository(gdb)
	tx := gormrepo.NewGormUoW(gdb)

	disburser := disbursement.NewUsecase(tx)
	riskUC := risk.NewUsecase(products, apps, loans, colls)
	collUC := collateral.NewUsecase(colls, tx)

	e := httpadp.NewServer(httpadp.Handlers{
		Health:       httpadp.NewHandler(sqlDB),
		Products:     httpadp.NewProductHandler(product.NewUsecase(products, tx)),
		Applications: httpadp.NewApplicationHandler(application.NewUsecase(apps, tx, disburser), disburser),
		Loans:        httpadp.NewLoanHandler(loan.NewUsecase(loans, tx), riskUC, collUC),
		Collaterals:  httpadp.NewCollateralHandler(collUC),
		Dashboard:    httpadp.NewDashboardHandler(dashboard.NewUsecase(tx)),
	}, middleware.NewAPIKeyAuth(cfg.AdminAPIKey, cfg.PartnerAPIKey), idem)

	var sched *scheduler.Scheduler
	if cfg.RiskSweepSpec != "" {
		if sched, err = scheduler.New(cfg.RiskSweepSpec, riskUC, sweepTimeout); err != nil {
			return err
		}
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		addr := ":" + cfg.AppPort
		zap.L().Info("listening", zap.String("addr", addr))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		zap.L().Info("shutting down", zap.Duration("timeout", cfg.ShutdownTimeout))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	if sched != nil {
		g.Go(func() error { return sched.Run(gctx) })
	}

	return g.Wait()
}
