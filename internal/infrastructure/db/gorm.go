package db

import (
	"fmt"
	"strings"
	"time"

	"lamf-backoffice/internal/config"

	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Dialector picks the gorm driver for cfg.DBDriver. Postgres goes through lib/pq.
func Dialector(cfg *config.Config) (gorm.Dialector, error) {
	switch cfg.DBDriver {
	case config.DriverMySQL:
		return mysql.Open(cfg.MySQLDSN()), nil
	case config.DriverPostgres:
		return postgres.New(postgres.Config{DriverName: "postgres", DSN: cfg.PostgresDSN()}), nil
	case config.DriverSQLite:
		// sqlite enforces FKs per connection; the pragma in the DSN applies it to each one
		return sqlite.Open(cfg.SQLitePath + "?_foreign_keys=on&_busy_timeout=5000"), nil
	}
	return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
}

func OpenGorm(cfg *config.Config) (*gorm.DB, error) {
	dial, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}
	db, err := OpenGormWithDialector(dial, ParseLogLevel(cfg.DBLogLevel))
	if err != nil {
		return nil, err
	}
	if cfg.DBDriver == config.DriverSQLite {
		// one writer at a time; FOR UPDATE is not available
		sqlDB, _ := db.DB()
		sqlDB.SetMaxOpenConns(1)
	}
	zap.L().Info("gorm: connected", zap.String("driver", cfg.DBDriver))
	return db, nil
}

// OpenGormWithDialector opens, tunes the pool and pings once. Constraint errors
// are translated to gorm sentinels.
func OpenGormWithDialector(dial gorm.Dialector, level logger.LogLevel) (*gorm.DB, error) {
	db, err := gorm.Open(dial, &gorm.Config{
		Logger:               logger.Default.LogMode(level),
		TranslateError:       true,
		DisableAutomaticPing: true,
		NowFunc:              func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(30)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, err
	}
	return db, nil
}

func ParseLogLevel(s string) logger.LogLevel {
	switch strings.ToLower(s) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}
