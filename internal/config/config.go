package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	AppPort  string
	LogLevel string

	DBDriver      string
	DBAutoMigrate bool
	DBLogLevel    string

	MySQLHost string
	MySQLPort string
	MySQLDB   string
	MySQLUser string
	MySQLPass string

	PostgresHost    string
	PostgresPort    string
	PostgresDB      string
	PostgresUser    string
	PostgresPass    string
	PostgresSSLMode string

	SQLitePath string

	// RedisAddr empty disables request idempotency.
	RedisAddr    string
	RedisDB      int
	IdempTTLSecs int

	// Both keys empty disables API-key auth.
	AdminAPIKey   string
	PartnerAPIKey string

	// RiskSweepSpec is a cron expression; empty disables the sweep.
	RiskSweepSpec string

	ShutdownTimeout time.Duration
}

// LoadDotEnv reads .env into the environment if the file exists.
func LoadDotEnv(paths ...string) error {
	err := godotenv.Load(paths...)
	if err != nil && errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	if value := os.Getenv(key); value != "" {
		duration, err := time.ParseDuration(value)
		if err != nil {
			return 0, fmt.Errorf("invalid duration for %s: %q (%w)", key, value, err)
		}
		return duration, nil
	}
	return defaultValue, nil
}

func Load() (*Config, error) {
	shutdown, err := getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	c := &Config{
		AppPort:  getenv("APP_PORT", "8080"),
		LogLevel: getenv("LOG_LEVEL", "info"),

		DBDriver:      strings.ToLower(getenv("DB_DRIVER", DriverMySQL)),
		DBAutoMigrate: getEnvBool("DB_AUTO_MIGRATE", true),
		DBLogLevel:    getenv("DB_LOG_LEVEL", "warn"),

		MySQLHost: getenv("MYSQL_HOST", "mysql"),
		MySQLPort: getenv("MYSQL_PORT", "3306"),
		MySQLDB:   getenv("MYSQL_DB", "lamf"),
		MySQLUser: getenv("MYSQL_USER", "lamf"),
		MySQLPass: getenv("MYSQL_PASS", "lamf"),

		PostgresHost:    getenv("POSTGRES_HOST", "postgres"),
		PostgresPort:    getenv("POSTGRES_PORT", "5432"),
		PostgresDB:      getenv("POSTGRES_DB", "lamf"),
		PostgresUser:    getenv("POSTGRES_USER", "lamf"),
		PostgresPass:    getenv("POSTGRES_PASS", "lamf"),
		PostgresSSLMode: getenv("POSTGRES_SSLMODE", "disable"),

		SQLitePath: getenv("SQLITE_PATH", "lamf.db"),

		RedisAddr:    os.Getenv("REDIS_ADDR"),
		RedisDB:      getEnvInt("REDIS_DB", 0),
		IdempTTLSecs: getEnvInt("IDEMPOTENCY_TTL_SECONDS", 300),

		AdminAPIKey:   os.Getenv("ADMIN_API_KEY"),
		PartnerAPIKey: os.Getenv("PARTNER_API_KEY"),

		RiskSweepSpec: os.Getenv("RISK_SWEEP_SPEC"),

		ShutdownTimeout: shutdown,
	}
	return c, nil
}

func (c *Config) Validate() error {
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	switch c.DBDriver {
	case DriverMySQL:
		if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
			return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
		}
		if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
			return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
		}
	case DriverPostgres:
		if c.PostgresHost == "" || c.PostgresPort == "" || c.PostgresDB == "" || c.PostgresUser == "" {
			return errors.New("missing Postgres config (POSTGRES_HOST/PORT/DB/USER)")
		}
		if _, err := net.LookupPort("tcp", c.PostgresPort); err != nil {
			return fmt.Errorf("invalid POSTGRES_PORT %q: %w", c.PostgresPort, err)
		}
	case DriverSQLite:
		if c.SQLitePath == "" {
			return errors.New("missing SQLITE_PATH")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q (mysql|postgres|sqlite)", c.DBDriver)
	}
	if c.AdminAPIKey != "" && c.AdminAPIKey == c.PartnerAPIKey {
		return errors.New("ADMIN_API_KEY and PARTNER_API_KEY must differ")
	}
	if c.IdempTTLSecs <= 0 {
		return fmt.Errorf("invalid IDEMPOTENCY_TTL_SECONDS %d", c.IdempTTLSecs)
	}
	if c.RiskSweepSpec != "" {
		if _, err := cron.ParseStandard(c.RiskSweepSpec); err != nil {
			return fmt.Errorf("invalid RISK_SWEEP_SPEC %q: %w", c.RiskSweepSpec, err)
		}
	}
	return nil
}

func (c *Config) IdempotencyTTL() time.Duration { return time.Duration(c.IdempTTLSecs) * time.Second }

func (c *Config) AuthEnabled() bool { return c.AdminAPIKey != "" || c.PartnerAPIKey != "" }

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// parseTime needed for DATETIME; loc=UTC keeps timestamps in UTC
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true&loc=UTC&charset=utf8mb4,utf8",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}

// PostgresDSN is a lib/pq keyword/value connection string.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		c.PostgresHost, c.PostgresPort, c.PostgresUser, c.PostgresPass, c.PostgresDB, c.PostgresSSLMode)
}
