package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	AppPort string
	LogMode string

	DBDriver string

	MySQLHost string
	MySQLPort string
	MySQLDB   string
	MySQLUser string
	MySQLPass string

	PostgresHost string
	PostgresPort string
	PostgresDB   string
	PostgresUser string
	PostgresPass string

	SQLitePath string

	RedisEnabled bool
	RedisAddr    string
	RedisDB      int

	IdempTTLSecs        int
	ScheduleLockTTLSecs int
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getenvInt(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return d
}

func getenvBool(k string, d bool) bool {
	if v := os.Getenv(k); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return d
}

func Load() *Config {
	return &Config{
		AppPort: getenv("APP_PORT", "8080"),
		LogMode: getenv("LOG_MODE", "dev"),

		DBDriver: getenv("DB_DRIVER", DriverMySQL),

		MySQLHost: getenv("MYSQL_HOST", "mysql"),
		MySQLPort: getenv("MYSQL_PORT", "3306"),
		MySQLDB:   getenv("MYSQL_DB", "contracts"),
		MySQLUser: getenv("MYSQL_USER", "contracts"),
		MySQLPass: getenv("MYSQL_PASS", "contracts"),

		PostgresHost: getenv("POSTGRES_HOST", "postgres"),
		PostgresPort: getenv("POSTGRES_PORT", "5432"),
		PostgresDB:   getenv("POSTGRES_DB", "contracts"),
		PostgresUser: getenv("POSTGRES_USER", "contracts"),
		PostgresPass: getenv("POSTGRES_PASS", "contracts"),

		SQLitePath: getenv("SQLITE_PATH", "contracts.db"),

		RedisEnabled: getenvBool("REDIS_ENABLED", true),
		RedisAddr:    getenv("REDIS_ADDR", "redis:6379"),
		RedisDB:      getenvInt("REDIS_DB", 0),

		IdempTTLSecs:        getenvInt("IDEMPOTENCY_TTL_SECONDS", 300),
		ScheduleLockTTLSecs: getenvInt("SCHEDULE_LOCK_TTL_SECONDS", 30),
	}
}

func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.AppPort, validation.Required, validation.By(validPort)),
		validation.Field(&c.DBDriver, validation.Required, validation.In(DriverMySQL, DriverPostgres, DriverSQLite)),
		validation.Field(&c.IdempTTLSecs, validation.Min(1)),
		validation.Field(&c.ScheduleLockTTLSecs, validation.Min(1)),
	); err != nil {
		return err
	}

	switch c.DBDriver {
	case DriverMySQL:
		return validation.ValidateStruct(c,
			validation.Field(&c.MySQLHost, validation.Required),
			validation.Field(&c.MySQLPort, validation.Required, validation.By(validPort)),
			validation.Field(&c.MySQLDB, validation.Required),
			validation.Field(&c.MySQLUser, validation.Required),
		)
	case DriverPostgres:
		return validation.ValidateStruct(c,
			validation.Field(&c.PostgresHost, validation.Required),
			validation.Field(&c.PostgresPort, validation.Required, validation.By(validPort)),
			validation.Field(&c.PostgresDB, validation.Required),
			validation.Field(&c.PostgresUser, validation.Required),
		)
	default:
		return validation.ValidateStruct(c, validation.Field(&c.SQLitePath, validation.Required))
	}
}

func validPort(v interface{}) error {
	s, _ := v.(string)
	if _, err := net.LookupPort("tcp", s); err != nil {
		return fmt.Errorf("invalid port %q", s)
	}
	return nil
}

func (c *Config) IdempotencyTTL() time.Duration {
	return time.Duration(c.IdempTTLSecs) * time.Second
}

func (c *Config) ScheduleLockTTL() time.Duration {
	return time.Duration(c.ScheduleLockTTLSecs) * time.Second
}

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// parseTime needed for DATETIME
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true&loc=UTC&charset=utf8mb4,utf8",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}

func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
		c.PostgresHost, c.PostgresPort, c.PostgresUser, c.PostgresPass, c.PostgresDB)
}

// DSN returns the connection string for the configured driver.
func (c *Config) DSN() string {
	switch c.DBDriver {
	case DriverPostgres:
		return c.PostgresDSN()
	case DriverSQLite:
		return c.SQLitePath
	default:
		return c.MySQLDSN()
	}
}
