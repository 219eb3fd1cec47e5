package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"interview-scheduler/database"
)

// Config captures environment driven configuration values for the service.
type Config struct {
	Port             int
	DBDriver         string
	DBPath           string
	PostgresDSN      string
	MaxOpenConns     int
	StatementTimeout time.Duration
	StaticDir        string
	LogLevel         string
}

// Load parses configuration values from the current process environment.
//
// SQLite is the default store. Selecting Postgres requires POSTGRES_DSN or
// DATABASE_URL. Every missing or malformed variable is reported at once.
func Load() (Config, error) {
	cfg := Config{
		Port:     8080,
		DBDriver: database.DriverSQLite,
		DBPath:   "data.db",
		LogLevel: "info",
	}

	var missing, invalid []string

	if v := env("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port <= 0 || port > 65535 {
			invalid = append(invalid, "PORT")
		} else {
			cfg.Port = port
		}
	}

	if v := env("DB_DRIVER"); v != "" {
		switch strings.ToLower(v) {
		case database.DriverSQLite:
			cfg.DBDriver = database.DriverSQLite
		case database.DriverPostgres, "postgresql":
			cfg.DBDriver = database.DriverPostgres
		default:
			invalid = append(invalid, "DB_DRIVER")
		}
	}

	if v := env("DB_PATH"); v != "" {
		cfg.DBPath = v
	}

	cfg.PostgresDSN = env("POSTGRES_DSN")
	if cfg.PostgresDSN == "" {
		cfg.PostgresDSN = env("DATABASE_URL")
	}
	if cfg.DBDriver == database.DriverPostgres && cfg.PostgresDSN == "" {
		missing = append(missing, "POSTGRES_DSN")
	}

	if v := env("DB_MAX_OPEN_CONNS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			invalid = append(invalid, "DB_MAX_OPEN_CONNS")
		} else {
			cfg.MaxOpenConns = n
		}
	}

	if v := env("DB_STATEMENT_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d < 0 {
			invalid = append(invalid, "DB_STATEMENT_TIMEOUT")
		} else {
			cfg.StatementTimeout = d
		}
	}

	cfg.StaticDir = env("STATIC_DIR")
	if v := env("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment variables: %s", strings.Join(invalid, ", "))
	}
	return cfg, nil
}

// Database returns the connection options for the selected driver.
func (c Config) Database() database.Options {
	opts := database.Options{
		Driver:           c.DBDriver,
		DSN:              c.DBPath,
		MaxOpenConns:     c.MaxOpenConns,
		StatementTimeout: c.StatementTimeout,
	}
	if c.DBDriver == database.DriverPostgres {
		opts.DSN = c.PostgresDSN
	}
	return opts
}

func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func env(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}
