package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Storage backend names accepted in STORAGE_BACKEND.
const (
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendSheets   = "sheets"
)

// Config holds all application configuration.
type Config struct {
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	ServerAddr  string `env:"SERVER_ADDR" envDefault:":8080"`
	MetricsAddr string `env:"METRICS_ADDR" envDefault:":9091"`

	// StorageBackend selects the submission store: sqlite, postgres or sheets.
	StorageBackend string `env:"STORAGE_BACKEND" envDefault:"sqlite"`
	SQLitePath     string `env:"SQLITE_PATH" envDefault:"leaderboard.db"`
	PostgresURL    string `env:"POSTGRES_URL"`

	SheetsSpreadsheetID   string `env:"SHEETS_SPREADSHEET_ID"`
	SheetsWorksheet       string `env:"SHEETS_WORKSHEET" envDefault:"data"`
	SheetsCredentialsFile string `env:"SHEETS_CREDENTIALS_FILE"`

	// Integrations is the ordered catalog of recognized integration names,
	// driving form choices, chart ordering and color assignment.
	Integrations []string `env:"INTEGRATIONS" envDefault:"GitHub,Datadog,Cursor,OpenAI,Clickhouse"`

	WriteRPS        float64       `env:"WRITE_RPS" envDefault:"5"`
	WriteBurst      int           `env:"WRITE_BURST" envDefault:"10"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	// Attempt to load .env file for local development.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate checks the backend-specific settings that cannot be expressed as
// unconditional `required` tags.
func (c *Config) validate() error {
	switch c.StorageBackend {
	case BackendSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required when STORAGE_BACKEND=%s", BackendSQLite)
		}
	case BackendPostgres:
		if c.PostgresURL == "" {
			return fmt.Errorf("POSTGRES_URL is required when STORAGE_BACKEND=%s", BackendPostgres)
		}
	case BackendSheets:
		if c.SheetsSpreadsheetID == "" {
			return fmt.Errorf("SHEETS_SPREADSHEET_ID is required when STORAGE_BACKEND=%s", BackendSheets)
		}
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q (expected %s, %s or %s)",
			c.StorageBackend, BackendSQLite, BackendPostgres, BackendSheets)
	}

	if len(c.Integrations) == 0 {
		return fmt.Errorf("INTEGRATIONS must list at least one integration name")
	}

	return nil
}
