package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Storage drivers accepted by STORAGE_DRIVER.
const (
	DriverJSON   = "json"
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	// Server
	Port       int    `mapstructure:"PORT"`
	Env        string `mapstructure:"APP_ENV"` // development | production
	CORSOrigin string `mapstructure:"CORS_ORIGIN"`

	// Requests per minute per client on report, import and reset endpoints; 0 disables.
	HeavyRateLimit int `mapstructure:"HEAVY_RATE_LIMIT"`

	// Storage
	DataDir        string `mapstructure:"DATA_DIR"`
	StorageDriver  string `mapstructure:"STORAGE_DRIVER"` // json | sqlite | memory
	SQLitePath     string `mapstructure:"SQLITE_PATH"`
	InitialCatalog string `mapstructure:"INITIAL_CATALOG"`

	// Business
	LowStockThreshold  int  `mapstructure:"LOW_STOCK_THRESHOLD"`
	ReloadOnFailedSale bool `mapstructure:"RELOAD_ON_FAILED_SALE"`

	// Daily closing
	ClosingHour          int  `mapstructure:"CLOSING_HOUR"`
	ClosingMinute        int  `mapstructure:"CLOSING_MINUTE"`
	ClosingCheckInterval int  `mapstructure:"CLOSING_CHECK_INTERVAL_SECONDS"`
	ClosingShutdown      bool `mapstructure:"CLOSING_SHUTDOWN"`
	ClosingReportOnExit  bool `mapstructure:"CLOSING_REPORT_ON_EXIT"`

	// Reports
	ReportsPath    string `mapstructure:"REPORTS_PATH"`
	ReceiptWorkers int    `mapstructure:"RECEIPT_WORKERS"`
	AutoReceipt    bool   `mapstructure:"AUTO_RECEIPT"`
}

// Load reads configuration from environment variables (and optional .env file).
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AutomaticEnv()

	setDefaults(v)

	// Optional .env file for local development; a missing file is fine
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	cfg.StorageDriver = strings.ToLower(strings.TrimSpace(cfg.StorageDriver))
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", 8000)
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("CORS_ORIGIN", "*")
	v.SetDefault("HEAVY_RATE_LIMIT", 30)
	v.SetDefault("DATA_DIR", "data")
	v.SetDefault("STORAGE_DRIVER", DriverJSON)
	v.SetDefault("SQLITE_PATH", "data/inventario.db")
	v.SetDefault("INITIAL_CATALOG", "data/productos_iniciales.csv")
	v.SetDefault("LOW_STOCK_THRESHOLD", 10)
	v.SetDefault("RELOAD_ON_FAILED_SALE", false)
	v.SetDefault("CLOSING_HOUR", 3)
	v.SetDefault("CLOSING_MINUTE", 0)
	v.SetDefault("CLOSING_CHECK_INTERVAL_SECONDS", 60)
	v.SetDefault("CLOSING_SHUTDOWN", true)
	v.SetDefault("CLOSING_REPORT_ON_EXIT", true)
	v.SetDefault("REPORTS_PATH", "reports")
	v.SetDefault("RECEIPT_WORKERS", 2)
	v.SetDefault("AUTO_RECEIPT", true)
}

// Validate rejects values the process cannot start with.
func (c *Config) Validate() error {
	switch c.StorageDriver {
	case DriverJSON, DriverSQLite, DriverMemory:
	default:
		return fmt.Errorf("config: STORAGE_DRIVER %q no soportado (json, sqlite, memory)", c.StorageDriver)
	}
	if c.ClosingHour < 0 || c.ClosingHour > 23 {
		return fmt.Errorf("config: CLOSING_HOUR fuera de rango: %d", c.ClosingHour)
	}
	if c.ClosingMinute < 0 || c.ClosingMinute > 59 {
		return fmt.Errorf("config: CLOSING_MINUTE fuera de rango: %d", c.ClosingMinute)
	}
	if c.HeavyRateLimit < 0 {
		return fmt.Errorf("config: HEAVY_RATE_LIMIT negativo: %d", c.HeavyRateLimit)
	}
	if c.LowStockThreshold < 0 {
		return fmt.Errorf("config: LOW_STOCK_THRESHOLD negativo: %d", c.LowStockThreshold)
	}
	return nil
}

// ClosingInterval is the tick of the daily closing check.
func (c *Config) ClosingInterval() time.Duration {
	return time.Duration(c.ClosingCheckInterval) * time.Second
}

func (c *Config) IsProduction() bool { return c.Env == "production" }
