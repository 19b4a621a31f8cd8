package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Config holds all application configuration loaded from environment variables.
// It is the single source of truth for runtime parameters.
type Config struct {
	Env      string
	LogLevel string

	DB     DatabaseConfig
	Remote RemoteConfig
	Report ReportConfig
}

// DatabaseConfig contains connection parameters for the record store.
// URL accepts sqlite:// and postgres:// schemes; the default is a local
// SQLite file next to the binary.
type DatabaseConfig struct {
	URL string
}

// RemoteConfig contains parameters for the RA price-online web service.
// Login and password may also be supplied per invocation on the command line;
// flags take precedence over the environment.
type RemoteConfig struct {
	BaseURL  string
	Login    string
	Password string
}

// ReportConfig contains the pricing constants applied when formatting
// store-query reports.
type ReportConfig struct {
	CostMultiplier   decimal.Decimal
	WeightMultiplier decimal.Decimal
	ImportBatchSize  int
}

// Load reads configuration from environment variables. If a .env file exists
// in the working directory, it will be loaded first. It returns a populated
// Config or an error with a human-friendly message.
func Load() (*Config, error) {
	// Load .env if present; ignore error if file is missing so that
	// environments relying solely on real environment variables keep working.
	_ = godotenv.Load()

	cfg := &Config{}

	cfg.Env = getEnv("ENV", "development")
	cfg.LogLevel = getEnv("LOG_LEVEL", "info")

	cfg.DB = DatabaseConfig{
		URL: getEnv("DATABASE_URL", "sqlite://pricedb.db"),
	}

	cfg.Remote = RemoteConfig{
		BaseURL:  getEnv("RA_BASE_URL", "https://ra.ae/webservice/customers"),
		Login:    getEnv("RA_LOGIN", ""),
		Password: getEnv("RA_PASSWORD", ""),
	}

	var err error
	if cfg.Report.CostMultiplier, err = parseDecimalEnv("COST_MULTIPLIER", "1.03"); err != nil {
		return nil, fmt.Errorf("invalid COST_MULTIPLIER: %w", err)
	}
	if cfg.Report.WeightMultiplier, err = parseDecimalEnv("WEIGHT_MULTIPLIER", "9.8"); err != nil {
		return nil, fmt.Errorf("invalid WEIGHT_MULTIPLIER: %w", err)
	}
	cfg.Report.ImportBatchSize = getEnvInt("IMPORT_BATCH_SIZE", 100)
	if cfg.Report.ImportBatchSize <= 0 {
		return nil, fmt.Errorf("IMPORT_BATCH_SIZE must be positive, got %d", cfg.Report.ImportBatchSize)
	}

	return cfg, nil
}

// getEnv returns the value of an environment variable or a default if empty.
func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getEnvInt returns the value of an environment variable as an integer or a default if empty/invalid.
func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

// parseDecimalEnv reads an environment variable and parses it as a decimal.
// If the variable is empty, it falls back to the provided default value.
func parseDecimalEnv(key, def string) (decimal.Decimal, error) {
	raw := getEnv(key, def)
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if d.IsNegative() {
		return decimal.Decimal{}, fmt.Errorf("value must be >= 0")
	}
	return d, nil
}
