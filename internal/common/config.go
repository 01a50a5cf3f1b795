package common

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
	"github.com/robfig/cron/v3"
)

// Config represents the application configuration
type Config struct {
	Environment string          `toml:"environment"` // "development" or "production"
	Server      ServerConfig    `toml:"server"`
	Storage     StorageConfig   `toml:"storage"`
	Stocks      StocksConfig    `toml:"stocks"`
	Fetcher     FetcherConfig   `toml:"fetcher"`
	Scheduler   SchedulerConfig `toml:"scheduler"`
	Logging     LoggingConfig   `toml:"logging"`
}

type ServerConfig struct {
	Port int    `toml:"port" validate:"gte=1,lte=65535"`
	Host string `toml:"host" validate:"required"`
}

// StorageConfig locates the CSV quote tables.
type StorageConfig struct {
	DataDir       string `toml:"data_dir" validate:"required"`
	RawTable      string `toml:"raw_table" validate:"required"`      // scraped quotes
	AnalyzedTable string `toml:"analyzed_table" validate:"required"` // quotes plus computed fields
}

// StocksConfig lists the symbols a collection run scrapes.
type StocksConfig struct {
	Symbols []string `toml:"symbols" validate:"min=1,dive,required"`
}

// FetcherConfig controls the quote page scraper.
type FetcherConfig struct {
	BaseURL        string        `toml:"base_url" validate:"required,url"`
	UserAgent      string        `toml:"user_agent"`
	RequestTimeout time.Duration `toml:"request_timeout"` // HTTP request timeout
	RateLimit      time.Duration `toml:"rate_limit"`      // Minimum time between quote requests
}

// SchedulerConfig controls periodic background collection
type SchedulerConfig struct {
	Enabled  bool   `toml:"enabled"`  // Disabled by default - user must explicitly opt-in
	Schedule string `toml:"schedule"` // Cron schedule format
}

type LoggingConfig struct {
	Level      string   `toml:"level" validate:"oneof=debug info warn error"` // "debug", "info", "warn", "error"
	Format     string   `toml:"format"`                                       // "json" or "text"
	Output     []string `toml:"output"`                                       // "stdout", "file"
	TimeFormat string   `toml:"time_format"`                                  // Time format for logs
}

// NewDefaultConfig creates a configuration with default values.
// Only user-facing settings are exposed in pretium.toml.
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Port: 8080,
			Host: "localhost",
		},
		Storage: StorageConfig{
			DataDir:       "./data",
			RawTable:      "stocks.csv",
			AnalyzedTable: "analyzed_stocks.csv",
		},
		Stocks: StocksConfig{
			Symbols: []string{"AAPL", "MSFT", "GOOGL", "TSLA", "NVDA", "AMZN", "DIS"},
		},
		Fetcher: FetcherConfig{
			BaseURL:        "https://finance.yahoo.com",
			UserAgent:      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			RequestTimeout: 30 * time.Second,
			RateLimit:      1 * time.Second,
		},
		Scheduler: SchedulerConfig{
			Enabled:  false,
			Schedule: "*/30 * * * *", // Every 30 minutes
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: []string{"stdout", "file"},
		},
	}
}

// LoadFromFile loads configuration with priority: default -> file -> env -> CLI
func LoadFromFile(path string) (*Config, error) {
	if path == "" {
		return LoadFromFiles()
	}
	return LoadFromFiles(path)
}

// LoadFromFiles loads configuration from multiple files; later files override
// earlier files, environment variables override all files.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks field constraints and the scheduler expression.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if c.Scheduler.Enabled {
		if err := ValidateSchedule(c.Scheduler.Schedule); err != nil {
			return fmt.Errorf("invalid scheduler configuration: %w", err)
		}
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	// Environment configuration (highest priority: PRETIUM_ENV, fallback: GO_ENV)
	if env := os.Getenv("PRETIUM_ENV"); env != "" {
		config.Environment = env
	} else if env := os.Getenv("GO_ENV"); env != "" {
		config.Environment = env
	}

	// Server configuration
	if port := os.Getenv("PRETIUM_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("PRETIUM_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}

	// Storage configuration
	if dataDir := os.Getenv("PRETIUM_DATA_DIR"); dataDir != "" {
		config.Storage.DataDir = dataDir
	}
	if rawTable := os.Getenv("PRETIUM_RAW_TABLE"); rawTable != "" {
		config.Storage.RawTable = rawTable
	}
	if analyzedTable := os.Getenv("PRETIUM_ANALYZED_TABLE"); analyzedTable != "" {
		config.Storage.AnalyzedTable = analyzedTable
	}

	// Stocks configuration
	if symbols := os.Getenv("PRETIUM_STOCK_SYMBOLS"); symbols != "" {
		parsed := []string{}
		for _, s := range strings.Split(symbols, ",") {
			if trimmed := strings.TrimSpace(s); trimmed != "" {
				parsed = append(parsed, trimmed)
			}
		}
		if len(parsed) > 0 {
			config.Stocks.Symbols = parsed
		}
	}

	// Fetcher configuration
	if baseURL := os.Getenv("PRETIUM_FETCHER_BASE_URL"); baseURL != "" {
		config.Fetcher.BaseURL = baseURL
	}
	if userAgent := os.Getenv("PRETIUM_FETCHER_USER_AGENT"); userAgent != "" {
		config.Fetcher.UserAgent = userAgent
	}
	if requestTimeout := os.Getenv("PRETIUM_FETCHER_REQUEST_TIMEOUT"); requestTimeout != "" {
		if rt, err := time.ParseDuration(requestTimeout); err == nil {
			config.Fetcher.RequestTimeout = rt
		}
	}
	if rateLimit := os.Getenv("PRETIUM_FETCHER_RATE_LIMIT"); rateLimit != "" {
		if rl, err := time.ParseDuration(rateLimit); err == nil {
			config.Fetcher.RateLimit = rl
		}
	}

	// Scheduler configuration
	if enabled := os.Getenv("PRETIUM_SCHEDULER_ENABLED"); enabled != "" {
		if e, err := strconv.ParseBool(enabled); err == nil {
			config.Scheduler.Enabled = e
		}
	}
	if schedule := os.Getenv("PRETIUM_SCHEDULER_SCHEDULE"); schedule != "" {
		config.Scheduler.Schedule = schedule
	}

	// Logging configuration
	if level := os.Getenv("PRETIUM_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if format := os.Getenv("PRETIUM_LOG_FORMAT"); format != "" {
		config.Logging.Format = format
	}
	if output := os.Getenv("PRETIUM_LOG_OUTPUT"); output != "" {
		outputs := []string{}
		for _, o := range strings.Split(output, ",") {
			if trimmed := strings.TrimSpace(o); trimmed != "" {
				outputs = append(outputs, trimmed)
			}
		}
		if len(outputs) > 0 {
			config.Logging.Output = outputs
		}
	}
}

// ApplyFlagOverrides applies command-line flag overrides to config
func ApplyFlagOverrides(config *Config, port int, host string) {
	// Command-line flags have highest priority
	if port > 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}

// RawTablePath returns the location of the scraped quote table.
func (c *Config) RawTablePath() string {
	return filepath.Join(c.Storage.DataDir, c.Storage.RawTable)
}

// AnalyzedTablePath returns the location of the derived quote table.
func (c *Config) AnalyzedTablePath() string {
	return filepath.Join(c.Storage.DataDir, c.Storage.AnalyzedTable)
}

// ValidateSchedule validates a cron schedule expression and ensures minimum 5-minute interval
func ValidateSchedule(schedule string) error {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	_, err := parser.Parse(schedule)
	if err != nil {
		return fmt.Errorf("invalid cron expression: %w", err)
	}

	parts := strings.Fields(schedule)
	if len(parts) < 5 {
		return fmt.Errorf("invalid cron format: expected 5 fields")
	}

	minuteField := parts[0]

	if minuteField == "*" {
		return fmt.Errorf("schedule must have minimum 5-minute interval (every minute is not allowed)")
	}

	if strings.HasPrefix(minuteField, "*/") {
		intervalStr := strings.TrimPrefix(minuteField, "*/")
		interval, err := strconv.Atoi(intervalStr)
		if err == nil && interval < 5 {
			return fmt.Errorf("schedule interval must be at least 5 minutes, got %d", interval)
		}
	}

	return nil
}

// IsProduction returns true if the environment is set to production
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}
