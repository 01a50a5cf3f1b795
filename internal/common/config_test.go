package common

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewDefaultConfig(t *testing.T) {
	config := NewDefaultConfig()

	if config.Server.Port != 8080 {
		t.Errorf("default port = %d, want 8080", config.Server.Port)
	}
	if config.Storage.RawTable != "stocks.csv" {
		t.Errorf("default raw table = %s, want stocks.csv", config.Storage.RawTable)
	}
	if len(config.Stocks.Symbols) == 0 {
		t.Error("default config must list at least one symbol")
	}
	if config.Scheduler.Enabled {
		t.Error("scheduler must be disabled by default")
	}
	if err := config.Validate(); err != nil {
		t.Errorf("default config failed validation: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	content := `
[server]
port = 9090
host = "0.0.0.0"

[storage]
data_dir = "/tmp/pretium"
raw_table = "raw.csv"
analyzed_table = "analyzed.csv"

[stocks]
symbols = ["AAPL", "MSFT"]
`
	path := filepath.Join(t.TempDir(), "pretium.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	config, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}

	if config.Server.Port != 9090 {
		t.Errorf("port = %d, want 9090", config.Server.Port)
	}
	if config.RawTablePath() != filepath.Join("/tmp/pretium", "raw.csv") {
		t.Errorf("raw table path = %s", config.RawTablePath())
	}
	if len(config.Stocks.Symbols) != 2 {
		t.Errorf("symbols = %v, want two entries", config.Stocks.Symbols)
	}
	// Unset sections keep their defaults.
	if config.Fetcher.BaseURL != "https://finance.yahoo.com" {
		t.Errorf("fetcher base URL = %s, want default", config.Fetcher.BaseURL)
	}
}

func TestLoadFromFilesLaterFileWins(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "base.toml")
	override := filepath.Join(dir, "override.toml")

	if err := os.WriteFile(base, []byte("[server]\nport = 9090\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(override, []byte("[server]\nport = 9191\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	config, err := LoadFromFiles(base, override)
	if err != nil {
		t.Fatalf("LoadFromFiles failed: %v", err)
	}
	if config.Server.Port != 9191 {
		t.Errorf("port = %d, want override value 9191", config.Server.Port)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PRETIUM_SERVER_PORT", "7070")
	t.Setenv("PRETIUM_STOCK_SYMBOLS", "NVDA, AMD")
	t.Setenv("PRETIUM_LOG_LEVEL", "debug")

	config, err := LoadFromFiles()
	if err != nil {
		t.Fatalf("LoadFromFiles failed: %v", err)
	}

	if config.Server.Port != 7070 {
		t.Errorf("port = %d, want 7070", config.Server.Port)
	}
	if len(config.Stocks.Symbols) != 2 || config.Stocks.Symbols[1] != "AMD" {
		t.Errorf("symbols = %v, want [NVDA AMD]", config.Stocks.Symbols)
	}
	if config.Logging.Level != "debug" {
		t.Errorf("log level = %s, want debug", config.Logging.Level)
	}
}

func TestApplyFlagOverrides(t *testing.T) {
	config := NewDefaultConfig()
	ApplyFlagOverrides(config, 6060, "127.0.0.1")

	if config.Server.Port != 6060 {
		t.Errorf("port = %d, want 6060", config.Server.Port)
	}
	if config.Server.Host != "127.0.0.1" {
		t.Errorf("host = %s, want 127.0.0.1", config.Server.Host)
	}

	// Zero values leave config untouched.
	ApplyFlagOverrides(config, 0, "")
	if config.Server.Port != 6060 || config.Server.Host != "127.0.0.1" {
		t.Error("zero flag values must not override config")
	}
}

func TestValidateRejectsBadConfig(t *testing.T) {
	config := NewDefaultConfig()
	config.Logging.Level = "verbose"
	if err := config.Validate(); err == nil {
		t.Error("expected validation error for unknown log level")
	}

	config = NewDefaultConfig()
	config.Stocks.Symbols = nil
	if err := config.Validate(); err == nil {
		t.Error("expected validation error for empty symbol list")
	}
}

func TestValidateSchedule(t *testing.T) {
	tests := []struct {
		schedule string
		wantErr  bool
	}{
		{"*/30 * * * *", false},
		{"0 9 * * 1-5", false},
		{"* * * * *", true},
		{"*/2 * * * *", true},
		{"not a schedule", true},
	}

	for _, tt := range tests {
		err := ValidateSchedule(tt.schedule)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateSchedule(%q) error = %v, wantErr %v", tt.schedule, err, tt.wantErr)
		}
	}
}
