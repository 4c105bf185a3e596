package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"

	"evalgo.org/eqinv/internal/logger"
)

// TestLoadDefaults tests that default configuration values are loaded correctly.
func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("nonexistent.yaml")
	if err != nil {
		t.Fatalf("Failed to load defaults: %v", err)
	}

	if cfg.Data.File != "./data/equipments.csv" {
		t.Errorf("Expected default data file './data/equipments.csv', got '%s'", cfg.Data.File)
	}
	if cfg.Data.BackupFile != "./data/equipments_backup.csv" {
		t.Errorf("Expected default backup file './data/equipments_backup.csv', got '%s'", cfg.Data.BackupFile)
	}
	if cfg.Data.LogFile != "./data/log_equipments.txt" {
		t.Errorf("Expected default log file './data/log_equipments.txt', got '%s'", cfg.Data.LogFile)
	}

	if cfg.Logging.Level != "warn" {
		t.Errorf("Expected default logging level 'warn', got '%s'", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "text" {
		t.Errorf("Expected default logging format 'text', got '%s'", cfg.Logging.Format)
	}
	if cfg.Logging.Output != "stderr" {
		t.Errorf("Expected default logging output 'stderr', got '%s'", cfg.Logging.Output)
	}
}

// TestLoadFile tests that values from a YAML file override defaults.
func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `data:
  file: /srv/eq/equipments.csv
  backup_file: /srv/eq/equipments_backup.csv
logging:
  level: debug
  format: json
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Data.File != "/srv/eq/equipments.csv" {
		t.Errorf("Expected data file from config, got '%s'", cfg.Data.File)
	}
	if cfg.Data.BackupFile != "/srv/eq/equipments_backup.csv" {
		t.Errorf("Expected backup file from config, got '%s'", cfg.Data.BackupFile)
	}
	if cfg.Data.LogFile != "./data/log_equipments.txt" {
		t.Errorf("Expected default log file, got '%s'", cfg.Data.LogFile)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Errorf("Expected debug/json logging, got %s/%s", cfg.Logging.Level, cfg.Logging.Format)
	}
}

// TestLoadInvalidFile tests that a malformed config file is reported.
func TestLoadInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("data: [unclosed"), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Expected error for malformed config file, got nil")
	}
}

// TestValidation tests the configuration validation logic.
func TestValidation(t *testing.T) {
	valid := func() *Config { return Defaults() }

	tests := []struct {
		name      string
		mutate    func(c *Config)
		expectErr bool
		errMsg    string
	}{
		{
			name:   "valid configuration",
			mutate: func(c *Config) {},
		},
		{
			name:      "empty data file",
			mutate:    func(c *Config) { c.Data.File = " " },
			expectErr: true,
			errMsg:    "data file is required",
		},
		{
			name:      "empty backup file",
			mutate:    func(c *Config) { c.Data.BackupFile = "" },
			expectErr: true,
			errMsg:    "backup file is required",
		},
		{
			name:      "empty log file",
			mutate:    func(c *Config) { c.Data.LogFile = "" },
			expectErr: true,
			errMsg:    "log file is required",
		},
		{
			name: "backup same as data",
			mutate: func(c *Config) {
				c.Data.File = "data/eq.csv"
				c.Data.BackupFile = "./data/eq.csv"
			},
			expectErr: true,
			errMsg:    "backup file must differ",
		},
		{
			name:      "unknown level",
			mutate:    func(c *Config) { c.Logging.Level = "loud" },
			expectErr: true,
			errMsg:    "invalid logging level",
		},
		{
			name:      "unknown format",
			mutate:    func(c *Config) { c.Logging.Format = "xml" },
			expectErr: true,
			errMsg:    "invalid logging format",
		},
		{
			name:      "unknown output",
			mutate:    func(c *Config) { c.Logging.Output = "syslog" },
			expectErr: true,
			errMsg:    "invalid logging output",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := validate(c)
			if tt.expectErr {
				if err == nil {
					t.Errorf("Expected error containing '%s', got nil", tt.errMsg)
				} else if !strings.Contains(err.Error(), tt.errMsg) {
					t.Errorf("Expected error containing '%s', got '%s'", tt.errMsg, err.Error())
				}
			} else if err != nil {
				t.Errorf("Expected no error, got %v", err)
			}
		})
	}
}

// TestEnvironmentVariableOverride tests that environment variables override config values.
func TestEnvironmentVariableOverride(t *testing.T) {
	t.Setenv("EQ_DATA_FILE", "/tmp/eq/custom.csv")
	t.Setenv("EQ_LOGGING_LEVEL", "error")

	cfg, err := Load("nonexistent.yaml")
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Data.File != "/tmp/eq/custom.csv" {
		t.Errorf("Expected data file from environment, got '%s'", cfg.Data.File)
	}
	if cfg.Logging.Level != "error" {
		t.Errorf("Expected level 'error' from environment, got '%s'", cfg.Logging.Level)
	}
}

// TestFlagOverride tests that explicitly set flags win over other sources.
func TestFlagOverride(t *testing.T) {
	t.Setenv("EQ_LOGGING_LEVEL", "error")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("data-file", "", "")
	flags.String("log-level", "", "")
	flags.String("log-format", "", "")
	if err := flags.Parse([]string{"--data-file=/tmp/eq/flag.csv", "--log-level=debug"}); err != nil {
		t.Fatalf("Failed to parse flags: %v", err)
	}

	cfg, err := LoadWithFlags("nonexistent.yaml", flags)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Data.File != "/tmp/eq/flag.csv" {
		t.Errorf("Expected data file from flag, got '%s'", cfg.Data.File)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Expected level 'debug' from flag, got '%s'", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "text" {
		t.Errorf("Expected unset flag to keep default format 'text', got '%s'", cfg.Logging.Format)
	}
}

// TestWriteFile tests that a written config loads back unchanged.
func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "configs", "config.yaml")

	want := &Config{
		Data: DataConfig{File: "a.csv", BackupFile: "b.csv", LogFile: "c.txt"},
		Logging: logger.Config{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
	}
	if err := want.WriteFile(path, false); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	if err := want.WriteFile(path, false); err == nil {
		t.Error("Expected error when overwriting without force, got nil")
	}
	if err := want.WriteFile(path, true); err != nil {
		t.Errorf("Expected forced overwrite to succeed, got %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load written config: %v", err)
	}
	if *got != *want {
		t.Errorf("Expected %+v, got %+v", want, got)
	}
}
