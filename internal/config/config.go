// Package config provides configuration management for eqinv.
//
// This package handles loading configuration from multiple sources:
//   - YAML configuration files
//   - Environment variables (with EQ_ prefix)
//   - .env files
//   - Command line flags
//   - Default values
//
// # Configuration Sources Priority
//
// Configuration is loaded in the following order (later sources override earlier ones):
//  1. Default values (hardcoded)
//  2. Configuration files (./config.yaml, ./configs/config.yaml, ~/.eqinv/config.yaml, /etc/eqinv/config.yaml)
//  3. .env files
//  4. Environment variables (EQ_ prefix)
//  5. Command line flags that were set explicitly
//
// # Usage Example
//
//	cfg, err := config.Load("configs/config.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("Data file: %s\n", cfg.Data.File)
//
// # Environment Variables
//
// Use EQ_ prefix and underscores for nested keys:
//   - EQ_DATA_FILE=/var/lib/eqinv/equipments.csv
//   - EQ_DATA_LOG_FILE=/var/log/eqinv/log_equipments.txt
//   - EQ_LOGGING_LEVEL=debug
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"evalgo.org/eqinv/internal/logger"
)

// Config is the root configuration structure for eqinv.
type Config struct {
	// Data contains the file locations of the inventory
	Data DataConfig `mapstructure:"data" yaml:"data"`

	// Logging contains diagnostics settings
	Logging logger.Config `mapstructure:"logging" yaml:"logging"`
}

// DataConfig contains the file locations used by the inventory.
type DataConfig struct {
	// File is the semicolon-delimited data file
	File string `mapstructure:"file" yaml:"file"`

	// BackupFile receives a copy of File before every load
	BackupFile string `mapstructure:"backup_file" yaml:"backup_file"`

	// LogFile is the timestamped error log of rejected lines
	LogFile string `mapstructure:"log_file" yaml:"log_file"`
}

// flagKeys maps configuration keys to the persistent flags that override them.
var flagKeys = map[string]string{
	"data.file":      "data-file",
	"logging.level":  "log-level",
	"logging.format": "log-format",
}

// Load reads configuration from a file and environment variables.
// If cfgFile is empty, it searches for config.yaml in standard locations.
func Load(cfgFile string) (*Config, error) {
	return LoadWithFlags(cfgFile, nil)
}

// LoadWithFlags is Load with command line overrides. Only flags the user
// set take precedence; flags left at their zero value are ignored.
func LoadWithFlags(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("$HOME/.eqinv")
		v.AddConfigPath("/etc/eqinv")
	}

	if err := v.ReadInConfig(); err != nil {
		if cfgFile != "" {
			// A missing explicit file falls back to defaults
			if !isFileNotFoundError(err) {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		} else {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.MergeInConfig() // Ignore error if .env file doesn't exist

	v.SetEnvPrefix("EQ")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for key, name := range flagKeys {
			f := flags.Lookup(name)
			if f == nil || !f.Changed {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
			}
		}
	}

	loaded := &Config{}
	if err := v.Unmarshal(loaded); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(loaded); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return loaded, nil
}

// Defaults returns the configuration used when no other source is present.
func Defaults() *Config {
	return &Config{
		Data: DataConfig{
			File:       "./data/equipments.csv",
			BackupFile: "./data/equipments_backup.csv",
			LogFile:    "./data/log_equipments.txt",
		},
		Logging: logger.Config{
			Level:  "warn",
			Format: "text",
			Output: "stderr",
		},
	}
}

func setDefaults(v *viper.Viper) {
	d := Defaults()

	v.SetDefault("data.file", d.Data.File)
	v.SetDefault("data.backup_file", d.Data.BackupFile)
	v.SetDefault("data.log_file", d.Data.LogFile)

	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.output", d.Logging.Output)
}

func validate(cfg *Config) error {
	if strings.TrimSpace(cfg.Data.File) == "" {
		return fmt.Errorf("data file is required")
	}
	if strings.TrimSpace(cfg.Data.BackupFile) == "" {
		return fmt.Errorf("backup file is required")
	}
	if strings.TrimSpace(cfg.Data.LogFile) == "" {
		return fmt.Errorf("log file is required")
	}

	if filepath.Clean(cfg.Data.File) == filepath.Clean(cfg.Data.BackupFile) {
		return fmt.Errorf("backup file must differ from data file: %s", cfg.Data.File)
	}

	if cfg.Logging.Level != "" {
		if _, err := zerolog.ParseLevel(cfg.Logging.Level); err != nil {
			return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
		}
	}

	switch cfg.Logging.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	switch cfg.Logging.Output {
	case "", "stderr", "stdout":
	default:
		return fmt.Errorf("invalid logging output: %s", cfg.Logging.Output)
	}

	return nil
}

// Marshal renders the configuration as a YAML document that Load accepts.
func (c *Config) Marshal() ([]byte, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return out, nil
}

// WriteFile saves the configuration to path. It refuses to replace an
// existing file unless force is set.
func (c *Config) WriteFile(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file already exists: %s", path)
		}
	}

	out, err := c.Marshal()
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// isFileNotFoundError checks if an error is a file not found error.
func isFileNotFoundError(err error) bool {
	var pathErr *os.PathError
	if errors.As(err, &pathErr) {
		return errors.Is(pathErr, os.ErrNotExist)
	}
	return false
}
