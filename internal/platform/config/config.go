// Package config loads simulation settings from a YAML/JSON file and the environment.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the simulation configuration.
type Config struct {
	Seed           int64  `json:"seed" yaml:"seed"`
	PatientsPerDay int    `json:"patientsPerDay" yaml:"patientsPerDay"`
	StartTimestamp int64  `json:"startTimestamp" yaml:"startTimestamp"` // 0 = now
	LogLevel       string `json:"logLevel" yaml:"logLevel"`

	// AuditDB is the SQLite file receiving the run's event trail. Empty disables it.
	AuditDB string `json:"auditDB" yaml:"auditDB"`
	RunID   string `json:"runID" yaml:"runID"`
}

// Environment overrides, applied by ApplyEnv.
const (
	EnvSeed     = "TRIAGE_SEED"
	EnvPatients = "TRIAGE_PATIENTS"
	EnvStart    = "TRIAGE_START"
	EnvLogLevel = "TRIAGE_LOG_LEVEL"
	EnvAuditDB  = "TRIAGE_AUDIT_DB"
	EnvRunID    = "TRIAGE_RUN_ID"
)

// DefaultConfig returns the settings of the reference day: 144 patients.
func DefaultConfig() *Config {
	cfg := new(Config)
	applyDefaults(cfg)
	return cfg
}

// LoadConfig loads configuration from a file over the defaults.
// Fields absent from the file keep their default; an explicit 0 is kept.
func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, fmt.Errorf("yaml unmarshal: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(b, cfg); err != nil {
			return nil, fmt.Errorf("json unmarshal: %w", err)
		}
	default:
		// Try YAML first, then JSON
		if err := yaml.Unmarshal(b, cfg); err != nil {
			if err := json.Unmarshal(b, cfg); err != nil {
				return nil, fmt.Errorf("unknown config format")
			}
		}
	}

	return cfg, validate(cfg)
}

// ApplyEnv loads a .env file if present, then lets TRIAGE_* variables
// override the loaded values. Defaults are not re-applied, so
// TRIAGE_PATIENTS=0 runs an empty day.
func (c *Config) ApplyEnv() error {
	// A missing .env is normal; real environment variables still apply.
	_ = godotenv.Load()

	if v, ok := os.LookupEnv(EnvSeed); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %v", ErrInvalidConfig, EnvSeed, v, err)
		}
		c.Seed = n
	}
	if v, ok := os.LookupEnv(EnvPatients); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %v", ErrInvalidConfig, EnvPatients, v, err)
		}
		c.PatientsPerDay = n
	}
	if v, ok := os.LookupEnv(EnvStart); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %v", ErrInvalidConfig, EnvStart, v, err)
		}
		c.StartTimestamp = n
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok {
		c.LogLevel = v
	}
	if v, ok := os.LookupEnv(EnvAuditDB); ok {
		c.AuditDB = v
	}
	if v, ok := os.LookupEnv(EnvRunID); ok {
		c.RunID = v
	}

	return validate(c)
}

// Validate checks the configuration after flags have been applied.
func (c *Config) Validate() error {
	return validate(c)
}

func applyDefaults(cfg *Config) {
	if cfg.Seed == 0 {
		cfg.Seed = 42
	}
	if cfg.PatientsPerDay == 0 {
		cfg.PatientsPerDay = 144
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
}

func validate(cfg *Config) error {
	if cfg.PatientsPerDay < 0 {
		return fmt.Errorf("%w: patientsPerDay must be >= 0, got %d", ErrInvalidConfig, cfg.PatientsPerDay)
	}
	if cfg.StartTimestamp < 0 {
		return fmt.Errorf("%w: startTimestamp must be >= 0, got %d", ErrInvalidConfig, cfg.StartTimestamp)
	}
	switch strings.ToLower(cfg.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: unknown logLevel %q", ErrInvalidConfig, cfg.LogLevel)
	}
	return nil
}
