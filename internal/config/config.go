// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/jonathan/placement-prep/internal/rules"
	"github.com/jonathan/placement-prep/internal/types"
)

// Scoring strategies selectable from configuration.
const (
	StrategyLegacy  = "legacy"
	StrategyVerdict = "verdict"
)

// Environment variables read by ApplyEnv.
const (
	EnvDatabaseURL = "DATABASE_URL"
	EnvRulesDir    = "RULES_DIR"
	EnvListenAddr  = "LISTEN_ADDR"
)

// Config represents the configuration that can be loaded from a JSON or YAML file.
// All fields are optional; missing values use defaults or CLI flags.
type Config struct {
	// Rule selection
	Domain   string `json:"domain,omitempty" yaml:"domain,omitempty"`                                               // Target domain, e.g. web-developer
	Level    string `json:"level,omitempty" yaml:"level,omitempty"`                                                 // entryLevel, midLevel or seniorLevel
	Strategy string `json:"strategy,omitempty" yaml:"strategy,omitempty" validate:"omitempty,oneof=legacy verdict"` // Scoring strategy
	RulesDir string `json:"rules_dir,omitempty" yaml:"rules_dir,omitempty"`                                         // Directory of rule bundles overriding the embedded ones

	// Storage and serving
	DatabaseURL    string   `json:"database_url,omitempty" yaml:"database_url,omitempty"` // memory://, postgres://, redis:// or sqlite://
	ListenAddr     string   `json:"listen_addr,omitempty" yaml:"listen_addr,omitempty"`
	AllowedOrigins []string `json:"allowed_origins,omitempty" yaml:"allowed_origins,omitempty" validate:"dive,required"`

	// Timing
	DebounceMS          int `json:"debounce_ms,omitempty" yaml:"debounce_ms,omitempty" validate:"min=0"`
	FetchTimeoutSeconds int `json:"fetch_timeout_seconds,omitempty" yaml:"fetch_timeout_seconds,omitempty" validate:"min=0"`

	// Behavior
	Verbose bool `json:"verbose,omitempty" yaml:"verbose,omitempty"` // Print detailed debug information
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Domain:              rules.DomainWebDeveloper,
		Level:               string(types.LevelMid),
		Strategy:            StrategyVerdict,
		DatabaseURL:         "memory://",
		ListenAddr:          ":8080",
		AllowedOrigins:      []string{"*"},
		DebounceMS:          750,
		FetchTimeoutSeconds: 20,
	}
}

// LoadConfig loads configuration from a JSON or YAML file, chosen by extension.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("config error: invalid '%s'", jsonName(verrs[0].Field()))
		}
		return fmt.Errorf("config error: %w", err)
	}

	if c.Level != "" && !types.Level(c.Level).Valid() {
		return fmt.Errorf("config error: unknown level %q (want one of %v)", c.Level, types.Levels())
	}

	// A rules directory may override bundles but not add domains
	if c.Domain != "" && !rules.IsKnownDomain(c.Domain) {
		return fmt.Errorf("config error: unknown domain %q (available: %s)", c.Domain, strings.Join(rules.AvailableDomains(), ", "))
	}

	if c.RulesDir != "" {
		info, err := os.Stat(c.RulesDir)
		if err != nil || !info.IsDir() {
			return fmt.Errorf("config error: rules directory not found: %s", c.RulesDir)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Domain == "" {
		result.Domain = defaults.Domain
	}
	if result.Level == "" {
		result.Level = defaults.Level
	}
	if result.Strategy == "" {
		result.Strategy = defaults.Strategy
	}
	if result.RulesDir == "" {
		result.RulesDir = defaults.RulesDir
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.ListenAddr == "" {
		result.ListenAddr = defaults.ListenAddr
	}
	if len(result.AllowedOrigins) == 0 {
		result.AllowedOrigins = append([]string(nil), defaults.AllowedOrigins...)
	}

	// Int fields: use default if zero
	if result.DebounceMS == 0 {
		result.DebounceMS = defaults.DebounceMS
	}
	if result.FetchTimeoutSeconds == 0 {
		result.FetchTimeoutSeconds = defaults.FetchTimeoutSeconds
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// ApplyEnv fills empty fields from environment variables.
func (c *Config) ApplyEnv() {
	if c.DatabaseURL == "" {
		c.DatabaseURL = os.Getenv(EnvDatabaseURL)
	}
	if c.RulesDir == "" {
		c.RulesDir = os.Getenv(EnvRulesDir)
	}
	if c.ListenAddr == "" {
		c.ListenAddr = os.Getenv(EnvListenAddr)
	}
}

// Debounce returns the suggestion debounce delay.
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.DebounceMS) * time.Millisecond
}

// FetchTimeout returns the job posting fetch timeout.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutSeconds) * time.Second
}

// LevelOrDefault returns the configured level, or midLevel when unset.
func (c *Config) LevelOrDefault() types.Level {
	if c.Level == "" {
		return types.LevelMid
	}
	return types.Level(c.Level)
}

var jsonNames = map[string]string{
	"Strategy":            "strategy",
	"AllowedOrigins":      "allowed_origins",
	"DebounceMS":          "debounce_ms",
	"FetchTimeoutSeconds": "fetch_timeout_seconds",
}

func jsonName(field string) string {
	if idx := strings.IndexByte(field, '['); idx >= 0 {
		field = field[:idx]
	}
	if name, ok := jsonNames[field]; ok {
		return name
	}
	return field
}
