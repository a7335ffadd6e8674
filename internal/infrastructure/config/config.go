package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure for the locomotive inventory
// service. All configuration is loaded from YAML and can be overridden by
// environment variables.
type Config struct {
	API      APIConfig      `yaml:"api"`
	Web      WebConfig      `yaml:"web"`
	Logging  LoggingConfig  `yaml:"logging"`
	Security SecurityConfig `yaml:"security"`
}

// APIConfig contains HTTP API server settings.
type APIConfig struct {
	Host     string           `yaml:"host"`
	Port     int              `yaml:"port"`
	Timeouts APITimeoutConfig `yaml:"timeouts"`
	CORS     CORSConfig       `yaml:"cors"`
}

// APITimeoutConfig contains HTTP timeout settings, in seconds.
type APITimeoutConfig struct {
	Read  int `yaml:"read"`
	Write int `yaml:"write"`
	Idle  int `yaml:"idle"`
}

// CORSConfig contains Cross-Origin Resource Sharing settings.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
	AllowedMethods []string `yaml:"allowed_methods"`
	AllowedHeaders []string `yaml:"allowed_headers"`
}

// WebConfig contains static UI hosting settings.
// The browser UI is a plain static client consuming the records API;
// when Dir is empty the server hosts no UI.
type WebConfig struct {
	Dir string `yaml:"dir"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// SecurityConfig contains the shared-secret access keys.
//
// ReadKey grants read-only access to the records API; AdminKey grants
// full access. Both are opaque strings presented by clients in the
// Authorization header.
type SecurityConfig struct {
	ReadKey  string `yaml:"read_key"`
	AdminKey string `yaml:"admin_key"`
}

// Load reads configuration from a YAML file and applies environment variable
// overrides.
//
// The configuration loading order is:
//  1. Default values (hardcoded)
//  2. YAML file values (override defaults)
//  3. Environment variables (override file values)
//
// A missing config file is not an error: deployments that configure the
// service entirely through the environment need no file at all. Any other
// read or parse failure is reported.
//
// Environment variables follow the pattern: LOCOREG_SECTION_KEY
// For example: LOCOREG_API_PORT, LOCOREG_ADMIN_KEY
func Load(path string) (*Config, error) {
	// Start with defaults
	cfg := defaultConfig()

	// Read and parse YAML file, if present
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	case os.IsNotExist(err):
		// Defaults + environment only
	default:
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Apply environment variable overrides
	applyEnvOverrides(cfg)

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// defaultConfig returns a Config with sensible defaults.
func defaultConfig() *Config {
	return &Config{
		API: APIConfig{
			Host: "0.0.0.0",
			Port: 8080,
			Timeouts: APITimeoutConfig{
				Read:  30,
				Write: 30,
				Idle:  60,
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
	}
}

// applyEnvOverrides applies environment variable overrides to the
// configuration. Variables follow the pattern: LOCOREG_SECTION_KEY
func applyEnvOverrides(cfg *Config) {
	// API
	if v := os.Getenv("LOCOREG_API_HOST"); v != "" {
		cfg.API.Host = v
	}
	if v := os.Getenv("LOCOREG_API_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.API.Port = port
		}
	}

	// Static UI
	if v := os.Getenv("LOCOREG_WEB_DIR"); v != "" {
		cfg.Web.Dir = v
	}

	// Logging
	if v := os.Getenv("LOCOREG_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}

	// Security - access keys (IMPORTANT: always set in production)
	if v := os.Getenv("LOCOREG_READ_KEY"); v != "" {
		cfg.Security.ReadKey = v
	}
	if v := os.Getenv("LOCOREG_ADMIN_KEY"); v != "" {
		cfg.Security.AdminKey = v
	}
}

// Validate checks the configuration for errors and security issues.
func (c *Config) Validate() error {
	var errs []string

	// API validation
	if c.API.Port < 1 || c.API.Port > 65535 {
		errs = append(errs, "api.port must be between 1 and 65535")
	}

	// Security validation - both access keys are REQUIRED.
	// An empty key would let unauthenticated clients match the empty
	// token and bypass the tier check entirely.
	if c.Security.ReadKey == "" {
		errs = append(errs, "security.read_key is required (set LOCOREG_READ_KEY environment variable)")
	}
	if c.Security.AdminKey == "" {
		errs = append(errs, "security.admin_key is required (set LOCOREG_ADMIN_KEY environment variable)")
	}
	if c.Security.ReadKey != "" && c.Security.ReadKey == c.Security.AdminKey {
		errs = append(errs, "security.read_key and security.admin_key must differ")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}

	return nil
}

// GetReadTimeout returns the API read timeout as a Duration.
func (c *Config) GetReadTimeout() time.Duration {
	return time.Duration(c.API.Timeouts.Read) * time.Second
}

// GetWriteTimeout returns the API write timeout as a Duration.
func (c *Config) GetWriteTimeout() time.Duration {
	return time.Duration(c.API.Timeouts.Write) * time.Second
}

// GetIdleTimeout returns the API idle timeout as a Duration.
func (c *Config) GetIdleTimeout() time.Duration {
	return time.Duration(c.API.Timeouts.Idle) * time.Second
}
