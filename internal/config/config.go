// Package config provides configuration loading and validation for the CLI
// and the registry server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Storage backends.
const (
	StorageMemory   = "memory"
	StorageFile     = "file"
	StorageRedis    = "redis"
	StoragePostgres = "postgres"
	StorageRemote   = "remote"
)

// Rasterizers used for PDF export.
const (
	RasterizerChrome = "chrome"
	RasterizerText   = "text"
)

// Config represents the configuration that can be loaded from a JSON file and
// overridden by environment variables. All fields are optional.
type Config struct {
	// Storage
	Storage        string `json:"storage,omitempty"`         // memory, file, redis, postgres or remote
	DataDir        string `json:"data_dir,omitempty"`        // Directory of the file store
	DatabaseURL    string `json:"database_url,omitempty"`    // PostgreSQL connection URL
	RedisAddr      string `json:"redis_addr,omitempty"`      // Redis host:port
	RedisNamespace string `json:"redis_namespace,omitempty"` // Prefix of Redis keys
	RegistryURL    string `json:"registry_url,omitempty"`    // Base URL of a remote CV registry
	RegistryToken  string `json:"registry_token,omitempty"`  // Bearer token for the remote registry

	// Editing
	DebounceMS int `json:"debounce_ms,omitempty"` // Quiet period before field edits are saved

	// Export
	Rasterizer  string  `json:"rasterizer,omitempty"`   // chrome or text
	ExportScale float64 `json:"export_scale,omitempty"` // Device pixel ratio for PDF rasterization

	// Server
	Port int `json:"port,omitempty"`

	// Behavior
	Verbose bool `json:"verbose,omitempty"` // Debug logging
}

// Defaults returns the configuration used when nothing is set.
func Defaults() Config {
	return Config{
		Storage:        StorageFile,
		DataDir:        defaultDataDir(),
		RedisNamespace: "cvbuilder",
		DebounceMS:     1000,
		Rasterizer:     RasterizerChrome,
		ExportScale:    2,
		Port:           8080,
	}
}

func defaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "cv-builder")
	}
	return ".cv-builder"
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

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
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv reads the CV_* variables plus DATABASE_URL, REDIS_ADDR and PORT.
// Unset or unparsable variables leave their field zero.
func FromEnv() Config {
	cfg := Config{
		Storage:        os.Getenv("CV_STORAGE"),
		DataDir:        os.Getenv("CV_DATA_DIR"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		RedisNamespace: os.Getenv("CV_REDIS_NAMESPACE"),
		RegistryURL:    os.Getenv("CV_REGISTRY_URL"),
		RegistryToken:  os.Getenv("CV_REGISTRY_TOKEN"),
		Rasterizer:     os.Getenv("CV_RASTERIZER"),
	}
	if v := os.Getenv("CV_DEBOUNCE"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.DebounceMS = int(d.Milliseconds())
		} else if ms, err := strconv.Atoi(v); err == nil {
			cfg.DebounceMS = ms
		}
	}
	if v := os.Getenv("CV_EXPORT_SCALE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.ExportScale = f
		}
	}
	if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Port = p
		}
	}
	if v, err := strconv.ParseBool(os.Getenv("CV_VERBOSE")); err == nil {
		cfg.Verbose = v
	}
	return cfg
}

// Load resolves the effective configuration: environment over file over
// defaults. path may be empty.
func Load(path string) (*Config, error) {
	file := Config{}
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		file = *loaded
	}
	env := FromEnv()
	merged := env.MergeWithDefaults(file)
	merged = merged.MergeWithDefaults(Defaults())
	merged.Verbose = env.Verbose || file.Verbose
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return &merged, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	switch c.Storage {
	case "", StorageMemory, StorageFile:
	case StorageRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("config error: 'redis_addr' is required for redis storage")
		}
	case StoragePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("config error: 'database_url' is required for postgres storage")
		}
	case StorageRemote:
		if c.RegistryURL == "" {
			return fmt.Errorf("config error: 'registry_url' is required for remote storage")
		}
	default:
		return fmt.Errorf("config error: unknown storage %q", c.Storage)
	}

	switch c.Rasterizer {
	case "", RasterizerChrome, RasterizerText:
	default:
		return fmt.Errorf("config error: unknown rasterizer %q", c.Rasterizer)
	}

	if c.DebounceMS < 0 {
		return fmt.Errorf("config error: 'debounce_ms' must be non-negative")
	}
	if c.ExportScale < 0 {
		return fmt.Errorf("config error: 'export_scale' must be non-negative")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' out of range: %d", c.Port)
	}
	return nil
}

// MergeWithDefaults returns a new Config with zero fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Storage == "" {
		result.Storage = defaults.Storage
	}
	if result.DataDir == "" {
		result.DataDir = defaults.DataDir
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.RedisAddr == "" {
		result.RedisAddr = defaults.RedisAddr
	}
	if result.RedisNamespace == "" {
		result.RedisNamespace = defaults.RedisNamespace
	}
	if result.RegistryURL == "" {
		result.RegistryURL = defaults.RegistryURL
	}
	if result.RegistryToken == "" {
		result.RegistryToken = defaults.RegistryToken
	}
	if result.Rasterizer == "" {
		result.Rasterizer = defaults.Rasterizer
	}

	// Numeric fields: use default if zero
	if result.DebounceMS == 0 {
		result.DebounceMS = defaults.DebounceMS
	}
	if result.ExportScale == 0 {
		result.ExportScale = defaults.ExportScale
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge

	return result
}

// Debounce returns DebounceMS as a duration.
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.DebounceMS) * time.Millisecond
}
