package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Default values for configuration fields.
const (
	DefaultDatabaseName = "rag_db"
	DefaultUserName     = "rag_user"
	DefaultLockTimeout  = 5 * time.Second
)

// DefaultExtensions is the extension set enabled when none is configured:
// pg_trgm for trigram similarity search and btree_gin for combined
// B-tree/GIN indexing.
func DefaultExtensions() []string {
	return []string{"pg_trgm", "btree_gin"}
}

// Config holds the application configuration loaded from file, environment, and flags.
type Config struct {
	DatabaseURL  string
	DatabaseName string
	UserName     string
	Extensions   []string
	LockTimeout  time.Duration
}

// yamlConfig is the raw YAML file representation with string durations.
type yamlConfig struct {
	DatabaseURL  string   `yaml:"database_url"`
	DatabaseName string   `yaml:"database_name"`
	UserName     string   `yaml:"user_name"`
	Extensions   []string `yaml:"extensions"`
	LockTimeout  string   `yaml:"lock_timeout"`
}

// New returns a Config populated with default values.
func New() *Config {
	return &Config{
		DatabaseName: DefaultDatabaseName,
		UserName:     DefaultUserName,
		Extensions:   DefaultExtensions(),
		LockTimeout:  DefaultLockTimeout,
	}
}

// Load reads a YAML configuration file and returns a Config.
// If allowMissing is true and the file does not exist, defaults are returned.
func Load(path string, allowMissing bool) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && allowMissing {
			return New(), nil
		}

		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	var raw yamlConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	return fromYAML(&raw)
}

// fromYAML converts the raw YAML representation to a Config with defaults applied.
func fromYAML(raw *yamlConfig) (*Config, error) {
	cfg := New()

	if raw.DatabaseURL != "" {
		cfg.DatabaseURL = raw.DatabaseURL
	}

	if raw.DatabaseName != "" {
		cfg.DatabaseName = raw.DatabaseName
	}

	if raw.UserName != "" {
		cfg.UserName = raw.UserName
	}

	if len(raw.Extensions) > 0 {
		cfg.Extensions = raw.Extensions
	}

	if raw.LockTimeout != "" {
		d, err := time.ParseDuration(raw.LockTimeout)
		if err != nil {
			return nil, fmt.Errorf("parsing lock_timeout %q: %w", raw.LockTimeout, err)
		}

		cfg.LockTimeout = d
	}

	return cfg, nil
}

// MergeEnv overrides config fields from RAGBOOT_* environment variables.
// RAGBOOT_EXTENSIONS is a comma-separated ordered list.
func MergeEnv(cfg *Config) {
	if v := os.Getenv("RAGBOOT_DATABASE_URL"); v != "" {
		cfg.DatabaseURL = v
	}

	if v := os.Getenv("RAGBOOT_DATABASE_NAME"); v != "" {
		cfg.DatabaseName = v
	}

	if v := os.Getenv("RAGBOOT_USER_NAME"); v != "" {
		cfg.UserName = v
	}

	if v := os.Getenv("RAGBOOT_EXTENSIONS"); v != "" {
		cfg.Extensions = splitExtensions(v)
	}

	if v := os.Getenv("RAGBOOT_LOCK_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.LockTimeout = d
		}
	}
}

// splitExtensions parses a comma-separated extension list, trimming
// whitespace and dropping empty entries.
func splitExtensions(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))

	for _, p := range parts {
		if name := strings.TrimSpace(p); name != "" {
			out = append(out, name)
		}
	}

	return out
}
