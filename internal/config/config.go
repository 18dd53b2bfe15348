// Package config handles paperdex configuration: a YAML file under the
// user config directory with environment-variable overrides.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Store backend names.
const (
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
)

const (
	// ConfigDir is the directory name under XDG_CONFIG_HOME.
	ConfigDir = "pdx"
	// ConfigFile is the config file name.
	ConfigFile = "config.yml"
	// DataDir is the directory name under XDG_DATA_HOME for the
	// default SQLite database.
	DataDir = "pdx"
	// DBFile is the default SQLite database file name.
	DBFile = "papers.db"
)

// Config is threaded explicitly through component constructors; nothing
// below the CLI reads the environment.
type Config struct {
	GrobidURL   string `yaml:"grobid_url,omitempty"`
	Store       string `yaml:"store,omitempty"` // sqlite or postgres
	SQLitePath  string `yaml:"sqlite_path,omitempty"`
	PostgresDSN string `yaml:"postgres_dsn,omitempty"`
	MaxPages    int    `yaml:"max_pages,omitempty"`
	Workers     int    `yaml:"workers,omitempty"`
}

// Path returns the config file location. Respects XDG_CONFIG_HOME,
// defaults to ~/.config/pdx/config.yml.
func Path() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, ConfigDir, ConfigFile)
}

// DefaultDBPath returns the default SQLite database location under
// XDG_DATA_HOME (~/.local/share/pdx/papers.db).
func DefaultDBPath() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return DBFile
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, DataDir, DBFile)
}

// Load reads the config file, fills defaults, and applies environment
// overrides. A missing file is not an error.
func Load() (*Config, error) {
	var cfg Config

	path := Path()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parsing config: %w", err)
			}
		}
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	if cfg.Store != StoreSQLite && cfg.Store != StorePostgres {
		return nil, fmt.Errorf("unknown store %q (want %s or %s)", cfg.Store, StoreSQLite, StorePostgres)
	}
	return &cfg, nil
}

// applyEnv layers environment variables over file values.
func (c *Config) applyEnv() {
	if v := os.Getenv("GROBID_URL"); v != "" {
		c.GrobidURL = v
	}
	if v := os.Getenv("PDX_STORE"); v != "" {
		c.Store = v
	}
	if v := os.Getenv("PDX_SQLITE_PATH"); v != "" {
		c.SQLitePath = v
	}
	if v := os.Getenv("PDX_POSTGRES_DSN"); v != "" {
		c.PostgresDSN = v
	}
	if v := os.Getenv("PDX_MAX_PAGES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxPages = n
		}
	}
	if v := os.Getenv("PDX_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Workers = n
		}
	}
}

func (c *Config) applyDefaults() {
	if c.Store == "" {
		c.Store = StoreSQLite
	}
	if c.SQLitePath == "" {
		c.SQLitePath = DefaultDBPath()
	}
	if c.PostgresDSN == "" {
		c.PostgresDSN = dsnFromEnv()
	}
}

// dsnFromEnv assembles a postgres DSN from the DB_* variables so a
// docker-compose style environment works without a config file.
func dsnFromEnv() string {
	host := envOr("DB_HOST", "localhost")
	port := envOr("DB_PORT", "5433")
	name := envOr("DB_NAME", "academic")
	user := envOr("DB_USER", "academic")
	password := envOr("DB_PASSWORD", "academic")
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s",
		url.QueryEscape(user), url.QueryEscape(password), host, port, name)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Save writes the config file, creating its directory if needed.
func (c *Config) Save() error {
	path := Path()
	if path == "" {
		return fmt.Errorf("cannot determine config path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
