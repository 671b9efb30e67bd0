package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/abdidvp/rackmap/internal/domain"
)

const (
	// FileName is the config file looked up in the config directory.
	FileName = ".rackmap.yaml"
	envFile  = ".env"

	EnvDatabase = "RACKMAP_DATABASE"
	EnvLogLevel = "RACKMAP_LOG_LEVEL"
)

var _ domain.ConfigLoader = (*YAMLLoader)(nil)

// YAMLLoader implements domain.ConfigLoader from .rackmap.yaml, an optional
// .env file and the process environment, in increasing precedence.
type YAMLLoader struct{}

// New creates a YAMLLoader.
func New() *YAMLLoader { return &YAMLLoader{} }

// Load reads configuration from dir. A missing file yields defaults.
// A relative database path is resolved against dir.
func (l *YAMLLoader) Load(dir string) (domain.Config, error) {
	cfg, err := readYAML(dir)
	if err != nil {
		return domain.Config{}, err
	}

	env, err := readEnv(dir)
	if err != nil {
		return domain.Config{}, err
	}
	if v := env[EnvDatabase]; v != "" {
		cfg.Database = v
	}
	if v, ok := env[EnvLogLevel]; ok {
		cfg.LogLevel = v
	}
	if err := cfg.Validate(); err != nil {
		return domain.Config{}, fmt.Errorf("invalid %s: %w", EnvLogLevel, err)
	}

	cfg = cfg.WithDefaults()
	if cfg.Database != ":memory:" && !filepath.IsAbs(cfg.Database) {
		cfg.Database = filepath.Join(dir, cfg.Database)
	}
	return cfg, nil
}

func readYAML(dir string) (domain.Config, error) {
	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.DefaultConfig(), nil
		}
		return domain.Config{}, err
	}

	var cfg domain.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, fmt.Errorf("parsing %s: %w", FileName, err)
	}

	// Validate the raw file so typos are reported against it.
	if err := cfg.Validate(); err != nil {
		return domain.Config{}, fmt.Errorf("invalid %s: %w", FileName, err)
	}
	return cfg, nil
}

// readEnv merges dir/.env under the process environment.
func readEnv(dir string) (map[string]string, error) {
	env := map[string]string{}
	path := filepath.Join(dir, envFile)
	if _, err := os.Stat(path); err == nil {
		env, err = godotenv.Read(path)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", envFile, err)
		}
	}
	for _, key := range []string{EnvDatabase, EnvLogLevel} {
		if v, ok := os.LookupEnv(key); ok {
			env[key] = v
		}
	}
	return env, nil
}

// DefaultFile is the commented config written by `rackmap init`.
func DefaultFile() string {
	d := domain.DefaultConfig()
	return fmt.Sprintf(`# rackmap configuration

# SQLite file holding floors and products, relative to this directory.
database: %s

# Rows in every column of a floor grid.
rows_per_column: %d

# Upper bound on floors accepted by setup (1-%d).
max_floors: %d

# Log level for stderr diagnostics: debug, info, warn, error. Empty disables.
log_level: ""
`, d.Database, d.RowsPerColumn, domain.MaxFloors, d.MaxFloors)
}
