package domain

import "fmt"

// DefaultDatabase is the SQLite file used when nothing else is configured.
const DefaultDatabase = "rackmap.db"

// ValidLogLevels enumerates accepted log_level values. Empty disables logging.
var ValidLogLevels = []string{"", "debug", "info", "warn", "error"}

// Config holds settings loaded from .rackmap.yaml and the environment.
type Config struct {
	Database      string `yaml:"database"        json:"database"`
	LogLevel      string `yaml:"log_level"       json:"log_level,omitempty"`
	RowsPerColumn int    `yaml:"rows_per_column" json:"rows_per_column"`
	MaxFloors     int    `yaml:"max_floors"      json:"max_floors"`
}

// DefaultConfig returns the settings used when no config file exists.
func DefaultConfig() Config {
	return Config{
		Database:      DefaultDatabase,
		RowsPerColumn: DefaultRowsPerColumn,
		MaxFloors:     MaxFloors,
	}
}

// WithDefaults fills zero fields from DefaultConfig.
func (c Config) WithDefaults() Config {
	d := DefaultConfig()
	if c.Database == "" {
		c.Database = d.Database
	}
	if c.RowsPerColumn == 0 {
		c.RowsPerColumn = d.RowsPerColumn
	}
	if c.MaxFloors == 0 {
		c.MaxFloors = d.MaxFloors
	}
	return c
}

// Validate checks the config for invalid values and returns a descriptive error.
func (c Config) Validate() error {
	// 1. log_level must be known or empty
	valid := false
	for _, l := range ValidLogLevels {
		if c.LogLevel == l {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("unknown log_level %q (valid: debug, info, warn, error)", c.LogLevel)
	}

	// 2. rows_per_column must be positive if set
	if c.RowsPerColumn < 0 {
		return fmt.Errorf("rows_per_column must be > 0 (got %d)", c.RowsPerColumn)
	}

	// 3. max_floors may only narrow the supported range
	if c.MaxFloors < 0 || c.MaxFloors > MaxFloors {
		return fmt.Errorf("max_floors must be between %d and %d (got %d)", MinFloors, MaxFloors, c.MaxFloors)
	}

	return nil
}
