package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	appconfig "github.com/abdidvp/rackmap/internal/adapters/outbound/config"
	"github.com/abdidvp/rackmap/internal/domain"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func TestYAMLLoader_MissingFileReturnsDefaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := appconfig.New().Load(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, domain.DefaultDatabase), cfg.Database)
	assert.Equal(t, domain.DefaultRowsPerColumn, cfg.RowsPerColumn)
	assert.Equal(t, domain.MaxFloors, cfg.MaxFloors)
	assert.Empty(t, cfg.LogLevel)
}

func TestYAMLLoader_ValidYAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, appconfig.FileName, `
database: data/stock.db
rows_per_column: 4
max_floors: 6
log_level: info
`)

	cfg, err := appconfig.New().Load(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "data", "stock.db"), cfg.Database)
	assert.Equal(t, 4, cfg.RowsPerColumn)
	assert.Equal(t, 6, cfg.MaxFloors)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestYAMLLoader_PartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, appconfig.FileName, "rows_per_column: 5\n")

	cfg, err := appconfig.New().Load(dir)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.RowsPerColumn)
	assert.Equal(t, domain.MaxFloors, cfg.MaxFloors)
	assert.Equal(t, filepath.Join(dir, domain.DefaultDatabase), cfg.Database)
}

func TestYAMLLoader_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, appconfig.FileName, `{{{invalid yaml`)

	_, err := appconfig.New().Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing .rackmap.yaml")
}

func TestYAMLLoader_InvalidValues(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, appconfig.FileName, "max_floors: 40\n")

	_, err := appconfig.New().Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid .rackmap.yaml")
	assert.Contains(t, err.Error(), "max_floors")
}

func TestYAMLLoader_DotEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, appconfig.FileName, "database: file.db\nlog_level: error\n")
	writeFile(t, dir, ".env", "RACKMAP_DATABASE=/var/lib/rackmap/env.db\nRACKMAP_LOG_LEVEL=debug\n")

	cfg, err := appconfig.New().Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/rackmap/env.db", cfg.Database)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestYAMLLoader_ProcessEnvOverridesDotEnv(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".env", "RACKMAP_LOG_LEVEL=debug\n")
	t.Setenv(appconfig.EnvLogLevel, "warn")

	cfg, err := appconfig.New().Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestYAMLLoader_InvalidEnvLogLevel(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(appconfig.EnvLogLevel, "loud")

	_, err := appconfig.New().Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RACKMAP_LOG_LEVEL")
}

func TestDefaultFile_ParsesToDefaults(t *testing.T) {
	var cfg domain.Config
	require.NoError(t, yaml.Unmarshal([]byte(appconfig.DefaultFile()), &cfg))
	assert.Equal(t, domain.DefaultConfig(), cfg)
}
