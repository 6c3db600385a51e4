package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-bikeshare/internal/model"
	"go-bikeshare/internal/pipeline"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bikeshare.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.PageSize)
	assert.Equal(t, 5*time.Minute, cfg.Timeout())
	assert.Equal(t, ":8080", cfg.APIAddr)
	assert.Empty(t, cfg.ConfigPath)
	assert.Equal(t, filepath.Join("data", "chicago.csv"), cfg.SourceLocation(model.Chicago))
	assert.Equal(t, filepath.Join("data", "new_york_city.csv"), cfg.SourceLocation(model.NewYorkCity))
}

func TestLoad_FromFile(t *testing.T) {
	path := writeConfig(t, `
data-dir: /srv/bikeshare
page-size: 10
query-timeout: 30s
sources:
  chicago: chicago.csv
  new_york_city: https://example.com/nyc.csv
  washington: /abs/washington.csv
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, path, cfg.ConfigPath)
	assert.Equal(t, 10, cfg.PageSize)
	assert.Equal(t, 30*time.Second, cfg.Timeout())
	assert.Equal(t, filepath.Join("/srv/bikeshare", "chicago.csv"), cfg.SourceLocation(model.Chicago))
	assert.Equal(t, "https://example.com/nyc.csv", cfg.SourceLocation(model.NewYorkCity))
	assert.Equal(t, "/abs/washington.csv", cfg.SourceLocation(model.Washington))

	sources := cfg.Sources()
	require.Len(t, sources, 3)
	assert.IsType(t, pipeline.FileSource{}, sources[model.Chicago])
	assert.IsType(t, pipeline.HTTPSource{}, sources[model.NewYorkCity])
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("BIKESHARE_PAGE_SIZE", "7")
	t.Setenv("BIKESHARE_API_ADDR", ":9090")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.PageSize)
	assert.Equal(t, ":9090", cfg.APIAddr)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}

func TestLoad_InvalidPageSize(t *testing.T) {
	path := writeConfig(t, "page-size: 0\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "page-size")
}

func TestTimeout_FallsBackOnBadValue(t *testing.T) {
	cfg := &Config{QueryTimeout: "soon"}
	assert.Equal(t, 5*time.Minute, cfg.Timeout())
}

func TestValidate_MissingCitySource(t *testing.T) {
	cfg := &Config{
		PageSize:    5,
		SourcePaths: map[string]string{"chicago": "chicago.csv", "washington": "washington.csv"},
	}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "new_york_city")
}
