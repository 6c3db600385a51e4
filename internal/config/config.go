package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"go-bikeshare/internal/model"
	"go-bikeshare/internal/pipeline"
	"go-bikeshare/pkg/utils"
)

const (
	defaultDataDir      = "data"
	defaultDBPath       = "bikeshare.db"
	defaultExportDir    = "output"
	defaultAPIAddr      = ":8080"
	defaultPageSize     = 5
	defaultQueryTimeout = "5m"
)

// Config holds runtime settings for both binaries.
type Config struct {
	DataDir      string            `mapstructure:"data-dir"`
	SourcePaths  map[string]string `mapstructure:"sources"`
	DBPath       string            `mapstructure:"db-path"`
	ExportDir    string            `mapstructure:"export-dir"`
	APIAddr      string            `mapstructure:"api-addr"`
	PageSize     int               `mapstructure:"page-size"`
	QueryTimeout string            `mapstructure:"query-timeout"`
	Verbose      bool              `mapstructure:"verbose"`

	// ConfigPath is the file that was read, empty when none was found.
	ConfigPath string `mapstructure:"-"`
}

func defaultSources() map[string]string {
	sources := make(map[string]string, len(model.Cities))
	for _, c := range model.Cities {
		sources[c.Slug()] = c.Slug() + ".csv"
	}
	return sources
}

// Load reads configuration from path, or from bikeshare.yml in the working
// directory when path is empty. A missing default file is not an error.
// Environment variables prefixed BIKESHARE_ override file values.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("BIKESHARE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	v.SetDefault("data-dir", defaultDataDir)
	v.SetDefault("sources", defaultSources())
	v.SetDefault("db-path", defaultDBPath)
	v.SetDefault("export-dir", defaultExportDir)
	v.SetDefault("api-addr", defaultAPIAddr)
	v.SetDefault("page-size", defaultPageSize)
	v.SetDefault("query-timeout", defaultQueryTimeout)
	v.SetDefault("verbose", false)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("bikeshare")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &configFileNotFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.ConfigPath = v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks page size and that every supported city has a source.
func (c *Config) Validate() error {
	if c.PageSize <= 0 {
		return fmt.Errorf("page-size must be positive, got %d", c.PageSize)
	}
	for _, city := range model.Cities {
		if strings.TrimSpace(c.SourcePaths[city.Slug()]) == "" {
			return fmt.Errorf("no source configured for %s (sources.%s)", city, city.Slug())
		}
	}
	return nil
}

// Timeout is the per-query deadline.
func (c *Config) Timeout() time.Duration {
	return utils.ParseDuration(c.QueryTimeout)
}

// SourceLocation resolves a configured source against the data directory.
// URLs and absolute paths are returned unchanged.
func (c *Config) SourceLocation(city model.City) string {
	loc := strings.TrimSpace(c.SourcePaths[city.Slug()])
	if loc == "" || strings.HasPrefix(loc, "http://") || strings.HasPrefix(loc, "https://") || filepath.IsAbs(loc) {
		return loc
	}
	return filepath.Join(c.DataDir, loc)
}

// Sources builds the city to source mapping handed to the loader.
func (c *Config) Sources() map[model.City]pipeline.Source {
	sources := make(map[model.City]pipeline.Source, len(model.Cities))
	for _, city := range model.Cities {
		if loc := c.SourceLocation(city); loc != "" {
			sources[city] = pipeline.NewSource(loc)
		}
	}
	return sources
}
