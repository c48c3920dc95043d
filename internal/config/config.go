package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/rshade/ecotrack/internal/footprint"
	"github.com/rshade/ecotrack/internal/greenops"
)

// Output formats accepted by output.default_format.
const (
	FormatTable = "table"
	FormatJSON  = "json"
)

// Environment overrides.
const (
	EnvHome     = "ECOTRACK_HOME"
	EnvConfig   = "ECOTRACK_CONFIG"
	EnvLogLevel = "ECOTRACK_LOG_LEVEL"
	EnvDataFile = "ECOTRACK_DATA_FILE"
	EnvCap      = "ECOTRACK_ACTIVITY_CAP"
	EnvBackend  = "ECOTRACK_BACKEND"
)

// Storage backends accepted by data.backend.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Config is the complete ecotrack configuration.
type Config struct {
	Data    DataConfig    `yaml:"data"`
	Impact  ImpactConfig  `yaml:"impact"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// DataConfig locates the state file and controls activity retention.
// When File is left at its default, the sqlite backend uses state.db
// next to it instead of state.json.
type DataConfig struct {
	Backend     string `yaml:"backend"`
	File        string `yaml:"file"`
	ActivityCap int    `yaml:"activity_cap"`
	CatalogFile string `yaml:"catalog_file,omitempty"`
}

// ImpactConfig holds the comparison reference figures.
type ImpactConfig struct {
	RegionalAverageKg float64 `yaml:"regional_average_kg"`
}

// OutputConfig controls how results are printed.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format"`
	Precision     int    `yaml:"precision"`
}

// LoggingConfig controls log verbosity and destination.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file,omitempty"`
}

// New returns a configuration populated with defaults. Paths live under the
// config directory (~/.ecotrack unless ECOTRACK_HOME is set).
func New() *Config {
	dir, err := GetConfigDir()
	if err != nil {
		dir = ".ecotrack"
	}
	return &Config{
		Data: DataConfig{
			Backend:     BackendJSON,
			File:        filepath.Join(dir, StateFileName),
			ActivityCap: footprint.DefaultActivityCap,
		},
		Impact: ImpactConfig{
			RegionalAverageKg: greenops.RegionalDailyAverageKg,
		},
		Output: OutputConfig{
			DefaultFormat: FormatTable,
			Precision:     2,
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "console",
		},
	}
}

// Load returns defaults overlaid with the YAML file at path and then with
// environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := New()
	defaultFile := cfg.Data.File

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		default:
			if unmarshalErr := yaml.Unmarshal(data, cfg); unmarshalErr != nil {
				return nil, fmt.Errorf("parsing config file %s: %w", path, unmarshalErr)
			}
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if cfg.Data.Backend == BackendSQLite && cfg.Data.File == defaultFile {
		cfg.Data.File = filepath.Join(filepath.Dir(defaultFile), StateDBFileName)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookupEnv func(string) (string, bool)) error {
	if v, ok := lookupEnv(EnvLogLevel); ok && v != "" {
		c.Logging.Level = v
	}
	if v, ok := lookupEnv(EnvBackend); ok && v != "" {
		c.Data.Backend = v
	}
	if v, ok := lookupEnv(EnvDataFile); ok && v != "" {
		c.Data.File = v
	}
	if v, ok := lookupEnv(EnvCap); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s must be an integer, got %q: %w", EnvCap, v, err)
		}
		c.Data.ActivityCap = n
	}
	return nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	switch c.Data.Backend {
	case BackendJSON, BackendSQLite:
	default:
		return fmt.Errorf("data.backend must be %q or %q, got %q", BackendJSON, BackendSQLite, c.Data.Backend)
	}
	if c.Data.File == "" {
		return errors.New("data.file must not be empty")
	}
	if c.Data.ActivityCap <= 0 {
		return fmt.Errorf("data.activity_cap must be > 0, got %d", c.Data.ActivityCap)
	}
	if c.Impact.RegionalAverageKg <= 0 {
		return fmt.Errorf("impact.regional_average_kg must be > 0, got %g", c.Impact.RegionalAverageKg)
	}
	switch c.Output.DefaultFormat {
	case FormatTable, FormatJSON:
	default:
		return fmt.Errorf("output.default_format must be %q or %q, got %q",
			FormatTable, FormatJSON, c.Output.DefaultFormat)
	}
	if c.Output.Precision < 0 {
		return fmt.Errorf("output.precision must be >= 0, got %d", c.Output.Precision)
	}
	return nil
}

// Save writes the configuration as YAML, creating the parent directory.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if mkdirErr := os.MkdirAll(filepath.Dir(path), 0o700); mkdirErr != nil {
		return fmt.Errorf("creating config directory: %w", mkdirErr)
	}
	if writeErr := os.WriteFile(path, data, 0o600); writeErr != nil {
		return fmt.Errorf("writing config file %s: %w", path, writeErr)
	}
	return nil
}
