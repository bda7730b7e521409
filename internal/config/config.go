// Package config resolves the application configuration.
//
// Precedence, lowest first: DefaultConfig, DataDir/config.json, a .env file
// in the working directory, BESTIARY_* environment variables. Command-line
// flags are applied by the caller on top of the result.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/abelbrown/bestiary/internal/catalog"
)

// Config is the application configuration.
type Config struct {
	// Catalog
	FirstPage         string        `json:"first_page" env:"FIRST_PAGE" validate:"required,url"`
	PageSize          int           `json:"page_size" env:"PAGE_SIZE" validate:"min=1,max=200"`
	RequestTimeout    time.Duration `json:"request_timeout" env:"REQUEST_TIMEOUT" validate:"min=0"`
	DetailConcurrency int           `json:"detail_concurrency" env:"DETAIL_CONCURRENCY" validate:"min=0"`
	SimulatedLatency  time.Duration `json:"simulated_latency" env:"SIMULATED_LATENCY" validate:"min=0"`

	// UI
	PlaceholderCount int `json:"placeholder_count" env:"PLACEHOLDERS" validate:"min=0,max=200"`

	// Observability
	MetricsAddr string `json:"metrics_addr,omitempty" env:"METRICS_ADDR" validate:"omitempty,hostname_port"`

	// Where logs, events and config.json live. Not read from config.json.
	DataDir string `json:"-" env:"DATA_DIR"`
}

// envPrefix namespaces every environment variable.
const envPrefix = "BESTIARY_"

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		FirstPage:      catalog.DefaultFirstPage,
		PageSize:       20,
		RequestTimeout: 15 * time.Second,
		DataDir:        filepath.Join(home, ".bestiary"),
	}
}

// Path returns the location of config.json.
func (c *Config) Path() string {
	return filepath.Join(c.DataDir, "config.json")
}

// Load resolves defaults, the config file, .env and the environment, then
// validates the result. A missing config file or .env is not an error.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	// DataDir decides where config.json lives, so resolve it first.
	if dir := os.Getenv(envPrefix + "DATA_DIR"); dir != "" {
		cfg.DataDir = dir
	}

	if err := cfg.loadFile(cfg.Path()); err != nil {
		return nil, err
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: envPrefix}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadFile overlays the JSON file at path onto c.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}

	dataDir := c.DataDir
	if err := json.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	c.DataDir = dataDir
	return nil
}

// Save writes c to Path().
func (c *Config) Save() error {
	path := c.Path()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

var validate = validator.New()

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// PageURL returns FirstPage with a limit of PageSize when FirstPage does not
// already carry one.
func (c *Config) PageURL() string {
	u, err := url.Parse(c.FirstPage)
	if err != nil {
		return c.FirstPage
	}
	q := u.Query()
	if q.Get("limit") != "" {
		return c.FirstPage
	}
	q.Set("limit", strconv.Itoa(c.PageSize))
	u.RawQuery = q.Encode()
	return u.String()
}

// Placeholders returns how many skeleton cards to show during the first load.
func (c *Config) Placeholders() int {
	if c.PlaceholderCount > 0 {
		return c.PlaceholderCount
	}
	return c.PageSize
}
