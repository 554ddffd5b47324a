// Package config loads and validates shopforge.config.json, the project
// file that pins dataset sizes, generation policies and the database
// target for a ShopForge workspace.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/shopforge/shopforge/internal/dataset"
	"github.com/shopforge/shopforge/template"
)

// FileName is the project configuration file looked up in the working
// directory.
const FileName = "shopforge.config.json"

const (
	// DefaultSeed keeps repeated runs reproducible unless overridden.
	DefaultSeed = 42
	// DefaultBatch is the number of rows per INSERT when loading.
	DefaultBatch = 100
)

type Config struct {
	Version   string   `json:"version" mapstructure:"version"`
	OutputDir string   `json:"output_dir" mapstructure:"output_dir"`
	Formats   []string `json:"formats" mapstructure:"formats"`
	Seed      int64    `json:"seed" mapstructure:"seed"`
	Counts    Counts   `json:"counts" mapstructure:"counts"`
	Policies  Policies `json:"policies" mapstructure:"policies"`
	Database  Database `json:"database" mapstructure:"database"`
	Batch     int      `json:"batch" mapstructure:"batch"`
}

// Counts sets how many rows of each entity a generate run produces.
// Order items are derived per order and carry no count of their own.
type Counts struct {
	Customers int `json:"customers" mapstructure:"customers"`
	Products  int `json:"products" mapstructure:"products"`
	Orders    int `json:"orders" mapstructure:"orders"`
	Reviews   int `json:"reviews" mapstructure:"reviews"`
}

type Policies struct {
	VerifiedPurchase string `json:"verified_purchase" mapstructure:"verified_purchase"`
	PriceSpread      bool   `json:"price_spread" mapstructure:"price_spread"`
}

type Database struct {
	Provider string `json:"provider" mapstructure:"provider"`
	URLEnv   string `json:"url_env" mapstructure:"url_env"`
}

// DefaultConfig returns the configuration written by shopforge init.
func DefaultConfig() *Config {
	return &Config{
		Version:   "1",
		OutputDir: "data",
		Formats:   []string{"csv"},
		Seed:      DefaultSeed,
		Counts: Counts{
			Customers: 100,
			Products:  50,
			Orders:    200,
			Reviews:   150,
		},
		Policies: Policies{
			VerifiedPurchase: "purchase",
			PriceSpread:      false,
		},
		Database: Database{
			Provider: "sqlite",
			URLEnv:   "DATABASE_URL",
		},
		Batch: DefaultBatch,
	}
}

// Load builds the configuration from whatever viper has read, filling
// in defaults for anything the file leaves out.
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.Version == "" {
		cfg.Version = "1"
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "data"
	}
	if len(cfg.Formats) == 0 {
		cfg.Formats = []string{"csv"}
	}
	if !viper.IsSet("seed") {
		cfg.Seed = DefaultSeed
	}
	if !viper.IsSet("counts") {
		cfg.Counts = DefaultConfig().Counts
	}
	if cfg.Policies.VerifiedPurchase == "" {
		cfg.Policies.VerifiedPurchase = "purchase"
	}
	if cfg.Database.Provider == "" {
		cfg.Database.Provider = "sqlite"
	}
	if cfg.Database.URLEnv == "" {
		cfg.Database.URLEnv = "DATABASE_URL"
	}
	if cfg.Batch == 0 {
		cfg.Batch = DefaultBatch
	}

	return &cfg, nil
}

// GetDatabaseURL resolves the connection string from the configured
// environment variable. SQLite falls back to the database file shipped
// with exports so a fresh project can load without any environment.
func (c *Config) GetDatabaseURL() (string, error) {
	url := os.Getenv(c.Database.URLEnv)
	if url != "" {
		return url, nil
	}
	if c.Database.Provider == "sqlite" || c.Database.Provider == "sqlite3" {
		return "sqlite://" + filepath.Join(c.OutputDir, "ecommerce.db"), nil
	}
	return "", fmt.Errorf("database URL not found in environment variable %s", c.Database.URLEnv)
}

// EnsureDirectories creates the output directory if needed.
func (c *Config) EnsureDirectories() error {
	if err := os.MkdirAll(c.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", c.OutputDir, err)
	}
	return nil
}

// Validate checks the configuration for values no command could act on.
func (c *Config) Validate() error {
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir is required")
	}

	supportedProviders := []string{"postgresql", "postgres", "mysql", "sqlite", "sqlite3"}
	supported := false
	for _, provider := range supportedProviders {
		if c.Database.Provider == provider {
			supported = true
			break
		}
	}
	if !supported {
		return fmt.Errorf("unsupported database provider: %s (supported: postgresql, mysql, sqlite)", c.Database.Provider)
	}

	for _, format := range c.Formats {
		switch format {
		case "csv", "json", "sqlite":
		default:
			return fmt.Errorf("unsupported export format: %s (supported: csv, json, sqlite)", format)
		}
	}

	if c.Counts.Customers < 0 || c.Counts.Products < 0 || c.Counts.Orders < 0 || c.Counts.Reviews < 0 {
		return fmt.Errorf("entity counts must not be negative")
	}
	if c.Seed < 0 {
		return fmt.Errorf("seed must not be negative")
	}
	if c.Batch <= 0 {
		return fmt.Errorf("batch size must be positive, got %d", c.Batch)
	}

	if _, err := dataset.ParseVerifiedPolicy(c.Policies.VerifiedPurchase); err != nil {
		return fmt.Errorf("invalid verified_purchase policy: %w", err)
	}

	return nil
}

// DatasetCounts maps the configured counts onto generator counts.
func (c *Config) DatasetCounts() dataset.Counts {
	return dataset.Counts{
		Customers: c.Counts.Customers,
		Products:  c.Counts.Products,
		Orders:    c.Counts.Orders,
		Reviews:   c.Counts.Reviews,
	}
}

// GeneratorOptions maps the configuration onto generator options. A
// zero seed stays zero so the generator derives one from the clock.
func (c *Config) GeneratorOptions() (dataset.Options, error) {
	policy, err := dataset.ParseVerifiedPolicy(c.Policies.VerifiedPurchase)
	if err != nil {
		return dataset.Options{}, fmt.Errorf("invalid verified_purchase policy: %w", err)
	}
	return dataset.Options{
		Seed:        c.Seed,
		Verified:    policy,
		PriceSpread: c.Policies.PriceSpread,
	}, nil
}

// IsInitialized reports whether the working directory holds a
// shopforge project.
func IsInitialized() bool {
	_, err := os.Stat(FileName)
	return err == nil
}

// InitializeProject scaffolds a new project in the working directory:
// the config file, an environment example and the output and profile
// directories.
func InitializeProject(provider string) error {
	if IsInitialized() {
		return fmt.Errorf("project already initialized: %s exists", FileName)
	}

	pt := template.NewProjectTemplate(provider)

	if err := os.WriteFile(FileName, []byte(pt.ConfigJSON()), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", FileName, err)
	}
	if err := os.WriteFile(".env.example", []byte(pt.EnvTemplate()), 0644); err != nil {
		return fmt.Errorf("failed to write .env.example: %w", err)
	}
	for _, dir := range pt.Directories() {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	profilePath := filepath.Join("profiles", "smoke.yaml")
	if err := os.WriteFile(profilePath, []byte(pt.ProfileExample()), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", profilePath, err)
	}

	return nil
}

// ReadProjectFile parses an existing shopforge.config.json without
// going through viper. Used by init to confirm the scaffold parses and
// by tests.
func ReadProjectFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &cfg, nil
}
