package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/udisondev/bronzestone/internal/patch"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "BRONZESTONE_"

// Content sources.
const (
	SourceVanilla  = "vanilla"
	SourceFile     = "file"
	SourcePostgres = "postgres"
)

// Bronzestone holds all configuration for the host simulator and the plugin.
type Bronzestone struct {
	LogLevel    string `yaml:"log_level" env:"LOG_LEVEL"`
	HostVersion string `yaml:"host_version" env:"HOST_VERSION"`

	Content    ContentConfig    `yaml:"content" envPrefix:"CONTENT_"`
	Database   DatabaseConfig   `yaml:"database" envPrefix:"DATABASE_"`
	Plugin     PluginConfig     `yaml:"plugin" envPrefix:"PLUGIN_"`
	Dump       DumpConfig       `yaml:"dump" envPrefix:"DUMP_"`
	Metrics    MetricsConfig    `yaml:"metrics" envPrefix:"METRICS_"`
	Simulation SimulationConfig `yaml:"simulation" envPrefix:"SIMULATION_"`
}

// ContentConfig selects where the host loads its registry from.
type ContentConfig struct {
	Source string `yaml:"source" env:"SOURCE"` // vanilla, file or postgres
	Path   string `yaml:"path" env:"PATH"`     // content pack for source=file
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string `yaml:"host" env:"HOST"`
	Port     int    `yaml:"port" env:"PORT"`
	User     string `yaml:"user" env:"USER"`
	Password string `yaml:"password" env:"PASSWORD"`
	DBName   string `yaml:"dbname" env:"NAME"`
	SSLMode  string `yaml:"sslmode" env:"SSLMODE"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// PluginConfig configures the patcher plugin.
type PluginConfig struct {
	Enabled        bool       `yaml:"enabled" env:"ENABLED"`
	NexusID        int        `yaml:"nexus_id" env:"NEXUS_ID"` // mod page id for update checks
	HostConstraint string     `yaml:"host_constraint" env:"HOST_CONSTRAINT"`
	Rule           patch.Rule `yaml:"rule" envPrefix:"RULE_"`
}

// DumpConfig controls the diagnostic dump utilities.
type DumpConfig struct {
	OnTrigger bool     `yaml:"on_trigger" env:"ON_TRIGGER"` // dump to the log on every trigger
	Sections  []string `yaml:"sections" env:"SECTIONS" envSeparator:","`
	File      string   `yaml:"file" env:"FILE"` // zstd dump written after each patch, empty to skip
}

// MetricsConfig controls the Prometheus endpoint of the simulator.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" env:"ENABLED"`
	Address string `yaml:"address" env:"ADDRESS"`
}

// SimulationConfig drives the host simulator.
type SimulationConfig struct {
	WorldLoads     int `yaml:"world_loads" env:"WORLD_LOADS"`         // registry replacements
	RepeatTriggers int `yaml:"repeat_triggers" env:"REPEAT_TRIGGERS"` // extra triggers per load on the same instance
}

// DefaultBronzestone returns the configuration with sensible defaults.
func DefaultBronzestone() Bronzestone {
	return Bronzestone{
		LogLevel:    "info",
		HostVersion: "0.217.46",
		Content: ContentConfig{
			Source: SourceVanilla,
		},
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "bronzestone",
			Password: "bronzestone",
			DBName:   "bronzestone",
			SSLMode:  "disable",
		},
		Plugin: PluginConfig{
			Enabled:        true,
			NexusID:        938,
			HostConstraint: ">= 0.200.0",
			Rule:           patch.DefaultRule(),
		},
		Dump: DumpConfig{
			Sections: []string{"recipedump", "itemdump", "piecedump"},
		},
		Metrics: MetricsConfig{
			Address: "127.0.0.1:9108",
		},
		Simulation: SimulationConfig{
			WorldLoads:     2,
			RepeatTriggers: 1,
		},
	}
}

// LoadBronzestone loads config from a YAML file and applies environment
// overrides. If the file doesn't exist, defaults are used.
func LoadBronzestone(path string) (Bronzestone, error) {
	cfg := DefaultBronzestone()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config %s: %w", path, err)
		}
	case os.IsNotExist(err):
	default:
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return cfg, fmt.Errorf("parsing env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// Validate checks cross-field constraints.
func (c Bronzestone) Validate() error {
	var errs []error
	switch c.Content.Source {
	case SourceVanilla, SourcePostgres:
	case SourceFile:
		if c.Content.Path == "" {
			errs = append(errs, errors.New("content.path is required for source=file"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown content.source %q", c.Content.Source))
	}
	if err := c.Plugin.Rule.Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.Simulation.WorldLoads < 0 || c.Simulation.RepeatTriggers < 0 {
		errs = append(errs, errors.New("simulation counts must not be negative"))
	}
	if c.Metrics.Enabled && c.Metrics.Address == "" {
		errs = append(errs, errors.New("metrics.address is required when metrics are enabled"))
	}
	return errors.Join(errs...)
}
