package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents mockforge-chaosd's configuration.
type Config struct {
	Framework   FrameworkConfig   `yaml:"framework"`
	Reporting   ReportingConfig   `yaml:"reporting"`
	Emergency   EmergencyConfig   `yaml:"emergency"`
	Metrics     MetricsConfig     `yaml:"metrics"`
	Behavioral  BehavioralConfig  `yaml:"behavioral"`
	Safety      SafetyConfig      `yaml:"safety"`
}

// FrameworkConfig contains general framework settings.
type FrameworkConfig struct {
	Version   string `yaml:"version"`
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

// ReportingConfig contains reporting and output settings.
type ReportingConfig struct {
	OutputDir string   `yaml:"output_dir"`
	KeepLastN int      `yaml:"keep_last_n"`
	Formats   []string `yaml:"formats"`
}

// EmergencyConfig contains emergency stop settings.
type EmergencyConfig struct {
	StopFile           string        `yaml:"stop_file"`
	AutoCleanupTimeout time.Duration `yaml:"auto_cleanup_timeout"`
}

// MetricsConfig contains the Prometheus exposition settings.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// BehavioralConfig contains defaults for the probability modeling and
// sequence mining subsystem.
type BehavioralConfig struct {
	DefaultMinSequenceFrequency float64                 `yaml:"default_min_sequence_frequency"`
	EdgeAmplification           EdgeAmplificationDefault `yaml:"edge_amplification"`
}

// EdgeAmplificationDefault holds default edge-amplification parameters.
// The amplify command does not read them; it takes every parameter from
// its request document.
type EdgeAmplificationDefault struct {
	Enabled       bool    `yaml:"enabled"`
	RareThreshold float64 `yaml:"rare_threshold"`
	BoostFactor   float64 `yaml:"boost_factor"`
	TargetMass    float64 `yaml:"target_mass"`
}

// SafetyConfig contains safety limits.
type SafetyConfig struct {
	MaxDuration         time.Duration `yaml:"max_duration"`
	RequireConfirmation bool          `yaml:"require_confirmation"`
}

// DefaultConfig returns a default configuration.
func DefaultConfig() *Config {
	return &Config{
		Framework: FrameworkConfig{
			Version:   "v1",
			LogLevel:  "info",
			LogFormat: "text",
		},
		Reporting: ReportingConfig{
			OutputDir: "./reports",
			KeepLastN: 50,
			Formats:   []string{"json"},
		},
		Emergency: EmergencyConfig{
			StopFile:           "/tmp/mockforge-chaos-emergency-stop",
			AutoCleanupTimeout: 5 * time.Minute,
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Addr:    ":9091",
		},
		Behavioral: BehavioralConfig{
			DefaultMinSequenceFrequency: 0.1,
			EdgeAmplification: EdgeAmplificationDefault{
				Enabled:       false,
				RareThreshold: 0.05,
				BoostFactor:   3,
				TargetMass:    0.4,
			},
		},
		Safety: SafetyConfig{
			MaxDuration:         1 * time.Hour,
			RequireConfirmation: true,
		},
	}
}

// Load loads configuration from a YAML file, expanding environment
// variables in the raw content before parsing. A missing path returns
// the default configuration rather than an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = "config.yaml"
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	expandedData := []byte(os.ExpandEnv(string(data)))

	if err := yaml.Unmarshal(expandedData, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// Save writes configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Reporting.OutputDir == "" {
		return fmt.Errorf("reporting.output_dir is required")
	}

	if c.Behavioral.DefaultMinSequenceFrequency < 0 || c.Behavioral.DefaultMinSequenceFrequency > 1 {
		return fmt.Errorf("behavioral.default_min_sequence_frequency must be in [0,1]")
	}

	if c.Behavioral.EdgeAmplification.BoostFactor < 0 {
		return fmt.Errorf("behavioral.edge_amplification.boost_factor must be non-negative")
	}

	return nil
}
