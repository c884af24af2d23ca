// Package config loads docline configuration from file, environment,
// and defaults via viper.
package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/docline/docline/internal/headings"
)

// Manager handles loading configuration. The config is read once at
// startup; a one-shot batch has no reload cycle.
type Manager struct {
	config *Config
}

// NewManager sets up viper and loads the initial config.
func NewManager(cfgFile string) (*Manager, error) {
	cm := &Manager{}

	if err := cm.initViper(cfgFile); err != nil {
		return nil, err
	}

	cfg, err := cm.load()
	if err != nil {
		return nil, err
	}
	cm.config = cfg

	return cm, nil
}

// initViper sets up viper with defaults and config file.
func (cm *Manager) initViper(cfgFile string) error {
	defaults := DefaultConfig()
	viper.SetDefault("input", defaults.Input)
	viper.SetDefault("output", defaults.Output)
	viper.SetDefault("schema", defaults.Schema)
	viper.SetDefault("workers", defaults.Workers)
	viper.SetDefault("max_pages", defaults.MaxPages)
	viper.SetDefault("pdf_password", defaults.PDFPassword)
	viper.SetDefault("log_level", defaults.LogLevel)
	viper.SetDefault("heuristics", defaults.Heuristics)

	// Environment variables with DOCLINE_ prefix
	viper.SetEnvPrefix("DOCLINE")
	viper.AutomaticEnv()

	// Config file
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.docline")
	}

	// Try to read config file (not required)
	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	return nil
}

// load parses the current viper state into a Config struct.
func (cm *Manager) load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// Get returns the loaded configuration.
func (cm *Manager) Get() *Config {
	return cm.config
}

// ResolveEnvVars expands ${ENV_VAR} references in a string.
func ResolveEnvVars(value string) string {
	if value == "" {
		return value
	}
	pattern := regexp.MustCompile(`\$\{([^}]+)\}`)
	return pattern.ReplaceAllStringFunc(value, func(match string) string {
		varName := match[2 : len(match)-1]
		return os.Getenv(varName)
	})
}

// Thresholds converts the heuristics config into the headings package's
// threshold set, filling unset values from the heuristic defaults.
func (c *Config) Thresholds() headings.Thresholds {
	th := headings.DefaultThresholds()
	if c.Heuristics.HeadingScore > 0 {
		th.HeadingScore = c.Heuristics.HeadingScore
	}
	if c.Heuristics.SizeRatio > 0 {
		th.SizeRatio = c.Heuristics.SizeRatio
	}
	if c.Heuristics.StrongSizeRatio > 0 {
		th.StrongSizeRatio = c.Heuristics.StrongSizeRatio
	}
	if c.Heuristics.MaxHeadingWords > 0 {
		th.MaxHeadingWords = c.Heuristics.MaxHeadingWords
	}
	return th
}

// WriteDefault writes the default configuration to the specified path.
func WriteDefault(path string) error {
	cfg := DefaultConfig()
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte(`# docline configuration
# pdf_password supports ${ENV_VAR} syntax to reference environment variables

`)
	return os.WriteFile(path, append(header, data...), 0o644)
}
