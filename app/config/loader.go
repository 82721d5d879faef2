package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Loader handles loading and validation of per-source configurations
type Loader struct {
	sourcesDir string
}

// NewLoader creates a new configuration loader
func NewLoader(sourcesDir string) *Loader {
	return &Loader{sourcesDir: sourcesDir}
}

// LoadAll loads all YAML source configuration files from the sources
// directory, keyed by source name. A missing directory is not an error:
// every source then runs with defaults.
func (l *Loader) LoadAll() (map[string]*SourceConfig, error) {
	configs := make(map[string]*SourceConfig)

	if _, err := os.Stat(l.sourcesDir); os.IsNotExist(err) {
		return configs, nil
	}

	files, err := filepath.Glob(filepath.Join(l.sourcesDir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("failed to find YAML files: %w", err)
	}

	ymlFiles, err := filepath.Glob(filepath.Join(l.sourcesDir, "*.yml"))
	if err != nil {
		return nil, fmt.Errorf("failed to find YML files: %w", err)
	}
	files = append(files, ymlFiles...)

	for _, file := range files {
		config, err := l.loadFile(file)
		if err != nil {
			return nil, fmt.Errorf("error loading %s: %w", file, err)
		}

		if err := l.validate(config); err != nil {
			return nil, fmt.Errorf("invalid config %s: %w", file, err)
		}

		configs[config.Name] = config
		slog.Debug("Loaded source configuration", "file", file, "source", config.Name)
	}

	return configs, nil
}

// Get returns the configuration for the named source, falling back to
// defaults when no file was provided for it.
func Get(configs map[string]*SourceConfig, name string) *SourceConfig {
	if cfg, ok := configs[name]; ok {
		return cfg
	}
	cfg := &SourceConfig{Name: name, Settings: SourceSettings{Enabled: true}}
	setDefaults(cfg)
	return cfg
}

// rawSourceConfig is the YAML file shape. Enabled is a pointer so that an
// omitted key can be told apart from an explicit "enabled: false"; a file
// that only tunes rows or timeout must not turn its source off.
type rawSourceConfig struct {
	Settings struct {
		Enabled *bool `yaml:"enabled"`
		PageNo  int   `yaml:"page_no"`
		NumRows int   `yaml:"num_rows"`
		Timeout int   `yaml:"timeout"`
	} `yaml:"settings"`
}

// loadFile loads a single YAML configuration file
func (l *Loader) loadFile(path string) (*SourceConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var raw rawSourceConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	base := filepath.Base(path)
	config := &SourceConfig{
		Name: strings.TrimSuffix(strings.TrimSuffix(base, ".yaml"), ".yml"),
		Settings: SourceSettings{
			Enabled: raw.Settings.Enabled == nil || *raw.Settings.Enabled,
			PageNo:  raw.Settings.PageNo,
			NumRows: raw.Settings.NumRows,
			Timeout: raw.Settings.Timeout,
		},
	}

	setDefaults(config)

	return config, nil
}

func setDefaults(config *SourceConfig) {
	if config.Settings.PageNo == 0 {
		config.Settings.PageNo = 1
	}
	// NumRows and Timeout stay zero here; each adapter applies its own
	// source-appropriate fallback via the settings helpers.
}

// validate validates the configuration
func (l *Loader) validate(config *SourceConfig) error {
	if config.Name == "" {
		return fmt.Errorf("source name is required")
	}
	if config.Settings.PageNo < 0 {
		return fmt.Errorf("page number must be non-negative")
	}
	if config.Settings.NumRows < 0 {
		return fmt.Errorf("row count must be non-negative")
	}
	if config.Settings.Timeout < 0 {
		return fmt.Errorf("timeout must be non-negative")
	}
	return nil
}
