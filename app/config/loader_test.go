package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadValidConfig(t *testing.T) {
	tempDir := t.TempDir()

	content := `
settings:
  enabled: true
  page_no: 2
  num_rows: 200
  timeout: 15
`
	if err := os.WriteFile(filepath.Join(tempDir, "mss.yaml"), []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	loader := NewLoader(tempDir)
	configs, err := loader.LoadAll()
	if err != nil {
		t.Fatalf("Failed to load configs: %v", err)
	}

	config, ok := configs["mss"]
	if !ok {
		t.Fatal("Expected a config keyed by filename-derived name 'mss'")
	}

	if config.Name != "mss" {
		t.Errorf("Expected name 'mss', got '%s'", config.Name)
	}
	if !config.Settings.Enabled {
		t.Error("Expected source to be enabled")
	}
	if config.Settings.PageNo != 2 {
		t.Errorf("Expected page 2, got %d", config.Settings.PageNo)
	}
	if config.Settings.NumRows != 200 {
		t.Errorf("Expected 200 rows, got %d", config.Settings.NumRows)
	}
	if config.Settings.GetTimeout() != 15*time.Second {
		t.Errorf("Expected 15s timeout, got %v", config.Settings.GetTimeout())
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	tempDir := t.TempDir()

	content := `
settings:
  enabled: true
`
	if err := os.WriteFile(filepath.Join(tempDir, "kocca.yml"), []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	loader := NewLoader(tempDir)
	configs, err := loader.LoadAll()
	if err != nil {
		t.Fatalf("Failed to load configs: %v", err)
	}

	config := configs["kocca"]
	if config == nil {
		t.Fatal("Expected .yml files to be loaded too")
	}

	if config.Settings.PageNo != 1 {
		t.Errorf("Expected default page 1, got %d", config.Settings.PageNo)
	}
	// Row count and timeout stay unset; adapters supply their own fallbacks.
	if config.Settings.NumRows != 0 {
		t.Errorf("Expected unset row count, got %d", config.Settings.NumRows)
	}
	if got := config.Settings.GetNumRows(500); got != 500 {
		t.Errorf("Expected the caller's fallback 500, got %d", got)
	}
	if config.Settings.GetTimeout() != 8*time.Second {
		t.Errorf("Expected default 8s timeout, got %v", config.Settings.GetTimeout())
	}
}

func TestLoadDefaultsEnabledWhenOmitted(t *testing.T) {
	tempDir := t.TempDir()

	// A file that only tunes the timeout must not turn its source off.
	content := `
settings:
  timeout: 15
`
	if err := os.WriteFile(filepath.Join(tempDir, "mss.yaml"), []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	loader := NewLoader(tempDir)
	configs, err := loader.LoadAll()
	if err != nil {
		t.Fatalf("Failed to load configs: %v", err)
	}

	config := configs["mss"]
	if !config.Settings.Enabled {
		t.Error("Omitting 'enabled' must leave the source enabled")
	}
	if config.Settings.Timeout != 15 {
		t.Errorf("Expected timeout 15, got %d", config.Settings.Timeout)
	}
}

func TestLoadExplicitDisableWins(t *testing.T) {
	tempDir := t.TempDir()

	content := `
settings:
  enabled: false
`
	if err := os.WriteFile(filepath.Join(tempDir, "kocca.yaml"), []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	loader := NewLoader(tempDir)
	configs, err := loader.LoadAll()
	if err != nil {
		t.Fatalf("Failed to load configs: %v", err)
	}

	if configs["kocca"].Settings.Enabled {
		t.Error("An explicit 'enabled: false' must disable the source")
	}
}

func TestLoadMissingDirectory(t *testing.T) {
	loader := NewLoader("/nonexistent/sources.d")

	configs, err := loader.LoadAll()
	if err != nil {
		t.Fatalf("A missing directory should not be an error: %v", err)
	}
	if len(configs) != 0 {
		t.Errorf("Expected no configs, got %d", len(configs))
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	tempDir := t.TempDir()

	if err := os.WriteFile(filepath.Join(tempDir, "broken.yaml"), []byte("settings: ["), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	loader := NewLoader(tempDir)
	if _, err := loader.LoadAll(); err == nil {
		t.Error("Expected an error for invalid YAML")
	}
}

func TestLoadRejectsNegativeValues(t *testing.T) {
	tempDir := t.TempDir()

	content := `
settings:
  enabled: true
  num_rows: -5
`
	if err := os.WriteFile(filepath.Join(tempDir, "bad.yaml"), []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	loader := NewLoader(tempDir)
	if _, err := loader.LoadAll(); err == nil {
		t.Error("Expected a validation error for a negative row count")
	}
}

func TestGetFallsBackToDefaults(t *testing.T) {
	configs := map[string]*SourceConfig{}

	config := Get(configs, "koneps")

	if config.Name != "koneps" {
		t.Errorf("Expected name 'koneps', got '%s'", config.Name)
	}
	if !config.Settings.Enabled {
		t.Error("Unconfigured sources default to enabled")
	}
	if config.Settings.PageNo != 1 {
		t.Errorf("Expected default page 1, got %d", config.Settings.PageNo)
	}
}

func TestGetPrefersLoadedConfig(t *testing.T) {
	configs := map[string]*SourceConfig{
		"mss": {Name: "mss", Settings: SourceSettings{Enabled: false, PageNo: 3}},
	}

	config := Get(configs, "mss")

	if config.Settings.Enabled {
		t.Error("Expected the loaded config to win over defaults")
	}
	if config.Settings.PageNo != 3 {
		t.Errorf("Expected page 3, got %d", config.Settings.PageNo)
	}
}
