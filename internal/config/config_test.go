package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/banshee-data/beaconmap/internal/testutil"
)

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.MinOverlap == nil || *cfg.MinOverlap != 12 {
		t.Errorf("Expected MinOverlap 12, got %v", cfg.MinOverlap)
	}
	if cfg.GetReferenceScanner() != 0 {
		t.Errorf("GetReferenceScanner() = %d, want 0", cfg.GetReferenceScanner())
	}
	if cfg.GetWorkers() != 1 {
		t.Errorf("GetWorkers() = %d, want 1", cfg.GetWorkers())
	}
	if cfg.GetVerbose() {
		t.Error("GetVerbose() = true, want false")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestEmptyConfigGetters(t *testing.T) {
	cfg := &RegistrationConfig{}
	if cfg.GetMinOverlap() != 12 || cfg.GetReferenceScanner() != 0 || cfg.GetWorkers() != 1 || cfg.GetVerbose() {
		t.Errorf("unexpected defaults from empty config: %+v", cfg)
	}
}

func TestLoadConfig_JSON(t *testing.T) {
	path := writeConfig(t, "beaconmap.json", `{
  "min_overlap": 6,
  "workers": 4
}`)

	cfg, err := LoadConfig(path)
	testutil.AssertNoError(t, err)
	if cfg.GetMinOverlap() != 6 {
		t.Errorf("GetMinOverlap() = %d, want 6", cfg.GetMinOverlap())
	}
	if cfg.GetWorkers() != 4 {
		t.Errorf("GetWorkers() = %d, want 4", cfg.GetWorkers())
	}
	// Omitted fields fall back to defaults.
	if cfg.ReferenceScanner != nil {
		t.Errorf("ReferenceScanner should be unset, got %v", *cfg.ReferenceScanner)
	}
	if cfg.GetReferenceScanner() != 0 {
		t.Errorf("GetReferenceScanner() = %d, want 0", cfg.GetReferenceScanner())
	}
}

func TestLoadConfig_YAML(t *testing.T) {
	path := writeConfig(t, "beaconmap.yaml", "reference_scanner: 2\nverbose: true\n")

	cfg, err := LoadConfig(path)
	testutil.AssertNoError(t, err)
	if cfg.GetReferenceScanner() != 2 {
		t.Errorf("GetReferenceScanner() = %d, want 2", cfg.GetReferenceScanner())
	}
	if !cfg.GetVerbose() {
		t.Error("GetVerbose() = false, want true")
	}
	if cfg.GetMinOverlap() != 12 {
		t.Errorf("GetMinOverlap() = %d, want 12", cfg.GetMinOverlap())
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		body    string
		wantErr string
	}{
		{"wrong extension", "cfg.toml", "min_overlap = 3", "extension"},
		{"bad json", "cfg.json", "{", "failed to parse config json"},
		{"bad yaml", "cfg.yml", "workers: [", "failed to parse config yml"},
		{"overlap too small", "cfg.json", `{"min_overlap": 2}`, "min_overlap"},
		{"negative reference", "cfg.json", `{"reference_scanner": -1}`, "reference_scanner"},
		{"zero workers", "cfg.yaml", "workers: 0\n", "workers"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.file, tt.body)
			_, err := LoadConfig(path)
			testutil.AssertError(t, err)
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadConfig_Missing(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	if err == nil || !strings.Contains(err.Error(), "failed to stat config file") {
		t.Errorf("expected stat error, got %v", err)
	}
}

func TestLoadConfig_TooLarge(t *testing.T) {
	path := writeConfig(t, "big.json", `{"min_overlap": 12, "pad": "`+strings.Repeat("x", maxFileSize)+`"}`)
	_, err := LoadConfig(path)
	if err == nil || !strings.Contains(err.Error(), "too large") {
		t.Errorf("expected size error, got %v", err)
	}
}
