package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// RegistrationConfig holds tuning for the registration engine. Fields are
// pointers so a partial file only overrides what it names; the Get* methods
// supply defaults for the rest.
type RegistrationConfig struct {
	// MinOverlap is the number of coincident beacons that proves two
	// scanners overlap.
	MinOverlap *int `json:"min_overlap,omitempty" yaml:"min_overlap,omitempty"`
	// ReferenceScanner is the index of the scanner defining the global frame.
	ReferenceScanner *int `json:"reference_scanner,omitempty" yaml:"reference_scanner,omitempty"`
	// Workers bounds concurrent overlap tests.
	Workers *int `json:"workers,omitempty" yaml:"workers,omitempty"`
	// Verbose enables per-scanner progress logging.
	Verbose *bool `json:"verbose,omitempty" yaml:"verbose,omitempty"`
}

const (
	defaultMinOverlap       = 12
	defaultReferenceScanner = 0
	defaultWorkers          = 1

	// minUsefulOverlap is the smallest threshold that pins down a rigid
	// transform; fewer points admit spurious alignments.
	minUsefulOverlap = 3
	maxWorkers       = 256
	maxFileSize      = 1 * 1024 * 1024 // 1MB
)

func ptrInt(v int) *int    { return &v }
func ptrBool(v bool) *bool { return &v }

// DefaultConfig returns a config with every field set to its default.
func DefaultConfig() *RegistrationConfig {
	return &RegistrationConfig{
		MinOverlap:       ptrInt(defaultMinOverlap),
		ReferenceScanner: ptrInt(defaultReferenceScanner),
		Workers:          ptrInt(defaultWorkers),
		Verbose:          ptrBool(false),
	}
}

// LoadConfig loads a RegistrationConfig from a .json, .yaml or .yml file.
// The file must be under 1MB. Omitted fields keep their defaults.
func LoadConfig(path string) (*RegistrationConfig, error) {
	cleanPath := filepath.Clean(path)
	ext := strings.ToLower(filepath.Ext(cleanPath))
	switch ext {
	case ".json", ".yaml", ".yml":
	default:
		return nil, fmt.Errorf("config file must have .json, .yaml or .yml extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &RegistrationConfig{}
	if ext == ".json" {
		err = json.Unmarshal(data, cfg)
	} else {
		err = yaml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", ext[1:], err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks that the configuration values are valid.
func (c *RegistrationConfig) Validate() error {
	if c.MinOverlap != nil && *c.MinOverlap < minUsefulOverlap {
		return fmt.Errorf("min_overlap must be at least %d, got %d", minUsefulOverlap, *c.MinOverlap)
	}
	if c.ReferenceScanner != nil && *c.ReferenceScanner < 0 {
		return fmt.Errorf("reference_scanner must be non-negative, got %d", *c.ReferenceScanner)
	}
	if c.Workers != nil && (*c.Workers < 1 || *c.Workers > maxWorkers) {
		return fmt.Errorf("workers must be between 1 and %d, got %d", maxWorkers, *c.Workers)
	}
	return nil
}

// GetMinOverlap returns the min_overlap value or the default.
func (c *RegistrationConfig) GetMinOverlap() int {
	if c.MinOverlap == nil {
		return defaultMinOverlap
	}
	return *c.MinOverlap
}

// GetReferenceScanner returns the reference_scanner value or the default.
func (c *RegistrationConfig) GetReferenceScanner() int {
	if c.ReferenceScanner == nil {
		return defaultReferenceScanner
	}
	return *c.ReferenceScanner
}

// GetWorkers returns the workers value or the default.
func (c *RegistrationConfig) GetWorkers() int {
	if c.Workers == nil {
		return defaultWorkers
	}
	return *c.Workers
}

// GetVerbose returns the verbose value or the default.
func (c *RegistrationConfig) GetVerbose() bool {
	if c.Verbose == nil {
		return false
	}
	return *c.Verbose
}
