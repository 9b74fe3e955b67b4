package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default() config failed validation: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{
			name:    "valid default",
			mutate:  func(c *Config) {},
			wantErr: nil,
		},
		{
			name:    "missing input dir",
			mutate:  func(c *Config) { c.Pipeline.InputDir = "" },
			wantErr: ErrMissingInputDir,
		},
		{
			name:    "missing output dir",
			mutate:  func(c *Config) { c.Pipeline.OutputDir = "" },
			wantErr: ErrMissingOutputDir,
		},
		{
			name:    "zero workers",
			mutate:  func(c *Config) { c.Pipeline.Workers = 0 },
			wantErr: ErrInvalidWorkers,
		},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.Pipeline.Logging.Level = "verbose" },
			wantErr: ErrInvalidLogLevel,
		},
		{
			name:    "bad log format",
			mutate:  func(c *Config) { c.Pipeline.Logging.Format = "xml" },
			wantErr: ErrInvalidLogFormat,
		},
		{
			name:    "no categories",
			mutate:  func(c *Config) { c.Categories = nil },
			wantErr: ErrNoCategories,
		},
		{
			name:    "category without key",
			mutate:  func(c *Config) { c.Categories[0].Key = "" },
			wantErr: ErrCategoryMissingKey,
		},
		{
			name:    "category without keywords",
			mutate:  func(c *Config) { c.Categories[2].Keywords = nil },
			wantErr: ErrCategoryNoKeywords,
		},
		{
			name:    "duplicate category key",
			mutate:  func(c *Config) { c.Categories[1].Key = c.Categories[0].Key },
			wantErr: ErrDuplicateCategoryKey,
		},
		{
			name:    "no property fields",
			mutate:  func(c *Config) { c.Normalizer.PropertyFields = nil },
			wantErr: ErrNoPropertyFields,
		},
		{
			name: "field in both buckets",
			mutate: func(c *Config) {
				c.Normalizer.AttributeFields = append(c.Normalizer.AttributeFields, "maat")
			},
			wantErr: ErrFieldInBothBuckets,
		},
		{
			name:    "threshold out of range",
			mutate:  func(c *Config) { c.Search.Threshold = 1.5 },
			wantErr: ErrInvalidThreshold,
		},
		{
			name:    "zero max results",
			mutate:  func(c *Config) { c.Search.MaxResults = 0 },
			wantErr: ErrInvalidMaxResults,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}

			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	yaml := `
pipeline:
  input_dir: /tmp/in
  output_dir: /tmp/out
  workers: 8
search:
  threshold: 0.5
`
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Pipeline.InputDir != "/tmp/in" {
		t.Errorf("InputDir = %q, want /tmp/in", cfg.Pipeline.InputDir)
	}
	if cfg.Pipeline.Workers != 8 {
		t.Errorf("Workers = %d, want 8", cfg.Pipeline.Workers)
	}
	if cfg.Search.Threshold != 0.5 {
		t.Errorf("Threshold = %v, want 0.5", cfg.Search.Threshold)
	}

	// Untouched sections keep their defaults.
	if cfg.Search.MaxResults != 100 {
		t.Errorf("MaxResults = %d, want default 100", cfg.Search.MaxResults)
	}
	if len(cfg.Categories) != 10 {
		t.Errorf("len(Categories) = %d, want 10", len(cfg.Categories))
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/config.yaml"); err == nil {
		t.Error("Load() expected error for missing file, got nil")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	cfg := Default()
	cfg.Pipeline.Workers = 2

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if loaded.Pipeline.Workers != 2 {
		t.Errorf("Workers = %d, want 2", loaded.Pipeline.Workers)
	}
	if len(loaded.Normalizer.PropertyFields) != len(cfg.Normalizer.PropertyFields) {
		t.Errorf("PropertyFields length changed across round trip")
	}
}
