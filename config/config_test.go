package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Extract.WorkerMultiplier != 10 {
		t.Errorf("Extract.WorkerMultiplier = %d, expected 10", cfg.Extract.WorkerMultiplier)
	}
	if cfg.Extract.Workers != 0 {
		t.Errorf("Extract.Workers = %d, expected 0", cfg.Extract.Workers)
	}
	if cfg.Extract.QueueSize != 4096 {
		t.Errorf("Extract.QueueSize = %d, expected 4096", cfg.Extract.QueueSize)
	}
	if cfg.Output.Path != "commits.json.gz" {
		t.Errorf("Output.Path = %q, expected %q", cfg.Output.Path, "commits.json.gz")
	}
	if cfg.Output.BatchSize != 10000 {
		t.Errorf("Output.BatchSize = %d, expected 10000", cfg.Output.BatchSize)
	}
	if cfg.Git.Binary != "git" {
		t.Errorf("Git.Binary = %q, expected %q", cfg.Git.Binary, "git")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config is invalid: %v", err)
	}
}

func TestExtractConfig_WorkerCount(t *testing.T) {
	tests := []struct {
		name     string
		cfg      ExtractConfig
		numCPU   int
		expected int
	}{
		{name: "Multiplier", cfg: ExtractConfig{WorkerMultiplier: 10}, numCPU: 4, expected: 40},
		{name: "Explicit workers win", cfg: ExtractConfig{WorkerMultiplier: 10, Workers: 3}, numCPU: 4, expected: 3},
		{name: "Zero multiplier uses default", cfg: ExtractConfig{}, numCPU: 2, expected: 20},
		{name: "Zero CPUs", cfg: ExtractConfig{WorkerMultiplier: 2}, numCPU: 0, expected: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.WorkerCount(tt.numCPU); got != tt.expected {
				t.Errorf("WorkerCount(%d) = %d, expected %d", tt.numCPU, got, tt.expected)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{name: "Negative workers", modify: func(c *Config) { c.Extract.Workers = -1 }, wantErr: "extract.workers"},
		{name: "Zero queue", modify: func(c *Config) { c.Extract.QueueSize = 0 }, wantErr: "extract.queueSize"},
		{name: "Zero batch", modify: func(c *Config) { c.Output.BatchSize = 0 }, wantErr: "output.batchSize"},
		{name: "Level zero", modify: func(c *Config) { c.Output.CompressionLevel = 0 }, wantErr: "output.compressionLevel"},
		{name: "Level too high", modify: func(c *Config) { c.Output.CompressionLevel = 10 }, wantErr: "output.compressionLevel"},
		{name: "Empty path", modify: func(c *Config) { c.Output.Path = "" }, wantErr: "output.path"},
		{name: "Best compression", modify: func(c *Config) { c.Output.CompressionLevel = 9 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, expected error mentioning %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadConfig_MergesWithDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	content := `{"extract": {"workers": 8}, "output": {"batchSize": 500}, "filters": {"exclude": ["vendor/**"]}}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Extract.Workers != 8 {
		t.Errorf("Extract.Workers = %d, expected 8", cfg.Extract.Workers)
	}
	if cfg.Output.BatchSize != 500 {
		t.Errorf("Output.BatchSize = %d, expected 500", cfg.Output.BatchSize)
	}
	if len(cfg.Filters.Exclude) != 1 || cfg.Filters.Exclude[0] != "vendor/**" {
		t.Errorf("Filters.Exclude = %v", cfg.Filters.Exclude)
	}
	// Untouched fields keep their defaults.
	if cfg.Extract.QueueSize != 4096 || cfg.Output.Path != "commits.json.gz" || cfg.Git.Binary != "git" {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Output.BatchSize != 10000 {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	cfg := DefaultConfig()
	cfg.Git.Binary = "/usr/local/bin/git"
	cfg.Filters.Include = []string{"**/*.go"}

	if err := SaveConfig(cfg, path); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}
	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if loaded.Git.Binary != cfg.Git.Binary || len(loaded.Filters.Include) != 1 {
		t.Errorf("round trip mismatch: %+v", loaded)
	}
}
