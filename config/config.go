package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// FileName is the configuration file looked up in the working and home directories.
const FileName = ".gitcorpus.json"

// Config is the root configuration structure.
type Config struct {
	Extract ExtractConfig `json:"extract"`
	Output  OutputConfig  `json:"output"`
	Filters FilterConfig  `json:"filters"`
	Git     GitConfig     `json:"git"`
}

// ExtractConfig controls the worker pool and the record queue.
type ExtractConfig struct {
	WorkerMultiplier int `json:"workerMultiplier"` // Default: 10, workers = multiplier * CPUs
	Workers          int `json:"workers"`          // Overrides WorkerMultiplier when > 0
	QueueSize        int `json:"queueSize"`        // Default: 4096
}

// OutputConfig controls the compressed corpus file.
type OutputConfig struct {
	Path             string `json:"path"`             // Default: commits.json.gz
	BatchSize        int    `json:"batchSize"`        // Default: 10000
	CompressionLevel int    `json:"compressionLevel"` // gzip level: -1 (default), -2 (Huffman only) or 1-9
}

// FilterConfig holds file path filtering options.
type FilterConfig struct {
	Include []string `json:"include"`
	Exclude []string `json:"exclude"`
}

// GitConfig selects the git executable.
type GitConfig struct {
	Binary string `json:"binary"` // Default: "git"
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		Extract: ExtractConfig{
			WorkerMultiplier: 10,
			QueueSize:        4096,
		},
		Output: OutputConfig{
			Path:             "commits.json.gz",
			BatchSize:        10000,
			CompressionLevel: -1,
		},
		Filters: FilterConfig{
			Include: []string{},
			Exclude: []string{},
		},
		Git: GitConfig{
			Binary: "git",
		},
	}
}

// WorkerCount resolves the number of extraction workers for numCPU processors.
func (c ExtractConfig) WorkerCount(numCPU int) int {
	if c.Workers > 0 {
		return c.Workers
	}
	multiplier := c.WorkerMultiplier
	if multiplier <= 0 {
		multiplier = 10
	}
	return multiplier * max(numCPU, 1)
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Extract.Workers < 0 {
		return fmt.Errorf("extract.workers must not be negative, got %d", c.Extract.Workers)
	}
	if c.Extract.QueueSize < 1 {
		return fmt.Errorf("extract.queueSize must be at least 1, got %d", c.Extract.QueueSize)
	}
	if c.Output.BatchSize < 1 {
		return fmt.Errorf("output.batchSize must be at least 1, got %d", c.Output.BatchSize)
	}
	if lvl := c.Output.CompressionLevel; lvl == 0 || lvl < -2 || lvl > 9 {
		return fmt.Errorf("output.compressionLevel must be -2, -1 or 1-9, got %d", lvl)
	}
	if c.Output.Path == "" {
		return fmt.Errorf("output.path must not be empty")
	}
	return nil
}

// LoadConfig loads configuration from a file, merging with defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		// Try default locations
		candidates := []string{FileName}
		if home, err := os.UserHomeDir(); err == nil && home != "" {
			candidates = append(candidates, filepath.Join(home, FileName))
		} else if envHome := os.Getenv("HOME"); envHome != "" {
			candidates = append(candidates, filepath.Join(envHome, FileName))
		}
		for _, p := range candidates {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
	}

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return cfg, nil
}

// SaveConfig saves configuration to a file.
func SaveConfig(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
