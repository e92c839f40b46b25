// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config is the CLI configuration loadable from a JSON file. All fields are
// optional; missing values fall back to defaults or CLI flags.
type Config struct {
	// Paths
	Resume    string `json:"resume,omitempty"`     // Path to resume text file
	JobsFile  string `json:"jobs,omitempty"`       // Path to JSON file with job postings
	Template  string `json:"template,omitempty"`   // Path to LaTeX template override
	OutputDir string `json:"output_dir,omitempty"` // Directory for compiled PDFs

	// Generation service
	APIKey        string `json:"api_key,omitempty"`        // Gemini API key
	MaxConcurrent int64  `json:"max_concurrent,omitempty"` // Concurrent generation calls
	CallTimeout   int    `json:"call_timeout,omitempty"`   // Per-call timeout in seconds

	// Compilation
	CompilerBinary string `json:"compiler_binary,omitempty"` // LaTeX engine, default pdflatex
	CompileTimeout int    `json:"compile_timeout,omitempty"` // Per-document timeout in seconds

	// Behavior
	ReconcileDomains bool   `json:"reconcile_domains,omitempty"` // Reframe content on domain mismatch
	Strength         string `json:"strength,omitempty"`          // conservative, moderate or aggressive
	Verbose          bool   `json:"verbose,omitempty"`           // Print detailed progress
}

// LoadConfig loads configuration from a JSON file.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values. Required fields
// are enforced after merging with CLI flags, not here.
func (c *Config) Validate() error {
	if c.MaxConcurrent < 0 {
		return fmt.Errorf("config error: 'max_concurrent' must be non-negative")
	}
	if c.CallTimeout < 0 {
		return fmt.Errorf("config error: 'call_timeout' must be non-negative")
	}
	if c.CompileTimeout < 0 {
		return fmt.Errorf("config error: 'compile_timeout' must be non-negative")
	}

	switch c.Strength {
	case "", "conservative", "moderate", "aggressive":
	default:
		return fmt.Errorf("config error: 'strength' must be conservative, moderate or aggressive")
	}

	if c.Template != "" {
		if _, err := os.Stat(c.Template); os.IsNotExist(err) {
			return fmt.Errorf("config error: template file not found: %s", c.Template)
		}
	}
	if c.Resume != "" {
		if _, err := os.Stat(c.Resume); os.IsNotExist(err) {
			return fmt.Errorf("config error: resume file not found: %s", c.Resume)
		}
	}
	if c.JobsFile != "" {
		if _, err := os.Stat(c.JobsFile); os.IsNotExist(err) {
			return fmt.Errorf("config error: jobs file not found: %s", c.JobsFile)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with zero-valued fields filled from
// defaults. Config file values act as defaults for CLI flags; bools are not
// merged since unset and false are indistinguishable.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Resume == "" {
		result.Resume = defaults.Resume
	}
	if result.JobsFile == "" {
		result.JobsFile = defaults.JobsFile
	}
	if result.Template == "" {
		result.Template = defaults.Template
	}
	if result.OutputDir == "" {
		result.OutputDir = defaults.OutputDir
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.CompilerBinary == "" {
		result.CompilerBinary = defaults.CompilerBinary
	}
	if result.Strength == "" {
		result.Strength = defaults.Strength
	}

	if result.MaxConcurrent == 0 {
		result.MaxConcurrent = defaults.MaxConcurrent
	}
	if result.CallTimeout == 0 {
		result.CallTimeout = defaults.CallTimeout
	}
	if result.CompileTimeout == 0 {
		result.CompileTimeout = defaults.CompileTimeout
	}

	return result
}
