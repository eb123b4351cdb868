// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/candidate-ranker/internal/ranking"
	"github.com/jonathan/candidate-ranker/internal/types"
	"github.com/jonathan/candidate-ranker/internal/validation"
	"golang.org/x/text/language"
)

const (
	// DefaultPort is the HTTP port used by serve when none is configured
	DefaultPort = 8080
	// DefaultConcurrency bounds how many requisitions batch ranks at once
	DefaultConcurrency = 4
)

// Config represents the ranking configuration that can be loaded from a JSON file.
// All fields are optional; missing values are filled by MergeWithDefaults.
type Config struct {
	// Scoring
	Weights             *types.Weights `json:"weights,omitempty"`              // Sub-score weighting; must sum to 1.0
	SortKey             string         `json:"sort_key,omitempty"`             // overall, experience, skills or name
	Locale              string         `json:"locale,omitempty"`               // BCP 47 tag used to collate names
	DeriveSubScores     bool           `json:"derive_sub_scores,omitempty"`    // Recompute sub-scores from raw attributes
	MatchSoftSkills     bool           `json:"match_soft_skills,omitempty"`    // Include soft skills in skill matching
	MatchCertifications bool           `json:"match_certifications,omitempty"` // Include certifications in skill matching

	// Data
	Dataset     string `json:"dataset,omitempty"`      // Path to a JSON dataset for the in-memory repository
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL

	// Runtime
	Concurrency int  `json:"concurrency,omitempty"` // Requisitions ranked in parallel by batch
	Port        int  `json:"port,omitempty"`        // HTTP port for serve
	TopSkills   int  `json:"top_skills,omitempty"`  // Skill chips shown per candidate
	LogJSON     bool `json:"log_json,omitempty"`    // Emit JSON logs instead of console logs
	Verbose     bool `json:"verbose,omitempty"`     // Print detailed debug information
}

// Default returns the configuration used when no file is given.
func Default() Config {
	w := types.DefaultWeights()
	return Config{
		Weights:     &w,
		SortKey:     string(types.SortByOverall),
		Locale:      language.English.String(),
		Concurrency: DefaultConcurrency,
		Port:        DefaultPort,
		TopSkills:   6,
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
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

// Validate checks that the configuration has usable values.
// Problems are reported as *validation.InvalidConfigError.
func (c *Config) Validate() error {
	if c.Weights != nil {
		if err := validation.ValidateWeights(*c.Weights); err != nil {
			return err
		}
	}

	if _, err := types.ParseSortKey(c.SortKey); err != nil {
		return &validation.InvalidConfigError{Field: "sort_key", Message: "unsupported value", Cause: err}
	}

	if c.Locale != "" {
		if _, err := language.Parse(c.Locale); err != nil {
			return &validation.InvalidConfigError{Field: "locale", Message: "not a BCP 47 tag", Cause: err}
		}
	}

	if c.Concurrency < 0 {
		return validation.ConfigErrorf("concurrency", "must be non-negative")
	}
	if c.TopSkills < 0 {
		return validation.ConfigErrorf("top_skills", "must be non-negative")
	}
	if c.Port < 0 || c.Port > 65535 {
		return validation.ConfigErrorf("port", "%d is not a valid port", c.Port)
	}

	if c.Dataset != "" {
		if _, err := os.Stat(c.Dataset); os.IsNotExist(err) {
			return validation.ConfigErrorf("dataset", "file not found: %s", c.Dataset)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with unset fields filled from defaults.
// Config file values act as defaults for CLI flags this way.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Weights == nil && defaults.Weights != nil {
		w := *defaults.Weights
		result.Weights = &w
	}
	if result.SortKey == "" {
		result.SortKey = defaults.SortKey
	}
	if result.Locale == "" {
		result.Locale = defaults.Locale
	}
	if result.Dataset == "" {
		result.Dataset = defaults.Dataset
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}

	if result.Concurrency == 0 {
		result.Concurrency = defaults.Concurrency
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.TopSkills == 0 {
		result.TopSkills = defaults.TopSkills
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// RankingOptions converts the configuration into engine options.
// Weights are never defaulted here: a config without weights is an error.
func (c *Config) RankingOptions() (ranking.Options, error) {
	if c.Weights == nil {
		return ranking.Options{}, validation.ConfigErrorf("weights", "not configured")
	}

	key, err := types.ParseSortKey(c.SortKey)
	if err != nil {
		return ranking.Options{}, &validation.InvalidConfigError{Field: "sort_key", Message: "unsupported value", Cause: err}
	}

	locale := ranking.DefaultLocale
	if c.Locale != "" {
		locale, err = language.Parse(c.Locale)
		if err != nil {
			return ranking.Options{}, &validation.InvalidConfigError{Field: "locale", Message: "not a BCP 47 tag", Cause: err}
		}
	}

	return ranking.Options{
		Weights:             *c.Weights,
		SortKey:             key,
		Locale:              locale,
		DeriveSubScores:     c.DeriveSubScores,
		MatchSoftSkills:     c.MatchSoftSkills,
		MatchCertifications: c.MatchCertifications,
	}, nil
}
