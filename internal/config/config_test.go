package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/candidate-ranker/internal/types"
	"github.com/jonathan/candidate-ranker/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig_ValidJSON(t *testing.T) {
	path := writeConfig(t, `{
		"weights": {"experience_weight": 0.4, "skills_weight": 0.4, "education_weight": 0.1, "location_weight": 0.1},
		"sort_key": "skillsScore",
		"locale": "sv",
		"derive_sub_scores": true,
		"concurrency": 8,
		"verbose": true
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	require.NotNil(t, cfg.Weights)
	assert.Equal(t, 0.4, cfg.Weights.ExperienceWeight)
	assert.Equal(t, "skillsScore", cfg.SortKey)
	assert.Equal(t, "sv", cfg.Locale)
	assert.True(t, cfg.DeriveSubScores)
	assert.Equal(t, 8, cfg.Concurrency)
	assert.True(t, cfg.Verbose)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, `{ invalid json }`))
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestValidate(t *testing.T) {
	badWeights := types.Weights{ExperienceWeight: 0.5, SkillsWeight: 0.3}

	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"defaults", Default(), ""},
		{"empty", Config{}, ""},
		{"weights not summing to one", Config{Weights: &badWeights}, "weights"},
		{"unknown sort key", Config{SortKey: "salary"}, "sort_key"},
		{"bad locale", Config{Locale: "not a tag!"}, "locale"},
		{"negative concurrency", Config{Concurrency: -1}, "concurrency"},
		{"negative top skills", Config{TopSkills: -2}, "top_skills"},
		{"port out of range", Config{Port: 70000}, "port"},
		{"missing dataset", Config{Dataset: "/nonexistent/dataset.json"}, "dataset"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, validation.IsInvalidConfig(err))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	custom := types.Weights{ExperienceWeight: 1}
	cfg := &Config{
		Weights:     &custom,
		DatabaseURL: "postgres://custom",
		Port:        9000,
	}

	merged := cfg.MergeWithDefaults(Default())

	assert.Equal(t, 1.0, merged.Weights.ExperienceWeight, "explicit weights win")
	assert.Equal(t, "postgres://custom", merged.DatabaseURL)
	assert.Equal(t, 9000, merged.Port)
	assert.Equal(t, "overall", merged.SortKey)
	assert.Equal(t, "en", merged.Locale)
	assert.Equal(t, DefaultConcurrency, merged.Concurrency)
	assert.Equal(t, 6, merged.TopSkills)
}

func TestMergeWithDefaults_CopiesWeights(t *testing.T) {
	defaults := Default()
	merged := (&Config{}).MergeWithDefaults(defaults)

	require.NotNil(t, merged.Weights)
	merged.Weights.LocationWeight = 0.9
	assert.Equal(t, 0.10, defaults.Weights.LocationWeight)
}

func TestRankingOptions(t *testing.T) {
	cfg := Default()
	cfg.SortKey = "experience_score"
	cfg.Locale = "sv"
	cfg.MatchSoftSkills = true

	opts, err := cfg.RankingOptions()
	require.NoError(t, err)
	assert.Equal(t, types.DefaultWeights(), opts.Weights)
	assert.Equal(t, types.SortByExperience, opts.SortKey)
	assert.Equal(t, language.Swedish, opts.Locale)
	assert.True(t, opts.MatchSoftSkills)
	assert.False(t, opts.DeriveSubScores)
}

func TestRankingOptions_RequiresWeights(t *testing.T) {
	_, err := (&Config{}).RankingOptions()
	require.Error(t, err)
	assert.True(t, validation.IsInvalidConfig(err))
}
