// Package main provides the candidate_ranker CLI: skill matching, scoring,
// ranking and the HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/candidate-ranker/internal/config"
	"github.com/jonathan/candidate-ranker/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "candidate_ranker",
	Short: "Candidate ranking engine",
	Long: `candidate_ranker matches candidates' declared skills against job requirements,
combines sub-scores into a weighted overall score and orders candidate pools.

Ranking defaults can be loaded from a JSON file using --config. Command-line
flags override config file values.`,
	SilenceUsage: true,
}

var (
	rootConfigPath string
	rootVerbose    bool
	rootLogJSON    bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&rootConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	rootCmd.PersistentFlags().BoolVarP(&rootVerbose, "verbose", "v", false, "Print detailed debug information")
	rootCmd.PersistentFlags().BoolVar(&rootLogJSON, "log-json", false, "Write logs as JSON")
}

// loadSettings reads the --config file, applies the root flags and fills the
// remaining fields with defaults.
func loadSettings(cmd *cobra.Command) (config.Config, error) {
	var cfg config.Config
	if rootConfigPath != "" {
		loaded, err := config.LoadConfig(rootConfigPath)
		if err != nil {
			return config.Config{}, fmt.Errorf("failed to load config: %w", err)
		}
		if err := loaded.Validate(); err != nil {
			return config.Config{}, err
		}
		cfg = *loaded
	}

	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = rootVerbose
	}
	if cmd.Flags().Changed("log-json") {
		cfg.LogJSON = rootLogJSON
	}

	return cfg.MergeWithDefaults(config.Default()), nil
}

// newLogger builds the command logger. Logs go to stderr.
func newLogger(cfg config.Config) *zap.Logger {
	log, err := logger.New(cfg.LogJSON, cfg.Verbose)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Warning: falling back to a silent logger: %v\n", err)
		return logger.Nop()
	}
	return log
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
