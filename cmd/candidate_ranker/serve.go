package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/candidate-ranker/internal/config"
	"github.com/jonathan/candidate-ranker/internal/server"
	"github.com/jonathan/candidate-ranker/internal/server/ratelimit"
)

var (
	servePort        int
	serveDataset     string
	serveDatabaseURL string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server that exposes REST endpoints for skill matching, scoring,
ranking and candidate selection.

Requisitions come from PostgreSQL when DATABASE_URL (or --db-url) is set, otherwise
from --dataset. Setting JWT_SECRET requires a bearer token on every API route.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", config.DefaultPort, "Port to listen on")
	serveCmd.Flags().StringVar(&serveDataset, "dataset", "", "Path to a dataset JSON file served from memory")
	serveCmd.Flags().StringVar(&serveDatabaseURL, "db-url", "", "PostgreSQL connection URL (defaults to DATABASE_URL env var)")
	rootCmd.AddCommand(serveCmd)
}

// serverConfig assembles the server configuration from settings and the environment.
func serverConfig(cmd *cobra.Command, cfg config.Config) (server.Config, error) {
	flags := cmd.Flags()
	if flags.Changed("port") {
		cfg.Port = servePort
	}
	if flags.Changed("dataset") {
		cfg.Dataset = serveDataset
	}
	if flags.Changed("db-url") {
		cfg.DatabaseURL = serveDatabaseURL
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}

	srvCfg := server.Config{
		Port:        cfg.Port,
		DatabaseURL: cfg.DatabaseURL,
		Dataset:     cfg.Dataset,
		Settings:    cfg,
		RateLimit:   ratelimit.LoadConfig(),
	}

	if config.JWTEnabled() {
		jwtCfg, err := config.NewJWTConfig()
		if err != nil {
			return server.Config{}, fmt.Errorf("invalid JWT configuration: %w", err)
		}
		srvCfg.JWT = jwtCfg
	}
	return srvCfg, nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	srvCfg, err := serverConfig(cmd, cfg)
	if err != nil {
		return err
	}
	log := newLogger(cfg)
	defer func() { _ = log.Sync() }()
	srvCfg.Logger = log

	srv, err := server.New(srvCfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
