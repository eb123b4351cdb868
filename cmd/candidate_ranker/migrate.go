package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/candidate-ranker/internal/db"
	"github.com/jonathan/candidate-ranker/internal/types"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the database schema and optionally seed it",
	Long: `Applies the schema migrations to the PostgreSQL database and, with --seed, loads
every requisition and candidate of a dataset JSON file.`,
	RunE: runMigrate,
}

var (
	migrateDatabaseURL string
	migrateSeed        string
)

func init() {
	migrateCmd.Flags().StringVar(&migrateDatabaseURL, "db-url", "", "PostgreSQL connection URL (defaults to DATABASE_URL env var)")
	migrateCmd.Flags().StringVar(&migrateSeed, "seed", "", "Path to a dataset JSON file to load after migrating")
	rootCmd.AddCommand(migrateCmd)
}

// databaseURL returns the flag value or, when empty, DATABASE_URL.
func databaseURL(flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url, nil
	}
	return "", fmt.Errorf("DATABASE_URL environment variable or --db-url flag is required")
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	log := newLogger(cfg)
	defer func() { _ = log.Sync() }()

	url, err := databaseURL(migrateDatabaseURL)
	if err != nil {
		return err
	}

	// Read the seed before touching the database
	var ds types.Dataset
	if migrateSeed != "" {
		if err := readJSON(migrateSeed, &ds); err != nil {
			return err
		}
	}

	database, err := db.Connect(ctx, url)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	if err := database.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	log.Info("schema migrated")

	for _, req := range ds.Requisitions {
		job := req.Job
		job.ID = req.ID
		id, err := database.CreateRequisition(ctx, &job)
		if err != nil {
			return fmt.Errorf("failed to seed requisition %q: %w", req.ID, err)
		}
		if err := database.AddCandidates(ctx, id, req.Candidates); err != nil {
			return fmt.Errorf("failed to seed candidates of %s: %w", id, err)
		}
		log.Info("requisition seeded", zap.Stringer("requisition_id", id), zap.Int("candidates", len(req.Candidates)))
	}

	out := cmd.OutOrStdout()
	if len(ds.Requisitions) > 0 {
		_, _ = fmt.Fprintf(out, "Migrated database and seeded %d requisitions\n", len(ds.Requisitions))
	} else {
		_, _ = fmt.Fprintln(out, "Migrated database")
	}
	return nil
}
