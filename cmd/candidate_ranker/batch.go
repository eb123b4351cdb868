package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/candidate-ranker/internal/config"
	"github.com/jonathan/candidate-ranker/internal/db"
	"github.com/jonathan/candidate-ranker/internal/pipeline"
	"github.com/jonathan/candidate-ranker/internal/repository"
	"github.com/jonathan/candidate-ranker/internal/schemas"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Rank every requisition of a dataset or database",
	Long: `Ranks the candidate pools of several requisitions in parallel and writes one
<requisition-id>.ranking.json file per requisition to the output directory.

Requisitions are read from a dataset JSON file (--dataset) or from PostgreSQL
(--db-url or DATABASE_URL). With a database, every run is also persisted.`,
	RunE: runBatch,
}

var (
	batchDataset      string
	batchDatabaseURL  string
	batchRequisitions string
	batchOutDir       string
	batchConcurrency  int
	batchSort         string
	batchDerive       bool
)

func init() {
	batchCmd.Flags().StringVar(&batchDataset, "dataset", "", "Path to a dataset JSON file")
	batchCmd.Flags().StringVar(&batchDatabaseURL, "db-url", "", "PostgreSQL connection URL (defaults to DATABASE_URL env var)")
	batchCmd.Flags().StringVar(&batchRequisitions, "requisitions", "", "Comma-separated requisition IDs (default: all)")
	batchCmd.Flags().StringVarP(&batchOutDir, "out", "o", "", "Output directory for ranking files (required)")
	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 0, "Requisitions ranked at once (default from config)")
	batchCmd.Flags().StringVarP(&batchSort, "sort", "s", "", "Sort key: overall, experience, skills or name")
	batchCmd.Flags().BoolVar(&batchDerive, "derive", false, "Recompute sub-scores from candidate attributes")

	if err := batchCmd.MarkFlagRequired("out"); err != nil {
		panic(fmt.Sprintf("failed to mark out flag as required: %v", err))
	}
	batchCmd.MarkFlagsMutuallyExclusive("dataset", "db-url")

	rootCmd.AddCommand(batchCmd)
}

// parseRequisitionIDs reads the --requisitions list.
func parseRequisitionIDs(raw string) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	for _, s := range splitList(raw) {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("invalid requisition id %q: %w", s, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// openRepository picks the requisition source: a dataset file wins over a database.
// The returned DB is nil when requisitions come from a dataset.
func openRepository(ctx context.Context, cfg config.Config) (repository.Repository, *db.DB, error) {
	if cfg.Dataset != "" {
		store, err := repository.LoadDataset(cfg.Dataset)
		if err != nil {
			return nil, nil, err
		}
		return store, nil, nil
	}

	url := cfg.DatabaseURL
	if url == "" {
		url = os.Getenv("DATABASE_URL")
	}
	if url == "" {
		return nil, nil, fmt.Errorf("--dataset, --db-url or DATABASE_URL is required")
	}

	database, err := db.Connect(ctx, url)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return database, database, nil
}

func runBatch(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("dataset") {
		cfg.Dataset = batchDataset
	}
	if flags.Changed("db-url") {
		cfg.DatabaseURL = batchDatabaseURL
		cfg.Dataset = ""
	}
	if flags.Changed("concurrency") {
		cfg.Concurrency = batchConcurrency
	}
	if flags.Changed("sort") {
		cfg.SortKey = batchSort
	}
	if flags.Changed("derive") {
		cfg.DeriveSubScores = batchDerive
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := newLogger(cfg)
	defer func() { _ = log.Sync() }()

	opts, err := cfg.RankingOptions()
	if err != nil {
		return err
	}
	ids, err := parseRequisitionIDs(batchRequisitions)
	if err != nil {
		return err
	}

	repo, database, err := openRepository(ctx, cfg)
	if err != nil {
		return err
	}
	pipeOpts := pipeline.Options{
		Ranking:     opts,
		Concurrency: cfg.Concurrency,
		Logger:      log,
		OnProgress: func(e pipeline.ProgressEvent) {
			log.Debug("progress",
				zap.String("requisition_id", e.RequisitionID),
				zap.String("stage", e.Stage),
				zap.Int("candidates", e.Candidates))
		},
	}
	if database != nil {
		defer database.Close()
		pipeOpts.Sink = database
	}

	results, err := pipeline.RankRequisitions(ctx, repo, ids, pipeOpts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, result := range results {
		path := filepath.Join(batchOutDir, result.RequisitionID+".ranking.json")
		if err := writeJSON(out, path, result, schemas.RankingResultSchema); err != nil {
			return err
		}
	}

	_, _ = fmt.Fprintf(out, "Successfully ranked %d requisitions to %s\n", len(results), batchOutDir)
	return nil
}
