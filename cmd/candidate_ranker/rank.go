package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/candidate-ranker/internal/config"
	"github.com/jonathan/candidate-ranker/internal/db"
	"github.com/jonathan/candidate-ranker/internal/logger"
	"github.com/jonathan/candidate-ranker/internal/observability"
	"github.com/jonathan/candidate-ranker/internal/ranking"
	"github.com/jonathan/candidate-ranker/internal/schemas"
	"github.com/jonathan/candidate-ranker/internal/types"
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank a candidate pool against a job description",
	Long: `Scores every candidate in a CandidateSet JSON file against a JobDescription JSON file
and writes a RankingResult JSON, ordered by the chosen sort key.

Sub-scores carried in the candidate file are used as-is unless --derive is set, in
which case they are recomputed from experience, declared skills, education and location.`,
	RunE: runRank,
}

var (
	rankJob         string
	rankCandidates  string
	rankOutput      string
	rankSort        string
	rankWeights     string
	rankLocale      string
	rankDerive      bool
	rankSoft        bool
	rankCerts       bool
	rankPrint       bool
	rankTopSkills   int
	rankSave        bool
	rankDatabaseURL string
)

func init() {
	rankCmd.Flags().StringVarP(&rankJob, "job", "j", "", "Path to input JobDescription JSON file (required)")
	rankCmd.Flags().StringVarP(&rankCandidates, "candidates", "c", "", "Path to input CandidateSet JSON file, or - for stdin (required)")
	rankCmd.Flags().StringVarP(&rankOutput, "out", "o", "", "Path to output RankingResult JSON file (default: stdout)")
	rankCmd.Flags().StringVarP(&rankSort, "sort", "s", "", "Sort key: overall, experience, skills or name")
	rankCmd.Flags().StringVar(&rankWeights, "weights", "", "Weights as experience,skills,education,location (must sum to 1.0)")
	rankCmd.Flags().StringVar(&rankLocale, "locale", "", "BCP 47 locale used to order names")
	rankCmd.Flags().BoolVar(&rankDerive, "derive", false, "Recompute sub-scores from candidate attributes")
	rankCmd.Flags().BoolVar(&rankSoft, "match-soft", false, "Include soft skills in skill matching")
	rankCmd.Flags().BoolVar(&rankCerts, "match-certs", false, "Include certifications in skill matching")
	rankCmd.Flags().BoolVar(&rankPrint, "print", false, "Print a human-readable ranking instead of JSON")
	rankCmd.Flags().IntVar(&rankTopSkills, "top-skills", 0, "Skills listed per candidate with --print")
	rankCmd.Flags().BoolVar(&rankSave, "save", false, "Persist the ranking run to PostgreSQL")
	rankCmd.Flags().StringVar(&rankDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")

	if err := rankCmd.MarkFlagRequired("job"); err != nil {
		panic(fmt.Sprintf("failed to mark job flag as required: %v", err))
	}
	if err := rankCmd.MarkFlagRequired("candidates"); err != nil {
		panic(fmt.Sprintf("failed to mark candidates flag as required: %v", err))
	}

	rootCmd.AddCommand(rankCmd)
}

// applyRankFlags copies the explicitly set ranking flags of cmd onto cfg.
func applyRankFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("sort") {
		cfg.SortKey = rankSort
	}
	if flags.Changed("weights") {
		w, err := parseWeights(rankWeights)
		if err != nil {
			return err
		}
		cfg.Weights = &w
	}
	if flags.Changed("locale") {
		cfg.Locale = rankLocale
	}
	if flags.Changed("derive") {
		cfg.DeriveSubScores = rankDerive
	}
	if flags.Changed("match-soft") {
		cfg.MatchSoftSkills = rankSoft
	}
	if flags.Changed("match-certs") {
		cfg.MatchCertifications = rankCerts
	}
	if flags.Changed("top-skills") {
		cfg.TopSkills = rankTopSkills
	}
	if flags.Changed("db-url") {
		cfg.DatabaseURL = rankDatabaseURL
	}
	return nil
}

func runRank(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	if err := applyRankFlags(cmd, &cfg); err != nil {
		return err
	}
	log := newLogger(cfg)
	defer func() { _ = log.Sync() }()

	opts, err := cfg.RankingOptions()
	if err != nil {
		return err
	}

	// 1. Load inputs
	var job types.JobDescription
	if err := readJSON(rankJob, &job); err != nil {
		return err
	}
	var set types.CandidateSet
	if err := readJSON(rankCandidates, &set); err != nil {
		return err
	}
	log.Debug("inputs loaded",
		zap.String("job", job.Title),
		zap.Int("candidates", len(set.Candidates)))

	// 2. Rank
	ranked, err := ranking.Evaluate(&job, set.Candidates, opts)
	if err != nil {
		return fmt.Errorf("failed to rank candidates: %w", err)
	}
	result := ranking.BuildResult(&job, ranked, opts)
	log.Info("ranking complete", logger.RankingFields(result.RequisitionID, string(opts.SortKey), len(ranked))...)

	// 3. Persist
	if rankSave {
		if err := saveRun(ctx, cfg.DatabaseURL, result); err != nil {
			return err
		}
		log.Info("ranking run saved", zap.Stringer("run_id", result.RunID))
	}

	// 4. Output
	out := cmd.OutOrStdout()
	if rankPrint {
		p := observability.NewPrinter(out).WithTopSkills(cfg.TopSkills)
		p.PrintJobDescription(&job)
		p.PrintRanking(result)
		if cfg.Verbose {
			for i := range ranked {
				p.PrintCandidateDetail(&ranked[i])
			}
		}
		return nil
	}

	if err := writeJSON(out, rankOutput, result, schemas.RankingResultSchema); err != nil {
		return err
	}
	if rankOutput != "" {
		_, _ = fmt.Fprintf(out, "Successfully ranked %d candidates to %s\n", len(ranked), rankOutput)
	}
	return nil
}

// saveRun persists result to the database at url, falling back to DATABASE_URL.
func saveRun(ctx context.Context, url string, result *types.RankingResult) error {
	if url == "" {
		url = os.Getenv("DATABASE_URL")
	}
	if url == "" {
		return fmt.Errorf("DATABASE_URL environment variable or --db-url flag is required with --save")
	}

	database, err := db.Connect(ctx, url)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	return database.SaveRankingRun(ctx, result)
}
