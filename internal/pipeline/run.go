package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/candidate-ranker/internal/logger"
	"github.com/jonathan/candidate-ranker/internal/observability"
	"github.com/jonathan/candidate-ranker/internal/ranking"
	"github.com/jonathan/candidate-ranker/internal/repository"
	"github.com/jonathan/candidate-ranker/internal/types"
)

// Stages reported through ProgressEvent
const (
	StageLoaded = "loaded"
	StageRanked = "ranked"
	StageSaved  = "saved"
)

// ProgressEvent represents a progress update for one requisition
type ProgressEvent struct {
	RequisitionID string `json:"requisition_id"`
	Stage         string `json:"stage"`
	Candidates    int    `json:"candidates"`
}

// ProgressCallback is called when pipeline progress occurs.
// It may be called from several goroutines at once.
type ProgressCallback func(event ProgressEvent)

// ResultSink persists ranking results
type ResultSink interface {
	SaveRankingRun(ctx context.Context, result *types.RankingResult) error
}

// Options holds configuration for ranking requisitions
type Options struct {
	Ranking ranking.Options
	// Concurrency bounds how many requisitions are ranked at once; 0 means unbounded.
	Concurrency int
	Sink        ResultSink
	Logger      *zap.Logger
	Metrics     *observability.Metrics
	OnProgress  ProgressCallback
}

func (o *Options) emit(id uuid.UUID, stage string, n int) {
	if o.OnProgress != nil {
		o.OnProgress(ProgressEvent{RequisitionID: id.String(), Stage: stage, Candidates: n})
	}
}

// RankRequisition loads one requisition from repo, ranks its pool and, when a
// sink is configured, persists the result.
func RankRequisition(ctx context.Context, repo repository.Repository, id uuid.UUID, opts Options) (*types.RankingResult, error) {
	log := logger.WithFields(opts.Logger, zap.String("requisition_id", id.String()))

	job, err := repo.GetJobDescription(ctx, id)
	if err != nil {
		return nil, &Error{RequisitionID: id, Message: "failed to load job description", Cause: err}
	}
	if job == nil {
		return nil, &NotFoundError{RequisitionID: id}
	}

	pool, err := repo.ListCandidates(ctx, id)
	if err != nil {
		return nil, &Error{RequisitionID: id, Message: "failed to load candidates", Cause: err}
	}
	opts.emit(id, StageLoaded, len(pool))
	log.Debug("requisition loaded", zap.Int("candidates", len(pool)))

	start := time.Now()
	ranked, err := ranking.Evaluate(job, pool, opts.Ranking)
	if err != nil {
		opts.Metrics.ObserveError(err)
		log.Warn("ranking failed", zap.Error(err))
		return nil, &Error{RequisitionID: id, Message: "failed to rank candidates", Cause: err}
	}
	elapsed := time.Since(start)
	opts.Metrics.ObserveRanking(string(opts.Ranking.SortKey), len(ranked), elapsed)

	job.ID = id.String()
	result := ranking.BuildResult(job, ranked, opts.Ranking)
	opts.emit(id, StageRanked, len(ranked))
	log.Info("requisition ranked",
		append(logger.RankingFields("", string(opts.Ranking.SortKey), len(ranked)),
			zap.Stringer("run_id", result.RunID),
			zap.Duration("elapsed", elapsed))...)

	if opts.Sink != nil {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := opts.Sink.SaveRankingRun(ctx, result); err != nil {
			return nil, &Error{RequisitionID: id, Message: "failed to save ranking run", Cause: err}
		}
		opts.emit(id, StageSaved, len(ranked))
	}

	return result, nil
}

// RankRequisitions ranks several requisitions in parallel. When ids is empty
// every requisition in repo is ranked. Results are returned in the order of
// the IDs. The first failure cancels the requisitions not yet started.
// Pools are independent, so each is still ranked sequentially and stably.
func RankRequisitions(ctx context.Context, repo repository.Repository, ids []uuid.UUID, opts Options) ([]*types.RankingResult, error) {
	if len(ids) == 0 {
		all, err := repo.ListRequisitionIDs(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list requisitions: %w", err)
		}
		ids = all
	}

	results := make([]*types.RankingResult, len(ids))

	g, gCtx := errgroup.WithContext(ctx)
	if opts.Concurrency > 0 {
		g.SetLimit(opts.Concurrency)
	}

	for i, id := range ids {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			result, err := RankRequisition(gCtx, repo, id, opts)
			if err != nil {
				return err
			}
			// each goroutine owns its own index
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	logger.WithFields(opts.Logger).Info("batch complete", zap.Int("requisitions", len(results)))
	return results, nil
}
