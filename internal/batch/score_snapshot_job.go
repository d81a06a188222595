package batch

import (
	"context"
	"credit-engine/internal/domain/credit"
	"credit-engine/internal/domain/customer"
	"credit-engine/internal/domain/loan"
	"credit-engine/internal/infrastructure/monitoring"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
)

const defaultConcurrency = 8

// LoanHistoryReader is the read-only slice of loan.Repository the snapshot needs.
type LoanHistoryReader interface {
	ListByCustomerID(ctx context.Context, customerID int64) ([]loan.Loan, error)
}

// ScoreSnapshotJob scores every customer and publishes the portfolio's score
// distribution and rate tier counts as metrics. It never writes.
type ScoreSnapshotJob struct {
	customerService customer.CustomerService
	loans           LoanHistoryReader
	engine          *credit.Engine
	concurrency     int
	logger          *slog.Logger
}

// SnapshotResult summarises one run.
type SnapshotResult struct {
	Scored    int
	Failed    int
	TierCount map[string]int
}

func NewScoreSnapshotJob(
	customerSvc customer.CustomerService,
	loans LoanHistoryReader,
	engine *credit.Engine,
	concurrency int,
	logger *slog.Logger,
) *ScoreSnapshotJob {
	if customerSvc == nil || loans == nil || engine == nil || logger == nil {
		panic("ScoreSnapshotJob dependencies cannot be nil")
	}
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	return &ScoreSnapshotJob{
		customerService: customerSvc,
		loans:           loans,
		engine:          engine,
		concurrency:     concurrency,
		logger:          logger.With("job", "ScoreSnapshot"),
	}
}

func (j *ScoreSnapshotJob) Run(ctx context.Context) error {
	_, err := j.Snapshot(ctx)
	return err
}

func (j *ScoreSnapshotJob) Snapshot(ctx context.Context) (*SnapshotResult, error) {
	startTime := time.Now()
	j.logger.InfoContext(ctx, "Starting portfolio score snapshot job.")

	ids, err := j.customerService.ListCustomerIDs(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Failed to list customers, aborting job.", slog.Any("error", err))
		return nil, fmt.Errorf("cannot run job, failed to list customers: %w", err)
	}
	j.logger.InfoContext(ctx, "Fetched customer IDs.", slog.Int("count", len(ids)))

	var (
		mu      sync.Mutex
		tiers   = make(map[string]int)
		scored  atomic.Int32
		failed  atomic.Int32
		g, gctx = errgroup.WithContext(ctx)
	)
	g.SetLimit(j.concurrency)

	for _, id := range ids {
		g.Go(func() error {
			score, scoreErr := j.scoreCustomer(gctx, id)
			if scoreErr != nil {
				if errors.Is(scoreErr, context.Canceled) || errors.Is(scoreErr, context.DeadlineExceeded) {
					return scoreErr
				}
				j.logger.ErrorContext(gctx, "Failed to score customer", slog.Int64("customerID", id), slog.Any("error", scoreErr))
				failed.Add(1)
				return nil
			}

			monitoring.ObserveCreditScore(monitoring.ScoreSourceSnapshot, score)
			mu.Lock()
			tiers[credit.RateTier(score)]++
			mu.Unlock()
			scored.Add(1)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		j.logger.WarnContext(ctx, "Score snapshot job interrupted.", slog.Any("error", err), slog.Int("scored", int(scored.Load())))
		return nil, fmt.Errorf("score snapshot interrupted: %w", err)
	}

	duration := time.Since(startTime)
	monitoring.SetRateTierCounts(tiers)
	monitoring.ObserveSnapshotDuration(duration)

	result := &SnapshotResult{
		Scored:    int(scored.Load()),
		Failed:    int(failed.Load()),
		TierCount: tiers,
	}
	summaryLog := j.logger.With(
		slog.Duration("duration", duration),
		slog.Int("total_customers", len(ids)),
		slog.Int("customers_scored", result.Scored),
		slog.Int("errors_encountered", result.Failed),
	)
	if result.Failed > 0 {
		summaryLog.WarnContext(ctx, "Score snapshot job finished with errors.")
		return result, fmt.Errorf("job completed with %d errors", result.Failed)
	}
	summaryLog.InfoContext(ctx, "Score snapshot job finished successfully.")
	return result, nil
}

func (j *ScoreSnapshotJob) scoreCustomer(ctx context.Context, customerID int64) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	cust, err := j.customerService.GetCustomer(ctx, customerID)
	if err != nil {
		return 0, err
	}
	history, err := j.loans.ListByCustomerID(ctx, customerID)
	if err != nil {
		return 0, err
	}
	return j.engine.Score(cust.Applicant(), loan.Records(history)), nil
}
