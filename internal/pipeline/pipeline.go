package pipeline

import (
	"context"
	"time"

	"github.com/alitto/pond/v2"
	"go.uber.org/zap"

	"txdash/internal/aggregator"
	"txdash/internal/models"
	"txdash/internal/source"
)

// Run fetches one immutable snapshot from the source and computes the
// three summary tables. The two aggregators are pure functions of the
// same snapshot with disjoint outputs, so they run on separate workers
// and the caller joins on both. Failures propagate synchronously; no
// retries.
func Run(ctx context.Context, src source.Source, topAccounts int, logger *zap.Logger) (*models.Report, error) {
	start := time.Now()

	records, err := src.Records(ctx)
	if err != nil {
		return nil, err
	}

	var (
		report      models.Report
		metricsErr  error
		accountsErr error
	)

	pool := pond.NewPool(2)
	defer pool.StopAndWait()
	group := pool.NewGroupContext(ctx)

	group.Submit(func() {
		report.Global, report.Hourly, metricsErr = aggregator.Metrics(records)
	})
	group.Submit(func() {
		report.Accounts, accountsErr = aggregator.TopAccounts(records, topAccounts)
	})

	if err := group.Wait(); err != nil {
		return nil, err
	}
	if metricsErr != nil {
		return nil, metricsErr
	}
	if accountsErr != nil {
		return nil, accountsErr
	}

	logger.Info("aggregation complete",
		zap.Int("records", len(records)),
		zap.Uint64("transactions", report.Global.TotalTransactions),
		zap.Int("hourlyBuckets", len(report.Hourly)),
		zap.Int("rankedAccounts", len(report.Accounts)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return &report, nil
}
