package refresher

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hamed0406/anomalydash/internal/domain"
	"github.com/hamed0406/anomalydash/internal/state"
)

// Fetcher is the slice of the backend client the refresher needs.
type Fetcher interface {
	FetchResults(ctx context.Context) ([]domain.Record, int, error)
	FetchStatistics(ctx context.Context) (*domain.Statistics, error)
}

// Refresher re-pulls the backend snapshot on a fixed interval. A failed pass
// leaves the previous snapshot intact; statistics failures are logged and
// never surfaced (the record list is the primary data).
type Refresher struct {
	Logger   *zap.Logger
	Client   Fetcher
	Store    *state.Store
	Interval time.Duration
	Timeout  time.Duration
}

func New(logger *zap.Logger, client Fetcher, store *state.Store, interval, timeout time.Duration) *Refresher {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if interval < 0 {
		interval = 0
	}
	return &Refresher{
		Logger:   logger,
		Client:   client,
		Store:    store,
		Interval: interval,
		Timeout:  timeout,
	}
}

// Run starts the loop. It does an immediate pass, then runs each tick.
// Stops when ctx is cancelled.
func (r *Refresher) Run(ctx context.Context) {
	if r.Interval == 0 {
		// disabled
		r.Logger.Info("refresher_disabled")
		return
	}
	t := time.NewTicker(r.Interval)
	defer t.Stop()

	r.RunOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			r.Logger.Info("refresher_stopped")
			return
		case <-t.C:
			r.RunOnce(ctx)
		}
	}
}

// RunOnce performs a single refresh pass. The sequence number is reserved
// before the request goes out so a slow response that resolves after a later
// pass is discarded instead of applied.
func (r *Refresher) RunOnce(ctx context.Context) {
	runID := uuid.NewString()[:8]
	seq := r.Store.NextSeq()

	cctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	records, count, err := r.Client.FetchResults(cctx)
	if err != nil {
		r.Logger.Warn("refresh_results_error",
			zap.String("run_id", runID),
			zap.Error(err),
		)
	} else if !r.Store.ApplyRecords(seq, records) {
		r.Logger.Info("refresh_stale_discarded",
			zap.String("run_id", runID),
			zap.Uint64("seq", seq),
		)
	} else {
		r.Logger.Debug("refresh_applied",
			zap.String("run_id", runID),
			zap.Uint64("seq", seq),
			zap.Int("records", len(records)),
			zap.Int("count", count),
		)
	}

	stats, err := r.Client.FetchStatistics(cctx)
	if err != nil {
		// secondary fetch: log only, keep whatever we had
		r.Logger.Warn("refresh_statistics_error",
			zap.String("run_id", runID),
			zap.Error(err),
		)
		return
	}
	r.Store.ApplyStatistics(stats)
}
