// Package worker runs background scans of the account through River.
package worker

import (
	"context"
	"fmt"
	"time"
	"unfollower/internal/config"
	"unfollower/pkg/logger"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"go.uber.org/zap"
)

// Options configure the River client and its schedule.
type Options struct {
	// MaxWorkers bounds concurrently running jobs of the default queue.
	MaxWorkers int
	// ScanInterval schedules a periodic scan; zero disables the schedule.
	ScanInterval time.Duration
	// AutoUnfollow is carried by every scheduled job.
	AutoUnfollow bool
	// MaxAttempts is the retry budget of a scheduled job.
	MaxAttempts int
	// JobTimeout bounds one job; zero disables the deadline.
	JobTimeout time.Duration
}

// NewOptions constructs an Options value from the provided application configuration.
func NewOptions(cfg *config.Config) Options {
	return Options{
		MaxWorkers:   cfg.Worker.MaxWorkers,
		ScanInterval: cfg.Worker.ScanInterval,
		AutoUnfollow: cfg.Worker.AutoUnfollow,
		MaxAttempts:  cfg.Worker.MaxAttempts,
		JobTimeout:   cfg.Worker.JobTimeout,
	}
}

// PeriodicJobs returns the scan schedule for account, starting with a scan as
// soon as the client starts. It is empty when no interval is configured.
func PeriodicJobs(account string, opts Options) []*river.PeriodicJob {
	if opts.ScanInterval <= 0 {
		return nil
	}

	return []*river.PeriodicJob{
		river.NewPeriodicJob(
			river.PeriodicInterval(opts.ScanInterval),
			func() (river.JobArgs, *river.InsertOpts) {
				return NewScanArgs(account, opts.AutoUnfollow, opts.MaxAttempts), nil
			},
			&river.PeriodicJobOpts{RunOnStart: true},
		),
	}
}

// Start creates and starts a River client working scan jobs for engine.
func Start(ctx context.Context, dbPool *pgxpool.Pool, engine Engine, opts Options) (*river.Client[pgx.Tx], error) {
	workers := river.NewWorkers()
	river.AddWorker(workers, NewScanWorker(engine, opts.JobTimeout))

	riverClient, err := river.NewClient(riverpgxv5.New(dbPool), &river.Config{
		Queues: map[string]river.QueueConfig{
			river.QueueDefault: {MaxWorkers: max(1, opts.MaxWorkers)},
		},
		Workers:      workers,
		PeriodicJobs: PeriodicJobs(string(engine.Account()), opts),
		Logger:       logger.Slog(ctx),
	})
	if err != nil {
		return nil, fmt.Errorf("could not create river queue client: %w", err)
	}

	if err := riverClient.Start(ctx); err != nil {
		return nil, fmt.Errorf("could not start river queue client: %w", err)
	}

	return riverClient, nil
}

// Queue inserts one-off scan jobs for a single account.
type Queue struct {
	client  *river.Client[pgx.Tx]
	account string
	opts    Options
}

// NewQueue returns a Queue inserting through client.
func NewQueue(client *river.Client[pgx.Tx], account string, opts Options) *Queue {
	return &Queue{client: client, account: account, opts: opts}
}

// EnqueueScan inserts a scan job and returns its ID. A scan already pending
// for the account absorbs the insert and its ID is returned instead.
func (q *Queue) EnqueueScan(ctx context.Context, autoUnfollow bool) (int64, error) {
	res, err := q.client.Insert(ctx, NewScanArgs(q.account, autoUnfollow, q.opts.MaxAttempts), nil)
	if err != nil {
		return 0, fmt.Errorf("could not enqueue scan job: %w", err)
	}
	if res.UniqueSkippedAsDuplicate {
		logger.Info(ctx, "scan job already pending", zap.Int64("jobID", res.Job.ID))
	}

	return res.Job.ID, nil
}
