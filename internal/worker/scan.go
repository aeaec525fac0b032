package worker

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unfollower/pkg/domain"
	"unfollower/pkg/logger"
	"unfollower/pkg/serrors"

	"github.com/riverqueue/river"
	"go.uber.org/zap"
)

// ScanWorker is a River worker that scans the engine's account and, when the
// job asks for it, unfollows the filtered candidates right after.
//
// Error handling: a job for another account is canceled. Transient scan
// failures (timeouts, an unavailable site) are returned so River retries
// them; any other scan failure cancels the job. An unfollow batch that is
// refused because another one is running, or because nothing is left to
// unfollow, is not an error.
type ScanWorker struct {
	river.WorkerDefaults[ScanArgs]

	engine  Engine
	timeout time.Duration
}

// NewScanWorker constructs a ScanWorker. A non-positive timeout lets a job run
// without a deadline.
func NewScanWorker(engine Engine, timeout time.Duration) *ScanWorker {
	if timeout <= 0 {
		timeout = -1
	}

	return &ScanWorker{engine: engine, timeout: timeout}
}

// Timeout overrides River's default job timeout; scans of large accounts take
// minutes.
func (w *ScanWorker) Timeout(*river.Job[ScanArgs]) time.Duration { return w.timeout }

// Work executes a single scan job.
func (w *ScanWorker) Work(ctx context.Context, job *river.Job[ScanArgs]) error {
	ctx = logger.WithFields(ctx, zap.Int64("jobID", job.ID), zap.Int("attempt", job.Attempt))
	ctx = logger.WithAccount(ctx, job.Args.Account)

	if account := domain.Normalize(job.Args.Account); account != w.engine.Account() {
		return river.JobCancel(serrors.With(serrors.ErrForbidden, //nolint: wrapcheck
			"job account %q does not match %q", account, w.engine.Account()))
	}

	res, err := w.engine.Scan(ctx)
	if err != nil {
		logger.Error(ctx, "error in scanning account", zap.Error(err))
		if !serrors.Transient(err) {
			return river.JobCancel(err) //nolint: wrapcheck
		}

		return fmt.Errorf("could not scan account: %w", err)
	}

	logger.Info(ctx, "account scanned successfully",
		zap.Int("followers", len(res.Followers)),
		zap.Int("following", len(res.Following)),
		zap.Int("candidates", len(res.FilteredCandidates)))

	if !job.Args.AutoUnfollow || len(res.FilteredCandidates) == 0 {
		return nil
	}

	out, err := w.engine.Unfollow(ctx, func(p domain.Progress) {
		logger.Debug(ctx, "unfollow progress",
			zap.Int("done", p.Done),
			zap.Int("total", p.Total),
			zap.Stringer("current", p.Current))
	})
	switch {
	case errors.Is(err, serrors.ErrConflict), errors.Is(err, serrors.ErrBadRequest):
		logger.Info(ctx, "skipping unfollow batch", zap.Error(err))

		return nil
	case err != nil:
		logger.Error(ctx, "error in unfollow batch", zap.Error(err))

		return fmt.Errorf("could not unfollow candidates: %w", err)
	}

	logger.Info(ctx, "unfollow batch finished",
		zap.Int("succeeded", out.Succeeded),
		zap.Int("failed", out.Failed))

	return nil
}
