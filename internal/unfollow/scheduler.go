// Package unfollow runs the bounded-concurrency unfollow batch.
package unfollow

import (
	"context"
	"sync"
	"time"
	"unfollower/internal/config"
	"unfollower/pkg/domain"
	"unfollower/pkg/logger"
	"unfollower/pkg/metrics"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultTargetTimeout = time.Minute
	DefaultIdlePause     = 80 * time.Millisecond
)

// ProgressFunc receives a cumulative snapshot after every processed target.
// Calls are serialized.
type ProgressFunc func(p domain.Progress)

// Options configure a batch.
type Options struct {
	// Concurrency is the worker count, clamped to [1, 6].
	Concurrency int
	// TargetTimeout bounds the action for one target. Zero disables it.
	TargetTimeout time.Duration
	// IdlePause is waited by a worker after each target.
	IdlePause time.Duration
}

// NewOptions constructs an Options value from the provided application config
// and the account's concurrency setting.
func NewOptions(cfg *config.Config, concurrency int) Options {
	return Options{
		Concurrency:   concurrency,
		TargetTimeout: cfg.Unfollow.TargetTimeout,
		IdlePause:     cfg.Unfollow.IdlePause,
	}
}

// Scheduler drains a queue of targets with a fixed pool of workers.
type Scheduler struct {
	action   Action
	recorder Recorder
	options  Options

	tracer   trace.Tracer
	targets  metric.Int64Counter
	duration metric.Float64Histogram
}

// New creates a Scheduler.
func New(action Action, recorder Recorder, options Options) *Scheduler {
	options.Concurrency = domain.ClampConcurrency(options.Concurrency)
	m := metrics.Meter("unfollower/unfollow")

	return &Scheduler{
		action:   action,
		recorder: recorder,
		options:  options,
		tracer:   otel.Tracer("unfollower/unfollow"),
		targets:  metrics.Counter(m, "unfollow_targets_total", "Unfollow targets processed, by outcome"),
		duration: metrics.Histogram(m, "unfollow_target_duration_seconds", "Time spent on one unfollow target"),
	}
}

type tally struct {
	mu       sync.Mutex
	progress domain.Progress
	notify   ProgressFunc
}

func (t *tally) done(user domain.Username, ok bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.progress.Done++
	t.progress.Current = user
	if ok {
		t.progress.Succeeded++
	} else {
		t.progress.Failed++
	}
	if t.notify != nil {
		t.notify(t.progress)
	}
}

// Run processes every distinct target at most once and returns the counts.
// Per-target failures never stop the batch. When ctx is cancelled workers
// stop taking targets and Run returns the partial counts with ctx.Err().
func (s *Scheduler) Run(ctx context.Context, targets []domain.Username, onProgress ProgressFunc) (domain.UnfollowResult, error) {
	queue := enqueue(targets)
	t := &tally{progress: domain.Progress{Total: len(queue)}, notify: onProgress}

	logger.Info(ctx, "unfollow batch started",
		zap.Int("targets", len(queue)),
		zap.Int("workers", s.options.Concurrency))

	var g errgroup.Group
	for w := 0; w < s.options.Concurrency; w++ {
		g.Go(func() error {
			for {
				if ctx.Err() != nil {
					return nil
				}
				user, ok := <-queue
				if !ok {
					return nil
				}
				t.done(user, s.process(ctx, user))
				if err := pause(ctx, s.options.IdlePause); err != nil {
					return nil
				}
			}
		})
	}
	_ = g.Wait()

	res := domain.UnfollowResult{Succeeded: t.progress.Succeeded, Failed: t.progress.Failed}
	logger.Info(ctx, "unfollow batch finished",
		zap.Int("succeeded", res.Succeeded),
		zap.Int("failed", res.Failed))

	return res, ctx.Err()
}

// process runs one target and records it on success.
func (s *Scheduler) process(ctx context.Context, user domain.Username) bool {
	ctx, span := s.tracer.Start(ctx, "unfollow.target", trace.WithAttributes(attribute.String("user", string(user))))
	defer span.End()
	ctx = logger.WithFields(ctx, zap.String("target", string(user)))

	start := time.Now()
	ok := s.attempt(ctx, user)
	outcome := "failed"
	if ok {
		outcome = "succeeded"
	} else {
		span.SetStatus(codes.Error, "unfollow failed")
	}
	attrs := metric.WithAttributes(attribute.String("outcome", outcome))
	s.targets.Add(ctx, 1, attrs)
	s.duration.Record(ctx, time.Since(start).Seconds(), attrs)

	return ok
}

func (s *Scheduler) attempt(ctx context.Context, user domain.Username) bool {
	actx := ctx
	if s.options.TargetTimeout > 0 {
		var cancel context.CancelFunc
		actx, cancel = context.WithTimeout(ctx, s.options.TargetTimeout)
		defer cancel()
	}

	ok, err := s.action.Unfollow(actx, user)
	if err != nil {
		logger.Warn(ctx, "unfollow failed", zap.Error(err))

		return false
	}
	if !ok {
		logger.Warn(ctx, "follow control did not appear after unfollowing")

		return false
	}

	// the unfollow already happened on the site; do not lose it to a
	// cancellation that arrived meanwhile
	if err := s.recorder.MarkUnfollowed(context.WithoutCancel(ctx), user); err != nil {
		logger.Error(ctx, "could not persist unfollow", zap.Error(err))

		return false
	}
	logger.Debug(ctx, "unfollowed")

	return true
}

// enqueue builds the FIFO queue, dropping repeats and empty names.
func enqueue(targets []domain.Username) chan domain.Username {
	seen := domain.NewSet()
	ordered := make([]domain.Username, 0, len(targets))
	for _, u := range targets {
		if u == "" || seen.Has(u) {
			continue
		}
		seen.Add(u)
		ordered = append(ordered, u)
	}

	queue := make(chan domain.Username, len(ordered))
	for _, u := range ordered {
		queue <- u
	}
	close(queue)

	return queue
}

func pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
