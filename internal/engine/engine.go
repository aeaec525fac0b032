// Package engine orchestrates scans, unfollow batches and list editing for
// one account. Every surface (CLI, HTTP API, live view, background worker)
// goes through it.
package engine

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
	"time"
	"unfollower/internal/collector"
	"unfollower/internal/reconcile"
	"unfollower/internal/state"
	"unfollower/internal/unfollow"
	"unfollower/pkg/domain"
	"unfollower/pkg/logger"
	"unfollower/pkg/metrics"
	"unfollower/pkg/serrors"

	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Sizes are the badge counts of the two persisted lists.
type Sizes struct {
	Exceptions int `json:"exceptions"`
	Unfollowed int `json:"unfollowed"`
}

// Engine is the per-account orchestrator. It is safe for concurrent use;
// only one unfollow batch runs at a time.
type Engine struct {
	st        *state.State
	collector collector.Collector
	action    unfollow.Action
	options   unfollow.Options
	now       func() time.Time

	mu       sync.Mutex
	lastScan *domain.ScanResult
	running  atomic.Bool

	scanDuration metric.Float64Histogram
}

// Option customizes an Engine.
type Option func(e *Engine)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// New creates an Engine. options carries the batch timing; the worker count
// is read from the account's options at the start of every batch.
func New(st *state.State, c collector.Collector, action unfollow.Action, options unfollow.Options, opts ...Option) *Engine {
	m := metrics.Meter("unfollower/engine")
	e := &Engine{
		st:           st,
		collector:    c,
		action:       action,
		options:      options,
		now:          time.Now,
		scanDuration: metrics.Histogram(m, "engine_scan_duration_seconds", "Duration of full scans"),
	}
	for _, opt := range opts {
		opt(e)
	}

	return e
}

// State returns the engine's state object.
func (e *Engine) State() *state.State { return e.st }

// Account returns the logged-in account.
func (e *Engine) Account() domain.Username { return domain.Username(e.st.Account()) }

// Scan collects both listings concurrently and reconciles them. The previous
// result is discarded when the scan starts, so a failed scan leaves none.
func (e *Engine) Scan(ctx context.Context) (*domain.ScanResult, error) {
	ctx = logger.WithAccount(ctx, e.st.Account())
	e.mu.Lock()
	e.lastScan = nil
	e.mu.Unlock()

	start := e.now()
	var followers, following []domain.Username
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		followers, err = e.collector.Collect(gctx, e.Account(), domain.RelationFollowers)

		return err
	})
	g.Go(func() error {
		var err error
		following, err = e.collector.Collect(gctx, e.Account(), domain.RelationFollowing)

		return err
	})
	if err := g.Wait(); err != nil {
		logger.Error(ctx, "scan failed", zap.Error(err))

		return nil, fmt.Errorf("could not scan: %w", err)
	}

	res := reconcile.Run(followers, following, e.st.Exceptions(), e.now())
	e.scanDuration.Record(ctx, e.now().Sub(start).Seconds())
	logger.Info(ctx, "scan finished",
		zap.Int("followers", len(res.Followers)),
		zap.Int("following", len(res.Following)),
		zap.Int("fans", len(res.Fans)),
		zap.Int("dontFollowBack", len(res.DontFollowBack)),
		zap.Int("filtered", len(res.FilteredCandidates)))

	e.mu.Lock()
	e.lastScan = res
	e.mu.Unlock()

	return clone(res), nil
}

// LastScan returns the latest scan with its filtered list recomputed against
// the current exceptions, or nil.
func (e *Engine) LastScan() *domain.ScanResult {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.lastScan == nil {
		return nil
	}
	res := clone(e.lastScan)
	res.FilteredCandidates = reconcile.Filter(res.FilteredCandidates, e.st.Exceptions())

	return res
}

// Unfollow processes the filtered candidates of the latest scan. It is
// refused until a scan produced a non-empty filtered list. Exceptions added
// since the scan are honored. Succeeded targets leave the scan's filtered
// list.
func (e *Engine) Unfollow(ctx context.Context, onProgress unfollow.ProgressFunc) (domain.UnfollowResult, error) {
	ctx = logger.WithAccount(ctx, e.st.Account())
	scan := e.LastScan()
	if scan == nil {
		return domain.UnfollowResult{}, serrors.With(serrors.ErrBadRequest, "no scan results; run a scan first")
	}
	if len(scan.FilteredCandidates) == 0 {
		return domain.UnfollowResult{}, serrors.With(serrors.ErrBadRequest, "nothing to unfollow")
	}
	if !e.running.CompareAndSwap(false, true) {
		return domain.UnfollowResult{}, serrors.With(serrors.ErrConflict, "an unfollow batch is already running")
	}
	defer e.running.Store(false)

	rec := &recorder{st: e.st, done: domain.NewSet()}
	opts := e.options
	opts.Concurrency = e.st.Options().Concurrency
	res, err := unfollow.New(e.action, rec, opts).Run(ctx, scan.FilteredCandidates, onProgress)

	e.mu.Lock()
	if e.lastScan != nil {
		e.lastScan.FilteredCandidates = slices.DeleteFunc(e.lastScan.FilteredCandidates, func(u domain.Username) bool {
			return rec.has(u)
		})
	}
	e.mu.Unlock()

	if err != nil {
		return res, fmt.Errorf("unfollow batch interrupted: %w", err)
	}

	return res, nil
}

// Running reports whether an unfollow batch is in progress.
func (e *Engine) Running() bool { return e.running.Load() }

// Sizes returns the badge counts.
func (e *Engine) Sizes() Sizes {
	ex, un := e.st.Sizes()

	return Sizes{Exceptions: ex, Unfollowed: un}
}

// recorder persists successes and remembers them for the engine.
type recorder struct {
	st   *state.State
	mu   sync.Mutex
	done domain.Set
}

func (r *recorder) MarkUnfollowed(ctx context.Context, u domain.Username) error {
	if err := r.st.MarkUnfollowed(ctx, u); err != nil {
		return err
	}
	r.mu.Lock()
	r.done.Add(u)
	r.mu.Unlock()

	return nil
}

func (r *recorder) has(u domain.Username) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.done.Has(u)
}

func clone(r *domain.ScanResult) *domain.ScanResult {
	out := *r
	out.Followers = slices.Clone(r.Followers)
	out.Following = slices.Clone(r.Following)
	out.Fans = slices.Clone(r.Fans)
	out.DontFollowBack = slices.Clone(r.DontFollowBack)
	out.CandidatesToUnfollow = slices.Clone(r.CandidatesToUnfollow)
	out.FilteredCandidates = slices.Clone(r.FilteredCandidates)

	return &out
}
