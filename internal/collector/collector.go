// Package collector paginates the followers and following listings of an
// account and extracts usernames from every page.
package collector

import (
	"bytes"
	"context"
	"fmt"
	"time"
	"unfollower/internal/config"
	"unfollower/pkg/dom"
	"unfollower/pkg/domain"
	"unfollower/pkg/letterboxd"
	"unfollower/pkg/logger"
	"unfollower/pkg/metrics"

	"github.com/sethvargo/go-retry"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Extractor pulls usernames out of one parsed listing page. The results of
// all extractors are unioned.
type Extractor func(doc *dom.Document) []domain.Username

// DefaultExtractors are tried on every page: person anchors first, then
// follow-button wrappers.
func DefaultExtractors() []Extractor {
	return []Extractor{letterboxd.PersonAnchors, letterboxd.FollowWrappers}
}

// Options configure pagination and the retry policy.
type Options struct {
	// Attempts is the total number of tries per page.
	Attempts int
	// BackoffStep is multiplied by the attempt number to get the wait before
	// the next try.
	BackoffStep time.Duration
	// PagePause is waited between two pages of the same listing.
	PagePause time.Duration
	// MaxPages stops pagination after that many pages. Zero means no limit.
	MaxPages int
}

// NewOptions constructs an Options value from the provided application config.
func NewOptions(cfg *config.Config) Options {
	return Options{
		Attempts:    cfg.Collector.Attempts,
		BackoffStep: cfg.Collector.BackoffStep,
		PagePause:   cfg.Collector.PagePause,
		MaxPages:    cfg.Collector.MaxPages,
	}
}

// DefaultOptions mirrors the configuration defaults.
func DefaultOptions() Options {
	return Options{Attempts: 3, BackoffStep: 400 * time.Millisecond, PagePause: 60 * time.Millisecond}
}

// Backoff returns the wait policy between tries of one page: BackoffStep
// times the number of the failed attempt, and no wait after the last one.
func (o Options) Backoff() retry.Backoff {
	attempts := max(o.Attempts, 1)
	failed := 0

	return retry.WithMaxRetries(uint64(attempts-1), retry.BackoffFunc(func() (time.Duration, bool) { //nolint: gosec
		failed++

		return o.BackoffStep * time.Duration(failed), false
	}))
}

// Option customizes a collector.
type Option func(c *collector)

// WithExtractors appends strategies after the defaults.
func WithExtractors(extractors ...Extractor) Option {
	return func(c *collector) {
		c.extractors = append(c.extractors, extractors...)
	}
}

// WithTimeout sets the source of the per-fetch timeout. It is read before
// every fetch so option changes apply to the next page.
func WithTimeout(timeout func() time.Duration) Option {
	return func(c *collector) {
		c.timeout = timeout
	}
}

type collector struct {
	client     letterboxd.Client
	options    Options
	extractors []Extractor
	timeout    func() time.Duration

	tracer   trace.Tracer
	pages    metric.Int64Counter
	failures metric.Int64Counter
	latency  metric.Float64Histogram
}

// New creates a Collector fetching pages through client.
func New(client letterboxd.Client, options Options, opts ...Option) Collector {
	if options.Attempts < 1 {
		options.Attempts = 1
	}
	m := metrics.Meter("unfollower/collector")
	c := &collector{
		client:     client,
		options:    options,
		extractors: DefaultExtractors(),
		timeout:    domain.DefaultOptions().ScanTimeout,
		tracer:     otel.Tracer("unfollower/collector"),
		pages:      metrics.Counter(m, "collector_pages_total", "Listing pages fetched"),
		failures:   metrics.Counter(m, "collector_page_failures_total", "Listing page fetch attempts that failed"),
		latency:    metrics.Histogram(m, "collector_page_duration_seconds", "Listing page fetch latency"),
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *collector) Collect(ctx context.Context, user domain.Username, rel domain.Relation) ([]domain.Username, error) {
	ctx, span := c.tracer.Start(ctx, "collector.Collect", trace.WithAttributes(
		attribute.String("user", string(user)),
		attribute.String("relation", string(rel))))
	defer span.End()

	ctx = logger.WithFields(ctx, zap.String("relation", string(rel)))
	seen := domain.NewSet()

	for page := 1; c.options.MaxPages == 0 || page <= c.options.MaxPages; page++ {
		if page > 1 && c.options.PagePause > 0 {
			if err := sleep(ctx, c.options.PagePause); err != nil {
				return nil, err
			}
		}

		found, err := c.page(ctx, user, rel, page)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "page fetch failed")

			return nil, fmt.Errorf("could not collect %s page %d: %w", rel, page, err)
		}
		if len(found) == 0 {
			logger.Debug(ctx, "listing ended", zap.Int("pages", page-1), zap.Int("users", len(seen)))

			break
		}
		for _, u := range found {
			seen.Add(u)
		}
	}

	span.SetAttributes(attribute.Int("users", len(seen)))

	return seen.Sorted(), nil
}

// page fetches and extracts one page under the retry policy.
func (c *collector) page(ctx context.Context, user domain.Username, rel domain.Relation, page int) ([]domain.Username, error) {
	attrs := metric.WithAttributes(attribute.String("relation", string(rel)))
	attempt := 0

	var found []domain.Username
	err := retry.Do(ctx, c.options.Backoff(), func(ctx context.Context) error {
		attempt++
		body, err := c.fetch(ctx, user, rel, page)
		if err != nil {
			c.failures.Add(ctx, 1, attrs)
			logger.Warn(ctx, "listing page fetch failed",
				zap.Int("page", page),
				zap.Int("attempt", attempt),
				zap.Error(err))

			return retry.RetryableError(err)
		}
		c.pages.Add(ctx, 1, attrs)

		doc, err := dom.Parse(bytes.NewReader(body))
		if err != nil {
			return fmt.Errorf("could not parse page: %w", err)
		}
		found = c.extract(doc)

		return nil
	})

	return found, err
}

func (c *collector) fetch(ctx context.Context, user domain.Username, rel domain.Relation, page int) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout())
	defer cancel()

	start := time.Now()
	defer func() {
		c.latency.Record(ctx, time.Since(start).Seconds(),
			metric.WithAttributes(attribute.String("relation", string(rel))))
	}()

	return c.client.ListPage(ctx, user, rel, page)
}

func (c *collector) extract(doc *dom.Document) []domain.Username {
	var out []domain.Username
	for _, ex := range c.extractors {
		out = append(out, ex(doc)...)
	}

	return out
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
