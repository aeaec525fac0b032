package domain

import "time"

const (
	// MinConcurrency and MaxConcurrency bound the unfollow worker count.
	MinConcurrency = 1
	MaxConcurrency = 6

	DefaultConcurrency   = 3
	DefaultScanTimeoutMs = 12000
	DefaultClickDelayMs  = 350
)

// Options are the per-account tunables persisted next to the membership sets.
type Options struct {
	// BlockReFollow enables the follow guard.
	BlockReFollow bool `json:"blockReFollow"`
	// Concurrency is the number of unfollow workers, clamped to [1, 6].
	Concurrency int `json:"concurrency"`
	// ScanTimeoutMs is the hard timeout of a single listing page fetch.
	ScanTimeoutMs int `json:"scanTimeoutMs"`
	// ClickDelayMs is how long to wait after clicking the unfollow control
	// before checking the outcome.
	ClickDelayMs int `json:"clickDelayMs"`
}

// DefaultOptions returns the options used when nothing is persisted yet.
func DefaultOptions() Options {
	return Options{
		BlockReFollow: true,
		Concurrency:   DefaultConcurrency,
		ScanTimeoutMs: DefaultScanTimeoutMs,
		ClickDelayMs:  DefaultClickDelayMs,
	}
}

// Normalize clamps out of range values. Non-positive timings fall back to
// their defaults.
func (o Options) Normalize() Options {
	o.Concurrency = ClampConcurrency(o.Concurrency)
	if o.ScanTimeoutMs <= 0 {
		o.ScanTimeoutMs = DefaultScanTimeoutMs
	}
	if o.ClickDelayMs < 0 {
		o.ClickDelayMs = DefaultClickDelayMs
	}

	return o
}

// ScanTimeout is ScanTimeoutMs as a duration.
func (o Options) ScanTimeout() time.Duration {
	return time.Duration(o.ScanTimeoutMs) * time.Millisecond
}

// ClickDelay is ClickDelayMs as a duration.
func (o Options) ClickDelay() time.Duration {
	return time.Duration(o.ClickDelayMs) * time.Millisecond
}

// ClampConcurrency returns max(1, min(n, 6)).
func ClampConcurrency(n int) int {
	return max(MinConcurrency, min(n, MaxConcurrency))
}
