package v1handler

import (
	"context"
	"net/http"
	"unfollower/internal/api/specs/v1specs"
	"unfollower/pkg/domain"
	"unfollower/pkg/logger"
	"unfollower/pkg/serrors"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

func DomainScanResultToV1Specs(in *domain.ScanResult) *v1specs.ScanResult {
	return &v1specs.ScanResult{
		Followers:            usersToV1Specs(in.Followers),
		Following:            usersToV1Specs(in.Following),
		Fans:                 usersToV1Specs(in.Fans),
		DontFollowBack:       usersToV1Specs(in.DontFollowBack),
		CandidatesToUnfollow: usersToV1Specs(in.CandidatesToUnfollow),
		FilteredCandidates:   usersToV1Specs(in.FilteredCandidates),
		ScannedAt:            in.ScannedAt,
	}
}

// RunScan scans the account and returns the result.
func (h *Handler) RunScan(ctx context.Context) (*v1specs.ScanResult, error) {
	res, err := h.deps.Engine.Scan(ctx)
	if err != nil {
		return nil, err //nolint: wrapcheck
	}

	return DomainScanResultToV1Specs(res), nil
}

// GetScan returns the latest scan result with the filtered candidates
// recomputed against the current exceptions.
func (h *Handler) GetScan(_ context.Context) (*v1specs.ScanResult, error) {
	res := h.deps.Engine.LastScan()
	if res == nil {
		return nil, serrors.With(serrors.ErrNotFound, "no scan results yet")
	}

	return DomainScanResultToV1Specs(res), nil
}

// EnqueueScan schedules a background scan. With autoUnfollow the job
// unfollows the filtered candidates when its scan succeeds.
func (h *Handler) EnqueueScan(ctx context.Context, params v1specs.EnqueueScanParams) (*v1specs.ScanJob, error) {
	if h.deps.Queue == nil {
		return nil, serrors.With(serrors.ErrBadRequest, "background scans are not configured")
	}

	id, err := h.deps.Queue.EnqueueScan(ctx, params.AutoUnfollow.Or(false))
	if err != nil {
		return nil, err //nolint: wrapcheck
	}

	return &v1specs.ScanJob{ID: id}, nil
}

// StreamEvent is one line of the unfollow stream. Exactly one field is set:
// a progress snapshot per processed target, then either the final result or
// the error that interrupted the batch.
type StreamEvent struct {
	Progress *domain.Progress       `json:"progress,omitempty"`
	Result   *domain.UnfollowResult `json:"result,omitempty"`
	Error    *v1specs.Error         `json:"error,omitempty"`
}

// Unfollow runs the unfollow batch and streams newline-delimited JSON events.
// A batch refused before it starts gets a regular error response.
func (h *Handler) Unfollow(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	rc := http.NewResponseController(w)
	enc := json.NewEncoder(w)

	started := false
	start := func() {
		if started {
			return
		}
		started = true
		w.Header().Set("Content-Type", "application/x-ndjson")
		w.Header().Set("Cache-Control", "no-cache")
		w.WriteHeader(http.StatusOK)
	}
	emit := func(ev StreamEvent) {
		if err := enc.Encode(ev); err != nil {
			logger.Debug(ctx, "could not write unfollow event", zap.Error(err))

			return
		}
		_ = rc.Flush()
	}

	res, err := h.deps.Engine.Unfollow(ctx, func(p domain.Progress) {
		start()
		emit(StreamEvent{Progress: &p})
	})
	if err != nil && !started {
		h.writeError(w, r, err)

		return
	}

	start()
	if err != nil {
		emit(StreamEvent{Error: &h.NewError(ctx, err).Response})

		return
	}
	emit(StreamEvent{Result: &res})
}
