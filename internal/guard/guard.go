// Package guard keeps every follow control of a view in line with the
// unfollowed set and vetoes clicks on blocked ones.
package guard

import (
	"context"
	"errors"
	"fmt"
	"unfollower/pkg/domain"
	"unfollower/pkg/logger"
	"unfollower/pkg/metrics"

	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// MaxDepth is how many levels, the click target included, Intercept
// inspects when looking for a follow control.
const MaxDepth = 4

// Source supplies the guard's inputs. *state.State implements it.
type Source interface {
	Options() domain.Options
	Unfollowed() domain.Set
}

// Syncer is implemented by views that enforce the guard on their own, like a
// live browser page. SyncGuard runs before every pass.
type Syncer interface {
	SyncGuard(ctx context.Context, enabled bool, blocked []domain.Username) error
}

// Guard reconciles views against a Source.
type Guard struct {
	src     Source
	blocked metric.Int64Counter
}

// New creates a Guard reading from src.
func New(src Source) *Guard {
	m := metrics.Meter("unfollower/guard")

	return &Guard{
		src:     src,
		blocked: metrics.Counter(m, "guard_blocked_clicks_total", "Follow clicks vetoed by the guard"),
	}
}

// Enabled reports whether blocking is switched on.
func (g *Guard) Enabled() bool {
	return g.src.Options().BlockReFollow
}

// ApplyAll marks every follow control of view blocked when its account is
// in the unfollowed set and unblocked otherwise. It is idempotent. When the
// guard is disabled it changes nothing, so controls blocked earlier stay
// blocked until the next enabled pass.
func (g *Guard) ApplyAll(ctx context.Context, view domain.View) error {
	enabled := g.Enabled()
	unfollowed := g.src.Unfollowed()

	if s, ok := view.(Syncer); ok {
		if err := s.SyncGuard(ctx, enabled, unfollowed.Sorted()); err != nil {
			return fmt.Errorf("could not sync guard: %w", err)
		}
	}
	if !enabled {
		return nil
	}

	var errs []error
	if owner, ok := view.Owner(); ok {
		ctl, err := view.OwnerControl()
		switch {
		case err != nil:
			errs = append(errs, fmt.Errorf("could not find owner control: %w", err))
		case ctl != nil:
			if err := ctl.SetBlocked(unfollowed.Has(owner)); err != nil {
				errs = append(errs, err)
			}
		}
	}

	rows, err := view.RowControls()
	if err != nil {
		errs = append(errs, fmt.Errorf("could not list row controls: %w", err))
	}
	for _, ctl := range rows {
		u, ok := ctl.Username()
		if !ok {
			continue
		}
		if err := ctl.SetBlocked(unfollowed.Has(u)); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		logger.Warn(ctx, "guard pass incomplete", zap.Errors("errors", errs))
	}

	return errors.Join(errs...)
}

// Intercept inspects a click before the page handles it. When it targets a
// follow control for an unfollowed account the click is cancelled, the
// control is marked blocked and true is returned. Anything else is left
// untouched.
func (g *Guard) Intercept(ctx context.Context, view domain.View, click domain.Click) bool {
	if !g.Enabled() {
		return false
	}
	ctl := click.FollowControl(MaxDepth)
	if ctl == nil {
		return false
	}

	user, ok := ctl.Username()
	if !ok {
		if user, ok = view.Owner(); !ok {
			return false
		}
	}
	if !g.src.Unfollowed().Has(user) {
		return false
	}

	click.PreventDefault()
	click.StopPropagation()
	if err := ctl.SetBlocked(true); err != nil {
		logger.Warn(ctx, "could not mark control blocked", zap.String("user", string(user)), zap.Error(err))
	}
	g.blocked.Add(ctx, 1)
	logger.Info(ctx, "blocked re-follow", zap.String("user", string(user)))

	return true
}
