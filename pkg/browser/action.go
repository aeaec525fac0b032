package browser

import (
	"context"
	"fmt"
	"time"
	"unfollower/pkg/domain"
	"unfollower/pkg/letterboxd"
	"unfollower/pkg/logger"
	"unfollower/pkg/serrors"

	"github.com/go-rod/rod/lib/proto"
	"go.uber.org/zap"
)

// Unfollower performs unfollows in isolated tabs, one per target.
type Unfollower struct {
	m          *Manager
	baseURL    string
	clickDelay func() time.Duration
}

// NewUnfollower creates an Unfollower. clickDelay is read before every
// check so option changes apply to the next target.
func NewUnfollower(m *Manager, baseURL string, clickDelay func() time.Duration) *Unfollower {
	return &Unfollower{m: m, baseURL: baseURL, clickDelay: clickDelay}
}

// Unfollow opens the profile, clicks the unfollow control, waits the click
// delay and reports whether the follow control appeared. The tab is closed
// on every path.
func (u *Unfollower) Unfollow(ctx context.Context, user domain.Username) (bool, error) {
	page, err := u.m.Open(ctx, letterboxd.ProfileURL(u.baseURL, user))
	if err != nil {
		return false, serrors.Wrap(serrors.ErrUnavailable, err, "could not open profile")
	}
	defer func() {
		if err := page.Close(); err != nil {
			logger.Debug(ctx, "could not close tab", zap.Error(err))
		}
	}()
	p := page.Context(ctx)

	has, el, err := p.Has(letterboxd.UnfollowControlSelector)
	if err != nil {
		return false, fmt.Errorf("could not query unfollow control: %w", err)
	}
	if !has {
		return false, serrors.With(serrors.ErrNotFound, "no unfollow control on %s's profile", user)
	}
	if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return false, fmt.Errorf("could not click unfollow control: %w", err)
	}

	t := time.NewTimer(u.clickDelay())
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case <-t.C:
	}

	ok, _, err := p.Has(letterboxd.FollowControlSelector)
	if err != nil {
		return false, fmt.Errorf("could not query follow control: %w", err)
	}

	return ok, nil
}
