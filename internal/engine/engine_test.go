package engine_test

import (
	"context"
	"errors"
	"testing"
	"time"
	mockcollector "unfollower/internal/collector/mock"
	"unfollower/internal/engine"
	"unfollower/internal/state"
	"unfollower/internal/unfollow"
	mockunfollow "unfollower/internal/unfollow/mock"
	"unfollower/pkg/domain"
	"unfollower/pkg/serrors"
	"unfollower/pkg/storage/memory"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func users(s ...string) []domain.Username {
	out := make([]domain.Username, 0, len(s))
	for _, u := range s {
		out = append(out, domain.Username(u))
	}

	return out
}

type fixture struct {
	st        *state.State
	collector *mockcollector.MockCollector
	action    *mockunfollow.MockAction
	engine    *engine.Engine
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	st, err := state.Load(context.Background(), memory.NewHub().Open(), "me")
	require.NoError(t, err)

	f := &fixture{
		st:        st,
		collector: mockcollector.NewMockCollector(ctrl),
		action:    mockunfollow.NewMockAction(ctrl),
	}
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	f.engine = engine.New(st, f.collector, f.action,
		unfollow.Options{IdlePause: time.Millisecond, TargetTimeout: time.Second},
		engine.WithClock(func() time.Time { return now }))

	return f
}

func (f *fixture) expectLists(followers, following []domain.Username) {
	f.collector.EXPECT().Collect(gomock.Any(), domain.Username("me"), domain.RelationFollowers).Return(followers, nil)
	f.collector.EXPECT().Collect(gomock.Any(), domain.Username("me"), domain.RelationFollowing).Return(following, nil)
}

func TestScan(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.st.AddExceptions(ctx, "d"))
	f.expectLists(users("a", "b", "c"), users("a", "b", "d", "e"))

	res, err := f.engine.Scan(ctx)
	require.NoError(t, err)
	require.Equal(t, users("d", "e"), res.DontFollowBack)
	require.Equal(t, users("c"), res.Fans)
	require.Equal(t, users("e"), res.FilteredCandidates)
	require.Equal(t, res, f.engine.LastScan())
}

func TestScan_FailureDiscardsPreviousResult(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.expectLists(users("a"), users("a", "b"))
	_, err := f.engine.Scan(ctx)
	require.NoError(t, err)
	require.NotNil(t, f.engine.LastScan())

	f.collector.EXPECT().Collect(gomock.Any(), gomock.Any(), domain.RelationFollowers).
		Return(nil, serrors.With(serrors.ErrUnavailable, "down"))
	f.collector.EXPECT().Collect(gomock.Any(), gomock.Any(), domain.RelationFollowing).
		DoAndReturn(func(ctx context.Context, _ domain.Username, _ domain.Relation) ([]domain.Username, error) {
			<-ctx.Done()

			return nil, ctx.Err()
		})

	_, err = f.engine.Scan(ctx)
	require.ErrorIs(t, err, serrors.ErrUnavailable)
	require.Nil(t, f.engine.LastScan())
	require.Empty(t, f.st.Unfollowed())
}

func TestUnfollow_RefusedWithoutCandidates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.engine.Unfollow(ctx, nil)
	require.ErrorIs(t, err, serrors.ErrBadRequest)

	require.NoError(t, f.st.AddExceptions(ctx, "b"))
	f.expectLists(users("a"), users("a", "b"))
	_, err = f.engine.Scan(ctx)
	require.NoError(t, err)

	_, err = f.engine.Unfollow(ctx, nil)
	require.ErrorIs(t, err, serrors.ErrBadRequest)
}

func TestUnfollow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.expectLists(users("a"), users("a", "x", "y", "z"))
	_, err := f.engine.Scan(ctx)
	require.NoError(t, err)

	// an exception added after the scan is still honored
	require.NoError(t, f.st.AddExceptions(ctx, "z"))

	f.action.EXPECT().Unfollow(gomock.Any(), domain.Username("x")).Return(true, nil)
	f.action.EXPECT().Unfollow(gomock.Any(), domain.Username("y")).Return(false, errors.New("tab crashed"))

	var last domain.Progress
	res, err := f.engine.Unfollow(ctx, func(p domain.Progress) { last = p })
	require.NoError(t, err)
	require.Equal(t, domain.UnfollowResult{Succeeded: 1, Failed: 1}, res)
	require.Equal(t, 2, last.Done)
	require.True(t, f.st.IsUnfollowed("x"))
	require.False(t, f.st.IsUnfollowed("y"))

	// the success leaves the candidate list, the failure stays for a retry
	require.Equal(t, users("y"), f.engine.LastScan().FilteredCandidates)
	require.False(t, f.engine.Running())
}

func TestLists(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.engine.AddException(ctx, "  ")
	require.ErrorIs(t, err, serrors.ErrNotFound)

	_, err = f.engine.AddException(ctx, "/Me/")
	require.ErrorIs(t, err, serrors.ErrConflict)
	_, err = f.engine.AddUnfollowed(ctx, "me")
	require.ErrorIs(t, err, serrors.ErrConflict)

	u, err := f.engine.AddException(ctx, "https://letterboxd.com/Bob/")
	require.NoError(t, err)
	require.Equal(t, domain.Username("bob"), u)
	_, err = f.engine.AddUnfollowed(ctx, "carol")
	require.NoError(t, err)
	require.Equal(t, engine.Sizes{Exceptions: 1, Unfollowed: 1}, f.engine.Sizes())

	_, err = f.engine.RemoveUnfollowed(ctx, "CAROL")
	require.NoError(t, err)
	_, err = f.engine.RemoveException(ctx, "bob")
	require.NoError(t, err)
	require.Equal(t, engine.Sizes{}, f.engine.Sizes())

	set, err := f.engine.EditExceptions(ctx, []string{"a", " B ", "me", ""})
	require.NoError(t, err)
	require.Equal(t, users("a", "b"), set.Sorted())
	require.Equal(t, users("a", "b"), f.st.Exceptions().Sorted())

	_, err = f.engine.EditUnfollowed(ctx, []string{"q"})
	require.NoError(t, err)
	require.NoError(t, f.engine.ClearUnfollowed(ctx))
	require.Empty(t, f.st.Unfollowed())

	opts, err := f.engine.SetGuard(ctx, false)
	require.NoError(t, err)
	require.False(t, opts.BlockReFollow)

	open, err := f.engine.ToggleUI(ctx)
	require.NoError(t, err)
	require.True(t, open)
}

func TestExceptionMonotonicity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.expectLists(users(), users("a", "b", "c"))
	_, err := f.engine.Scan(ctx)
	require.NoError(t, err)

	before := f.engine.LastScan().FilteredCandidates
	_, err = f.engine.AddException(ctx, "b")
	require.NoError(t, err)
	after := f.engine.LastScan().FilteredCandidates

	require.Equal(t, users("a", "b", "c"), before)
	require.Equal(t, users("a", "c"), after)
}
