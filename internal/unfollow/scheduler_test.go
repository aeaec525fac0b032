package unfollow_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
	"unfollower/internal/state"
	"unfollower/internal/unfollow"
	mockunfollow "unfollower/internal/unfollow/mock"
	"unfollower/pkg/domain"
	"unfollower/pkg/serrors"
	"unfollower/pkg/storage/memory"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/mock/gomock"
	"pgregory.net/rapid"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func fast(concurrency int) unfollow.Options {
	return unfollow.Options{Concurrency: concurrency, TargetTimeout: time.Second, IdlePause: time.Millisecond}
}

// scriptedAction succeeds for every user not in fail and counts concurrent calls.
type scriptedAction struct {
	fail    domain.Set
	missing domain.Set

	mu       sync.Mutex
	calls    map[domain.Username]int
	inFlight atomic.Int32
	peak     atomic.Int32
}

func (a *scriptedAction) Unfollow(_ context.Context, u domain.Username) (bool, error) {
	n := a.inFlight.Add(1)
	defer a.inFlight.Add(-1)
	for {
		p := a.peak.Load()
		if n <= p || a.peak.CompareAndSwap(p, n) {
			break
		}
	}
	time.Sleep(2 * time.Millisecond)

	a.mu.Lock()
	if a.calls == nil {
		a.calls = map[domain.Username]int{}
	}
	a.calls[u]++
	a.mu.Unlock()

	if a.missing.Has(u) {
		return false, serrors.With(serrors.ErrNotFound, "no unfollow control")
	}

	return !a.fail.Has(u), nil
}

func TestRun_MixedOutcomes(t *testing.T) {
	ctx := context.Background()
	st, err := state.Load(ctx, memory.NewHub().Open(), "me")
	require.NoError(t, err)

	action := &scriptedAction{fail: domain.NewSet("u2"), missing: domain.NewSet()}
	var snapshots []domain.Progress
	res, err := unfollow.New(action, st, fast(2)).Run(ctx, []domain.Username{"u1", "u2", "u3"}, func(p domain.Progress) {
		snapshots = append(snapshots, p)
	})
	require.NoError(t, err)

	require.Equal(t, domain.UnfollowResult{Succeeded: 2, Failed: 1}, res)
	require.Equal(t, []domain.Username{"u1", "u3"}, st.Unfollowed().Sorted())
	require.LessOrEqual(t, action.peak.Load(), int32(2))

	require.Len(t, snapshots, 3)
	for i, p := range snapshots {
		require.Equal(t, i+1, p.Done)
		require.Equal(t, 3, p.Total)
		require.Equal(t, p.Done, p.Succeeded+p.Failed)
	}
}

func TestRun_MissingControlIsFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	action := mockunfollow.NewMockAction(ctrl)
	recorder := mockunfollow.NewMockRecorder(ctrl)

	action.EXPECT().Unfollow(gomock.Any(), domain.Username("ghost")).
		Return(false, serrors.With(serrors.ErrNotFound, "no unfollow control"))

	res, err := unfollow.New(action, recorder, fast(1)).Run(context.Background(), []domain.Username{"ghost"}, nil)
	require.NoError(t, err)
	require.Equal(t, domain.UnfollowResult{Failed: 1}, res)
}

func TestRun_PersistErrorIsFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	action := mockunfollow.NewMockAction(ctrl)
	recorder := mockunfollow.NewMockRecorder(ctrl)

	action.EXPECT().Unfollow(gomock.Any(), gomock.Any()).Return(true, nil).Times(2)
	recorder.EXPECT().MarkUnfollowed(gomock.Any(), domain.Username("a")).Return(nil)
	recorder.EXPECT().MarkUnfollowed(gomock.Any(), domain.Username("b")).Return(errors.New("disk full"))

	res, err := unfollow.New(action, recorder, fast(1)).Run(context.Background(), []domain.Username{"a", "b"}, nil)
	require.NoError(t, err)
	require.Equal(t, domain.UnfollowResult{Succeeded: 1, Failed: 1}, res)
}

func TestRun_DedupsTargets(t *testing.T) {
	ctrl := gomock.NewController(t)
	action := mockunfollow.NewMockAction(ctrl)
	recorder := mockunfollow.NewMockRecorder(ctrl)

	action.EXPECT().Unfollow(gomock.Any(), domain.Username("a")).Return(true, nil).Times(1)
	recorder.EXPECT().MarkUnfollowed(gomock.Any(), domain.Username("a")).Return(nil).Times(1)

	res, err := unfollow.New(action, recorder, fast(6)).Run(context.Background(), []domain.Username{"a", "a", "", "a"}, nil)
	require.NoError(t, err)
	require.Equal(t, domain.UnfollowResult{Succeeded: 1}, res)
}

func TestRun_TargetTimeout(t *testing.T) {
	ctrl := gomock.NewController(t)
	action := mockunfollow.NewMockAction(ctrl)
	recorder := mockunfollow.NewMockRecorder(ctrl)

	action.EXPECT().Unfollow(gomock.Any(), domain.Username("slow")).
		DoAndReturn(func(ctx context.Context, _ domain.Username) (bool, error) {
			<-ctx.Done()

			return false, ctx.Err()
		})

	opts := fast(1)
	opts.TargetTimeout = 5 * time.Millisecond
	res, err := unfollow.New(action, recorder, opts).Run(context.Background(), []domain.Username{"slow"}, nil)
	require.NoError(t, err)
	require.Equal(t, domain.UnfollowResult{Failed: 1}, res)
}

func TestRun_CancelStopsTakingTargets(t *testing.T) {
	ctrl := gomock.NewController(t)
	action := mockunfollow.NewMockAction(ctrl)
	recorder := mockunfollow.NewMockRecorder(ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	action.EXPECT().Unfollow(gomock.Any(), domain.Username("a")).
		DoAndReturn(func(context.Context, domain.Username) (bool, error) {
			cancel()

			return true, nil
		})
	recorder.EXPECT().MarkUnfollowed(gomock.Any(), domain.Username("a")).Return(nil)

	res, err := unfollow.New(action, recorder, fast(1)).Run(ctx, []domain.Username{"a", "b", "c"}, nil)
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, domain.UnfollowResult{Succeeded: 1}, res)
}

func TestRun_EmptyBatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	res, err := unfollow.New(mockunfollow.NewMockAction(ctrl), mockunfollow.NewMockRecorder(ctrl), fast(3)).
		Run(context.Background(), nil, nil)
	require.NoError(t, err)
	require.Zero(t, res)
}

func TestRun_MembershipProperty(t *testing.T) {
	names := []domain.Username{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"}

	rapid.Check(t, func(rt *rapid.T) {
		targets := rapid.SliceOf(rapid.SampledFrom(names)).Draw(rt, "targets")
		fail := domain.NewSet(rapid.SliceOf(rapid.SampledFrom(names)).Draw(rt, "fail")...)
		concurrency := rapid.IntRange(-2, 10).Draw(rt, "concurrency")

		ctx := context.Background()
		st, err := state.Load(ctx, memory.NewHub().Open(), "me")
		if err != nil {
			rt.Fatal(err)
		}
		action := &scriptedAction{fail: fail, missing: domain.NewSet()}
		opts := unfollow.Options{Concurrency: concurrency}
		res, err := unfollow.New(action, st, opts).Run(ctx, targets, nil)
		if err != nil {
			rt.Fatal(err)
		}

		distinct := domain.NewSet(targets...)
		if res.Succeeded+res.Failed != len(distinct) {
			rt.Fatalf("processed %d of %d", res.Succeeded+res.Failed, len(distinct))
		}
		for u, n := range action.calls {
			if n != 1 {
				rt.Fatalf("%s processed %d times", u, n)
			}
		}
		for u := range distinct {
			if st.IsUnfollowed(u) == fail.Has(u) {
				rt.Fatalf("%s membership does not match its outcome", u)
			}
		}
		if peak := int(action.peak.Load()); peak > domain.ClampConcurrency(concurrency) {
			rt.Fatalf("peak concurrency %d", peak)
		}
	})
}
