package reconcile_test

import (
	"testing"
	"time"
	"unfollower/internal/reconcile"
	"unfollower/pkg/domain"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func users(s ...string) []domain.Username {
	out := make([]domain.Username, 0, len(s))
	for _, u := range s {
		out = append(out, domain.Username(u))
	}

	return out
}

func TestPartition(t *testing.T) {
	tests := []struct {
		name           string
		followers      []domain.Username
		following      []domain.Username
		dontFollowBack []domain.Username
		fans           []domain.Username
	}{
		{
			name:           "mixed",
			followers:      users("a", "b", "c"),
			following:      users("b", "c", "d", "e"),
			dontFollowBack: users("d", "e"),
			fans:           users("a"),
		},
		{
			name:           "empty",
			dontFollowBack: users(),
			fans:           users(),
		},
		{
			name:           "mutual",
			followers:      users("x", "y"),
			following:      users("y", "x"),
			dontFollowBack: users(),
			fans:           users(),
		},
		{
			name:           "duplicates collapse",
			following:      users("z", "z", "a"),
			dontFollowBack: users("a", "z"),
			fans:           users(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dfb, fans := reconcile.Partition(tt.followers, tt.following)
			require.Equal(t, tt.dontFollowBack, dfb)
			require.Equal(t, tt.fans, fans)
		})
	}
}

func TestRun(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	res := reconcile.Run(users("a", "b", "c"), users("b", "c", "d", "e"), domain.NewSet("e"), now)

	require.Equal(t, users("d", "e"), res.DontFollowBack)
	require.Equal(t, users("d", "e"), res.CandidatesToUnfollow)
	require.Equal(t, users("d"), res.FilteredCandidates)
	require.Equal(t, users("a"), res.Fans)
	require.Equal(t, now, res.ScannedAt)
}

func TestRun_AllExcepted(t *testing.T) {
	res := reconcile.Run(nil, users("p", "q"), domain.NewSet("p", "q"), time.Now())
	require.Equal(t, users("p", "q"), res.CandidatesToUnfollow)
	require.Empty(t, res.FilteredCandidates)
}

func TestRun_Properties(t *testing.T) {
	name := rapid.SampledFrom(users("a", "b", "c", "d", "e", "f", "g", "h"))

	rapid.Check(t, func(t *rapid.T) {
		followers := rapid.SliceOf(name).Draw(t, "followers")
		following := rapid.SliceOf(name).Draw(t, "following")
		exceptions := domain.NewSet(rapid.SliceOf(name).Draw(t, "exceptions")...)

		res := reconcile.Run(followers, following, exceptions, time.Time{})
		fr := domain.NewSet(followers...)
		fg := domain.NewSet(following...)

		for _, u := range res.DontFollowBack {
			if !fg.Has(u) || fr.Has(u) {
				t.Fatalf("%s is not followed-without-follow-back", u)
			}
		}
		for _, u := range res.Fans {
			if !fr.Has(u) || fg.Has(u) {
				t.Fatalf("%s is not a fan", u)
			}
		}
		for _, u := range res.FilteredCandidates {
			if exceptions.Has(u) {
				t.Fatalf("excepted %s survived filtering", u)
			}
		}
		// every followed user is either mutual, excepted or a candidate
		filtered := domain.NewSet(res.FilteredCandidates...)
		for u := range fg {
			if !fr.Has(u) && !exceptions.Has(u) && !filtered.Has(u) {
				t.Fatalf("%s was lost", u)
			}
		}
		// adding an exception can only shrink the filtered list
		more := exceptions.Clone()
		more.Add(name.Draw(t, "extra"))
		if len(reconcile.Filter(res.CandidatesToUnfollow, more)) > len(res.FilteredCandidates) {
			t.Fatalf("filtered list grew after adding an exception")
		}
	})
}
