// Package reconcile computes the relationship partitions of one scan.
package reconcile

import (
	"time"
	"unfollower/pkg/domain"
)

// Partition returns who the owner follows without being followed back
// (following minus followers) and who follows the owner without being
// followed back (followers minus following). Both lists are sorted and free
// of duplicates.
func Partition(followers, following []domain.Username) (dontFollowBack, fans []domain.Username) {
	fr := domain.NewSet(followers...)
	fg := domain.NewSet(following...)

	return difference(fg, fr), difference(fr, fg)
}

// Filter removes exceptions from candidates, preserving order.
func Filter(candidates []domain.Username, exceptions domain.Set) []domain.Username {
	out := make([]domain.Username, 0, len(candidates))
	for _, u := range candidates {
		if !exceptions.Has(u) {
			out = append(out, u)
		}
	}

	return out
}

// Run builds the full scan result from the two collected lists.
func Run(followers, following []domain.Username, exceptions domain.Set, now time.Time) *domain.ScanResult {
	dontFollowBack, fans := Partition(followers, following)

	return &domain.ScanResult{
		Followers:            domain.NewSet(followers...).Sorted(),
		Following:            domain.NewSet(following...).Sorted(),
		Fans:                 fans,
		DontFollowBack:       dontFollowBack,
		CandidatesToUnfollow: dontFollowBack,
		FilteredCandidates:   Filter(dontFollowBack, exceptions),
		ScannedAt:            now,
	}
}

func difference(a, b domain.Set) []domain.Username {
	out := make([]domain.Username, 0, len(a))
	for _, u := range a.Sorted() {
		if !b.Has(u) {
			out = append(out, u)
		}
	}

	return out
}
