package collector

import (
	"context"
	"unfollower/pkg/domain"
)

// Collector reads one of an account's social listings in full.
//
//go:generate mockgen -package mockcollector -source=interface.go -destination=mock/mockcollector.go *
type Collector interface {
	// Collect pages through the relation until an empty page and returns the
	// deduplicated, sorted usernames. Any page that exhausts its retries fails
	// the whole collection.
	Collect(ctx context.Context, user domain.Username, rel domain.Relation) ([]domain.Username, error)
}
