package unfollow

import (
	"context"
	"unfollower/pkg/domain"
)

//go:generate mockgen -package mockunfollow -source=interface.go -destination=mock/mockunfollow.go *

// Action performs one unfollow in an isolated execution context.
type Action interface {
	// Unfollow reports true when the follow control is visible after the
	// unfollow control was clicked. A missing unfollow control is reported as
	// false with a serrors.ErrNotFound error.
	Unfollow(ctx context.Context, user domain.Username) (bool, error)
}

// Recorder persists a successful unfollow.
type Recorder interface {
	MarkUnfollowed(ctx context.Context, user domain.Username) error
}
