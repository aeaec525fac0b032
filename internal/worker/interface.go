package worker

import (
	"context"
	"unfollower/internal/unfollow"
	"unfollower/pkg/domain"
)

// Engine is the part of the engine background jobs drive.
//
//go:generate mockgen -package mockworker -source=interface.go -destination=mock/mockworker.go *
type Engine interface {
	Account() domain.Username
	Scan(ctx context.Context) (*domain.ScanResult, error)
	Unfollow(ctx context.Context, onProgress unfollow.ProgressFunc) (domain.UnfollowResult, error)
}
