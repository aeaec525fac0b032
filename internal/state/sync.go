package state

import (
	"context"
	"unfollower/pkg/logger"
	"unfollower/pkg/storage"

	"go.uber.org/zap"
)

// Watch subscribes to the account's storage changes until ctx is done.
// Remote writes replace the matching mirror and notify listeners; a remote
// ui-open write opens or closes the attached surface. Writes made through
// this context's own handle are ignored here because the mutation already
// refreshed the mirror.
func (s *State) Watch(ctx context.Context) error {
	ctx = logger.WithAccount(ctx, s.account)

	return s.store.Subscribe(ctx, s.account, func(c storage.Change) {
		s.Apply(ctx, c)
	})
}

// Apply folds one storage change into the mirror.
func (s *State) Apply(ctx context.Context, c storage.Change) {
	if !c.Remote || c.Account != s.account {
		return
	}
	logger.Debug(ctx, "applying remote state change", zap.String("key", string(c.Key)), zap.String("origin", c.Origin))

	switch c.Key {
	case storage.KeyExceptions:
		set := decodeSet(ctx, c.Key, c.Value)
		s.mu.Lock()
		s.exceptions = set
		s.mu.Unlock()
	case storage.KeyUnfollowed:
		set := decodeSet(ctx, c.Key, c.Value)
		s.mu.Lock()
		s.unfollowed = set
		s.mu.Unlock()
	case storage.KeyOptions:
		opts := decodeOptions(ctx, c.Value)
		s.mu.Lock()
		s.options = opts
		s.mu.Unlock()
	case storage.KeyUIOpen:
		open := decodeBool(ctx, c.Value)
		s.mu.Lock()
		s.uiOpen = open
		s.mu.Unlock()

		s.lmu.Lock()
		surface := s.surface
		s.lmu.Unlock()
		if surface != nil {
			if open {
				surface.Open()
			} else {
				surface.Close()
			}
		}
	default:
		return
	}

	s.fire(ctx, Event{Key: c.Key, Remote: true})
}
