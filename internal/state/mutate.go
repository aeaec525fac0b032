package state

import (
	"context"
	"fmt"
	"unfollower/pkg/domain"
	"unfollower/pkg/logger"
	"unfollower/pkg/storage"

	"github.com/goccy/go-json"
)

// UpdateSet loads the freshest stored value of key, applies mutate, persists
// the whole set and refreshes the mirror. key must be KeyExceptions or
// KeyUnfollowed.
func (s *State) UpdateSet(ctx context.Context, key storage.Key, mutate func(set domain.Set)) (domain.Set, error) {
	if key != storage.KeyExceptions && key != storage.KeyUnfollowed {
		return nil, fmt.Errorf("%s is not a set", key)
	}
	ctx = logger.WithAccount(ctx, s.account)

	s.wmu.Lock()
	defer s.wmu.Unlock()

	var updated domain.Set
	err := s.store.WithTx(ctx, s.account, func(tx storage.StateStorage) error {
		v, err := tx.Get(ctx, s.account, key)
		if err != nil {
			return err
		}
		set := decodeSet(ctx, key, v)
		mutate(set)

		b, err := json.Marshal(set)
		if err != nil {
			return fmt.Errorf("could not encode %s: %w", key, err)
		}
		if err := tx.Put(ctx, s.account, key, b); err != nil {
			return err
		}
		updated = set

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("could not update %s: %w", key.Scoped(s.account), err)
	}

	s.mu.Lock()
	if key == storage.KeyExceptions {
		s.exceptions = updated.Clone()
	} else {
		s.unfollowed = updated.Clone()
	}
	s.mu.Unlock()

	s.fire(ctx, Event{Key: key})

	return updated, nil
}

// AddExceptions adds users to the exception set.
func (s *State) AddExceptions(ctx context.Context, users ...domain.Username) error {
	_, err := s.UpdateSet(ctx, storage.KeyExceptions, func(set domain.Set) {
		for _, u := range users {
			set.Add(u)
		}
	})

	return err
}

// RemoveExceptions removes users from the exception set.
func (s *State) RemoveExceptions(ctx context.Context, users ...domain.Username) error {
	_, err := s.UpdateSet(ctx, storage.KeyExceptions, func(set domain.Set) {
		for _, u := range users {
			set.Remove(u)
		}
	})

	return err
}

// ReplaceExceptions replaces the exception set.
func (s *State) ReplaceExceptions(ctx context.Context, users domain.Set) error {
	_, err := s.UpdateSet(ctx, storage.KeyExceptions, replaceWith(users))

	return err
}

// MarkUnfollowed adds u to the unfollowed set. It is called once per
// successful unfollow.
func (s *State) MarkUnfollowed(ctx context.Context, u domain.Username) error {
	_, err := s.UpdateSet(ctx, storage.KeyUnfollowed, func(set domain.Set) { set.Add(u) })

	return err
}

// AddUnfollowed adds users to the unfollowed set.
func (s *State) AddUnfollowed(ctx context.Context, users ...domain.Username) error {
	_, err := s.UpdateSet(ctx, storage.KeyUnfollowed, func(set domain.Set) {
		for _, u := range users {
			set.Add(u)
		}
	})

	return err
}

// RemoveUnfollowed removes users from the unfollowed set.
func (s *State) RemoveUnfollowed(ctx context.Context, users ...domain.Username) error {
	_, err := s.UpdateSet(ctx, storage.KeyUnfollowed, func(set domain.Set) {
		for _, u := range users {
			set.Remove(u)
		}
	})

	return err
}

// ReplaceUnfollowed replaces the unfollowed set.
func (s *State) ReplaceUnfollowed(ctx context.Context, users domain.Set) error {
	_, err := s.UpdateSet(ctx, storage.KeyUnfollowed, replaceWith(users))

	return err
}

// ClearUnfollowed empties the unfollowed set.
func (s *State) ClearUnfollowed(ctx context.Context) error {
	return s.ReplaceUnfollowed(ctx, domain.NewSet())
}

func replaceWith(users domain.Set) func(domain.Set) {
	return func(set domain.Set) {
		clear(set)
		for u := range users {
			set.Add(u)
		}
	}
}

// SaveOptions normalizes and persists opts.
func (s *State) SaveOptions(ctx context.Context, opts domain.Options) (domain.Options, error) {
	s.wmu.Lock()
	defer s.wmu.Unlock()

	return s.saveOptions(ctx, opts)
}

func (s *State) saveOptions(ctx context.Context, opts domain.Options) (domain.Options, error) {
	opts = opts.Normalize()
	b, err := json.Marshal(opts)
	if err != nil {
		return opts, fmt.Errorf("could not encode options: %w", err)
	}
	if err := s.store.Put(ctx, s.account, storage.KeyOptions, b); err != nil {
		return opts, fmt.Errorf("could not save options: %w", err)
	}

	s.mu.Lock()
	s.options = opts
	s.mu.Unlock()
	s.fire(ctx, Event{Key: storage.KeyOptions})

	return opts, nil
}

// UpdateOptions applies mutate to the current options and saves the result.
func (s *State) UpdateOptions(ctx context.Context, mutate func(o *domain.Options)) (domain.Options, error) {
	s.wmu.Lock()
	defer s.wmu.Unlock()

	opts := s.Options()
	mutate(&opts)

	return s.saveOptions(ctx, opts)
}

// SetUIOpen persists the surface flag.
func (s *State) SetUIOpen(ctx context.Context, open bool) error {
	s.wmu.Lock()
	defer s.wmu.Unlock()

	return s.setUIOpen(ctx, open)
}

func (s *State) setUIOpen(ctx context.Context, open bool) error {
	b, _ := json.Marshal(open)
	if err := s.store.Put(ctx, s.account, storage.KeyUIOpen, b); err != nil {
		return fmt.Errorf("could not save ui state: %w", err)
	}

	s.mu.Lock()
	s.uiOpen = open
	s.mu.Unlock()
	s.fire(ctx, Event{Key: storage.KeyUIOpen})

	return nil
}

// ToggleUI flips the surface flag and returns the new value.
func (s *State) ToggleUI(ctx context.Context) (bool, error) {
	s.wmu.Lock()
	defer s.wmu.Unlock()

	open := !s.UIOpen()

	return open, s.setUIOpen(ctx, open)
}
