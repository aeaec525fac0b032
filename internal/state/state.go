// Package state owns the in-memory mirror of one account's persisted state
// for one execution context. Every mutation is a read-modify-write cycle
// against storage followed by a mirror refresh; changes written by other
// contexts are folded in by Watch.
package state

import (
	"context"
	"fmt"
	"sync"
	"unfollower/pkg/domain"
	"unfollower/pkg/logger"
	"unfollower/pkg/storage"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// Event tells listeners which key changed and where the change came from.
type Event struct {
	Key    storage.Key
	Remote bool
}

// Listener is called after the mirror reflects a change.
type Listener func(ctx context.Context, ev Event)

// Surface is the user-facing control surface whose open/closed flag is
// shared between contexts.
type Surface interface {
	Open()
	Close()
}

// State is the owned per-context state object. It is safe for concurrent use.
type State struct {
	account string
	store   storage.Storage

	// wmu serializes local writes from the storage transaction through the
	// listener calls, so the mirror never falls behind what was committed.
	wmu sync.Mutex

	mu         sync.RWMutex
	exceptions domain.Set
	unfollowed domain.Set
	options    domain.Options
	uiOpen     bool

	lmu       sync.Mutex
	listeners []Listener
	surface   Surface
}

// Load reads every key of account from store and returns the populated state.
func Load(ctx context.Context, store storage.Storage, account string) (*State, error) {
	s := &State{
		account:    account,
		store:      store,
		exceptions: domain.NewSet(),
		unfollowed: domain.NewSet(),
		options:    domain.DefaultOptions(),
	}
	if err := s.Reload(ctx); err != nil {
		return nil, err
	}

	return s, nil
}

// Reload replaces the whole mirror with what storage holds.
func (s *State) Reload(ctx context.Context) error {
	ctx = logger.WithAccount(ctx, s.account)
	values := make(map[storage.Key][]byte, len(storage.Keys))
	for _, k := range storage.Keys {
		v, err := s.store.Get(ctx, s.account, k)
		if err != nil {
			return fmt.Errorf("could not load %s: %w", k.Scoped(s.account), err)
		}
		values[k] = v
	}

	exceptions := decodeSet(ctx, storage.KeyExceptions, values[storage.KeyExceptions])
	unfollowed := decodeSet(ctx, storage.KeyUnfollowed, values[storage.KeyUnfollowed])
	options := decodeOptions(ctx, values[storage.KeyOptions])
	uiOpen := decodeBool(ctx, values[storage.KeyUIOpen])

	s.mu.Lock()
	s.exceptions, s.unfollowed, s.options, s.uiOpen = exceptions, unfollowed, options, uiOpen
	s.mu.Unlock()

	return nil
}

// Account returns the account this state belongs to.
func (s *State) Account() string { return s.account }

// Exceptions returns a copy of the exception set.
func (s *State) Exceptions() domain.Set {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.exceptions.Clone()
}

// Unfollowed returns a copy of the unfollowed set.
func (s *State) Unfollowed() domain.Set {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.unfollowed.Clone()
}

// IsException reports whether u is in the exception set.
func (s *State) IsException(u domain.Username) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.exceptions.Has(u)
}

// IsUnfollowed reports whether u is in the unfollowed set.
func (s *State) IsUnfollowed(u domain.Username) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.unfollowed.Has(u)
}

// Sizes returns the exception and unfollowed set sizes, as shown on badges.
func (s *State) Sizes() (exceptions, unfollowed int) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.exceptions), len(s.unfollowed)
}

// Options returns the current options.
func (s *State) Options() domain.Options {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.options
}

// UIOpen reports whether the control surface is open.
func (s *State) UIOpen() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.uiOpen
}

// OnChange registers l for every mirror change, local or remote. Local
// changes are delivered while the write lock is held, so l must not mutate s.
func (s *State) OnChange(l Listener) {
	s.lmu.Lock()
	defer s.lmu.Unlock()
	s.listeners = append(s.listeners, l)
}

// SetSurface attaches the surface opened and closed by remote ui-open changes.
func (s *State) SetSurface(surface Surface) {
	s.lmu.Lock()
	defer s.lmu.Unlock()
	s.surface = surface
}

func (s *State) fire(ctx context.Context, ev Event) {
	s.lmu.Lock()
	listeners := append([]Listener(nil), s.listeners...)
	s.lmu.Unlock()

	for _, l := range listeners {
		l(ctx, ev)
	}
}

func decodeSet(ctx context.Context, key storage.Key, v []byte) domain.Set {
	set := domain.NewSet()
	if len(v) == 0 {
		return set
	}
	if err := json.Unmarshal(v, &set); err != nil {
		logger.Warn(ctx, "ignoring malformed stored set", zap.String("key", string(key)), zap.Error(err))

		return domain.NewSet()
	}

	return set
}

// decodeOptions merges the stored object over the defaults.
func decodeOptions(ctx context.Context, v []byte) domain.Options {
	opts := domain.DefaultOptions()
	if len(v) == 0 {
		return opts
	}
	if err := json.Unmarshal(v, &opts); err != nil {
		logger.Warn(ctx, "ignoring malformed stored options", zap.Error(err))

		return domain.DefaultOptions()
	}

	return opts.Normalize()
}

func decodeBool(ctx context.Context, v []byte) bool {
	if len(v) == 0 {
		return false
	}
	var b bool
	if err := json.Unmarshal(v, &b); err != nil {
		logger.Warn(ctx, "ignoring malformed ui-open flag", zap.Error(err))

		return false
	}

	return b
}
