package state_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
	"unfollower/internal/state"
	"unfollower/pkg/domain"
	"unfollower/pkg/storage"
	"unfollower/pkg/storage/memory"
	mockstorage "unfollower/pkg/storage/mock"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fakeSurface struct {
	mu     sync.Mutex
	opened int
	closed int
}

func (f *fakeSurface) Open() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.opened++
}

func (f *fakeSurface) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed++
}

func TestLoad_Defaults(t *testing.T) {
	ctx := context.Background()
	s, err := state.Load(ctx, memory.NewHub().Open(), "alice")
	require.NoError(t, err)

	require.Equal(t, "alice", s.Account())
	require.Empty(t, s.Exceptions())
	require.Empty(t, s.Unfollowed())
	require.Equal(t, domain.DefaultOptions(), s.Options())
	require.False(t, s.UIOpen())
}

func TestLoad_MergesStoredOptions(t *testing.T) {
	ctx := context.Background()
	store := memory.NewHub().Open()
	require.NoError(t, store.Put(ctx, "alice", storage.KeyOptions, []byte(`{"concurrency":42,"blockReFollow":false}`)))
	require.NoError(t, store.Put(ctx, "alice", storage.KeyExceptions, []byte(`["Bob","/carol/"]`)))

	s, err := state.Load(ctx, store, "alice")
	require.NoError(t, err)

	opts := s.Options()
	require.False(t, opts.BlockReFollow)
	require.Equal(t, domain.MaxConcurrency, opts.Concurrency)
	require.Equal(t, domain.DefaultScanTimeoutMs, opts.ScanTimeoutMs)
	require.Equal(t, []domain.Username{"bob", "carol"}, s.Exceptions().Sorted())
}

func TestLoad_MalformedValuesFallBack(t *testing.T) {
	ctx := context.Background()
	store := memory.NewHub().Open()
	require.NoError(t, store.Put(ctx, "alice", storage.KeyUnfollowed, []byte(`{"not":"a list"}`)))
	require.NoError(t, store.Put(ctx, "alice", storage.KeyOptions, []byte(`[]`)))

	s, err := state.Load(ctx, store, "alice")
	require.NoError(t, err)
	require.Empty(t, s.Unfollowed())
	require.Equal(t, domain.DefaultOptions(), s.Options())
}

func TestLoad_StorageError(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mockstorage.NewMockStorage(ctrl)
	store.EXPECT().Get(gomock.Any(), "alice", storage.KeyExceptions).Return(nil, errors.New("boom"))

	_, err := state.Load(context.Background(), store, "alice")
	require.ErrorContains(t, err, "lbxd_exceptions_alice")
}

func TestMutations(t *testing.T) {
	ctx := context.Background()
	store := memory.NewHub().Open()
	s, err := state.Load(ctx, store, "alice")
	require.NoError(t, err)

	var events []state.Event
	s.OnChange(func(_ context.Context, ev state.Event) { events = append(events, ev) })

	require.NoError(t, s.AddExceptions(ctx, "bob", "carol"))
	require.NoError(t, s.RemoveExceptions(ctx, "bob"))
	require.True(t, s.IsException("carol"))
	require.False(t, s.IsException("bob"))

	require.NoError(t, s.MarkUnfollowed(ctx, "dave"))
	require.NoError(t, s.MarkUnfollowed(ctx, "dave"))
	require.True(t, s.IsUnfollowed("dave"))

	e, u := s.Sizes()
	require.Equal(t, 1, e)
	require.Equal(t, 1, u)

	require.NoError(t, s.ClearUnfollowed(ctx))
	require.Empty(t, s.Unfollowed())

	v, err := store.Get(ctx, "alice", storage.KeyExceptions)
	require.NoError(t, err)
	require.JSONEq(t, `["carol"]`, string(v))
	v, err = store.Get(ctx, "alice", storage.KeyUnfollowed)
	require.NoError(t, err)
	require.JSONEq(t, `[]`, string(v))

	require.Len(t, events, 5)
	for _, ev := range events {
		require.False(t, ev.Remote)
	}
}

func TestUpdateSet_ReadsFreshValue(t *testing.T) {
	ctx := context.Background()
	hub := memory.NewHub()
	a, err := state.Load(ctx, hub.Open(), "alice")
	require.NoError(t, err)
	b, err := state.Load(ctx, hub.Open(), "alice")
	require.NoError(t, err)

	// b never watches, so its mirror is stale; the write must still merge
	require.NoError(t, a.MarkUnfollowed(ctx, "x"))
	require.NoError(t, b.MarkUnfollowed(ctx, "y"))

	require.Equal(t, []domain.Username{"x", "y"}, b.Unfollowed().Sorted())
}

// slowCommit delays the return of the first transaction.
type slowCommit struct {
	storage.Storage
	calls atomic.Int32
	delay time.Duration
}

func (s *slowCommit) WithTx(ctx context.Context, account string, fn func(tx storage.StateStorage) error) error {
	err := s.Storage.WithTx(ctx, account, fn)
	if s.calls.Add(1) == 1 {
		time.Sleep(s.delay)
	}

	return err
}

func TestUpdateSet_ConcurrentWritesKeepMirrorCurrent(t *testing.T) {
	ctx := context.Background()
	store := &slowCommit{Storage: memory.NewHub().Open(), delay: 100 * time.Millisecond}
	s, err := state.Load(ctx, store, "alice")
	require.NoError(t, err)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		require.NoError(t, s.MarkUnfollowed(ctx, "u1"))
	}()
	go func() {
		defer wg.Done()
		time.Sleep(20 * time.Millisecond)
		require.NoError(t, s.MarkUnfollowed(ctx, "u3"))
	}()
	wg.Wait()

	v, err := store.Get(ctx, "alice", storage.KeyUnfollowed)
	require.NoError(t, err)
	require.JSONEq(t, `["u1","u3"]`, string(v))
	require.Equal(t, []domain.Username{"u1", "u3"}, s.Unfollowed().Sorted())
}

func TestUpdateSet_RejectsNonSetKey(t *testing.T) {
	s, err := state.Load(context.Background(), memory.NewHub().Open(), "alice")
	require.NoError(t, err)

	_, err = s.UpdateSet(context.Background(), storage.KeyOptions, func(domain.Set) {})
	require.Error(t, err)
}

func TestSaveOptions_Normalizes(t *testing.T) {
	ctx := context.Background()
	s, err := state.Load(ctx, memory.NewHub().Open(), "alice")
	require.NoError(t, err)

	opts, err := s.UpdateOptions(ctx, func(o *domain.Options) {
		o.Concurrency = 0
		o.BlockReFollow = false
	})
	require.NoError(t, err)
	require.Equal(t, domain.MinConcurrency, opts.Concurrency)
	require.False(t, s.Options().BlockReFollow)
}

func TestWatch_AppliesRemoteChangesOnly(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := memory.NewHub()
	local, err := state.Load(ctx, hub.Open(), "alice")
	require.NoError(t, err)
	remote, err := state.Load(ctx, hub.Open(), "alice")
	require.NoError(t, err)

	surface := &fakeSurface{}
	local.SetSurface(surface)
	var mu sync.Mutex
	var events []state.Event
	local.OnChange(func(_ context.Context, ev state.Event) {
		mu.Lock()
		defer mu.Unlock()
		events = append(events, ev)
	})
	require.NoError(t, local.Watch(ctx))

	// memory delivers synchronously, so every assertion below is immediate
	require.NoError(t, remote.MarkUnfollowed(ctx, "bob"))
	require.True(t, local.IsUnfollowed("bob"))

	require.NoError(t, remote.AddExceptions(ctx, "carol"))
	require.True(t, local.IsException("carol"))

	require.NoError(t, remote.SetUIOpen(ctx, true))
	require.True(t, local.UIOpen())
	require.NoError(t, remote.SetUIOpen(ctx, false))
	require.Equal(t, 1, surface.opened)
	require.Equal(t, 1, surface.closed)

	_, err = remote.UpdateOptions(ctx, func(o *domain.Options) { o.BlockReFollow = false })
	require.NoError(t, err)
	require.False(t, local.Options().BlockReFollow)

	// own writes do not re-enter as remote events
	require.NoError(t, local.AddExceptions(ctx, "dave"))

	mu.Lock()
	defer mu.Unlock()
	remoteCount := 0
	for _, ev := range events {
		if ev.Remote {
			remoteCount++
		}
	}
	require.Equal(t, 5, remoteCount)
	require.Len(t, events, 6)
}

func TestApply_IgnoresOtherAccounts(t *testing.T) {
	ctx := context.Background()
	s, err := state.Load(ctx, memory.NewHub().Open(), "alice")
	require.NoError(t, err)

	s.Apply(ctx, storage.Change{Account: "mallory", Key: storage.KeyUnfollowed, Value: []byte(`["x"]`), Remote: true})
	require.Empty(t, s.Unfollowed())

	s.Apply(ctx, storage.Change{Account: "alice", Key: storage.KeyUnfollowed, Value: nil, Remote: true})
	require.Empty(t, s.Unfollowed())

	s.Apply(ctx, storage.Change{Account: "alice", Key: storage.KeyUnfollowed, Value: []byte(`["x"]`), Remote: true})
	require.True(t, s.IsUnfollowed("x"))
}
