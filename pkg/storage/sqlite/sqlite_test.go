package sqlite_test

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"
	"unfollower/pkg/storage"
	"unfollower/pkg/storage/sqlite"

	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T, path string) *sqlite.Store {
	t.Helper()
	s, err := sqlite.New(context.Background(), sqlite.Options{Path: path, PollInterval: 100 * time.Millisecond})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	return s
}

func TestStore_GetPutDelete(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, filepath.Join(t.TempDir(), "state.db"))

	v, err := s.Get(ctx, "alice", storage.KeyOptions)
	require.NoError(t, err)
	require.Nil(t, v)

	require.NoError(t, s.Put(ctx, "alice", storage.KeyOptions, []byte(`{"concurrency":4}`)))
	require.NoError(t, s.Put(ctx, "alice", storage.KeyOptions, []byte(`{"concurrency":5}`)))
	v, err = s.Get(ctx, "alice", storage.KeyOptions)
	require.NoError(t, err)
	require.JSONEq(t, `{"concurrency":5}`, string(v))

	require.NoError(t, s.Delete(ctx, "alice", storage.KeyOptions))
	v, err = s.Get(ctx, "alice", storage.KeyOptions)
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestStore_ReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state.db")

	first, err := sqlite.New(ctx, sqlite.Options{Path: path})
	require.NoError(t, err)
	require.NoError(t, first.Put(ctx, "alice", storage.KeyUnfollowed, []byte(`["bob"]`)))
	require.NoError(t, first.Close())

	second := openStore(t, path)
	v, err := second.Get(ctx, "alice", storage.KeyUnfollowed)
	require.NoError(t, err)
	require.JSONEq(t, `["bob"]`, string(v))
}

func TestStore_SubscribeAcrossHandles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")
	a := openStore(t, path)
	b := openStore(t, path)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		mu      sync.Mutex
		changes []storage.Change
	)
	require.NoError(t, b.Subscribe(ctx, "alice", func(c storage.Change) {
		mu.Lock()
		defer mu.Unlock()
		changes = append(changes, c)
	}))

	require.NoError(t, a.Put(ctx, "alice", storage.KeyUnfollowed, []byte(`["zed"]`)))
	require.NoError(t, a.Put(ctx, "carol", storage.KeyUnfollowed, []byte(`["nope"]`)))
	require.NoError(t, a.Delete(ctx, "alice", storage.KeyUnfollowed))
	require.NoError(t, b.Put(ctx, "alice", storage.KeyUIOpen, []byte(`true`)))

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()

		return len(changes) == 3
	}, 5*time.Second, 20*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	require.True(t, changes[0].Remote)
	require.JSONEq(t, `["zed"]`, string(changes[0].Value))
	require.True(t, changes[1].Remote)
	require.Nil(t, changes[1].Value, "deletes are delivered without a value")
	require.False(t, changes[2].Remote)
	require.Equal(t, storage.KeyUIOpen, changes[2].Key)
}
