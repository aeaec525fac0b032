package redis_test

import (
	"context"
	"sync"
	"testing"
	"time"
	"unfollower/pkg/storage"
	"unfollower/pkg/storage/redis"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*redis.Store, *miniredis.Miniredis) {
	t.Helper()
	s := miniredis.RunT(t)
	store, err := redis.New(context.Background(), "redis://"+s.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	return store, s
}

func TestNew_badURL(t *testing.T) {
	_, err := redis.New(context.Background(), "not a url")
	require.Error(t, err)
}

func TestStore_GetPutDelete(t *testing.T) {
	store, mr := setupTestRedis(t)
	ctx := context.Background()

	v, err := store.Get(ctx, "alice", storage.KeyExceptions)
	require.NoError(t, err)
	require.Nil(t, v)

	require.NoError(t, store.Put(ctx, "alice", storage.KeyExceptions, []byte(`["bob"]`)))
	v, err = store.Get(ctx, "alice", storage.KeyExceptions)
	require.NoError(t, err)
	require.Equal(t, `["bob"]`, string(v))

	raw, err := mr.Get("unfollower:lbxd_exceptions_alice")
	require.NoError(t, err)
	require.Equal(t, `["bob"]`, raw)

	require.NoError(t, store.Delete(ctx, "alice", storage.KeyExceptions))
	require.False(t, mr.Exists("unfollower:lbxd_exceptions_alice"))
}

func TestStore_WithTxReadsOwnWrites(t *testing.T) {
	store, _ := setupTestRedis(t)
	ctx := context.Background()

	err := store.WithTx(ctx, "alice", func(tx storage.StateStorage) error {
		require.NoError(t, tx.Put(ctx, "alice", storage.KeyUnfollowed, []byte(`["x"]`)))
		v, err := tx.Get(ctx, "alice", storage.KeyUnfollowed)
		require.NoError(t, err)
		require.Equal(t, `["x"]`, string(v))

		return nil
	})
	require.NoError(t, err)

	v, err := store.Get(ctx, "alice", storage.KeyUnfollowed)
	require.NoError(t, err)
	require.Equal(t, `["x"]`, string(v))
}

func TestStore_SubscribeAcrossHandles(t *testing.T) {
	a, mr := setupTestRedis(t)
	b, err := redis.New(context.Background(), "redis://"+mr.Addr())
	require.NoError(t, err)
	defer func() { _ = b.Close() }()

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
	require.Equal(t, []string{"unfollower:changes:alice"}, mr.PubSubChannels("unfollower:*"))

	require.NoError(t, a.Put(ctx, "alice", storage.KeyUnfollowed, []byte(`["zed"]`)))
	require.NoError(t, a.Put(ctx, "bob", storage.KeyUnfollowed, []byte(`["nope"]`)))
	require.NoError(t, b.Put(ctx, "alice", storage.KeyUIOpen, []byte(`true`)))

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()

		return len(changes) == 2
	}, 5*time.Second, 10*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	require.True(t, changes[0].Remote)
	require.Equal(t, `["zed"]`, string(changes[0].Value))
	require.False(t, changes[1].Remote)
	require.Equal(t, storage.KeyUIOpen, changes[1].Key)
}
