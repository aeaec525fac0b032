package postgres_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
	"unfollower/pkg/storage"

	"github.com/stretchr/testify/require"
)

func TestPgSQL_State(t *testing.T) {
	pg, srv := setupTestDB(t)

	t.Run("GetPutDelete", func(t *testing.T) {
		ctx := context.Background()

		v, err := pg.Get(ctx, "alice", storage.KeyExceptions)
		require.NoError(t, err)
		require.Nil(t, v)

		require.NoError(t, pg.Put(ctx, "alice", storage.KeyExceptions, []byte(`["bob","carol"]`)))
		require.NoError(t, pg.Put(ctx, "alice", storage.KeyExceptions, []byte(`["bob"]`)))
		v, err = pg.Get(ctx, "alice", storage.KeyExceptions)
		require.NoError(t, err)
		require.JSONEq(t, `["bob"]`, string(v))

		v, err = pg.Get(ctx, "someone-else", storage.KeyExceptions)
		require.NoError(t, err)
		require.Nil(t, v)

		require.NoError(t, pg.Delete(ctx, "alice", storage.KeyExceptions))
		v, err = pg.Get(ctx, "alice", storage.KeyExceptions)
		require.NoError(t, err)
		require.Nil(t, v)
	})

	t.Run("WithTxRollback", func(t *testing.T) {
		ctx := context.Background()
		boom := errors.New("boom")

		err := pg.WithTx(ctx, "dave", func(tx storage.StateStorage) error {
			require.NoError(t, tx.Put(ctx, "dave", storage.KeyOptions, []byte(`{"concurrency":2}`)))

			return boom
		})
		require.ErrorIs(t, err, boom)

		v, err := pg.Get(ctx, "dave", storage.KeyOptions)
		require.NoError(t, err)
		require.Nil(t, v)
	})

	t.Run("SubscribeAcrossHandles", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		other := srv.open(t)
		require.NotEqual(t, pg.Origin(), other.Origin())

		var (
			mu      sync.Mutex
			changes []storage.Change
		)
		require.NoError(t, other.Subscribe(ctx, "erin", func(c storage.Change) {
			mu.Lock()
			defer mu.Unlock()
			changes = append(changes, c)
		}))

		require.NoError(t, pg.Put(ctx, "erin", storage.KeyUnfollowed, []byte(`["zed"]`)))
		require.NoError(t, pg.Put(ctx, "frank", storage.KeyUnfollowed, []byte(`["yan"]`)))
		require.NoError(t, other.Put(ctx, "erin", storage.KeyUIOpen, []byte(`true`)))

		require.Eventually(t, func() bool {
			mu.Lock()
			defer mu.Unlock()

			return len(changes) == 2
		}, 10*time.Second, 50*time.Millisecond)

		mu.Lock()
		defer mu.Unlock()
		require.Equal(t, storage.KeyUnfollowed, changes[0].Key)
		require.True(t, changes[0].Remote)
		require.JSONEq(t, `["zed"]`, string(changes[0].Value))
		require.Equal(t, storage.KeyUIOpen, changes[1].Key)
		require.False(t, changes[1].Remote)
	})
	t.Run("SubscribeSurvivesLostConnection", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		other := srv.open(t)
		var (
			mu     sync.Mutex
			latest = map[storage.Key]string{}
		)
		require.NoError(t, other.Subscribe(ctx, "gina", func(c storage.Change) {
			mu.Lock()
			defer mu.Unlock()
			latest[c.Key] = string(c.Value)
		}))
		value := func(k storage.Key) string {
			mu.Lock()
			defer mu.Unlock()

			return latest[k]
		}

		_, err := pg.Pool.Exec(ctx, `SELECT pg_terminate_backend(pid) FROM pg_stat_activity
			WHERE query LIKE 'LISTEN %' AND state = 'idle' AND pid <> pg_backend_pid()`)
		require.NoError(t, err)

		// written while the listener may be down: picked up by the resync
		require.NoError(t, pg.Put(ctx, "gina", storage.KeyExceptions, []byte(`["hal"]`)))
		require.Eventually(t, func() bool {
			return value(storage.KeyExceptions) == `["hal"]`
		}, 15*time.Second, 50*time.Millisecond)

		require.Eventually(t, func() bool {
			if err := pg.Put(ctx, "gina", storage.KeyUnfollowed, []byte(`["ivy"]`)); err != nil {
				return false
			}

			return value(storage.KeyUnfollowed) == `["ivy"]`
		}, 15*time.Second, 500*time.Millisecond)
	})
}
