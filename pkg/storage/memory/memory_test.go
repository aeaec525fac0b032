package memory_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
	"unfollower/pkg/storage"
	"unfollower/pkg/storage/memory"

	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu      sync.Mutex
	changes []storage.Change
}

func (r *recorder) add(c storage.Change) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.changes = append(r.changes, c)
}

func (r *recorder) all() []storage.Change {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]storage.Change(nil), r.changes...)
}

func TestStore_GetPutDelete(t *testing.T) {
	ctx := context.Background()
	s := memory.NewHub().Open()

	v, err := s.Get(ctx, "alice", storage.KeyExceptions)
	require.NoError(t, err)
	require.Nil(t, v)

	require.NoError(t, s.Put(ctx, "alice", storage.KeyExceptions, []byte(`["bob"]`)))
	v, err = s.Get(ctx, "alice", storage.KeyExceptions)
	require.NoError(t, err)
	require.JSONEq(t, `["bob"]`, string(v))

	// accounts are isolated
	v, err = s.Get(ctx, "carol", storage.KeyExceptions)
	require.NoError(t, err)
	require.Nil(t, v)

	require.NoError(t, s.Delete(ctx, "alice", storage.KeyExceptions))
	v, err = s.Get(ctx, "alice", storage.KeyExceptions)
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestStore_SubscribeMarksRemote(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := memory.NewHub()
	a, b := hub.Open(), hub.Open()
	require.NotEqual(t, a.Origin(), b.Origin())

	var seenA, seenB recorder
	require.NoError(t, a.Subscribe(ctx, "alice", seenA.add))
	require.NoError(t, b.Subscribe(ctx, "alice", seenB.add))

	require.NoError(t, a.Put(ctx, "alice", storage.KeyUnfollowed, []byte(`["x"]`)))
	require.NoError(t, a.Put(ctx, "carol", storage.KeyUnfollowed, []byte(`["y"]`)))

	require.Len(t, seenA.all(), 1)
	require.False(t, seenA.all()[0].Remote)
	require.Len(t, seenB.all(), 1)
	require.True(t, seenB.all()[0].Remote)
	require.Equal(t, storage.KeyUnfollowed, seenB.all()[0].Key)
	require.JSONEq(t, `["x"]`, string(seenB.all()[0].Value))
}

func TestStore_WithTxRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	s := memory.NewHub().Open()

	var seen recorder
	require.NoError(t, s.Subscribe(ctx, "alice", seen.add))

	boom := errors.New("boom")
	err := s.WithTx(ctx, "alice", func(tx storage.StateStorage) error {
		require.NoError(t, tx.Put(ctx, "alice", storage.KeyOptions, []byte(`{}`)))
		v, err := tx.Get(ctx, "alice", storage.KeyOptions)
		require.NoError(t, err)
		require.Equal(t, `{}`, string(v), "reads observe the transaction's own writes")

		return boom
	})
	require.ErrorIs(t, err, boom)

	v, err := s.Get(ctx, "alice", storage.KeyOptions)
	require.NoError(t, err)
	require.Nil(t, v)
	require.Empty(t, seen.all())
}

func TestStore_UnsubscribeOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := memory.NewHub()
	a, b := hub.Open(), hub.Open()

	var seen recorder
	require.NoError(t, b.Subscribe(ctx, "alice", seen.add))
	cancel()

	require.Eventually(t, func() bool {
		_ = a.Put(context.Background(), "alice", storage.KeyUIOpen, []byte(`true`))
		n := len(seen.all())
		_ = a.Put(context.Background(), "alice", storage.KeyUIOpen, []byte(`false`))

		return len(seen.all()) == n
	}, time.Second, 10*time.Millisecond)
}
