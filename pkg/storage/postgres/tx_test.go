package postgres_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"testing"
	"unfollower/pkg/storage"
	"unfollower/pkg/storage/postgres"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"
)

func requireValue(t *testing.T, s storage.StateStorage, account string, key storage.Key, want string) {
	t.Helper()
	v, err := s.Get(context.Background(), account, key)
	require.NoError(t, err)
	if want == "" {
		require.Nil(t, v)

		return
	}
	require.JSONEq(t, want, string(v))
}

func TestPgSQL_Tx(t *testing.T) {
	pg, _ := setupTestDB(t)

	ctx := context.Background()

	t.Run("NotInTx", func(t *testing.T) {
		require.ErrorIs(t, pg.Commit(), storage.ErrNotInTx)
		require.ErrorIs(t, pg.Rollback(), storage.ErrNotInTx)
	})

	t.Run("AlreadyInTx", func(t *testing.T) {
		tx, err := pg.Begin(ctx)
		require.NoError(t, err)
		inner, ok := tx.(*postgres.PgSQL)
		require.True(t, ok)
		_, isTx := inner.DB.(*sql.Tx)
		require.True(t, isTx)
		require.Nil(t, inner.Pool)
		require.Equal(t, pg.Origin(), inner.Origin())

		_, err = inner.Begin(ctx)
		require.ErrorIs(t, err, storage.ErrAlreadyInTx)
		require.NoError(t, inner.Rollback())
	})

	t.Run("CommitPublishesWrites", func(t *testing.T) {
		tx, err := pg.Begin(ctx)
		require.NoError(t, err)
		require.NoError(t, tx.Put(ctx, "tx-commit", storage.KeyUnfollowed, []byte(`["bob"]`)))

		// invisible outside until commit
		requireValue(t, pg, "tx-commit", storage.KeyUnfollowed, "")
		requireValue(t, tx, "tx-commit", storage.KeyUnfollowed, `["bob"]`)

		require.NoError(t, tx.Commit())
		requireValue(t, pg, "tx-commit", storage.KeyUnfollowed, `["bob"]`)
	})

	t.Run("RollbackDiscardsWrites", func(t *testing.T) {
		require.NoError(t, pg.Put(ctx, "tx-rollback", storage.KeyOptions, []byte(`{"concurrency":2}`)))

		tx, err := pg.Begin(ctx)
		require.NoError(t, err)
		require.NoError(t, tx.Put(ctx, "tx-rollback", storage.KeyOptions, []byte(`{"concurrency":5}`)))
		require.NoError(t, tx.Delete(ctx, "tx-rollback", storage.KeyExceptions))
		require.NoError(t, tx.Rollback())

		requireValue(t, pg, "tx-rollback", storage.KeyOptions, `{"concurrency":2}`)
	})

	t.Run("WithTx", func(t *testing.T) {
		err := pg.WithTx(ctx, "tx-with", func(s storage.StateStorage) error {
			return s.Put(ctx, "tx-with", storage.KeyExceptions, []byte(`["a"]`))
		})
		require.NoError(t, err)
		requireValue(t, pg, "tx-with", storage.KeyExceptions, `["a"]`)

		boom := errors.New("boom")
		err = pg.WithTx(ctx, "tx-with", func(s storage.StateStorage) error {
			if err := s.Put(ctx, "tx-with", storage.KeyExceptions, []byte(`["a","b"]`)); err != nil {
				return err
			}

			return boom
		})
		require.ErrorIs(t, err, boom)
		requireValue(t, pg, "tx-with", storage.KeyExceptions, `["a"]`)
	})

	t.Run("WithTxSerializesReadModifyWrite", func(t *testing.T) {
		const writers = 8

		var wg sync.WaitGroup
		errs := make(chan error, writers)
		for i := range writers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				errs <- pg.WithTx(ctx, "tx-race", func(s storage.StateStorage) error {
					v, err := s.Get(ctx, "tx-race", storage.KeyUnfollowed)
					if err != nil {
						return err
					}
					var users []string
					if v != nil {
						if err := json.Unmarshal(v, &users); err != nil {
							return err
						}
					}
					users = append(users, fmt.Sprintf("user%d", i))
					b, err := json.Marshal(users)
					if err != nil {
						return err
					}

					return s.Put(ctx, "tx-race", storage.KeyUnfollowed, b)
				})
			}()
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			require.NoError(t, err)
		}

		v, err := pg.Get(ctx, "tx-race", storage.KeyUnfollowed)
		require.NoError(t, err)
		var users []string
		require.NoError(t, json.Unmarshal(v, &users))
		require.Len(t, users, writers, "every read-modify-write cycle must see the previous one")
	})
}
