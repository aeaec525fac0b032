package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unfollower/pkg/logger"
	"unfollower/pkg/storage"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"
)

const (
	// relistenBase is the first wait before re-establishing a lost listener.
	relistenBase = 250 * time.Millisecond
	// relistenMax caps the wait between two reconnect attempts.
	relistenMax = 30 * time.Second
)

// Subscribe implements storage.Storage. It holds one pooled connection in
// LISTEN mode for the lifetime of ctx. A lost connection is re-established
// with backoff, and every key of the account is then redelivered so writes
// missed in the gap are not lost.
func (p *PgSQL) Subscribe(ctx context.Context, account string, fn func(storage.Change)) error {
	if p.Pool == nil {
		return storage.ErrAlreadyInTx
	}

	conn, err := p.listen(ctx)
	if err != nil {
		return err
	}

	go func() {
		for {
			err := p.dispatch(ctx, conn, account, fn)
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				return
			}
			logger.Warn(ctx, "state listener lost its connection, reconnecting",
				zap.String("channel", p.channel), zap.Error(err))

			if conn, err = p.relisten(ctx); err != nil {
				return
			}
			logger.Info(ctx, "state listener reconnected", zap.String("channel", p.channel))
			p.resync(ctx, account, fn)
		}
	}()

	return nil
}

func (p *PgSQL) listen(ctx context.Context) (*pgxpool.Conn, error) {
	conn, err := p.Pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not acquire listen connection: %w", err)
	}
	if _, err := conn.Exec(ctx, "LISTEN "+pgx.Identifier{p.channel}.Sanitize()); err != nil {
		conn.Release()

		return nil, fmt.Errorf("could not listen on %s: %w", p.channel, err)
	}

	return conn, nil
}

// relisten retries listen until it succeeds or ctx is done.
func (p *PgSQL) relisten(ctx context.Context) (*pgxpool.Conn, error) {
	wait := relistenBase / 2
	backoff := retry.BackoffFunc(func() (time.Duration, bool) {
		wait = min(wait*2, relistenMax)

		return wait, false
	})

	var conn *pgxpool.Conn
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		c, err := p.listen(ctx)
		if err != nil {
			logger.Debug(ctx, "could not re-establish state listener", zap.Error(err))

			return retry.RetryableError(err)
		}
		conn = c

		return nil
	})

	return conn, err
}

// dispatch delivers notifications until the connection fails or ctx is done.
// It always releases conn.
func (p *PgSQL) dispatch(ctx context.Context, conn *pgxpool.Conn, account string, fn func(storage.Change)) error {
	defer func() {
		unlistenCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), time.Second)
		defer cancel()
		if _, err := conn.Exec(unlistenCtx, "UNLISTEN *"); err != nil {
			// a broken connection must not go back to the pool
			_ = conn.Conn().Close(unlistenCtx)
		}
		conn.Release()
	}()

	for {
		n, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			return err
		}

		msg, err := storage.DecodeNotification(n.Payload)
		if err != nil {
			logger.Warn(ctx, "ignoring malformed state notification", zap.String("payload", n.Payload), zap.Error(err))

			continue
		}
		if msg.Account != account {
			continue
		}
		if !msg.Deleted {
			if msg.Value, err = p.Get(ctx, msg.Account, msg.Key); err != nil {
				logger.Warn(ctx, "could not read notified state", zap.String("key", string(msg.Key)), zap.Error(err))

				continue
			}
		}
		fn(msg.Change(p.origin))
	}
}

// resync redelivers every key of account as a remote change.
func (p *PgSQL) resync(ctx context.Context, account string, fn func(storage.Change)) {
	for _, key := range storage.Keys {
		v, err := p.Get(ctx, account, key)
		if err != nil {
			logger.Warn(ctx, "could not resync state", zap.String("key", string(key)), zap.Error(err))

			continue
		}
		fn(storage.Change{Account: account, Key: key, Value: v, Remote: true})
	}
}
