// Package redis implements storage.Storage on Redis. Values are plain string
// keys; every write is published, value included, on a per-account channel.
// Read-modify-write cycles use WATCH/MULTI and retry on contention.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unfollower/pkg/logger"
	"unfollower/pkg/storage"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	defaultPrefix = "unfollower:"
	maxTxAttempts = 8
)

// Store is a Redis-backed storage handle.
type Store struct {
	client *goredis.Client
	prefix string
	origin string
}

var _ storage.Storage = (*Store)(nil)

// New connects to redisURL ("redis://host:port/db") and checks the connection.
func New(ctx context.Context, redisURL string) (*Store, error) {
	opts, err := goredis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("could not parse redis url: %w", err)
	}

	client := goredis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()

		return nil, fmt.Errorf("could not connect to redis: %w", err)
	}

	return NewWithClient(client), nil
}

// NewWithClient creates a handle from an existing client.
func NewWithClient(client *goredis.Client) *Store {
	return &Store{
		client: client,
		prefix: defaultPrefix,
		origin: uuid.NewString(),
	}
}

func (s *Store) key(account string, key storage.Key) string {
	return s.prefix + key.Scoped(account)
}

func (s *Store) channel(account string) string {
	return s.prefix + "changes:" + account
}

// Origin implements storage.Storage.
func (s *Store) Origin() string { return s.origin }

// Get implements storage.StateStorage.
func (s *Store) Get(ctx context.Context, account string, key storage.Key) ([]byte, error) {
	return get(ctx, s.client, s.key(account, key))
}

// getter is satisfied by both *goredis.Client and *goredis.Tx.
type getter interface {
	Get(ctx context.Context, key string) *goredis.StringCmd
}

func get(ctx context.Context, c getter, k string) ([]byte, error) {
	b, err := c.Get(ctx, k).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not get %s: %w", k, err)
	}

	return b, nil
}

// Put implements storage.StateStorage.
func (s *Store) Put(ctx context.Context, account string, key storage.Key, value []byte) error {
	return s.WithTx(ctx, account, func(tx storage.StateStorage) error {
		return tx.Put(ctx, account, key, value)
	})
}

// Delete implements storage.StateStorage.
func (s *Store) Delete(ctx context.Context, account string, key storage.Key) error {
	return s.WithTx(ctx, account, func(tx storage.StateStorage) error {
		return tx.Delete(ctx, account, key)
	})
}

// WithTx watches every key of the account, runs cb and applies its writes
// and their notifications in one MULTI block. cb may run more than once when
// another handle writes concurrently.
func (s *Store) WithTx(ctx context.Context, account string, cb func(tx storage.StateStorage) error) error {
	keys := make([]string, 0, len(storage.Keys))
	for _, k := range storage.Keys {
		keys = append(keys, s.key(account, k))
	}

	for range maxTxAttempts {
		err := s.client.Watch(ctx, func(tx *goredis.Tx) error {
			view := &txView{store: s, tx: tx}
			if err := cb(view); err != nil {
				return err
			}

			return view.apply(ctx)
		}, keys...)
		if errors.Is(err, goredis.TxFailedErr) {
			logger.Debug(ctx, "redis transaction conflicted, retrying", zap.String("account", account))

			continue
		}

		return err
	}

	return fmt.Errorf("could not update state of %s: too many conflicting writers", account)
}

// Subscribe implements storage.Storage.
func (s *Store) Subscribe(ctx context.Context, account string, fn func(storage.Change)) error {
	ps := s.client.Subscribe(ctx, s.channel(account))
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()

		return fmt.Errorf("could not subscribe to %s: %w", s.channel(account), err)
	}

	ch := ps.Channel()
	go func() {
		defer func() { _ = ps.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				n, err := storage.DecodeNotification(msg.Payload)
				if err != nil {
					logger.Warn(ctx, "ignoring malformed state notification", zap.Error(err))

					continue
				}
				fn(n.Change(s.origin))
			}
		}
	}()

	return nil
}

// Close closes the Redis connection.
func (s *Store) Close() error {
	return s.client.Close()
}

type write struct {
	account string
	key     storage.Key
	value   []byte
	deleted bool
}

// txView reads through the watched connection and buffers writes until apply.
type txView struct {
	store  *Store
	tx     *goredis.Tx
	writes []write
}

func (v *txView) Get(ctx context.Context, account string, key storage.Key) ([]byte, error) {
	for i := len(v.writes) - 1; i >= 0; i-- {
		if w := v.writes[i]; w.account == account && w.key == key {
			if w.deleted {
				return nil, nil
			}

			return w.value, nil
		}
	}

	return get(ctx, v.tx, v.store.key(account, key))
}

func (v *txView) Put(_ context.Context, account string, key storage.Key, value []byte) error {
	v.writes = append(v.writes, write{account: account, key: key, value: value})

	return nil
}

func (v *txView) Delete(_ context.Context, account string, key storage.Key) error {
	v.writes = append(v.writes, write{account: account, key: key, deleted: true})

	return nil
}

func (v *txView) apply(ctx context.Context) error {
	if len(v.writes) == 0 {
		return nil
	}

	_, err := v.tx.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		for _, w := range v.writes {
			n := storage.Notification{Account: w.account, Key: w.key, Origin: v.store.origin, Deleted: w.deleted, Value: w.value}
			payload, err := n.Encode()
			if err != nil {
				return fmt.Errorf("could not encode notification: %w", err)
			}
			k := v.store.key(w.account, w.key)
			if w.deleted {
				pipe.Del(ctx, k)
			} else {
				pipe.Set(ctx, k, w.value, 0)
			}
			pipe.Publish(ctx, v.store.channel(w.account), payload)
		}

		return nil
	})

	return err
}
