// Package storage defines the account-scoped key-value storage the engine
// persists its state in, and the change notifications that keep concurrently
// open execution contexts in sync. Backends (memory, PostgreSQL, Redis,
// SQLite) live in sub-packages.
//
//go:generate mockgen -package mockstorage -source=interface.go -destination=mock/mockstorage.go *
package storage

import (
	"context"
	"fmt"
)

// Key names one of the values stored per account.
type Key string

const (
	// KeyExceptions holds the exception set as a JSON list of strings.
	KeyExceptions Key = "exceptions"
	// KeyUnfollowed holds the unfollowed set as a JSON list of strings.
	KeyUnfollowed Key = "unfollowed"
	// KeyOptions holds the options object.
	KeyOptions Key = "options"
	// KeyUIOpen holds whether the control surface is open, as a JSON bool.
	KeyUIOpen Key = "ui_open"
)

// Keys lists every key in a stable order.
var Keys = []Key{KeyExceptions, KeyUnfollowed, KeyOptions, KeyUIOpen} //nolint: gochecknoglobals

// Scoped returns the flat, account-scoped name of k ("lbxd_unfollowed_alice").
func (k Key) Scoped(account string) string {
	return fmt.Sprintf("lbxd_%s_%s", k, account)
}

// Change describes a write observed by a subscriber.
type Change struct {
	Account string
	Key     Key
	// Value is the stored value after the write; nil after a delete.
	Value []byte
	// Origin identifies the handle that wrote the value.
	Origin string
	// Remote is true when the write came from a different handle than the
	// subscribing one.
	Remote bool
}

// StateStorage reads and writes whole values. Every write replaces the value.
type StateStorage interface {
	// Get returns the stored value, or nil when the key is absent.
	Get(ctx context.Context, account string, key Key) ([]byte, error)
	// Put replaces the stored value and notifies subscribers.
	Put(ctx context.Context, account string, key Key, value []byte) error
	// Delete removes the value and notifies subscribers.
	Delete(ctx context.Context, account string, key Key) error
}

// TxStorage is a StateStorage bound to a transaction. Implementations become
// unusable after Commit or Rollback.
type TxStorage interface {
	StateStorage

	// Commit finalizes the transaction, persisting all changes.
	Commit() error
	// Rollback aborts the transaction, discarding all uncommitted changes.
	Rollback() error
}

// Storage is a handle on a backend. One handle is one execution context: it
// has its own origin, and changes written through it are delivered to its own
// subscribers with Remote set to false.
type Storage interface {
	StateStorage

	// Origin returns the identifier stamped on writes made through this handle.
	Origin() string
	// Subscribe delivers changes to the account's keys to fn until ctx is
	// done. It returns once the subscription is established. Calls to fn are
	// sequential per subscription.
	Subscribe(ctx context.Context, account string, fn func(Change)) error
	// WithTx runs cb as one read-modify-write unit over the account's keys.
	// Notifications for writes made inside cb are delivered after it succeeds.
	WithTx(ctx context.Context, account string, cb func(tx StateStorage) error) error
	// Close releases any resources held by the storage implementation. After
	// Close, the instance should not be used.
	Close() error
}
