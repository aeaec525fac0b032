// Package memory provides an in-process storage backend. A Hub holds the data;
// each handle opened on it is a separate execution context, which makes it the
// backend of choice for tests and for single-process multi-view setups.
package memory

import (
	"context"
	"slices"
	"sync"
	"unfollower/pkg/storage"

	"github.com/google/uuid"
)

type entry struct {
	account string
	key     storage.Key
}

type subscriber struct {
	account string
	self    string
	fn      func(storage.Change)
	mu      sync.Mutex // serializes deliveries to fn
}

// Hub is the shared backing store.
type Hub struct {
	mu     sync.Mutex
	values map[entry][]byte
	subs   []*subscriber
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{values: make(map[entry][]byte)}
}

// Open returns a new handle with its own origin.
func (h *Hub) Open() *Store {
	return &Store{hub: h, origin: uuid.NewString()}
}

func (h *Hub) notify(changes []storage.Change) {
	h.mu.Lock()
	subs := slices.Clone(h.subs)
	h.mu.Unlock()

	for _, c := range changes {
		for _, s := range subs {
			if s.account != c.Account {
				continue
			}
			delivered := c
			delivered.Remote = c.Origin != s.self
			delivered.Value = slices.Clone(c.Value)
			s.mu.Lock()
			s.fn(delivered)
			s.mu.Unlock()
		}
	}
}

// Store is one handle on a Hub.
type Store struct {
	hub    *Hub
	origin string
}

var _ storage.Storage = (*Store)(nil)

// Origin implements storage.Storage.
func (s *Store) Origin() string { return s.origin }

// Get implements storage.StateStorage.
func (s *Store) Get(_ context.Context, account string, key storage.Key) ([]byte, error) {
	s.hub.mu.Lock()
	defer s.hub.mu.Unlock()

	return slices.Clone(s.hub.values[entry{account, key}]), nil
}

// Put implements storage.StateStorage. Subscribers are called synchronously
// before Put returns.
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

// WithTx runs cb while holding the hub lock. Writes are buffered and applied
// only when cb succeeds.
func (s *Store) WithTx(_ context.Context, _ string, cb func(tx storage.StateStorage) error) error {
	s.hub.mu.Lock()
	tx := &txView{store: s, writes: map[entry][]byte{}}
	if err := cb(tx); err != nil {
		s.hub.mu.Unlock()

		return err
	}
	for _, e := range tx.order {
		v := tx.writes[e]
		if v == nil {
			delete(s.hub.values, e)
		} else {
			s.hub.values[e] = v
		}
	}
	s.hub.mu.Unlock()

	changes := make([]storage.Change, 0, len(tx.order))
	for _, e := range tx.order {
		changes = append(changes, storage.Change{Account: e.account, Key: e.key, Value: tx.writes[e], Origin: s.origin})
	}
	s.hub.notify(changes)

	return nil
}

// Subscribe implements storage.Storage.
func (s *Store) Subscribe(ctx context.Context, account string, fn func(storage.Change)) error {
	sub := &subscriber{account: account, self: s.origin, fn: fn}
	s.hub.mu.Lock()
	s.hub.subs = append(s.hub.subs, sub)
	s.hub.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.hub.mu.Lock()
		s.hub.subs = slices.DeleteFunc(s.hub.subs, func(x *subscriber) bool { return x == sub })
		s.hub.mu.Unlock()
	}()

	return nil
}

// Close implements storage.Storage.
func (s *Store) Close() error { return nil }

// txView reads through to the hub (already locked) and buffers writes.
type txView struct {
	store  *Store
	writes map[entry][]byte
	order  []entry
}

func (t *txView) Get(_ context.Context, account string, key storage.Key) ([]byte, error) {
	e := entry{account, key}
	if v, ok := t.writes[e]; ok {
		return slices.Clone(v), nil
	}

	return slices.Clone(t.store.hub.values[e]), nil
}

func (t *txView) Put(_ context.Context, account string, key storage.Key, value []byte) error {
	if value == nil {
		value = []byte{}
	}
	t.record(entry{account, key}, slices.Clone(value))

	return nil
}

func (t *txView) Delete(_ context.Context, account string, key storage.Key) error {
	t.record(entry{account, key}, nil)

	return nil
}

func (t *txView) record(e entry, v []byte) {
	if _, ok := t.writes[e]; !ok {
		t.order = append(t.order, e)
	}
	t.writes[e] = v
}
