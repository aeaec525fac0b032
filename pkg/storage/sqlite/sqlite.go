// Package sqlite implements storage.Storage on a local SQLite file. Several
// processes (or handles) may share the file; each row carries a global
// version so subscribers can pick up other writers' changes when fsnotify
// reports activity on the database files.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"time"
	root "unfollower"
	"unfollower/pkg/storage"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3"
	"github.com/google/uuid"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

const (
	stateTable = "account_state"

	// DefaultPollInterval bounds how stale a subscriber can get when file
	// events are missed.
	DefaultPollInterval = 2 * time.Second
)

// Options configures a Store.
type Options struct {
	// Path is the database file.
	Path string
	// PollInterval is the fallback polling period for subscriptions.
	PollInterval time.Duration
}

// Store is a SQLite-backed storage handle.
type Store struct {
	db      *sql.DB
	builder *goqu.Database
	path    string
	origin  string
	poll    time.Duration
}

var _ storage.Storage = (*Store)(nil)

// New opens (and migrates) the database file.
func New(ctx context.Context, options Options) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_txlock=immediate", options.Path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("could not open sqlite: %w", err)
	}
	if err := migrate(ctx, db); err != nil {
		_ = db.Close()

		return nil, err
	}

	poll := options.PollInterval
	if poll <= 0 {
		poll = DefaultPollInterval
	}

	return &Store{
		db:      db,
		builder: goqu.New("sqlite3", db),
		path:    options.Path,
		origin:  uuid.NewString(),
		poll:    poll,
	}, nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	fsys, err := fs.Sub(root.Migrations, "migrations/sqlite")
	if err != nil {
		return fmt.Errorf("could not open sqlite migrations: %w", err)
	}
	provider, err := goose.NewProvider(goose.DialectSQLite3, db, fsys)
	if err != nil {
		return fmt.Errorf("could not create migration provider: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("could not migrate sqlite: %w", err)
	}

	return nil
}

// Origin implements storage.Storage.
func (s *Store) Origin() string { return s.origin }

// Close implements storage.Storage.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get implements storage.StateStorage.
func (s *Store) Get(ctx context.Context, account string, key storage.Key) ([]byte, error) {
	return get(ctx, s.builder, account, key)
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

// WithTx runs cb in an IMMEDIATE transaction, so concurrent writers on the
// file serialize.
func (s *Store) WithTx(ctx context.Context, _ string, cb func(tx storage.StateStorage) error) error {
	tx, err := s.builder.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin tx: %w", err)
	}

	if err := cb(&txView{tx: tx, origin: s.origin}); err != nil {
		_ = tx.Rollback()

		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("could not commit tx: %w", err)
	}

	return nil
}

// querier is satisfied by *goqu.Database and *goqu.TxDatabase.
type querier interface {
	From(from ...interface{}) *goqu.SelectDataset
}

type row struct {
	Account string         `db:"account"`
	Key     string         `db:"key"`
	Value   []byte         `db:"value"`
	Origin  string         `db:"origin"`
	Version int64          `db:"version"`
	Deleted bool           `db:"deleted"`
	Updated sql.NullString `db:"updated_at" goqu:"skipinsert"`
}

func get(ctx context.Context, q querier, account string, key storage.Key) ([]byte, error) {
	var r row
	found, err := q.From(stateTable).
		Select("account", "key", "value", "origin", "version", "deleted").
		Where(goqu.C("account").Eq(account), goqu.C("key").Eq(string(key)), goqu.C("deleted").Eq(0)).
		ScanStructContext(ctx, &r)
	if err != nil {
		return nil, fmt.Errorf("could not get %s: %w", key.Scoped(account), err)
	}
	if !found {
		return nil, nil
	}
	if r.Value == nil {
		return []byte{}, nil
	}

	return r.Value, nil
}

type txView struct {
	tx     *goqu.TxDatabase
	origin string
}

func (t *txView) Get(ctx context.Context, account string, key storage.Key) ([]byte, error) {
	return get(ctx, t.tx, account, key)
}

func (t *txView) Put(ctx context.Context, account string, key storage.Key, value []byte) error {
	if value == nil {
		value = []byte{}
	}

	return t.upsert(ctx, row{Account: account, Key: string(key), Value: value, Origin: t.origin})
}

// Delete leaves a tombstone so subscribers observe the removal.
func (t *txView) Delete(ctx context.Context, account string, key storage.Key) error {
	return t.upsert(ctx, row{Account: account, Key: string(key), Origin: t.origin, Deleted: true})
}

func (t *txView) upsert(ctx context.Context, r row) error {
	var version int64
	if _, err := t.tx.From(stateTable).
		Select(goqu.COALESCE(goqu.MAX("version"), 0)).
		ScanValContext(ctx, &version); err != nil {
		return fmt.Errorf("could not read state version: %w", err)
	}
	r.Version = version + 1

	_, err := t.tx.Insert(stateTable).
		Rows(r).
		OnConflict(goqu.DoUpdate("account, key", goqu.Record{
			"value":      goqu.L("excluded.value"),
			"origin":     goqu.L("excluded.origin"),
			"version":    goqu.L("excluded.version"),
			"deleted":    goqu.L("excluded.deleted"),
			"updated_at": goqu.L("strftime('%Y-%m-%dT%H:%M:%fZ', 'now')"),
		})).
		Executor().ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("could not write %s: %w", storage.Key(r.Key).Scoped(r.Account), err)
	}

	return nil
}
