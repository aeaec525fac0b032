package postgres

import (
	"context"
	"fmt"
	"unfollower/pkg/storage"

	"github.com/doug-martin/goqu/v9"
)

// Get implements storage.StateStorage.
func (p *PgSQL) Get(ctx context.Context, account string, key storage.Key) ([]byte, error) {
	var row PgState
	found, err := p.Builder.From(stateTable).
		Select("account", "key", "value", "origin").
		Where(goqu.C("account").Eq(account), goqu.C("key").Eq(string(key))).
		ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not get %s: %w", key.Scoped(account), err)
	}
	if !found {
		return nil, nil
	}

	return []byte(row.Value), nil
}

// Put implements storage.StateStorage. Outside a transaction the upsert and
// its notification run in one.
func (p *PgSQL) Put(ctx context.Context, account string, key storage.Key, value []byte) error {
	if p.Pool != nil {
		return p.WithTx(ctx, account, func(tx storage.StateStorage) error {
			return tx.Put(ctx, account, key, value)
		})
	}

	row := newPgState(account, string(key), value, p.origin)
	_, err := p.Builder.Insert(stateTable).
		Rows(row).
		OnConflict(goqu.DoUpdate("account, key", goqu.Record{
			"value":      goqu.L("EXCLUDED.value"),
			"origin":     goqu.L("EXCLUDED.origin"),
			"updated_at": goqu.L("now()"),
		})).
		Executor().ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("could not put %s: %w", key.Scoped(account), err)
	}

	return p.notify(ctx, storage.Notification{Account: account, Key: key, Origin: p.origin})
}

// Delete implements storage.StateStorage.
func (p *PgSQL) Delete(ctx context.Context, account string, key storage.Key) error {
	if p.Pool != nil {
		return p.WithTx(ctx, account, func(tx storage.StateStorage) error {
			return tx.Delete(ctx, account, key)
		})
	}

	_, err := p.Builder.Delete(stateTable).
		Where(goqu.C("account").Eq(account), goqu.C("key").Eq(string(key))).
		Executor().ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("could not delete %s: %w", key.Scoped(account), err)
	}

	return p.notify(ctx, storage.Notification{Account: account, Key: key, Origin: p.origin, Deleted: true})
}

// notify queues a NOTIFY. Values are not carried because payloads are capped
// at 8000 bytes; listeners read the row back.
func (p *PgSQL) notify(ctx context.Context, n storage.Notification) error {
	payload, err := n.Encode()
	if err != nil {
		return fmt.Errorf("could not encode notification: %w", err)
	}
	if _, err := p.DB.ExecContext(ctx, `SELECT pg_notify($1, $2)`, p.channel, payload); err != nil {
		return fmt.Errorf("could not notify: %w", err)
	}

	return nil
}
