package sqlite

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"
	"unfollower/pkg/logger"
	"unfollower/pkg/storage"

	"github.com/doug-martin/goqu/v9"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Subscribe implements storage.Storage. Changes are found by querying rows
// whose version is newer than the last one delivered; the query runs when
// fsnotify reports a write to the database, its WAL or journal, and on a
// fallback ticker.
func (s *Store) Subscribe(ctx context.Context, account string, fn func(storage.Change)) error {
	last, err := s.maxVersion(ctx, account)
	if err != nil {
		return err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("could not create file watcher: %w", err)
	}
	dir, base := filepath.Split(s.path)
	if dir == "" {
		dir = "."
	}
	if err := w.Add(dir); err != nil {
		_ = w.Close()

		return fmt.Errorf("could not watch %s: %w", dir, err)
	}

	go func() {
		defer func() { _ = w.Close() }()

		ticker := time.NewTicker(s.poll)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if !strings.HasPrefix(filepath.Base(ev.Name), base) || !ev.Has(fsnotify.Write|fsnotify.Create) {
					continue
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				logger.Warn(ctx, "sqlite watcher error", zap.String("path", s.path), zap.Error(err))

				continue
			case <-ticker.C:
			}

			if last, err = s.deliver(ctx, account, last, fn); err != nil && ctx.Err() == nil {
				logger.Warn(ctx, "could not read sqlite changes", zap.String("path", s.path), zap.Error(err))
			}
		}
	}()

	return nil
}

func (s *Store) maxVersion(ctx context.Context, account string) (int64, error) {
	var v int64
	if _, err := s.builder.From(stateTable).
		Select(goqu.COALESCE(goqu.MAX("version"), 0)).
		Where(goqu.C("account").Eq(account)).
		ScanValContext(ctx, &v); err != nil {
		return 0, fmt.Errorf("could not read state version: %w", err)
	}

	return v, nil
}

// deliver calls fn for every row of account newer than after, oldest first,
// and returns the newest version seen.
func (s *Store) deliver(ctx context.Context, account string, after int64, fn func(storage.Change)) (int64, error) {
	var rows []row
	err := s.builder.From(stateTable).
		Select("account", "key", "value", "origin", "version", "deleted").
		Where(goqu.C("account").Eq(account), goqu.C("version").Gt(after)).
		Order(goqu.C("version").Asc()).
		ScanStructsContext(ctx, &rows)
	if err != nil {
		return after, err
	}

	for _, r := range rows {
		c := storage.Change{
			Account: r.Account,
			Key:     storage.Key(r.Key),
			Origin:  r.Origin,
			Remote:  r.Origin != s.origin,
		}
		if !r.Deleted {
			c.Value = r.Value
			if c.Value == nil {
				c.Value = []byte{}
			}
		}
		fn(c)
		after = r.Version
	}

	return after, nil
}
