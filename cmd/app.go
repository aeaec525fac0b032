package main

import (
	"context"
	"net/http"
	"time"
	"unfollower/internal/collector"
	"unfollower/internal/config"
	"unfollower/internal/engine"
	"unfollower/internal/state"
	"unfollower/internal/unfollow"
	"unfollower/pkg/browser"
	"unfollower/pkg/domain"
	"unfollower/pkg/letterboxd"
	"unfollower/pkg/letterboxd/web"
	"unfollower/pkg/logger"
	"unfollower/pkg/storage"
	"unfollower/pkg/storage/memory"
	"unfollower/pkg/storage/postgres"
	"unfollower/pkg/storage/redis"
	"unfollower/pkg/storage/sqlite"

	"go.uber.org/zap"
)

// getPostgres creates a PostgreSQL client using configuration values and returns it
// along with a cleanup function to close the connection pool.
func getPostgres(ctx context.Context, cfg *config.Config) (*postgres.PgSQL, func()) {
	pgsql, err := postgres.New(ctx, postgres.Options{
		Username:           cfg.Database.Username,
		Password:           cfg.Database.Password,
		Host:               cfg.Database.Host,
		Port:               cfg.Database.Port,
		Database:           cfg.Database.DatabaseName,
		Channel:            cfg.Database.NotifyChannel,
		ConnMaxLifetime:    cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime:    cfg.Database.ConnMaxIdleTime,
		MaxOpenConnections: cfg.Database.MaxOpenConnections,
		MaxIdleConnections: cfg.Database.MaxIdleConnections,
		SslMode:            cfg.Database.SslMode,
	})
	if err != nil {
		logger.Fatal(ctx, "could not create postgres storage", zap.Error(err))
	}

	return pgsql, func() {
		logger.Info(ctx, "closing postgres client...")
		if err = pgsql.Close(); err != nil {
			logger.Warn(ctx, "could not close postgres connection", zap.Error(err))
		}
	}
}

// openStorage opens the configured backend. The postgres handle is returned
// as well when that backend is selected, since the job queue shares its pool.
func openStorage(ctx context.Context, cfg *config.Config) (storage.Storage, *postgres.PgSQL, func()) {
	var (
		store storage.Storage
		err   error
	)
	switch cfg.Storage.Backend {
	case config.BackendPostgres:
		pgsql, closePg := getPostgres(ctx, cfg)

		return pgsql, pgsql, closePg
	case config.BackendRedis:
		store, err = redis.New(ctx, cfg.Redis.URL)
	case config.BackendSQLite:
		store, err = sqlite.New(ctx, sqlite.Options{
			Path:         cfg.SQLite.Path,
			PollInterval: cfg.SQLite.PollInterval,
		})
	default:
		store = memory.NewHub().Open()
	}
	if err != nil {
		logger.Fatal(ctx, "could not open storage", zap.String("backend", cfg.Storage.Backend), zap.Error(err))
	}

	return store, nil, func() {
		logger.Debug(ctx, "closing storage...", zap.String("backend", cfg.Storage.Backend))
		if err := store.Close(); err != nil {
			logger.Warn(ctx, "could not close storage", zap.Error(err))
		}
	}
}

// need tells setup which parts of the stack a command touches.
type need int

const (
	// needState only reads and writes the persisted lists and options.
	needState need = iota
	// needScan fetches listings.
	needScan
	// needBrowser clicks through profiles or shows a live page.
	needBrowser
)

// app is everything a command works with.
type app struct {
	cfg     *config.Config
	store   storage.Storage
	pgsql   *postgres.PgSQL
	browser *browser.Manager
	state   *state.State
	engine  *engine.Engine

	closers []func()
}

// Close releases the app in reverse order of acquisition.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

func browserOptions(cfg *config.Config) browser.Options {
	return browser.Options{
		ControlURL:  cfg.Browser.ControlURL,
		Bin:         cfg.Browser.Bin,
		UserDataDir: cfg.Browser.UserDataDir,
		Headless:    cfg.Browser.Headless,
		Stealth:     cfg.Browser.Stealth,
		LoadTimeout: cfg.Browser.LoadTimeout,
	}
}

// setup opens storage, starts the browser when n or the configuration
// requires it, resolves the account and builds the engine. Failures are fatal.
func setup(ctx context.Context, cfg *config.Config, n need) *app {
	a := &app{cfg: cfg, browser: browser.NewManager(browserOptions(cfg))}

	store, pgsql, closeStore := openStorage(ctx, cfg)
	a.store, a.pgsql = store, pgsql
	a.closers = append(a.closers, closeStore)

	viaBrowser := cfg.Letterboxd.Fetcher == config.FetcherBrowser
	if n == needBrowser || (n == needScan && viaBrowser) || cfg.Account == "" {
		if err := a.browser.Start(ctx); err != nil {
			a.Close()
			logger.Fatal(ctx, "could not start browser", zap.Error(err))
		}
		a.closers = append(a.closers, func() {
			logger.Debug(ctx, "closing browser...")
			if err := a.browser.Close(); err != nil {
				logger.Warn(ctx, "could not close browser", zap.Error(err))
			}
		})
	}

	fetcher := browser.NewFetcher(a.browser, cfg.Letterboxd.BaseURL)
	account, err := resolveAccount(ctx, cfg, fetcher)
	if err != nil {
		a.Close()
		logger.Fatal(ctx, "could not resolve the account", zap.Error(err))
	}
	ctx = logger.WithAccount(ctx, string(account))

	a.state, err = state.Load(ctx, store, string(account))
	if err != nil {
		a.Close()
		logger.Fatal(ctx, "could not load state", zap.Error(err))
	}

	var client letterboxd.Client = web.New(&http.Client{}, cfg.Letterboxd.BaseURL, cfg.Letterboxd.UserAgent)
	if viaBrowser {
		client = fetcher
	}
	st := a.state
	coll := collector.New(client, collector.NewOptions(cfg), collector.WithTimeout(func() time.Duration {
		return st.Options().ScanTimeout()
	}))
	action := browser.NewUnfollower(a.browser, cfg.Letterboxd.BaseURL, func() time.Duration {
		return st.Options().ClickDelay()
	})
	a.engine = engine.New(st, coll, action, unfollow.NewOptions(cfg, st.Options().Concurrency))

	return a
}

// resolveAccount prefers the configured account and falls back to the
// session signed in to the browser.
func resolveAccount(ctx context.Context, cfg *config.Config, fetcher *browser.Fetcher) (domain.Username, error) {
	if u := domain.Normalize(cfg.Account); u != "" {
		return u, nil
	}
	u, err := fetcher.LoggedInUser(ctx)
	if err != nil {
		return "", err
	}
	logger.Info(ctx, "using the account signed in to the browser", zap.String("account", string(u)))

	return u, nil
}
