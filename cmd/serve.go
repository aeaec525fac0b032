package main

import (
	"context"
	"errors"
	"net/http"
	"unfollower/internal/api"
	"unfollower/internal/api/handler/v1handler"
	"unfollower/internal/config"
	"unfollower/internal/worker"
	"unfollower/pkg/logger"
	"unfollower/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func setupServer(ctx context.Context, cfg *config.Config, deps api.Deps) func(ctx context.Context) {
	server, err := api.NewServer(deps, api.NewOptions(cfg))
	if err != nil {
		logger.Fatal(ctx, "could not create webserver", zap.Error(err))
	}

	go func() {
		logger.Info(ctx, "starting webserver...", zap.String("addr", cfg.HTTP.Addr))
		if err := server.ListenAndServe(); err != nil {
			if !errors.Is(err, http.ErrServerClosed) {
				logger.Error(ctx, "could not start webserver", zap.Error(err))
			}
		}
	}()

	return func(ctx context.Context) {
		logger.Info(ctx, "stopping webserver...")
		if err := server.Shutdown(ctx); err != nil {
			logger.Error(ctx, "could not stop webserver", zap.Error(err))
		}
	}
}

// setupWorkers starts the scan job queue. It needs the postgres backend and
// returns a nil queue otherwise.
func setupWorkers(ctx context.Context, cfg *config.Config, a *app) (v1handler.Queue, func(ctx context.Context)) {
	if a.pgsql == nil {
		logger.Info(ctx, "background scans need the postgres backend, job queue disabled",
			zap.String("backend", cfg.Storage.Backend))

		return nil, func(context.Context) {}
	}

	opts := worker.NewOptions(cfg)
	client, err := worker.Start(ctx, a.pgsql.Pool, a.engine, opts)
	if err != nil {
		logger.Fatal(ctx, "could not start workers", zap.Error(err))
	}

	return worker.NewQueue(client, a.state.Account(), opts), func(ctx context.Context) {
		logger.Info(ctx, "stopping workers...")
		if err := client.Stop(ctx); err != nil {
			logger.Error(ctx, "could not stop workers", zap.Error(err))
		}
	}
}

func serveCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Starts API server and background workers",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			ctx, stop := interruptible(context.Background())
			defer stop()

			provider, err := metrics.Setup(prometheus.DefaultRegisterer)
			if err != nil {
				logger.Fatal(ctx, "could not set up metrics", zap.Error(err))
			}

			a := setup(ctx, cfg, needBrowser)
			defer a.Close()

			// follow changes made by other processes sharing the backend
			if err := a.state.Watch(ctx); err != nil {
				logger.Fatal(ctx, "could not watch state", zap.Error(err))
			}

			queue, stopWorkers := setupWorkers(ctx, cfg, a)
			stopWebserver := setupServer(ctx, cfg, api.Deps{
				Deps:          v1handler.Deps{Engine: a.engine, Queue: queue},
				MeterProvider: provider,
			})

			// wait for interrupt
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.GracefulShutdownTimeout)
			defer cancel()

			stopWebserver(shutdownCtx)
			stopWorkers(shutdownCtx)
			if err := provider.Shutdown(shutdownCtx); err != nil {
				logger.Warn(shutdownCtx, "could not shut down meter provider", zap.Error(err))
			}
		},
	}

	return cmd
}
