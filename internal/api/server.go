// Package api configures and exposes the HTTP server, routes,
// metrics, docs and related middleware of the unfollow engine.
package api

import (
	_ "embed"
	"fmt"
	"net/http"
	"time"
	"unfollower/internal/api/handler/v1handler"
	"unfollower/internal/api/specs/v1specs"
	"unfollower/internal/config"
	"unfollower/pkg/controller"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/swaggest/swgui/v5emb"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// v1Spec contains the embedded OpenAPI specification for version 1 of the API.
//
//go:embed specs/v1.yaml
var v1Spec []byte

// PprofPrefix is where the profiling endpoints are mounted.
const PprofPrefix = "/debug/pprof/"

// Options holds configuration for the HTTP server and its dependencies.
// It is typically created from a config.Config via NewOptions.
// All durations are used to configure server timeouts, and zero values
// should be considered as using the defaults provided by net/http where applicable.
type Options struct {
	// SecHandlerOptions configures bearer authentication for v1 endpoints.
	SecHandlerOptions *v1handler.SecHandlerOptions

	// Addr is the TCP address the server listens on, e.g. ":8080".
	Addr string
	// ReadTimeout is the maximum duration for reading the entire request, including the body.
	ReadTimeout time.Duration
	// ReadHeaderTimeout is the amount of time allowed to read request headers.
	ReadHeaderTimeout time.Duration
	// WriteTimeout is the maximum duration before timing out writes of the
	// response. It also bounds the streaming unfollow endpoint.
	WriteTimeout time.Duration
	// IdleTimeout is the maximum amount of time to wait for the next request when keep-alives are enabled.
	IdleTimeout time.Duration
	// RequestTimeout is applied via http.TimeoutHandler to every v1 request
	// except the streaming unfollow endpoint.
	RequestTimeout time.Duration
	// MaxHeaderBytes controls the maximum number of bytes the server
	// will read parsing the request header's keys and values, including the request line.
	MaxHeaderBytes int
	// MetricsPath is the HTTP path at which Prometheus metrics are served.
	MetricsPath string
	// AllowedOrigins restricts CORS; empty allows any origin.
	AllowedOrigins []string
}

// NewOptions constructs an Options value from the provided application configuration.
// It maps HTTP server-related settings from config.Config to the Options used by the API server.
func NewOptions(cfg *config.Config) Options {
	return Options{
		SecHandlerOptions: v1handler.NewSecHandlerOptions(cfg),

		Addr:              cfg.HTTP.Addr,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
		RequestTimeout:    cfg.HTTP.RequestTimeout,
		MaxHeaderBytes:    cfg.HTTP.MaxHeaderBytes,
		MetricsPath:       cfg.HTTP.MetricsPath,
		AllowedOrigins:    cfg.HTTP.AllowedOrigins,
	}
}

// Deps are the server dependencies. Gatherer serves the metrics endpoint and
// MeterProvider records the generated server's metrics; nil values use the
// default Prometheus registry and the global meter provider.
type Deps struct {
	v1handler.Deps

	Gatherer      prometheus.Gatherer
	MeterProvider metric.MeterProvider
}

// NewServer wires up and returns a configured *http.Server using the provided Options.
// It sets up:
// - Prometheus metrics endpoint (MetricsPath)
// - Embedded OpenAPI v1 spec and Swagger UI
// - v1 API routes backed by the generated server and handlers
// - the streaming unfollow and backup routes next to it
// - pprof endpoints for profiling
// It also wraps the mux with CORS and logging middlewares.
func NewServer(deps Deps, opts Options) (*http.Server, error) {
	mux := http.NewServeMux()

	// prometheus metrics server
	gatherer := deps.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	mux.Handle(opts.MetricsPath, promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	// v1 specs file
	mux.HandleFunc("GET /specs/v1.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(v1Spec)
	})
	// v1 api swagger playground
	mux.Handle("/v1/docs/", v5emb.New(
		"Letterboxd Unfollower",
		"/specs/v1.yaml",
		"/v1/docs/",
	))

	// v1 api
	secHandler, err := v1handler.NewSecHandler(opts.SecHandlerOptions, deps.Engine.Account())
	if err != nil {
		return nil, fmt.Errorf("could not create sec handler: %w", err)
	}
	mp := deps.MeterProvider
	if mp == nil {
		mp = otel.GetMeterProvider()
	}
	v1 := v1handler.New(deps.Deps)
	v1Srv, err := v1specs.NewServer(v1,
		secHandler,
		v1specs.WithMeterProvider(mp),
		v1specs.WithPathPrefix("/v1"),
		v1specs.WithMiddleware(secHandler.RequireSubject))
	if err != nil {
		return nil, fmt.Errorf("could not create v1 api server: %w", err)
	}
	timeout := func(h http.Handler) http.Handler {
		if opts.RequestTimeout <= 0 {
			return h
		}

		return http.TimeoutHandler(h, opts.RequestTimeout, `{"code":"TIMEOUT","message":"request timed out"}`)
	}
	mux.Handle("/v1/", timeout(v1Srv))
	mux.Handle("POST /v1/unfollow", secHandler.Middleware(v1, http.HandlerFunc(v1.Unfollow)))
	mux.Handle("GET /v1/export", timeout(secHandler.Middleware(v1, http.HandlerFunc(v1.Export))))
	mux.Handle("POST /v1/import", timeout(secHandler.Middleware(v1, http.HandlerFunc(v1.Import))))

	// pprof
	mux.Handle(PprofPrefix, controller.PprofMux(PprofPrefix))

	// cors
	handler := controller.WithCORS(opts.AllowedOrigins, mux)

	// logger
	handler = controller.WithLogger(handler)

	return &http.Server{
		Addr:              opts.Addr,
		Handler:           handler,
		ReadTimeout:       opts.ReadTimeout,
		ReadHeaderTimeout: opts.ReadHeaderTimeout,
		WriteTimeout:      opts.WriteTimeout,
		IdleTimeout:       opts.IdleTimeout,
		MaxHeaderBytes:    opts.MaxHeaderBytes,
	}, nil
}
