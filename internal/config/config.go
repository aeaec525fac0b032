package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Listing fetchers selectable through Letterboxd.Fetcher.
const (
	FetcherHTTP    = "http"
	FetcherBrowser = "browser"
)

// Storage backends selectable through Storage.Backend.
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
	BackendSQLite   = "sqlite"
)

// Config represents the application configuration structure.
// It contains settings for the environment, the account the engine acts for,
// the site, the storage backends, the browser, the engine components, the
// HTTP server and graceful shutdown behavior.
type Config struct {
	// Environment specifies the current running environment (development, production, etc.)
	Environment string `env:"ENVIRONMENT" env-default:"development" yaml:"environment"`

	// Account is the logged-in Letterboxd username all state is scoped to.
	// When empty the browser resolves it from the signed-in session.
	Account string `env:"ACCOUNT" yaml:"account"`

	Letterboxd struct {
		// BaseURL is the site root used for listings and profiles
		BaseURL string `env:"LETTERBOXD_BASE_URL" env-default:"https://letterboxd.com" yaml:"baseURL"`
		// UserAgent is sent with listing requests
		UserAgent string `env:"LETTERBOXD_USER_AGENT" yaml:"userAgent"`
		// Fetcher loads listings over plain HTTP or through the browser session
		Fetcher string `env:"LETTERBOXD_FETCHER" env-default:"http" yaml:"fetcher"`
	} `yaml:"letterboxd"`

	Storage struct {
		// Backend is one of memory, postgres, redis or sqlite
		Backend string `env:"STORAGE_BACKEND" env-default:"sqlite" yaml:"backend"`
	} `yaml:"storage"`

	// Database contains all database connection related configurations
	Database struct {
		// Username for database authentication
		Username string `env:"DATABASE_USERNAME" env-default:"myuser" yaml:"username"`
		// Password for database authentication
		Password string `env:"DATABASE_PASSWORD" env-default:"mypassword" yaml:"password"`
		// Host is the database server hostname or IP address
		Host string `env:"DATABASE_HOST" env-default:"localhost" yaml:"host"`
		// Port is the database server port number
		Port int `env:"DATABASE_PORT" env-default:"5432" yaml:"port"`
		// SslMode defines the SSL mode for the database connection
		SslMode string `env:"DATABASE_SSL_MODE" env-default:"disable" yaml:"sslMode"`
		// DatabaseName is the name of the database to connect to
		DatabaseName string `env:"DATABASE_NAME" env-default:"unfollower" yaml:"name"`
		// MaxOpenConnections limits the number of open connections to the database
		MaxOpenConnections int `env:"DATABASE_MAX_OPEN_CONNECTIONS" env-default:"10" yaml:"maxOpenConnections"`
		// MaxIdleConnections limits the number of connections in the idle connection pool
		MaxIdleConnections int `env:"DATABASE_MAX_IDLE_CONNECTIONS" env-default:"8" yaml:"maxIdleConnections"`
		// ConnMaxLifetime is the maximum amount of time a connection may be reused
		ConnMaxLifetime time.Duration `env:"DATABASE_CONNECTION_MAX_LIFETIME" env-default:"3m" yaml:"connMaxLifetime"`
		// ConnMaxIdleTime is the maximum amount of time a connection may be idle
		ConnMaxIdleTime time.Duration `env:"DATABASE_CONNECTION_MAX_IDLE_TIME" env-default:"3m" yaml:"connMaxIdleTime"`
		// NotifyChannel is the LISTEN/NOTIFY channel carrying state changes
		NotifyChannel string `env:"DATABASE_NOTIFY_CHANNEL" env-default:"unfollower_state" yaml:"notifyChannel"`
	} `yaml:"database"`

	Redis struct {
		// URL is a redis:// connection string
		URL string `env:"REDIS_URL" env-default:"redis://localhost:6379/0" yaml:"url"`
	} `yaml:"redis"`

	SQLite struct {
		// Path is the database file
		Path string `env:"SQLITE_PATH" env-default:"unfollower.db" yaml:"path"`
		// PollInterval is the fallback change poll when file events are missed
		PollInterval time.Duration `env:"SQLITE_POLL_INTERVAL" env-default:"2s" yaml:"pollInterval"`
	} `yaml:"sqlite"`

	Browser struct {
		// ControlURL connects to an already running browser's DevTools endpoint
		// instead of launching one
		ControlURL string `env:"BROWSER_CONTROL_URL" yaml:"controlURL"`
		// Bin overrides the browser binary used by the launcher
		Bin string `env:"BROWSER_BIN" yaml:"bin"`
		// UserDataDir keeps the signed-in session between runs
		UserDataDir string `env:"BROWSER_USER_DATA_DIR" env-default:".unfollower-profile" yaml:"userDataDir"`
		// Headless hides the browser window
		Headless bool `env:"BROWSER_HEADLESS" env-default:"true" yaml:"headless"`
		// Stealth masks common automation fingerprints on every tab
		Stealth bool `env:"BROWSER_STEALTH" env-default:"true" yaml:"stealth"`
		// LoadTimeout bounds navigation of a single tab
		LoadTimeout time.Duration `env:"BROWSER_LOAD_TIMEOUT" env-default:"30s" yaml:"loadTimeout"`
	} `yaml:"browser"`

	Collector struct {
		// Attempts is the number of tries per listing page
		Attempts int `env:"COLLECTOR_ATTEMPTS" env-default:"3" yaml:"attempts"`
		// BackoffStep is multiplied by the attempt number between tries
		BackoffStep time.Duration `env:"COLLECTOR_BACKOFF_STEP" env-default:"400ms" yaml:"backoffStep"`
		// PagePause is the pause between two pages of one listing
		PagePause time.Duration `env:"COLLECTOR_PAGE_PAUSE" env-default:"60ms" yaml:"pagePause"`
		// MaxPages stops runaway pagination; zero means unlimited
		MaxPages int `env:"COLLECTOR_MAX_PAGES" env-default:"0" yaml:"maxPages"`
	} `yaml:"collector"`

	Unfollow struct {
		// TargetTimeout bounds the whole unfollow action for one target
		TargetTimeout time.Duration `env:"UNFOLLOW_TARGET_TIMEOUT" env-default:"60s" yaml:"targetTimeout"`
		// IdlePause is the pause a worker takes after each target
		IdlePause time.Duration `env:"UNFOLLOW_IDLE_PAUSE" env-default:"80ms" yaml:"idlePause"`
	} `yaml:"unfollow"`

	Guard struct {
		// Debounce coalesces bursts of guard signals into one pass
		Debounce time.Duration `env:"GUARD_DEBOUNCE" env-default:"50ms" yaml:"debounce"`
	} `yaml:"guard"`

	Worker struct {
		// MaxWorkers bounds concurrently running background jobs
		MaxWorkers int `env:"WORKER_MAX_WORKERS" env-default:"2" yaml:"maxWorkers"`
		// ScanInterval schedules a periodic scan; zero disables it
		ScanInterval time.Duration `env:"WORKER_SCAN_INTERVAL" env-default:"0s" yaml:"scanInterval"`
		// AutoUnfollow runs the unfollow batch after each periodic scan
		AutoUnfollow bool `env:"WORKER_AUTO_UNFOLLOW" env-default:"false" yaml:"autoUnfollow"`
		// MaxAttempts is the number of tries river gives a failing scan job
		MaxAttempts int `env:"WORKER_MAX_ATTEMPTS" env-default:"3" yaml:"maxAttempts"`
		// JobTimeout bounds one scan job including its unfollow batch
		JobTimeout time.Duration `env:"WORKER_JOB_TIMEOUT" env-default:"30m" yaml:"jobTimeout"`
	} `yaml:"worker"`

	// HTTP contains all HTTP server related configurations
	HTTP struct {
		// Addr is the address and port the HTTP server will listen on
		Addr string `env:"HTTP_ADDR" env-default:":8080" yaml:"addr"`
		// ReadTimeout is the maximum duration for reading the entire request, including the body
		ReadTimeout time.Duration `env:"HTTP_READ_TIMEOUT" env-default:"1m" yaml:"readTimeout"`
		// ReadHeaderTimeout is the amount of time allowed to read request headers
		ReadHeaderTimeout time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" env-default:"10s" yaml:"readHeaderTimeout"`
		// WriteTimeout is the maximum duration before timing out writes of the response
		WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" env-default:"30m" yaml:"writeTimeout"`
		// IdleTimeout is the maximum amount of time to wait for the next request when keep-alives are enabled
		IdleTimeout time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"2m" yaml:"idleTimeout"`
		// RequestTimeout is the maximum time allowed for processing a non-streaming request
		RequestTimeout time.Duration `env:"HTTP_REQUEST_TIMEOUT" env-default:"5m" yaml:"requestTimeout"`
		// MaxHeaderBytes controls the maximum number of bytes the server will read parsing the request header
		MaxHeaderBytes int `env:"HTTP_MAX_HEADER_BYTES" env-default:"0" yaml:"maxHeaderBytes"`
		// MetricsPath defines the URL path where metrics are exposed
		MetricsPath string `env:"HTTP_METRICS_PATH" env-default:"/metrics" yaml:"metricsPath"`
		// AllowedOrigins restricts CORS to these origins; empty allows any origin
		AllowedOrigins []string `env:"HTTP_ALLOWED_ORIGINS" env-separator:"," yaml:"allowedOrigins"`
	} `yaml:"http"`

	JWT struct {
		// PublicKey is the PEM encoded RSA key used to verify API tokens; empty disables auth
		PublicKey string `env:"JWT_PUBLIC_KEY" yaml:"publicKey"`
		// PrivateKey is the PEM encoded RSA key the jwt command signs with
		PrivateKey string `env:"JWT_PRIVATE_KEY" yaml:"privateKey"`
	} `yaml:"jwt"`

	// GracefulShutdownTimeout is the maximum duration to wait for ongoing requests to complete during shutdown
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_TIMEOUT" env-default:"10s" yaml:"gracefulShutdownTimeout"` //nolint: lll
}

// Load receives the path for yaml config file and returns a filled Config struct.
// An empty path reads the environment only.
func Load(configPath string) (*Config, error) {
	var cfg Config
	var err error
	if configPath == "" {
		err = cleanenv.ReadEnv(&cfg)
	} else {
		err = cleanenv.ReadConfig(configPath, &cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("could not read config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate rejects values no component can work with.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendMemory, BackendPostgres, BackendRedis, BackendSQLite:
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	switch c.Letterboxd.Fetcher {
	case FetcherHTTP, FetcherBrowser:
	default:
		return fmt.Errorf("unknown listing fetcher %q", c.Letterboxd.Fetcher)
	}
	if c.Collector.Attempts < 1 {
		return fmt.Errorf("collector.attempts must be at least 1, got %d", c.Collector.Attempts)
	}

	return nil
}
