// Package browser drives a Chromium instance through rod: isolated tabs for
// unfollow actions and listing fetches, and guarded live views of the site.
package browser

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
	"unfollower/pkg/logger"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
	"go.uber.org/zap"
)

// ErrNotStarted is returned when a tab is requested before Start.
var ErrNotStarted = errors.New("browser is not started")

// Options configure how the browser is obtained and how tabs load.
type Options struct {
	// ControlURL connects to a running browser instead of launching one.
	ControlURL string
	// Bin overrides the launched binary.
	Bin string
	// UserDataDir keeps the signed-in session of a launched browser.
	UserDataDir string
	Headless    bool
	// Stealth opens every tab with automation fingerprints masked.
	Stealth bool
	// LoadTimeout bounds navigation and load of one tab.
	LoadTimeout time.Duration
}

// Manager owns the browser connection.
type Manager struct {
	opts Options

	mu      sync.RWMutex
	browser *rod.Browser
	lnch    *launcher.Launcher
}

// NewManager creates a Manager. Call Start before opening tabs.
func NewManager(opts Options) *Manager {
	if opts.LoadTimeout <= 0 {
		opts.LoadTimeout = 30 * time.Second
	}

	return &Manager{opts: opts}
}

// Start launches the browser, or connects to ControlURL.
func (m *Manager) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.browser != nil {
		return nil
	}

	wsURL := m.opts.ControlURL
	if wsURL == "" {
		l := launcher.New().
			Headless(m.opts.Headless).
			Set("disable-blink-features", "AutomationControlled")
		if m.opts.Bin != "" {
			l = l.Bin(m.opts.Bin)
		}
		if m.opts.UserDataDir != "" {
			l = l.UserDataDir(m.opts.UserDataDir)
		}
		u, err := l.Context(ctx).Launch()
		if err != nil {
			return fmt.Errorf("could not launch browser: %w", err)
		}
		wsURL = u
		m.lnch = l
		logger.Info(ctx, "launched browser", zap.String("url", wsURL), zap.Bool("headless", m.opts.Headless))
	} else {
		logger.Info(ctx, "connecting to browser", zap.String("url", wsURL))
	}

	b := rod.New().ControlURL(wsURL)
	if err := b.Connect(); err != nil {
		m.cleanup()

		return fmt.Errorf("could not connect to browser: %w", err)
	}
	m.browser = b

	return nil
}

// Close disconnects and, for launched browsers, kills the process.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var err error
	if m.browser != nil {
		err = m.browser.Close()
		m.browser = nil
	}
	m.cleanup()

	return err
}

func (m *Manager) cleanup() {
	if m.lnch != nil {
		m.lnch.Cleanup()
		m.lnch = nil
	}
}

// Open creates a new tab, navigates it to pageURL and waits for the load
// event. The caller closes the returned page.
func (m *Manager) Open(ctx context.Context, pageURL string) (*rod.Page, error) {
	m.mu.RLock()
	b := m.browser
	m.mu.RUnlock()
	if b == nil {
		return nil, ErrNotStarted
	}

	var page *rod.Page
	var err error
	if m.opts.Stealth {
		page, err = stealth.Page(b)
	} else {
		page, err = b.Page(proto.TargetCreateTarget{URL: ""})
	}
	if err != nil {
		return nil, fmt.Errorf("could not create tab: %w", err)
	}

	navCtx, cancel := context.WithTimeout(ctx, m.opts.LoadTimeout)
	defer cancel()

	if err := page.Context(navCtx).Navigate(pageURL); err != nil {
		_ = page.Close()

		return nil, fmt.Errorf("could not navigate to %s: %w", pageURL, err)
	}
	if err := page.Context(navCtx).WaitLoad(); err != nil {
		_ = page.Close()

		return nil, fmt.Errorf("could not load %s: %w", pageURL, err)
	}

	return page, nil
}
