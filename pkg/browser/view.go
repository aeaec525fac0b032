package browser

import (
	"context"
	_ "embed"
	"fmt"
	"net/url"
	"sync"
	"unfollower/pkg/domain"
	"unfollower/pkg/letterboxd"
	"unfollower/pkg/logger"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

//go:embed guard.js
var guardJS string

const bindingName = "__lbxdGuardBinding"

// Event kinds reported by the injected guard script.
const (
	EventReady     = "ready"
	EventStructure = "structure"
	EventBlocked   = "blocked"
)

// Event is one message from the injected guard script.
type Event struct {
	Op    string `json:"op"`
	Value string `json:"value"`
}

// guardConfig is handed to the injected script. maxDepth counts the click
// target as the first level. Enabled and Blocked seed the click listener of
// every new document until the next sync.
type guardConfig struct {
	Enabled      bool     `json:"enabled"`
	Blocked      []string `json:"blocked"`
	Binding      string   `json:"binding"`
	Follow       string   `json:"follow"`
	Wrapper      string   `json:"wrapper"`
	Reserved     []string `json:"reserved"`
	MaxDepth     int      `json:"maxDepth"`
	BlockedAttr  string   `json:"blockedAttr"`
	LabelAttr    string   `json:"labelAttr"`
	StyleAttr    string   `json:"styleAttr"`
	BlockedTitle string   `json:"blockedTitle"`
	BlockedLabel string   `json:"blockedLabel"`
	BlockedStyle string   `json:"blockedStyle"`
}

func script(maxDepth int, enabled bool, blocked []string) (string, error) {
	if blocked == nil {
		blocked = []string{}
	}
	b, err := json.Marshal(guardConfig{
		Enabled:      enabled,
		Blocked:      blocked,
		Binding:      bindingName,
		Follow:       letterboxd.FollowControlSelector,
		Wrapper:      letterboxd.FollowWrapperSelector,
		Reserved:     letterboxd.ReservedSections,
		MaxDepth:     maxDepth,
		BlockedAttr:  letterboxd.BlockedAttr,
		LabelAttr:    letterboxd.LabelAttr,
		StyleAttr:    letterboxd.StyleAttr,
		BlockedTitle: letterboxd.BlockedTitle,
		BlockedLabel: letterboxd.BlockedLabel,
		BlockedStyle: letterboxd.BlockedStyle,
	})
	if err != nil {
		return "", err
	}

	return "window.__lbxdGuardConfig = " + string(b) + ";\n" + guardJS, nil
}

// View is a live, guarded tab. It implements domain.View over the page's
// DOM and the guard Syncer contract, and reports page events through Run.
type View struct {
	page     *rod.Page
	maxDepth int

	mu     sync.Mutex
	remove func() error
}

var _ domain.View = (*View)(nil)

// OpenView opens pageURL in a tab with the guard script installed on the
// current and every future document of the tab. maxDepth bounds the click
// resolution walk.
func (m *Manager) OpenView(ctx context.Context, pageURL string, maxDepth int) (*View, error) {
	js, err := script(maxDepth, false, nil)
	if err != nil {
		return nil, fmt.Errorf("could not build guard script: %w", err)
	}

	page, err := m.Open(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	if err := (proto.RuntimeAddBinding{Name: bindingName}).Call(page); err != nil {
		_ = page.Close()

		return nil, fmt.Errorf("could not add guard binding: %w", err)
	}
	remove, err := page.EvalOnNewDocument(js)
	if err != nil {
		_ = page.Close()

		return nil, fmt.Errorf("could not install guard script: %w", err)
	}
	if _, err := page.Eval("() => { " + js + " }"); err != nil {
		_ = remove()
		_ = page.Close()

		return nil, fmt.Errorf("could not inject guard script: %w", err)
	}

	return &View{page: page, maxDepth: maxDepth, remove: remove}, nil
}

// Page exposes the underlying tab.
func (v *View) Page() *rod.Page { return v.page }

// Run delivers the script's events to fn until ctx is done. It blocks.
func (v *View) Run(ctx context.Context, fn func(Event)) {
	wait := v.page.Context(ctx).EachEvent(func(e *proto.RuntimeBindingCalled) {
		if e.Name != bindingName {
			return
		}
		var ev Event
		if err := json.Unmarshal([]byte(e.Payload), &ev); err != nil {
			logger.Warn(ctx, "could not parse guard event", zap.Error(err))

			return
		}
		fn(ev)
	})
	wait()
}

// Close uninstalls the script and closes the tab.
func (v *View) Close() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.remove != nil {
		_ = v.remove()
		v.remove = nil
	}

	return v.page.Close()
}

// SyncGuard pushes the guard's state to the in-page click listener and
// reinstalls the new-document script seeded with it, so the next navigation
// is guarded before its first sync.
func (v *View) SyncGuard(ctx context.Context, enabled bool, blocked []domain.Username) error {
	names := make([]string, 0, len(blocked))
	for _, u := range blocked {
		names = append(names, string(u))
	}
	if err := v.reseed(enabled, names); err != nil {
		return err
	}
	_, err := v.page.Context(ctx).Eval(`(enabled, blocked) => window.__lbxdGuard && window.__lbxdGuard.sync(enabled, blocked)`,
		enabled, names)

	return err
}

func (v *View) reseed(enabled bool, blocked []string) error {
	js, err := script(v.maxDepth, enabled, blocked)
	if err != nil {
		return fmt.Errorf("could not build guard script: %w", err)
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if v.remove == nil {
		return nil
	}
	remove, err := v.page.EvalOnNewDocument(js)
	if err != nil {
		return fmt.Errorf("could not reinstall guard script: %w", err)
	}
	_ = v.remove()
	v.remove = remove

	return nil
}

// Owner implements domain.View.
func (v *View) Owner() (domain.Username, bool) {
	res, err := v.page.Eval(`() => window.__lbxdGuard ? window.__lbxdGuard.owner() : ""`)
	if err == nil {
		if u := domain.Normalize(res.Value.Str()); u != "" {
			return u, true
		}
	}
	info, err := v.page.Info()
	if err != nil {
		return "", false
	}
	u, err := url.Parse(info.URL)
	if err != nil {
		return "", false
	}

	return letterboxd.OwnerFromPath(u.Path)
}

// OwnerControl implements domain.View.
func (v *View) OwnerControl() (domain.FollowControl, error) {
	els, err := v.page.Elements(letterboxd.FollowControlSelector)
	if err != nil {
		return nil, fmt.Errorf("could not query follow controls: %w", err)
	}
	for _, el := range els {
		res, err := el.Eval(`function () { return window.__lbxdGuard ? window.__lbxdGuard.isRow(this) : false }`)
		if err != nil {
			return nil, err
		}
		if !res.Value.Bool() {
			return &control{el: el}, nil
		}
	}

	return nil, nil //nolint: nilnil
}

// RowControls implements domain.View.
func (v *View) RowControls() ([]domain.FollowControl, error) {
	wrappers, err := v.page.Elements(letterboxd.FollowWrapperSelector)
	if err != nil {
		return nil, fmt.Errorf("could not query follow wrappers: %w", err)
	}

	out := make([]domain.FollowControl, 0, len(wrappers))
	for _, w := range wrappers {
		has, el, err := w.Has(letterboxd.FollowControlSelector)
		if err != nil {
			return nil, err
		}
		if !has {
			continue
		}
		name, err := w.Attribute("data-username")
		if err != nil || name == nil {
			continue
		}
		out = append(out, &control{el: el, user: domain.Normalize(*name), row: true})
	}

	return out, nil
}

// control is a follow control element in a live tab.
type control struct {
	el   *rod.Element
	user domain.Username
	row  bool
}

func (c *control) Username() (domain.Username, bool) {
	return c.user, c.row && c.user != ""
}

func (c *control) Blocked() bool {
	v, err := c.el.Attribute(letterboxd.BlockedAttr)

	return err == nil && v != nil && *v == "1"
}

func (c *control) SetBlocked(blocked bool) error {
	_, err := c.el.Eval(`function (blocked) { return window.__lbxdGuard ? window.__lbxdGuard.mark(this, blocked) : false }`, blocked)

	return err
}
