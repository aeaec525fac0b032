package letterboxd

import (
	"net/url"
	"strings"
	"unfollower/pkg/dom"
	"unfollower/pkg/domain"

	"golang.org/x/net/html"
)

// Blocked presentation shared by the HTML view and the injected browser guard.
const (
	BlockedAttr  = "data-lbxd-blocked"
	LabelAttr    = "data-lbxd-label"
	StyleAttr    = "data-lbxd-style"
	BlockedTitle = "Blocked: in your Unfollowed list"
	BlockedLabel = "Blocked"
	BlockedStyle = "background:#D22;border-color:#B11;pointer-events:none;filter:saturate(140%);opacity:0.85"
)

// Page is a parsed Letterboxd page. It implements domain.View so the follow
// guard can reconcile it; changes are applied to the in-memory document.
type Page struct {
	doc *dom.Document
	url *url.URL
}

var _ domain.View = (*Page)(nil)

// NewPage wraps doc loaded from rawURL.
func NewPage(doc *dom.Document, rawURL string) (*Page, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, err
	}

	return &Page{doc: doc, url: u}, nil
}

// Document returns the underlying document.
func (p *Page) Document() *dom.Document { return p.doc }

// Owner prefers body[data-owner] and falls back to the first path segment.
func (p *Page) Owner() (domain.Username, bool) {
	if body := p.doc.Body(); body != nil {
		if u := domain.Normalize(dom.Attr(body, "data-owner")); u != "" {
			return u, true
		}
	}

	return OwnerFromPath(p.url.Path)
}

// OwnerControl returns the first follow control that does not belong to a
// person row.
func (p *Page) OwnerControl() (domain.FollowControl, error) {
	for _, n := range p.doc.FindAll(followControl) {
		if dom.Closest(n, followWrapper) == nil {
			return &Control{node: n}, nil
		}
	}

	return nil, nil //nolint: nilnil
}

// RowControls returns one control per follow wrapper that has one.
func (p *Page) RowControls() ([]domain.FollowControl, error) {
	var out []domain.FollowControl
	for _, w := range p.doc.FindAll(followWrapper) {
		if n := dom.First(w, followControl); n != nil {
			out = append(out, &Control{node: n, user: domain.Normalize(dom.Attr(w, "data-username")), row: true})
		}
	}

	return out, nil
}

// Click builds a click event whose target is target.
func (p *Page) Click(target *html.Node) *Click {
	return &Click{target: target}
}

// Control is a follow control element in a Page.
type Control struct {
	node *html.Node
	user domain.Username
	row  bool
}

// Node returns the element.
func (c *Control) Node() *html.Node { return c.node }

// Username returns the row account, or false for page-level controls.
func (c *Control) Username() (domain.Username, bool) {
	return c.user, c.row && c.user != ""
}

// Blocked reports whether the control carries the blocked marker.
func (c *Control) Blocked() bool {
	return dom.Attr(c.node, BlockedAttr) == "1"
}

// SetBlocked applies or reverts the blocked presentation. Both directions
// are idempotent.
func (c *Control) SetBlocked(blocked bool) error {
	if blocked {
		c.block()
	} else {
		c.unblock()
	}

	return nil
}

func (c *Control) block() {
	n := c.node
	if c.Blocked() {
		return
	}
	dom.SetAttr(n, BlockedAttr, "1")
	dom.SetAttr(n, "aria-disabled", "true")
	if dom.HasAttr(n, "style") {
		dom.SetAttr(n, StyleAttr, dom.Attr(n, "style"))
	}
	dom.SetAttr(n, "style", BlockedStyle)
	dom.SetAttr(n, "title", BlockedTitle)
	if text := dom.Text(n); strings.Contains(strings.ToLower(text), "follow") {
		dom.SetAttr(n, LabelAttr, text)
		dom.SetText(n, BlockedLabel)
	}
}

func (c *Control) unblock() {
	n := c.node
	if !dom.HasAttr(n, BlockedAttr) {
		return
	}
	dom.RemoveAttr(n, BlockedAttr)
	dom.RemoveAttr(n, "aria-disabled")
	if dom.HasAttr(n, StyleAttr) {
		dom.SetAttr(n, "style", dom.Attr(n, StyleAttr))
		dom.RemoveAttr(n, StyleAttr)
	} else {
		dom.RemoveAttr(n, "style")
	}
	if strings.Contains(dom.Attr(n, "title"), BlockedLabel) {
		dom.RemoveAttr(n, "title")
	}
	if dom.HasAttr(n, LabelAttr) {
		dom.SetText(n, dom.Attr(n, LabelAttr))
		dom.RemoveAttr(n, LabelAttr)
	}
}

// Click is a click dispatched on a Page element.
type Click struct {
	target    *html.Node
	prevented bool
	stopped   bool
}

var _ domain.Click = (*Click)(nil)

// FollowControl walks from the target up to maxDepth ancestors looking for a
// follow control.
func (c *Click) FollowControl(maxDepth int) domain.FollowControl {
	n := c.target
	for i := 0; i < maxDepth && n != nil; i, n = i+1, n.Parent {
		if !followControl.Match(n) {
			continue
		}
		ctl := &Control{node: n}
		if w := dom.Closest(n, followWrapper); w != nil {
			ctl.user, ctl.row = domain.Normalize(dom.Attr(w, "data-username")), true
		}

		return ctl
	}

	return nil
}

// PreventDefault cancels the default action.
func (c *Click) PreventDefault() { c.prevented = true }

// StopPropagation stops the event from reaching page handlers.
func (c *Click) StopPropagation() { c.stopped = true }

// DefaultPrevented reports whether PreventDefault was called.
func (c *Click) DefaultPrevented() bool { return c.prevented }

// PropagationStopped reports whether StopPropagation was called.
func (c *Click) PropagationStopped() bool { return c.stopped }
