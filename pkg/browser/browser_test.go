package browser_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
	"unfollower/internal/guard"
	"unfollower/pkg/browser"
	"unfollower/pkg/domain"

	"github.com/go-rod/rod/lib/launcher"
	"github.com/stretchr/testify/require"
)

const profile = `<!doctype html><html><body data-owner="bob">
<a id="owner" class="js-button-follow" data-action="/bob/follow/" href="#followed">Follow</a>
<div class="js-follow-button-wrapper" data-username="carol">
  <a id="carol" class="js-button-following" data-action="/carol/unfollow/" href="#"
     onclick="this.outerHTML='<a id=&quot;carol&quot; class=&quot;js-button-follow&quot;>Follow</a>'; return false;">Following</a>
</div>
</body></html>`

type source struct{ unfollowed domain.Set }

func (s source) Options() domain.Options { return domain.DefaultOptions() }
func (s source) Unfollowed() domain.Set  { return s.unfollowed }

func newManager(t *testing.T) (*browser.Manager, string) {
	t.Helper()
	if testing.Short() {
		t.Skip("browser tests are skipped in short mode")
	}
	if _, ok := launcher.LookPath(); !ok {
		t.Skip("no browser installed")
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(profile))
	}))
	t.Cleanup(srv.Close)

	m := browser.NewManager(browser.Options{Headless: true, LoadTimeout: 10 * time.Second})
	require.NoError(t, m.Start(context.Background()))
	t.Cleanup(func() { _ = m.Close() })

	return m, srv.URL
}

func TestUnfollower(t *testing.T) {
	m, base := newManager(t)

	// every profile serves the same page, whose only unfollow control swaps
	// itself for a follow control when clicked
	u := browser.NewUnfollower(m, base, func() time.Duration { return 50 * time.Millisecond })
	ok, err := u.Unfollow(context.Background(), "carol")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestView_GuardPass(t *testing.T) {
	m, base := newManager(t)
	ctx := context.Background()

	v, err := m.OpenView(ctx, base+"/bob/", guard.MaxDepth)
	require.NoError(t, err)
	defer func() { _ = v.Close() }()

	owner, ok := v.Owner()
	require.True(t, ok)
	require.Equal(t, domain.Username("bob"), owner)

	g := guard.New(source{unfollowed: domain.NewSet("bob")})
	require.NoError(t, g.ApplyAll(ctx, v))

	oc, err := v.OwnerControl()
	require.NoError(t, err)
	require.NotNil(t, oc)
	require.True(t, oc.Blocked())

	// the in-page listener vetoes the click, so the hash never changes
	el, err := v.Page().Element("#owner")
	require.NoError(t, err)
	_, err = el.Eval(`function () { this.click() }`)
	require.NoError(t, err)
	res, err := v.Page().Eval(`() => location.hash`)
	require.NoError(t, err)
	require.Empty(t, res.Value.Str())
}

func TestView_NewDocumentIsSeeded(t *testing.T) {
	m, base := newManager(t)
	ctx := context.Background()

	v, err := m.OpenView(ctx, base+"/bob/", guard.MaxDepth)
	require.NoError(t, err)
	defer func() { _ = v.Close() }()

	require.NoError(t, v.SyncGuard(ctx, true, []domain.Username{"bob"}))

	// a fresh document, clicked before any further sync
	require.NoError(t, v.Page().Navigate(base+"/bob/?again"))
	require.NoError(t, v.Page().WaitLoad())

	seeded, err := v.Page().Eval(`() => window.__lbxdGuardConfig.enabled && window.__lbxdGuardConfig.blocked.includes("bob")`)
	require.NoError(t, err)
	require.True(t, seeded.Value.Bool())

	el, err := v.Page().Element("#owner")
	require.NoError(t, err)
	_, err = el.Eval(`function () { this.click() }`)
	require.NoError(t, err)
	res, err := v.Page().Eval(`() => location.hash`)
	require.NoError(t, err)
	require.Empty(t, res.Value.Str())
}
