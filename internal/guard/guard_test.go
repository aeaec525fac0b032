package guard_test

import (
	"context"
	"sync"
	"testing"
	"time"
	"unfollower/internal/guard"
	"unfollower/internal/state"
	"unfollower/pkg/dom"
	"unfollower/pkg/domain"
	"unfollower/pkg/letterboxd"
	"unfollower/pkg/storage/memory"

	"github.com/stretchr/testify/require"
)

const listing = `<html><body data-owner="bob">
<a id="owner" class="button js-button-follow" data-action="/bob/follow/">Follow</a>
<ul>
  <li><div class="js-follow-button-wrapper" data-username="carol">
    <a id="carol" class="js-button-follow" data-action="/carol/follow/"><span><i id="deep">+</i></span></a>
  </div></li>
  <li><div class="js-follow-button-wrapper" data-username="dave">
    <a id="dave" class="js-button-follow" data-action="/dave/follow/">Follow</a>
  </div></li>
  <li><a id="plain" href="/films/">Films</a></li>
</ul>
</body></html>`

// source is a fixed guard input.
type source struct {
	opts       domain.Options
	unfollowed domain.Set
}

func (s *source) Options() domain.Options { return s.opts }
func (s *source) Unfollowed() domain.Set  { return s.unfollowed.Clone() }

func newSource(blockReFollow bool, users ...domain.Username) *source {
	opts := domain.DefaultOptions()
	opts.BlockReFollow = blockReFollow

	return &source{opts: opts, unfollowed: domain.NewSet(users...)}
}

func newPage(t *testing.T) *letterboxd.Page {
	t.Helper()
	doc, err := dom.ParseString(listing)
	require.NoError(t, err)
	p, err := letterboxd.NewPage(doc, "https://letterboxd.com/bob/followers/")
	require.NoError(t, err)

	return p
}

func byID(t *testing.T, p *letterboxd.Page, id string) *letterboxd.Control {
	t.Helper()
	n := p.Document().Find(dom.MustCompile("#" + id))
	require.NotNil(t, n)

	if id == "owner" {
		ctl, err := p.OwnerControl()
		require.NoError(t, err)

		return ctl.(*letterboxd.Control)
	}
	rows, err := p.RowControls()
	require.NoError(t, err)
	for _, r := range rows {
		if c := r.(*letterboxd.Control); c.Node() == n {
			return c
		}
	}
	t.Fatalf("no control #%s", id)

	return nil
}

func blocked(t *testing.T, p *letterboxd.Page, id string) bool {
	t.Helper()
	n := p.Document().Find(dom.MustCompile("#" + id))
	require.NotNil(t, n)

	return dom.Attr(n, letterboxd.BlockedAttr) == "1"
}

func TestApplyAll_Converges(t *testing.T) {
	ctx := context.Background()
	p := newPage(t)
	src := newSource(true, "bob", "dave")
	g := guard.New(src)

	require.NoError(t, g.ApplyAll(ctx, p))
	require.True(t, blocked(t, p, "owner"))
	require.False(t, blocked(t, p, "carol"))
	require.True(t, blocked(t, p, "dave"))

	once := p.Document().Render()
	require.NoError(t, g.ApplyAll(ctx, p))
	require.Equal(t, once, p.Document().Render())

	// removal from the set unblocks on the next pass
	src.unfollowed.Remove("dave")
	require.NoError(t, g.ApplyAll(ctx, p))
	require.False(t, blocked(t, p, "dave"))
	require.Equal(t, "Follow", dom.Text(byID(t, p, "dave").Node()))
}

func TestApplyAll_DisabledIsNoop(t *testing.T) {
	ctx := context.Background()
	p := newPage(t)
	src := newSource(true, "carol")
	g := guard.New(src)

	require.NoError(t, g.ApplyAll(ctx, p))
	require.True(t, blocked(t, p, "carol"))

	src.opts.BlockReFollow = false
	src.unfollowed = domain.NewSet("dave")
	before := p.Document().Render()
	require.NoError(t, g.ApplyAll(ctx, p))
	require.Equal(t, before, p.Document().Render())
	require.True(t, blocked(t, p, "carol"))
	require.False(t, blocked(t, p, "dave"))
}

func TestIntercept(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		enabled    bool
		unfollowed []domain.Username
		want       bool
	}{
		{name: "row control", target: "dave", enabled: true, unfollowed: []domain.Username{"dave"}, want: true},
		{name: "nested target within depth", target: "deep", enabled: true, unfollowed: []domain.Username{"carol"}, want: true},
		{name: "owner control", target: "owner", enabled: true, unfollowed: []domain.Username{"bob"}, want: true},
		{name: "not unfollowed", target: "dave", enabled: true, unfollowed: []domain.Username{"carol"}},
		{name: "not a follow control", target: "plain", enabled: true, unfollowed: []domain.Username{"bob"}},
		{name: "guard disabled", target: "dave", unfollowed: []domain.Username{"dave"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newPage(t)
			before := p.Document().Render()
			g := guard.New(newSource(tt.enabled, tt.unfollowed...))

			click := p.Click(p.Document().Find(dom.MustCompile("#" + tt.target)))
			got := g.Intercept(context.Background(), p, click)

			require.Equal(t, tt.want, got)
			require.Equal(t, tt.want, click.DefaultPrevented())
			require.Equal(t, tt.want, click.PropagationStopped())
			if !tt.want {
				require.Equal(t, before, p.Document().Render())
			}
		})
	}
}

func TestIntercept_DepthLimit(t *testing.T) {
	doc, err := dom.ParseString(`<html><body>
	<div class="js-follow-button-wrapper" data-username="eve">
	  <a class="js-button-follow"><b><i><u><s id="too-deep">x</s></u></i></b></a>
	</div></body></html>`)
	require.NoError(t, err)
	p, err := letterboxd.NewPage(doc, "https://letterboxd.com/films/")
	require.NoError(t, err)

	g := guard.New(newSource(true, "eve"))
	click := p.Click(doc.Find(dom.MustCompile("#too-deep")))
	require.False(t, g.Intercept(context.Background(), p, click))
	require.False(t, click.DefaultPrevented())
}

type syncView struct {
	*letterboxd.Page
	enabled bool
	blocked []domain.Username
}

func (v *syncView) SyncGuard(_ context.Context, enabled bool, blocked []domain.Username) error {
	v.enabled, v.blocked = enabled, blocked

	return nil
}

func TestApplyAll_SyncsLiveViews(t *testing.T) {
	v := &syncView{Page: newPage(t)}
	g := guard.New(newSource(false, "x", "a"))

	require.NoError(t, g.ApplyAll(context.Background(), v))
	require.False(t, v.enabled)
	require.Equal(t, []domain.Username{"a", "x"}, v.blocked)
}

func TestBus_Coalesces(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mu sync.Mutex
	var passes []guard.Signal
	bus := guard.NewBus(20*time.Millisecond, func(_ context.Context, sig guard.Signal) {
		mu.Lock()
		defer mu.Unlock()
		passes = append(passes, sig)
	})
	done := make(chan error, 1)
	go func() { done <- bus.Run(ctx) }()

	bus.Emit(guard.SignalStartup)
	bus.Emit(guard.SignalStructure)
	bus.Emit(guard.SignalStructure)
	bus.Emit(guard.SignalState)

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()

		return len(passes) == 1
	}, time.Second, 5*time.Millisecond)

	mu.Lock()
	sig := passes[0]
	mu.Unlock()
	require.True(t, sig.Has(guard.SignalStartup))
	require.True(t, sig.Has(guard.SignalStructure))
	require.True(t, sig.Has(guard.SignalState))
	require.Equal(t, "startup|structure|state", sig.String())

	cancel()
	require.ErrorIs(t, <-done, context.Canceled)
}

func TestBus_SteadyStreamStillPasses(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mu sync.Mutex
	var passes []guard.Signal
	bus := guard.NewBus(50*time.Millisecond, func(_ context.Context, sig guard.Signal) {
		mu.Lock()
		defer mu.Unlock()
		passes = append(passes, sig)
	})
	done := make(chan error, 1)
	go func() { done <- bus.Run(ctx) }()

	// structure changes every 20ms, faster than the window, for 600ms
	bus.Emit(guard.SignalStartup)
	tick := time.NewTicker(20 * time.Millisecond)
	deadline := time.After(600 * time.Millisecond)
loop:
	for {
		select {
		case <-tick.C:
			bus.Emit(guard.SignalStructure)
		case <-deadline:
			break loop
		}
	}
	tick.Stop()

	mu.Lock()
	got := append([]guard.Signal(nil), passes...)
	mu.Unlock()
	require.GreaterOrEqual(t, len(got), 5)
	require.True(t, got[0].Has(guard.SignalStartup))

	cancel()
	require.ErrorIs(t, <-done, context.Canceled)
}

type notifyView struct {
	*letterboxd.Page
	synced chan []domain.Username
}

func (v *notifyView) SyncGuard(_ context.Context, _ bool, blocked []domain.Username) error {
	select {
	case v.synced <- blocked:
	default:
	}

	return nil
}

func TestAttach_StateChangeTriggersPass(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	st, err := state.Load(ctx, memory.NewHub().Open(), "me")
	require.NoError(t, err)
	v := &notifyView{Page: newPage(t), synced: make(chan []domain.Username, 1)}

	bus := guard.Attach(guard.New(st), st, v, 5*time.Millisecond, nil)
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = bus.Run(ctx)
	}()

	require.NoError(t, st.MarkUnfollowed(ctx, "carol"))
	select {
	case got := <-v.synced:
		require.Equal(t, []domain.Username{"carol"}, got)
	case <-time.After(time.Second):
		t.Fatal("no guard pass after the state change")
	}

	// the pass finishes before Run observes the cancellation
	cancel()
	<-done
	require.True(t, blocked(t, v.Page, "carol"))
}
