package letterboxd_test

import (
	"testing"
	"unfollower/pkg/dom"
	"unfollower/pkg/domain"
	"unfollower/pkg/letterboxd"

	"github.com/stretchr/testify/require"
)

const profile = `<html><body data-owner="bob">
<a class="button js-button-follow" data-action="/bob/follow/" style="margin:0">Follow</a>
<div class="js-follow-button-wrapper" data-username="carol">
  <a class="js-button-follow" data-action="/carol/follow/"><span>Follow</span></a>
</div>
</body></html>`

func newPage(t *testing.T) *letterboxd.Page {
	t.Helper()
	doc, err := dom.ParseString(profile)
	require.NoError(t, err)
	p, err := letterboxd.NewPage(doc, "https://letterboxd.com/bob/")
	require.NoError(t, err)

	return p
}

func TestPageControls(t *testing.T) {
	p := newPage(t)

	owner, ok := p.Owner()
	require.True(t, ok)
	require.Equal(t, domain.Username("bob"), owner)

	oc, err := p.OwnerControl()
	require.NoError(t, err)
	require.NotNil(t, oc)
	_, row := oc.Username()
	require.False(t, row)

	rows, err := p.RowControls()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	u, row := rows[0].Username()
	require.True(t, row)
	require.Equal(t, domain.Username("carol"), u)
}

func TestControlBlockRoundTrip(t *testing.T) {
	p := newPage(t)
	before := p.Document().Render()

	oc, err := p.OwnerControl()
	require.NoError(t, err)

	require.NoError(t, oc.SetBlocked(true))
	require.NoError(t, oc.SetBlocked(true))
	require.True(t, oc.Blocked())
	ctl := oc.(*letterboxd.Control)
	require.Equal(t, letterboxd.BlockedLabel, dom.Text(ctl.Node()))
	require.Equal(t, letterboxd.BlockedTitle, dom.Attr(ctl.Node(), "title"))

	require.NoError(t, oc.SetBlocked(false))
	require.False(t, oc.Blocked())
	require.Equal(t, before, p.Document().Render(), "unblocking restores the original markup")
}

func TestClickResolution(t *testing.T) {
	p := newPage(t)
	span := p.Document().Find(dom.MustCompile("div span"))
	require.NotNil(t, span)

	ctl := p.Click(span).FollowControl(4)
	require.NotNil(t, ctl)
	u, ok := ctl.Username()
	require.True(t, ok)
	require.Equal(t, domain.Username("carol"), u)

	require.Nil(t, p.Click(span).FollowControl(1), "depth limit counts the target itself")
	require.Nil(t, p.Click(p.Document().Body()).FollowControl(4))
}
