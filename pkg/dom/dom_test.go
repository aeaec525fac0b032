package dom_test

import (
	"testing"
	"unfollower/pkg/dom"

	"github.com/stretchr/testify/require"
)

const page = `<html><body data-owner="alice">
<ul class="person-list">
  <li><a class="name" href="/Bob/">Bob</a>
    <div class="js-follow-button-wrapper" data-username="bob">
      <a class="button js-button-follow" data-action="/bob/follow/">Follow</a>
    </div>
  </li>
  <li><a class="name" href="/carol/">Carol</a>
    <div class="js-follow-button-wrapper" data-username="carol">
      <button class="js-button-following" data-action="/carol/unfollow/">Following</button>
    </div>
  </li>
</ul>
</body></html>`

func TestSelectorMatching(t *testing.T) {
	doc, err := dom.ParseString(page)
	require.NoError(t, err)

	tests := []struct {
		name string
		sel  string
		want int
	}{
		{name: "tag and class", sel: "a.name", want: 2},
		{name: "attribute exists", sel: ".js-follow-button-wrapper[data-username]", want: 2},
		{name: "attribute equals", sel: `[data-username="carol"]`, want: 1},
		{name: "attribute suffix", sel: `[data-action$="/follow/"]`, want: 1},
		{name: "suffix does not match unfollow", sel: `a[data-action$="/follow/"]`, want: 1},
		{name: "attribute prefix", sel: `[data-action^="/carol"]`, want: 1},
		{name: "descendant", sel: "ul.person-list li a.name", want: 2},
		{name: "selector list", sel: "a.js-button-follow, button.js-button-following", want: 2},
		{name: "multiple classes", sel: "a.button.js-button-follow", want: 1},
		{name: "no match", sel: "section.missing", want: 0},
		{name: "pseudo-class", sel: "li:first-child a.name", want: 1},
		{name: "negation", sel: "[data-action]:not(.button)", want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel, err := dom.Compile(tt.sel)
			require.NoError(t, err)
			require.Len(t, doc.FindAll(sel), tt.want)
		})
	}
}

func TestCompileErrors(t *testing.T) {
	for _, sel := range []string{"a[href", "a..b", `[="x"]`, "a,"} {
		_, err := dom.Compile(sel)
		require.Error(t, err, sel)
	}
}

func TestClosestAndAttrs(t *testing.T) {
	doc, err := dom.ParseString(page)
	require.NoError(t, err)

	btn := doc.Find(dom.MustCompile("a.js-button-follow"))
	require.NotNil(t, btn)

	wrapper := dom.Closest(btn, dom.MustCompile(".js-follow-button-wrapper[data-username]"))
	require.NotNil(t, wrapper)
	require.Equal(t, "bob", dom.Attr(wrapper, "data-username"))

	dom.SetAttr(btn, "title", "x")
	require.True(t, dom.HasAttr(btn, "title"))
	dom.RemoveAttr(btn, "title")
	require.False(t, dom.HasAttr(btn, "title"))

	require.Equal(t, "Follow", dom.Text(btn))
	dom.SetText(btn, "Blocked")
	require.Equal(t, "Blocked", dom.Text(btn))
	require.Contains(t, doc.Render(), ">Blocked</a>")

	require.Equal(t, "alice", dom.Attr(doc.Body(), "data-owner"))
}
