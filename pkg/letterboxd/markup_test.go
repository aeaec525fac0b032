package letterboxd_test

import (
	"testing"
	"unfollower/pkg/dom"
	"unfollower/pkg/domain"
	"unfollower/pkg/letterboxd"

	"github.com/stretchr/testify/require"
)

func TestOwnerFromPath(t *testing.T) {
	tests := []struct {
		path string
		want domain.Username
		ok   bool
	}{
		{path: "/Alice/films/", want: "alice", ok: true},
		{path: "/bob", want: "bob", ok: true},
		{path: "/films/popular/", ok: false},
		{path: "/sign-in/", ok: false},
		{path: "/", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, ok := letterboxd.OwnerFromPath(tt.path)
			require.Equal(t, tt.ok, ok)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestExtractors(t *testing.T) {
	doc, err := dom.ParseString(`<html><body>
<a class="name" href="/Zed/">Zed</a>
<a class="name" href="/amy/">Amy</a>
<div class="js-follow-button-wrapper" data-username="Amy"></div>
<div class="js-follow-button-wrapper" data-username="kim"></div>
<script>var person = {}; person.username = "Me_Myself";</script>
</body></html>`)
	require.NoError(t, err)

	require.Equal(t, []domain.Username{"zed", "amy"}, letterboxd.PersonAnchors(doc))
	require.Equal(t, []domain.Username{"amy", "kim"}, letterboxd.FollowWrappers(doc))

	me, ok := letterboxd.LoggedInUser(doc)
	require.True(t, ok)
	require.Equal(t, domain.Username("me_myself"), me)
}

func TestURLs(t *testing.T) {
	require.Equal(t, "https://letterboxd.com/alice/followers/page/3/",
		letterboxd.ListURL(letterboxd.DefaultBaseURL, "alice", domain.RelationFollowers, 3))
	require.Equal(t, "https://letterboxd.com/alice/", letterboxd.ProfileURL(letterboxd.DefaultBaseURL+"/", "alice"))
}
