// Package letterboxd knows the Letterboxd site: its URLs, the markup the
// engine reads (person rows, follow controls, page owner, logged-in account)
// and an HTML-backed view the follow guard can reconcile.
package letterboxd

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"unfollower/pkg/domain"
)

// DefaultBaseURL is the public site root.
const DefaultBaseURL = "https://letterboxd.com"

// Client fetches listing pages. Implementations are safe for concurrent use.
//
//go:generate mockgen -package mockletterboxd -source=interface.go -destination=mock/mockletterboxd.go *
type Client interface {
	// ListPage fetches page (1-indexed) of the user's followers or following
	// listing and returns the raw HTML.
	ListPage(ctx context.Context, user domain.Username, rel domain.Relation, page int) ([]byte, error)
}

// ListURL returns {base}/{user}/{relation}/page/{n}/.
func ListURL(base string, user domain.Username, rel domain.Relation, page int) string {
	return fmt.Sprintf("%s/%s/%s/page/%d/", strings.TrimRight(base, "/"), url.PathEscape(string(user)), rel, page)
}

// ProfileURL returns {base}/{user}/.
func ProfileURL(base string, user domain.Username) string {
	return fmt.Sprintf("%s/%s/", strings.TrimRight(base, "/"), url.PathEscape(string(user)))
}
