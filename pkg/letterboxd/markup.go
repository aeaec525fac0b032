package letterboxd

import (
	"regexp"
	"slices"
	"strings"
	"unfollower/pkg/dom"
	"unfollower/pkg/domain"
)

// Selectors for the markup the engine depends on.
const (
	PersonAnchorSelector    = "a.name[href]"
	FollowWrapperSelector   = ".js-follow-button-wrapper[data-username]"
	UnfollowControlSelector = `a.js-button-following, button.js-button-following, [data-action$="/unfollow/"]`
	FollowControlSelector   = `a.js-button-follow, a[data-action$="/follow/"], button.js-button-follow`
)

var (
	personAnchor    = dom.MustCompile(PersonAnchorSelector)    //nolint: gochecknoglobals
	followWrapper   = dom.MustCompile(FollowWrapperSelector)   //nolint: gochecknoglobals
	followControl   = dom.MustCompile(FollowControlSelector)   //nolint: gochecknoglobals
	unfollowControl = dom.MustCompile(UnfollowControlSelector) //nolint: gochecknoglobals
	scriptTag       = dom.MustCompile("script")                //nolint: gochecknoglobals

	loggedInPattern = regexp.MustCompile(`person\.username\s*=\s*["']([^"']+)["']`) //nolint: gochecknoglobals
)

// ReservedSections are first path segments that name site sections rather
// than accounts.
var ReservedSections = []string{ //nolint: gochecknoglobals
	"films", "lists", "members", "journal", "search", "activity", "settings", "sign-in", "create-account",
}

// OwnerFromPath resolves the account a URL path belongs to from its first
// segment, skipping reserved sections.
func OwnerFromPath(path string) (domain.Username, bool) {
	first, _, _ := strings.Cut(strings.TrimLeft(path, "/"), "/")
	u := domain.Normalize(first)
	if u == "" || slices.Contains(ReservedSections, string(u)) {
		return "", false
	}

	return u, true
}

// PersonAnchors returns the usernames linked from person rows
// (a.name[href="/user/"]), in document order.
func PersonAnchors(doc *dom.Document) []domain.Username {
	var out []domain.Username
	for _, n := range doc.FindAll(personAnchor) {
		if u := domain.Normalize(dom.Attr(n, "href")); u != "" {
			out = append(out, u)
		}
	}

	return out
}

// FollowWrappers returns the usernames carried by follow button wrappers, in
// document order.
func FollowWrappers(doc *dom.Document) []domain.Username {
	var out []domain.Username
	for _, n := range doc.FindAll(followWrapper) {
		if u := domain.Normalize(dom.Attr(n, "data-username")); u != "" {
			out = append(out, u)
		}
	}

	return out
}

// LoggedInUser finds the signed-in account announced by the page scripts
// (person.username = "...").
func LoggedInUser(doc *dom.Document) (domain.Username, bool) {
	for _, n := range doc.FindAll(scriptTag) {
		if m := loggedInPattern.FindStringSubmatch(dom.Text(n)); m != nil {
			if u := domain.Normalize(m[1]); u != "" {
				return u, true
			}
		}
	}

	return "", false
}

// HasUnfollowControl reports whether the document shows an unfollow control,
// meaning the signed-in account currently follows the page owner.
func HasUnfollowControl(doc *dom.Document) bool {
	return doc.Find(unfollowControl) != nil
}
