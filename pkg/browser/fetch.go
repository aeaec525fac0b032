package browser

import (
	"context"
	"fmt"
	"strings"
	"unfollower/pkg/dom"
	"unfollower/pkg/domain"
	"unfollower/pkg/letterboxd"
	"unfollower/pkg/serrors"
)

// Fetcher is a letterboxd.Client that loads listing pages in browser tabs,
// sharing the session and challenge cookies of the signed-in browser.
type Fetcher struct {
	m       *Manager
	baseURL string
}

var _ letterboxd.Client = (*Fetcher)(nil)

// NewFetcher creates a Fetcher.
func NewFetcher(m *Manager, baseURL string) *Fetcher {
	return &Fetcher{m: m, baseURL: baseURL}
}

// ListPage implements letterboxd.Client.
func (f *Fetcher) ListPage(ctx context.Context, user domain.Username, rel domain.Relation, page int) ([]byte, error) {
	html, err := f.html(ctx, letterboxd.ListURL(f.baseURL, user, rel, page))
	if err != nil {
		return nil, err
	}

	return []byte(html), nil
}

// LoggedInUser opens the site root and reads the signed-in account.
func (f *Fetcher) LoggedInUser(ctx context.Context) (domain.Username, error) {
	html, err := f.html(ctx, strings.TrimRight(f.baseURL, "/")+"/")
	if err != nil {
		return "", err
	}
	doc, err := dom.ParseString(html)
	if err != nil {
		return "", err
	}
	u, ok := letterboxd.LoggedInUser(doc)
	if !ok {
		return "", serrors.With(serrors.ErrUnauthorized, "no signed-in account in the browser session")
	}

	return u, nil
}

func (f *Fetcher) html(ctx context.Context, u string) (string, error) {
	page, err := f.m.Open(ctx, u)
	if err != nil {
		if ctx.Err() != nil {
			return "", serrors.Wrap(serrors.ErrTimeout, err, "loading %s", u)
		}

		return "", serrors.Wrap(serrors.ErrUnavailable, err, "loading %s", u)
	}
	defer func() { _ = page.Close() }()

	html, err := page.Context(ctx).HTML()
	if err != nil {
		return "", fmt.Errorf("could not read %s: %w", u, err)
	}

	return html, nil
}
