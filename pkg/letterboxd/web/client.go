// Package web provides a letterboxd.Client implementation backed by plain
// HTTP requests against the public site.
package web

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"unfollower/pkg/domain"
	"unfollower/pkg/letterboxd"
	"unfollower/pkg/serrors"
)

// DefaultUserAgent is sent when none is configured; the site rejects empty
// agents.
const DefaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0 Safari/537.36"

// maxPageBytes caps listing responses.
const maxPageBytes = 8 << 20

// Client fetches listing pages over HTTP. It is safe for concurrent use.
type Client struct {
	httpClient *http.Client // httpClient performs HTTP requests to the site
	baseURL    string       // baseURL is the site root, without trailing slash
	userAgent  string
}

// ListPage fetches one listing page and returns its body. Transport failures
// and 5xx responses map to serrors.ErrUnavailable, deadline overruns to
// serrors.ErrTimeout, 429 to serrors.ErrRateLimited and 404 to
// serrors.ErrNotFound.
func (c *Client) ListPage(ctx context.Context, user domain.Username, rel domain.Relation, page int) ([]byte, error) {
	u := letterboxd.ListURL(c.baseURL, user, rel, page)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, serrors.Wrap(serrors.ErrTimeout, err, "fetching %s", u)
		}

		return nil, serrors.Wrap(serrors.ErrUnavailable, err, "fetching %s", u)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, serrors.Wrap(serrors.ErrTimeout, err, "reading %s", u)
		}

		return nil, fmt.Errorf("could not read response body: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, serrors.With(serrors.ErrNotFound, "%s not found", u)
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, serrors.With(serrors.ErrRateLimited, "rate limited on %s", u)
	case resp.StatusCode >= 500:
		return nil, serrors.With(serrors.ErrUnavailable, "%s: %s", u, resp.Status)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, fmt.Errorf("fetch %s failed: %s %s", u, resp.Status, strings.TrimSpace(string(b)))
	}

	return b, nil
}

// Ensure Client conforms to the letterboxd.Client interface at compile time.
var _ letterboxd.Client = (*Client)(nil)

// New constructs a Client using the provided http.Client. Empty baseURL and
// userAgent fall back to the defaults.
func New(httpClient *http.Client, baseURL, userAgent string) *Client {
	if baseURL == "" {
		baseURL = letterboxd.DefaultBaseURL
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  userAgent,
	}
}
