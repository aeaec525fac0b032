package web_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"unfollower/pkg/domain"
	"unfollower/pkg/letterboxd/web"
	"unfollower/pkg/serrors"

	"github.com/stretchr/testify/require"
)

// rtFunc allows using a function as an http.RoundTripper.
type rtFunc func(*http.Request) (*http.Response, error)

func (f rtFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func newTestClient(fn rtFunc) *web.Client {
	return web.New(&http.Client{Transport: fn}, "https://letterboxd.test", "test-agent")
}

func respond(status int, body string) (*http.Response, error) {
	return &http.Response{
		StatusCode: status,
		Status:     http.StatusText(status),
		Header:     http.Header{},
		Body:       io.NopCloser(strings.NewReader(body)),
	}, nil
}

func TestClient_ListPage_success(t *testing.T) {
	c := newTestClient(func(r *http.Request) (*http.Response, error) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "letterboxd.test", r.URL.Host)
		require.Equal(t, "/alice/following/page/2/", r.URL.Path)
		require.Equal(t, "test-agent", r.Header.Get("User-Agent"))

		return respond(http.StatusOK, "<html></html>")
	})

	b, err := c.ListPage(context.Background(), "alice", domain.RelationFollowing, 2)
	require.NoError(t, err)
	require.Equal(t, "<html></html>", string(b))
}

func TestClient_ListPage_statusMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		kind   serrors.Kind
	}{
		{name: "not found", status: http.StatusNotFound, kind: serrors.ErrNotFound},
		{name: "rate limited", status: http.StatusTooManyRequests, kind: serrors.ErrRateLimited},
		{name: "server error", status: http.StatusBadGateway, kind: serrors.ErrUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(func(*http.Request) (*http.Response, error) {
				return respond(tt.status, "nope")
			})

			_, err := c.ListPage(context.Background(), "alice", domain.RelationFollowers, 1)
			require.ErrorIs(t, err, tt.kind)
		})
	}
}

func TestClient_ListPage_clientError(t *testing.T) {
	c := newTestClient(func(*http.Request) (*http.Response, error) {
		return respond(http.StatusForbidden, "denied")
	})

	_, err := c.ListPage(context.Background(), "alice", domain.RelationFollowers, 1)
	require.Error(t, err)
	require.Nil(t, serrors.KindOf(err))
	require.Contains(t, err.Error(), "denied")
}

func TestClient_ListPage_transportErrors(t *testing.T) {
	c := newTestClient(func(*http.Request) (*http.Response, error) {
		return nil, errors.New("connection reset")
	})
	_, err := c.ListPage(context.Background(), "alice", domain.RelationFollowers, 1)
	require.ErrorIs(t, err, serrors.ErrUnavailable)

	c = newTestClient(func(*http.Request) (*http.Response, error) {
		return nil, context.DeadlineExceeded
	})
	_, err = c.ListPage(context.Background(), "alice", domain.RelationFollowers, 1)
	require.ErrorIs(t, err, serrors.ErrTimeout)
}
