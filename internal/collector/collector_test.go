package collector_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
	"unfollower/internal/collector"
	"unfollower/pkg/dom"
	"unfollower/pkg/domain"
	mockletterboxd "unfollower/pkg/letterboxd/mock"
	"unfollower/pkg/serrors"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func page(users ...string) []byte {
	var b strings.Builder
	b.WriteString("<html><body><ul>")
	for _, u := range users {
		fmt.Fprintf(&b, `<li><a class="name" href="/%s/">%s</a></li>`, u, u)
	}
	b.WriteString("</ul></body></html>")

	return []byte(b.String())
}

func fastOptions() collector.Options {
	return collector.Options{Attempts: 3, BackoffStep: time.Millisecond, PagePause: time.Millisecond}
}

func TestCollect_PaginatesUntilEmptyPage(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mockletterboxd.NewMockClient(ctrl)
	gomock.InOrder(
		client.EXPECT().ListPage(gomock.Any(), domain.Username("me"), domain.RelationFollowers, 1).
			Return(page("a", "b"), nil),
		client.EXPECT().ListPage(gomock.Any(), domain.Username("me"), domain.RelationFollowers, 2).
			Return(page("c"), nil),
		client.EXPECT().ListPage(gomock.Any(), domain.Username("me"), domain.RelationFollowers, 3).
			Return(page(), nil),
	)

	users, err := collector.New(client, fastOptions()).Collect(context.Background(), "me", domain.RelationFollowers)
	require.NoError(t, err)
	require.Equal(t, []domain.Username{"a", "b", "c"}, users)
}

func TestCollect_UnionsExtractorsAndDedups(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mockletterboxd.NewMockClient(ctrl)
	body := `<html><body>
		<a class="name" href="/Zed/">Zed</a>
		<div class="js-follow-button-wrapper" data-username="amy"></div>
		<div class="js-follow-button-wrapper" data-username="zed"></div>
	</body></html>`
	client.EXPECT().ListPage(gomock.Any(), gomock.Any(), gomock.Any(), 1).Return([]byte(body), nil)
	client.EXPECT().ListPage(gomock.Any(), gomock.Any(), gomock.Any(), 2).Return(page("amy"), nil)
	client.EXPECT().ListPage(gomock.Any(), gomock.Any(), gomock.Any(), 3).Return(page(), nil)

	users, err := collector.New(client, fastOptions()).Collect(context.Background(), "me", domain.RelationFollowing)
	require.NoError(t, err)
	require.Equal(t, []domain.Username{"amy", "zed"}, users)
}

func TestCollect_CustomExtractor(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mockletterboxd.NewMockClient(ctrl)
	client.EXPECT().ListPage(gomock.Any(), gomock.Any(), gomock.Any(), 1).
		Return([]byte(`<html><body><span data-member="Ghost"></span></body></html>`), nil)
	client.EXPECT().ListPage(gomock.Any(), gomock.Any(), gomock.Any(), 2).
		Return(page(), nil)

	sel := dom.MustCompile("span[data-member]")
	c := collector.New(client, fastOptions(), collector.WithExtractors(func(doc *dom.Document) []domain.Username {
		var out []domain.Username
		for _, n := range doc.FindAll(sel) {
			out = append(out, domain.Normalize(dom.Attr(n, "data-member")))
		}

		return out
	}))

	users, err := c.Collect(context.Background(), "me", domain.RelationFollowing)
	require.NoError(t, err)
	require.Equal(t, []domain.Username{"ghost"}, users)
}

func TestCollect_RetriesTransientFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mockletterboxd.NewMockClient(ctrl)
	gomock.InOrder(
		client.EXPECT().ListPage(gomock.Any(), gomock.Any(), gomock.Any(), 1).
			Return(nil, serrors.With(serrors.ErrUnavailable, "status 503")),
		client.EXPECT().ListPage(gomock.Any(), gomock.Any(), gomock.Any(), 1).
			Return(nil, serrors.With(serrors.ErrTimeout, "slow")),
		client.EXPECT().ListPage(gomock.Any(), gomock.Any(), gomock.Any(), 1).
			Return(page("x"), nil),
		client.EXPECT().ListPage(gomock.Any(), gomock.Any(), gomock.Any(), 2).
			Return(page(), nil),
	)

	users, err := collector.New(client, fastOptions()).Collect(context.Background(), "me", domain.RelationFollowing)
	require.NoError(t, err)
	require.Equal(t, []domain.Username{"x"}, users)
}

func TestCollect_FailsAfterExhaustingAttempts(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mockletterboxd.NewMockClient(ctrl)
	client.EXPECT().ListPage(gomock.Any(), gomock.Any(), gomock.Any(), 1).Return(page("a"), nil)
	client.EXPECT().ListPage(gomock.Any(), gomock.Any(), gomock.Any(), 2).
		Return(nil, serrors.With(serrors.ErrUnavailable, "status 502")).
		Times(3)

	users, err := collector.New(client, fastOptions()).Collect(context.Background(), "me", domain.RelationFollowers)
	require.Error(t, err)
	require.Nil(t, users)
	require.True(t, errors.Is(err, serrors.ErrUnavailable))
	require.ErrorContains(t, err, "page 2")
}

func TestOptions_BackoffIsLinearWithoutTrailingWait(t *testing.T) {
	b := collector.DefaultOptions().Backoff()

	var waits []time.Duration
	for {
		d, stop := b.Next()
		if stop {
			break
		}
		waits = append(waits, d)
		require.Less(t, len(waits), 10, "backoff never stops")
	}
	// two waits for three attempts: none after the last one
	require.Equal(t, []time.Duration{400 * time.Millisecond, 800 * time.Millisecond}, waits)
}

func TestCollect_WaitsBetweenAttempts(t *testing.T) {
	const step = 20 * time.Millisecond

	ctrl := gomock.NewController(t)
	client := mockletterboxd.NewMockClient(ctrl)
	var calls []time.Time
	client.EXPECT().ListPage(gomock.Any(), gomock.Any(), gomock.Any(), 1).
		DoAndReturn(func(context.Context, domain.Username, domain.Relation, int) ([]byte, error) {
			calls = append(calls, time.Now())

			return nil, serrors.With(serrors.ErrUnavailable, "status 503")
		}).
		Times(3)

	opts := collector.Options{Attempts: 3, BackoffStep: step}
	_, err := collector.New(client, opts).Collect(context.Background(), "me", domain.RelationFollowers)
	end := time.Now()
	require.ErrorIs(t, err, serrors.ErrUnavailable)

	require.Len(t, calls, 3)
	require.GreaterOrEqual(t, calls[1].Sub(calls[0]), step)
	require.GreaterOrEqual(t, calls[2].Sub(calls[1]), 2*step)
	require.Less(t, end.Sub(calls[2]), 2*step, "slept after the last attempt")
}

func TestCollect_AppliesPerFetchTimeout(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mockletterboxd.NewMockClient(ctrl)
	client.EXPECT().ListPage(gomock.Any(), gomock.Any(), gomock.Any(), 1).
		DoAndReturn(func(ctx context.Context, _ domain.Username, _ domain.Relation, _ int) ([]byte, error) {
			<-ctx.Done()

			return nil, serrors.Wrap(serrors.ErrTimeout, ctx.Err(), "fetch")
		}).
		Times(2)

	opts := fastOptions()
	opts.Attempts = 2
	c := collector.New(client, opts, collector.WithTimeout(func() time.Duration { return 5 * time.Millisecond }))

	_, err := c.Collect(context.Background(), "me", domain.RelationFollowers)
	require.ErrorIs(t, err, serrors.ErrTimeout)
}

func TestCollect_StopsOnCancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mockletterboxd.NewMockClient(ctrl)
	ctx, cancel := context.WithCancel(context.Background())
	client.EXPECT().ListPage(gomock.Any(), gomock.Any(), gomock.Any(), 1).
		DoAndReturn(func(context.Context, domain.Username, domain.Relation, int) ([]byte, error) {
			cancel()

			return page("a"), nil
		})

	_, err := collector.New(client, fastOptions()).Collect(ctx, "me", domain.RelationFollowers)
	require.ErrorIs(t, err, context.Canceled)
}

func TestCollect_MaxPages(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mockletterboxd.NewMockClient(ctrl)
	client.EXPECT().ListPage(gomock.Any(), gomock.Any(), gomock.Any(), 1).Return(page("a"), nil)

	opts := fastOptions()
	opts.MaxPages = 1
	users, err := collector.New(client, opts).Collect(context.Background(), "me", domain.RelationFollowers)
	require.NoError(t, err)
	require.Equal(t, []domain.Username{"a"}, users)
}
