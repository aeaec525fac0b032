package v1handler_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"unfollower/internal/api/handler/v1handler"
	"unfollower/internal/api/specs/v1specs"
	mockcollector "unfollower/internal/collector/mock"
	"unfollower/internal/engine"
	"unfollower/internal/state"
	"unfollower/internal/unfollow"
	mockunfollow "unfollower/internal/unfollow/mock"
	"unfollower/pkg/domain"
	"unfollower/pkg/logger"
	"unfollower/pkg/serrors"
	"unfollower/pkg/storage/memory"

	"github.com/goccy/go-json"
	"github.com/ogen-go/ogen/ogenerrors"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestMain(m *testing.M) {
	// Initialize logger to avoid nil pointer deref during tests
	logger.Setup(logger.DevelopmentEnvironment)
	m.Run()
}

type fakeQueue struct {
	autoUnfollow bool
}

func (q *fakeQueue) EnqueueScan(_ context.Context, autoUnfollow bool) (int64, error) {
	q.autoUnfollow = autoUnfollow

	return 42, nil
}

type fixture struct {
	st        *state.State
	collector *mockcollector.MockCollector
	action    *mockunfollow.MockAction
	h         *v1handler.Handler
}

func newFixture(t *testing.T, queue v1handler.Queue) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	st, err := state.Load(context.Background(), memory.NewHub().Open(), "me")
	require.NoError(t, err)

	f := &fixture{
		st:        st,
		collector: mockcollector.NewMockCollector(ctrl),
		action:    mockunfollow.NewMockAction(ctrl),
	}
	eng := engine.New(st, f.collector, f.action,
		unfollow.Options{IdlePause: time.Millisecond, TargetTimeout: time.Second})
	deps := v1handler.Deps{
		Engine: eng,
		Now:    func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) },
	}
	if queue != nil {
		deps.Queue = queue
	}
	f.h = v1handler.New(deps)

	return f
}

func (f *fixture) do(fn http.HandlerFunc, method, path, body string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	rec := httptest.NewRecorder()
	fn(rec, httptest.NewRequest(method, path, r))

	return rec
}

func (f *fixture) expectLists(followers, following []domain.Username) {
	f.collector.EXPECT().Collect(gomock.Any(), domain.Username("me"), domain.RelationFollowers).Return(followers, nil)
	f.collector.EXPECT().Collect(gomock.Any(), domain.Username("me"), domain.RelationFollowing).Return(following, nil)
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())

	return v
}

func TestNewError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
	}{
		{"plain error", errors.New("boom"), 500, "INTERNAL", "internal error"},
		{"kind sentinel", serrors.ErrNotFound, 404, "NOT_FOUND", "resource not found"},
		{"kind with message", serrors.With(serrors.ErrBadRequest, "nothing to unfollow"), 400, "BAD_REQUEST", "nothing to unfollow"},
		{"wrapped cause hidden", serrors.Wrap(serrors.ErrUnauthorized, errors.New("bad token"), "unauthorized"),
			401, "UNAUTHORIZED", "unauthorized"},
		{"internal kind", serrors.KindOnly(serrors.ErrInternal), 500, "INTERNAL", "internal error"},
		{"conflict", serrors.With(serrors.ErrConflict, "that's you"), 409, "CONFLICT", "that's you"},
		{"deadline", context.DeadlineExceeded, 504, "TIMEOUT", "request timed out"},
		{"unavailable", serrors.KindOnly(serrors.ErrUnavailable), 503, "UNAVAILABLE", "service unavailable"},
		{"undecodable body", &ogenerrors.DecodeRequestError{Err: errors.New("unexpected EOF")},
			400, "BAD_REQUEST", "invalid request"},
		{"undecodable params", &ogenerrors.DecodeParamsError{Err: errors.New("invalid bool")},
			400, "BAD_REQUEST", "invalid request"},
		{"missing token", &ogenerrors.SecurityError{Security: "BearerAuth", Err: errors.New("no header")},
			401, "UNAUTHORIZED", "unauthorized"},
		{"token for another account", &ogenerrors.SecurityError{Security: "BearerAuth",
			Err: serrors.With(serrors.ErrForbidden, "token is not valid for this account")},
			403, "FORBIDDEN", "token is not valid for this account"},
	}

	h := v1handler.New(v1handler.Deps{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := h.NewError(context.Background(), tt.err)
			require.Equal(t, tt.status, res.StatusCode)
			require.Equal(t, tt.code, res.Response.Code)
			require.Equal(t, tt.message, res.Response.Message)
		})
	}
}

func TestGetState(t *testing.T) {
	f := newFixture(t, nil)
	require.NoError(t, f.st.AddExceptions(context.Background(), "bob", "carol"))

	got, err := f.h.GetState(context.Background())
	require.NoError(t, err)
	require.Equal(t, "me", got.Account)
	require.Equal(t, 2, got.Exceptions)
	require.Equal(t, *v1handler.DomainOptionsToV1Specs(domain.DefaultOptions()), got.Options)
	require.False(t, got.Scanned)
	require.False(t, got.Running)
}

func TestScanOperations(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	_, err := f.h.GetScan(ctx)
	require.ErrorIs(t, err, serrors.ErrNotFound)

	f.expectLists([]domain.Username{"a", "b", "c"}, []domain.Username{"a", "b", "d", "e"})
	res, err := f.h.RunScan(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"d", "e"}, res.FilteredCandidates)
	require.Equal(t, []string{"c"}, res.Fans)
	require.False(t, res.ScannedAt.IsZero())

	// an exception added after the scan is honored by the stored result
	_, err = f.h.AddException(ctx, v1specs.AddExceptionParams{User: "D"})
	require.NoError(t, err)
	res, err = f.h.GetScan(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"e"}, res.FilteredCandidates)
	require.Equal(t, []string{"d", "e"}, res.CandidatesToUnfollow)
}

func TestRunScan_Failure(t *testing.T) {
	f := newFixture(t, nil)
	f.collector.EXPECT().Collect(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, serrors.With(serrors.ErrUnavailable, "page 2")).AnyTimes()

	_, err := f.h.RunScan(context.Background())
	require.Error(t, err)
	res := f.h.NewError(context.Background(), err)
	require.Equal(t, http.StatusServiceUnavailable, res.StatusCode)
	require.Equal(t, "UNAVAILABLE", res.Response.Code)
}

func TestEnqueueScan(t *testing.T) {
	ctx := context.Background()

	_, err := newFixture(t, nil).h.EnqueueScan(ctx, v1specs.EnqueueScanParams{})
	require.ErrorIs(t, err, serrors.ErrBadRequest)

	q := &fakeQueue{}
	job, err := newFixture(t, q).h.EnqueueScan(ctx, v1specs.EnqueueScanParams{AutoUnfollow: v1specs.NewOptBool(true)})
	require.NoError(t, err)
	require.Equal(t, int64(42), job.ID)
	require.True(t, q.autoUnfollow)

	_, err = newFixture(t, q).h.EnqueueScan(ctx, v1specs.EnqueueScanParams{})
	require.NoError(t, err)
	require.False(t, q.autoUnfollow, "absent flag means no auto unfollow")
}

func TestUnfollow_RefusedBeforeScan(t *testing.T) {
	f := newFixture(t, nil)

	rec := f.do(f.h.Unfollow, http.MethodPost, "/v1/unfollow", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.Equal(t, "BAD_REQUEST", decode[v1specs.Error](t, rec).Code)
}

func TestUnfollow_Streams(t *testing.T) {
	f := newFixture(t, nil)
	f.expectLists([]domain.Username{"a"}, []domain.Username{"a", "b", "c"})
	_, err := f.h.RunScan(context.Background())
	require.NoError(t, err)

	f.action.EXPECT().Unfollow(gomock.Any(), domain.Username("b")).Return(true, nil)
	f.action.EXPECT().Unfollow(gomock.Any(), domain.Username("c")).Return(false, nil)

	rec := f.do(f.h.Unfollow, http.MethodPost, "/v1/unfollow", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/x-ndjson", rec.Header().Get("Content-Type"))

	var events []v1handler.StreamEvent
	dec := json.NewDecoder(rec.Body)
	for dec.More() {
		var ev v1handler.StreamEvent
		require.NoError(t, dec.Decode(&ev))
		events = append(events, ev)
	}
	require.Len(t, events, 3)
	require.NotNil(t, events[0].Progress)
	require.Equal(t, 1, events[0].Progress.Done)
	require.Equal(t, 2, events[1].Progress.Done)
	require.Equal(t, 2, events[1].Progress.Total)
	require.Equal(t, &domain.UnfollowResult{Succeeded: 1, Failed: 1}, events[2].Result)

	require.True(t, f.st.IsUnfollowed("b"))
	require.False(t, f.st.IsUnfollowed("c"))
}

func TestListOperations(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	ref, err := f.h.AddException(ctx, v1specs.AddExceptionParams{User: "Bob"})
	require.NoError(t, err)
	require.Equal(t, "bob", ref.User)

	_, err = f.h.AddException(ctx, v1specs.AddExceptionParams{User: "ME"})
	require.ErrorIs(t, err, serrors.ErrConflict)
	require.Equal(t, "that's you", f.h.NewError(ctx, err).Response.Message)

	list, err := f.h.ListExceptions(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"bob"}, list.Users)

	list, err = f.h.ReplaceUnfollowed(ctx, &v1specs.UserList{Users: []string{"Y", "me", "x", "  "}})
	require.NoError(t, err)
	require.Equal(t, []string{"x", "y"}, list.Users)

	ref, err = f.h.RemoveUnfollowed(ctx, v1specs.RemoveUnfollowedParams{User: "x"})
	require.NoError(t, err)
	require.Equal(t, "x", ref.User)
	require.Equal(t, []domain.Username{"y"}, f.st.Unfollowed().Sorted())

	ref, err = f.h.AddUnfollowed(ctx, v1specs.AddUnfollowedParams{User: "Zed"})
	require.NoError(t, err)
	require.Equal(t, "zed", ref.User)

	list, err = f.h.ClearUnfollowed(ctx)
	require.NoError(t, err)
	require.Empty(t, list.Users)
	list, err = f.h.ListUnfollowed(ctx)
	require.NoError(t, err)
	require.Empty(t, list.Users)

	_, err = f.h.RemoveException(ctx, v1specs.RemoveExceptionParams{User: "BOB"})
	require.NoError(t, err)
	list, err = f.h.ReplaceExceptions(ctx, &v1specs.UserList{Users: []string{"carol"}})
	require.NoError(t, err)
	require.Equal(t, []string{"carol"}, list.Users)
}

func TestOptionsOperations(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	got, err := f.h.UpdateOptions(ctx, &v1specs.OptionsUpdate{
		Concurrency:  v1specs.NewOptInt(10),
		ClickDelayMs: v1specs.NewOptInt(500),
	})
	require.NoError(t, err)
	require.Equal(t, domain.MaxConcurrency, got.Concurrency)
	require.Equal(t, 500, got.ClickDelayMs)
	require.Equal(t, domain.DefaultScanTimeoutMs, got.ScanTimeoutMs, "absent fields keep their value")
	require.True(t, got.BlockReFollow)

	got, err = f.h.SetGuard(ctx, &v1specs.Guard{Enabled: false})
	require.NoError(t, err)
	require.False(t, got.BlockReFollow)

	got, err = f.h.GetOptions(ctx)
	require.NoError(t, err)
	require.Equal(t, v1handler.DomainOptionsToV1Specs(f.st.Options()), got)

	surface, err := f.h.ToggleUI(ctx)
	require.NoError(t, err)
	require.True(t, surface.Open)
	require.True(t, f.st.UIOpen())
}

func TestTransferRoutes(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	require.NoError(t, f.st.AddExceptions(ctx, "bob"))

	rec := f.do(f.h.Export, http.MethodGet, "/v1/export", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, `attachment; filename="letterboxd-unfollower-me-2026-03-01.json"`,
		rec.Header().Get("Content-Disposition"))
	backup := rec.Body.String()
	require.Contains(t, backup, `"bob"`)

	other := newFixture(t, nil)
	rec = other.do(other.h.Import, http.MethodPost, "/v1/import", backup)
	require.Equal(t, http.StatusOK, rec.Code)
	rep := decode[struct {
		Exceptions bool     `json:"exceptions"`
		Options    []string `json:"options"`
	}](t, rec)
	require.True(t, rep.Exceptions)
	require.Len(t, rep.Options, 4)
	require.Equal(t, []domain.Username{"bob"}, other.st.Exceptions().Sorted())

	rec = other.do(other.h.Import, http.MethodPost, "/v1/import", `[1,2]`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "BAD_REQUEST", decode[v1specs.Error](t, rec).Code)
	require.Equal(t, []domain.Username{"bob"}, other.st.Exceptions().Sorted(), "a rejected backup changes nothing")
}
