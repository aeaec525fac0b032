package transfer_test

import (
	"context"
	"testing"
	"time"
	"unfollower/internal/state"
	"unfollower/internal/transfer"
	"unfollower/pkg/domain"
	"unfollower/pkg/serrors"
	"unfollower/pkg/storage/memory"

	"github.com/stretchr/testify/require"
)

func newState(t *testing.T, account string) *state.State {
	t.Helper()
	st, err := state.Load(context.Background(), memory.NewHub().Open(), account)
	require.NoError(t, err)

	return st
}

func TestExport(t *testing.T) {
	ctx := context.Background()
	st := newState(t, "me")
	require.NoError(t, st.AddExceptions(ctx, "b", "a"))
	require.NoError(t, st.MarkUnfollowed(ctx, "z"))

	out := transfer.Export(st, time.Date(2026, 5, 6, 7, 8, 9, 0, time.UTC))
	require.JSONEq(t, `{
		"account": "me",
		"timestamp": "2026-05-06T07:08:09.000Z",
		"options": {"blockReFollow": true, "concurrency": 3, "scanTimeoutMs": 12000, "clickDelayMs": 350},
		"exceptions": ["a", "b"],
		"unfollowed": ["z"]
	}`, string(out))
}

func TestFileName(t *testing.T) {
	at := time.Date(2026, 5, 6, 23, 30, 0, 0, time.FixedZone("x", -2*3600))
	require.Equal(t, "letterboxd-unfollower-me-2026-05-07.json", transfer.FileName("me", at))
}

func TestRoundTrip(t *testing.T) {
	ctx := context.Background()
	src := newState(t, "me")
	require.NoError(t, src.AddExceptions(ctx, "x"))
	require.NoError(t, src.MarkUnfollowed(ctx, "y"))
	_, err := src.UpdateOptions(ctx, func(o *domain.Options) {
		o.BlockReFollow = false
		o.Concurrency = 5
	})
	require.NoError(t, err)

	dst := newState(t, "me")
	rep, err := transfer.Import(ctx, dst, transfer.Export(src, time.Now()))
	require.NoError(t, err)
	require.True(t, rep.Exceptions)
	require.True(t, rep.Unfollowed)
	require.Empty(t, rep.Ignored)

	require.Equal(t, src.Exceptions(), dst.Exceptions())
	require.Equal(t, src.Unfollowed(), dst.Unfollowed())
	require.Equal(t, src.Options(), dst.Options())
}

func TestImport_Tolerant(t *testing.T) {
	ctx := context.Background()
	dst := newState(t, "me")
	require.NoError(t, dst.AddExceptions(ctx, "keep"))

	rep, err := transfer.Import(ctx, dst, []byte(`{
		"exceptions": "not a list",
		"unfollowed": ["A", "/b/"],
		"options": {"concurrency": 9, "blockReFollow": "yes", "clickDelayMs": 1.5, "extra": 1},
		"surprise": true
	}`))
	require.NoError(t, err)

	require.False(t, rep.Exceptions)
	require.True(t, rep.Unfollowed)
	require.Equal(t, []string{"concurrency"}, rep.Options)
	require.ElementsMatch(t, []string{
		"exceptions", "options.blockReFollow", "options.clickDelayMs", "options.extra", "surprise",
	}, rep.Ignored)

	require.Equal(t, []domain.Username{"keep"}, dst.Exceptions().Sorted())
	require.Equal(t, []domain.Username{"a", "b"}, dst.Unfollowed().Sorted())
	opts := dst.Options()
	require.Equal(t, domain.MaxConcurrency, opts.Concurrency)
	require.True(t, opts.BlockReFollow)
	require.Equal(t, domain.DefaultClickDelayMs, opts.ClickDelayMs)
}

func TestImport_UserscriptBackup(t *testing.T) {
	ctx := context.Background()
	dst := newState(t, "me")

	rep, err := transfer.Import(ctx, dst, []byte(`{
		"account": "me",
		"when": "2024-03-01T10:00:00.000Z",
		"options": {"disableFollowOnUnfollowed": false, "concurrency": 2, "scanTimeoutMs": 12000, "clickDelayMs": 350},
		"exceptions": ["Pal"],
		"unfollowed": ["gone"]
	}`))
	require.NoError(t, err)
	require.Empty(t, rep.Ignored)
	require.Equal(t, []string{"blockReFollow", "concurrency", "scanTimeoutMs", "clickDelayMs"}, rep.Options)

	opts := dst.Options()
	require.False(t, opts.BlockReFollow)
	require.Equal(t, 2, opts.Concurrency)
	require.Equal(t, []domain.Username{"pal"}, dst.Exceptions().Sorted())
}

func TestImport_BlockReFollowWinsOverLegacyName(t *testing.T) {
	for _, body := range []string{
		`{"options": {"blockReFollow": true, "disableFollowOnUnfollowed": false}}`,
		`{"options": {"disableFollowOnUnfollowed": false, "blockReFollow": true}}`,
	} {
		ctx := context.Background()
		dst := newState(t, "me")
		_, err := dst.UpdateOptions(ctx, func(o *domain.Options) { o.BlockReFollow = false })
		require.NoError(t, err)

		rep, err := transfer.Import(ctx, dst, []byte(body))
		require.NoError(t, err)
		require.Equal(t, []string{"blockReFollow"}, rep.Options)
		require.True(t, dst.Options().BlockReFollow, body)
	}
}

func TestImport_MixedListIsIgnored(t *testing.T) {
	ctx := context.Background()
	dst := newState(t, "me")
	require.NoError(t, dst.MarkUnfollowed(ctx, "old"))

	rep, err := transfer.Import(ctx, dst, []byte(`{"unfollowed": ["a", 1]}`))
	require.NoError(t, err)
	require.False(t, rep.Unfollowed)
	require.Equal(t, []domain.Username{"old"}, dst.Unfollowed().Sorted())
}

func TestImport_TotalFailures(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "invalid json", data: `{"exceptions": [`},
		{name: "array", data: `["a"]`},
		{name: "string", data: `"x"`},
		{name: "empty", data: ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			dst := newState(t, "me")
			require.NoError(t, dst.AddExceptions(ctx, "keep"))

			_, err := transfer.Import(ctx, dst, []byte(tt.data))
			require.ErrorIs(t, err, serrors.ErrBadRequest)
			require.Equal(t, []domain.Username{"keep"}, dst.Exceptions().Sorted())
		})
	}
}
