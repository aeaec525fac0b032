package domain_test

import (
	"encoding/json"
	"testing"
	"unfollower/pkg/domain"

	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want domain.Username
	}{
		{name: "plain", raw: "alice", want: "alice"},
		{name: "mixed case", raw: "AliCe", want: "alice"},
		{name: "profile href", raw: "/Alice/", want: "alice"},
		{name: "whitespace", raw: "  bob \n", want: "bob"},
		{name: "absolute url", raw: "https://letterboxd.com/Carol/", want: "carol"},
		{name: "empty", raw: " / ", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, domain.Normalize(tt.raw))
		})
	}
}

func TestSet(t *testing.T) {
	s := domain.ParseSet([]string{"Bob", "alice", "/bob/", ""})
	require.Len(t, s, 2)
	require.True(t, s.Has("bob"))
	require.Equal(t, []domain.Username{"alice", "bob"}, s.Sorted())

	c := s.Clone()
	c.Remove("alice")
	require.True(t, s.Has("alice"), "clone must not alias the original")

	s.Add("")
	require.Len(t, s, 2)
}

func TestSetJSON(t *testing.T) {
	s := domain.NewSet("zed", "amy")
	data, err := json.Marshal(s)
	require.NoError(t, err)
	require.JSONEq(t, `["amy","zed"]`, string(data))

	var back domain.Set
	require.NoError(t, json.Unmarshal([]byte(`["Amy","/ZED/"]`), &back))
	require.Equal(t, s, back)
}

func TestOptions(t *testing.T) {
	// absent fields keep their defaults
	o := domain.DefaultOptions()
	require.NoError(t, json.Unmarshal([]byte(`{"concurrency":9}`), &o))
	o = o.Normalize()
	require.True(t, o.BlockReFollow)
	require.Equal(t, domain.MaxConcurrency, o.Concurrency)
	require.Equal(t, domain.DefaultScanTimeoutMs, o.ScanTimeoutMs)

	require.Equal(t, 1, domain.ClampConcurrency(-3))
	require.Equal(t, 4, domain.ClampConcurrency(4))
}
