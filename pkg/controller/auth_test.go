package controller_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"unfollower/pkg/controller"

	"github.com/stretchr/testify/require"
)

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
		ok     bool
	}{
		{header: "Bearer abc.def.ghi", want: "abc.def.ghi", ok: true},
		{header: "bearer  abc ", want: "abc", ok: true},
		{header: "Basic dXNlcjpwYXNz"},
		{header: "Bearer "},
		{header: ""},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Authorization", tt.header)
			got, ok := controller.BearerToken(req)
			require.Equal(t, tt.ok, ok)
			require.Equal(t, tt.want, got)
		})
	}
}
