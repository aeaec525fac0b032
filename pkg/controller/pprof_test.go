package controller_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"unfollower/pkg/controller"

	"github.com/stretchr/testify/require"
)

func TestPprofMux(t *testing.T) {
	mux := controller.PprofMux("/debug/pprof")

	tests := []struct {
		path   string
		status int
	}{
		{path: "/debug/pprof/", status: http.StatusOK},
		{path: "/debug/pprof/cmdline", status: http.StatusOK},
		{path: "/debug/pprof/goroutine?debug=1", status: http.StatusOK},
		{path: "/debug/pprof/nope", status: http.StatusNotFound},
		{path: "/elsewhere", status: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "http://pprof.local"+tt.path, nil))
			require.Equal(t, tt.status, rec.Result().StatusCode)
		})
	}
}
