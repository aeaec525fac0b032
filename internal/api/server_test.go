package api_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"unfollower/internal/api"
	"unfollower/internal/api/handler/v1handler"
	mockcollector "unfollower/internal/collector/mock"
	"unfollower/internal/engine"
	"unfollower/internal/state"
	"unfollower/internal/unfollow"
	mockunfollow "unfollower/internal/unfollow/mock"
	"unfollower/pkg/logger"
	"unfollower/pkg/metrics"
	"unfollower/pkg/storage/memory"

	"github.com/golang-jwt/jwt/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestMain(m *testing.M) {
	logger.Setup(logger.DevelopmentEnvironment)
	m.Run()
}

func newDeps(t *testing.T) api.Deps {
	t.Helper()
	ctrl := gomock.NewController(t)
	st, err := state.Load(context.Background(), memory.NewHub().Open(), "alice")
	require.NoError(t, err)
	eng := engine.New(st, mockcollector.NewMockCollector(ctrl), mockunfollow.NewMockAction(ctrl), unfollow.Options{})

	reg := prometheus.NewRegistry()
	_, err = metrics.Setup(reg)
	require.NoError(t, err)

	return api.Deps{Deps: v1handler.Deps{Engine: eng}, Gatherer: reg}
}

func newServer(t *testing.T, opts api.Options) *httptest.Server {
	t.Helper()
	if opts.MetricsPath == "" {
		opts.MetricsPath = "/metrics"
	}
	srv, err := api.NewServer(newDeps(t), opts)
	require.NoError(t, err)
	ts := httptest.NewServer(srv.Handler)
	t.Cleanup(ts.Close)

	return ts
}

func get(t *testing.T, ts *httptest.Server, path, authorization string) (*http.Response, string) {
	t.Helper()

	return do(t, ts, http.MethodGet, path, authorization, "")
}

func do(t *testing.T, ts *httptest.Server, method, path, authorization, body string) (*http.Response, string) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req, err := http.NewRequestWithContext(context.Background(), method, ts.URL+path, r)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	res, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer res.Body.Close()
	data, err := io.ReadAll(res.Body)
	require.NoError(t, err)

	return res, string(data)
}

func TestNewServer_Routes(t *testing.T) {
	ts := newServer(t, api.Options{RequestTimeout: time.Second})

	res, body := get(t, ts, "/specs/v1.yaml", "")
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Equal(t, "application/yaml", res.Header.Get("Content-Type"))
	require.Contains(t, body, "openapi: 3.0.3")

	res, _ = get(t, ts, "/v1/docs/", "")
	require.Equal(t, http.StatusOK, res.StatusCode)

	res, body = get(t, ts, "/v1/state", "")
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Contains(t, body, `"account":"alice"`)
	require.NotEmpty(t, res.Header.Get("X-Request-Id"))
	require.Equal(t, "*", res.Header.Get("Access-Control-Allow-Origin"))

	res, body = do(t, ts, http.MethodPut, "/v1/options", "", `{"concurrency":2}`)
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Contains(t, body, `"concurrency":2`)

	res, body = do(t, ts, http.MethodPut, "/v1/options", "", `{"concurrency":`)
	require.Equal(t, http.StatusBadRequest, res.StatusCode)
	require.Contains(t, body, `"code":"BAD_REQUEST"`)

	res, body = do(t, ts, http.MethodPost, "/v1/scan/jobs", "", "")
	require.Equal(t, http.StatusBadRequest, res.StatusCode)
	require.Contains(t, body, "background scans are not configured")

	res, body = do(t, ts, http.MethodPost, "/v1/unfollow", "", "")
	require.Equal(t, http.StatusBadRequest, res.StatusCode)
	require.Contains(t, body, `"code":"BAD_REQUEST"`)

	res, body = get(t, ts, "/v1/export", "")
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Contains(t, res.Header.Get("Content-Disposition"), "letterboxd-unfollower-alice-")
	require.Contains(t, body, "alice")

	res, body = get(t, ts, "/metrics", "")
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Contains(t, body, "ogen_server_request_count", "generated server records request metrics")

	res, _ = get(t, ts, api.PprofPrefix+"cmdline", "")
	require.Equal(t, http.StatusOK, res.StatusCode)
}

func TestNewServer_Auth(t *testing.T) {
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	pubASN1, err := x509.MarshalPKIXPublicKey(&priv.PublicKey)
	require.NoError(t, err)
	pubPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubASN1})

	ts := newServer(t, api.Options{
		SecHandlerOptions: &v1handler.SecHandlerOptions{PublicKey: string(pubPEM)},
		RequestTimeout:    time.Second,
	})

	res, body := get(t, ts, "/v1/state", "")
	require.Equal(t, http.StatusUnauthorized, res.StatusCode)
	require.Contains(t, body, `"code":"UNAUTHORIZED"`)

	res, body = get(t, ts, "/v1/export", "")
	require.Equal(t, http.StatusUnauthorized, res.StatusCode)
	require.Contains(t, body, `"code":"UNAUTHORIZED"`)

	sign := func(sub string) string {
		now := time.Now()
		tkn, err := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.RegisteredClaims{
			Subject:   sub,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		}).SignedString(priv)
		require.NoError(t, err)

		return "Bearer " + tkn
	}

	res, body = get(t, ts, "/v1/state", sign("mallory"))
	require.Equal(t, http.StatusForbidden, res.StatusCode)
	require.Contains(t, body, `"code":"FORBIDDEN"`)

	res, body = get(t, ts, "/v1/state", sign("Alice"))
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Contains(t, body, `"account":"alice"`)

	res, _ = get(t, ts, "/v1/export", sign("alice"))
	require.Equal(t, http.StatusOK, res.StatusCode)

	// docs stay reachable without a token
	res, _ = get(t, ts, "/v1/docs/", "")
	require.Equal(t, http.StatusOK, res.StatusCode)

	_, err = api.NewServer(newDeps(t), api.Options{
		SecHandlerOptions: &v1handler.SecHandlerOptions{PublicKey: "not a key"},
	})
	require.Error(t, err)
}
