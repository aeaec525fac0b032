package v1handler_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
	"unfollower/internal/api/handler/v1handler"
	"unfollower/internal/api/specs/v1specs"
	"unfollower/pkg/domain"
	"unfollower/pkg/serrors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/ogen-go/ogen/middleware"
	"github.com/stretchr/testify/require"
)

// helper to generate an RSA key pair and return the private key and PEM-encoded public key.
func genRSAKeys(tb testing.TB) (*rsa.PrivateKey, string) {
	tb.Helper()
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(tb, err, "failed to generate RSA key")
	pubASN1, err := x509.MarshalPKIXPublicKey(&priv.PublicKey)
	require.NoError(tb, err, "failed to marshal public key")
	pubPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubASN1})

	return priv, string(pubPEM)
}

func newSecHandlerForTest(t *testing.T, pubPEM string) *v1handler.SecHandler {
	t.Helper()
	sh, err := v1handler.NewSecHandler(&v1handler.SecHandlerOptions{PublicKey: pubPEM}, "alice")
	require.NoError(t, err, "NewSecHandler failed")

	return sh
}

func signJWTRS256(tb testing.TB, priv *rsa.PrivateKey, sub string, issuedAt time.Time, exp time.Time) string {
	tb.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   sub,
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(exp),
		NotBefore: jwt.NewNumericDate(issuedAt),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	signed, err := token.SignedString(priv)
	require.NoError(tb, err, "failed to sign token")

	return signed
}

func TestHandleBearerAuth_ValidToken(t *testing.T) {
	priv, pubPEM := genRSAKeys(t)
	sh := newSecHandlerForTest(t, pubPEM)

	now := time.Now()
	tkn := signJWTRS256(t, priv, "Alice", now, now.Add(time.Hour))

	ctx, err := sh.HandleBearerAuth(context.Background(), "", v1specs.BearerAuth{Token: tkn})
	require.NoError(t, err)
	require.Equal(t, domain.Username("alice"), v1handler.GetSubjectFromContext(ctx))
}

func TestHandleBearerAuth_Rejections(t *testing.T) {
	priv, pubPEM := genRSAKeys(t)
	privOther, _ := genRSAKeys(t)
	now := time.Now()

	hs256, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "alice",
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.RegisteredClaims{Subject: "alice"}).SignedString(priv)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
		kind  serrors.Kind
	}{
		{"invalid signature", signJWTRS256(t, privOther, "alice", now, now.Add(time.Hour)), serrors.ErrUnauthorized},
		{"expired", signJWTRS256(t, priv, "alice", now.Add(-2*time.Hour), now.Add(-time.Hour)), serrors.ErrUnauthorized},
		{"wrong algorithm", hs256, serrors.ErrUnauthorized},
		{"no expiry", noExpiry, serrors.ErrUnauthorized},
		{"empty subject", signJWTRS256(t, priv, " / ", now, now.Add(time.Hour)), serrors.ErrUnauthorized},
		{"other account", signJWTRS256(t, priv, "mallory", now, now.Add(time.Hour)), serrors.ErrForbidden},
		{"garbage", "not.a.jwt", serrors.ErrUnauthorized},
	}

	sh := newSecHandlerForTest(t, pubPEM)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := sh.HandleBearerAuth(context.Background(), "", v1specs.BearerAuth{Token: tt.token})
			require.ErrorIs(t, err, tt.kind)
		})
	}
}

func TestNewSecHandler_BadKey(t *testing.T) {
	_, err := v1handler.NewSecHandler(&v1handler.SecHandlerOptions{PublicKey: "nope"}, "alice")
	require.Error(t, err)
}

func TestSecHandler_Middleware(t *testing.T) {
	priv, pubPEM := genRSAKeys(t)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Subject", string(v1handler.GetSubjectFromContext(r.Context())))
		w.WriteHeader(http.StatusNoContent)
	})

	serve := func(sh *v1handler.SecHandler, authorization string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/v1/state", nil)
		if authorization != "" {
			req.Header.Set("Authorization", authorization)
		}
		rec := httptest.NewRecorder()
		sh.Middleware(v1handler.New(v1handler.Deps{}), next).ServeHTTP(rec, req)

		return rec
	}

	sh := newSecHandlerForTest(t, pubPEM)
	require.True(t, sh.Enabled())

	rec := serve(sh, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	now := time.Now()
	rec = serve(sh, "Bearer "+signJWTRS256(t, priv, "mallory", now, now.Add(time.Hour)))
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = serve(sh, "Bearer "+signJWTRS256(t, priv, "alice", now, now.Add(time.Hour)))
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, "alice", rec.Header().Get("X-Subject"))

	disabled, err := v1handler.NewSecHandler(&v1handler.SecHandlerOptions{}, "alice")
	require.NoError(t, err)
	require.False(t, disabled.Enabled())
	require.Equal(t, http.StatusNoContent, serve(disabled, "").Code)
}

func TestHandleBearerAuth_Disabled(t *testing.T) {
	sh, err := v1handler.NewSecHandler(&v1handler.SecHandlerOptions{}, "alice")
	require.NoError(t, err)

	ctx, err := sh.HandleBearerAuth(context.Background(), "", v1specs.BearerAuth{Token: "garbage"})
	require.NoError(t, err)
	require.Empty(t, v1handler.GetSubjectFromContext(ctx))
}

func TestSecHandler_RequireSubject(t *testing.T) {
	priv, pubPEM := genRSAKeys(t)
	now := time.Now()
	tkn := signJWTRS256(t, priv, "alice", now, now.Add(time.Hour))

	called := 0
	next := func(middleware.Request) (middleware.Response, error) {
		called++

		return middleware.Response{}, nil
	}

	enabled := newSecHandlerForTest(t, pubPEM)
	authed, err := enabled.HandleBearerAuth(context.Background(), "", v1specs.BearerAuth{Token: tkn})
	require.NoError(t, err)
	disabled, err := v1handler.NewSecHandler(&v1handler.SecHandlerOptions{}, "alice")
	require.NoError(t, err)

	tests := []struct {
		name string
		sh   *v1handler.SecHandler
		ctx  context.Context
		kind error
	}{
		{"enabled without token", enabled, context.Background(), serrors.ErrUnauthorized},
		{"enabled with subject", enabled, authed, nil},
		{"disabled", disabled, context.Background(), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := called
			_, err := tt.sh.RequireSubject(middleware.Request{Context: tt.ctx}, next)
			if tt.kind != nil {
				require.ErrorIs(t, err, tt.kind)
				require.Equal(t, before, called)

				return
			}
			require.NoError(t, err)
			require.Equal(t, before+1, called)
		})
	}
}
