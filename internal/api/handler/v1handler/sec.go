package v1handler

import (
	"context"
	"crypto/rsa"
	"fmt"
	"net/http"
	"unfollower/internal/api/specs/v1specs"
	"unfollower/internal/config"
	"unfollower/pkg/controller"
	"unfollower/pkg/domain"
	"unfollower/pkg/logger"
	"unfollower/pkg/serrors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/ogen-go/ogen/middleware"
	"go.uber.org/zap"
)

// SubjectKey is the context key under which the authenticated token subject
// is stored.
const SubjectKey controller.CtxKey = "Subject"

// SecHandlerOptions configure bearer authentication.
type SecHandlerOptions struct {
	// PublicKey is the PEM encoded RSA key tokens are verified with. An empty
	// key disables authentication.
	PublicKey string
}

// NewSecHandlerOptions constructs SecHandlerOptions from the application config.
func NewSecHandlerOptions(cfg *config.Config) *SecHandlerOptions {
	return &SecHandlerOptions{PublicKey: cfg.JWT.PublicKey}
}

// SecHandler verifies RS256 bearer tokens. A token is only accepted when its
// subject is the account the engine acts for.
type SecHandler struct {
	key     *rsa.PublicKey
	account domain.Username
}

// NewSecHandler parses the configured key.
func NewSecHandler(opts *SecHandlerOptions, account domain.Username) (*SecHandler, error) {
	s := &SecHandler{account: account}
	if opts == nil || opts.PublicKey == "" {
		return s, nil
	}

	key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(opts.PublicKey))
	if err != nil {
		return nil, fmt.Errorf("could not parse RSA public key: %w", err)
	}
	s.key = key

	return s, nil
}

// Ensure SecHandler implements v1specs.SecurityHandler.
var _ v1specs.SecurityHandler = (*SecHandler)(nil)

// Enabled reports whether tokens are checked at all.
func (s *SecHandler) Enabled() bool { return s.key != nil }

// HandleBearerAuth validates the token of a generated operation and returns
// ctx carrying its subject. Tokens are ignored when authentication is disabled.
func (s *SecHandler) HandleBearerAuth(
	ctx context.Context,
	_ v1specs.OperationName,
	t v1specs.BearerAuth) (context.Context, error) {
	if !s.Enabled() {
		return ctx, nil
	}

	return s.verify(ctx, t.Token)
}

// RequireSubject is a middleware of the generated server. With a key
// configured it rejects operations that carried no bearer token.
func (s *SecHandler) RequireSubject(req middleware.Request, next middleware.Next) (middleware.Response, error) {
	if s.Enabled() && GetSubjectFromContext(req.Context) == "" {
		return middleware.Response{}, serrors.With(serrors.ErrUnauthorized, "missing bearer token")
	}

	return next(req)
}

func (s *SecHandler) verify(ctx context.Context, token string) (context.Context, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return s.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return ctx, serrors.Wrap(serrors.ErrUnauthorized, err, "invalid token")
	}

	subject := domain.Normalize(claims.Subject)
	if subject == "" {
		return ctx, serrors.With(serrors.ErrUnauthorized, "token has no subject")
	}
	if subject != s.account {
		return ctx, serrors.With(serrors.ErrForbidden, "token is not valid for this account")
	}

	return context.WithValue(ctx, SubjectKey, subject), nil
}

// Middleware guards the plain routes mounted next to the generated server. It
// rejects requests without a valid bearer token and is a pass-through when
// authentication is disabled. Errors are rendered with h.
func (s *SecHandler) Middleware(h *Handler, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.Enabled() {
			next.ServeHTTP(w, r)

			return
		}

		token, ok := controller.BearerToken(r)
		if !ok {
			h.writeError(w, r, serrors.With(serrors.ErrUnauthorized, "missing bearer token"))

			return
		}
		ctx, err := s.verify(r.Context(), token)
		if err != nil {
			logger.Warn(r.Context(), "rejected bearer token", zap.Error(err))
			h.writeError(w, r, err)

			return
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetSubjectFromContext returns the authenticated subject, if any.
func GetSubjectFromContext(ctx context.Context) domain.Username {
	u, _ := ctx.Value(SubjectKey).(domain.Username)

	return u
}
