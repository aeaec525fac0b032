// Package v1handler implements the generated v1 API over the engine, plus the
// streaming and file routes mounted next to the generated router.
package v1handler

import (
	"context"
	"errors"
	"net/http"
	"time"
	"unfollower/internal/api/specs/v1specs"
	"unfollower/internal/engine"
	"unfollower/internal/state"
	"unfollower/internal/unfollow"
	"unfollower/pkg/domain"
	"unfollower/pkg/logger"
	"unfollower/pkg/serrors"

	"github.com/goccy/go-json"
	"github.com/ogen-go/ogen/ogenerrors"
	"go.uber.org/zap"
)

// MaxBodyBytes caps request bodies of the plain routes, backups included.
const MaxBodyBytes = 4 << 20

// Engine is what the handlers drive. *engine.Engine implements it.
type Engine interface {
	State() *state.State
	Account() domain.Username
	Sizes() engine.Sizes
	Running() bool

	Scan(ctx context.Context) (*domain.ScanResult, error)
	LastScan() *domain.ScanResult
	Unfollow(ctx context.Context, onProgress unfollow.ProgressFunc) (domain.UnfollowResult, error)

	AddException(ctx context.Context, raw string) (domain.Username, error)
	RemoveException(ctx context.Context, raw string) (domain.Username, error)
	AddUnfollowed(ctx context.Context, raw string) (domain.Username, error)
	RemoveUnfollowed(ctx context.Context, raw string) (domain.Username, error)
	EditExceptions(ctx context.Context, raw []string) (domain.Set, error)
	EditUnfollowed(ctx context.Context, raw []string) (domain.Set, error)
	ClearUnfollowed(ctx context.Context) error

	SetGuard(ctx context.Context, on bool) (domain.Options, error)
	SaveOptions(ctx context.Context, opts domain.Options) (domain.Options, error)
	ToggleUI(ctx context.Context) (bool, error)
}

// Queue schedules background scans.
type Queue interface {
	EnqueueScan(ctx context.Context, autoUnfollow bool) (int64, error)
}

// Deps are the handler dependencies. Queue is optional; without it scans only
// run in the foreground.
type Deps struct {
	Engine Engine
	Queue  Queue
	Now    func() time.Time
}

type Handler struct {
	deps Deps
}

// Ensure Handler implements v1specs.Handler.
var _ v1specs.Handler = (*Handler)(nil)

func New(deps Deps) *Handler {
	if deps.Now == nil {
		deps.Now = time.Now
	}

	return &Handler{deps: deps}
}

type kindStatus struct {
	status  int
	message string
}

var kindStatuses = map[serrors.Kind]kindStatus{ //nolint: gochecknoglobals
	serrors.ErrNotFound:     {http.StatusNotFound, "resource not found"},
	serrors.ErrUnauthorized: {http.StatusUnauthorized, "unauthorized"},
	serrors.ErrForbidden:    {http.StatusForbidden, "forbidden"},
	serrors.ErrBadRequest:   {http.StatusBadRequest, "bad request"},
	serrors.ErrConflict:     {http.StatusConflict, "conflict"},
	serrors.ErrTimeout:      {http.StatusGatewayTimeout, "request timed out"},
	serrors.ErrUnavailable:  {http.StatusServiceUnavailable, "service unavailable"},
	serrors.ErrRateLimited:  {http.StatusTooManyRequests, "too many requests"},
}

// NewError maps err to a response. Semantic kinds keep their message,
// malformed requests are bad requests and failed authentication is
// unauthorized. Everything else is logged and reported as an internal error.
func (h *Handler) NewError(ctx context.Context, err error) *v1specs.ErrorStatusCode {
	var (
		kind         serrors.Kind
		decodeReq    *ogenerrors.DecodeRequestError
		decodeParams *ogenerrors.DecodeParamsError
		security     *ogenerrors.SecurityError
	)
	switch {
	case errors.As(err, &kind):
	case errors.As(err, &decodeReq), errors.As(err, &decodeParams):
		err = serrors.Wrap(serrors.ErrBadRequest, err, "invalid request")
		kind = serrors.ErrBadRequest
	case errors.As(err, &security):
		kind = serrors.ErrUnauthorized
	case errors.Is(err, context.DeadlineExceeded):
		kind = serrors.ErrTimeout
	}

	ks, ok := kindStatuses[kind]
	if !ok {
		logger.Error(ctx, "internal error", zap.Error(err))

		return &v1specs.ErrorStatusCode{
			StatusCode: http.StatusInternalServerError,
			Response:   v1specs.Error{Code: serrors.ErrInternal.Error(), Message: "internal error"},
		}
	}

	msg := ks.message
	var e *serrors.Error
	if errors.As(err, &e) && e.Message() != "" {
		msg = e.Message()
	}

	return &v1specs.ErrorStatusCode{
		StatusCode: ks.status,
		Response:   v1specs.Error{Code: kind.Error(), Message: msg},
	}
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	res := h.NewError(r.Context(), err)
	writeJSON(w, r, res.StatusCode, &res.Response)
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn(r.Context(), "could not write response", zap.Error(err))
	}
}

func usersToV1Specs(users []domain.Username) []string {
	out := make([]string, len(users))
	for i, u := range users {
		out[i] = string(u)
	}

	return out
}
