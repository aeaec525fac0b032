// Code generated by ogen, DO NOT EDIT.

package v1specs

import (
	"context"
)

// Handler handles operations described by OpenAPI v3 specification.
type Handler interface {
	// AddException implements addException operation.
	//
	// Add an account to the exceptions.
	//
	// POST /exceptions/{user}
	AddException(ctx context.Context, params AddExceptionParams) (*UserRef, error)
	// AddUnfollowed implements addUnfollowed operation.
	//
	// Record an account as unfollowed.
	//
	// POST /unfollowed/{user}
	AddUnfollowed(ctx context.Context, params AddUnfollowedParams) (*UserRef, error)
	// ClearUnfollowed implements clearUnfollowed operation.
	//
	// Empty the unfollowed set.
	//
	// DELETE /unfollowed
	ClearUnfollowed(ctx context.Context) (*UserList, error)
	// EnqueueScan implements enqueueScan operation.
	//
	// Enqueue a background scan.
	//
	// POST /scan/jobs
	EnqueueScan(ctx context.Context, params EnqueueScanParams) (*ScanJob, error)
	// GetOptions implements getOptions operation.
	//
	// Current options.
	//
	// GET /options
	GetOptions(ctx context.Context) (*Options, error)
	// GetScan implements getScan operation.
	//
	// Latest scan result, filtered against the current exceptions.
	//
	// GET /scan
	GetScan(ctx context.Context) (*ScanResult, error)
	// GetState implements getState operation.
	//
	// Set sizes, options and activity of the account.
	//
	// GET /state
	GetState(ctx context.Context) (*State, error)
	// ListExceptions implements listExceptions operation.
	//
	// Accounts never unfollowed.
	//
	// GET /exceptions
	ListExceptions(ctx context.Context) (*UserList, error)
	// ListUnfollowed implements listUnfollowed operation.
	//
	// Accounts unfollowed by the engine.
	//
	// GET /unfollowed
	ListUnfollowed(ctx context.Context) (*UserList, error)
	// RemoveException implements removeException operation.
	//
	// Remove an account from the exceptions.
	//
	// DELETE /exceptions/{user}
	RemoveException(ctx context.Context, params RemoveExceptionParams) (*UserRef, error)
	// RemoveUnfollowed implements removeUnfollowed operation.
	//
	// Forget an unfollowed account.
	//
	// DELETE /unfollowed/{user}
	RemoveUnfollowed(ctx context.Context, params RemoveUnfollowedParams) (*UserRef, error)
	// ReplaceExceptions implements replaceExceptions operation.
	//
	// Replace the exception set.
	//
	// PUT /exceptions
	ReplaceExceptions(ctx context.Context, req *UserList) (*UserList, error)
	// ReplaceUnfollowed implements replaceUnfollowed operation.
	//
	// Replace the unfollowed set.
	//
	// PUT /unfollowed
	ReplaceUnfollowed(ctx context.Context, req *UserList) (*UserList, error)
	// RunScan implements runScan operation.
	//
	// Scan the account and return the result.
	//
	// POST /scan
	RunScan(ctx context.Context) (*ScanResult, error)
	// SetGuard implements setGuard operation.
	//
	// Enable or disable the follow guard.
	//
	// PUT /guard
	SetGuard(ctx context.Context, req *Guard) (*Options, error)
	// ToggleUI implements toggleUI operation.
	//
	// Flip the shared open flag of the control surface.
	//
	// POST /ui/toggle
	ToggleUI(ctx context.Context) (*Surface, error)
	// UpdateOptions implements updateOptions operation.
	//
	// Absent fields keep their value. The result is normalized.
	//
	// PUT /options
	UpdateOptions(ctx context.Context, req *OptionsUpdate) (*Options, error)
	// NewError creates *ErrorStatusCode from error returned by handler.
	//
	// Used for common default response.
	NewError(ctx context.Context, err error) *ErrorStatusCode
}

// Server implements http server based on OpenAPI v3 specification and
// calls Handler to handle requests.
type Server struct {
	h   Handler
	sec SecurityHandler
	baseServer
}

// NewServer creates new Server.
func NewServer(h Handler, sec SecurityHandler, opts ...ServerOption) (*Server, error) {
	s, err := newServerConfig(opts...).baseServer()
	if err != nil {
		return nil, err
	}
	return &Server{
		h:          h,
		sec:        sec,
		baseServer: s,
	}, nil
}
