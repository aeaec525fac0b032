// Code generated by ogen, DO NOT EDIT.

package v1specs

import (
	"context"

	ht "github.com/ogen-go/ogen/http"
)

// UnimplementedHandler is no-op Handler which returns http.ErrNotImplemented.
type UnimplementedHandler struct{}

var _ Handler = UnimplementedHandler{}

// AddException implements addException operation.
//
// Add an account to the exceptions.
//
// POST /exceptions/{user}
func (UnimplementedHandler) AddException(ctx context.Context, params AddExceptionParams) (r *UserRef, _ error) {
	return r, ht.ErrNotImplemented
}

// AddUnfollowed implements addUnfollowed operation.
//
// Record an account as unfollowed.
//
// POST /unfollowed/{user}
func (UnimplementedHandler) AddUnfollowed(ctx context.Context, params AddUnfollowedParams) (r *UserRef, _ error) {
	return r, ht.ErrNotImplemented
}

// ClearUnfollowed implements clearUnfollowed operation.
//
// Empty the unfollowed set.
//
// DELETE /unfollowed
func (UnimplementedHandler) ClearUnfollowed(ctx context.Context) (r *UserList, _ error) {
	return r, ht.ErrNotImplemented
}

// EnqueueScan implements enqueueScan operation.
//
// Enqueue a background scan.
//
// POST /scan/jobs
func (UnimplementedHandler) EnqueueScan(ctx context.Context, params EnqueueScanParams) (r *ScanJob, _ error) {
	return r, ht.ErrNotImplemented
}

// GetOptions implements getOptions operation.
//
// Current options.
//
// GET /options
func (UnimplementedHandler) GetOptions(ctx context.Context) (r *Options, _ error) {
	return r, ht.ErrNotImplemented
}

// GetScan implements getScan operation.
//
// Latest scan result, filtered against the current exceptions.
//
// GET /scan
func (UnimplementedHandler) GetScan(ctx context.Context) (r *ScanResult, _ error) {
	return r, ht.ErrNotImplemented
}

// GetState implements getState operation.
//
// Set sizes, options and activity of the account.
//
// GET /state
func (UnimplementedHandler) GetState(ctx context.Context) (r *State, _ error) {
	return r, ht.ErrNotImplemented
}

// ListExceptions implements listExceptions operation.
//
// Accounts never unfollowed.
//
// GET /exceptions
func (UnimplementedHandler) ListExceptions(ctx context.Context) (r *UserList, _ error) {
	return r, ht.ErrNotImplemented
}

// ListUnfollowed implements listUnfollowed operation.
//
// Accounts unfollowed by the engine.
//
// GET /unfollowed
func (UnimplementedHandler) ListUnfollowed(ctx context.Context) (r *UserList, _ error) {
	return r, ht.ErrNotImplemented
}

// RemoveException implements removeException operation.
//
// Remove an account from the exceptions.
//
// DELETE /exceptions/{user}
func (UnimplementedHandler) RemoveException(ctx context.Context, params RemoveExceptionParams) (r *UserRef, _ error) {
	return r, ht.ErrNotImplemented
}

// RemoveUnfollowed implements removeUnfollowed operation.
//
// Forget an unfollowed account.
//
// DELETE /unfollowed/{user}
func (UnimplementedHandler) RemoveUnfollowed(ctx context.Context, params RemoveUnfollowedParams) (r *UserRef, _ error) {
	return r, ht.ErrNotImplemented
}

// ReplaceExceptions implements replaceExceptions operation.
//
// Replace the exception set.
//
// PUT /exceptions
func (UnimplementedHandler) ReplaceExceptions(ctx context.Context, req *UserList) (r *UserList, _ error) {
	return r, ht.ErrNotImplemented
}

// ReplaceUnfollowed implements replaceUnfollowed operation.
//
// Replace the unfollowed set.
//
// PUT /unfollowed
func (UnimplementedHandler) ReplaceUnfollowed(ctx context.Context, req *UserList) (r *UserList, _ error) {
	return r, ht.ErrNotImplemented
}

// RunScan implements runScan operation.
//
// Scan the account and return the result.
//
// POST /scan
func (UnimplementedHandler) RunScan(ctx context.Context) (r *ScanResult, _ error) {
	return r, ht.ErrNotImplemented
}

// SetGuard implements setGuard operation.
//
// Enable or disable the follow guard.
//
// PUT /guard
func (UnimplementedHandler) SetGuard(ctx context.Context, req *Guard) (r *Options, _ error) {
	return r, ht.ErrNotImplemented
}

// ToggleUI implements toggleUI operation.
//
// Flip the shared open flag of the control surface.
//
// POST /ui/toggle
func (UnimplementedHandler) ToggleUI(ctx context.Context) (r *Surface, _ error) {
	return r, ht.ErrNotImplemented
}

// UpdateOptions implements updateOptions operation.
//
// Absent fields keep their value. The result is normalized.
//
// PUT /options
func (UnimplementedHandler) UpdateOptions(ctx context.Context, req *OptionsUpdate) (r *Options, _ error) {
	return r, ht.ErrNotImplemented
}

// NewError creates *ErrorStatusCode from error returned by handler.
//
// Used for common default response.
func (UnimplementedHandler) NewError(ctx context.Context, err error) (r *ErrorStatusCode) {
	r = new(ErrorStatusCode)
	return r
}
