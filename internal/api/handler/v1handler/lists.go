package v1handler

import (
	"context"
	"unfollower/internal/api/specs/v1specs"
	"unfollower/pkg/domain"
)

func userList(set domain.Set) *v1specs.UserList {
	return &v1specs.UserList{Users: usersToV1Specs(set.Sorted())}
}

func userRef(u domain.Username, err error) (*v1specs.UserRef, error) {
	if err != nil {
		return nil, err
	}

	return &v1specs.UserRef{User: string(u)}, nil
}

func replaced(set domain.Set, err error) (*v1specs.UserList, error) {
	if err != nil {
		return nil, err
	}

	return userList(set), nil
}

// ListExceptions returns the exception set, sorted.
func (h *Handler) ListExceptions(_ context.Context) (*v1specs.UserList, error) {
	return userList(h.deps.Engine.State().Exceptions()), nil
}

// ReplaceExceptions replaces the exception set.
func (h *Handler) ReplaceExceptions(ctx context.Context, req *v1specs.UserList) (*v1specs.UserList, error) {
	return replaced(h.deps.Engine.EditExceptions(ctx, req.Users))
}

// AddException adds an account to the exceptions.
func (h *Handler) AddException(ctx context.Context, params v1specs.AddExceptionParams) (*v1specs.UserRef, error) {
	return userRef(h.deps.Engine.AddException(ctx, params.User))
}

// RemoveException removes an account from the exceptions.
func (h *Handler) RemoveException(ctx context.Context, params v1specs.RemoveExceptionParams) (*v1specs.UserRef, error) {
	return userRef(h.deps.Engine.RemoveException(ctx, params.User))
}

// ListUnfollowed returns the unfollowed set, sorted.
func (h *Handler) ListUnfollowed(_ context.Context) (*v1specs.UserList, error) {
	return userList(h.deps.Engine.State().Unfollowed()), nil
}

// ReplaceUnfollowed replaces the unfollowed set.
func (h *Handler) ReplaceUnfollowed(ctx context.Context, req *v1specs.UserList) (*v1specs.UserList, error) {
	return replaced(h.deps.Engine.EditUnfollowed(ctx, req.Users))
}

// ClearUnfollowed empties the unfollowed set and returns it.
func (h *Handler) ClearUnfollowed(ctx context.Context) (*v1specs.UserList, error) {
	if err := h.deps.Engine.ClearUnfollowed(ctx); err != nil {
		return nil, err //nolint: wrapcheck
	}

	return userList(h.deps.Engine.State().Unfollowed()), nil
}

// AddUnfollowed records an account as unfollowed.
func (h *Handler) AddUnfollowed(ctx context.Context, params v1specs.AddUnfollowedParams) (*v1specs.UserRef, error) {
	return userRef(h.deps.Engine.AddUnfollowed(ctx, params.User))
}

// RemoveUnfollowed forgets an unfollowed account.
func (h *Handler) RemoveUnfollowed(ctx context.Context, params v1specs.RemoveUnfollowedParams) (*v1specs.UserRef, error) {
	return userRef(h.deps.Engine.RemoveUnfollowed(ctx, params.User))
}
