package engine

import (
	"context"
	"unfollower/pkg/domain"
	"unfollower/pkg/logger"
	"unfollower/pkg/serrors"

	"go.uber.org/zap"
)

// subject canonicalizes the account an add/remove acts on.
func (e *Engine) subject(raw string) (domain.Username, error) {
	u := domain.Normalize(raw)
	if u == "" {
		return "", serrors.With(serrors.ErrNotFound, "no profile to act on")
	}

	return u, nil
}

// Subject resolves the account a view is about.
func (e *Engine) Subject(view domain.View) (domain.Username, error) {
	u, ok := view.Owner()
	if !ok {
		return "", serrors.With(serrors.ErrNotFound, "this page is not a profile")
	}

	return u, nil
}

// AddException adds the subject to the exception set. The logged-in account
// itself is refused.
func (e *Engine) AddException(ctx context.Context, raw string) (domain.Username, error) {
	u, err := e.subject(raw)
	if err != nil {
		return "", err
	}
	if u == e.Account() {
		return "", serrors.With(serrors.ErrConflict, "that's you")
	}

	return u, e.st.AddExceptions(ctx, u)
}

// RemoveException removes the subject from the exception set.
func (e *Engine) RemoveException(ctx context.Context, raw string) (domain.Username, error) {
	u, err := e.subject(raw)
	if err != nil {
		return "", err
	}

	return u, e.st.RemoveExceptions(ctx, u)
}

// AddUnfollowed adds the subject to the unfollowed set, which blocks
// re-following it. The logged-in account itself is refused.
func (e *Engine) AddUnfollowed(ctx context.Context, raw string) (domain.Username, error) {
	u, err := e.subject(raw)
	if err != nil {
		return "", err
	}
	if u == e.Account() {
		return "", serrors.With(serrors.ErrConflict, "that's you")
	}

	return u, e.st.AddUnfollowed(ctx, u)
}

// RemoveUnfollowed removes the subject from the unfollowed set. Guard passes
// triggered by the change unblock its visible controls.
func (e *Engine) RemoveUnfollowed(ctx context.Context, raw string) (domain.Username, error) {
	u, err := e.subject(raw)
	if err != nil {
		return "", err
	}

	return u, e.st.RemoveUnfollowed(ctx, u)
}

// EditExceptions replaces the exception set with raw, canonicalized. The
// logged-in account is dropped.
func (e *Engine) EditExceptions(ctx context.Context, raw []string) (domain.Set, error) {
	set := e.withoutSelf(ctx, domain.ParseSet(raw))

	return set, e.st.ReplaceExceptions(ctx, set)
}

// EditUnfollowed replaces the unfollowed set with raw, canonicalized. The
// logged-in account is dropped.
func (e *Engine) EditUnfollowed(ctx context.Context, raw []string) (domain.Set, error) {
	set := e.withoutSelf(ctx, domain.ParseSet(raw))

	return set, e.st.ReplaceUnfollowed(ctx, set)
}

// ClearUnfollowed empties the unfollowed set.
func (e *Engine) ClearUnfollowed(ctx context.Context) error {
	return e.st.ClearUnfollowed(ctx)
}

// SetGuard switches the follow guard on or off.
func (e *Engine) SetGuard(ctx context.Context, on bool) (domain.Options, error) {
	return e.st.UpdateOptions(ctx, func(o *domain.Options) { o.BlockReFollow = on })
}

// SaveOptions stores normalized options.
func (e *Engine) SaveOptions(ctx context.Context, opts domain.Options) (domain.Options, error) {
	return e.st.SaveOptions(ctx, opts)
}

// ToggleUI flips the shared surface flag.
func (e *Engine) ToggleUI(ctx context.Context) (bool, error) {
	return e.st.ToggleUI(ctx)
}

func (e *Engine) withoutSelf(ctx context.Context, set domain.Set) domain.Set {
	if set.Has(e.Account()) {
		logger.Warn(ctx, "dropping the logged-in account from the list", zap.String("account", string(e.Account())))
		set.Remove(e.Account())
	}

	return set
}
