package v1handler

import (
	"context"
	"unfollower/internal/api/specs/v1specs"
	"unfollower/pkg/domain"
)

func DomainOptionsToV1Specs(in domain.Options) *v1specs.Options {
	return &v1specs.Options{
		BlockReFollow: in.BlockReFollow,
		Concurrency:   in.Concurrency,
		ScanTimeoutMs: in.ScanTimeoutMs,
		ClickDelayMs:  in.ClickDelayMs,
	}
}

// GetState returns the set sizes, options and activity of the account.
func (h *Handler) GetState(_ context.Context) (*v1specs.State, error) {
	eng := h.deps.Engine
	st := eng.State()
	sizes := eng.Sizes()

	return &v1specs.State{
		Account:     string(eng.Account()),
		Exceptions:  sizes.Exceptions,
		Unfollowed:  sizes.Unfollowed,
		Options:     *DomainOptionsToV1Specs(st.Options()),
		SurfaceOpen: st.UIOpen(),
		Running:     eng.Running(),
		Scanned:     eng.LastScan() != nil,
	}, nil
}

// GetOptions returns the current options.
func (h *Handler) GetOptions(_ context.Context) (*v1specs.Options, error) {
	return DomainOptionsToV1Specs(h.deps.Engine.State().Options()), nil
}

// UpdateOptions merges the fields present in req over the current options and
// returns the normalized result.
func (h *Handler) UpdateOptions(ctx context.Context, req *v1specs.OptionsUpdate) (*v1specs.Options, error) {
	opts := h.deps.Engine.State().Options()
	if v, ok := req.BlockReFollow.Get(); ok {
		opts.BlockReFollow = v
	}
	if v, ok := req.Concurrency.Get(); ok {
		opts.Concurrency = v
	}
	if v, ok := req.ScanTimeoutMs.Get(); ok {
		opts.ScanTimeoutMs = v
	}
	if v, ok := req.ClickDelayMs.Get(); ok {
		opts.ClickDelayMs = v
	}

	saved, err := h.deps.Engine.SaveOptions(ctx, opts)
	if err != nil {
		return nil, err //nolint: wrapcheck
	}

	return DomainOptionsToV1Specs(saved), nil
}

// SetGuard enables or disables the follow guard.
func (h *Handler) SetGuard(ctx context.Context, req *v1specs.Guard) (*v1specs.Options, error) {
	opts, err := h.deps.Engine.SetGuard(ctx, req.Enabled)
	if err != nil {
		return nil, err //nolint: wrapcheck
	}

	return DomainOptionsToV1Specs(opts), nil
}

// ToggleUI flips the shared open flag of the control surface.
func (h *Handler) ToggleUI(ctx context.Context) (*v1specs.Surface, error) {
	open, err := h.deps.Engine.ToggleUI(ctx)
	if err != nil {
		return nil, err //nolint: wrapcheck
	}

	return &v1specs.Surface{Open: open}, nil
}
