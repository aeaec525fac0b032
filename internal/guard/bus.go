package guard

import (
	"context"
	"time"
	"unfollower/internal/state"
	"unfollower/pkg/domain"
	"unfollower/pkg/storage"
)

// Signal names why a guard pass is wanted. Signals combine as a bit set.
type Signal uint8

const (
	// SignalStartup is sent once the view is ready.
	SignalStartup Signal = 1 << iota
	// SignalStructure is sent when the view's markup changed.
	SignalStructure
	// SignalState is sent when the unfollowed set or the options changed.
	SignalState
)

// Has reports whether s is part of the set.
func (s Signal) Has(o Signal) bool { return s&o != 0 }

func (s Signal) String() string {
	var out string
	for _, x := range []struct {
		sig  Signal
		name string
	}{{SignalStartup, "startup"}, {SignalStructure, "structure"}, {SignalState, "state"}} {
		if s.Has(x.sig) {
			if out != "" {
				out += "|"
			}
			out += x.name
		}
	}

	return out
}

// DefaultWindow is the debounce window used when none is configured.
const DefaultWindow = 50 * time.Millisecond

// Bus coalesces bursts of signals into single passes. The first signal after
// a pass opens a window; everything received until it closes goes into one
// pass. Later signals never extend an open window, so a page that keeps
// changing is still passed at least once per window. Signals emitted while a
// pass runs are delivered in the next one.
type Bus struct {
	window time.Duration
	in     chan Signal
	flush  func(ctx context.Context, sig Signal)
}

// NewBus creates a bus calling flush at most once per window with every
// signal received in it.
func NewBus(window time.Duration, flush func(ctx context.Context, sig Signal)) *Bus {
	if window <= 0 {
		window = DefaultWindow
	}

	return &Bus{window: window, in: make(chan Signal, 64), flush: flush}
}

// Emit queues a signal without blocking. A full queue already guarantees a
// pending pass, so the signal may be folded into it.
func (b *Bus) Emit(sig Signal) {
	select {
	case b.in <- sig:
	default:
	}
}

// Run delivers passes until ctx is done.
func (b *Bus) Run(ctx context.Context) error {
	var (
		pending Signal
		timer   *time.Timer
		timerC  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case sig := <-b.in:
			pending |= sig
			if timer == nil {
				timer = time.NewTimer(b.window)
				timerC = timer.C
			}
		case <-timerC:
			sig := pending
			pending, timer, timerC = 0, nil, nil
			b.flush(ctx, sig)
		}
	}
}

// StateListener returns a state listener that emits SignalState whenever the
// unfollowed set or the options change.
func StateListener(b *Bus) state.Listener {
	return func(_ context.Context, ev state.Event) {
		if ev.Key == storage.KeyUnfollowed || ev.Key == storage.KeyOptions {
			b.Emit(SignalState)
		}
	}
}

// Attach wires g, view and st to a new bus: state changes and the returned
// bus's signals trigger ApplyAll on view. errFn receives failed passes and
// may be nil. Call Run on the result and emit SignalStartup when ready.
func Attach(g *Guard, st *state.State, view domain.View, window time.Duration, errFn func(error)) *Bus {
	bus := NewBus(window, func(ctx context.Context, _ Signal) {
		if err := g.ApplyAll(ctx, view); err != nil && errFn != nil {
			errFn(err)
		}
	})
	st.OnChange(StateListener(bus))

	return bus
}
