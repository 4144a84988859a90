package autotrack

import "log/slog"

// Revalidator is told every time a tag is dirtied. Hosts implement it to
// schedule a re-render; they are expected to coalesce calls.
type Revalidator interface {
	ScheduleRevalidate()
}

// RevalidateFunc adapts a plain function to Revalidator.
type RevalidateFunc func()

func (f RevalidateFunc) ScheduleRevalidate() { f() }

// Runtime owns the clock and the tracking frame stack. Everything that
// would otherwise be process wide state lives here, so independent runtimes
// can coexist and a test can start over by creating a new one.
type Runtime struct {
	clock Clock

	// current is the tracker of the innermost frame, nil when no frame is
	// open or the innermost frame is untracked.
	current *tracker
	frames  []frame

	guard consumptionGuard

	revalidator Revalidator
	logger      *slog.Logger
}

// Option configures a Runtime.
type Option func(*Runtime)

// WithLogger sets the logger used for diagnostics. Defaults to slog.Default.
func WithLogger(logger *slog.Logger) Option {
	return func(rt *Runtime) {
		rt.logger = logger
	}
}

// WithRevalidator sets the hook called on every Dirty.
func WithRevalidator(r Revalidator) Option {
	return func(rt *Runtime) {
		rt.revalidator = r
	}
}

// WithRevalidateFunc is WithRevalidator for a plain function.
func WithRevalidateFunc(fn func()) Option {
	return WithRevalidator(RevalidateFunc(fn))
}

// New creates a Runtime whose clock starts at InitialRevision.
func New(opts ...Option) *Runtime {
	rt := &Runtime{clock: newClock()}
	for _, opt := range opts {
		opt(rt)
	}
	if rt.logger == nil {
		rt.logger = slog.Default()
	}
	return rt
}

// Now returns the current revision.
func (rt *Runtime) Now() Revision { return rt.clock.Now() }

// Bump advances the clock without dirtying any tag. Only CurrentTag, and
// combinators containing it, observe the change.
func (rt *Runtime) Bump() Revision { return rt.clock.Bump() }

// Logger returns the runtime's logger.
func (rt *Runtime) Logger() *slog.Logger { return rt.logger }

func (rt *Runtime) scheduleRevalidate() {
	if rt.revalidator != nil {
		rt.revalidator.ScheduleRevalidate()
	}
}
