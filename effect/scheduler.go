package effect

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/delaneyj/tagparty/autotrack"
)

// ErrFlushLimit is returned by Flush when effects keep invalidating each
// other.
var ErrFlushLimit = errors.New("effect: flush did not settle")

// DefaultMaxFlushPasses bounds the number of passes a single Flush makes.
const DefaultMaxFlushPasses = 100

// ErrFn is the body of an effect.
type ErrFn func() error

// OnErrorFunc receives errors returned by effects.
type OnErrorFunc func(label string, err error)

// Scheduler is the host side of autotrack: it is the runtime's Revalidator
// and re-runs effects whose dependencies changed.
type Scheduler struct {
	rt      *autotrack.Runtime
	logger  *slog.Logger
	onError OnErrorFunc

	effects   []*runner
	maxPasses int

	pending    bool
	batchDepth int
	flushing   bool
}

type runner struct {
	label    string
	fn       ErrFn
	tag      *autotrack.Tag
	snapshot autotrack.Revision
	stopped  bool
}

type Option func(*Scheduler)

// WithErrorHandler sets the callback for effect errors. Without one they
// are logged.
func WithErrorHandler(onError OnErrorFunc) Option {
	return func(s *Scheduler) {
		s.onError = onError
	}
}

// WithLogger sets the logger of the scheduler and of its runtime.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scheduler) {
		s.logger = logger
	}
}

// WithMaxFlushPasses overrides DefaultMaxFlushPasses.
func WithMaxFlushPasses(n int) Option {
	return func(s *Scheduler) {
		s.maxPasses = n
	}
}

// NewScheduler creates a scheduler together with the runtime it drives.
func NewScheduler(opts ...Option) *Scheduler {
	s := &Scheduler{maxPasses: DefaultMaxFlushPasses}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	s.rt = autotrack.New(
		autotrack.WithRevalidator(s),
		autotrack.WithLogger(s.logger),
	)
	return s
}

func (s *Scheduler) Runtime() *autotrack.Runtime {
	return s.rt
}

// ScheduleRevalidate is called by the runtime on every Dirty. Outside of a
// batch, a flush and any open frame the scheduler flushes right away;
// otherwise the request is remembered for the next Flush.
func (s *Scheduler) ScheduleRevalidate() {
	s.pending = true
	s.maybeFlush()
}

func (s *Scheduler) maybeFlush() {
	if !s.pending || s.batchDepth > 0 || s.flushing || s.rt.InFrame() {
		return
	}
	if _, err := s.Flush(); err != nil {
		s.logger.Error("automatic flush failed", slog.Any("error", err))
	}
}

// Pending reports whether a tag was dirtied since the last flush.
func (s *Scheduler) Pending() bool {
	return s.pending
}

// Effect runs fn now and again on every flush after a tag it read was
// dirtied. The returned function stops it.
func (s *Scheduler) Effect(label string, fn ErrFn) (stop func()) {
	e := &runner{label: label, fn: fn}
	s.effects = append(s.effects, e)
	s.run(e)
	// writes made by the first run could not flush while it was tracking
	s.maybeFlush()
	return func() {
		if e.stopped {
			return
		}
		e.stopped = true
		s.effects = slices.DeleteFunc(s.effects, func(other *runner) bool {
			return other == e
		})
	}
}

func (s *Scheduler) run(e *runner) {
	var err error
	e.tag = s.rt.Track(e.label, func() {
		err = e.fn()
	})
	e.snapshot = s.rt.Now()
	if err == nil {
		return
	}
	if s.onError != nil {
		s.onError(e.label, err)
		return
	}
	s.logger.Error("effect failed", slog.String("effect", e.label), slog.Any("error", err))
}

// Flush re-runs every effect whose dependencies changed, repeating until
// no effect dirties anything. It returns the number of effect runs.
func (s *Scheduler) Flush() (int, error) {
	if s.flushing {
		return 0, nil
	}
	s.flushing = true
	defer func() { s.flushing = false }()

	ran := 0
	for pass := 0; s.pending; pass++ {
		if pass == s.maxPasses {
			return ran, fmt.Errorf("%w after %d passes", ErrFlushLimit, pass)
		}
		s.pending = false

		passRuns := 0
		for _, e := range slices.Clone(s.effects) {
			if e.stopped || s.rt.Validate(e.tag, e.snapshot) {
				continue
			}
			s.run(e)
			passRuns++
		}
		ran += passRuns
		s.logger.Debug("flush pass",
			slog.Int("pass", pass),
			slog.Int("effects", len(s.effects)),
			slog.Int("ran", passRuns),
		)
	}
	return ran, nil
}

func (s *Scheduler) StartBatch() {
	s.batchDepth++
}

// EndBatch closes a batch. Closing the outermost one flushes whatever was
// dirtied inside it.
func (s *Scheduler) EndBatch() error {
	s.batchDepth--
	if s.batchDepth > 0 || !s.pending || s.flushing || s.rt.InFrame() {
		return nil
	}
	_, err := s.Flush()
	return err
}

// Batch runs fn with flushing deferred until it returns.
func (s *Scheduler) Batch(fn func()) (err error) {
	s.StartBatch()
	defer func() {
		err = s.EndBatch()
	}()
	fn()
	return nil
}
