package formula

import "github.com/delaneyj/tagparty/autotrack"

// Result is a Cache for computations that can fail. The error is memoized
// like a value: Read keeps returning it until a tag read by the failing run
// is dirtied or ClearError is called. It is never passed on to computations
// reading the Result; each of them decides what to do with it.
type Result[T any] struct {
	rt    *autotrack.Runtime
	fn    func() (T, error)
	label string

	value    T
	err      error
	tag      *autotrack.Tag
	snapshot autotrack.Revision
}

func CreateResult[T any](rt *autotrack.Runtime, fn func() (T, error), opts ...Option) *Result[T] {
	cfg := newConfig(opts)
	return &Result[T]{
		rt:    rt,
		fn:    fn,
		label: cfg.label,
	}
}

func (r *Result[T]) Read() (T, error) {
	if r.tag == nil || !r.rt.Validate(r.tag, r.snapshot) {
		var (
			value T
			err   error
		)
		tag := r.rt.Track(r.label, func() {
			value, err = r.fn()
		})
		if err != nil {
			var zero T
			value = zero
		}
		r.value, r.err = value, err
		r.tag = tag
		r.snapshot = r.rt.Now()
	}
	r.rt.ConsumeTag(r.tag)
	return r.value, r.err
}

// HasError reports whether the last run failed.
func (r *Result[T]) HasError() bool {
	return r.err != nil
}

// Err returns the error of the last run, if any.
func (r *Result[T]) Err() error {
	return r.err
}

// ClearError forgets a failed run so the next Read recomputes even if
// nothing it depends on changed. It does nothing after a successful run.
func (r *Result[T]) ClearError() {
	if r.err == nil {
		return
	}
	r.err = nil
	r.tag = nil
}
