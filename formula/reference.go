package formula

import (
	"fmt"

	"github.com/delaneyj/tagparty/autotrack"
)

type refKind uint8

const (
	constRef refKind = iota
	computeRef
)

// Reference is a handle to a value that can be read, and possibly written,
// without knowing where it comes from.
type Reference[T any] struct {
	rt    *autotrack.Runtime
	kind  refKind
	label string

	compute func() T
	update  func(T)

	value    T
	tag      *autotrack.Tag
	snapshot autotrack.Revision

	children map[string]*Reference[any]
}

// ConstRef wraps a value that never changes. Reading it opens no tracking
// frame and records no dependency.
func ConstRef[T any](rt *autotrack.Runtime, value T, opts ...Option) *Reference[T] {
	cfg := newConfig(opts)
	return &Reference[T]{
		rt:    rt,
		kind:  constRef,
		label: cfg.label,
		value: value,
		tag:   autotrack.ConstantTag,
	}
}

// ComputeRef memoizes compute like a Cache. If update is not nil the
// reference is updatable and Write calls it.
func ComputeRef[T any](rt *autotrack.Runtime, compute func() T, update func(T), opts ...Option) *Reference[T] {
	cfg := newConfig(opts)
	return &Reference[T]{
		rt:      rt,
		kind:    computeRef,
		label:   cfg.label,
		compute: compute,
		update:  update,
	}
}

// CellRef exposes c as an updatable reference.
func CellRef[T any](c *Cell[T], opts ...Option) *Reference[T] {
	return ComputeRef(c.rt, c.Read, c.Write, opts...)
}

// ReadonlyRef returns a reference reading through ref that cannot be
// written. A reference that is already read only is returned as is.
func ReadonlyRef[T any](ref *Reference[T]) *Reference[T] {
	if !ref.IsUpdatable() {
		return ref
	}
	return ComputeRef(ref.rt, ref.Read, nil, WithLabel(ref.label))
}

func (r *Reference[T]) Read() T {
	if r.kind == constRef {
		return r.value
	}
	if r.tag == nil || !r.rt.Validate(r.tag, r.snapshot) {
		var value T
		tag := r.rt.Track(r.label, func() {
			value = r.compute()
		})
		r.value = value
		r.tag = tag
		r.snapshot = r.rt.Now()
	}
	r.rt.ConsumeTag(r.tag)
	return r.value
}

// Write passes value to the update function. It panics with ErrNotWritable
// on a reference without one.
func (r *Reference[T]) Write(value T) {
	if r.update == nil {
		panic(fmt.Errorf("%w: %s", ErrNotWritable, r))
	}
	r.update(value)
}

func (r *Reference[T]) IsUpdatable() bool {
	return r.update != nil
}

// IsConst reports whether the value is final: the reference was created by
// ConstRef, or its last run read nothing that can change. A compute
// reference that was never read is not const.
func (r *Reference[T]) IsConst() bool {
	return r.kind == constRef || autotrack.IsConstTag(r.tag)
}

func (r *Reference[T]) Label() string {
	return r.label
}

func (r *Reference[T]) String() string {
	if r.label == "" {
		return "(anonymous reference)"
	}
	return r.label
}
