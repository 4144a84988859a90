package formula

import "github.com/delaneyj/tagparty/autotrack"

// Cell is tracked root state.
type Cell[T any] struct {
	rt     *autotrack.Runtime
	tag    *autotrack.Tag
	value  T
	equals func(a, b T) bool
}

func NewCell[T any](rt *autotrack.Runtime, initial T, opts ...Option) *Cell[T] {
	cfg := newConfig(opts)
	return &Cell[T]{
		rt:    rt,
		tag:   autotrack.NewDirtyableTag(autotrack.WithLabel(cfg.label)),
		value: initial,
	}
}

// WithEquals makes Write skip values equal to the stored one, so that
// readers are not invalidated by a no-op write.
func (c *Cell[T]) WithEquals(equals func(a, b T) bool) *Cell[T] {
	c.equals = equals
	return c
}

// Read returns the value and records the cell as a dependency.
func (c *Cell[T]) Read() T {
	c.rt.ConsumeTag(c.tag)
	return c.value
}

// Peek returns the value without recording a dependency.
func (c *Cell[T]) Peek() T {
	return c.value
}

func (c *Cell[T]) Write(value T) {
	if c.equals != nil && c.equals(c.value, value) {
		return
	}
	c.value = value
	c.rt.Dirty(c.tag)
}

// Update writes fn applied to the current value. The current value is not
// consumed.
func (c *Cell[T]) Update(fn func(T) T) {
	c.Write(fn(c.value))
}

func (c *Cell[T]) Tag() *autotrack.Tag {
	return c.tag
}
