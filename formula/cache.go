package formula

import (
	"fmt"

	"github.com/delaneyj/tagparty/autotrack"
)

// Cache memoizes fn. It recomputes on Read only when a tag read during the
// previous run changed, and passes its own dependencies on to whatever
// computation reads it.
type Cache[T any] struct {
	rt    *autotrack.Runtime
	fn    func() T
	label string

	value    T
	tag      *autotrack.Tag
	snapshot autotrack.Revision
}

func CreateCache[T any](rt *autotrack.Runtime, fn func() T, opts ...Option) *Cache[T] {
	cfg := newConfig(opts)
	return &Cache[T]{
		rt:    rt,
		fn:    fn,
		label: cfg.label,
	}
}

func (c *Cache[T]) Read() T {
	if c.tag == nil || !c.rt.Validate(c.tag, c.snapshot) {
		var value T
		tag := c.rt.Track(c.label, func() {
			value = c.fn()
		})
		c.value = value
		c.tag = tag
		c.snapshot = c.rt.Now()
	}
	c.rt.ConsumeTag(c.tag)
	return c.value
}

// IsConst reports whether the last run read nothing that can change, in
// which case the value is final. The cache must have been read before.
func (c *Cache[T]) IsConst() bool {
	if c.tag == nil {
		if autotrack.AssertionsEnabled {
			panic(fmt.Errorf("%w: %q", ErrNotComputed, c.label))
		}
		return false
	}
	return autotrack.IsConstTag(c.tag)
}

// Tag returns the dependency tag of the last run, nil before the first Read.
func (c *Cache[T]) Tag() *autotrack.Tag {
	return c.tag
}
