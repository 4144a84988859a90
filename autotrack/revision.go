package autotrack

import (
	"math"
	"strconv"
)

// Revision is a reading of a Clock. Revisions are totally ordered and a
// larger revision is always newer.
type Revision uint64

const (
	// ConstantRevision is the value of tags that never change.
	ConstantRevision Revision = 0
	// InitialRevision is where every clock and every new tag starts.
	InitialRevision Revision = 1
	// VolatileRevision is larger than any revision a clock hands out, so
	// no snapshot validates against it.
	VolatileRevision Revision = math.MaxUint64
)

func (r Revision) String() string {
	if r == VolatileRevision {
		return "volatile"
	}
	return strconv.FormatUint(uint64(r), 10)
}

// Clock is a monotonic revision counter. Not goroutine-safe.
type Clock struct {
	now Revision
}

func newClock() Clock {
	return Clock{now: InitialRevision}
}

// Bump advances the clock and returns the new revision.
func (c *Clock) Bump() Revision {
	c.now++
	return c.now
}

// Now returns the current revision without advancing the clock.
func (c *Clock) Now() Revision { return c.now }
