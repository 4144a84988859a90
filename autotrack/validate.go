package autotrack

import (
	"log/slog"

	mapset "github.com/deckarep/golang-set/v2"
)

// Value computes the effective revision of t. It does not consume t.
//
// The result is memoized per clock reading, so repeated calls without an
// intervening Dirty or Bump return the same revision.
func (rt *Runtime) Value(t *Tag) Revision {
	return rt.compute(t)
}

// Validate reports whether nothing t depends on changed after snapshot.
func (rt *Runtime) Validate(t *Tag, snapshot Revision) bool {
	v := rt.compute(t)
	return v != VolatileRevision && snapshot >= v
}

func (rt *Runtime) compute(t *Tag) Revision {
	switch t.kind {
	case KindConstant:
		return ConstantRevision
	case KindCurrent:
		return rt.clock.Now()
	case KindVolatile:
		return VolatileRevision
	}

	now := rt.clock.Now()
	if t.isUpdating {
		if !t.cycles {
			panic(misuse(ErrCycle, t))
		}
		rt.logger.Debug("tolerated tag cycle", slog.String("tag", t.String()))
		t.lastChecked = now
		return now
	}
	if t.lastChecked == now {
		return t.lastValue
	}

	t.isUpdating = true
	defer func() { t.isUpdating = false }()

	revision := t.revision
	if sub := t.subtag; sub != nil {
		subValue := rt.compute(sub)
		if t.buffered && subValue <= t.subtagBuffer {
			revision = max(revision, t.lastValue)
		} else {
			t.buffered = false
			revision = max(revision, subValue)
		}
	}
	for _, sub := range t.subtags {
		revision = max(revision, rt.compute(sub))
	}

	t.lastValue = revision
	t.lastChecked = now
	return revision
}

// Dirty stamps t with a new revision, invalidating every snapshot taken
// before now, and notifies the Revalidator.
//
// Only dirtyable and updatable tags can be dirtied. In development builds it
// is an error to dirty a tag that the open computation has already read.
func (rt *Runtime) Dirty(t *Tag) {
	if t.kind != KindDirtyable && t.kind != KindUpdatable {
		panic(misuse(ErrNotDirtyable, t))
	}
	rt.guard.assertNotConsumed(t)
	t.revision = rt.clock.Bump()
	rt.scheduleRevalidate()
}

// Update binds the updatable tag t to subtag, so that t changes whenever
// subtag does. Binding ConstantTag (or nil) removes the binding.
//
// The value subtag has at bind time is buffered: until subtag advances past
// it, t keeps reporting what it reported before, so a routine rebind does
// not invalidate snapshots already taken of t. Rebinding to a subtag that is
// already newer than a value t has handed out would hide a real change; that
// panics with ErrMoreRecentRevision in development builds and leaves t
// unbuffered otherwise. A tag nobody has read yet simply takes the newer
// value. Subtags built on CurrentTag or VolatileTag are never buffered.
func (rt *Runtime) Update(t, subtag *Tag) {
	if t.kind != KindUpdatable {
		panic(misuse(ErrNotUpdatable, t))
	}
	observed := t.lastChecked != 0

	if subtag == nil || subtag.kind == KindConstant {
		if observed {
			// never report less than before
			t.revision = max(t.revision, rt.compute(t))
		}
		t.subtag = nil
		t.buffered = false
		t.lastChecked = 0
		return
	}
	if subtag == t.subtag {
		return
	}

	if followsClock(subtag) || (t.subtag != nil && followsClock(t.subtag)) {
		// clock driven values are never buffered
		t.subtag = subtag
		t.buffered = false
		t.lastChecked = 0
		return
	}

	current := t.revision
	if observed {
		current = rt.compute(t)
	}
	subValue := rt.compute(subtag)
	if subValue > current {
		if observed && AssertionsEnabled {
			panic(misuse(ErrMoreRecentRevision, t))
		}
		t.subtag = subtag
		t.buffered = false
		t.lastValue = subValue
		return
	}
	t.subtag = subtag
	t.buffered = true
	t.subtagBuffer = subValue
}

// followsClock reports whether t is, or combines, CurrentTag or
// VolatileTag. Such a tag changes value with the clock rather than through
// Dirty.
func followsClock(t *Tag) bool {
	seen := mapset.NewThreadUnsafeSet[*Tag]()
	var walk func(*Tag) bool
	walk = func(t *Tag) bool {
		switch t.kind {
		case KindCurrent, KindVolatile:
			return true
		case KindConstant:
			return false
		}
		if !seen.Add(t) {
			return false
		}
		found := false
		t.each(func(sub *Tag) {
			if !found && walk(sub) {
				found = true
			}
		})
		return found
	}
	return walk(t)
}
