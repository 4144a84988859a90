// Package autotrack provides revision based dependency tracking.
//
// Instead of keeping subscriber lists, every piece of mutable state owns a
// Tag. A Runtime keeps a monotonic Clock; dirtying a tag stamps it with a
// fresh revision. A computation records the tags it reads inside a tracking
// frame and remembers the clock reading at which it ran. Later it is still
// valid if no tag it read has a revision newer than that snapshot.
//
// # Tags
//
// There are six kinds of tag:
//
//	Dirtyable   owns a revision, advanced by Dirty
//	Updatable   a Dirtyable that can additionally be bound to a subtag with Update
//	Combinator  the maximum revision over a fixed list of tags, built by Combine
//	Constant    never changes (ConstantTag)
//	Current     always equal to the current clock reading (CurrentTag)
//	Volatile    never valid (VolatileTag)
//
// # Tracking
//
//	rt := autotrack.New()
//	tag := autotrack.NewDirtyableTag(autotrack.WithLabel("count"))
//
//	deps := rt.Track("render", func() {
//	    rt.ConsumeTag(tag)
//	})
//	snapshot := rt.Now()
//
//	rt.Validate(deps, snapshot) // true
//	rt.Dirty(tag)
//	rt.Validate(deps, snapshot) // false
//
// Frames nest. Untrack opens a region in which reads are not recorded.
//
// # Development assertions
//
// Unless built with the release tag, the runtime panics when a tag is
// dirtied after it was consumed in the still open computation, and when an
// updatable tag is rebound to a subtag that is newer than what the tag has
// already reported. Building with -tags release compiles these checks out.
//
// # Concurrency
//
// A Runtime and the tags used with it are not goroutine-safe. Each
// independent render pass needs its own Runtime, or all access must be
// serialized by the caller.
package autotrack
