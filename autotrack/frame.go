package autotrack

import (
	"fmt"
	"log/slog"

	mapset "github.com/deckarep/golang-set/v2"
)

// tracker collects the tags consumed while a frame is open, in first use
// order and without duplicates.
type tracker struct {
	seen mapset.Set[*Tag]
	tags []*Tag
	// last is the most recently added tag; most computations read a single
	// tag, which then needs neither the set nor a combinator.
	last *Tag
}

func (tr *tracker) add(t *Tag) {
	if t == tr.last {
		return
	}
	tr.last = t
	if tr.seen == nil {
		tr.seen = mapset.NewThreadUnsafeSet[*Tag]()
	}
	if tr.seen.Add(t) {
		tr.tags = append(tr.tags, t)
	}
}

func (tr *tracker) combine() *Tag {
	switch len(tr.tags) {
	case 0:
		return ConstantTag
	case 1:
		return tr.last
	default:
		return Combine(tr.tags...)
	}
}

type frame struct {
	label     string
	tracker   *tracker
	untracked bool
}

// BeginTrackFrame opens a frame that records every consumed tag. Each call
// must be paired with EndTrackFrame; prefer Track, which pairs them for you.
func (rt *Runtime) BeginTrackFrame(label string) {
	tr := &tracker{}
	rt.frames = append(rt.frames, frame{label: label, tracker: tr})
	rt.current = tr
	rt.guard.begin(label)
}

// EndTrackFrame closes the innermost frame, which must be a tracked one,
// and returns the combination of the tags consumed inside it.
func (rt *Runtime) EndTrackFrame() *Tag {
	f := rt.popFrame(false)
	rt.guard.end()
	return f.tracker.combine()
}

// BeginUntrackFrame opens a frame in which ConsumeTag records nothing.
func (rt *Runtime) BeginUntrackFrame() {
	rt.frames = append(rt.frames, frame{untracked: true})
	rt.current = nil
}

// EndUntrackFrame closes the innermost frame, which must be an untracked
// one, and restores whatever tracker was current before it.
func (rt *Runtime) EndUntrackFrame() {
	rt.popFrame(true)
}

func (rt *Runtime) popFrame(untracked bool) frame {
	n := len(rt.frames)
	if n == 0 {
		panic(fmt.Errorf("%w: attempted to close a frame, but none was open", ErrUnbalancedFrame))
	}
	f := rt.frames[n-1]
	if f.untracked != untracked {
		panic(fmt.Errorf("%w: innermost frame is %s", ErrUnbalancedFrame, f.kind()))
	}
	rt.frames[n-1] = frame{}
	rt.frames = rt.frames[:n-1]
	if n > 1 {
		rt.current = rt.frames[n-2].tracker
	} else {
		rt.current = nil
	}
	return f
}

func (f frame) kind() string {
	if f.untracked {
		return "an untrack frame"
	}
	return fmt.Sprintf("track frame %q", f.label)
}

// ConsumeTag records t as a dependency of the innermost tracked frame. It is
// a no-op outside a frame, inside an untracked region and for ConstantTag.
func (rt *Runtime) ConsumeTag(t *Tag) {
	if rt.current == nil || t == ConstantTag {
		return
	}
	rt.current.add(t)
	rt.guard.markConsumed(t)
}

// IsTracking reports whether ConsumeTag would currently record anything.
func (rt *Runtime) IsTracking() bool {
	return rt.current != nil
}

// InFrame reports whether any frame, tracked or untracked, is open. Code
// that runs arbitrary computations, such as a flush of effects, must wait
// until it is false.
func (rt *Runtime) InFrame() bool {
	return len(rt.frames) > 0
}

// Track runs fn inside a new tracking frame and returns the tag combining
// everything fn consumed. The frame is closed even if fn panics.
func (rt *Runtime) Track(label string, fn func()) *Tag {
	rt.BeginTrackFrame(label)
	closed := false
	defer func() {
		if !closed {
			rt.EndTrackFrame()
		}
	}()
	fn()
	closed = true
	return rt.EndTrackFrame()
}

// Untrack runs fn with dependency recording switched off.
func (rt *Runtime) Untrack(fn func()) {
	rt.BeginUntrackFrame()
	defer rt.EndUntrackFrame()
	fn()
}

// ResetTracking discards every open frame. It is meant for error recovery
// code that caught a panic which unwound past unmatched End calls. It
// returns the labels of the discarded tracked frames, outermost first.
func (rt *Runtime) ResetTracking() []string {
	var open []string
	for _, f := range rt.frames {
		if !f.untracked {
			open = append(open, f.label)
		}
	}
	if len(rt.frames) > 0 {
		rt.logger.Warn("discarding open tracking frames",
			slog.Int("frames", len(rt.frames)),
			slog.Any("labels", open),
		)
	}
	clear(rt.frames)
	rt.frames = rt.frames[:0]
	rt.current = nil
	rt.guard.reset()
	return open
}
