//go:build !release

package autotrack

import "slices"

// AssertionsEnabled reports whether development assertions are compiled in.
// Build with -tags release to remove them.
const AssertionsEnabled = true

// consumptionGuard remembers which tags were consumed since the outermost
// tracking frame opened, so that dirtying one of them can be reported.
type consumptionGuard struct {
	frames   []string
	consumed map[*Tag][]string
}

func (g *consumptionGuard) begin(label string) {
	g.frames = append(g.frames, label)
}

func (g *consumptionGuard) end() {
	if len(g.frames) == 0 {
		return
	}
	g.frames = g.frames[:len(g.frames)-1]
	if len(g.frames) == 0 {
		g.consumed = nil
	}
}

func (g *consumptionGuard) reset() {
	g.frames = g.frames[:0]
	g.consumed = nil
}

func (g *consumptionGuard) markConsumed(t *Tag) {
	if len(g.frames) == 0 {
		return
	}
	if _, ok := g.consumed[t]; ok {
		return
	}
	if g.consumed == nil {
		g.consumed = make(map[*Tag][]string)
	}
	g.mark(t, slices.Clone(g.frames))
}

// mark also records the subtags, since reading a cached computation only
// consumes its combined tag.
func (g *consumptionGuard) mark(t *Tag, frames []string) {
	if _, ok := g.consumed[t]; ok {
		return
	}
	switch t.kind {
	case KindConstant, KindCurrent, KindVolatile:
		return
	}
	g.consumed[t] = frames
	t.each(func(sub *Tag) {
		g.mark(sub, frames)
	})
}

func (g *consumptionGuard) assertNotConsumed(t *Tag) {
	frames, ok := g.consumed[t]
	if !ok {
		return
	}
	panic(&ConsumedTagError{Label: t.String(), Frames: frames})
}
