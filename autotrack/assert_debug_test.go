//go:build !release

package autotrack_test

import (
	"testing"

	"github.com/delaneyj/tagparty/autotrack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirtyAfterConsume(t *testing.T) {
	rt := autotrack.New()
	a := autotrack.NewDirtyableTag(autotrack.WithLabel("count"))

	err := panicErr(func() {
		rt.Track("outer", func() {
			rt.Track("inner", func() {
				rt.ConsumeTag(a)
			})
			rt.Dirty(a)
		})
	})
	require.ErrorIs(t, err, autotrack.ErrTagConsumed)

	var consumed *autotrack.ConsumedTagError
	require.ErrorAs(t, err, &consumed)
	assert.Equal(t, "count", consumed.Label)
	assert.Equal(t, []string{"outer", "inner"}, consumed.Frames)
	assert.Contains(t, err.Error(), `"count"`)
	assert.Contains(t, err.Error(), "outer > inner")
	assert.False(t, rt.IsTracking())
}

func TestDirtyAfterConsumeAnonymousFrame(t *testing.T) {
	rt := autotrack.New()
	a := autotrack.NewDirtyableTag()

	err := panicErr(func() {
		rt.Track("", func() {
			rt.ConsumeTag(a)
			rt.Dirty(a)
		})
	})
	require.ErrorIs(t, err, autotrack.ErrTagConsumed)
	assert.Contains(t, err.Error(), "(anonymous)")
}

func TestDirtyAfterConsumeOfCombinedTag(t *testing.T) {
	rt := autotrack.New()
	a := autotrack.NewDirtyableTag()
	b := autotrack.NewDirtyableTag()

	err := panicErr(func() {
		rt.Track("render", func() {
			rt.ConsumeTag(autotrack.Combine(a, b))
			rt.Dirty(b)
		})
	})
	assert.ErrorIs(t, err, autotrack.ErrTagConsumed)
}

func TestDirtyWithoutConsume(t *testing.T) {
	rt := autotrack.New()
	a := autotrack.NewDirtyableTag()

	t.Run("untracked read", func(t *testing.T) {
		err := panicErr(func() {
			rt.Track("render", func() {
				rt.Untrack(func() {
					rt.ConsumeTag(a)
				})
				rt.Dirty(a)
			})
		})
		assert.NoError(t, err)
	})

	t.Run("after the computation finished", func(t *testing.T) {
		rt.Track("render", func() {
			rt.ConsumeTag(a)
		})
		assert.NoError(t, panicErr(func() { rt.Dirty(a) }))
	})

	t.Run("outside any frame", func(t *testing.T) {
		rt.ConsumeTag(a)
		assert.NoError(t, panicErr(func() { rt.Dirty(a) }))
	})
}

func TestUpdateWithMoreRecentRevision(t *testing.T) {
	rt := autotrack.New()
	p := autotrack.NewUpdatableTag(autotrack.WithLabel("p"))
	z := autotrack.NewDirtyableTag(autotrack.WithLabel("z"))

	rt.Value(p)
	rt.Dirty(z)

	err := panicErr(func() { rt.Update(p, z) })
	require.ErrorIs(t, err, autotrack.ErrMoreRecentRevision)
	assert.Contains(t, err.Error(), "p")
}

func TestUpdateBeforeObservedIsAllowed(t *testing.T) {
	rt := autotrack.New()
	p := autotrack.NewUpdatableTag()
	z := autotrack.NewDirtyableTag()
	rt.Dirty(z)

	// nothing has seen p yet, so binding a newer subtag hides nothing
	require.NoError(t, panicErr(func() { rt.Update(p, z) }))
	assert.Equal(t, rt.Value(z), rt.Value(p))
}
