package formula_test

import (
	"testing"

	"github.com/delaneyj/tagparty/autotrack"
	"github.com/delaneyj/tagparty/formula"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstRef(t *testing.T) {
	rt := autotrack.New()
	ref := formula.ConstRef(rt, 42, formula.WithLabel("answer"))

	tag := rt.Track("read", func() {
		assert.Equal(t, 42, ref.Read())
	})
	assert.Same(t, autotrack.ConstantTag, tag)
	assert.True(t, ref.IsConst())
	assert.False(t, ref.IsUpdatable())

	err := panicErr(func() { ref.Write(1) })
	require.ErrorIs(t, err, formula.ErrNotWritable)
	assert.Contains(t, err.Error(), "answer")
}

func TestComputeRef(t *testing.T) {
	rt := autotrack.New()
	src := formula.NewCell(rt, 2)

	calls := 0
	ref := formula.ComputeRef(rt, func() int {
		calls++
		return src.Read() * src.Read()
	}, func(v int) {
		src.Write(v)
	})
	assert.False(t, ref.IsConst())
	assert.True(t, ref.IsUpdatable())

	assert.Equal(t, 4, ref.Read())
	assert.Equal(t, 4, ref.Read())
	assert.Equal(t, 1, calls)

	ref.Write(3)
	assert.Equal(t, 9, ref.Read())
	assert.Equal(t, 2, calls)
}

func TestCellRef(t *testing.T) {
	rt := autotrack.New()
	c := formula.NewCell(rt, "a")
	ref := formula.CellRef(c, formula.WithLabel("letter"))

	assert.Equal(t, "a", ref.Read())
	ref.Write("b")
	assert.Equal(t, "b", c.Peek())
	assert.Equal(t, "b", ref.Read())
	assert.Equal(t, "letter", ref.Label())
}

func TestReadonlyRef(t *testing.T) {
	rt := autotrack.New()
	c := formula.NewCell(rt, 1)
	ro := formula.ReadonlyRef(formula.CellRef(c, formula.WithLabel("count")))

	assert.False(t, ro.IsUpdatable())
	err := panicErr(func() { ro.Write(2) })
	require.ErrorIs(t, err, formula.ErrNotWritable)
	assert.Contains(t, err.Error(), "count")

	// still follows the source
	c.Write(2)
	assert.Equal(t, 2, ro.Read())

	assert.Same(t, ro, formula.ReadonlyRef(ro))
	constant := formula.ConstRef(rt, 1)
	assert.Same(t, constant, formula.ReadonlyRef(constant))
}

func TestChildIsCached(t *testing.T) {
	rt := autotrack.New()
	parent := formula.ConstRef(rt, map[string]any{"x": 1}, formula.WithLabel("point"))

	x := formula.Child(parent, "x")
	assert.Same(t, x, formula.Child(parent, "x"))
	assert.NotSame(t, x, formula.Child(parent, "y"))
	assert.Equal(t, "point.x", x.Label())

	// a constant plain map has constant properties
	assert.True(t, x.IsConst())
	assert.Equal(t, 1, x.Read())
	assert.Nil(t, formula.Child(parent, "y").Read())
}

func TestChildOfUntypedValue(t *testing.T) {
	rt := autotrack.New()
	parent := formula.ConstRef(rt, 12)
	assert.Nil(t, formula.Child(parent, "anything").Read())
	assert.Equal(t, "anything", formula.Child(parent, "anything").Label())
}

func TestChildRederivesWhenParentChanges(t *testing.T) {
	rt := autotrack.New()
	ada := formula.NewDict(rt, formula.WithLabel("ada"))
	ada.Set("name", "Ada")
	alan := formula.NewDict(rt, formula.WithLabel("alan"))
	alan.Set("name", "Alan")

	current := formula.NewCell(rt, ada)
	user := formula.CellRef(current, formula.WithLabel("user"))
	name := formula.Child(user, "name")
	assert.True(t, name.IsUpdatable())
	assert.Equal(t, "Ada", name.Read())

	current.Write(alan)
	assert.Equal(t, "Alan", name.Read())

	// the child no longer depends on the object it left
	tag := rt.Track("render", func() { name.Read() })
	snapshot := rt.Now()
	ada.Set("name", "Augusta")
	assert.True(t, rt.Validate(tag, snapshot))

	alan.Set("name", "Alan T.")
	assert.False(t, rt.Validate(tag, snapshot))
	assert.Equal(t, "Alan T.", name.Read())
}

func TestChildWrite(t *testing.T) {
	rt := autotrack.New()
	d := formula.NewDict(rt)
	d.Set("count", 1)

	count := formula.Child(formula.ConstRef(rt, d), "count")
	assert.False(t, count.IsConst())
	count.Write(2)
	assert.Equal(t, 2, d.Get("count"))
	assert.Equal(t, 2, count.Read())

	plain := formula.ComputeRef(rt, func() map[string]any {
		return map[string]any{"count": 1}
	}, nil, formula.WithLabel("plain"))
	err := panicErr(func() { formula.Child(plain, "count").Write(2) })
	require.ErrorIs(t, err, formula.ErrNotWritable)
	assert.Contains(t, err.Error(), "plain.count")
}

func TestChildFromParts(t *testing.T) {
	rt := autotrack.New()
	address := formula.NewDict(rt)
	address.Set("city", "London")
	person := formula.NewDict(rt)
	person.Set("address", address)

	root := formula.ConstRef(rt, person, formula.WithLabel("person"))
	city := formula.ChildFromParts(root, "address", "city")
	assert.Same(t, city, formula.Child(formula.Child(root, "address"), "city"))
	assert.Equal(t, "person.address.city", city.Label())
	assert.Equal(t, "London", city.Read())

	address.Set("city", "Paris")
	assert.Equal(t, "Paris", city.Read())

	assert.Same(t, formula.Child(root, "address"), formula.ChildFromParts(root, "address"))
}

func TestComputeRefIsConstOnceSettled(t *testing.T) {
	rt := autotrack.New()
	fixed := formula.ComputeRef(rt, func() int { return 7 }, nil)
	assert.False(t, fixed.IsConst())
	assert.Equal(t, 7, fixed.Read())
	assert.True(t, fixed.IsConst())

	src := formula.NewCell(rt, 1)
	tracked := formula.ComputeRef(rt, src.Read, nil)
	tracked.Read()
	assert.False(t, tracked.IsConst())
}
