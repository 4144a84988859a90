package formula

// Readable is anything whose Read consumes its tag into the open tracking
// frame. Cell, Cache and Reference implement it.
type Readable[T any] interface {
	Read() T
}

var (
	_ Readable[int] = (*Cell[int])(nil)
	_ Readable[int] = (*Cache[int])(nil)
	_ Readable[int] = (*Reference[int])(nil)
)
