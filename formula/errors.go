package formula

import "errors"

var (
	ErrNotWritable = errors.New("formula: attempted to write to a reference that is not updatable")
	ErrNotComputed = errors.New("formula: IsConst can only be used once the cache has been read")
)
