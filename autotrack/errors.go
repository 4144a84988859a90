package autotrack

import (
	"errors"
	"fmt"
	"strings"
)

// Misuse of the runtime is a programmer error. The runtime panics with an
// error wrapping one of these so that recovery code can use errors.Is.
var (
	ErrNotDirtyable       = errors.New("autotrack: attempted to dirty a tag that was not dirtyable")
	ErrNotUpdatable       = errors.New("autotrack: attempted to update a tag that was not updatable")
	ErrCycle              = errors.New("autotrack: cycles in tags are not allowed")
	ErrUnbalancedFrame    = errors.New("autotrack: unbalanced tracking frame")
	ErrMoreRecentRevision = errors.New("autotrack: attempted to update with a more recent revision")
	ErrTagConsumed        = errors.New("autotrack: tag updated after it was consumed in the same computation")
)

// ConsumedTagError is raised when a tag is dirtied after it was read inside
// a computation that has not finished yet.
type ConsumedTagError struct {
	// Label of the dirtied tag.
	Label string
	// Frames holds the labels of the tracking frames that were open when
	// the tag was first consumed, outermost first.
	Frames []string
}

func (e *ConsumedTagError) Error() string {
	frames := make([]string, len(e.Frames))
	for i, f := range e.Frames {
		if f == "" {
			f = "(anonymous)"
		}
		frames[i] = f
	}
	return fmt.Sprintf(
		"autotrack: you attempted to update %q, but it had already been used previously in the same computation; it was first used in %s",
		e.Label, strings.Join(frames, " > "),
	)
}

func (e *ConsumedTagError) Unwrap() error { return ErrTagConsumed }

func misuse(sentinel error, t *Tag) error {
	return fmt.Errorf("%w: %s", sentinel, t)
}
