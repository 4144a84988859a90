package autotrack

// TagKind discriminates the behaviour of a Tag.
type TagKind uint8

const (
	KindDirtyable TagKind = iota
	KindUpdatable
	KindCombinator
	KindConstant
	KindCurrent
	KindVolatile
)

func (k TagKind) String() string {
	switch k {
	case KindDirtyable:
		return "dirtyable"
	case KindUpdatable:
		return "updatable"
	case KindCombinator:
		return "combinator"
	case KindConstant:
		return "constant"
	case KindCurrent:
		return "current"
	case KindVolatile:
		return "volatile"
	default:
		return "unknown"
	}
}

// Tag is the unit of invalidation. Tags are created once next to the state
// they stand for and live as long as their owner.
type Tag struct {
	kind   TagKind
	label  string
	cycles bool

	revision Revision

	// memoized result of the last compute
	lastChecked Revision
	lastValue   Revision
	isUpdating  bool

	// updatable only
	subtag       *Tag
	buffered     bool
	subtagBuffer Revision

	// combinator only
	subtags []*Tag
}

// Sentinel tags. They carry no state and may be shared by every Runtime.
var (
	ConstantTag = &Tag{kind: KindConstant, label: "CONSTANT"}
	CurrentTag  = &Tag{kind: KindCurrent, label: "CURRENT"}
	VolatileTag = &Tag{kind: KindVolatile, label: "VOLATILE"}
)

// TagOption configures a tag at construction.
type TagOption func(*Tag)

// WithLabel attaches a debug label, used in panics and logs.
func WithLabel(label string) TagOption {
	return func(t *Tag) {
		t.label = label
	}
}

// WithCycles lets the tag take part in a cycle. A reentrant read of such a
// tag resolves to the current revision instead of panicking.
func WithCycles() TagOption {
	return func(t *Tag) {
		t.cycles = true
	}
}

func newTag(kind TagKind, opts []TagOption) *Tag {
	t := &Tag{kind: kind, revision: InitialRevision}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// NewDirtyableTag creates a tag that can be advanced with Runtime.Dirty.
func NewDirtyableTag(opts ...TagOption) *Tag {
	return newTag(KindDirtyable, opts)
}

// NewUpdatableTag creates a dirtyable tag that can also be bound to a
// subtag with Runtime.Update.
func NewUpdatableTag(opts ...TagOption) *Tag {
	return newTag(KindUpdatable, opts)
}

// Combine returns a tag whose value is the maximum over tags.
//
// No tags yields ConstantTag and a single tag is returned as is, without
// allocating a wrapper.
func Combine(tags ...*Tag) *Tag {
	switch len(tags) {
	case 0:
		return ConstantTag
	case 1:
		return tags[0]
	default:
		subtags := make([]*Tag, len(tags))
		copy(subtags, tags)
		return &Tag{
			kind:     KindCombinator,
			revision: ConstantRevision,
			subtags:  subtags,
		}
	}
}

// IsConstTag reports whether t can never change.
func IsConstTag(t *Tag) bool {
	return t == ConstantTag
}

func (t *Tag) Kind() TagKind { return t.kind }

func (t *Tag) Label() string { return t.label }

func (t *Tag) String() string {
	if t == nil {
		return "<nil tag>"
	}
	if t.label != "" {
		return t.label
	}
	return "<" + t.kind.String() + " tag>"
}

// each calls fn for every direct subtag of t.
func (t *Tag) each(fn func(*Tag)) {
	if t.subtag != nil {
		fn(t.subtag)
	}
	for _, sub := range t.subtags {
		fn(sub)
	}
}
