package autotrack

// TagMeta holds one dirtyable tag per property key of an owner object.
// Embed it in the owner; the zero value is ready to use.
type TagMeta struct {
	// Label prefixes the labels of the created tags.
	Label string
	tags  map[string]*Tag
}

// TagFor returns the tag for key, creating it on first use.
func (m *TagMeta) TagFor(key string) *Tag {
	if t, ok := m.tags[key]; ok {
		return t
	}
	if m.tags == nil {
		m.tags = make(map[string]*Tag)
	}
	label := key
	if m.Label != "" {
		label = m.Label + "." + key
	}
	t := NewDirtyableTag(WithLabel(label))
	m.tags[key] = t
	return t
}

// Lookup returns the tag for key without creating it.
func (m *TagMeta) Lookup(key string) (*Tag, bool) {
	t, ok := m.tags[key]
	return t, ok
}

// ConsumeTagFor consumes the tag for key of m.
func (rt *Runtime) ConsumeTagFor(m *TagMeta, key string) {
	if rt.current == nil {
		return
	}
	rt.ConsumeTag(m.TagFor(key))
}

// DirtyTagFor dirties the tag for key of m. If no tag was ever created for
// key nothing can depend on it and the call does nothing.
func (rt *Runtime) DirtyTagFor(m *TagMeta, key string) {
	if t, ok := m.Lookup(key); ok {
		rt.Dirty(t)
	}
}
