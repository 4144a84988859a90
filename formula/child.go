package formula

import "fmt"

// Object is a value with tracked properties, such as a Dict. Get is
// expected to consume the tag of the property it returns.
type Object interface {
	Get(key string) any
}

// MutableObject is an Object whose properties can be written.
type MutableObject interface {
	Object
	Set(key string, value any)
}

// Child returns the reference to property key of the value parent resolves
// to. The same reference is returned for every call with the same parent
// and key. It re-resolves parent on every read, so replacing the object
// behind parent moves the child to the property of the new object.
//
// Properties are looked up on an Object or a map[string]any; any other
// value has no properties and yields nil. Writing the child sets the
// property, which requires the parent to resolve to a MutableObject.
func Child[T any](parent *Reference[T], key string) *Reference[any] {
	if child, ok := parent.children[key]; ok {
		return child
	}

	label := key
	if parent.label != "" {
		label = parent.label + "." + key
	}

	var child *Reference[any]
	if parent.kind == constRef {
		if _, tracked := any(parent.value).(Object); !tracked {
			child = ConstRef(parent.rt, getProp(parent.value, key), WithLabel(label))
		}
	}
	if child == nil {
		child = ComputeRef(
			parent.rt,
			func() any {
				return getProp(parent.Read(), key)
			},
			func(value any) {
				setProp(parent.Read(), key, value, label)
			},
			WithLabel(label),
		)
	}

	if parent.children == nil {
		parent.children = make(map[string]*Reference[any])
	}
	parent.children[key] = child
	return child
}

// ChildFromParts follows a property path, one Child per key.
func ChildFromParts[T any](parent *Reference[T], key string, more ...string) *Reference[any] {
	ref := Child(parent, key)
	for _, k := range more {
		ref = Child(ref, k)
	}
	return ref
}

func getProp(value any, key string) any {
	switch v := value.(type) {
	case Object:
		return v.Get(key)
	case map[string]any:
		return v[key]
	default:
		return nil
	}
}

func setProp(value any, key string, prop any, label string) {
	obj, ok := value.(MutableObject)
	if !ok {
		panic(fmt.Errorf("%w: %s, %T has no settable properties", ErrNotWritable, label, value))
	}
	obj.Set(key, prop)
}
