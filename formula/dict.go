package formula

import (
	"slices"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/delaneyj/tagparty/autotrack"
)

// Dict is a tracked string keyed map. Reading a key depends on that key
// only; Keys and Len depend on the set of keys, not on any value.
type Dict struct {
	rt      *autotrack.Runtime
	meta    autotrack.TagMeta
	keysTag *autotrack.Tag
	keys    mapset.Set[string]
	values  map[string]any
}

var _ MutableObject = (*Dict)(nil)

func NewDict(rt *autotrack.Runtime, opts ...Option) *Dict {
	cfg := newConfig(opts)
	keysLabel := "keys"
	if cfg.label != "" {
		keysLabel = cfg.label + ".keys"
	}
	return &Dict{
		rt:      rt,
		meta:    autotrack.TagMeta{Label: cfg.label},
		keysTag: autotrack.NewDirtyableTag(autotrack.WithLabel(keysLabel)),
		keys:    mapset.NewThreadUnsafeSet[string](),
		values:  make(map[string]any),
	}
}

// Get returns the value stored under key, nil if there is none.
func (d *Dict) Get(key string) any {
	d.rt.ConsumeTagFor(&d.meta, key)
	return d.values[key]
}

func (d *Dict) Has(key string) bool {
	d.rt.ConsumeTagFor(&d.meta, key)
	return d.keys.Contains(key)
}

func (d *Dict) Set(key string, value any) {
	added := d.keys.Add(key)
	d.values[key] = value
	d.rt.DirtyTagFor(&d.meta, key)
	if added {
		d.rt.Dirty(d.keysTag)
	}
}

func (d *Dict) Delete(key string) {
	if !d.keys.Contains(key) {
		return
	}
	d.keys.Remove(key)
	delete(d.values, key)
	d.rt.DirtyTagFor(&d.meta, key)
	d.rt.Dirty(d.keysTag)
}

// Keys returns the keys in sorted order.
func (d *Dict) Keys() []string {
	d.rt.ConsumeTag(d.keysTag)
	keys := d.keys.ToSlice()
	slices.Sort(keys)
	return keys
}

func (d *Dict) Len() int {
	d.rt.ConsumeTag(d.keysTag)
	return d.keys.Cardinality()
}
