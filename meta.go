package tabula

import (
	"sort"
	"time"
)

// Meta is a free-form key-value store attached to Tables and columns. It is never validated.
type Meta map[string]interface{}

// Clone returns a deep copy of this Meta. Nested Metas, maps and slices are copied;
// other values are shared.
func (m Meta) Clone() Meta {
	if m == nil {
		return nil
	}
	out := make(Meta, len(m))
	for k, v := range m {
		out[k] = cloneMetaValue(v)
	}
	return out
}

func cloneMetaValue(v interface{}) interface{} {
	switch tv := v.(type) {
	case Meta:
		return tv.Clone()
	case map[string]interface{}:
		return map[string]interface{}(Meta(tv).Clone())
	case []interface{}:
		out := make([]interface{}, len(tv))
		for i, e := range tv {
			out[i] = cloneMetaValue(e)
		}
		return out
	case []byte:
		return append([]byte(nil), tv...)
	case time.Time:
		return tv
	}
	return v
}

// Keys returns the keys of this Meta in sorted order
func (m Meta) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
