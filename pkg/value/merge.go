package value

import "reflect"

// MergeOptions controls Merge.
type MergeOptions struct {
	// Clone deep-copies the destination first so the caller's map is
	// left untouched.
	Clone bool

	// Shallow assigns nested values by reference instead of merging
	// them recursively.
	Shallow bool
}

// Merge copies the entries of from into to and returns the result.
//
// Mapping values are merged recursively into to[key], which is created
// when absent or not a mapping. Sequences replace the destination with a
// copy. Scalars overwrite. A nil to is replaced by a fresh map.
func Merge(to, from map[string]any, opts MergeOptions) map[string]any {
	if opts.Clone {
		to = copyMap(to)
	} else if to == nil {
		to = map[string]any{}
	}

	for k, v := range from {
		if opts.Shallow {
			to[k] = v
			continue
		}
		switch ShapeOf(v) {
		case Mapping:
			dst, ok := to[k].(map[string]any)
			if !ok || dst == nil {
				dst = map[string]any{}
			}
			to[k] = Merge(dst, asMap(v), MergeOptions{})
		case Sequence:
			to[k] = deepCopy(v)
		default:
			to[k] = v
		}
	}
	return to
}

// Clone copies obj. A deep clone shares no mappings or sequences with obj;
// a shallow clone copies only the top level.
func Clone(obj map[string]any, shallow bool) map[string]any {
	return Merge(map[string]any{}, obj, MergeOptions{Clone: true, Shallow: shallow})
}

func copyMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = deepCopy(v)
	}
	return out
}

// asMap views a string-keyed map of any value type as map[string]any.
func asMap(v any) map[string]any {
	if m, ok := v.(map[string]any); ok {
		return m
	}
	rv := reflect.ValueOf(v)
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = iter.Value().Interface()
	}
	return out
}

func deepCopy(v any) any {
	switch t := v.(type) {
	case map[string]any:
		if t == nil {
			return t
		}
		return copyMap(t)
	case []any:
		if t == nil {
			return t
		}
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = deepCopy(e)
		}
		return out
	}

	rv := reflect.ValueOf(v)
	switch ShapeOf(v) {
	case Mapping:
		out := reflect.MakeMapWithSize(rv.Type(), rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out.SetMapIndex(iter.Key(), deepValue(iter.Value()))
		}
		return out.Interface()
	case Sequence:
		if rv.Kind() != reflect.Slice {
			return v
		}
		out := reflect.MakeSlice(rv.Type(), rv.Len(), rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out.Index(i).Set(deepValue(rv.Index(i)))
		}
		return out.Interface()
	}
	return v
}

func deepValue(v reflect.Value) reflect.Value {
	if v.Kind() == reflect.Interface && v.IsNil() {
		return v
	}
	c := deepCopy(v.Interface())
	if c == nil {
		return reflect.Zero(v.Type())
	}
	return reflect.ValueOf(c)
}
