package value

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// Path is a sequence of keys into nested mappings and sequences.
type Path []string

// ParsePath splits a dotted path. The empty string is the empty path.
func ParsePath(s string) Path {
	if s == "" {
		return nil
	}
	return Path(strings.Split(s, "."))
}

// String joins the path with dots.
func (p Path) String() string {
	return strings.Join(p, ".")
}

// segments converts the accepted path forms into a Path.
func segments(path any) Path {
	switch p := path.(type) {
	case nil:
		return nil
	case string:
		return ParsePath(p)
	case Path:
		return p
	case []string:
		return Path(p)
	case int:
		return Path{strconv.Itoa(p)}
	case []any:
		out := make(Path, 0, len(p))
		for _, s := range p {
			out = append(out, fmt.Sprint(s))
		}
		return out
	}
	return nil
}

// child returns container[key] for mappings and sequences.
func child(container any, key string) (any, bool) {
	switch c := container.(type) {
	case map[string]any:
		v, ok := c[key]
		return v, ok
	case []any:
		i, err := strconv.Atoi(key)
		if err != nil || i < 0 || i >= len(c) {
			return nil, false
		}
		return c[i], true
	}

	switch ShapeOf(container) {
	case Mapping:
		rv := reflect.ValueOf(container)
		k := reflect.ValueOf(key).Convert(rv.Type().Key())
		v := rv.MapIndex(k)
		if !v.IsValid() {
			return nil, false
		}
		return v.Interface(), true
	case Sequence:
		rv := reflect.ValueOf(container)
		i, err := strconv.Atoi(key)
		if err != nil || i < 0 || i >= rv.Len() {
			return nil, false
		}
		return rv.Index(i).Interface(), true
	}
	return nil, false
}

// Get reads the value at path inside container. The path may be a dotted
// string, a Path or a []string; sequences take integer segments.
//
// def is returned when container is not a mapping or sequence, when the
// path is empty, or when any segment is missing or not traversable.
func Get(container any, path any, def any) any {
	segs := segments(path)
	if len(segs) == 0 || ShapeOf(container) == Scalar {
		return def
	}

	cur := container
	for _, seg := range segs {
		next, ok := child(cur, seg)
		if !ok || IsUndefined(next) {
			return def
		}
		cur = next
	}
	return cur
}

// Set writes v at path inside container, creating empty mappings for
// missing or non-mapping intermediates. When conditional is true an
// existing leaf is left alone. Storing Undefined stores an empty mapping.
//
// Set returns the value now stored at the leaf, or container itself when
// container is nil or the path is empty.
func Set(container map[string]any, path any, v any, conditional bool) any {
	segs := segments(path)
	if container == nil || len(segs) == 0 {
		return container
	}

	cur := container
	for _, seg := range segs[:len(segs)-1] {
		next, ok := cur[seg].(map[string]any)
		if !ok || next == nil {
			next = map[string]any{}
			cur[seg] = next
		}
		cur = next
	}

	leaf := segs[len(segs)-1]
	if existing, ok := cur[leaf]; ok && conditional {
		return existing
	}
	if IsUndefined(v) {
		v = map[string]any{}
	}
	cur[leaf] = v
	return v
}

// RemixSpec describes where Remix writes a value and what it falls back
// to. A nil Default means the value is omitted when absent.
type RemixSpec struct {
	Path    string
	Default any
}

// Remix builds a new mapping by copying values out of container. keyMap
// maps a source path to its destination: nil or true keeps the same path,
// a string names the destination path, and a RemixSpec or a mapping with
// "path" and "def" keys also supplies a default.
//
// Remix reports false when container is not a mapping or keyMap is nil.
func Remix(container any, keyMap map[string]any) (map[string]any, bool) {
	if keyMap == nil || ShapeOf(container) != Mapping {
		return nil, false
	}

	sources := make([]string, 0, len(keyMap))
	for k := range keyMap {
		sources = append(sources, k)
	}
	sort.Strings(sources)

	out := map[string]any{}
	for _, src := range sources {
		dest, def := src, Undefined
		switch spec := keyMap[src].(type) {
		case nil:
		case bool:
			if !spec {
				continue
			}
		case string:
			if spec != "" {
				dest = spec
			}
		case RemixSpec:
			if spec.Path != "" {
				dest = spec.Path
			}
			if spec.Default != nil {
				def = spec.Default
			}
		case map[string]any:
			if p, ok := spec["path"].(string); ok && p != "" {
				dest = p
			}
			if d, ok := spec["def"]; ok && d != nil {
				def = d
			}
		}

		v := Get(container, src, def)
		if IsUndefined(v) {
			continue
		}
		Set(out, dest, v, false)
	}
	return out, true
}
