package value

import (
	"reflect"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Each calls fn for every element of a sequence, in index order, or for
// every entry of a mapping, in sorted key order. The key is an int for
// sequences and a string for mappings. Scalars and a nil fn are ignored.
func Each(collection any, fn func(v any, key any, coll any)) {
	if fn == nil {
		return
	}

	switch c := collection.(type) {
	case []any:
		for i, v := range c {
			fn(v, i, collection)
		}
		return
	case map[string]any:
		for _, k := range sortedKeys(c) {
			fn(c[k], k, collection)
		}
		return
	}

	rv := reflect.ValueOf(collection)
	switch ShapeOf(collection) {
	case Sequence:
		for i := 0; i < rv.Len(); i++ {
			fn(rv.Index(i).Interface(), i, collection)
		}
	case Mapping:
		keys := make([]string, 0, rv.Len())
		for _, k := range rv.MapKeys() {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		kt := rv.Type().Key()
		for _, k := range keys {
			fn(rv.MapIndex(reflect.ValueOf(k).Convert(kt)).Interface(), k, collection)
		}
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Capitalize upper-cases the first letter of s.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// Trim removes leading and trailing whitespace.
func Trim(s string) string {
	return strings.TrimSpace(s)
}
