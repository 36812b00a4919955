package value

import "reflect"

type undefined struct{}

func (undefined) String() string { return "undefined" }

// Undefined marks an absent value. It is distinct from nil, which is a
// present null.
var Undefined any = undefined{}

// IsUndefined reports whether v is the Undefined sentinel.
func IsUndefined(v any) bool {
	_, ok := v.(undefined)
	return ok
}

// IsNull reports whether v is nil, including typed nil pointers, maps,
// slices, funcs, channels and interfaces.
func IsNull(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// IsObject reports whether v is a non-nil mapping, sequence, struct or
// pointer.
func IsObject(v any) bool {
	if IsNull(v) || IsUndefined(v) {
		return false
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct, reflect.Pointer:
		return true
	}
	return false
}

// IsString reports whether v is a string.
func IsString(v any) bool {
	if v == nil {
		return false
	}
	return reflect.ValueOf(v).Kind() == reflect.String
}

// IsFunc reports whether v is a non-nil function.
func IsFunc(v any) bool {
	if v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Func && !rv.IsNil()
}

// IsNumber reports whether v is any integer or floating point kind.
func IsNumber(v any) bool {
	if v == nil {
		return false
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// IsBool reports whether v is a bool.
func IsBool(v any) bool {
	if v == nil {
		return false
	}
	return reflect.ValueOf(v).Kind() == reflect.Bool
}

// IsArray reports whether v is a slice or array.
func IsArray(v any) bool {
	if v == nil {
		return false
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Slice, reflect.Array:
		return true
	}
	return false
}

// Shape is the structural class of a value.
type Shape uint8

const (
	Scalar Shape = iota
	Sequence
	Mapping
)

func (s Shape) String() string {
	switch s {
	case Sequence:
		return "sequence"
	case Mapping:
		return "mapping"
	default:
		return "scalar"
	}
}

// ShapeOf classifies v. Nil containers are scalars. Only maps keyed by
// strings count as mappings.
func ShapeOf(v any) Shape {
	switch t := v.(type) {
	case map[string]any:
		if t == nil {
			return Scalar
		}
		return Mapping
	case []any:
		if t == nil {
			return Scalar
		}
		return Sequence
	case nil, string, bool, int, int64, float64, undefined:
		return Scalar
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		if rv.IsNil() || rv.Type().Key().Kind() != reflect.String {
			return Scalar
		}
		return Mapping
	case reflect.Slice:
		if rv.IsNil() {
			return Scalar
		}
		return Sequence
	case reflect.Array:
		return Sequence
	}
	return Scalar
}
