package codec

import (
	"encoding/json"
	"math"
	"reflect"
	"strconv"
)

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// truthy follows the usual scripting notion of truth: nil, false, zero and the
// empty string are false, everything else is true.
func truthy(v any) bool {
	if isNil(v) {
		return false
	}
	switch x := v.(type) {
	case bool:
		return x
	case string:
		return x != ""
	case json.Number:
		f, err := x.Float64()
		return err == nil && f != 0
	}
	if f, ok := toFloat64(v); ok {
		return f != 0 && !math.IsNaN(f)
	}
	return true
}

// toInt64 converts numeric-like values for fixed-width integer encoding.
// Floats are truncated toward zero; nil is zero.
func toInt64(v any) (int64, bool) {
	switch x := v.(type) {
	case nil:
		return 0, true
	case int:
		return int64(x), true
	case int8:
		return int64(x), true
	case int16:
		return int64(x), true
	case int32:
		return int64(x), true
	case int64:
		return x, true
	case uint:
		return int64(x), true
	case uint8:
		return int64(x), true
	case uint16:
		return int64(x), true
	case uint32:
		return int64(x), true
	case uint64:
		return int64(x), true
	case float32:
		return floatToInt64(float64(x)), true
	case float64:
		return floatToInt64(x), true
	case bool:
		if x {
			return 1, true
		}
		return 0, true
	case json.Number:
		if i, err := strconv.ParseInt(string(x), 10, 64); err == nil {
			return i, true
		}
		if f, err := x.Float64(); err == nil {
			return floatToInt64(f), true
		}
		return 0, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return int64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return floatToInt64(rv.Float()), true
	}
	return 0, false
}

const (
	two63 = 1 << 63
	two64 = 1 << 64
)

// floatToInt64 truncates f toward zero and reduces it modulo 2^64, so any
// fixed-width conversion of the result matches wrapping arithmetic.
func floatToInt64(f float64) int64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	f = math.Mod(math.Trunc(f), two64)
	switch {
	case f >= two63:
		return int64(uint64(f))
	case f < -two63:
		return int64(f + two64)
	}
	return int64(f)
}

func toFloat64(v any) (float64, bool) {
	switch x := v.(type) {
	case nil:
		return 0, true
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case json.Number:
		f, err := x.Float64()
		return f, err == nil
	case bool:
		if x {
			return 1, true
		}
		return 0, true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

func toBytes(v any) ([]byte, bool) {
	switch x := v.(type) {
	case nil:
		return nil, true
	case string:
		return []byte(x), true
	case []byte:
		return x, true
	}
	return nil, false
}

// toSlice returns n positional values from v. Missing trailing elements and
// a nil v yield nil entries.
func toSlice(v any, n int) ([]any, bool) {
	out := make([]any, n)
	if isNil(v) {
		return out, true
	}
	if xs, ok := v.([]any); ok {
		copy(out, xs)
		return out, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	for i := 0; i < n && i < rv.Len(); i++ {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// toFields returns the value of each key in keys from a string-keyed map.
func toFields(v any, keys []string) ([]any, bool) {
	out := make([]any, len(keys))
	if isNil(v) {
		return out, true
	}
	if m, ok := v.(map[string]any); ok {
		for i, k := range keys {
			out[i] = m[k]
		}
		return out, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	for i, k := range keys {
		mv := rv.MapIndex(reflect.ValueOf(k).Convert(rv.Type().Key()))
		if mv.IsValid() {
			out[i] = mv.Interface()
		}
	}
	return out, true
}
