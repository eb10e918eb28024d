package flux

import (
	"math"
	"reflect"
	"sort"
	"strconv"
)

// FromGo maps a native Go value into the closed FLUX union. Supported
// inputs: nil, bool, all integer widths, float32/float64, string, []byte,
// []any, []Value, []Pair (order-preserving dict), map[string]any (keys
// sorted for determinism), and Value itself. Anything else yields an
// ErrUnsupportedValue error; resolving such values is the caller's job,
// the codec never guesses.
func FromGo(v any) (Value, error) {
	switch t := v.(type) {
	case nil:
		return Null(), nil
	case Value:
		return t, nil
	case bool:
		return Bool(t), nil
	case int:
		return Int(int64(t)), nil
	case int64:
		return Int(t), nil
	case uint64:
		if t > math.MaxInt64 {
			return Value{}, &Error{Kind: ErrUnsupportedValue, Detail: "uint64 " + strconv.FormatUint(t, 10) + " exceeds int64 range"}
		}
		return Int(int64(t)), nil
	case float64:
		return Float(t), nil
	case float32:
		return Float(float64(t)), nil
	case string:
		return String(t), nil
	case []byte:
		return Bytes(t), nil
	case []Value:
		return List(t...), nil
	case []Pair:
		return Dict(t...), nil
	case []any:
		elems := make([]Value, len(t))
		for i, item := range t {
			ev, err := FromGo(item)
			if err != nil {
				return Value{}, err
			}
			elems[i] = ev
		}
		return Value{kind: KindList, elems: elems}, nil
	case map[string]any:
		return fromGoMapSorted(t)
	}
	return fromGoReflect(reflect.ValueOf(v))
}

func fromGoMapSorted(m map[string]any) (Value, error) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]Pair, 0, len(keys))
	for _, k := range keys {
		pv, err := FromGo(m[k])
		if err != nil {
			return Value{}, err
		}
		pairs = append(pairs, Pair{Key: k, Value: pv})
	}
	return Value{kind: KindDict, pairs: pairs}, nil
}

// fromGoReflect covers the remaining convertible shapes: named types,
// other numeric widths, slices and string-keyed maps of arbitrary element
// type.
func fromGoReflect(rv reflect.Value) (Value, error) {
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return Null(), nil
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Bool:
		return Bool(rv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return Value{}, &Error{Kind: ErrUnsupportedValue, Detail: "unsigned value " + strconv.FormatUint(u, 10) + " exceeds int64 range"}
		}
		return Int(int64(u)), nil
	case reflect.Float32, reflect.Float64:
		return Float(rv.Float()), nil
	case reflect.String:
		return String(rv.String()), nil
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8 {
			return Bytes(rv.Bytes()), nil
		}
		elems := make([]Value, rv.Len())
		for i := range elems {
			ev, err := FromGo(rv.Index(i).Interface())
			if err != nil {
				return Value{}, err
			}
			elems[i] = ev
		}
		return Value{kind: KindList, elems: elems}, nil
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return Value{}, &Error{Kind: ErrUnsupportedValue, Detail: "map keys must be strings, got " + rv.Type().Key().String()}
		}
		keys := make([]string, 0, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			keys = append(keys, iter.Key().String())
		}
		sort.Strings(keys)
		pairs := make([]Pair, 0, len(keys))
		for _, k := range keys {
			pv, err := FromGo(rv.MapIndex(reflect.ValueOf(k).Convert(rv.Type().Key())).Interface())
			if err != nil {
				return Value{}, err
			}
			pairs = append(pairs, Pair{Key: k, Value: pv})
		}
		return Value{kind: KindDict, pairs: pairs}, nil
	default:
		return Value{}, &Error{Kind: ErrUnsupportedValue, Detail: "Go type " + rv.Type().String()}
	}
}

// Interface converts v back into native Go values: nil, bool, int64,
// float64, string, []byte, []any for lists and tuples, and map[string]any
// for dicts. The conversion is lossy where Go has no analogue: tuples
// flatten to slices and dict insertion order is not carried by a Go map
// (use Pairs when order matters).
func (v Value) Interface() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindString:
		return v.s
	case KindBytes:
		return v.Bytes()
	case KindList, KindTuple:
		out := make([]any, len(v.elems))
		for i, e := range v.elems {
			out[i] = e.Interface()
		}
		return out
	case KindDict:
		out := make(map[string]any, len(v.pairs))
		for _, p := range v.pairs {
			out[p.Key] = p.Value.Interface()
		}
		return out
	default:
		return nil
	}
}
