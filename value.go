package flux

import (
	"math"
	"strconv"
	"strings"
)

// Kind identifies which variant of the value union a Value holds.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindBytes
	KindList
	KindTuple
	KindDict
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindBytes:
		return "bytes"
	case KindList:
		return "list"
	case KindTuple:
		return "tuple"
	case KindDict:
		return "dict"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Pair is one dictionary entry. Dictionaries preserve insertion order.
type Pair struct {
	Key   string
	Value Value
}

// Value is a dynamically-typed value from the closed FLUX union. The zero
// Value is Null. Values are immutable once constructed; constructors copy
// slice inputs so no caller can mutate a Value after the fact.
type Value struct {
	kind  Kind
	b     bool
	i     int64
	f     float64
	s     string
	raw   []byte
	elems []Value
	pairs []Pair
}

// Null returns the null value.
func Null() Value { return Value{} }

// Bool returns a boolean value.
func Bool(v bool) Value { return Value{kind: KindBool, b: v} }

// Int returns a 64-bit integer value.
func Int(v int64) Value { return Value{kind: KindInt, i: v} }

// Float returns a 64-bit float value.
func Float(v float64) Value { return Value{kind: KindFloat, f: v} }

// String returns a text value. The string must be valid UTF-8; the codec
// passes its bytes through untouched.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Bytes returns a byte-string value. The input is copied.
func Bytes(b []byte) Value {
	raw := make([]byte, len(b))
	copy(raw, b)
	return Value{kind: KindBytes, raw: raw}
}

// List returns an ordered list of the given elements.
func List(elems ...Value) Value {
	return Value{kind: KindList, elems: copyElems(elems)}
}

// Tuple returns a tuple of the given elements. Tuples encode and compare
// distinctly from lists even when the elements match.
func Tuple(elems ...Value) Value {
	return Value{kind: KindTuple, elems: copyElems(elems)}
}

// Dict returns a dictionary of the given pairs, preserving their order.
// A repeated key replaces the earlier entry in place.
func Dict(pairs ...Pair) Value {
	out := make([]Pair, 0, len(pairs))
	index := make(map[string]int, len(pairs))
	for _, p := range pairs {
		if at, ok := index[p.Key]; ok {
			out[at].Value = p.Value
			continue
		}
		index[p.Key] = len(out)
		out = append(out, p)
	}
	return Value{kind: KindDict, pairs: out}
}

func copyElems(elems []Value) []Value {
	out := make([]Value, len(elems))
	copy(out, elems)
	return out
}

// Kind reports which variant v holds.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is the null value.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Bool returns the boolean content. It is only meaningful for KindBool.
func (v Value) Bool() bool { return v.b }

// Int returns the integer content. It is only meaningful for KindInt.
func (v Value) Int() int64 { return v.i }

// Float returns the float content. It is only meaningful for KindFloat.
func (v Value) Float() float64 { return v.f }

// Text returns the string content. It is only meaningful for KindString.
func (v Value) Text() string { return v.s }

// Bytes returns a copy of the byte-string content. It is only meaningful
// for KindBytes.
func (v Value) Bytes() []byte {
	out := make([]byte, len(v.raw))
	copy(out, v.raw)
	return out
}

// Len returns the element count of a list or tuple, or the pair count of a
// dictionary. It returns 0 for every other kind.
func (v Value) Len() int {
	if v.kind == KindDict {
		return len(v.pairs)
	}
	return len(v.elems)
}

// Index returns element i of a list or tuple.
func (v Value) Index(i int) Value { return v.elems[i] }

// Pairs returns a copy of a dictionary's entries in insertion order.
func (v Value) Pairs() []Pair {
	out := make([]Pair, len(v.pairs))
	copy(out, v.pairs)
	return out
}

// Get looks up a dictionary key.
func (v Value) Get(key string) (Value, bool) {
	for _, p := range v.pairs {
		if p.Key == key {
			return p.Value, true
		}
	}
	return Value{}, false
}

// Keys returns a dictionary's keys in insertion order.
func (v Value) Keys() []string {
	out := make([]string, len(v.pairs))
	for i, p := range v.pairs {
		out[i] = p.Key
	}
	return out
}

// Equal reports structural equality. Kinds must match exactly: a byte
// string never equals a text string and a tuple never equals a list, even
// with identical content. Floats compare by bit pattern, so NaN equals NaN
// and 0.0 differs from -0.0. Dictionaries compare as key/value sets;
// insertion order does not affect equality.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == o.b
	case KindInt:
		return v.i == o.i
	case KindFloat:
		return floatBitsEqual(v.f, o.f)
	case KindString:
		return v.s == o.s
	case KindBytes:
		return string(v.raw) == string(o.raw)
	case KindList, KindTuple:
		if len(v.elems) != len(o.elems) {
			return false
		}
		for i := range v.elems {
			if !v.elems[i].Equal(o.elems[i]) {
				return false
			}
		}
		return true
	case KindDict:
		if len(v.pairs) != len(o.pairs) {
			return false
		}
		for _, p := range v.pairs {
			ov, ok := o.Get(p.Key)
			if !ok || !p.Value.Equal(ov) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// String renders v as a FLUX text literal, parseable by the textrep
// package. Implements fmt.Stringer.
func (v Value) String() string {
	var sb strings.Builder
	v.writeLiteral(&sb)
	return sb.String()
}

func (v Value) writeLiteral(sb *strings.Builder) {
	switch v.kind {
	case KindNull:
		sb.WriteString("null")
	case KindBool:
		if v.b {
			sb.WriteString("true")
		} else {
			sb.WriteString("false")
		}
	case KindInt:
		sb.WriteString(strconv.FormatInt(v.i, 10))
	case KindFloat:
		sb.WriteString(formatFloatLiteral(v.f))
	case KindString:
		sb.WriteString(strconv.Quote(v.s))
	case KindBytes:
		writeBytesLiteral(sb, v.raw)
	case KindList:
		sb.WriteByte('[')
		v.writeElemList(sb)
		sb.WriteByte(']')
	case KindTuple:
		sb.WriteByte('(')
		v.writeElemList(sb)
		sb.WriteByte(')')
	case KindDict:
		sb.WriteByte('{')
		for i, p := range v.pairs {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(strconv.Quote(p.Key))
			sb.WriteString(": ")
			p.Value.writeLiteral(sb)
		}
		sb.WriteByte('}')
	}
}

func (v Value) writeElemList(sb *strings.Builder) {
	for i, e := range v.elems {
		if i > 0 {
			sb.WriteString(", ")
		}
		e.writeLiteral(sb)
	}
}

func formatFloatLiteral(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	// keep the literal lexically a float
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

func floatBitsEqual(a, b float64) bool {
	return math.Float64bits(a) == math.Float64bits(b)
}

func writeBytesLiteral(sb *strings.Builder, raw []byte) {
	sb.WriteString(`b"`)
	const hex = "0123456789abcdef"
	for _, c := range raw {
		switch {
		case c == '"' || c == '\\':
			sb.WriteByte('\\')
			sb.WriteByte(c)
		case c == '\n':
			sb.WriteString(`\n`)
		case c == '\r':
			sb.WriteString(`\r`)
		case c == '\t':
			sb.WriteString(`\t`)
		case c >= 0x20 && c < 0x7F:
			sb.WriteByte(c)
		default:
			sb.WriteString(`\x`)
			sb.WriteByte(hex[c>>4])
			sb.WriteByte(hex[c&0x0F])
		}
	}
	sb.WriteByte('"')
}
