package flux

import (
	"math"
	"testing"
)

func Test_EqualDistinguishesKinds(t *testing.T) {
	if String("hello").Equal(Bytes([]byte("hello"))) {
		t.Fatal("string equals bytes with identical content")
	}
	if List(Int(1)).Equal(Tuple(Int(1))) {
		t.Fatal("list equals tuple with identical content")
	}
	if Int(0).Equal(Float(0)) {
		t.Fatal("int equals float")
	}
	if Null().Equal(Bool(false)) {
		t.Fatal("null equals false")
	}
}

func Test_EqualFloats(t *testing.T) {
	if !Float(math.NaN()).Equal(Float(math.NaN())) {
		t.Fatal("NaN should equal NaN under bit equality")
	}
	if Float(0).Equal(Float(math.Copysign(0, -1))) {
		t.Fatal("0.0 should differ from -0.0 under bit equality")
	}
}

func Test_EqualDictOrderInsensitive(t *testing.T) {
	a := Dict(Pair{"x", Int(1)}, Pair{"y", Int(2)})
	b := Dict(Pair{"y", Int(2)}, Pair{"x", Int(1)})
	if !a.Equal(b) {
		t.Fatal("dicts with same entries in different order should be equal")
	}
	c := Dict(Pair{"x", Int(1)}, Pair{"y", Int(3)})
	if a.Equal(c) {
		t.Fatal("dicts with different values should differ")
	}
}

func Test_DictRepeatedKeyReplaces(t *testing.T) {
	d := Dict(Pair{"k", Int(1)}, Pair{"other", Int(2)}, Pair{"k", Int(3)})
	if d.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", d.Len())
	}
	v, ok := d.Get("k")
	if !ok || v.Int() != 3 {
		t.Fatalf("repeated key should keep last value, got %v", v)
	}
	// position of the first insertion is kept
	if keys := d.Keys(); keys[0] != "k" || keys[1] != "other" {
		t.Fatalf("key order: %v", keys)
	}
}

func Test_ValueImmutability(t *testing.T) {
	raw := []byte{1, 2, 3}
	v := Bytes(raw)
	raw[0] = 9
	if v.Bytes()[0] != 1 {
		t.Fatal("Bytes constructor did not copy its input")
	}
	out := v.Bytes()
	out[1] = 9
	if v.Bytes()[1] != 2 {
		t.Fatal("Bytes accessor did not copy")
	}

	elems := []Value{Int(1)}
	l := List(elems...)
	elems[0] = Int(2)
	if l.Index(0).Int() != 1 {
		t.Fatal("List constructor did not copy its input")
	}
}

func Test_StringLiteral(t *testing.T) {
	cases := []struct {
		v    Value
		want string
	}{
		{Null(), "null"},
		{Bool(true), "true"},
		{Int(-42), "-42"},
		{Float(1.5), "1.5"},
		{Float(2), "2.0"},
		{Float(math.NaN()), "nan"},
		{Float(math.Inf(-1)), "-inf"},
		{String("a\"b"), `"a\"b"`},
		{Bytes([]byte{'h', 'i', 0x00}), `b"hi\x00"`},
		{List(Int(1), Int(2)), "[1, 2]"},
		{Tuple(), "()"},
		{Dict(Pair{"k", String("v")}), `{"k": "v"}`},
	}
	for _, c := range cases {
		if got := c.v.String(); got != c.want {
			t.Fatalf("literal for %v: got %q want %q", c.v.Kind(), got, c.want)
		}
	}
}

func Test_GetMissing(t *testing.T) {
	d := Dict(Pair{"a", Int(1)})
	if _, ok := d.Get("b"); ok {
		t.Fatal("Get on missing key reported ok")
	}
}
