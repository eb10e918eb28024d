package interop

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dadrian/flux"
)

func Test_ToJSONOrderAndTypes(t *testing.T) {
	v := flux.Dict(
		flux.Pair{Key: "zebra", Value: flux.Int(1)},
		flux.Pair{Key: "apple", Value: flux.Float(1.5)},
		flux.Pair{Key: "data", Value: flux.Bytes([]byte("hi"))},
		flux.Pair{Key: "seq", Value: flux.Tuple(flux.Bool(true), flux.Null())},
	)
	out, err := ToJSON(v)
	require.NoError(t, err)
	assert.Equal(t, `{"zebra":1,"apple":1.5,"data":"aGk=","seq":[true,null]}`, string(out))
}

func Test_ToJSONRejectsNonFinite(t *testing.T) {
	_, err := ToJSON(flux.Float(math.NaN()))
	assert.Error(t, err)
	_, err = ToJSON(flux.List(flux.Float(math.Inf(1))))
	assert.Error(t, err)
}

func Test_FromJSONOrderPreserved(t *testing.T) {
	v, err := FromJSON([]byte(`{"z": 1, "a": 2, "m": 3}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"z", "a", "m"}, v.Keys())
}

func Test_FromJSONNumbers(t *testing.T) {
	v, err := FromJSON([]byte(`[1, 1.5, 1e3, 9223372036854775807]`))
	require.NoError(t, err)
	assert.Equal(t, flux.KindInt, v.Index(0).Kind())
	assert.Equal(t, flux.KindFloat, v.Index(1).Kind())
	assert.Equal(t, flux.KindFloat, v.Index(2).Kind())
	assert.Equal(t, int64(math.MaxInt64), v.Index(3).Int())
}

func Test_FromJSONTrailingData(t *testing.T) {
	_, err := FromJSON([]byte(`{} {}`))
	assert.Error(t, err)
}

func Test_JSONRoundtrip(t *testing.T) {
	v := flux.Dict(
		flux.Pair{Key: "list", Value: flux.List(flux.Int(1), flux.String("two"))},
		flux.Pair{Key: "nested", Value: flux.Dict(flux.Pair{Key: "ok", Value: flux.Bool(true)})},
	)
	out, err := ToJSON(v)
	require.NoError(t, err)
	back, err := FromJSON(out)
	require.NoError(t, err)
	assert.True(t, back.Equal(v), "got %s want %s", back, v)
}

func Test_YAMLRoundtrip(t *testing.T) {
	v := flux.Dict(
		flux.Pair{Key: "zebra", Value: flux.Int(1)},
		flux.Pair{Key: "apple", Value: flux.Float(2)},
		flux.Pair{Key: "blob", Value: flux.Bytes([]byte{0x00, 0xff})},
		flux.Pair{Key: "items", Value: flux.List(flux.Null(), flux.Bool(false), flux.String("s"))},
	)
	out, err := ToYAML(v)
	require.NoError(t, err)

	back, err := FromYAML(out)
	require.NoError(t, err)
	assert.True(t, back.Equal(v), "got %s want %s", back, v)
	assert.Equal(t, []string{"zebra", "apple", "blob", "items"}, back.Keys())
}

func Test_YAMLNonFiniteFloats(t *testing.T) {
	out, err := ToYAML(flux.List(flux.Float(math.Inf(1)), flux.Float(math.Inf(-1))))
	require.NoError(t, err)
	back, err := FromYAML(out)
	require.NoError(t, err)
	assert.True(t, math.IsInf(back.Index(0).Float(), 1))
	assert.True(t, math.IsInf(back.Index(1).Float(), -1))

	out, err = ToYAML(flux.Float(math.NaN()))
	require.NoError(t, err)
	back, err = FromYAML(out)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(back.Float()))
}

func Test_FromYAMLBinaryTag(t *testing.T) {
	v, err := FromYAML([]byte("!!binary aGVsbG8="))
	require.NoError(t, err)
	require.Equal(t, flux.KindBytes, v.Kind())
	assert.Equal(t, []byte("hello"), v.Bytes())
}

func Test_FromYAMLEmptyDocument(t *testing.T) {
	v, err := FromYAML(nil)
	require.NoError(t, err)
	assert.True(t, v.IsNull())
}

func Test_FromYAMLAnchors(t *testing.T) {
	src := []byte("base: &b [1, 2]\ncopy: *b\n")
	v, err := FromYAML(src)
	require.NoError(t, err)
	base, _ := v.Get("base")
	dup, _ := v.Get("copy")
	assert.True(t, base.Equal(dup))
}

func Test_CBORRoundtrip(t *testing.T) {
	v := flux.Dict(
		flux.Pair{Key: "n", Value: flux.Int(-42)},
		flux.Pair{Key: "f", Value: flux.Float(1.5)},
		flux.Pair{Key: "s", Value: flux.String("text")},
		flux.Pair{Key: "b", Value: flux.Bytes([]byte("raw"))},
		flux.Pair{Key: "l", Value: flux.List(flux.Bool(true), flux.Null())},
	)
	out, err := ToCBOR(v)
	require.NoError(t, err)

	back, err := FromCBOR(out)
	require.NoError(t, err)
	// deterministic CBOR sorts keys; dict equality ignores order
	assert.True(t, back.Equal(v), "got %s want %s", back, v)
}

func Test_CBORKeepsBytesStringDistinction(t *testing.T) {
	out, err := ToCBOR(flux.List(flux.Bytes([]byte("hello")), flux.String("hello")))
	require.NoError(t, err)
	back, err := FromCBOR(out)
	require.NoError(t, err)
	assert.Equal(t, flux.KindBytes, back.Index(0).Kind())
	assert.Equal(t, flux.KindString, back.Index(1).Kind())
}

func Test_CBORDeterministic(t *testing.T) {
	v := flux.Dict(
		flux.Pair{Key: "zebra", Value: flux.Int(1)},
		flux.Pair{Key: "apple", Value: flux.Int(2)},
	)
	first, err := ToCBOR(v)
	require.NoError(t, err)
	reordered := flux.Dict(
		flux.Pair{Key: "apple", Value: flux.Int(2)},
		flux.Pair{Key: "zebra", Value: flux.Int(1)},
	)
	second, err := ToCBOR(reordered)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
