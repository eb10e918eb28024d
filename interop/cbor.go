package interop

import (
	"reflect"

	"github.com/fxamacker/cbor/v2"

	"github.com/dadrian/flux"
)

// encMode is the CBOR encoder configured with Core Deterministic Encoding
// (RFC 8949 §4.2): sorted map keys, smallest integer encoding, no
// indefinite-length items. Same logical data always produces identical
// bytes.
var encMode cbor.EncMode

// decMode decodes standard CBOR, with any-typed map targets pinned to
// map[string]any so decoded dictionaries convert cleanly.
var decMode cbor.DecMode

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("interop: CBOR encoder initialization failed: " + err.Error())
	}
	decMode, err = cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic("interop: CBOR decoder initialization failed: " + err.Error())
	}
}

// ToCBOR encodes v as deterministic CBOR. Dictionary insertion order is
// not carried: deterministic CBOR sorts map keys.
func ToCBOR(v flux.Value) ([]byte, error) {
	return encMode.Marshal(v.Interface())
}

// FromCBOR decodes a CBOR item into a FLUX value. CBOR byte strings map
// to Bytes and text strings to String, so the distinction survives.
// Non-string map keys are rejected via flux.FromGo.
func FromCBOR(data []byte) (flux.Value, error) {
	var raw any
	if err := decMode.Unmarshal(data, &raw); err != nil {
		return flux.Value{}, err
	}
	return flux.FromGo(raw)
}
