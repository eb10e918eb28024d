package interop

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/dadrian/flux"
)

// ToJSON renders v as JSON, preserving dictionary insertion order. Byte
// strings become base64 text and tuples become arrays; both are one-way
// conversions. NaN and infinities have no JSON representation and are
// rejected.
func ToJSON(v flux.Value) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeJSON(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeJSON(buf *bytes.Buffer, v flux.Value) error {
	switch v.Kind() {
	case flux.KindNull:
		buf.WriteString("null")
	case flux.KindBool:
		buf.WriteString(strconv.FormatBool(v.Bool()))
	case flux.KindInt:
		buf.WriteString(strconv.FormatInt(v.Int(), 10))
	case flux.KindFloat:
		f := v.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("interop: JSON cannot represent %v", f)
		}
		buf.WriteString(strconv.FormatFloat(f, 'g', -1, 64))
	case flux.KindString:
		writeJSONString(buf, v.Text())
	case flux.KindBytes:
		writeJSONString(buf, base64.StdEncoding.EncodeToString(v.Bytes()))
	case flux.KindList, flux.KindTuple:
		buf.WriteByte('[')
		for i := 0; i < v.Len(); i++ {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSON(buf, v.Index(i)); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case flux.KindDict:
		buf.WriteByte('{')
		for i, p := range v.Pairs() {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeJSONString(buf, p.Key)
			buf.WriteByte(':')
			if err := writeJSON(buf, p.Value); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	}
	return nil
}

func writeJSONString(buf *bytes.Buffer, s string) {
	// json.Marshal on a string cannot fail and handles all escaping
	b, _ := json.Marshal(s)
	buf.Write(b)
}

// FromJSON decodes a single JSON value, preserving object key order via
// token-level decoding. Numbers become Int when they parse as int64 and
// Float otherwise. JSON strings stay String; nothing is sniffed back into
// Bytes.
func FromJSON(data []byte) (flux.Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := readJSONValue(dec)
	if err != nil {
		return flux.Value{}, err
	}
	if dec.More() {
		return flux.Value{}, fmt.Errorf("interop: trailing data after JSON value")
	}
	return v, nil
}

func readJSONValue(dec *json.Decoder) (flux.Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return flux.Value{}, err
	}
	return jsonToken(dec, tok)
}

func jsonToken(dec *json.Decoder, tok json.Token) (flux.Value, error) {
	switch t := tok.(type) {
	case nil:
		return flux.Null(), nil
	case bool:
		return flux.Bool(t), nil
	case string:
		return flux.String(t), nil
	case json.Number:
		if n, err := strconv.ParseInt(t.String(), 10, 64); err == nil {
			return flux.Int(n), nil
		}
		f, err := t.Float64()
		if err != nil {
			return flux.Value{}, fmt.Errorf("interop: number %q: %v", t.String(), err)
		}
		return flux.Float(f), nil
	case json.Delim:
		switch t {
		case '[':
			var elems []flux.Value
			for dec.More() {
				elem, err := readJSONValue(dec)
				if err != nil {
					return flux.Value{}, err
				}
				elems = append(elems, elem)
			}
			if _, err := dec.Token(); err != nil { // closing ]
				return flux.Value{}, err
			}
			return flux.List(elems...), nil
		case '{':
			var pairs []flux.Pair
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return flux.Value{}, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return flux.Value{}, fmt.Errorf("interop: object key %v is not a string", keyTok)
				}
				val, err := readJSONValue(dec)
				if err != nil {
					return flux.Value{}, err
				}
				pairs = append(pairs, flux.Pair{Key: key, Value: val})
			}
			if _, err := dec.Token(); err != nil { // closing }
				return flux.Value{}, err
			}
			return flux.Dict(pairs...), nil
		default:
			return flux.Value{}, fmt.Errorf("interop: unexpected delimiter %v", t)
		}
	default:
		return flux.Value{}, fmt.Errorf("interop: unexpected token %v", tok)
	}
}
