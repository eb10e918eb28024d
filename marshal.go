package flux

import (
	"bytes"
)

// Marshal encodes v into a FLUX byte stream.
func Marshal(v Value) ([]byte, error) {
	var buf bytes.Buffer
	if err := NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes a FLUX byte stream. The stream must describe exactly
// one value; bytes left over after that value are an ErrTrailingData
// failure.
func Unmarshal(data []byte) (Value, error) {
	r := bytes.NewReader(data)
	dec := NewDecoder(r)
	v, err := dec.Decode()
	if err != nil {
		return Value{}, err
	}
	if r.Len() != 0 {
		return Value{}, &Error{Offset: dec.offset, Kind: ErrTrailingData, Detail: "stream continues past the value"}
	}
	return v, nil
}
