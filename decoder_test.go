package flux

import (
	"bytes"
	"testing"
)

func assertKind(t *testing.T, err error, want ErrorKind) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v error, got nil", want)
	}
	if got := errKind(err); got != want {
		t.Fatalf("expected %v error, got %v (%v)", want, got, err)
	}
}

func Test_TruncationRejected(t *testing.T) {
	// dropping the final byte of any valid stream must fail as truncated
	for _, v := range roundtripValues() {
		enc, err := Marshal(v)
		if err != nil {
			t.Fatal(err)
		}
		_, err = Unmarshal(enc[:len(enc)-1])
		assertKind(t, err, ErrTruncatedInput)
	}
}

func Test_TrailingDataRejected(t *testing.T) {
	for _, v := range roundtripValues() {
		enc, err := Marshal(v)
		if err != nil {
			t.Fatal(err)
		}
		_, err = Unmarshal(append(enc, 0x00))
		assertKind(t, err, ErrTrailingData)
	}
}

func Test_BadMagicRejected(t *testing.T) {
	enc, err := Marshal(Int(1))
	if err != nil {
		t.Fatal(err)
	}
	bad := append([]byte(nil), enc...)
	bad[0] ^= 0xFF
	_, err = Unmarshal(bad)
	assertKind(t, err, ErrBadMagic)
}

func Test_UnsupportedVersionRejected(t *testing.T) {
	_, err := Unmarshal([]byte("FLUX\x02\x00"))
	assertKind(t, err, ErrUnsupportedVersion)
}

func Test_UnknownTagRejected(t *testing.T) {
	_, err := Unmarshal([]byte("FLUX\x01\xff"))
	assertKind(t, err, ErrUnknownTag)

	// also inside a container
	_, err = Unmarshal([]byte("FLUX\x01\x06\x01\x00\x00\x00\x7f"))
	assertKind(t, err, ErrUnknownTag)
}

func Test_EmptyInputRejected(t *testing.T) {
	_, err := Unmarshal(nil)
	assertKind(t, err, ErrTruncatedInput)
}

func Test_InvalidBoolPayloadRejected(t *testing.T) {
	_, err := Unmarshal([]byte("FLUX\x01\x01\x02"))
	assertKind(t, err, ErrUnsupportedValue)
}

func Test_DuplicateKeyRejected(t *testing.T) {
	// {"a": null, "a": null} is constructible on the wire but not decodable
	data := []byte("FLUX\x01\x08\x02\x00\x00\x00" +
		"\x01\x00\x00\x00a\x00" +
		"\x01\x00\x00\x00a\x00")
	_, err := Unmarshal(data)
	assertKind(t, err, ErrDuplicateKey)
}

func Test_InvalidUTF8Rejected(t *testing.T) {
	_, err := Unmarshal([]byte("FLUX\x01\x04\x01\x00\x00\x00\xff"))
	assertKind(t, err, ErrInvalidUTF8)

	// dict key
	_, err = Unmarshal([]byte("FLUX\x01\x08\x01\x00\x00\x00\x01\x00\x00\x00\xff\x00"))
	assertKind(t, err, ErrInvalidUTF8)
}

func Test_OverlongLengthRejected(t *testing.T) {
	// declared string length far beyond the remaining input must fail
	// before any allocation
	_, err := Unmarshal([]byte("FLUX\x01\x04\xff\xff\xff\x7fab"))
	assertKind(t, err, ErrTruncatedInput)
}

func Test_DepthBombRejected(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString("FLUX\x01")
	for i := 0; i < maxDepth+2; i++ {
		buf.WriteString("\x06\x01\x00\x00\x00")
	}
	buf.WriteByte(0x00)
	_, err := Unmarshal(buf.Bytes())
	assertKind(t, err, ErrDepthExceeded)
}

func Test_DeepButLegalNesting(t *testing.T) {
	v := Int(7)
	for i := 0; i < 100; i++ {
		v = List(v)
	}
	enc, err := Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	got, err := Unmarshal(enc)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(v) {
		t.Fatal("deep nesting mismatch after roundtrip")
	}
}

func Test_ErrorOffsets(t *testing.T) {
	// the unknown tag sits directly after the 5-byte header
	_, err := Unmarshal([]byte("FLUX\x01\xff"))
	e, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *Error, got %T", err)
	}
	if e.Offset != 5 {
		t.Fatalf("offset: got %d want 5", e.Offset)
	}
}
