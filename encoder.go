package flux

import (
	"io"
	"strconv"

	"github.com/dadrian/flux/internal/wire"
)

// Encoder writes FLUX streams to an io.Writer.
type Encoder struct {
	w io.Writer
}

// NewEncoder creates a streaming encoder.
func NewEncoder(w io.Writer) *Encoder { return &Encoder{w: w} }

// Encode writes one complete stream for v: the FLUX header followed by the
// encoded value. Encoding is deterministic; the same value always produces
// identical bytes. It fails only on a payload too large for the 4-byte
// length prefix or on a writer error, which is passed through unchanged.
func (e *Encoder) Encode(v Value) error {
	if err := wire.WriteHeader(e.w); err != nil {
		return err
	}
	return e.encodeValue(v)
}

func (e *Encoder) encodeValue(v Value) error {
	switch v.kind {
	case KindNull:
		return wire.WriteTag(e.w, wire.TagNull)
	case KindBool:
		if err := wire.WriteTag(e.w, wire.TagBool); err != nil {
			return err
		}
		b := byte(0)
		if v.b {
			b = 1
		}
		_, err := e.w.Write([]byte{b})
		return err
	case KindInt:
		if err := wire.WriteTag(e.w, wire.TagInt); err != nil {
			return err
		}
		return wire.WriteI64(e.w, v.i)
	case KindFloat:
		if err := wire.WriteTag(e.w, wire.TagFloat); err != nil {
			return err
		}
		return wire.WriteF64(e.w, v.f)
	case KindString:
		if err := wire.WriteTag(e.w, wire.TagString); err != nil {
			return err
		}
		return e.writeBlob([]byte(v.s))
	case KindBytes:
		if err := wire.WriteTag(e.w, wire.TagBytes); err != nil {
			return err
		}
		return e.writeBlob(v.raw)
	case KindList, KindTuple:
		tag := wire.TagList
		if v.kind == KindTuple {
			tag = wire.TagTuple
		}
		if err := wire.WriteTag(e.w, tag); err != nil {
			return err
		}
		if err := e.writeLen(len(v.elems)); err != nil {
			return err
		}
		for _, elem := range v.elems {
			if err := e.encodeValue(elem); err != nil {
				return err
			}
		}
		return nil
	case KindDict:
		if err := wire.WriteTag(e.w, wire.TagDict); err != nil {
			return err
		}
		if err := e.writeLen(len(v.pairs)); err != nil {
			return err
		}
		for _, p := range v.pairs {
			if err := e.writeBlob([]byte(p.Key)); err != nil {
				return err
			}
			if err := e.encodeValue(p.Value); err != nil {
				return err
			}
		}
		return nil
	default:
		return &Error{Kind: ErrUnsupportedValue, Detail: "kind " + strconv.Itoa(int(v.kind))}
	}
}

// writeBlob writes a u32 length prefix followed by the raw content bytes.
func (e *Encoder) writeBlob(b []byte) error {
	if err := e.writeLen(len(b)); err != nil {
		return err
	}
	if len(b) == 0 {
		return nil
	}
	_, err := e.w.Write(b)
	return err
}

func (e *Encoder) writeLen(n int) error {
	if uint64(n) > wire.MaxLen {
		return &Error{Kind: ErrLengthOverflow, Detail: strconv.Itoa(n) + " exceeds length prefix"}
	}
	return wire.WriteU32(e.w, uint32(n))
}
