package flux

import (
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/dadrian/flux/internal/wire"
)

// maxDepth bounds value nesting during decode. A hostile stream can open a
// new container with every remaining byte, so recursion must be capped.
const maxDepth = 1000

// Decoder reads FLUX streams from an io.Reader.
type Decoder struct {
	r      io.Reader
	offset int64
}

// NewDecoder creates a streaming decoder.
func NewDecoder(r io.Reader) *Decoder { return &Decoder{r: r} }

// Decode reads one complete stream (header plus a single value) and
// returns the decoded value. The input is validated as it is consumed;
// any structural problem aborts the decode with a *Error carrying the
// offset at which it was detected. Decode does not require the reader to
// be exhausted afterwards; Unmarshal adds that check.
func (d *Decoder) Decode() (Value, error) {
	if err := d.readHeader(); err != nil {
		return Value{}, err
	}
	return d.readValue(0)
}

func (d *Decoder) readHeader() error {
	var magic [len(wire.Magic)]byte
	if err := d.readFull(magic[:]); err != nil {
		return err
	}
	if string(magic[:]) != wire.Magic {
		return &Error{Kind: ErrBadMagic, Detail: fmt.Sprintf("got % x", magic[:])}
	}
	version, err := d.readByte()
	if err != nil {
		return err
	}
	if version != wire.Version {
		return &Error{Offset: int64(len(wire.Magic)), Kind: ErrUnsupportedVersion, Detail: fmt.Sprintf("version %d", version)}
	}
	return nil
}

func (d *Decoder) readValue(depth int) (Value, error) {
	if depth > maxDepth {
		return Value{}, &Error{Offset: d.offset, Kind: ErrDepthExceeded, Detail: fmt.Sprintf("nesting beyond %d levels", maxDepth)}
	}
	tagAt := d.offset
	tag, err := d.readByte()
	if err != nil {
		return Value{}, err
	}
	switch tag {
	case wire.TagNull:
		return Value{}, nil
	case wire.TagBool:
		b, err := d.readByte()
		if err != nil {
			return Value{}, err
		}
		switch b {
		case 0x00:
			return Bool(false), nil
		case 0x01:
			return Bool(true), nil
		default:
			return Value{}, &Error{Offset: d.offset, Kind: ErrUnsupportedValue, Detail: fmt.Sprintf("bool payload 0x%02x", b)}
		}
	case wire.TagInt:
		var b [8]byte
		if err := d.readFull(b[:]); err != nil {
			return Value{}, err
		}
		return Int(wire.I64(b[:])), nil
	case wire.TagFloat:
		var b [8]byte
		if err := d.readFull(b[:]); err != nil {
			return Value{}, err
		}
		return Float(wire.F64(b[:])), nil
	case wire.TagString:
		at := d.offset
		b, err := d.readBlob()
		if err != nil {
			return Value{}, err
		}
		if !utf8.Valid(b) {
			return Value{}, &Error{Offset: at, Kind: ErrInvalidUTF8, Detail: "string payload"}
		}
		return Value{kind: KindString, s: string(b)}, nil
	case wire.TagBytes:
		b, err := d.readBlob()
		if err != nil {
			return Value{}, err
		}
		return Value{kind: KindBytes, raw: b}, nil
	case wire.TagList, wire.TagTuple:
		n, err := d.readLen()
		if err != nil {
			return Value{}, err
		}
		elems := make([]Value, 0, min(int(n), 1024))
		for i := uint32(0); i < n; i++ {
			elem, err := d.readValue(depth + 1)
			if err != nil {
				return Value{}, err
			}
			elems = append(elems, elem)
		}
		kind := KindList
		if tag == wire.TagTuple {
			kind = KindTuple
		}
		return Value{kind: kind, elems: elems}, nil
	case wire.TagDict:
		n, err := d.readLen()
		if err != nil {
			return Value{}, err
		}
		pairs := make([]Pair, 0, min(int(n), 1024))
		seen := make(map[string]struct{}, min(int(n), 1024))
		for i := uint32(0); i < n; i++ {
			at := d.offset
			kb, err := d.readBlob()
			if err != nil {
				return Value{}, err
			}
			if !utf8.Valid(kb) {
				return Value{}, &Error{Offset: at, Kind: ErrInvalidUTF8, Detail: "dict key"}
			}
			key := string(kb)
			if _, dup := seen[key]; dup {
				return Value{}, &Error{Offset: at, Kind: ErrDuplicateKey, Detail: fmt.Sprintf("key %q", key)}
			}
			seen[key] = struct{}{}
			val, err := d.readValue(depth + 1)
			if err != nil {
				return Value{}, err
			}
			pairs = append(pairs, Pair{Key: key, Value: val})
		}
		return Value{kind: KindDict, pairs: pairs}, nil
	default:
		return Value{}, &Error{Offset: tagAt, Kind: ErrUnknownTag, Detail: fmt.Sprintf("tag 0x%02x", tag)}
	}
}

// readBlob reads a u32 length prefix and that many content bytes.
func (d *Decoder) readBlob() ([]byte, error) {
	n, err := d.readLen()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}
	buf := make([]byte, n)
	if err := d.readFull(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// readLen reads a u32 length prefix. When the reader can report how many
// bytes remain (bytes.Reader and friends), a declared length beyond the
// remaining input fails immediately instead of after a large allocation.
func (d *Decoder) readLen() (uint32, error) {
	var b [4]byte
	if err := d.readFull(b[:]); err != nil {
		return 0, err
	}
	n := wire.U32(b[:])
	if lr, ok := d.r.(interface{ Len() int }); ok {
		if uint64(n) > uint64(lr.Len()) {
			return 0, &Error{Offset: d.offset, Kind: ErrTruncatedInput, Detail: fmt.Sprintf("declared length %d exceeds %d remaining bytes", n, lr.Len())}
		}
	}
	return n, nil
}

func (d *Decoder) readByte() (byte, error) {
	var b [1]byte
	if err := d.readFull(b[:]); err != nil {
		return 0, err
	}
	return b[0], nil
}

// readFull fills buf from the reader, advancing the stream offset. A short
// read is a truncation; any other reader failure is surfaced as an I/O
// error with the underlying cause attached.
func (d *Decoder) readFull(buf []byte) error {
	n, err := io.ReadFull(d.r, buf)
	d.offset += int64(n)
	if err == nil {
		return nil
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return &Error{Offset: d.offset, Kind: ErrTruncatedInput, Detail: fmt.Sprintf("need %d more bytes", len(buf)-n)}
	}
	return &Error{Offset: d.offset, Kind: ErrIO, Err: err}
}
