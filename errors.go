package flux

import "fmt"

// ErrorKind classifies encoding/decoding errors.
type ErrorKind int

const (
	ErrUnsupportedValue ErrorKind = iota + 1
	ErrLengthOverflow
	ErrBadMagic
	ErrUnsupportedVersion
	ErrUnknownTag
	ErrTruncatedInput
	ErrDuplicateKey
	ErrTrailingData
	ErrInvalidUTF8
	ErrDepthExceeded
	ErrIO
)

func (k ErrorKind) String() string {
	switch k {
	case ErrUnsupportedValue:
		return "unsupported value"
	case ErrLengthOverflow:
		return "length overflow"
	case ErrBadMagic:
		return "bad magic"
	case ErrUnsupportedVersion:
		return "unsupported version"
	case ErrUnknownTag:
		return "unknown tag"
	case ErrTruncatedInput:
		return "truncated input"
	case ErrDuplicateKey:
		return "duplicate key"
	case ErrTrailingData:
		return "trailing data"
	case ErrInvalidUTF8:
		return "invalid utf-8"
	case ErrDepthExceeded:
		return "depth exceeded"
	case ErrIO:
		return "i/o error"
	default:
		return fmt.Sprintf("error kind %d", int(k))
	}
}

// Error carries the stream offset and classification of a failure. Offset
// is the byte position at which the problem was detected, counted from the
// start of the stream; it is zero for errors with no meaningful position
// (encode-side failures, file-level I/O).
type Error struct {
	Offset int64
	Kind   ErrorKind
	Detail string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := "flux: " + e.Kind.String()
	if e.Offset > 0 {
		msg = fmt.Sprintf("%s at offset %d", msg, e.Offset)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes the underlying cause, set only for ErrIO.
func (e *Error) Unwrap() error { return e.Err }

// errKind extracts the ErrorKind from an error, or 0 if it is not a *Error.
func errKind(err error) ErrorKind {
	if e, ok := err.(*Error); ok {
		return e.Kind
	}
	return 0
}
