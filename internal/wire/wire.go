// Package wire defines the byte-level layout of a FLUX stream: the magic
// header, the one-byte value tags, and the little-endian scalar and length
// encodings shared by the encoder and decoder.
package wire

import (
	"encoding/binary"
	"io"
	"math"
)

// Magic is the 4-byte stream prefix.
const Magic = "FLUX"

// Version is the current (and only) format version byte, written directly
// after the magic.
const Version = 0x01

// HeaderSize is the total header length: magic plus version byte.
const HeaderSize = len(Magic) + 1

// Value tags. One byte precedes every encoded value. The assignment is
// part of the wire contract and must never be reordered; adding a tag
// requires bumping Version.
const (
	TagNull   byte = 0x00
	TagBool   byte = 0x01
	TagInt    byte = 0x02
	TagFloat  byte = 0x03
	TagString byte = 0x04
	TagBytes  byte = 0x05
	TagList   byte = 0x06
	TagTuple  byte = 0x07
	TagDict   byte = 0x08
)

// MaxLen is the largest payload byte length or container count the 4-byte
// length prefix can carry.
const MaxLen = math.MaxUint32

var le = binary.LittleEndian

// WriteHeader writes the magic and version bytes.
func WriteHeader(w io.Writer) error {
	var b [HeaderSize]byte
	copy(b[:], Magic)
	b[len(Magic)] = Version
	_, err := w.Write(b[:])
	return err
}

// WriteTag writes a single value tag byte.
func WriteTag(w io.Writer, t byte) error {
	_, err := w.Write([]byte{t})
	return err
}

// WriteU32 writes a little-endian length prefix.
func WriteU32(w io.Writer, v uint32) error {
	var b [4]byte
	le.PutUint32(b[:], v)
	_, err := w.Write(b[:])
	return err
}

// WriteI64 writes a little-endian two's complement integer payload.
func WriteI64(w io.Writer, v int64) error {
	var b [8]byte
	le.PutUint64(b[:], uint64(v))
	_, err := w.Write(b[:])
	return err
}

// WriteF64 writes the IEEE-754 bit pattern of v, little-endian.
func WriteF64(w io.Writer, v float64) error {
	var b [8]byte
	le.PutUint64(b[:], math.Float64bits(v))
	_, err := w.Write(b[:])
	return err
}

// U32 decodes a little-endian length prefix from b.
func U32(b []byte) uint32 { return le.Uint32(b) }

// I64 decodes a little-endian two's complement integer payload from b.
func I64(b []byte) int64 { return int64(le.Uint64(b)) }

// F64 decodes a little-endian IEEE-754 payload from b.
func F64(b []byte) float64 { return math.Float64frombits(le.Uint64(b)) }
