// Package flux provides encoding and decoding for the FLUX binary
// serialization format.
//
// A FLUX stream is a 5-byte header (the ASCII magic "FLUX" followed by a
// version byte) and exactly one encoded value. Values form a closed dynamic
// union: null, booleans, 64-bit integers, 64-bit floats, UTF-8 strings, raw
// byte strings, lists, tuples, and order-preserving string-keyed
// dictionaries. Decoding the encoding of any value reproduces an equal
// value, with byte strings and text strings kept distinct.
//
// The package exposes high-level Marshal/Unmarshal helpers, streaming
// Encoder/Decoder types, and Dump/Load for whole-file round trips. The
// codec holds no process-wide state; concurrent calls need no coordination.
package flux
