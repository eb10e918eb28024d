// Package interop bridges FLUX values to and from neighboring formats.
//
// Three bridges exist, each with a documented loss profile:
//
//   - JSON for external/tooling surfaces. Byte strings become base64 text
//     (JSON has no byte type), tuples become arrays, and NaN/infinity are
//     rejected. Decoding preserves object key order.
//   - YAML for human-edited fixtures. Byte strings round-trip through the
//     !!binary tag; tuples become sequences. Mapping order is preserved in
//     both directions via yaml.Node.
//   - CBOR for machine interchange with CBOR-speaking systems, using Core
//     Deterministic Encoding. Byte/text distinction round-trips; map key
//     order does not (deterministic CBOR sorts keys).
//
// None of these are the FLUX wire format; a lossless round trip is only
// guaranteed by flux.Marshal/flux.Unmarshal.
package interop
