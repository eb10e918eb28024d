// Command fluxt converts between FLUX streams and neighboring
// representations (text literals, JSON, YAML, CBOR).
//
//	fluxt --from text --to flux < value.flxt > value.flux
//	fluxt --from flux --to json --in value.flux
//	fluxt --from json --info --in payload.json
package main

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/dadrian/flux"
	"github.com/dadrian/flux/internal/wire"
	"github.com/dadrian/flux/interop"
	"github.com/dadrian/flux/textrep"
)

func main() {
	in := flag.String("in", "-", "input file (or - for stdin)")
	out := flag.String("out", "-", "output file (or - for stdout)")
	from := flag.String("from", "text", "input format: flux|text|json|yaml|cbor")
	to := flag.String("to", "flux", "output format: flux|hex|text|json|yaml|cbor")
	validate := flag.Bool("validate", false, "validate only; parse input without writing output")
	info := flag.Bool("info", false, "print a brief stream summary (no output bytes)")
	flag.Parse()

	var inBytes []byte
	var err error
	if *in == "-" {
		inBytes, err = io.ReadAll(os.Stdin)
		if err != nil {
			fatalf("read stdin: %v", err)
		}
	} else {
		inBytes, err = os.ReadFile(*in)
		if err != nil {
			fatalf("read input: %v", err)
		}
	}

	v, err := decodeInput(*from, inBytes)
	if err != nil {
		fatalf("decode %s: %v", *from, err)
	}

	if *info {
		stream := inBytes
		if *from != "flux" {
			if stream, err = flux.Marshal(v); err != nil {
				fatalf("info: %v", err)
			}
		}
		if err := printInfo(stream); err != nil {
			fatalf("info: %v", err)
		}
		return
	}

	if *validate {
		// success => exit 0, no output
		return
	}

	outBytes, err := encodeOutput(*to, v)
	if err != nil {
		fatalf("encode %s: %v", *to, err)
	}

	var w io.Writer = os.Stdout
	if *out != "-" {
		outfile, err := os.Create(*out)
		if err != nil {
			fatalf("create output: %v", err)
		}
		defer outfile.Close()
		w = outfile
	}
	if _, err := w.Write(outBytes); err != nil {
		fatalf("write: %v", err)
	}
}

func decodeInput(format string, data []byte) (flux.Value, error) {
	switch format {
	case "flux":
		return flux.Unmarshal(data)
	case "text":
		return textrep.Parse(data)
	case "json":
		return interop.FromJSON(data)
	case "yaml":
		return interop.FromYAML(data)
	case "cbor":
		return interop.FromCBOR(data)
	default:
		return flux.Value{}, fmt.Errorf("unknown input format %q", format)
	}
}

func encodeOutput(format string, v flux.Value) ([]byte, error) {
	switch format {
	case "flux":
		return flux.Marshal(v)
	case "hex":
		raw, err := flux.Marshal(v)
		if err != nil {
			return nil, err
		}
		return append([]byte(hex.EncodeToString(raw)), '\n'), nil
	case "text":
		return append([]byte(v.String()), '\n'), nil
	case "json":
		out, err := interop.ToJSON(v)
		if err != nil {
			return nil, err
		}
		return append(out, '\n'), nil
	case "yaml":
		return interop.ToYAML(v)
	case "cbor":
		return interop.ToCBOR(v)
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

func printInfo(stream []byte) error {
	if len(stream) < wire.HeaderSize+1 {
		return fmt.Errorf("stream too short (%d bytes)", len(stream))
	}
	if !bytes.Equal(stream[:len(wire.Magic)], []byte(wire.Magic)) {
		return fmt.Errorf("not a FLUX stream (magic % x)", stream[:len(wire.Magic)])
	}
	fmt.Printf("Magic: %s\n", wire.Magic)
	fmt.Printf("Version: %d\n", stream[len(wire.Magic)])
	fmt.Printf("Size: %d bytes\n", len(stream))
	fmt.Printf("Top-level: %s\n", tagName(stream[wire.HeaderSize]))
	return nil
}

func tagName(t byte) string {
	switch t {
	case wire.TagNull:
		return "null"
	case wire.TagBool:
		return "bool"
	case wire.TagInt:
		return "int"
	case wire.TagFloat:
		return "float"
	case wire.TagString:
		return "string"
	case wire.TagBytes:
		return "bytes"
	case wire.TagList:
		return "list"
	case wire.TagTuple:
		return "tuple"
	case wire.TagDict:
		return "dict"
	default:
		return fmt.Sprintf("unknown (0x%02x)", t)
	}
}

func fatalf(f string, args ...any) {
	fmt.Fprintf(os.Stderr, f+"\n", args...)
	os.Exit(1)
}
