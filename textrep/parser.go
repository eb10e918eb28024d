// Package textrep parses the FLUX text representation: literal values in a
// Python-flavored syntax (null, booleans, integers, floats, quoted strings,
// b"..." byte strings, [lists], (tuples), and {"key": value} dicts, with
// comments and trailing commas) and compiles them to FLUX wire bytes.
//
// The text form exists for fixtures and tooling; the binary format is the
// interchange surface. flux.Value.String renders the inverse direction.
package textrep

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/dadrian/flux"
)

// maxDepth caps literal nesting; matches the binary decoder's limit.
const maxDepth = 1000

// Parse reads a single value literal from src.
func Parse(src []byte) (flux.Value, error) {
	p := &parser{lx: newLexer(src)}
	p.lx.next()
	v, err := p.parseValue(0)
	if err != nil {
		return flux.Value{}, err
	}
	if p.lx.cur.kind != tokEOF {
		return flux.Value{}, fmt.Errorf("trailing input after value: %q", p.lx.cur.lit)
	}
	return v, nil
}

// EncodeBytes parses a value literal and returns its FLUX stream bytes.
func EncodeBytes(src []byte) ([]byte, error) {
	v, err := Parse(src)
	if err != nil {
		return nil, err
	}
	return flux.Marshal(v)
}

// Encode reads a value literal from r and writes its FLUX stream to w.
func Encode(r io.Reader, w io.Writer) error {
	src, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	out, err := EncodeBytes(src)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

type parser struct {
	lx *lexer
}

func (p *parser) parseValue(depth int) (flux.Value, error) {
	if depth > maxDepth {
		return flux.Value{}, fmt.Errorf("nesting beyond %d levels", maxDepth)
	}
	tok := p.lx.cur
	switch tok.kind {
	case tokNull:
		p.lx.next()
		return flux.Null(), nil
	case tokTrue:
		p.lx.next()
		return flux.Bool(true), nil
	case tokFalse:
		p.lx.next()
		return flux.Bool(false), nil
	case tokNan:
		p.lx.next()
		return flux.Float(math.NaN()), nil
	case tokInf:
		p.lx.next()
		if strings.HasPrefix(tok.lit, "-") {
			return flux.Float(math.Inf(-1)), nil
		}
		return flux.Float(math.Inf(1)), nil
	case tokInt:
		// base 0 handles the 0x prefix and underscore separators
		n, err := strconv.ParseInt(tok.lit, 0, 64)
		if err != nil {
			return flux.Value{}, fmt.Errorf("integer literal %q: %v", tok.lit, err)
		}
		p.lx.next()
		return flux.Int(n), nil
	case tokFloat:
		f, err := strconv.ParseFloat(strings.ReplaceAll(tok.lit, "_", ""), 64)
		if err != nil {
			return flux.Value{}, fmt.Errorf("float literal %q: %v", tok.lit, err)
		}
		p.lx.next()
		return flux.Float(f), nil
	case tokString:
		p.lx.next()
		return flux.String(tok.lit), nil
	case tokBytes:
		p.lx.next()
		return flux.Bytes([]byte(tok.lit)), nil
	case tokLBrack:
		return p.parseSeq(depth, tokRBrack, flux.List)
	case tokLParen:
		return p.parseSeq(depth, tokRParen, flux.Tuple)
	case tokLBrace:
		return p.parseDict(depth)
	case tokErr:
		return flux.Value{}, fmt.Errorf("lex error: %s", tok.lit)
	case tokEOF:
		return flux.Value{}, fmt.Errorf("unexpected end of input")
	default:
		return flux.Value{}, fmt.Errorf("unexpected token %q", tok.lit)
	}
}

// parseSeq handles list and tuple bodies; the opening bracket is current.
// Trailing commas are allowed.
func (p *parser) parseSeq(depth int, closer tokKind, build func(...flux.Value) flux.Value) (flux.Value, error) {
	p.lx.next() // consume opener
	var elems []flux.Value
	for {
		if p.lx.cur.kind == closer {
			p.lx.next()
			return build(elems...), nil
		}
		elem, err := p.parseValue(depth + 1)
		if err != nil {
			return flux.Value{}, err
		}
		elems = append(elems, elem)
		switch p.lx.cur.kind {
		case tokComma:
			p.lx.next()
		case closer:
			p.lx.next()
			return build(elems...), nil
		default:
			return flux.Value{}, fmt.Errorf("expected ',' or closing bracket, got %q", p.lx.cur.lit)
		}
	}
}

func (p *parser) parseDict(depth int) (flux.Value, error) {
	p.lx.next() // consume {
	var pairs []flux.Pair
	for {
		if p.lx.cur.kind == tokRBrace {
			p.lx.next()
			return flux.Dict(pairs...), nil
		}
		if p.lx.cur.kind != tokString {
			return flux.Value{}, fmt.Errorf("dict keys must be strings, got %q", p.lx.cur.lit)
		}
		key := p.lx.cur.lit
		p.lx.next()
		if p.lx.cur.kind != tokColon {
			return flux.Value{}, fmt.Errorf("expected ':' after dict key %q", key)
		}
		p.lx.next()
		val, err := p.parseValue(depth + 1)
		if err != nil {
			return flux.Value{}, err
		}
		pairs = append(pairs, flux.Pair{Key: key, Value: val})
		switch p.lx.cur.kind {
		case tokComma:
			p.lx.next()
		case tokRBrace:
			p.lx.next()
			return flux.Dict(pairs...), nil
		default:
			return flux.Value{}, fmt.Errorf("expected ',' or '}', got %q", p.lx.cur.lit)
		}
	}
}
