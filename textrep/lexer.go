package textrep

import (
	"fmt"
	"strconv"
	"unicode"
	"unicode/utf8"
)

type tokKind int

const (
	tokEOF tokKind = iota
	tokErr
	tokInt
	tokFloat
	tokString
	tokBytes
	tokNull
	tokTrue
	tokFalse
	tokNan
	tokInf
	// symbols
	tokColon  // :
	tokComma  // ,
	tokLBrace // {
	tokRBrace // }
	tokLBrack // [
	tokRBrack // ]
	tokLParen // (
	tokRParen // )
)

type token struct {
	kind tokKind
	lit  string
}

type lexer struct {
	src []byte
	off int
	cur token
}

func newLexer(src []byte) *lexer { return &lexer{src: src} }

func (lx *lexer) next() {
	lx.skipSpaceAndComments()
	if lx.off >= len(lx.src) {
		lx.cur = token{kind: tokEOF}
		return
	}
	b := lx.src[lx.off]
	// byte-string literal b"..."
	if b == 'b' && lx.off+1 < len(lx.src) && lx.src[lx.off+1] == '"' {
		lx.off++
		s, n, err := scanString(lx.src[lx.off:])
		if err != nil {
			lx.fail("byte string: %v", err)
			return
		}
		lx.cur = token{kind: tokBytes, lit: s}
		lx.off += n
		return
	}
	// identifiers/keywords
	if isIdentStart(b) {
		start := lx.off
		lx.off++
		for lx.off < len(lx.src) && isIdentPart(lx.src[lx.off]) {
			lx.off++
		}
		s := string(lx.src[start:lx.off])
		switch s {
		case "null", "none":
			lx.cur = token{kind: tokNull, lit: s}
		case "true":
			lx.cur = token{kind: tokTrue, lit: s}
		case "false":
			lx.cur = token{kind: tokFalse, lit: s}
		case "nan":
			lx.cur = token{kind: tokNan, lit: s}
		case "inf":
			lx.cur = token{kind: tokInf, lit: s}
		default:
			lx.fail("unknown identifier %q", s)
		}
		return
	}
	// numbers, including a leading minus (also -inf)
	if isDigit(b) || b == '-' {
		if b == '-' && !lx.peekIsDigit() {
			// only -inf is a valid non-numeric continuation
			if hasPrefixAt(lx.src, lx.off+1, "inf") && !followedByIdent(lx.src, lx.off+4) {
				lx.off += 4
				lx.cur = token{kind: tokInf, lit: "-inf"}
				return
			}
			lx.fail("unexpected char %q", b)
			return
		}
		lx.scanNumber()
		return
	}
	// strings
	if b == '"' {
		s, n, err := scanString(lx.src[lx.off:])
		if err != nil {
			lx.fail("string: %v", err)
			return
		}
		lx.cur = token{kind: tokString, lit: s}
		lx.off += n
		return
	}
	// single-char tokens
	switch b {
	case ':':
		lx.off++
		lx.cur = token{kind: tokColon, lit: ":"}
	case ',':
		lx.off++
		lx.cur = token{kind: tokComma, lit: ","}
	case '{':
		lx.off++
		lx.cur = token{kind: tokLBrace, lit: "{"}
	case '}':
		lx.off++
		lx.cur = token{kind: tokRBrace, lit: "}"}
	case '[':
		lx.off++
		lx.cur = token{kind: tokLBrack, lit: "["}
	case ']':
		lx.off++
		lx.cur = token{kind: tokRBrack, lit: "]"}
	case '(':
		lx.off++
		lx.cur = token{kind: tokLParen, lit: "("}
	case ')':
		lx.off++
		lx.cur = token{kind: tokRParen, lit: ")"}
	default:
		lx.fail("unexpected char %q", b)
	}
}

// scanNumber consumes an integer or float literal starting at lx.off.
// Decimal and 0x-hex integers may use underscore separators; a fraction
// or exponent part makes the literal a float.
func (lx *lexer) scanNumber() {
	start := lx.off
	if lx.src[lx.off] == '-' {
		lx.off++
	}
	// hex
	if lx.src[lx.off] == '0' && lx.off+1 < len(lx.src) && (lx.src[lx.off+1] == 'x' || lx.src[lx.off+1] == 'X') {
		lx.off += 2
		for lx.off < len(lx.src) && (isHexDigit(lx.src[lx.off]) || lx.src[lx.off] == '_') {
			lx.off++
		}
		lx.cur = token{kind: tokInt, lit: string(lx.src[start:lx.off])}
		return
	}
	isFloat := false
	for lx.off < len(lx.src) && (isDigit(lx.src[lx.off]) || lx.src[lx.off] == '_') {
		lx.off++
	}
	if lx.off < len(lx.src) && lx.src[lx.off] == '.' {
		isFloat = true
		lx.off++
		for lx.off < len(lx.src) && (isDigit(lx.src[lx.off]) || lx.src[lx.off] == '_') {
			lx.off++
		}
	}
	if lx.off < len(lx.src) && (lx.src[lx.off] == 'e' || lx.src[lx.off] == 'E') {
		isFloat = true
		lx.off++
		if lx.off < len(lx.src) && (lx.src[lx.off] == '+' || lx.src[lx.off] == '-') {
			lx.off++
		}
		for lx.off < len(lx.src) && isDigit(lx.src[lx.off]) {
			lx.off++
		}
	}
	lit := string(lx.src[start:lx.off])
	if isFloat {
		lx.cur = token{kind: tokFloat, lit: lit}
	} else {
		lx.cur = token{kind: tokInt, lit: lit}
	}
}

func (lx *lexer) skipSpaceAndComments() {
	for lx.off < len(lx.src) {
		b := lx.src[lx.off]
		if b == ' ' || b == '\t' || b == '\n' || b == '\r' {
			lx.off++
			continue
		}
		// line comments: # or //
		if b == '#' || (b == '/' && lx.off+1 < len(lx.src) && lx.src[lx.off+1] == '/') {
			for lx.off < len(lx.src) && lx.src[lx.off] != '\n' {
				lx.off++
			}
			continue
		}
		// block comments: /* ... */
		if b == '/' && lx.off+1 < len(lx.src) && lx.src[lx.off+1] == '*' {
			lx.off += 2
			for lx.off+1 < len(lx.src) && !(lx.src[lx.off] == '*' && lx.src[lx.off+1] == '/') {
				lx.off++
			}
			if lx.off+1 < len(lx.src) {
				lx.off += 2
			}
			continue
		}
		break
	}
}

func (lx *lexer) fail(format string, args ...any) {
	lx.cur = token{kind: tokErr, lit: fmt.Sprintf(format, args...)}
	lx.off = len(lx.src)
}

func isIdentStart(b byte) bool { return b == '_' || unicode.IsLetter(rune(b)) }
func isIdentPart(b byte) bool  { return isIdentStart(b) || unicode.IsDigit(rune(b)) }
func isDigit(b byte) bool      { return '0' <= b && b <= '9' }
func isHexDigit(b byte) bool {
	return ('0' <= b && b <= '9') || ('a' <= b && b <= 'f') || ('A' <= b && b <= 'F')
}

func (lx *lexer) peekIsDigit() bool {
	return lx.off+1 < len(lx.src) && isDigit(lx.src[lx.off+1])
}

func hasPrefixAt(src []byte, at int, s string) bool {
	return at+len(s) <= len(src) && string(src[at:at+len(s)]) == s
}

func followedByIdent(src []byte, at int) bool {
	return at < len(src) && isIdentPart(src[at])
}

func scanString(src []byte) (string, int, error) {
	// src begins with '"'
	i := 1
	for i < len(src) {
		c := src[i]
		if c == '"' {
			i++
			unq, err := strconv.Unquote(string(src[:i]))
			return unq, i, err
		}
		if c == '\\' {
			i += 2
			if i > len(src) {
				return "", 0, fmt.Errorf("unterminated escape")
			}
			continue
		}
		if c < utf8.RuneSelf {
			i++
		} else {
			_, size := utf8.DecodeRune(src[i:])
			if size <= 0 {
				return "", 0, fmt.Errorf("invalid utf-8")
			}
			i += size
		}
	}
	return "", 0, fmt.Errorf("unterminated string")
}
