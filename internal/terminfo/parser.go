package terminfo

import (
	"io"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// Parse reads a source document and builds the set of fragments it declares.
// "use" references are left unresolved; see Resolve.
func Parse(r io.Reader) (*Set, error) {
	src, err := Preprocess(r)
	if err != nil {
		return nil, err
	}
	return ParseSource(src)
}

// ParseString is Parse over an in-memory document.
func ParseString(text string) (*Set, error) {
	return Parse(strings.NewReader(text))
}

// ParseSource builds the fragment set from preprocessed source.
func ParseSource(src *Source) (*Set, error) {
	lx := NewLexer(src)
	set := NewSet()

	var cur *Fragment
	for {
		tok, err := lx.Next()
		if err != nil {
			return nil, err
		}

		switch tok.Type {
		case TokenEOF:
			return set, nil
		case TokenHeader:
			f := NewFragment(tok.Name, tok.Value)
			if err := set.Add(f); err != nil {
				return nil, errors.Wrapf(err, "%s", tok.Pos)
			}
			cur = f
			continue
		}

		if cur == nil {
			return nil, &ParseError{Pos: tok.Pos, Msg: "capability " + strconv.Quote(tok.Name) + " appears before any entry header"}
		}

		c, err := tok.capability()
		if err != nil {
			return nil, err
		}
		if err := cur.Add(c); err != nil {
			return nil, errors.Wrapf(err, "%s", tok.Pos)
		}
	}
}

// capability converts a capability token into its value.
func (t Token) capability() (Capability, error) {
	switch t.Type {
	case TokenBool:
		return NewBool(t.Name), nil
	case TokenInt:
		n, err := parseNumber(t.Value)
		if err != nil {
			return Capability{}, &ParseError{Pos: t.Pos, Msg: "capability " + strconv.Quote(t.Name) + ": " + err.Error()}
		}
		return NewInt(t.Name, n), nil
	case TokenString:
		return NewString(t.Name, t.Value), nil
	default:
		return Capability{}, &ParseError{Pos: t.Pos, Msg: "unexpected " + t.Type.String() + " token"}
	}
}

// parseNumber accepts decimal digits or 0x followed by hex digits.
func parseNumber(s string) (int64, error) {
	digits, base := s, 10
	if rest, ok := strings.CutPrefix(s, "0x"); ok {
		digits, base = rest, 16
	}
	if digits == "" {
		return 0, errors.Newf("missing digits in %q", s)
	}
	for _, r := range digits {
		if !isDigit(r, base) {
			return 0, errors.Newf("invalid number %q", s)
		}
	}
	n, err := strconv.ParseInt(digits, base, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid number %q", s)
	}
	return n, nil
}

func isDigit(r rune, base int) bool {
	switch {
	case r >= '0' && r <= '9':
		return true
	case base == 16 && (r >= 'a' && r <= 'f' || r >= 'A' && r <= 'F'):
		return true
	default:
		return false
	}
}
