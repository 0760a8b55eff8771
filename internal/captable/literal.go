package captable

import (
	"strings"

	"github.com/thoreinstein/tigen/internal/errors"
)

// ErrMalformedLiteral indicates C string literal syntax that cannot be decoded.
var ErrMalformedLiteral = errors.New("malformed string literal")

// Unquote decodes a sequence of adjacent C string literals, such as
// `"am\0" "1"`, into the bytes they denote. The implicit terminating NUL
// of a char array is not included.
//
// Octal, hex and the simple escapes are decoded. \e and \E decode to ESC as
// GCC and Clang accept them. Any other escaped character stands for itself.
func Unquote(src string) ([]byte, error) {
	out := make([]byte, 0, len(src))
	i := 0
	for {
		for i < len(src) && isSpace(src[i]) {
			i++
		}
		if i == len(src) {
			return out, nil
		}
		if src[i] != '"' {
			return nil, errors.Wrapf(ErrMalformedLiteral, "offset %d: expected '\"', found %q", i, src[i])
		}
		i++

		closed := false
		for i < len(src) && !closed {
			c := src[i]
			switch c {
			case '"':
				closed = true
				i++
			case '\\':
				b, n, err := unescape(src[i:])
				if err != nil {
					return nil, errors.Wrapf(err, "offset %d", i)
				}
				out = append(out, b)
				i += n
			case '\n':
				return nil, errors.Wrapf(ErrMalformedLiteral, "offset %d: newline in literal", i)
			default:
				out = append(out, c)
				i++
			}
		}
		if !closed {
			return nil, errors.Wrap(ErrMalformedLiteral, "unterminated literal")
		}
	}
}

// unescape decodes the escape sequence at the start of s, returning the
// byte and the number of source bytes consumed.
func unescape(s string) (byte, int, error) {
	if len(s) < 2 {
		return 0, 0, errors.Wrap(ErrMalformedLiteral, "dangling backslash")
	}

	switch c := s[1]; c {
	case 'a':
		return '\a', 2, nil
	case 'b':
		return '\b', 2, nil
	case 'e', 'E':
		return 0x1b, 2, nil
	case 'f':
		return '\f', 2, nil
	case 'n':
		return '\n', 2, nil
	case 'r':
		return '\r', 2, nil
	case 't':
		return '\t', 2, nil
	case 'v':
		return '\v', 2, nil
	case '0', '1', '2', '3', '4', '5', '6', '7':
		v, n := 0, 1
		for n < 4 && n < len(s) && s[n] >= '0' && s[n] <= '7' {
			v = v*8 + int(s[n]-'0')
			n++
		}
		if v > 0xff {
			return 0, 0, errors.Wrapf(ErrMalformedLiteral, "octal escape %s out of range", s[:n])
		}
		return byte(v), n, nil
	case 'x':
		v, n := 0, 2
		for n < len(s) && strings.IndexByte("0123456789abcdefABCDEF", s[n]) >= 0 {
			v = v*16 + hexValue(s[n])
			n++
			if v > 0xff {
				return 0, 0, errors.Wrapf(ErrMalformedLiteral, "hex escape %s out of range", s[:n])
			}
		}
		if n == 2 {
			return 0, 0, errors.Wrap(ErrMalformedLiteral, `\x without hex digits`)
		}
		return byte(v), n, nil
	default:
		return c, 2, nil
	}
}

func hexValue(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	default:
		return int(c-'A') + 10
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
