package terminfo

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// TokenType identifies a grammar alternative.
type TokenType uint8

const (
	TokenEOF    TokenType = iota
	TokenHeader           // NAME|DESCRIPTION,
	TokenBool             // NAME,
	TokenInt              // NAME#VALUE,
	TokenString           // NAME=VALUE,
)

func (t TokenType) String() string {
	switch t {
	case TokenEOF:
		return "EOF"
	case TokenHeader:
		return "HEADER"
	case TokenBool:
		return "BOOL"
	case TokenInt:
		return "INT"
	case TokenString:
		return "STRING"
	default:
		return fmt.Sprintf("TokenType(%d)", t)
	}
}

// Token is one comma-terminated declaration.
type Token struct {
	Type  TokenType
	Name  string
	Value string // description for headers, raw value text otherwise
	Pos   Position
}

// Lexer splits preprocessed source text into tokens.
type Lexer struct {
	src   *Source
	input string
	pos   int
}

// NewLexer returns a lexer over src.
func NewLexer(src *Source) *Lexer {
	return &Lexer{src: src, input: src.Text()}
}

// Tokenize returns every token up to, not including, EOF.
func (l *Lexer) Tokenize() ([]Token, error) {
	var tokens []Token
	for {
		tok, err := l.Next()
		if err != nil {
			return tokens, err
		}
		if tok.Type == TokenEOF {
			return tokens, nil
		}
		tokens = append(tokens, tok)
	}
}

// Next scans the next token. Whitespace between tokens is skipped; any
// other text that does not form a token is a *ParseError.
func (l *Lexer) Next() (Token, error) {
	l.skipSpace()
	start := l.pos
	if start >= len(l.input) {
		return Token{Type: TokenEOF, Pos: l.src.Position(start)}, nil
	}

	for l.pos < len(l.input) {
		r, size := utf8.DecodeRuneInString(l.input[l.pos:])
		if !isEntryNameRune(r) {
			break
		}
		l.pos += size
	}
	name := l.input[start:l.pos]
	if name == "" {
		r, _ := utf8.DecodeRuneInString(l.input[start:])
		return Token{}, l.errorf(start, "unexpected %q", r)
	}

	if l.peek() == '|' {
		return l.scanHeader(start, name)
	}
	if !isCapabilityName(name) {
		return Token{}, l.errorf(start, "invalid capability name %q", name)
	}

	switch l.peek() {
	case ',':
		l.pos++
		return Token{Type: TokenBool, Name: name, Pos: l.src.Position(start)}, nil
	case '#':
		l.pos++
		return l.scanValue(TokenInt, start, name, false)
	case '=':
		l.pos++
		return l.scanValue(TokenString, start, name, true)
	case 0:
		return Token{}, l.errorf(start, "capability %q is not terminated by ','", name)
	default:
		r, _ := utf8.DecodeRuneInString(l.input[l.pos:])
		return Token{}, l.errorf(l.pos, "unexpected %q after %q", r, name)
	}
}

func (l *Lexer) scanHeader(start int, name string) (Token, error) {
	l.pos++ // '|'
	descStart := l.pos
	end := strings.IndexByte(l.input[descStart:], ',')
	if end < 0 {
		return Token{}, l.errorf(start, "entry header %q is not terminated by ','", name)
	}
	if end == 0 {
		return Token{}, l.errorf(start, "entry %q has an empty description", name)
	}
	l.pos = descStart + end + 1
	return Token{
		Type:  TokenHeader,
		Name:  name,
		Value: l.input[descStart : descStart+end],
		Pos:   l.src.Position(start),
	}, nil
}

// scanValue reads up to the terminating comma. In string values a
// backslash escapes the following byte, so "\," does not terminate.
func (l *Lexer) scanValue(typ TokenType, start int, name string, escapes bool) (Token, error) {
	valStart := l.pos
	for l.pos < len(l.input) {
		c := l.input[l.pos]
		if c == ',' {
			tok := Token{
				Type:  typ,
				Name:  name,
				Value: l.input[valStart:l.pos],
				Pos:   l.src.Position(start),
			}
			l.pos++
			return tok, nil
		}
		if escapes && c == '\\' && l.pos+1 < len(l.input) {
			l.pos++
		}
		l.pos++
	}
	return Token{}, l.errorf(start, "capability %q is not terminated by ','", name)
}

func (l *Lexer) skipSpace() {
	for l.pos < len(l.input) {
		r, size := utf8.DecodeRuneInString(l.input[l.pos:])
		if !unicode.IsSpace(r) {
			return
		}
		l.pos += size
	}
}

func (l *Lexer) peek() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

func (l *Lexer) errorf(offset int, format string, args ...any) error {
	return &ParseError{Pos: l.src.Position(offset), Msg: fmt.Sprintf(format, args...)}
}

// isEntryNameRune matches [-+\w@].
func isEntryNameRune(r rune) bool {
	return isWordRune(r) || r == '-' || r == '+' || r == '@'
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// isCapabilityName matches \w+.
func isCapabilityName(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !isWordRune(r) {
			return false
		}
	}
	return true
}
