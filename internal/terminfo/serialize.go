package terminfo

import (
	"fmt"
	"strings"
)

// FieldSeparator joins fields into one C literal: it terminates the field
// with an embedded NUL and restarts an adjacent string literal.
const FieldSeparator = `\0" "`

// Field is one serialized capability: its escaped name and value.
type Field struct {
	Name  string
	Value string
}

// Fields returns the escaped name/value pairs of f ordered by name.
// Booleans have an empty value.
func Fields(f *Fragment) []Field {
	caps := f.Sorted()
	fields := make([]Field, 0, len(caps))
	for _, c := range caps {
		fields = append(fields, Field{
			Name:  EscapeC(c.Name()),
			Value: EscapeC(c.Value()),
		})
	}
	return fields
}

// Literal joins fields into the body of a C string literal, without the
// surrounding quotes.
func Literal(fields []Field) string {
	parts := make([]string, 0, 2*len(fields))
	for _, f := range fields {
		parts = append(parts, f.Name, f.Value)
	}
	return strings.Join(parts, FieldSeparator)
}

// EscapeC escapes s for use inside a C string literal. Double quotes gain
// a backslash and control bytes become three-digit octal escapes. An octal
// escape followed by an octal digit is closed with `" "` so the digit
// starts a new adjacent literal. Backslash sequences already present are
// copied verbatim: terminfo and C share them.
func EscapeC(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '"':
			b.WriteString(`\"`)
		case c < 0x20 || c == 0x7f:
			fmt.Fprintf(&b, `\%03o`, c)
			if i+1 < len(s) && s[i+1] >= '0' && s[i+1] <= '7' {
				b.WriteString(`" "`)
			}
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
