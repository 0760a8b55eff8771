package terminfo

import (
	"strconv"
	"strings"
)

// Kind is the value type of a capability.
type Kind uint8

const (
	// KindBool is a presence-only capability.
	KindBool Kind = iota
	// KindInt is a numeric capability.
	KindInt
	// KindString is a string capability.
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindString:
		return "string"
	default:
		return "unknown"
	}
}

// esc is the control byte terminfo spells as \E.
const esc = "\x1b"

// Capability is one named, immutable terminal attribute. Exactly one of the
// value fields is meaningful, selected by Kind.
type Capability struct {
	name string
	kind Kind
	num  int64
	str  string
}

// NewBool returns a presence-only capability.
func NewBool(name string) Capability {
	return Capability{name: name, kind: KindBool}
}

// NewInt returns a numeric capability.
func NewInt(name string, value int64) Capability {
	return Capability{name: name, kind: KindInt, num: value}
}

// NewString returns a string capability with value normalized for output.
//
// Without a '%' the value is not parameterized and every \E becomes a real
// ESC byte. With a '%' the \E is doubled instead, so the generated literal
// keeps the two-character escape for the parameter interpreter. An escaped
// colon is always unescaped.
func NewString(name, value string) Capability {
	if !strings.Contains(value, "%") {
		value = strings.ReplaceAll(value, `\E`, esc)
	} else {
		value = strings.ReplaceAll(value, `\E`, `\\E`)
	}
	value = strings.ReplaceAll(value, `\:`, ":")
	return Capability{name: name, kind: KindString, str: value}
}

// Name returns the capability name.
func (c Capability) Name() string { return c.name }

// Kind returns the value type.
func (c Capability) Kind() Kind { return c.kind }

// Int returns the numeric value. It is zero unless Kind is KindInt.
func (c Capability) Int() int64 { return c.num }

// Text returns the normalized string value. It is empty unless Kind is KindString.
func (c Capability) Text() string { return c.str }

// Value returns the textual value field written to the capability table:
// empty for booleans, decimal for numbers and the normalized text for strings.
func (c Capability) Value() string {
	switch c.kind {
	case KindInt:
		return strconv.FormatInt(c.num, 10)
	case KindString:
		return c.str
	default:
		return ""
	}
}

// Compare orders capabilities by name using byte-wise comparison.
func (c Capability) Compare(other Capability) int {
	return strings.Compare(c.name, other.name)
}

// String renders the capability in source syntax, for diagnostics.
func (c Capability) String() string {
	switch c.kind {
	case KindInt:
		return c.name + "#" + strconv.FormatInt(c.num, 10)
	case KindString:
		q := strconv.Quote(c.str)
		return c.name + "=" + q[1:len(q)-1]
	default:
		return c.name
	}
}
