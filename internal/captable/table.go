package captable

import (
	"bytes"

	"github.com/thoreinstein/tigen/internal/errors"
)

// ErrTruncated indicates a table whose last name or value lacks its NUL.
var ErrTruncated = errors.New("truncated capability table")

// Entry is one name/value pair of a table.
type Entry struct {
	Name  string `json:"name" yaml:"name" toml:"name"`
	Value string `json:"value" yaml:"value" toml:"value"`
}

// IsBool reports whether the entry carries no value, which is how boolean
// capabilities are stored.
func (e Entry) IsBool() bool { return e.Value == "" }

// Table is a decoded capability table.
type Table struct {
	data []byte
}

// New wraps raw table bytes, including the terminating NUL of the last value.
func New(data []byte) *Table {
	return &Table{data: data}
}

// DecodeLiteral builds a table from the body of a generated C literal, as
// produced by the serializer, without the surrounding quotes.
func DecodeLiteral(body string) (*Table, error) {
	return DecodeQuoted(`"` + body + `"`)
}

// DecodeQuoted builds a table from a sequence of adjacent quoted C literals.
// The terminating NUL a C char array receives is appended.
func DecodeQuoted(src string) (*Table, error) {
	data, err := Unquote(src)
	if err != nil {
		return nil, err
	}
	return New(append(data, 0)), nil
}

// Bytes returns the raw table.
func (t *Table) Bytes() []byte { return t.data }

// Size returns the table size in bytes, the sizeof of the C array.
func (t *Table) Size() int { return len(t.data) }

// Entries decodes every pair in table order.
func (t *Table) Entries() ([]Entry, error) {
	var entries []Entry
	err := t.scan(func(name, value string) bool {
		entries = append(entries, Entry{Name: name, Value: value})
		return true
	})
	return entries, err
}

// Names returns the capability names in table order.
func (t *Table) Names() ([]string, error) {
	var names []string
	err := t.scan(func(name, _ string) bool {
		names = append(names, name)
		return true
	})
	return names, err
}

// Lookup scans the table for name. The scan stops as soon as it passes the
// position name would sort at, so it relies on the table being sorted.
func (t *Table) Lookup(name string) (string, bool) {
	var (
		value string
		found bool
	)
	_ = t.scan(func(n, val string) bool {
		switch {
		case n == name:
			value, found = val, true
			return false
		case n > name:
			return false
		}
		return true
	})
	return value, found
}

// scan walks the pairs in order until fn returns false.
func (t *Table) scan(fn func(name, value string) bool) error {
	p := t.data
	offset := 0
	for len(p) > 0 {
		i := bytes.IndexByte(p, 0)
		if i < 0 {
			return errors.Wrapf(ErrTruncated, "name at offset %d is not terminated", offset)
		}
		name := string(p[:i])

		rest := p[i+1:]
		j := bytes.IndexByte(rest, 0)
		if j < 0 {
			return errors.Wrapf(ErrTruncated, "value of %q is missing", name)
		}
		value := string(rest[:j])

		size := i + 1 + j + 1
		p = p[size:]
		offset += size

		if !fn(name, value) {
			return nil
		}
	}
	return nil
}
