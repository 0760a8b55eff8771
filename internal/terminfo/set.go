package terminfo

import (
	"github.com/cockroachdb/errors"
)

// Set holds every fragment of one source document keyed by name. It
// remembers declaration order, which drives single-pass "use" resolution.
type Set struct {
	fragments map[string]*Fragment
	order     []string
}

// NewSet returns an empty set.
func NewSet() *Set {
	return &Set{fragments: make(map[string]*Fragment)}
}

// Add registers f. It fails with ErrDuplicateEntry if the name is taken.
func (s *Set) Add(f *Fragment) error {
	if _, ok := s.fragments[f.name]; ok {
		return errors.Wrapf(ErrDuplicateEntry, "entry %q", f.name)
	}
	s.fragments[f.name] = f
	s.order = append(s.order, f.name)
	return nil
}

// Get returns the named fragment or an error wrapping ErrUnknownEntry.
func (s *Set) Get(name string) (*Fragment, error) {
	f, ok := s.fragments[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownEntry, "entry %q", name)
	}
	return f, nil
}

// Lookup returns the named fragment and whether it exists.
func (s *Set) Lookup(name string) (*Fragment, bool) {
	f, ok := s.fragments[name]
	return f, ok
}

// Len returns the number of fragments.
func (s *Set) Len() int { return len(s.order) }

// Names returns fragment names in declaration order.
func (s *Set) Names() []string {
	return append([]string(nil), s.order...)
}

// Fragments returns the fragments in declaration order.
func (s *Set) Fragments() []*Fragment {
	out := make([]*Fragment, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.fragments[name])
	}
	return out
}
