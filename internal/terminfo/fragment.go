package terminfo

import (
	"slices"

	"github.com/cockroachdb/errors"
)

// Fragment is one named terminfo entry and its capabilities.
//
// Capability names are unique within a fragment. Insertion order is
// remembered so "use" expansion copies capabilities in declaration order;
// output order is always imposed by Sorted.
type Fragment struct {
	name        string
	description string
	caps        map[string]Capability
	order       []string
}

// NewFragment returns an empty fragment.
func NewFragment(name, description string) *Fragment {
	return &Fragment{
		name:        name,
		description: description,
		caps:        make(map[string]Capability),
	}
}

// Name returns the entry name.
func (f *Fragment) Name() string { return f.name }

// Description returns the free-text entry description.
func (f *Fragment) Description() string { return f.description }

// Len returns the number of capabilities.
func (f *Fragment) Len() int { return len(f.caps) }

// Get returns the capability with the given name.
func (f *Fragment) Get(name string) (Capability, bool) {
	c, ok := f.caps[name]
	return c, ok
}

// Has reports whether a capability with the given name exists.
func (f *Fragment) Has(name string) bool {
	_, ok := f.caps[name]
	return ok
}

// Add inserts c. It fails with ErrDuplicateCapability if the name is taken.
func (f *Fragment) Add(c Capability) error {
	if _, ok := f.caps[c.name]; ok {
		return errors.Wrapf(ErrDuplicateCapability, "entry %q: capability %q", f.name, c.name)
	}
	f.caps[c.name] = c
	f.order = append(f.order, c.name)
	return nil
}

// Delete removes the named capability. It fails with ErrUnknownCapability
// if the name is absent.
func (f *Fragment) Delete(name string) error {
	if _, ok := f.caps[name]; !ok {
		return errors.Wrapf(ErrUnknownCapability, "entry %q: capability %q", f.name, name)
	}
	delete(f.caps, name)
	f.order = slices.DeleteFunc(f.order, func(n string) bool { return n == name })
	return nil
}

// Set inserts c, replacing any capability with the same name.
func (f *Fragment) Set(c Capability) {
	if _, ok := f.caps[c.name]; !ok {
		f.order = append(f.order, c.name)
	}
	f.caps[c.name] = c
}

// Capabilities returns the capabilities in insertion order.
func (f *Fragment) Capabilities() []Capability {
	caps := make([]Capability, 0, len(f.order))
	for _, name := range f.order {
		caps = append(caps, f.caps[name])
	}
	return caps
}

// Sorted returns the capabilities ordered by name.
func (f *Fragment) Sorted() []Capability {
	caps := f.Capabilities()
	slices.SortFunc(caps, Capability.Compare)
	return caps
}
