package terminfo

import (
	"context"
	"log/slog"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/thoreinstein/tigen/internal/logging"
)

// UseCapability names the inheritance capability.
const UseCapability = "use"

// ResolveMode selects how "use" references are expanded.
type ResolveMode string

const (
	// ResolveSinglePass visits fragments once in declaration order and
	// expands at most one "use" per fragment. A chain resolves transitively
	// only when the referenced fragment was declared earlier.
	ResolveSinglePass ResolveMode = "single-pass"

	// ResolveFixedPoint resolves referenced fragments first, so the result
	// is independent of declaration order. Cycles fail with ErrUseCycle.
	ResolveFixedPoint ResolveMode = "fixed-point"
)

// ResolveModes lists the accepted modes.
func ResolveModes() []string {
	return []string{string(ResolveSinglePass), string(ResolveFixedPoint)}
}

// ParseResolveMode validates a mode name.
func ParseResolveMode(s string) (ResolveMode, error) {
	switch m := ResolveMode(s); m {
	case ResolveSinglePass, ResolveFixedPoint:
		return m, nil
	case "":
		return ResolveSinglePass, nil
	default:
		return "", errors.Newf("unknown resolve mode %q (valid: %s)", s, strings.Join(ResolveModes(), ", "))
	}
}

// Resolver expands "use" capabilities in place.
type Resolver struct {
	Mode   ResolveMode
	Logger *slog.Logger
}

// Resolve expands every fragment of set with the single-pass rule.
func Resolve(set *Set) error {
	return (&Resolver{Mode: ResolveSinglePass}).Resolve(set)
}

// Resolve expands every fragment of set according to r.Mode.
func (r *Resolver) Resolve(set *Set) error {
	switch r.Mode {
	case ResolveFixedPoint:
		return r.resolveFixedPoint(set)
	case ResolveSinglePass, "":
		return r.resolveSinglePass(set)
	default:
		return errors.Newf("unknown resolve mode %q", r.Mode)
	}
}

func (r *Resolver) resolveSinglePass(set *Set) error {
	for _, f := range set.Fragments() {
		if !f.Has(UseCapability) {
			continue
		}
		if err := r.expand(set, f); err != nil {
			return err
		}
	}
	return nil
}

func (r *Resolver) resolveFixedPoint(set *Set) error {
	const (
		visiting = 1
		done     = 2
	)
	state := make(map[string]int, set.Len())

	var visit func(f *Fragment, path []string) error
	visit = func(f *Fragment, path []string) error {
		switch state[f.name] {
		case done:
			return nil
		case visiting:
			return errors.Wrapf(ErrUseCycle, "%s", strings.Join(append(path, f.name), " -> "))
		}
		state[f.name] = visiting
		path = append(path, f.name)

		if use, ok := f.Get(UseCapability); ok {
			ref, err := set.Get(use.Text())
			if err != nil {
				return errors.Wrapf(err, "entry %q: use", f.name)
			}
			if err := visit(ref, path); err != nil {
				return err
			}
			if err := r.expand(set, f); err != nil {
				return err
			}
		}

		state[f.name] = done
		return nil
	}

	for _, f := range set.Fragments() {
		if err := visit(f, nil); err != nil {
			return err
		}
	}
	return nil
}

// expand copies the capabilities of the fragment named by f's "use" into f
// and then removes the "use" capability. Name collisions are fatal.
func (r *Resolver) expand(set *Set, f *Fragment) error {
	use, _ := f.Get(UseCapability)
	ref, err := set.Get(use.Text())
	if err != nil {
		return errors.Wrapf(err, "entry %q: use", f.name)
	}

	r.logger().Log(context.Background(), logging.LevelTrace, "expanding use",
		"entry", f.name, "use", ref.name, "capabilities", ref.Len())

	for _, c := range ref.Capabilities() {
		if err := f.Add(c); err != nil {
			return errors.Wrapf(err, "expanding use=%s", ref.name)
		}
	}
	return f.Delete(UseCapability)
}

func (r *Resolver) logger() *slog.Logger {
	if r.Logger == nil {
		return logging.NewDiscard()
	}
	return r.Logger
}
