// Package terminfo implements the capability compiler core: the data model
// for terminfo capabilities, the parser for terminfo source fragments, the
// "use" inheritance resolver, the fixed overrides applied to a target entry
// and the serializer producing a sorted, escaped capability literal.
//
// # Source Grammar
//
// Source text is preprocessed line by line: surrounding whitespace is
// trimmed, lines starting with '#' are dropped and the rest are
// concatenated. The result is a sequence of comma-terminated tokens:
//
//	foot|foot terminal emulator,     entry header (NAME|DESCRIPTION,)
//	am,                              boolean capability
//	colors#256,                      integer capability (decimal or 0x hex)
//	bel=^G,                          string capability
//	use=foot+base,                   inheritance from another entry
//
// # Pipeline
//
//	set, err := terminfo.Parse(r)
//	if err != nil {
//	    return err
//	}
//	if err := terminfo.Resolve(set); err != nil {
//	    return err
//	}
//	entry, err := set.Get("foot")
//	if err != nil {
//	    return err
//	}
//	terminfo.DefaultOverrides().Apply(entry, "foot")
//	literal := terminfo.Literal(terminfo.Fields(entry))
//
// All failures are returned as errors wrapping one of the sentinel errors
// of this package so callers can classify them with errors.Is.
package terminfo
