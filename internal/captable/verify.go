package captable

import (
	"strconv"

	"github.com/thoreinstein/tigen/internal/terminfo"
	"github.com/thoreinstein/tigen/internal/validator"
)

// Verify checks the table structure: every pair is complete, names are
// non-empty and strictly ascending. It also warns when the capabilities
// forced by the compiler are absent or not numeric.
func (t *Table) Verify() *validator.Result {
	result := &validator.Result{}

	entries, err := t.Entries()
	if err != nil {
		result.AddError("", err.Error(), nil)
	}

	seen := make(map[string]string, len(entries))
	for i, e := range entries {
		index := strconv.Itoa(i)
		switch {
		case e.Name == "":
			result.Add(validator.Issue{
				Severity: validator.SeverityError,
				Message:  "empty capability name",
			}.With("index", index))
			continue
		case i > 0 && e.Name == entries[i-1].Name:
			result.Add(validator.Issue{
				Severity: validator.SeverityError,
				Field:    e.Name,
				Message:  "duplicate capability",
			}.With("index", index))
		case i > 0 && e.Name < entries[i-1].Name:
			result.Add(validator.Issue{
				Severity: validator.SeverityError,
				Field:    e.Name,
				Message:  "name sorts before its predecessor",
				Value:    entries[i-1].Name,
			}.With("index", index))
		}
		seen[e.Name] = e.Value
	}

	for _, name := range []string{terminfo.CapColors, terminfo.CapRGB} {
		value, ok := seen[name]
		if !ok {
			result.AddWarning(name, "forced capability is missing", nil)
			continue
		}
		if _, err := strconv.ParseInt(value, 10, 64); err != nil {
			result.AddWarning(name, "value is not a decimal number", value)
		}
	}
	if tn, ok := seen[terminfo.CapTermName]; !ok || tn == "" {
		result.AddWarning(terminfo.CapTermName, "terminal name is missing", nil)
	}

	result.AddInfo("", strconv.Itoa(len(entries))+" capabilities, "+strconv.Itoa(t.Size())+" bytes", nil)

	return result
}
