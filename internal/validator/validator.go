package validator

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
)

// Severity represents the impact of a validation issue.
type Severity int

const (
	// SeverityError indicates a blocking validation failure.
	SeverityError Severity = iota
	// SeverityWarning indicates a recommended but non-blocking issue.
	SeverityWarning
	// SeverityInfo indicates an informational note.
	SeverityInfo
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	default:
		return "unknown"
	}
}

// MarshalText encodes the severity by name in JSON and YAML reports.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a severity name.
func (s *Severity) UnmarshalText(text []byte) error {
	switch string(text) {
	case "error":
		*s = SeverityError
	case "warning":
		*s = SeverityWarning
	case "info":
		*s = SeverityInfo
	default:
		return errors.Newf("unknown severity %q", text)
	}
	return nil
}

// Issue represents a single validation problem.
type Issue struct {
	Severity Severity          `json:"severity" yaml:"severity"`
	Field    string            `json:"field,omitempty" yaml:"field,omitempty"`
	Message  string            `json:"message" yaml:"message"`
	Value    any               `json:"value,omitempty" yaml:"value,omitempty"`
	Context  map[string]string `json:"context,omitempty" yaml:"context,omitempty"`
}

// Error implements the error interface.
func (i Issue) Error() string {
	var sb strings.Builder
	sb.WriteString(i.Severity.String())
	sb.WriteString(": ")
	if i.Field != "" {
		sb.WriteString("field \"")
		sb.WriteString(i.Field)
		sb.WriteString("\": ")
	}
	sb.WriteString(i.Message)
	if i.Value != nil {
		fmt.Fprintf(&sb, " (got %v)", i.Value)
	}
	return sb.String()
}

// With returns a copy of the issue carrying an extra context pair.
func (i Issue) With(key, value string) Issue {
	ctx := make(map[string]string, len(i.Context)+1)
	for k, v := range i.Context {
		ctx[k] = v
	}
	ctx[key] = value
	i.Context = ctx
	return i
}

// Result aggregates validation issues.
type Result struct {
	Issues []Issue `json:"issues" yaml:"issues"`
}

// Add appends an issue as is.
func (r *Result) Add(i Issue) {
	r.Issues = append(r.Issues, i)
}

// AddError adds an error issue to the result.
func (r *Result) AddError(field, message string, value any) {
	r.Add(Issue{Severity: SeverityError, Field: field, Message: message, Value: value})
}

// AddWarning adds a warning issue to the result.
func (r *Result) AddWarning(field, message string, value any) {
	r.Add(Issue{Severity: SeverityWarning, Field: field, Message: message, Value: value})
}

// AddInfo adds an info issue to the result.
func (r *Result) AddInfo(field, message string, value any) {
	r.Add(Issue{Severity: SeverityInfo, Field: field, Message: message, Value: value})
}

// HasErrors returns true if any issue has SeverityError.
func (r *Result) HasErrors() bool {
	return len(r.bySeverity(SeverityError)) > 0
}

// HasWarnings returns true if any issue has SeverityWarning.
func (r *Result) HasWarnings() bool {
	return len(r.bySeverity(SeverityWarning)) > 0
}

// Errors returns all issues with SeverityError.
func (r *Result) Errors() []Issue {
	return r.bySeverity(SeverityError)
}

// Warnings returns all issues with SeverityWarning.
func (r *Result) Warnings() []Issue {
	return r.bySeverity(SeverityWarning)
}

// Infos returns all issues with SeverityInfo.
func (r *Result) Infos() []Issue {
	return r.bySeverity(SeverityInfo)
}

// Err returns nil when the result has no errors, otherwise an error listing them.
func (r *Result) Err() error {
	errs := r.Errors()
	if len(errs) == 0 {
		return nil
	}
	joined := make([]error, len(errs))
	for i, issue := range errs {
		joined[i] = issue
	}
	return errors.Join(joined...)
}

func (r *Result) bySeverity(s Severity) []Issue {
	if r == nil {
		return nil
	}
	var res []Issue
	for _, i := range r.Issues {
		if i.Severity == s {
			res = append(res, i)
		}
	}
	return res
}
