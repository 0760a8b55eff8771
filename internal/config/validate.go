package config

import (
	"fmt"
	"regexp"

	"github.com/thoreinstein/tigen/internal/artifact"
	"github.com/thoreinstein/tigen/internal/errors"
	"github.com/thoreinstein/tigen/internal/terminfo"
)

// Validation errors for configuration fields.
var (
	// ErrVersionTooLow indicates the version field is below the minimum.
	ErrVersionTooLow = errors.New("version must be >= 1")

	// ErrNotPositive indicates a numeric override is zero or negative.
	ErrNotPositive = errors.New("must be positive")

	// ErrInvalidIdentifier indicates a name that cannot appear in generated source.
	ErrInvalidIdentifier = errors.New("invalid identifier")

	// ErrInvalidValue indicates a value outside the accepted set.
	ErrInvalidValue = errors.New("invalid value")
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Validate checks a Config for validity.
// Returns nil if valid, or a slice of validation errors.
func Validate(cfg *Config) []error {
	if cfg == nil {
		return []error{errors.New("config is nil")}
	}

	var errs []error

	if cfg.Version < 1 {
		errs = append(errs, ErrVersionTooLow)
	}

	if cfg.Colors <= 0 {
		errs = append(errs, &FieldError{Field: "colors", Value: cfg.Colors, Err: ErrNotPositive})
	}
	if cfg.RGBBits <= 0 {
		errs = append(errs, &FieldError{Field: "rgb_bits", Value: cfg.RGBBits, Err: ErrNotPositive})
	}

	if _, err := artifact.ParseLanguage(cfg.Language); err != nil {
		errs = append(errs, &FieldError{Field: "language", Value: cfg.Language, Err: ErrInvalidValue})
	}
	if _, err := terminfo.ParseResolveMode(cfg.Resolve); err != nil {
		errs = append(errs, &FieldError{Field: "resolve", Value: cfg.Resolve, Err: ErrInvalidValue})
	}

	if !identifierPattern.MatchString(cfg.Constant) {
		errs = append(errs, &FieldError{Field: "constant", Value: cfg.Constant, Err: ErrInvalidIdentifier})
	}
	if !identifierPattern.MatchString(cfg.Package) {
		errs = append(errs, &FieldError{Field: "package", Value: cfg.Package, Err: ErrInvalidIdentifier})
	}

	if _, err := cfg.Watch.DebounceDelay(); err != nil {
		errs = append(errs, &FieldError{Field: "watch.debounce", Value: cfg.Watch.Debounce, Err: ErrInvalidValue})
	}

	return errs
}

// FieldError represents an error for a specific configuration key.
type FieldError struct {
	Field string
	Value any
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %v: %v", e.Field, e.Err, e.Value)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
