// Package errors provides error handling conventions for the tigen CLI.
//
// It re-exports the constructors and inspection helpers of
// [github.com/cockroachdb/errors] so callers need a single import, and
// defines an ExitError type for CLI exit code handling together with exit
// code constants following standard Unix conventions.
//
// # Exit Codes
//
//   - ExitSuccess (0): Command completed successfully
//   - ExitUser (1): User-related error (bad source, unknown entry, configuration)
//   - ExitSystem (2): System-related error (I/O, permissions, etc.)
//
// # ExitError
//
// [ExitError] wraps an underlying error with an exit code and optional
// suggestion. It supports unwrapping via [errors.Is] and [errors.As]:
//
//	err := errors.NewUserError(terminfo.ErrUnknownEntry, "Run: tigen list SOURCE")
//	var exitErr *errors.ExitError
//	if errors.As(err, &exitErr) {
//	    os.Exit(exitErr.Code)
//	}
package errors
