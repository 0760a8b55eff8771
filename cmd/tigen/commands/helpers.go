package commands

import (
	"io"
	"io/fs"
	"os"

	"github.com/thoreinstein/tigen/internal/artifact"
	"github.com/thoreinstein/tigen/internal/captable"
	"github.com/thoreinstein/tigen/internal/compiler"
	"github.com/thoreinstein/tigen/internal/errors"
	"github.com/thoreinstein/tigen/internal/logging"
	"github.com/thoreinstein/tigen/internal/terminfo"
	"github.com/thoreinstein/tigen/pkg/fileutil"
)

// ANSI color codes for terminal output.
const (
	colorReset = "\033[0m"
	colorBold  = "\033[1m"
	colorGray  = "\033[90m"
)

// truncate shortens a string to maxLen characters, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

// paint wraps s in an ANSI code when w is a color-capable terminal.
func paint(w io.Writer, code, s string) string {
	if !logging.SupportsColor(w) {
		return s
	}
	return code + s + colorReset
}

// readInput reads path, or in when path is "-".
func readInput(path string, in io.Reader) ([]byte, error) {
	if path == compiler.StdioPath {
		if in == nil {
			in = os.Stdin
		}
		data, err := fileutil.ReadAllWithLimit(in)
		return data, errors.Wrap(err, "reading stdin")
	}
	data, err := fileutil.ReadFileWithLimit(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	return data, nil
}

// classify attaches an exit code and a suggestion to err. Errors that
// already carry an exit code are returned unchanged.
func classify(err error) error {
	if err == nil {
		return nil
	}

	var exitErr *errors.ExitError
	if errors.As(err, &exitErr) {
		return err
	}

	switch {
	case errors.Is(err, terminfo.ErrSyntax):
		return errors.NewUserError(err, "Fix the terminfo source at the reported line and column")
	case errors.Is(err, terminfo.ErrUnknownEntry):
		return errors.NewUserError(err, "Run: tigen list SOURCE to see the entries it defines")
	case errors.Is(err, terminfo.ErrDuplicateEntry),
		errors.Is(err, terminfo.ErrDuplicateCapability):
		return errors.NewUserError(err, "Entry names and the capabilities of one entry must be unique")
	case errors.Is(err, terminfo.ErrUnknownCapability):
		return errors.NewUserError(err, "")
	case errors.Is(err, terminfo.ErrUseCycle):
		return errors.NewUserError(err, "Break the use= cycle, or pass --resolve single-pass")
	case errors.Is(err, artifact.ErrUnknownLanguage):
		return errors.NewUserError(err, "Valid languages: c, go")
	case errors.Is(err, artifact.ErrNoTable),
		errors.Is(err, captable.ErrMalformedLiteral),
		errors.Is(err, captable.ErrTruncated):
		return errors.NewUserError(err, "Pass a file generated by: tigen compile")
	case errors.Is(err, fileutil.ErrFileTooLarge):
		return errors.NewUserError(err, "")
	case errors.Is(err, fs.ErrNotExist):
		return errors.NewUserError(err, "Check that the path exists")
	default:
		return errors.NewSystemError(err, "")
	}
}
