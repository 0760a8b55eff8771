package fileutil

import (
	"io"
	"os"

	"go.uber.org/multierr"

	"github.com/thoreinstein/tigen/internal/errors"
)

// MaxFileSize is the maximum input size read by tigen (4MB).
// The largest terminfo sources in the wild are a few hundred kilobytes.
const MaxFileSize = 4 * 1024 * 1024

// ErrFileTooLarge indicates that an input exceeded MaxFileSize.
var ErrFileTooLarge = errors.Newf("file exceeds maximum size of %d bytes", MaxFileSize)

// ReadFileWithLimit reads a file up to MaxFileSize.
// It returns ErrFileTooLarge if the file is larger than the limit.
func ReadFileWithLimit(path string) (data []byte, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening file")
	}
	defer func() {
		err = multierr.Append(err, f.Close())
	}()

	// Fail fast when the size is already known to be too large.
	if info, statErr := f.Stat(); statErr == nil && info.Size() > MaxFileSize {
		return nil, ErrFileTooLarge
	}

	return ReadAllWithLimit(f)
}

// ReadAllWithLimit reads r to EOF, stopping with ErrFileTooLarge once more
// than MaxFileSize bytes have been seen. Used for stdin input.
func ReadAllWithLimit(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxFileSize+1))
	if err != nil {
		return nil, errors.Wrap(err, "reading input")
	}

	if len(data) > MaxFileSize {
		return nil, ErrFileTooLarge
	}

	return data, nil
}
