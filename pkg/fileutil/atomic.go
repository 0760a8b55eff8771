// Package fileutil provides file system helpers for reading terminfo sources
// and writing generated artifacts atomically.
package fileutil

import (
	"os"
	"path/filepath"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/tigen/internal/errors"
)

// DefaultFilePerm is the permission applied to generated artifacts.
const DefaultFilePerm = 0o644

// AtomicWriteFile writes data to a file atomically using a temp file + rename pattern.
// An interrupted or failed write leaves any existing file at path untouched.
//
// The caller is responsible for ensuring the parent directory exists.
func AtomicWriteFile(path string, data []byte, perm os.FileMode) (err error) {
	dir := filepath.Dir(path)

	// Same directory so the rename stays on one filesystem.
	tmp, err := os.CreateTemp(dir, ".tigen-*.tmp")
	if err != nil {
		return errors.Wrap(err, "creating temp file")
	}

	tmpName := tmp.Name()
	renamed := false
	defer func() {
		if !renamed {
			if rmErr := os.Remove(tmpName); rmErr != nil && !os.IsNotExist(rmErr) {
				err = multierr.Append(err, errors.Wrap(rmErr, "removing temp file"))
			}
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return multierr.Append(errors.Wrap(err, "writing temp file"), tmp.Close())
	}

	if err := tmp.Chmod(perm); err != nil {
		return multierr.Append(errors.Wrap(err, "setting file permissions"), tmp.Close())
	}

	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "closing temp file")
	}

	if err := os.Rename(tmpName, path); err != nil {
		return errors.Wrap(err, "renaming temp file")
	}
	renamed = true

	return nil
}

// AtomicWriteYAML writes v as YAML to path atomically.
// The caller is responsible for ensuring the parent directory exists.
func AtomicWriteYAML(path string, v any, perm os.FileMode) (err error) {
	// yaml.Marshal panics on unmarshalable types
	defer func() {
		if r := recover(); r != nil {
			err = errors.Newf("marshaling YAML: %v", r)
		}
	}()

	data, err := yaml.Marshal(v)
	if err != nil {
		return errors.Wrap(err, "marshaling YAML")
	}

	if len(data) > 0 && data[len(data)-1] != '\n' {
		data = append(data, '\n')
	}

	return AtomicWriteFile(path, data, perm)
}
