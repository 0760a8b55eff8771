package compiler

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/thoreinstein/tigen/internal/errors"
	"github.com/thoreinstein/tigen/internal/logging"
	"github.com/thoreinstein/tigen/internal/paths"
	"github.com/thoreinstein/tigen/pkg/fileutil"
)

// StdioPath stands for stdin as a source and stdout as a target.
const StdioPath = "-"

// Job is one compile invocation with its files.
type Job struct {
	Source string
	Target string
	Options

	// Stdin and Stdout back StdioPath; they default to os.Stdin and os.Stdout.
	Stdin  io.Reader
	Stdout io.Writer
}

// Run compiles job.Source and writes the artifact to job.Target. The target
// is only replaced once the whole artifact has been rendered.
func Run(ctx context.Context, job Job) (*Result, error) {
	logger := logging.FromContext(ctx)

	src, err := job.readSource()
	if err != nil {
		return nil, err
	}

	res, err := Compile(ctx, bytes.NewReader(src), job.Options)
	if err != nil {
		return nil, err
	}

	if err := job.writeTarget(res.Artifact); err != nil {
		return nil, err
	}
	logger.Info("compiled", "entry", job.SourceEntry, "target", job.Target, "capabilities", len(res.Fields))

	return res, nil
}

func (j Job) readSource() ([]byte, error) {
	if j.Source == StdioPath {
		in := j.Stdin
		if in == nil {
			in = os.Stdin
		}
		data, err := fileutil.ReadAllWithLimit(in)
		return data, errors.Wrap(err, "reading source from stdin")
	}

	data, err := fileutil.ReadFileWithLimit(j.Source)
	if err != nil {
		return nil, errors.Wrapf(err, "reading source %s", j.Source)
	}
	return data, nil
}

func (j Job) writeTarget(data []byte) error {
	if j.Target == StdioPath {
		out := j.Stdout
		if out == nil {
			out = os.Stdout
		}
		_, err := out.Write(data)
		return errors.Wrap(err, "writing artifact to stdout")
	}

	if err := paths.EnsureDir(filepath.Dir(j.Target), 0); err != nil {
		return errors.Wrapf(err, "creating directory for %s", j.Target)
	}
	if err := fileutil.AtomicWriteFile(j.Target, data, fileutil.DefaultFilePerm); err != nil {
		return errors.Wrapf(err, "writing artifact %s", j.Target)
	}
	return nil
}
