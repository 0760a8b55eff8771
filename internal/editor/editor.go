// Package editor launches the user's text editor on a file.
package editor

import (
	"context"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/thoreinstein/tigen/internal/errors"
)

// ErrNoEditor indicates that no editor command could be determined.
var ErrNoEditor = errors.New("no editor configured")

// Streams are the terminal the editor runs on. Nil fields default to the
// process's own stdin, stdout and stderr.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// Open runs the editor on path and waits for it to exit. The editor
// command may carry arguments, as in EDITOR="code --wait".
func Open(ctx context.Context, path string, s Streams) error {
	argv := strings.Fields(Command())
	if len(argv) == 0 {
		return ErrNoEditor
	}

	cmd := exec.CommandContext(ctx, argv[0], append(argv[1:], path)...)
	cmd.Stdin, cmd.Stdout, cmd.Stderr = os.Stdin, os.Stdout, os.Stderr
	if s.In != nil {
		cmd.Stdin = s.In
	}
	if s.Out != nil {
		cmd.Stdout = s.Out
	}
	if s.Err != nil {
		cmd.Stderr = s.Err
	}

	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, "running editor %s", argv[0])
	}
	return nil
}

// Command returns the editor to run: $EDITOR, then $VISUAL, then nano when
// installed, then vi.
func Command() string {
	for _, env := range []string{"EDITOR", "VISUAL"} {
		if v := strings.TrimSpace(os.Getenv(env)); v != "" {
			return v
		}
	}
	if _, err := exec.LookPath("nano"); err == nil {
		return "nano"
	}
	return "vi"
}
