package editor

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommand(t *testing.T) {
	tests := []struct {
		name   string
		editor string
		visual string
		want   string
	}{
		{name: "editor wins", editor: "nvim", visual: "code", want: "nvim"},
		{name: "visual when editor empty", editor: "", visual: "code", want: "code"},
		{name: "blank editor treated as unset", editor: "   ", visual: "hx", want: "hx"},
		{name: "arguments kept", editor: "code --wait", want: "code --wait"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("EDITOR", tt.editor)
			t.Setenv("VISUAL", tt.visual)
			assert.Equal(t, tt.want, Command())
		})
	}
}

func TestCommand_Fallback(t *testing.T) {
	t.Setenv("EDITOR", "")
	t.Setenv("VISUAL", "")

	want := "vi"
	if _, err := exec.LookPath("nano"); err == nil {
		want = "nano"
	}
	assert.Equal(t, want, Command())
}

func TestOpen(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses a shell script editor")
	}

	dir := t.TempDir()
	script := filepath.Join(dir, "fake-editor.sh")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\necho \"$@\"\n"), 0o755))

	t.Setenv("EDITOR", script+" --flag")
	t.Setenv("VISUAL", "")

	target := filepath.Join(dir, "config.yaml")
	var out bytes.Buffer
	err := Open(context.Background(), target, Streams{In: bytes.NewReader(nil), Out: &out, Err: &out})
	require.NoError(t, err)
	assert.Equal(t, "--flag "+target+"\n", out.String())
}

func TestOpen_MissingEditor(t *testing.T) {
	t.Setenv("EDITOR", "tigen-no-such-editor-12345")
	t.Setenv("VISUAL", "")

	var out bytes.Buffer
	err := Open(context.Background(), "config.yaml", Streams{Out: &out, Err: &out})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tigen-no-such-editor-12345")
}
