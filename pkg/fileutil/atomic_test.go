package fileutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestAtomicWriteFile(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		perm os.FileMode
	}{
		{
			name: "C header",
			data: []byte("#pragma once\n\nstatic const char terminfo_capabilities[] = \"am\\0\" \"1\";\n"),
			perm: 0o644,
		},
		{
			name: "empty data",
			data: []byte{},
			perm: 0o644,
		},
		{
			name: "binary data",
			data: []byte{0x00, 0x1b, 0x5c, 0xFF},
			perm: 0o600,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, "terminfo.h")

			if err := AtomicWriteFile(path, tt.data, tt.perm); err != nil {
				t.Fatalf("AtomicWriteFile() error = %v", err)
			}

			got, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("reading file: %v", err)
			}
			if string(got) != string(tt.data) {
				t.Errorf("content = %q, want %q", got, tt.data)
			}

			info, err := os.Stat(path)
			if err != nil {
				t.Fatalf("stating file: %v", err)
			}
			if gotPerm := info.Mode().Perm(); gotPerm != tt.perm {
				t.Errorf("permissions = %o, want %o", gotPerm, tt.perm)
			}
		})
	}
}

func TestAtomicWriteFile_DirectoryNotExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nonexistent", "subdir", "file.h")

	if err := AtomicWriteFile(path, []byte("data"), 0o600); err == nil {
		t.Error("AtomicWriteFile() expected error for nonexistent directory")
	}
}

func TestAtomicWriteFile_OverwriteExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "existing.h")

	if err := os.WriteFile(path, []byte("original content\n"), 0o600); err != nil {
		t.Fatalf("creating original file: %v", err)
	}

	newContent := []byte("new content\n")
	if err := AtomicWriteFile(path, newContent, 0o600); err != nil {
		t.Fatalf("AtomicWriteFile() error = %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading file: %v", err)
	}
	if string(got) != string(newContent) {
		t.Errorf("content = %q, want %q", got, newContent)
	}
}

func TestAtomicWriteFile_NoTempFileLeft(t *testing.T) {
	dir := t.TempDir()

	if err := AtomicWriteFile(filepath.Join(dir, "ok.h"), []byte("x"), 0o644); err != nil {
		t.Fatalf("AtomicWriteFile() error = %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("reading directory: %v", err)
	}
	for _, entry := range entries {
		if filepath.Ext(entry.Name()) == ".tmp" {
			t.Errorf("temp file left behind: %s", entry.Name())
		}
	}
}

func TestAtomicWriteYAML(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		wantYAML string
		wantErr  bool
	}{
		{
			name: "struct with tags",
			value: struct {
				Colors   int    `yaml:"colors"`
				Language string `yaml:"language"`
			}{Colors: 256, Language: "c"},
			wantYAML: "colors: 256\nlanguage: c\n",
		},
		{
			name:     "map",
			value:    map[string]int{"rgb_bits": 8},
			wantYAML: "rgb_bits: 8\n",
		},
		{
			name:    "unmarshalable channel",
			value:   make(chan int),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")

			err := AtomicWriteYAML(path, tt.value, 0o600)
			if (err != nil) != tt.wantErr {
				t.Fatalf("AtomicWriteYAML() error = %v, wantErr %v", err, tt.wantErr)
			}

			if tt.wantErr {
				if _, err := os.Stat(path); err == nil {
					t.Error("file should not exist after marshal error")
				}
				if !strings.Contains(err.Error(), "marshaling YAML") {
					t.Errorf("error = %q, want marshaling YAML context", err)
				}
				return
			}

			got, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("reading file: %v", err)
			}
			if string(got) != tt.wantYAML {
				t.Errorf("content = %q, want %q", got, tt.wantYAML)
			}
		})
	}
}
