package artifact

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/tigen/internal/captable"
	"github.com/thoreinstein/tigen/internal/errors"
)

func TestExtract_Golden(t *testing.T) {
	want := []captable.Entry{
		{Name: "am", Value: ""},
		{Name: "colors", Value: "8"},
		{Name: "sc", Value: "\x1b7"},
	}

	tests := []struct {
		file string
		lang Language
	}{
		{"xterm.h", LanguageC},
		{"xterm.go.golden", LanguageGo},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			src, err := os.ReadFile(filepath.Join("testdata", "golden", tt.file))
			require.NoError(t, err)

			table, lang, err := Extract(src)
			require.NoError(t, err)
			assert.Equal(t, tt.lang, lang)

			entries, err := table.Entries()
			require.NoError(t, err)
			assert.Equal(t, want, entries)
		})
	}
}

func TestExtract_LanguagesAgree(t *testing.T) {
	for _, name := range []string{"xterm", "quotes"} {
		c, err := os.ReadFile(filepath.Join("testdata", "golden", name+".h"))
		require.NoError(t, err)
		g, err := os.ReadFile(filepath.Join("testdata", "golden", name+".go.golden"))
		require.NoError(t, err)

		ct, _, err := Extract(c)
		require.NoError(t, err)
		gt, _, err := Extract(g)
		require.NoError(t, err)

		assert.Equal(t, ct.Bytes(), gt.Bytes(), name)
	}
}

func TestExtract_HandWritten(t *testing.T) {
	src := []byte(`/* hand written */
#include <stddef.h>

const char caps[] =
    "Co\0" "256\0"
    "am\0" "";
`)
	table, lang, err := Extract(src)
	require.NoError(t, err)
	assert.Equal(t, LanguageC, lang)

	v, ok := table.Lookup("Co")
	assert.True(t, ok)
	assert.Equal(t, "256", v)
}

func TestExtract_Errors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantErr error
	}{
		{"empty file", "", ErrNoTable},
		{"no array", "int main(void) { return 0; }\n", ErrNoTable},
		{"unterminated initializer", `static const char t[] = "am\0"`, ErrNoTable},
		{"bad literal", `static const char t[] = "am\400";`, captable.ErrMalformedLiteral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Extract([]byte(tt.src))
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}
