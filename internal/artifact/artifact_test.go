package artifact

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/tigen/internal/errors"
	"github.com/thoreinstein/tigen/internal/terminfo"
)

func defaultOptions(lang Language) Options {
	return Options{
		Language: lang,
		Constant: "terminfo_capabilities",
		Guard:    "#pragma once",
		Package:  "terminfo",
	}
}

// loadCase parses testdata/cases/<name>.src and returns the fields of entry.
func loadCase(t *testing.T, name, entry string) []terminfo.Field {
	t.Helper()

	f, err := os.Open(filepath.Join("testdata", "cases", name+".src"))
	require.NoError(t, err)
	defer f.Close()

	set, err := terminfo.Parse(f)
	require.NoError(t, err)
	require.NoError(t, terminfo.Resolve(set))

	frag, err := set.Get(entry)
	require.NoError(t, err)
	return terminfo.Fields(frag)
}

func TestRender_Golden(t *testing.T) {
	cases := []struct {
		name  string
		entry string
	}{
		{"xterm", "xterm"},
		{"quotes", "q"},
	}
	langs := []struct {
		lang   Language
		golden string
	}{
		{LanguageC, ".h"},
		{LanguageGo, ".go.golden"},
	}

	for _, tc := range cases {
		for _, l := range langs {
			t.Run(tc.name+"/"+string(l.lang), func(t *testing.T) {
				r, err := NewRenderer(defaultOptions(l.lang))
				require.NoError(t, err)

				got, err := r.Render(tc.entry, loadCase(t, tc.name, tc.entry))
				require.NoError(t, err)

				want, err := os.ReadFile(filepath.Join("testdata", "golden", tc.name+l.golden))
				require.NoError(t, err)
				assert.Equal(t, string(want), string(got))
			})
		}
	}
}

func TestRender_NoGuard(t *testing.T) {
	opts := defaultOptions(LanguageC)
	opts.Guard = "  "
	r, err := NewRenderer(opts)
	require.NoError(t, err)

	got, err := r.Render("t", []terminfo.Field{{Name: "am"}})
	require.NoError(t, err)
	assert.Equal(t, "static const char terminfo_capabilities[] = \"am\\0\" \"\";\n", string(got))
}

func TestRender_UserTemplate(t *testing.T) {
	opts := defaultOptions(LanguageC)
	opts.Template = `/* {{ .Entry | upper }}: {{ len .Fields }} fields */
const char {{ .Constant | default "caps" }}[] = "{{ .Literal }}";
`
	opts.Constant = ""
	r, err := NewRenderer(opts)
	require.NoError(t, err)

	got, err := r.Render("foot", []terminfo.Field{{Name: "Co", Value: "256"}, {Name: "am"}})
	require.NoError(t, err)
	assert.Equal(t, "/* FOOT: 2 fields */\nconst char caps[] = \"Co\\0\" \"256\\0\" \"am\\0\" \"\";\n", string(got))
}

func TestNewRenderer_Errors(t *testing.T) {
	_, err := NewRenderer(Options{Language: "rust"})
	assert.True(t, errors.Is(err, ErrUnknownLanguage), "got %v", err)

	_, err = NewRenderer(Options{Template: "{{ .Missing"})
	assert.ErrorContains(t, err, "parsing artifact template")
}

func TestRender_ExecuteError(t *testing.T) {
	r, err := NewRenderer(Options{Template: `{{ fail "no" }}`})
	require.NoError(t, err)

	_, err = r.Render("t", nil)
	assert.ErrorContains(t, err, "executing artifact template")
}

func TestParseLanguage(t *testing.T) {
	tests := []struct {
		in      string
		want    Language
		wantErr bool
	}{
		{"", LanguageC, false},
		{"c", LanguageC, false},
		{"go", LanguageGo, false},
		{"C", "", true},
		{"rust", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLanguage(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
	assert.Equal(t, []string{"c", "go"}, Languages())
}
