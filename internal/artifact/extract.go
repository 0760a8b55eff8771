package artifact

import (
	"bytes"
	"regexp"
	"strconv"

	"github.com/thoreinstein/tigen/internal/captable"
	"github.com/thoreinstein/tigen/internal/errors"
)

// ErrNoTable indicates a file without a recognizable capability table.
var ErrNoTable = errors.New("no capability table found")

var (
	cArrayPattern  = regexp.MustCompile(`(?m)^\s*(?:static\s+)?(?:const\s+)?char\s+[A-Za-z_]\w*\s*\[\s*\]\s*=\s*`)
	goConstPattern = regexp.MustCompile(`(?m)^\s*const\s+[A-Za-z_]\w*\s*=\s*("(?:[^"\\\n]|\\.)*")\s*$`)
)

// Extract recovers the capability table from a generated C header or Go file.
func Extract(src []byte) (*captable.Table, Language, error) {
	if m := goConstPattern.FindSubmatch(src); m != nil {
		s, err := strconv.Unquote(string(m[1]))
		if err != nil {
			return nil, LanguageGo, errors.Wrap(err, "unquoting Go constant")
		}
		return captable.New([]byte(s)), LanguageGo, nil
	}

	loc := cArrayPattern.FindIndex(src)
	if loc == nil {
		return nil, "", ErrNoTable
	}

	rest := src[loc[1]:]
	end := bytes.LastIndexByte(rest, ';')
	if end < 0 {
		return nil, LanguageC, errors.Wrap(ErrNoTable, "array initializer is not terminated by ';'")
	}

	table, err := captable.DecodeQuoted(string(rest[:end]))
	if err != nil {
		return nil, LanguageC, errors.Wrap(err, "decoding C literal")
	}
	return table, LanguageC, nil
}
