package terminfo

import (
	"bufio"
	"io"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
)

// maxLineSize bounds a single source line.
const maxLineSize = 1 << 20

// Source is a preprocessed source document: trimmed, comment-free lines
// concatenated without separators, plus the information needed to map an
// offset back to its original line.
type Source struct {
	text  string
	spans []lineSpan
}

type lineSpan struct {
	line   int // 1-based line in the original document
	offset int // start of the line in text
}

// Preprocess reads a source document, trims every line, drops lines
// starting with '#' and concatenates the remainder.
func Preprocess(r io.Reader) (*Source, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var (
		b     strings.Builder
		spans []lineSpan
		line  int
	)
	for scanner.Scan() {
		line++
		l := strings.TrimSpace(scanner.Text())
		if l == "" || strings.HasPrefix(l, "#") {
			continue
		}
		spans = append(spans, lineSpan{line: line, offset: b.Len()})
		b.WriteString(l)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading source")
	}

	return &Source{text: b.String(), spans: spans}, nil
}

// NewSource preprocesses an in-memory document.
func NewSource(text string) *Source {
	// Reading from a strings.Reader cannot fail below maxLineSize.
	src, err := Preprocess(strings.NewReader(text))
	if err != nil {
		return &Source{text: strings.TrimSpace(text)}
	}
	return src
}

// Text returns the concatenated text.
func (s *Source) Text() string { return s.text }

// Position maps an offset in Text back to the original document.
func (s *Source) Position(offset int) Position {
	if len(s.spans) == 0 {
		return Position{Line: 1, Column: offset + 1, Offset: offset}
	}
	i := sort.Search(len(s.spans), func(i int) bool {
		return s.spans[i].offset > offset
	}) - 1
	if i < 0 {
		i = 0
	}
	span := s.spans[i]
	return Position{
		Line:   span.line,
		Column: offset - span.offset + 1,
		Offset: offset,
	}
}
