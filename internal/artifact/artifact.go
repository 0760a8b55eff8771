package artifact

import (
	"bytes"
	"embed"
	"strconv"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"

	"github.com/thoreinstein/tigen/internal/captable"
	"github.com/thoreinstein/tigen/internal/errors"
	"github.com/thoreinstein/tigen/internal/terminfo"
)

//go:embed templates/*.tmpl
var builtin embed.FS

// Language selects the generated source language.
type Language string

const (
	// LanguageC renders a C header with a char array.
	LanguageC Language = "c"
	// LanguageGo renders a Go file with a string constant.
	LanguageGo Language = "go"
)

// ErrUnknownLanguage indicates an artifact language tigen cannot render.
var ErrUnknownLanguage = errors.New("unknown artifact language")

// Languages lists the accepted language names.
func Languages() []string {
	return []string{string(LanguageC), string(LanguageGo)}
}

// ParseLanguage maps a configuration value to a Language. The empty string
// selects C.
func ParseLanguage(s string) (Language, error) {
	switch l := Language(s); l {
	case LanguageC, LanguageGo:
		return l, nil
	case "":
		return LanguageC, nil
	default:
		return "", errors.Wrapf(ErrUnknownLanguage, "%q", s)
	}
}

// Options control rendering.
type Options struct {
	Language Language
	// Constant names the generated array or constant.
	Constant string
	// Guard is the first line of a C header, typically "#pragma once".
	Guard string
	// Package is the Go package clause.
	Package string
	// Template, when set, is template text used instead of the built-in one.
	Template string
}

// Data is what a template sees.
type Data struct {
	Entry    string
	Guard    string
	Package  string
	Constant string
	// Literal is the C literal body, without the surrounding quotes.
	Literal string
	// Quoted is the table bytes, including the final NUL, as a Go string literal.
	Quoted string
	Fields []terminfo.Field
}

// Renderer turns serialized fields into artifact text.
type Renderer struct {
	opts Options
	tmpl *template.Template
}

// NewRenderer parses the template selected by opts.
func NewRenderer(opts Options) (*Renderer, error) {
	lang, err := ParseLanguage(string(opts.Language))
	if err != nil {
		return nil, err
	}
	opts.Language = lang

	text := opts.Template
	if text == "" {
		raw, err := builtin.ReadFile("templates/" + string(lang) + ".tmpl")
		if err != nil {
			return nil, errors.Wrapf(err, "loading %s template", lang)
		}
		text = string(raw)
	}

	tmpl, err := template.New(string(lang)).Funcs(sprig.TxtFuncMap()).Parse(text)
	if err != nil {
		return nil, errors.Wrap(err, "parsing artifact template")
	}

	return &Renderer{opts: opts, tmpl: tmpl}, nil
}

// Language returns the language the renderer was built for.
func (r *Renderer) Language() Language { return r.opts.Language }

// Render produces the artifact for entry from its serialized fields.
func (r *Renderer) Render(entry string, fields []terminfo.Field) ([]byte, error) {
	literal := terminfo.Literal(fields)

	table, err := captable.DecodeLiteral(literal)
	if err != nil {
		return nil, errors.Wrap(err, "decoding generated literal")
	}

	data := Data{
		Entry:    entry,
		Guard:    r.opts.Guard,
		Package:  r.opts.Package,
		Constant: r.opts.Constant,
		Literal:  literal,
		Quoted:   strconv.Quote(string(table.Bytes())),
		Fields:   fields,
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, data); err != nil {
		return nil, errors.Wrap(err, "executing artifact template")
	}
	return buf.Bytes(), nil
}
