package compiler

import (
	"context"
	"io"

	"github.com/thoreinstein/tigen/internal/artifact"
	"github.com/thoreinstein/tigen/internal/captable"
	"github.com/thoreinstein/tigen/internal/errors"
	"github.com/thoreinstein/tigen/internal/logging"
	"github.com/thoreinstein/tigen/internal/terminfo"
)

// Options select what to compile and how to render it.
type Options struct {
	// SourceEntry names the fragment to serialize.
	SourceEntry string
	// TargetEntry is written as the TN capability.
	TargetEntry string
	Overrides   terminfo.Overrides
	Resolve     terminfo.ResolveMode
	Artifact    artifact.Options
}

// DefaultOptions compiles entry under its own name into a C header.
func DefaultOptions(entry string) Options {
	return Options{
		SourceEntry: entry,
		TargetEntry: entry,
		Overrides:   terminfo.DefaultOverrides(),
		Resolve:     terminfo.ResolveSinglePass,
		Artifact: artifact.Options{
			Language: artifact.LanguageC,
			Constant: "terminfo_capabilities",
			Guard:    "#pragma once",
			Package:  "terminfo",
		},
	}
}

// Result is everything one compilation produced.
type Result struct {
	// Set holds every fragment of the source after resolution.
	Set *terminfo.Set
	// Entry is the selected fragment with overrides applied.
	Entry    *terminfo.Fragment
	Fields   []terminfo.Field
	Literal  string
	Table    *captable.Table
	Artifact []byte
}

// Compile reads terminfo source from r and builds the artifact for
// opts.SourceEntry. Nothing is written anywhere.
func Compile(ctx context.Context, r io.Reader, opts Options) (*Result, error) {
	logger := logging.FromContext(ctx)

	renderer, err := artifact.NewRenderer(opts.Artifact)
	if err != nil {
		return nil, err
	}

	set, err := terminfo.Parse(r)
	if err != nil {
		return nil, errors.Wrap(err, "parsing source")
	}
	logger.Debug("parsed source", "fragments", set.Len())

	resolver := &terminfo.Resolver{Mode: opts.Resolve, Logger: logger}
	if err := resolver.Resolve(set); err != nil {
		return nil, errors.Wrap(err, "resolving use")
	}

	entry, err := set.Get(opts.SourceEntry)
	if err != nil {
		return nil, errors.Wrap(err, "selecting source entry")
	}
	logger.Debug("resolved entry", "entry", entry.Name(), "capabilities", entry.Len())

	target := opts.TargetEntry
	if target == "" {
		target = opts.SourceEntry
	}
	opts.Overrides.Apply(entry, target)

	fields := terminfo.Fields(entry)
	literal := terminfo.Literal(fields)

	table, err := captable.DecodeLiteral(literal)
	if err != nil {
		return nil, errors.Wrap(err, "decoding generated literal")
	}

	out, err := renderer.Render(entry.Name(), fields)
	if err != nil {
		return nil, err
	}
	logger.Debug("rendered artifact",
		"language", renderer.Language(),
		"fields", len(fields),
		"table_bytes", table.Size(),
		"artifact_bytes", len(out))

	return &Result{
		Set:      set,
		Entry:    entry,
		Fields:   fields,
		Literal:  literal,
		Table:    table,
		Artifact: out,
	}, nil
}

// Load parses and resolves a source without selecting an entry. The
// inspection commands use it.
func Load(ctx context.Context, r io.Reader, mode terminfo.ResolveMode) (*terminfo.Set, error) {
	set, err := terminfo.Parse(r)
	if err != nil {
		return nil, errors.Wrap(err, "parsing source")
	}

	resolver := &terminfo.Resolver{Mode: mode, Logger: logging.FromContext(ctx)}
	if err := resolver.Resolve(set); err != nil {
		return nil, errors.Wrap(err, "resolving use")
	}
	return set, nil
}
