// Package compiler runs the whole build of an embedded capability table:
// parse the terminfo source, resolve "use" inheritance, force the override
// capabilities onto the target entry, serialize it and render the artifact.
//
// [Compile] works on readers and returns everything it produced in memory.
// [Run] adds the file handling of the command line tool: "-" for stdin and
// stdout, bounded reads and an atomic write, so a failed run never leaves a
// partial or stale artifact behind.
package compiler
