// Package artifact renders a serialized capability table into source code a
// host program can embed, and recovers the table from such a file.
//
// Two languages are built in. The C header holds the literal as produced by
// the serializer:
//
//	#pragma once
//
//	static const char terminfo_capabilities[] = "Co\0" "256\0" ...;
//
// The Go file holds the same bytes, including the trailing NUL of the C
// array, as a quoted string constant. Templates use text/template with the
// slim-sprig function set, and a user template can replace the built-in one.
package artifact
