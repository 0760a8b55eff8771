package terminfo

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Sentinel errors for compile failures.
var (
	// ErrSyntax indicates source text that matches no grammar alternative.
	ErrSyntax = errors.New("syntax error")

	// ErrDuplicateEntry indicates two entries with the same name.
	ErrDuplicateEntry = errors.New("duplicate entry")

	// ErrDuplicateCapability indicates two capabilities with the same name
	// in one entry, either declared or copied in by "use".
	ErrDuplicateCapability = errors.New("duplicate capability")

	// ErrUnknownEntry indicates a reference to an entry that does not exist.
	ErrUnknownEntry = errors.New("unknown entry")

	// ErrUnknownCapability indicates deletion of a capability that is not present.
	ErrUnknownCapability = errors.New("unknown capability")

	// ErrUseCycle indicates entries referencing each other through "use".
	ErrUseCycle = errors.New("use cycle")
)

// Position identifies a location in the original source document.
type Position struct {
	Line   int // 1-based source line
	Column int // 1-based column within the trimmed line
	Offset int // byte offset in the concatenated text
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// ParseError is a syntax error with its source location.
type ParseError struct {
	Pos Position
	Msg string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Pos, ErrSyntax, e.Msg)
}

// Unwrap makes every ParseError match ErrSyntax.
func (e *ParseError) Unwrap() error {
	return ErrSyntax
}
