package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedInput matches any MalformedInputError via errors.Is.
	ErrMalformedInput = errors.New("malformed input")
	// ErrUnterminatedCodeBlock matches any UnterminatedCodeBlockError via errors.Is.
	ErrUnterminatedCodeBlock = errors.New("unterminated code block")
	// ErrNotFound is returned by lookups with an unknown index or slug.
	ErrNotFound = errors.New("not found")
)

// MalformedInputError reports an inconsistent heading hierarchy.
type MalformedInputError struct {
	Line   int
	Level  int
	Title  string
	Reason string
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("line %d: malformed heading %q (level %d): %s", e.Line, e.Title, e.Level, e.Reason)
}

func (e *MalformedInputError) Is(target error) bool {
	return target == ErrMalformedInput
}

// UnterminatedCodeBlockError reports a fenced code region with no closing fence.
type UnterminatedCodeBlockError struct {
	Line  int    // Line of the opening fence
	Fence string // The opening fence marker, e.g. "```"
}

func (e *UnterminatedCodeBlockError) Error() string {
	return fmt.Sprintf("line %d: code block opened with %s is never closed", e.Line, e.Fence)
}

func (e *UnterminatedCodeBlockError) Is(target error) bool {
	return target == ErrUnterminatedCodeBlock
}
