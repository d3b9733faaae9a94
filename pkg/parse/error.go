package parse

import (
	"fmt"

	"github.com/matzehuels/regexrail/pkg/errors"
)

// Error describes a syntax error at a rune offset of the pattern.
type Error struct {
	Pos  int
	Msg  string
	Code errors.Code
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at position %d", e.Msg, e.Pos)
}

func (p *parser) errorAt(pos int, format string, args ...any) *Error {
	return &Error{Pos: pos, Msg: fmt.Sprintf(format, args...), Code: errors.ErrCodeInvalidPattern}
}

func (p *parser) errorf(format string, args ...any) *Error {
	return p.errorAt(p.pos, format, args...)
}
