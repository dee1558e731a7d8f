package lexer

import (
	"fmt"

	"github.com/dhamidi/fepc/fe/token"
)

type ErrorKind int

const (
	ErrUnexpectedChar ErrorKind = iota
	ErrUnterminatedString
	ErrUnterminatedComment
	ErrInvalidNumber
	ErrInvalidEscape
)

var errorKindNames = map[ErrorKind]string{
	ErrUnexpectedChar:      "unexpected-character",
	ErrUnterminatedString:  "unterminated-string",
	ErrUnterminatedComment: "unterminated-comment",
	ErrInvalidNumber:       "invalid-number-format",
	ErrInvalidEscape:       "invalid-escape",
}

func (k ErrorKind) String() string {
	if name, ok := errorKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Error is a tokenizer failure. Span covers the offending text; a
// lexer that resumes at Span.End applies the standard recovery for
// the error's kind. Hint, when set, is a concrete fix.
type Error struct {
	Kind    ErrorKind
	Span    token.Span
	Message string
	Hint    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Span.Start, e.Message)
}
