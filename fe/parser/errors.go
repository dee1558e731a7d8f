package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dhamidi/fepc/fe/lexer"
	"github.com/dhamidi/fepc/fe/token"
)

type ErrorKind int

const (
	ErrUnexpectedEOF ErrorKind = iota
	ErrUnexpectedToken
	ErrExpectedExpression
	ErrExpectedIdentifier
	ErrExpectedType
	ErrExpectedOneOf
	ErrInputTooLarge
	ErrNestingTooDeep
	ErrIdentifierTooLong
	ErrInvalidLiteral
	ErrInvalidCallTarget
)

var errorKindNames = map[ErrorKind]string{
	ErrUnexpectedEOF:      "unexpected-eof",
	ErrUnexpectedToken:    "unexpected-token",
	ErrExpectedExpression: "expected-expression",
	ErrExpectedIdentifier: "expected-identifier",
	ErrExpectedType:       "expected-type",
	ErrExpectedOneOf:      "expected-one-of",
	ErrInputTooLarge:      "input-too-large",
	ErrNestingTooDeep:     "nesting-too-deep",
	ErrIdentifierTooLong:  "identifier-too-long",
	ErrInvalidLiteral:     "invalid-literal",
	ErrInvalidCallTarget:  "invalid-call-target",
}

func (k ErrorKind) String() string {
	if name, ok := errorKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Error is a parse failure at Pos. Got is the offending token and
// Expected lists the token kinds that would have been accepted, when
// the failure is an unmet expectation.
type Error struct {
	Kind     ErrorKind
	Pos      token.Position
	Got      token.Token
	Expected []token.TokenKind
	Message  string
	Err      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Span covers the offending token, or a single position at end of
// input.
func (e *Error) Span() token.Span {
	if e.Got.Kind == token.TokenEOF {
		return token.Span{Start: e.Pos, End: e.Pos}
	}
	return e.Got.Span()
}

// IsIncomplete reports whether err means the input stopped early: more
// text could still turn it into a valid program.
func IsIncomplete(err error) bool {
	var perr *Error
	if errors.As(err, &perr) {
		return perr.Kind == ErrUnexpectedEOF
	}
	var lerr *lexer.Error
	if errors.As(err, &lerr) {
		return lerr.Kind == lexer.ErrUnterminatedComment
	}
	return false
}

func describe(tok token.Token) string {
	switch tok.Kind {
	case token.TokenEOF:
		return "end of input"
	case token.TokenIdent:
		return "identifier " + tok.Lexeme
	case token.TokenInteger, token.TokenReal, token.TokenString, token.TokenChar:
		return tok.Kind.String() + " " + tok.Lexeme
	}
	return fmt.Sprintf("%q", tok.Lexeme)
}

func describeKinds(kinds []token.TokenKind) string {
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.String()
	}
	if len(names) == 1 {
		return names[0]
	}
	return "one of " + strings.Join(names, ", ")
}
