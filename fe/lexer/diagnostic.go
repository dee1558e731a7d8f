package lexer

import (
	"errors"
	"fmt"

	"github.com/dhamidi/fepc/fe/normalize"
	"github.com/dhamidi/fepc/fe/token"
)

type Severity int

const (
	SeverityError Severity = iota
	SeverityFatal
)

func (s Severity) String() string {
	if s == SeverityFatal {
		return "fatal"
	}
	return "error"
}

// Diagnostic is a recorded, recoverable tokenizer error. Context is the
// source line Range starts on.
type Diagnostic struct {
	Kind        ErrorKind
	Range       token.Span
	Message     string
	Suggestions []string
	Severity    Severity
	Context     string
}

func (d Diagnostic) Error() string {
	return fmt.Sprintf("%s: %s", d.Range.Start, d.Message)
}

type Result struct {
	Tokens      []token.Token
	Diagnostics []Diagnostic
}

func (r Result) HasErrors() bool {
	return len(r.Diagnostics) > 0
}

// Diagnose tokenizes text without stopping at errors. Each error is
// recorded as a diagnostic and scanning resumes past it: one rune for an
// unexpected character, the rest of the line for an unterminated
// string, the rest of the input for an unterminated comment. Malformed
// escapes are recorded individually while the string keeps scanning.
// The token sequence always ends with EOF.
func Diagnose(text string, opts ...Option) Result {
	src := []rune(text)
	var res Result
	base := 0
	record := func(e *Error) {
		res.Diagnostics = append(res.Diagnostics, newDiagnostic(src, base, e))
	}

	l := newLexer(src, append(opts[:len(opts):len(opts)], withEscapeHandler(record)))
	base = l.pos.Offset
	for {
		tok, err := l.NextToken()
		if err != nil {
			var lexErr *Error
			if !errors.As(err, &lexErr) {
				// Not a scanning error; nothing to resume from.
				res.Diagnostics = append(res.Diagnostics, Diagnostic{
					Range:    token.Span{Start: l.pos, End: l.pos},
					Message:  err.Error(),
					Severity: SeverityFatal,
				})
				res.Tokens = append(res.Tokens, token.Token{Kind: token.TokenEOF, Pos: l.pos})
				return res
			}
			record(lexErr)
			l.Skip(lexErr)
			continue
		}
		res.Tokens = append(res.Tokens, tok)
		if tok.Kind == token.TokenEOF {
			return res
		}
	}
}

// TokenizeStrict runs the diagnostic tokenizer and fails on its first
// diagnostic.
func TokenizeStrict(text string, opts ...Option) ([]token.Token, error) {
	res := Diagnose(text, opts...)
	if len(res.Diagnostics) > 0 {
		return nil, res.Diagnostics[0]
	}
	return res.Tokens, nil
}

func newDiagnostic(src []rune, base int, e *Error) Diagnostic {
	i := e.Span.Start.Offset - base
	d := Diagnostic{
		Kind:     e.Kind,
		Range:    e.Span,
		Message:  e.Message,
		Severity: SeverityError,
		Context:  lineAt(src, i),
	}
	if e.Kind == ErrUnexpectedChar {
		d.Suggestions = charSuggestions(src, i)
	}
	if e.Hint != "" {
		d.Suggestions = append(d.Suggestions, e.Hint)
	}
	return d
}

func charSuggestions(src []rune, i int) []string {
	if i < 0 || i >= len(src) {
		return nil
	}
	r := src[i]
	switch {
	case normalize.IsBidiControl(r):
		return []string{fmt.Sprintf("remove the bidirectional control character U+%04X", r)}
	case r == '"':
		return []string{"string literals are delimited by '"}
	}
	if s, ok := normalize.Suggest(r); ok {
		return []string{fmt.Sprintf("replace %q with %q", r, s)}
	}
	return nil
}

func lineAt(src []rune, i int) string {
	if i < 0 {
		i = 0
	}
	if i > len(src) {
		i = len(src)
	}
	start := i
	for start > 0 && src[start-1] != '\n' {
		start--
	}
	end := i
	for end < len(src) && src[end] != '\n' {
		end++
	}
	return string(src[start:end])
}
