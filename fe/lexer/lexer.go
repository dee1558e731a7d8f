// Package lexer turns FE pseudocode source text into tokens.
//
// The core Lexer fails fast: NextToken returns an *Error and leaves the
// input unconsumed. Diagnose, Incremental, Stream and TokenizeParallel
// are alternate entry points over the same scanning rules.
package lexer

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"

	"github.com/dhamidi/fepc/fe/token"
)

type Option func(*Lexer)

// WithFile records path in every token position.
func WithFile(path string) Option {
	return func(l *Lexer) {
		l.pos.File = path
	}
}

// WithTrivia makes the lexer emit whitespace, newline and comment tokens.
func WithTrivia() Option {
	return func(l *Lexer) {
		l.trivia = true
	}
}

// WithStart sets the position of the first rune. Used to scan a slice
// of a larger document.
func WithStart(pos token.Position) Option {
	return func(l *Lexer) {
		l.pos = pos
	}
}

// withEscapeHandler lets string scanning continue past malformed escape
// sequences, passing each one to fn.
func withEscapeHandler(fn func(*Error)) Option {
	return func(l *Lexer) {
		l.onEscape = fn
	}
}

type Lexer struct {
	src      []rune
	i        int
	pos      token.Position
	trivia   bool
	onEscape func(*Error)
}

func New(text string, opts ...Option) *Lexer {
	return newLexer([]rune(text), opts)
}

func newLexer(src []rune, opts []Option) *Lexer {
	l := &Lexer{
		src: src,
		pos: token.Start(""),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Lexer) Position() token.Position {
	return l.pos
}

func (l *Lexer) peek() rune {
	if l.i >= len(l.src) {
		return 0
	}
	return l.src[l.i]
}

func (l *Lexer) peekN(n int) rune {
	if l.i+n >= len(l.src) {
		return 0
	}
	return l.src[l.i+n]
}

func (l *Lexer) atEOF() bool {
	return l.i >= len(l.src)
}

func (l *Lexer) advance(n int) {
	for k := 0; k < n && l.i < len(l.src); k++ {
		l.pos = l.pos.Advance(l.src[l.i])
		l.i++
	}
}

// posAfter is the position n runes past the current one.
func (l *Lexer) posAfter(n int) token.Position {
	p := l.pos
	for k := 0; k < n && l.i+k < len(l.src); k++ {
		p = p.Advance(l.src[l.i+k])
	}
	return p
}

func (l *Lexer) span(n int) token.Span {
	return token.Span{Start: l.pos, End: l.posAfter(n)}
}

func (l *Lexer) emit(kind token.TokenKind, n int) token.Token {
	tok := token.Token{Kind: kind, Lexeme: string(l.src[l.i : l.i+n]), Pos: l.pos}
	l.advance(n)
	return tok
}

// Skip resumes scanning after err, applying the recovery its kind
// prescribes.
func (l *Lexer) Skip(err *Error) {
	if n := err.Span.End.Offset - l.pos.Offset; n > 0 {
		l.advance(n)
	}
}

// NextToken scans the next token. Trivia is skipped unless the lexer
// was built WithTrivia. At end of input it returns an EOF token, and
// keeps returning it.
func (l *Lexer) NextToken() (token.Token, error) {
	for {
		tok, err := l.scan()
		if err != nil {
			return token.Token{}, err
		}
		if tok.Kind.IsTrivia() && !l.trivia {
			continue
		}
		return tok, nil
	}
}

func (l *Lexer) scan() (token.Token, error) {
	if l.atEOF() {
		return token.Token{Kind: token.TokenEOF, Pos: l.pos}, nil
	}

	ch := l.peek()

	if ch == '\n' {
		return l.emit(token.TokenNewline, 1), nil
	}
	if isSpace(ch) {
		n := 0
		for l.i+n < len(l.src) && isSpace(l.src[l.i+n]) {
			n++
		}
		return l.emit(token.TokenWhitespace, n), nil
	}

	if ch == '/' && l.peekN(1) == '/' {
		n := 2
		for l.i+n < len(l.src) && l.src[l.i+n] != '\n' {
			n++
		}
		return l.emit(token.TokenComment, n), nil
	}
	if ch == '/' && l.peekN(1) == '*' {
		return l.scanBlockComment()
	}

	if ch == '\'' {
		return l.scanString()
	}

	if isDigit(ch) || (ch == '.' && isDigit(l.peekN(1))) {
		return l.scanNumber()
	}

	if isIdentStart(ch) {
		return l.scanIdentOrKeyword(), nil
	}

	if op, n, ok := token.MatchOperator(l.src[l.i:]); ok {
		return l.emit(op.Kind, n), nil
	}

	return token.Token{}, &Error{
		Kind:    ErrUnexpectedChar,
		Span:    l.span(1),
		Message: fmt.Sprintf("unexpected character %q", ch),
	}
}

func (l *Lexer) scanBlockComment() (token.Token, error) {
	for n := 2; l.i+n < len(l.src); n++ {
		if l.src[l.i+n] == '*' && l.i+n+1 < len(l.src) && l.src[l.i+n+1] == '/' {
			return l.emit(token.TokenComment, n+2), nil
		}
	}
	return token.Token{}, &Error{
		Kind:    ErrUnterminatedComment,
		Span:    l.span(len(l.src) - l.i),
		Message: "unterminated block comment",
		Hint:    "close the comment with */",
	}
}

func (l *Lexer) scanIdentOrKeyword() token.Token {
	if kw, n, ok := token.MatchKeyword(l.src[l.i:], isIdentPart); ok {
		return l.emit(kw.Kind, n)
	}
	n := 1
	for l.i+n < len(l.src) && isIdentPart(l.src[l.i+n]) {
		n++
	}
	return l.emit(token.TokenIdent, n)
}

func (l *Lexer) scanNumber() (token.Token, error) {
	n := numberExtent(l.src[l.i:])
	kind, msg, hint := classifyNumber(l.src[l.i : l.i+n])
	if msg != "" {
		return token.Token{}, &Error{
			Kind:    ErrInvalidNumber,
			Span:    l.span(n),
			Message: fmt.Sprintf("invalid number %s: %s", string(l.src[l.i:l.i+n]), msg),
			Hint:    hint,
		}
	}
	return l.emit(kind, n), nil
}

// scanString scans a quoted literal. Strings end at the closing quote
// and never span lines.
func (l *Lexer) scanString() (token.Token, error) {
	var value strings.Builder
	n := 1
	for {
		if l.i+n >= len(l.src) || l.src[l.i+n] == '\n' {
			return token.Token{}, &Error{
				Kind:    ErrUnterminatedString,
				Span:    l.span(n),
				Message: "unterminated string literal",
				Hint:    "close the string with '",
			}
		}
		r := l.src[l.i+n]
		if r == '\'' {
			n++
			break
		}
		if r != '\\' {
			value.WriteRune(r)
			n++
			continue
		}
		decoded, m, msg := decodeEscape(l.src[l.i+n+1:])
		if msg != "" {
			err := &Error{
				Kind:    ErrInvalidEscape,
				Span:    token.Span{Start: l.posAfter(n), End: l.posAfter(n + 1 + m)},
				Message: msg,
				Hint:    EscapeHint,
			}
			if l.onEscape == nil {
				return token.Token{}, err
			}
			l.onEscape(err)
		} else {
			value.WriteRune(decoded)
		}
		n += 1 + m
	}

	kind := token.TokenString
	if isCharValue(value.String()) {
		kind = token.TokenChar
	}
	return l.emit(kind, n), nil
}

// isCharValue reports whether a decoded literal is a single character:
// one grapheme cluster made of one scalar value.
func isCharValue(s string) bool {
	return utf8.RuneCountInString(s) == 1 && uniseg.GraphemeClusterCount(s) == 1
}

// Tokenize scans text into tokens ending with exactly one EOF token.
// Trivia is dropped unless WithTrivia is given.
func Tokenize(text string, opts ...Option) ([]token.Token, error) {
	return New(text, opts...).All()
}

// All scans the remaining input.
func (l *Lexer) All() ([]token.Token, error) {
	var toks []token.Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.Kind == token.TokenEOF {
			return toks, nil
		}
	}
}

func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\r', '\f', '\v', '\u3000':
		return true
	}
	return false
}

func isIdentStart(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_':
		return true
	case r < 0x80:
		return false
	case r >= 0x3041 && r <= 0x3096, r >= 0x309d && r <= 0x309f:
		// hiragana
		return true
	case r >= 0x30a1 && r <= 0x30fa, r >= 0x30fc && r <= 0x30ff:
		// katakana, including the prolonged sound mark
		return true
	case r >= 0xff66 && r <= 0xff9f:
		// half-width katakana
		return true
	case r == '々', r == '〆', r == '〇':
		return true
	}
	return unicode.Is(unicode.Han, r)
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || isDigit(r) || r == '\u3099' || r == '\u309a'
}

// IsIdentifier reports whether s is a complete identifier that is not a
// keyword.
func IsIdentifier(s string) bool {
	for i, r := range s {
		if i == 0 && !isIdentStart(r) || i > 0 && !isIdentPart(r) {
			return false
		}
	}
	return s != "" && token.LookupKeyword(s) == token.TokenIdent
}
