// Package parser turns token sequences into expression and statement
// trees. Expressions use precedence climbing; statements are parsed by
// recursive descent with bounded lookahead. Parsing fails fast: the
// first error is returned and no partial tree is produced.
package parser

import (
	"fmt"
	"unicode/utf8"

	"github.com/dhamidi/fepc/fe/ast"
	"github.com/dhamidi/fepc/fe/token"
)

const (
	DefaultMaxTokens           = 100000
	DefaultMaxNesting          = 100
	DefaultMaxIdentifierLength = 255
	DefaultMaxExprDepth        = 256
)

type Option func(*Parser)

// WithMaxTokens rejects inputs of more than n tokens before parsing
// starts. The end-of-input token is not counted.
func WithMaxTokens(n int) Option {
	return func(p *Parser) {
		p.maxTokens = n
	}
}

// WithMaxNesting limits how deeply if, while, for, function and
// procedure blocks may nest.
func WithMaxNesting(n int) Option {
	return func(p *Parser) {
		p.maxNesting = n
	}
}

func WithMaxIdentifierLength(n int) Option {
	return func(p *Parser) {
		p.maxIdentLen = n
	}
}

// WithMaxExprDepth limits how deeply parentheses, unary operators,
// subscripts, call arguments and array element types may nest.
func WithMaxExprDepth(n int) Option {
	return func(p *Parser) {
		p.maxExprDepth = n
	}
}

// WithLenientArrayTypes accepts "array" without an "of" clause as an
// array of integer.
func WithLenientArrayTypes() Option {
	return func(p *Parser) {
		p.lenientArrays = true
	}
}

type Parser struct {
	maxTokens     int
	maxNesting    int
	maxIdentLen   int
	maxExprDepth  int
	lenientArrays bool

	tokens    []token.Token
	pos       int
	nesting   int
	exprDepth int
}

func newParser(tokens []token.Token, opts []Option) *Parser {
	p := &Parser{
		maxTokens:    DefaultMaxTokens,
		maxNesting:   DefaultMaxNesting,
		maxIdentLen:  DefaultMaxIdentifierLength,
		maxExprDepth: DefaultMaxExprDepth,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.tokens = make([]token.Token, 0, len(tokens)+1)
	for _, tok := range tokens {
		if tok.Kind.IsTrivia() {
			continue
		}
		p.tokens = append(p.tokens, tok)
		if tok.Kind == token.TokenEOF {
			break
		}
	}
	if n := len(p.tokens); n == 0 || p.tokens[n-1].Kind != token.TokenEOF {
		end := token.Start("")
		if n > 0 {
			end = p.tokens[n-1].End()
		}
		p.tokens = append(p.tokens, token.Token{Kind: token.TokenEOF, Pos: end})
	}
	return p
}

// ParseExpression parses tokens as a single expression. Every token up
// to end of input must be consumed.
func ParseExpression(tokens []token.Token, opts ...Option) (ast.Expr, error) {
	p := newParser(tokens, opts)
	if err := p.checkSize(); err != nil {
		return nil, err
	}
	expr, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}
	if !p.check(token.TokenEOF) {
		return nil, p.unexpected(token.TokenEOF)
	}
	return expr, nil
}

// ParseProgram parses tokens as a sequence of statements.
func ParseProgram(tokens []token.Token, opts ...Option) (*ast.Program, error) {
	p := newParser(tokens, opts)
	if err := p.checkSize(); err != nil {
		return nil, err
	}
	prog := &ast.Program{}
	for {
		p.skipSeparators()
		if p.check(token.TokenEOF) {
			break
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		prog.Body = append(prog.Body, stmt)
	}
	return prog, nil
}

func (p *Parser) checkSize() error {
	if p.maxTokens <= 0 || len(p.tokens)-1 <= p.maxTokens {
		return nil
	}
	tok := p.tokens[p.maxTokens]
	return &Error{
		Kind:    ErrInputTooLarge,
		Pos:     tok.Pos,
		Got:     tok,
		Message: fmt.Sprintf("input has %d tokens, limit is %d", len(p.tokens)-1, p.maxTokens),
	}
}

func (p *Parser) peek() token.Token {
	return p.tokens[p.pos]
}

func (p *Parser) peekN(n int) token.Token {
	if p.pos+n >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos+n]
}

func (p *Parser) advance() token.Token {
	tok := p.peek()
	if tok.Kind != token.TokenEOF {
		p.pos++
	}
	return tok
}

func (p *Parser) check(kind token.TokenKind) bool {
	return p.peek().Kind == kind
}

func (p *Parser) match(kinds ...token.TokenKind) bool {
	for _, kind := range kinds {
		if p.check(kind) {
			return true
		}
	}
	return false
}

func (p *Parser) expect(kind token.TokenKind) (token.Token, error) {
	if p.check(kind) {
		return p.advance(), nil
	}
	return token.Token{}, p.unexpected(kind)
}

func (p *Parser) expectIdent() (token.Token, error) {
	tok := p.peek()
	if tok.Kind != token.TokenIdent {
		if tok.Kind == token.TokenEOF {
			return token.Token{}, p.unexpected(token.TokenIdent)
		}
		return token.Token{}, &Error{
			Kind:     ErrExpectedIdentifier,
			Pos:      tok.Pos,
			Got:      tok,
			Expected: []token.TokenKind{token.TokenIdent},
			Message:  "expected identifier, got " + describe(tok),
		}
	}
	if err := p.checkIdent(tok); err != nil {
		return token.Token{}, err
	}
	return p.advance(), nil
}

func (p *Parser) checkIdent(tok token.Token) error {
	if p.maxIdentLen <= 0 {
		return nil
	}
	if n := utf8.RuneCountInString(tok.Lexeme); n > p.maxIdentLen {
		return &Error{
			Kind:    ErrIdentifierTooLong,
			Pos:     tok.Pos,
			Got:     tok,
			Message: fmt.Sprintf("identifier is %d characters long, limit is %d", n, p.maxIdentLen),
		}
	}
	return nil
}

// unexpected reports that the current token is none of expected. At end
// of input the error is always ErrUnexpectedEOF.
func (p *Parser) unexpected(expected ...token.TokenKind) *Error {
	tok := p.peek()
	err := &Error{Pos: tok.Pos, Got: tok, Expected: expected}
	switch {
	case tok.Kind == token.TokenEOF:
		err.Kind = ErrUnexpectedEOF
		err.Message = "unexpected end of input"
		if len(expected) > 0 {
			err.Message += ", expected " + describeKinds(expected)
		}
	case len(expected) > 1:
		err.Kind = ErrExpectedOneOf
		err.Message = fmt.Sprintf("expected %s, got %s", describeKinds(expected), describe(tok))
	default:
		err.Kind = ErrUnexpectedToken
		err.Message = fmt.Sprintf("expected %s, got %s", describeKinds(expected), describe(tok))
	}
	return err
}

func (p *Parser) skipSeparators() {
	for p.check(token.TokenSemicolon) {
		p.advance()
	}
}

func (p *Parser) enterBlock(opener token.Token) error {
	p.nesting++
	if p.maxNesting > 0 && p.nesting > p.maxNesting {
		return &Error{
			Kind:    ErrNestingTooDeep,
			Pos:     opener.Pos,
			Got:     opener,
			Message: fmt.Sprintf("blocks nested more than %d deep", p.maxNesting),
		}
	}
	return nil
}

func (p *Parser) leaveBlock() {
	if p.nesting > 0 {
		p.nesting--
	}
}

func (p *Parser) enterExpr(at token.Token) error {
	return p.enterDepth(at, "expression")
}

// enterType guards nested array element types with the expression depth
// limit.
func (p *Parser) enterType(at token.Token) error {
	return p.enterDepth(at, "array type")
}

func (p *Parser) enterDepth(at token.Token, what string) error {
	p.exprDepth++
	if p.maxExprDepth > 0 && p.exprDepth > p.maxExprDepth {
		return &Error{
			Kind:    ErrNestingTooDeep,
			Pos:     at.Pos,
			Got:     at,
			Message: fmt.Sprintf("%s nested more than %d deep", what, p.maxExprDepth),
		}
	}
	return nil
}

func (p *Parser) leaveExpr() {
	if p.exprDepth > 0 {
		p.exprDepth--
	}
}
