package parser

import (
	"github.com/dhamidi/fepc/fe/ast"
	"github.com/dhamidi/fepc/fe/lexer"
	"github.com/dhamidi/fepc/fe/token"
)

// parseExpr parses an operand followed by every binary operator binding
// at least as tightly as minPrec. Operators are left-associative, so the
// right operand is parsed one level higher.
func (p *Parser) parseExpr(minPrec int) (ast.Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := ast.BinaryOpFor(p.peek().Kind)
		if !ok || op.Precedence() < minPrec {
			return left, nil
		}
		opTok := p.advance()
		next := op.Precedence()
		if op.LeftAssoc() {
			next++
		}
		right, err := p.parseExpr(next)
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{OpPos: opTok.Pos, Op: op, Left: left, Right: right}
	}
}

func (p *Parser) parseUnary() (ast.Expr, error) {
	op, ok := ast.UnaryOpFor(p.peek().Kind)
	if !ok {
		return p.parsePostfix()
	}
	opTok := p.advance()
	if err := p.enterExpr(opTok); err != nil {
		return nil, err
	}
	defer p.leaveExpr()
	operand, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return &ast.Unary{At: opTok.Pos, Op: op, Operand: operand}, nil
}

func (p *Parser) parsePostfix() (ast.Expr, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		switch p.peek().Kind {
		case token.TokenLBracket:
			index, err := p.parseIndex()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(token.TokenRBracket); err != nil {
				return nil, err
			}
			expr = &ast.Index{Base: expr, Index: index}
		case token.TokenDot:
			p.advance()
			name, err := p.expectIdent()
			if err != nil {
				return nil, err
			}
			expr = &ast.Field{Base: expr, Name: name.Lexeme, NamePos: name.Pos}
		case token.TokenLParen:
			switch expr.(type) {
			case *ast.Ident, *ast.Field:
			default:
				tok := p.peek()
				return nil, &Error{
					Kind:    ErrInvalidCallTarget,
					Pos:     tok.Pos,
					Got:     tok,
					Message: "only a name or a field can be called",
				}
			}
			args, err := p.parseArgs(p.advance())
			if err != nil {
				return nil, err
			}
			expr = &ast.Call{Callee: expr, Args: args}
		default:
			return expr, nil
		}
	}
}

func (p *Parser) parseIndex() (ast.Expr, error) {
	open := p.advance()
	if err := p.enterExpr(open); err != nil {
		return nil, err
	}
	defer p.leaveExpr()
	return p.parseExpr(0)
}

// parseArgs parses a comma-separated argument list after the open "(" up
// to and including ")".
func (p *Parser) parseArgs(open token.Token) ([]ast.Expr, error) {
	if err := p.enterExpr(open); err != nil {
		return nil, err
	}
	defer p.leaveExpr()
	var args []ast.Expr
	if p.check(token.TokenRParen) {
		p.advance()
		return args, nil
	}
	for {
		arg, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.check(token.TokenComma) {
			p.advance()
			continue
		}
		if _, err := p.expect(token.TokenRParen); err != nil {
			if !p.check(token.TokenEOF) {
				return nil, p.unexpected(token.TokenComma, token.TokenRParen)
			}
			return nil, err
		}
		return args, nil
	}
}

func (p *Parser) parsePrimary() (ast.Expr, error) {
	tok := p.peek()
	switch tok.Kind {
	case token.TokenInteger:
		p.advance()
		v, err := lexer.IntValue(tok.Lexeme)
		if err != nil {
			return nil, invalidLiteral(tok, err)
		}
		return &ast.IntegerLit{At: tok.Pos, Raw: tok.Lexeme, Value: v}, nil
	case token.TokenReal:
		p.advance()
		v, err := lexer.RealValue(tok.Lexeme)
		if err != nil {
			return nil, invalidLiteral(tok, err)
		}
		return &ast.RealLit{At: tok.Pos, Raw: tok.Lexeme, Value: v}, nil
	case token.TokenString:
		p.advance()
		v, err := lexer.StringValue(tok.Lexeme)
		if err != nil {
			return nil, invalidLiteral(tok, err)
		}
		return &ast.StringLit{At: tok.Pos, Raw: tok.Lexeme, Value: v}, nil
	case token.TokenChar:
		p.advance()
		v, err := lexer.StringValue(tok.Lexeme)
		if err != nil {
			return nil, invalidLiteral(tok, err)
		}
		r := []rune(v)
		if len(r) != 1 {
			return nil, &Error{Kind: ErrInvalidLiteral, Pos: tok.Pos, Got: tok, Message: "character literal must hold exactly one character"}
		}
		return &ast.CharLit{At: tok.Pos, Raw: tok.Lexeme, Value: r[0]}, nil
	case token.TokenTrue, token.TokenFalse:
		p.advance()
		return &ast.BooleanLit{At: tok.Pos, Value: tok.Kind == token.TokenTrue}, nil
	case token.TokenIdent:
		if err := p.checkIdent(tok); err != nil {
			return nil, err
		}
		p.advance()
		return &ast.Ident{At: tok.Pos, Name: tok.Lexeme}, nil
	case token.TokenLParen:
		p.advance()
		if err := p.enterExpr(tok); err != nil {
			return nil, err
		}
		defer p.leaveExpr()
		inner, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.TokenRParen); err != nil {
			return nil, err
		}
		return inner, nil
	case token.TokenEOF:
		return nil, p.unexpected()
	}
	return nil, &Error{
		Kind:    ErrExpectedExpression,
		Pos:     tok.Pos,
		Got:     tok,
		Message: "expected expression, got " + describe(tok),
	}
}

func invalidLiteral(tok token.Token, err error) *Error {
	return &Error{
		Kind:    ErrInvalidLiteral,
		Pos:     tok.Pos,
		Got:     tok,
		Message: err.Error(),
		Err:     err,
	}
}

// startsExpr reports whether a token of this kind can begin an
// expression.
func startsExpr(kind token.TokenKind) bool {
	switch kind {
	case token.TokenInteger, token.TokenReal, token.TokenString, token.TokenChar,
		token.TokenTrue, token.TokenFalse, token.TokenIdent, token.TokenLParen,
		token.TokenNot, token.TokenBang, token.TokenPlus, token.TokenMinus:
		return true
	}
	return false
}
