package parser

import (
	"github.com/dhamidi/fepc/fe/ast"
	"github.com/dhamidi/fepc/fe/token"
)

func (p *Parser) parseFunction() (ast.Stmt, error) {
	start := p.advance()
	if err := p.enterBlock(start); err != nil {
		return nil, err
	}
	name, params, err := p.parseSignature()
	if err != nil {
		return nil, err
	}
	decl := &ast.FunctionDecl{At: start.Pos, Name: name.Lexeme, Params: params}
	if p.check(token.TokenColon) {
		p.advance()
		if decl.ReturnType, err = p.parseType(); err != nil {
			return nil, err
		}
	}
	if decl.Locals, decl.Body, err = p.parseRoutineBody(token.TokenEndFunction); err != nil {
		return nil, err
	}
	p.leaveBlock()
	return decl, nil
}

func (p *Parser) parseProcedure() (ast.Stmt, error) {
	start := p.advance()
	if err := p.enterBlock(start); err != nil {
		return nil, err
	}
	name, params, err := p.parseSignature()
	if err != nil {
		return nil, err
	}
	decl := &ast.ProcedureDecl{At: start.Pos, Name: name.Lexeme, Params: params}
	if decl.Locals, decl.Body, err = p.parseRoutineBody(token.TokenEndProcedure); err != nil {
		return nil, err
	}
	p.leaveBlock()
	return decl, nil
}

// parseSignature parses "name(param: type, ...)".
func (p *Parser) parseSignature() (token.Token, []ast.Param, error) {
	name, err := p.expectIdent()
	if err != nil {
		return token.Token{}, nil, err
	}
	if _, err := p.expect(token.TokenLParen); err != nil {
		return token.Token{}, nil, err
	}
	var params []ast.Param
	if p.check(token.TokenRParen) {
		p.advance()
		return name, params, nil
	}
	for {
		param, err := p.parseParam()
		if err != nil {
			return token.Token{}, nil, err
		}
		params = append(params, param)
		if p.check(token.TokenComma) {
			p.advance()
			continue
		}
		if !p.check(token.TokenRParen) {
			return token.Token{}, nil, p.unexpected(token.TokenComma, token.TokenRParen)
		}
		p.advance()
		return name, params, nil
	}
}

func (p *Parser) parseParam() (ast.Param, error) {
	name, err := p.expectIdent()
	if err != nil {
		return ast.Param{}, err
	}
	if _, err := p.expect(token.TokenColon); err != nil {
		return ast.Param{}, err
	}
	typ, err := p.parseType()
	if err != nil {
		return ast.Param{}, err
	}
	return ast.Param{At: name.Pos, Name: name.Lexeme, Type: typ}, nil
}

// parseRoutineBody parses the leading "name: type" local declarations,
// the statements and the closing keyword.
func (p *Parser) parseRoutineBody(end token.TokenKind) ([]ast.Param, []ast.Stmt, error) {
	var locals []ast.Param
	for {
		p.skipSeparators()
		if !p.check(token.TokenIdent) || p.peekN(1).Kind != token.TokenColon {
			break
		}
		local, err := p.parseParam()
		if err != nil {
			return nil, nil, err
		}
		locals = append(locals, local)
	}
	body, err := p.parseBlock(end)
	if err != nil {
		return nil, nil, err
	}
	if _, err := p.expect(end); err != nil {
		return nil, nil, err
	}
	return locals, body, nil
}

var primitiveTypes = map[token.TokenKind]ast.PrimitiveKind{
	token.TokenIntegerType: ast.Integer,
	token.TokenRealType:    ast.Real,
	token.TokenStringType:  ast.String,
	token.TokenCharType:    ast.Char,
	token.TokenBooleanType: ast.Boolean,
}

var typeStarts = []token.TokenKind{
	token.TokenIntegerType, token.TokenRealType, token.TokenStringType,
	token.TokenCharType, token.TokenBooleanType, token.TokenArray, token.TokenRecord,
}

func (p *Parser) parseType() (ast.DataType, error) {
	tok := p.peek()
	if kind, ok := primitiveTypes[tok.Kind]; ok {
		p.advance()
		return &ast.Primitive{Kind: kind}, nil
	}
	switch tok.Kind {
	case token.TokenArray:
		p.advance()
		if !p.check(token.TokenOf) {
			if p.lenientArrays {
				return &ast.ArrayType{Of: &ast.Primitive{Kind: ast.Integer}}, nil
			}
			got := p.peek()
			if got.Kind == token.TokenEOF {
				return nil, p.unexpected(token.TokenOf)
			}
			return nil, &Error{
				Kind:     ErrExpectedType,
				Pos:      got.Pos,
				Got:      got,
				Expected: []token.TokenKind{token.TokenOf},
				Message:  "array type needs an element type: expected of, got " + describe(got),
			}
		}
		p.advance()
		if err := p.enterType(tok); err != nil {
			return nil, err
		}
		defer p.leaveExpr()
		of, err := p.parseType()
		if err != nil {
			return nil, err
		}
		return &ast.ArrayType{Of: of}, nil
	case token.TokenRecord:
		p.advance()
		name, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		return &ast.RecordType{Name: name.Lexeme}, nil
	case token.TokenEOF:
		return nil, p.unexpected(typeStarts...)
	}
	return nil, &Error{
		Kind:     ErrExpectedType,
		Pos:      tok.Pos,
		Got:      tok,
		Expected: typeStarts,
		Message:  "expected data type, got " + describe(tok),
	}
}
