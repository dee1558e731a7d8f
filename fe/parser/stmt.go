package parser

import (
	"github.com/dhamidi/fepc/fe/ast"
	"github.com/dhamidi/fepc/fe/token"
)

func (p *Parser) parseStatement() (ast.Stmt, error) {
	switch p.peek().Kind {
	case token.TokenIf:
		return p.parseIf()
	case token.TokenWhile:
		return p.parseWhile()
	case token.TokenFor:
		return p.parseFor()
	case token.TokenFunction:
		return p.parseFunction()
	case token.TokenProcedure:
		return p.parseProcedure()
	case token.TokenReturn:
		return p.parseReturn()
	case token.TokenBreak:
		tok := p.advance()
		return &ast.Break{At: tok.Pos}, nil
	case token.TokenIdent:
		switch p.peekN(1).Kind {
		case token.TokenAssign:
			return p.parseAssign()
		case token.TokenLBracket:
			if p.isIndexAssign() {
				return p.parseIndexAssign()
			}
		}
	}
	x, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}
	return &ast.ExprStmt{X: x}, nil
}

// isIndexAssign scans from the "[" after a leading identifier to its
// matching "]" and reports whether "←" follows.
func (p *Parser) isIndexAssign() bool {
	depth := 1
	for i := p.pos + 2; i < len(p.tokens); i++ {
		switch p.tokens[i].Kind {
		case token.TokenLBracket:
			depth++
		case token.TokenRBracket:
			depth--
			if depth == 0 {
				return i+1 < len(p.tokens) && p.tokens[i+1].Kind == token.TokenAssign
			}
		case token.TokenEOF:
			return false
		}
	}
	return false
}

func (p *Parser) parseAssign() (ast.Stmt, error) {
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.TokenAssign); err != nil {
		return nil, err
	}
	value, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}
	return &ast.Assign{At: name.Pos, Name: name.Lexeme, Value: value}, nil
}

func (p *Parser) parseIndexAssign() (ast.Stmt, error) {
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.TokenLBracket); err != nil {
		return nil, err
	}
	index, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.TokenRBracket); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.TokenAssign); err != nil {
		return nil, err
	}
	value, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}
	return &ast.IndexAssign{At: name.Pos, Name: name.Lexeme, Index: index, Value: value}, nil
}

// closers end some enclosing block and never start a statement.
var closers = map[token.TokenKind]bool{
	token.TokenElif:         true,
	token.TokenElse:         true,
	token.TokenEndIf:        true,
	token.TokenEndWhile:     true,
	token.TokenEndFor:       true,
	token.TokenEndFunction:  true,
	token.TokenEndProcedure: true,
}

// parseBlock parses statements until one of terminators, which is left
// unconsumed.
func (p *Parser) parseBlock(terminators ...token.TokenKind) ([]ast.Stmt, error) {
	var body []ast.Stmt
	for {
		p.skipSeparators()
		if p.match(terminators...) {
			return body, nil
		}
		if p.check(token.TokenEOF) || closers[p.peek().Kind] {
			return nil, p.unexpected(terminators...)
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		body = append(body, stmt)
	}
}

func (p *Parser) parseIf() (ast.Stmt, error) {
	start := p.advance()
	if err := p.enterBlock(start); err != nil {
		return nil, err
	}
	stmt := &ast.If{At: start.Pos}
	cond, body, err := p.parseClause(token.TokenElif, token.TokenElse, token.TokenEndIf)
	if err != nil {
		return nil, err
	}
	stmt.Cond, stmt.Then = cond, body
	for p.check(token.TokenElif) {
		elif := p.advance()
		cond, body, err := p.parseClause(token.TokenElif, token.TokenElse, token.TokenEndIf)
		if err != nil {
			return nil, err
		}
		stmt.ElseIfs = append(stmt.ElseIfs, ast.ElseIf{At: elif.Pos, Cond: cond, Body: body})
	}
	if p.check(token.TokenElse) {
		p.advance()
		stmt.Else, err = p.parseBlock(token.TokenEndIf)
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(token.TokenEndIf); err != nil {
		return nil, err
	}
	p.leaveBlock()
	return stmt, nil
}

// parseClause parses "cond then block" for if and elif.
func (p *Parser) parseClause(terminators ...token.TokenKind) (ast.Expr, []ast.Stmt, error) {
	cond, err := p.parseExpr(0)
	if err != nil {
		return nil, nil, err
	}
	if _, err := p.expect(token.TokenThen); err != nil {
		return nil, nil, err
	}
	body, err := p.parseBlock(terminators...)
	if err != nil {
		return nil, nil, err
	}
	return cond, body, nil
}

func (p *Parser) parseWhile() (ast.Stmt, error) {
	start := p.advance()
	if err := p.enterBlock(start); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}
	body, err := p.parseLoopBody(token.TokenEndWhile)
	if err != nil {
		return nil, err
	}
	p.leaveBlock()
	return &ast.While{At: start.Pos, Cond: cond, Body: body}, nil
}

// parseLoopBody parses "do block end".
func (p *Parser) parseLoopBody(end token.TokenKind) ([]ast.Stmt, error) {
	if _, err := p.expect(token.TokenDo); err != nil {
		return nil, err
	}
	body, err := p.parseBlock(end)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(end); err != nil {
		return nil, err
	}
	return body, nil
}

func (p *Parser) parseFor() (ast.Stmt, error) {
	start := p.advance()
	if err := p.enterBlock(start); err != nil {
		return nil, err
	}
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	var stmt ast.Stmt
	switch p.peek().Kind {
	case token.TokenAssign:
		stmt, err = p.parseForRange(start, name)
	case token.TokenIn:
		stmt, err = p.parseForEach(start, name)
	default:
		return nil, p.unexpected(token.TokenAssign, token.TokenIn)
	}
	if err != nil {
		return nil, err
	}
	p.leaveBlock()
	return stmt, nil
}

func (p *Parser) parseForRange(start, name token.Token) (ast.Stmt, error) {
	p.advance()
	from, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.TokenTo); err != nil {
		return nil, err
	}
	to, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}
	var step ast.Expr
	if p.check(token.TokenStep) {
		p.advance()
		if step, err = p.parseExpr(0); err != nil {
			return nil, err
		}
	}
	body, err := p.parseLoopBody(token.TokenEndFor)
	if err != nil {
		return nil, err
	}
	return &ast.ForRange{At: start.Pos, Var: name.Lexeme, Start: from, End: to, Step: step, Body: body}, nil
}

func (p *Parser) parseForEach(start, name token.Token) (ast.Stmt, error) {
	p.advance()
	iter, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}
	body, err := p.parseLoopBody(token.TokenEndFor)
	if err != nil {
		return nil, err
	}
	return &ast.ForEach{At: start.Pos, Var: name.Lexeme, Iterable: iter, Body: body}, nil
}

func (p *Parser) parseReturn() (ast.Stmt, error) {
	tok := p.advance()
	stmt := &ast.Return{At: tok.Pos}
	next := p.peek()
	if next.Pos.Line != tok.Pos.Line || !startsExpr(next.Kind) {
		return stmt, nil
	}
	value, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}
	stmt.Value = value
	return stmt, nil
}
