// Package ast defines the expression, statement and data-type trees the
// parser produces. Every node exclusively owns its children; trees are
// built once and not mutated afterwards.
package ast

import (
	"github.com/dhamidi/fepc/fe/token"
)

// Node is anything carrying a source position.
type Node interface {
	Pos() token.Position
}

type Expr interface {
	Node
	exprNode()
}

type IntegerLit struct {
	At    token.Position
	Raw   string
	Value int64
}

type RealLit struct {
	At    token.Position
	Raw   string
	Value float64
}

// StringLit holds the decoded value; Raw keeps the quoted source text.
type StringLit struct {
	At    token.Position
	Raw   string
	Value string
}

type CharLit struct {
	At    token.Position
	Raw   string
	Value rune
}

type BooleanLit struct {
	At    token.Position
	Value bool
}

type Ident struct {
	At   token.Position
	Name string
}

type Binary struct {
	OpPos token.Position
	Op    BinaryOp
	Left  Expr
	Right Expr
}

type Unary struct {
	At      token.Position
	Op      UnaryOp
	Operand Expr
}

// Index is base[index].
type Index struct {
	Base  Expr
	Index Expr
}

// Field is base.name.
type Field struct {
	Base    Expr
	Name    string
	NamePos token.Position
}

// Call applies a callee to arguments. The callee is an *Ident for a plain
// call or a *Field for a call through a field.
type Call struct {
	Callee Expr
	Args   []Expr
}

// Name is the called function's name.
func (c *Call) Name() string {
	switch callee := c.Callee.(type) {
	case *Ident:
		return callee.Name
	case *Field:
		return callee.Name
	}
	return ""
}

func (e *IntegerLit) Pos() token.Position { return e.At }
func (e *RealLit) Pos() token.Position    { return e.At }
func (e *StringLit) Pos() token.Position  { return e.At }
func (e *CharLit) Pos() token.Position    { return e.At }
func (e *BooleanLit) Pos() token.Position { return e.At }
func (e *Ident) Pos() token.Position      { return e.At }
func (e *Binary) Pos() token.Position     { return e.Left.Pos() }
func (e *Unary) Pos() token.Position      { return e.At }
func (e *Index) Pos() token.Position      { return e.Base.Pos() }
func (e *Field) Pos() token.Position      { return e.Base.Pos() }
func (e *Call) Pos() token.Position       { return e.Callee.Pos() }

func (*IntegerLit) exprNode() {}
func (*RealLit) exprNode()    {}
func (*StringLit) exprNode()  {}
func (*CharLit) exprNode()    {}
func (*BooleanLit) exprNode() {}
func (*Ident) exprNode()      {}
func (*Binary) exprNode()     {}
func (*Unary) exprNode()      {}
func (*Index) exprNode()      {}
func (*Field) exprNode()      {}
func (*Call) exprNode()       {}
