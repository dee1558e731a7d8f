package ast

import "github.com/dhamidi/fepc/fe/token"

type Stmt interface {
	Node
	stmtNode()
}

// Program is a parsed source file.
type Program struct {
	Body []Stmt
}

func (p *Program) Pos() token.Position {
	if len(p.Body) == 0 {
		return token.Start("")
	}
	return p.Body[0].Pos()
}

type ExprStmt struct {
	X Expr
}

// Assign is name ← value.
type Assign struct {
	At    token.Position
	Name  string
	Value Expr
}

// IndexAssign is name[index] ← value.
type IndexAssign struct {
	At    token.Position
	Name  string
	Index Expr
	Value Expr
}

type If struct {
	At      token.Position
	Cond    Expr
	Then    []Stmt
	ElseIfs []ElseIf
	Else    []Stmt
}

type ElseIf struct {
	At   token.Position
	Cond Expr
	Body []Stmt
}

type While struct {
	At   token.Position
	Cond Expr
	Body []Stmt
}

// ForRange is for var ← start to end [step s] do ... endfor. Step is nil
// when omitted.
type ForRange struct {
	At    token.Position
	Var   string
	Start Expr
	End   Expr
	Step  Expr
	Body  []Stmt
}

// ForEach is for var in iterable do ... endfor.
type ForEach struct {
	At       token.Position
	Var      string
	Iterable Expr
	Body     []Stmt
}

type Param struct {
	At   token.Position
	Name string
	Type DataType
}

// FunctionDecl declares a function. ReturnType is nil when omitted.
// Locals are the name: type lines leading the body.
type FunctionDecl struct {
	At         token.Position
	Name       string
	Params     []Param
	ReturnType DataType
	Locals     []Param
	Body       []Stmt
}

type ProcedureDecl struct {
	At     token.Position
	Name   string
	Params []Param
	Locals []Param
	Body   []Stmt
}

// Return's Value is nil for a bare return.
type Return struct {
	At    token.Position
	Value Expr
}

type Break struct {
	At token.Position
}

func (s *ExprStmt) Pos() token.Position      { return s.X.Pos() }
func (s *Assign) Pos() token.Position        { return s.At }
func (s *IndexAssign) Pos() token.Position   { return s.At }
func (s *If) Pos() token.Position            { return s.At }
func (s *While) Pos() token.Position         { return s.At }
func (s *ForRange) Pos() token.Position      { return s.At }
func (s *ForEach) Pos() token.Position       { return s.At }
func (s *FunctionDecl) Pos() token.Position  { return s.At }
func (s *ProcedureDecl) Pos() token.Position { return s.At }
func (s *Return) Pos() token.Position        { return s.At }
func (s *Break) Pos() token.Position         { return s.At }

func (*ExprStmt) stmtNode()      {}
func (*Assign) stmtNode()        {}
func (*IndexAssign) stmtNode()   {}
func (*If) stmtNode()            {}
func (*While) stmtNode()         {}
func (*ForRange) stmtNode()      {}
func (*ForEach) stmtNode()       {}
func (*FunctionDecl) stmtNode()  {}
func (*ProcedureDecl) stmtNode() {}
func (*Return) stmtNode()        {}
func (*Break) stmtNode()         {}
