package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/fepc/fe/ast"
	"github.com/dhamidi/fepc/fe/token"
)

type ASTJSONEncoder struct {
	w    io.Writer
	node ast.Node
}

func NewASTJSONEncoder(w io.Writer) *ASTJSONEncoder {
	return &ASTJSONEncoder{w: w}
}

func (e *ASTJSONEncoder) Encode(node ast.Node) error {
	e.node = node
	return write(e.w, e)
}

func (e *ASTJSONEncoder) MarshalText() ([]byte, error) {
	text, err := json.MarshalIndent(nodeToJSON(e.node, ""), "", "  ")
	if err != nil {
		return nil, err
	}
	return append(text, '\n'), nil
}

type astJSONNode struct {
	Kind     string           `json:"kind"`
	Role     string           `json:"role,omitempty"`
	Pos      *astJSONPosition `json:"pos,omitempty"`
	Op       string           `json:"op,omitempty"`
	Name     string           `json:"name,omitempty"`
	Type     string           `json:"type,omitempty"`
	Value    any              `json:"value,omitempty"`
	Children []*astJSONNode   `json:"children,omitempty"`
}

type astJSONPosition struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

func (jn *astJSONNode) add(role string, n ast.Node) {
	if n == nil {
		return
	}
	jn.Children = append(jn.Children, nodeToJSON(n, role))
}

func (jn *astJSONNode) addStmts(role string, stmts []ast.Stmt) {
	for _, s := range stmts {
		jn.add(role, s)
	}
}

func (jn *astJSONNode) addParams(role string, params []ast.Param) {
	for _, p := range params {
		jn.Children = append(jn.Children, &astJSONNode{
			Kind: "Param",
			Role: role,
			Pos:  positionOf(p.At),
			Name: p.Name,
			Type: p.Type.String(),
		})
	}
}

func positionOf(p token.Position) *astJSONPosition {
	if p.Line == 0 {
		return nil
	}
	return &astJSONPosition{Line: p.Line, Column: p.Column}
}

func nodeToJSON(n ast.Node, role string) *astJSONNode {
	if n == nil {
		return &astJSONNode{Kind: "Nil", Role: role}
	}
	jn := &astJSONNode{Role: role, Pos: positionOf(n.Pos())}

	switch n := n.(type) {
	case *ast.Program:
		jn.Kind = "Program"
		jn.Pos = nil
		jn.addStmts("", n.Body)
	case *ast.ExprStmt:
		jn.Kind = "ExprStmt"
		jn.add("", n.X)
	case *ast.Assign:
		jn.Kind = "Assign"
		jn.Name = n.Name
		jn.add("value", n.Value)
	case *ast.IndexAssign:
		jn.Kind = "IndexAssign"
		jn.Name = n.Name
		jn.add("index", n.Index)
		jn.add("value", n.Value)
	case *ast.If:
		jn.Kind = "If"
		jn.add("cond", n.Cond)
		jn.addStmts("then", n.Then)
		for _, ei := range n.ElseIfs {
			el := &astJSONNode{Kind: "ElseIf", Role: "elif", Pos: positionOf(ei.At)}
			el.add("cond", ei.Cond)
			el.addStmts("body", ei.Body)
			jn.Children = append(jn.Children, el)
		}
		jn.addStmts("else", n.Else)
	case *ast.While:
		jn.Kind = "While"
		jn.add("cond", n.Cond)
		jn.addStmts("body", n.Body)
	case *ast.ForRange:
		jn.Kind = "ForRange"
		jn.Name = n.Var
		jn.add("start", n.Start)
		jn.add("end", n.End)
		if n.Step != nil {
			jn.add("step", n.Step)
		}
		jn.addStmts("body", n.Body)
	case *ast.ForEach:
		jn.Kind = "ForEach"
		jn.Name = n.Var
		jn.add("iterable", n.Iterable)
		jn.addStmts("body", n.Body)
	case *ast.FunctionDecl:
		jn.Kind = "FunctionDecl"
		jn.Name = n.Name
		if n.ReturnType != nil {
			jn.Type = n.ReturnType.String()
		}
		jn.addParams("param", n.Params)
		jn.addParams("local", n.Locals)
		jn.addStmts("body", n.Body)
	case *ast.ProcedureDecl:
		jn.Kind = "ProcedureDecl"
		jn.Name = n.Name
		jn.addParams("param", n.Params)
		jn.addParams("local", n.Locals)
		jn.addStmts("body", n.Body)
	case *ast.Return:
		jn.Kind = "Return"
		if n.Value != nil {
			jn.add("value", n.Value)
		}
	case *ast.Break:
		jn.Kind = "Break"
	case *ast.IntegerLit:
		jn.Kind = "IntegerLit"
		jn.Value = n.Value
	case *ast.RealLit:
		jn.Kind = "RealLit"
		jn.Value = n.Value
	case *ast.StringLit:
		jn.Kind = "StringLit"
		jn.Value = n.Value
	case *ast.CharLit:
		jn.Kind = "CharLit"
		jn.Value = string(n.Value)
	case *ast.BooleanLit:
		jn.Kind = "BooleanLit"
		jn.Value = n.Value
	case *ast.Ident:
		jn.Kind = "Ident"
		jn.Name = n.Name
	case *ast.Binary:
		jn.Kind = "Binary"
		jn.Pos = positionOf(n.OpPos)
		jn.Op = n.Op.String()
		jn.add("left", n.Left)
		jn.add("right", n.Right)
	case *ast.Unary:
		jn.Kind = "Unary"
		jn.Op = n.Op.String()
		jn.add("operand", n.Operand)
	case *ast.Index:
		jn.Kind = "Index"
		jn.add("base", n.Base)
		jn.add("index", n.Index)
	case *ast.Field:
		jn.Kind = "Field"
		jn.Name = n.Name
		jn.add("base", n.Base)
	case *ast.Call:
		jn.Kind = "Call"
		jn.Name = n.Name()
		jn.add("callee", n.Callee)
		for _, a := range n.Args {
			jn.add("arg", a)
		}
	default:
		jn.Kind = "Unknown"
	}

	return jn
}
