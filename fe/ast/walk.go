package ast

// Inspect traverses the tree rooted at n depth-first, calling fn for each
// node. Children are skipped when fn returns false.
func Inspect(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	switch n := n.(type) {
	case *Program:
		inspectStmts(n.Body, fn)
	case *ExprStmt:
		Inspect(n.X, fn)
	case *Assign:
		Inspect(n.Value, fn)
	case *IndexAssign:
		Inspect(n.Index, fn)
		Inspect(n.Value, fn)
	case *If:
		Inspect(n.Cond, fn)
		inspectStmts(n.Then, fn)
		for _, ei := range n.ElseIfs {
			Inspect(ei.Cond, fn)
			inspectStmts(ei.Body, fn)
		}
		inspectStmts(n.Else, fn)
	case *While:
		Inspect(n.Cond, fn)
		inspectStmts(n.Body, fn)
	case *ForRange:
		Inspect(n.Start, fn)
		Inspect(n.End, fn)
		if n.Step != nil {
			Inspect(n.Step, fn)
		}
		inspectStmts(n.Body, fn)
	case *ForEach:
		Inspect(n.Iterable, fn)
		inspectStmts(n.Body, fn)
	case *FunctionDecl:
		inspectStmts(n.Body, fn)
	case *ProcedureDecl:
		inspectStmts(n.Body, fn)
	case *Return:
		if n.Value != nil {
			Inspect(n.Value, fn)
		}
	case *Binary:
		Inspect(n.Left, fn)
		Inspect(n.Right, fn)
	case *Unary:
		Inspect(n.Operand, fn)
	case *Index:
		Inspect(n.Base, fn)
		Inspect(n.Index, fn)
	case *Field:
		Inspect(n.Base, fn)
	case *Call:
		Inspect(n.Callee, fn)
		for _, a := range n.Args {
			Inspect(a, fn)
		}
	}
}

func inspectStmts(stmts []Stmt, fn func(Node) bool) {
	for _, s := range stmts {
		Inspect(s, fn)
	}
}
