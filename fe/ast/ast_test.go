package ast

import (
	"testing"

	"github.com/dhamidi/fepc/fe/token"
)

func TestBinaryOpFor(t *testing.T) {
	tests := []struct {
		kind token.TokenKind
		want BinaryOp
	}{
		{token.TokenOr, OpOr},
		{token.TokenOrOr, OpOr},
		{token.TokenAndAnd, OpAnd},
		{token.TokenNE, OpNE},
		{token.TokenPercent, OpMod},
		{token.TokenMod, OpMod},
		{token.TokenDiv, OpIntDiv},
		{token.TokenSlash, OpDiv},
	}
	for _, tt := range tests {
		got, ok := BinaryOpFor(tt.kind)
		if !ok || got != tt.want {
			t.Errorf("BinaryOpFor(%v) = (%v, %v), want %v", tt.kind, got, ok, tt.want)
		}
	}
	if _, ok := BinaryOpFor(token.TokenAssign); ok {
		t.Errorf("BinaryOpFor(←) ok, want false")
	}
}

func TestPrecedenceOrdering(t *testing.T) {
	order := [][]BinaryOp{
		{OpOr},
		{OpAnd},
		{OpEQ, OpNE, OpLT, OpLE, OpGT, OpGE},
		{OpAdd, OpSub},
		{OpMul, OpDiv, OpMod, OpIntDiv},
	}
	for level, ops := range order {
		for _, op := range ops {
			if got := op.Precedence(); got != level+1 {
				t.Errorf("%v.Precedence() = %d, want %d", op, got, level+1)
			}
			if !op.LeftAssoc() {
				t.Errorf("%v is not left-associative", op)
			}
			if op.Precedence() >= OpNeg.Precedence() {
				t.Errorf("%v binds at least as tightly as unary minus", op)
			}
		}
	}
}

func TestUnaryOpFor(t *testing.T) {
	tests := map[token.TokenKind]UnaryOp{
		token.TokenNot:   OpNot,
		token.TokenBang:  OpNot,
		token.TokenPlus:  OpPlus,
		token.TokenMinus: OpNeg,
	}
	for kind, want := range tests {
		if got, ok := UnaryOpFor(kind); !ok || got != want {
			t.Errorf("UnaryOpFor(%v) = (%v, %v), want %v", kind, got, ok, want)
		}
	}
}

func TestDataTypeString(t *testing.T) {
	tests := []struct {
		typ  DataType
		want string
	}{
		{&Primitive{Kind: Integer}, "integer"},
		{&ArrayType{Of: &ArrayType{Of: &Primitive{Kind: Real}}}, "array of array of real"},
		{&RecordType{Name: "点"}, "record 点"},
	}
	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.want {
			t.Errorf("got %q, want %q", got, tt.want)
		}
	}
}

func TestCallName(t *testing.T) {
	plain := &Call{Callee: &Ident{Name: "f"}}
	if plain.Name() != "f" {
		t.Errorf("Name() = %q, want f", plain.Name())
	}
	method := &Call{Callee: &Field{Base: &Ident{Name: "a"}, Name: "b"}}
	if method.Name() != "b" {
		t.Errorf("Name() = %q, want b", method.Name())
	}
}

func TestInspect(t *testing.T) {
	prog := &Program{Body: []Stmt{
		&Assign{Name: "x", Value: &Binary{Op: OpAdd, Left: &IntegerLit{Value: 1}, Right: &Ident{Name: "y"}}},
		&If{
			Cond:    &BooleanLit{Value: true},
			Then:    []Stmt{&Break{}},
			ElseIfs: []ElseIf{{Cond: &Ident{Name: "z"}, Body: []Stmt{&Return{}}}},
		},
	}}

	var idents []string
	count := 0
	Inspect(prog, func(n Node) bool {
		count++
		if id, ok := n.(*Ident); ok {
			idents = append(idents, id.Name)
		}
		return true
	})
	if count != 10 {
		t.Errorf("visited %d nodes, want 10", count)
	}
	if len(idents) != 2 || idents[0] != "y" || idents[1] != "z" {
		t.Errorf("identifiers = %v, want [y z]", idents)
	}

	count = 0
	Inspect(prog, func(n Node) bool {
		count++
		_, isIf := n.(*If)
		return !isIf
	})
	if count != 6 {
		t.Errorf("visited %d nodes with If pruned, want 6", count)
	}
}
