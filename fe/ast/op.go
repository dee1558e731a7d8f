package ast

import "github.com/dhamidi/fepc/fe/token"

type BinaryOp int

const (
	OpOr BinaryOp = iota
	OpAnd
	OpEQ
	OpNE
	OpLT
	OpLE
	OpGT
	OpGE
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
	OpIntDiv
)

var binaryOpNames = map[BinaryOp]string{
	OpOr:     "or",
	OpAnd:    "and",
	OpEQ:     "=",
	OpNE:     "≠",
	OpLT:     "<",
	OpLE:     "≤",
	OpGT:     ">",
	OpGE:     "≥",
	OpAdd:    "+",
	OpSub:    "-",
	OpMul:    "*",
	OpDiv:    "/",
	OpMod:    "mod",
	OpIntDiv: "div",
}

func (op BinaryOp) String() string {
	if name, ok := binaryOpNames[op]; ok {
		return name
	}
	return "Unknown"
}

// Precedence levels, lowest first. Unary operators bind above every
// binary level.
const (
	PrecOr             = 1
	PrecAnd            = 2
	PrecComparison     = 3
	PrecAdditive       = 4
	PrecMultiplicative = 5
	PrecUnary          = 6
)

func (op BinaryOp) Precedence() int {
	switch op {
	case OpOr:
		return PrecOr
	case OpAnd:
		return PrecAnd
	case OpEQ, OpNE, OpLT, OpLE, OpGT, OpGE:
		return PrecComparison
	case OpAdd, OpSub:
		return PrecAdditive
	}
	return PrecMultiplicative
}

// LeftAssoc is true for every binary operator of the language.
func (op BinaryOp) LeftAssoc() bool {
	return true
}

var binaryOps = map[token.TokenKind]BinaryOp{
	token.TokenOr:      OpOr,
	token.TokenOrOr:    OpOr,
	token.TokenAnd:     OpAnd,
	token.TokenAndAnd:  OpAnd,
	token.TokenEQ:      OpEQ,
	token.TokenNE:      OpNE,
	token.TokenLT:      OpLT,
	token.TokenLE:      OpLE,
	token.TokenGT:      OpGT,
	token.TokenGE:      OpGE,
	token.TokenPlus:    OpAdd,
	token.TokenMinus:   OpSub,
	token.TokenStar:    OpMul,
	token.TokenSlash:   OpDiv,
	token.TokenPercent: OpMod,
	token.TokenMod:     OpMod,
	token.TokenDiv:     OpIntDiv,
}

// BinaryOpFor maps an operator token to its binary operator.
func BinaryOpFor(kind token.TokenKind) (BinaryOp, bool) {
	op, ok := binaryOps[kind]
	return op, ok
}

type UnaryOp int

const (
	OpNot UnaryOp = iota
	OpPlus
	OpNeg
)

func (op UnaryOp) String() string {
	switch op {
	case OpNot:
		return "not"
	case OpPlus:
		return "+"
	case OpNeg:
		return "-"
	}
	return "Unknown"
}

func (op UnaryOp) Precedence() int {
	return PrecUnary
}

// UnaryOpFor maps a prefix operator token to its unary operator.
func UnaryOpFor(kind token.TokenKind) (UnaryOp, bool) {
	switch kind {
	case token.TokenNot, token.TokenBang:
		return OpNot, true
	case token.TokenPlus:
		return OpPlus, true
	case token.TokenMinus:
		return OpNeg, true
	}
	return 0, false
}
