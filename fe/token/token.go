package token

type TokenKind int

const (
	TokenEOF TokenKind = iota

	// Trivia, filtered from the default token sequence
	TokenWhitespace
	TokenNewline
	TokenComment

	// Literals
	TokenIdent
	TokenInteger
	TokenReal
	TokenString
	TokenChar
	TokenTrue
	TokenFalse

	// Control-flow keywords
	TokenIf
	TokenThen
	TokenElif
	TokenElse
	TokenEndIf
	TokenWhile
	TokenDo
	TokenEndWhile
	TokenFor
	TokenTo
	TokenStep
	TokenIn
	TokenEndFor
	TokenFunction
	TokenEndFunction
	TokenProcedure
	TokenEndProcedure
	TokenReturn
	TokenBreak

	// Word operators
	TokenAnd
	TokenOr
	TokenNot
	TokenMod
	TokenDiv

	// Type keywords
	TokenIntegerType
	TokenRealType
	TokenStringType
	TokenCharType
	TokenBooleanType
	TokenArray
	TokenOf
	TokenRecord

	// Operators
	TokenAssign
	TokenEQ
	TokenNE
	TokenLT
	TokenLE
	TokenGT
	TokenGE
	TokenPlus
	TokenMinus
	TokenStar
	TokenSlash
	TokenPercent
	TokenAndAnd
	TokenOrOr
	TokenBang

	// Delimiters
	TokenLParen
	TokenRParen
	TokenLBracket
	TokenRBracket
	TokenLBrace
	TokenRBrace
	TokenComma
	TokenDot
	TokenColon
	TokenSemicolon
)

var tokenKindNames = map[TokenKind]string{
	TokenEOF:          "EOF",
	TokenWhitespace:   "Whitespace",
	TokenNewline:      "Newline",
	TokenComment:      "Comment",
	TokenIdent:        "Identifier",
	TokenInteger:      "IntegerLiteral",
	TokenReal:         "RealLiteral",
	TokenString:       "StringLiteral",
	TokenChar:         "CharLiteral",
	TokenTrue:         "true",
	TokenFalse:        "false",
	TokenIf:           "if",
	TokenThen:         "then",
	TokenElif:         "elif",
	TokenElse:         "else",
	TokenEndIf:        "endif",
	TokenWhile:        "while",
	TokenDo:           "do",
	TokenEndWhile:     "endwhile",
	TokenFor:          "for",
	TokenTo:           "to",
	TokenStep:         "step",
	TokenIn:           "in",
	TokenEndFor:       "endfor",
	TokenFunction:     "function",
	TokenEndFunction:  "endfunction",
	TokenProcedure:    "procedure",
	TokenEndProcedure: "endprocedure",
	TokenReturn:       "return",
	TokenBreak:        "break",
	TokenAnd:          "and",
	TokenOr:           "or",
	TokenNot:          "not",
	TokenMod:          "mod",
	TokenDiv:          "div",
	TokenIntegerType:  "integer",
	TokenRealType:     "real",
	TokenStringType:   "string",
	TokenCharType:     "char",
	TokenBooleanType:  "boolean",
	TokenArray:        "array",
	TokenOf:           "of",
	TokenRecord:       "record",
	TokenAssign:       "←",
	TokenEQ:           "=",
	TokenNE:           "≠",
	TokenLT:           "<",
	TokenLE:           "≤",
	TokenGT:           ">",
	TokenGE:           "≥",
	TokenPlus:         "+",
	TokenMinus:        "-",
	TokenStar:         "*",
	TokenSlash:        "/",
	TokenPercent:      "%",
	TokenAndAnd:       "&&",
	TokenOrOr:         "||",
	TokenBang:         "!",
	TokenLParen:       "(",
	TokenRParen:       ")",
	TokenLBracket:     "[",
	TokenRBracket:     "]",
	TokenLBrace:       "{",
	TokenRBrace:       "}",
	TokenComma:        ",",
	TokenDot:          ".",
	TokenColon:        ":",
	TokenSemicolon:    ";",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// IsTrivia reports whether tokens of this kind are dropped from the
// default token sequence.
func (k TokenKind) IsTrivia() bool {
	return k == TokenWhitespace || k == TokenNewline || k == TokenComment
}

// IsKeyword reports whether k is produced from the keyword table.
func (k TokenKind) IsKeyword() bool {
	return (k >= TokenIf && k <= TokenRecord) || k == TokenTrue || k == TokenFalse
}

// IsLiteral reports whether k is a literal token kind.
func (k TokenKind) IsLiteral() bool {
	return k >= TokenInteger && k <= TokenFalse
}

// Token is one lexical unit. Lexeme is the exact source text the token
// was matched from, including quotes for string and character literals.
type Token struct {
	Kind   TokenKind
	Lexeme string
	Pos    Position
}

// End is the position just past the token's lexeme.
func (t Token) End() Position {
	return t.Pos.AdvanceString(t.Lexeme)
}

// Span covers the token's lexeme.
func (t Token) Span() Span {
	return Span{Start: t.Pos, End: t.End()}
}

func (t Token) String() string {
	if t.Kind == TokenEOF {
		return t.Pos.String() + " EOF"
	}
	return t.Pos.String() + " " + t.Kind.String() + " " + t.Lexeme
}
