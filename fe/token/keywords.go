package token

import (
	"sort"
	"unicode/utf8"
)

// Script identifies which vocabulary a keyword spelling belongs to.
type Script int

const (
	ScriptLatin Script = iota
	ScriptJapanese
)

func (s Script) String() string {
	switch s {
	case ScriptLatin:
		return "latin"
	case ScriptJapanese:
		return "japanese"
	}
	return "unknown"
}

// Keyword is one spelling in the keyword table.
type Keyword struct {
	Text   string
	Kind   TokenKind
	Script Script
}

// keywordTable is kept sorted longest spelling first so a prefix scan
// finds もし終 before もし.
var keywordTable = sortedKeywords([]Keyword{
	{"if", TokenIf, ScriptLatin},
	{"then", TokenThen, ScriptLatin},
	{"elif", TokenElif, ScriptLatin},
	{"else", TokenElse, ScriptLatin},
	{"endif", TokenEndIf, ScriptLatin},
	{"while", TokenWhile, ScriptLatin},
	{"do", TokenDo, ScriptLatin},
	{"endwhile", TokenEndWhile, ScriptLatin},
	{"for", TokenFor, ScriptLatin},
	{"to", TokenTo, ScriptLatin},
	{"step", TokenStep, ScriptLatin},
	{"in", TokenIn, ScriptLatin},
	{"endfor", TokenEndFor, ScriptLatin},
	{"function", TokenFunction, ScriptLatin},
	{"endfunction", TokenEndFunction, ScriptLatin},
	{"procedure", TokenProcedure, ScriptLatin},
	{"endprocedure", TokenEndProcedure, ScriptLatin},
	{"return", TokenReturn, ScriptLatin},
	{"break", TokenBreak, ScriptLatin},
	{"and", TokenAnd, ScriptLatin},
	{"or", TokenOr, ScriptLatin},
	{"not", TokenNot, ScriptLatin},
	{"mod", TokenMod, ScriptLatin},
	{"div", TokenDiv, ScriptLatin},
	{"true", TokenTrue, ScriptLatin},
	{"false", TokenFalse, ScriptLatin},
	{"integer", TokenIntegerType, ScriptLatin},
	{"real", TokenRealType, ScriptLatin},
	{"string", TokenStringType, ScriptLatin},
	{"char", TokenCharType, ScriptLatin},
	{"boolean", TokenBooleanType, ScriptLatin},
	{"array", TokenArray, ScriptLatin},
	{"of", TokenOf, ScriptLatin},
	{"record", TokenRecord, ScriptLatin},

	{"もし", TokenIf, ScriptJapanese},
	{"ならば", TokenThen, ScriptJapanese},
	{"そうでなくもし", TokenElif, ScriptJapanese},
	{"そうでなければ", TokenElse, ScriptJapanese},
	{"もし終", TokenEndIf, ScriptJapanese},
	{"繰返し", TokenWhile, ScriptJapanese},
	{"実行", TokenDo, ScriptJapanese},
	{"繰返し終", TokenEndWhile, ScriptJapanese},
	{"反復", TokenFor, ScriptJapanese},
	{"まで", TokenTo, ScriptJapanese},
	{"増分", TokenStep, ScriptJapanese},
	{"の中", TokenIn, ScriptJapanese},
	{"反復終", TokenEndFor, ScriptJapanese},
	{"関数", TokenFunction, ScriptJapanese},
	{"関数終", TokenEndFunction, ScriptJapanese},
	{"手続き", TokenProcedure, ScriptJapanese},
	{"手続き終", TokenEndProcedure, ScriptJapanese},
	{"戻る", TokenReturn, ScriptJapanese},
	{"抜ける", TokenBreak, ScriptJapanese},
	{"かつ", TokenAnd, ScriptJapanese},
	{"または", TokenOr, ScriptJapanese},
	{"でない", TokenNot, ScriptJapanese},
	{"剰余", TokenMod, ScriptJapanese},
	{"商", TokenDiv, ScriptJapanese},
	{"真", TokenTrue, ScriptJapanese},
	{"偽", TokenFalse, ScriptJapanese},
	{"整数型", TokenIntegerType, ScriptJapanese},
	{"実数型", TokenRealType, ScriptJapanese},
	{"文字列型", TokenStringType, ScriptJapanese},
	{"文字型", TokenCharType, ScriptJapanese},
	{"論理型", TokenBooleanType, ScriptJapanese},
	{"配列", TokenArray, ScriptJapanese},
	{"の", TokenOf, ScriptJapanese},
	{"レコード", TokenRecord, ScriptJapanese},
})

var keywordIndex = indexKeywords(keywordTable)

func sortedKeywords(kws []Keyword) []Keyword {
	sort.SliceStable(kws, func(i, j int) bool {
		return utf8.RuneCountInString(kws[i].Text) > utf8.RuneCountInString(kws[j].Text)
	})
	return kws
}

func indexKeywords(kws []Keyword) map[string]Keyword {
	m := make(map[string]Keyword, len(kws))
	for _, kw := range kws {
		m[kw.Text] = kw
	}
	return m
}

// Keywords returns a copy of the keyword table, longest spelling first.
func Keywords() []Keyword {
	out := make([]Keyword, len(keywordTable))
	copy(out, keywordTable)
	return out
}

// LookupKeyword maps a complete identifier to its keyword kind, or
// TokenIdent when it is not a keyword.
func LookupKeyword(ident string) TokenKind {
	if kw, ok := keywordIndex[ident]; ok {
		return kw.Kind
	}
	return TokenIdent
}

// MatchKeyword finds the longest keyword that is a prefix of src and is
// followed either by end of input or by a rune for which isIdentPart
// reports false. It returns the keyword and its length in runes.
func MatchKeyword(src []rune, isIdentPart func(rune) bool) (Keyword, int, bool) {
	for _, kw := range keywordTable {
		n := 0
		matched := true
		for _, r := range kw.Text {
			if n >= len(src) || src[n] != r {
				matched = false
				break
			}
			n++
		}
		if !matched {
			continue
		}
		if n < len(src) && isIdentPart(src[n]) {
			continue
		}
		return kw, n, true
	}
	return Keyword{}, 0, false
}

// Operator is one fixed-string entry of the operator/delimiter table.
type Operator struct {
	Text string
	Kind TokenKind
}

// operatorTable is ordered longest first; multi-rune operators must be
// tried before their single-rune prefixes.
var operatorTable = []Operator{
	{"!=", TokenNE},
	{"<>", TokenNE},
	{"<=", TokenLE},
	{">=", TokenGE},
	{"==", TokenEQ},
	{"&&", TokenAndAnd},
	{"||", TokenOrOr},
	{"←", TokenAssign},
	{"≠", TokenNE},
	{"≤", TokenLE},
	{"≥", TokenGE},
	{"=", TokenEQ},
	{"<", TokenLT},
	{">", TokenGT},
	{"+", TokenPlus},
	{"-", TokenMinus},
	{"*", TokenStar},
	{"/", TokenSlash},
	{"%", TokenPercent},
	{"!", TokenBang},
	{"(", TokenLParen},
	{")", TokenRParen},
	{"[", TokenLBracket},
	{"]", TokenRBracket},
	{"{", TokenLBrace},
	{"}", TokenRBrace},
	{",", TokenComma},
	{".", TokenDot},
	{":", TokenColon},
	{";", TokenSemicolon},
}

// MatchOperator returns the longest operator or delimiter at the start
// of src and its length in runes.
func MatchOperator(src []rune) (Operator, int, bool) {
	for _, op := range operatorTable {
		n := 0
		matched := true
		for _, r := range op.Text {
			if n >= len(src) || src[n] != r {
				matched = false
				break
			}
			n++
		}
		if matched {
			return op, n, true
		}
	}
	return Operator{}, 0, false
}

// Operators returns a copy of the operator table.
func Operators() []Operator {
	out := make([]Operator, len(operatorTable))
	copy(out, operatorTable)
	return out
}
