package codebase

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dhamidi/fepc/fe/ast"
	"github.com/dhamidi/fepc/fe/lexer"
	"github.com/dhamidi/fepc/fe/token"
)

type SymbolKind int

const (
	SymbolFunction SymbolKind = iota
	SymbolProcedure
	SymbolVariable
	SymbolParameter
)

// Symbol is a declared name. Span covers the whole declaration and
// NameSpan only the name.
type Symbol struct {
	Name     string
	Detail   string
	Kind     SymbolKind
	Span     token.Span
	NameSpan token.Span
	Children []Symbol
}

var openers = map[token.TokenKind]bool{
	token.TokenIf:        true,
	token.TokenWhile:     true,
	token.TokenFor:       true,
	token.TokenFunction:  true,
	token.TokenProcedure: true,
}

var closers = map[token.TokenKind]bool{
	token.TokenEndIf:        true,
	token.TokenEndWhile:     true,
	token.TokenEndFor:       true,
	token.TokenEndFunction:  true,
	token.TokenEndProcedure: true,
}

// tokenIndex finds the token starting at offset.
func tokenIndex(toks []token.Token, offset int) (int, bool) {
	i := sort.Search(len(toks), func(i int) bool { return toks[i].Pos.Offset >= offset })
	return i, i < len(toks) && toks[i].Pos.Offset == offset
}

// blockSpan covers a block from its opening keyword at toks[i] to the
// matching closing keyword.
func blockSpan(toks []token.Token, i int) token.Span {
	depth := 0
	for j := i; j < len(toks); j++ {
		switch {
		case openers[toks[j].Kind]:
			depth++
		case closers[toks[j].Kind]:
			depth--
			if depth == 0 {
				return token.Span{Start: toks[i].Pos, End: toks[j].End()}
			}
		}
	}
	return token.Span{Start: toks[i].Pos, End: toks[len(toks)-1].End()}
}

func nameSpan(toks []token.Token, i int) token.Span {
	if i+1 < len(toks) && toks[i+1].Kind == token.TokenIdent {
		return toks[i+1].Span()
	}
	return toks[i].Span()
}

func identSpan(toks []token.Token, at token.Position) token.Span {
	if i, ok := tokenIndex(toks, at.Offset); ok {
		return toks[i].Span()
	}
	return token.Span{Start: at, End: at}
}

// Symbols lists the routines and top-level variables of a checked file.
// A file that did not parse has no symbols.
func (f *File) Symbols() []Symbol {
	if f == nil || f.Report == nil || f.Report.Program == nil {
		return nil
	}
	toks := f.Report.Tokens
	var out []Symbol
	seen := make(map[string]bool)
	for _, stmt := range f.Report.Program.Body {
		switch s := stmt.(type) {
		case *ast.FunctionDecl:
			out = append(out, routineSymbol(toks, SymbolFunction, s.At, s.Name, signature(s.Params, s.ReturnType), s.Params, s.Locals))
		case *ast.ProcedureDecl:
			out = append(out, routineSymbol(toks, SymbolProcedure, s.At, s.Name, signature(s.Params, nil), s.Params, s.Locals))
		case *ast.Assign:
			if seen[s.Name] {
				continue
			}
			seen[s.Name] = true
			span := identSpan(toks, s.At)
			out = append(out, Symbol{Name: s.Name, Kind: SymbolVariable, Span: span, NameSpan: span})
		}
	}
	return out
}

func routineSymbol(toks []token.Token, kind SymbolKind, at token.Position, name, detail string, params, locals []ast.Param) Symbol {
	sym := Symbol{Name: name, Detail: detail, Kind: kind}
	if i, ok := tokenIndex(toks, at.Offset); ok {
		sym.Span = blockSpan(toks, i)
		sym.NameSpan = nameSpan(toks, i)
	}
	for _, p := range params {
		span := identSpan(toks, p.At)
		sym.Children = append(sym.Children, Symbol{Name: p.Name, Detail: p.Type.String(), Kind: SymbolParameter, Span: span, NameSpan: span})
	}
	for _, l := range locals {
		span := identSpan(toks, l.At)
		sym.Children = append(sym.Children, Symbol{Name: l.Name, Detail: l.Type.String(), Kind: SymbolVariable, Span: span, NameSpan: span})
	}
	return sym
}

func signature(params []ast.Param, ret ast.DataType) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.Name + ": " + p.Type.String()
	}
	sig := "(" + strings.Join(parts, ", ") + ")"
	if ret != nil {
		sig += ": " + ret.String()
	}
	return sig
}

// TokenAt returns the token covering a rune offset.
func (f *File) TokenAt(offset int) (token.Token, bool) {
	if f == nil || f.Report == nil {
		return token.Token{}, false
	}
	toks := f.Report.Tokens
	i := sort.Search(len(toks), func(i int) bool { return toks[i].End().Offset > offset })
	if i < len(toks) && toks[i].Kind != token.TokenEOF && toks[i].Span().Contains(offset) {
		return toks[i], true
	}
	return token.Token{}, false
}

// Hover describes the token at a rune offset, in Markdown.
func (f *File) Hover(offset int) (string, token.Span, bool) {
	tok, ok := f.TokenAt(offset)
	if !ok {
		return "", token.Span{}, false
	}
	var text string
	switch {
	case tok.Kind == token.TokenIdent:
		text = f.describeName(tok.Lexeme)
	case tok.Kind.IsKeyword():
		text = describeKeyword(tok)
	case tok.Kind == token.TokenInteger:
		if v, err := lexer.IntValue(tok.Lexeme); err == nil {
			text = fmt.Sprintf("integer literal `%d`", v)
		}
	case tok.Kind == token.TokenReal:
		if v, err := lexer.RealValue(tok.Lexeme); err == nil {
			text = fmt.Sprintf("real literal `%g`", v)
		}
	case tok.Kind == token.TokenString, tok.Kind == token.TokenChar:
		if v, err := lexer.StringValue(tok.Lexeme); err == nil {
			text = fmt.Sprintf("%s literal %q, %d characters", strings.TrimSuffix(tok.Kind.String(), "Literal"), v, len([]rune(v)))
		}
	default:
		text = fmt.Sprintf("operator `%s`", tok.Lexeme)
	}
	if text == "" {
		return "", token.Span{}, false
	}
	return text, tok.Span(), true
}

func (f *File) describeName(name string) string {
	for _, sym := range f.Symbols() {
		switch {
		case sym.Name == name && sym.Kind == SymbolFunction:
			return "```\nfunction " + name + sym.Detail + "\n```"
		case sym.Name == name && sym.Kind == SymbolProcedure:
			return "```\nprocedure " + name + sym.Detail + "\n```"
		case sym.Name == name:
			return fmt.Sprintf("variable `%s`, first assigned at %s", name, sym.Span.Start)
		}
		for _, child := range sym.Children {
			if child.Name == name {
				kind := "local"
				if child.Kind == SymbolParameter {
					kind = "parameter"
				}
				return fmt.Sprintf("%s `%s: %s` of %s", kind, name, child.Detail, sym.Name)
			}
		}
	}
	return fmt.Sprintf("identifier `%s`", name)
}

func describeKeyword(tok token.Token) string {
	var spellings []string
	for _, kw := range token.Keywords() {
		if kw.Kind == tok.Kind && kw.Text != tok.Lexeme {
			spellings = append(spellings, "`"+kw.Text+"`")
		}
	}
	text := fmt.Sprintf("keyword `%s`", tok.Lexeme)
	if len(spellings) > 0 {
		text += ", also written " + strings.Join(spellings, ", ")
	}
	return text
}
