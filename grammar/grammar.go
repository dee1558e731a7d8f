// Package grammar holds the reference EBNF grammar of FE pseudocode, in
// the notation of golang.org/x/exp/ebnf.
package grammar

import (
	_ "embed"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/exp/ebnf"
)

//go:embed fe.ebnf
var Source string

const (
	Filename = "fe.ebnf"
	Start    = "Program"
)

func Parse() (ebnf.Grammar, error) {
	return ebnf.Parse(Filename, strings.NewReader(Source))
}

// Verify parses the grammar and checks that every production is defined
// and reachable from Start.
func Verify() error {
	g, err := Parse()
	if err != nil {
		return err
	}
	return ebnf.Verify(g, Start)
}

// Productions lists the grammar's production names in lexical order.
func Productions(g ebnf.Grammar) []string {
	names := make([]string, 0, len(g))
	for name := range g {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Terminals lists every literal string the grammar's non-lexical
// productions mention, in lexical order.
func Terminals(g ebnf.Grammar) []string {
	seen := make(map[string]bool)
	for name, prod := range g {
		if isLexical(name) {
			continue
		}
		collect(prod.Expr, seen)
	}
	out := make([]string, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

func collect(x ebnf.Expression, seen map[string]bool) {
	switch x := x.(type) {
	case ebnf.Alternative:
		for _, e := range x {
			collect(e, seen)
		}
	case ebnf.Sequence:
		for _, e := range x {
			collect(e, seen)
		}
	case *ebnf.Group:
		collect(x.Body, seen)
	case *ebnf.Option:
		collect(x.Body, seen)
	case *ebnf.Repetition:
		collect(x.Body, seen)
	case *ebnf.Token:
		seen[x.String] = true
	}
}

// isLexical follows the ebnf package: productions named with a leading
// lower-case letter are lexical.
func isLexical(name string) bool {
	r, _ := utf8.DecodeRuneInString(name)
	return !unicode.IsUpper(r)
}
