package grammar

import (
	"fmt"
	"unicode/utf8"

	"golang.org/x/exp/ebnf"
)

type memoKey struct {
	name   string
	offset int
}

// Matcher matches the lexical productions of a grammar against text.
// Repetitions and sequences are greedy and alternatives take the longest
// match, so a Matcher recognises the same maximal-munch lexemes the
// lexer produces without backtracking.
type Matcher struct {
	grammar  ebnf.Grammar
	input    []rune
	memo     map[memoKey]int // -1 means no match
	visiting map[memoKey]bool
}

func NewMatcher(g ebnf.Grammar) *Matcher {
	return &Matcher{grammar: g}
}

// Match returns how many runes at the start of text the named lexical
// production matches. Zero means no match.
func (m *Matcher) Match(name, text string) (int, error) {
	prod, ok := m.grammar[name]
	if !ok || prod.Expr == nil {
		return 0, fmt.Errorf("production %q not found in grammar", name)
	}
	if !isLexical(name) {
		return 0, fmt.Errorf("production %q is not lexical", name)
	}
	m.input = []rune(text)
	m.memo = make(map[memoKey]int)
	m.visiting = make(map[memoKey]bool)
	if n := m.matchName(name, 0); n > 0 {
		return n, nil
	}
	return 0, nil
}

// Matches reports whether the named production matches all of text.
func (m *Matcher) Matches(name, text string) (bool, error) {
	n, err := m.Match(name, text)
	if err != nil {
		return false, err
	}
	return n > 0 && n == utf8.RuneCountInString(text), nil
}

func (m *Matcher) match(x ebnf.Expression, offset int) int {
	switch x := x.(type) {
	case *ebnf.Token:
		return m.matchToken(x.String, offset)

	case *ebnf.Range:
		return m.matchRange(x.Begin.String, x.End.String, offset)

	case ebnf.Sequence:
		total := 0
		for _, item := range x {
			n := m.match(item, offset+total)
			if n < 0 {
				return -1
			}
			total += n
		}
		return total

	case ebnf.Alternative:
		best := -1
		for _, alt := range x {
			if n := m.match(alt, offset); n > best {
				best = n
			}
		}
		return best

	case *ebnf.Repetition:
		total := 0
		for {
			n := m.match(x.Body, offset+total)
			if n <= 0 {
				return total
			}
			total += n
		}

	case *ebnf.Option:
		if n := m.match(x.Body, offset); n > 0 {
			return n
		}
		return 0

	case *ebnf.Group:
		return m.match(x.Body, offset)

	case *ebnf.Name:
		return m.matchName(x.String, offset)
	}
	return -1
}

// match and its helpers return -1 for no match, keeping empty matches
// distinct from failure inside sequences.
func (m *Matcher) matchName(name string, offset int) int {
	key := memoKey{name, offset}
	if n, ok := m.memo[key]; ok {
		return n
	}
	// Left recursion never matches.
	if m.visiting[key] {
		return -1
	}
	prod, ok := m.grammar[name]
	if !ok || prod.Expr == nil {
		m.memo[key] = -1
		return -1
	}
	m.visiting[key] = true
	n := m.match(prod.Expr, offset)
	delete(m.visiting, key)
	m.memo[key] = n
	return n
}

func (m *Matcher) matchToken(s string, offset int) int {
	rs := []rune(s)
	if offset+len(rs) > len(m.input) {
		return -1
	}
	for i, r := range rs {
		if m.input[offset+i] != r {
			return -1
		}
	}
	return len(rs)
}

func (m *Matcher) matchRange(begin, end string, offset int) int {
	if offset >= len(m.input) {
		return -1
	}
	lo, _ := utf8.DecodeRuneInString(begin)
	hi, _ := utf8.DecodeRuneInString(end)
	if r := m.input[offset]; r >= lo && r <= hi {
		return 1
	}
	return -1
}
