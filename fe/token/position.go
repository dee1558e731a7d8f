package token

import "fmt"

// Position is a location in source text. Offset counts Unicode scalar
// values (runes) from the start of the source, not bytes.
type Position struct {
	File   string
	Offset int
	Line   int
	Column int
}

// Start is the position of the first rune of a source text.
func Start(file string) Position {
	return Position{File: file, Line: 1, Column: 1}
}

func (p Position) String() string {
	if p.File != "" {
		return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Advance returns the position after consuming r.
func (p Position) Advance(r rune) Position {
	p.Offset++
	if r == '\n' {
		p.Line++
		p.Column = 1
	} else {
		p.Column++
	}
	return p
}

// AdvanceString returns the position after consuming every rune of s.
func (p Position) AdvanceString(s string) Position {
	for _, r := range s {
		p = p.Advance(r)
	}
	return p
}

// Span is a half-open range [Start, End) of source text.
type Span struct {
	Start Position
	End   Position
}

func (s Span) String() string {
	return s.Start.String() + "-" + s.End.String()
}

// Len is the number of runes covered by the span.
func (s Span) Len() int {
	return s.End.Offset - s.Start.Offset
}

// Contains reports whether offset lies inside the span.
func (s Span) Contains(offset int) bool {
	return offset >= s.Start.Offset && offset < s.End.Offset
}
