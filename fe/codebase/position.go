package codebase

import (
	"unicode/utf16"

	"github.com/dhamidi/fepc/fe/lexer"
	"github.com/dhamidi/fepc/fe/token"
)

// Editors address text by line and UTF-16 code unit; the front end uses
// rune offsets. lineIndex converts between the two for one text.
type lineIndex struct {
	src   []rune
	lines []int
}

func newLineIndex(text string) *lineIndex {
	src := []rune(text)
	lines := []int{0}
	for i, r := range src {
		if r == '\n' {
			lines = append(lines, i+1)
		}
	}
	return &lineIndex{src: src, lines: lines}
}

// offset maps a zero-based line and UTF-16 character to a rune offset.
// Positions past the end of a line clamp to the line's end.
func (x *lineIndex) offset(line, char int) int {
	if line < 0 {
		return 0
	}
	if line >= len(x.lines) {
		return len(x.src)
	}
	i := x.lines[line]
	for units := 0; i < len(x.src) && x.src[i] != '\n'; i++ {
		n := utf16.RuneLen(x.src[i])
		if n < 0 {
			n = 1
		}
		if units+n > char {
			break
		}
		units += n
	}
	return i
}

// utf16Column is the UTF-16 length of the text between the start of
// pos's line and pos.
func (x *lineIndex) utf16Column(pos token.Position) int {
	line := pos.Line - 1
	if line < 0 || line >= len(x.lines) {
		return 0
	}
	units := 0
	for i := x.lines[line]; i < pos.Offset && i < len(x.src); i++ {
		n := utf16.RuneLen(x.src[i])
		if n < 0 {
			n = 1
		}
		units += n
	}
	return units
}

// edit builds a lexer edit from an editor range and replacement text.
func (x *lineIndex) edit(startLine, startChar, endLine, endChar int, text string) lexer.Edit {
	start := x.offset(startLine, startChar)
	end := x.offset(endLine, endChar)
	if end < start {
		start, end = end, start
	}
	return lexer.Edit{Start: start, End: end, Text: text}
}
