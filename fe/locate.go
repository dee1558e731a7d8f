package fe

import (
	"sort"

	"github.com/dhamidi/fepc/fe/token"
)

// locator maps rune offsets of one text to positions.
type locator struct {
	file  string
	src   []rune
	lines []int
}

func newLocator(file string, src []rune) *locator {
	lines := []int{0}
	for i, r := range src {
		if r == '\n' {
			lines = append(lines, i+1)
		}
	}
	return &locator{file: file, src: src, lines: lines}
}

func (l *locator) position(offset int) token.Position {
	if offset < 0 {
		offset = 0
	}
	if offset > len(l.src) {
		offset = len(l.src)
	}
	line := sort.Search(len(l.lines), func(i int) bool { return l.lines[i] > offset }) - 1
	return token.Position{
		File:   l.file,
		Offset: offset,
		Line:   line + 1,
		Column: offset - l.lines[line] + 1,
	}
}

func (l *locator) span(offset, n int) token.Span {
	start := l.position(offset)
	return token.Span{Start: start, End: l.position(offset + n)}
}

// line returns the text of the 1-based line n without its newline.
func (l *locator) line(n int) string {
	if n < 1 || n > len(l.lines) {
		return ""
	}
	start := l.lines[n-1]
	end := len(l.src)
	if n < len(l.lines) {
		end = l.lines[n] - 1
	}
	return string(l.src[start:end])
}
