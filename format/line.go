package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/fepc/fe/token"
)

// LineEncoder writes one token per line: position, kind and the quoted
// lexeme, separated by tabs.
type LineEncoder struct {
	w    io.Writer
	toks []token.Token
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

func (e *LineEncoder) Encode(toks []token.Token) error {
	e.toks = toks
	return write(e.w, e)
}

func (e *LineEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	for _, t := range e.toks {
		if t.Kind == token.TokenEOF {
			fmt.Fprintf(&sb, "%d:%d\t%s\n", t.Pos.Line, t.Pos.Column, t.Kind)
			continue
		}
		fmt.Fprintf(&sb, "%d:%d\t%s\t%q\n", t.Pos.Line, t.Pos.Column, t.Kind, t.Lexeme)
	}
	return []byte(sb.String()), nil
}
