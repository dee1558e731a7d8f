// Package format renders front-end results for people and programs:
// tokens and syntax trees as JSON or text, and diagnostics as annotated
// source excerpts.
package format

import (
	"encoding"
	"io"

	"github.com/dhamidi/fepc/fe/ast"
	"github.com/dhamidi/fepc/fe/token"
)

// TokenEncoder writes a token sequence.
type TokenEncoder interface {
	Encode(toks []token.Token) error
}

// NodeEncoder writes a syntax tree.
type NodeEncoder interface {
	Encode(node ast.Node) error
}

func write(w io.Writer, m encoding.TextMarshaler) error {
	text, err := m.MarshalText()
	if err != nil {
		return err
	}
	_, err = w.Write(text)
	return err
}
