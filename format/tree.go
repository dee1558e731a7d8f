package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/fepc/fe/ast"
)

// TreeEncoder writes a syntax tree as indented text, one node per line:
//
//	Program
//	  Assign x @1:1
//	    value: IntegerLit 1 @1:5
type TreeEncoder struct {
	w    io.Writer
	node ast.Node
}

func NewTreeEncoder(w io.Writer) *TreeEncoder {
	return &TreeEncoder{w: w}
}

func (e *TreeEncoder) Encode(node ast.Node) error {
	e.node = node
	return write(e.w, e)
}

func (e *TreeEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	writeTree(&sb, nodeToJSON(e.node, ""), 0)
	return []byte(sb.String()), nil
}

func writeTree(sb *strings.Builder, jn *astJSONNode, depth int) {
	sb.WriteString(strings.Repeat("  ", depth))
	if jn.Role != "" {
		sb.WriteString(jn.Role + ": ")
	}
	sb.WriteString(jn.Kind)
	for _, s := range []string{jn.Op, jn.Name} {
		if s != "" {
			sb.WriteString(" " + s)
		}
	}
	if jn.Type != "" {
		sb.WriteString(" : " + jn.Type)
	}
	switch v := jn.Value.(type) {
	case nil:
	case string:
		fmt.Fprintf(sb, " %q", v)
	default:
		fmt.Fprintf(sb, " %v", v)
	}
	if jn.Pos != nil {
		fmt.Fprintf(sb, " @%d:%d", jn.Pos.Line, jn.Pos.Column)
	}
	sb.WriteByte('\n')
	for _, c := range jn.Children {
		writeTree(sb, c, depth+1)
	}
}
