package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/fepc/fe/token"
)

type JSONEncoder struct {
	w    io.Writer
	toks []token.Token
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(toks []token.Token) error {
	e.toks = toks
	return write(e.w, e)
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	data := make([]jsonToken, len(e.toks))
	for i, t := range e.toks {
		data[i] = jsonToken{
			Kind:   t.Kind.String(),
			Lexeme: t.Lexeme,
			Span:   spanToJSON(t.Span()),
		}
	}
	text, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(text, '\n'), nil
}

type jsonToken struct {
	Kind   string   `json:"kind"`
	Lexeme string   `json:"lexeme,omitempty"`
	Span   jsonSpan `json:"span"`
}

type jsonSpan struct {
	Start jsonPosition `json:"start"`
	End   jsonPosition `json:"end"`
}

type jsonPosition struct {
	Offset int `json:"offset"`
	Line   int `json:"line"`
	Column int `json:"column"`
}

func spanToJSON(s token.Span) jsonSpan {
	return jsonSpan{Start: positionToJSON(s.Start), End: positionToJSON(s.End)}
}

func positionToJSON(p token.Position) jsonPosition {
	return jsonPosition{Offset: p.Offset, Line: p.Line, Column: p.Column}
}
