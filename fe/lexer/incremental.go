package lexer

import (
	"errors"
	"fmt"
	"sort"

	"github.com/dhamidi/fepc/fe/token"
)

var ErrEditOutOfRange = errors.New("edit out of range")

// Edit replaces the runes in [Start, End) with Text. Offsets are rune
// offsets into the text before the edit.
type Edit struct {
	Start int
	End   int
	Text  string
}

// RelexStats reports how much of the previous token sequence survived
// an edit.
type RelexStats struct {
	Reused     int
	Relexed    int
	FullRescan bool
}

// relexSlack is how far past a token's end scanning may look. A token
// ending at least this far before an edit cannot be changed by it.
const relexSlack = 3

// Incremental holds a document and its tokens and keeps them current
// across edits. The tokens after every Apply equal a fresh Tokenize of
// the edited text.
type Incremental struct {
	opts   []Option
	file   string
	text   []rune
	tokens []token.Token
	valid  bool
}

// NewIncremental tokenizes text. A tokenizer error is returned, but the
// Incremental is still usable: the next Apply rescans in full.
func NewIncremental(text string, opts ...Option) (*Incremental, error) {
	inc := &Incremental{opts: opts, text: []rune(text)}
	inc.file = newLexer(nil, opts).pos.File
	_, err := inc.rescan()
	return inc, err
}

func (inc *Incremental) Text() string {
	return string(inc.text)
}

// Tokens returns the current tokens, or nil when the text does not
// tokenize.
func (inc *Incremental) Tokens() []token.Token {
	if !inc.valid {
		return nil
	}
	out := make([]token.Token, len(inc.tokens))
	copy(out, inc.tokens)
	return out
}

func (inc *Incremental) rescan() ([]token.Token, error) {
	toks, err := newLexer(inc.text, inc.opts).All()
	if err != nil {
		inc.tokens, inc.valid = nil, false
		return nil, err
	}
	inc.tokens, inc.valid = toks, true
	return toks, nil
}

// Apply edits the document and returns its new tokens. Tokens ending
// well before the edit are kept, a window starting at the last of them
// is scanned again, and scanning stops as soon as it meets an old token
// at its shifted offset past the edit; everything after is shifted.
func (inc *Incremental) Apply(e Edit) ([]token.Token, RelexStats, error) {
	if e.Start < 0 || e.End < e.Start || e.End > len(inc.text) {
		return nil, RelexStats{}, fmt.Errorf("%w: [%d, %d) in text of length %d", ErrEditOutOfRange, e.Start, e.End, len(inc.text))
	}

	ins := []rune(e.Text)
	newText := make([]rune, 0, len(inc.text)-(e.End-e.Start)+len(ins))
	newText = append(newText, inc.text[:e.Start]...)
	newText = append(newText, ins...)
	newText = append(newText, inc.text[e.End:]...)

	old := inc.tokens
	wasValid := inc.valid
	inc.text = newText

	if !wasValid {
		toks, err := inc.rescan()
		return toks, RelexStats{Relexed: len(toks), FullRescan: true}, err
	}

	delta := len(ins) - (e.End - e.Start)
	insEnd := e.Start + len(ins)

	// Keep tokens that end at least relexSlack runes before the edit.
	keep := 0
	for keep < len(old)-1 && old[keep].End().Offset+relexSlack <= e.Start {
		keep++
	}
	restart := token.Start(inc.file)
	if keep > 0 {
		restart = old[keep-1].End()
	}

	out := make([]token.Token, keep, len(old)+len(ins))
	copy(out, old[:keep])
	stats := RelexStats{Reused: keep}

	opts := append(inc.opts[:len(inc.opts):len(inc.opts)], WithStart(restart))
	l := newLexer(newText[restart.Offset:], opts)
	for {
		tok, err := l.NextToken()
		if err != nil {
			inc.tokens, inc.valid = nil, false
			return nil, stats, err
		}
		stats.Relexed++

		if tok.Kind != token.TokenEOF && tok.Pos.Offset >= insEnd {
			if j, ok := resyncIndex(old, keep, tok, delta, e.End); ok {
				out = append(out, tok)
				out = append(out, shiftTokens(old[j+1:], old[j], tok)...)
				stats.Reused += len(old) - j - 1
				inc.tokens = out
				return inc.Tokens(), stats, nil
			}
		}

		out = append(out, tok)
		if tok.Kind == token.TokenEOF {
			inc.tokens = out
			return inc.Tokens(), stats, nil
		}
	}
}

// resyncIndex finds the old token that tok corresponds to once the edit
// delta is undone. Only tokens starting at or after the end of the
// replaced range qualify.
func resyncIndex(old []token.Token, from int, tok token.Token, delta, editEnd int) (int, bool) {
	want := tok.Pos.Offset - delta
	if want < editEnd {
		return 0, false
	}
	j := from + sort.Search(len(old)-from, func(k int) bool {
		return old[from+k].Pos.Offset >= want
	})
	if j >= len(old) || old[j].Pos.Offset != want {
		return 0, false
	}
	if old[j].Kind != tok.Kind || old[j].Lexeme != tok.Lexeme {
		return 0, false
	}
	return j, true
}

// shiftTokens moves tokens that followed anchor in the old text to
// follow moved in the new one. Columns only change on anchor's line.
func shiftTokens(rest []token.Token, anchor, moved token.Token) []token.Token {
	offDelta := moved.Pos.Offset - anchor.Pos.Offset
	lineDelta := moved.Pos.Line - anchor.Pos.Line
	colDelta := moved.Pos.Column - anchor.Pos.Column
	out := make([]token.Token, len(rest))
	for k, t := range rest {
		if t.Pos.Line == anchor.Pos.Line {
			t.Pos.Column += colDelta
		}
		t.Pos.Offset += offDelta
		t.Pos.Line += lineDelta
		out[k] = t
	}
	return out
}
