package lexer

import (
	"bufio"
	"context"
	"errors"
	"io"
	"unicode/utf8"

	"github.com/dhamidi/fepc/fe/token"
)

var ErrStreamClosed = errors.New("stream closed")

// StreamState is the serializable part of a paused Stream: the text not
// yet turned into tokens and the position of its first rune.
type StreamState struct {
	Pending string         `json:"pending"`
	Base    token.Position `json:"base"`
}

// Stream tokenizes text that arrives in pieces. A token is only emitted
// once enough input follows it that no later piece can change it, so
// tokens split across Write calls come out whole.
type Stream struct {
	opts   []Option
	buf    []rune
	base   token.Position
	closed bool
}

func NewStream(opts ...Option) *Stream {
	return &Stream{opts: opts, base: newLexer(nil, opts).pos}
}

// ResumeStream continues a stream from a snapshot.
func ResumeStream(state StreamState, opts ...Option) *Stream {
	return &Stream{opts: opts, buf: []rune(state.Pending), base: state.Base}
}

func (s *Stream) Snapshot() StreamState {
	return StreamState{Pending: string(s.buf), Base: s.base}
}

// Write appends chunk and returns the tokens that are now final. A
// tokenizer error is returned only once later input can no longer
// resolve it.
func (s *Stream) Write(chunk string) ([]token.Token, error) {
	if s.closed {
		return nil, ErrStreamClosed
	}
	s.buf = append(s.buf, []rune(chunk)...)
	return s.drain(false)
}

// Close flushes the remaining input and returns the final tokens,
// ending with EOF.
func (s *Stream) Close() ([]token.Token, error) {
	if s.closed {
		return nil, ErrStreamClosed
	}
	s.closed = true
	return s.drain(true)
}

func (s *Stream) drain(final bool) ([]token.Token, error) {
	opts := append(s.opts[:len(s.opts):len(s.opts)], WithStart(s.base))
	l := newLexer(s.buf, opts)
	limit := s.base.Offset + len(s.buf)

	var out []token.Token
	consumed, next := 0, s.base
	for {
		tok, err := l.NextToken()
		if err != nil {
			var lexErr *Error
			if !final && errors.As(err, &lexErr) && lexErr.Span.End.Offset+relexSlack > limit {
				break
			}
			s.commit(consumed, next)
			return out, err
		}
		if tok.Kind == token.TokenEOF {
			if final {
				out = append(out, tok)
				consumed, next = l.i, l.pos
			}
			break
		}
		if !final && tok.End().Offset+relexSlack > limit {
			break
		}
		out = append(out, tok)
		consumed, next = l.i, l.pos
	}
	s.commit(consumed, next)
	return out, nil
}

func (s *Stream) commit(consumed int, next token.Position) {
	s.buf = append([]rune(nil), s.buf[consumed:]...)
	s.base = next
}

const readChunk = 4096

// TokenizeReader streams tokens from r to fn. Reading stops at the first
// error from r, from fn, from tokenizing, or when ctx is done.
func TokenizeReader(ctx context.Context, r io.Reader, fn func(token.Token) error, opts ...Option) error {
	br := bufio.NewReader(r)
	s := NewStream(opts...)
	buf := make([]byte, readChunk)
	var carry []byte

	emit := func(toks []token.Token) error {
		for _, tok := range toks {
			if err := fn(tok); err != nil {
				return err
			}
		}
		return nil
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		n, rerr := br.Read(buf)
		data := append(carry, buf[:n]...)
		cut := completeUTF8(data)
		if rerr == io.EOF {
			cut = len(data)
		}
		carry = append([]byte(nil), data[cut:]...)

		toks, err := s.Write(string(data[:cut]))
		if err := emit(toks); err != nil {
			return err
		}
		if err != nil {
			return err
		}

		if rerr == io.EOF {
			toks, err := s.Close()
			if err := emit(toks); err != nil {
				return err
			}
			return err
		}
		if rerr != nil {
			return rerr
		}
	}
}

// completeUTF8 returns the length of the longest prefix of data that
// does not end inside a multi-byte sequence.
func completeUTF8(data []byte) int {
	for k := 1; k < utf8.UTFMax && k <= len(data); k++ {
		i := len(data) - k
		if !utf8.RuneStart(data[i]) {
			continue
		}
		if !utf8.FullRune(data[i:]) {
			return i
		}
		break
	}
	return len(data)
}
