package lexer

import (
	"context"
	"errors"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/dhamidi/fepc/fe/token"
)

// ParallelOptions controls TokenizeParallel. Zero values pick defaults.
type ParallelOptions struct {
	// Workers bounds concurrent chunk scans. Defaults to GOMAXPROCS.
	Workers int
	// ChunkSize is the minimum chunk length in runes.
	ChunkSize int
}

const defaultChunkSize = 64 << 10

type chunk struct {
	start  int
	end    int
	pos    token.Position
	tokens []token.Token
	err    error
}

// TokenizeParallel splits text into chunks at line boundaries, scans
// them concurrently and stitches the results. The result is identical to
// Tokenize. A chunk whose scan ends inside an unclosed block comment may
// continue into the next chunk, so from that chunk on the text is
// scanned sequentially.
func TokenizeParallel(ctx context.Context, text string, popts ParallelOptions, opts ...Option) ([]token.Token, error) {
	src := []rune(text)
	if popts.Workers <= 0 {
		popts.Workers = runtime.GOMAXPROCS(0)
	}
	if popts.ChunkSize <= 0 {
		popts.ChunkSize = defaultChunkSize
	}

	start := newLexer(nil, opts).pos
	chunks := splitChunks(src, start, popts.ChunkSize)
	if len(chunks) == 1 {
		return newLexer(src, opts).All()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(popts.Workers)
	for k := range chunks {
		c := &chunks[k]
		last := k == len(chunks)-1
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			c.tokens, c.err = scanChunk(src[c.start:c.end], c.pos, last, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []token.Token
	for k, c := range chunks {
		if c.err == nil {
			out = append(out, c.tokens...)
			continue
		}
		var lexErr *Error
		if errors.As(c.err, &lexErr) && lexErr.Kind == ErrUnterminatedComment && k < len(chunks)-1 {
			rest, err := newLexer(src[c.start:], append(opts[:len(opts):len(opts)], WithStart(c.pos))).All()
			if err != nil {
				return nil, err
			}
			return append(out, rest...), nil
		}
		return nil, c.err
	}
	return out, nil
}

func scanChunk(src []rune, pos token.Position, last bool, opts []Option) ([]token.Token, error) {
	toks, err := newLexer(src, append(opts[:len(opts):len(opts)], WithStart(pos))).All()
	if err != nil {
		return nil, err
	}
	if !last {
		toks = toks[:len(toks)-1]
	}
	return toks, nil
}

// splitChunks cuts src after a newline once a chunk holds at least size
// runes. No token other than a block comment spans a newline.
func splitChunks(src []rune, start token.Position, size int) []chunk {
	chunks := []chunk{{start: 0, pos: start}}
	pos := start
	for i, r := range src {
		pos = pos.Advance(r)
		cur := &chunks[len(chunks)-1]
		if r == '\n' && i+1-cur.start >= size && i+1 < len(src) {
			cur.end = i + 1
			chunks = append(chunks, chunk{start: i + 1, pos: pos})
		}
	}
	chunks[len(chunks)-1].end = len(src)
	return chunks
}
