package lexer

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/dhamidi/fepc/fe/token"
)

func parallelSource(lines int) string {
	var b strings.Builder
	for i := 0; i < lines; i++ {
		switch i % 7 {
		case 3:
			b.WriteString("/* a comment\nthat spans\nlines */ ")
		case 5:
			b.WriteString("もし 値 ≥ 0x1F ならば s ← 'ok' もし終 // tail\n")
		}
		fmt.Fprintf(&b, "v%d ← %d.5 * v%d\n", i, i, i)
	}
	return b.String()
}

func TestTokenizeParallelMatchesSequential(t *testing.T) {
	src := parallelSource(60)
	want, err := Tokenize(src)
	if err != nil {
		t.Fatal(err)
	}
	for _, size := range []int{1, 8, 40, 1000, 1 << 20} {
		for _, workers := range []int{1, 3, 0} {
			t.Run(fmt.Sprintf("size=%d/workers=%d", size, workers), func(t *testing.T) {
				got, err := TokenizeParallel(context.Background(), src, ParallelOptions{Workers: workers, ChunkSize: size})
				if err != nil {
					t.Fatal(err)
				}
				if !reflect.DeepEqual(got, want) {
					t.Errorf("parallel tokens differ from sequential")
				}
			})
		}
	}
}

func TestTokenizeParallelFirstError(t *testing.T) {
	src := parallelSource(20) + "bad @ here\n" + parallelSource(5) + "also # bad\n"
	_, want := Tokenize(src)
	if want == nil {
		t.Fatal("sequential tokenize succeeded")
	}
	_, err := TokenizeParallel(context.Background(), src, ParallelOptions{ChunkSize: 16})
	if err == nil || err.Error() != want.Error() {
		t.Errorf("got error %v, want %v", err, want)
	}
}

func TestTokenizeParallelUnclosedComment(t *testing.T) {
	src := parallelSource(10) + "/* never closed\n" + parallelSource(10)
	_, err := TokenizeParallel(context.Background(), src, ParallelOptions{ChunkSize: 16})
	var lexErr *Error
	if !errors.As(err, &lexErr) || lexErr.Kind != ErrUnterminatedComment {
		t.Errorf("got %v, want unterminated comment", err)
	}
}

func TestTokenizeParallelCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := TokenizeParallel(ctx, parallelSource(30), ParallelOptions{ChunkSize: 16})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("got %v, want context.Canceled", err)
	}
}

func TestSplitChunks(t *testing.T) {
	src := []rune("ab\ncd\nef\ngh")
	chunks := splitChunks(src, token.Start("f.fe"), 3)
	if len(chunks) != 4 {
		t.Fatalf("got %d chunks, want 4", len(chunks))
	}
	for i, c := range chunks {
		want := token.Start("f.fe").AdvanceString(string(src[:c.start]))
		if c.pos != want {
			t.Errorf("chunk %d pos = %+v, want %+v", i, c.pos, want)
		}
		if i > 0 && chunks[i-1].end != c.start {
			t.Errorf("chunk %d does not start where chunk %d ends", i, i-1)
		}
	}
	if chunks[len(chunks)-1].end != len(src) {
		t.Errorf("last chunk ends at %d, want %d", chunks[len(chunks)-1].end, len(src))
	}
}
