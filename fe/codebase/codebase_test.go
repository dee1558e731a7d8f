package codebase

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/dhamidi/fepc/fe"
	"github.com/dhamidi/fepc/fe/lexer"
	"github.com/dhamidi/fepc/fe/token"
)

func TestUpdateFile(t *testing.T) {
	c := New(".", fe.DefaultConfig())
	f := c.UpdateFile("ws/a.fe", "x ← 1\ny ← x + 2\n")

	if f.Report.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", f.Report.Diagnostics)
	}
	if got := len(f.Report.Program.Body); got != 2 {
		t.Errorf("got %d statements, want 2", got)
	}
	if got := f.Report.Tokens[0].Pos.File; got != "a.fe" {
		t.Errorf("got file %q, want %q", got, "a.fe")
	}
	if !f.Relex.FullRescan {
		t.Errorf("got FullRescan false, want true")
	}
	if c.GetFile("ws/a.fe") != f {
		t.Errorf("GetFile did not return the updated file")
	}
}

func TestEditFileMatchesCheck(t *testing.T) {
	c := New(".", fe.DefaultConfig())
	path := "ws/a.fe"
	c.UpdateFile(path, "x ← 1\ny ← 2\nz ← x + y\n")

	cfg := fe.DefaultConfig()
	cfg.File = "a.fe"

	edits := []struct {
		name string
		edit lexer.Edit
		want string
	}{
		{"rewrite literal", lexer.Edit{Start: 10, End: 11, Text: "20"}, "x ← 1\ny ← 20\nz ← x + y\n"},
		{"bad character", lexer.Edit{Start: 0, End: 0, Text: "@"}, "@x ← 1\ny ← 20\nz ← x + y\n"},
		{"remove bad character", lexer.Edit{Start: 0, End: 1, Text: ""}, "x ← 1\ny ← 20\nz ← x + y\n"},
		{"syntax error", lexer.Edit{Start: 15, End: 22, Text: "←"}, "x ← 1\ny ← 20\nz ←\n"},
		{"append statement", lexer.Edit{Start: 15, End: 16, Text: "← 3\nw ← z"}, "x ← 1\ny ← 20\nz ← 3\nw ← z\n"},
	}

	for _, tt := range edits {
		t.Run(tt.name, func(t *testing.T) {
			f, err := c.EditFile(path, tt.edit)
			if err != nil {
				t.Fatal(err)
			}
			if f.Content != tt.want {
				t.Fatalf("got content %q, want %q", f.Content, tt.want)
			}
			want := fe.Check(tt.want, cfg)
			if !reflect.DeepEqual(f.Report.Tokens, want.Tokens) {
				t.Errorf("tokens differ:\n got %v\nwant %v", f.Report.Tokens, want.Tokens)
			}
			if got, wantN := len(f.Report.Diagnostics), len(want.Diagnostics); got != wantN {
				t.Fatalf("got %d diagnostics, want %d: %v", got, wantN, f.Report.Diagnostics)
			}
			for i, d := range f.Report.Diagnostics {
				if d.Message != want.Diagnostics[i].Message {
					t.Errorf("diagnostic %d: got %q, want %q", i, d.Message, want.Diagnostics[i].Message)
				}
			}
		})
	}
}

func TestEditFileReusesTokens(t *testing.T) {
	c := New(".", fe.DefaultConfig())
	c.UpdateFile("a.fe", "x ← 1\ny ← 2\nz ← 3\n")

	f, err := c.EditFile("a.fe", lexer.Edit{Start: 16, End: 17, Text: "4"})
	if err != nil {
		t.Fatal(err)
	}
	if f.Relex.FullRescan {
		t.Errorf("got a full rescan for a one-character edit")
	}
	if f.Relex.Reused == 0 {
		t.Errorf("got no reused tokens, stats %+v", f.Relex)
	}
}

func TestEditFileBatchFailsWhole(t *testing.T) {
	c := New(".", fe.DefaultConfig())
	c.UpdateFile("a.fe", "x ← 1")

	_, err := c.EditFile("a.fe",
		lexer.Edit{Start: 4, End: 5, Text: "2"},
		lexer.Edit{Start: 100, End: 101, Text: "z"},
	)
	if !errors.Is(err, lexer.ErrEditOutOfRange) {
		t.Fatalf("got %v, want %v", err, lexer.ErrEditOutOfRange)
	}
	if got := c.GetFile("a.fe").Content; got != "x ← 1" {
		t.Errorf("got content %q after a failed batch, want %q", got, "x ← 1")
	}

	f, err := c.EditFile("a.fe", lexer.Edit{Start: 5, End: 5, Text: "0"})
	if err != nil {
		t.Fatal(err)
	}
	if f.Content != "x ← 10" {
		t.Errorf("got content %q, want %q", f.Content, "x ← 10")
	}
	cfg := fe.DefaultConfig()
	cfg.File = "a.fe"
	want := fe.Check("x ← 10", cfg)
	if !reflect.DeepEqual(f.Report.Tokens, want.Tokens) {
		t.Errorf("tokens differ:\n got %v\nwant %v", f.Report.Tokens, want.Tokens)
	}
}

func TestEditFileBatchStats(t *testing.T) {
	src := "x ← 1\ny ← 2\nz ← 3\n"
	first := lexer.Edit{Start: 4, End: 5, Text: "7"}
	second := lexer.Edit{Start: 16, End: 17, Text: "8"}

	one := New(".", fe.DefaultConfig())
	one.UpdateFile("a.fe", src)
	a, err := one.EditFile("a.fe", first)
	if err != nil {
		t.Fatal(err)
	}
	b, err := one.EditFile("a.fe", second)
	if err != nil {
		t.Fatal(err)
	}

	batch := New(".", fe.DefaultConfig())
	batch.UpdateFile("a.fe", src)
	f, err := batch.EditFile("a.fe", first, second)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := f.Relex.Reused, a.Relex.Reused+b.Relex.Reused; got != want {
		t.Errorf("got Reused %d, want %d", got, want)
	}
	if got, want := f.Relex.Relexed, a.Relex.Relexed+b.Relex.Relexed; got != want {
		t.Errorf("got Relexed %d, want %d", got, want)
	}
}

func TestEditFileUnknown(t *testing.T) {
	c := New(".", fe.DefaultConfig())
	_, err := c.EditFile("missing.fe", lexer.Edit{Text: "x"})
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("got %v, want %v", err, os.ErrNotExist)
	}
}

func TestScanAll(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"a.fe":          "x ← 1\n",
		"sub/b.fe":      "y ← 2\n",
		".hidden/c.fe":  "z ← 3\n",
		"notes.txt":     "not source",
		"sub/broken.fe": "もし x ならば\n",
	}
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	c := New(dir, fe.DefaultConfig())
	if err := c.ScanAll(); err != nil {
		t.Fatal(err)
	}

	want := []string{
		filepath.Join(dir, "a.fe"),
		filepath.Join(dir, "sub/b.fe"),
		filepath.Join(dir, "sub/broken.fe"),
	}
	if got := c.Paths(); !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
	if !c.GetFile(filepath.Join(dir, "sub/broken.fe")).Report.HasErrors() {
		t.Errorf("got no errors for an unterminated if")
	}
}

func TestScanAllReportsUnreadable(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "a.fe")
	if err := os.WriteFile(good, []byte("x ← 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(filepath.Join(dir, "missing"), filepath.Join(dir, "dangling.fe")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	c := New(dir, fe.DefaultConfig())
	err := c.ScanAll()
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("got %v, want %v", err, os.ErrNotExist)
	}
	if c.GetFile(good) == nil {
		t.Errorf("readable file was not scanned")
	}

	if err := New(filepath.Join(dir, "nowhere"), fe.DefaultConfig()).ScanAll(); err == nil {
		t.Errorf("got no error for a missing root")
	}
}

const symbolSource = "function f(a: integer): boolean\n  t: integer\n  t ← a\n  return t > 0\nendfunction\nx ← 1\nx ← 2\nprocedure p()\n  return\nendprocedure\n"

func TestSymbols(t *testing.T) {
	c := New(".", fe.DefaultConfig())
	f := c.UpdateFile("a.fe", symbolSource)

	syms := f.Symbols()
	type flat struct {
		Name, Detail string
		Kind         SymbolKind
		Children     int
	}
	var got []flat
	for _, s := range syms {
		got = append(got, flat{s.Name, s.Detail, s.Kind, len(s.Children)})
	}
	want := []flat{
		{"f", "(a: integer): boolean", SymbolFunction, 2},
		{"x", "", SymbolVariable, 0},
		{"p", "()", SymbolProcedure, 0},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}

	fn := syms[0]
	if fn.NameSpan.Start.Offset != 9 || fn.NameSpan.Len() != 1 {
		t.Errorf("got name span %v, want offset 9 length 1", fn.NameSpan)
	}
	if fn.Span.Start.Offset != 0 || fn.Span.End.Line != 5 {
		t.Errorf("got span %v, want lines 1 to 5", fn.Span)
	}
	if fn.Children[0].Kind != SymbolParameter || fn.Children[1].Kind != SymbolVariable {
		t.Errorf("got children %v, want a parameter then a local", fn.Children)
	}
	if syms[1].Span.Start.Line != 6 {
		t.Errorf("got x at line %d, want 6", syms[1].Span.Start.Line)
	}
}

func TestSymbolsWithErrors(t *testing.T) {
	c := New(".", fe.DefaultConfig())
	f := c.UpdateFile("a.fe", "function f(\n")
	if syms := f.Symbols(); syms != nil {
		t.Errorf("got %v, want no symbols", syms)
	}
}

func TestHover(t *testing.T) {
	c := New(".", fe.DefaultConfig())
	src := symbolSource + "もし x > 0 ならば\n  p()\nもし終\n"
	f := c.UpdateFile("a.fe", src)

	offsetOf := func(line, col int) int {
		return newLineIndex(src).offset(line-1, col-1)
	}

	tests := []struct {
		name   string
		offset int
		want   string
	}{
		{"function name", offsetOf(1, 10), "```\nfunction f(a: integer): boolean\n```"},
		{"parameter use", offsetOf(3, 7), "parameter `a: integer` of f"},
		{"local use", offsetOf(3, 3), "local `t: integer` of f"},
		{"variable", offsetOf(11, 4), "variable `x`, first assigned at a.fe:6:1"},
		{"procedure call", offsetOf(12, 3), "```\nprocedure p()\n```"},
		{"japanese keyword", offsetOf(11, 1), "keyword `もし`, also written `if`"},
		{"latin keyword", offsetOf(1, 1), "keyword `function`, also written `関数`"},
		{"integer literal", offsetOf(6, 5), "integer literal `1`"},
		{"operator", offsetOf(4, 12), "operator `>`"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _, ok := f.Hover(tt.offset)
			if !ok {
				t.Fatalf("got no hover at offset %d", tt.offset)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}

	if _, _, ok := f.Hover(offsetOf(6, 2)); ok {
		t.Errorf("got hover on whitespace")
	}
}

func TestLineIndex(t *testing.T) {
	idx := newLineIndex("a\U0001F600b\nc")

	offsets := []struct {
		line, char, want int
	}{
		{0, 0, 0},
		{0, 1, 1},
		{0, 2, 1},
		{0, 3, 2},
		{0, 99, 3},
		{1, 0, 4},
		{1, 1, 5},
		{5, 0, 5},
		{-1, 0, 0},
	}
	for _, tt := range offsets {
		if got := idx.offset(tt.line, tt.char); got != tt.want {
			t.Errorf("offset(%d, %d): got %d, want %d", tt.line, tt.char, got, tt.want)
		}
	}

	cols := []struct {
		line, offset, want int
	}{
		{1, 0, 0},
		{1, 2, 3},
		{1, 3, 4},
		{2, 5, 1},
	}
	for _, tt := range cols {
		pos := token.Position{Line: tt.line, Offset: tt.offset}
		if got := idx.utf16Column(pos); got != tt.want {
			t.Errorf("utf16Column(line %d, offset %d): got %d, want %d", tt.line, tt.offset, got, tt.want)
		}
	}

	e := idx.edit(0, 3, 0, 1, "x")
	if e.Start != 1 || e.End != 2 || e.Text != "x" {
		t.Errorf("got %+v, want a swapped range 1..2", e)
	}
}
