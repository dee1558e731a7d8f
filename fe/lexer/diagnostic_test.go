package lexer

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/dhamidi/fepc/fe/token"
)

func TestDiagnoseRecoversFromUnexpectedChar(t *testing.T) {
	res := Diagnose("変数@ var = true")
	if len(res.Diagnostics) == 0 {
		t.Fatal("no diagnostics")
	}
	d := res.Diagnostics[0]
	if d.Kind != ErrUnexpectedChar || d.Range.Start.Offset != 2 || d.Range.End.Offset != 3 {
		t.Errorf("diagnostic = %+v, want unexpected character at [2, 3)", d)
	}
	if d.Severity != SeverityError {
		t.Errorf("Severity = %v, want error", d.Severity)
	}

	wantKinds := []token.TokenKind{token.TokenIdent, token.TokenIdent, token.TokenEQ, token.TokenTrue, token.TokenEOF}
	if got := kinds(res.Tokens); !reflect.DeepEqual(got, wantKinds) {
		t.Errorf("kinds = %v, want %v", got, wantKinds)
	}
	if res.Tokens[0].Lexeme != "変数" || res.Tokens[1].Lexeme != "var" {
		t.Errorf("lexemes = %q, %q", res.Tokens[0].Lexeme, res.Tokens[1].Lexeme)
	}

	if _, err := Tokenize("変数@ var = true"); err == nil {
		t.Errorf("strict Tokenize succeeded, want error")
	}
}

func TestDiagnoseMatchesTokenizeOnValidInput(t *testing.T) {
	inputs := []string{
		"x ← 1 + 2",
		"もし x = 1 ならば\n  y ← 'ok'\nもし終",
		"/* c */ a[0].b(1, 2) // tail",
		"",
	}
	for _, in := range inputs {
		want, err := Tokenize(in)
		if err != nil {
			t.Fatalf("Tokenize(%q): %v", in, err)
		}
		res := Diagnose(in)
		if res.HasErrors() {
			t.Errorf("Diagnose(%q) reported %v", in, res.Diagnostics)
		}
		if !reflect.DeepEqual(res.Tokens, want) {
			t.Errorf("Diagnose(%q) tokens differ:\n got %v\nwant %v", in, res.Tokens, want)
		}
	}
}

func TestDiagnoseRecovery(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		diags  []ErrorKind
		starts []int
		tokens []token.TokenKind
	}{
		{
			"two unexpected characters",
			"a @ b # c",
			[]ErrorKind{ErrUnexpectedChar, ErrUnexpectedChar},
			[]int{2, 6},
			[]token.TokenKind{token.TokenIdent, token.TokenIdent, token.TokenIdent, token.TokenEOF},
		},
		{
			"unterminated string skips to end of line",
			"x ← 'abc\ny",
			[]ErrorKind{ErrUnterminatedString},
			[]int{4},
			[]token.TokenKind{token.TokenIdent, token.TokenAssign, token.TokenIdent, token.TokenEOF},
		},
		{
			"unterminated comment consumes the rest",
			"a /* b\nc",
			[]ErrorKind{ErrUnterminatedComment},
			[]int{2},
			[]token.TokenKind{token.TokenIdent, token.TokenEOF},
		},
		{
			"each bad escape is reported",
			`'\q\z' x`,
			[]ErrorKind{ErrInvalidEscape, ErrInvalidEscape},
			[]int{1, 3},
			[]token.TokenKind{token.TokenString, token.TokenIdent, token.TokenEOF},
		},
		{
			"bad number is skipped whole",
			"n ← 1__0 + 2",
			[]ErrorKind{ErrInvalidNumber},
			[]int{4},
			[]token.TokenKind{token.TokenIdent, token.TokenAssign, token.TokenPlus, token.TokenInteger, token.TokenEOF},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Diagnose(tt.input)
			if len(res.Diagnostics) != len(tt.diags) {
				t.Fatalf("got %d diagnostics %v, want %d", len(res.Diagnostics), res.Diagnostics, len(tt.diags))
			}
			for i, d := range res.Diagnostics {
				if d.Kind != tt.diags[i] || d.Range.Start.Offset != tt.starts[i] {
					t.Errorf("diagnostic %d = %v at %d, want %v at %d", i, d.Kind, d.Range.Start.Offset, tt.diags[i], tt.starts[i])
				}
			}
			if got := kinds(res.Tokens); !reflect.DeepEqual(got, tt.tokens) {
				t.Errorf("kinds = %v, want %v", got, tt.tokens)
			}
		})
	}
}

func TestDiagnosticSuggestions(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"full-width", "x ← ＠", `"@"`},
		{"double quote", `x ← "a"`, "delimited by '"},
		{"bidi", "x\u202e", "U+202E"},
		{"unterminated string", "'abc", "close the string"},
		{"unterminated comment", "/*", "*/"},
		{"exponent", "1e", "exponent"},
		{"escape", `'\q'`, `\uXXXX`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Diagnose(tt.input)
			if len(res.Diagnostics) == 0 {
				t.Fatal("no diagnostics")
			}
			found := false
			for _, s := range res.Diagnostics[0].Suggestions {
				if strings.Contains(s, tt.want) {
					found = true
				}
			}
			if !found {
				t.Errorf("suggestions %q do not mention %q", res.Diagnostics[0].Suggestions, tt.want)
			}
		})
	}
}

func TestDiagnosticContext(t *testing.T) {
	res := Diagnose("a\nb @ c\nd")
	if len(res.Diagnostics) != 1 {
		t.Fatalf("got %v, want one diagnostic", res.Diagnostics)
	}
	if got := res.Diagnostics[0].Context; got != "b @ c" {
		t.Errorf("Context = %q, want %q", got, "b @ c")
	}
	if p := res.Diagnostics[0].Range.Start; p.Line != 2 || p.Column != 3 {
		t.Errorf("Range.Start = %+v, want line 2 column 3", p)
	}
}

func TestTokenizeStrict(t *testing.T) {
	_, err := TokenizeStrict("変数@ var")
	var d Diagnostic
	if !errors.As(err, &d) {
		t.Fatalf("got %v, want a Diagnostic error", err)
	}
	if d.Kind != ErrUnexpectedChar {
		t.Errorf("Kind = %v, want %v", d.Kind, ErrUnexpectedChar)
	}

	toks, err := TokenizeStrict("x ← 1")
	if err != nil || len(toks) != 4 {
		t.Errorf("TokenizeStrict(valid) = (%v, %v)", toks, err)
	}
}
