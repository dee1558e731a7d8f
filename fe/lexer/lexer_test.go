package lexer

import (
	"errors"
	"reflect"
	"testing"

	"github.com/dhamidi/fepc/fe/token"
)

func kinds(toks []token.Token) []token.TokenKind {
	out := make([]token.TokenKind, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind
	}
	return out
}

func TestTokenizeKinds(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []token.TokenKind
	}{
		{"assignment", "x ← 1", []token.TokenKind{token.TokenIdent, token.TokenAssign, token.TokenInteger, token.TokenEOF}},
		{"japanese if", "もし x ≥ 10 ならば", []token.TokenKind{token.TokenIf, token.TokenIdent, token.TokenGE, token.TokenInteger, token.TokenThen, token.TokenEOF}},
		{"field then leading dot real", "obj.field .5", []token.TokenKind{token.TokenIdent, token.TokenDot, token.TokenIdent, token.TokenReal, token.TokenEOF}},
		{"leading dot real", ".5", []token.TokenKind{token.TokenReal, token.TokenEOF}},
		{"diamond not equal", "a<>b", []token.TokenKind{token.TokenIdent, token.TokenNE, token.TokenIdent, token.TokenEOF}},
		{"char", "'a'", []token.TokenKind{token.TokenChar, token.TokenEOF}},
		{"escaped char", `'\n'`, []token.TokenKind{token.TokenChar, token.TokenEOF}},
		{"string", "'ab'", []token.TokenKind{token.TokenString, token.TokenEOF}},
		{"empty string", "''", []token.TokenKind{token.TokenString, token.TokenEOF}},
		{"decomposed kana is a string", "'か\u3099'", []token.TokenKind{token.TokenString, token.TokenEOF}},
		{"line comment", "// note\nx", []token.TokenKind{token.TokenIdent, token.TokenEOF}},
		{"keyword prefix of identifier", "iffy", []token.TokenKind{token.TokenIdent, token.TokenEOF}},
		{"japanese keyword needs boundary", "もしx", []token.TokenKind{token.TokenIdent, token.TokenEOF}},
		{"longest japanese keyword", "もし終", []token.TokenKind{token.TokenEndIf, token.TokenEOF}},
		{"identifiers", "x_1 変数 カタカナー 々", []token.TokenKind{token.TokenIdent, token.TokenIdent, token.TokenIdent, token.TokenIdent, token.TokenEOF}},
		{"exponent", "1.5e-3", []token.TokenKind{token.TokenReal, token.TokenEOF}},
		{"booleans", "真 偽 true false", []token.TokenKind{token.TokenTrue, token.TokenFalse, token.TokenTrue, token.TokenFalse, token.TokenEOF}},
		{"postfix chain", "a[0].b(1, 2)", []token.TokenKind{
			token.TokenIdent, token.TokenLBracket, token.TokenInteger, token.TokenRBracket, token.TokenDot,
			token.TokenIdent, token.TokenLParen, token.TokenInteger, token.TokenComma, token.TokenInteger,
			token.TokenRParen, token.TokenEOF,
		}},
		{"ideographic space", "x\u3000y", []token.TokenKind{token.TokenIdent, token.TokenIdent, token.TokenEOF}},
		{"word operators", "a mod b div c かつ not d", []token.TokenKind{
			token.TokenIdent, token.TokenMod, token.TokenIdent, token.TokenDiv, token.TokenIdent,
			token.TokenAnd, token.TokenNot, token.TokenIdent, token.TokenEOF,
		}},
		{"array type", "配列 の 整数型", []token.TokenKind{token.TokenArray, token.TokenOf, token.TokenIntegerType, token.TokenEOF}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks, err := Tokenize(tt.input)
			if err != nil {
				t.Fatalf("Tokenize(%q) error: %v", tt.input, err)
			}
			if got := kinds(toks); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("kinds = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTokenizeEOF(t *testing.T) {
	inputs := []string{"", "   ", "\n\n", "// only a comment", "/* block */", "x ← 1\n"}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			toks, err := Tokenize(in)
			if err != nil {
				t.Fatalf("error: %v", err)
			}
			if len(toks) == 0 {
				t.Fatal("no tokens")
			}
			for i, tok := range toks {
				isLast := i == len(toks)-1
				if (tok.Kind == token.TokenEOF) != isLast {
					t.Errorf("token %d is %v; EOF must be last and only last", i, tok.Kind)
				}
			}
			if eof := toks[len(toks)-1]; eof.Lexeme != "" {
				t.Errorf("EOF lexeme = %q, want empty", eof.Lexeme)
			}
		})
	}
}

func TestTokenizePositions(t *testing.T) {
	toks, err := Tokenize("  \n ")
	if err != nil {
		t.Fatal(err)
	}
	eof := toks[0].Pos
	if eof.Line != 2 || eof.Column != 2 || eof.Offset != 4 {
		t.Errorf("EOF at %+v, want line 2 column 2 offset 4", eof)
	}

	toks, err = Tokenize("a\n  bc")
	if err != nil {
		t.Fatal(err)
	}
	if p := toks[1].Pos; p.Line != 2 || p.Column != 3 || p.Offset != 4 {
		t.Errorf("bc at %+v, want line 2 column 3 offset 4", p)
	}

	toks, err = Tokenize("日本 x")
	if err != nil {
		t.Fatal(err)
	}
	if p := toks[1].Pos; p.Offset != 3 || p.Column != 4 {
		t.Errorf("x at %+v, want offset 3 column 4 (runes, not bytes)", p)
	}

	toks, err = Tokenize("/* a\nb */ y")
	if err != nil {
		t.Fatal(err)
	}
	if p := toks[0].Pos; p.Line != 2 || p.Column != 6 || p.Offset != 10 {
		t.Errorf("y at %+v, want line 2 column 6 offset 10", p)
	}
}

func TestTokenizeLexemes(t *testing.T) {
	toks, err := Tokenize(`s ← 'a\'b' + 0x1F`, WithFile("t.fe"))
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"s", "←", `'a\'b'`, "+", "0x1F", ""}
	for i, tok := range toks {
		if tok.Lexeme != want[i] {
			t.Errorf("token %d lexeme = %q, want %q", i, tok.Lexeme, want[i])
		}
		if tok.Pos.File != "t.fe" {
			t.Errorf("token %d file = %q, want t.fe", i, tok.Pos.File)
		}
	}
}

func TestTokenizeValidNumbers(t *testing.T) {
	tests := []struct {
		input string
		kind  token.TokenKind
	}{
		{"0", token.TokenInteger},
		{"0xFF", token.TokenInteger},
		{"0XaB", token.TokenInteger},
		{"0b1010", token.TokenInteger},
		{"0o17", token.TokenInteger},
		{"1_000_000", token.TokenInteger},
		{"0xFF_FF", token.TokenInteger},
		{"3.141_592", token.TokenReal},
		{"6.02e23", token.TokenReal},
		{"1E+5", token.TokenReal},
		{"2e-3", token.TokenReal},
		{".25", token.TokenReal},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			toks, err := Tokenize(tt.input)
			if err != nil {
				t.Fatalf("error: %v", err)
			}
			if len(toks) != 2 || toks[0].Kind != tt.kind || toks[0].Lexeme != tt.input {
				t.Errorf("got %v, want one %v token %q", toks, tt.kind, tt.input)
			}
		})
	}
}

func TestTokenizeErrors(t *testing.T) {
	tests := []struct {
		input string
		kind  ErrorKind
		start int
		end   int
	}{
		{"x @ y", ErrUnexpectedChar, 2, 3},
		{"x ← ＠", ErrUnexpectedChar, 4, 5},
		{"'abc", ErrUnterminatedString, 0, 4},
		{"'abc\ndef'", ErrUnterminatedString, 0, 4},
		{"a /* abc", ErrUnterminatedComment, 2, 8},
		{"0x", ErrInvalidNumber, 0, 2},
		{"0xG1", ErrInvalidNumber, 0, 4},
		{"0b102", ErrInvalidNumber, 0, 5},
		{"0o9", ErrInvalidNumber, 0, 3},
		{"0x_FF", ErrInvalidNumber, 0, 5},
		{"1__0", ErrInvalidNumber, 0, 4},
		{"1_", ErrInvalidNumber, 0, 2},
		{"1e", ErrInvalidNumber, 0, 2},
		{"1e+", ErrInvalidNumber, 0, 3},
		{"1e_5", ErrInvalidNumber, 0, 4},
		{"1._5", ErrInvalidNumber, 0, 4},
		{"1_.5", ErrInvalidNumber, 0, 4},
		{"12abc", ErrInvalidNumber, 0, 5},
		{`'\q'`, ErrInvalidEscape, 1, 3},
		{`'\u12'`, ErrInvalidEscape, 1, 5},
		{`'\u{110000}'`, ErrInvalidEscape, 1, 11},
		{`'\u{}'`, ErrInvalidEscape, 1, 5},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			toks, err := Tokenize(tt.input)
			if err == nil {
				t.Fatalf("Tokenize(%q) = %v, want error", tt.input, toks)
			}
			if toks != nil {
				t.Errorf("partial tokens returned on error: %v", toks)
			}
			var lexErr *Error
			if !errors.As(err, &lexErr) {
				t.Fatalf("error %T is not *Error", err)
			}
			if lexErr.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", lexErr.Kind, tt.kind)
			}
			if lexErr.Span.Start.Offset != tt.start || lexErr.Span.End.Offset != tt.end {
				t.Errorf("Span = [%d, %d), want [%d, %d)", lexErr.Span.Start.Offset, lexErr.Span.End.Offset, tt.start, tt.end)
			}
		})
	}
}

func TestNextTokenErrorDoesNotConsume(t *testing.T) {
	l := New("@x")
	_, err := l.NextToken()
	var lexErr *Error
	if !errors.As(err, &lexErr) {
		t.Fatalf("got %v, want *Error", err)
	}
	if off := l.Position().Offset; off != 0 {
		t.Errorf("offset after error = %d, want 0", off)
	}
	l.Skip(lexErr)
	tok, err := l.NextToken()
	if err != nil || tok.Kind != token.TokenIdent || tok.Lexeme != "x" {
		t.Errorf("after Skip got (%v, %v), want identifier x", tok, err)
	}
}

func TestWithTrivia(t *testing.T) {
	toks, err := Tokenize("a // c\n", WithTrivia())
	if err != nil {
		t.Fatal(err)
	}
	want := []token.TokenKind{token.TokenIdent, token.TokenWhitespace, token.TokenComment, token.TokenNewline, token.TokenEOF}
	if got := kinds(toks); !reflect.DeepEqual(got, want) {
		t.Errorf("kinds = %v, want %v", got, want)
	}
	if toks[2].Lexeme != "// c" {
		t.Errorf("comment lexeme = %q, want %q", toks[2].Lexeme, "// c")
	}
}

func TestTokenizeIsPure(t *testing.T) {
	src := "関数 f(n: 整数型): 整数型\n  戻る n * 2\n関数終\n"
	a, errA := Tokenize(src)
	b, errB := Tokenize(src)
	if errA != nil || errB != nil {
		t.Fatalf("errors: %v, %v", errA, errB)
	}
	if !reflect.DeepEqual(a, b) {
		t.Errorf("two runs differ:\n%v\n%v", a, b)
	}
}

func TestStringValue(t *testing.T) {
	tests := []struct {
		lexeme string
		want   string
	}{
		{`'abc'`, "abc"},
		{`'a\tb'`, "a\tb"},
		{`'\''`, "'"},
		{`'\"\\'`, `"\`},
		{`'\0'`, "\x00"},
		{`'A\u{1F600}'`, "A😀"},
	}
	for _, tt := range tests {
		t.Run(tt.lexeme, func(t *testing.T) {
			got, err := StringValue(tt.lexeme)
			if err != nil {
				t.Fatalf("error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}

	if _, err := StringValue(`'\x'`); err == nil {
		t.Errorf("StringValue with unknown escape succeeded, want error")
	}
}

func TestNumberValues(t *testing.T) {
	ints := []struct {
		lexeme string
		want   int64
	}{
		{"0xFF", 255},
		{"1_000", 1000},
		{"0b101", 5},
		{"0o17", 15},
		{"42", 42},
	}
	for _, tt := range ints {
		got, err := IntValue(tt.lexeme)
		if err != nil || got != tt.want {
			t.Errorf("IntValue(%q) = (%d, %v), want %d", tt.lexeme, got, err, tt.want)
		}
	}
	if _, err := IntValue("9223372036854775808"); err == nil {
		t.Errorf("IntValue overflow succeeded, want error")
	}

	reals := []struct {
		lexeme string
		want   float64
	}{
		{".5", 0.5},
		{"1_0.5e1", 105},
		{"2E-1", 0.2},
	}
	for _, tt := range reals {
		got, err := RealValue(tt.lexeme)
		if err != nil || got != tt.want {
			t.Errorf("RealValue(%q) = (%g, %v), want %g", tt.lexeme, got, err, tt.want)
		}
	}
}

func TestIsIdentifier(t *testing.T) {
	tests := map[string]bool{
		"x":    true,
		"変数":   true,
		"_a1":  true,
		"1a":   false,
		"if":   false,
		"もし":   false,
		"":     false,
		"a-b":  false,
		"ｶﾀｶﾅ": true,
	}
	for s, want := range tests {
		if got := IsIdentifier(s); got != want {
			t.Errorf("IsIdentifier(%q) = %v, want %v", s, got, want)
		}
	}
}
