package normalize

import (
	"strings"
	"testing"
)

func TestNormalizeFullWidth(t *testing.T) {
	out, stats := Normalize("ＡＢＣ", FormCanonical, DefaultSecurityConfig())
	if out != "ABC" {
		t.Errorf("got %q, want %q", out, "ABC")
	}
	if stats.FullWidth != 3 {
		t.Errorf("FullWidth = %d, want 3", stats.FullWidth)
	}
	if stats.HasSecurityConcerns() {
		t.Errorf("HasSecurityConcerns() = true, want false")
	}
}

func TestNormalizeBidiOverride(t *testing.T) {
	in := "x ← 'abc\u202edef'"
	out, stats := Normalize(in, FormCanonical, DefaultSecurityConfig())
	if strings.ContainsRune(out, '\u202e') {
		t.Errorf("output still contains U+202E: %q", out)
	}
	if stats.BidiRemoved != 1 {
		t.Errorf("BidiRemoved = %d, want 1", stats.BidiRemoved)
	}
	if !stats.HasSecurityConcerns() {
		t.Errorf("HasSecurityConcerns() = false, want true")
	}
	if len(stats.Findings) != 1 || stats.Findings[0].Kind != FindingBidiControl || stats.Findings[0].Offset != 8 {
		t.Errorf("Findings = %+v, want one bidi finding at offset 8", stats.Findings)
	}
}

func TestNormalizeHomoglyphs(t *testing.T) {
	// Cyrillic а, с, е
	in := "\u0430\u0441\u0435"
	out, stats := Normalize(in, FormCanonical, DefaultSecurityConfig())
	if out != "ace" {
		t.Errorf("got %q, want %q", out, "ace")
	}
	if stats.Homoglyphs != 3 {
		t.Errorf("Homoglyphs = %d, want 3", stats.Homoglyphs)
	}
	if !stats.HasSecurityConcerns() {
		t.Errorf("HasSecurityConcerns() = false, want true")
	}
	for i, f := range stats.Findings {
		if f.Kind != FindingHomoglyph || f.Offset != i {
			t.Errorf("finding %d = %+v, want homoglyph at offset %d", i, f, i)
		}
	}
}

func TestNormalizeFolds(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		check func(Stats) bool
	}{
		{"dakuten", "か\u3099", "が", func(s Stats) bool { return s.Compositions == 1 }},
		{"spacing dakuten", "ハ\u309b", "バ", func(s Stats) bool { return s.Compositions == 1 }},
		{"handakuten", "ハ\u309a", "パ", func(s Stats) bool { return s.Compositions == 1 }},
		{"mark without base", "a\u3099", "a\u3099", func(s Stats) bool { return s.Compositions == 0 }},
		{"wave dash", "1〜3", "1~3", func(s Stats) bool { return s.Punctuation == 1 }},
		{"minus sign", "−5", "-5", func(s Stats) bool { return s.Punctuation == 1 }},
		{"em dash", "a—b", "a-b", func(s Stats) bool { return s.Punctuation == 1 }},
		{"corner quotes", "「こんにちは」", "'こんにちは'", func(s Stats) bool { return s.Punctuation == 2 }},
		{"times", "2×3", "2*3", func(s Stats) bool { return s.MathSymbols == 1 }},
		{"divide", "6÷3", "6/3", func(s Stats) bool { return s.MathSymbols == 1 }},
		{"pi", "2π", "2pi", func(s Stats) bool { return s.MathSymbols == 1 }},
		{"infinity", "∞", "inf", func(s Stats) bool { return s.MathSymbols == 1 }},
		{"alpha beta", "α+β", "alpha+beta", func(s Stats) bool { return s.MathSymbols == 2 }},
		{"approx", "a≈b", "a~=b", func(s Stats) bool { return s.MathSymbols == 1 }},
		{"japanese le", "a≦b", "a≤b", func(s Stats) bool { return s.MathSymbols == 1 }},
		{"variation selector", "★\ufe0f", "★", func(s Stats) bool { return s.EmojiFixes == 1 }},
		{"ideographic space", "a\u3000b", "a b", func(s Stats) bool { return s.FullWidth == 1 }},
		{"full-width arrow stays", "x ← 1", "x ← 1", func(s Stats) bool { return s.Changes() == 0 }},
		{"full-width operators", "ｘ＋１", "x+1", func(s Stats) bool { return s.FullWidth == 3 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, stats := Normalize(tt.input, FormCanonical, DefaultSecurityConfig())
			if out != tt.want {
				t.Errorf("got %q, want %q", out, tt.want)
			}
			if !tt.check(stats) {
				t.Errorf("unexpected stats %+v", stats)
			}
		})
	}
}

func TestNormalizeDisabledFolds(t *testing.T) {
	cfg := DefaultSecurityConfig()
	cfg.FoldFullWidth = false
	cfg.FoldHomoglyphs = false
	in := "ＡＢа"
	out, stats := Normalize(in, FormCanonical, cfg)
	if out != in {
		t.Errorf("got %q, want input unchanged", out)
	}
	if stats.FullWidth != 0 || stats.Homoglyphs != 0 {
		t.Errorf("unexpected stats %+v", stats)
	}
}

func TestNormalizeLengthLimit(t *testing.T) {
	cfg := DefaultSecurityConfig()
	cfg.MaxLength = 4
	in := "ＡＢＣＤＥ"
	out, stats := Normalize(in, FormCanonical, cfg)
	if out != in {
		t.Errorf("got %q, want original text", out)
	}
	if !stats.LimitExceeded {
		t.Errorf("LimitExceeded = false, want true")
	}
	if stats.FullWidth != 0 {
		t.Errorf("FullWidth = %d, want 0 for abandoned normalization", stats.FullWidth)
	}
	if len(stats.Findings) != 1 || stats.Findings[0].Kind != FindingLengthLimit {
		t.Errorf("Findings = %+v, want one length-limit finding", stats.Findings)
	}
}

func TestNormalizeCompatibilityForm(t *testing.T) {
	// Half-width katakana only fold under NFKC.
	out, _ := Normalize("ｶﾀｶﾅ", FormCompatibility, DefaultSecurityConfig())
	if out != "カタカナ" {
		t.Errorf("NFKC got %q, want %q", out, "カタカナ")
	}
	out, _ = Normalize("ｶﾀｶﾅ", FormCanonical, DefaultSecurityConfig())
	if out != "ｶﾀｶﾅ" {
		t.Errorf("NFC got %q, want input unchanged", out)
	}
}

var idempotenceCorpus = []string{
	"",
	"   ",
	"x ← 1 + 2",
	"ＡＢＣ",
	"もし x ＞ ０ ならば\n  y ← 'か\u309b'\nもし終",
	"\u0430\u0441\u0435 \u202e ★\ufe0f",
	"2π × r ÷ 2 ≈ ∞",
	"ｶﾞｷﾞ ハ\u309a 「文字列」 1〜3",
	"a\u3099 \u309b 々 ー",
	"é ℼ ① ㍻",
}

func TestNormalizeIdempotent(t *testing.T) {
	for _, form := range []Form{FormCanonical, FormCompatibility, FormNone} {
		for _, in := range idempotenceCorpus {
			t.Run(form.String()+"/"+in, func(t *testing.T) {
				once, _ := Normalize(in, form, DefaultSecurityConfig())
				twice, stats := Normalize(once, form, DefaultSecurityConfig())
				if once != twice {
					t.Errorf("normalize(normalize(s)) = %q, normalize(s) = %q", twice, once)
				}
				if stats.Changes() != 0 {
					t.Errorf("second pass reported %d changes", stats.Changes())
				}
			})
		}
	}
}

func TestSuggest(t *testing.T) {
	tests := []struct {
		r    rune
		want string
		ok   bool
	}{
		{'＠', "@", true},
		{'а', "a", true},
		{'×', "*", true},
		{'@', "", false},
	}
	for _, tt := range tests {
		got, ok := Suggest(tt.r)
		if got != tt.want || ok != tt.ok {
			t.Errorf("Suggest(%q) = (%q, %v), want (%q, %v)", tt.r, got, ok, tt.want, tt.ok)
		}
	}
}

func TestParseForm(t *testing.T) {
	if f, ok := ParseForm("nfkc"); !ok || f != FormCompatibility {
		t.Errorf("ParseForm(nfkc) = (%v, %v)", f, ok)
	}
	if _, ok := ParseForm("nfd"); ok {
		t.Errorf("ParseForm(nfd) ok, want false")
	}
}

func TestNormalizeMapped(t *testing.T) {
	in := "\u202eｘ ← か\u3099"
	out, m, _ := NormalizeMapped(in, FormCanonical, DefaultSecurityConfig())
	if out != "x ← \u304c" {
		t.Fatalf("got %q, want %q", out, "x ← \u304c")
	}
	tests := []struct {
		name      string
		offset    int
		wantStart int
		wantEnd   int
	}{
		{"folded letter", 0, 1, 2},
		{"space", 1, 2, 3},
		{"composed kana", 4, 5, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.Offset(tt.offset); got != tt.wantStart {
				t.Errorf("Offset(%d) = %d, want %d", tt.offset, got, tt.wantStart)
			}
			if got := m.End(tt.offset + 1); got != tt.wantEnd {
				t.Errorf("End(%d) = %d, want %d", tt.offset+1, got, tt.wantEnd)
			}
		})
	}
	if got := m.Offset(5); got != 7 {
		t.Errorf("end of output maps to %d, want 7", got)
	}

	plain, m, _ := NormalizeMapped("x ← 1", FormCanonical, DefaultSecurityConfig())
	if plain != "x ← 1" || m.Offset(3) != 3 || m.End(5) != 5 {
		t.Errorf("unchanged text: got %q, Offset(3) = %d, End(5) = %d", plain, m.Offset(3), m.End(5))
	}
}

func TestNormalizeFindingsFromLaterPasses(t *testing.T) {
	// U+1FBE becomes Greek iota under NFC, which only the second pass
	// folds; the removed bidi control shifts it by one.
	in := "\u202ex \u1fbe"
	out, stats := Normalize(in, FormCanonical, DefaultSecurityConfig())
	if out != "x i" {
		t.Fatalf("got %q, want %q", out, "x i")
	}
	if len(stats.Findings) != 2 {
		t.Fatalf("Findings = %+v, want a bidi control and a homoglyph", stats.Findings)
	}
	if f := stats.Findings[0]; f.Kind != FindingBidiControl || f.Offset != 0 {
		t.Errorf("first finding = %+v, want bidi control at 0", f)
	}
	if f := stats.Findings[1]; f.Kind != FindingHomoglyph || f.Offset != 3 {
		t.Errorf("second finding = %+v, want homoglyph at 3", f)
	}
}
