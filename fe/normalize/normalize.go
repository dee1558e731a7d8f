// Package normalize folds source text into the canonical spelling the
// tokenizer expects and reports look-alike and bidirectional-control
// characters as security findings.
package normalize

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// Form selects the Unicode normalization form applied after the
// domain-specific folds.
type Form int

const (
	// FormCanonical applies NFC.
	FormCanonical Form = iota
	// FormCompatibility applies NFKC.
	FormCompatibility
	// FormNone applies only the domain folds.
	FormNone
)

func (f Form) String() string {
	switch f {
	case FormCanonical:
		return "nfc"
	case FormCompatibility:
		return "nfkc"
	case FormNone:
		return "none"
	}
	return "unknown"
}

// ParseForm maps "nfc", "nfkc" and "none" to a Form.
func ParseForm(s string) (Form, bool) {
	switch s {
	case "nfc", "NFC", "":
		return FormCanonical, true
	case "nfkc", "NFKC":
		return FormCompatibility, true
	case "none":
		return FormNone, true
	}
	return FormCanonical, false
}

// SecurityConfig enables individual folds and bounds the output size.
type SecurityConfig struct {
	FoldFullWidth           bool
	ComposeMarks            bool
	FoldPunctuation         bool
	FoldMathSymbols         bool
	StripVariationSelectors bool
	StripBidi               bool
	FoldHomoglyphs          bool

	// MaxLength is the largest output, in runes, normalization may
	// produce. Zero disables the limit.
	MaxLength int
}

// DefaultMaxLength bounds normalized output at one mebirune.
const DefaultMaxLength = 1 << 20

// DefaultSecurityConfig enables every fold.
func DefaultSecurityConfig() SecurityConfig {
	return SecurityConfig{
		FoldFullWidth:           true,
		ComposeMarks:            true,
		FoldPunctuation:         true,
		FoldMathSymbols:         true,
		StripVariationSelectors: true,
		StripBidi:               true,
		FoldHomoglyphs:          true,
		MaxLength:               DefaultMaxLength,
	}
}

// FindingKind classifies a security finding.
type FindingKind int

const (
	FindingHomoglyph FindingKind = iota
	FindingBidiControl
	FindingLengthLimit
)

func (k FindingKind) String() string {
	switch k {
	case FindingHomoglyph:
		return "homoglyph"
	case FindingBidiControl:
		return "bidi-control"
	case FindingLengthLimit:
		return "length-limit"
	}
	return "unknown"
}

// Finding locates one security-relevant rune. Offset is a rune offset
// into the text passed to Normalize.
type Finding struct {
	Kind        FindingKind
	Offset      int
	Rune        rune
	Replacement string
}

// Stats tallies what Normalize changed. A Stats value belongs to a
// single call.
type Stats struct {
	FullWidth     int
	Compositions  int
	Punctuation   int
	MathSymbols   int
	EmojiFixes    int
	Homoglyphs    int
	BidiRemoved   int
	LimitExceeded bool
	Findings      []Finding
}

// HasSecurityConcerns is true iff homoglyphs or bidi controls were found.
func (s Stats) HasSecurityConcerns() bool {
	return s.Homoglyphs > 0 || s.BidiRemoved > 0
}

// Changes is the total number of folds applied.
func (s Stats) Changes() int {
	return s.FullWidth + s.Compositions + s.Punctuation + s.MathSymbols +
		s.EmojiFixes + s.Homoglyphs + s.BidiRemoved
}

func (s *Stats) add(o Stats) {
	s.FullWidth += o.FullWidth
	s.Compositions += o.Compositions
	s.Punctuation += o.Punctuation
	s.MathSymbols += o.MathSymbols
	s.EmojiFixes += o.EmojiFixes
	s.Homoglyphs += o.Homoglyphs
	s.BidiRemoved += o.BidiRemoved
	s.Findings = append(s.Findings, o.Findings...)
}

// maxPasses bounds the fold/normalize fixpoint loop.
const maxPasses = 4

// Normalize folds text under cfg and then applies form. The result is
// a fixpoint: normalizing it again with the same arguments returns it
// unchanged. When the result would exceed cfg.MaxLength the original
// text is returned and the overflow is recorded as a finding.
func Normalize(text string, form Form, cfg SecurityConfig) (string, Stats) {
	out, _, stats := NormalizeMapped(text, form, cfg)
	return out, stats
}

// NormalizeMapped is Normalize that also reports where each rune of the
// result came from in text.
func NormalizeMapped(text string, form Form, cfg SecurityConfig) (string, Mapping, Stats) {
	var stats Stats
	cur := text
	acc := identity(utf8.RuneCountInString(text))
	for pass := 0; pass < maxPasses; pass++ {
		folded, passStats, fm := fold(cur, cfg)
		out, om := applyForm(folded, form)
		if out == cur {
			break
		}
		for i := range passStats.Findings {
			passStats.Findings[i].Offset = acc.Offset(passStats.Findings[i].Offset)
		}
		stats.add(passStats)
		acc = acc.then(fm.then(om))
		cur = out
	}

	if cfg.MaxLength > 0 && utf8.RuneCountInString(cur) > cfg.MaxLength {
		return text, identity(utf8.RuneCountInString(text)), Stats{
			LimitExceeded: true,
			Findings: []Finding{{
				Kind:   FindingLengthLimit,
				Offset: cfg.MaxLength,
			}},
		}
	}
	return cur, acc, stats
}

// String normalizes text with the canonical form and default config.
func String(text string) string {
	out, _ := Normalize(text, FormCanonical, DefaultSecurityConfig())
	return out
}

// applyForm normalizes s segment by segment so that every output rune
// can be traced to the segment it came from. Segments that keep their
// length map rune for rune.
func applyForm(s string, form Form) (string, Mapping) {
	n := utf8.RuneCountInString(s)
	var f norm.Form
	switch form {
	case FormCanonical:
		f = norm.NFC
	case FormCompatibility:
		f = norm.NFKC
	default:
		return s, identity(n)
	}
	if f.IsNormalString(s) {
		return s, identity(n)
	}

	var b strings.Builder
	m := Mapping{Len: n}
	base := 0
	for rest := s; rest != ""; {
		k := f.NextBoundaryInString(rest, true)
		if k <= 0 {
			k = len(rest)
		}
		seg := rest[:k]
		rest = rest[k:]
		in := utf8.RuneCountInString(seg)
		out := f.String(seg)
		b.WriteString(out)
		outN := utf8.RuneCountInString(out)
		for j := 0; j < outN; j++ {
			if outN == in {
				m.add(base+j, base+j+1)
			} else {
				m.add(base, base+in)
			}
		}
		base += in
	}

	whole := f.String(s)
	if b.String() != whole {
		// Segments did not normalize independently; map coarsely.
		m = Mapping{Len: n}
		for i := range utf8.RuneCountInString(whole) {
			lo := min(i, max(n-1, 0))
			m.add(lo, min(lo+1, n))
		}
	}
	return whole, m
}

func fold(text string, cfg SecurityConfig) (string, Stats, Mapping) {
	var stats Stats
	runes := []rune(text)
	out := make([]rune, 0, len(runes))
	m := Mapping{Len: len(runes)}
	emit := func(lo, hi int, rs ...rune) {
		for range rs {
			m.add(lo, hi)
		}
		out = append(out, rs...)
	}

	for i := 0; i < len(runes); i++ {
		r := runes[i]

		if cfg.StripBidi && bidiControls[r] {
			stats.BidiRemoved++
			stats.Findings = append(stats.Findings, Finding{Kind: FindingBidiControl, Offset: i, Rune: r})
			continue
		}
		if cfg.StripVariationSelectors && variationSelectors[r] {
			stats.EmojiFixes++
			continue
		}
		if cfg.FoldFullWidth {
			if n, ok := narrow(r); ok {
				stats.FullWidth++
				r = n
			}
		}
		if cfg.ComposeMarks && i+1 < len(runes) {
			if c, ok := compose(r, runes[i+1]); ok {
				stats.Compositions++
				emit(i, i+2, c)
				i++
				continue
			}
		}
		if cfg.FoldPunctuation {
			if s, ok := japanesePunctuation[r]; ok {
				stats.Punctuation++
				emit(i, i+1, []rune(s)...)
				continue
			}
		}
		if cfg.FoldMathSymbols {
			if s, ok := mathSymbols[r]; ok {
				stats.MathSymbols++
				emit(i, i+1, []rune(s)...)
				continue
			}
		}
		if cfg.FoldHomoglyphs {
			if l, ok := homoglyphs[r]; ok {
				stats.Homoglyphs++
				stats.Findings = append(stats.Findings, Finding{
					Kind:        FindingHomoglyph,
					Offset:      i,
					Rune:        r,
					Replacement: string(l),
				})
				emit(i, i+1, l)
				continue
			}
		}
		emit(i, i+1, r)
	}
	return string(out), stats, m
}

// narrow folds full-width ASCII and the ideographic space.
func narrow(r rune) (rune, bool) {
	if r == '　' {
		return ' ', true
	}
	if r < '！' || r > '～' {
		return 0, false
	}
	p := width.LookupRune(r)
	if p.Kind() != width.EastAsianFullwidth {
		return 0, false
	}
	if n := p.Narrow(); n != 0 {
		return n, true
	}
	return 0, false
}

// compose joins a kana with a following voiced or semi-voiced mark when
// Unicode has a precomposed form for the pair.
func compose(base, mark rune) (rune, bool) {
	m, ok := soundMarks[mark]
	if !ok {
		return 0, false
	}
	composed := []rune(norm.NFC.String(string([]rune{base, m})))
	if len(composed) != 1 || composed[0] == base {
		return 0, false
	}
	return composed[0], true
}

// Suggest returns the canonical spelling of a single rune, if any fold
// in the default config changes it.
func Suggest(r rune) (string, bool) {
	if n, ok := narrow(r); ok {
		return string(n), true
	}
	if s, ok := japanesePunctuation[r]; ok {
		return s, true
	}
	if s, ok := mathSymbols[r]; ok {
		return s, true
	}
	if l, ok := homoglyphs[r]; ok {
		return string(l), true
	}
	return "", false
}
