package fe

import (
	"errors"
	"fmt"
	"sort"

	"github.com/dhamidi/fepc/fe/ast"
	"github.com/dhamidi/fepc/fe/lexer"
	"github.com/dhamidi/fepc/fe/normalize"
	"github.com/dhamidi/fepc/fe/parser"
	"github.com/dhamidi/fepc/fe/token"
)

type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "error"
}

// Stage names the pipeline step that produced a diagnostic.
type Stage string

const (
	StageNormalize Stage = "normalize"
	StageLexer     Stage = "lexer"
	StageParser    Stage = "parser"
)

// Diagnostic is a problem found by Check. Span refers to the text given
// to Check, before normalization.
type Diagnostic struct {
	Severity    Severity
	Stage       Stage
	Code        string
	Span        token.Span
	Message     string
	Suggestions []string
	Context     string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s: %s", d.Span.Start, d.Severity, d.Message)
}

// Report collects every problem Check found in one text.
type Report struct {
	File        string
	// Tokens are those of the normalized text, positioned in the text
	// given to Check.
	Tokens      []token.Token
	Program     *ast.Program
	Stats       normalize.Stats
	Diagnostics []Diagnostic
}

func (r *Report) HasErrors() bool {
	for _, d := range r.Diagnostics {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Check reports as many problems in text as one pass can find. When
// cfg.Normalize is set the normalized text is tokenized, so Check
// accepts what ParseSource accepts, and characters folded for security
// reasons are reported as warnings. Every position in the report, token
// positions included, refers to text as given. Lexical errors are
// collected with recovery; the parser runs only over error-free tokens
// and contributes at most one diagnostic.
func Check(text string, cfg Config) *Report {
	rep, loc, f := newReport(text, cfg)

	res := lexer.Diagnose(f.text, cfg.lexerOptions()...)
	rep.Tokens = f.tokens(loc, res.Tokens)
	for _, d := range res.Diagnostics {
		span := f.span(loc, d.Range)
		context := d.Context
		if f.changed {
			context = loc.line(span.Start.Line)
		}
		rep.Diagnostics = append(rep.Diagnostics, Diagnostic{
			Severity:    SeverityError,
			Stage:       StageLexer,
			Code:        d.Kind.String(),
			Span:        span,
			Message:     d.Message,
			Suggestions: d.Suggestions,
			Context:     context,
		})
	}
	if !res.HasErrors() {
		rep.parse(loc, cfg)
	}
	rep.sortDiagnostics()
	return rep
}

// CheckTokens is Check for a text whose error-free tokens are already
// known, such as those kept current by an incremental lexer. The tokens
// must come from text as given, so when normalization would change the
// text it is checked from scratch.
func CheckTokens(text string, toks []token.Token, cfg Config) *Report {
	rep, loc, f := newReport(text, cfg)
	if f.changed {
		return Check(text, cfg)
	}
	rep.Tokens = toks
	rep.parse(loc, cfg)
	rep.sortDiagnostics()
	return rep
}

// folding is the text Check tokenizes and how it maps back onto the
// text Check was given.
type folding struct {
	text    string
	mapping normalize.Mapping
	changed bool
}

func (f folding) position(loc *locator, p token.Position) token.Position {
	if !f.changed {
		return p
	}
	return loc.position(f.mapping.Offset(p.Offset))
}

func (f folding) span(loc *locator, s token.Span) token.Span {
	if !f.changed {
		return s
	}
	start := f.position(loc, s.Start)
	end := loc.position(f.mapping.End(s.End.Offset))
	if end.Offset < start.Offset {
		end = start
	}
	return token.Span{Start: start, End: end}
}

func (f folding) tokens(loc *locator, toks []token.Token) []token.Token {
	if !f.changed {
		return toks
	}
	out := make([]token.Token, len(toks))
	for i, tok := range toks {
		tok.Pos = f.position(loc, tok.Pos)
		out[i] = tok
	}
	return out
}

func newReport(text string, cfg Config) (*Report, *locator, folding) {
	rep := &Report{File: cfg.File}
	loc := newLocator(cfg.File, []rune(text))
	f := folding{text: text}
	if cfg.Normalize {
		f.text, f.mapping, rep.Stats = normalize.NormalizeMapped(text, cfg.Form, cfg.Security)
		f.changed = f.text != text
		for _, finding := range rep.Stats.Findings {
			rep.Diagnostics = append(rep.Diagnostics, findingDiagnostic(loc, finding, cfg.Security))
		}
	}
	return rep, loc, f
}

func (rep *Report) parse(loc *locator, cfg Config) {
	prog, err := parser.ParseProgram(rep.Tokens, cfg.Parser...)
	var perr *parser.Error
	switch {
	case err == nil:
		rep.Program = prog
	case errors.As(err, &perr):
		rep.Diagnostics = append(rep.Diagnostics, parserDiagnostic(loc, perr))
	default:
		rep.Diagnostics = append(rep.Diagnostics, Diagnostic{
			Severity: SeverityError,
			Stage:    StageParser,
			Message:  err.Error(),
		})
	}
}

func (rep *Report) sortDiagnostics() {
	sort.SliceStable(rep.Diagnostics, func(i, j int) bool {
		return rep.Diagnostics[i].Span.Start.Offset < rep.Diagnostics[j].Span.Start.Offset
	})
}

func findingDiagnostic(loc *locator, f normalize.Finding, cfg normalize.SecurityConfig) Diagnostic {
	d := Diagnostic{
		Severity: SeverityWarning,
		Stage:    StageNormalize,
		Code:     f.Kind.String(),
		Span:     loc.span(f.Offset, 1),
	}
	switch f.Kind {
	case normalize.FindingHomoglyph:
		d.Message = fmt.Sprintf("look-alike character %q (U+%04X)", f.Rune, f.Rune)
		d.Suggestions = []string{fmt.Sprintf("replace %q with %q", f.Rune, f.Replacement)}
	case normalize.FindingBidiControl:
		d.Message = fmt.Sprintf("bidirectional control character U+%04X", f.Rune)
		d.Suggestions = []string{"remove the control character"}
	case normalize.FindingLengthLimit:
		d.Span = loc.span(f.Offset, 0)
		d.Message = fmt.Sprintf("text longer than %d characters was not normalized", cfg.MaxLength)
	}
	d.Context = loc.line(d.Span.Start.Line)
	return d
}

func parserDiagnostic(loc *locator, err *parser.Error) Diagnostic {
	d := Diagnostic{
		Severity: SeverityError,
		Stage:    StageParser,
		Code:     err.Kind.String(),
		Span:     err.Span(),
		Message:  err.Message,
		Context:  loc.line(err.Pos.Line),
	}
	if len(err.Expected) == 1 {
		switch want := err.Expected[0]; want {
		case token.TokenEOF:
			d.Suggestions = []string{"remove the text after the end of the expression"}
		case token.TokenIdent:
		default:
			d.Suggestions = []string{"insert " + want.String()}
		}
	}
	return d
}
