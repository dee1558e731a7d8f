package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/fepc/fe"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"
)

// DiagnosticRenderer prints diagnostics with the offending source line
// and a caret run under the reported span. Carets are aligned by display
// width, so wide characters such as kanji take two columns.
type DiagnosticRenderer struct {
	w   io.Writer
	out *termenv.Output
}

// NewDiagnosticRenderer writes to w, colouring severities for profile.
// termenv.Ascii disables colour.
func NewDiagnosticRenderer(w io.Writer, profile termenv.Profile) *DiagnosticRenderer {
	return &DiagnosticRenderer{w: w, out: termenv.NewOutput(w, termenv.WithProfile(profile))}
}

func (r *DiagnosticRenderer) Render(diags []fe.Diagnostic) error {
	var sb strings.Builder
	for _, d := range diags {
		r.render(&sb, d)
	}
	_, err := io.WriteString(r.w, sb.String())
	return err
}

func (r *DiagnosticRenderer) render(sb *strings.Builder, d fe.Diagnostic) {
	color := r.out.Color("1")
	if d.Severity == fe.SeverityWarning {
		color = r.out.Color("3")
	}
	severity := r.out.String(d.Severity.String()).Foreground(color).Bold()

	fmt.Fprintf(sb, "%s: %s: %s", d.Span.Start, severity, d.Message)
	if d.Code != "" {
		fmt.Fprintf(sb, " [%s]", d.Code)
	}
	sb.WriteByte('\n')

	if d.Context != "" {
		pad, carets := underline(d)
		fmt.Fprintf(sb, "  %s\n", d.Context)
		fmt.Fprintf(sb, "  %s%s\n", pad, r.out.String(carets).Foreground(color))
	}
	for _, s := range d.Suggestions {
		fmt.Fprintf(sb, "  help: %s\n", s)
	}
}

// underline returns the blank prefix and caret run that mark d's span on
// its context line. Tabs in the prefix are kept so terminals expand them
// the same way on both lines.
func underline(d fe.Diagnostic) (string, string) {
	line := []rune(d.Context)
	start := clamp(d.Span.Start.Column-1, 0, len(line))
	end := len(line)
	if d.Span.End.Line == d.Span.Start.Line {
		end = clamp(d.Span.End.Column-1, start, len(line))
	}

	var pad strings.Builder
	for _, r := range line[:start] {
		if r == '\t' {
			pad.WriteRune('\t')
			continue
		}
		pad.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}

	width := runewidth.StringWidth(string(line[start:end]))
	if width < 1 {
		width = 1
	}
	return pad.String(), strings.Repeat("^", width)
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
