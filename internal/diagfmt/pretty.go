package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"flint/internal/diag"
	"flint/internal/source"
)

var (
	errorColor = color.New(color.FgRed, color.Bold)
	warnColor  = color.New(color.FgYellow, color.Bold)
	infoColor  = color.New(color.FgCyan, color.Bold)
	noteColor  = color.New(color.FgBlue)
)

// Pretty renders diagnostics as
//
//	path:line:col: severity[CODE]: message
//
// followed by the offending source line with a caret underline. Callers
// sort the bag first when deterministic order matters.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	for _, d := range bag.Items() {
		prettyOne(w, fs, d, opts)
	}
}

func prettyOne(w io.Writer, fs *source.FileSet, d diag.Diagnostic, opts PrettyOpts) {
	label := severityLabel(d.Severity, opts.Color)
	if isNoLocation(d.Primary) {
		fmt.Fprintf(w, "flint: %s[%s]: %s\n", label, d.Code.ID(), d.Message)
		return
	}

	start, _ := fs.Resolve(d.Primary)
	file := fs.Get(d.Primary.File)
	fmt.Fprintf(w, "%s:%d:%d: %s[%s]: %s\n", file.Path, start.Line, start.Col, label, d.Code.ID(), d.Message)
	writeCaret(w, file, d.Primary, start)

	if !opts.ShowNotes {
		return
	}
	for _, n := range d.Notes {
		noteLabel := "note"
		if opts.Color {
			noteLabel = noteColor.Sprint(noteLabel)
		}
		if isNoLocation(n.Span) {
			fmt.Fprintf(w, "%s: %s\n", noteLabel, n.Msg)
			continue
		}
		ns, _ := fs.Resolve(n.Span)
		nf := fs.Get(n.Span.File)
		fmt.Fprintf(w, "%s:%d:%d: %s: %s\n", nf.Path, ns.Line, ns.Col, noteLabel, n.Msg)
		writeCaret(w, nf, n.Span, ns)
	}
}

// isNoLocation recognizes the zero span used by diagnostics that have no
// source position (toolchain and manifest failures).
func isNoLocation(sp source.Span) bool {
	return sp.Start == 0 && sp.End == 0
}

func severityLabel(sev diag.Severity, colored bool) string {
	s := sev.String()
	if !colored {
		return s
	}
	switch sev {
	case diag.SevError:
		return errorColor.Sprint(s)
	case diag.SevWarning:
		return warnColor.Sprint(s)
	default:
		return infoColor.Sprint(s)
	}
}

// writeCaret prints the source line and a ^~~~ underline. The underline is
// measured with display widths so wide runes stay aligned.
func writeCaret(w io.Writer, file *source.File, sp source.Span, start source.LineCol) {
	line := file.GetLine(start.Line)
	if line == "" {
		return
	}
	fmt.Fprintf(w, "%5d | %s\n", start.Line, line)

	col := int(start.Col) - 1
	if col > len(line) {
		col = len(line)
	}
	prefix := line[:col]
	pad := strings.Repeat(" ", runewidth.StringWidth(prefix))

	spanLen := int(sp.End) - int(sp.Start)
	if spanLen < 1 {
		spanLen = 1
	}
	if col+spanLen > len(line) {
		spanLen = len(line) - col
	}
	width := 1
	if spanLen > 0 {
		width = runewidth.StringWidth(line[col : col+spanLen])
		if width < 1 {
			width = 1
		}
	}
	fmt.Fprintf(w, "      | %s^%s\n", pad, strings.Repeat("~", width-1))
}
