package diag

import (
	"fmt"
	"sort"
	"strings"

	"flint/internal/source"
)

type renderedDiagnostic struct {
	Severity string
	Code     string
	Path     string
	Line     uint32
	Column   uint32
	Message  string
}

// FormatDiagnostics renders diagnostics into a stable one-line-per-entry
// representation suitable for golden files and CLI short output. Entries are
// sorted deterministically; the result is empty when nothing was collected.
func FormatDiagnostics(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	if fs == nil || len(diags) == 0 {
		return ""
	}

	rendered := make([]renderedDiagnostic, 0, len(diags))
	for _, d := range diags {
		rendered = appendDiagnostic(rendered, d, fs, includeNotes)
	}

	sort.SliceStable(rendered, func(i, j int) bool {
		di, dj := rendered[i], rendered[j]
		if di.Path != dj.Path {
			return di.Path < dj.Path
		}
		if di.Line != dj.Line {
			return di.Line < dj.Line
		}
		if di.Column != dj.Column {
			return di.Column < dj.Column
		}
		if di.Severity != dj.Severity {
			return di.Severity < dj.Severity
		}
		if di.Code != dj.Code {
			return di.Code < dj.Code
		}
		return di.Message < dj.Message
	})

	var sb strings.Builder
	for _, r := range rendered {
		fmt.Fprintf(&sb, "%s %s %s:%d:%d %s\n", r.Severity, r.Code, r.Path, r.Line, r.Column, r.Message)
	}
	return sb.String()
}

func appendDiagnostic(out []renderedDiagnostic, d Diagnostic, fs *source.FileSet, includeNotes bool) []renderedDiagnostic {
	path, line, col := locate(d.Primary, fs)
	out = append(out, renderedDiagnostic{
		Severity: d.Severity.String(),
		Code:     d.Code.ID(),
		Path:     path,
		Line:     line,
		Column:   col,
		Message:  d.Message,
	})
	if !includeNotes {
		return out
	}
	for _, n := range d.Notes {
		path, line, col := locate(n.Span, fs)
		out = append(out, renderedDiagnostic{
			Severity: "note",
			Code:     d.Code.ID(),
			Path:     path,
			Line:     line,
			Column:   col,
			Message:  n.Msg,
		})
	}
	return out
}

func locate(sp source.Span, fs *source.FileSet) (string, uint32, uint32) {
	file := fs.Get(sp.File)
	if file == nil {
		return "<unknown>", 0, 0
	}
	start, _ := fs.Resolve(sp)
	return file.Path, start.Line, start.Col
}
