package format

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/esparse/ecma/parser"
	"github.com/fatih/color"
)

// DiagnosticRenderer prints syntax errors with the offending source line and
// a caret under the column:
//
//	syntax error in main.js at 1:7: expected ";", found "y"
//
//	   1 | var x y
//	     |       ^
type DiagnosticRenderer struct {
	w      io.Writer
	header *color.Color
	gutter *color.Color
	caret  *color.Color
}

// NewDiagnosticRenderer returns a renderer writing to w. Color escapes are
// written only when useColor is true, regardless of the terminal.
func NewDiagnosticRenderer(w io.Writer, useColor bool) *DiagnosticRenderer {
	r := &DiagnosticRenderer{
		w:      w,
		header: color.New(color.FgRed, color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgRed, color.Bold),
	}
	for _, c := range []*color.Color{r.header, r.gutter, r.caret} {
		if useColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return r
}

// Render writes err for the named source. Errors other than *parser.Error
// get a header line only.
func (r *DiagnosticRenderer) Render(name string, src []byte, err error) error {
	_, werr := io.WriteString(r.w, r.String(name, src, err))
	return werr
}

func (r *DiagnosticRenderer) String(name string, src []byte, err error) string {
	if err == nil {
		return ""
	}
	var syntaxErr *parser.Error
	if !errors.As(err, &syntaxErr) {
		if name != "" {
			return r.header.Sprintf("error in %s: %s", name, err) + "\n"
		}
		return r.header.Sprintf("error: %s", err) + "\n"
	}

	lines := sourceLines(string(src))
	line, col := syntaxErr.Pos.Line, syntaxErr.Pos.Column
	if line < 1 {
		line = 1
	}
	if col < 1 {
		col = 1
	}
	if line > len(lines) {
		line = len(lines)
	}
	text := lines[line-1]

	var b strings.Builder
	if name != "" {
		b.WriteString(r.header.Sprintf("syntax error in %s at %d:%d:", name, line, col))
	} else {
		b.WriteString(r.header.Sprintf("syntax error at %d:%d:", line, col))
	}
	fmt.Fprintf(&b, " %s\n\n", syntaxErr.Message())

	if line > 1 {
		r.sourceLine(&b, line-1, lines[line-2])
	}
	r.sourceLine(&b, line, text)
	fmt.Fprintf(&b, "%s%s%s\n", r.gutter.Sprint("     | "), caretPadding(text, col), r.caret.Sprint("^"))
	if line < len(lines) && lines[line] != "" {
		r.sourceLine(&b, line+1, lines[line])
	}
	return b.String()
}

// sourceLines splits src at "\n", "\r\n" and a lone "\r", the line breaks
// the lexer counts.
func sourceLines(src string) []string {
	return strings.Split(strings.ReplaceAll(strings.ReplaceAll(src, "\r\n", "\n"), "\r", "\n"), "\n")
}

func (r *DiagnosticRenderer) sourceLine(b *strings.Builder, n int, text string) {
	fmt.Fprintf(b, "%s%s\n", r.gutter.Sprintf("%4d | ", n), text)
}

// caretPadding keeps tabs from the source line so the caret lines up. Columns
// count bytes, so a multi-byte rune before the error widens the padding.
func caretPadding(text string, col int) string {
	var pad strings.Builder
	for i := 0; i < col-1; i++ {
		if i < len(text) && text[i] == '\t' {
			pad.WriteByte('\t')
		} else {
			pad.WriteByte(' ')
		}
	}
	return pad.String()
}
