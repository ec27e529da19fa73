package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/funvibe/funpipe/internal/diagnostics"
	"github.com/funvibe/funpipe/internal/pipeline"
	"github.com/funvibe/funpipe/internal/token"
)

const (
	ansiReset  = "\x1b[0m"
	ansiBold   = "\x1b[1m"
	ansiRed    = "\x1b[31m"
	ansiYellow = "\x1b[33m"
	ansiCyan   = "\x1b[36m"
)

// renderer prints check results. Diagnostics go to stderr; reports meant for
// consumption (json, rewritten source) go to stdout.
type renderer struct {
	stdout io.Writer
	stderr io.Writer
	source string
	color  bool
}

func newRenderer(stdout, stderr io.Writer, source string, noColor bool) *renderer {
	return &renderer{
		stdout: stdout,
		stderr: stderr,
		source: source,
		color:  useColor(stderr, noColor),
	}
}

// useColor follows the NO_COLOR convention (https://no-color.org/), then
// falls back to a terminal check on the diagnostic stream.
func useColor(w io.Writer, noColor bool) bool {
	if noColor {
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (r *renderer) paint(code, s string) string {
	if !r.color {
		return s
	}
	return code + s + ansiReset
}

func (r *renderer) renderHuman(ctx *pipeline.PipelineContext) {
	for _, err := range ctx.Errors {
		r.renderError(err)
	}
	for _, w := range ctx.Warnings {
		r.renderWarning(w)
	}
}

func (r *renderer) renderError(err *diagnostics.DiagnosticError) {
	head := fmt.Sprintf("error[%s]", err.Code)
	fmt.Fprintf(r.stderr, "%s: %s\n", r.paint(ansiBold+ansiRed, head), err.Message)
	r.renderLocation(err.File, err.Span)
	r.renderExcerpt(err.Span, ansiRed)
	if hint := err.Hint(); hint != "" {
		fmt.Fprintf(r.stderr, "  %s %s\n", r.paint(ansiCyan, "hint:"), hint)
	}
}

func (r *renderer) renderWarning(w *diagnostics.Warning) {
	fmt.Fprintf(r.stderr, "%s: %s\n", r.paint(ansiBold+ansiYellow, "warning"), w.Message())
	r.renderLocation(w.File, w.Span)
	r.renderExcerpt(w.Span, ansiYellow)
	if hint := w.Hint(); hint != "" {
		fmt.Fprintf(r.stderr, "  %s %s\n", r.paint(ansiCyan, "hint:"), hint)
	}
}

func (r *renderer) renderLocation(file string, span token.Span) {
	line, column := diagnostics.PositionOf(r.source, span.Start)
	if file == "" {
		file = "<stdin>"
	}
	fmt.Fprintf(r.stderr, "  --> %s:%d:%d\n", file, line, column)
}

// renderExcerpt prints the source line the span starts on, with a caret run
// underneath it. A span reaching past the end of the line is truncated to it.
func (r *renderer) renderExcerpt(span token.Span, color string) {
	lineStart, lineEnd := lineBounds(r.source, span.Start)
	lineText := r.source[lineStart:lineEnd]
	if strings.TrimSpace(lineText) == "" {
		return
	}

	start := span.Start - lineStart
	end := span.End - lineStart
	if end > len(lineText) {
		end = len(lineText)
	}
	if end <= start {
		end = start + 1
	}

	prefix := strings.Map(func(r rune) rune {
		if r == '\t' {
			return '\t'
		}
		return ' '
	}, lineText[:start])
	carets := strings.Repeat("^", end-start)

	fmt.Fprintf(r.stderr, "    %s\n", lineText)
	fmt.Fprintf(r.stderr, "    %s%s\n", prefix, r.paint(color, carets))
}

// lineBounds finds the start and end offsets of the line containing offset,
// excluding the trailing newline.
func lineBounds(source string, offset int) (start, end int) {
	if offset > len(source) {
		offset = len(source)
	}
	start = strings.LastIndexByte(source[:offset], '\n') + 1
	end = strings.IndexByte(source[offset:], '\n')
	if end < 0 {
		end = len(source)
	} else {
		end += offset
	}
	return start, end
}

// JSON report shapes. Spans are half-open byte offset ranges; line and column
// are 1-based and derived from the span start.
type jsonSpan struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

type jsonDiagnostic struct {
	Severity string   `json:"severity"`
	Code     string   `json:"code,omitempty"`
	Message  string   `json:"message"`
	Line     int      `json:"line"`
	Column   int      `json:"column"`
	Span     jsonSpan `json:"span"`
	Hint     string   `json:"hint,omitempty"`
}

type jsonReport struct {
	File     string           `json:"file,omitempty"`
	Errors   []jsonDiagnostic `json:"errors"`
	Warnings []jsonDiagnostic `json:"warnings"`
}

func (r *renderer) renderJSON(ctx *pipeline.PipelineContext) error {
	report := jsonReport{
		File:     ctx.FilePath,
		Errors:   make([]jsonDiagnostic, 0, len(ctx.Errors)),
		Warnings: make([]jsonDiagnostic, 0, len(ctx.Warnings)),
	}

	for _, err := range ctx.Errors {
		line, column := diagnostics.PositionOf(r.source, err.Span.Start)
		report.Errors = append(report.Errors, jsonDiagnostic{
			Severity: "error",
			Code:     string(err.Code),
			Message:  err.Message,
			Line:     line,
			Column:   column,
			Span:     jsonSpan{Start: err.Span.Start, End: err.Span.End},
			Hint:     err.Hint(),
		})
	}

	for _, w := range ctx.Warnings {
		line, column := diagnostics.PositionOf(r.source, w.Span.Start)
		report.Warnings = append(report.Warnings, jsonDiagnostic{
			Severity: "warning",
			Message:  w.Message(),
			Line:     line,
			Column:   column,
			Span:     jsonSpan{Start: w.Span.Start, End: w.Span.End},
			Hint:     w.Hint(),
		})
	}

	enc := json.NewEncoder(r.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
