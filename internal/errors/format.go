package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"strings"
)

// ANSI color codes for terminal output.
const (
	colorReset = "\033[0m"
	colorRed   = "\033[31m"
	colorCyan  = "\033[36m"
	colorWhite = "\033[37m"
	colorGray  = "\033[90m"
	colorBold  = "\033[1m"
)

// palette paints text when enabled.
type palette bool

func (p palette) paint(code, text string) string {
	if !p {
		return text
	}
	return code + text + colorReset
}

func (p palette) red(text string) string   { return p.paint(colorRed, text) }
func (p palette) cyan(text string) string  { return p.paint(colorCyan, text) }
func (p palette) white(text string) string { return p.paint(colorWhite, text) }
func (p palette) gray(text string) string  { return p.paint(colorGray, text) }
func (p palette) bold(text string) string  { return p.paint(colorBold, text) }

// Format renders the error for terminal display. color enables ANSI codes.
func (e *Error) Format(color bool) string {
	p := palette(color)
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(p.red(p.bold("ERROR ")))
	if e.Code != "" {
		b.WriteString(p.white(p.bold(e.Code + ": ")))
	}
	b.WriteString(p.white(e.Message))
	b.WriteString("\n\n")

	if e.Location != nil {
		b.WriteString("  ")
		b.WriteString(p.cyan(e.Location.String()))
		b.WriteString("\n\n")
		if len(e.Context) > 0 {
			e.writeSnippet(&b, p)
			b.WriteString("\n")
		}
	}

	if e.Detail != "" {
		for _, line := range wrapText(e.Detail, 70) {
			b.WriteString("  ")
			b.WriteString(line)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if e.Suggestion != "" {
		b.WriteString("  ")
		b.WriteString(p.cyan("Hint: "))
		b.WriteString(e.Suggestion)
		b.WriteString("\n\n")
	}

	return b.String()
}

// writeSnippet prints the source lines around the location, marking the
// failing line and column.
func (e *Error) writeSnippet(b *strings.Builder, p palette) {
	for i, line := range e.Context {
		n := e.ContextStart + i
		if n != e.Location.Line {
			fmt.Fprintf(b, "    %4d%s%s\n", n, p.gray(" │ "), line)
			continue
		}
		fmt.Fprintf(b, "  %s%4d%s%s\n", p.red("→ "), n, p.gray(" │ "), line)
		if e.Location.Column > 0 {
			fmt.Fprintf(b, "       %s%s%s\n", p.gray("│ "), strings.Repeat(" ", e.Location.Column-1), p.red("^"))
		}
	}
}

type jsonLocation struct {
	File   string `json:"file"`
	Line   int    `json:"line"`
	Column int    `json:"column,omitempty"`
}

type jsonError struct {
	Code       string        `json:"code,omitempty"`
	Category   Category      `json:"category,omitempty"`
	Message    string        `json:"message"`
	Detail     string        `json:"detail,omitempty"`
	Location   *jsonLocation `json:"location,omitempty"`
	Suggestion string        `json:"suggestion,omitempty"`
	Cause      string        `json:"cause,omitempty"`
}

// MarshalJSON encodes the error for machine consumption.
func (e *Error) MarshalJSON() ([]byte, error) {
	out := jsonError{
		Code:       e.Code,
		Category:   e.Category,
		Message:    e.Message,
		Detail:     e.Detail,
		Suggestion: e.Suggestion,
	}
	if e.Location != nil {
		out.Location = &jsonLocation{File: e.Location.File, Line: e.Location.Line, Column: e.Location.Column}
	}
	if e.Wrapped != nil {
		out.Cause = e.Wrapped.Error()
	}
	return json.Marshal(out)
}

// wrapText wraps text to the specified width.
func wrapText(text string, width int) []string {
	if text == "" {
		return nil
	}
	if len(text) <= width {
		return []string{text}
	}

	var lines []string
	var current strings.Builder
	for _, word := range strings.Fields(text) {
		if current.Len() > 0 && current.Len()+len(word)+1 > width {
			lines = append(lines, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteString(" ")
		}
		current.WriteString(word)
	}
	if current.Len() > 0 {
		lines = append(lines, current.String())
	}
	return lines
}

// Printer writes command failures to a terminal or as JSON lines.
// Joined errors are printed one by one; errors without a code are reported
// under Fallback.
type Printer struct {
	Out   io.Writer
	Color bool
	JSON  bool

	// Fallback is the code for errors that carry none.
	Fallback string
}

// Print writes err.
func (p Printer) Print(err error) {
	if err == nil {
		return
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			p.Print(e)
		}
		return
	}

	ie := p.coded(err)
	if p.JSON {
		data, merr := json.Marshal(ie)
		if merr != nil {
			fmt.Fprintf(p.Out, "{\"message\":%q}\n", err.Error())
			return
		}
		fmt.Fprintf(p.Out, "%s\n", data)
		return
	}
	fmt.Fprint(p.Out, ie.Format(p.Color))
}

func (p Printer) coded(err error) *Error {
	var ie *Error
	if stderrors.As(err, &ie) {
		return ie
	}
	code := p.Fallback
	if code == "" {
		code = "E144"
	}
	return FromError(err, code).WithDetail(err.Error())
}
