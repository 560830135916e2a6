package errors

import (
	"bufio"
	stderrors "errors"
	"fmt"
	"os"
)

// Category represents the type of error.
type Category string

const (
	CategoryRender  Category = "render"
	CategoryRouting Category = "routing"
	CategoryConfig  Category = "config"
	CategoryExport  Category = "export"
	CategoryCLI     Category = "cli"
)

// Location represents a source location, typically inside a manifest file.
type Location struct {
	File   string
	Line   int
	Column int
}

// String returns the location as a formatted string.
func (l *Location) String() string {
	if l == nil {
		return ""
	}
	if l.Column > 0 {
		return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
	}
	return fmt.Sprintf("%s:%d", l.File, l.Line)
}

// Error is a structured error with a code, an explanation and a hint.
type Error struct {
	// Code is a unique error identifier (e.g., "E202").
	Code string

	// Category is the error type (render, routing, etc.).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of this particular failure.
	Detail string

	// Location is the source location where the error occurred.
	Location *Location

	// Context contains the source lines around Location, starting at
	// line ContextStart.
	Context      []string
	ContextStart int

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Code != "" {
		return e.Code + ": " + msg
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Wrapped
}

// WithLocation points the error at file:line:column and captures the
// surrounding source lines when the file is readable.
func (e *Error) WithLocation(file string, line, column int) *Error {
	e.Location = &Location{File: file, Line: line, Column: column}
	e.ContextStart, e.Context = readContextLines(file, line, 2)
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *Error) WithSuggestion(s string) *Error {
	e.Suggestion = s
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *Error) WithDetail(d string) *Error {
	e.Detail = d
	return e
}

// WithDetailf adds a formatted detailed explanation to the error.
func (e *Error) WithDetailf(format string, args ...any) *Error {
	e.Detail = fmt.Sprintf(format, args...)
	return e
}

// Wrap wraps another error.
func (e *Error) Wrap(err error) *Error {
	e.Wrapped = err
	return e
}

// readContextLines returns up to radius lines on each side of line, and
// the number of the first returned line.
func readContextLines(filename string, line, radius int) (int, []string) {
	f, err := os.Open(filename)
	if err != nil {
		return 0, nil
	}
	defer f.Close()

	first := max(line-radius, 1)
	last := line + radius

	var lines []string
	scanner := bufio.NewScanner(f)
	for n := 1; scanner.Scan() && n <= last; n++ {
		if n >= first {
			lines = append(lines, scanner.Text())
		}
	}
	if len(lines) == 0 {
		return 0, nil
	}
	return first, lines
}

// New creates an Error from a registered error code.
func New(code string) *Error {
	template, ok := registry[code]
	if !ok {
		return &Error{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &Error{
		Code:       code,
		Category:   template.Category,
		Message:    template.Message,
		Suggestion: template.Suggestion,
	}
}

// Newf creates a new Error with a formatted message (no code).
func Newf(category Category, format string, args ...any) *Error {
	return &Error{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in an Error.
func FromError(err error, code string) *Error {
	if err == nil {
		return nil
	}
	var ie *Error
	if stderrors.As(err, &ie) {
		return ie
	}
	return New(code).Wrap(err)
}

// CodeOf returns the code of the first Error in err's chain, or "".
func CodeOf(err error) string {
	var ie *Error
	if stderrors.As(err, &ie) {
		return ie.Code
	}
	return ""
}
