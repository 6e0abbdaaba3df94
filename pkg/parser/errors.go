package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/carthage-software/fennec/pkg/lexer"
	"github.com/carthage-software/fennec/pkg/span"
	"github.com/carthage-software/fennec/pkg/token"
)

// ErrorKind classifies a parse error.
type ErrorKind uint8

const (
	UnexpectedToken ErrorKind = iota
	UnexpectedEndOfFile
	SyntaxError
)

// ParseError is the first error found in a source file. Parsing does not
// recover: one error aborts the file.
type ParseError struct {
	Kind     ErrorKind
	Span     span.Span
	Found    token.Kind
	Expected []token.Kind
	Message  string
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case UnexpectedEndOfFile:
		if len(e.Expected) > 0 {
			return fmt.Sprintf("unexpected end of file, expected %s", expectedList(e.Expected))
		}
		return "unexpected end of file"
	case SyntaxError:
		return e.Message
	}
	if len(e.Expected) > 0 {
		return fmt.Sprintf("unexpected token %s, expected %s", e.Found, expectedList(e.Expected))
	}
	return fmt.Sprintf("unexpected token %s", e.Found)
}

func expectedList(kinds []token.Kind) string {
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.String()
	}
	if len(names) == 1 {
		return names[0]
	}
	return "one of " + strings.Join(names, ", ")
}

func unexpected(tok token.Token, expected ...token.Kind) *ParseError {
	if tok.Kind == token.EOF {
		return &ParseError{Kind: UnexpectedEndOfFile, Span: tok.Span, Found: tok.Kind, Expected: expected}
	}
	return &ParseError{Kind: UnexpectedToken, Span: tok.Span, Found: tok.Kind, Expected: expected}
}

func syntaxError(s span.Span, format string, args ...any) *ParseError {
	return &ParseError{Kind: SyntaxError, Span: s, Message: fmt.Sprintf(format, args...)}
}

// ErrorSpan extracts the span of a parse or lex error.
func ErrorSpan(err error) (span.Span, bool) {
	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		return parseErr.Span, true
	}
	var lexErr *lexer.Error
	if errors.As(err, &lexErr) {
		return lexErr.Span, true
	}
	return span.Span{}, false
}

// SourceLocation represents a location in source code
type SourceLocation struct {
	Filename string
	Line     int
	Column   int
	Length   int // Length of the offending token
}

// Locate resolves a byte span of source into a SourceLocation.
func Locate(filename, source string, s span.Span) *SourceLocation {
	loc := span.NewLines(source).Locate(s.Start)
	return &SourceLocation{
		Filename: filename,
		Line:     loc.Line,
		Column:   loc.Column,
		Length:   s.Len(),
	}
}

// SourceError represents an error with source location information
type SourceError struct {
	Inner    error
	Location *SourceLocation
	Source   string // The source code of the file
}

// NewSourceError wraps a parse or lex error with its location in source.
// Errors without a span are returned as-is.
func NewSourceError(err error, filename, source string) error {
	s, ok := ErrorSpan(err)
	if !ok {
		return err
	}
	return &SourceError{
		Inner:    err,
		Location: Locate(filename, source, s),
		Source:   source,
	}
}

func (e *SourceError) Unwrap() error {
	return e.Inner
}

func (e *SourceError) Error() string {
	if e.Location == nil {
		return e.Inner.Error()
	}
	return fmt.Sprintf("%s:%d:%d: %s", e.Location.Filename, e.Location.Line, e.Location.Column, e.Inner)
}

// FormatWithHighlighting returns a nicely formatted error with syntax highlighting
func (e *SourceError) FormatWithHighlighting() string {
	if e.Location == nil {
		return e.Inner.Error()
	}

	lines := strings.Split(e.Source, "\n")
	if e.Location.Line < 1 || e.Location.Line > len(lines) {
		return e.Inner.Error()
	}

	// Colors for terminal output
	const (
		red   = "\033[31m"
		blue  = "\033[34m"
		bold  = "\033[1m"
		reset = "\033[0m"
		dim   = "\033[2m"
	)

	var result strings.Builder

	result.WriteString(fmt.Sprintf("%s%sError:%s %s\n", bold, red, reset, e.Inner))
	result.WriteString(fmt.Sprintf("  %s%s--> %s:%d:%d%s\n", dim, blue, e.Location.Filename, e.Location.Line, e.Location.Column, reset))
	result.WriteString(fmt.Sprintf(" %s%s |%s\n", dim, padLeft("", 3), reset))

	startLine := max(1, e.Location.Line-2)
	endLine := min(len(lines), e.Location.Line+2)

	for i := startLine; i <= endLine; i++ {
		paddedLineStr := padLeft(fmt.Sprintf("%d", i), 3)
		if i == e.Location.Line {
			result.WriteString(fmt.Sprintf(" %s%s%s%s | %s%s\n",
				dim, blue, bold, paddedLineStr, reset, lines[i-1]))

			// 1 space + 3 for line number + " | " + column - 1
			padding := strings.Repeat(" ", 1+3+3+e.Location.Column-1)
			underline := strings.Repeat("^", max(1, e.Location.Length))
			result.WriteString(fmt.Sprintf("%s%s%s%s%s\n",
				dim, padding, red, underline, reset))
		} else {
			result.WriteString(fmt.Sprintf(" %s%s | %s%s\n",
				dim, paddedLineStr, lines[i-1], reset))
		}
	}

	result.WriteString(fmt.Sprintf(" %s%s |%s\n", dim, padLeft("", 3), reset))

	return result.String()
}

func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}
