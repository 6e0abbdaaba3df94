package lsp

import (
	"unicode/utf16"
	"unicode/utf8"

	"github.com/carthage-software/fennec/pkg/reporting"
	"github.com/carthage-software/fennec/pkg/span"
)

func severity(level reporting.Level) DiagnosticSeverity {
	switch level {
	case reporting.Error:
		return SeverityError
	case reporting.Warning:
		return SeverityWarning
	case reporting.Note:
		return SeverityInformation
	default:
		return SeverityHint
	}
}

// toDiagnostics converts issues raised against text into diagnostics.
func toDiagnostics(text string, issues reporting.IssueCollection) []Diagnostic {
	lines := span.NewLines(text)
	diagnostics := []Diagnostic{}
	for _, issue := range issues.Sorted() {
		message := issue.Message
		if issue.Help != "" {
			message += "\nhelp: " + issue.Help
		}
		d := Diagnostic{
			Severity: severity(issue.Level),
			Code:     issue.Code,
			Source:   DiagnosticSource,
			Message:  message,
		}
		if s, ok := issue.PrimarySpan(); ok {
			d.Range = Range{
				Start: position(text, lines, s.Start),
				End:   position(text, lines, s.End),
			}
		}
		diagnostics = append(diagnostics, d)
	}
	return diagnostics
}

// position converts a byte offset into a zero-based line and UTF-16
// character offset.
func position(text string, lines *span.Lines, p span.Position) Position {
	if int(p) > len(text) {
		p = span.Position(len(text))
	}
	loc := lines.Locate(p)
	start := lines.LineStart(loc.Line)
	character := 0
	for _, r := range text[start:p] {
		if r == utf8.RuneError {
			character++
			continue
		}
		character += utf16.RuneLen(r)
	}
	return Position{Line: loc.Line - 1, Character: character}
}

// endPosition returns the position just past the last character of text.
func endPosition(text string) Position {
	return position(text, span.NewLines(text), span.Position(len(text)))
}
