// Package formatter prints a parsed program back to canonical source.
// The program is rendered into the doc IR and laid out by doc.Print.
package formatter

import (
	"strings"

	"github.com/carthage-software/fennec/pkg/ast"
	"github.com/carthage-software/fennec/pkg/doc"
	"github.com/carthage-software/fennec/pkg/interner"
	"github.com/carthage-software/fennec/pkg/parser"
	"github.com/carthage-software/fennec/pkg/span"
)

// formatter holds the state of one formatting pass.
type formatter struct {
	settings Settings
	interner *interner.Interner
	source   string
	arena    *doc.Arena
	comments *CommentCursor

	// stack holds the nodes being printed. The top is the node whose
	// build function is running.
	stack []ast.Node

	// scripting is true between an opening tag and the next kept
	// closing tag.
	scripting bool
}

// Format prints program, which was parsed from source with in, using
// settings. An empty program formats to the empty string.
func Format(settings Settings, in *interner.Interner, source string, program *ast.Program) string {
	if len(program.Statements) == 0 {
		return ""
	}
	f := &formatter{
		settings: settings,
		interner: in,
		source:   source,
		arena:    doc.NewArena(),
		comments: NewCommentCursor(program.Trivia),
	}
	d := f.program(program)
	return doc.Print(d, f.arena, doc.Options{
		Width:    settings.PrintWidth,
		TabWidth: settings.TabWidth,
		UseTabs:  settings.UseTabs,
		Newline:  settings.newline(source),
	})
}

// FormatSource parses source and formats it.
func FormatSource(settings Settings, name, source string) (string, error) {
	in := interner.New()
	program, err := parser.Parse(in, name, source)
	if err != nil {
		return "", err
	}
	return Format(settings, in, source, program), nil
}

// wrap prints node with build, surrounded by the comments that lead and
// trail it in the source.
func (f *formatter) wrap(node ast.Node, build func() doc.Doc) doc.Doc {
	s := node.Span()
	leading := f.leadingComments(s.Start)
	f.stack = append(f.stack, node)
	d := build()
	f.stack = f.stack[:len(f.stack)-1]
	trailing := f.trailingComments(s.End, ownsSeparator(node))
	if leading == nil && trailing == nil {
		return d
	}
	return doc.Concat(leading, d, trailing)
}

// ownsSeparator reports whether a comment after the `,` or `;` that
// follows node still trails node.
func ownsSeparator(node ast.Node) bool {
	switch node.(type) {
	case ast.Statement, ast.ClassLikeMember, ast.ArrayElement, ast.MatchArm,
		*ast.Argument, *ast.Parameter, *ast.Attribute, *ast.UseItem,
		*ast.ConstantItem, *ast.PropertyItem, *ast.StaticItem, *ast.DeclareItem,
		*ast.ClosureUseVariable, *ast.TraitUseAdaptation, *ast.PropertyHook:
		return true
	}
	return false
}

// ancestor returns the n-th enclosing node of the node being printed:
// 1 is its parent. It returns nil past the root.
func (f *formatter) ancestor(n int) ast.Node {
	i := len(f.stack) - 1 - n
	if i < 0 {
		return nil
	}
	return f.stack[i]
}

func (f *formatter) parent() ast.Node {
	return f.ancestor(1)
}

func (f *formatter) lookup(id interner.ID) string {
	return f.interner.Lookup(id)
}

func (f *formatter) slice(s span.Span) string {
	return s.Slice(f.source)
}

// keyword spells a keyword in the configured case.
func (f *formatter) keyword(text string) doc.Doc {
	if f.settings.KeywordCase == Uppercase {
		return doc.Text(strings.ToUpper(text))
	}
	return doc.Text(strings.ToLower(text))
}

// verbatim prints text as it is, breaking at its newlines without
// adding indentation.
func verbatim(text string) doc.Doc {
	if !strings.ContainsAny(text, "\r\n") {
		return doc.Text(text)
	}
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	parts := make([]doc.Doc, 0, len(lines)*2)
	for i, line := range lines {
		if i > 0 {
			parts = append(parts, doc.LiteralLine)
		}
		if line != "" {
			parts = append(parts, doc.Text(strings.TrimRight(line, "\r")))
		}
	}
	return doc.Concat(parts...)
}

// skipSpaces returns the first offset at or after (or, backwards,
// before) offset that is not a blank.
func (f *formatter) skipSpaces(offset span.Position, backwards bool) span.Position {
	if backwards {
		for offset > 0 && isBlank(f.source[offset-1]) {
			offset--
		}
		return offset
	}
	for int(offset) < len(f.source) && isBlank(f.source[offset]) {
		offset++
	}
	return offset
}

// hasNewline reports whether a newline follows (or precedes) offset
// after skipping blanks.
func (f *formatter) hasNewline(offset span.Position, backwards bool) bool {
	pos := f.skipSpaces(offset, backwards)
	if backwards {
		return pos == 0 || isNewline(f.source[pos-1])
	}
	return int(pos) < len(f.source) && isNewline(f.source[pos])
}

// hasNewlineInRange reports whether the source between start and end
// contains a newline.
func (f *formatter) hasNewlineInRange(start, end span.Position) bool {
	if start >= end || int(end) > len(f.source) {
		return false
	}
	return strings.ContainsAny(f.source[start:end], "\r\n")
}

// skipNewline steps over one newline sequence at offset.
func (f *formatter) skipNewline(offset span.Position) span.Position {
	if int(offset) >= len(f.source) {
		return offset
	}
	switch f.source[offset] {
	case '\n':
		return offset + 1
	case '\r':
		if int(offset)+1 < len(f.source) && f.source[offset+1] == '\n' {
			return offset + 2
		}
		return offset + 1
	}
	return offset
}

// isNextLineEmpty reports whether the line after the one holding offset
// is blank. Separators and a same-line comment are skipped first.
func (f *formatter) isNextLineEmpty(offset span.Position) bool {
	n := span.Position(len(f.source))
	pos := offset
	for pos < n && (isBlank(f.source[pos]) || f.source[pos] == ';' || f.source[pos] == ',') {
		pos++
	}
	for pos+1 < n && f.source[pos] == '/' && f.source[pos+1] == '*' {
		end := strings.Index(f.source[pos+2:], "*/")
		if end < 0 || strings.ContainsAny(f.source[pos:pos+2+span.Position(end)], "\r\n") {
			break
		}
		pos = f.skipSpaces(pos+2+span.Position(end)+2, false)
	}
	if pos < n && (f.source[pos] == '#' && !(pos+1 < n && f.source[pos+1] == '[') ||
		pos+1 < n && f.source[pos] == '/' && f.source[pos+1] == '/') {
		for pos < n && !isNewline(f.source[pos]) {
			pos++
		}
	}
	if pos >= n || !isNewline(f.source[pos]) {
		return false
	}
	pos = f.skipSpaces(f.skipNewline(pos), false)
	return pos < n && isNewline(f.source[pos])
}

// isPreviousLineEmpty reports whether the line before the one holding
// offset is blank.
func (f *formatter) isPreviousLineEmpty(offset span.Position) bool {
	pos := f.skipSpaces(offset, true)
	if pos == 0 || !isNewline(f.source[pos-1]) {
		return false
	}
	pos--
	if pos > 0 && f.source[pos] == '\n' && f.source[pos-1] == '\r' {
		pos--
	}
	pos = f.skipSpaces(pos, true)
	return pos > 0 && isNewline(f.source[pos-1])
}

// onlyWhitespaceAfter reports whether nothing but whitespace follows
// offset.
func (f *formatter) onlyWhitespaceAfter(offset span.Position) bool {
	return strings.TrimSpace(f.source[offset:]) == ""
}

func isBlank(c byte) bool {
	return c == ' ' || c == '\t'
}

func isNewline(c byte) bool {
	return c == '\n' || c == '\r'
}
