package formatter

import (
	"strings"

	"github.com/carthage-software/fennec/pkg/ast"
	"github.com/carthage-software/fennec/pkg/doc"
	"github.com/carthage-software/fennec/pkg/span"
)

// CommentCursor walks the comments of a program front to back. It only
// moves forward, so every comment is handed out exactly once.
type CommentCursor struct {
	comments []ast.Trivia
	pos      int
}

// NewCommentCursor keeps the comments of trivia, in order.
func NewCommentCursor(trivia []ast.Trivia) *CommentCursor {
	c := &CommentCursor{}
	for _, t := range trivia {
		if t.Kind.IsComment() {
			c.comments = append(c.comments, t)
		}
	}
	return c
}

// Peek returns the next comment without consuming it.
func (c *CommentCursor) Peek() (ast.Trivia, bool) {
	if c.pos >= len(c.comments) {
		return ast.Trivia{}, false
	}
	return c.comments[c.pos], true
}

// PeekBefore returns the next comment if it ends at or before offset.
func (c *CommentCursor) PeekBefore(offset span.Position) (ast.Trivia, bool) {
	comment, ok := c.Peek()
	if !ok || comment.Span.End > offset {
		return ast.Trivia{}, false
	}
	return comment, true
}

// Next consumes and returns the next comment.
func (c *CommentCursor) Next() (ast.Trivia, bool) {
	comment, ok := c.Peek()
	if ok {
		c.pos++
	}
	return comment, ok
}

// ConsumeUpTo consumes every comment ending at or before offset.
func (c *CommentCursor) ConsumeUpTo(offset span.Position) []ast.Trivia {
	start := c.pos
	for c.pos < len(c.comments) && c.comments[c.pos].Span.End <= offset {
		c.pos++
	}
	return c.comments[start:c.pos]
}

// Within reports whether an unconsumed comment lies inside s, without
// consuming anything.
func (c *CommentCursor) Within(s span.Span) bool {
	for _, comment := range c.comments[c.pos:] {
		if comment.Span.Start >= s.End {
			return false
		}
		if s.Contains(comment.Span) {
			return true
		}
	}
	return false
}

// Remaining reports how many comments have not been consumed.
func (c *CommentCursor) Remaining() int {
	return len(c.comments) - c.pos
}

// hasLeadingOwnLineComment reports whether a comment on its own line
// precedes s.
func (f *formatter) hasLeadingOwnLineComment(s span.Span) bool {
	comment, ok := f.comments.PeekBefore(s.Start)
	if !ok {
		return false
	}
	return f.hasNewline(comment.Span.End, false)
}

// hasCommentsIn reports whether an unconsumed comment lies inside s.
func (f *formatter) hasCommentsIn(s span.Span) bool {
	return f.comments.Within(s)
}

// leadingComments prints the comments ending before offset, each
// followed by a break that reflects the source layout.
func (f *formatter) leadingComments(offset span.Position) doc.Doc {
	comments := f.comments.ConsumeUpTo(offset)
	if len(comments) == 0 {
		return nil
	}
	parts := make([]doc.Doc, 0, len(comments)*3)
	for _, comment := range comments {
		parts = append(parts, f.comment(comment))
		if !comment.IsBlock() || f.hasNewline(comment.Span.End, false) {
			parts = append(parts, doc.HardLine)
			if f.isNextLineEmpty(comment.Span.End) {
				parts = append(parts, doc.HardLine)
			}
		} else {
			parts = append(parts, doc.Space)
		}
	}
	return doc.Concat(parts...)
}

// trailingComments prints the comments that follow offset on the same
// line. A line comment becomes a line suffix so it stays at the end of
// whatever line the printer produces. With separators set, a line
// comment may also follow a `,` or `;` after offset.
func (f *formatter) trailingComments(offset span.Position, separators bool) doc.Doc {
	var parts []doc.Doc
	for {
		comment, ok := f.comments.Peek()
		if !ok || !f.onSameLine(offset, comment, separators) {
			break
		}
		f.comments.Next()
		if comment.IsBlock() {
			parts = append(parts, doc.Space, f.comment(comment))
		} else {
			parts = append(parts, doc.LineSuffix{Contents: doc.Concat(doc.Space, f.comment(comment))}, doc.BreakParent{})
		}
		offset = comment.Span.End
	}
	if len(parts) == 0 {
		return nil
	}
	return doc.Concat(parts...)
}

// onSameLine reports whether only blanks, and for line comments the
// allowed separators, lie between offset and the comment.
func (f *formatter) onSameLine(offset span.Position, comment ast.Trivia, separators bool) bool {
	if comment.Span.Start < offset {
		return false
	}
	gap := f.source[offset:comment.Span.Start]
	for i := 0; i < len(gap); i++ {
		switch gap[i] {
		case ' ', '\t':
		case ',', ';':
			if comment.IsBlock() || !separators {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// danglingComments prints the comments left inside an empty container
// that ends at offset, indented on their own lines.
func (f *formatter) danglingComments(offset span.Position) doc.Doc {
	comments := f.comments.ConsumeUpTo(offset)
	if len(comments) == 0 {
		return nil
	}
	parts := make([]doc.Doc, 0, len(comments)*2)
	for i, comment := range comments {
		if i > 0 {
			parts = append(parts, doc.HardLine)
		}
		parts = append(parts, f.comment(comment))
	}
	return doc.Concat(doc.Indent{Contents: doc.Concat(doc.HardLine, doc.Concat(parts...))}, doc.HardLine)
}

// remainingComments flushes every comment not attached to a node.
func (f *formatter) remainingComments() doc.Doc {
	var parts []doc.Doc
	for {
		comment, ok := f.comments.Next()
		if !ok {
			break
		}
		if len(parts) > 0 {
			parts = append(parts, doc.HardLine)
		}
		parts = append(parts, f.comment(comment))
	}
	if len(parts) == 0 {
		return nil
	}
	return doc.Concat(parts...)
}

// comment prints one comment. Docblocks whose lines start with `*` are
// realigned to the current indentation; other block comments keep
// their text.
func (f *formatter) comment(comment ast.Trivia) doc.Doc {
	value := strings.TrimRight(comment.Value, "\r\n")
	if !comment.IsBlock() || !strings.Contains(value, "\n") {
		return doc.Text(value)
	}

	lines := strings.Split(strings.ReplaceAll(value, "\r\n", "\n"), "\n")
	aligned := true
	for _, line := range lines[1:] {
		if !strings.HasPrefix(strings.TrimLeft(line, " \t"), "*") {
			aligned = false
			break
		}
	}

	parts := make([]doc.Doc, 0, len(lines)*2)
	for i, line := range lines {
		if i > 0 {
			if aligned {
				parts = append(parts, doc.HardLine)
			} else {
				parts = append(parts, doc.LiteralLine)
			}
		}
		if aligned && i > 0 {
			line = " " + strings.TrimLeft(line, " \t")
		}
		parts = append(parts, doc.Text(line))
	}
	return doc.Concat(parts...)
}
