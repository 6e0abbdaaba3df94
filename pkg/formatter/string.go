package formatter

import (
	"strings"

	"github.com/carthage-software/fennec/pkg/ast"
	"github.com/carthage-software/fennec/pkg/doc"
)

func (f *formatter) literal(l *ast.Literal) doc.Doc {
	raw := f.lookup(l.Raw)
	switch l.Type {
	case ast.TrueLiteral:
		return f.keyword("true")
	case ast.FalseLiteral:
		return f.keyword("false")
	case ast.NullLiteral:
		return f.keyword("null")
	case ast.StringLiteral:
		return verbatim(f.quote(raw))
	}
	return doc.Text(raw)
}

// quote switches a plain string literal to the preferred quote when the
// content reads the same under both.
func (f *formatter) quote(raw string) string {
	if len(raw) < 2 {
		return raw
	}
	content := raw[1 : len(raw)-1]
	switch {
	case raw[0] == '"' && f.settings.SingleQuote:
		if !strings.ContainsAny(content, `\'$`) {
			return "'" + content + "'"
		}
	case raw[0] == '\'' && !f.settings.SingleQuote:
		if !strings.ContainsAny(content, `\"$`) {
			return `"` + content + `"`
		}
	}
	return raw
}

// compositeString keeps interpolated strings, heredocs and shell
// commands as written; only the heredoc opener is normalised.
func (f *formatter) compositeString(c *ast.CompositeString) doc.Doc {
	if c.Type != ast.DocumentString {
		return doc.Concat(verbatim(f.slice(c.Span())), f.consumeInside(c))
	}

	label := f.lookup(c.Label)
	opener := "<<<" + label
	if c.Nowdoc {
		opener = "<<<'" + label + "'"
	}
	body := f.source[c.Start.End:c.End.Start]
	return doc.Concat(
		doc.Text(opener),
		doc.LiteralLine,
		verbatim(body),
		doc.Text(f.slice(c.End)),
		f.consumeInside(c),
		doc.BreakParent{},
	)
}

// consumeInside drops the cursor past comments lexed inside the
// interpolations of c; they are printed as part of the source text.
func (f *formatter) consumeInside(c *ast.CompositeString) doc.Doc {
	f.comments.ConsumeUpTo(c.End.Start)
	return nil
}
