package linter

import (
	"github.com/carthage-software/fennec/pkg/interner"
	"github.com/carthage-software/fennec/pkg/reporting"
	"github.com/carthage-software/fennec/pkg/span"
)

// Context is handed to a rule while it inspects one program.
type Context struct {
	interner *interner.Interner
	name     string
	source   string
	rule     Rule
	level    reporting.Level
	issues   *reporting.IssueCollection
}

// Level is the level the current rule reports at.
func (c *Context) Level() reporting.Level {
	return c.level
}

// Lookup resolves an interned string.
func (c *Context) Lookup(id interner.ID) string {
	return c.interner.Lookup(id)
}

// Slice returns the source text covered by s.
func (c *Context) Slice(s span.Span) string {
	return s.Slice(c.source)
}

// Report records issue under the current rule's name and level.
func (c *Context) Report(issue reporting.Issue) {
	issue.Level = c.level
	issue.Code = c.rule.Name()
	issue.Source = c.name
	c.issues.Push(issue)
}

// ReportWithFix records issue along with edits that resolve it.
func (c *Context) ReportWithFix(issue reporting.Issue, safety reporting.Safety, edits ...reporting.Edit) {
	c.Report(issue.WithFix(&reporting.Fix{Safety: safety, Edits: edits}))
}

// extendOverSpaces grows s over the blanks that follow it.
func (c *Context) extendOverSpaces(s span.Span) span.Span {
	for int(s.End) < len(c.source) && (c.source[s.End] == ' ' || c.source[s.End] == '\t') {
		s.End++
	}
	return s
}
