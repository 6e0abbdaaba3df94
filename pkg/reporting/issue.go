package reporting

import (
	"fmt"
	"slices"
	"strings"

	"github.com/carthage-software/fennec/pkg/span"
)

// Level is the severity of an issue.
type Level uint8

const (
	Help Level = iota
	Note
	Warning
	Error
)

var levelNames = [...]string{
	Help:    "help",
	Note:    "note",
	Warning: "warning",
	Error:   "error",
}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return fmt.Sprintf("level(%d)", l)
}

// ParseLevel parses a level name as written in configuration files.
func ParseLevel(s string) (Level, error) {
	for l, name := range levelNames {
		if strings.EqualFold(s, name) {
			return Level(l), nil
		}
	}
	return 0, fmt.Errorf("unknown level %q", s)
}

// AnnotationKind tells the reporter how to underline an annotation.
type AnnotationKind uint8

const (
	Primary AnnotationKind = iota
	Secondary
)

// Annotation marks a span of the source an issue refers to.
type Annotation struct {
	Kind    AnnotationKind
	Span    span.Span
	Message string
}

// PrimaryAt annotates the span an issue is about.
func PrimaryAt(s span.Span) Annotation {
	return Annotation{Kind: Primary, Span: s}
}

// SecondaryAt annotates a span that gives context to an issue.
func SecondaryAt(s span.Span) Annotation {
	return Annotation{Kind: Secondary, Span: s}
}

// WithMessage returns a copy of a labelled with message.
func (a Annotation) WithMessage(message string) Annotation {
	a.Message = message
	return a
}

// Safety classifies how likely a fix is to change behaviour.
type Safety uint8

const (
	Safe Safety = iota
	PotentiallyUnsafe
	Unsafe
)

// Edit replaces the bytes of Span with Replacement.
type Edit struct {
	Span        span.Span
	Replacement string
}

// Fix is a set of non-overlapping edits resolving an issue.
type Fix struct {
	Safety Safety
	Edits  []Edit
}

// Apply returns source with the fix's edits applied.
func (f *Fix) Apply(source string) string {
	edits := slices.Clone(f.Edits)
	slices.SortFunc(edits, func(a, b Edit) int {
		return int(b.Span.Start - a.Span.Start)
	})
	for _, e := range edits {
		source = source[:e.Span.Start] + e.Replacement + source[e.Span.End:]
	}
	return source
}

// Issue is a single diagnostic about a source file.
type Issue struct {
	Level       Level
	Code        string
	Message     string
	Source      string
	Annotations []Annotation
	Notes       []string
	Help        string
	Fix         *Fix
}

// NewIssue creates an issue with the given level and message.
func NewIssue(level Level, message string) Issue {
	return Issue{Level: level, Message: message}
}

func (i Issue) WithCode(code string) Issue {
	i.Code = code
	return i
}

func (i Issue) WithSource(source string) Issue {
	i.Source = source
	return i
}

func (i Issue) WithAnnotations(annotations ...Annotation) Issue {
	i.Annotations = append(slices.Clip(i.Annotations), annotations...)
	return i
}

func (i Issue) WithNote(note string) Issue {
	i.Notes = append(slices.Clip(i.Notes), note)
	return i
}

func (i Issue) WithHelp(help string) Issue {
	i.Help = help
	return i
}

func (i Issue) WithFix(fix *Fix) Issue {
	i.Fix = fix
	return i
}

// PrimarySpan returns the span of the first primary annotation, falling
// back to the first annotation of any kind.
func (i Issue) PrimarySpan() (span.Span, bool) {
	for _, a := range i.Annotations {
		if a.Kind == Primary {
			return a.Span, true
		}
	}
	if len(i.Annotations) > 0 {
		return i.Annotations[0].Span, true
	}
	return span.Span{}, false
}

// IssueCollection holds the issues of one or more source files.
type IssueCollection struct {
	issues []Issue
}

// NewCollection creates a collection holding issues.
func NewCollection(issues ...Issue) IssueCollection {
	return IssueCollection{issues: issues}
}

func (c *IssueCollection) Push(issue Issue) {
	c.issues = append(c.issues, issue)
}

func (c *IssueCollection) Extend(other IssueCollection) {
	c.issues = append(c.issues, other.issues...)
}

func (c IssueCollection) Len() int {
	return len(c.issues)
}

func (c IssueCollection) IsEmpty() bool {
	return len(c.issues) == 0
}

// Sorted returns the issues ordered by source name, then by the offset
// of their primary annotation.
func (c IssueCollection) Sorted() []Issue {
	issues := slices.Clone(c.issues)
	slices.SortStableFunc(issues, func(a, b Issue) int {
		if n := strings.Compare(a.Source, b.Source); n != 0 {
			return n
		}
		as, _ := a.PrimarySpan()
		bs, _ := b.PrimarySpan()
		return int(as.Start - bs.Start)
	})
	return issues
}

// HasMinimumLevel reports whether any issue is at least as severe as
// level.
func (c IssueCollection) HasMinimumLevel(level Level) bool {
	return slices.ContainsFunc(c.issues, func(i Issue) bool {
		return i.Level >= level
	})
}

// Fixable returns the issues that carry a fix.
func (c IssueCollection) Fixable() IssueCollection {
	var fixable IssueCollection
	for _, i := range c.issues {
		if i.Fix != nil {
			fixable.Push(i)
		}
	}
	return fixable
}

// CountByLevel returns how many issues there are of each level.
func (c IssueCollection) CountByLevel() map[Level]int {
	counts := map[Level]int{}
	for _, i := range c.issues {
		counts[i.Level]++
	}
	return counts
}
