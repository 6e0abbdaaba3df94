package reporting

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/carthage-software/fennec/pkg/span"
)

var (
	levelStyles = map[Level]lipgloss.Style{
		Help:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		Note:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("117")),
		Warning: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
		Error:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
	}
	gutterStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))
	secondaryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))
	messageStyle   = lipgloss.NewStyle().Bold(true)
)

// Reporter renders issues with source snippets.
type Reporter struct {
	out     io.Writer
	color   bool
	sources map[string]*source
}

type source struct {
	text  string
	lines *span.Lines
}

// NewReporter creates a reporter writing to out. Without color every
// style is stripped from the output.
func NewReporter(out io.Writer, color bool) *Reporter {
	return &Reporter{out: out, color: color, sources: map[string]*source{}}
}

// AddSource registers the text of a file so issues about it can show
// snippets.
func (r *Reporter) AddSource(name, text string) {
	r.sources[name] = &source{text: text, lines: span.NewLines(text)}
}

// Report writes every issue of c, sorted, followed by a summary line.
func (r *Reporter) Report(c IssueCollection) error {
	var b strings.Builder
	for _, issue := range c.Sorted() {
		r.render(&b, issue)
		b.WriteString("\n")
	}
	r.summary(&b, c)

	out := b.String()
	if !r.color {
		out = ansi.Strip(out)
	}
	_, err := io.WriteString(r.out, out)
	return err
}

func (r *Reporter) summary(b *strings.Builder, c IssueCollection) {
	if c.IsEmpty() {
		b.WriteString(levelStyles[Help].Render("no issues found") + "\n")
		return
	}
	counts := c.CountByLevel()
	var parts []string
	for _, level := range []Level{Error, Warning, Note, Help} {
		if n := counts[level]; n > 0 {
			parts = append(parts, levelStyles[level].Render(plural(n, level.String())))
		}
	}
	fmt.Fprintf(b, "found %s\n", strings.Join(parts, ", "))
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return strconv.Itoa(n) + " " + word + "s"
}

func (r *Reporter) render(b *strings.Builder, issue Issue) {
	header := issue.Level.String()
	if issue.Code != "" {
		header += "[" + issue.Code + "]"
	}
	fmt.Fprintf(b, "%s: %s\n", levelStyles[issue.Level].Render(header), messageStyle.Render(issue.Message))

	src := r.sources[issue.Source]
	primary, hasSpan := issue.PrimarySpan()
	if src == nil || !hasSpan {
		if issue.Source != "" {
			fmt.Fprintf(b, "  %s %s\n", gutterStyle.Render("-->"), issue.Source)
		}
		r.footer(b, issue, 1)
		return
	}

	lines := annotatedLines(src, issue.Annotations)
	gutter := len(strconv.Itoa(lines[len(lines)-1]))
	loc := src.lines.Locate(primary.Start)
	fmt.Fprintf(b, "%s %s %s:%d:%d\n", strings.Repeat(" ", gutter), gutterStyle.Render("-->"), issue.Source, loc.Line, loc.Column)
	fmt.Fprintf(b, "%s %s\n", strings.Repeat(" ", gutter), gutterStyle.Render("|"))

	for _, line := range lines {
		text := lineText(src, line)
		fmt.Fprintf(b, "%s %s %s\n", gutterStyle.Render(fmt.Sprintf("%*d", gutter, line)), gutterStyle.Render("|"), text)
		fmt.Fprintf(b, "%s %s %s\n", strings.Repeat(" ", gutter), gutterStyle.Render("|"), r.markers(src, line, text, issue))
	}
	r.footer(b, issue, gutter)
}

func (r *Reporter) footer(b *strings.Builder, issue Issue, gutter int) {
	pad := strings.Repeat(" ", gutter)
	for _, note := range issue.Notes {
		fmt.Fprintf(b, "%s %s %s: %s\n", pad, gutterStyle.Render("="), messageStyle.Render("note"), note)
	}
	if issue.Help != "" {
		fmt.Fprintf(b, "%s %s %s: %s\n", pad, gutterStyle.Render("="), messageStyle.Render("help"), issue.Help)
	}
}

// markers underlines the annotations starting on line: `^` for primary
// and `-` for secondary ones.
func (r *Reporter) markers(src *source, line int, text string, issue Issue) string {
	start := src.lines.LineStart(line)
	var row []byte
	var messages []string
	for _, a := range issue.Annotations {
		if src.lines.Locate(a.Span.Start).Line != line {
			continue
		}
		from := ansi.StringWidth(text[:min(int(a.Span.Start-start), len(text))])
		to := ansi.StringWidth(text[:min(int(a.Span.End-start), len(text))])
		to = max(to, from+1)
		for len(row) < to {
			row = append(row, ' ')
		}
		for col := from; col < to; col++ {
			if row[col] == '^' {
				continue
			}
			if a.Kind == Primary {
				row[col] = '^'
			} else {
				row[col] = '-'
			}
		}
		if a.Message != "" {
			messages = append(messages, a.Message)
		}
	}

	var out strings.Builder
	for _, ch := range strings.TrimRight(string(row), " ") {
		switch ch {
		case '^':
			out.WriteString(levelStyles[issue.Level].Render("^"))
		case '-':
			out.WriteString(secondaryStyle.Render("-"))
		default:
			out.WriteRune(ch)
		}
	}
	if len(messages) > 0 {
		out.WriteString(" " + levelStyles[issue.Level].Render(strings.Join(messages, "; ")))
	}
	return out.String()
}

// annotatedLines returns the sorted line numbers the annotations start
// on.
func annotatedLines(src *source, annotations []Annotation) []int {
	var lines []int
	for _, a := range annotations {
		line := src.lines.Locate(a.Span.Start).Line
		if !slices.Contains(lines, line) {
			lines = append(lines, line)
		}
	}
	slices.Sort(lines)
	return lines
}

func lineText(src *source, line int) string {
	start := src.lines.LineStart(line)
	end := len(src.text)
	if line < src.lines.Count() {
		end = int(src.lines.LineStart(line+1)) - 1
	}
	return strings.TrimRight(src.text[start:end], "\r")
}
