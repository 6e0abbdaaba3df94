package reporting

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/dagger/testctx"
	"github.com/dagger/testctx/oteltest"
	"github.com/stretchr/testify/require"

	"github.com/carthage-software/fennec/pkg/span"
)

func TestMain(m *testing.M) {
	os.Exit(oteltest.Main(m))
}

type ReportingSuite struct{}

func TestReporting(tT *testing.T) {
	testctx.New(tT,
		oteltest.WithTracing[*testing.T](),
		oteltest.WithLogging[*testing.T](),
	).RunTests(ReportingSuite{})
}

func (ReportingSuite) TestParseLevel(ctx context.Context, t *testctx.T) {
	level, err := ParseLevel("Warning")
	require.NoError(t, err)
	require.Equal(t, Warning, level)

	_, err = ParseLevel("fatal")
	require.ErrorContains(t, err, "fatal")
}

func (ReportingSuite) TestCollection(ctx context.Context, t *testctx.T) {
	var c IssueCollection
	require.True(t, c.IsEmpty())

	c.Push(NewIssue(Note, "b late").WithSource("b.php").WithAnnotations(PrimaryAt(span.New(10, 11))))
	c.Push(NewIssue(Warning, "b early").WithSource("b.php").WithAnnotations(PrimaryAt(span.New(2, 3))))
	c.Push(NewIssue(Help, "a").WithSource("a.php").WithFix(&Fix{}))

	var messages []string
	for _, issue := range c.Sorted() {
		messages = append(messages, issue.Message)
	}
	require.Equal(t, []string{"a", "b early", "b late"}, messages)

	require.True(t, c.HasMinimumLevel(Warning))
	require.False(t, c.HasMinimumLevel(Error))
	require.Equal(t, 1, c.Fixable().Len())
	require.Equal(t, map[Level]int{Help: 1, Note: 1, Warning: 1}, c.CountByLevel())
}

func (ReportingSuite) TestFixApply(ctx context.Context, t *testctx.T) {
	fix := &Fix{Edits: []Edit{
		{Span: span.New(0, 1), Replacement: ""},
		{Span: span.New(8, 10), Replacement: "==="},
	}}
	require.Equal(t, "a = $b === $c", fix.Apply("@a = $b == $c"))
}

func (ReportingSuite) TestReport(ctx context.Context, t *testctx.T) {
	source := "<?php\n\n$a = @foo();\n"
	issue := NewIssue(Error, "unsafe use of error control operator").
		WithCode("no-error-control-operator").
		WithSource("test.php").
		WithAnnotations(PrimaryAt(span.New(12, 13)), SecondaryAt(span.New(13, 18))).
		WithNote("hides errors").
		WithHelp("remove the `@`")

	var out strings.Builder
	reporter := NewReporter(&out, false)
	reporter.AddSource("test.php", source)
	require.NoError(t, reporter.Report(NewCollection(issue)))

	require.Equal(t, strings.Join([]string{
		"error[no-error-control-operator]: unsafe use of error control operator",
		" --> test.php:3:6",
		"  |",
		"3 | $a = @foo();",
		"  |      ^-----",
		"  = note: hides errors",
		"  = help: remove the `@`",
		"",
		"found 1 error",
		"",
	}, "\n"), out.String())
}

func (ReportingSuite) TestReportEmpty(ctx context.Context, t *testctx.T) {
	var out strings.Builder
	require.NoError(t, NewReporter(&out, false).Report(IssueCollection{}))
	require.Equal(t, "no issues found\n", out.String())
}
