package service

import (
	"context"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/carthage-software/fennec/pkg/interner"
	"github.com/carthage-software/fennec/pkg/linter"
	"github.com/carthage-software/fennec/pkg/parser"
	"github.com/carthage-software/fennec/pkg/reporting"
)

// ParseErrorCode is the code of issues raised for sources that do not
// parse.
const ParseErrorCode = "parse-error"

// LintService lints sources in parallel.
type LintService struct {
	linter   *linter.Linter
	interner *interner.Interner
	manager  *Manager
	external bool
}

// NewLintService creates a lint service. With external set, third-party
// sources are linted too.
func NewLintService(l *linter.Linter, in *interner.Interner, manager *Manager, external bool) *LintService {
	return &LintService{linter: l, interner: in, manager: manager, external: external}
}

// LintReport holds the issues of a run and the text of every linted
// source, keyed by source name, for rendering snippets.
type LintReport struct {
	Issues  reporting.IssueCollection
	Sources map[string]string
}

// Run lints sources. A source that fails to parse yields a parse-error
// issue; only I/O errors stop the run.
func (s *LintService) Run(ctx context.Context, sources []Source) (*LintReport, error) {
	issues := make([]reporting.IssueCollection, len(sources))
	texts := make([]string, len(sources))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for i, source := range sources {
		if source.External && !s.external {
			continue
		}
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			text, err := s.manager.Load(source)
			if err != nil {
				return err
			}
			slog.DebugContext(ctx, "linting", "source", source.Name)
			texts[i] = text
			issues[i] = s.LintSource(source.Name, text)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	report := &LintReport{Sources: map[string]string{}}
	for i, source := range sources {
		if source.External && !s.external {
			continue
		}
		report.Issues.Extend(issues[i])
		report.Sources[source.Name] = texts[i]
	}
	return report, nil
}

// LintSource parses and lints a single source text.
func (s *LintService) LintSource(name, source string) reporting.IssueCollection {
	program, err := parser.Parse(s.interner, name, source)
	if err != nil {
		return reporting.NewCollection(ParseErrorIssue(name, err))
	}
	return s.linter.Lint(program, source)
}

// ParseErrorIssue converts a parse error into an error-level issue.
func ParseErrorIssue(name string, err error) reporting.Issue {
	issue := reporting.NewIssue(reporting.Error, err.Error()).
		WithCode(ParseErrorCode).
		WithSource(name)
	if s, ok := parser.ErrorSpan(err); ok {
		issue = issue.WithAnnotations(reporting.PrimaryAt(s))
	}
	return issue
}
