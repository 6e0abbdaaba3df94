package service

import (
	"context"
	"log/slog"
	"slices"

	"github.com/carthage-software/fennec/pkg/reporting"
)

// FixReport summarises the fixes applied after a lint run.
type FixReport struct {
	// Applied counts the fixes applied across all sources.
	Applied int
	// Skipped counts fixes left out because they were too unsafe or
	// overlapped an earlier fix.
	Skipped int
	// Fixed lists the sources whose text changed.
	Fixed []Source
}

// Fix applies the fixes attached to the issues of report, up to the
// given safety, and writes the results unless dryRun is set. External
// sources are never touched.
func (s *LintService) Fix(ctx context.Context, sources []Source, report *LintReport, limit reporting.Safety, dryRun bool) (*FixReport, error) {
	fixes := map[string][]*reporting.Fix{}
	for _, issue := range report.Issues.Sorted() {
		if issue.Fix != nil {
			fixes[issue.Source] = append(fixes[issue.Source], issue.Fix)
		}
	}

	result := &FixReport{}
	for _, source := range sources {
		pending := fixes[source.Name]
		if source.External || len(pending) == 0 {
			continue
		}
		text, ok := report.Sources[source.Name]
		if !ok {
			continue
		}

		var combined reporting.Fix
		for _, fix := range pending {
			if fix.Safety > limit || overlaps(combined.Edits, fix.Edits) {
				result.Skipped++
				continue
			}
			combined.Edits = append(combined.Edits, fix.Edits...)
			result.Applied++
		}
		if len(combined.Edits) == 0 {
			continue
		}

		fixed := combined.Apply(text)
		if fixed == text {
			continue
		}
		result.Fixed = append(result.Fixed, source)
		if dryRun {
			continue
		}
		slog.DebugContext(ctx, "writing fixes", "source", source.Name, "edits", len(combined.Edits))
		if err := s.manager.Write(source, fixed); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func overlaps(accepted, edits []reporting.Edit) bool {
	return slices.ContainsFunc(edits, func(e reporting.Edit) bool {
		return slices.ContainsFunc(accepted, func(a reporting.Edit) bool {
			return e.Span.Start < a.Span.End && a.Span.Start < e.Span.End ||
				e.Span.Start == a.Span.Start
		})
	})
}
