package service

import (
	"context"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/carthage-software/fennec/pkg/formatter"
	"github.com/carthage-software/fennec/pkg/interner"
	"github.com/carthage-software/fennec/pkg/parser"
)

// FormatService formats sources in parallel.
type FormatService struct {
	settings formatter.Settings
	interner *interner.Interner
	manager  *Manager
	cache    *Cache
}

// NewFormatService creates a format service. cache may be nil.
func NewFormatService(settings formatter.Settings, in *interner.Interner, manager *Manager, cache *Cache) *FormatService {
	return &FormatService{settings: settings, interner: in, manager: manager, cache: cache}
}

// FormatOptions controls what happens to formatted sources.
type FormatOptions struct {
	// Write replaces changed sources with their formatted content.
	Write bool
	// DryRun formats without ever writing, even with Write set.
	DryRun bool
}

// FormatResult is the outcome for one source.
type FormatResult struct {
	Source    Source
	Original  string
	Formatted string
	// Cached is set when the cache showed the source was already
	// formatted.
	Cached bool
}

// Changed reports whether formatting changed the source.
func (r FormatResult) Changed() bool {
	return r.Original != r.Formatted
}

// FormatReport gathers the results of a run in source order.
type FormatReport struct {
	Results []FormatResult
	// Skipped holds the sources that failed to parse.
	Skipped []Source
	Written int
}

// Changed returns the results whose source changed.
func (r *FormatReport) Changed() []FormatResult {
	var changed []FormatResult
	for _, result := range r.Results {
		if result.Changed() {
			changed = append(changed, result)
		}
	}
	return changed
}

// Run formats every non-external source of sources. A source that fails
// to parse is logged and skipped; only I/O errors stop the run.
func (s *FormatService) Run(ctx context.Context, sources []Source, opts FormatOptions) (*FormatReport, error) {
	results := make([]*FormatResult, len(sources))
	skipped := make([]bool, len(sources))
	written := make([]bool, len(sources))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for i, source := range sources {
		if source.External {
			continue
		}
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			original, err := s.manager.Load(source)
			if err != nil {
				return err
			}

			if s.cache != nil && s.cache.IsFormatted(source.Path, original) {
				slog.DebugContext(ctx, "cached", "source", source.Name)
				results[i] = &FormatResult{Source: source, Original: original, Formatted: original, Cached: true}
				return nil
			}

			slog.DebugContext(ctx, "formatting", "source", source.Name)
			formatted, err := s.FormatSource(source.Name, original)
			if err != nil {
				slog.ErrorContext(ctx, "skipping formatting", "source", source.Name, "error", err)
				skipped[i] = true
				return nil
			}
			results[i] = &FormatResult{Source: source, Original: original, Formatted: formatted}

			if opts.Write && !opts.DryRun && formatted != original {
				slog.DebugContext(ctx, "writing", "source", source.Name)
				if err := s.manager.Write(source, formatted); err != nil {
					return err
				}
				written[i] = true
			}
			if s.cache != nil {
				s.cache.Record(source.Path, formatted)
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	report := &FormatReport{}
	for i, result := range results {
		switch {
		case skipped[i]:
			report.Skipped = append(report.Skipped, sources[i])
		case result != nil:
			report.Results = append(report.Results, *result)
		}
		if written[i] {
			report.Written++
		}
	}

	if s.cache != nil {
		if err := s.cache.Save(); err != nil {
			slog.WarnContext(ctx, "failed to save cache", "error", err)
		}
	}
	return report, nil
}

// FormatSource parses and formats a single source text. The error is a
// *parser.SourceError when the text does not parse.
func (s *FormatService) FormatSource(name, source string) (string, error) {
	program, err := parser.Parse(s.interner, name, source)
	if err != nil {
		return "", parser.NewSourceError(err, name, source)
	}
	return formatter.Format(s.settings, s.interner, source, program), nil
}
