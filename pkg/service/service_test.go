package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/dagger/testctx"
	"github.com/dagger/testctx/oteltest"
	"github.com/stretchr/testify/require"

	"github.com/carthage-software/fennec/pkg/formatter"
	"github.com/carthage-software/fennec/pkg/interner"
	"github.com/carthage-software/fennec/pkg/linter"
	"github.com/carthage-software/fennec/pkg/reporting"
)

func TestMain(m *testing.M) {
	os.Exit(oteltest.Main(m))
}

type ServiceSuite struct{}

func TestService(tT *testing.T) {
	testctx.New(tT,
		oteltest.WithTracing[*testing.T](),
		oteltest.WithLogging[*testing.T](),
	).RunTests(ServiceSuite{})
}

func project(t testing.TB, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return root
}

func names(sources []Source) []string {
	var out []string
	for _, s := range sources {
		out = append(out, s.Name)
	}
	return out
}

func (ServiceSuite) TestManager(ctx context.Context, t *testctx.T) {
	root := project(t, map[string]string{
		"src/a.php":          "<?php\n",
		"src/B.PHP":          "<?php\n",
		"src/notes.txt":      "hello",
		"src/cache/tmp.php":  "<?php\n",
		"vendor/lib/lib.php": "<?php\n",
		".git/hooks/x.php":   "<?php\n",
	})

	m := NewManager(root, []string{"php"}, []string{"src/cache", "vendor"})
	require.NoError(t, m.Add([]string{root}, false))
	require.NoError(t, m.Add([]string{filepath.Join(root, "vendor")}, true))

	require.Equal(t, []string{"src/B.PHP", "src/a.php", "vendor/lib/lib.php"}, names(m.Sources()))
	require.Equal(t, []string{"src/B.PHP", "src/a.php"}, names(m.UserDefined()))

	explicit := NewManager(root, []string{"php"}, nil)
	require.NoError(t, explicit.Add([]string{filepath.Join(root, "src", "notes.txt")}, false))
	require.Equal(t, []string{"src/notes.txt"}, names(explicit.Sources()))

	require.ErrorContains(t, m.Add([]string{filepath.Join(root, "missing")}, false), "accessing")
}

func (ServiceSuite) TestFormat(ctx context.Context, t *testctx.T) {
	root := project(t, map[string]string{
		"a.php":    "<?php\n\n$a=1+2*3;\n",
		"b.php":    "<?php\n\n$a = ;\n",
		"done.php": "<?php\n\necho 1;\n",
	})
	m := NewManager(root, []string{"php"}, nil)
	require.NoError(t, m.Add([]string{root}, false))

	cache, err := OpenCache(filepath.Join(t.TempDir(), "cache.cbor"), formatter.DefaultSettings())
	require.NoError(t, err)
	svc := NewFormatService(formatter.DefaultSettings(), interner.New(), m, cache)

	t.Run("dry run writes nothing", func(ctx context.Context, t *testctx.T) {
		report, err := svc.Run(ctx, m.UserDefined(), FormatOptions{Write: true, DryRun: true})
		require.NoError(t, err)
		require.Equal(t, []string{"b.php"}, names(report.Skipped))
		require.Len(t, report.Changed(), 1)
		require.Equal(t, "a.php", report.Changed()[0].Source.Name)
		require.Zero(t, report.Written)

		content, err := os.ReadFile(filepath.Join(root, "a.php"))
		require.NoError(t, err)
		require.Equal(t, "<?php\n\n$a=1+2*3;\n", string(content))
	})

	t.Run("write", func(ctx context.Context, t *testctx.T) {
		report, err := svc.Run(ctx, m.UserDefined(), FormatOptions{Write: true})
		require.NoError(t, err)
		require.Equal(t, 1, report.Written)

		content, err := os.ReadFile(filepath.Join(root, "a.php"))
		require.NoError(t, err)
		require.Equal(t, "<?php\n\n$a = 1 + 2 * 3;\n", string(content))
	})

	t.Run("cache skips formatted sources", func(ctx context.Context, t *testctx.T) {
		report, err := svc.Run(ctx, m.UserDefined(), FormatOptions{Write: true})
		require.NoError(t, err)
		require.Len(t, report.Results, 2)
		for _, result := range report.Results {
			require.True(t, result.Cached, result.Source.Name)
			require.False(t, result.Changed())
		}
		require.Equal(t, []string{"b.php"}, names(report.Skipped))
	})
}

func (ServiceSuite) TestCache(ctx context.Context, t *testctx.T) {
	path := filepath.Join(t.TempDir(), "cache.cbor")
	settings := formatter.DefaultSettings()

	cache, err := OpenCache(path, settings)
	require.NoError(t, err)
	cache.Record("/a.php", "<?php\n")
	require.NoError(t, cache.Save())

	reopened, err := OpenCache(path, settings)
	require.NoError(t, err)
	require.True(t, reopened.IsFormatted("/a.php", "<?php\n"))
	require.False(t, reopened.IsFormatted("/a.php", "<?php\n\n"))

	settings.PrintWidth = 80
	stale, err := OpenCache(path, settings)
	require.NoError(t, err)
	require.False(t, stale.IsFormatted("/a.php", "<?php\n"))

	require.NoError(t, os.WriteFile(path, []byte("not cbor"), 0644))
	corrupt, err := OpenCache(path, formatter.DefaultSettings())
	require.NoError(t, err)
	require.False(t, corrupt.IsFormatted("/a.php", "<?php\n"))
}

func (ServiceSuite) TestLint(ctx context.Context, t *testctx.T) {
	root := project(t, map[string]string{
		"a.php":          "<?php\n\n$a = @foo();\n",
		"b.php":          "<?php\n\n$a = ;\n",
		"vendor/lib.php": "<?php\n\nif ($a == 1) {\n}\n",
	})
	m := NewManager(root, []string{"php"}, []string{"vendor"})
	require.NoError(t, m.Add([]string{root}, false))
	require.NoError(t, m.Add([]string{filepath.Join(root, "vendor")}, true))

	in := interner.New()
	l, err := linter.NewDefault(linter.DefaultSettings(), in)
	require.NoError(t, err)

	report, err := NewLintService(l, in, m, false).Run(ctx, m.Sources())
	require.NoError(t, err)
	issues := report.Issues.Sorted()
	require.Len(t, issues, 2)
	require.Equal(t, "no-error-control-operator", issues[0].Code)
	require.Equal(t, "a.php", issues[0].Source)
	require.Equal(t, ParseErrorCode, issues[1].Code)
	require.Equal(t, reporting.Error, issues[1].Level)
	require.Equal(t, "b.php", issues[1].Source)
	require.NotContains(t, report.Sources, "vendor/lib.php")

	report, err = NewLintService(l, in, m, true).Run(ctx, m.Sources())
	require.NoError(t, err)
	require.Equal(t, 3, report.Issues.Len())
	require.Contains(t, report.Sources, "vendor/lib.php")
}

func (ServiceSuite) TestFix(ctx context.Context, t *testctx.T) {
	root := project(t, map[string]string{
		"a.php":          "<?php\n\n$a = @foo();\nif ($a == 1) {\n}\n",
		"vendor/lib.php": "<?php\n\n$b = @bar();\n",
	})
	m := NewManager(root, []string{"php"}, []string{"vendor"})
	require.NoError(t, m.Add([]string{root}, false))
	require.NoError(t, m.Add([]string{filepath.Join(root, "vendor")}, true))

	in := interner.New()
	l, err := linter.NewDefault(linter.DefaultSettings(), in)
	require.NoError(t, err)
	svc := NewLintService(l, in, m, true)

	read := func(name string) string {
		content, err := os.ReadFile(filepath.Join(root, name))
		require.NoError(t, err)
		return string(content)
	}

	report, err := svc.Run(ctx, m.Sources())
	require.NoError(t, err)

	fixed, err := svc.Fix(ctx, m.Sources(), report, reporting.Safe, true)
	require.NoError(t, err)
	require.Equal(t, 1, fixed.Applied)
	require.Equal(t, 1, fixed.Skipped)
	require.Equal(t, []string{"a.php"}, names(fixed.Fixed))
	require.Equal(t, "<?php\n\n$a = @foo();\nif ($a == 1) {\n}\n", read("a.php"))

	fixed, err = svc.Fix(ctx, m.Sources(), report, reporting.Unsafe, false)
	require.NoError(t, err)
	require.Equal(t, 2, fixed.Applied)
	require.Zero(t, fixed.Skipped)
	require.Equal(t, "<?php\n\n$a = foo();\nif ($a === 1) {\n}\n", read("a.php"))
	require.Equal(t, "<?php\n\n$b = @bar();\n", read("vendor/lib.php"))
}
