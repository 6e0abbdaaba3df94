package linter

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/dagger/testctx"
	"github.com/dagger/testctx/oteltest"
	"github.com/stretchr/testify/require"

	"github.com/carthage-software/fennec/pkg/interner"
	"github.com/carthage-software/fennec/pkg/parser"
	"github.com/carthage-software/fennec/pkg/reporting"
)

func TestMain(m *testing.M) {
	os.Exit(oteltest.Main(m))
}

type LinterSuite struct{}

func TestLinter(tT *testing.T) {
	testctx.New(tT,
		oteltest.WithTracing[*testing.T](),
		oteltest.WithLogging[*testing.T](),
	).RunTests(LinterSuite{})
}

const sample = `<?php

$a = @foo();
if ($a == 1 || $b != 2) {
}

class A
{
    public public(set) int $x;
    private private(set) int $y;
    public protected(set) int $z;
}
`

func lint(t testing.TB, settings Settings, source string) []reporting.Issue {
	t.Helper()
	in := interner.New()
	program, err := parser.Parse(in, "sample.php", source)
	require.NoError(t, err)
	l, err := NewDefault(settings, in)
	require.NoError(t, err)
	return l.Lint(program, source).Sorted()
}

func codes(issues []reporting.Issue) []string {
	var out []string
	for _, issue := range issues {
		out = append(out, issue.Code)
	}
	return out
}

func (LinterSuite) TestDefaultRules(ctx context.Context, t *testctx.T) {
	issues := lint(t, DefaultSettings(), sample)
	require.Equal(t, []string{
		"no-error-control-operator",
		"require-identity-comparison",
		"require-identity-comparison",
		"redundant-write-visibility",
		"redundant-write-visibility",
	}, codes(issues))

	require.Equal(t, reporting.Error, issues[0].Level)
	require.Equal(t, reporting.Warning, issues[1].Level)
	require.Equal(t, reporting.Help, issues[3].Level)
	for _, issue := range issues {
		require.Equal(t, "sample.php", issue.Source)
		require.NotNil(t, issue.Fix)
	}
}

func (LinterSuite) TestFixes(ctx context.Context, t *testctx.T) {
	issues := lint(t, DefaultSettings(), sample)

	fixed := issues[0].Fix.Apply(sample)
	require.Contains(t, fixed, "$a = foo();")

	fixed = issues[1].Fix.Apply(sample)
	require.Contains(t, fixed, "$a === 1")

	fixed = issues[2].Fix.Apply(sample)
	require.Contains(t, fixed, "$b !== 2")

	fixed = issues[3].Fix.Apply(sample)
	require.Contains(t, fixed, "    public int $x;")
	require.Equal(t, reporting.PotentiallyUnsafe, issues[3].Fix.Safety)
}

func (LinterSuite) TestMessages(ctx context.Context, t *testctx.T) {
	issues := lint(t, DefaultSettings(), sample)
	require.Equal(t, "unsafe use of error control operator", issues[0].Message)
	require.Equal(t, "use identity comparison `===` instead of equality comparison `==`", issues[1].Message)
	require.Equal(t, "use identity inequality `!==` instead of inequality comparison `!=`", issues[2].Message)
	require.Equal(t, "identical write visibility has no effect", issues[3].Message)

	primary, ok := issues[0].PrimarySpan()
	require.True(t, ok)
	require.Equal(t, "@", primary.Slice(sample))
}

func (LinterSuite) TestSettings(ctx context.Context, t *testctx.T) {
	t.Run("minimum level", func(ctx context.Context, t *testctx.T) {
		settings := DefaultSettings()
		settings.Level = reporting.Warning
		require.Equal(t, []string{
			"no-error-control-operator",
			"require-identity-comparison",
			"require-identity-comparison",
		}, codes(lint(t, settings, sample)))
	})

	t.Run("disabled rule", func(ctx context.Context, t *testctx.T) {
		settings := DefaultSettings()
		settings.Rules = map[string]RuleSettings{
			"require-identity-comparison": {Enabled: false},
		}
		issues := lint(t, settings, sample)
		require.NotContains(t, codes(issues), "require-identity-comparison")
		require.Len(t, issues, 3)
	})

	t.Run("level override", func(ctx context.Context, t *testctx.T) {
		level := reporting.Error
		settings := DefaultSettings()
		settings.Rules = map[string]RuleSettings{
			"redundant-write-visibility": {Enabled: true, Level: &level},
		}
		issues := lint(t, settings, sample)
		require.Equal(t, reporting.Error, issues[len(issues)-1].Level)
	})

	t.Run("only configured rules", func(ctx context.Context, t *testctx.T) {
		settings := DefaultSettings()
		settings.DefaultRules = false
		settings.Rules = map[string]RuleSettings{
			"no-error-control-operator": {Enabled: true},
		}
		require.Equal(t, []string{"no-error-control-operator"}, codes(lint(t, settings, sample)))
	})

	t.Run("off", func(ctx context.Context, t *testctx.T) {
		settings := DefaultSettings()
		settings.Off = true
		require.Empty(t, lint(t, settings, sample))
	})
}

func (LinterSuite) TestRegistry(ctx context.Context, t *testctx.T) {
	l := New(DefaultSettings(), interner.New())
	require.NoError(t, l.AddRule(NoErrorControlOperator{}))
	require.ErrorContains(t, l.AddRule(NoErrorControlOperator{}), "already registered")
	require.Len(t, l.Rules(), 1)

	settings := DefaultSettings()
	settings.Rules = map[string]RuleSettings{"no-such-rule": {Enabled: true}}
	_, err := NewDefault(settings, interner.New())
	require.ErrorContains(t, err, `unknown rule "no-such-rule"`)
}

func (LinterSuite) TestIdentityComparisonsAreClean(ctx context.Context, t *testctx.T) {
	source := strings.Join([]string{
		"<?php",
		"",
		"if ($a === 1 && $b !== 2 && $c < 3) {",
		"}",
		"",
	}, "\n")
	require.Empty(t, lint(t, DefaultSettings(), source))
}
