package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/dagger/testctx"
	"github.com/dagger/testctx/oteltest"
	"github.com/stretchr/testify/require"

	"github.com/carthage-software/fennec/pkg/formatter"
	"github.com/carthage-software/fennec/pkg/reporting"
)

func TestMain(m *testing.M) {
	os.Exit(oteltest.Main(m))
}

type ConfigSuite struct{}

func TestConfig(tT *testing.T) {
	testctx.New(tT,
		oteltest.WithTracing[*testing.T](),
		oteltest.WithLogging[*testing.T](),
	).RunTests(ConfigSuite{})
}

func writeFile(t testing.TB, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func (ConfigSuite) TestLoad(ctx context.Context, t *testctx.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	writeFile(t, path, `
[source]
paths = ["src"]
excludes = ["vendor/*"]
extensions = [".php", "phtml"]

[format]
print_width = 80
closure_brace_style = "next-line"
keyword_case = "Uppercase"

[linter]
level = "warning"

[[linter.rules]]
name = "NoErrorControlOperator"
level = "off"

[[linter.rules]]
name = "require_identity_comparison"
level = "error"
`)

	config, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, dir, config.Root)
	require.Equal(t, []string{filepath.Join(dir, "src")}, config.SourcePaths())
	require.Equal(t, []string{"php", "phtml"}, config.Source.Extensions)

	require.Equal(t, 80, config.Format.PrintWidth)
	require.Equal(t, 4, config.Format.TabWidth)
	require.Equal(t, formatter.NextLine, config.Format.ClosureBraceStyle)
	require.Equal(t, formatter.Uppercase, config.Format.KeywordCase)

	settings, err := config.LinterSettings()
	require.NoError(t, err)
	require.Equal(t, reporting.Warning, settings.Level)
	require.True(t, settings.DefaultRules)
	require.False(t, settings.Rules["no-error-control-operator"].Enabled)
	identity := settings.Rules["require-identity-comparison"]
	require.True(t, identity.Enabled)
	require.Equal(t, reporting.Error, *identity.Level)
}

func (ConfigSuite) TestLoadErrors(ctx context.Context, t *testctx.T) {
	tests := []struct {
		name    string
		content string
		err     string
	}{
		{"unknown key", "[format]\nprint_widht = 80\n", "unknown key format.print_widht"},
		{"bad format value", "[format]\nbool_cast = \"truthy\"\n", "bool_cast"},
		{"bad linter level", "[linter]\nlevel = \"loud\"\n", "loud"},
		{"rule without name", "[[linter.rules]]\nlevel = \"error\"\n", "missing name"},
		{"invalid toml", "[format\n", "parsing"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(ctx context.Context, t *testctx.T) {
			path := filepath.Join(t.TempDir(), FileName)
			writeFile(t, path, tt.content)
			_, err := Load(path)
			require.ErrorContains(t, err, tt.err)
		})
	}
}

func (ConfigSuite) TestFind(ctx context.Context, t *testctx.T) {
	t.Run("walks up to the project file", func(ctx context.Context, t *testctx.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, FileName), "[format]\ntab_width = 2\n")
		nested := filepath.Join(root, "src", "app")
		require.NoError(t, os.MkdirAll(nested, 0755))

		path, config, err := Find(nested)
		require.NoError(t, err)
		require.Equal(t, filepath.Join(root, FileName), path)
		require.Equal(t, 2, config.Format.TabWidth)
		require.Equal(t, root, config.Root)
	})

	t.Run("stops at git boundary", func(ctx context.Context, t *testctx.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, FileName), "[format]\ntab_width = 2\n")
		repo := filepath.Join(root, "repo")
		require.NoError(t, os.MkdirAll(filepath.Join(repo, ".git"), 0755))
		nested := filepath.Join(repo, "src")
		require.NoError(t, os.MkdirAll(nested, 0755))

		path, config, err := Find(nested)
		require.NoError(t, err)
		require.Empty(t, path)
		require.Equal(t, nested, config.Root)
		require.Equal(t, formatter.DefaultSettings(), config.Format)
	})
}

func (ConfigSuite) TestLinterOff(ctx context.Context, t *testctx.T) {
	config := Default(t.TempDir())
	config.Linter.Level = "off"
	settings, err := config.LinterSettings()
	require.NoError(t, err)
	require.True(t, settings.Off)
}
