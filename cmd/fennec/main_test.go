package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

func project(t *testing.T, files map[string]string) *Config {
	t.Helper()
	root := t.TempDir()
	files["fennec.toml"] = ""
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(root, name), []byte(content), 0644))
	}
	return &Config{ConfigFile: filepath.Join(root, "fennec.toml")}
}

func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	err := cmd.ExecuteContext(t.Context())
	return out.String(), err
}

func TestFmtCommand(t *testing.T) {
	cfg := project(t, map[string]string{"a.php": "<?php\n\n$a=1;\n"})
	path := filepath.Join(filepath.Dir(cfg.ConfigFile), "a.php")

	out, err := execute(t, fmtCmd(cfg), "--no-cache")
	require.NoError(t, err)
	require.Equal(t, "<?php\n\n$a = 1;\n", out)

	out, err = execute(t, fmtCmd(cfg), "--no-cache", "--dry-run")
	require.ErrorIs(t, err, errFailed)
	require.Equal(t, "would format a.php\n", out)

	out, err = execute(t, fmtCmd(cfg), "--no-cache", "-w", "-l")
	require.NoError(t, err)
	require.Equal(t, "a.php\n", out)
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "<?php\n\n$a = 1;\n", string(content))
}

func TestLintCommand(t *testing.T) {
	cfg := project(t, map[string]string{"a.php": "<?php\n\n$a = @foo();\n"})

	out, err := execute(t, lintCmd(cfg), "--no-color")
	require.ErrorIs(t, err, errFailed)
	require.Contains(t, out, "error[no-error-control-operator]: unsafe use of error control operator\n")
	require.Contains(t, out, " --> a.php:3:6\n")
	require.Contains(t, out, "found 1 error\n")

	out, err = execute(t, lintCmd(cfg), "--fix")
	require.NoError(t, err)
	require.Contains(t, out, "fixed a.php\n")

	out, err = execute(t, lintCmd(cfg), "--no-color")
	require.NoError(t, err)
	require.Contains(t, out, "no issues found")
}

func TestAstCommand(t *testing.T) {
	cfg := project(t, map[string]string{"a.php": "<?php\n\necho 1;\n", "bad.php": "<?php\n\n$a = ;\n"})
	dir := filepath.Dir(cfg.ConfigFile)

	out, err := execute(t, astCmd(), "--json", filepath.Join(dir, "a.php"))
	require.NoError(t, err)
	require.Contains(t, out, "\"Statements\"")

	_, err = execute(t, astCmd(), filepath.Join(dir, "bad.php"))
	require.Error(t, err)
}
