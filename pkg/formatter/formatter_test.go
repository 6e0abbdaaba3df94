package formatter

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dagger/testctx"
	"github.com/dagger/testctx/oteltest"
	"github.com/stretchr/testify/require"
	"gotest.tools/v3/golden"
)

func TestMain(m *testing.M) {
	os.Exit(oteltest.Main(m))
}

type FormatSuite struct{}

func TestFormat(tT *testing.T) {
	testctx.New(tT,
		oteltest.WithTracing[*testing.T](),
		oteltest.WithLogging[*testing.T](),
	).RunTests(FormatSuite{})
}

func format(t testing.TB, settings Settings, source string) string {
	t.Helper()
	out, err := FormatSource(settings, "test.php", source)
	require.NoError(t, err)
	return out
}

func (FormatSuite) TestStatements(ctx context.Context, t *testctx.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty file",
			input:    "",
			expected: "",
		},
		{
			name:     "binary operators get spaces",
			input:    "<?php\n\n$a=1+2*3;\n",
			expected: "<?php\n\n$a = 1 + 2 * 3;\n",
		},
		{
			name:     "closing tag at end of file is dropped",
			input:    "<?php echo 1 ?>",
			expected: "<?php\necho 1;\n",
		},
		{
			name:     "tag pair becomes a semicolon",
			input:    "<?php echo 1 ?><?php echo 2;",
			expected: "<?php\necho 1;\necho 2;\n",
		},
		{
			name:     "double quotes without escapes become single quotes",
			input:    "<?php\n\n$a = \"hello\";\n$b = \"it's\";\n",
			expected: "<?php\n\n$a = 'hello';\n$b = \"it's\";\n",
		},
		{
			name:     "keywords are lowercased",
			input:    "<?php\n\nIF ($a) { ECHO TRUE; }\n",
			expected: "<?php\n\nif ($a) {\n    echo true;\n}\n",
		},
		{
			name:     "blank lines collapse to one",
			input:    "<?php\n\n$a = 1;\n\n\n\n$b = 2;\n",
			expected: "<?php\n\n$a = 1;\n\n$b = 2;\n",
		},
		{
			name:     "comments stay attached",
			input:    "<?php\n\n// leading\n$a = 1; // trailing\n",
			expected: "<?php\n\n// leading\n$a = 1; // trailing\n",
		},
		{
			name:     "inline html around tags is kept",
			input:    "<p><?php echo $a ?></p>\n",
			expected: "<p><?php echo $a ?></p>\n",
		},
		{
			name:     "heredoc body is kept",
			input:    "<?php\n\n$a = <<<EOT\n    hello\n    EOT;\n",
			expected: "<?php\n\n$a = <<<EOT\n    hello\n    EOT;\n",
		},
		{
			name:     "match arms break with a trailing comma",
			input:    "<?php\n\n$x = match ($a) { 1 => 'one', default => 'other' };\n",
			expected: "<?php\n\n$x = match ($a) {\n    1 => 'one',\n    default => 'other',\n};\n",
		},
		{
			name:     "broken arrays stay broken",
			input:    "<?php\n\n$a = [\n  'x' => 1,\n  'y' => 2\n];\n",
			expected: "<?php\n\n$a = [\n    'x' => 1,\n    'y' => 2,\n];\n",
		},
		{
			name:     "flat arrays stay flat",
			input:    "<?php\n\n$a = [1,2,3];\n",
			expected: "<?php\n\n$a = [1, 2, 3];\n",
		},
		{
			name:     "global list stays on one line",
			input:    "<?php\n\nglobal $a,$b;\n",
			expected: "<?php\n\nglobal $a, $b;\n",
		},
		{
			name:     "echo tag list stays on one line",
			input:    "<p><?= $a,$b ?></p>\n",
			expected: "<p><?= $a, $b ?></p>\n",
		},
		{
			name:     "comment before else keeps its own line",
			input:    "<?php\n\nif ($a) {\n    foo();\n}\n// before else\nelse {\n    bar();\n}\n",
			expected: "<?php\n\nif ($a) {\n    foo();\n}\n// before else\nelse {\n    bar();\n}\n",
		},
		{
			name:     "comment before elseif keeps its own line",
			input:    "<?php\n\nif ($a) {\n    foo();\n}\n// before elseif\nelseif ($b) {\n    bar();\n}\n",
			expected: "<?php\n\nif ($a) {\n    foo();\n}\n// before elseif\nelseif ($b) {\n    bar();\n}\n",
		},
		{
			name:     "comment before catch keeps its own line",
			input:    "<?php\n\ntry {\n    foo();\n}\n// recover\ncatch (Exception $e) {\n    bar();\n}\n",
			expected: "<?php\n\ntry {\n    foo();\n}\n// recover\ncatch (Exception $e) {\n    bar();\n}\n",
		},
		{
			name:     "else stays on the brace line",
			input:    "<?php\n\nif ($a) {\n    foo();\n}\nelse {\n    bar();\n}\n",
			expected: "<?php\n\nif ($a) {\n    foo();\n} else {\n    bar();\n}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(ctx context.Context, t *testctx.T) {
			out := format(t, DefaultSettings(), tt.input)
			require.Equal(t, tt.expected, out)
			require.Equal(t, out, format(t, DefaultSettings(), out), "formatting the output again changed it")
		})
	}
}

func (FormatSuite) TestAlternativeSyntax(ctx context.Context, t *testctx.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "if with elseif and else",
			input:    "<?php\n\nif ($a):\n  echo 1;\nelseif ($b):\n  echo 2;\nelse:\n  echo 3;\nendif;\n",
			expected: "<?php\n\nif ($a):\n    echo 1;\nelseif ($b):\n    echo 2;\nelse:\n    echo 3;\nendif;\n",
		},
		{
			name:     "foreach",
			input:    "<?php\n\nforeach ($items as $item):\necho $item;\nendforeach;\n",
			expected: "<?php\n\nforeach ($items as $item):\n    echo $item;\nendforeach;\n",
		},
		{
			name:     "while",
			input:    "<?php\n\nwhile ($a):\nnext();\nendwhile;\n",
			expected: "<?php\n\nwhile ($a):\n    next();\nendwhile;\n",
		},
		{
			name:     "for",
			input:    "<?php\n\nfor ($i = 0; $i < 3; $i++):\necho $i;\nendfor;\n",
			expected: "<?php\n\nfor ($i = 0; $i < 3; $i++):\n    echo $i;\nendfor;\n",
		},
		{
			name:     "switch",
			input:    "<?php\n\nswitch ($a):\ncase 1:\necho 1;\nbreak;\ndefault:\necho 2;\nendswitch;\n",
			expected: "<?php\n\nswitch ($a):\n    case 1:\n        echo 1;\n        break;\n    default:\n        echo 2;\nendswitch;\n",
		},
		{
			name:     "empty body",
			input:    "<?php\n\nif ($a): endif;\n",
			expected: "<?php\n\nif ($a):\nendif;\n",
		},
		{
			name:     "keywords are lowercased",
			input:    "<?php\n\nWHILE ($a):\nnext();\nENDWHILE;\n",
			expected: "<?php\n\nwhile ($a):\n    next();\nendwhile;\n",
		},
		{
			name:     "comment before the closing keyword",
			input:    "<?php\n\nif ($a):\n    echo 1;\n    // done\nendif;\n",
			expected: "<?php\n\nif ($a):\n    echo 1;\n    // done\nendif;\n",
		},
		{
			name:     "template tags stay inline",
			input:    "<?php if ($a): ?>\n<p>yes</p>\n<?php else: ?>\n<p>no</p>\n<?php endif; ?>\n<footer></footer>\n",
			expected: "<?php if ($a): ?>\n<p>yes</p>\n<?php else: ?>\n<p>no</p>\n<?php endif; ?>\n<footer></footer>\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(ctx context.Context, t *testctx.T) {
			out := format(t, DefaultSettings(), tt.input)
			require.Equal(t, tt.expected, out)
			require.Equal(t, out, format(t, DefaultSettings(), out))
		})
	}
}

// TestLayouts formats at a narrow width so that each way an assignment
// or an operator chain can break is forced.
func (FormatSuite) TestLayouts(ctx context.Context, t *testctx.T) {
	settings := DefaultSettings()
	settings.PrintWidth = 40

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "assignment chain",
			input:    "<?php\n\n$first = $second = $third = someFunctionCall($argument);\n",
			expected: "<?php\n\n$first =\n    $second =\n    $third =\n        someFunctionCall($argument);\n",
		},
		{
			name:     "string breaks after the operator",
			input:    "<?php\n\n$variable = 'a fairly long string literal';\n",
			expected: "<?php\n\n$variable =\n    'a fairly long string literal';\n",
		},
		{
			name:     "short member chain breaks after the operator",
			input:    "<?php\n\n$services = $this->locator->getServices();\n",
			expected: "<?php\n\n$services =\n    $this->locator->getServices();\n",
		},
		{
			name:     "require never breaks after the operator",
			input:    "<?php\n\n$configuration = require 'config/application-settings.php';\n",
			expected: "<?php\n\n$configuration = require 'config/application-settings.php';\n",
		},
		{
			name:     "short constant name never breaks after the operator",
			input:    "<?php\n\nconst ID = 'a string that is too long to fit here';\n",
			expected: "<?php\n\nconst ID = 'a string that is too long to fit here';\n",
		},
		{
			name:     "destructuring pattern breaks first",
			input:    "<?php\n\n['a' => $a, 'b' => $b, 'c' => $c] = $someArrayValue;\n",
			expected: "<?php\n\n[\n    'a' => $a,\n    'b' => $b,\n    'c' => $c,\n] = $someArrayValue;\n",
		},
		{
			name:     "returned chain is wrapped in parentheses",
			input:    "<?php\n\nreturn $alpha && $bravo && $charlie && $delta;\n",
			expected: "<?php\n\nreturn (\n    $alpha &&\n    $bravo &&\n    $charlie &&\n    $delta\n);\n",
		},
		{
			name:     "condition chain breaks inside the parentheses",
			input:    "<?php\n\nif ($alpha && $bravo && $charlie && $delta) {\n    foo();\n}\n",
			expected: "<?php\n\nif (\n    $alpha &&\n    $bravo &&\n    $charlie &&\n    $delta\n) {\n    foo();\n}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(ctx context.Context, t *testctx.T) {
			out := format(t, settings, tt.input)
			require.Equal(t, tt.expected, out)
			require.Equal(t, out, format(t, settings, out))
		})
	}
}

func (FormatSuite) TestMethodChainThreshold(ctx context.Context, t *testctx.T) {
	input := "<?php\n\n$obj->a()->b()->c()->d()->e();\n"

	settings := DefaultSettings()
	settings.MethodChainBreakThreshold = 3
	require.Equal(t,
		"<?php\n\n$obj\n    ->a()\n    ->b()\n    ->c()\n    ->d()\n    ->e();\n",
		format(t, settings, input))

	settings.MethodChainBreakThreshold = 10
	require.Equal(t, input, format(t, settings, input))
}

func (FormatSuite) TestSettings(ctx context.Context, t *testctx.T) {
	t.Run("uppercase keywords", func(ctx context.Context, t *testctx.T) {
		settings := DefaultSettings()
		settings.KeywordCase = Uppercase
		require.Equal(t,
			"<?PHP\n\nIF ($a) {\n    ECHO TRUE;\n}\n",
			format(t, settings, "<?php\n\nif ($a) {\n    echo true;\n}\n"))
	})

	t.Run("closing tag is added", func(ctx context.Context, t *testctx.T) {
		settings := DefaultSettings()
		settings.IncludeClosingTag = true
		require.Equal(t, "<?php\n\necho 1;\n\n?>\n", format(t, settings, "<?php\n\necho 1;\n"))
	})

	t.Run("crlf newlines", func(ctx context.Context, t *testctx.T) {
		settings := DefaultSettings()
		settings.EndOfLine = CRLF
		require.Equal(t, "<?php\r\n\r\n$a = 1;\r\n", format(t, settings, "<?php\n\n$a = 1;\n"))
	})

	t.Run("auto newlines follow the input", func(ctx context.Context, t *testctx.T) {
		settings := DefaultSettings()
		settings.EndOfLine = Auto
		require.Equal(t, "<?php\r\n\r\n$a = 1;\r\n", format(t, settings, "<?php\r\n\r\n$a=1;\r\n"))
	})

	t.Run("tabs", func(ctx context.Context, t *testctx.T) {
		settings := DefaultSettings()
		settings.UseTabs = true
		require.Equal(t,
			"<?php\n\nif ($a) {\n\techo 1;\n}\n",
			format(t, settings, "<?php\n\nif ($a) { echo 1; }\n"))
	})

	t.Run("long casts", func(ctx context.Context, t *testctx.T) {
		settings := DefaultSettings()
		settings.IntCast = "integer"
		require.Equal(t, "<?php\n\n$a = (integer) $b;\n", format(t, settings, "<?php\n\n$a = (int)$b;\n"))
	})

	t.Run("long arrays", func(ctx context.Context, t *testctx.T) {
		settings := DefaultSettings()
		settings.ArrayStyle = LongArray
		require.Equal(t, "<?php\n\n$a = array(1, 2);\n", format(t, settings, "<?php\n\n$a = [1, 2];\n"))
	})
}

func (FormatSuite) TestValidate(ctx context.Context, t *testctx.T) {
	require.NoError(t, DefaultSettings().Validate())

	settings := DefaultSettings()
	settings.PrintWidth = 0
	require.ErrorContains(t, settings.Validate(), "print_width")

	settings = DefaultSettings()
	settings.BoolCast = "truthy"
	require.ErrorContains(t, settings.Validate(), "bool_cast")

	settings = DefaultSettings()
	settings.ClosureBraceStyle = "sideways"
	require.ErrorContains(t, settings.Validate(), "closure_brace_style")
}

// TestGolden formats every testdata/*.php file and compares the result
// with the matching .golden file. Formatting the output again must not
// change it.
func TestGolden(t *testing.T) {
	inputs, err := filepath.Glob(filepath.Join("testdata", "*.php"))
	require.NoError(t, err)
	require.NotEmpty(t, inputs)

	for _, input := range inputs {
		name := strings.TrimSuffix(filepath.Base(input), ".php")
		t.Run(name, func(t *testing.T) {
			source, err := os.ReadFile(input)
			require.NoError(t, err)

			out := format(t, DefaultSettings(), string(source))
			golden.Assert(t, out, name+".golden")
			require.Equal(t, out, format(t, DefaultSettings(), out))
		})
	}
}
