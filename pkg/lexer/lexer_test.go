package lexer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/carthage-software/fennec/pkg/token"
)

func kinds(t *testing.T, source string) []token.Kind {
	t.Helper()
	tokens, err := Tokenize(source)
	require.NoError(t, err)
	var out []token.Kind
	for _, tok := range tokens {
		if tok.Kind == token.Whitespace {
			continue
		}
		out = append(out, tok.Kind)
	}
	return out
}

func TestTokensCoverSource(t *testing.T) {
	source := "<html>\n<?php\n// hi\n$a = \"x $b->c {$d['e']}\" . <<<EOT\n  v $w\n  EOT;\n?>\ntail"
	tokens, err := Tokenize(source)
	require.NoError(t, err)

	var rebuilt string
	for i, tok := range tokens {
		if i > 0 {
			require.Equal(t, tokens[i-1].Span.End, tok.Span.Start, "gap before %s", tok)
		}
		rebuilt += tok.Value
	}
	require.Equal(t, source, rebuilt)
}

func TestInlineAndTags(t *testing.T) {
	require.Equal(t, []token.Kind{
		token.InlineText, token.OpenTag, token.Echo, token.Variable, token.Semicolon,
		token.CloseTag, token.InlineText,
	}, kinds(t, "<p><?php echo $a; ?>\n</p>"))

	require.Equal(t, []token.Kind{
		token.EchoTag, token.Variable, token.CloseTag,
	}, kinds(t, "<?= $a ?>"))

	require.Equal(t, []token.Kind{token.InlineText}, kinds(t, "<?xml version=\"1.0\"?>"))
}

func TestCloseTagOwnsNewline(t *testing.T) {
	tokens, err := Tokenize("<?php ?>\nx")
	require.NoError(t, err)
	require.Equal(t, "?>\n", tokens[2].Value)
	require.Equal(t, "x", tokens[3].Value)
}

func TestShebang(t *testing.T) {
	require.Equal(t, []token.Kind{
		token.InlineShebang, token.OpenTag, token.Exit, token.Semicolon,
	}, kinds(t, "#!/usr/bin/env php\n<?php exit;"))
}

func TestComments(t *testing.T) {
	require.Equal(t, []token.Kind{
		token.OpenTag,
		token.SingleLineComment,
		token.HashComment,
		token.MultiLineComment,
		token.DocBlockComment,
		token.HashLeftBracket, token.Identifier, token.RightBracket,
	}, kinds(t, "<?php\n// a\n# b\n/* c */\n/** d */\n#[Attr]"))

	require.Equal(t, []token.Kind{
		token.OpenTag, token.SingleLineComment, token.CloseTag, token.InlineText,
	}, kinds(t, "<?php // a ?> b"))
}

func TestNames(t *testing.T) {
	tokens, err := Tokenize(`<?php Foo\Bar \Baz namespace\Qux use A\{B};`)
	require.NoError(t, err)

	var got []token.Token
	for _, tok := range tokens {
		if tok.Kind != token.Whitespace {
			got = append(got, tok)
		}
	}
	require.Equal(t, token.QualifiedIdentifier, got[1].Kind)
	require.Equal(t, `Foo\Bar`, got[1].Value)
	require.Equal(t, token.FullyQualifiedIdentifier, got[2].Kind)
	require.Equal(t, token.QualifiedIdentifier, got[3].Kind)
	require.Equal(t, `namespace\Qux`, got[3].Value)
	require.Equal(t, token.Use, got[4].Kind)
	require.Equal(t, token.Identifier, got[5].Kind)
	require.Equal(t, token.NamespaceSeparator, got[6].Kind)
	require.Equal(t, token.LeftBrace, got[7].Kind)
}

func TestKeywordsAreCaseInsensitive(t *testing.T) {
	require.Equal(t, []token.Kind{
		token.OpenTag, token.Function, token.Identifier, token.Static, token.New,
	}, kinds(t, "<?php FUNCTION foo Static NeW"))
}

func TestSetVisibility(t *testing.T) {
	require.Equal(t, []token.Kind{
		token.OpenTag, token.Public, token.PrivateSet, token.Identifier, token.Variable,
	}, kinds(t, "<?php public private(set) string $x"))
}

func TestNumbers(t *testing.T) {
	for source, kind := range map[string]token.Kind{
		"1":         token.LiteralInteger,
		"1_000":     token.LiteralInteger,
		"0x1F":      token.LiteralInteger,
		"0b1010":    token.LiteralInteger,
		"0o17":      token.LiteralInteger,
		"1.5":       token.LiteralFloat,
		".5":        token.LiteralFloat,
		"1e10":      token.LiteralFloat,
		"1.5E-3":    token.LiteralFloat,
		"1_000.0_1": token.LiteralFloat,
	} {
		tokens, err := Tokenize("<?php " + source)
		require.NoError(t, err)
		require.Len(t, tokens, 3, source)
		require.Equal(t, kind, tokens[2].Kind, source)
		require.Equal(t, source, tokens[2].Value)
	}
}

func TestCasts(t *testing.T) {
	require.Equal(t, []token.Kind{
		token.OpenTag, token.IntCast, token.Variable, token.StringCast, token.Variable,
		token.LeftParenthesis, token.Identifier, token.RightParenthesis,
	}, kinds(t, "<?php (int)$a ( string )$b (foo)"))
}

func TestOperatorsLongestMatch(t *testing.T) {
	require.Equal(t, []token.Kind{
		token.OpenTag,
		token.Variable, token.QuestionQuestionEqual, token.Variable,
		token.BangEqualEqual, token.LessThanEqualGreaterThan,
		token.AsteriskAsteriskEqual, token.QuestionMinusGreaterThan, token.DotDotDot,
	}, kinds(t, "<?php $a ??= $b !== <=> **= ?-> ..."))
}

func TestPlainDoubleQuotedString(t *testing.T) {
	require.Equal(t, []token.Kind{
		token.OpenTag, token.LiteralString, token.LiteralString,
	}, kinds(t, `<?php "a \" $ b" 'c \' d'`))
}

func TestInterpolatedString(t *testing.T) {
	require.Equal(t, []token.Kind{
		token.OpenTag,
		token.DoubleQuote,
		token.StringPart,
		token.Variable, token.MinusGreaterThan, token.Identifier,
		token.StringPart,
		token.Variable, token.LeftBracket, token.LiteralInteger, token.RightBracket,
		token.StringPart,
		token.LeftBrace, token.Variable, token.LeftBracket, token.LiteralString, token.RightBracket, token.RightBrace,
		token.DollarLeftBrace, token.Identifier, token.RightBrace,
		token.DoubleQuote,
	}, kinds(t, `<?php "a $b->c d $e[0] f {$g['h']}${i}"`))
}

func TestNestedBracesInInterpolation(t *testing.T) {
	require.Equal(t, []token.Kind{
		token.OpenTag,
		token.DoubleQuote,
		token.LeftBrace, token.Variable, token.LeftBracket,
		token.Function, token.LeftParenthesis, token.RightParenthesis,
		token.LeftBrace, token.RightBrace,
		token.RightBracket, token.RightBrace,
		token.StringPart,
		token.DoubleQuote,
	}, kinds(t, `<?php "{$a[function() {}]} x"`))
}

func TestHeredoc(t *testing.T) {
	tokens, err := Tokenize("<?php <<<EOT\n  a $b\n  c\n  EOT;")
	require.NoError(t, err)

	var got []string
	for _, tok := range tokens[1:] {
		got = append(got, tok.Kind.String()+":"+tok.Value)
	}
	require.Equal(t, []string{
		token.Whitespace.String() + ": ",
		token.DocumentStart.String() + ":<<<EOT\n",
		token.StringPart.String() + ":  a ",
		token.Variable.String() + ":$b",
		token.StringPart.String() + ":\n  c\n",
		token.DocumentEnd.String() + ":  EOT",
		token.Semicolon.String() + ":;",
	}, got)
}

func TestNowdoc(t *testing.T) {
	require.Equal(t, []token.Kind{
		token.OpenTag, token.DocumentStart, token.StringPart, token.DocumentEnd, token.Semicolon,
	}, kinds(t, "<?php <<<'EOT'\n$not {$vars}\nEOT;"))
}

func TestEmptyHeredoc(t *testing.T) {
	require.Equal(t, []token.Kind{
		token.OpenTag, token.DocumentStart, token.DocumentEnd, token.Semicolon,
	}, kinds(t, "<?php <<<EOT\nEOT;"))
}

func TestHaltCompiler(t *testing.T) {
	tokens, err := Tokenize("<?php __halt_compiler(); <?php raw data")
	require.NoError(t, err)
	last := tokens[len(tokens)-1]
	require.Equal(t, token.InlineText, last.Kind)
	require.Equal(t, " <?php raw data", last.Value)
}

func TestErrors(t *testing.T) {
	for _, source := range []string{
		"<?php 'abc",
		"<?php \"abc",
		"<?php \"a $b",
		"<?php /* abc",
		"<?php <<<EOT\nabc",
		"<?php \x01",
	} {
		_, err := Tokenize(source)
		require.Error(t, err, source)
		var lexErr *Error
		require.ErrorAs(t, err, &lexErr)
	}
}
