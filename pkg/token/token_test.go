package token

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKeywordLookup(t *testing.T) {
	k, ok := Keyword("FUNCTION")
	require.True(t, ok)
	require.Equal(t, Function, k)

	_, ok = Keyword("foo")
	require.False(t, ok)

	k, ok = SetVisibility("Private(Set)")
	require.True(t, ok)
	require.Equal(t, PrivateSet, k)

	k, ok = Cast("Integer")
	require.True(t, ok)
	require.Equal(t, IntegerCast, k)
}

func TestKindNames(t *testing.T) {
	require.Equal(t, "`;`", Semicolon.String())
	require.Equal(t, "`function`", Function.String())
	require.Equal(t, "`??=`", QuestionQuestionEqual.String())
	require.Equal(t, "variable", Variable.String())
}

func TestEveryOperatorHasOnePrecedence(t *testing.T) {
	for text, kind := range operators {
		_, isInfix := InfixPrecedence(kind)
		_, isPostfix := PostfixPrecedence(kind)
		require.False(t, isInfix && isPostfix, "%s is both infix and postfix", text)
	}
}

func TestPrecedenceOrder(t *testing.T) {
	mul, _ := InfixPrecedence(Asterisk)
	add, _ := InfixPrecedence(Plus)
	assign, _ := InfixPrecedence(Equal)
	coalesce, _ := InfixPrecedence(QuestionQuestion)
	call, _ := PostfixPrecedence(LeftParenthesis)

	require.Greater(t, mul, add)
	require.Greater(t, add, coalesce)
	require.Greater(t, coalesce, assign)
	require.Greater(t, call, mul)

	require.Equal(t, Left, add.Associativity())
	require.Equal(t, Right, assign.Associativity())
	require.Equal(t, Right, coalesce.Associativity())
	require.Equal(t, NonAssociative, Equality.Associativity())
}

func TestClassification(t *testing.T) {
	require.True(t, IntCast.IsCast())
	require.True(t, IntCast.IsUnaryPrefix())
	require.True(t, Isset.IsConstruct())
	require.True(t, Readonly.IsModifier())
	require.True(t, DotEqual.IsAssignment())
	require.True(t, Null.IsLiteral())
	require.True(t, DocBlockComment.IsComment())
	require.False(t, Whitespace.IsComment())
	require.True(t, LineConstant.IsMagicConstant())
	require.True(t, Class.IsKeyword())
}

func TestLogicalKeywordsAndOperators(t *testing.T) {
	k, ok := Keyword("or")
	require.True(t, ok)
	require.Equal(t, Or, k)
	k, ok = Keyword("AND")
	require.True(t, ok)
	require.Equal(t, And, k)

	low, _ := InfixPrecedence(Or)
	high, _ := InfixPrecedence(PipePipe)
	require.Equal(t, LowLogicalOr, low)
	require.Equal(t, OrPrecedence, high)
	and, _ := InfixPrecedence(AmpersandAmpersand)
	require.Equal(t, AndPrecedence, and)
	require.Greater(t, and, high)
	require.Greater(t, high, low)
}
