package parser

import (
	"fmt"
	"strings"
	"testing"

	"github.com/kr/pretty"
	"github.com/stretchr/testify/require"

	"github.com/carthage-software/fennec/pkg/ast"
	"github.com/carthage-software/fennec/pkg/interner"
	"github.com/carthage-software/fennec/pkg/token"
)

// sexpr renders operator structure as an s-expression. Anything that is
// not an operation renders as its source text.
func sexpr(src string, n ast.Node) string {
	switch n := n.(type) {
	case nil:
		return "_"
	case *ast.TernaryOperation:
		var then ast.Node
		if n.Then != nil {
			then = n.Then
		}
		return fmt.Sprintf("(? %s %s %s)", sexpr(src, n.Condition), sexpr(src, then), sexpr(src, n.Else))
	case *ast.ArithmeticPostfixOperation:
		return fmt.Sprintf("(post%s %s)", n.Operator.Loc.Slice(src), sexpr(src, n.Value))
	case ast.InfixOperation:
		lhs, op, rhs := n.Operands()
		return fmt.Sprintf("(%s %s %s)", op.Loc.Slice(src), sexpr(src, lhs), sexpr(src, rhs))
	case ast.PrefixOperation:
		op, value := n.Prefix()
		return fmt.Sprintf("(%s %s)", op.Loc.Slice(src), sexpr(src, value))
	}
	return strings.Join(strings.Fields(n.Span().Slice(src)), " ")
}

func parseExpr(t *testing.T, input string) (ast.Expression, string) {
	t.Helper()
	expr, err := ParseExpression(interner.New(), input)
	require.NoError(t, err)
	return expr, "<?php " + input
}

func TestPrecedence(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"1 + 2 * 3", "(+ 1 (* 2 3))"},
		{"1 * 2 + 3", "(+ (* 1 2) 3)"},
		{"1 - 2 - 3", "(- (- 1 2) 3)"},
		{"2 ** 3 ** 4", "(** 2 (** 3 4))"},
		{"$a = $b = 1", "(= $a (= $b 1))"},
		{"$a ?? $b ?? $c", "(?? $a (?? $b $c))"},
		{"$a . $b + $c", "(. $a (+ $b $c))"},
		{"!$a instanceof B", "(! (instanceof $a B))"},
		{"-$a ** 2", "(- (** $a 2))"},
		{"$a && $b || $c", "(|| (&& $a $b) $c)"},
		{"$a or $b and $c", "(or $a (and $b $c))"},
		{"$x = $a and $b", "(and (= $x $a) $b)"},
		{"$a & $b == $c", "(& $a (== $b $c))"},
		{"(int) $a + 1", "(+ ((int) $a) 1)"},
		{"$a++ + 1", "(+ (post++ $a) 1)"},
		{"@foo() ?? 1", "(?? (@ foo()) 1)"},
		{"$a instanceof B && $c", "(&& (instanceof $a B) $c)"},
		{"$a ?: $b", "(? $a _ $b)"},
		{"$a ? $b : $c ? $d : $e", "(? (? $a $b $c) $d $e)"},
		{"$a ? $b ? 1 : 2 : 3", "(? $a (? $b 1 2) 3)"},
		{"$x = $a ? 1 : 2", "(= $x (? $a 1 2))"},
		{"$a->b()->c + 1", "(+ $a->b()->c 1)"},
		{"clone $a->b()", "clone $a->b()"},
		{"$a .= $b . $c", "(.= $a (. $b $c))"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			expr, src := parseExpr(t, tt.input)
			require.Equal(t, tt.expected, sexpr(src, expr), pretty.Sprint(expr))
		})
	}
}

func TestAssignmentRotation(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"$x == $y = $z", "(== $x (= $y $z))"},
		{"!$a = foo()", "(! (= $a foo()))"},
		{"$a + $b = 3", "(+ $a (= $b 3))"},
		{"$a && $b = 1", "(&& $a (= $b 1))"},
		{"$a ?? $b = 1", "(?? $a (= $b 1))"},
		{"$a . $b .= 'x'", "(. $a (.= $b 'x'))"},
		{"@$a = f()", "(@ (= $a f()))"},
		{"$a || !$b = 1", "(|| $a (! (= $b 1)))"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			expr, src := parseExpr(t, tt.input)
			require.Equal(t, tt.expected, sexpr(src, expr), pretty.Sprint(expr))
		})
	}
}

func TestRotationKeepsSpans(t *testing.T) {
	expr, src := parseExpr(t, "$x == $y = $z")
	cmp, ok := expr.(*ast.ComparisonOperation)
	require.True(t, ok)
	require.Equal(t, "$x == $y = $z", cmp.Span().Slice(src))
	require.Equal(t, "$y = $z", cmp.RHS.Span().Slice(src))
}

func TestPostfix(t *testing.T) {
	tests := []struct {
		input    string
		expected ast.NodeKind
	}{
		{"foo()", ast.KindFunctionCall},
		{"foo(...)", ast.KindFunctionClosureCreation},
		{"foo(...$args)", ast.KindFunctionCall},
		{"A::b()", ast.KindStaticMethodCall},
		{"A::b(...)", ast.KindStaticMethodClosureCreation},
		{"A::B", ast.KindClassConstantAccess},
		{"A::class", ast.KindClassConstantAccess},
		{"A::$b", ast.KindStaticPropertyAccess},
		{"A::{$b}", ast.KindClassConstantAccess},
		{"$a->b", ast.KindPropertyAccess},
		{"$a->b()", ast.KindMethodCall},
		{"$a->b(...)", ast.KindMethodClosureCreation},
		{"$a->{$b}", ast.KindPropertyAccess},
		{"$a->$b", ast.KindPropertyAccess},
		{"$a?->b", ast.KindNullSafePropertyAccess},
		{"$a?->b()", ast.KindNullSafeMethodCall},
		{"$a[]", ast.KindArrayAppend},
		{"$a[1]", ast.KindArrayAccess},
		{"$a--", ast.KindArithmeticPostfixOperation},
		{"$a->list", ast.KindPropertyAccess},
		{"A::new()", ast.KindStaticMethodCall},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			expr, _ := parseExpr(t, tt.input)
			require.Equal(t, tt.expected, expr.Kind(), pretty.Sprint(expr))
		})
	}
}

func TestArgumentUnpacking(t *testing.T) {
	expr, src := parseExpr(t, "foo(...$args, b: 2)")
	call := expr.(*ast.FunctionCall)
	require.Len(t, call.Arguments.Arguments, 2)

	unpacked := call.Arguments.Arguments[0]
	require.NotNil(t, unpacked.Ellipsis)
	require.Nil(t, unpacked.Name)

	named := call.Arguments.Arguments[1]
	require.NotNil(t, named.Name)
	require.Equal(t, "b", named.Name.Span().Slice(src))
}

func TestInstantiation(t *testing.T) {
	expr, _ := parseExpr(t, "new Foo")
	require.Nil(t, expr.(*ast.Instantiation).Arguments)

	expr, _ = parseExpr(t, "new Foo(1, 2)")
	require.Len(t, expr.(*ast.Instantiation).Arguments.Arguments, 2)

	expr, _ = parseExpr(t, "new static")
	require.IsType(t, &ast.Static{}, expr.(*ast.Instantiation).Class)

	expr, _ = parseExpr(t, "new class(1) extends A implements B, C {}")
	class := expr.(*ast.AnonymousClass)
	require.Len(t, class.Arguments.Arguments, 1)
	require.Len(t, class.Implements.Types, 2)

	expr, _ = parseExpr(t, "new readonly class {}")
	require.Len(t, expr.(*ast.AnonymousClass).Modifiers, 1)

	expr, _ = parseExpr(t, "new Foo()->bar()")
	call := expr.(*ast.MethodCall)
	require.IsType(t, &ast.Instantiation{}, call.Object)
}

func TestArrays(t *testing.T) {
	expr, _ := parseExpr(t, "[1, , 3]")
	elements := expr.(*ast.Array).Elements
	require.Len(t, elements, 3)
	require.IsType(t, &ast.ValueArrayElement{}, elements[0])
	require.IsType(t, &ast.MissingArrayElement{}, elements[1])
	require.IsType(t, &ast.ValueArrayElement{}, elements[2])

	expr, _ = parseExpr(t, "[, $b] = $pair")
	assignment := expr.(*ast.AssignmentOperation)
	elements = assignment.LHS.(*ast.Array).Elements
	require.Len(t, elements, 2)
	require.IsType(t, &ast.MissingArrayElement{}, elements[0])

	expr, _ = parseExpr(t, "['a' => 1, ...$rest, &$ref,]")
	elements = expr.(*ast.Array).Elements
	require.Len(t, elements, 3)
	require.IsType(t, &ast.KeyValueArrayElement{}, elements[0])
	require.IsType(t, &ast.VariadicArrayElement{}, elements[1])
	require.IsType(t, &ast.UnaryPrefixOperation{}, elements[2].(*ast.ValueArrayElement).Value)

	expr, _ = parseExpr(t, "array(1, 2)")
	require.Len(t, expr.(*ast.LegacyArray).Elements, 2)

	expr, _ = parseExpr(t, "list($a, list($b)) = $x")
	require.IsType(t, &ast.List{}, expr.(*ast.AssignmentOperation).LHS)
}

func TestMatch(t *testing.T) {
	expr, _ := parseExpr(t, "match ($x) { 1, 2 => 'low', 3, => 'mid', default => 'high', }")
	match := expr.(*ast.Match)
	require.Len(t, match.Arms, 3)
	require.Len(t, match.Arms[0].(*ast.MatchExpressionArm).Conditions, 2)
	require.Len(t, match.Arms[1].(*ast.MatchExpressionArm).Conditions, 1)
	require.IsType(t, &ast.MatchDefaultArm{}, match.Arms[2])
}

func TestFunctionLikeExpressions(t *testing.T) {
	expr, src := parseExpr(t, "fn($x) => $x + 1")
	arrow := expr.(*ast.ArrowFunction)
	require.Equal(t, "(+ $x 1)", sexpr(src, arrow.Expression))

	expr, _ = parseExpr(t, "static function &(int $a, ...$rest) use (&$b, $c): ?int { return $a; }")
	closure := expr.(*ast.Closure)
	require.NotNil(t, closure.Static)
	require.NotNil(t, closure.Ampersand)
	require.Len(t, closure.Parameters.Parameters, 2)
	require.NotNil(t, closure.Parameters.Parameters[1].Ellipsis)
	require.Len(t, closure.Use.Variables, 2)
	require.NotNil(t, closure.Use.Variables[0].Ampersand)
	require.IsType(t, &ast.NullableHint{}, closure.ReturnType.Hint)

	expr, _ = parseExpr(t, "#[Pure] static fn() => 1")
	arrow = expr.(*ast.ArrowFunction)
	require.Len(t, arrow.Attributes, 1)
	require.NotNil(t, arrow.Static)
}

func TestConstructs(t *testing.T) {
	tests := []struct {
		input     string
		keyword   token.Kind
		arguments bool
	}{
		{"isset($a, $b)", token.Isset, true},
		{"empty($a)", token.Empty, true},
		{"exit", token.Exit, false},
		{"die('x')", token.Die, true},
		{"require_once __DIR__ . '/a.php'", token.RequireOnce, false},
		{"print $a", token.Print, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			expr, _ := parseExpr(t, tt.input)
			construct := expr.(*ast.Construct)
			require.Equal(t, tt.keyword, construct.Keyword.Kind)
			require.Equal(t, tt.arguments, construct.Arguments != nil)
		})
	}
}

func TestYield(t *testing.T) {
	expr, _ := parseExpr(t, "yield")
	require.Nil(t, expr.(*ast.Yield).Value)

	expr, _ = parseExpr(t, "yield $k => $v")
	y := expr.(*ast.Yield)
	require.Equal(t, ast.YieldPair, y.Type)
	require.NotNil(t, y.Key)

	expr, _ = parseExpr(t, "yield from gen()")
	require.Equal(t, ast.YieldFrom, expr.(*ast.Yield).Type)

	expr, _ = parseExpr(t, "$x = yield")
	require.Nil(t, expr.(*ast.AssignmentOperation).RHS.(*ast.Yield).Value)
}

func TestVariables(t *testing.T) {
	expr, _ := parseExpr(t, "$$a")
	require.IsType(t, &ast.DirectVariable{}, expr.(*ast.NestedVariable).Variable)

	expr, _ = parseExpr(t, "${'a' . 'b'}")
	require.IsType(t, &ast.ConcatOperation{}, expr.(*ast.IndirectVariable).Expression)
}

func TestInterpolatedString(t *testing.T) {
	expr, src := parseExpr(t, `"Hello $name! $a[0] $b[key] $c->d {$e->f()} ${g}"`)
	str := expr.(*ast.CompositeString)
	require.Equal(t, ast.InterpolatedString, str.Type)

	var rendered []string
	for _, part := range str.Parts {
		switch part := part.(type) {
		case *ast.LiteralStringPart:
			rendered = append(rendered, "lit:"+part.Span().Slice(src))
		case *ast.ExpressionStringPart:
			rendered = append(rendered, fmt.Sprintf("expr:%s:%s", part.Expression.Kind(), part.Span().Slice(src)))
		case *ast.BracedExpressionStringPart:
			rendered = append(rendered, "braced:"+part.Expression.Span().Slice(src))
		}
	}

	require.Equal(t, []string{
		"lit:Hello ",
		"expr:DirectVariable:$name",
		"lit:! ",
		"expr:ArrayAccess:$a[0]",
		"lit: ",
		"expr:ArrayAccess:$b[key]",
		"lit: ",
		"expr:PropertyAccess:$c->d",
		"lit: ",
		"braced:$e->f()",
		"lit: ",
		"expr:IndirectVariable:${g}",
	}, rendered)
}

func TestDocumentStrings(t *testing.T) {
	expr, _ := parseExpr(t, "<<<EOT\n  hello $name\n  EOT")
	str := expr.(*ast.CompositeString)
	require.Equal(t, ast.DocumentString, str.Type)
	require.False(t, str.Nowdoc)
	require.Equal(t, 2, str.Indentation)
	require.Len(t, str.Parts, 3)

	in := interner.New()
	expr, err := ParseExpression(in, "<<<'EOT'\nraw $name\nEOT")
	require.NoError(t, err)
	str = expr.(*ast.CompositeString)
	require.True(t, str.Nowdoc)
	require.Equal(t, "EOT", in.Lookup(str.Label))
	require.Equal(t, 0, str.Indentation)
	require.Len(t, str.Parts, 1)
}

func TestShellExecute(t *testing.T) {
	expr, _ := parseExpr(t, "`ls $dir`")
	str := expr.(*ast.CompositeString)
	require.Equal(t, ast.ShellExecuteString, str.Type)
	require.Len(t, str.Parts, 2)
}
