package ast

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/carthage-software/fennec/pkg/span"
	"github.com/carthage-software/fennec/pkg/token"
)

func lit(start int) *Literal {
	return &Literal{Type: IntegerLiteral, Loc: span.New(span.Position(start), span.Position(start+1))}
}

func variable(start int) *DirectVariable {
	return &DirectVariable{Loc: span.New(span.Position(start), span.Position(start+2))}
}

func TestInfixSpanCoversOperands(t *testing.T) {
	op := &ArithmeticInfixOperation{
		LHS:      lit(0),
		Operator: Operator{Kind: token.Plus, Loc: span.New(2, 3)},
		RHS:      lit(4),
	}
	require.Equal(t, span.New(0, 5), op.Span())
	require.Equal(t, KindArithmeticInfixOperation, op.Kind())
}

func TestIsConstant(t *testing.T) {
	plus := Operator{Kind: token.Plus}
	minus := Operator{Kind: token.Minus}
	increment := Operator{Kind: token.PlusPlus}

	for name, tc := range map[string]struct {
		expr           Expression
		initialization bool
		want           bool
	}{
		"literal":       {lit(0), false, true},
		"variable":      {variable(0), false, false},
		"sum":           {&ArithmeticInfixOperation{LHS: lit(0), Operator: plus, RHS: lit(2)}, false, true},
		"sum with var":  {&ArithmeticInfixOperation{LHS: lit(0), Operator: plus, RHS: variable(2)}, false, false},
		"negative":      {&ArithmeticPrefixOperation{Operator: minus, Value: lit(1)}, false, true},
		"increment":     {&ArithmeticPrefixOperation{Operator: increment, Value: variable(2)}, false, false},
		"elvis":         {&TernaryOperation{Condition: lit(0), Else: lit(4)}, false, true},
		"class const":   {&ClassConstantAccess{Class: &Self{}, Constant: &Identifier{}}, false, true},
		"static prop":   {&StaticPropertyAccess{Class: &Self{}, Property: variable(6)}, false, false},
		"braced const":  {&ClassConstantAccess{Class: &Self{}, Constant: &BracedSelector{Expression: lit(7)}}, false, false},
		"new":           {&Instantiation{Class: &Identifier{}}, false, false},
		"new in init":   {&Instantiation{Class: &Identifier{}}, true, true},
		"array":         {&Array{Elements: []ArrayElement{&ValueArrayElement{Value: lit(1)}}}, false, true},
		"missing slot":  {&Array{Elements: []ArrayElement{&MissingArrayElement{}}}, false, false},
		"interpolation": {&CompositeString{Parts: []StringPart{&ExpressionStringPart{Expression: variable(1)}}}, false, false},
		"plain heredoc": {&CompositeString{Type: DocumentString, Parts: []StringPart{&LiteralStringPart{}}}, false, true},
	} {
		t.Run(name, func(t *testing.T) {
			require.Equal(t, tc.want, IsConstant(tc.expr, tc.initialization))
		})
	}
}

func TestInstantiationRejectsUnpacking(t *testing.T) {
	ellipsis := span.New(4, 7)
	e := &Instantiation{
		Class: &Identifier{},
		Arguments: &ArgumentList{Arguments: []*Argument{
			{Ellipsis: &ellipsis, Value: &Array{}},
		}},
	}
	require.False(t, IsConstant(e, true))
}

func TestWalkVisitsInSourceOrder(t *testing.T) {
	a, b, c := variable(0), variable(5), variable(10)
	tree := &ExpressionStatement{
		Expression: &AssignmentOperation{
			LHS:      a,
			Operator: Operator{Kind: token.Equal},
			RHS: &ComparisonOperation{
				LHS:      b,
				Operator: Operator{Kind: token.EqualEqual},
				RHS:      c,
			},
		},
		Terminator: &Terminator{Loc: span.New(12, 13)},
	}

	var visited []NodeKind
	Walk(tree, func(n Node) bool {
		visited = append(visited, n.Kind())
		return true
	})
	require.Equal(t, []NodeKind{
		KindExpressionStatement,
		KindAssignmentOperation,
		KindDirectVariable,
		KindComparisonOperation,
		KindDirectVariable,
		KindDirectVariable,
		KindTerminator,
	}, visited)
}

func TestWalkSkipsChildren(t *testing.T) {
	tree := &Parenthesized{Expression: &Parenthesized{Expression: lit(2)}}
	count := 0
	Walk(tree, func(n Node) bool {
		count++
		return false
	})
	require.Equal(t, 1, count)
}

func TestUnionMembers(t *testing.T) {
	a := &Identifier{Loc: span.New(1, 2)}
	b := &KeywordHint{Loc: span.New(3, 4)}
	c := &KeywordHint{Loc: span.New(5, 6)}

	require.Equal(t, []Hint{nil, a}, UnionMembers(&NullableHint{Hint: a}))
	require.Equal(t, []Hint{a, b, c}, UnionMembers(&UnionHint{
		Left:  &UnionHint{Left: a, Right: b},
		Right: c,
	}))
	require.Equal(t, []Hint{a, b}, IntersectionMembers(&IntersectionHint{Left: a, Right: b}))
}

func TestColonBodySpan(t *testing.T) {
	body := &ColonBody{Colon: span.New(8, 9)}
	require.Equal(t, span.New(8, 9), body.Span())
	require.False(t, body.Closes())

	echo := &ExpressionStatement{Expression: variable(10), Terminator: &Terminator{Loc: span.New(12, 13)}}
	body.Statements = []Statement{echo}
	require.Equal(t, span.New(8, 13), body.Span())

	body.End = span.New(14, 19)
	body.Terminator = &Terminator{Loc: span.New(19, 20)}
	require.True(t, body.Closes())
	require.Equal(t, span.New(8, 20), body.Span())

	var visited []NodeKind
	Walk(body, func(n Node) bool {
		visited = append(visited, n.Kind())
		return true
	})
	require.Equal(t, []NodeKind{
		KindColonBody,
		KindExpressionStatement,
		KindDirectVariable,
		KindTerminator,
		KindTerminator,
	}, visited)
}

func TestVariablesAreSelectors(t *testing.T) {
	var v Variable = variable(0)
	_, ok := v.(Selector)
	require.True(t, ok)
}
