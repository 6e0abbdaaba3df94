package formatter

import (
	"math"

	"github.com/carthage-software/fennec/pkg/ast"
	"github.com/carthage-software/fennec/pkg/doc"
	"github.com/carthage-software/fennec/pkg/token"
)

// assignmentLayout is the way an assignment-like node breaks.
type assignmentLayout uint8

const (
	// layoutChain is an inner link of `$a = $b = $c`.
	layoutChain assignmentLayout = iota
	// layoutChainTail is the last link of a chain.
	layoutChainTail
	// layoutChainTailArrowChain ends a chain with curried arrow functions.
	layoutChainTailArrowChain
	// layoutBreakAfterOperator moves the right side to the next line.
	layoutBreakAfterOperator
	// layoutNeverBreakAfterOperator keeps the right side on the operator
	// line.
	layoutNeverBreakAfterOperator
	// layoutBreakLHS lets the left side break first.
	layoutBreakLHS
	// layoutFluid breaks after the operator only when the head of the
	// right side does not fit.
	layoutFluid
)

// assignment prints `lhs op rhs` for node, which must be the node on
// top of the stack: an assignment, a constant, property, static or enum
// case item, or a key-value array element.
func (f *formatter) assignment(node ast.Node, lhs doc.Doc, op string, rhs ast.Expression) doc.Doc {
	layout := f.chooseLayout(node, lhs, rhs)
	right := f.expression(rhs)
	operator := doc.Text(op)

	switch layout {
	case layoutChain:
		return doc.Concat(doc.NewGroup(lhs), doc.Space, operator, doc.Line, right)
	case layoutChainTailArrowChain:
		return doc.Concat(doc.NewGroup(lhs), doc.Space, operator, doc.Space, right)
	case layoutChainTail:
		return doc.Concat(doc.NewGroup(lhs), doc.Space, operator, doc.Indented(doc.Line, right))
	case layoutBreakAfterOperator:
		return doc.NewGroup(doc.NewGroup(lhs), doc.Space, operator, doc.NewGroup(doc.Indented(doc.Line, right)))
	case layoutNeverBreakAfterOperator:
		return doc.NewGroup(doc.NewGroup(lhs), doc.Space, operator, doc.Space, doc.NewGroup(right))
	case layoutBreakLHS:
		return doc.NewGroup(lhs, doc.Space, operator, doc.Space, doc.NewGroup(right))
	}

	id := f.arena.NewGroupID("assignment")
	return doc.NewGroup(
		doc.NewGroup(lhs),
		doc.Space,
		operator,
		doc.GroupWithID(id, doc.Indented(doc.Line)),
		doc.IndentIfBreak{Contents: right, GroupID: id},
	)
}

func (f *formatter) chooseLayout(node ast.Node, lhs doc.Doc, rhs ast.Expression) assignmentLayout {
	_, rhsIsAssignment := rhs.(*ast.AssignmentOperation)
	isTail := !rhsIsAssignment

	if _, ok := node.(*ast.AssignmentOperation); ok {
		_, inChain := f.parent().(*ast.AssignmentOperation)
		_, statement := f.ancestor(2).(*ast.ExpressionStatement)
		if inChain && (!isTail || !statement) {
			if !isTail {
				return layoutChain
			}
			if arrow, ok := rhs.(*ast.ArrowFunction); ok {
				if _, curried := arrow.Expression.(*ast.ArrowFunction); curried {
					return layoutChainTailArrowChain
				}
			}
			return layoutChainTail
		}
	}

	if !isTail || f.hasLeadingOwnLineComment(rhs.Span()) {
		return layoutBreakAfterOperator
	}

	if c, ok := rhs.(*ast.Construct); ok {
		switch c.Keyword.Kind {
		case token.Require, token.RequireOnce, token.Include, token.IncludeOnce:
			return layoutNeverBreakAfterOperator
		}
	}

	canBreakLHS := doc.CanBreak(lhs)
	if isComplexDestructuring(node) || (isArrowFunctionVariable(node) && canBreakLHS) {
		return layoutBreakLHS
	}

	shortKey := f.hasShortKey(node)
	if f.shouldBreakAfterOperator(rhs, shortKey) {
		return layoutBreakAfterOperator
	}

	if !canBreakLHS {
		if shortKey {
			return layoutNeverBreakAfterOperator
		}
		switch rhs.(type) {
		case *ast.Literal, *ast.CompositeString, *ast.AnonymousClass:
			return layoutNeverBreakAfterOperator
		}
	}
	return layoutFluid
}

// isComplexDestructuring reports whether node destructures more than two
// elements with at least one key.
func isComplexDestructuring(node ast.Node) bool {
	a, ok := node.(*ast.AssignmentOperation)
	if !ok {
		return false
	}
	var elements []ast.ArrayElement
	switch l := a.LHS.(type) {
	case *ast.Array:
		elements = l.Elements
	case *ast.List:
		elements = l.Elements
	case *ast.LegacyArray:
		elements = l.Elements
	default:
		return false
	}
	if len(elements) <= 2 {
		return false
	}
	for _, element := range elements {
		if _, ok := element.(*ast.KeyValueArrayElement); ok {
			return true
		}
	}
	return false
}

func isArrowFunctionVariable(node ast.Node) bool {
	a, ok := node.(*ast.AssignmentOperation)
	if !ok {
		return false
	}
	_, variable := a.LHS.(ast.Variable)
	_, arrow := a.RHS.(*ast.ArrowFunction)
	return variable && arrow
}

// hasShortKey reports whether the name being assigned is narrower than
// the indentation the right side would get on its own line.
func (f *formatter) hasShortKey(node ast.Node) bool {
	var key string
	switch n := node.(type) {
	case *ast.ConstantItem:
		key = f.lookup(n.Name.Value)
	case *ast.PropertyItem:
		key = f.lookup(n.Variable.Name)
	case *ast.EnumCase:
		key = f.lookup(n.Name.Value)
	case *ast.KeyValueArrayElement:
		switch k := n.Key.(type) {
		case *ast.DirectVariable:
			key = f.lookup(k.Name)
		case *ast.Identifier:
			if k.Form != ast.LocalIdentifier {
				return false
			}
			key = f.lookup(k.Value)
		case *ast.Literal:
			if k.Type != ast.StringLiteral {
				return false
			}
			key = f.lookup(k.Raw)
		default:
			return false
		}
	default:
		return false
	}
	return len(key) < f.settings.TabWidth+3
}

func (f *formatter) shouldBreakAfterOperator(rhs ast.Expression, shortKey bool) bool {
	if isBinaryish(rhs) && !shouldInlineLogical(rhs) {
		return true
	}
	switch r := rhs.(type) {
	case *ast.TernaryOperation:
		return isBinaryish(r.Condition) && !shouldInlineLogical(r.Condition)
	case *ast.AnonymousClass:
		if len(r.Attributes) > 0 {
			return true
		}
	}
	if shortKey {
		return false
	}

	value := rhs
	for {
		p, ok := value.(ast.PrefixOperation)
		if !ok {
			break
		}
		_, value = p.Prefix()
	}
	if l, ok := value.(*ast.Literal); ok && l.Type == ast.StringLiteral {
		return true
	}
	return f.isPoorlyBreakableMemberOrCallChain(rhs)
}

// isPoorlyBreakableMemberOrCallChain reports whether rhs is a chain of
// accesses and calls on a name whose calls take at most one short
// argument. Breaking inside such a chain gains nothing.
func (f *formatter) isPoorlyBreakableMemberOrCallChain(rhs ast.Expression) bool {
	chain, rooted := false, false
	var lists []*ast.ArgumentList

	for e := rhs; e != nil; {
		switch n := e.(type) {
		case *ast.FunctionCall:
			chain, e = true, n.Function
			lists = append(lists, n.Arguments)
		case *ast.MethodCall:
			chain, e = true, n.Object
			lists = append(lists, n.Arguments)
		case *ast.NullSafeMethodCall:
			chain, e = true, n.Object
			lists = append(lists, n.Arguments)
		case *ast.StaticMethodCall:
			chain, e = true, n.Class
			lists = append(lists, n.Arguments)
		case *ast.PropertyAccess:
			chain, e = true, n.Object
		case *ast.NullSafePropertyAccess:
			chain, e = true, n.Object
		case *ast.StaticPropertyAccess:
			chain, e = true, n.Class
		case *ast.ClassConstantAccess:
			chain, e = true, n.Class
		case *ast.Identifier, *ast.DirectVariable, *ast.IndirectVariable, *ast.NestedVariable,
			*ast.Static, *ast.Self, *ast.Parent:
			rooted, e = true, nil
		default:
			e = nil
		}
	}
	if !chain || !rooted {
		return false
	}
	for _, list := range lists {
		if !f.isLoneShortArgumentList(list) {
			return false
		}
	}
	return true
}

func (f *formatter) isLoneShortArgumentList(list *ast.ArgumentList) bool {
	switch len(list.Arguments) {
	case 0:
		return true
	case 1:
		return f.isLoneShortArgument(list.Arguments[0].Value)
	}
	return false
}

func (f *formatter) isLoneShortArgument(e ast.Expression) bool {
	if f.hasCommentsIn(e.Span()) {
		return false
	}
	threshold := int(math.Ceil(float64(f.settings.PrintWidth) * 0.25))
	switch e := e.(type) {
	case *ast.Static, *ast.Self, *ast.Parent:
		return true
	case *ast.DirectVariable:
		return len(f.lookup(e.Name)) <= threshold
	case *ast.Identifier:
		return e.Form == ast.LocalIdentifier && len(f.lookup(e.Value)) <= threshold
	case *ast.CastOperation:
		return false
	case ast.PrefixOperation:
		_, value := e.Prefix()
		return f.isLoneShortArgument(value)
	}
	return false
}
