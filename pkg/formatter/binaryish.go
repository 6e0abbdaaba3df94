package formatter

import (
	"github.com/carthage-software/fennec/pkg/ast"
	"github.com/carthage-software/fennec/pkg/doc"
	"github.com/carthage-software/fennec/pkg/token"
)

// isBinaryish reports whether e prints as an operator chain that breaks
// after its operators.
func isBinaryish(e ast.Expression) bool {
	switch e.(type) {
	case *ast.ArithmeticInfixOperation, *ast.BitwiseInfixOperation,
		*ast.ComparisonOperation, *ast.LogicalInfixOperation,
		*ast.ConcatOperation, *ast.CoalesceOperation:
		return true
	}
	return false
}

func operatorOf(e ast.InfixOperation) token.Kind {
	_, op, _ := e.Operands()
	return op.Kind
}

// shouldFlatten reports whether a left operand using childOp can be
// printed in the same chain as its parent using parentOp.
func shouldFlatten(parentOp, childOp token.Kind) bool {
	parent, _ := token.InfixPrecedence(parentOp)
	child, _ := token.InfixPrecedence(childOp)
	if parent != child {
		return false
	}
	switch {
	case parentOp == token.AsteriskAsterisk:
		return false
	case parent == token.Equality:
		return false
	case parentOp == token.Percent && (childOp == token.Asterisk || childOp == token.Slash),
		childOp == token.Percent && (parentOp == token.Asterisk || parentOp == token.Slash):
		return false
	case parentOp != childOp && parent == token.MulDivMod:
		return false
	case parent == token.BitShift && parentOp != childOp:
		return false
	}
	return true
}

// shouldInlineLogical reports whether the right side of a logical or
// coalescing operation is an array that stays on the operator line.
func shouldInlineLogical(e ast.Expression) bool {
	var rhs ast.Expression
	switch e := e.(type) {
	case *ast.LogicalInfixOperation:
		rhs = e.RHS
	case *ast.CoalesceOperation:
		rhs = e.RHS
	default:
		return false
	}
	switch r := rhs.(type) {
	case *ast.Array:
		return len(r.Elements) > 0
	case *ast.LegacyArray:
		return len(r.Elements) > 0
	}
	return false
}

func (f *formatter) operatorText(k token.Kind) doc.Doc {
	switch k {
	case token.And, token.Or, token.Xor:
		return f.keywordText(k)
	}
	return doc.Text(k.Text())
}

// binaryish prints an operator chain. Inside a condition the parts are
// left ungrouped so the surrounding parentheses decide the layout.
func (f *formatter) binaryish(e ast.InfixOperation) doc.Doc {
	parts := f.binaryishParts(e)

	switch p := f.parent().(type) {
	case *ast.If, *ast.IfElseIf, *ast.While, *ast.DoWhile, *ast.Switch, *ast.Parenthesized, *ast.Match:
		return doc.Concat(parts...)
	case *ast.Return, *ast.Throw, *ast.For:
		return doc.NewGroup(parts...)
	case *ast.AssignmentOperation:
		if p.RHS == e {
			return doc.NewGroup(parts...)
		}
	case *ast.ConstantItem, *ast.PropertyItem, *ast.StaticItem, *ast.EnumCase:
		return doc.NewGroup(parts...)
	case *ast.KeyValueArrayElement:
		if p.Value == e {
			return doc.NewGroup(parts...)
		}
	}

	if shouldInlineLogical(e) && !f.flattensLeft(e) {
		return doc.NewGroup(parts...)
	}
	return doc.NewGroup(parts[0], doc.Indented(parts[1:]...))
}

func (f *formatter) flattensLeft(e ast.InfixOperation) bool {
	lhs, op, _ := e.Operands()
	left, ok := lhs.(ast.InfixOperation)
	return ok && isBinaryish(lhs) && shouldFlatten(op.Kind, operatorOf(left))
}

// binaryishParts flattens left operands of the same precedence into one
// list: the first operand, then `op line operand` for each step.
func (f *formatter) binaryishParts(e ast.InfixOperation) []doc.Doc {
	lhs, op, rhs := e.Operands()

	var parts []doc.Doc
	if f.flattensLeft(e) {
		left := lhs.(ast.InfixOperation)
		f.stack = append(f.stack, left)
		parts = f.binaryishParts(left)
		f.stack = f.stack[:len(f.stack)-1]
		if trailing := f.trailingComments(left.Span().End, false); trailing != nil {
			parts = append(parts, trailing)
		}
	} else {
		parts = append(parts, doc.NewGroup(f.expression(lhs)))
	}

	var right doc.Doc
	if shouldInlineLogical(e) {
		right = doc.Concat(f.operatorText(op.Kind), doc.Space, f.expression(rhs))
	} else {
		right = doc.Concat(f.operatorText(op.Kind), doc.Line, f.expression(rhs))
	}

	// A step whose neighbours use another operator family is grouped so
	// it can stay on one line while the chain breaks.
	parent, _ := f.parent().(ast.Expression)
	shouldGroup := (parent == nil || parent.Kind() != e.Kind()) &&
		lhs.Kind() != e.Kind() && rhs.Kind() != e.Kind()
	if shouldGroup {
		right = doc.NewGroup(right)
	}
	return append(parts, doc.Space, right)
}
