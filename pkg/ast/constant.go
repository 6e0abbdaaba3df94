package ast

import "github.com/carthage-software/fennec/pkg/token"

// IsConstant reports whether e can be evaluated at compile time. In an
// initialization context (a constant, property or parameter default)
// `new` with constant arguments is also accepted.
func IsConstant(e Expression, initialization bool) bool {
	switch e := e.(type) {
	case *Literal, *Identifier, *MagicConstant, *Static, *Self, *Parent:
		return true
	case *Parenthesized:
		return IsConstant(e.Expression, initialization)
	case *ArithmeticInfixOperation:
		return IsConstant(e.LHS, initialization) && IsConstant(e.RHS, initialization)
	case *ArithmeticPrefixOperation:
		switch e.Operator.Kind {
		case token.Plus, token.Minus:
			return IsConstant(e.Value, initialization)
		}
		return false
	case *BitwiseInfixOperation:
		return IsConstant(e.LHS, initialization) && IsConstant(e.RHS, initialization)
	case *BitwisePrefixOperation:
		return IsConstant(e.Value, initialization)
	case *ComparisonOperation:
		return IsConstant(e.LHS, initialization) && IsConstant(e.RHS, initialization)
	case *LogicalInfixOperation:
		return IsConstant(e.LHS, initialization) && IsConstant(e.RHS, initialization)
	case *LogicalPrefixOperation:
		return IsConstant(e.Value, initialization)
	case *ConcatOperation:
		return IsConstant(e.LHS, initialization) && IsConstant(e.RHS, initialization)
	case *CoalesceOperation:
		return IsConstant(e.LHS, initialization) && IsConstant(e.RHS, initialization)
	case *TernaryOperation:
		if e.Then != nil && !IsConstant(e.Then, initialization) {
			return false
		}
		return IsConstant(e.Condition, initialization) && IsConstant(e.Else, initialization)
	case *ClassConstantAccess:
		if _, ok := e.Constant.(*Identifier); !ok {
			return false
		}
		return IsConstant(e.Class, initialization)
	case *ArrayAccess:
		return IsConstant(e.Array, initialization) && IsConstant(e.Index, initialization)
	case *Instantiation:
		if !initialization || !IsConstant(e.Class, initialization) {
			return false
		}
		if e.Arguments == nil {
			return true
		}
		for _, arg := range e.Arguments.Arguments {
			if arg.Ellipsis != nil || !IsConstant(arg.Value, initialization) {
				return false
			}
		}
		return true
	case *Array:
		return elementsAreConstant(e.Elements, initialization)
	case *LegacyArray:
		return elementsAreConstant(e.Elements, initialization)
	case *CompositeString:
		for _, part := range e.Parts {
			if _, ok := part.(*LiteralStringPart); !ok {
				return false
			}
		}
		return true
	}
	return false
}

func elementsAreConstant(elements []ArrayElement, initialization bool) bool {
	for _, element := range elements {
		switch element := element.(type) {
		case *KeyValueArrayElement:
			if !IsConstant(element.Key, initialization) || !IsConstant(element.Value, initialization) {
				return false
			}
		case *ValueArrayElement:
			if !IsConstant(element.Value, initialization) {
				return false
			}
		case *VariadicArrayElement:
			if !IsConstant(element.Value, initialization) {
				return false
			}
		case *MissingArrayElement:
			return false
		}
	}
	return true
}
