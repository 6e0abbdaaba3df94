package ast

import (
	"github.com/carthage-software/fennec/pkg/span"
)

// InfixOperation is implemented by every binary operation family.
type InfixOperation interface {
	Expression
	Operands() (Expression, Operator, Expression)
}

// PrefixOperation is implemented by every prefix operation family.
type PrefixOperation interface {
	Expression
	Prefix() (Operator, Expression)
}

// ArithmeticInfixOperation is `+ - * / % **`.
type ArithmeticInfixOperation struct {
	LHS      Expression
	Operator Operator
	RHS      Expression
}

func (o *ArithmeticInfixOperation) Span() span.Span { return o.LHS.Span().Join(o.RHS.Span()) }
func (o *ArithmeticInfixOperation) Kind() NodeKind  { return KindArithmeticInfixOperation }
func (o *ArithmeticInfixOperation) node()           {}
func (o *ArithmeticInfixOperation) expression()     {}
func (o *ArithmeticInfixOperation) Operands() (Expression, Operator, Expression) {
	return o.LHS, o.Operator, o.RHS
}

// ArithmeticPrefixOperation is unary `+`, `-`, `++`, `--`.
type ArithmeticPrefixOperation struct {
	Operator Operator
	Value    Expression
}

func (o *ArithmeticPrefixOperation) Span() span.Span { return o.Operator.Loc.Join(o.Value.Span()) }
func (o *ArithmeticPrefixOperation) Kind() NodeKind  { return KindArithmeticPrefixOperation }
func (o *ArithmeticPrefixOperation) node()           {}
func (o *ArithmeticPrefixOperation) expression()     {}
func (o *ArithmeticPrefixOperation) Prefix() (Operator, Expression) {
	return o.Operator, o.Value
}

// ArithmeticPostfixOperation is `$a++` or `$a--`.
type ArithmeticPostfixOperation struct {
	Value    Expression
	Operator Operator
}

func (o *ArithmeticPostfixOperation) Span() span.Span { return o.Value.Span().Join(o.Operator.Loc) }
func (o *ArithmeticPostfixOperation) Kind() NodeKind  { return KindArithmeticPostfixOperation }
func (o *ArithmeticPostfixOperation) node()           {}
func (o *ArithmeticPostfixOperation) expression()     {}

// AssignmentOperation is `=` and every compound assignment.
type AssignmentOperation struct {
	LHS      Expression
	Operator Operator
	RHS      Expression
}

func (o *AssignmentOperation) Span() span.Span { return o.LHS.Span().Join(o.RHS.Span()) }
func (o *AssignmentOperation) Kind() NodeKind  { return KindAssignmentOperation }
func (o *AssignmentOperation) node()           {}
func (o *AssignmentOperation) expression()     {}
func (o *AssignmentOperation) Operands() (Expression, Operator, Expression) {
	return o.LHS, o.Operator, o.RHS
}

// BitwiseInfixOperation is `& | ^ << >>`.
type BitwiseInfixOperation struct {
	LHS      Expression
	Operator Operator
	RHS      Expression
}

func (o *BitwiseInfixOperation) Span() span.Span { return o.LHS.Span().Join(o.RHS.Span()) }
func (o *BitwiseInfixOperation) Kind() NodeKind  { return KindBitwiseInfixOperation }
func (o *BitwiseInfixOperation) node()           {}
func (o *BitwiseInfixOperation) expression()     {}
func (o *BitwiseInfixOperation) Operands() (Expression, Operator, Expression) {
	return o.LHS, o.Operator, o.RHS
}

// BitwisePrefixOperation is `~`.
type BitwisePrefixOperation struct {
	Operator Operator
	Value    Expression
}

func (o *BitwisePrefixOperation) Span() span.Span { return o.Operator.Loc.Join(o.Value.Span()) }
func (o *BitwisePrefixOperation) Kind() NodeKind  { return KindBitwisePrefixOperation }
func (o *BitwisePrefixOperation) node()           {}
func (o *BitwisePrefixOperation) expression()     {}
func (o *BitwisePrefixOperation) Prefix() (Operator, Expression) {
	return o.Operator, o.Value
}

// ComparisonOperation is `== === != !== <> <=> < > <= >=`.
type ComparisonOperation struct {
	LHS      Expression
	Operator Operator
	RHS      Expression
}

func (o *ComparisonOperation) Span() span.Span { return o.LHS.Span().Join(o.RHS.Span()) }
func (o *ComparisonOperation) Kind() NodeKind  { return KindComparisonOperation }
func (o *ComparisonOperation) node()           {}
func (o *ComparisonOperation) expression()     {}
func (o *ComparisonOperation) Operands() (Expression, Operator, Expression) {
	return o.LHS, o.Operator, o.RHS
}

// LogicalInfixOperation is `&& || and or xor`.
type LogicalInfixOperation struct {
	LHS      Expression
	Operator Operator
	RHS      Expression
}

func (o *LogicalInfixOperation) Span() span.Span { return o.LHS.Span().Join(o.RHS.Span()) }
func (o *LogicalInfixOperation) Kind() NodeKind  { return KindLogicalInfixOperation }
func (o *LogicalInfixOperation) node()           {}
func (o *LogicalInfixOperation) expression()     {}
func (o *LogicalInfixOperation) Operands() (Expression, Operator, Expression) {
	return o.LHS, o.Operator, o.RHS
}

// LogicalPrefixOperation is `!`.
type LogicalPrefixOperation struct {
	Operator Operator
	Value    Expression
}

func (o *LogicalPrefixOperation) Span() span.Span { return o.Operator.Loc.Join(o.Value.Span()) }
func (o *LogicalPrefixOperation) Kind() NodeKind  { return KindLogicalPrefixOperation }
func (o *LogicalPrefixOperation) node()           {}
func (o *LogicalPrefixOperation) expression()     {}
func (o *LogicalPrefixOperation) Prefix() (Operator, Expression) {
	return o.Operator, o.Value
}

// ConcatOperation is `.`.
type ConcatOperation struct {
	LHS      Expression
	Operator Operator
	RHS      Expression
}

func (o *ConcatOperation) Span() span.Span { return o.LHS.Span().Join(o.RHS.Span()) }
func (o *ConcatOperation) Kind() NodeKind  { return KindConcatOperation }
func (o *ConcatOperation) node()           {}
func (o *ConcatOperation) expression()     {}
func (o *ConcatOperation) Operands() (Expression, Operator, Expression) {
	return o.LHS, o.Operator, o.RHS
}

// CoalesceOperation is `??`.
type CoalesceOperation struct {
	LHS      Expression
	Operator Operator
	RHS      Expression
}

func (o *CoalesceOperation) Span() span.Span { return o.LHS.Span().Join(o.RHS.Span()) }
func (o *CoalesceOperation) Kind() NodeKind  { return KindCoalesceOperation }
func (o *CoalesceOperation) node()           {}
func (o *CoalesceOperation) expression()     {}
func (o *CoalesceOperation) Operands() (Expression, Operator, Expression) {
	return o.LHS, o.Operator, o.RHS
}

// InstanceofOperation is `$a instanceof C`.
type InstanceofOperation struct {
	LHS      Expression
	Operator Operator
	RHS      Expression
}

func (o *InstanceofOperation) Span() span.Span { return o.LHS.Span().Join(o.RHS.Span()) }
func (o *InstanceofOperation) Kind() NodeKind  { return KindInstanceofOperation }
func (o *InstanceofOperation) node()           {}
func (o *InstanceofOperation) expression()     {}
func (o *InstanceofOperation) Operands() (Expression, Operator, Expression) {
	return o.LHS, o.Operator, o.RHS
}

// CastOperation is `(int) $a` and the other casts. Operator.Kind is the
// cast token kind.
type CastOperation struct {
	Operator Operator
	Value    Expression
}

func (o *CastOperation) Span() span.Span { return o.Operator.Loc.Join(o.Value.Span()) }
func (o *CastOperation) Kind() NodeKind  { return KindCastOperation }
func (o *CastOperation) node()           {}
func (o *CastOperation) expression()     {}
func (o *CastOperation) Prefix() (Operator, Expression) {
	return o.Operator, o.Value
}

// UnaryPrefixOperation is the error control `@` or the reference `&`.
type UnaryPrefixOperation struct {
	Operator Operator
	Value    Expression
}

func (o *UnaryPrefixOperation) Span() span.Span { return o.Operator.Loc.Join(o.Value.Span()) }
func (o *UnaryPrefixOperation) Kind() NodeKind  { return KindUnaryPrefixOperation }
func (o *UnaryPrefixOperation) node()           {}
func (o *UnaryPrefixOperation) expression()     {}
func (o *UnaryPrefixOperation) Prefix() (Operator, Expression) {
	return o.Operator, o.Value
}

// TernaryOperation is `cond ? then : else`, or the elvis `cond ?: else`
// when Then is nil.
type TernaryOperation struct {
	Condition Expression
	Question  span.Span
	Then      Expression
	Colon     span.Span
	Else      Expression
}

func (o *TernaryOperation) Span() span.Span { return o.Condition.Span().Join(o.Else.Span()) }
func (o *TernaryOperation) Kind() NodeKind  { return KindTernaryOperation }
func (o *TernaryOperation) node()           {}
func (o *TernaryOperation) expression()     {}

// IsElvis reports whether the operation is `?:`.
func (o *TernaryOperation) IsElvis() bool { return o.Then == nil }
