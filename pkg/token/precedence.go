package token

// Precedence is a binding power level. Higher levels bind tighter.
type Precedence uint8

const (
	Lowest Precedence = iota
	PrintPrecedence
	YieldFromPrecedence
	YieldPrecedence
	KeyOr
	LowLogicalOr
	LowLogicalXor
	LowLogicalAnd
	Assignment
	ElvisOrConditional
	NullCoalesce
	OrPrecedence
	AndPrecedence
	BitwiseOr
	BitwiseXor
	BitwiseAnd
	Equality
	Comparison
	Concat
	BitShift
	AddSub
	MulDivMod
	BangPrecedence
	InstanceofPrecedence
	Prefix
	Pow
	ClonePrecedence
	IncDec
	CallDim
	NewPrecedence
)

// Associativity tells the climbing loop how to treat a run of operators
// sharing one level.
type Associativity uint8

const (
	NonAssociative Associativity = iota
	Left
	Right
)

var associativity = map[Precedence]Associativity{
	InstanceofPrecedence: Left,
	MulDivMod:            Left,
	AddSub:               Left,
	BitShift:             Left,
	Concat:               Left,
	BitwiseAnd:           Left,
	BitwiseOr:            Left,
	BitwiseXor:           Left,
	AndPrecedence:        Left,
	OrPrecedence:         Left,
	LowLogicalAnd:        Left,
	LowLogicalOr:         Left,
	LowLogicalXor:        Left,
	ElvisOrConditional:   Left,
	Pow:                  Right,
	Prefix:               Right,
	Assignment:           Right,
	IncDec:               Right,
	NullCoalesce:         Right,
	Equality:             NonAssociative,
	Comparison:           NonAssociative,
}

// Associativity returns the associativity of a level.
func (p Precedence) Associativity() Associativity {
	return associativity[p]
}

var infix = map[Kind]Precedence{
	QuestionQuestion:         NullCoalesce,
	Question:                 ElvisOrConditional,
	Plus:                     AddSub,
	Minus:                    AddSub,
	Asterisk:                 MulDivMod,
	Slash:                    MulDivMod,
	Percent:                  MulDivMod,
	AsteriskAsterisk:         Pow,
	Ampersand:                BitwiseAnd,
	Pipe:                     BitwiseOr,
	Caret:                    BitwiseXor,
	LeftShift:                BitShift,
	RightShift:               BitShift,
	EqualEqual:               Equality,
	EqualEqualEqual:          Equality,
	BangEqual:                Equality,
	BangEqualEqual:           Equality,
	LessThanGreaterThan:      Equality,
	LessThanEqualGreaterThan: Equality,
	LessThan:                 Comparison,
	GreaterThan:              Comparison,
	LessThanEqual:            Comparison,
	GreaterThanEqual:         Comparison,
	AmpersandAmpersand:       AndPrecedence,
	PipePipe:                 OrPrecedence,
	And:                      LowLogicalAnd,
	Or:                       LowLogicalOr,
	Xor:                      LowLogicalXor,
	Dot:                      Concat,
	Instanceof:               InstanceofPrecedence,
	Equal:                    Assignment,
	PlusEqual:                Assignment,
	MinusEqual:               Assignment,
	AsteriskEqual:            Assignment,
	SlashEqual:               Assignment,
	PercentEqual:             Assignment,
	AsteriskAsteriskEqual:    Assignment,
	DotEqual:                 Assignment,
	AmpersandEqual:           Assignment,
	PipeEqual:                Assignment,
	CaretEqual:               Assignment,
	LeftShiftEqual:           Assignment,
	RightShiftEqual:          Assignment,
	QuestionQuestionEqual:    Assignment,
}

var postfix = map[Kind]Precedence{
	LeftParenthesis:          CallDim,
	LeftBracket:              CallDim,
	DoubleColon:              CallDim,
	MinusGreaterThan:         CallDim,
	QuestionMinusGreaterThan: CallDim,
	PlusPlus:                 IncDec,
	MinusMinus:               IncDec,
}

// InfixPrecedence returns the level of a binary operator. The second
// result is false when k is not an infix operator.
func InfixPrecedence(k Kind) (Precedence, bool) {
	p, ok := infix[k]
	return p, ok
}

// PostfixPrecedence returns the level of a postfix operator.
func PostfixPrecedence(k Kind) (Precedence, bool) {
	p, ok := postfix[k]
	return p, ok
}

// PrefixPrecedence returns the level at which the operand of a prefix
// operator is parsed.
func PrefixPrecedence(k Kind) Precedence {
	switch k {
	case Bang:
		return BangPrecedence
	case PlusPlus, MinusMinus:
		return IncDec
	default:
		return Prefix
	}
}
