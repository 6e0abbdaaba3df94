package ast

import (
	"github.com/carthage-software/fennec/pkg/interner"
	"github.com/carthage-software/fennec/pkg/span"
	"github.com/carthage-software/fennec/pkg/token"
)

// LiteralType classifies a literal.
type LiteralType uint8

const (
	IntegerLiteral LiteralType = iota
	FloatLiteral
	StringLiteral
	TrueLiteral
	FalseLiteral
	NullLiteral
)

// Literal is a number, a plain string, or `true`, `false`, `null`. Raw is
// the source spelling including quotes.
type Literal struct {
	Type LiteralType
	Raw  interner.ID
	Loc  span.Span
}

func (l *Literal) Span() span.Span { return l.Loc }
func (l *Literal) Kind() NodeKind  { return KindLiteral }
func (l *Literal) node()           {}
func (l *Literal) expression()     {}

// StringType classifies a composite string.
type StringType uint8

const (
	InterpolatedString StringType = iota
	DocumentString
	ShellExecuteString
)

// CompositeString is a string with embedded expressions: a double-quoted
// string, a heredoc or nowdoc, or a backtick shell command.
type CompositeString struct {
	Type StringType
	// Start is `"`, a backtick, or `<<<LABEL` and its newline.
	Start span.Span
	Parts []StringPart
	// End is `"`, a backtick, or the indented closing label.
	End span.Span

	// Label, Nowdoc and Indentation describe a document string.
	Label       interner.ID
	Nowdoc      bool
	Indentation int
}

func (c *CompositeString) Span() span.Span { return c.Start.Join(c.End) }
func (c *CompositeString) Kind() NodeKind  { return KindCompositeString }
func (c *CompositeString) node()           {}
func (c *CompositeString) expression()     {}

// LiteralStringPart is raw text inside a composite string.
type LiteralStringPart struct {
	Value interner.ID
	Loc   span.Span
}

func (p *LiteralStringPart) Span() span.Span { return p.Loc }
func (p *LiteralStringPart) Kind() NodeKind  { return KindLiteralStringPart }
func (p *LiteralStringPart) node()           {}
func (p *LiteralStringPart) stringPart()     {}

// ExpressionStringPart is a simple interpolation such as `$a`, `$a[0]`
// or `$a->b`.
type ExpressionStringPart struct {
	Expression Expression
}

func (p *ExpressionStringPart) Span() span.Span { return p.Expression.Span() }
func (p *ExpressionStringPart) Kind() NodeKind  { return KindExpressionStringPart }
func (p *ExpressionStringPart) node()           {}
func (p *ExpressionStringPart) stringPart()     {}

// BracedExpressionStringPart is a `{$expr}` interpolation.
type BracedExpressionStringPart struct {
	LeftBrace  span.Span
	Expression Expression
	RightBrace span.Span
}

func (p *BracedExpressionStringPart) Span() span.Span { return p.LeftBrace.Join(p.RightBrace) }
func (p *BracedExpressionStringPart) Kind() NodeKind  { return KindBracedExpressionStringPart }
func (p *BracedExpressionStringPart) node()           {}
func (p *BracedExpressionStringPart) stringPart()     {}

// Parenthesized is `(expr)`.
type Parenthesized struct {
	LeftParenthesis  span.Span
	Expression       Expression
	RightParenthesis span.Span
}

func (p *Parenthesized) Span() span.Span { return p.LeftParenthesis.Join(p.RightParenthesis) }
func (p *Parenthesized) Kind() NodeKind  { return KindParenthesized }
func (p *Parenthesized) node()           {}
func (p *Parenthesized) expression()     {}

// Array is `[...]`.
type Array struct {
	LeftBracket  span.Span
	Elements     []ArrayElement
	RightBracket span.Span
}

func (a *Array) Span() span.Span { return a.LeftBracket.Join(a.RightBracket) }
func (a *Array) Kind() NodeKind  { return KindArray }
func (a *Array) node()           {}
func (a *Array) expression()     {}

// LegacyArray is `array(...)`.
type LegacyArray struct {
	Array            span.Span
	LeftParenthesis  span.Span
	Elements         []ArrayElement
	RightParenthesis span.Span
}

func (a *LegacyArray) Span() span.Span { return a.Array.Join(a.RightParenthesis) }
func (a *LegacyArray) Kind() NodeKind  { return KindLegacyArray }
func (a *LegacyArray) node()           {}
func (a *LegacyArray) expression()     {}

// List is `list(...)`.
type List struct {
	List             span.Span
	LeftParenthesis  span.Span
	Elements         []ArrayElement
	RightParenthesis span.Span
}

func (l *List) Span() span.Span { return l.List.Join(l.RightParenthesis) }
func (l *List) Kind() NodeKind  { return KindList }
func (l *List) node()           {}
func (l *List) expression()     {}

// KeyValueArrayElement is `key => value`.
type KeyValueArrayElement struct {
	Key         Expression
	DoubleArrow span.Span
	Value       Expression
}

func (e *KeyValueArrayElement) Span() span.Span { return e.Key.Span().Join(e.Value.Span()) }
func (e *KeyValueArrayElement) Kind() NodeKind  { return KindKeyValueArrayElement }
func (e *KeyValueArrayElement) node()           {}
func (e *KeyValueArrayElement) arrayElement()   {}

// ValueArrayElement is a bare value.
type ValueArrayElement struct {
	Value Expression
}

func (e *ValueArrayElement) Span() span.Span { return e.Value.Span() }
func (e *ValueArrayElement) Kind() NodeKind  { return KindValueArrayElement }
func (e *ValueArrayElement) node()           {}
func (e *ValueArrayElement) arrayElement()   {}

// VariadicArrayElement is `...value`.
type VariadicArrayElement struct {
	Ellipsis span.Span
	Value    Expression
}

func (e *VariadicArrayElement) Span() span.Span { return e.Ellipsis.Join(e.Value.Span()) }
func (e *VariadicArrayElement) Kind() NodeKind  { return KindVariadicArrayElement }
func (e *VariadicArrayElement) node()           {}
func (e *VariadicArrayElement) arrayElement()   {}

// MissingArrayElement is a skipped slot in a destructuring pattern, as
// in `[, $b]`. Its span is the position of the following comma.
type MissingArrayElement struct {
	Loc span.Span
}

func (e *MissingArrayElement) Span() span.Span { return e.Loc }
func (e *MissingArrayElement) Kind() NodeKind  { return KindMissingArrayElement }
func (e *MissingArrayElement) node()           {}
func (e *MissingArrayElement) arrayElement()   {}

// ArrayAccess is `$a[index]`.
type ArrayAccess struct {
	Array        Expression
	LeftBracket  span.Span
	Index        Expression
	RightBracket span.Span
}

func (a *ArrayAccess) Span() span.Span { return a.Array.Span().Join(a.RightBracket) }
func (a *ArrayAccess) Kind() NodeKind  { return KindArrayAccess }
func (a *ArrayAccess) node()           {}
func (a *ArrayAccess) expression()     {}

// ArrayAppend is `$a[]`, valid only as an assignment target.
type ArrayAppend struct {
	Array        Expression
	LeftBracket  span.Span
	RightBracket span.Span
}

func (a *ArrayAppend) Span() span.Span { return a.Array.Span().Join(a.RightBracket) }
func (a *ArrayAppend) Kind() NodeKind  { return KindArrayAppend }
func (a *ArrayAppend) node()           {}
func (a *ArrayAppend) expression()     {}

// DirectVariable is `$name`. Name includes the dollar sign.
type DirectVariable struct {
	Name interner.ID
	Loc  span.Span
}

func (v *DirectVariable) Span() span.Span { return v.Loc }
func (v *DirectVariable) Kind() NodeKind  { return KindDirectVariable }
func (v *DirectVariable) node()           {}
func (v *DirectVariable) expression()     {}
func (v *DirectVariable) variable()       {}
func (v *DirectVariable) selector()       {}

// IndirectVariable is `${expr}`.
type IndirectVariable struct {
	DollarLeftBrace span.Span
	Expression      Expression
	RightBrace      span.Span
}

func (v *IndirectVariable) Span() span.Span { return v.DollarLeftBrace.Join(v.RightBrace) }
func (v *IndirectVariable) Kind() NodeKind  { return KindIndirectVariable }
func (v *IndirectVariable) node()           {}
func (v *IndirectVariable) expression()     {}
func (v *IndirectVariable) variable()       {}
func (v *IndirectVariable) selector()       {}

// NestedVariable is `$$name`.
type NestedVariable struct {
	Dollar   span.Span
	Variable Variable
}

func (v *NestedVariable) Span() span.Span { return v.Dollar.Join(v.Variable.Span()) }
func (v *NestedVariable) Kind() NodeKind  { return KindNestedVariable }
func (v *NestedVariable) node()           {}
func (v *NestedVariable) expression()     {}
func (v *NestedVariable) variable()       {}
func (v *NestedVariable) selector()       {}

// BracedSelector is `{expr}` after `->` or `::`.
type BracedSelector struct {
	LeftBrace  span.Span
	Expression Expression
	RightBrace span.Span
}

func (s *BracedSelector) Span() span.Span { return s.LeftBrace.Join(s.RightBrace) }
func (s *BracedSelector) Kind() NodeKind  { return KindBracedSelector }
func (s *BracedSelector) node()           {}
func (s *BracedSelector) selector()       {}

// MagicConstant is `__LINE__`, `__CLASS__` and friends.
type MagicConstant struct {
	Token token.Kind
	Value interner.ID
	Loc   span.Span
}

func (m *MagicConstant) Span() span.Span { return m.Loc }
func (m *MagicConstant) Kind() NodeKind  { return KindMagicConstant }
func (m *MagicConstant) node()           {}
func (m *MagicConstant) expression()     {}

// Static is the `static` keyword used as an expression.
type Static struct {
	Loc span.Span
}

func (s *Static) Span() span.Span { return s.Loc }
func (s *Static) Kind() NodeKind  { return KindStatic }
func (s *Static) node()           {}
func (s *Static) expression()     {}

// Self is the `self` keyword used as an expression.
type Self struct {
	Loc span.Span
}

func (s *Self) Span() span.Span { return s.Loc }
func (s *Self) Kind() NodeKind  { return KindSelf }
func (s *Self) node()           {}
func (s *Self) expression()     {}

// Parent is the `parent` keyword used as an expression.
type Parent struct {
	Loc span.Span
}

func (p *Parent) Span() span.Span { return p.Loc }
func (p *Parent) Kind() NodeKind  { return KindParent }
func (p *Parent) node()           {}
func (p *Parent) expression()     {}

// Argument is a positional, named or unpacked call argument.
type Argument struct {
	// Name and Colon are set for `name: value`.
	Name     *Identifier
	Colon    span.Span
	Ellipsis *span.Span
	Value    Expression
}

func (a *Argument) Span() span.Span {
	s := a.Value.Span()
	if a.Name != nil {
		s = s.Join(a.Name.Span())
	}
	if a.Ellipsis != nil {
		s = s.Join(*a.Ellipsis)
	}
	return s
}

func (a *Argument) Kind() NodeKind { return KindArgument }
func (a *Argument) node()          {}

// ArgumentList is `(arg, ...)`.
type ArgumentList struct {
	LeftParenthesis  span.Span
	Arguments        []*Argument
	RightParenthesis span.Span
}

func (a *ArgumentList) Span() span.Span { return a.LeftParenthesis.Join(a.RightParenthesis) }
func (a *ArgumentList) Kind() NodeKind  { return KindArgumentList }
func (a *ArgumentList) node()           {}

// FunctionCall is `f(args)`.
type FunctionCall struct {
	Function  Expression
	Arguments *ArgumentList
}

func (c *FunctionCall) Span() span.Span { return c.Function.Span().Join(c.Arguments.Span()) }
func (c *FunctionCall) Kind() NodeKind  { return KindFunctionCall }
func (c *FunctionCall) node()           {}
func (c *FunctionCall) expression()     {}

// FunctionClosureCreation is `f(...)`.
type FunctionClosureCreation struct {
	Function         Expression
	LeftParenthesis  span.Span
	Ellipsis         span.Span
	RightParenthesis span.Span
}

func (c *FunctionClosureCreation) Span() span.Span {
	return c.Function.Span().Join(c.RightParenthesis)
}
func (c *FunctionClosureCreation) Kind() NodeKind { return KindFunctionClosureCreation }
func (c *FunctionClosureCreation) node()          {}
func (c *FunctionClosureCreation) expression()    {}

// MethodCall is `$o->m(args)`.
type MethodCall struct {
	Object    Expression
	Arrow     span.Span
	Method    Selector
	Arguments *ArgumentList
}

func (c *MethodCall) Span() span.Span { return c.Object.Span().Join(c.Arguments.Span()) }
func (c *MethodCall) Kind() NodeKind  { return KindMethodCall }
func (c *MethodCall) node()           {}
func (c *MethodCall) expression()     {}

// NullSafeMethodCall is `$o?->m(args)`.
type NullSafeMethodCall struct {
	Object        Expression
	QuestionArrow span.Span
	Method        Selector
	Arguments     *ArgumentList
}

func (c *NullSafeMethodCall) Span() span.Span { return c.Object.Span().Join(c.Arguments.Span()) }
func (c *NullSafeMethodCall) Kind() NodeKind  { return KindNullSafeMethodCall }
func (c *NullSafeMethodCall) node()           {}
func (c *NullSafeMethodCall) expression()     {}

// MethodClosureCreation is `$o->m(...)`.
type MethodClosureCreation struct {
	Object           Expression
	Arrow            span.Span
	Method           Selector
	LeftParenthesis  span.Span
	Ellipsis         span.Span
	RightParenthesis span.Span
}

func (c *MethodClosureCreation) Span() span.Span { return c.Object.Span().Join(c.RightParenthesis) }
func (c *MethodClosureCreation) Kind() NodeKind  { return KindMethodClosureCreation }
func (c *MethodClosureCreation) node()           {}
func (c *MethodClosureCreation) expression()     {}

// StaticMethodCall is `C::m(args)`.
type StaticMethodCall struct {
	Class       Expression
	DoubleColon span.Span
	Method      Selector
	Arguments   *ArgumentList
}

func (c *StaticMethodCall) Span() span.Span { return c.Class.Span().Join(c.Arguments.Span()) }
func (c *StaticMethodCall) Kind() NodeKind  { return KindStaticMethodCall }
func (c *StaticMethodCall) node()           {}
func (c *StaticMethodCall) expression()     {}

// StaticMethodClosureCreation is `C::m(...)`.
type StaticMethodClosureCreation struct {
	Class            Expression
	DoubleColon      span.Span
	Method           Selector
	LeftParenthesis  span.Span
	Ellipsis         span.Span
	RightParenthesis span.Span
}

func (c *StaticMethodClosureCreation) Span() span.Span {
	return c.Class.Span().Join(c.RightParenthesis)
}
func (c *StaticMethodClosureCreation) Kind() NodeKind { return KindStaticMethodClosureCreation }
func (c *StaticMethodClosureCreation) node()          {}
func (c *StaticMethodClosureCreation) expression()    {}

// PropertyAccess is `$o->p`.
type PropertyAccess struct {
	Object   Expression
	Arrow    span.Span
	Property Selector
}

func (a *PropertyAccess) Span() span.Span { return a.Object.Span().Join(a.Property.Span()) }
func (a *PropertyAccess) Kind() NodeKind  { return KindPropertyAccess }
func (a *PropertyAccess) node()           {}
func (a *PropertyAccess) expression()     {}

// NullSafePropertyAccess is `$o?->p`.
type NullSafePropertyAccess struct {
	Object        Expression
	QuestionArrow span.Span
	Property      Selector
}

func (a *NullSafePropertyAccess) Span() span.Span { return a.Object.Span().Join(a.Property.Span()) }
func (a *NullSafePropertyAccess) Kind() NodeKind  { return KindNullSafePropertyAccess }
func (a *NullSafePropertyAccess) node()           {}
func (a *NullSafePropertyAccess) expression()     {}

// StaticPropertyAccess is `C::$p`.
type StaticPropertyAccess struct {
	Class       Expression
	DoubleColon span.Span
	Property    Variable
}

func (a *StaticPropertyAccess) Span() span.Span { return a.Class.Span().Join(a.Property.Span()) }
func (a *StaticPropertyAccess) Kind() NodeKind  { return KindStaticPropertyAccess }
func (a *StaticPropertyAccess) node()           {}
func (a *StaticPropertyAccess) expression()     {}

// ClassConstantAccess is `C::NAME`, `C::class` or `C::{expr}`.
type ClassConstantAccess struct {
	Class       Expression
	DoubleColon span.Span
	Constant    Selector
}

func (a *ClassConstantAccess) Span() span.Span { return a.Class.Span().Join(a.Constant.Span()) }
func (a *ClassConstantAccess) Kind() NodeKind  { return KindClassConstantAccess }
func (a *ClassConstantAccess) node()           {}
func (a *ClassConstantAccess) expression()     {}

// Instantiation is `new C(args)`. Arguments is nil for `new C`.
type Instantiation struct {
	New       span.Span
	Class     Expression
	Arguments *ArgumentList
}

func (i *Instantiation) Span() span.Span {
	if i.Arguments != nil {
		return i.New.Join(i.Arguments.Span())
	}
	return i.New.Join(i.Class.Span())
}
func (i *Instantiation) Kind() NodeKind { return KindInstantiation }
func (i *Instantiation) node()          {}
func (i *Instantiation) expression()    {}

// AnonymousClass is `new class(args) extends B implements I { ... }`.
type AnonymousClass struct {
	New        span.Span
	Attributes []*AttributeList
	Modifiers  []Modifier
	Class      span.Span
	Arguments  *ArgumentList
	Extends    *Extends
	Implements *Implements
	Body       *ClassLikeBody
}

func (c *AnonymousClass) Span() span.Span { return c.New.Join(c.Body.Span()) }
func (c *AnonymousClass) Kind() NodeKind  { return KindAnonymousClass }
func (c *AnonymousClass) node()           {}
func (c *AnonymousClass) expression()     {}

// Closure is `function (params) use (vars): T { body }`.
type Closure struct {
	Attributes []*AttributeList
	Static     *span.Span
	Function   span.Span
	Ampersand  *span.Span
	Parameters *ParameterList
	Use        *ClosureUseClause
	ReturnType *FunctionLikeReturnTypeHint
	Body       *Block
}

func (c *Closure) Span() span.Span {
	start := c.Function
	if c.Static != nil {
		start = *c.Static
	}
	if len(c.Attributes) > 0 {
		start = c.Attributes[0].Span()
	}
	return start.Join(c.Body.Span())
}
func (c *Closure) Kind() NodeKind { return KindClosure }
func (c *Closure) node()          {}
func (c *Closure) expression()    {}

// ClosureUseVariable is a captured variable, optionally by reference.
type ClosureUseVariable struct {
	Ampersand *span.Span
	Variable  *DirectVariable
}

func (v *ClosureUseVariable) Span() span.Span {
	if v.Ampersand != nil {
		return v.Ampersand.Join(v.Variable.Span())
	}
	return v.Variable.Span()
}
func (v *ClosureUseVariable) Kind() NodeKind { return KindClosureUseVariable }
func (v *ClosureUseVariable) node()          {}

// ClosureUseClause is `use ($a, &$b)`.
type ClosureUseClause struct {
	Use              span.Span
	LeftParenthesis  span.Span
	Variables        []*ClosureUseVariable
	RightParenthesis span.Span
}

func (c *ClosureUseClause) Span() span.Span { return c.Use.Join(c.RightParenthesis) }
func (c *ClosureUseClause) Kind() NodeKind  { return KindClosureUseClause }
func (c *ClosureUseClause) node()           {}

// ArrowFunction is `fn (params): T => expr`.
type ArrowFunction struct {
	Attributes  []*AttributeList
	Static      *span.Span
	Fn          span.Span
	Ampersand   *span.Span
	Parameters  *ParameterList
	ReturnType  *FunctionLikeReturnTypeHint
	DoubleArrow span.Span
	Expression  Expression
}

func (f *ArrowFunction) Span() span.Span {
	start := f.Fn
	if f.Static != nil {
		start = *f.Static
	}
	if len(f.Attributes) > 0 {
		start = f.Attributes[0].Span()
	}
	return start.Join(f.Expression.Span())
}
func (f *ArrowFunction) Kind() NodeKind { return KindArrowFunction }
func (f *ArrowFunction) node()          {}
func (f *ArrowFunction) expression()    {}

// Match is `match (subject) { arms }`.
type Match struct {
	Match            span.Span
	LeftParenthesis  span.Span
	Subject          Expression
	RightParenthesis span.Span
	LeftBrace        span.Span
	Arms             []MatchArm
	RightBrace       span.Span
}

func (m *Match) Span() span.Span { return m.Match.Join(m.RightBrace) }
func (m *Match) Kind() NodeKind  { return KindMatch }
func (m *Match) node()           {}
func (m *Match) expression()     {}

// MatchExpressionArm is `cond, cond => expr`.
type MatchExpressionArm struct {
	Conditions  []Expression
	DoubleArrow span.Span
	Expression  Expression
}

func (a *MatchExpressionArm) Span() span.Span {
	return a.Conditions[0].Span().Join(a.Expression.Span())
}
func (a *MatchExpressionArm) Kind() NodeKind { return KindMatchExpressionArm }
func (a *MatchExpressionArm) node()          {}
func (a *MatchExpressionArm) matchArm()      {}

// MatchDefaultArm is `default => expr`.
type MatchDefaultArm struct {
	Default     span.Span
	DoubleArrow span.Span
	Expression  Expression
}

func (a *MatchDefaultArm) Span() span.Span { return a.Default.Join(a.Expression.Span()) }
func (a *MatchDefaultArm) Kind() NodeKind  { return KindMatchDefaultArm }
func (a *MatchDefaultArm) node()           {}
func (a *MatchDefaultArm) matchArm()       {}

// YieldType classifies a yield expression.
type YieldType uint8

const (
	YieldValue YieldType = iota
	YieldPair
	YieldFrom
)

// Yield is `yield`, `yield v`, `yield k => v` or `yield from it`.
type Yield struct {
	Type  YieldType
	Yield span.Span
	// From is set for `yield from`.
	From span.Span
	Key  Expression
	// DoubleArrow is set for a pair.
	DoubleArrow span.Span
	// Value is nil for a bare `yield`.
	Value Expression
}

func (y *Yield) Span() span.Span {
	if y.Value != nil {
		return y.Yield.Join(y.Value.Span())
	}
	return y.Yield
}
func (y *Yield) Kind() NodeKind { return KindYield }
func (y *Yield) node()          {}
func (y *Yield) expression()    {}

// Construct is a language construct used as an expression. Isset,
// empty, eval, exit and die take an argument list (optional for exit
// and die); include, require and print take a single value.
type Construct struct {
	Keyword   Keyword
	Arguments *ArgumentList
	Value     Expression
}

func (c *Construct) Span() span.Span {
	switch {
	case c.Arguments != nil:
		return c.Keyword.Loc.Join(c.Arguments.Span())
	case c.Value != nil:
		return c.Keyword.Loc.Join(c.Value.Span())
	}
	return c.Keyword.Loc
}
func (c *Construct) Kind() NodeKind { return KindConstruct }
func (c *Construct) node()          {}
func (c *Construct) expression()    {}

// Throw is `throw expr`.
type Throw struct {
	Throw     span.Span
	Exception Expression
}

func (t *Throw) Span() span.Span { return t.Throw.Join(t.Exception.Span()) }
func (t *Throw) Kind() NodeKind  { return KindThrow }
func (t *Throw) node()           {}
func (t *Throw) expression()     {}

// Clone is `clone expr`.
type Clone struct {
	Clone  span.Span
	Object Expression
}

func (c *Clone) Span() span.Span { return c.Clone.Join(c.Object.Span()) }
func (c *Clone) Kind() NodeKind  { return KindClone }
func (c *Clone) node()           {}
func (c *Clone) expression()     {}
