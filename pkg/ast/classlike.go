package ast

import (
	"github.com/carthage-software/fennec/pkg/span"
)

// Extends is `extends A, B`.
type Extends struct {
	Extends span.Span
	Types   []*Identifier
}

func (e *Extends) Span() span.Span { return e.Extends.Join(e.Types[len(e.Types)-1].Span()) }
func (e *Extends) Kind() NodeKind  { return KindExtends }
func (e *Extends) node()           {}

// Implements is `implements A, B`.
type Implements struct {
	Implements span.Span
	Types      []*Identifier
}

func (i *Implements) Span() span.Span { return i.Implements.Join(i.Types[len(i.Types)-1].Span()) }
func (i *Implements) Kind() NodeKind  { return KindImplements }
func (i *Implements) node()           {}

// ClassLikeBody is the `{ members }` of a class-like.
type ClassLikeBody struct {
	LeftBrace  span.Span
	Members    []ClassLikeMember
	RightBrace span.Span
}

func (b *ClassLikeBody) Span() span.Span { return b.LeftBrace.Join(b.RightBrace) }
func (b *ClassLikeBody) Kind() NodeKind  { return KindClassLikeBody }
func (b *ClassLikeBody) node()           {}

// Class is a class declaration.
type Class struct {
	Attributes []*AttributeList
	Modifiers  []Modifier
	Class      span.Span
	Name       *Identifier
	Extends    *Extends
	Implements *Implements
	Body       *ClassLikeBody
}

func (c *Class) Span() span.Span {
	return startOf(c.Attributes, c.Modifiers, c.Class).Join(c.Body.Span())
}
func (c *Class) Kind() NodeKind { return KindClass }
func (c *Class) node()          {}
func (c *Class) statement()     {}

// Interface is an interface declaration.
type Interface struct {
	Attributes []*AttributeList
	Interface  span.Span
	Name       *Identifier
	Extends    *Extends
	Body       *ClassLikeBody
}

func (i *Interface) Span() span.Span {
	return startOf(i.Attributes, nil, i.Interface).Join(i.Body.Span())
}
func (i *Interface) Kind() NodeKind { return KindInterface }
func (i *Interface) node()          {}
func (i *Interface) statement()     {}

// Trait is a trait declaration.
type Trait struct {
	Attributes []*AttributeList
	Trait      span.Span
	Name       *Identifier
	Body       *ClassLikeBody
}

func (t *Trait) Span() span.Span {
	return startOf(t.Attributes, nil, t.Trait).Join(t.Body.Span())
}
func (t *Trait) Kind() NodeKind { return KindTrait }
func (t *Trait) node()          {}
func (t *Trait) statement()     {}

// EnumBackingType is `: string` on an enum.
type EnumBackingType struct {
	Colon span.Span
	Hint  Hint
}

func (e *EnumBackingType) Span() span.Span { return e.Colon.Join(e.Hint.Span()) }
func (e *EnumBackingType) Kind() NodeKind  { return KindEnumBackingType }
func (e *EnumBackingType) node()           {}

// Enum is an enum declaration.
type Enum struct {
	Attributes  []*AttributeList
	Enum        span.Span
	Name        *Identifier
	BackingType *EnumBackingType
	Implements  *Implements
	Body        *ClassLikeBody
}

func (e *Enum) Span() span.Span {
	return startOf(e.Attributes, nil, e.Enum).Join(e.Body.Span())
}
func (e *Enum) Kind() NodeKind { return KindEnum }
func (e *Enum) node()          {}
func (e *Enum) statement()     {}

// TraitUseAdaptation is an entry of a trait use block: either
// `A::m insteadof B;` or `m as protected alias;`.
type TraitUseAdaptation struct {
	// Trait and DoubleColon are set for an absolute method reference.
	Trait       *Identifier
	DoubleColon span.Span
	Method      *Identifier

	// Insteadof and Excluded are set for a precedence adaptation.
	Insteadof span.Span
	Excluded  []*Identifier

	// As, Visibility and Alias are set for an alias adaptation.
	As         span.Span
	Visibility *Modifier
	Alias      *Identifier

	Terminator *Terminator
}

func (a *TraitUseAdaptation) Span() span.Span {
	start := a.Method.Span()
	if a.Trait != nil {
		start = a.Trait.Span()
	}
	return start.Join(a.Terminator.Span())
}
func (a *TraitUseAdaptation) Kind() NodeKind { return KindTraitUseAdaptation }
func (a *TraitUseAdaptation) node()          {}

// IsPrecedence reports whether the adaptation uses `insteadof`.
func (a *TraitUseAdaptation) IsPrecedence() bool { return len(a.Excluded) > 0 }

// TraitUse is `use A, B;` or `use A, B { adaptations }` inside a
// class-like.
type TraitUse struct {
	Use         span.Span
	Traits      []*Identifier
	Terminator  *Terminator
	LeftBrace   span.Span
	Adaptations []*TraitUseAdaptation
	RightBrace  span.Span
}

func (t *TraitUse) Span() span.Span {
	if t.Terminator != nil {
		return t.Use.Join(t.Terminator.Span())
	}
	return t.Use.Join(t.RightBrace)
}
func (t *TraitUse) Kind() NodeKind { return KindTraitUse }
func (t *TraitUse) node()          {}
func (t *TraitUse) member()        {}

// ClassLikeConstant is `public const int A = 1, B = 2;`.
type ClassLikeConstant struct {
	Attributes []*AttributeList
	Modifiers  []Modifier
	Const      span.Span
	Hint       Hint
	Items      []*ConstantItem
	Terminator *Terminator
}

func (c *ClassLikeConstant) Span() span.Span {
	return startOf(c.Attributes, c.Modifiers, c.Const).Join(c.Terminator.Span())
}
func (c *ClassLikeConstant) Kind() NodeKind { return KindClassLikeConstant }
func (c *ClassLikeConstant) node()          {}
func (c *ClassLikeConstant) member()        {}

// PropertyItem is `$name` or `$name = value`.
type PropertyItem struct {
	Variable *DirectVariable
	Equal    span.Span
	Value    Expression
}

func (p *PropertyItem) Span() span.Span {
	if p.Value != nil {
		return p.Variable.Span().Join(p.Value.Span())
	}
	return p.Variable.Span()
}
func (p *PropertyItem) Kind() NodeKind { return KindPropertyItem }
func (p *PropertyItem) node()          {}

// PropertyHook is `get { }`, `set($v) => expr;` or an abstract `get;`.
type PropertyHook struct {
	Attributes []*AttributeList
	Modifiers  []Modifier
	Ampersand  *span.Span
	Name       *Identifier
	Parameters *ParameterList

	// Exactly one body form is set: Semicolon (abstract), Block, or
	// DoubleArrow with Expression and Terminator.
	Semicolon   *span.Span
	Block       *Block
	DoubleArrow span.Span
	Expression  Expression
	Terminator  *Terminator
}

func (h *PropertyHook) Span() span.Span {
	start := startOf(h.Attributes, h.Modifiers, h.Name.Span())
	if h.Ampersand != nil && len(h.Attributes) == 0 && len(h.Modifiers) == 0 {
		start = *h.Ampersand
	}
	switch {
	case h.Semicolon != nil:
		return start.Join(*h.Semicolon)
	case h.Block != nil:
		return start.Join(h.Block.Span())
	}
	return start.Join(h.Terminator.Span())
}
func (h *PropertyHook) Kind() NodeKind { return KindPropertyHook }
func (h *PropertyHook) node()          {}

// PropertyHookList is `{ hooks }` after a property or promoted parameter.
type PropertyHookList struct {
	LeftBrace  span.Span
	Hooks      []*PropertyHook
	RightBrace span.Span
}

func (l *PropertyHookList) Span() span.Span { return l.LeftBrace.Join(l.RightBrace) }
func (l *PropertyHookList) Kind() NodeKind  { return KindPropertyHookList }
func (l *PropertyHookList) node()           {}

// Property is a property declaration. A hooked property has exactly one
// item and a hook list instead of a terminator.
type Property struct {
	Attributes []*AttributeList
	Modifiers  []Modifier
	// Var is set for the legacy `var $x;` form.
	Var        *span.Span
	Hint       Hint
	Items      []*PropertyItem
	Hooks      *PropertyHookList
	Terminator *Terminator
}

func (p *Property) Span() span.Span {
	start := startOf(p.Attributes, p.Modifiers, span.Span{})
	if len(p.Attributes) == 0 && len(p.Modifiers) == 0 {
		switch {
		case p.Var != nil:
			start = *p.Var
		case p.Hint != nil:
			start = p.Hint.Span()
		default:
			start = p.Items[0].Span()
		}
	}
	if p.Hooks != nil {
		return start.Join(p.Hooks.Span())
	}
	return start.Join(p.Terminator.Span())
}
func (p *Property) Kind() NodeKind { return KindProperty }
func (p *Property) node()          {}
func (p *Property) member()        {}

// EnumCase is `case Name;` or `case Name = value;`.
type EnumCase struct {
	Attributes []*AttributeList
	Case       span.Span
	Name       *Identifier
	Equal      span.Span
	Value      Expression
	Terminator *Terminator
}

func (e *EnumCase) Span() span.Span {
	return startOf(e.Attributes, nil, e.Case).Join(e.Terminator.Span())
}
func (e *EnumCase) Kind() NodeKind { return KindEnumCase }
func (e *EnumCase) node()          {}
func (e *EnumCase) member()        {}

// Method is a method declaration. Body is nil for an abstract method,
// which ends with Semicolon instead.
type Method struct {
	Attributes []*AttributeList
	Modifiers  []Modifier
	Function   span.Span
	Ampersand  *span.Span
	Name       *Identifier
	Parameters *ParameterList
	ReturnType *FunctionLikeReturnTypeHint
	Body       *Block
	Semicolon  span.Span
}

func (m *Method) Span() span.Span {
	start := startOf(m.Attributes, m.Modifiers, m.Function)
	if m.Body != nil {
		return start.Join(m.Body.Span())
	}
	return start.Join(m.Semicolon)
}
func (m *Method) Kind() NodeKind { return KindMethod }
func (m *Method) node()          {}
func (m *Method) member()        {}

// IsAbstract reports whether the method has no body.
func (m *Method) IsAbstract() bool { return m.Body == nil }

// Parameter is a function-like parameter. Modifiers make it a promoted
// constructor property.
type Parameter struct {
	Attributes []*AttributeList
	Modifiers  []Modifier
	Hint       Hint
	Ampersand  *span.Span
	Ellipsis   *span.Span
	Variable   *DirectVariable
	Equal      span.Span
	Default    Expression
	Hooks      *PropertyHookList
}

func (p *Parameter) Span() span.Span {
	start := startOf(p.Attributes, p.Modifiers, p.Variable.Span())
	if len(p.Attributes) == 0 && len(p.Modifiers) == 0 {
		switch {
		case p.Hint != nil:
			start = p.Hint.Span()
		case p.Ampersand != nil:
			start = *p.Ampersand
		case p.Ellipsis != nil:
			start = *p.Ellipsis
		}
	}
	end := p.Variable.Span()
	switch {
	case p.Hooks != nil:
		end = p.Hooks.Span()
	case p.Default != nil:
		end = p.Default.Span()
	}
	return start.Join(end)
}
func (p *Parameter) Kind() NodeKind { return KindParameter }
func (p *Parameter) node()          {}

// IsPromoted reports whether the parameter declares a property.
func (p *Parameter) IsPromoted() bool { return len(p.Modifiers) > 0 }

// ParameterList is `(params)`.
type ParameterList struct {
	LeftParenthesis  span.Span
	Parameters       []*Parameter
	RightParenthesis span.Span
}

func (l *ParameterList) Span() span.Span { return l.LeftParenthesis.Join(l.RightParenthesis) }
func (l *ParameterList) Kind() NodeKind  { return KindParameterList }
func (l *ParameterList) node()           {}

// FunctionLikeReturnTypeHint is `: T`.
type FunctionLikeReturnTypeHint struct {
	Colon span.Span
	Hint  Hint
}

func (r *FunctionLikeReturnTypeHint) Span() span.Span { return r.Colon.Join(r.Hint.Span()) }
func (r *FunctionLikeReturnTypeHint) Kind() NodeKind  { return KindFunctionLikeReturnTypeHint }
func (r *FunctionLikeReturnTypeHint) node()           {}
