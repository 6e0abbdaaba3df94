package ast

import (
	"github.com/carthage-software/fennec/pkg/interner"
	"github.com/carthage-software/fennec/pkg/span"
	"github.com/carthage-software/fennec/pkg/token"
)

// OpeningTag is `<?php`, `<?` or (inside EchoTag) `<?=`.
type OpeningTag struct {
	Tag token.Kind
	Loc span.Span
}

func (t *OpeningTag) Span() span.Span { return t.Loc }
func (t *OpeningTag) Kind() NodeKind  { return KindOpeningTag }
func (t *OpeningTag) node()           {}
func (t *OpeningTag) statement()      {}

// ClosingTag is a `?>` that is not a statement terminator.
type ClosingTag struct {
	Loc span.Span
}

func (t *ClosingTag) Span() span.Span { return t.Loc }
func (t *ClosingTag) Kind() NodeKind  { return KindClosingTag }
func (t *ClosingTag) node()           {}
func (t *ClosingTag) statement()      {}

// Inline is text outside PHP tags, or a shebang line.
type Inline struct {
	Shebang bool
	Value   interner.ID
	Loc     span.Span
}

func (i *Inline) Span() span.Span { return i.Loc }
func (i *Inline) Kind() NodeKind  { return KindInline }
func (i *Inline) node()           {}
func (i *Inline) statement()      {}

// EchoTag is `<?= values ?>`.
type EchoTag struct {
	Tag        span.Span
	Values     []Expression
	Terminator *Terminator
}

func (e *EchoTag) Span() span.Span { return e.Tag.Join(e.Terminator.Span()) }
func (e *EchoTag) Kind() NodeKind  { return KindEchoTag }
func (e *EchoTag) node()           {}
func (e *EchoTag) statement()      {}

// Namespace is `namespace Name;` followed by statements, or
// `namespace Name { ... }`. Name is nil for the global braced form.
type Namespace struct {
	Namespace span.Span
	Name      *Identifier
	// Terminator and Statements are set for the implicit form.
	Terminator *Terminator
	Statements []Statement
	// Block is set for the braced form.
	Block *Block
}

func (n *Namespace) Span() span.Span {
	if n.Block != nil {
		return n.Namespace.Join(n.Block.Span())
	}
	s := n.Namespace.Join(n.Terminator.Span())
	if len(n.Statements) > 0 {
		s = s.Join(n.Statements[len(n.Statements)-1].Span())
	}
	return s
}
func (n *Namespace) Kind() NodeKind { return KindNamespace }
func (n *Namespace) node()          {}
func (n *Namespace) statement()     {}

// UseType is the `function` or `const` qualifier of a use declaration.
type UseType struct {
	Kind token.Kind
	Loc  span.Span
}

// UseItem is one imported name with an optional alias.
type UseItem struct {
	// Type is set for a `function`/`const` item in a mixed group.
	Type  *UseType
	Name  *Identifier
	As    span.Span
	Alias *Identifier
}

func (u *UseItem) Span() span.Span {
	s := u.Name.Span()
	if u.Type != nil {
		s = s.Join(u.Type.Loc)
	}
	if u.Alias != nil {
		s = s.Join(u.Alias.Span())
	}
	return s
}
func (u *UseItem) Kind() NodeKind { return KindUseItem }
func (u *UseItem) node()          {}

// Use is `use A, B as C;`, `use function f;` or `use A\{B, C};`.
type Use struct {
	Use  span.Span
	Type *UseType
	// Prefix is set for a grouped declaration.
	Prefix             *Identifier
	NamespaceSeparator span.Span
	LeftBrace          span.Span
	Items              []*UseItem
	RightBrace         span.Span
	Terminator         *Terminator
}

func (u *Use) Span() span.Span { return u.Use.Join(u.Terminator.Span()) }
func (u *Use) Kind() NodeKind  { return KindUse }
func (u *Use) node()           {}
func (u *Use) statement()      {}

// IsGrouped reports whether the declaration uses `Prefix\{...}`.
func (u *Use) IsGrouped() bool { return u.Prefix != nil }

// ConstantItem is `NAME = value`.
type ConstantItem struct {
	Name  *Identifier
	Equal span.Span
	Value Expression
}

func (c *ConstantItem) Span() span.Span { return c.Name.Span().Join(c.Value.Span()) }
func (c *ConstantItem) Kind() NodeKind  { return KindConstantItem }
func (c *ConstantItem) node()           {}

// Constant is a top-level `const A = 1, B = 2;`.
type Constant struct {
	Attributes []*AttributeList
	Const      span.Span
	Items      []*ConstantItem
	Terminator *Terminator
}

func (c *Constant) Span() span.Span {
	return startOf(c.Attributes, nil, c.Const).Join(c.Terminator.Span())
}
func (c *Constant) Kind() NodeKind { return KindConstant }
func (c *Constant) node()          {}
func (c *Constant) statement()     {}

// Function is a named function declaration.
type Function struct {
	Attributes []*AttributeList
	Function   span.Span
	Ampersand  *span.Span
	Name       *Identifier
	Parameters *ParameterList
	ReturnType *FunctionLikeReturnTypeHint
	Body       *Block
}

func (f *Function) Span() span.Span {
	return startOf(f.Attributes, nil, f.Function).Join(f.Body.Span())
}
func (f *Function) Kind() NodeKind { return KindFunction }
func (f *Function) node()          {}
func (f *Function) statement()     {}

// DeclareItem is `name=value` inside declare.
type DeclareItem struct {
	Name  *Identifier
	Equal span.Span
	Value Expression
}

func (d *DeclareItem) Span() span.Span { return d.Name.Span().Join(d.Value.Span()) }
func (d *DeclareItem) Kind() NodeKind  { return KindDeclareItem }
func (d *DeclareItem) node()           {}

// Declare is `declare(strict_types=1);` or `declare(ticks=1) { ... }`.
type Declare struct {
	Declare          span.Span
	LeftParenthesis  span.Span
	Items            []*DeclareItem
	RightParenthesis span.Span
	// Exactly one of Terminator and Body is set.
	Terminator *Terminator
	Body       Statement
}

func (d *Declare) Span() span.Span {
	if d.Body != nil {
		return d.Declare.Join(d.Body.Span())
	}
	return d.Declare.Join(d.Terminator.Span())
}
func (d *Declare) Kind() NodeKind { return KindDeclare }
func (d *Declare) node()          {}
func (d *Declare) statement()     {}

// Goto is `goto label;`.
type Goto struct {
	Goto       span.Span
	Label      *Identifier
	Terminator *Terminator
}

func (g *Goto) Span() span.Span { return g.Goto.Join(g.Terminator.Span()) }
func (g *Goto) Kind() NodeKind  { return KindGoto }
func (g *Goto) node()           {}
func (g *Goto) statement()      {}

// Label is `name:`.
type Label struct {
	Name  *Identifier
	Colon span.Span
}

func (l *Label) Span() span.Span { return l.Name.Span().Join(l.Colon) }
func (l *Label) Kind() NodeKind  { return KindLabel }
func (l *Label) node()           {}
func (l *Label) statement()      {}

// Block is `{ statements }`.
type Block struct {
	LeftBrace  span.Span
	Statements []Statement
	RightBrace span.Span
}

func (b *Block) Span() span.Span { return b.LeftBrace.Join(b.RightBrace) }
func (b *Block) Kind() NodeKind  { return KindBlock }
func (b *Block) node()           {}
func (b *Block) statement()      {}

// ColonBody is the `: statements` body of the alternative syntax of a
// control structure. The body that ends the structure also holds the
// closing keyword (`endif`, `endwhile`, ...) and its terminator; a body
// followed by another clause leaves both unset.
type ColonBody struct {
	Colon      span.Span
	Statements []Statement
	End        span.Span
	Terminator *Terminator
}

func (b *ColonBody) Span() span.Span {
	switch {
	case b.Terminator != nil:
		return b.Colon.Join(b.Terminator.Span())
	case len(b.Statements) > 0:
		return b.Colon.Join(b.Statements[len(b.Statements)-1].Span())
	}
	return b.Colon
}
func (b *ColonBody) Kind() NodeKind { return KindColonBody }
func (b *ColonBody) node()          {}
func (b *ColonBody) statement()     {}

// Closes reports whether the body ends its structure.
func (b *ColonBody) Closes() bool { return b.Terminator != nil }

// TryCatchClause is `catch (A|B $e) { ... }`. Variable is nil when the
// exception is not bound.
type TryCatchClause struct {
	Catch            span.Span
	LeftParenthesis  span.Span
	Hint             Hint
	Variable         *DirectVariable
	RightParenthesis span.Span
	Block            *Block
}

func (c *TryCatchClause) Span() span.Span { return c.Catch.Join(c.Block.Span()) }
func (c *TryCatchClause) Kind() NodeKind  { return KindTryCatchClause }
func (c *TryCatchClause) node()           {}

// TryFinallyClause is `finally { ... }`.
type TryFinallyClause struct {
	Finally span.Span
	Block   *Block
}

func (c *TryFinallyClause) Span() span.Span { return c.Finally.Join(c.Block.Span()) }
func (c *TryFinallyClause) Kind() NodeKind  { return KindTryFinallyClause }
func (c *TryFinallyClause) node()           {}

// Try is `try { } catch () { } finally { }`.
type Try struct {
	Try     span.Span
	Block   *Block
	Catches []*TryCatchClause
	Finally *TryFinallyClause
}

func (t *Try) Span() span.Span {
	switch {
	case t.Finally != nil:
		return t.Try.Join(t.Finally.Span())
	case len(t.Catches) > 0:
		return t.Try.Join(t.Catches[len(t.Catches)-1].Span())
	}
	return t.Try.Join(t.Block.Span())
}
func (t *Try) Kind() NodeKind { return KindTry }
func (t *Try) node()          {}
func (t *Try) statement()     {}

// Foreach is `foreach ($it as $k => $v) body`. Key is nil without `=>`.
type Foreach struct {
	Foreach          span.Span
	LeftParenthesis  span.Span
	Expression       Expression
	As               span.Span
	Key              Expression
	DoubleArrow      span.Span
	Value            Expression
	RightParenthesis span.Span
	Body             Statement
}

func (f *Foreach) Span() span.Span { return f.Foreach.Join(f.Body.Span()) }
func (f *Foreach) Kind() NodeKind  { return KindForeach }
func (f *Foreach) node()           {}
func (f *Foreach) statement()      {}

// For is `for (init; cond; incr) body`.
type For struct {
	For              span.Span
	LeftParenthesis  span.Span
	Initializations  []Expression
	Conditions       []Expression
	Increments       []Expression
	RightParenthesis span.Span
	Body             Statement
}

func (f *For) Span() span.Span { return f.For.Join(f.Body.Span()) }
func (f *For) Kind() NodeKind  { return KindFor }
func (f *For) node()           {}
func (f *For) statement()      {}

// While is `while (cond) body`.
type While struct {
	While            span.Span
	LeftParenthesis  span.Span
	Condition        Expression
	RightParenthesis span.Span
	Body             Statement
}

func (w *While) Span() span.Span { return w.While.Join(w.Body.Span()) }
func (w *While) Kind() NodeKind  { return KindWhile }
func (w *While) node()           {}
func (w *While) statement()      {}

// DoWhile is `do body while (cond);`.
type DoWhile struct {
	Do               span.Span
	Body             Statement
	While            span.Span
	LeftParenthesis  span.Span
	Condition        Expression
	RightParenthesis span.Span
	Terminator       *Terminator
}

func (d *DoWhile) Span() span.Span { return d.Do.Join(d.Terminator.Span()) }
func (d *DoWhile) Kind() NodeKind  { return KindDoWhile }
func (d *DoWhile) node()           {}
func (d *DoWhile) statement()      {}

// Continue is `continue;` or `continue 2;`.
type Continue struct {
	Continue   span.Span
	Level      Expression
	Terminator *Terminator
}

func (c *Continue) Span() span.Span { return c.Continue.Join(c.Terminator.Span()) }
func (c *Continue) Kind() NodeKind  { return KindContinue }
func (c *Continue) node()           {}
func (c *Continue) statement()      {}

// Break is `break;` or `break 2;`.
type Break struct {
	Break      span.Span
	Level      Expression
	Terminator *Terminator
}

func (b *Break) Span() span.Span { return b.Break.Join(b.Terminator.Span()) }
func (b *Break) Kind() NodeKind  { return KindBreak }
func (b *Break) node()           {}
func (b *Break) statement()      {}

// SwitchCase is `case expr:` or `default:` followed by statements.
// Expression is nil for default.
type SwitchCase struct {
	Keyword    span.Span
	Expression Expression
	// Separator is `:` or `;`.
	Separator  span.Span
	Statements []Statement
}

func (c *SwitchCase) Span() span.Span {
	s := c.Keyword.Join(c.Separator)
	if len(c.Statements) > 0 {
		s = s.Join(c.Statements[len(c.Statements)-1].Span())
	}
	return s
}
func (c *SwitchCase) Kind() NodeKind { return KindSwitchCase }
func (c *SwitchCase) node()          {}

// IsDefault reports whether the case is `default:`.
func (c *SwitchCase) IsDefault() bool { return c.Expression == nil }

// Switch is `switch (expr) { cases }`. In the alternative form
// `switch (expr): cases endswitch;` LeftBrace is the colon, RightBrace
// the `endswitch` keyword, and Terminator is set.
type Switch struct {
	Switch           span.Span
	LeftParenthesis  span.Span
	Expression       Expression
	RightParenthesis span.Span
	LeftBrace        span.Span
	Cases            []*SwitchCase
	RightBrace       span.Span
	Terminator       *Terminator
}

func (s *Switch) Span() span.Span {
	if s.Terminator != nil {
		return s.Switch.Join(s.Terminator.Span())
	}
	return s.Switch.Join(s.RightBrace)
}

// IsAlternative reports whether the switch uses the `:` form.
func (s *Switch) IsAlternative() bool { return s.Terminator != nil }
func (s *Switch) Kind() NodeKind  { return KindSwitch }
func (s *Switch) node()           {}
func (s *Switch) statement()      {}

// IfElseIf is an `elseif (cond) body` clause.
type IfElseIf struct {
	ElseIf           span.Span
	LeftParenthesis  span.Span
	Condition        Expression
	RightParenthesis span.Span
	Body             Statement
}

func (c *IfElseIf) Span() span.Span { return c.ElseIf.Join(c.Body.Span()) }
func (c *IfElseIf) Kind() NodeKind  { return KindIfElseIf }
func (c *IfElseIf) node()           {}

// IfElse is an `else body` clause.
type IfElse struct {
	Else span.Span
	Body Statement
}

func (c *IfElse) Span() span.Span { return c.Else.Join(c.Body.Span()) }
func (c *IfElse) Kind() NodeKind  { return KindIfElse }
func (c *IfElse) node()           {}

// If is `if (cond) body` with optional elseif and else clauses.
type If struct {
	If               span.Span
	LeftParenthesis  span.Span
	Condition        Expression
	RightParenthesis span.Span
	Body             Statement
	ElseIfs          []*IfElseIf
	Else             *IfElse
}

func (i *If) Span() span.Span {
	switch {
	case i.Else != nil:
		return i.If.Join(i.Else.Span())
	case len(i.ElseIfs) > 0:
		return i.If.Join(i.ElseIfs[len(i.ElseIfs)-1].Span())
	}
	return i.If.Join(i.Body.Span())
}
func (i *If) Kind() NodeKind { return KindIf }
func (i *If) node()          {}
func (i *If) statement()     {}

// Return is `return;` or `return expr;`.
type Return struct {
	Return     span.Span
	Value      Expression
	Terminator *Terminator
}

func (r *Return) Span() span.Span { return r.Return.Join(r.Terminator.Span()) }
func (r *Return) Kind() NodeKind  { return KindReturn }
func (r *Return) node()           {}
func (r *Return) statement()      {}

// ExpressionStatement is `expr;`.
type ExpressionStatement struct {
	Expression Expression
	Terminator *Terminator
}

func (e *ExpressionStatement) Span() span.Span {
	return e.Expression.Span().Join(e.Terminator.Span())
}
func (e *ExpressionStatement) Kind() NodeKind { return KindExpressionStatement }
func (e *ExpressionStatement) node()          {}
func (e *ExpressionStatement) statement()     {}

// Echo is `echo a, b;`.
type Echo struct {
	Echo       span.Span
	Values     []Expression
	Terminator *Terminator
}

func (e *Echo) Span() span.Span { return e.Echo.Join(e.Terminator.Span()) }
func (e *Echo) Kind() NodeKind  { return KindEcho }
func (e *Echo) node()           {}
func (e *Echo) statement()      {}

// Global is `global $a, $b;`.
type Global struct {
	Global     span.Span
	Variables  []Variable
	Terminator *Terminator
}

func (g *Global) Span() span.Span { return g.Global.Join(g.Terminator.Span()) }
func (g *Global) Kind() NodeKind  { return KindGlobal }
func (g *Global) node()           {}
func (g *Global) statement()      {}

// StaticItem is `$a` or `$a = value` in a static declaration.
type StaticItem struct {
	Variable *DirectVariable
	Equal    span.Span
	Value    Expression
}

func (s *StaticItem) Span() span.Span {
	if s.Value != nil {
		return s.Variable.Span().Join(s.Value.Span())
	}
	return s.Variable.Span()
}
func (s *StaticItem) Kind() NodeKind { return KindStaticItem }
func (s *StaticItem) node()          {}

// StaticVariables is `static $a = 1, $b;`.
type StaticVariables struct {
	Static     span.Span
	Items      []*StaticItem
	Terminator *Terminator
}

func (s *StaticVariables) Span() span.Span { return s.Static.Join(s.Terminator.Span()) }
func (s *StaticVariables) Kind() NodeKind  { return KindStaticVariables }
func (s *StaticVariables) node()           {}
func (s *StaticVariables) statement()      {}

// HaltCompiler is `__halt_compiler();`. The data after it is a
// following Inline statement.
type HaltCompiler struct {
	HaltCompiler     span.Span
	LeftParenthesis  span.Span
	RightParenthesis span.Span
	Terminator       *Terminator
}

func (h *HaltCompiler) Span() span.Span { return h.HaltCompiler.Join(h.Terminator.Span()) }
func (h *HaltCompiler) Kind() NodeKind  { return KindHaltCompiler }
func (h *HaltCompiler) node()           {}
func (h *HaltCompiler) statement()      {}

// Unset is `unset($a, $b);`.
type Unset struct {
	Unset            span.Span
	LeftParenthesis  span.Span
	Values           []Expression
	RightParenthesis span.Span
	Terminator       *Terminator
}

func (u *Unset) Span() span.Span { return u.Unset.Join(u.Terminator.Span()) }
func (u *Unset) Kind() NodeKind  { return KindUnset }
func (u *Unset) node()           {}
func (u *Unset) statement()      {}

// Noop is an empty statement `;`.
type Noop struct {
	Loc span.Span
}

func (n *Noop) Span() span.Span { return n.Loc }
func (n *Noop) Kind() NodeKind  { return KindNoop }
func (n *Noop) node()           {}
func (n *Noop) statement()      {}
