package ast

// Walk visits n and its descendants depth-first in source order. When fn
// returns false the children of that node are skipped.
func Walk(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, child := range Children(n) {
		Walk(child, fn)
	}
}

type children []Node

func (c *children) add(n Node) {
	if n != nil {
		*c = append(*c, n)
	}
}

func (c *children) expr(e Expression) {
	if e != nil {
		*c = append(*c, e)
	}
}

func (c *children) hint(h Hint) {
	if h != nil {
		*c = append(*c, h)
	}
}

func (c *children) ident(i *Identifier) {
	if i != nil {
		*c = append(*c, i)
	}
}

func (c *children) args(a *ArgumentList) {
	if a != nil {
		*c = append(*c, a)
	}
}

func (c *children) block(b *Block) {
	if b != nil {
		*c = append(*c, b)
	}
}

func (c *children) terminator(t *Terminator) {
	if t != nil {
		*c = append(*c, t)
	}
}

func (c *children) attributes(lists []*AttributeList) {
	for _, l := range lists {
		*c = append(*c, l)
	}
}

func (c *children) exprs(es []Expression) {
	for _, e := range es {
		*c = append(*c, e)
	}
}

func (c *children) statements(ss []Statement) {
	for _, s := range ss {
		*c = append(*c, s)
	}
}

func (c *children) elements(es []ArrayElement) {
	for _, e := range es {
		*c = append(*c, e)
	}
}

func (c *children) functionLike(params *ParameterList, ret *FunctionLikeReturnTypeHint) {
	if params != nil {
		*c = append(*c, params)
	}
	if ret != nil {
		*c = append(*c, ret)
	}
}

func (c *children) body(b *ClassLikeBody) {
	if b != nil {
		*c = append(*c, b)
	}
}

// Children returns the direct child nodes of n in source order.
func Children(n Node) []Node {
	var c children
	switch n := n.(type) {
	case *Program:
		c.statements(n.Statements)
	case *Attribute:
		c.ident(n.Name)
		c.args(n.Arguments)
	case *AttributeList:
		for _, a := range n.Attributes {
			c.add(a)
		}

	case *CompositeString:
		for _, p := range n.Parts {
			c.add(p)
		}
	case *ExpressionStringPart:
		c.expr(n.Expression)
	case *BracedExpressionStringPart:
		c.expr(n.Expression)
	case *Parenthesized:
		c.expr(n.Expression)
	case *Array:
		c.elements(n.Elements)
	case *LegacyArray:
		c.elements(n.Elements)
	case *List:
		c.elements(n.Elements)
	case *KeyValueArrayElement:
		c.expr(n.Key)
		c.expr(n.Value)
	case *ValueArrayElement:
		c.expr(n.Value)
	case *VariadicArrayElement:
		c.expr(n.Value)
	case *ArrayAccess:
		c.expr(n.Array)
		c.expr(n.Index)
	case *ArrayAppend:
		c.expr(n.Array)
	case *IndirectVariable:
		c.expr(n.Expression)
	case *NestedVariable:
		c.expr(n.Variable)
	case *BracedSelector:
		c.expr(n.Expression)
	case *Argument:
		c.ident(n.Name)
		c.expr(n.Value)
	case *ArgumentList:
		for _, a := range n.Arguments {
			c.add(a)
		}
	case *FunctionCall:
		c.expr(n.Function)
		c.args(n.Arguments)
	case *FunctionClosureCreation:
		c.expr(n.Function)
	case *MethodCall:
		c.expr(n.Object)
		c.add(n.Method)
		c.args(n.Arguments)
	case *NullSafeMethodCall:
		c.expr(n.Object)
		c.add(n.Method)
		c.args(n.Arguments)
	case *MethodClosureCreation:
		c.expr(n.Object)
		c.add(n.Method)
	case *StaticMethodCall:
		c.expr(n.Class)
		c.add(n.Method)
		c.args(n.Arguments)
	case *StaticMethodClosureCreation:
		c.expr(n.Class)
		c.add(n.Method)
	case *PropertyAccess:
		c.expr(n.Object)
		c.add(n.Property)
	case *NullSafePropertyAccess:
		c.expr(n.Object)
		c.add(n.Property)
	case *StaticPropertyAccess:
		c.expr(n.Class)
		c.expr(n.Property)
	case *ClassConstantAccess:
		c.expr(n.Class)
		c.add(n.Constant)
	case *Instantiation:
		c.expr(n.Class)
		c.args(n.Arguments)
	case *AnonymousClass:
		c.attributes(n.Attributes)
		c.args(n.Arguments)
		if n.Extends != nil {
			c.add(n.Extends)
		}
		if n.Implements != nil {
			c.add(n.Implements)
		}
		c.body(n.Body)
	case *Closure:
		c.attributes(n.Attributes)
		c.functionLike(n.Parameters, nil)
		if n.Use != nil {
			c.add(n.Use)
		}
		c.functionLike(nil, n.ReturnType)
		c.block(n.Body)
	case *ClosureUseClause:
		for _, v := range n.Variables {
			c.add(v)
		}
	case *ClosureUseVariable:
		c.add(n.Variable)
	case *ArrowFunction:
		c.attributes(n.Attributes)
		c.functionLike(n.Parameters, n.ReturnType)
		c.expr(n.Expression)
	case *Match:
		c.expr(n.Subject)
		for _, a := range n.Arms {
			c.add(a)
		}
	case *MatchExpressionArm:
		c.exprs(n.Conditions)
		c.expr(n.Expression)
	case *MatchDefaultArm:
		c.expr(n.Expression)
	case *Yield:
		c.expr(n.Key)
		c.expr(n.Value)
	case *Construct:
		c.args(n.Arguments)
		c.expr(n.Value)
	case *Throw:
		c.expr(n.Exception)
	case *Clone:
		c.expr(n.Object)

	case InfixOperation:
		lhs, _, rhs := n.Operands()
		c.expr(lhs)
		c.expr(rhs)
	case PrefixOperation:
		_, value := n.Prefix()
		c.expr(value)
	case *ArithmeticPostfixOperation:
		c.expr(n.Value)
	case *TernaryOperation:
		c.expr(n.Condition)
		c.expr(n.Then)
		c.expr(n.Else)

	case *EchoTag:
		c.exprs(n.Values)
		c.terminator(n.Terminator)
	case *Namespace:
		c.ident(n.Name)
		c.terminator(n.Terminator)
		c.statements(n.Statements)
		c.block(n.Block)
	case *UseItem:
		c.ident(n.Name)
		c.ident(n.Alias)
	case *Use:
		c.ident(n.Prefix)
		for _, item := range n.Items {
			c.add(item)
		}
		c.terminator(n.Terminator)
	case *ConstantItem:
		c.ident(n.Name)
		c.expr(n.Value)
	case *Constant:
		c.attributes(n.Attributes)
		for _, item := range n.Items {
			c.add(item)
		}
		c.terminator(n.Terminator)
	case *Function:
		c.attributes(n.Attributes)
		c.ident(n.Name)
		c.functionLike(n.Parameters, n.ReturnType)
		c.block(n.Body)
	case *DeclareItem:
		c.ident(n.Name)
		c.expr(n.Value)
	case *Declare:
		for _, item := range n.Items {
			c.add(item)
		}
		c.terminator(n.Terminator)
		if n.Body != nil {
			c.add(n.Body)
		}
	case *Goto:
		c.ident(n.Label)
		c.terminator(n.Terminator)
	case *Label:
		c.ident(n.Name)
	case *Block:
		c.statements(n.Statements)
	case *ColonBody:
		c.statements(n.Statements)
		c.terminator(n.Terminator)
	case *TryCatchClause:
		c.hint(n.Hint)
		if n.Variable != nil {
			c.add(n.Variable)
		}
		c.block(n.Block)
	case *TryFinallyClause:
		c.block(n.Block)
	case *Try:
		c.block(n.Block)
		for _, clause := range n.Catches {
			c.add(clause)
		}
		if n.Finally != nil {
			c.add(n.Finally)
		}
	case *Foreach:
		c.expr(n.Expression)
		c.expr(n.Key)
		c.expr(n.Value)
		c.add(n.Body)
	case *For:
		c.exprs(n.Initializations)
		c.exprs(n.Conditions)
		c.exprs(n.Increments)
		c.add(n.Body)
	case *While:
		c.expr(n.Condition)
		c.add(n.Body)
	case *DoWhile:
		c.add(n.Body)
		c.expr(n.Condition)
		c.terminator(n.Terminator)
	case *Continue:
		c.expr(n.Level)
		c.terminator(n.Terminator)
	case *Break:
		c.expr(n.Level)
		c.terminator(n.Terminator)
	case *SwitchCase:
		c.expr(n.Expression)
		c.statements(n.Statements)
	case *Switch:
		c.expr(n.Expression)
		for _, sc := range n.Cases {
			c.add(sc)
		}
		c.terminator(n.Terminator)
	case *IfElseIf:
		c.expr(n.Condition)
		c.add(n.Body)
	case *IfElse:
		c.add(n.Body)
	case *If:
		c.expr(n.Condition)
		c.add(n.Body)
		for _, clause := range n.ElseIfs {
			c.add(clause)
		}
		if n.Else != nil {
			c.add(n.Else)
		}
	case *Return:
		c.expr(n.Value)
		c.terminator(n.Terminator)
	case *ExpressionStatement:
		c.expr(n.Expression)
		c.terminator(n.Terminator)
	case *Echo:
		c.exprs(n.Values)
		c.terminator(n.Terminator)
	case *Global:
		for _, v := range n.Variables {
			c.add(v)
		}
		c.terminator(n.Terminator)
	case *StaticItem:
		c.add(n.Variable)
		c.expr(n.Value)
	case *StaticVariables:
		for _, item := range n.Items {
			c.add(item)
		}
		c.terminator(n.Terminator)
	case *HaltCompiler:
		c.terminator(n.Terminator)
	case *Unset:
		c.exprs(n.Values)
		c.terminator(n.Terminator)

	case *Extends:
		for _, t := range n.Types {
			c.add(t)
		}
	case *Implements:
		for _, t := range n.Types {
			c.add(t)
		}
	case *ClassLikeBody:
		for _, m := range n.Members {
			c.add(m)
		}
	case *Class:
		c.attributes(n.Attributes)
		c.ident(n.Name)
		if n.Extends != nil {
			c.add(n.Extends)
		}
		if n.Implements != nil {
			c.add(n.Implements)
		}
		c.body(n.Body)
	case *Interface:
		c.attributes(n.Attributes)
		c.ident(n.Name)
		if n.Extends != nil {
			c.add(n.Extends)
		}
		c.body(n.Body)
	case *Trait:
		c.attributes(n.Attributes)
		c.ident(n.Name)
		c.body(n.Body)
	case *EnumBackingType:
		c.hint(n.Hint)
	case *Enum:
		c.attributes(n.Attributes)
		c.ident(n.Name)
		if n.BackingType != nil {
			c.add(n.BackingType)
		}
		if n.Implements != nil {
			c.add(n.Implements)
		}
		c.body(n.Body)
	case *TraitUseAdaptation:
		c.ident(n.Trait)
		c.ident(n.Method)
		for _, t := range n.Excluded {
			c.add(t)
		}
		c.ident(n.Alias)
		c.terminator(n.Terminator)
	case *TraitUse:
		for _, t := range n.Traits {
			c.add(t)
		}
		for _, a := range n.Adaptations {
			c.add(a)
		}
		c.terminator(n.Terminator)
	case *ClassLikeConstant:
		c.attributes(n.Attributes)
		c.hint(n.Hint)
		for _, item := range n.Items {
			c.add(item)
		}
		c.terminator(n.Terminator)
	case *PropertyItem:
		c.add(n.Variable)
		c.expr(n.Value)
	case *PropertyHook:
		c.attributes(n.Attributes)
		c.ident(n.Name)
		c.functionLike(n.Parameters, nil)
		c.block(n.Block)
		c.expr(n.Expression)
		c.terminator(n.Terminator)
	case *PropertyHookList:
		for _, h := range n.Hooks {
			c.add(h)
		}
	case *Property:
		c.attributes(n.Attributes)
		c.hint(n.Hint)
		for _, item := range n.Items {
			c.add(item)
		}
		if n.Hooks != nil {
			c.add(n.Hooks)
		}
		c.terminator(n.Terminator)
	case *EnumCase:
		c.attributes(n.Attributes)
		c.ident(n.Name)
		c.expr(n.Value)
		c.terminator(n.Terminator)
	case *Method:
		c.attributes(n.Attributes)
		c.ident(n.Name)
		c.functionLike(n.Parameters, n.ReturnType)
		c.block(n.Body)
	case *Parameter:
		c.attributes(n.Attributes)
		c.hint(n.Hint)
		c.add(n.Variable)
		c.expr(n.Default)
		if n.Hooks != nil {
			c.add(n.Hooks)
		}
	case *ParameterList:
		for _, p := range n.Parameters {
			c.add(p)
		}
	case *FunctionLikeReturnTypeHint:
		c.hint(n.Hint)

	case *NullableHint:
		c.hint(n.Hint)
	case *UnionHint:
		c.hint(n.Left)
		c.hint(n.Right)
	case *IntersectionHint:
		c.hint(n.Left)
		c.hint(n.Right)
	case *ParenthesizedHint:
		c.hint(n.Hint)
	}
	return c
}
