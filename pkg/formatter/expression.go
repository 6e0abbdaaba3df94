package formatter

import (
	"strings"

	"github.com/carthage-software/fennec/pkg/ast"
	"github.com/carthage-software/fennec/pkg/doc"
	"github.com/carthage-software/fennec/pkg/token"
)

func (f *formatter) expression(e ast.Expression) doc.Doc {
	return f.wrap(e, func() doc.Doc {
		switch e := e.(type) {
		case *ast.Literal:
			return f.literal(e)
		case *ast.CompositeString:
			return f.compositeString(e)
		case *ast.Parenthesized:
			inner := f.expression(e.Expression)
			if isBinaryish(e.Expression) || isTernary(e.Expression) {
				return doc.NewGroup(doc.Text("("), doc.Indented(doc.SoftLine, inner), doc.SoftLine, doc.Text(")"))
			}
			return doc.Concat(doc.Text("("), inner, doc.Text(")"))
		case *ast.Array, *ast.LegacyArray:
			return f.array(e, false)
		case *ast.List:
			return f.array(e, true)
		case *ast.ArrayAccess:
			return doc.Concat(f.expression(e.Array), doc.Text("["), f.expression(e.Index), doc.Text("]"))
		case *ast.ArrayAppend:
			return doc.Concat(f.expression(e.Array), doc.Text("[]"))
		case *ast.DirectVariable:
			return doc.Text(f.lookup(e.Name))
		case *ast.IndirectVariable:
			return doc.Concat(doc.Text("${"), f.expression(e.Expression), doc.Text("}"))
		case *ast.NestedVariable:
			return doc.Concat(doc.Text("$"), f.expression(e.Variable))
		case *ast.MagicConstant:
			return doc.Text(strings.ToUpper(f.lookup(e.Value)))
		case *ast.Static:
			return f.keyword("static")
		case *ast.Self:
			return f.keyword("self")
		case *ast.Parent:
			return f.keyword("parent")
		case *ast.Identifier:
			return f.identifier(e)
		case *ast.FunctionCall:
			return doc.Concat(f.expression(e.Function), f.arguments(e.Arguments))
		case *ast.FunctionClosureCreation:
			return doc.Concat(f.expression(e.Function), doc.Text("(...)"))
		case *ast.MethodCall, *ast.NullSafeMethodCall, *ast.StaticMethodCall,
			*ast.MethodClosureCreation, *ast.StaticMethodClosureCreation,
			*ast.PropertyAccess, *ast.NullSafePropertyAccess,
			*ast.StaticPropertyAccess, *ast.ClassConstantAccess:
			return f.memberChain(e)
		case *ast.Instantiation:
			return doc.Concat(f.keyword("new"), doc.Space, f.expression(e.Class), f.arguments(e.Arguments))
		case *ast.AnonymousClass:
			return f.anonymousClass(e)
		case *ast.Closure:
			return f.closure(e)
		case *ast.ArrowFunction:
			return f.arrowFunction(e)
		case *ast.Match:
			return f.match(e)
		case *ast.Yield:
			return f.yield(e)
		case *ast.Construct:
			return f.construct(e)
		case *ast.Throw:
			return doc.Concat(f.keyword("throw"), doc.Space, f.expression(e.Exception))
		case *ast.Clone:
			return doc.Concat(f.keyword("clone"), doc.Space, f.expression(e.Object))
		case *ast.AssignmentOperation:
			return f.assignment(e, f.destructuringTarget(e.LHS), e.Operator.Kind.Text(), e.RHS)
		case *ast.InstanceofOperation:
			return doc.NewGroup(f.expression(e.LHS), doc.Space, f.keyword("instanceof"), doc.Space, f.expression(e.RHS))
		case *ast.TernaryOperation:
			return f.ternary(e)
		case *ast.CastOperation:
			return doc.Concat(doc.Text("("), f.keyword(f.castName(e.Operator.Kind)), doc.Text(") "), f.expression(e.Value))
		case *ast.ArithmeticPostfixOperation:
			return doc.Concat(f.expression(e.Value), doc.Text(e.Operator.Kind.Text()))
		case ast.PrefixOperation:
			return f.prefix(e)
		case ast.InfixOperation:
			return f.binaryish(e)
		}
		panic("formatter: unknown expression " + string(e.Kind()))
	})
}

func isTernary(e ast.Expression) bool {
	_, ok := e.(*ast.TernaryOperation)
	return ok
}

// selector prints the member name after `->` or `::`.
func (f *formatter) selector(s ast.Selector) doc.Doc {
	return f.wrap(s, func() doc.Doc {
		switch s := s.(type) {
		case *ast.Identifier:
			return f.identifier(s)
		case *ast.BracedSelector:
			return doc.Concat(doc.Text("{"), f.expression(s.Expression), doc.Text("}"))
		case *ast.DirectVariable:
			return doc.Text(f.lookup(s.Name))
		case *ast.IndirectVariable:
			return doc.Concat(doc.Text("${"), f.expression(s.Expression), doc.Text("}"))
		case *ast.NestedVariable:
			return doc.Concat(doc.Text("$"), f.expression(s.Variable))
		}
		panic("formatter: unknown selector " + string(s.Kind()))
	})
}

func (f *formatter) prefix(e ast.PrefixOperation) doc.Doc {
	op, value := e.Prefix()
	text := op.Kind.Text()
	if op.Kind == token.Bang || op.Kind == token.At || op.Kind == token.Ampersand || op.Kind == token.Tilde {
		return doc.Concat(doc.Text(text), f.expression(value))
	}
	// `- -$a` must not collapse into `--$a`.
	if inner, ok := value.(*ast.ArithmeticPrefixOperation); ok && inner.Operator.Kind.Text()[0] == text[0] {
		return doc.Concat(doc.Text(text), doc.Space, f.expression(value))
	}
	return doc.Concat(doc.Text(text), f.expression(value))
}

var castNames = map[token.Kind]string{
	token.ArrayCast:   "array",
	token.BoolCast:    "bool",
	token.BooleanCast: "boolean",
	token.DoubleCast:  "double",
	token.RealCast:    "real",
	token.FloatCast:   "float",
	token.IntCast:     "int",
	token.IntegerCast: "integer",
	token.ObjectCast:  "object",
	token.UnsetCast:   "unset",
	token.StringCast:  "string",
	token.BinaryCast:  "binary",
}

// castName maps a cast to its configured spelling.
func (f *formatter) castName(k token.Kind) string {
	if f.settings.LeaveCastsAsIs {
		return castNames[k]
	}
	switch k {
	case token.BoolCast, token.BooleanCast:
		return f.settings.BoolCast
	case token.DoubleCast, token.RealCast, token.FloatCast:
		return f.settings.FloatCast
	case token.IntCast, token.IntegerCast:
		return f.settings.IntCast
	case token.StringCast, token.BinaryCast:
		return f.settings.StringCast
	}
	return castNames[k]
}

func (f *formatter) ternary(t *ast.TernaryOperation) doc.Doc {
	condition := f.expression(t.Condition)
	if t.IsElvis() {
		return doc.NewGroup(condition, doc.Indented(doc.Line, doc.Text("?: "), f.expression(t.Else)))
	}
	then := f.expression(t.Then)
	return doc.NewGroup(condition, doc.Indented(
		doc.Line, doc.Text("? "), then,
		doc.Line, doc.Text(": "), f.expression(t.Else),
	))
}

func (f *formatter) closure(c *ast.Closure) doc.Doc {
	id := f.arena.NewGroupID("closure-signature")
	parts := []doc.Doc{f.attributes(c.Attributes, doc.Space)}
	if c.Static != nil {
		parts = append(parts, f.keyword("static"), doc.Space)
	}
	parts = append(parts, f.keyword("function"))
	if f.settings.SpaceBeforeClosureParams {
		parts = append(parts, doc.Space)
	}
	parts = append(parts, ampersand(c.Ampersand), f.parameters(c.Parameters))
	if c.Use != nil {
		parts = append(parts, doc.Space, f.closureUse(c.Use))
	}
	parts = append(parts, f.returnType(c.ReturnType))

	return doc.Concat(
		doc.GroupWithID(id, parts...),
		f.braceBefore(f.settings.ClosureBraceStyle, id),
		f.statement(c.Body),
	)
}

func (f *formatter) closureUse(u *ast.ClosureUseClause) doc.Doc {
	return f.wrap(u, func() doc.Doc {
		vars := make([]doc.Doc, len(u.Variables))
		for i, v := range u.Variables {
			vars[i] = f.wrap(v, func() doc.Doc {
				return doc.Concat(ampersand(v.Ampersand), f.expression(v.Variable))
			})
		}
		use := f.keyword("use")
		if f.settings.SpaceAfterClosureUse {
			use = doc.Concat(use, doc.Space)
		}
		return f.delimited(doc.Concat(use, doc.Text("(")), vars, ")", u.RightParenthesis.Start, f.settings.TrailingComma, false)
	})
}

func (f *formatter) arrowFunction(a *ast.ArrowFunction) doc.Doc {
	parts := []doc.Doc{f.attributes(a.Attributes, doc.Space)}
	if a.Static != nil {
		parts = append(parts, f.keyword("static"), doc.Space)
	}
	parts = append(parts, f.keyword("fn"))
	if f.settings.SpaceBeforeArrowFunctionParams {
		parts = append(parts, doc.Space)
	}
	parts = append(parts, ampersand(a.Ampersand), f.parameters(a.Parameters), f.returnType(a.ReturnType))
	return doc.NewGroup(doc.NewGroup(parts...), doc.Text(" => "), f.expression(a.Expression))
}

func (f *formatter) match(m *ast.Match) doc.Doc {
	head := doc.Concat(f.keyword("match"), doc.Space, f.condition(m.Subject), doc.Space)
	if len(m.Arms) == 0 {
		if dangling := f.danglingComments(m.RightBrace.Start); dangling != nil {
			return doc.Concat(head, doc.Text("{"), dangling, doc.Text("}"))
		}
		return doc.Concat(head, doc.Text("{}"))
	}

	arms := make([]doc.Doc, 0, len(m.Arms)*3)
	for i, arm := range m.Arms {
		if i > 0 {
			arms = append(arms, doc.Text(","), doc.HardLine)
			if f.isNextLineEmpty(m.Arms[i-1].Span().End) {
				arms = append(arms, doc.HardLine)
			}
		}
		arms = append(arms, f.matchArm(arm))
	}
	if f.settings.TrailingComma {
		arms = append(arms, doc.Text(","))
	}
	return doc.Concat(
		head,
		doc.Text("{"),
		doc.Indented(doc.HardLine, doc.Concat(arms...), f.closingComments(m.RightBrace.Start)),
		doc.HardLine,
		doc.Text("}"),
	)
}

func (f *formatter) matchArm(arm ast.MatchArm) doc.Doc {
	return f.wrap(arm, func() doc.Doc {
		switch arm := arm.(type) {
		case *ast.MatchExpressionArm:
			conditions := make([]doc.Doc, len(arm.Conditions))
			for i, c := range arm.Conditions {
				conditions[i] = f.expression(c)
			}
			return doc.NewGroup(
				doc.NewGroup(f.commaList(conditions)),
				doc.Text(" => "),
				f.expression(arm.Expression),
			)
		case *ast.MatchDefaultArm:
			return doc.Concat(f.keyword("default"), doc.Text(" => "), f.expression(arm.Expression))
		}
		return nil
	})
}

func (f *formatter) yield(y *ast.Yield) doc.Doc {
	switch {
	case y.Type == ast.YieldFrom:
		return doc.Concat(f.keyword("yield"), doc.Space, f.keyword("from"), doc.Space, f.expression(y.Value))
	case y.Value == nil:
		return f.keyword("yield")
	case y.Type == ast.YieldPair:
		return doc.Concat(f.keyword("yield"), doc.Space, f.expression(y.Key), doc.Text(" => "), f.expression(y.Value))
	}
	return doc.Concat(f.keyword("yield"), doc.Space, f.expression(y.Value))
}

func (f *formatter) construct(c *ast.Construct) doc.Doc {
	keyword := f.keywordText(c.Keyword.Kind)
	switch {
	case c.Arguments != nil:
		items := make([]doc.Doc, len(c.Arguments.Arguments))
		for i, arg := range c.Arguments.Arguments {
			items[i] = f.argument(arg)
		}
		return doc.Concat(keyword, f.delimited(doc.Text("("), items, ")", c.Arguments.RightParenthesis.Start, false, false))
	case c.Value != nil:
		return doc.Concat(keyword, doc.Space, f.expression(c.Value))
	}
	return keyword
}

// hint prints a type declaration.
func (f *formatter) hint(h ast.Hint) doc.Doc {
	return f.wrap(h, func() doc.Doc {
		switch h := h.(type) {
		case *ast.Identifier:
			return f.identifier(h)
		case *ast.KeywordHint:
			return f.keyword(f.lookup(h.Value))
		case *ast.NullableHint:
			if f.settings.NullTypeHint == NullPipe {
				return doc.Concat(f.keyword("null"), f.typeSeparator("|"), f.hint(h.Hint))
			}
			return doc.Concat(doc.Text("?"), f.hint(h.Hint))
		case *ast.UnionHint:
			if inner := f.nullableUnion(h); inner != nil {
				return doc.Concat(doc.Text("?"), f.hint(inner))
			}
			return doc.Concat(f.hint(h.Left), f.typeSeparator("|"), f.hint(h.Right))
		case *ast.IntersectionHint:
			return doc.Concat(f.hint(h.Left), f.typeSeparator("&"), f.hint(h.Right))
		case *ast.ParenthesizedHint:
			return doc.Concat(doc.Text("("), f.hint(h.Hint), doc.Text(")"))
		}
		panic("formatter: unknown hint " + string(h.Kind()))
	})
}

// nullableUnion returns T when the question style is configured and h is
// `null|T` or `T|null` for a T that may be written `?T`.
func (f *formatter) nullableUnion(h *ast.UnionHint) ast.Hint {
	if f.settings.NullTypeHint != NullQuestion || f.hasCommentsIn(h.Span()) {
		return nil
	}
	left, right := h.Left, h.Right
	if f.isNullHint(right) {
		left, right = right, left
	}
	if !f.isNullHint(left) {
		return nil
	}
	switch r := right.(type) {
	case *ast.Identifier:
		return r
	case *ast.KeywordHint:
		switch strings.ToLower(f.lookup(r.Value)) {
		case "null", "mixed", "void", "never", "false", "true":
			return nil
		}
		return r
	}
	return nil
}

func (f *formatter) isNullHint(h ast.Hint) bool {
	k, ok := h.(*ast.KeywordHint)
	return ok && strings.EqualFold(f.lookup(k.Value), "null")
}

func (f *formatter) typeSeparator(sep string) doc.Doc {
	pad := strings.Repeat(" ", f.settings.TypeSpacing)
	return doc.Text(pad + sep + pad)
}
