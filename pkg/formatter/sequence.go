package formatter

import (
	"github.com/carthage-software/fennec/pkg/ast"
	"github.com/carthage-software/fennec/pkg/doc"
	"github.com/carthage-software/fennec/pkg/span"
)

// delimited prints items between open and close, one per line when the
// list does not fit. closeAt is the position of the closing delimiter;
// comments before it stay inside the list.
func (f *formatter) delimited(open doc.Doc, items []doc.Doc, close string, closeAt span.Position, trailingComma, forceBreak bool) doc.Doc {
	if len(items) == 0 {
		if dangling := f.danglingComments(closeAt); dangling != nil {
			return doc.Concat(open, dangling, doc.Text(close))
		}
		return doc.Concat(open, doc.Text(close))
	}

	inner := []doc.Doc{doc.SoftLine, f.commaList(items)}
	if trailingComma {
		inner = append(inner, doc.IfBreak{Break: doc.Text(",")})
	}
	inner = append(inner, f.closingComments(closeAt))

	g := doc.NewGroup(open, doc.Indent{Contents: doc.Concat(inner...)}, doc.SoftLine, doc.Text(close))
	g.ShouldBreak = forceBreak
	return g
}

func (f *formatter) arguments(list *ast.ArgumentList) doc.Doc {
	if list == nil {
		return nil
	}
	if hugged := f.huggedArgument(list); hugged != nil {
		return hugged
	}
	items := make([]doc.Doc, len(list.Arguments))
	for i, arg := range list.Arguments {
		items[i] = f.argument(arg)
	}
	forceBreak := f.settings.PreserveBrokenArgumentLists && len(list.Arguments) > 0 &&
		f.hasNewlineInRange(list.LeftParenthesis.End, list.Arguments[0].Span().Start)
	return f.delimited(doc.Text("("), items, ")", list.RightParenthesis.Start, f.settings.TrailingComma, forceBreak)
}

// huggedArgument keeps a lone closure, array, match or anonymous class
// argument attached to the parentheses so that only its own body breaks.
func (f *formatter) huggedArgument(list *ast.ArgumentList) doc.Doc {
	if !f.settings.InlineSingleBreakingArgument || len(list.Arguments) != 1 || f.hasCommentsIn(list.Span()) {
		return nil
	}
	arg := list.Arguments[0]
	if arg.Name != nil || arg.Ellipsis != nil || !isBreakingArgument(arg.Value) {
		return nil
	}
	return doc.Concat(doc.Text("("), f.argument(arg), doc.Text(")"))
}

func isBreakingArgument(e ast.Expression) bool {
	switch e := e.(type) {
	case *ast.Closure, *ast.Match, *ast.AnonymousClass:
		return true
	case *ast.Array:
		return len(e.Elements) > 0
	case *ast.LegacyArray:
		return len(e.Elements) > 0
	}
	return false
}

func (f *formatter) argument(arg *ast.Argument) doc.Doc {
	return f.wrap(arg, func() doc.Doc {
		var prefix doc.Doc
		switch {
		case arg.Name != nil:
			prefix = doc.Concat(f.identifier(arg.Name), doc.Text(": "))
		case arg.Ellipsis != nil:
			prefix = doc.Text("...")
		}
		return doc.Concat(prefix, f.expression(arg.Value))
	})
}

func (f *formatter) parameters(list *ast.ParameterList) doc.Doc {
	items := make([]doc.Doc, len(list.Parameters))
	promoted := false
	for i, p := range list.Parameters {
		items[i] = f.parameter(p)
		promoted = promoted || p.IsPromoted()
	}
	forceBreak := promoted && f.settings.BreakPromotedPropertiesList
	if f.settings.PreserveMultilineParameters && len(list.Parameters) > 0 &&
		f.hasNewlineInRange(list.LeftParenthesis.End, list.Parameters[0].Span().Start) {
		forceBreak = true
	}
	return f.delimited(doc.Text("("), items, ")", list.RightParenthesis.Start, f.settings.TrailingComma, forceBreak)
}

func (f *formatter) parameter(p *ast.Parameter) doc.Doc {
	return f.wrap(p, func() doc.Doc {
		parts := []doc.Doc{f.attributes(p.Attributes, doc.Line), f.modifiers(p.Modifiers)}
		if p.Hint != nil {
			parts = append(parts, f.hint(p.Hint), doc.Space)
		}
		parts = append(parts, ampersand(p.Ampersand))
		if p.Ellipsis != nil {
			parts = append(parts, doc.Text("..."))
		}
		parts = append(parts, f.expression(p.Variable))
		if p.Default != nil {
			parts = append(parts, doc.Text(" = "), f.expression(p.Default))
		}
		if p.Hooks != nil {
			parts = append(parts, doc.Space, f.hooks(p.Hooks))
		}
		return doc.NewGroup(parts...)
	})
}

func (f *formatter) returnType(r *ast.FunctionLikeReturnTypeHint) doc.Doc {
	if r == nil {
		return nil
	}
	return doc.Concat(doc.Text(": "), f.hint(r.Hint))
}

func (f *formatter) modifiers(modifiers []ast.Modifier) doc.Doc {
	parts := make([]doc.Doc, 0, len(modifiers)*2)
	for _, m := range modifiers {
		parts = append(parts, f.keywordText(m.Kind), doc.Space)
	}
	return doc.Concat(parts...)
}

// attributes prints attribute lists, each followed by separator.
func (f *formatter) attributes(lists []*ast.AttributeList, separator doc.Doc) doc.Doc {
	if len(lists) == 0 {
		return nil
	}
	parts := make([]doc.Doc, 0, len(lists)*2)
	for _, list := range lists {
		parts = append(parts, f.wrap(list, func() doc.Doc {
			items := make([]doc.Doc, len(list.Attributes))
			for i, a := range list.Attributes {
				items[i] = f.attribute(a)
			}
			return f.delimited(doc.Text("#["), items, "]", list.RightBracket.Start, false, false)
		}), separator)
	}
	return doc.Concat(parts...)
}

func (f *formatter) attribute(a *ast.Attribute) doc.Doc {
	return f.wrap(a, func() doc.Doc {
		name := f.identifier(a.Name)
		switch {
		case a.Arguments != nil && len(a.Arguments.Arguments) > 0:
			return doc.Concat(name, f.arguments(a.Arguments))
		case f.settings.AttrParens == WithParens:
			return doc.Concat(name, doc.Text("()"))
		case a.Arguments != nil && f.hasCommentsIn(a.Arguments.Span()):
			return doc.Concat(name, f.arguments(a.Arguments))
		}
		return name
	})
}

// array prints an array literal or a destructuring pattern. Patterns
// follow the list style, values the array style.
func (f *formatter) array(e ast.Expression, destructuring bool) doc.Doc {
	var (
		elements []ast.ArrayElement
		open     span.Span
		close    span.Span
	)
	switch a := e.(type) {
	case *ast.Array:
		elements, open, close = a.Elements, a.LeftBracket, a.RightBracket
	case *ast.LegacyArray:
		elements, open, close = a.Elements, a.LeftParenthesis, a.RightParenthesis
	case *ast.List:
		elements, open, close = a.Elements, a.LeftParenthesis, a.RightParenthesis
	}

	style := f.settings.ArrayStyle
	keyword := "array"
	if destructuring {
		style, keyword = f.settings.ListStyle, "list"
	}

	var opening doc.Doc = doc.Text("[")
	closing := "]"
	if style == LongArray {
		opening, closing = doc.Concat(f.keyword(keyword), doc.Text("(")), ")"
	}

	items := make([]doc.Doc, len(elements))
	for i, element := range elements {
		items[i] = f.arrayElement(element, destructuring)
	}

	trailing := f.settings.TrailingComma
	if n := len(elements); n > 0 {
		if _, missing := elements[n-1].(*ast.MissingArrayElement); missing {
			items[n-1] = doc.Concat(items[n-1], doc.Text(","))
			trailing = false
		}
	}

	forceBreak := f.settings.PreserveBrokenArrays && len(elements) > 0 &&
		f.hasNewlineInRange(open.End, elements[0].Span().Start)
	return f.delimited(opening, items, closing, close.Start, trailing, forceBreak)
}

func (f *formatter) arrayElement(element ast.ArrayElement, destructuring bool) doc.Doc {
	value := func(e ast.Expression) doc.Doc {
		if destructuring {
			return f.destructuringTarget(e)
		}
		return f.expression(e)
	}
	return f.wrap(element, func() doc.Doc {
		switch el := element.(type) {
		case *ast.KeyValueArrayElement:
			if destructuring {
				return doc.Concat(f.expression(el.Key), doc.Text(" => "), value(el.Value))
			}
			return f.assignment(el, f.expression(el.Key), "=>", el.Value)
		case *ast.ValueArrayElement:
			return value(el.Value)
		case *ast.VariadicArrayElement:
			return doc.Concat(doc.Text("..."), f.expression(el.Value))
		case *ast.MissingArrayElement:
			return doc.Empty
		}
		return nil
	})
}

// destructuringTarget prints the target of an assignment or foreach.
// Nested arrays in it are patterns too.
func (f *formatter) destructuringTarget(e ast.Expression) doc.Doc {
	switch e.(type) {
	case *ast.Array, *ast.List:
		return f.wrap(e, func() doc.Doc { return f.array(e, true) })
	}
	return f.expression(e)
}
