package formatter

import (
	"github.com/carthage-software/fennec/pkg/ast"
	"github.com/carthage-software/fennec/pkg/doc"
)

func (f *formatter) class(c *ast.Class) doc.Doc {
	id := f.arena.NewGroupID("class-signature")
	signature := doc.GroupWithID(id,
		f.modifiers(c.Modifiers),
		f.keyword("class"),
		doc.Space,
		f.identifier(c.Name),
		f.inheritance(c.Extends, c.Implements),
	)
	return doc.Concat(
		f.attributes(c.Attributes, doc.HardLine),
		signature,
		f.braceBefore(f.settings.ClassLikeBraceStyle, id),
		f.classLikeBody(c.Body),
	)
}

func (f *formatter) iface(i *ast.Interface) doc.Doc {
	id := f.arena.NewGroupID("interface-signature")
	signature := doc.GroupWithID(id, f.keyword("interface"), doc.Space, f.identifier(i.Name), f.inheritance(i.Extends, nil))
	return doc.Concat(
		f.attributes(i.Attributes, doc.HardLine),
		signature,
		f.braceBefore(f.settings.ClassLikeBraceStyle, id),
		f.classLikeBody(i.Body),
	)
}

func (f *formatter) trait(t *ast.Trait) doc.Doc {
	return doc.Concat(
		f.attributes(t.Attributes, doc.HardLine),
		f.keyword("trait"),
		doc.Space,
		f.identifier(t.Name),
		f.braceBefore(f.settings.ClassLikeBraceStyle, 0),
		f.classLikeBody(t.Body),
	)
}

func (f *formatter) enum(e *ast.Enum) doc.Doc {
	id := f.arena.NewGroupID("enum-signature")
	parts := []doc.Doc{f.keyword("enum"), doc.Space, f.identifier(e.Name)}
	if e.BackingType != nil {
		parts = append(parts, doc.Text(": "), f.hint(e.BackingType.Hint))
	}
	parts = append(parts, f.inheritance(nil, e.Implements))
	return doc.Concat(
		f.attributes(e.Attributes, doc.HardLine),
		doc.GroupWithID(id, parts...),
		f.braceBefore(f.settings.ClassLikeBraceStyle, id),
		f.classLikeBody(e.Body),
	)
}

func (f *formatter) anonymousClass(c *ast.AnonymousClass) doc.Doc {
	id := f.arena.NewGroupID("anonymous-class-signature")
	signature := doc.GroupWithID(id,
		f.keyword("new"),
		doc.Space,
		f.attributes(c.Attributes, doc.Space),
		f.modifiers(c.Modifiers),
		f.keyword("class"),
		f.arguments(c.Arguments),
		f.inheritance(c.Extends, c.Implements),
	)
	return doc.Concat(
		signature,
		f.braceBefore(f.settings.ClassLikeBraceStyle, id),
		f.classLikeBody(c.Body),
		doc.BreakParent{},
	)
}

// inheritance prints the extends and implements clauses, which move to
// their own lines when the signature does not fit.
func (f *formatter) inheritance(extends *ast.Extends, implements *ast.Implements) doc.Doc {
	clause := func(keyword string, types []*ast.Identifier) doc.Doc {
		names := make([]doc.Doc, len(types))
		for i, t := range types {
			names[i] = f.identifier(t)
		}
		return doc.Concat(doc.Line, f.keyword(keyword), doc.Space, doc.Indented(f.commaList(names)))
	}
	var parts []doc.Doc
	if extends != nil {
		parts = append(parts, clause("extends", extends.Types))
	}
	if implements != nil {
		parts = append(parts, clause("implements", implements.Types))
	}
	if len(parts) == 0 {
		return nil
	}
	return doc.Indented(parts...)
}

func (f *formatter) classLikeBody(b *ast.ClassLikeBody) doc.Doc {
	if len(b.Members) == 0 {
		if dangling := f.danglingComments(b.RightBrace.Start); dangling != nil {
			return doc.Concat(doc.Text("{"), dangling, doc.Text("}"))
		}
		return doc.Concat(doc.Text("{"), doc.HardLine, doc.Text("}"))
	}

	members := make([]doc.Doc, 0, len(b.Members)*3)
	for i, m := range b.Members {
		if i > 0 {
			previous := b.Members[i-1]
			members = append(members, doc.HardLine)
			_, afterMethod := previous.(*ast.Method)
			_, beforeMethod := m.(*ast.Method)
			if afterMethod || beforeMethod || f.isNextLineEmpty(previous.Span().End) {
				members = append(members, doc.HardLine)
			}
		}
		members = append(members, f.member(m))
	}
	return doc.Concat(
		doc.Text("{"),
		doc.Indented(doc.HardLine, doc.Concat(members...), f.closingComments(b.RightBrace.Start)),
		doc.HardLine,
		doc.Text("}"),
	)
}

func (f *formatter) member(m ast.ClassLikeMember) doc.Doc {
	return f.wrap(m, func() doc.Doc {
		switch m := m.(type) {
		case *ast.TraitUse:
			return f.traitUse(m)
		case *ast.ClassLikeConstant:
			return f.classLikeConstant(m)
		case *ast.Property:
			return f.property(m)
		case *ast.EnumCase:
			return f.enumCase(m)
		case *ast.Method:
			return f.method(m)
		}
		panic("formatter: unknown class member " + string(m.Kind()))
	})
}

func (f *formatter) traitUse(t *ast.TraitUse) doc.Doc {
	names := make([]doc.Doc, len(t.Traits))
	for i, name := range t.Traits {
		names[i] = f.identifier(name)
	}
	head := doc.NewGroup(f.keyword("use"), doc.Space, doc.Indented(f.commaList(names)))
	if t.Terminator != nil {
		return doc.Concat(head, f.terminator(t.Terminator))
	}
	if len(t.Adaptations) == 0 {
		if dangling := f.danglingComments(t.RightBrace.Start); dangling != nil {
			return doc.Concat(head, doc.Text(" {"), dangling, doc.Text("}"))
		}
		return doc.Concat(head, doc.Text(" {}"))
	}

	adaptations := make([]doc.Doc, len(t.Adaptations))
	for i, a := range t.Adaptations {
		adaptations[i] = f.wrap(a, func() doc.Doc { return f.adaptation(a) })
	}
	return doc.Concat(
		head,
		doc.Text(" {"),
		doc.Indented(doc.HardLine, doc.Join(doc.HardLine, adaptations), f.closingComments(t.RightBrace.Start)),
		doc.HardLine,
		doc.Text("}"),
	)
}

func (f *formatter) adaptation(a *ast.TraitUseAdaptation) doc.Doc {
	method := f.identifier(a.Method)
	if a.Trait != nil {
		method = doc.Concat(f.identifier(a.Trait), doc.Text("::"), method)
	}
	if a.IsPrecedence() {
		excluded := make([]doc.Doc, len(a.Excluded))
		for i, name := range a.Excluded {
			excluded[i] = f.identifier(name)
		}
		return doc.Concat(method, doc.Space, f.keyword("insteadof"), doc.Space, doc.Join(doc.Text(", "), excluded), f.terminator(a.Terminator))
	}

	parts := []doc.Doc{method, doc.Space, f.keyword("as")}
	if a.Visibility != nil {
		parts = append(parts, doc.Space, f.keywordText(a.Visibility.Kind))
	}
	if a.Alias != nil {
		parts = append(parts, doc.Space, f.identifier(a.Alias))
	}
	return doc.Concat(append(parts, f.terminator(a.Terminator))...)
}

func (f *formatter) classLikeConstant(c *ast.ClassLikeConstant) doc.Doc {
	items := make([]doc.Doc, len(c.Items))
	for i, item := range c.Items {
		items[i] = f.constantItem(item)
	}
	head := []doc.Doc{f.modifiers(c.Modifiers), f.keyword("const"), doc.Space}
	if c.Hint != nil {
		head = append(head, f.hint(c.Hint), doc.Space)
	}
	return doc.Concat(
		f.attributes(c.Attributes, doc.HardLine),
		doc.NewGroup(doc.Concat(head...), doc.Indented(f.commaList(items))),
		f.terminator(c.Terminator),
	)
}

func (f *formatter) property(p *ast.Property) doc.Doc {
	head := []doc.Doc{f.modifiers(p.Modifiers)}
	if p.Var != nil {
		head = append(head, f.keyword("var"), doc.Space)
	}
	if p.Hint != nil {
		head = append(head, f.hint(p.Hint), doc.Space)
	}

	items := make([]doc.Doc, len(p.Items))
	for i, item := range p.Items {
		items[i] = f.wrap(item, func() doc.Doc {
			if item.Value == nil {
				return f.expression(item.Variable)
			}
			return f.assignment(item, f.expression(item.Variable), "=", item.Value)
		})
	}

	declaration := doc.NewGroup(doc.Concat(head...), doc.Indented(f.commaList(items)))
	if p.Hooks != nil {
		return doc.Concat(f.attributes(p.Attributes, doc.HardLine), declaration, doc.Space, f.hooks(p.Hooks))
	}
	return doc.Concat(f.attributes(p.Attributes, doc.HardLine), declaration, f.terminator(p.Terminator))
}

// hooks prints a property hook list, one hook per line.
func (f *formatter) hooks(l *ast.PropertyHookList) doc.Doc {
	if len(l.Hooks) == 0 {
		if dangling := f.danglingComments(l.RightBrace.Start); dangling != nil {
			return doc.Concat(doc.Text("{"), dangling, doc.Text("}"))
		}
		return doc.Text("{}")
	}
	hooks := make([]doc.Doc, len(l.Hooks))
	for i, h := range l.Hooks {
		hooks[i] = f.wrap(h, func() doc.Doc { return f.hook(h) })
	}
	return doc.Concat(
		doc.Text("{"),
		doc.Indented(doc.HardLine, doc.Join(doc.HardLine, hooks), f.closingComments(l.RightBrace.Start)),
		doc.HardLine,
		doc.Text("}"),
	)
}

func (f *formatter) hook(h *ast.PropertyHook) doc.Doc {
	parts := []doc.Doc{
		f.attributes(h.Attributes, doc.HardLine),
		f.modifiers(h.Modifiers),
		ampersand(h.Ampersand),
		f.identifier(h.Name),
	}
	if h.Parameters != nil {
		parts = append(parts, f.parameters(h.Parameters))
	}
	switch {
	case h.Semicolon != nil:
		parts = append(parts, doc.Text(";"))
	case h.Block != nil:
		parts = append(parts, doc.Space, f.statement(h.Block))
	default:
		parts = append(parts, doc.Text(" => "), f.expression(h.Expression), f.terminator(h.Terminator))
	}
	return doc.Concat(parts...)
}

func (f *formatter) enumCase(c *ast.EnumCase) doc.Doc {
	var value doc.Doc = f.identifier(c.Name)
	if c.Value != nil {
		value = f.assignment(c, value, "=", c.Value)
	}
	return doc.Concat(
		f.attributes(c.Attributes, doc.HardLine),
		f.keyword("case"),
		doc.Space,
		value,
		f.terminator(c.Terminator),
	)
}

func (f *formatter) method(m *ast.Method) doc.Doc {
	id := f.arena.NewGroupID("method-signature")
	signature := doc.GroupWithID(id,
		f.modifiers(m.Modifiers),
		f.keyword("function"),
		doc.Space,
		ampersand(m.Ampersand),
		f.identifier(m.Name),
		f.parameters(m.Parameters),
		f.returnType(m.ReturnType),
	)
	if m.IsAbstract() {
		return doc.Concat(f.attributes(m.Attributes, doc.HardLine), signature, doc.Text(";"))
	}
	return doc.Concat(
		f.attributes(m.Attributes, doc.HardLine),
		signature,
		f.braceBefore(f.settings.MethodBraceStyle, id),
		f.statement(m.Body),
	)
}
