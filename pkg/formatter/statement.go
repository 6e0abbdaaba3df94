package formatter

import (
	"strings"

	"github.com/carthage-software/fennec/pkg/ast"
	"github.com/carthage-software/fennec/pkg/doc"
	"github.com/carthage-software/fennec/pkg/span"
	"github.com/carthage-software/fennec/pkg/token"
)

func (f *formatter) program(p *ast.Program) doc.Doc {
	f.stack = append(f.stack, p)
	parts := []doc.Doc{f.statements(p.Statements)}
	f.stack = f.stack[:len(f.stack)-1]

	if next, ok := f.comments.Peek(); ok {
		parts = append(parts, doc.HardLine)
		if f.isPreviousLineEmpty(next.Span.Start) {
			parts = append(parts, doc.HardLine)
		}
		parts = append(parts, f.remainingComments())
	}

	if f.scripting {
		parts = append(parts, doc.HardLine)
		if f.settings.IncludeClosingTag {
			parts = append(parts, doc.HardLine, doc.Text("?>"), doc.HardLine)
		}
	}
	return doc.Concat(parts...)
}

// statements prints a statement sequence, one per line, keeping at most
// one blank line where the source had some.
func (f *formatter) statements(stmts []ast.Statement) doc.Doc {
	stmts = f.trimTrailingTags(stmts)

	var printable []ast.Statement
	for _, stmt := range stmts {
		if _, noop := stmt.(*ast.Noop); !noop {
			printable = append(printable, stmt)
		}
	}

	parts := make([]doc.Doc, 0, len(printable)*3)
	for i, stmt := range printable {
		parts = append(parts, f.statement(stmt))
		if i+1 < len(printable) {
			var after ast.Statement
			if i+2 < len(printable) {
				after = printable[i+2]
			}
			parts = append(parts, f.separator(stmt, printable[i+1], after))
		}
	}
	return doc.Concat(parts...)
}

// separator is printed between stmt and next. after is the statement
// following next, if any.
func (f *formatter) separator(stmt, next, after ast.Statement) doc.Doc {
	if _, ok := stmt.(*ast.Inline); ok {
		return nil
	}
	if _, ok := next.(*ast.Inline); ok {
		return nil
	}
	if _, ok := stmt.(*ast.ClosingTag); ok {
		return nil
	}
	if f.keepsClosingTag(terminatorOf(stmt)) {
		return nil
	}

	sameLine := !f.hasNewlineInRange(stmt.Span().End, next.Span().Start)
	if _, ok := next.(*ast.ClosingTag); ok && sameLine {
		return doc.Space
	}
	if _, ok := stmt.(*ast.OpeningTag); ok && sameLine {
		if f.keepsClosingTag(terminatorOf(next)) {
			return doc.Space
		}
		if tag, ok := after.(*ast.ClosingTag); ok && !f.hasNewlineInRange(next.Span().End, tag.Loc.Start) {
			return doc.Space
		}
	}

	if f.isNextLineEmpty(stmt.Span().End) {
		return doc.Concat(doc.HardLine, doc.HardLine)
	}
	return doc.HardLine
}

// trimTrailingTags drops a closing tag that only has whitespace after
// it, together with that whitespace.
func (f *formatter) trimTrailingTags(stmts []ast.Statement) []ast.Statement {
	if f.settings.IncludeClosingTag {
		return stmts
	}
	end := len(stmts)
	for end > 0 {
		inline, ok := stmts[end-1].(*ast.Inline)
		if !ok || inline.Shebang || strings.TrimSpace(f.lookup(inline.Value)) != "" {
			break
		}
		end--
	}
	if end == 0 {
		return stmts
	}
	if tag, ok := stmts[end-1].(*ast.ClosingTag); ok && f.closingTagDropped(tag.Loc) {
		return stmts[:end-1]
	}
	if t := terminatorOf(stmts[end-1]); t != nil && t.Form == ast.TerminatedByClosingTag && f.closingTagDropped(t.Loc) {
		return stmts[:end]
	}
	return stmts
}

func (f *formatter) closingTagDropped(s span.Span) bool {
	return !f.settings.IncludeClosingTag && f.onlyWhitespaceAfter(s.End)
}

func (f *formatter) keepsClosingTag(t *ast.Terminator) bool {
	return t != nil && t.Form == ast.TerminatedByClosingTag && !f.closingTagDropped(t.Loc)
}

// closingTag prints `?>` and the newline the tag swallowed, if any.
func (f *formatter) closingTag(s span.Span) doc.Doc {
	f.scripting = false
	if strings.HasSuffix(f.slice(s), "\n") {
		return doc.Concat(doc.Text("?>"), doc.LiteralLine)
	}
	return doc.Text("?>")
}

func (f *formatter) terminator(t *ast.Terminator) doc.Doc {
	if t.Form != ast.TerminatedByClosingTag || f.closingTagDropped(t.Loc) {
		return doc.Text(";")
	}
	return doc.Concat(doc.Space, f.closingTag(t.Loc))
}

// terminatorOf returns the terminator of a simple statement.
func terminatorOf(stmt ast.Statement) *ast.Terminator {
	switch s := stmt.(type) {
	case *ast.ExpressionStatement:
		return s.Terminator
	case *ast.Echo:
		return s.Terminator
	case *ast.EchoTag:
		return s.Terminator
	case *ast.Return:
		return s.Terminator
	case *ast.Continue:
		return s.Terminator
	case *ast.Break:
		return s.Terminator
	case *ast.Global:
		return s.Terminator
	case *ast.StaticVariables:
		return s.Terminator
	case *ast.Unset:
		return s.Terminator
	case *ast.Use:
		return s.Terminator
	case *ast.Constant:
		return s.Terminator
	case *ast.Goto:
		return s.Terminator
	case *ast.DoWhile:
		return s.Terminator
	case *ast.Declare:
		if s.Terminator != nil {
			return s.Terminator
		}
		return colonTerminator(s.Body)
	case *ast.HaltCompiler:
		return s.Terminator
	case *ast.Switch:
		return s.Terminator
	case *ast.If:
		switch {
		case s.Else != nil:
			return colonTerminator(s.Else.Body)
		case len(s.ElseIfs) > 0:
			return colonTerminator(s.ElseIfs[len(s.ElseIfs)-1].Body)
		}
		return colonTerminator(s.Body)
	case *ast.While:
		return colonTerminator(s.Body)
	case *ast.For:
		return colonTerminator(s.Body)
	case *ast.Foreach:
		return colonTerminator(s.Body)
	}
	return nil
}

func colonTerminator(body ast.Statement) *ast.Terminator {
	if b, ok := body.(*ast.ColonBody); ok {
		return b.Terminator
	}
	return nil
}

func (f *formatter) statement(stmt ast.Statement) doc.Doc {
	return f.wrap(stmt, func() doc.Doc {
		switch s := stmt.(type) {
		case *ast.OpeningTag:
			f.scripting = true
			if f.settings.KeywordCase == Uppercase {
				return doc.Text("<?PHP")
			}
			return doc.Text("<?php")
		case *ast.ClosingTag:
			return f.closingTag(s.Loc)
		case *ast.Inline:
			if !s.Shebang {
				f.scripting = false
			}
			return verbatim(f.lookup(s.Value))
		case *ast.EchoTag:
			f.scripting = true
			return doc.Concat(doc.NewGroup(doc.Text("<?= "), f.expressionList(s.Values)), f.terminator(s.Terminator))
		case *ast.Namespace:
			return f.namespace(s)
		case *ast.Use:
			return f.use(s)
		case *ast.Constant:
			return f.constant(s)
		case *ast.Function:
			return f.function(s)
		case *ast.Class:
			return f.class(s)
		case *ast.Interface:
			return f.iface(s)
		case *ast.Trait:
			return f.trait(s)
		case *ast.Enum:
			return f.enum(s)
		case *ast.Declare:
			return f.declare(s)
		case *ast.Goto:
			return doc.Concat(f.keyword("goto"), doc.Space, f.identifier(s.Label), f.terminator(s.Terminator))
		case *ast.Label:
			return doc.Concat(f.identifier(s.Name), doc.Text(":"))
		case *ast.Block:
			return f.block(s)
		case *ast.Try:
			return f.try(s)
		case *ast.Foreach:
			return f.foreach(s)
		case *ast.For:
			return f.forLoop(s)
		case *ast.While:
			return doc.Concat(f.keyword("while"), doc.Space, f.condition(s.Condition), f.clause(s.Body))
		case *ast.DoWhile:
			return f.doWhile(s)
		case *ast.Continue:
			return f.jump("continue", s.Level, s.Terminator)
		case *ast.Break:
			return f.jump("break", s.Level, s.Terminator)
		case *ast.Switch:
			return f.switchStatement(s)
		case *ast.If:
			return f.ifStatement(s)
		case *ast.Return:
			return f.returnStatement(s)
		case *ast.ExpressionStatement:
			return doc.Concat(f.expression(s.Expression), f.terminator(s.Terminator))
		case *ast.Echo:
			return doc.Concat(doc.NewGroup(f.keyword("echo"), doc.Space, f.expressionList(s.Values)), f.terminator(s.Terminator))
		case *ast.Global:
			vars := make([]doc.Doc, len(s.Variables))
			for i, v := range s.Variables {
				vars[i] = f.expression(v)
			}
			return doc.Concat(
				doc.NewGroup(f.keyword("global"), doc.Space, doc.Indented(f.commaList(vars))),
				f.terminator(s.Terminator),
			)
		case *ast.StaticVariables:
			return f.staticVariables(s)
		case *ast.HaltCompiler:
			f.scripting = false
			return doc.Concat(f.keyword("__halt_compiler"), doc.Text("()"), f.terminator(s.Terminator))
		case *ast.Unset:
			values := make([]doc.Doc, len(s.Values))
			for i, v := range s.Values {
				values[i] = f.expression(v)
			}
			list := f.delimited(doc.Text("("), values, ")", s.RightParenthesis.Start, false, false)
			return doc.Concat(f.keyword("unset"), list, f.terminator(s.Terminator))
		case *ast.Noop:
			return doc.Text(";")
		}
		panic("formatter: unknown statement " + string(stmt.Kind()))
	})
}

// expressionList prints comma separated values that may wrap.
func (f *formatter) expressionList(values []ast.Expression) doc.Doc {
	docs := make([]doc.Doc, len(values))
	for i, v := range values {
		docs[i] = f.expression(v)
	}
	if len(docs) == 1 {
		return docs[0]
	}
	return doc.Indented(f.commaList(docs))
}

// commaList joins docs with a comma and a line that breaks when the
// enclosing group does.
func (f *formatter) commaList(docs []doc.Doc) doc.Doc {
	return doc.Join(doc.Concat(doc.Text(","), doc.Line), docs)
}

func (f *formatter) identifier(i *ast.Identifier) doc.Doc {
	return doc.Text(f.lookup(i.Value))
}

// block prints `{ statements }`. Comments before the closing brace stay
// inside it.
func (f *formatter) block(b *ast.Block) doc.Doc {
	hasBody := false
	for _, stmt := range b.Statements {
		if _, noop := stmt.(*ast.Noop); !noop {
			hasBody = true
			break
		}
	}
	if !hasBody {
		if dangling := f.danglingComments(b.RightBrace.Start); dangling != nil {
			return doc.Concat(doc.Text("{"), dangling, doc.Text("}"))
		}
		if f.emptyBlockBreaks() {
			return doc.Concat(doc.Text("{"), doc.HardLine, doc.Text("}"))
		}
		return doc.Text("{}")
	}
	return doc.Concat(
		doc.Text("{"),
		doc.Indented(doc.HardLine, f.statements(b.Statements), f.closingComments(b.RightBrace.Start)),
		doc.HardLine,
		doc.Text("}"),
	)
}

// emptyBlockBreaks reports whether the empty block being printed keeps
// its braces on separate lines.
func (f *formatter) emptyBlockBreaks() bool {
	switch f.parent().(type) {
	case *ast.Function, *ast.Method, *ast.PropertyHook,
		*ast.Try, *ast.TryCatchClause, *ast.TryFinallyClause,
		*ast.If, *ast.IfElseIf, *ast.IfElse,
		*ast.While, *ast.DoWhile, *ast.For, *ast.Foreach:
		return true
	}
	return false
}

// closingComments prints the comments left before a closing delimiter
// at offset, each on its own line.
func (f *formatter) closingComments(offset span.Position) doc.Doc {
	comments := f.comments.ConsumeUpTo(offset)
	if len(comments) == 0 {
		return nil
	}
	parts := make([]doc.Doc, 0, len(comments)*3)
	for _, comment := range comments {
		parts = append(parts, doc.HardLine)
		if f.isPreviousLineEmpty(comment.Span.Start) {
			parts = append(parts, doc.HardLine)
		}
		parts = append(parts, f.comment(comment))
	}
	return doc.Concat(parts...)
}

// braceBefore separates a declaration from its opening brace. With the
// next-line style the brace still stays on the signature line when the
// signature itself broke.
func (f *formatter) braceBefore(style BraceStyle, signature doc.GroupID) doc.Doc {
	if style == SameLine {
		return doc.Space
	}
	if signature == 0 {
		return doc.HardLine
	}
	return doc.IfBreak{Break: doc.Space, Flat: doc.HardLine, GroupID: signature}
}

// clause prints the body of a control structure.
func (f *formatter) clause(body ast.Statement) doc.Doc {
	switch b := body.(type) {
	case *ast.Block:
		return doc.Concat(f.braceBefore(f.settings.ControlBraceStyle, 0), f.statement(body))
	case *ast.Noop:
		return doc.Text(";")
	case *ast.ColonBody:
		return f.wrap(b, func() doc.Doc { return f.colonBody(b) })
	}
	return doc.NewGroup(doc.Indented(doc.Line, f.statement(body)))
}

// colonBody prints `: statements` and, when the body ends its
// structure, the closing keyword. A `?>` right after the colon and an
// opening tag right before the keyword stay on the same line.
func (f *formatter) colonBody(b *ast.ColonBody) doc.Doc {
	end := f.closingKeyword()
	parts := []doc.Doc{doc.Text(":")}

	body := f.statements(b.Statements)
	var closing doc.Doc
	if b.Closes() {
		closing = f.closingComments(b.End.Start)
	}
	if !doc.IsEmpty(body) {
		parts = append(parts, doc.Indented(f.colonLead(b), body, closing))
	} else if closing != nil {
		parts = append(parts, doc.Indented(closing))
	}

	if !b.Closes() {
		return doc.Concat(parts...)
	}
	return doc.Concat(append(parts, f.colonTail(b, b.End.Start), f.keyword(end), f.terminator(b.Terminator))...)
}

// closingKeyword names the keyword that ends the `:` form of the
// structure being printed.
func (f *formatter) closingKeyword() string {
	switch f.parent().(type) {
	case *ast.While:
		return "endwhile"
	case *ast.For:
		return "endfor"
	case *ast.Foreach:
		return "endforeach"
	case *ast.Declare:
		return "enddeclare"
	}
	return "endif"
}

// colonLead separates the colon from the first statement of b.
func (f *formatter) colonLead(b *ast.ColonBody) doc.Doc {
	if len(b.Statements) > 0 {
		first := b.Statements[0]
		if _, ok := first.(*ast.ClosingTag); ok && !f.hasNewlineInRange(b.Colon.End, first.Span().Start) {
			return doc.Space
		}
	}
	return doc.HardLine
}

// colonTail separates the last statement of b from the keyword that
// follows it at next.
func (f *formatter) colonTail(b *ast.ColonBody, next span.Position) doc.Doc {
	if n := len(b.Statements); n > 0 {
		last := b.Statements[n-1]
		if _, ok := last.(*ast.OpeningTag); ok && !f.hasNewlineInRange(last.Span().End, next) {
			return doc.Space
		}
	}
	return doc.HardLine
}

// condition prints a parenthesized control structure condition.
func (f *formatter) condition(e ast.Expression) doc.Doc {
	return doc.NewGroup(doc.Text("("), doc.Indented(doc.SoftLine, f.expression(e)), doc.SoftLine, doc.Text(")"))
}

func (f *formatter) namespace(n *ast.Namespace) doc.Doc {
	parts := []doc.Doc{f.keyword("namespace")}
	if n.Name != nil {
		parts = append(parts, doc.Space, f.identifier(n.Name))
	}
	if n.Block != nil {
		parts = append(parts, doc.Space, f.statement(n.Block))
		return doc.Concat(parts...)
	}
	parts = append(parts, f.terminator(n.Terminator))
	if body := f.statements(n.Statements); !doc.IsEmpty(body) {
		parts = append(parts, doc.HardLine, doc.HardLine, body)
	}
	return doc.Concat(parts...)
}

func (f *formatter) useType(t *ast.UseType) doc.Doc {
	if t == nil {
		return nil
	}
	return doc.Concat(f.keyword(t.Kind.Text()), doc.Space)
}

func (f *formatter) use(u *ast.Use) doc.Doc {
	items := make([]doc.Doc, len(u.Items))
	for i, item := range u.Items {
		items[i] = f.wrap(item, func() doc.Doc {
			d := doc.Concat(f.useType(item.Type), f.identifier(item.Name))
			if item.Alias != nil {
				d = doc.Concat(d, doc.Space, f.keyword("as"), doc.Space, f.identifier(item.Alias))
			}
			return d
		})
	}

	head := doc.Concat(f.keyword("use"), doc.Space, f.useType(u.Type))
	if !u.IsGrouped() {
		return doc.Concat(doc.NewGroup(head, doc.Indented(f.commaList(items))), f.terminator(u.Terminator))
	}
	prefix := doc.Concat(head, f.identifier(u.Prefix), doc.Text("\\"))
	return doc.Concat(
		f.delimited(doc.Concat(prefix, doc.Text("{")), items, "}", u.RightBrace.Start, f.settings.TrailingComma, false),
		f.terminator(u.Terminator),
	)
}

func (f *formatter) constant(c *ast.Constant) doc.Doc {
	items := make([]doc.Doc, len(c.Items))
	for i, item := range c.Items {
		items[i] = f.constantItem(item)
	}
	return doc.Concat(
		f.attributes(c.Attributes, doc.HardLine),
		doc.NewGroup(f.keyword("const"), doc.Space, doc.Indented(f.commaList(items))),
		f.terminator(c.Terminator),
	)
}

func (f *formatter) constantItem(item *ast.ConstantItem) doc.Doc {
	return f.wrap(item, func() doc.Doc {
		return f.assignment(item, f.identifier(item.Name), "=", item.Value)
	})
}

func (f *formatter) function(fn *ast.Function) doc.Doc {
	id := f.arena.NewGroupID("function-signature")
	signature := doc.GroupWithID(id,
		f.keyword("function"),
		doc.Space,
		ampersand(fn.Ampersand),
		f.identifier(fn.Name),
		f.parameters(fn.Parameters),
		f.returnType(fn.ReturnType),
	)
	return doc.Concat(
		f.attributes(fn.Attributes, doc.HardLine),
		signature,
		f.braceBefore(f.settings.FunctionBraceStyle, id),
		f.statement(fn.Body),
	)
}

func ampersand(s *span.Span) doc.Doc {
	if s == nil {
		return nil
	}
	return doc.Text("&")
}

func (f *formatter) declare(d *ast.Declare) doc.Doc {
	items := make([]doc.Doc, len(d.Items))
	for i, item := range d.Items {
		items[i] = f.wrap(item, func() doc.Doc {
			equal := doc.Text("=")
			if f.settings.SpaceAroundDeclareEquals {
				equal = doc.Text(" = ")
			}
			return doc.Concat(f.identifier(item.Name), equal, f.expression(item.Value))
		})
	}

	if d.Terminator != nil {
		terminator := f.terminator(d.Terminator)
		if f.settings.StrictTypesSemicolon && f.isStrictTypes(d) && f.keepsClosingTag(d.Terminator) {
			terminator = doc.Concat(doc.Text(";"), terminator)
		}
		if f.settings.SplitMultiDeclare && len(items) > 1 {
			lines := make([]doc.Doc, len(items))
			for i, item := range items {
				lines[i] = doc.Concat(f.keyword("declare"), doc.Text("("), item, doc.Text(")"), doc.Text(";"))
			}
			lines[len(lines)-1] = doc.Concat(f.keyword("declare"), doc.Text("("), items[len(items)-1], doc.Text(")"), terminator)
			return doc.Join(doc.HardLine, lines)
		}
		return doc.Concat(f.keyword("declare"), f.delimited(doc.Text("("), items, ")", d.RightParenthesis.Start, false, false), terminator)
	}

	head := doc.Concat(f.keyword("declare"), f.delimited(doc.Text("("), items, ")", d.RightParenthesis.Start, false, false))
	if _, ok := d.Body.(*ast.Block); ok {
		return doc.Concat(head, doc.Space, f.statement(d.Body))
	}
	return doc.Concat(head, f.clause(d.Body))
}

func (f *formatter) isStrictTypes(d *ast.Declare) bool {
	return len(d.Items) == 1 && strings.EqualFold(f.lookup(d.Items[0].Name.Value), "strict_types")
}

func (f *formatter) try(t *ast.Try) doc.Doc {
	parts := []doc.Doc{f.keyword("try"), doc.Space, f.statement(t.Block)}
	for _, c := range t.Catches {
		parts = append(parts, f.handlerSeparator(c), f.wrap(c, func() doc.Doc {
			inner := f.hint(c.Hint)
			if c.Variable != nil {
				inner = doc.Concat(inner, doc.Space, f.expression(c.Variable))
			}
			return doc.Concat(f.keyword("catch"), doc.Space, doc.Text("("), inner, doc.Text(")"), doc.Space, f.statement(c.Block))
		}))
	}
	if t.Finally != nil {
		parts = append(parts, f.handlerSeparator(t.Finally), f.wrap(t.Finally, func() doc.Doc {
			return doc.Concat(f.keyword("finally"), doc.Space, f.statement(t.Finally.Block))
		}))
	}
	return doc.Concat(parts...)
}

// handlerSeparator keeps `} catch` and `} finally` together unless a
// comment on its own line leads the clause.
func (f *formatter) handlerSeparator(next ast.Node) doc.Doc {
	if f.hasLeadingOwnLineComment(next.Span()) {
		return doc.HardLine
	}
	return doc.Space
}

func (f *formatter) foreach(l *ast.Foreach) doc.Doc {
	target := f.destructuringTarget(l.Value)
	if l.Key != nil {
		target = doc.Concat(f.expression(l.Key), doc.Text(" => "), target)
	}
	header := doc.NewGroup(
		doc.Text("("),
		doc.Indented(doc.SoftLine, f.expression(l.Expression), doc.Space, f.keyword("as"), doc.Space, target),
		doc.SoftLine,
		doc.Text(")"),
	)
	return doc.Concat(f.keyword("foreach"), doc.Space, header, f.clause(l.Body))
}

func (f *formatter) forLoop(l *ast.For) doc.Doc {
	if len(l.Initializations) == 0 && len(l.Conditions) == 0 && len(l.Increments) == 0 {
		return doc.Concat(f.keyword("for"), doc.Space, doc.Text("(;;)"), f.clause(l.Body))
	}
	section := func(exprs []ast.Expression) doc.Doc {
		docs := make([]doc.Doc, len(exprs))
		for i, e := range exprs {
			docs[i] = f.expression(e)
		}
		return doc.NewGroup(f.commaList(docs))
	}
	header := doc.NewGroup(
		doc.Text("("),
		doc.Indented(
			doc.SoftLine,
			section(l.Initializations),
			doc.Text(";"),
			doc.Line,
			section(l.Conditions),
			doc.Text(";"),
			doc.Line,
			section(l.Increments),
		),
		doc.SoftLine,
		doc.Text(")"),
	)
	return doc.Concat(f.keyword("for"), doc.Space, header, f.clause(l.Body))
}

func (f *formatter) doWhile(d *ast.DoWhile) doc.Doc {
	body := f.clause(d.Body)
	separator := doc.HardLine
	if _, ok := d.Body.(*ast.Block); ok {
		separator = doc.Space
	}
	return doc.Concat(
		f.keyword("do"),
		body,
		separator,
		f.keyword("while"),
		doc.Space,
		f.condition(d.Condition),
		f.terminator(d.Terminator),
	)
}

func (f *formatter) jump(keyword string, level ast.Expression, t *ast.Terminator) doc.Doc {
	if level == nil {
		return doc.Concat(f.keyword(keyword), f.terminator(t))
	}
	return doc.Concat(f.keyword(keyword), doc.Space, f.expression(level), f.terminator(t))
}

func (f *formatter) switchStatement(s *ast.Switch) doc.Doc {
	if s.IsAlternative() {
		return f.alternativeSwitch(s)
	}
	head := doc.Concat(f.keyword("switch"), doc.Space, f.condition(s.Expression), f.braceBefore(f.settings.ControlBraceStyle, 0))
	if len(s.Cases) == 0 {
		if dangling := f.danglingComments(s.RightBrace.Start); dangling != nil {
			return doc.Concat(head, doc.Text("{"), dangling, doc.Text("}"))
		}
		return doc.Concat(head, doc.Text("{}"))
	}

	return doc.Concat(
		head,
		doc.Text("{"),
		doc.Indented(doc.HardLine, f.switchCases(s.Cases), f.closingComments(s.RightBrace.Start)),
		doc.HardLine,
		doc.Text("}"),
	)
}

// alternativeSwitch prints `switch (expr): cases endswitch;`.
func (f *formatter) alternativeSwitch(s *ast.Switch) doc.Doc {
	parts := []doc.Doc{f.keyword("switch"), doc.Space, f.condition(s.Expression), doc.Text(":")}
	closing := f.closingComments(s.RightBrace.Start)
	if len(s.Cases) > 0 {
		parts = append(parts, doc.Indented(doc.HardLine, f.switchCases(s.Cases), closing))
	} else if closing != nil {
		parts = append(parts, doc.Indented(closing))
	}
	return doc.Concat(append(parts, doc.HardLine, f.keyword("endswitch"), f.terminator(s.Terminator))...)
}

func (f *formatter) switchCases(cases []*ast.SwitchCase) doc.Doc {
	parts := make([]doc.Doc, 0, len(cases)*2)
	for i, c := range cases {
		if i > 0 {
			parts = append(parts, doc.HardLine)
			if f.isNextLineEmpty(cases[i-1].Span().End) {
				parts = append(parts, doc.HardLine)
			}
		}
		parts = append(parts, f.switchCase(c))
	}
	return doc.Concat(parts...)
}

func (f *formatter) switchCase(c *ast.SwitchCase) doc.Doc {
	return f.wrap(c, func() doc.Doc {
		label := doc.Concat(f.keyword("default"), doc.Text(":"))
		if !c.IsDefault() {
			label = doc.Concat(f.keyword("case"), doc.Space, f.expression(c.Expression), doc.Text(":"))
		}
		body := f.statements(c.Statements)
		if doc.IsEmpty(body) {
			return label
		}
		if len(c.Statements) == 1 {
			if _, ok := c.Statements[0].(*ast.Block); ok {
				return doc.Concat(label, doc.Space, body)
			}
		}
		return doc.Concat(label, doc.Indented(doc.HardLine, body))
	})
}

func (f *formatter) ifStatement(s *ast.If) doc.Doc {
	parts := []doc.Doc{f.keyword("if"), doc.Space, f.condition(s.Condition), f.clause(s.Body)}
	previous := s.Body
	for _, c := range s.ElseIfs {
		parts = append(parts, f.clauseSeparator(previous, c), f.wrap(c, func() doc.Doc {
			return doc.Concat(f.keyword("elseif"), doc.Space, f.condition(c.Condition), f.clause(c.Body))
		}))
		previous = c.Body
	}
	if s.Else != nil {
		parts = append(parts, f.clauseSeparator(previous, s.Else), f.wrap(s.Else, func() doc.Doc {
			if _, ok := s.Else.Body.(*ast.If); ok {
				return doc.Concat(f.keyword("else"), doc.Space, f.statement(s.Else.Body))
			}
			return doc.Concat(f.keyword("else"), f.clause(s.Else.Body))
		}))
	}
	return doc.Concat(parts...)
}

// clauseSeparator keeps `} else` together and puts a clause after an
// unbraced body, or one led by an own-line comment, on its own line.
func (f *formatter) clauseSeparator(previous ast.Statement, next ast.Node) doc.Doc {
	if f.hasLeadingOwnLineComment(next.Span()) {
		return doc.HardLine
	}
	switch b := previous.(type) {
	case *ast.Block:
		if f.settings.ControlBraceStyle == SameLine {
			return doc.Space
		}
	case *ast.ColonBody:
		return f.colonTail(b, next.Span().Start)
	}
	return doc.HardLine
}

func (f *formatter) returnStatement(r *ast.Return) doc.Doc {
	if r.Value == nil {
		return doc.Concat(f.keyword("return"), f.terminator(r.Terminator))
	}
	return doc.Concat(f.keyword("return"), doc.Space, f.returnArgument(r.Value), f.terminator(r.Terminator))
}

// returnArgument wraps a binary chain in parentheses when it has to
// break, so the continuation lines are indented under the keyword.
func (f *formatter) returnArgument(value ast.Expression) doc.Doc {
	if !isBinaryish(value) {
		return f.expression(value)
	}
	return doc.NewGroup(
		doc.IfBreak{Break: doc.Text("(")},
		doc.Indented(doc.SoftLine, f.expression(value)),
		doc.SoftLine,
		doc.IfBreak{Break: doc.Text(")")},
	)
}

func (f *formatter) staticVariables(s *ast.StaticVariables) doc.Doc {
	items := make([]doc.Doc, len(s.Items))
	for i, item := range s.Items {
		items[i] = f.wrap(item, func() doc.Doc {
			if item.Value == nil {
				return f.expression(item.Variable)
			}
			return f.assignment(item, f.expression(item.Variable), "=", item.Value)
		})
	}
	return doc.Concat(
		doc.NewGroup(f.keyword("static"), doc.Space, doc.Indented(f.commaList(items))),
		f.terminator(s.Terminator),
	)
}

// keywordText spells a keyword token kind in the configured case.
func (f *formatter) keywordText(k token.Kind) doc.Doc {
	return f.keyword(k.Text())
}
