package formatter

import (
	"github.com/carthage-software/fennec/pkg/ast"
	"github.com/carthage-software/fennec/pkg/doc"
	"github.com/carthage-software/fennec/pkg/span"
)

// chainLink is one `->member(args)`, `?->member` or `::member` step of
// a member chain.
type chainLink struct {
	node      ast.Expression
	operator  string
	at        span.Span
	member    ast.Selector
	arguments *ast.ArgumentList
	closure   bool
}

func (l chainLink) isCall() bool {
	return l.arguments != nil || l.closure
}

// unwindChain splits e into the expression the chain starts from and
// its links in source order.
func unwindChain(e ast.Expression) (ast.Expression, []chainLink) {
	var links []chainLink
	for {
		var link chainLink
		var object ast.Expression
		switch n := e.(type) {
		case *ast.MethodCall:
			object, link = n.Object, chainLink{operator: "->", at: n.Arrow, member: n.Method, arguments: n.Arguments}
		case *ast.NullSafeMethodCall:
			object, link = n.Object, chainLink{operator: "?->", at: n.QuestionArrow, member: n.Method, arguments: n.Arguments}
		case *ast.StaticMethodCall:
			object, link = n.Class, chainLink{operator: "::", at: n.DoubleColon, member: n.Method, arguments: n.Arguments}
		case *ast.MethodClosureCreation:
			object, link = n.Object, chainLink{operator: "->", at: n.Arrow, member: n.Method, closure: true}
		case *ast.StaticMethodClosureCreation:
			object, link = n.Class, chainLink{operator: "::", at: n.DoubleColon, member: n.Method, closure: true}
		case *ast.PropertyAccess:
			object, link = n.Object, chainLink{operator: "->", at: n.Arrow, member: n.Property}
		case *ast.NullSafePropertyAccess:
			object, link = n.Object, chainLink{operator: "?->", at: n.QuestionArrow, member: n.Property}
		case *ast.StaticPropertyAccess:
			object, link = n.Class, chainLink{operator: "::", at: n.DoubleColon, member: n.Property}
		case *ast.ClassConstantAccess:
			object, link = n.Class, chainLink{operator: "::", at: n.DoubleColon, member: n.Constant}
		default:
			for i, j := 0, len(links)-1; i < j; i, j = i+1, j-1 {
				links[i], links[j] = links[j], links[i]
			}
			return e, links
		}
		link.node = e
		links = append(links, link)
		e = object
	}
}

// memberChain prints a chain of member accesses and calls. Long chains
// put each call on its own line; shorter ones do so only when they do
// not fit.
func (f *formatter) memberChain(e ast.Expression) doc.Doc {
	root, links := unwindChain(e)
	// The outermost link leaves its trailing comments to the caller.
	links[len(links)-1].node = nil

	head := []doc.Doc{f.expression(root)}
	var groups [][]doc.Doc
	calls := 0
	commented := false

	_, classRoot := root.(*ast.Identifier)
	switch root.(type) {
	case *ast.Static, *ast.Self, *ast.Parent:
		classRoot = true
	}

	for i, link := range links {
		printed, hasComments := f.chainLink(link)
		commented = commented || hasComments
		if link.isCall() {
			calls++
		}

		switch {
		case groups == nil && !hasComments && (!link.isCall() || i == 0 && classRoot && link.operator == "::"):
			head = append(head, printed)
		case groups == nil || hasComments || links[i-1].isCall():
			groups = append(groups, []doc.Doc{printed})
		default:
			groups[len(groups)-1] = append(groups[len(groups)-1], printed)
		}
	}

	if len(groups) == 0 {
		return doc.Concat(head...)
	}

	threshold := f.settings.MethodChainBreakThreshold
	if commented || threshold > 0 && calls >= threshold {
		parts := make([]doc.Doc, 0, len(groups)*2)
		for _, g := range groups {
			parts = append(parts, doc.HardLine, doc.Concat(g...))
		}
		return doc.Concat(doc.Concat(head...), doc.Indent{Contents: doc.Concat(parts...)})
	}

	flat := doc.Concat(head...)
	for _, g := range groups {
		flat = doc.Concat(flat, doc.Concat(g...))
	}
	if calls < 2 {
		return flat
	}
	parts := make([]doc.Doc, 0, len(groups)*2)
	for _, g := range groups {
		group := doc.Concat(g...)
		if doc.WillBreak(group) {
			return flat
		}
		parts = append(parts, doc.SoftLine, group)
	}
	return doc.NewGroup(doc.Concat(head...), doc.Indent{Contents: doc.Concat(parts...)})
}

// chainLink prints one link with the comments around its operator. The
// second result reports whether comments preceded the operator.
func (f *formatter) chainLink(link chainLink) (doc.Doc, bool) {
	var parts []doc.Doc
	leading := f.comments.ConsumeUpTo(link.at.Start)
	for _, comment := range leading {
		parts = append(parts, f.comment(comment), doc.HardLine)
	}

	parts = append(parts, doc.Text(link.operator), f.selector(link.member))
	switch {
	case link.closure:
		parts = append(parts, doc.Text("(...)"))
	case link.arguments != nil:
		parts = append(parts, f.arguments(link.arguments))
	}
	if link.node != nil {
		parts = append(parts, f.trailingComments(link.node.Span().End, false))
	}
	return doc.Concat(parts...), len(leading) > 0
}
