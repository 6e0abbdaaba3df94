package linter

import (
	"github.com/carthage-software/fennec/pkg/ast"
	"github.com/carthage-software/fennec/pkg/reporting"
	"github.com/carthage-software/fennec/pkg/token"
)

// RedundantWriteVisibility reports write visibility modifiers that
// repeat the read visibility, as in `public public(set)`.
type RedundantWriteVisibility struct{}

func (RedundantWriteVisibility) Name() string { return "redundant-write-visibility" }

func (RedundantWriteVisibility) DefaultLevel() reporting.Level { return reporting.Help }

func (RedundantWriteVisibility) Check(ctx *Context, node ast.Node) {
	var modifiers []ast.Modifier
	switch n := node.(type) {
	case *ast.Property:
		modifiers = n.Modifiers
	case *ast.Parameter:
		modifiers = n.Modifiers
	default:
		return
	}

	read, write, ok := visibilities(modifiers)
	if !ok || writeVisibility[read.Kind] != write.Kind {
		return
	}

	issue := reporting.NewIssue(ctx.Level(), "identical write visibility has no effect").
		WithAnnotations(
			reporting.SecondaryAt(read.Loc),
			reporting.PrimaryAt(write.Loc).WithMessage("redundant write visibility."),
		).
		WithHelp("remove the redundant write visibility modifier.")
	ctx.ReportWithFix(issue, reporting.PotentiallyUnsafe, reporting.Edit{Span: ctx.extendOverSpaces(write.Loc)})
}

var writeVisibility = map[token.Kind]token.Kind{
	token.Public:    token.PublicSet,
	token.Protected: token.ProtectedSet,
	token.Private:   token.PrivateSet,
}

// visibilities returns the first read and the first write visibility
// among modifiers.
func visibilities(modifiers []ast.Modifier) (read, write ast.Modifier, ok bool) {
	var hasRead, hasWrite bool
	for _, m := range modifiers {
		switch m.Kind {
		case token.Public, token.Protected, token.Private:
			if !hasRead {
				read, hasRead = m, true
			}
		case token.PublicSet, token.ProtectedSet, token.PrivateSet:
			if !hasWrite {
				write, hasWrite = m, true
			}
		}
	}
	return read, write, hasRead && hasWrite
}
