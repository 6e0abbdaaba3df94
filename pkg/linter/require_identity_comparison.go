package linter

import (
	"github.com/carthage-software/fennec/pkg/ast"
	"github.com/carthage-software/fennec/pkg/reporting"
	"github.com/carthage-software/fennec/pkg/token"
)

// RequireIdentityComparison reports `==` and `!=`, which coerce their
// operands before comparing.
type RequireIdentityComparison struct{}

func (RequireIdentityComparison) Name() string { return "require-identity-comparison" }

func (RequireIdentityComparison) DefaultLevel() reporting.Level { return reporting.Warning }

func (RequireIdentityComparison) Check(ctx *Context, node ast.Node) {
	cmp, ok := node.(*ast.ComparisonOperation)
	if !ok {
		return
	}

	var message, note, help, replacement string
	switch cmp.Operator.Kind {
	case token.EqualEqual:
		message = "use identity comparison `===` instead of equality comparison `==`"
		note = "identity comparison `===` checks for both value and type equality, " +
			"while equality comparison `==` performs type coercion, which can lead to unexpected results"
		help = "use `===` to ensure both value and type are equal"
		replacement = "==="
	case token.BangEqual:
		message = "use identity inequality `!==` instead of inequality comparison `!=`"
		note = "identity inequality `!==` checks for both value and type inequality, " +
			"while inequality comparison `!=` performs type coercion, which can lead to unexpected results"
		help = "use `!==` to ensure both value and type are different"
		replacement = "!=="
	default:
		return
	}

	issue := reporting.NewIssue(ctx.Level(), message).
		WithAnnotations(
			reporting.PrimaryAt(cmp.Operator.Loc),
			reporting.SecondaryAt(cmp.LHS.Span()),
			reporting.SecondaryAt(cmp.RHS.Span()),
		).
		WithNote(note).
		WithHelp(help)
	ctx.ReportWithFix(issue, reporting.Unsafe, reporting.Edit{Span: cmp.Operator.Loc, Replacement: replacement})
}
