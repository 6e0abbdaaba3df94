package linter

import (
	"github.com/carthage-software/fennec/pkg/ast"
	"github.com/carthage-software/fennec/pkg/reporting"
	"github.com/carthage-software/fennec/pkg/token"
)

// NoErrorControlOperator reports uses of the `@` operator.
type NoErrorControlOperator struct{}

func (NoErrorControlOperator) Name() string { return "no-error-control-operator" }

func (NoErrorControlOperator) DefaultLevel() reporting.Level { return reporting.Error }

func (NoErrorControlOperator) Check(ctx *Context, node ast.Node) {
	op, ok := node.(*ast.UnaryPrefixOperation)
	if !ok || op.Operator.Kind != token.At {
		return
	}
	issue := reporting.NewIssue(ctx.Level(), "unsafe use of error control operator").
		WithAnnotations(
			reporting.PrimaryAt(op.Operator.Loc),
			reporting.SecondaryAt(op.Value.Span()),
		).
		WithNote("error control operator hide potential errors and make debugging more difficult.").
		WithHelp("remove the `@` and use `set_error_handler` to handle errors instead.")
	ctx.ReportWithFix(issue, reporting.Safe, reporting.Edit{Span: op.Operator.Loc})
}
