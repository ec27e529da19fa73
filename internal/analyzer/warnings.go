package analyzer

import (
	"github.com/funvibe/funpipe/internal/ast"
	"github.com/funvibe/funpipe/internal/diagnostics"
	"github.com/funvibe/funpipe/internal/token"
)

// warnIfTodoOrPanicAsFunction warns when a pipeline step is a bare todo or
// panic marker, or a call with a marker in function position. Such a step
// typechecks at any type, but evaluation aborts before the piped value is
// used, so whatever was piped in is discarded. ArgsSpan covers the steps
// that produced that value.
func (t *Typer) warnIfTodoOrPanicAsFunction(expression ast.Expression, firstSpan token.Span, previousSpan *token.Span) {
	if !t.opts.WarnPlaceholders {
		return
	}

	marker := markerOf(expression)
	if marker == diagnostics.MarkerNone {
		return
	}

	argsSpan := firstSpan
	if previousSpan != nil {
		argsSpan = token.Span{Start: firstSpan.Start, End: previousSpan.End}
	}

	t.warnings.Emit(&diagnostics.Warning{
		Kind:     diagnostics.WarnPlaceholderUsedAsFunction,
		Marker:   marker,
		Span:     expression.Span(),
		ArgsSpan: argsSpan,
		Args:     1,
	})
}

// markerOf classifies an expression as an aborting marker, either bare or in
// call position as in todo("later").
func markerOf(expression ast.Expression) diagnostics.MarkerKind {
	switch n := expression.(type) {
	case *ast.Todo:
		return diagnostics.MarkerTodo
	case *ast.Panic:
		return diagnostics.MarkerPanic
	case *ast.CallExpression:
		switch n.Function.(type) {
		case *ast.Todo:
			return diagnostics.MarkerTodo
		case *ast.Panic:
			return diagnostics.MarkerPanic
		}
	}
	return diagnostics.MarkerNone
}

// warnUnreachableAt flags code that follows an aborting expression. Only the
// first unreachable stretch in a body is reported; everything after it is
// implied.
func (t *Typer) warnUnreachableAt(span token.Span) {
	if !t.opts.WarnUnreachable || t.warnedUnreachable {
		return
	}
	t.warnedUnreachable = true
	t.warnings.Emit(&diagnostics.Warning{
		Kind: diagnostics.WarnUnreachableCode,
		Span: span,
	})
}

func (t *Typer) checkStatementReachable(stmt ast.Statement) {
	if t.previousPanics {
		t.warnUnreachableAt(stmt.Span())
	}
}
