package analyzer

import (
	"github.com/funvibe/funpipe/internal/ast"
	"github.com/funvibe/funpipe/internal/config"
	"github.com/funvibe/funpipe/internal/diagnostics"
	"github.com/funvibe/funpipe/internal/token"
	"github.com/funvibe/funpipe/internal/typed"
	"github.com/funvibe/funpipe/internal/typesystem"
)

// pipeTyper rewrites a pipe chain into a sequence of assignments plus a
// final expression while typing it. Each intermediate step's value is bound
// to config.PipeVariable; the next step reads it back through an implicit
// argument, picking one of three shapes:
//
//	a |> b(c)  becomes  b(a, c)     when b takes one more argument than given
//	a |> b(c)  becomes  b(c)(a)     for any other call
//	a |> b     becomes  b(a)        when the step is not a call
type pipeTyper struct {
	typer *Typer

	size int

	// argumentType and argumentSpan describe the value the previous step
	// produced, i.e. what the next step is applied to.
	argumentType typesystem.Type
	argumentSpan token.Span

	span token.Span

	assignments []*typed.Assignment
}

// inferPipeline types a pipe chain. The chain's step variable must not leak:
// the scope is snapshotted up front and put back whichever way checking
// ends, so neither the binding itself nor anything it shadowed is disturbed.
func (t *Typer) inferPipeline(n *ast.Pipeline) (typed.Expression, error) {
	saved := t.table.Snapshot()
	defer t.table.Restore(saved)

	p := &pipeTyper{typer: t}
	return p.run(n)
}

func (p *pipeTyper) run(n *ast.Pipeline) (typed.Expression, error) {
	if len(n.Expressions) < 2 {
		return nil, p.typer.errorAt(diagnostics.ErrT007, n.Span(), "pipeline with fewer than two elements")
	}

	first, err := p.typer.inferExpression(n.Expressions[0])
	if err != nil {
		return nil, err
	}

	p.size = len(n.Expressions)
	p.span = first.Span().Cover(n.Expressions[p.size-1].Span())
	p.pushAssignment(first)

	finally, err := p.inferEachExpression(n.Expressions[1:], first.Span())
	if err != nil {
		return nil, err
	}

	return &typed.Pipeline{Loc: p.span, Assignments: p.assignments, Finally: finally}, nil
}

func (p *pipeTyper) inferEachExpression(rest []ast.Expression, firstSpan token.Span) (typed.Expression, error) {
	var finally typed.Expression
	var previousSpan *token.Span

	for i, expression := range rest {
		p.typer.warnIfTodoOrPanicAsFunction(expression, firstSpan, previousSpan)
		if p.typer.previousPanics {
			p.typer.warnUnreachableAt(expression.Span())
		}

		var step typed.Expression
		var err error
		switch call := expression.(type) {
		case *ast.CallExpression:
			fun, ferr := p.typer.inferExpression(call.Function)
			if ferr != nil {
				return nil, ferr
			}
			if fn, ok := typesystem.AsFn(fun.Type()); ok && len(fn.Params) == len(call.Arguments)+1 {
				step, err = p.inferInsertPipe(fun, call)
			} else {
				step, err = p.inferApplyToCallPipe(fun, call)
			}
		default:
			step, err = p.inferApplyPipe(expression)
		}
		if err != nil {
			return nil, err
		}

		span := step.Span()
		previousSpan = &span

		// The last step is the pipeline's value and gets no binding.
		if i == len(rest)-1 {
			finally = step
		} else {
			p.pushAssignment(step)
		}
	}

	return finally, nil
}

// inferInsertPipe types a |> b(c) as b(a, c): the piped value becomes the
// call's first argument.
func (p *pipeTyper) inferInsertPipe(fun typed.Expression, call *ast.CallExpression) (typed.Expression, error) {
	args := make([]*ast.CallArgument, 0, len(call.Arguments)+1)
	args = append(args, p.untypedPipeArgument())
	args = append(args, call.Arguments...)
	return p.typer.inferCall(fun, args, call.Span())
}

// inferApplyToCallPipe types a |> b(c) as b(c)(a): the call is checked as
// written and its result applied to the piped value. This covers curried
// targets, where b(c) returns the function that consumes a.
func (p *pipeTyper) inferApplyToCallPipe(fun typed.Expression, call *ast.CallExpression) (typed.Expression, error) {
	out, err := p.typer.inferCall(fun, call.Arguments, call.Span())
	if err != nil {
		return nil, err
	}
	args := []*ast.CallArgument{p.untypedPipeArgument()}
	return p.typer.inferCall(out, args, call.Span())
}

// inferApplyPipe types a |> b as b(a): the step is constrained to be a
// one-argument function of the piped value. A unification failure here is
// inspected to decide whether it is really a pipe mismatch, so the caller
// can be told the piped value is at fault rather than the whole step.
func (p *pipeTyper) inferApplyPipe(expression ast.Expression) (typed.Expression, error) {
	fun, err := p.typer.inferExpression(expression)
	if err != nil {
		return nil, err
	}

	ret := p.typer.newUnbound()
	want := typesystem.Fn([]typesystem.Type{p.argumentType}, ret)
	if uerr := typesystem.Unify(fun.Type(), want); uerr != nil {
		diag := p.typer.convertUnifyError(uerr, fun.Span())
		if isPipeTypeMismatch(uerr) {
			diag.WithSituation(diagnostics.SituationPipeMismatch)
		}
		return nil, diag
	}

	// The call node keeps the step's own span, not the whole chain's, so a
	// later diagnostic against it points at the function that was applied.
	return &typed.Call{
		Loc:  fun.Span(),
		Fun:  fun,
		Args: []*typed.CallArgument{p.typedPipeArgument()},
		Typ:  ret,
	}, nil
}

// isPipeTypeMismatch reports whether a unification failure means the piped
// value did not fit the step's first parameter, as opposed to the step
// having the wrong shape entirely. That is the case when both sides are
// function types of the same arity whose first parameters disagree.
func isPipeTypeMismatch(err error) bool {
	mismatch, ok := err.(*typesystem.MismatchError)
	if !ok {
		return false
	}
	expected, ok := typesystem.AsFn(mismatch.Expected)
	if !ok {
		return false
	}
	given, ok := typesystem.AsFn(mismatch.Given)
	if !ok {
		return false
	}
	if len(expected.Params) == 0 || len(expected.Params) != len(given.Params) {
		return false
	}
	return typesystem.Unify(expected.Params[0], given.Params[0]) != nil
}

// untypedPipeArgument references the step variable as an implicit AST
// argument, for steps rewritten before being typed. The identifier's token
// is synthesized to sit at the previous step's span, so a diagnostic about
// the piped value points at the value rather than at the step consuming it.
func (p *pipeTyper) untypedPipeArgument() *ast.CallArgument {
	tok := token.Token{
		Type:      token.IDENT,
		Lexeme:    config.PipeVariable,
		Literal:   config.PipeVariable,
		Offset:    p.argumentSpan.Start,
		EndOffset: p.argumentSpan.End,
	}
	return &ast.CallArgument{
		Value:    &ast.Identifier{Token: tok, Value: config.PipeVariable},
		Implicit: true,
	}
}

// typedPipeArgument references the step variable directly as a typed node,
// for steps whose rewrite happens after typing.
func (p *pipeTyper) typedPipeArgument() *typed.CallArgument {
	return &typed.CallArgument{
		Loc:      p.argumentSpan,
		Value:    &typed.Var{Loc: p.argumentSpan, Name: config.PipeVariable, Typ: p.argumentType},
		Implicit: true,
	}
}

// pushAssignment binds expression's value to the step variable and records
// the binding. Later steps that read the variable, directly or through an
// implicit argument, see this type.
func (p *pipeTyper) pushAssignment(expression typed.Expression) {
	p.argumentType = expression.Type()
	p.argumentSpan = expression.Span()

	p.typer.table.DefineLocal(config.PipeVariable, p.argumentSpan, p.argumentType)

	pattern := &typed.VarPattern{Loc: p.argumentSpan, Name: config.PipeVariable, Typ: p.argumentType}
	p.assignments = append(p.assignments, &typed.Assignment{
		Loc:     p.argumentSpan,
		Pattern: pattern,
		Value:   expression,
	})
}
