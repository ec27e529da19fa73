package analyzer

import (
	"github.com/funvibe/funpipe/internal/ast"
	"github.com/funvibe/funpipe/internal/diagnostics"
	"github.com/funvibe/funpipe/internal/token"
	"github.com/funvibe/funpipe/internal/typed"
	"github.com/funvibe/funpipe/internal/typesystem"
)

// inferCall checks the application of an already-inferred function
// expression to a list of argument nodes. span covers the whole call.
func (t *Typer) inferCall(fun typed.Expression, args []*ast.CallArgument, span token.Span) (*typed.Call, error) {
	fn, err := t.matchFunType(fun, len(args))
	if err != nil {
		return nil, err
	}

	typedArgs := make([]*typed.CallArgument, 0, len(args))
	for i, arg := range args {
		if arg.Label != nil {
			return nil, t.typeErrorf(diagnostics.ErrT005, arg.Label, "unexpected argument label %q", arg.Label.Value)
		}

		value, err := t.inferExpression(arg.Value)
		if err != nil {
			return nil, err
		}
		if uerr := typesystem.Unify(fn.Params[i], value.Type()); uerr != nil {
			return nil, t.convertUnifyError(uerr, arg.Span())
		}

		typedArgs = append(typedArgs, &typed.CallArgument{
			Loc:      arg.Span(),
			Value:    value,
			Implicit: arg.Implicit,
		})
	}

	return &typed.Call{Loc: span, Fun: fun, Args: typedArgs, Typ: fn.Return}, nil
}

// matchFunType resolves the callee's type to a function type of the given
// arity. A callee whose type is still unbound is constrained to one, so
// calls through unannotated parameters work out.
func (t *Typer) matchFunType(fun typed.Expression, arity int) (*typesystem.TFunc, error) {
	switch ft := typesystem.Resolve(fun.Type()).(type) {
	case *typesystem.TFunc:
		if len(ft.Params) != arity {
			return nil, t.errorAt(diagnostics.ErrT004, fun.Span(), "incorrect arity: expected %d arguments, got %d", len(ft.Params), arity)
		}
		return ft, nil

	case *typesystem.TVar:
		params := make([]typesystem.Type, arity)
		for i := range params {
			params[i] = t.newUnbound()
		}
		fn := typesystem.Fn(params, t.newUnbound())
		if uerr := typesystem.Unify(ft, fn); uerr != nil {
			return nil, t.convertUnifyError(uerr, fun.Span())
		}
		return fn, nil

	default:
		return nil, t.errorAt(diagnostics.ErrT003, fun.Span(), "expected function, got %s", ft)
	}
}
