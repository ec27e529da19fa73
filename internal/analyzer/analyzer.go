// Package analyzer implements type checking for the language. Expressions
// are inferred against a mutable unification-based type system; pipelines
// are rewritten into assignment sequences as part of checking, so the tree
// the analyzer produces is already desugared.
package analyzer

import (
	"github.com/funvibe/funpipe/internal/ast"
	"github.com/funvibe/funpipe/internal/config"
	"github.com/funvibe/funpipe/internal/diagnostics"
	"github.com/funvibe/funpipe/internal/symbols"
	"github.com/funvibe/funpipe/internal/token"
	"github.com/funvibe/funpipe/internal/typed"
	"github.com/funvibe/funpipe/internal/typesystem"
)

// Options control which warnings the typer emits. Both default to on and can
// be switched off per project in funpipe.yml.
type Options struct {
	WarnUnreachable  bool
	WarnPlaceholders bool
}

func DefaultOptions() Options {
	return Options{WarnUnreachable: true, WarnPlaceholders: true}
}

// OptionsFromProject applies the manifest's warning toggles.
func OptionsFromProject(p *config.Project) Options {
	return Options{
		WarnUnreachable:  p.Warnings.UnreachableEnabled(),
		WarnPlaceholders: p.Warnings.TodoEnabled(),
	}
}

// Typer checks statements one at a time against a symbol table, producing a
// typed tree and diagnostics. A Typer is single-use per program and not safe
// for concurrent use: unification mutates type variables in place.
type Typer struct {
	table    *symbols.SymbolTable
	warnings diagnostics.Sink
	opts     Options

	uid uint64

	// previousPanics is set once an aborting expression (todo or panic) has
	// been inferred in the current body, and cleared on entering a nested
	// function body, whose code runs at call time.
	previousPanics bool
	// warnedUnreachable keeps a body from reporting every statement after
	// an abort; only the first unreachable stretch is flagged.
	warnedUnreachable bool
}

// New returns a Typer that resolves names in table and reports warnings to
// sink.
func New(table *symbols.SymbolTable, sink diagnostics.Sink, opts Options) *Typer {
	if sink == nil {
		sink = &diagnostics.Collector{}
	}
	return &Typer{table: table, warnings: sink, opts: opts}
}

// CheckProgram checks every top-level statement. A statement that fails to
// check contributes an error and is dropped from the typed tree; checking
// continues with the next statement so one mistake does not hide the rest.
func (t *Typer) CheckProgram(program *ast.Program) ([]typed.Statement, []*diagnostics.DiagnosticError) {
	var statements []typed.Statement
	var errs []*diagnostics.DiagnosticError

	for _, stmt := range program.Statements {
		t.checkStatementReachable(stmt)

		checked, err := t.inferStatement(stmt)
		if err != nil {
			errs = append(errs, t.asDiagnostic(err, stmt))
			t.bindFailed(stmt)
			continue
		}
		statements = append(statements, checked)
	}

	return statements, errs
}

func (t *Typer) inferStatement(stmt ast.Statement) (typed.Statement, error) {
	switch n := stmt.(type) {
	case *ast.LetStatement:
		return t.inferLetStatement(n)
	case *ast.FunctionStatement:
		return t.inferFunctionStatement(n)
	case *ast.ExpressionStatement:
		value, err := t.inferExpression(n.Expression)
		if err != nil {
			return nil, err
		}
		return &typed.ExpressionStatement{Loc: value.Span(), Expression: value}, nil
	default:
		return nil, t.typeErrorf(diagnostics.ErrT007, stmt, "unhandled statement %T", stmt)
	}
}

func (t *Typer) inferLetStatement(n *ast.LetStatement) (typed.Statement, error) {
	value, err := t.inferExpression(n.Value)
	if err != nil {
		return nil, err
	}

	if n.TypeAnnotation != nil {
		want, err := t.typeFromAnnotation(n.TypeAnnotation)
		if err != nil {
			return nil, err
		}
		if uerr := typesystem.Unify(want, value.Type()); uerr != nil {
			return nil, t.convertUnifyError(uerr, n.Value.Span())
		}
	}

	t.table.Define(n.Name.Value, n.Name.Span(), value.Type())

	pattern := &typed.VarPattern{Loc: n.Name.Span(), Name: n.Name.Value, Typ: value.Type()}
	return &typed.Assignment{Loc: n.Span(), Pattern: pattern, Value: value}, nil
}

func (t *Typer) inferFunctionStatement(n *ast.FunctionStatement) (typed.Statement, error) {
	// Bind the name before checking the body so the function can call
	// itself. The binding is a fresh variable, so recursion is monomorphic.
	self := t.newUnbound()
	t.table.Define(n.Name.Value, n.Name.Span(), self)

	fn, err := t.inferFunction(n.Parameters, n.ReturnType, n.Body, n.Span())
	if err != nil {
		return nil, err
	}
	if uerr := typesystem.Unify(self, fn.Type()); uerr != nil {
		return nil, t.convertUnifyError(uerr, n.Name.Span())
	}

	t.table.Define(n.Name.Value, n.Name.Span(), fn.Type())

	pattern := &typed.VarPattern{Loc: n.Name.Span(), Name: n.Name.Value, Typ: fn.Type()}
	return &typed.Assignment{Loc: n.Span(), Pattern: pattern, Value: fn}, nil
}

// inferFunction checks a function's parameters and body, shared between
// named functions and literals. The body is checked in an enclosed scope and
// with a clean abort flag, since the body's code runs when the function is
// called, not where it is written.
func (t *Typer) inferFunction(params []*ast.FunctionParameter, returnAnnotation ast.Type, body *ast.BlockStatement, span token.Span) (*typed.Fn, error) {
	paramTypes := make([]typesystem.Type, len(params))
	typedParams := make([]*typed.FnParam, len(params))
	for i, p := range params {
		var pt typesystem.Type
		if p.TypeAnnotation != nil {
			var err error
			pt, err = t.typeFromAnnotation(p.TypeAnnotation)
			if err != nil {
				return nil, err
			}
		} else {
			pt = t.newUnbound()
		}
		paramTypes[i] = pt
		typedParams[i] = &typed.FnParam{Loc: p.Span(), Name: p.Name.Value, Typ: pt}
	}

	outer := t.table
	savedPanics, savedWarned := t.previousPanics, t.warnedUnreachable
	t.table = symbols.NewEnclosedSymbolTable(outer)
	t.previousPanics, t.warnedUnreachable = false, false
	defer func() {
		t.table = outer
		t.previousPanics, t.warnedUnreachable = savedPanics, savedWarned
	}()

	for i, p := range params {
		t.table.Define(p.Name.Value, p.Span(), paramTypes[i])
	}

	bodyStatements, bodyType, err := t.inferBlock(body)
	if err != nil {
		return nil, err
	}

	if returnAnnotation != nil {
		want, aerr := t.typeFromAnnotation(returnAnnotation)
		if aerr != nil {
			return nil, aerr
		}
		if uerr := typesystem.Unify(want, bodyType); uerr != nil {
			return nil, t.convertUnifyError(uerr, bodyValueSpan(body))
		}
	}

	fnType := typesystem.Fn(paramTypes, bodyType)
	return &typed.Fn{Loc: span, Params: typedParams, Body: bodyStatements, Typ: fnType}, nil
}

// inferBlock checks a body. The body's value is the value of its last
// expression statement; a body that ends in a binding, or an empty body, has
// value Nil. Unlike the top level, a body stops at its first error.
func (t *Typer) inferBlock(block *ast.BlockStatement) ([]typed.Statement, typesystem.Type, error) {
	var statements []typed.Statement
	var result typesystem.Type = typesystem.NilType

	for _, stmt := range block.Statements {
		t.checkStatementReachable(stmt)

		checked, err := t.inferStatement(stmt)
		if err != nil {
			return nil, nil, err
		}
		statements = append(statements, checked)

		if es, ok := checked.(*typed.ExpressionStatement); ok {
			result = es.Expression.Type()
		} else {
			result = typesystem.NilType
		}
	}

	return statements, result, nil
}

// bindFailed gives a failed let or fn statement a placeholder binding so
// later statements do not pile up undefined symbol errors on top of the real
// one.
func (t *Typer) bindFailed(stmt ast.Statement) {
	var name *ast.Identifier
	switch n := stmt.(type) {
	case *ast.LetStatement:
		name = n.Name
	case *ast.FunctionStatement:
		name = n.Name
	default:
		return
	}
	if name == nil {
		return
	}
	if _, ok := t.table.Find(name.Value); ok {
		return
	}
	t.table.Define(name.Value, name.Span(), t.newUnbound())
}

func (t *Typer) typeFromAnnotation(annotation ast.Type) (typesystem.Type, error) {
	switch n := annotation.(type) {
	case *ast.NamedType:
		switch n.Name {
		case config.IntTypeName:
			return typesystem.IntType, nil
		case config.FloatTypeName:
			return typesystem.FloatType, nil
		case config.StringTypeName:
			return typesystem.StringType, nil
		case config.BoolTypeName:
			return typesystem.BoolType, nil
		case config.NilTypeName:
			return typesystem.NilType, nil
		default:
			return nil, t.typeErrorf(diagnostics.ErrT008, n, "unknown type: %s", n.Name)
		}
	case *ast.FunctionType:
		params := make([]typesystem.Type, len(n.Parameters))
		for i, p := range n.Parameters {
			pt, err := t.typeFromAnnotation(p)
			if err != nil {
				return nil, err
			}
			params[i] = pt
		}
		ret, err := t.typeFromAnnotation(n.ReturnType)
		if err != nil {
			return nil, err
		}
		return typesystem.Fn(params, ret), nil
	default:
		return nil, t.typeErrorf(diagnostics.ErrT007, annotation, "unhandled type annotation %T", annotation)
	}
}

// newUnbound mints a fresh unbound type variable.
func (t *Typer) newUnbound() *typesystem.TVar {
	t.uid++
	return typesystem.NewTVar(t.uid)
}

// locatable is anything that can anchor a diagnostic: every AST node carries
// both its defining token and a source span.
type locatable interface {
	GetToken() token.Token
	Span() token.Span
}

func (t *Typer) typeErrorf(code diagnostics.ErrorCode, node locatable, format string, args ...interface{}) *diagnostics.DiagnosticError {
	return diagnostics.NewErrorf(code, node.GetToken(), format, args...).WithSpan(node.Span())
}

// errorAt anchors a diagnostic at a bare span, for errors raised against
// already-typed expressions that no longer carry tokens. Line and column are
// filled in later from the span.
func (t *Typer) errorAt(code diagnostics.ErrorCode, span token.Span, format string, args ...interface{}) *diagnostics.DiagnosticError {
	tok := token.Token{Offset: span.Start, EndOffset: span.End}
	return diagnostics.NewErrorf(code, tok, format, args...).WithSpan(span)
}

// convertUnifyError turns a unification failure into a diagnostic anchored
// at span.
func (t *Typer) convertUnifyError(err error, span token.Span) *diagnostics.DiagnosticError {
	switch e := err.(type) {
	case *typesystem.MismatchError:
		return t.errorAt(diagnostics.ErrT001, span, "type mismatch: expected %s, got %s", e.Expected, e.Given)
	case *typesystem.RecursiveTypeError:
		return t.errorAt(diagnostics.ErrT006, span, "recursive type")
	default:
		return t.errorAt(diagnostics.ErrT007, span, "unification failed: %v", err)
	}
}

func (t *Typer) asDiagnostic(err error, stmt ast.Statement) *diagnostics.DiagnosticError {
	if diag, ok := err.(*diagnostics.DiagnosticError); ok {
		return diag
	}
	return t.typeErrorf(diagnostics.ErrT007, stmt, "internal error: %v", err)
}

// bodyValueSpan locates the expression a body's value comes from, for
// anchoring return type mismatches.
func bodyValueSpan(body *ast.BlockStatement) token.Span {
	if n := len(body.Statements); n > 0 {
		return body.Statements[n-1].Span()
	}
	return body.Span()
}
