package analyzer

import (
	"github.com/funvibe/funpipe/internal/ast"
	"github.com/funvibe/funpipe/internal/config"
	"github.com/funvibe/funpipe/internal/diagnostics"
	"github.com/funvibe/funpipe/internal/typed"
	"github.com/funvibe/funpipe/internal/typesystem"
)

func (t *Typer) inferExpression(expr ast.Expression) (typed.Expression, error) {
	switch n := expr.(type) {
	case *ast.IntegerLiteral:
		return &typed.Int{Loc: n.Span(), Value: n.Value}, nil
	case *ast.FloatLiteral:
		return &typed.Float{Loc: n.Span(), Value: n.Value}, nil
	case *ast.StringLiteral:
		return &typed.String{Loc: n.Span(), Value: n.Value}, nil
	case *ast.BooleanLiteral:
		return &typed.Bool{Loc: n.Span(), Value: n.Value}, nil
	case *ast.Identifier:
		return t.inferIdentifier(n)
	case *ast.PrefixExpression:
		return t.inferPrefixExpression(n)
	case *ast.InfixExpression:
		return t.inferInfixExpression(n)
	case *ast.CallExpression:
		fun, err := t.inferExpression(n.Function)
		if err != nil {
			return nil, err
		}
		call, err := t.inferCall(fun, n.Arguments, n.Span())
		if err != nil {
			return nil, err
		}
		return call, nil
	case *ast.FunctionLiteral:
		fn, err := t.inferFunction(n.Parameters, n.ReturnType, n.Body, n.Span())
		if err != nil {
			return nil, err
		}
		return fn, nil
	case *ast.Pipeline:
		return t.inferPipeline(n)
	case *ast.Todo:
		// Typechecks at any type so unfinished code can still be analyzed.
		// Evaluation would abort here, which drives the unreachable warning.
		t.previousPanics = true
		return &typed.Todo{Loc: n.Span(), Typ: t.newUnbound()}, nil
	case *ast.Panic:
		t.previousPanics = true
		return &typed.Panic{Loc: n.Span(), Typ: t.newUnbound()}, nil
	default:
		return nil, t.typeErrorf(diagnostics.ErrT007, expr, "unhandled expression %T", expr)
	}
}

func (t *Typer) inferIdentifier(n *ast.Identifier) (typed.Expression, error) {
	symbol, ok := t.table.Find(n.Value)
	if !ok {
		return nil, t.typeErrorf(diagnostics.ErrT002, n, "undefined symbol: %s", n.Value)
	}
	return &typed.Var{Loc: n.Span(), Name: n.Value, Typ: symbol.Type}, nil
}

func (t *Typer) inferPrefixExpression(n *ast.PrefixExpression) (typed.Expression, error) {
	right, err := t.inferExpression(n.Right)
	if err != nil {
		return nil, err
	}

	switch n.Operator {
	case "-":
		operand := numericOperandType(right)
		if uerr := typesystem.Unify(operand, right.Type()); uerr != nil {
			return nil, t.convertUnifyError(uerr, n.Right.Span())
		}
		return &typed.Prefix{Loc: n.Span(), Operator: n.Operator, Right: right, Typ: operand}, nil
	default:
		return nil, t.typeErrorf(diagnostics.ErrT007, n, "unhandled prefix operator %s", n.Operator)
	}
}

func (t *Typer) inferInfixExpression(n *ast.InfixExpression) (typed.Expression, error) {
	left, err := t.inferExpression(n.Left)
	if err != nil {
		return nil, err
	}
	right, err := t.inferExpression(n.Right)
	if err != nil {
		return nil, err
	}

	switch n.Operator {
	case "+", "-", "*", "/":
		operand := numericOperandType(left)
		if uerr := typesystem.Unify(operand, left.Type()); uerr != nil {
			return nil, t.convertUnifyError(uerr, n.Left.Span())
		}
		if uerr := typesystem.Unify(operand, right.Type()); uerr != nil {
			return nil, t.convertUnifyError(uerr, n.Right.Span())
		}
		return &typed.Infix{Loc: n.Span(), Left: left, Operator: n.Operator, Right: right, Typ: operand}, nil

	case "<", ">", "<=", ">=":
		operand := numericOperandType(left)
		if uerr := typesystem.Unify(operand, left.Type()); uerr != nil {
			return nil, t.convertUnifyError(uerr, n.Left.Span())
		}
		if uerr := typesystem.Unify(operand, right.Type()); uerr != nil {
			return nil, t.convertUnifyError(uerr, n.Right.Span())
		}
		return &typed.Infix{Loc: n.Span(), Left: left, Operator: n.Operator, Right: right, Typ: typesystem.BoolType}, nil

	case "==", "!=":
		if uerr := typesystem.Unify(left.Type(), right.Type()); uerr != nil {
			return nil, t.convertUnifyError(uerr, n.Right.Span())
		}
		return &typed.Infix{Loc: n.Span(), Left: left, Operator: n.Operator, Right: right, Typ: typesystem.BoolType}, nil

	default:
		return nil, t.typeErrorf(diagnostics.ErrT007, n, "unhandled infix operator %s", n.Operator)
	}
}

// numericOperandType picks the operand type for arithmetic and comparison:
// Float when the left operand already resolved to Float, Int otherwise. The
// operators are not polymorphic beyond these two.
func numericOperandType(left typed.Expression) typesystem.Type {
	if con, ok := typesystem.Resolve(left.Type()).(*typesystem.TCon); ok && con.Name == config.FloatTypeName {
		return typesystem.FloatType
	}
	return typesystem.IntType
}
