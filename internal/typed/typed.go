// Package typed holds the tree the analyzer produces. Unlike the ast package
// every node carries its resolved type, and sugar such as pipelines has been
// rewritten into explicit form. String renders a node back as source text in
// its rewritten shape, which is what `funpipe --desugared` prints.
package typed

import (
	"strconv"
	"strings"

	"github.com/funvibe/funpipe/internal/token"
	"github.com/funvibe/funpipe/internal/typesystem"
)

// Expression is a type-annotated expression node.
type Expression interface {
	Span() token.Span
	Type() typesystem.Type
	String() string
	expressionNode()
}

// Statement is a type-checked statement node.
type Statement interface {
	Span() token.Span
	String() string
	statementNode()
}

// Int is an integer literal.
type Int struct {
	Loc   token.Span
	Value int64
}

func (e *Int) expressionNode()        {}
func (e *Int) Span() token.Span      { return e.Loc }
func (e *Int) Type() typesystem.Type { return typesystem.IntType }
func (e *Int) String() string        { return strconv.FormatInt(e.Value, 10) }

// Float is a floating point literal.
type Float struct {
	Loc   token.Span
	Value float64
}

func (e *Float) expressionNode()        {}
func (e *Float) Span() token.Span      { return e.Loc }
func (e *Float) Type() typesystem.Type { return typesystem.FloatType }

func (e *Float) String() string {
	s := strconv.FormatFloat(e.Value, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

// String is a string literal. Value holds the decoded text.
type String struct {
	Loc   token.Span
	Value string
}

func (e *String) expressionNode()        {}
func (e *String) Span() token.Span      { return e.Loc }
func (e *String) Type() typesystem.Type { return typesystem.StringType }
func (e *String) String() string        { return strconv.Quote(e.Value) }

// Bool is true or false.
type Bool struct {
	Loc   token.Span
	Value bool
}

func (e *Bool) expressionNode()        {}
func (e *Bool) Span() token.Span      { return e.Loc }
func (e *Bool) Type() typesystem.Type { return typesystem.BoolType }

func (e *Bool) String() string {
	if e.Value {
		return "true"
	}
	return "false"
}

// Var is a reference to a bound name.
type Var struct {
	Loc  token.Span
	Name string
	Typ  typesystem.Type
}

func (e *Var) expressionNode()        {}
func (e *Var) Span() token.Span      { return e.Loc }
func (e *Var) Type() typesystem.Type { return e.Typ }
func (e *Var) String() string        { return e.Name }

// CallArgument is a single checked argument. Implicit marks arguments the
// analyzer inserted, such as the piped value threaded through a pipeline.
type CallArgument struct {
	Loc      token.Span
	Label    string
	Value    Expression
	Implicit bool
}

func (a *CallArgument) String() string {
	if a.Label != "" {
		return a.Label + ": " + a.Value.String()
	}
	return a.Value.String()
}

// Call is a function application.
type Call struct {
	Loc  token.Span
	Fun  Expression
	Args []*CallArgument
	Typ  typesystem.Type
}

func (e *Call) expressionNode()        {}
func (e *Call) Span() token.Span      { return e.Loc }
func (e *Call) Type() typesystem.Type { return e.Typ }

func (e *Call) String() string {
	parts := make([]string, len(e.Args))
	for i, a := range e.Args {
		parts[i] = a.String()
	}
	return calleeString(e.Fun) + "(" + strings.Join(parts, ", ") + ")"
}

// calleeString renders a call target, wrapping it in parentheses when it is
// not atomic, so rewritten calls like (fn(x) { x + 1 })($pipe) read back as
// valid source.
func calleeString(fun Expression) string {
	switch fun.(type) {
	case *Fn, *Infix, *Prefix, *Pipeline:
		return "(" + fun.String() + ")"
	default:
		return fun.String()
	}
}

// FnParam is a single checked function parameter.
type FnParam struct {
	Loc  token.Span
	Name string
	Typ  typesystem.Type
}

// Fn is a function literal.
type Fn struct {
	Loc    token.Span
	Params []*FnParam
	Body   []Statement
	Typ    *typesystem.TFunc
}

func (e *Fn) expressionNode()        {}
func (e *Fn) Span() token.Span      { return e.Loc }
func (e *Fn) Type() typesystem.Type { return e.Typ }

func (e *Fn) String() string {
	names := make([]string, len(e.Params))
	for i, p := range e.Params {
		names[i] = p.Name
	}
	var b strings.Builder
	b.WriteString("fn(")
	b.WriteString(strings.Join(names, ", "))
	b.WriteString(") {")
	for i, s := range e.Body {
		if i > 0 {
			b.WriteString(";")
		}
		b.WriteString(" ")
		b.WriteString(s.String())
	}
	b.WriteString(" }")
	return b.String()
}

// Prefix is a prefix operator application.
type Prefix struct {
	Loc      token.Span
	Operator string
	Right    Expression
	Typ      typesystem.Type
}

func (e *Prefix) expressionNode()        {}
func (e *Prefix) Span() token.Span      { return e.Loc }
func (e *Prefix) Type() typesystem.Type { return e.Typ }

func (e *Prefix) String() string {
	return e.Operator + operandString(e.Right)
}

// Infix is a binary operator application.
type Infix struct {
	Loc      token.Span
	Left     Expression
	Operator string
	Right    Expression
	Typ      typesystem.Type
}

func (e *Infix) expressionNode()        {}
func (e *Infix) Span() token.Span      { return e.Loc }
func (e *Infix) Type() typesystem.Type { return e.Typ }

func (e *Infix) String() string {
	return operandString(e.Left) + " " + e.Operator + " " + operandString(e.Right)
}

// operandString parenthesizes nested operator applications instead of
// reconstructing precedence.
func operandString(e Expression) string {
	switch e.(type) {
	case *Infix, *Pipeline:
		return "(" + e.String() + ")"
	default:
		return e.String()
	}
}

// Todo is the not-yet-implemented placeholder. Its type is whatever the
// context required.
type Todo struct {
	Loc token.Span
	Typ typesystem.Type
}

func (e *Todo) expressionNode()        {}
func (e *Todo) Span() token.Span      { return e.Loc }
func (e *Todo) Type() typesystem.Type { return e.Typ }
func (e *Todo) String() string        { return "todo" }

// Panic is the deliberate-abort placeholder.
type Panic struct {
	Loc token.Span
	Typ typesystem.Type
}

func (e *Panic) expressionNode()        {}
func (e *Panic) Span() token.Span      { return e.Loc }
func (e *Panic) Type() typesystem.Type { return e.Typ }
func (e *Panic) String() string        { return "panic" }

// VarPattern is a single-name binding pattern.
type VarPattern struct {
	Loc  token.Span
	Name string
	Typ  typesystem.Type
}

func (p *VarPattern) String() string { return p.Name }

// Assignment binds a value to a pattern. Both user `let` statements and the
// bindings a pipeline is rewritten into use this node.
type Assignment struct {
	Loc     token.Span
	Pattern *VarPattern
	Value   Expression
}

func (s *Assignment) statementNode()   {}
func (s *Assignment) Span() token.Span { return s.Loc }
func (s *Assignment) String() string   { return "let " + s.Pattern.String() + " = " + s.Value.String() }

// ExpressionStatement is an expression in statement position.
type ExpressionStatement struct {
	Loc        token.Span
	Expression Expression
}

func (s *ExpressionStatement) statementNode()   {}
func (s *ExpressionStatement) Span() token.Span { return s.Loc }
func (s *ExpressionStatement) String() string   { return s.Expression.String() }

// Pipeline is the rewritten form of a pipe chain: one binding per
// intermediate step, then the final expression. Its value and type are those
// of Finally.
type Pipeline struct {
	Loc         token.Span
	Assignments []*Assignment
	Finally     Expression
}

func (e *Pipeline) expressionNode()        {}
func (e *Pipeline) Span() token.Span      { return e.Loc }
func (e *Pipeline) Type() typesystem.Type { return e.Finally.Type() }

func (e *Pipeline) String() string {
	var b strings.Builder
	for _, a := range e.Assignments {
		b.WriteString(a.String())
		b.WriteString("\n")
	}
	b.WriteString(e.Finally.String())
	return b.String()
}
