package ast

import (
	"github.com/funvibe/funpipe/internal/token"
)

// Identifier refers to a bound name.
type Identifier struct {
	Token token.Token // The identifier token
	Value string
}

func (i *Identifier) expressionNode()      {}
func (i *Identifier) TokenLiteral() string { return i.Token.Lexeme }
func (i *Identifier) GetToken() token.Token {
	if i == nil {
		return token.Token{}
	}
	return i.Token
}
func (i *Identifier) Span() token.Span { return i.Token.Span() }

// IntegerLiteral represents an integer literal.
type IntegerLiteral struct {
	Token token.Token
	Value int64
}

func (il *IntegerLiteral) expressionNode()      {}
func (il *IntegerLiteral) TokenLiteral() string { return il.Token.Lexeme }
func (il *IntegerLiteral) GetToken() token.Token {
	if il == nil {
		return token.Token{}
	}
	return il.Token
}
func (il *IntegerLiteral) Span() token.Span { return il.Token.Span() }

// FloatLiteral represents a floating point literal.
type FloatLiteral struct {
	Token token.Token
	Value float64
}

func (fl *FloatLiteral) expressionNode()      {}
func (fl *FloatLiteral) TokenLiteral() string { return fl.Token.Lexeme }
func (fl *FloatLiteral) GetToken() token.Token {
	if fl == nil {
		return token.Token{}
	}
	return fl.Token
}
func (fl *FloatLiteral) Span() token.Span { return fl.Token.Span() }

// StringLiteral represents a string literal. Value holds the decoded text.
type StringLiteral struct {
	Token token.Token
	Value string
}

func (sl *StringLiteral) expressionNode()      {}
func (sl *StringLiteral) TokenLiteral() string { return sl.Token.Lexeme }
func (sl *StringLiteral) GetToken() token.Token {
	if sl == nil {
		return token.Token{}
	}
	return sl.Token
}
func (sl *StringLiteral) Span() token.Span { return sl.Token.Span() }

// BooleanLiteral represents true or false.
type BooleanLiteral struct {
	Token token.Token
	Value bool
}

func (bl *BooleanLiteral) expressionNode()      {}
func (bl *BooleanLiteral) TokenLiteral() string { return bl.Token.Lexeme }
func (bl *BooleanLiteral) GetToken() token.Token {
	if bl == nil {
		return token.Token{}
	}
	return bl.Token
}
func (bl *BooleanLiteral) Span() token.Span { return bl.Token.Span() }

// PrefixExpression represents a prefix operator application.
// -x
type PrefixExpression struct {
	Token    token.Token // The operator token
	Operator string
	Right    Expression
}

func (pe *PrefixExpression) expressionNode()      {}
func (pe *PrefixExpression) TokenLiteral() string { return pe.Token.Lexeme }
func (pe *PrefixExpression) GetToken() token.Token {
	if pe == nil {
		return token.Token{}
	}
	return pe.Token
}
func (pe *PrefixExpression) Span() token.Span {
	span := pe.Token.Span()
	if pe.Right != nil {
		span = span.Cover(pe.Right.Span())
	}
	return span
}

// InfixExpression represents a binary operator application.
// a + b
type InfixExpression struct {
	Token    token.Token // The operator token
	Left     Expression
	Operator string
	Right    Expression
}

func (ie *InfixExpression) expressionNode()      {}
func (ie *InfixExpression) TokenLiteral() string { return ie.Token.Lexeme }
func (ie *InfixExpression) GetToken() token.Token {
	if ie == nil {
		return token.Token{}
	}
	return ie.Token
}
func (ie *InfixExpression) Span() token.Span {
	span := ie.Token.Span()
	if ie.Left != nil {
		span = span.Cover(ie.Left.Span())
	}
	if ie.Right != nil {
		span = span.Cover(ie.Right.Span())
	}
	return span
}

// CallArgument is a single argument in a call. Implicit marks arguments the
// analyzer inserted itself rather than the user writing them; they survive
// into the typed tree so tooling can tell the two apart.
type CallArgument struct {
	Label    *Identifier // Optional: f(limit: 10)
	Value    Expression
	Implicit bool
}

func (ca *CallArgument) GetToken() token.Token {
	if ca == nil {
		return token.Token{}
	}
	if ca.Label != nil {
		return ca.Label.Token
	}
	if ca.Value != nil {
		return ca.Value.GetToken()
	}
	return token.Token{}
}

func (ca *CallArgument) Span() token.Span {
	if ca.Value == nil {
		return token.Span{}
	}
	span := ca.Value.Span()
	if ca.Label != nil {
		span = span.Cover(ca.Label.Span())
	}
	return span
}

// CallExpression represents a function call.
// f(a, b) or f(limit: 10)
type CallExpression struct {
	Token       token.Token // The '(' token
	Function    Expression
	Arguments   []*CallArgument
	RParenToken token.Token
}

func (ce *CallExpression) expressionNode()      {}
func (ce *CallExpression) TokenLiteral() string { return ce.Token.Lexeme }
func (ce *CallExpression) GetToken() token.Token {
	if ce == nil {
		return token.Token{}
	}
	return ce.Token
}
func (ce *CallExpression) Span() token.Span {
	span := ce.Token.Span()
	if ce.Function != nil {
		span = span.Cover(ce.Function.Span())
	}
	return span.Cover(ce.RParenToken.Span())
}

// FunctionParameter is a single parameter of a function literal or statement.
type FunctionParameter struct {
	Name           *Identifier
	TypeAnnotation Type // Optional
}

func (fp *FunctionParameter) GetToken() token.Token {
	if fp == nil {
		return token.Token{}
	}
	return fp.Name.GetToken()
}

func (fp *FunctionParameter) Span() token.Span {
	if fp == nil || fp.Name == nil {
		return token.Span{}
	}
	span := fp.Name.Span()
	if fp.TypeAnnotation != nil {
		span = span.Cover(fp.TypeAnnotation.Span())
	}
	return span
}

// FunctionLiteral is an anonymous function.
// fn(x) { x + 1 }
type FunctionLiteral struct {
	Token      token.Token // The 'fn' token
	Parameters []*FunctionParameter
	ReturnType Type // Optional
	Body       *BlockStatement
}

func (fl *FunctionLiteral) expressionNode()      {}
func (fl *FunctionLiteral) TokenLiteral() string { return fl.Token.Lexeme }
func (fl *FunctionLiteral) GetToken() token.Token {
	if fl == nil {
		return token.Token{}
	}
	return fl.Token
}
func (fl *FunctionLiteral) Span() token.Span {
	span := fl.Token.Span()
	if fl.Body != nil {
		span = span.Cover(fl.Body.Span())
	}
	return span
}

// Pipeline is a flattened chain of pipe applications.
// a |> b |> c(d)
// The parser folds nested pipes into one node, so Expressions always holds
// the whole chain in source order and has at least two elements.
// A parenthesized pipeline is not folded into an enclosing chain; it stays a
// single element of it.
type Pipeline struct {
	Token         token.Token // The first '|>' token
	Expressions   []Expression
	Parenthesized bool
}

func (pl *Pipeline) expressionNode()      {}
func (pl *Pipeline) TokenLiteral() string { return pl.Token.Lexeme }
func (pl *Pipeline) GetToken() token.Token {
	if pl == nil {
		return token.Token{}
	}
	return pl.Token
}
func (pl *Pipeline) Span() token.Span {
	if len(pl.Expressions) == 0 {
		return pl.Token.Span()
	}
	return pl.Expressions[0].Span().Cover(pl.Expressions[len(pl.Expressions)-1].Span())
}

// Todo is the not-yet-implemented placeholder. It typechecks at any type and
// aborts at runtime.
type Todo struct {
	Token token.Token // The 'todo' token
}

func (t *Todo) expressionNode()      {}
func (t *Todo) TokenLiteral() string { return t.Token.Lexeme }
func (t *Todo) GetToken() token.Token {
	if t == nil {
		return token.Token{}
	}
	return t.Token
}
func (t *Todo) Span() token.Span { return t.Token.Span() }

// Panic is the deliberate-abort placeholder. Like Todo it typechecks at any
// type; unlike Todo it signals intent rather than unfinished work.
type Panic struct {
	Token token.Token // The 'panic' token
}

func (p *Panic) expressionNode()      {}
func (p *Panic) TokenLiteral() string { return p.Token.Lexeme }
func (p *Panic) GetToken() token.Token {
	if p == nil {
		return token.Token{}
	}
	return p.Token
}
func (p *Panic) Span() token.Span { return p.Token.Span() }
