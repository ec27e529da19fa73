package ast

import (
	"github.com/funvibe/funpipe/internal/token"
)

// TokenProvider is an interface for any AST node that can provide its primary
// token. This is useful for error reporting.
type TokenProvider interface {
	GetToken() token.Token
}

// Node is the base interface for all AST nodes.
type Node interface {
	TokenLiteral() string
	Span() token.Span
}

// Statement is a Node that represents a statement.
type Statement interface {
	Node
	statementNode()
	GetToken() token.Token
}

// Expression is a Node that represents an expression.
type Expression interface {
	Node
	expressionNode()
	GetToken() token.Token
}

// Type is a Node that represents a type annotation.
type Type interface {
	Node
	typeNode()
	GetToken() token.Token
}

// Program is the root node of every AST our parser produces.
type Program struct {
	Statements []Statement
}

func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}

func (p *Program) Span() token.Span {
	if len(p.Statements) == 0 {
		return token.Span{}
	}
	return p.Statements[0].Span().Cover(p.Statements[len(p.Statements)-1].Span())
}

// LetStatement represents a binding.
// let x = 1 or let x: Int = 1
type LetStatement struct {
	Token          token.Token // The 'let' token
	Name           *Identifier
	TypeAnnotation Type // Optional
	Value          Expression
}

func (ls *LetStatement) statementNode()       {}
func (ls *LetStatement) TokenLiteral() string { return ls.Token.Lexeme }
func (ls *LetStatement) GetToken() token.Token {
	if ls == nil {
		return token.Token{}
	}
	return ls.Token
}
func (ls *LetStatement) Span() token.Span {
	span := ls.Token.Span()
	if ls.Value != nil {
		span = span.Cover(ls.Value.Span())
	}
	return span
}

// FunctionStatement represents a named function declaration.
// fn add(a: Int, b: Int) -> Int { a + b }
type FunctionStatement struct {
	Token      token.Token // The 'fn' token
	Name       *Identifier
	Parameters []*FunctionParameter
	ReturnType Type // Optional
	Body       *BlockStatement
}

func (fs *FunctionStatement) statementNode()       {}
func (fs *FunctionStatement) TokenLiteral() string { return fs.Token.Lexeme }
func (fs *FunctionStatement) GetToken() token.Token {
	if fs == nil {
		return token.Token{}
	}
	return fs.Token
}
func (fs *FunctionStatement) Span() token.Span {
	span := fs.Token.Span()
	if fs.Body != nil {
		span = span.Cover(fs.Body.Span())
	}
	return span
}

// ExpressionStatement is an expression in statement position.
type ExpressionStatement struct {
	Token      token.Token // The first token of the expression
	Expression Expression
}

func (es *ExpressionStatement) statementNode()       {}
func (es *ExpressionStatement) TokenLiteral() string { return es.Token.Lexeme }
func (es *ExpressionStatement) GetToken() token.Token {
	if es == nil {
		return token.Token{}
	}
	return es.Token
}
func (es *ExpressionStatement) Span() token.Span {
	if es.Expression != nil {
		return es.Expression.Span()
	}
	return es.Token.Span()
}

// BlockStatement is a braced statement sequence, used as function bodies.
type BlockStatement struct {
	Token       token.Token // The '{' token
	Statements  []Statement
	RBraceToken token.Token
}

func (bs *BlockStatement) statementNode()       {}
func (bs *BlockStatement) TokenLiteral() string { return bs.Token.Lexeme }
func (bs *BlockStatement) GetToken() token.Token {
	if bs == nil {
		return token.Token{}
	}
	return bs.Token
}
func (bs *BlockStatement) Span() token.Span {
	return bs.Token.Span().Cover(bs.RBraceToken.Span())
}

// NamedType is a type annotation referring to a type by name.
// Int, String, Bool
type NamedType struct {
	Token token.Token // The type name token
	Name  string
}

func (nt *NamedType) typeNode()            {}
func (nt *NamedType) TokenLiteral() string { return nt.Token.Lexeme }
func (nt *NamedType) GetToken() token.Token {
	if nt == nil {
		return token.Token{}
	}
	return nt.Token
}
func (nt *NamedType) Span() token.Span { return nt.Token.Span() }

// FunctionType is a function type annotation.
// fn(Int, Int) -> Bool
type FunctionType struct {
	Token      token.Token // The 'fn' token
	Parameters []Type
	ReturnType Type
}

func (ft *FunctionType) typeNode()            {}
func (ft *FunctionType) TokenLiteral() string { return ft.Token.Lexeme }
func (ft *FunctionType) GetToken() token.Token {
	if ft == nil {
		return token.Token{}
	}
	return ft.Token
}
func (ft *FunctionType) Span() token.Span {
	span := ft.Token.Span()
	if ft.ReturnType != nil {
		span = span.Cover(ft.ReturnType.Span())
	}
	return span
}
