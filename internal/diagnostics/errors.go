// Package diagnostics defines the error and warning values produced by the
// lexer, parser, and analyzer. Errors abort the stage that raised them;
// warnings are collected through a Sink and never fail a check on their own.
package diagnostics

import (
	"fmt"

	"github.com/funvibe/funpipe/internal/token"
)

type ErrorCode string

const (
	// Lexer
	ErrL001 ErrorCode = "L001" // illegal character or malformed literal

	// Parser
	ErrP001 ErrorCode = "P001" // unexpected token
	ErrP002 ErrorCode = "P002" // malformed or missing expression
	ErrP003 ErrorCode = "P003" // expression nesting too deep

	// Analyzer
	ErrT001 ErrorCode = "T001" // type mismatch
	ErrT002 ErrorCode = "T002" // undefined symbol
	ErrT003 ErrorCode = "T003" // expected a function
	ErrT004 ErrorCode = "T004" // incorrect arity
	ErrT005 ErrorCode = "T005" // unexpected labeled argument
	ErrT006 ErrorCode = "T006" // recursive type
	ErrT007 ErrorCode = "T007" // internal invariant broken
	ErrT008 ErrorCode = "T008" // unknown type
)

// Situation refines an error code with the context the error arose in, so
// reporting can tailor the hint without inventing a new code for every spot.
type Situation int

const (
	SituationNone Situation = iota

	// SituationPipeMismatch marks a T001 raised while applying a piped value
	// to a function whose first parameter cannot accept it.
	SituationPipeMismatch
)

// DiagnosticError is an error anchored to a source location. Token is the
// token the failing construct started at; Span covers the whole construct,
// which may be wider than the token.
type DiagnosticError struct {
	Code      ErrorCode
	Token     token.Token
	Span      token.Span
	Message   string
	File      string
	Situation Situation
}

func NewError(code ErrorCode, tok token.Token, msg string) *DiagnosticError {
	return &DiagnosticError{
		Code:    code,
		Token:   tok,
		Span:    tok.Span(),
		Message: msg,
	}
}

func NewErrorf(code ErrorCode, tok token.Token, format string, args ...any) *DiagnosticError {
	return NewError(code, tok, fmt.Sprintf(format, args...))
}

// WithSpan widens the error to cover span. Returns the receiver.
func (e *DiagnosticError) WithSpan(span token.Span) *DiagnosticError {
	e.Span = span
	return e
}

// WithSituation tags the error with the context it arose in. Returns the
// receiver.
func (e *DiagnosticError) WithSituation(s Situation) *DiagnosticError {
	e.Situation = s
	return e
}

func (e *DiagnosticError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s:%d:%d: error[%s]: %s", e.File, e.Token.Line, e.Token.Column, e.Code, e.Message)
	}
	return fmt.Sprintf("%d:%d: error[%s]: %s", e.Token.Line, e.Token.Column, e.Code, e.Message)
}

// Hint returns an extra explanation for the error's situation, or "" when
// there is nothing beyond the message.
func (e *DiagnosticError) Hint() string {
	switch e.Situation {
	case SituationPipeMismatch:
		return "the piped value does not match the type of the function's first argument"
	default:
		return ""
	}
}
