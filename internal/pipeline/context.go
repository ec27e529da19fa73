package pipeline

import (
	"github.com/funvibe/funpipe/internal/ast"
	"github.com/funvibe/funpipe/internal/config"
	"github.com/funvibe/funpipe/internal/diagnostics"
	"github.com/funvibe/funpipe/internal/symbols"
	"github.com/funvibe/funpipe/internal/token"
	"github.com/funvibe/funpipe/internal/typed"
)

// PipelineContext carries one source file through the stages. Each stage
// fills in its slot: the lexer TokenStream, the parser AstRoot, the analyzer
// SymbolTable and TypedRoot.
type PipelineContext struct {
	SourceCode string
	FilePath   string

	TokenStream []token.Token
	AstRoot     *ast.Program
	SymbolTable *symbols.SymbolTable
	TypedRoot   []typed.Statement

	// Project is the manifest governing this check, if one was found.
	Project *config.Project

	Errors   []*diagnostics.DiagnosticError
	Warnings []*diagnostics.Warning
}

func NewPipelineContext(source string) *PipelineContext {
	return &PipelineContext{SourceCode: source}
}

// HasErrors reports whether any stage recorded an error so far.
func (ctx *PipelineContext) HasErrors() bool {
	return len(ctx.Errors) > 0
}
