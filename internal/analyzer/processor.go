package analyzer

import (
	"github.com/funvibe/funpipe/internal/diagnostics"
	"github.com/funvibe/funpipe/internal/pipeline"
	"github.com/funvibe/funpipe/internal/symbols"
)

// SemanticAnalyzerProcessor runs type checking as a pipeline stage. It skips
// entirely when earlier stages reported errors, since typing a tree the
// parser already had trouble with mostly produces noise.
type SemanticAnalyzerProcessor struct{}

func (sap *SemanticAnalyzerProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.AstRoot == nil || ctx.HasErrors() {
		return ctx
	}

	if ctx.SymbolTable == nil {
		ctx.SymbolTable = symbols.NewSymbolTable()
	}
	RegisterBuiltins(ctx.SymbolTable)

	opts := DefaultOptions()
	if ctx.Project != nil {
		opts = OptionsFromProject(ctx.Project)
	}

	collector := &diagnostics.Collector{}
	typer := New(ctx.SymbolTable, collector, opts)

	typedRoot, errs := typer.CheckProgram(ctx.AstRoot)
	ctx.TypedRoot = typedRoot

	for _, err := range errs {
		// Errors raised against typed nodes carry only a span; recover line
		// and column from it for reporting.
		if err.Token.Line == 0 {
			err.Token.Line, err.Token.Column = diagnostics.PositionOf(ctx.SourceCode, err.Span.Start)
		}
		if err.File == "" {
			err.File = ctx.FilePath
		}
		ctx.Errors = append(ctx.Errors, err)
	}

	for _, w := range collector.Warnings {
		if w.File == "" {
			w.File = ctx.FilePath
		}
		ctx.Warnings = append(ctx.Warnings, w)
	}

	return ctx
}
