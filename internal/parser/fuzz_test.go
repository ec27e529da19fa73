package parser_test

import (
	"testing"

	"github.com/funvibe/funpipe/internal/lexer"
	"github.com/funvibe/funpipe/internal/parser"
	"github.com/funvibe/funpipe/internal/pipeline"
)

// FuzzParser feeds arbitrary source through the lexer and parser. Errors are
// fine, panics and hangs are not.
func FuzzParser(f *testing.F) {
	seeds := []string{
		"1 |> inc",
		"let x = 1",
		"fn f(a: Int) -> Int { a }",
		"f(limit: 10, 20)",
		"(1 |> inc) |> dec",
		"panic |> todo",
		"1\n  |> inc\n  |> dec",
		"# comment\n1 + 2 * 3",
		"let f: fn(Int, Int) -> Bool = g",
		"\"str\" |> string_length",
		"}}}((",
		"|> |> |>",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, input string) {
		ctx := pipeline.NewPipelineContext(input)
		lp := &lexer.LexerProcessor{}
		ctx = lp.Process(ctx)
		pp := &parser.ParserProcessor{}
		ctx = pp.Process(ctx)

		// Errors are expected for most inputs. The program must still come
		// back non-nil so later stages never have to nil-check mid-walk.
		if ctx.AstRoot == nil {
			t.Fatal("parser returned nil program")
		}
	})
}
