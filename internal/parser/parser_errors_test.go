package parser_test

import (
	"strings"
	"testing"

	"github.com/funvibe/funpipe/internal/ast"
	"github.com/funvibe/funpipe/internal/diagnostics"
	"github.com/funvibe/funpipe/internal/lexer"
	"github.com/funvibe/funpipe/internal/parser"
	"github.com/funvibe/funpipe/internal/pipeline"
)

// parseWithErrors runs the lexer+parser and returns the context with all
// diagnostics, recovered statements included.
func parseWithErrors(input string) *pipeline.PipelineContext {
	ctx := pipeline.NewPipelineContext(input)
	lp := &lexer.LexerProcessor{}
	ctx = lp.Process(ctx)
	pp := &parser.ParserProcessor{}
	ctx = pp.Process(ctx)
	return ctx
}

// expectError asserts at least one error with the given code and returns the
// first match.
func expectError(t *testing.T, input string, code diagnostics.ErrorCode) *diagnostics.DiagnosticError {
	t.Helper()
	errs := parseWithErrors(input).Errors
	if len(errs) == 0 {
		t.Fatalf("expected error %s, but got none\ninput: %s", code, input)
	}
	for _, e := range errs {
		if e.Code == code {
			return e
		}
	}
	var msgs []string
	for _, e := range errs {
		msgs = append(msgs, e.Error())
	}
	t.Fatalf("expected error %s, got:\n%s\ninput: %s", code, strings.Join(msgs, "\n"), input)
	return nil
}

// expectNoErrors asserts parsing succeeds without errors.
func expectNoErrors(t *testing.T, input string) {
	t.Helper()
	errs := parseWithErrors(input).Errors
	if len(errs) > 0 {
		var msgs []string
		for _, e := range errs {
			msgs = append(msgs, e.Error())
		}
		t.Fatalf("expected no errors, got:\n%s\ninput: %s", strings.Join(msgs, "\n"), input)
	}
}

// ---------------------------------------------------------------------------
// P001: unexpected token
// ---------------------------------------------------------------------------

func TestP001_LetMissingName(t *testing.T) {
	err := expectError(t, "let = 1", diagnostics.ErrP001)
	if !strings.Contains(err.Message, "expected IDENT") {
		t.Errorf("unexpected message: %s", err.Message)
	}
	if err.Token.Line != 1 || err.Token.Column != 5 {
		t.Errorf("expected position 1:5, got %d:%d", err.Token.Line, err.Token.Column)
	}
}

func TestP001_LetMissingAssign(t *testing.T) {
	err := expectError(t, "let x 1", diagnostics.ErrP001)
	if !strings.Contains(err.Message, "expected =") {
		t.Errorf("unexpected message: %s", err.Message)
	}
}

func TestP001_UnclosedBlock(t *testing.T) {
	err := expectError(t, "fn f() { 1", diagnostics.ErrP001)
	if !strings.Contains(err.Message, "expected '}' to close block") {
		t.Errorf("unexpected message: %s", err.Message)
	}
}

func TestP001_UnclosedCall(t *testing.T) {
	expectError(t, "f(1", diagnostics.ErrP001)
}

func TestP001_BadTypeAnnotation(t *testing.T) {
	err := expectError(t, "let x: 5 = 1", diagnostics.ErrP001)
	if !strings.Contains(err.Message, "expected a type") {
		t.Errorf("unexpected message: %s", err.Message)
	}
}

func TestP001_MissingStatementEnd(t *testing.T) {
	err := expectError(t, "1 2", diagnostics.ErrP001)
	if !strings.Contains(err.Message, "expected end of statement") {
		t.Errorf("unexpected message: %s", err.Message)
	}
}

func TestP001_FunctionMissingParams(t *testing.T) {
	expectError(t, "fn f { 1 }", diagnostics.ErrP001)
}

// ---------------------------------------------------------------------------
// P002: expected an expression
// ---------------------------------------------------------------------------

func TestP002_PipeWithoutLeftOperand(t *testing.T) {
	err := expectError(t, "|> inc", diagnostics.ErrP002)
	if !strings.Contains(err.Message, "expected an expression") {
		t.Errorf("unexpected message: %s", err.Message)
	}
}

func TestP002_LetWithoutValue(t *testing.T) {
	err := expectError(t, "let x = ", diagnostics.ErrP002)
	if !strings.Contains(err.Message, "end of file") {
		t.Errorf("unexpected message: %s", err.Message)
	}
}

func TestP002_DanglingInfixOperator(t *testing.T) {
	expectError(t, "1 + * 2", diagnostics.ErrP002)
}

func TestP002_PipeWithoutRightOperand(t *testing.T) {
	expectError(t, "1 |> ", diagnostics.ErrP002)
}

// ---------------------------------------------------------------------------
// P003: recursion depth limit
// ---------------------------------------------------------------------------

func TestP003_DeeplyNestedParens(t *testing.T) {
	input := strings.Repeat("(", 300) + "1" + strings.Repeat(")", 300)
	expectError(t, input, diagnostics.ErrP003)
}

func TestDeepNestingBelowLimitIsFine(t *testing.T) {
	input := strings.Repeat("(", 50) + "1" + strings.Repeat(")", 50)
	expectNoErrors(t, input)
}

// ---------------------------------------------------------------------------
// Error recovery
// ---------------------------------------------------------------------------

func TestRecoveryContinuesAfterBadStatement(t *testing.T) {
	ctx := parseWithErrors("let = 1\nlet y = 2")
	if len(ctx.Errors) != 1 {
		t.Fatalf("expected 1 error, got %d", len(ctx.Errors))
	}
	if len(ctx.AstRoot.Statements) != 1 {
		t.Fatalf("expected 1 recovered statement, got %d", len(ctx.AstRoot.Statements))
	}
	let, ok := ctx.AstRoot.Statements[0].(*ast.LetStatement)
	if !ok || let.Name.Value != "y" {
		t.Errorf("expected the second let to survive recovery, got %v", ctx.AstRoot.Statements[0])
	}
}

func TestRecoveryFromStrayBrace(t *testing.T) {
	// A stray '}' at top level must not loop forever.
	ctx := parseWithErrors("}\n1")
	if len(ctx.Errors) == 0 {
		t.Fatal("expected an error for the stray brace")
	}
	found := false
	for _, stmt := range ctx.AstRoot.Statements {
		if es, ok := stmt.(*ast.ExpressionStatement); ok {
			if _, ok := es.Expression.(*ast.IntegerLiteral); ok {
				found = true
			}
		}
	}
	if !found {
		t.Error("expected the statement after the stray brace to parse")
	}
}

func TestRecoveryReportsEachBadStatementOnce(t *testing.T) {
	ctx := parseWithErrors("let = 1\nlet = 2\nlet z = 3")
	if len(ctx.Errors) != 2 {
		t.Fatalf("expected 2 errors, got %d", len(ctx.Errors))
	}
	if len(ctx.AstRoot.Statements) != 1 {
		t.Fatalf("expected 1 recovered statement, got %d", len(ctx.AstRoot.Statements))
	}
}

// ---------------------------------------------------------------------------
// Programs that must parse cleanly
// ---------------------------------------------------------------------------

func TestValidProgramsParseCleanly(t *testing.T) {
	inputs := []string{
		"",
		"\n\n\n",
		"# just a comment",
		"1 |> inc |> dec",
		"let x = 1 |> inc",
		"fn add(a: Int, b: Int) -> Int { a + b }",
		"fn compose() { 1 |> fn(x) { x * 2 } |> int_to_string }",
		"f(limit: 10, 20)",
		"1\n  |> inc\n  |> dec",
		"let f: fn(Int) -> Int = inc",
		"todo",
		"1 |> panic(\"boom\")",
	}
	for _, input := range inputs {
		expectNoErrors(t, input)
	}
}
