package analyzer_test

import (
	"strings"
	"testing"

	"github.com/funvibe/funpipe/internal/analyzer"
	"github.com/funvibe/funpipe/internal/diagnostics"
)

// expectWarnings asserts the kinds of warnings, in emission order.
func expectWarnings(t *testing.T, res result, kinds ...diagnostics.WarningKind) {
	t.Helper()
	if len(res.warnings) != len(kinds) {
		t.Fatalf("expected %d warnings, got %d: %v", len(kinds), len(res.warnings), warningMessages(res))
	}
	for i, kind := range kinds {
		if res.warnings[i].Kind != kind {
			t.Errorf("warning %d: expected kind %d, got %d", i, kind, res.warnings[i].Kind)
		}
	}
}

func warningMessages(res result) []string {
	var msgs []string
	for _, w := range res.warnings {
		msgs = append(msgs, w.Message())
	}
	return msgs
}

// ---------- placeholders as pipe targets ----------

func TestTodoAsPipeTarget(t *testing.T) {
	res := checkOK(t, "1 |> todo")
	expectWarnings(t, res, diagnostics.WarnPlaceholderUsedAsFunction)

	w := res.warnings[0]
	if w.Marker != diagnostics.MarkerTodo {
		t.Errorf("expected todo marker, got %s", w.Marker)
	}
	if w.Span.Start != 5 || w.Span.End != 9 {
		t.Errorf("expected span 5..9 over todo, got %d..%d", w.Span.Start, w.Span.End)
	}
	// The ignored value is the first element.
	if w.ArgsSpan.Start != 0 || w.ArgsSpan.End != 1 {
		t.Errorf("expected args span 0..1, got %d..%d", w.ArgsSpan.Start, w.ArgsSpan.End)
	}
	if w.Args != 1 {
		t.Errorf("expected 1 ignored value, got %d", w.Args)
	}
}

func TestPanicAsPipeTarget(t *testing.T) {
	res := checkOK(t, "1 |> panic")
	expectWarnings(t, res, diagnostics.WarnPlaceholderUsedAsFunction)
	if res.warnings[0].Marker != diagnostics.MarkerPanic {
		t.Errorf("expected panic marker, got %s", res.warnings[0].Marker)
	}
}

func TestPanicCallAsPipeTarget(t *testing.T) {
	input := `1 |> panic("boom")`
	res := checkOK(t, input)
	expectWarnings(t, res, diagnostics.WarnPlaceholderUsedAsFunction)

	w := res.warnings[0]
	if w.Marker != diagnostics.MarkerPanic {
		t.Errorf("expected panic marker, got %s", w.Marker)
	}
	// The span covers the whole call step.
	callStart := strings.Index(input, "panic")
	if w.Span.Start != callStart || w.Span.End != len(input) {
		t.Errorf("expected span %d..%d, got %d..%d", callStart, len(input), w.Span.Start, w.Span.End)
	}
}

func TestMarkerMidChainCoversStepsSoFar(t *testing.T) {
	input := "1 |> int_to_string |> panic"
	res := checkOK(t, input)
	expectWarnings(t, res, diagnostics.WarnPlaceholderUsedAsFunction)

	// Everything up to the marker produced the ignored value.
	w := res.warnings[0]
	if w.ArgsSpan.Start != 0 || w.ArgsSpan.End != 18 {
		t.Errorf("expected args span 0..18, got %d..%d", w.ArgsSpan.Start, w.ArgsSpan.End)
	}
}

func TestMarkerMidChainThenUnreachableTail(t *testing.T) {
	input := "1 |> panic |> int_to_string"
	res := checkOK(t, input)
	expectWarnings(t, res,
		diagnostics.WarnPlaceholderUsedAsFunction,
		diagnostics.WarnUnreachableCode,
	)

	tail := strings.Index(input, "int_to_string")
	if res.warnings[1].Span.Start != tail {
		t.Errorf("expected unreachable span at %d, got %d", tail, res.warnings[1].Span.Start)
	}
}

func TestMarkerAsFirstElementIsNotWarned(t *testing.T) {
	// The first element is the piped value, not a function position.
	res := checkOK(t, "todo |> int_to_string")
	expectWarnings(t, res, diagnostics.WarnUnreachableCode)
}

// ---------- unreachable code ----------

func TestStatementAfterPanicIsUnreachable(t *testing.T) {
	res := checkOK(t, "panic\n1 + 1")
	expectWarnings(t, res, diagnostics.WarnUnreachableCode)

	w := res.warnings[0]
	if w.Span.Start != 6 || w.Span.End != 11 {
		t.Errorf("expected span 6..11 over the dead statement, got %d..%d", w.Span.Start, w.Span.End)
	}
}

func TestOnlyFirstUnreachableStretchFlagged(t *testing.T) {
	res := checkOK(t, "panic\n1\n2\n3")
	expectWarnings(t, res, diagnostics.WarnUnreachableCode)
}

func TestPanicInsideArgumentsPoisonsWhatFollows(t *testing.T) {
	res := checkOK(t, "println(panic)\n1")
	expectWarnings(t, res, diagnostics.WarnUnreachableCode)
}

func TestFunctionBodyDoesNotPoisonCaller(t *testing.T) {
	// The body aborts when called, not where it is written.
	res := checkOK(t, "fn boom() { panic }\nboom()\n1")
	expectWarnings(t, res)
}

func TestUnreachableInsideFunctionBody(t *testing.T) {
	res := checkOK(t, "fn f() {\n  panic\n  1\n}")
	expectWarnings(t, res, diagnostics.WarnUnreachableCode)
}

func TestBodiesTrackUnreachableIndependently(t *testing.T) {
	// Each body reports its own first stretch.
	res := checkOK(t, "fn f() {\n  panic\n  1\n}\nfn g() {\n  panic\n  2\n}")
	expectWarnings(t, res,
		diagnostics.WarnUnreachableCode,
		diagnostics.WarnUnreachableCode,
	)
}

// ---------- toggles ----------

func TestPlaceholderWarningsOff(t *testing.T) {
	opts := analyzer.Options{WarnUnreachable: true, WarnPlaceholders: false}
	res := checkWith(t, "1 |> todo\n2", opts)
	// The marker warning is off; the dead statement after the chain is
	// still reported.
	expectWarnings(t, res, diagnostics.WarnUnreachableCode)
}

func TestUnreachableWarningsOff(t *testing.T) {
	opts := analyzer.Options{WarnUnreachable: false, WarnPlaceholders: true}
	res := checkWith(t, "panic\n1", opts)
	expectWarnings(t, res)
}

func TestAllWarningsOff(t *testing.T) {
	opts := analyzer.Options{}
	res := checkWith(t, "1 |> todo\n2", opts)
	expectWarnings(t, res)
}
