package diagnostics

import (
	"fmt"

	"github.com/funvibe/funpipe/internal/token"
)

type WarningKind int

const (
	// WarnPlaceholderUsedAsFunction reports a todo or panic placeholder in a
	// position where a function is applied to a value, e.g. as a pipeline
	// target. The code typechecks, but the applied value is discarded.
	WarnPlaceholderUsedAsFunction WarningKind = iota + 1

	// WarnUnreachableCode reports code that follows an expression which
	// always aborts.
	WarnUnreachableCode
)

// MarkerKind says which placeholder a WarnPlaceholderUsedAsFunction is about.
type MarkerKind int

const (
	MarkerNone MarkerKind = iota
	MarkerTodo
	MarkerPanic
)

func (k MarkerKind) String() string {
	switch k {
	case MarkerTodo:
		return "todo"
	case MarkerPanic:
		return "panic"
	default:
		return "none"
	}
}

// Warning is a non-fatal finding. Span covers the construct being warned
// about. For placeholder warnings, ArgsSpan covers the value(s) that would be
// fed to the placeholder and Args counts them.
type Warning struct {
	Kind     WarningKind
	Marker   MarkerKind
	Span     token.Span
	ArgsSpan token.Span
	Args     int
	File     string
}

func (w *Warning) Message() string {
	switch w.Kind {
	case WarnPlaceholderUsedAsFunction:
		return fmt.Sprintf("`%s` used as a function", w.Marker)
	case WarnUnreachableCode:
		return "unreachable code"
	default:
		return "unknown warning"
	}
}

func (w *Warning) Hint() string {
	switch w.Kind {
	case WarnPlaceholderUsedAsFunction:
		if w.Args == 1 {
			return "the value piped into it is ignored"
		}
		return fmt.Sprintf("the %d values passed to it are ignored", w.Args)
	case WarnUnreachableCode:
		return "this code follows an expression that always aborts"
	default:
		return ""
	}
}

// Sink receives warnings as the analyzer finds them.
type Sink interface {
	Emit(w *Warning)
}

// Collector is a Sink that appends warnings in emission order.
type Collector struct {
	Warnings []*Warning
}

func (c *Collector) Emit(w *Warning) {
	c.Warnings = append(c.Warnings, w)
}
