// Package prettyprinter renders syntax trees for inspection. The output is
// an indented outline, one node per line with its source span, which is what
// `funpipe --ast` prints.
package prettyprinter

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/funvibe/funpipe/internal/ast"
	"github.com/funvibe/funpipe/internal/token"
)

type TreePrinter struct {
	buf    bytes.Buffer
	indent int
}

func NewTreePrinter() *TreePrinter {
	return &TreePrinter{}
}

func (p *TreePrinter) writeIndent() {
	for i := 0; i < p.indent; i++ {
		p.buf.WriteString("  ")
	}
}

func (p *TreePrinter) line(format string, args ...interface{}) {
	p.writeIndent()
	fmt.Fprintf(&p.buf, format, args...)
	p.buf.WriteString("\n")
}

func spanString(s token.Span) string {
	return fmt.Sprintf("[%d..%d]", s.Start, s.End)
}

// Print renders the whole program and returns the outline.
func (p *TreePrinter) Print(program *ast.Program) string {
	p.buf.Reset()
	p.indent = 0

	p.line("Program %s", spanString(program.Span()))
	p.indent++
	for _, stmt := range program.Statements {
		p.printStatement(stmt)
	}
	p.indent--

	return p.buf.String()
}

func (p *TreePrinter) printStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.LetStatement:
		p.line("Let %s %s", s.Name.Value, spanString(s.Span()))
		p.indent++
		if s.TypeAnnotation != nil {
			p.printType(s.TypeAnnotation)
		}
		p.printExpression(s.Value)
		p.indent--
	case *ast.FunctionStatement:
		p.line("Function %s %s", s.Name.Value, spanString(s.Span()))
		p.indent++
		p.printParameters(s.Parameters)
		if s.ReturnType != nil {
			p.printType(s.ReturnType)
		}
		p.printBlock(s.Body)
		p.indent--
	case *ast.ExpressionStatement:
		p.printExpression(s.Expression)
	case *ast.BlockStatement:
		p.printBlock(s)
	default:
		p.line("UnknownStatement %T", stmt)
	}
}

func (p *TreePrinter) printBlock(block *ast.BlockStatement) {
	if block == nil {
		return
	}
	p.line("Block %s", spanString(block.Span()))
	p.indent++
	for _, stmt := range block.Statements {
		p.printStatement(stmt)
	}
	p.indent--
}

func (p *TreePrinter) printParameters(params []*ast.FunctionParameter) {
	for _, param := range params {
		if param.TypeAnnotation != nil {
			p.line("Param %s: %s %s", param.Name.Value, typeString(param.TypeAnnotation), spanString(param.Span()))
		} else {
			p.line("Param %s %s", param.Name.Value, spanString(param.Span()))
		}
	}
}

func (p *TreePrinter) printExpression(expr ast.Expression) {
	if expr == nil {
		p.line("<missing>")
		return
	}
	switch e := expr.(type) {
	case *ast.Identifier:
		p.line("Identifier %s %s", e.Value, spanString(e.Span()))
	case *ast.IntegerLiteral:
		p.line("Int %d %s", e.Value, spanString(e.Span()))
	case *ast.FloatLiteral:
		p.line("Float %s %s", strconv.FormatFloat(e.Value, 'g', -1, 64), spanString(e.Span()))
	case *ast.StringLiteral:
		p.line("String %s %s", strconv.Quote(e.Value), spanString(e.Span()))
	case *ast.BooleanLiteral:
		p.line("Bool %t %s", e.Value, spanString(e.Span()))
	case *ast.Todo:
		p.line("Todo %s", spanString(e.Span()))
	case *ast.Panic:
		p.line("Panic %s", spanString(e.Span()))
	case *ast.PrefixExpression:
		p.line("Prefix %s %s", e.Operator, spanString(e.Span()))
		p.indent++
		p.printExpression(e.Right)
		p.indent--
	case *ast.InfixExpression:
		p.line("Infix %s %s", e.Operator, spanString(e.Span()))
		p.indent++
		p.printExpression(e.Left)
		p.printExpression(e.Right)
		p.indent--
	case *ast.CallExpression:
		p.line("Call %s", spanString(e.Span()))
		p.indent++
		p.printExpression(e.Function)
		for _, arg := range e.Arguments {
			p.printArgument(arg)
		}
		p.indent--
	case *ast.Pipeline:
		p.line("Pipeline %s", spanString(e.Span()))
		p.indent++
		for _, step := range e.Expressions {
			p.printExpression(step)
		}
		p.indent--
	case *ast.FunctionLiteral:
		p.line("Fn %s", spanString(e.Span()))
		p.indent++
		p.printParameters(e.Parameters)
		if e.ReturnType != nil {
			p.printType(e.ReturnType)
		}
		p.printBlock(e.Body)
		p.indent--
	default:
		p.line("UnknownExpression %T", expr)
	}
}

func (p *TreePrinter) printArgument(arg *ast.CallArgument) {
	if arg.Label != nil {
		p.line("Arg %s: %s", arg.Label.Value, spanString(arg.Span()))
	} else {
		p.line("Arg %s", spanString(arg.Span()))
	}
	p.indent++
	p.printExpression(arg.Value)
	p.indent--
}

func (p *TreePrinter) printType(t ast.Type) {
	p.line("Type %s %s", typeString(t), spanString(t.Span()))
}

func typeString(t ast.Type) string {
	switch tt := t.(type) {
	case *ast.NamedType:
		return tt.Name
	case *ast.FunctionType:
		parts := make([]string, len(tt.Parameters))
		for i, param := range tt.Parameters {
			parts[i] = typeString(param)
		}
		return "fn(" + strings.Join(parts, ", ") + ") -> " + typeString(tt.ReturnType)
	default:
		return fmt.Sprintf("%T", t)
	}
}
