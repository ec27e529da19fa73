package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/funvibe/funpipe/internal/analyzer"
	"github.com/funvibe/funpipe/internal/config"
	"github.com/funvibe/funpipe/internal/lexer"
	"github.com/funvibe/funpipe/internal/parser"
	"github.com/funvibe/funpipe/internal/pipeline"
	"github.com/funvibe/funpipe/internal/prettyprinter"
)

// options collects the command line flags for one invocation.
type options struct {
	jsonOutput bool
	desugared  bool
	astOutline bool
	watch      bool
	noColor    bool
	file       string
}

const usage = `Usage: funpipe [flags] [file]

Checks a source file (or stdin) and reports type errors and warnings.

Flags:
  --json        machine readable diagnostics on stdout
  --desugared   print the checked program with pipelines rewritten
  --ast         print the syntax tree outline
  --watch       re-check the file whenever it changes
  --no-color    disable colored output
  --version     print the tool version
  --help        print this help
`

func main() {
	// Catch panics and show user-friendly error
	defer func() {
		if r := recover(); r != nil {
			if os.Getenv("DEBUG") == "1" {
				panic(r) // Re-panic to get stack trace
			}
			fmt.Fprintf(os.Stderr, "Internal error: %v\n", r)
			fmt.Fprintln(os.Stderr, "This is a bug. Please report it.")
			os.Exit(1)
		}
	}()

	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes one invocation and returns the process exit code: 0 for a
// clean check, 1 when diagnostics were reported, 2 for usage and I/O
// problems. Split from main so tests can drive the binary without exec.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var opts options
	for _, arg := range args {
		switch arg {
		case "--json":
			opts.jsonOutput = true
		case "--desugared":
			opts.desugared = true
		case "--ast":
			opts.astOutline = true
		case "--watch":
			opts.watch = true
		case "--no-color":
			opts.noColor = true
		case "--version", "-v":
			fmt.Fprintf(stdout, "funpipe %s\n", config.Version)
			return 0
		case "--help", "-h", "help":
			fmt.Fprint(stdout, usage)
			return 0
		default:
			if len(arg) > 0 && arg[0] == '-' {
				fmt.Fprintf(stderr, "Unknown flag: %s\n", arg)
				fmt.Fprint(stderr, usage)
				return 2
			}
			if opts.file != "" {
				fmt.Fprintln(stderr, "Only one file can be checked at a time")
				return 2
			}
			opts.file = arg
		}
	}

	if opts.watch {
		if opts.file == "" {
			fmt.Fprintln(stderr, "--watch needs a file to watch")
			return 2
		}
		return watchAndCheck(opts, stdout, stderr)
	}

	source, path, err := readInput(opts.file, stdin)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %s\n", err)
		return 2
	}

	project, err := discoverProject(path)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %s\n", err)
		return 1
	}

	return runCheck(source, path, project, opts, stdout, stderr)
}

// runCheck checks one source text and renders the results according to the
// output flags.
func runCheck(source, path string, project *config.Project, opts options, stdout, stderr io.Writer) int {
	ctx := check(source, path, project)

	r := newRenderer(stdout, stderr, source, opts.noColor)
	if opts.jsonOutput {
		if err := r.renderJSON(ctx); err != nil {
			fmt.Fprintf(stderr, "Error: %s\n", err)
			return 2
		}
	} else {
		r.renderHuman(ctx)
	}

	if opts.astOutline && ctx.AstRoot != nil {
		fmt.Fprint(stdout, prettyprinter.NewTreePrinter().Print(ctx.AstRoot))
	}

	if opts.desugared && !ctx.HasErrors() {
		for _, stmt := range ctx.TypedRoot {
			fmt.Fprintln(stdout, stmt.String())
		}
	}

	if ctx.HasErrors() {
		return 1
	}
	return 0
}

// check runs the stage pipeline over one source text.
func check(source, path string, project *config.Project) *pipeline.PipelineContext {
	ctx := pipeline.NewPipelineContext(source)
	ctx.FilePath = path
	ctx.Project = project

	processingPipeline := pipeline.New(
		&lexer.LexerProcessor{},
		&parser.ParserProcessor{},
		&analyzer.SemanticAnalyzerProcessor{},
	)
	return processingPipeline.Run(ctx)
}

// readInput reads the file named by file, or stdin when no file was given.
func readInput(file string, stdin io.Reader) (source, path string, err error) {
	if file == "" {
		if f, ok := stdin.(*os.File); ok {
			stat, _ := f.Stat()
			if stat != nil && (stat.Mode()&os.ModeCharDevice) != 0 {
				return "", "", fmt.Errorf("no input: pass a file or pipe source on stdin")
			}
		}
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), "<stdin>", nil
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return "", "", err
	}
	abs, aerr := filepath.Abs(file)
	if aerr != nil {
		abs = file
	}
	return string(data), abs, nil
}

// discoverProject looks for funpipe.yml next to the checked file, walking up
// parent directories. Checking stdin looks from the working directory.
func discoverProject(path string) (*config.Project, error) {
	dir := "."
	if path != "" && path != "<stdin>" {
		dir = filepath.Dir(path)
	}

	manifest, err := config.FindProject(dir)
	if err != nil || manifest == "" {
		return nil, err
	}
	return config.LoadProject(manifest)
}
