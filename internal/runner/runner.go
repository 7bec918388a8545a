package runner

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"sl/internal/config"
	"sl/pkg/ast"
	"sl/pkg/color"
	"sl/pkg/heap"
	"sl/pkg/interpreter"
	"sl/pkg/lexer"
	"sl/pkg/parser"
)

// Kind is how a run finished
type Kind int

const (
	Ended    Kind = iota // main ran off its end
	Returned             // main returned a value
	Failed               // the run stopped on an error
)

func (k Kind) String() string {
	switch k {
	case Ended:
		return "ended"
	case Returned:
		return "returned"
	default:
		return "failed"
	}
}

// Stage is the step of the pipeline an outcome was produced in
type Stage int

const (
	StageRead Stage = iota
	StageParse
	StageLoad
	StageRun
)

func (s Stage) String() string {
	switch s {
	case StageRead:
		return "read"
	case StageParse:
		return "parse"
	case StageLoad:
		return "load"
	default:
		return "run"
	}
}

// Outcome reports the result of a run
type Outcome struct {
	Kind  Kind
	Stage Stage
	Value heap.Value // returned value for Returned
	Err   error      // cause for Failed
}

// ExitCode maps the outcome to a process exit status: 0 when the program
// finished, 1 for a runtime error and 2 when it never started
func (o Outcome) ExitCode() int {
	switch {
	case o.Kind != Failed:
		return 0
	case o.Stage == StageRun:
		return 1
	default:
		return 2
	}
}

type Runner struct {
	Config     config.Config
	SourceFile string    // Path to the source file
	Out        io.Writer // program output and banners, stdout when nil
	Err        io.Writer // syntax and load errors, stderr when nil
	Logger     *log.Logger
}

// Run reads, parses, loads and runs the source file, reporting each stage on
// the console
func (r *Runner) Run() Outcome {
	r.defaults()
	r.Logger.Info("Processing file", "file", r.SourceFile)

	input, err := os.ReadFile(r.SourceFile)
	if err != nil {
		r.Logger.Error("Failed to read file", "file", r.SourceFile, "error", err)
		return Outcome{Kind: Failed, Stage: StageRead, Err: err}
	}

	return r.Exec(string(input))
}

// Exec runs source text that has already been read
func (r *Runner) Exec(src string) Outcome {
	r.defaults()

	prog, err := parser.ParseSource(src)
	if err != nil {
		fmt.Fprintln(r.Err, color.Tag(color.BrightRed, "syntax error"))
		fmt.Fprintln(r.Err, describeSyntaxError(src, err))
		return Outcome{Kind: Failed, Stage: StageParse, Err: err}
	}

	if r.Config.DumpAST {
		fmt.Fprintln(r.Out, color.GreenText("=== Syntax Tree ==="))
		if err := ast.Fprint(r.Out, prog); err != nil {
			r.Logger.Warn("Failed to print syntax tree", "error", err)
		}
	}

	opts := append(r.Config.Options(),
		interpreter.WithWriter(r.Out),
		interpreter.WithLogger(r.Logger))
	it := interpreter.NewInterpreter(opts...)

	if err := it.Load(prog); err != nil {
		fmt.Fprintln(r.Err, color.Tag(color.BrightRed, "load error"))
		fmt.Fprintf(r.Err, ">>  %v\n", err)
		return Outcome{Kind: Failed, Stage: StageLoad, Err: err}
	}

	fmt.Fprintf(r.Out, "\n%s\n\n", color.Tag(color.Green, "info")+" "+color.GreenText("Program started"))
	res, err := it.Run()

	r.Logger.Info("Program finished",
		"steps", it.Steps(),
		"collections", it.Collections(),
		"live", it.Heap().Live(),
		"slots", it.Heap().Len())

	switch {
	case err != nil:
		fmt.Fprintf(r.Out, "\n%s\n>>  %s\n>>  Program aborted.\n",
			color.Tag(color.BrightRed, "runtime error"), color.RedText(err.Error()))
		return Outcome{Kind: Failed, Stage: StageRun, Err: err}

	case res.Returned:
		fmt.Fprintf(r.Out, "\n%s\n>>  %s\n>>  Program returned.\n",
			color.Tag(color.Blue, "return"), color.BlueText(res.Value.String()))
		return Outcome{Kind: Returned, Stage: StageRun, Value: res.Value}

	default:
		fmt.Fprintf(r.Out, "\n%s\n>>  %s\n>>  Program ended.\n",
			color.Tag(color.Blue, "return"), color.BlueText(res.Value.String()))
		return Outcome{Kind: Ended, Stage: StageRun, Value: res.Value}
	}
}

func (r *Runner) defaults() {
	if r.Out == nil {
		r.Out = os.Stdout
	}
	if r.Err == nil {
		r.Err = os.Stderr
	}
	if r.Logger == nil {
		r.Logger = log.Default()
	}
}

// describeSyntaxError renders a syntax error with the offending source line
func describeSyntaxError(src string, err error) string {
	var pos lexer.Position
	var msg string

	var synErr *parser.SyntaxError
	var lexErr *lexer.IllegalTokenError
	switch {
	case errors.As(err, &synErr):
		pos, msg = synErr.Pos, synErr.Msg
	case errors.As(err, &lexErr):
		pos, msg = lexErr.Pos, fmt.Sprintf("Illegal token %q", lexErr.Lexeme)
	default:
		return ">>  " + err.Error()
	}

	lines := strings.Split(src, "\n")
	if pos.Line < 1 || pos.Line > len(lines) {
		return color.ErrorWithPosition(pos.Line, pos.Column, msg, "")
	}

	context := lines[pos.Line-1] + "\n" + color.Caret(pos.Column)
	return color.ErrorWithPosition(pos.Line, pos.Column, msg, context)
}
