package runner_test

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"sl/internal/config"
	"sl/internal/runner"
	"sl/pkg/color"
	"sl/pkg/interpreter"
)

func newRunner(t *testing.T, src string) (*runner.Runner, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()

	prev := color.IsColorEnabled()
	color.EnableColor(false)
	t.Cleanup(func() { color.EnableColor(prev) })

	path := filepath.Join(t.TempDir(), "main.sl")
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	var out, errOut bytes.Buffer
	return &runner.Runner{
		Config:     config.Default(),
		SourceFile: path,
		Out:        &out,
		Err:        &errOut,
		Logger:     log.New(io.Discard),
	}, &out, &errOut
}

func TestRunEnded(t *testing.T) {
	r, out, _ := newRunner(t, `
func fib(n) { if n < 2 { return n; } return fib(n - 1) + fib(n - 2); }
func main() { print fib(10); }`)

	o := r.Run()
	if o.Kind != runner.Ended || o.ExitCode() != 0 {
		t.Fatalf("expected a normal end, got %v (%v)", o.Kind, o.Err)
	}

	want := "\n[SL info] Program started\n\n55\n\n[SL return]\n>>  nil\n>>  Program ended.\n"
	if out.String() != want {
		t.Errorf("expected %q, got %q", want, out.String())
	}
}

func TestRunReturned(t *testing.T) {
	r, out, _ := newRunner(t, `func main() { return "bye"; }`)

	o := r.Run()
	if o.Kind != runner.Returned || o.ExitCode() != 0 {
		t.Fatalf("expected a return, got %v (%v)", o.Kind, o.Err)
	}
	if o.Value.Str != "bye" {
		t.Errorf("expected returned value bye, got %v", o.Value)
	}
	if !strings.Contains(out.String(), "[SL return]\n>>  bye\n>>  Program returned.") {
		t.Errorf("missing return banner in %q", out.String())
	}
}

func TestRunRuntimeError(t *testing.T) {
	r, out, _ := newRunner(t, "func main() {\n  print 1 / 0;\n}")

	o := r.Run()
	if o.Kind != runner.Failed || o.Stage != runner.StageRun || o.ExitCode() != 1 {
		t.Fatalf("expected a runtime failure, got %+v", o)
	}
	if !errors.Is(o.Err, interpreter.ErrDivisionByZero) {
		t.Errorf("expected ErrDivisionByZero, got %v", o.Err)
	}
	if !strings.Contains(out.String(), "[SL runtime error]") || !strings.Contains(out.String(), "Program aborted.") {
		t.Errorf("missing runtime error banner in %q", out.String())
	}
}

func TestRunSyntaxError(t *testing.T) {
	r, out, errOut := newRunner(t, "func main() {\n  let x = ;\n}")

	o := r.Run()
	if o.Stage != runner.StageParse || o.ExitCode() != 2 {
		t.Fatalf("expected a parse failure, got %+v", o)
	}
	if out.Len() != 0 {
		t.Errorf("program should not start, got %q", out.String())
	}
	msg := errOut.String()
	if !strings.Contains(msg, "[SL syntax error]") || !strings.Contains(msg, "Error at 2:") || !strings.Contains(msg, "let x = ;") {
		t.Errorf("unexpected syntax error report %q", msg)
	}
}

func TestRunIllegalToken(t *testing.T) {
	r, _, errOut := newRunner(t, "func main() { let a = 1 @ 2; }")

	o := r.Run()
	if o.ExitCode() != 2 {
		t.Fatalf("expected exit code 2, got %d", o.ExitCode())
	}
	if !strings.Contains(errOut.String(), `Illegal token "@"`) {
		t.Errorf("unexpected report %q", errOut.String())
	}
}

func TestRunLoadError(t *testing.T) {
	r, _, errOut := newRunner(t, `func helper() { }`)

	o := r.Run()
	if o.Stage != runner.StageLoad || o.ExitCode() != 2 {
		t.Fatalf("expected a load failure, got %+v", o)
	}
	if !errors.Is(o.Err, interpreter.ErrMainNotFound) {
		t.Errorf("expected ErrMainNotFound, got %v", o.Err)
	}
	if !strings.Contains(errOut.String(), "[SL load error]") {
		t.Errorf("missing load error banner in %q", errOut.String())
	}
}

func TestRunMissingFile(t *testing.T) {
	r, _, _ := newRunner(t, "")
	r.SourceFile = filepath.Join(t.TempDir(), "missing.sl")

	o := r.Run()
	if o.Stage != runner.StageRead || o.ExitCode() != 2 {
		t.Fatalf("expected a read failure, got %+v", o)
	}
}

func TestRunDumpAST(t *testing.T) {
	r, out, _ := newRunner(t, `func main() { print 1 + 2; }`)
	r.Config.DumpAST = true

	if o := r.Run(); o.ExitCode() != 0 {
		t.Fatalf("unexpected failure: %v", o.Err)
	}
	if !strings.Contains(out.String(), "=== Syntax Tree ===\nfunc main() {\n  print 1 + 2;\n}") {
		t.Errorf("missing syntax tree dump in %q", out.String())
	}
}

func TestRunStepBudget(t *testing.T) {
	r, _, _ := newRunner(t, `func main() { while true { } }`)
	r.Config.MaxSteps = 50

	o := r.Run()
	if !errors.Is(o.Err, interpreter.ErrMaxStepsExceeded) || o.ExitCode() != 1 {
		t.Errorf("expected the step budget to stop the run, got %+v", o)
	}
}
