package interpreter

import (
	"io"
	"os"

	"github.com/charmbracelet/log"

	"sl/pkg/ast"
	"sl/pkg/heap"
	"sl/pkg/scope"
)

// DefaultGCInterval is the number of seconds between collections
const DefaultGCInterval = 0.8

// DefaultMaxDepth bounds nested calls so runaway recursion fails cleanly
const DefaultMaxDepth = 10000

// Interpreter walks a loaded program over a garbage-collected object heap
type Interpreter struct {
	heap   *heap.Heap
	scopes *scope.Chain

	models map[string]*ast.ModelDef // model name -> declaration
	entry  []ast.Stmt                // body of main
	loaded bool

	out    io.Writer   // output writer for print
	logger *log.Logger // debug tracing of load, calls and collections

	gc          *gcTimer
	gcInterval  float64 // seconds between collections (<0 = never)
	collections int

	maxSteps int // maximum steps (0 = unlimited)
	steps    int // statements and loop iterations executed
	maxDepth int // maximum nested calls (0 = unlimited)
	depth    int // current call depth
}

// Result is the completion of a program run
type Result struct {
	Returned bool       // main ended with an explicit return
	Value    heap.Value // returned value, Nil when the body ran off its end
}

type Option func(*Interpreter)

// WithWriter sets the output writer for print statements
func WithWriter(w io.Writer) Option {
	return func(i *Interpreter) { i.out = w }
}

// WithGCInterval sets the seconds between collections. Zero collects before
// every statement, a negative interval disables collection.
func WithGCInterval(seconds float64) Option {
	return func(i *Interpreter) { i.gcInterval = seconds }
}

// WithMaxSteps sets a maximum number of steps before returning ErrMaxStepsExceeded
func WithMaxSteps(n int) Option {
	return func(i *Interpreter) { i.maxSteps = n }
}

// WithMaxDepth sets a maximum call depth before returning ErrCallDepthExceeded
func WithMaxDepth(n int) Option {
	return func(i *Interpreter) { i.maxDepth = n }
}

// WithLogger sets the logger used for debug tracing
func WithLogger(l *log.Logger) Option {
	return func(i *Interpreter) { i.logger = l }
}

// NewInterpreter creates an Interpreter with an empty heap and a chain
// holding only the Global frame
func NewInterpreter(opts ...Option) *Interpreter {
	it := &Interpreter{
		heap:       heap.New(),
		scopes:     scope.NewChain(),
		models:     make(map[string]*ast.ModelDef),
		gcInterval: DefaultGCInterval,
		maxDepth:   DefaultMaxDepth,
	}

	for _, o := range opts {
		o(it)
	}

	if it.out == nil {
		it.out = os.Stdout
	}
	if it.logger == nil {
		it.logger = log.Default()
	}

	it.gc = newGCTimer(it.gcInterval)
	return it
}

// Exec loads prog into a fresh interpreter and runs it
func Exec(prog *ast.Program, opts ...Option) (Result, error) {
	it := NewInterpreter(opts...)
	if err := it.Load(prog); err != nil {
		return Result{}, err
	}
	return it.Run()
}

// Run executes the entry body in a Block frame over Global
func (i *Interpreter) Run() (Result, error) {
	if !i.loaded {
		return Result{}, ErrNotLoaded
	}

	i.gc.Reset()
	i.scopes.Push(scope.Block)
	defer i.scopes.Pop()

	out, err := i.execBlock(i.entry)
	if err != nil {
		return Result{}, err
	}

	if out.flow == flowReturn {
		return Result{Returned: true, Value: i.heap.Read(out.value)}, nil
	}
	return Result{Value: heap.Nil()}, nil
}

// Heap returns the object heap
func (i *Interpreter) Heap() *heap.Heap {
	return i.heap
}

// Scopes returns the scope chain
func (i *Interpreter) Scopes() *scope.Chain {
	return i.scopes
}

// Output returns the output writer used for print
func (i *Interpreter) Output() io.Writer {
	return i.out
}

// Steps returns the number of statements and loop iterations executed
func (i *Interpreter) Steps() int {
	return i.steps
}

// Collections returns the number of completed GC cycles
func (i *Interpreter) Collections() int {
	return i.collections
}

// Collect releases the innermost frame's temporaries and runs a mark-sweep
// cycle over the chain's roots. Only valid at a statement boundary.
func (i *Interpreter) Collect() heap.Stats {
	released := i.scopes.ReleaseTemporaries()
	stats := i.heap.Collect(i.scopes.Roots())
	i.collections++

	i.logger.Debug("GC cycle",
		"marked", stats.Marked,
		"freed", stats.Freed,
		"slots", stats.Slots,
		"released", released,
		"elapsed", i.gc.Elapsed())

	if i.logger.GetLevel() <= log.DebugLevel {
		if err := i.heap.SanityCheck(); err != nil {
			panic(err)
		}
	}

	i.gc.Reset()
	return stats
}

// alloc places v on the heap and pins it in the innermost frame
func (i *Interpreter) alloc(v heap.Value) heap.Object {
	obj := i.heap.Allocate(v)
	i.scopes.Pin(obj)
	return obj
}
