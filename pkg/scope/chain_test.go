package scope_test

import (
	"errors"
	"slices"
	"testing"

	"sl/pkg/heap"
	"sl/pkg/scope"
)

func objects(h *heap.Heap, n int) []heap.Object {
	objs := make([]heap.Object, n)
	for i := range objs {
		objs[i] = h.Allocate(heap.Int(int64(i)))
	}
	return objs
}

func TestBindDuplicate(t *testing.T) {
	h := heap.New()
	o := objects(h, 2)
	c := scope.NewChain()

	if err := c.Bind("x", o[0]); err != nil {
		t.Fatalf("first bind: %v", err)
	}
	if err := c.Bind("x", o[1]); !errors.Is(err, scope.ErrDuplicateLocalBind) {
		t.Errorf("expected ErrDuplicateLocalBind, got %v", err)
	}
}

func TestShadowing(t *testing.T) {
	h := heap.New()
	o := objects(h, 2)
	c := scope.NewChain()

	_ = c.Bind("x", o[0])
	c.Push(scope.Block)
	if err := c.Bind("x", o[1]); err != nil {
		t.Fatalf("shadowing bind failed: %v", err)
	}
	if got, _ := c.Lookup("x"); got != o[1] {
		t.Errorf("inner lookup should see the shadow, got %v", got)
	}

	c.Pop()
	if got, _ := c.Lookup("x"); got != o[0] {
		t.Errorf("shadow should end with its frame, got %v", got)
	}
}

func TestLookupStopsAtCallBoundary(t *testing.T) {
	h := heap.New()
	o := objects(h, 4)
	c := scope.NewChain()

	_ = c.Bind("g", o[0]) // global
	c.Push(scope.Block)
	_ = c.Bind("callerLocal", o[1])
	c.Push(scope.Call)
	_ = c.Bind("param", o[2])
	c.Push(scope.Block)
	_ = c.Bind("inner", o[3])

	tests := []struct {
		name  string
		found bool
		want  heap.Object
	}{
		{"inner", true, o[3]},
		{"param", true, o[2]},
		{"g", true, o[0]},
		{"callerLocal", false, heap.Object{}},
		{"nope", false, heap.Object{}},
	}

	for _, tt := range tests {
		got, err := c.Lookup(tt.name)
		if !tt.found {
			if !errors.Is(err, scope.ErrIdentifierNotFound) {
				t.Errorf("%s: expected ErrIdentifierNotFound, got %v", tt.name, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("%s: got %v, %v", tt.name, got, err)
		}
	}

	c.Pop()
	c.Pop()
	if got, err := c.Lookup("callerLocal"); err != nil || got != o[1] {
		t.Errorf("callerLocal visible again after the call: %v, %v", got, err)
	}
}

func TestAssign(t *testing.T) {
	h := heap.New()
	o := objects(h, 3)
	c := scope.NewChain()

	_ = c.Bind("g", o[0])
	c.Push(scope.Call)
	c.Push(scope.Block)

	if err := c.Assign("g", o[1]); err != nil {
		t.Fatalf("assign global: %v", err)
	}
	c.Pop()
	c.Pop()
	if got, _ := c.Lookup("g"); got != o[1] {
		t.Errorf("global not overwritten, got %v", got)
	}

	if err := c.Assign("missing", o[2]); !errors.Is(err, scope.ErrIdentifierNotFound) {
		t.Errorf("expected ErrIdentifierNotFound, got %v", err)
	}
}

func TestRootsAndTemporaries(t *testing.T) {
	h := heap.New()
	o := objects(h, 5)
	c := scope.NewChain()

	_ = c.Bind("g", o[0])
	c.Pin(o[1])
	c.Push(scope.Call)
	_ = c.Bind("p", o[2])
	c.Pin(o[3])
	c.Pin(o[4])

	roots := c.Roots()
	for _, want := range o {
		if !slices.Contains(roots, want) {
			t.Errorf("root set misses %v", want)
		}
	}

	c.Unpin(o[3])
	if c.Current().Temporaries() != 1 {
		t.Errorf("expected one temporary after unpin, got %d", c.Current().Temporaries())
	}

	if n := c.ReleaseTemporaries(); n != 1 {
		t.Errorf("expected to release 1 temporary, released %d", n)
	}
	if slices.Contains(c.Roots(), o[4]) {
		t.Error("released temporary still rooted")
	}
	if !slices.Contains(c.Roots(), o[1]) {
		t.Error("outer frame temporaries must survive releasing the inner frame")
	}

	c.Pop()
	if slices.Contains(c.Roots(), o[2]) {
		t.Error("popped frame still rooted")
	}
}

func TestGlobalNeverPopped(t *testing.T) {
	c := scope.NewChain()
	if c.Pop() != nil {
		t.Error("popping the global frame should be refused")
	}
	if c.Depth() != 1 || c.Current() != c.Global() || c.Global().Kind != scope.Global {
		t.Errorf("unexpected chain state: depth %d", c.Depth())
	}
}
