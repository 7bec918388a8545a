package heap_test

import (
	"strings"
	"testing"

	"sl/pkg/ast"
	"sl/pkg/heap"
)

func liveSet(h *heap.Heap) []bool {
	live := make([]bool, h.Len())
	for i := range live {
		live[i] = h.IsLive(i)
	}
	return live
}

func expectLive(t *testing.T, h *heap.Heap, want ...bool) {
	t.Helper()
	got := liveSet(h)
	if len(got) != len(want) {
		t.Fatalf("expected %d slots, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("slot %d: expected live=%v, got %v", i, want[i], got[i])
		}
	}
	if err := h.SanityCheck(); err != nil {
		t.Errorf("sanity check: %v", err)
	}
}

func TestCollectBase(t *testing.T) {
	h := heap.New()

	a := h.Allocate(heap.Int(1))
	b := h.Allocate(heap.Float(-114.514))
	h.Allocate(heap.String("Hello, SL!"))
	d := h.Allocate(heap.Model("Mdl", map[string]heap.Object{"hello": a}))

	stats := h.Collect([]heap.Object{b, d})

	expectLive(t, h, true, true, false, true)
	if stats.Marked != 3 || stats.Freed != 1 || stats.Slots != 4 {
		t.Errorf("unexpected stats %+v", stats)
	}
	if h.Live() != 3 {
		t.Errorf("expected 3 live entries, got %d", h.Live())
	}
}

func TestCollectCycles(t *testing.T) {
	h := heap.New()

	a := h.Allocate(heap.Int(1))
	b := h.Allocate(heap.Float(-114.514))
	c := h.Allocate(heap.String("Hello, SL!"))
	h.Allocate(heap.Teer(ast.Excel))
	d := h.Allocate(heap.Model("Mdl", map[string]heap.Object{"hello": a, "world": b}))
	e := h.Allocate(heap.Nil())
	f := h.Allocate(heap.Model("Mdl", map[string]heap.Object{"world": e, "ffff": d}))

	if err := h.Rebind(d, []string{"world"}, f); err != nil {
		t.Fatalf("rebind: %v", err)
	}

	h.Collect([]heap.Object{c, d})
	expectLive(t, h, true, false, true, false, true, true, true)

	h.Collect([]heap.Object{c})
	expectLive(t, h, false, false, true, false, false, false, false)
}

func TestCollectMutualCycleWithoutRoots(t *testing.T) {
	h := heap.New()

	na := h.Allocate(heap.Nil())
	nb := h.Allocate(heap.Nil())
	a := h.Allocate(heap.Model("Node", map[string]heap.Object{"next": na}))
	b := h.Allocate(heap.Model("Node", map[string]heap.Object{"next": nb}))

	// a.next = b; b.next = a;
	if err := h.Rebind(a, []string{"next"}, b); err != nil {
		t.Fatal(err)
	}
	if err := h.Rebind(b, []string{"next"}, a); err != nil {
		t.Fatal(err)
	}

	h.Collect([]heap.Object{a})
	expectLive(t, h, false, false, true, true)

	stats := h.Collect(nil)
	expectLive(t, h, false, false, false, false)
	if stats.Freed != 2 {
		t.Errorf("expected both cycle members freed, got %d", stats.Freed)
	}
}

func TestCollectSelfCycle(t *testing.T) {
	h := heap.New()
	n := h.Allocate(heap.Nil())
	self := h.Allocate(heap.Model("Node", map[string]heap.Object{"me": n}))
	if err := h.Rebind(self, []string{"me"}, self); err != nil {
		t.Fatal(err)
	}

	h.Collect([]heap.Object{self})
	expectLive(t, h, false, true)

	if got := h.Read(self).String(); !strings.Contains(got, "<Node@1>") {
		t.Errorf("self reference should render as a ref, got %q", got)
	}

	h.Collect(nil)
	expectLive(t, h, false, false)
}

func TestCollectDuplicateRoots(t *testing.T) {
	h := heap.New()
	x := h.Allocate(heap.Int(1))
	stats := h.Collect([]heap.Object{x, x, x})
	if stats.Marked != 1 || !h.IsLive(x.Index()) {
		t.Errorf("duplicate roots should mark once, got %+v", stats)
	}
}

func TestCollectDeepChain(t *testing.T) {
	h := heap.New()

	head := h.Allocate(heap.Nil())
	for i := 0; i < 100000; i++ {
		head = h.Allocate(heap.Model("Link", map[string]heap.Object{"next": head}))
	}

	stats := h.Collect([]heap.Object{head})
	if stats.Freed != 0 || stats.Marked != 100001 {
		t.Errorf("deep chain should survive intact, got %+v", stats)
	}
}

func TestFreedIndexIsReused(t *testing.T) {
	h := heap.New()
	keep := make([]heap.Object, 0, 5)
	for i := 0; i < 5; i++ {
		keep = append(keep, h.Allocate(heap.Int(int64(i))))
	}

	// drop 1 and 3
	h.Collect([]heap.Object{keep[0], keep[2], keep[4]})

	first := h.Allocate(heap.String("first"))
	if first.Index() != 1 {
		t.Errorf("expected lowest free index 1, got %d", first.Index())
	}
	second := h.Allocate(heap.String("second"))
	if second.Index() != 3 {
		t.Errorf("expected next free index 3, got %d", second.Index())
	}
	third := h.Allocate(heap.String("third"))
	if third.Index() != 5 {
		t.Errorf("expected append at 5, got %d", third.Index())
	}

	if err := h.SanityCheck(); err != nil {
		t.Errorf("sanity check: %v", err)
	}
}

func TestReadFreedPanics(t *testing.T) {
	h := heap.New()
	x := h.Allocate(heap.Int(1))
	h.Collect(nil)

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic reading a freed index")
		}
		if msg, ok := r.(string); !ok || !strings.Contains(msg, "invalid object index") {
			t.Errorf("unexpected panic value %v", r)
		}
	}()
	h.Read(x)
}
