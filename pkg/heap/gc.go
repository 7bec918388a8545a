package heap

import (
	"fmt"

	"sl/pkg/stack"
)

// Stats summarises one collection.
type Stats struct {
	Marked int // entries reached from the roots
	Freed  int // entries reclaimed by the sweep
	Slots  int // slot count after the sweep
}

// Collect frees every entry not reachable from roots through model fields.
func (h *Heap) Collect(roots []Object) Stats {
	stats := Stats{}

	// mark
	work := stack.NewStack(roots...)
	for work.Size() > 0 {
		obj, _ := work.Pop()
		e := h.entry(obj)
		if e.marked {
			continue
		}
		e.marked = true
		stats.Marked++

		if e.value.Kind == KindModel {
			for _, field := range e.value.Fields {
				work.Push(field)
			}
		}
	}

	// sweep
	for idx, e := range h.slots {
		if e == nil {
			continue
		}
		if e.marked {
			e.marked = false
			continue
		}
		h.slots[idx] = nil
		h.free.Put(idx, struct{}{})
		stats.Freed++
	}

	stats.Slots = len(h.slots)
	return stats
}

// SanityCheck verifies that the free-index set and the slot table agree and
// that no mark bit survived a collection.
func (h *Heap) SanityCheck() error {
	for _, key := range h.free.Keys() {
		idx := key.(int)
		if idx < 0 || idx >= len(h.slots) {
			return fmt.Errorf("heap: free index %d out of range (%d slots)", idx, len(h.slots))
		}
		if h.slots[idx] != nil {
			return fmt.Errorf("heap: free index %d is occupied", idx)
		}
	}

	for idx, e := range h.slots {
		if e == nil {
			if _, found := h.free.Get(idx); !found {
				return fmt.Errorf("heap: empty slot %d missing from free set", idx)
			}
			continue
		}
		if e.marked {
			return fmt.Errorf("heap: slot %d still marked outside collection", idx)
		}
	}

	return nil
}
