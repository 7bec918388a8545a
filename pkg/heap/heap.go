// Package heap owns every runtime value of a running program. Values live in
// an index-addressed arena and are reclaimed by a stop-the-world mark-sweep
// collector.
package heap

import (
	"errors"
	"fmt"
	"maps"

	"github.com/emirpasic/gods/trees/redblacktree"
)

var (
	ErrMemberNotFound  = errors.New("member not found")
	ErrCannotGetMember = errors.New("not a model, cannot get member")
)

// Object is a handle to a heap entry. It carries no ownership.
type Object struct {
	index int
}

// Index returns the heap index the handle refers to.
func (o Object) Index() int {
	return o.index
}

func (o Object) String() string {
	return fmt.Sprintf("#%d", o.index)
}

type entry struct {
	value  Value
	marked bool
}

// Heap is the arena of runtime values.
type Heap struct {
	slots []*entry          // nil slots are free
	free  *redblacktree.Tree // free slot indices, lowest first
}

// New creates an empty heap
func New() *Heap {
	return &Heap{
		slots: make([]*entry, 0, 64),
		free:  redblacktree.NewWithIntComparator(),
	}
}

// Allocate stores v, reusing the lowest free index if there is one.
func (h *Heap) Allocate(v Value) Object {
	if v.Kind == KindModel {
		v.Fields = maps.Clone(v.Fields)
	}
	v.Members = nil
	v.Index = 0
	e := &entry{value: v}

	if node := h.free.Left(); node != nil {
		idx := node.Key.(int)
		h.free.Remove(idx)
		h.slots[idx] = e
		return Object{index: idx}
	}

	h.slots = append(h.slots, e)
	return Object{index: len(h.slots) - 1}
}

// entry resolves a handle. A freed or out-of-range index is an interpreter bug.
func (h *Heap) entry(o Object) *entry {
	if o.index < 0 || o.index >= len(h.slots) || h.slots[o.index] == nil {
		panic(fmt.Sprintf("heap: invalid object index %d", o.index))
	}
	return h.slots[o.index]
}

// Kind reports the kind of the stored value without copying it.
func (h *Heap) Kind(o Object) ValueKind {
	return h.entry(o).value.Kind
}

// Read returns a copy of the stored value. Model fields that hold models are
// returned as KindRef views instead of being expanded, so cycles are safe.
func (h *Heap) Read(o Object) Value {
	v := h.entry(o).value
	v.Index = o.index

	if v.Kind == KindModel {
		v.Fields = maps.Clone(v.Fields)
		v.Members = make(map[string]Value, len(v.Fields))
		for name, field := range v.Fields {
			fv := h.entry(field).value
			fv.Index = field.index
			if fv.Kind == KindModel {
				fv = Value{Kind: KindRef, Name: fv.Name, Index: field.index}
			}
			v.Members[name] = fv
		}
	}

	return v
}

// Member returns the object bound to field on the model o.
func (h *Heap) Member(o Object, field string) (Object, error) {
	v := h.entry(o).value
	if v.Kind != KindModel {
		return Object{}, fmt.Errorf("%w: %s value has no member %s", ErrCannotGetMember, v.Kind, field)
	}

	member, ok := v.Fields[field]
	if !ok {
		return Object{}, fmt.Errorf("%w: %s.%s", ErrMemberNotFound, v.Name, field)
	}
	return member, nil
}

// Members follows path from o one field at a time.
func (h *Heap) Members(o Object, path []string) (Object, error) {
	cur := o
	for _, field := range path {
		next, err := h.Member(cur, field)
		if err != nil {
			return Object{}, err
		}
		cur = next
	}
	return cur, nil
}

// Rebind points the last field of path (walked from base) at target. The
// owner of that field is resolved to an index before it is mutated.
func (h *Heap) Rebind(base Object, path []string, target Object) error {
	if len(path) == 0 {
		return fmt.Errorf("%w: empty member path", ErrMemberNotFound)
	}
	h.entry(target)

	owner, err := h.Members(base, path[:len(path)-1])
	if err != nil {
		return err
	}

	field := path[len(path)-1]
	if _, err := h.Member(owner, field); err != nil {
		return err
	}

	h.slots[owner.index].value.Fields[field] = target
	return nil
}

// IsLive reports whether index holds a value.
func (h *Heap) IsLive(index int) bool {
	return index >= 0 && index < len(h.slots) && h.slots[index] != nil
}

// Len returns the number of slots, free or occupied.
func (h *Heap) Len() int {
	return len(h.slots)
}

// Live returns the number of occupied slots.
func (h *Heap) Live() int {
	return len(h.slots) - h.free.Size()
}
