// Package scope implements the lexical scope chain: a stack of Global, Call
// and Block frames whose bindings and pinned temporaries form the garbage
// collector's root set.
package scope

import (
	"errors"
	"fmt"

	"sl/pkg/heap"
	"sl/pkg/stack"
)

var (
	ErrIdentifierNotFound = errors.New("identifier not found")
	ErrDuplicateLocalBind = errors.New("duplicate local binding")
)

// Chain is the stack of live frames. The bottom frame is the single
// persistent Global frame.
type Chain struct {
	frames *stack.Stack[*Scope]
}

// NewChain creates a chain holding only the Global frame
func NewChain() *Chain {
	return &Chain{frames: stack.NewStack(NewScope(Global))}
}

// Push opens a new innermost frame
func (c *Chain) Push(kind Kind) *Scope {
	s := NewScope(kind)
	c.frames.Push(s)
	return s
}

// Pop closes the innermost frame. The Global frame is never popped.
func (c *Chain) Pop() *Scope {
	if c.frames.Size() <= 1 {
		return nil
	}
	s, _ := c.frames.Pop()
	return s
}

// Current returns the innermost frame
func (c *Chain) Current() *Scope {
	s, _ := c.frames.Peek()
	return s
}

// Global returns the persistent Global frame
func (c *Chain) Global() *Scope {
	return c.frames.Array()[0]
}

// Depth returns the number of live frames, Global included
func (c *Chain) Depth() int {
	return c.frames.Size()
}

// Bind adds name to the innermost frame. Shadowing an outer frame is fine,
// rebinding within the same frame is not.
func (c *Chain) Bind(name string, obj heap.Object) error {
	cur := c.Current()
	if cur.Has(name) {
		return fmt.Errorf("%w: %s", ErrDuplicateLocalBind, name)
	}
	cur.vars[name] = obj
	return nil
}

// resolve finds the frame that binds name. Local search stops after the first
// Call frame; the caller's frames are never visible to the callee.
func (c *Chain) resolve(name string) (*Scope, bool) {
	frames := c.frames.Array()
	for i := len(frames) - 1; i > 0; i-- {
		s := frames[i]
		if s.Has(name) {
			return s, true
		}
		if s.Kind == Call {
			break
		}
	}

	if g := c.Global(); g.Has(name) {
		return g, true
	}
	return nil, false
}

// Lookup returns the object bound to name
func (c *Chain) Lookup(name string) (heap.Object, error) {
	s, ok := c.resolve(name)
	if !ok {
		return heap.Object{}, fmt.Errorf("%w: %s", ErrIdentifierNotFound, name)
	}
	return s.vars[name], nil
}

// Assign overwrites the existing binding of name, found with the Lookup rule
func (c *Chain) Assign(name string, obj heap.Object) error {
	s, ok := c.resolve(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrIdentifierNotFound, name)
	}
	s.vars[name] = obj
	return nil
}

// Pin keeps obj alive as an anonymous temporary of the innermost frame
func (c *Chain) Pin(obj heap.Object) {
	cur := c.Current()
	cur.unnamed = append(cur.unnamed, obj)
}

// Unpin drops the most recent pin of obj from the innermost frame, once the
// value has been consumed by a binding
func (c *Chain) Unpin(obj heap.Object) {
	cur := c.Current()
	for i := len(cur.unnamed) - 1; i >= 0; i-- {
		if cur.unnamed[i] == obj {
			cur.unnamed = append(cur.unnamed[:i], cur.unnamed[i+1:]...)
			return
		}
	}
}

// ReleaseTemporaries clears the innermost frame's temporaries. Only valid at
// a statement boundary of that frame.
func (c *Chain) ReleaseTemporaries() int {
	cur := c.Current()
	n := len(cur.unnamed)
	cur.unnamed = cur.unnamed[:0]
	return n
}

// Roots returns every bound object and pinned temporary of every live frame
func (c *Chain) Roots() []heap.Object {
	var roots []heap.Object
	for _, s := range c.frames.Array() {
		for _, obj := range s.vars {
			roots = append(roots, obj)
		}
		roots = append(roots, s.unnamed...)
	}
	return roots
}
