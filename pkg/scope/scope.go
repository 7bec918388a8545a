package scope

import (
	"sl/pkg/heap"
)

type Kind int

const (
	Global Kind = iota
	Call
	Block
)

func (k Kind) String() string {
	switch k {
	case Global:
		return "global"
	case Call:
		return "call"
	case Block:
		return "block"
	default:
		return "unknown"
	}
}

// Scope is one lexical frame.
type Scope struct {
	Kind    Kind                   // frame kind
	vars    map[string]heap.Object // named bindings
	unnamed []heap.Object          // pinned temporaries
}

// NewScope creates an empty frame of the given kind
func NewScope(kind Kind) *Scope {
	return &Scope{
		Kind: kind,
		vars: make(map[string]heap.Object),
	}
}

// Get returns the binding for name in this frame only
func (s *Scope) Get(name string) (heap.Object, bool) {
	obj, ok := s.vars[name]
	return obj, ok
}

// Has reports whether name is bound in this frame
func (s *Scope) Has(name string) bool {
	_, ok := s.vars[name]
	return ok
}

// Names returns the number of named bindings in this frame
func (s *Scope) Names() int {
	return len(s.vars)
}

// Temporaries returns the number of pinned temporaries in this frame
func (s *Scope) Temporaries() int {
	return len(s.unnamed)
}
