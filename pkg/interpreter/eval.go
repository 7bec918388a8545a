package interpreter

import (
	"fmt"

	"sl/pkg/ast"
	"sl/pkg/heap"
)

// eval evaluates expr in the current frame. The result is pinned exactly
// once in the innermost frame; a consumer that is done with it unpins it.
func (i *Interpreter) eval(expr ast.Expr) (heap.Object, error) {
	switch n := expr.(type) {
	case *ast.Literal:
		return i.alloc(heap.FromLiteral(n)), nil
	case *ast.Identifier:
		return i.pinned(i.scopes.Lookup(n.Name))
	case *ast.Paren:
		return i.eval(n.Inner)
	case *ast.New:
		return i.evalNew(n)
	case *ast.Member:
		base, err := i.scopes.Lookup(n.Base)
		if err != nil {
			return heap.Object{}, err
		}
		return i.pinned(i.heap.Members(base, n.Path))
	case *ast.Binary:
		return i.evalBinary(n)
	case *ast.Unary:
		return i.evalUnary(n)
	case *ast.Call:
		return i.call(n)
	default:
		return heap.Object{}, fmt.Errorf("%w: %T", ErrUnexpectedStatement, expr)
	}
}

// pinned pins an existing object found by a lookup
func (i *Interpreter) pinned(obj heap.Object, err error) (heap.Object, error) {
	if err != nil {
		return heap.Object{}, err
	}
	i.scopes.Pin(obj)
	return obj, nil
}

// evalNew builds a model instance with every declared field set to nil
func (i *Interpreter) evalNew(n *ast.New) (heap.Object, error) {
	def, ok := i.models[n.Model]
	if !ok {
		return heap.Object{}, fmt.Errorf("%w: %s", ErrModelNotFound, n.Model)
	}

	fields := make(map[string]heap.Object, len(def.Fields))
	for _, f := range def.Fields {
		fields[f] = i.heap.Allocate(heap.Nil())
	}
	return i.alloc(heap.Model(def.Name, fields)), nil
}

// evalValue evaluates expr and returns its value, releasing the object
func (i *Interpreter) evalValue(expr ast.Expr) (heap.Value, error) {
	obj, err := i.eval(expr)
	if err != nil {
		return heap.Value{}, err
	}
	defer i.scopes.Unpin(obj)
	return i.heap.Read(obj), nil
}

// evalBool evaluates a condition that must be a bool
func (i *Interpreter) evalBool(expr ast.Expr) (bool, error) {
	v, err := i.evalValue(expr)
	if err != nil {
		return false, err
	}
	if v.Kind != heap.KindBool {
		return false, &UnexpectedTypeError{Expected: heap.KindBool.String(), Got: v.TypeName()}
	}
	return v.Bool, nil
}

// evalInt evaluates a loop count that must be an int
func (i *Interpreter) evalInt(expr ast.Expr) (int64, error) {
	v, err := i.evalValue(expr)
	if err != nil {
		return 0, err
	}
	if v.Kind != heap.KindInt {
		return 0, &UnexpectedTypeError{Expected: heap.KindInt.String(), Got: v.TypeName()}
	}
	return v.I64, nil
}
