package interpreter

import (
	"fmt"

	"sl/pkg/ast"
	"sl/pkg/heap"
	"sl/pkg/scope"
)

// call evaluates a function call. The arity is checked before any argument
// is evaluated and arguments are evaluated in the caller's frame.
func (i *Interpreter) call(n *ast.Call) (heap.Object, error) {
	callee, err := i.scopes.Lookup(n.Name)
	if err != nil {
		return heap.Object{}, err
	}

	fn := i.heap.Read(callee)
	if fn.Kind != heap.KindFunc {
		return heap.Object{}, fmt.Errorf("%w: %s is %s", ErrCannotCall, n.Name, fn.TypeName())
	}
	if len(n.Args) != len(fn.Params) {
		return heap.Object{}, &ArgNumError{Func: n.Name, Expected: len(fn.Params), Got: len(n.Args)}
	}
	if i.maxDepth > 0 && i.depth >= i.maxDepth {
		return heap.Object{}, fmt.Errorf("%w: %d", ErrCallDepthExceeded, i.maxDepth)
	}

	args := make([]heap.Object, 0, len(n.Args))
	defer func() {
		for _, arg := range args {
			i.scopes.Unpin(arg)
		}
	}()

	for _, expr := range n.Args {
		arg, err := i.eval(expr)
		if err != nil {
			return heap.Object{}, err
		}
		args = append(args, arg)
	}

	result, err := i.invoke(n.Name, fn, args)
	if err != nil {
		return heap.Object{}, err
	}

	i.scopes.Pin(result)
	return result, nil
}

// invoke runs fn's body in a new Call frame. The frame binds the parameters
// and a fresh copy of the function under the name it was called by, so the
// body can recurse without reaching outside its frame.
func (i *Interpreter) invoke(name string, fn heap.Value, args []heap.Object) (heap.Object, error) {
	self := i.heap.Allocate(heap.Func(fn.Name, fn.Params, fn.Body))

	frame := i.scopes.Push(scope.Call)
	defer i.scopes.Pop()

	i.depth++
	defer func() { i.depth-- }()
	i.logger.Debug("Call", "func", name, "depth", i.depth)

	for k, param := range fn.Params {
		if err := i.scopes.Bind(param, args[k]); err != nil {
			return heap.Object{}, err
		}
	}

	if frame.Has(name) {
		if err := i.scopes.Assign(name, self); err != nil {
			return heap.Object{}, err
		}
	} else if err := i.scopes.Bind(name, self); err != nil {
		return heap.Object{}, err
	}

	out, err := i.execBlock(fn.Body)
	if err != nil {
		return heap.Object{}, err
	}

	if out.flow == flowReturn {
		return out.value, nil
	}
	return i.heap.Allocate(heap.Nil()), nil
}
