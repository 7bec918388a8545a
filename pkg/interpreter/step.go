package interpreter

import (
	"fmt"

	"sl/pkg/ast"
	"sl/pkg/heap"
	"sl/pkg/scope"
)

type flow int

const (
	flowNormal flow = iota
	flowReturn
)

// outcome is how a statement completed. A return carries its value up to the
// nearest call boundary without going through the error path.
type outcome struct {
	flow  flow
	value heap.Object
}

var normal = outcome{flow: flowNormal}

// execBlock runs stmts in the current frame, stopping at the first return
func (i *Interpreter) execBlock(stmts []ast.Stmt) (outcome, error) {
	for _, stmt := range stmts {
		if err := i.step(); err != nil {
			return normal, atNode(stmt, err)
		}

		out, err := i.exec(stmt)
		if err != nil {
			return normal, atNode(stmt, err)
		}
		if out.flow == flowReturn {
			return out, nil
		}
	}
	return normal, nil
}

// step accounts for one statement boundary: the step budget and, when the
// timer is due, a collection
func (i *Interpreter) step() error {
	if err := i.spend(); err != nil {
		return err
	}
	if i.gc.Due() {
		i.Collect()
	}
	return nil
}

// spend charges one step against the budget. Loop iterations are charged
// too so that loops with empty bodies stay bounded.
func (i *Interpreter) spend() error {
	if i.maxSteps > 0 && i.steps >= i.maxSteps {
		return ErrMaxStepsExceeded
	}
	i.steps++
	return nil
}

// scoped runs body in a new frame that is popped on every path
func (i *Interpreter) scoped(kind scope.Kind, body []ast.Stmt) (outcome, error) {
	i.scopes.Push(kind)
	defer i.scopes.Pop()
	return i.execBlock(body)
}

func (i *Interpreter) exec(stmt ast.Stmt) (outcome, error) {
	switch n := stmt.(type) {
	case *ast.Let:
		return normal, i.execLet(n)
	case *ast.Assign:
		return normal, i.execAssign(n)
	case *ast.Print:
		return normal, i.execPrint(n)
	case *ast.For:
		return i.execFor(n)
	case *ast.While:
		return i.execWhile(n)
	case *ast.If:
		return i.execIf(n)
	case *ast.Scope:
		return i.scoped(scope.Block, n.Body)
	case *ast.FuncDef:
		return normal, i.defineFunc(n)
	case *ast.Return:
		return i.execReturn(n)
	case *ast.ExprStmt:
		_, err := i.eval(n.X)
		return normal, err
	case *ast.ModelDef:
		return normal, fmt.Errorf("%w: model %s must be declared at top level", ErrUnexpectedStatement, n.Name)
	default:
		return normal, fmt.Errorf("%w: %T", ErrUnexpectedStatement, stmt)
	}
}

func (i *Interpreter) execLet(n *ast.Let) error {
	obj, err := i.eval(n.Value)
	if err != nil {
		return err
	}
	defer i.scopes.Unpin(obj)
	return i.scopes.Bind(n.Name, obj)
}

func (i *Interpreter) execAssign(n *ast.Assign) error {
	obj, err := i.eval(n.Value)
	if err != nil {
		return err
	}
	defer i.scopes.Unpin(obj)

	if len(n.Path) == 0 {
		return i.scopes.Assign(n.Target, obj)
	}

	base, err := i.scopes.Lookup(n.Target)
	if err != nil {
		return err
	}
	return i.heap.Rebind(base, n.Path, obj)
}

// execPrint writes the value and leaves it pinned until the next collection
func (i *Interpreter) execPrint(n *ast.Print) error {
	obj, err := i.eval(n.Value)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(i.out, i.heap.Read(obj))
	return err
}

func (i *Interpreter) execFor(n *ast.For) (outcome, error) {
	count, err := i.evalInt(n.Count)
	if err != nil {
		return normal, err
	}

	for k := int64(0); k < count; k++ {
		if err := i.spend(); err != nil {
			return normal, err
		}
		out, err := i.iterate(n.Iter, k, n.Body)
		if err != nil || out.flow == flowReturn {
			return out, err
		}
	}
	return normal, nil
}

// iterate runs one loop pass in its own frame with the counter bound to iter
func (i *Interpreter) iterate(iter string, k int64, body []ast.Stmt) (outcome, error) {
	i.scopes.Push(scope.Block)
	defer i.scopes.Pop()

	obj := i.alloc(heap.Int(k))
	if err := i.scopes.Bind(iter, obj); err != nil {
		return normal, err
	}
	i.scopes.Unpin(obj)

	return i.execBlock(body)
}

func (i *Interpreter) execWhile(n *ast.While) (outcome, error) {
	for {
		if err := i.spend(); err != nil {
			return normal, err
		}
		cond, err := i.evalBool(n.Cond)
		if err != nil {
			return normal, err
		}
		if !cond {
			return normal, nil
		}

		out, err := i.scoped(scope.Block, n.Body)
		if err != nil || out.flow == flowReturn {
			return out, err
		}
	}
}

func (i *Interpreter) execIf(n *ast.If) (outcome, error) {
	cond, err := i.evalBool(n.Cond)
	if err != nil {
		return normal, err
	}

	if cond {
		return i.scoped(scope.Block, n.Then)
	}
	if n.Else != nil {
		return i.scoped(scope.Block, n.Else)
	}
	return normal, nil
}

func (i *Interpreter) execReturn(n *ast.Return) (outcome, error) {
	if n.Value == nil {
		return outcome{flow: flowReturn, value: i.alloc(heap.Nil())}, nil
	}

	obj, err := i.eval(n.Value)
	if err != nil {
		return normal, err
	}
	return outcome{flow: flowReturn, value: obj}, nil
}
