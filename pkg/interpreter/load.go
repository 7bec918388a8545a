package interpreter

import (
	"fmt"

	"sl/pkg/ast"
	"sl/pkg/heap"
)

// Load registers the program's models and functions, evaluates its global
// lets in source order and records the body of main
func (i *Interpreter) Load(prog *ast.Program) error {
	hasMain := false

	for _, stmt := range prog.Stmts {
		switch n := stmt.(type) {
		case *ast.ModelDef:
			if _, ok := i.models[n.Name]; ok {
				return atNode(n, fmt.Errorf("%w: model %s redeclared", ErrInvalidGlobalDefinition, n.Name))
			}
			i.models[n.Name] = n
			i.logger.Debug("Model registered", "model", n.Name, "fields", len(n.Fields))

		case *ast.FuncDef:
			if n.Name == "main" {
				if hasMain {
					return atNode(n, fmt.Errorf("%w: main redeclared", ErrInvalidGlobalDefinition))
				}
				if len(n.Params) > 0 {
					i.logger.Warn("Parameters of main are ignored", "params", n.Params)
				}
				hasMain = true
				i.entry = n.Body
				continue
			}
			if err := i.defineFunc(n); err != nil {
				return atNode(n, err)
			}
			i.logger.Debug("Function registered", "func", n.Name, "params", len(n.Params))

		case *ast.Let:
			if err := i.execLet(n); err != nil {
				return atNode(n, err)
			}
			i.logger.Debug("Global bound", "name", n.Name)

		default:
			return atNode(n, fmt.Errorf("%w: %s is not allowed at top level", ErrInvalidGlobalDefinition, describe(n)))
		}
	}

	if !hasMain {
		return ErrMainNotFound
	}

	i.loaded = true
	i.logger.Debug("Program loaded", "globals", i.scopes.Global().Names(), "heap", i.heap.Live())
	return nil
}

// defineFunc binds a new function value in the innermost frame
func (i *Interpreter) defineFunc(n *ast.FuncDef) error {
	obj := i.alloc(heap.Func(n.Name, n.Params, n.Body))
	defer i.scopes.Unpin(obj)
	return i.scopes.Bind(n.Name, obj)
}

// describe names a statement kind for load errors
func describe(stmt ast.Stmt) string {
	switch stmt.(type) {
	case *ast.Assign:
		return "assignment"
	case *ast.Print:
		return "print"
	case *ast.For:
		return "for loop"
	case *ast.While:
		return "while loop"
	case *ast.If:
		return "if statement"
	case *ast.Scope:
		return "block"
	case *ast.Return:
		return "return"
	case *ast.ExprStmt:
		return "expression"
	default:
		return fmt.Sprintf("%T", stmt)
	}
}
