package interpreter

import (
	"math"

	"sl/pkg/ast"
	"sl/pkg/heap"
)

func (i *Interpreter) evalBinary(n *ast.Binary) (heap.Object, error) {
	if n.Op == ast.OpAnd || n.Op == ast.OpOr {
		return i.evalLogical(n)
	}

	left, err := i.eval(n.Left)
	if err != nil {
		return heap.Object{}, err
	}
	defer i.scopes.Unpin(left)

	right, err := i.eval(n.Right)
	if err != nil {
		return heap.Object{}, err
	}
	defer i.scopes.Unpin(right)

	v, err := binaryValue(n.Op, i.heap.Read(left), i.heap.Read(right))
	if err != nil {
		return heap.Object{}, err
	}
	return i.alloc(v), nil
}

// evalLogical short-circuits `and` and `or`; the right operand is only
// evaluated when it decides the result
func (i *Interpreter) evalLogical(n *ast.Binary) (heap.Object, error) {
	l, err := i.evalValue(n.Left)
	if err != nil {
		return heap.Object{}, err
	}
	if l.Kind != heap.KindBool {
		return heap.Object{}, &BinopTypeError{Op: n.Op, Left: l.TypeName(), Right: "?"}
	}

	if (n.Op == ast.OpAnd && !l.Bool) || (n.Op == ast.OpOr && l.Bool) {
		return i.alloc(heap.Bool(l.Bool)), nil
	}

	r, err := i.evalValue(n.Right)
	if err != nil {
		return heap.Object{}, err
	}
	if r.Kind != heap.KindBool {
		return heap.Object{}, &BinopTypeError{Op: n.Op, Left: l.TypeName(), Right: r.TypeName()}
	}
	return i.alloc(heap.Bool(r.Bool)), nil
}

func (i *Interpreter) evalUnary(n *ast.Unary) (heap.Object, error) {
	v, err := i.evalValue(n.Operand)
	if err != nil {
		return heap.Object{}, err
	}

	res, err := unaryValue(n.Op, v)
	if err != nil {
		return heap.Object{}, err
	}
	return i.alloc(res), nil
}

// binaryValue applies a non-logical binary operator to two values
func binaryValue(op ast.BinaryOp, l, r heap.Value) (heap.Value, error) {
	mismatch := &BinopTypeError{Op: op, Left: l.TypeName(), Right: r.TypeName()}

	switch op {
	case ast.OpEq, ast.OpNe:
		eq, ok := equal(l, r)
		if !ok {
			return heap.Value{}, mismatch
		}
		return heap.Bool(eq == (op == ast.OpEq)), nil

	case ast.OpLt, ast.OpGt, ast.OpLe, ast.OpGe:
		switch {
		case l.Kind == heap.KindInt && r.Kind == heap.KindInt:
			return heap.Bool(compare(op, l.I64, r.I64)), nil
		case l.Kind == heap.KindFloat && r.Kind == heap.KindFloat:
			return heap.Bool(compare(op, l.F64, r.F64)), nil
		}
		return heap.Value{}, mismatch

	case ast.OpAdd, ast.OpSub, ast.OpMul, ast.OpDiv, ast.OpMod:
		switch {
		case l.Kind == heap.KindInt && r.Kind == heap.KindInt:
			return intArith(op, l.I64, r.I64)
		case l.Kind == heap.KindFloat && r.Kind == heap.KindFloat:
			return floatArith(op, l.F64, r.F64)
		case op == ast.OpAdd && l.Kind == heap.KindString && r.Kind == heap.KindString:
			return heap.String(l.Str + r.Str), nil
		}
		return heap.Value{}, mismatch
	}

	return heap.Value{}, mismatch
}

// equal compares two values of the same kind. Functions and models compare
// by identity, everything else by value.
func equal(l, r heap.Value) (eq, ok bool) {
	if l.Kind != r.Kind {
		return false, false
	}

	switch l.Kind {
	case heap.KindNil:
		return true, true
	case heap.KindInt:
		return l.I64 == r.I64, true
	case heap.KindFloat:
		return l.F64 == r.F64, true
	case heap.KindBool:
		return l.Bool == r.Bool, true
	case heap.KindString:
		return l.Str == r.Str, true
	case heap.KindTeer:
		return l.Teer == r.Teer, true
	case heap.KindFunc, heap.KindModel:
		return l.Index == r.Index, true
	}
	return false, false
}

func compare[T int64 | float64](op ast.BinaryOp, l, r T) bool {
	switch op {
	case ast.OpLt:
		return l < r
	case ast.OpGt:
		return l > r
	case ast.OpLe:
		return l <= r
	default:
		return l >= r
	}
}

func intArith(op ast.BinaryOp, l, r int64) (heap.Value, error) {
	switch op {
	case ast.OpAdd:
		return heap.Int(l + r), nil
	case ast.OpSub:
		return heap.Int(l - r), nil
	case ast.OpMul:
		return heap.Int(l * r), nil
	}

	if r == 0 {
		return heap.Value{}, ErrDivisionByZero
	}
	if op == ast.OpDiv {
		return heap.Int(l / r), nil
	}
	return heap.Int(l % r), nil
}

func floatArith(op ast.BinaryOp, l, r float64) (heap.Value, error) {
	switch op {
	case ast.OpAdd:
		return heap.Float(l + r), nil
	case ast.OpSub:
		return heap.Float(l - r), nil
	case ast.OpMul:
		return heap.Float(l * r), nil
	}

	if r == 0 {
		return heap.Value{}, ErrDivisionByZero
	}
	if op == ast.OpDiv {
		return heap.Float(l / r), nil
	}
	return heap.Float(math.Mod(l, r)), nil
}

// unaryValue applies a unary operator to a value
func unaryValue(op ast.UnaryOp, v heap.Value) (heap.Value, error) {
	switch op {
	case ast.OpNot:
		if v.Kind == heap.KindBool {
			return heap.Bool(!v.Bool), nil
		}
	case ast.OpNeg:
		switch v.Kind {
		case heap.KindInt:
			return heap.Int(-v.I64), nil
		case heap.KindFloat:
			return heap.Float(-v.F64), nil
		}
	case ast.OpTypeof:
		return heap.String(v.TypeName()), nil
	}
	return heap.Value{}, &UnopTypeError{Op: op, Operand: v.TypeName()}
}
