package interpreter

import (
	"errors"
	"fmt"

	"sl/pkg/ast"
	"sl/pkg/lexer"
)

var (
	ErrMainNotFound            = errors.New("`main` function is not found")
	ErrInvalidGlobalDefinition = errors.New("invalid global definition")
	ErrModelNotFound           = errors.New("model not found")
	ErrCannotCall              = errors.New("value is not callable")
	ErrIncompatibleBinopType   = errors.New("incompatible binary operand types")
	ErrIncompatibleUnopType    = errors.New("incompatible unary operand type")
	ErrUnexpectedType          = errors.New("value of unexpected type")
	ErrArgNumMismatch          = errors.New("argument count mismatch")
	ErrDivisionByZero          = errors.New("division by zero")
	ErrUnexpectedStatement     = errors.New("unexpected statement")
	ErrMaxStepsExceeded        = errors.New("maximum steps exceeded")
	ErrCallDepthExceeded       = errors.New("maximum call depth exceeded")
	ErrNotLoaded               = errors.New("no program loaded")
)

// BinopTypeError reports operands a binary operator does not accept.
type BinopTypeError struct {
	Op    ast.BinaryOp
	Left  string
	Right string
}

func (e *BinopTypeError) Error() string {
	return fmt.Sprintf("%v: %s %s %s", ErrIncompatibleBinopType, e.Left, e.Op, e.Right)
}

func (e *BinopTypeError) Unwrap() error { return ErrIncompatibleBinopType }

// UnopTypeError reports an operand a unary operator does not accept.
type UnopTypeError struct {
	Op      ast.UnaryOp
	Operand string
}

func (e *UnopTypeError) Error() string {
	return fmt.Sprintf("%v: %s %s", ErrIncompatibleUnopType, e.Op, e.Operand)
}

func (e *UnopTypeError) Unwrap() error { return ErrIncompatibleUnopType }

// UnexpectedTypeError reports a value of the wrong type where a statement
// needs a specific one (loop counts, conditions).
type UnexpectedTypeError struct {
	Expected string
	Got      string
}

func (e *UnexpectedTypeError) Error() string {
	return fmt.Sprintf("%v: expected %s, got %s", ErrUnexpectedType, e.Expected, e.Got)
}

func (e *UnexpectedTypeError) Unwrap() error { return ErrUnexpectedType }

// ArgNumError reports a call with the wrong number of arguments.
type ArgNumError struct {
	Func     string
	Expected int
	Got      int
}

func (e *ArgNumError) Error() string {
	return fmt.Sprintf("%v: %s expects %d, got %d", ErrArgNumMismatch, e.Func, e.Expected, e.Got)
}

func (e *ArgNumError) Unwrap() error { return ErrArgNumMismatch }

// RuntimeError attaches the source position of the innermost failing
// statement to an evaluation error.
type RuntimeError struct {
	Pos lexer.Position
	Err error
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%v at Line: %d, Column %d", e.Err, e.Pos.Line, e.Pos.Column)
}

func (e *RuntimeError) Unwrap() error { return e.Err }

// atNode wraps err with the position of n unless it already carries one
func atNode(n ast.Node, err error) error {
	var re *RuntimeError
	if errors.As(err, &re) {
		return err
	}
	return &RuntimeError{Pos: n.Pos(), Err: err}
}
