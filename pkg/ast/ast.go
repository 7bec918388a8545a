// Package ast defines the syntax tree produced by the parser and walked by
// the interpreter.
package ast

import (
	"sl/pkg/lexer"
)

// Program is the ordered sequence of top-level statements of a source file.
type Program struct {
	Stmts []Stmt
}

type Node interface {
	Pos() lexer.Position
}

type Stmt interface {
	Node
	stmtNode()
}

type Expr interface {
	Node
	exprNode()
}

// Teer is the three-valued symbolic literal type.
type Teer int

const (
	Excel Teer = iota
	Empty
	Exile
)

func (t Teer) String() string {
	switch t {
	case Excel:
		return "excel"
	case Empty:
		return "empty"
	case Exile:
		return "exile"
	default:
		return "teer?"
	}
}

// LiteralKind tags the payload of a Literal.
type LiteralKind int

const (
	LitNil LiteralKind = iota
	LitInt
	LitFloat
	LitBool
	LitString
	LitTeer
)

// Expressions

type Literal struct {
	Kind  LiteralKind
	Int   int64
	Float float64
	Bool  bool
	Str   string
	Teer  Teer
	At    lexer.Position
}

type Identifier struct {
	Name string
	At   lexer.Position
}

// New instantiates a declared model: `new Name`.
type New struct {
	Model string
	At    lexer.Position
}

// Member is a field path rooted at an identifier: `base.a.b`.
type Member struct {
	Base string
	Path []string
	At   lexer.Position
}

type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpEq
	OpNe
	OpLt
	OpGt
	OpLe
	OpGe
	OpAnd
	OpOr
)

var binaryOpNames = [...]string{
	OpAdd: "+", OpSub: "-", OpMul: "*", OpDiv: "/", OpMod: "%",
	OpEq: "==", OpNe: "!=", OpLt: "<", OpGt: ">", OpLe: "<=", OpGe: ">=",
	OpAnd: "and", OpOr: "or",
}

func (o BinaryOp) String() string {
	if int(o) < len(binaryOpNames) {
		return binaryOpNames[o]
	}
	return "?"
}

type Binary struct {
	Op    BinaryOp
	Left  Expr
	Right Expr
	At    lexer.Position
}

type UnaryOp int

const (
	OpNot UnaryOp = iota
	OpNeg
	OpTypeof
)

func (o UnaryOp) String() string {
	switch o {
	case OpNot:
		return "not"
	case OpNeg:
		return "-"
	case OpTypeof:
		return "typeof"
	default:
		return "?"
	}
}

type Unary struct {
	Op      UnaryOp
	Operand Expr
	At      lexer.Position
}

// Paren is a parenthesized expression.
type Paren struct {
	Inner Expr
	At    lexer.Position
}

type Call struct {
	Name string
	Args []Expr
	At   lexer.Position
}

// Statements

type Let struct {
	Name  string
	Value Expr
	At    lexer.Position
}

// Assign overwrites an existing binding (empty Path) or a field reached
// through Path from the binding named Target.
type Assign struct {
	Target string
	Path   []string
	Value  Expr
	At     lexer.Position
}

type Print struct {
	Value Expr
	At    lexer.Position
}

type For struct {
	Iter  string
	Count Expr
	Body  []Stmt
	At    lexer.Position
}

type While struct {
	Cond Expr
	Body []Stmt
	At   lexer.Position
}

// If has a nil Else when there is no else branch.
type If struct {
	Cond Expr
	Then []Stmt
	Else []Stmt
	At   lexer.Position
}

// Scope is a bare block `{ ... }`.
type Scope struct {
	Body []Stmt
	At   lexer.Position
}

type FuncDef struct {
	Name   string
	Params []string
	Body   []Stmt
	At     lexer.Position
}

type ModelDef struct {
	Name   string
	Fields []string
	At     lexer.Position
}

// Return carries a nil Value for a bare `return;`.
type Return struct {
	Value Expr
	At    lexer.Position
}

type ExprStmt struct {
	X  Expr
	At lexer.Position
}

func (n *Literal) Pos() lexer.Position    { return n.At }
func (n *Identifier) Pos() lexer.Position { return n.At }
func (n *New) Pos() lexer.Position        { return n.At }
func (n *Member) Pos() lexer.Position     { return n.At }
func (n *Binary) Pos() lexer.Position     { return n.At }
func (n *Unary) Pos() lexer.Position      { return n.At }
func (n *Paren) Pos() lexer.Position      { return n.At }
func (n *Call) Pos() lexer.Position       { return n.At }

func (n *Let) Pos() lexer.Position      { return n.At }
func (n *Assign) Pos() lexer.Position   { return n.At }
func (n *Print) Pos() lexer.Position    { return n.At }
func (n *For) Pos() lexer.Position      { return n.At }
func (n *While) Pos() lexer.Position    { return n.At }
func (n *If) Pos() lexer.Position       { return n.At }
func (n *Scope) Pos() lexer.Position    { return n.At }
func (n *FuncDef) Pos() lexer.Position  { return n.At }
func (n *ModelDef) Pos() lexer.Position { return n.At }
func (n *Return) Pos() lexer.Position   { return n.At }
func (n *ExprStmt) Pos() lexer.Position { return n.At }

func (*Literal) exprNode()    {}
func (*Identifier) exprNode() {}
func (*New) exprNode()        {}
func (*Member) exprNode()     {}
func (*Binary) exprNode()     {}
func (*Unary) exprNode()      {}
func (*Paren) exprNode()      {}
func (*Call) exprNode()       {}

func (*Let) stmtNode()      {}
func (*Assign) stmtNode()   {}
func (*Print) stmtNode()    {}
func (*For) stmtNode()      {}
func (*While) stmtNode()    {}
func (*If) stmtNode()       {}
func (*Scope) stmtNode()    {}
func (*FuncDef) stmtNode()  {}
func (*ModelDef) stmtNode() {}
func (*Return) stmtNode()   {}
func (*ExprStmt) stmtNode() {}
