package ast

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Fprint writes a source-like rendering of the program, two spaces per level.
func Fprint(w io.Writer, p *Program) error {
	pr := &printer{w: w}
	for _, s := range p.Stmts {
		pr.stmt(s, 0)
	}
	return pr.err
}

type printer struct {
	w   io.Writer
	err error
}

func (p *printer) line(lvl int, format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, "%s%s\n", strings.Repeat("  ", lvl), fmt.Sprintf(format, args...))
}

func (p *printer) block(body []Stmt, lvl int) {
	for _, s := range body {
		p.stmt(s, lvl+1)
	}
}

func (p *printer) stmt(s Stmt, lvl int) {
	switch n := s.(type) {
	case *Let:
		p.line(lvl, "let %s = %s;", n.Name, ExprString(n.Value))
	case *Assign:
		target := strings.Join(append([]string{n.Target}, n.Path...), ".")
		p.line(lvl, "%s = %s;", target, ExprString(n.Value))
	case *Print:
		p.line(lvl, "print %s;", ExprString(n.Value))
	case *Return:
		if n.Value == nil {
			p.line(lvl, "return;")
		} else {
			p.line(lvl, "return %s;", ExprString(n.Value))
		}
	case *ExprStmt:
		p.line(lvl, "%s;", ExprString(n.X))
	case *For:
		p.line(lvl, "for %s : %s {", n.Iter, ExprString(n.Count))
		p.block(n.Body, lvl)
		p.line(lvl, "}")
	case *While:
		p.line(lvl, "while %s {", ExprString(n.Cond))
		p.block(n.Body, lvl)
		p.line(lvl, "}")
	case *If:
		p.line(lvl, "if %s {", ExprString(n.Cond))
		p.block(n.Then, lvl)
		if n.Else != nil {
			p.line(lvl, "} else {")
			p.block(n.Else, lvl)
		}
		p.line(lvl, "}")
	case *Scope:
		p.line(lvl, "{")
		p.block(n.Body, lvl)
		p.line(lvl, "}")
	case *FuncDef:
		p.line(lvl, "func %s(%s) {", n.Name, strings.Join(n.Params, ", "))
		p.block(n.Body, lvl)
		p.line(lvl, "}")
	case *ModelDef:
		p.line(lvl, "model %s { %s }", n.Name, strings.Join(n.Fields, ", "))
	default:
		p.line(lvl, "<%T>", s)
	}
}

// ExprString renders an expression back to source form.
func ExprString(e Expr) string {
	switch n := e.(type) {
	case nil:
		return "nil"
	case *Literal:
		switch n.Kind {
		case LitInt:
			return strconv.FormatInt(n.Int, 10)
		case LitFloat:
			return strconv.FormatFloat(n.Float, 'g', -1, 64)
		case LitBool:
			return strconv.FormatBool(n.Bool)
		case LitString:
			return strconv.Quote(n.Str)
		case LitTeer:
			return n.Teer.String()
		default:
			return "nil"
		}
	case *Identifier:
		return n.Name
	case *New:
		return "new " + n.Model
	case *Member:
		return strings.Join(append([]string{n.Base}, n.Path...), ".")
	case *Binary:
		return fmt.Sprintf("%s %s %s", ExprString(n.Left), n.Op, ExprString(n.Right))
	case *Unary:
		if n.Op == OpNeg {
			return "-" + ExprString(n.Operand)
		}
		return n.Op.String() + " " + ExprString(n.Operand)
	case *Paren:
		return "(" + ExprString(n.Inner) + ")"
	case *Call:
		args := make([]string, len(n.Args))
		for i, a := range n.Args {
			args[i] = ExprString(a)
		}
		return fmt.Sprintf("%s(%s)", n.Name, strings.Join(args, ", "))
	default:
		return fmt.Sprintf("<%T>", e)
	}
}
