package heap

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"sl/pkg/ast"
)

type ValueKind int

const (
	KindNil ValueKind = iota
	KindInt
	KindFloat
	KindBool
	KindString
	KindTeer
	KindFunc
	KindModel
	KindRef // read-only view of a nested model field
)

func (k ValueKind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindTeer:
		return "teer"
	case KindFunc:
		return "func"
	case KindModel:
		return "model"
	case KindRef:
		return "ref"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Value is the payload of a heap entry.
//
// Stored models keep their fields in Fields. Values returned by Heap.Read
// additionally carry Index (for funcs and models) and, for models, Members:
// primitive fields copied by value and model fields as KindRef views.
type Value struct {
	Kind ValueKind
	I64  int64
	F64  float64
	Bool bool
	Str  string
	Teer ast.Teer

	Name   string     // function name or model type name
	Params []string   // function parameters
	Body   []ast.Stmt // function body

	Fields  map[string]Object
	Members map[string]Value

	Index int // heap index, set by Read
}

// String renders the value the way print shows it.
func (v Value) String() string {
	switch v.Kind {
	case KindInt:
		return strconv.FormatInt(v.I64, 10)
	case KindFloat:
		return formatFloat(v.F64)
	case KindBool:
		return strconv.FormatBool(v.Bool)
	case KindString:
		return v.Str
	case KindTeer:
		return v.Teer.String()
	case KindFunc:
		return fmt.Sprintf("<func %s(%s)>", v.Name, strings.Join(v.Params, ", "))
	case KindRef:
		return fmt.Sprintf("<%s@%d>", v.Name, v.Index)
	case KindModel:
		names := make([]string, 0, len(v.Members))
		for name := range v.Members {
			names = append(names, name)
		}
		sort.Strings(names)

		var b strings.Builder
		b.WriteString(v.Name)
		b.WriteString(" {")
		for i, name := range names {
			if i > 0 {
				b.WriteString(",")
			}
			member := v.Members[name]
			if member.Kind == KindString {
				fmt.Fprintf(&b, " %s: %q", name, member.Str)
			} else {
				fmt.Fprintf(&b, " %s: %s", name, member)
			}
		}
		b.WriteString(" }")
		return b.String()
	default:
		return "nil"
	}
}

// TypeName is the name typeof reports for the value.
func (v Value) TypeName() string {
	if v.Kind == KindModel || v.Kind == KindRef {
		return v.Name
	}
	return v.Kind.String()
}

// formatFloat keeps a decimal point on integral floats so they read apart from ints
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if strings.ContainsAny(s, ".eEIN") {
		return s
	}
	return s + ".0"
}

// Nil creates a nil Value.
func Nil() Value {
	return Value{Kind: KindNil}
}

// Int creates a new integer Value.
func Int(i int64) Value {
	return Value{Kind: KindInt, I64: i}
}

// Float creates a new float Value.
func Float(f float64) Value {
	return Value{Kind: KindFloat, F64: f}
}

// Bool creates a new boolean Value.
func Bool(b bool) Value {
	return Value{Kind: KindBool, Bool: b}
}

// String creates a new string Value.
func String(s string) Value {
	return Value{Kind: KindString, Str: s}
}

// Teer creates a new teer Value.
func Teer(t ast.Teer) Value {
	return Value{Kind: KindTeer, Teer: t}
}

// Func creates a new function Value.
func Func(name string, params []string, body []ast.Stmt) Value {
	return Value{Kind: KindFunc, Name: name, Params: params, Body: body}
}

// Model creates a new model instance Value over already allocated fields.
func Model(name string, fields map[string]Object) Value {
	return Value{Kind: KindModel, Name: name, Fields: fields}
}

// FromLiteral converts a literal node into the Value it denotes.
func FromLiteral(lit *ast.Literal) Value {
	switch lit.Kind {
	case ast.LitInt:
		return Int(lit.Int)
	case ast.LitFloat:
		return Float(lit.Float)
	case ast.LitBool:
		return Bool(lit.Bool)
	case ast.LitString:
		return String(lit.Str)
	case ast.LitTeer:
		return Teer(lit.Teer)
	default:
		return Nil()
	}
}
