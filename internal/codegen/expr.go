package codegen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/regionc/regionc/internal/ast"
	"github.com/regionc/regionc/runtime/builtins"
)

// exprValue renders e as a Go expression producing a dynvalue.DynValue —
// the uniform representation every local, parameter, and call argument is
// kept in. Coercion to a native Go type happens only where exprNative is
// called explicitly below, not here.
func (p *Printer) exprValue(e ast.Expr) string {
	switch v := e.(type) {
	case *ast.NumberExpr:
		return fmt.Sprintf("h.Factory().FromInt(%d)", v.Value)
	case *ast.StringLiteralExpr:
		return fmt.Sprintf("h.Factory().FromString(%s)", strconv.Quote(v.Value))
	case *ast.VariableExpr:
		return v.Name
	case *ast.UninitializedExpr:
		return "h.Factory().Uninitialized()"
	case *ast.BinaryExpr:
		return p.exprBinary(v)
	case *ast.CallExpr:
		return p.printCall(v.Name, v.Args)
	case *ast.ArrayExpr:
		if len(v.Elems) != 0 {
			refuse(e, "non-empty array literal has no runtime representation")
		}
		return "h.Factory().FromList(nil)"
	case *ast.MethodCallExpr:
		return p.exprMethodCall(v)
	default:
		refuse(e, fmt.Sprintf("no emission rule for expression %T", e))
		return ""
	}
}

// exprNative renders e coerced to the native int32 a Binary operand or a
// Buffer method's size/index argument requires.
func (p *Printer) exprNative(e ast.Expr) string {
	return fmt.Sprintf("dynvalue.MustInt(%s)", p.exprValue(e))
}

func (p *Printer) exprBinary(v *ast.BinaryExpr) string {
	l := p.exprNative(v.Left)
	r := p.exprNative(v.Right)
	switch v.Op {
	case ast.Add:
		return fmt.Sprintf("h.Factory().FromInt(%s + %s)", l, r)
	case ast.Sub:
		return fmt.Sprintf("h.Factory().FromInt(%s - %s)", l, r)
	case ast.Mult:
		return fmt.Sprintf("h.Factory().FromInt(%s * %s)", l, r)
	case ast.Div:
		return fmt.Sprintf("h.Factory().FromInt(%s / %s)", l, r)
	case ast.LessThan:
		return fmt.Sprintf("h.Factory().FromInt(dynvalue.BoolToInt(%s < %s))", l, r)
	case ast.GreaterThan:
		return fmt.Sprintf("h.Factory().FromInt(dynvalue.BoolToInt(%s > %s))", l, r)
	case ast.LessEq:
		return fmt.Sprintf("h.Factory().FromInt(dynvalue.BoolToInt(%s <= %s))", l, r)
	case ast.GreaterEq:
		return fmt.Sprintf("h.Factory().FromInt(dynvalue.BoolToInt(%s >= %s))", l, r)
	default:
		refuse(v, fmt.Sprintf("no emission rule for binary operator %s", v.Op))
		return ""
	}
}

// exprMethodCall renders a MethodCall. Buffer's three built-in methods
// dispatch directly to their dedicated builtins helper; any other method
// name goes through the generic dynamic dispatch path.
func (p *Printer) exprMethodCall(v *ast.MethodCallExpr) string {
	obj := p.exprValue(v.Object)
	switch v.Method {
	case "free":
		return fmt.Sprintf("builtins.BufferFree(%s)", obj)
	case "borrow":
		size, index := p.bufferArgs(v)
		return fmt.Sprintf("builtins.BufferBorrow(%s, %s, %s)", obj, size, index)
	case "borrow_mut":
		size, index := p.bufferArgs(v)
		return fmt.Sprintf("builtins.BufferBorrowMut(%s, %s, %s)", obj, size, index)
	default:
		args := make([]string, len(v.Args))
		for i, a := range v.Args {
			args[i] = p.exprValue(a)
		}
		return fmt.Sprintf("builtins.DynamicMethodCall(%s, %q, []dynvalue.DynValue{%s})",
			obj, v.Method, strings.Join(args, ", "))
	}
}

func (p *Printer) bufferArgs(v *ast.MethodCallExpr) (size, index string) {
	if len(v.Args) != 2 {
		refuse(v, fmt.Sprintf("%s expects exactly two arguments (size, index), got %d", v.Method, len(v.Args)))
	}
	return p.exprNative(v.Args[0]), p.exprNative(v.Args[1])
}

func builtinHost(name string) bool  { return builtins.HostFunctions[name] }
func builtinPlain(name string) bool { return builtins.NoHostFunctions[name] }

// exportedBuiltin maps a builtin's lowercase source name to its exported
// Go implementation in the builtins package.
func exportedBuiltin(name string) string {
	switch name {
	case "allocate":
		return "Allocate"
	case "free":
		return "Free"
	case "blackbox":
		return "Blackbox"
	case "append":
		return "Append"
	default:
		panic("regionc: unrecognized builtin " + name)
	}
}
