package codegen

import (
	"fmt"
	"strings"

	"github.com/regionc/regionc/internal/ast"
)

// printStatement renders one statement, indented at level, with a
// trailing newline. Unreachable-code elimination and return normalization
// have already run by the time codegen sees the tree, so every shape
// here is one the optimizer guarantees is still reachable and well-formed.
func (p *Printer) printStatement(s ast.Statement, level int) string {
	ind := indent(level)
	switch v := s.(type) {
	case *ast.Noop:
		return ""
	case *ast.LetStatement:
		return fmt.Sprintf("%s%s\n", ind, p.printSimpleStmt(v))
	case *ast.Assignment:
		return fmt.Sprintf("%s%s\n", ind, p.printSimpleStmt(v))
	case *ast.ReturnStatement:
		return fmt.Sprintf("%sreturn %s\n", ind, p.exprValue(v.Value))
	case *ast.ExpressionStatement:
		if v.Value == nil {
			return ""
		}
		return fmt.Sprintf("%s%s\n", ind, p.exprValue(v.Value))
	case *ast.CallStatement:
		return fmt.Sprintf("%s%s\n", ind, p.printCall(v.Name, v.Args))
	case *ast.IfStatement:
		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("%sif %s.Truthy() {\n", ind, p.exprValue(v.Cond)))
		sb.WriteString(p.printBlock(v.Body, level+1))
		sb.WriteString(fmt.Sprintf("%s}\n", ind))
		return sb.String()
	case *ast.IfElseStatement:
		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("%sif %s.Truthy() {\n", ind, p.exprValue(v.Cond)))
		sb.WriteString(p.printBlock(v.Then, level+1))
		sb.WriteString(fmt.Sprintf("%s} else {\n", ind))
		sb.WriteString(p.printBlock(v.Else, level+1))
		sb.WriteString(fmt.Sprintf("%s}\n", ind))
		return sb.String()
	case *ast.ForStatement:
		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("%sfor %s; %s.Truthy(); %s {\n",
			ind, p.printSimpleStmt(v.Init), p.exprValue(v.Cond), p.printSimpleStmt(v.Update)))
		sb.WriteString(p.printBlock(v.Body, level+1))
		sb.WriteString(fmt.Sprintf("%s}\n", ind))
		return sb.String()
	default:
		refuse(s, fmt.Sprintf("no emission rule for statement %T", s))
		return ""
	}
}

// printSimpleStmt renders a LetStatement or Assignment without a trailing
// newline, for use both as an ordinary statement and inline in a
// ForStatement's init/update clauses.
func (p *Printer) printSimpleStmt(s ast.Statement) string {
	switch v := s.(type) {
	case *ast.LetStatement:
		return fmt.Sprintf("%s := %s", v.Name, p.exprValue(v.Value))
	case *ast.Assignment:
		return fmt.Sprintf("%s = %s", v.Name, p.exprValue(v.Value))
	case *ast.ExpressionStatement:
		// unused-variable rewriting can turn a for-loop's init/update into a
		// bare expression (its target was never read); discard with '_' so
		// it still satisfies Go's simple-statement grammar.
		if v.Value == nil {
			return "_ = 0"
		}
		return fmt.Sprintf("_ = %s", p.exprValue(v.Value))
	case *ast.Noop:
		return "_ = 0"
	default:
		refuse(s, fmt.Sprintf("no inline emission rule for statement %T", s))
		return ""
	}
}

// printCall renders a bare function call: the host-handle-prepended form
// for allocate/free/blackbox, the plain form for append, and an
// intra-module call to another function in this region otherwise.
func (p *Printer) printCall(name string, args []ast.Expr) string {
	vals := make([]string, len(args))
	for i, a := range args {
		vals[i] = p.exprValue(a)
	}
	switch {
	case builtinHost(name):
		return fmt.Sprintf("builtins.%s(h, %s)", exportedBuiltin(name), strings.Join(vals, ", "))
	case builtinPlain(name):
		return fmt.Sprintf("builtins.%s(%s)", exportedBuiltin(name), strings.Join(vals, ", "))
	default:
		return fmt.Sprintf("%s(h, []dynvalue.DynValue{%s})", entryName(name), strings.Join(vals, ", "))
	}
}
