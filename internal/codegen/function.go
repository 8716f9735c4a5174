package codegen

import (
	"fmt"
	"strings"

	"github.com/regionc/regionc/internal/ast"
)

// printFunction renders one function as a host entry point. Per the
// uniform DynValue representation decision: every parameter and local is
// typed dynvalue.DynValue throughout the generated body, and coercion to
// a native Go type happens only at the handful of use-sites that need one
// (binary operands, buffer method size/index arguments, method-call
// receivers) rather than at every variable reference.
func (p *Printer) printFunction(fn *ast.Function) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("func %s(h host.Host, args []dynvalue.DynValue) dynvalue.DynValue {\n", entryName(fn.Name)))
	for i, param := range fn.Params {
		sb.WriteString(fmt.Sprintf("\t%s := args[%d]\n", param.Name, i))
		// the source language permits an unused parameter; Go doesn't, so
		// every parameter gets a blank-identifier read regardless of use.
		sb.WriteString(fmt.Sprintf("\t_ = %s\n", param.Name))
	}
	sb.WriteString(p.printBlock(fn.Body, 1))
	sb.WriteString("\treturn h.Factory().Uninitialized()\n")
	sb.WriteString("}\n")
	return sb.String()
}

func indent(level int) string {
	return strings.Repeat("\t", level)
}

// printBlock renders a statement list at the given indent level. It does
// not append a trailing return: return-normalization already guarantees
// every function body ends in a ReturnStatement before codegen runs, so
// the fallback return in printFunction is unreachable for well-formed
// input and exists only to keep every generated function's control flow
// visibly total to the Go compiler.
func (p *Printer) printBlock(body []ast.Statement, level int) string {
	var sb strings.Builder
	for _, s := range body {
		sb.WriteString(p.printStatement(s, level))
	}
	return sb.String()
}
