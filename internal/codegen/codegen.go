// Package codegen turns a cleaned AST into the text of a host-extension
// source file: a header importing the runtime support library, a module
// registration stub that registers the Buffer type and one entry point
// per function, and the generated text of each function.
//
// Modeled on the teacher's pkg/printer AST-to-source idiom: a Printer
// walks typed AST nodes, buffering into a strings.Builder, one
// print<NodeKind> method per node kind. The teacher's own printer
// implementation file wasn't present in the retrieval pack (only its
// tests were), so this generator is built directly from spec.md §4.4's
// emission rules using that naming convention, not copied code.
package codegen

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"github.com/regionc/regionc/internal/ast"
	"github.com/regionc/regionc/runtime/builtins"
)

// Printer generates the text of one host-extension source file for a
// single region.
type Printer struct {
	usesBuiltin bool
	moduleID    string
}

// New constructs a Printer.
func New() *Printer {
	return &Printer{moduleID: uuid.NewString()}
}

// Generate renders region as the complete text of a host-extension source
// file. It panics on a code-generator refusal (spec.md §7): a non-empty
// array literal, or any other AST shape the generator has no emission
// rule for — these are internal invariant violations, not user-facing
// errors, since the optimizer must have already rejected or rewritten
// anything else.
func Generate(region *ast.Region) string {
	p := New()
	return p.Generate(region)
}

// Generate is the instance form of the package-level Generate, reusing
// one Printer (and its ModuleID) across Header/Register/function calls if
// a caller wants those independently.
func (p *Printer) Generate(region *ast.Region) string {
	p.usesBuiltin = usesBuiltinAnywhere(region)

	var body strings.Builder
	for _, fn := range region.Functions() {
		body.WriteString(p.printFunction(fn))
		body.WriteString("\n")
	}

	var out strings.Builder
	out.WriteString(p.printHeader(region))
	out.WriteString("\n")
	out.WriteString(p.printModuleID())
	out.WriteString("\n")
	out.WriteString(p.printRegister(region))
	out.WriteString("\n")
	out.WriteString(body.String())
	return out.String()
}

func (p *Printer) printHeader(region *ast.Region) string {
	var sb strings.Builder
	sb.WriteString("// Code generated by regionc. DO NOT EDIT.\n")
	sb.WriteString(fmt.Sprintf("package %s\n\n", packageName(region.Name)))
	sb.WriteString("import (\n")
	sb.WriteString("\t\"github.com/regionc/regionc/runtime/dynvalue\"\n")
	sb.WriteString("\t\"github.com/regionc/regionc/runtime/host\"\n")
	if p.usesBuiltin {
		sb.WriteString("\t\"github.com/regionc/regionc/runtime/builtins\"\n")
	}
	sb.WriteString(")\n")
	return sb.String()
}

func (p *Printer) printModuleID() string {
	return fmt.Sprintf("// ModuleID uniquely identifies this compiled unit.\nconst ModuleID = %q\n", p.moduleID)
}

func (p *Printer) printRegister(region *ast.Region) string {
	var sb strings.Builder
	sb.WriteString("// Register installs this region's entry points and the Buffer class into\n")
	sb.WriteString("// h. The host runtime calls this once when loading the extension.\n")
	sb.WriteString("func Register(h host.Host) {\n")
	sb.WriteString("\th.RegisterBufferType()\n")
	for _, fn := range region.Functions() {
		sb.WriteString(fmt.Sprintf("\th.RegisterFunction(%q, %s)\n", fn.Name, entryName(fn.Name)))
	}
	sb.WriteString("}\n")
	return sb.String()
}

func entryName(fnName string) string {
	return "entry_" + fnName
}

// packageName sanitizes a region name into a valid, idiomatic lowercase Go
// package identifier.
func packageName(name string) string {
	var sb strings.Builder
	for _, r := range name {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			sb.WriteRune(unicode.ToLower(r))
		case r == '_':
			sb.WriteRune(r)
		}
	}
	if sb.Len() == 0 {
		return "region"
	}
	return sb.String()
}

// usesBuiltinAnywhere reports whether any call or method-call reachable
// from region resolves to the builtins package, so the generated header
// only imports it when needed.
func usesBuiltinAnywhere(region *ast.Region) bool {
	found := false
	for _, fn := range region.Functions() {
		walkBlock(fn.Body, func(s ast.Statement) {
			switch v := s.(type) {
			case *ast.CallStatement:
				if builtins.HostFunctions[v.Name] || builtins.NoHostFunctions[v.Name] {
					found = true
				}
				for _, a := range v.Args {
					if exprUsesBuiltin(a) {
						found = true
					}
				}
			case *ast.LetStatement:
				if exprUsesBuiltin(v.Value) {
					found = true
				}
			case *ast.Assignment:
				if exprUsesBuiltin(v.Value) {
					found = true
				}
			case *ast.ReturnStatement:
				if exprUsesBuiltin(v.Value) {
					found = true
				}
			case *ast.ExpressionStatement:
				if v.Value != nil && exprUsesBuiltin(v.Value) {
					found = true
				}
			case *ast.IfStatement:
				if exprUsesBuiltin(v.Cond) {
					found = true
				}
			case *ast.IfElseStatement:
				if exprUsesBuiltin(v.Cond) {
					found = true
				}
			case *ast.ForStatement:
				if exprUsesBuiltin(v.Cond) {
					found = true
				}
			}
		})
	}
	return found
}

func walkBlock(body []ast.Statement, visit func(ast.Statement)) {
	for _, s := range body {
		visit(s)
		switch v := s.(type) {
		case *ast.IfStatement:
			walkBlock(v.Body, visit)
		case *ast.IfElseStatement:
			walkBlock(v.Then, visit)
			walkBlock(v.Else, visit)
		case *ast.ForStatement:
			visit(v.Init)
			visit(v.Update)
			walkBlock(v.Body, visit)
		}
	}
}

func exprUsesBuiltin(e ast.Expr) bool {
	switch v := e.(type) {
	case *ast.CallExpr:
		if builtins.HostFunctions[v.Name] || builtins.NoHostFunctions[v.Name] {
			return true
		}
		for _, a := range v.Args {
			if exprUsesBuiltin(a) {
				return true
			}
		}
	case *ast.MethodCallExpr:
		if builtins.BufferMethods[v.Method] {
			return true
		}
		return true // non-buffer methods dispatch through builtins.DynamicMethodCall
	case *ast.BinaryExpr:
		return exprUsesBuiltin(v.Left) || exprUsesBuiltin(v.Right)
	case *ast.ArrayExpr:
		for _, el := range v.Elems {
			if exprUsesBuiltin(el) {
				return true
			}
		}
	}
	return false
}

// refuse panics with a code-generator refusal, per spec.md §7: these are
// internal invariant violations surfaced as process-aborting panics, not
// user-visible compiler errors.
func refuse(n ast.Node, reason string) {
	panic(fmt.Sprintf("regionc: code generator refusal near %q: %s", n.TokenLiteral(), reason))
}
